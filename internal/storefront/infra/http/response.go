package http

import (
	"fmt"
	"net/http"

	"github.com/klwxsrx/go-storefront/internal/storefront/app/backend"
	pkghttp "github.com/klwxsrx/go-storefront/pkg/http"
)

// send executes the request and decodes a successful JSON body into T.
func send[T any](req pkghttp.Request, name string, expectedCode int) (T, error) {
	var result T
	resp, err := req.Send()
	if err != nil {
		return result, fmt.Errorf("request %s: %w", name, err)
	}
	defer resp.Close()

	if resp.StatusCode() != expectedCode {
		return result, fmt.Errorf("request %s: %w", name, responseError(resp))
	}

	return pkghttp.ParseResponse(resp, pkghttp.JSONBody[T](), nil)
}

func sendNoContent(req pkghttp.Request, name string) error {
	resp, err := req.Send()
	if err != nil {
		return fmt.Errorf("request %s: %w", name, err)
	}
	defer resp.Close()

	code := resp.StatusCode()
	if code != http.StatusNoContent && code != http.StatusOK {
		return fmt.Errorf("request %s: %w", name, responseError(resp))
	}

	return nil
}

func responseError(resp pkghttp.Response) error {
	body := pkghttp.ParseResponseOptional(resp, pkghttp.JSONBody[ErrorOut](), nil)

	result := &backend.Error{StatusCode: resp.StatusCode()}
	if body != nil {
		result.Message = body.Message
	}
	return result
}
