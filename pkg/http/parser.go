package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/klwxsrx/go-storefront/pkg/strings"
)

const maxJSONBodySize = 1 << 20

var ErrParsingError = errors.New("parsing error")

type (
	// DataExtractor reads one value from a server request or a client response.
	DataExtractor[T any] func(source) (T, error)

	source interface {
		pathValue(name string) (string, bool)
		cookieValue(name string) (string, bool)
		body() io.Reader
	}

	requestSource struct {
		req *http.Request
	}

	responseSource struct {
		resp *http.Response
	}
)

// ParseRequest chains extractors: once lastErr is set the next extractors are skipped.
func ParseRequest[T any](r *http.Request, extractor DataExtractor[T], lastErr error) (T, error) {
	if lastErr != nil {
		var blank T
		return blank, lastErr
	}
	return extractor(requestSource{req: r})
}

func ParseRequestOptional[T any](r *http.Request, extractor DataExtractor[T], lastErr error) *T {
	return optional(ParseRequest(r, extractor, lastErr))
}

func ParseResponse[T any](r Response, extractor DataExtractor[T], lastErr error) (T, error) {
	if lastErr != nil {
		var blank T
		return blank, lastErr
	}
	return extractor(responseSource{resp: r.RawResponse()}) //nolint:bodyclose
}

func ParseResponseOptional[T any](r Response, extractor DataExtractor[T], lastErr error) *T {
	return optional(ParseResponse(r, extractor, lastErr))
}

func PathParameter[T strings.SupportedValueParsingTypes](name string) DataExtractor[T] {
	return func(s source) (T, error) {
		value, ok := s.pathValue(name)
		if !ok {
			var blank T
			return blank, fmt.Errorf("%w: path parameter %s not found", ErrParsingError, name)
		}
		return parseValue[T](value)
	}
}

// CookieValue reads a request cookie, or a Set-Cookie value of a response.
func CookieValue[T strings.SupportedValueParsingTypes](name string) DataExtractor[T] {
	return func(s source) (T, error) {
		value, ok := s.cookieValue(name)
		if !ok {
			var blank T
			return blank, fmt.Errorf("%w: cookie %s not found", ErrParsingError, name)
		}
		return parseValue[T](value)
	}
}

func JSONBody[T any]() DataExtractor[T] {
	return func(s source) (T, error) {
		var result T
		err := json.NewDecoder(s.body()).Decode(&result)
		if err != nil {
			return result, fmt.Errorf("%w: decode json body: %w", ErrParsingError, err)
		}
		return result, nil
	}
}

func (s requestSource) pathValue(name string) (string, bool) {
	value, ok := mux.Vars(s.req)[name]
	return value, ok
}

func (s requestSource) cookieValue(name string) (string, bool) {
	cookie, err := s.req.Cookie(name)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

func (s requestSource) body() io.Reader {
	if s.req.Body == nil {
		return http.NoBody
	}
	return io.LimitReader(s.req.Body, maxJSONBodySize)
}

func (s responseSource) pathValue(string) (string, bool) {
	return "", false
}

func (s responseSource) cookieValue(name string) (string, bool) {
	if s.resp == nil {
		return "", false
	}

	for _, cookie := range s.resp.Cookies() {
		if cookie.Name == name && cookie.Value != "" {
			return cookie.Value, true
		}
	}
	return "", false
}

func (s responseSource) body() io.Reader {
	if s.resp == nil || s.resp.Body == nil {
		return http.NoBody
	}
	return s.resp.Body
}

func optional[T any](value T, err error) *T {
	if err != nil {
		return nil
	}
	return &value
}

func parseValue[T strings.SupportedValueParsingTypes](value string) (T, error) {
	v, err := strings.ParseTypedValue[T](value)
	if err != nil {
		return v, fmt.Errorf("%w: %w", ErrParsingError, err)
	}
	return v, nil
}
