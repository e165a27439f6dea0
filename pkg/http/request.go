package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
)

type contextKey int

const (
	routeContextKey contextKey = iota
	authRecoveryDisabledContextKey
	handlerMetaContextKey
)

type (
	Route struct {
		Method string
		URL    string
	}

	Request interface {
		SetPathParam(name, value string) Request
		SetQueryParam(name, value string) Request
		SetHeader(key, value string) Request
		SetJSONBody(body any) Request
		Send() (Response, error)
	}

	Response interface {
		StatusCode() int
		RawResponse() *http.Response
		Close()
	}

	request struct {
		impl  *resty.Request
		route Route
	}

	response struct {
		impl *resty.Response
	}
)

func (r *request) SetPathParam(name, value string) Request {
	r.impl.SetPathParam(name, value)
	return r
}

func (r *request) SetQueryParam(name, value string) Request {
	r.impl.SetQueryParam(name, value)
	return r
}

func (r *request) SetHeader(key, value string) Request {
	r.impl.SetHeader(key, value)
	return r
}

func (r *request) SetJSONBody(body any) Request {
	r.impl.
		SetHeader("Content-Type", "application/json").
		SetBody(body)
	return r
}

// Send executes the request leaving the body unread; the caller must Close the response.
func (r *request) Send() (Response, error) {
	ctx := context.WithValue(r.impl.Context(), routeContextKey, r.route)
	resp, err := r.impl.
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Execute(r.route.Method, r.route.URL)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", r.route.Method, r.route.URL, err)
	}

	return response{impl: resp}, nil
}

func (r response) StatusCode() int {
	return r.impl.StatusCode()
}

func (r response) RawResponse() *http.Response {
	return r.impl.RawResponse
}

func (r response) Close() {
	if body := r.impl.RawBody(); body != nil {
		_ = body.Close()
	}
}
