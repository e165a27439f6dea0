package http

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/klwxsrx/go-storefront/pkg/log"
	"github.com/klwxsrx/go-storefront/pkg/metric"
	"github.com/klwxsrx/go-storefront/pkg/session"
)

const authorizationHeader = "Authorization"

// ErrAuthRejected ends the session when a request is still unauthorized after recovery.
var ErrAuthRejected = errors.New("request rejected after session recovery")

type (
	BearerAuthOption func(*bearerAuthTransport)

	bearerAuthTransport struct {
		next          http.RoundTripper
		manager       session.Manager
		excludedPaths []string
		failureCodes  map[int]struct{}
		logger        log.Logger
		metrics       metric.Metrics
	}
)

// WithBearerAuth attaches the session token to every request and recovers the session once
// when a request fails authorization. Concurrent failures share one refresh through the manager.
func WithBearerAuth(manager session.Manager, opts ...BearerAuthOption) ClientOption {
	return func(c *ClientImpl) {
		next := c.RESTClient.GetClient().Transport
		if next == nil {
			next = http.DefaultTransport
		}

		transport := &bearerAuthTransport{
			next:         next,
			manager:      manager,
			failureCodes: map[int]struct{}{http.StatusUnauthorized: {}},
			logger:       log.NewStub(),
			metrics:      metric.NewMetricsStub(),
		}
		for _, opt := range opts {
			opt(transport)
		}

		c.RESTClient.SetTransport(transport)
	}
}

// WithAuthExcludedPaths lists endpoints whose auth failures are returned without recovery,
// e.g. login and refresh. A request matches when its path ends with one of the paths.
func WithAuthExcludedPaths(paths ...string) BearerAuthOption {
	return func(t *bearerAuthTransport) {
		t.excludedPaths = append(t.excludedPaths, paths...)
	}
}

func WithAuthFailureCodes(codes ...int) BearerAuthOption {
	return func(t *bearerAuthTransport) {
		if len(codes) == 0 {
			return
		}

		t.failureCodes = make(map[int]struct{}, len(codes))
		for _, code := range codes {
			t.failureCodes[code] = struct{}{}
		}
	}
}

func WithAuthLogger(logger log.Logger) BearerAuthOption {
	return func(t *bearerAuthTransport) {
		t.logger = logger
	}
}

func WithAuthMetrics(metrics metric.Metrics) BearerAuthOption {
	return func(t *bearerAuthTransport) {
		t.metrics = metrics
	}
}

// WithoutAuthRecovery marks requests sent with ctx as already retried.
func WithoutAuthRecovery(ctx context.Context) context.Context {
	return context.WithValue(ctx, authRecoveryDisabledContextKey, true)
}

func isAuthRecoveryDisabled(ctx context.Context) bool {
	disabled, _ := ctx.Value(authRecoveryDisabledContextKey).(bool)
	return disabled
}

func (t *bearerAuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	snapshot, err := t.manager.Current(ctx)
	if err != nil {
		return nil, err
	}

	recoverable := t.isRecoverable(req)
	if recoverable {
		req, err = withReplayableBody(req)
		if err != nil {
			return nil, err
		}
	}

	resp, err := t.next.RoundTrip(withBearerToken(req.Context(), req, snapshot.Token))
	if err != nil || !recoverable || !t.isAuthFailure(resp.StatusCode) {
		return resp, err
	}

	original, err := bufferResponse(resp)
	if err != nil {
		return nil, err
	}

	recovered, err := t.manager.Recover(ctx, snapshot)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		t.logger.WithError(err).WithField("path", req.URL.Path).Warn(ctx, "session recovery failed")
		t.metrics.WithLabel("result", "failed").Increment("http_client_auth_recovery_total")
		return original, nil
	}

	retry, err := rewind(WithoutAuthRecovery(ctx), req)
	if err != nil {
		return nil, err
	}

	resp, err = t.next.RoundTrip(withBearerToken(retry.Context(), retry, recovered.Token))
	if err != nil {
		return nil, err
	}

	if !t.isAuthFailure(resp.StatusCode) {
		t.metrics.WithLabel("result", "recovered").Increment("http_client_auth_recovery_total")
		return resp, nil
	}

	t.metrics.WithLabel("result", "rejected").Increment("http_client_auth_recovery_total")
	err = t.manager.Expire(ctx, recovered, fmt.Errorf("%w: %s %s", ErrAuthRejected, req.Method, req.URL.Path))
	if err != nil {
		t.logger.WithError(err).Error(ctx, "failed to end rejected session")
	}
	return resp, nil
}

func (t *bearerAuthTransport) isRecoverable(req *http.Request) bool {
	if isAuthRecoveryDisabled(req.Context()) {
		return false
	}

	for _, path := range t.excludedPaths {
		if strings.HasSuffix(req.URL.Path, path) {
			return false
		}
	}
	return true
}

func (t *bearerAuthTransport) isAuthFailure(code int) bool {
	_, ok := t.failureCodes[code]
	return ok
}

func withBearerToken(ctx context.Context, req *http.Request, token session.Token) *http.Request {
	result := req.Clone(ctx)
	if token != "" {
		result.Header.Set(authorizationHeader, "Bearer "+string(token))
	} else {
		result.Header.Del(authorizationHeader)
	}
	return result
}

// withReplayableBody makes sure the body can be sent a second time.
func withReplayableBody(req *http.Request) (*http.Request, error) {
	if req.Body == nil || req.Body == http.NoBody || req.GetBody != nil {
		return req, nil
	}

	data, err := io.ReadAll(req.Body)
	_ = req.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("read request body: %w", err)
	}

	result := req.Clone(req.Context())
	result.Body = io.NopCloser(bytes.NewReader(data))
	result.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(data)), nil
	}
	return result, nil
}

func rewind(ctx context.Context, req *http.Request) (*http.Request, error) {
	result := req.Clone(ctx)
	if req.GetBody == nil {
		return result, nil
	}

	body, err := req.GetBody()
	if err != nil {
		return nil, fmt.Errorf("rewind request body: %w", err)
	}
	result.Body = body
	return result, nil
}

func bufferResponse(resp *http.Response) (*http.Response, error) {
	data, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("read auth failure response: %w", err)
	}

	resp.Body = io.NopCloser(bytes.NewReader(data))
	resp.ContentLength = int64(len(data))
	return resp, nil
}
