package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/gorilla/mux"

	"github.com/klwxsrx/go-storefront/pkg/log"
	"github.com/klwxsrx/go-storefront/pkg/metric"
	"github.com/klwxsrx/go-storefront/pkg/observability"
)

const (
	healthPath  = "/healthz"
	metricsPath = "/metrics"
)

func WithMW(mw ServerMiddleware) ServerOption {
	return func(router *mux.Router) {
		router.Use(mux.MiddlewareFunc(mw))
	}
}

func WithHealthCheck(customHandlerFunc http.HandlerFunc) ServerOption {
	handler := func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(struct {
			Status string `json:"status"`
		}{
			Status: "OK",
		})
	}
	if customHandlerFunc != nil {
		handler = customHandlerFunc
	}

	return func(router *mux.Router) {
		router.
			Name(getRouteName(http.MethodGet, healthPath)).
			Methods(http.MethodGet).
			Path(healthPath).
			HandlerFunc(handler)
	}
}

func WithMetricsHandler(handler http.Handler) ServerOption {
	return func(router *mux.Router) {
		router.
			Name(getRouteName(http.MethodGet, metricsPath)).
			Methods(http.MethodGet).
			Path(metricsPath).
			Handler(handler)
	}
}

// WithErrorMapping sets the status of responses whose handler failed with one of the errors
// and did not choose a status itself.
func WithErrorMapping(statusCodes map[int][]error) ServerOption {
	return WithMW(func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			respWriter := newDeferredResponseWriter(w)
			defer respWriter.PersistWrite()

			handler.ServeHTTP(respWriter, r)

			meta := getHandlerMetadata(r.Context())
			if meta.Error == nil || meta.Panic != nil || meta.Code != http.StatusInternalServerError {
				return
			}

			for statusCode, errs := range statusCodes {
				if slices.ContainsFunc(errs, func(target error) bool { return errors.Is(meta.Error, target) }) {
					meta.Code = statusCode
					respWriter.Reset()
					writeErrorBody(respWriter, statusCode, meta.Error)
					return
				}
			}
		})
	})
}

func WithLogging(logger log.Logger, infoLevel, errorLevel log.Level) ServerOption {
	excludedPaths := []string{healthPath, metricsPath}

	return WithMW(func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if slices.Contains(excludedPaths, r.URL.Path) {
				handler.ServeHTTP(w, r)
				return
			}

			started := time.Now()
			handler.ServeHTTP(w, r)
			meta := getHandlerMetadata(r.Context())

			requestLogger := getRequestResponseFieldsLogger(r, meta.Code, logger).
				WithField("duration", time.Since(started).String())
			switch {
			case meta.Panic != nil:
				requestLogger.
					WithField("panic", meta.Panic.Message).
					WithField("stacktrace", string(meta.Panic.Stacktrace)).
					Log(r.Context(), errorLevel, "request handled with panic")
			case meta.Code >= http.StatusInternalServerError:
				requestLogger.WithError(meta.Error).Log(r.Context(), errorLevel, "request handled with internal error")
			default:
				requestLogger.WithError(meta.Error).Log(r.Context(), infoLevel, "request handled")
			}
		})
	})
}

func WithMetrics(metrics metric.Metrics) ServerOption {
	return WithMW(func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			started := time.Now()
			handler.ServeHTTP(w, r)
			result := getHandlerMetadata(r.Context())

			routeName := "unknown"
			if route := mux.CurrentRoute(r); route != nil && route.GetName() != "" {
				routeName = route.GetName()
			}

			if result.Panic != nil {
				metrics.With(metric.Labels{
					"method": r.Method,
					"route":  routeName,
				}).Increment("http_api_request_panics_total")
			}

			metrics.With(metric.Labels{
				"method": r.Method,
				"route":  routeName,
				"code":   fmt.Sprintf("%d", result.Code),
			}).Duration("http_api_request_duration_seconds", time.Since(started))
		})
	})
}

// WithObservability takes the request id from the header or generates a new one.
func WithObservability(observer observability.Observer, requestIDHeaderName string) ServerOption {
	return WithMW(func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if id := r.Header.Get(requestIDHeaderName); id != "" {
				ctx = observer.WithRequestID(ctx, id)
			}

			ctx, id := observer.EnsureRequestID(ctx)
			w.Header().Set(requestIDHeaderName, id)
			handler.ServeHTTP(w, r.WithContext(ctx))
		})
	})
}

type deferredResponseWriter struct {
	impl   http.ResponseWriter
	header http.Header
	code   int
	body   bytes.Buffer
}

func newDeferredResponseWriter(w http.ResponseWriter) *deferredResponseWriter {
	return &deferredResponseWriter{
		impl:   w,
		header: w.Header().Clone(),
		code:   http.StatusOK,
	}
}

func (w *deferredResponseWriter) Header() http.Header {
	return w.header
}

func (w *deferredResponseWriter) WriteHeader(code int) {
	w.code = code
}

func (w *deferredResponseWriter) Write(data []byte) (int, error) {
	return w.body.Write(data)
}

func (w *deferredResponseWriter) Reset() {
	w.body.Reset()
	w.code = http.StatusOK
}

func (w *deferredResponseWriter) PersistWrite() {
	for key, values := range w.header {
		w.impl.Header()[key] = values
	}
	w.impl.WriteHeader(w.code)
	_, _ = w.impl.Write(w.body.Bytes())
}
