package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/klwxsrx/go-storefront/pkg/auth"
)

type AuthTokenProvider func(*http.Request) (auth.Token, bool)

func BearerTokenProvider(r *http.Request) (auth.Token, bool) {
	scheme, token, ok := strings.Cut(r.Header.Get(authorizationHeader), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return nil, false
	}

	return auth.BearerToken(strings.TrimSpace(token)), true
}

// WithAuth authenticates requests carrying a token; requests without one pass unauthenticated.
func WithAuth[T auth.Principal](provider auth.Provider[T], tokenProviders ...AuthTokenProvider) ServerOption {
	return WithMW(func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var ok bool
			var token auth.Token
			for _, tokenProvider := range tokenProviders {
				token, ok = tokenProvider(r)
				if ok {
					break
				}
			}
			if !ok {
				handler.ServeHTTP(w, r.WithContext(auth.WithAuthentication[T](r.Context(), auth.Auth[T]{})))
				return
			}

			authData, err := provider.Authenticate(r.Context(), token)
			if errors.Is(err, auth.ErrUnauthenticated) {
				writeMiddlewareError(w, r, http.StatusUnauthorized, err)
				return
			}
			if err != nil {
				writeMiddlewareError(w, r, http.StatusInternalServerError, err)
				return
			}

			handler.ServeHTTP(w, r.WithContext(auth.WithAuthentication(r.Context(), authData)))
		})
	})
}

func WithAuthenticationRequirement() ServerOption {
	return WithMW(func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			isAuthenticated, err := auth.IsAuthenticated(r.Context())
			if err != nil {
				writeMiddlewareError(w, r, http.StatusInternalServerError, err)
				return
			}

			if !isAuthenticated {
				writeMiddlewareError(w, r, http.StatusUnauthorized, auth.ErrUnauthenticated)
				return
			}

			handler.ServeHTTP(w, r)
		})
	})
}

func writeMiddlewareError(w http.ResponseWriter, r *http.Request, httpCode int, err error) {
	meta := getHandlerMetadata(r.Context())
	meta.Code = httpCode
	meta.Error = err

	if httpCode >= http.StatusInternalServerError {
		w.WriteHeader(httpCode)
		return
	}
	writeErrorBody(w, httpCode, err)
}
