package http

import (
	"net/http"

	"github.com/klwxsrx/go-storefront/internal/devbackend/app/service"
	"github.com/klwxsrx/go-storefront/internal/devbackend/domain"
	"github.com/klwxsrx/go-storefront/pkg/auth"
	pkghttp "github.com/klwxsrx/go-storefront/pkg/http"
)

func WithErrorMapping() pkghttp.ServerOption {
	return pkghttp.WithErrorMapping(map[int][]error{
		http.StatusBadRequest: {
			service.ErrInvalidInput,
		},
		http.StatusUnauthorized: {
			auth.ErrUnauthenticated,
			service.ErrInvalidCredentials,
			service.ErrRefreshTokenInvalid,
		},
		http.StatusForbidden: {
			auth.ErrPermissionDenied,
		},
		http.StatusNotFound: {
			domain.ErrUserNotFound,
			domain.ErrProductNotFound,
			domain.ErrOrderNotFound,
		},
		http.StatusConflict: {
			domain.ErrInsufficientStock,
			domain.ErrOrderNotCancellable,
		},
	})
}
