package http

import (
	"net/http"
	"time"

	"github.com/klwxsrx/go-storefront/internal/devbackend/app/service"
	"github.com/klwxsrx/go-storefront/internal/devbackend/domain"
	pkghttp "github.com/klwxsrx/go-storefront/pkg/http"
)

const (
	refreshTokenCookieName = "refresh_token"
	refreshTokenCookiePath = "/auth"
)

type (
	LoginHandler struct {
		authService service.Authentication
	}

	RefreshHandler struct {
		authService service.Authentication
	}

	LogoutHandler struct {
		authService service.Authentication
	}
)

func NewLoginHandler(authService service.Authentication) LoginHandler {
	return LoginHandler{authService: authService}
}

func (h LoginHandler) Method() string {
	return http.MethodPost
}

func (h LoginHandler) Path() string {
	return "/auth/login"
}

func (h LoginHandler) Handle(w pkghttp.ResponseWriter, r *http.Request) (err error) {
	in, err := pkghttp.ParseRequest(r, pkghttp.JSONBody[loginIn](), err)
	if err != nil {
		return err
	}

	result, err := h.authService.Login(r.Context(), in.Username, in.Password)
	if err != nil {
		return err
	}

	w.SetCookie(newRefreshTokenCookie(result.Tokens.RefreshToken))
	w.SetJSONBody(loginOut{
		AccessToken: result.Tokens.AccessToken,
		User:        toUserOut(result.User),
	})
	return nil
}

func NewRefreshHandler(authService service.Authentication) RefreshHandler {
	return RefreshHandler{authService: authService}
}

func (h RefreshHandler) Method() string {
	return http.MethodGet
}

func (h RefreshHandler) Path() string {
	return "/auth/refresh"
}

// Handle rotates the refresh cookie; a missing cookie is a bad request, a stale one is unauthorized.
func (h RefreshHandler) Handle(w pkghttp.ResponseWriter, r *http.Request) (err error) {
	refreshToken, err := pkghttp.ParseRequest(r, pkghttp.CookieValue[string](refreshTokenCookieName), err)
	if err != nil {
		return err
	}

	tokens, err := h.authService.Refresh(r.Context(), refreshToken)
	if err != nil {
		w.SetCookie(expiredRefreshTokenCookie())
		return err
	}

	w.SetCookie(newRefreshTokenCookie(tokens.RefreshToken))
	w.SetJSONBody(refreshOut{AccessToken: tokens.AccessToken})
	return nil
}

func NewLogoutHandler(authService service.Authentication) LogoutHandler {
	return LogoutHandler{authService: authService}
}

func (h LogoutHandler) Method() string {
	return http.MethodPost
}

func (h LogoutHandler) Path() string {
	return "/auth/logout"
}

func (h LogoutHandler) Handle(w pkghttp.ResponseWriter, r *http.Request) (err error) {
	refreshToken := pkghttp.ParseRequestOptional(r, pkghttp.CookieValue[string](refreshTokenCookieName), err)
	if refreshToken != nil {
		err = h.authService.Logout(r.Context(), *refreshToken)
		if err != nil {
			return err
		}
	}

	w.SetCookie(expiredRefreshTokenCookie())
	w.SetStatusCode(http.StatusNoContent)
	return nil
}

func newRefreshTokenCookie(token domain.RefreshToken) *http.Cookie {
	return &http.Cookie{
		Name:     refreshTokenCookieName,
		Value:    token.Value,
		Path:     refreshTokenCookiePath,
		Expires:  token.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
}

func expiredRefreshTokenCookie() *http.Cookie {
	return &http.Cookie{
		Name:     refreshTokenCookieName,
		Value:    "",
		Path:     refreshTokenCookiePath,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
}
