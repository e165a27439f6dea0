package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/klwxsrx/go-storefront/internal/storefront/app/backend"
	pkghttp "github.com/klwxsrx/go-storefront/pkg/http"
	"github.com/klwxsrx/go-storefront/pkg/session"
)

const (
	DefaultLoginPath   = "/auth/login"
	DefaultRefreshPath = "/auth/refresh"
	DefaultLogoutPath  = "/auth/logout"
)

type AuthPaths struct {
	Login   string
	Refresh string
	Logout  string
}

func DefaultAuthPaths() AuthPaths {
	return AuthPaths{
		Login:   DefaultLoginPath,
		Refresh: DefaultRefreshPath,
		Logout:  DefaultLogoutPath,
	}
}

// Excluded lists the endpoints whose auth failures must not trigger a session refresh.
func (p AuthPaths) Excluded() []string {
	return []string{p.Login, p.Refresh}
}

type authAPI struct {
	client       pkghttp.Client
	loginRoute   pkghttp.Route
	refreshRoute pkghttp.Route
	logoutRoute  pkghttp.Route
}

func NewAuthAPI(client pkghttp.Client, paths AuthPaths) backend.AuthAPI {
	return authAPI{
		client:       client,
		loginRoute:   pkghttp.Route{Method: http.MethodPost, URL: paths.Login},
		refreshRoute: pkghttp.Route{Method: http.MethodGet, URL: paths.Refresh},
		logoutRoute:  pkghttp.Route{Method: http.MethodPost, URL: paths.Logout},
	}
}

func (a authAPI) Login(ctx context.Context, username, password string) (*backend.LoginResult, error) {
	req := a.client.NewRequest(ctx, a.loginRoute).
		SetJSONBody(LoginIn{Username: username, Password: password})

	out, err := send[LoginOut](req, "auth.login", http.StatusOK)
	if err != nil {
		return nil, err
	}
	if out.AccessToken == "" {
		return nil, errors.New("auth.login response: empty access token")
	}

	return &backend.LoginResult{
		Token: session.Token(out.AccessToken),
		User:  toDomainUser(out.User),
	}, nil
}

// Refresh relies on the refresh cookie kept by the client cookie jar.
func (a authAPI) Refresh(ctx context.Context) (session.Token, error) {
	req := a.client.NewRequest(ctx, a.refreshRoute)

	out, err := send[RefreshOut](req, "auth.refresh", http.StatusOK)
	if err != nil {
		return "", err
	}

	return session.Token(out.AccessToken), nil
}

func (a authAPI) Logout(ctx context.Context) error {
	return sendNoContent(a.client.NewRequest(ctx, a.logoutRoute), "auth.logout")
}
