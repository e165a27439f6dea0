package http

import (
	"context"
	"net/http"

	"github.com/klwxsrx/go-storefront/internal/storefront/app/backend"
	"github.com/klwxsrx/go-storefront/internal/storefront/domain"
	pkghttp "github.com/klwxsrx/go-storefront/pkg/http"
)

var (
	getProfileRoute    = pkghttp.Route{Method: http.MethodGet, URL: "/profile"}
	updateProfileRoute = pkghttp.Route{Method: http.MethodPut, URL: "/profile"}
	listUsersRoute     = pkghttp.Route{Method: http.MethodGet, URL: "/users"}
)

type accountAPI struct {
	client pkghttp.Client
}

func NewAccountAPI(client pkghttp.Client) backend.AccountAPI {
	return accountAPI{client: client}
}

func (a accountAPI) GetProfile(ctx context.Context) (*domain.Profile, error) {
	out, err := send[ProfileData](a.client.NewRequest(ctx, getProfileRoute), "account.getProfile", http.StatusOK)
	if err != nil {
		return nil, err
	}

	profile := toDomainProfile(out)
	return &profile, nil
}

func (a accountAPI) UpdateProfile(ctx context.Context, profile domain.Profile) (*domain.Profile, error) {
	req := a.client.NewRequest(ctx, updateProfileRoute).
		SetJSONBody(toProfileData(profile))

	out, err := send[ProfileData](req, "account.updateProfile", http.StatusOK)
	if err != nil {
		return nil, err
	}

	updated := toDomainProfile(out)
	return &updated, nil
}

func (a accountAPI) ListUsers(ctx context.Context) ([]domain.User, error) {
	out, err := send[[]UserOut](a.client.NewRequest(ctx, listUsersRoute), "account.listUsers", http.StatusOK)
	if err != nil {
		return nil, err
	}

	users := make([]domain.User, 0, len(out))
	for _, user := range out {
		users = append(users, toDomainUser(user))
	}
	return users, nil
}
