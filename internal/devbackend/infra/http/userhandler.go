package http

import (
	"net/http"

	"github.com/klwxsrx/go-storefront/internal/devbackend/app/service"
	pkghttp "github.com/klwxsrx/go-storefront/pkg/http"
)

type (
	GetProfileHandler struct {
		users service.Users
	}

	UpdateProfileHandler struct {
		users service.Users
	}

	ListUsersHandler struct {
		users service.Users
	}
)

func NewGetProfileHandler(users service.Users) GetProfileHandler {
	return GetProfileHandler{users: users}
}

func (h GetProfileHandler) Method() string {
	return http.MethodGet
}

func (h GetProfileHandler) Path() string {
	return "/profile"
}

func (h GetProfileHandler) Handle(w pkghttp.ResponseWriter, r *http.Request) error {
	user, err := h.users.Current(r.Context())
	if err != nil {
		return err
	}

	w.SetJSONBody(toProfileData(user.Profile))
	return nil
}

func NewUpdateProfileHandler(users service.Users) UpdateProfileHandler {
	return UpdateProfileHandler{users: users}
}

func (h UpdateProfileHandler) Method() string {
	return http.MethodPut
}

func (h UpdateProfileHandler) Path() string {
	return "/profile"
}

func (h UpdateProfileHandler) Handle(w pkghttp.ResponseWriter, r *http.Request) (err error) {
	in, err := pkghttp.ParseRequest(r, pkghttp.JSONBody[profileData](), err)
	if err != nil {
		return err
	}

	user, err := h.users.UpdateProfile(r.Context(), in.toDomain())
	if err != nil {
		return err
	}

	w.SetJSONBody(toProfileData(user.Profile))
	return nil
}

func NewListUsersHandler(users service.Users) ListUsersHandler {
	return ListUsersHandler{users: users}
}

func (h ListUsersHandler) Method() string {
	return http.MethodGet
}

func (h ListUsersHandler) Path() string {
	return "/users"
}

func (h ListUsersHandler) Handle(w pkghttp.ResponseWriter, r *http.Request) error {
	users, err := h.users.List(r.Context())
	if err != nil {
		return err
	}

	out := make([]userOut, 0, len(users))
	for _, user := range users {
		out = append(out, toUserOut(user))
	}
	w.SetJSONBody(out)
	return nil
}
