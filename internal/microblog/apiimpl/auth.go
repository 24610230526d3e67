package apiimpl

import (
	"context"
	"net/http"

	apperrors "github.com/micro-blogger/telegram-client/pkg/errors"
)

func (a *APIImpl) Register(ctx context.Context, username, email, password string) error {
	body := map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}
	return a.do(ctx, http.MethodPost, "/register", body, false, nil)
}

func (a *APIImpl) Login(ctx context.Context, email, password string) (string, error) {
	// The service names the field hashed_password but expects the raw
	// password; hashing happens server-side.
	body := map[string]string{
		"email":           email,
		"hashed_password": password,
	}

	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := a.do(ctx, http.MethodPost, "/login", body, false, &out); err != nil {
		return "", err
	}
	if out.AccessToken == "" {
		return "", apperrors.New("login response carried no token")
	}
	return out.AccessToken, nil
}

func (a *APIImpl) Me(ctx context.Context) (string, error) {
	var out struct {
		Username string `json:"username"`
	}
	if err := a.do(ctx, http.MethodGet, "/me", nil, true, &out); err != nil {
		return "", err
	}
	return out.Username, nil
}
