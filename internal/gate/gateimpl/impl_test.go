package gateimpl

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/micro-blogger/telegram-client/internal/domain"
	"github.com/micro-blogger/telegram-client/internal/gate"
	"github.com/micro-blogger/telegram-client/internal/microblog/mocks"
	"github.com/micro-blogger/telegram-client/internal/session"
	apperrors "github.com/micro-blogger/telegram-client/pkg/errors"
	"github.com/micro-blogger/telegram-client/pkg/logger"
	"go.uber.org/mock/gomock"
)

func newTestGate(t *testing.T) (*ControllerImpl, *mocks.MockClient, session.Store) {
	t.Helper()

	ctrl := gomock.NewController(t)
	api := mocks.NewMockClient(ctrl)
	log := logger.New(logger.Opts{Env: "production"})
	store := session.NewFileStore(filepath.Join(t.TempDir(), "session"), log)

	c := New(Opts{API: api, Session: store, Logger: log})
	return c, api, store
}

func TestGateEntryRedirectsWithoutNetwork(t *testing.T) {
	// No expectations are set on the mock: any API call fails the test.
	c, _, store := newTestGate(t)

	if err := store.Set("tok"); err != nil {
		t.Fatal(err)
	}
	if got := c.GateEntry(); got != gate.DecisionRedirectProfile {
		t.Fatalf("decision = %v, want redirect to profile", got)
	}
	if c.State() != gate.StateAuthenticated {
		t.Fatal("credential present but state is anonymous")
	}
}

func TestGateEntryProceedsWhenAnonymous(t *testing.T) {
	c, _, _ := newTestGate(t)

	if got := c.GateEntry(); got != gate.DecisionProceed {
		t.Fatalf("decision = %v, want proceed", got)
	}
	if c.State() != gate.StateAnonymous {
		t.Fatal("fresh store but state is authenticated")
	}
}

func TestLoginStoresTokenOnSuccess(t *testing.T) {
	c, api, store := newTestGate(t)

	api.EXPECT().Login(gomock.Any(), "a@b.com", "secret").Return("tok-1", nil)

	if err := c.Login(context.Background(), "a@b.com", "secret"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if token, ok := store.Get(); !ok || token != "tok-1" {
		t.Fatalf("stored token %q, %v", token, ok)
	}
}

func TestLoginFailureStoresNothing(t *testing.T) {
	c, api, store := newTestGate(t)

	api.EXPECT().Login(gomock.Any(), "a@b.com", "wrong").
		Return("", &apperrors.Error{Message: "invalid credentials", Err: apperrors.ErrUnauthorized})

	err := c.Login(context.Background(), "a@b.com", "wrong")
	if err == nil {
		t.Fatal("expected error")
	}
	if apperrors.GetMessage(err) != "invalid credentials" {
		t.Fatalf("message = %q", apperrors.GetMessage(err))
	}
	if _, ok := store.Get(); ok {
		t.Fatal("token stored despite rejected login")
	}
}

func TestResolveSelfRejectedKeepsCredential(t *testing.T) {
	c, api, store := newTestGate(t)

	// Stale token: accepted locally, rejected by the server.
	if err := store.Set("stale"); err != nil {
		t.Fatal(err)
	}
	api.EXPECT().Me(gomock.Any()).
		Return("", &apperrors.Error{Message: "token expired", Err: apperrors.ErrUnauthorized})

	_, err := c.ResolveSelf(context.Background())
	if !apperrors.IsNotFound(err) {
		t.Fatalf("rejected self-lookup should read as not found, got %v", err)
	}
	if token, ok := store.Get(); !ok || token != "stale" {
		t.Fatal("credential was cleared as a side effect")
	}
}

func TestResolveSelfAttemptedWhenAnonymous(t *testing.T) {
	c, api, _ := newTestGate(t)

	// The lookup is still attempted; the empty bearer is the server's
	// problem to reject.
	api.EXPECT().Me(gomock.Any()).
		Return("", &apperrors.Error{Message: "not authenticated", Err: apperrors.ErrUnauthorized})

	if _, err := c.ResolveSelf(context.Background()); !apperrors.IsNotFound(err) {
		t.Fatalf("got %v, want not found", err)
	}
}

func TestResolveSelfUnavailablePropagates(t *testing.T) {
	c, api, store := newTestGate(t)

	if err := store.Set("tok"); err != nil {
		t.Fatal(err)
	}
	api.EXPECT().Me(gomock.Any()).
		Return("", &apperrors.Error{Message: "down", Err: apperrors.ErrServiceUnavailable})

	_, err := c.ResolveSelf(context.Background())
	if !apperrors.IsServiceUnavailable(err) {
		t.Fatalf("got %v, want service unavailable", err)
	}
	if _, ok := store.Get(); !ok {
		t.Fatal("credential was cleared on a transport failure")
	}
}

func TestResolveSelfSuccess(t *testing.T) {
	c, api, store := newTestGate(t)

	if err := store.Set("tok"); err != nil {
		t.Fatal(err)
	}
	gomock.InOrder(
		api.EXPECT().Me(gomock.Any()).Return("alice", nil),
		api.EXPECT().Profile(gomock.Any(), "alice").
			Return(&domain.Profile{Username: "alice", DisplayName: "Alice"}, nil),
	)

	profile, err := c.ResolveSelf(context.Background())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if profile.Username != "alice" {
		t.Fatalf("got %+v", profile)
	}
}

func TestLogoutClearsCredential(t *testing.T) {
	c, _, store := newTestGate(t)

	if err := store.Set("tok"); err != nil {
		t.Fatal(err)
	}
	c.Logout()
	if _, ok := store.Get(); ok {
		t.Fatal("token still present after logout")
	}
}
