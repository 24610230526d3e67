package apiimpl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/micro-blogger/telegram-client/internal/microblog"
	"github.com/micro-blogger/telegram-client/internal/session"
	"github.com/micro-blogger/telegram-client/pkg/config"
	apperrors "github.com/micro-blogger/telegram-client/pkg/errors"
	"github.com/micro-blogger/telegram-client/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Config  *config.Config
	Logger  logger.Logger
	Session session.Store
}

type APIImpl struct {
	http    *http.Client
	baseURL string
	session session.Store
	logger  logger.Logger
}

func New(opts Opts) *APIImpl {
	return &APIImpl{
		http:    &http.Client{Timeout: opts.Config.Microblog.Timeout},
		baseURL: strings.TrimRight(opts.Config.Microblog.BaseURL, "/"),
		session: opts.Session,
		logger:  opts.Logger.WithComponent("MicroblogClient"),
	}
}

var _ microblog.Client = (*APIImpl)(nil)

const unreachableMessage = "the microblog service could not be reached"

// do issues one request against the service. When authed is true the
// stored credential is attached as a bearer header; an absent token is
// sent as an empty bearer, rejecting it is the server's job.
func (a *APIImpl) do(ctx context.Context, method, path string, body any, authed bool, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return apperrors.Wrap(err, "encode request body")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return apperrors.Wrap(err, "build request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	if authed {
		token, _ := a.session.Get()
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.http.Do(req)
	if err != nil {
		a.logger.Warn("Request failed", "method", method, "path", path, "error", err)
		return &apperrors.Error{Code: "UNAVAILABLE", Message: unreachableMessage, Err: apperrors.ErrServiceUnavailable}
	}
	defer safeClose(resp.Body, a.logger)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		a.logger.Warn("Failed to read response body", "method", method, "path", path, "error", err)
		return &apperrors.Error{Code: "UNAVAILABLE", Message: unreachableMessage, Err: apperrors.ErrServiceUnavailable}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode > 299 {
		return a.statusError(method, path, resp.StatusCode, raw)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		a.logger.Warn("Unexpected response body", "method", method, "path", path, "error", err)
		return apperrors.WrapWithCode(err, "BAD_RESPONSE", "the service returned an unexpected response")
	}
	return nil
}

func (a *APIImpl) statusError(method, path string, status int, raw []byte) error {
	sentinel := statusSentinel(status)
	code := fmt.Sprintf("HTTP_%d", status)

	if detail, ok := parseErrorBody(raw); ok {
		return &apperrors.Error{Code: code, Message: detail, Err: sentinel}
	}

	a.logger.Warn("Unstructured error response", "method", method, "path", path, "status", status)
	return &apperrors.Error{Code: code, Message: "the request was rejected by the service", Err: sentinel}
}

func statusSentinel(status int) error {
	switch status {
	case http.StatusUnauthorized:
		return apperrors.ErrUnauthorized
	case http.StatusNotFound:
		return apperrors.ErrNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return apperrors.ErrBadRequest
	default:
		return apperrors.ErrInternalServer
	}
}

// parseErrorBody extracts the structured detail message the service puts
// in error bodies. ok is false for any other body shape.
func parseErrorBody(raw []byte) (string, bool) {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil || payload.Detail == "" {
		return "", false
	}
	return payload.Detail, true
}

func safeClose(closer io.ReadCloser, log logger.Logger) {
	if err := closer.Close(); err != nil {
		log.Error("Error closing response body", "error", err)
	}
}
