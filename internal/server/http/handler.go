package http

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/leshachaplin/eventreporter/domain"
	"github.com/leshachaplin/eventreporter/internal/apierror"
	"github.com/leshachaplin/eventreporter/internal/service"
)

type Service interface {
	RecordInstall(ctx context.Context, titleID string, install domain.Install) (service.InstallResult, error)
	RecordPurchase(ctx context.Context, titleID string, purchase domain.Purchase) (service.PurchaseResult, error)
}

type Handler struct {
	service   Service
	authToken string
	logger    zerolog.Logger
}

func NewHandler(svc Service, authToken string, logger zerolog.Logger) *Handler {
	return &Handler{
		service:   svc,
		authToken: authToken,
		logger:    logger,
	}
}

// authenticate accepts any non-empty bearer token when no token is configured.
func (h *Handler) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || token == "" {
			h.error(apierror.NewAPIError("missing bearer token", http.StatusUnauthorized), w)
			return
		}
		if h.authToken != "" && subtle.ConstantTimeCompare([]byte(token), []byte(h.authToken)) != 1 {
			h.error(apierror.NewAPIError("invalid bearer token", http.StatusUnauthorized), w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) error(err error, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	var apiErr apierror.Error
	if !errors.As(err, &apiErr) {
		h.logger.Error().Err(err).Msg("request failed")
		apiErr = apierror.NewAPIError(err.Error(), http.StatusInternalServerError)
	}

	w.WriteHeader(apiErr.StatusCode())
	if err = json.NewEncoder(w).Encode(apiErr); err != nil {
		h.logger.Error().Err(err).Msg("failed to write error response")
	}
}
