package http

import (
	"net/http"

	"github.com/go-chi/chi"

	"github.com/leshachaplin/eventreporter/domain"
)

func (h *Handler) Install(w http.ResponseWriter, r *http.Request) {
	var req domain.Install
	if err := decodeJSONBody(w, r, &req); err != nil {
		h.error(err, w)
		return
	}

	res, err := h.service.RecordInstall(r.Context(), chi.URLParam(r, "titleID"), req)
	if err != nil {
		h.error(err, w)
		return
	}

	status := http.StatusCreated
	if res.Retention {
		status = http.StatusOK
	}
	if err = encodeJSONResponse(w, status, res); err != nil {
		h.logger.Error().Err(err).Msg("failed to write install response")
	}
}

func (h *Handler) Purchase(w http.ResponseWriter, r *http.Request) {
	var req domain.Purchase
	if err := decodeJSONBody(w, r, &req); err != nil {
		h.error(err, w)
		return
	}

	res, err := h.service.RecordPurchase(r.Context(), chi.URLParam(r, "titleID"), req)
	if err != nil {
		h.error(err, w)
		return
	}

	if err = encodeJSONResponse(w, http.StatusCreated, res); err != nil {
		h.logger.Error().Err(err).Msg("failed to write purchase response")
	}
}
