package http

import (
	"encoding/json"
	"mime"
	"net/http"

	"github.com/leshachaplin/eventreporter/internal/apierror"
)

const maxBodyBytes = 1 << 20

func encodeJSONResponse[T any](w http.ResponseWriter, code int, data T) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if code == http.StatusNoContent {
		return nil
	}

	return json.NewEncoder(w).Encode(data)
}

// decodeJSONBody rejects unknown keys so payload shape drift shows up as 400.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) error {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		return apierror.NewAPIError("content type must be application/json", http.StatusUnsupportedMediaType)
	}

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return apierror.NewAPIError("malformed json body", http.StatusBadRequest).WithDetail("reason", err.Error())
	}
	return nil
}
