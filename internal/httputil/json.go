package httputil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/GiorgiUbiria/skill_swap/internal/apperr"
	"github.com/GiorgiUbiria/skill_swap/internal/logger"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

const genericErrorMessage = "Something went wrong, try again later"

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Detail  string `json:"detail,omitempty"`
}

func WriteJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("failed to encode response", zap.Error(err))
	}
}

func WriteError(w http.ResponseWriter, code int, msg string) {
	WriteJSON(w, code, ErrorResponse{Message: msg, Status: code})
}

// WriteErr renders err according to its apperr kind. Unclassified errors
// are logged and reported as 500; their text is only exposed when
// development is set.
func WriteErr(w http.ResponseWriter, err error, development bool) {
	var ae *apperr.Error
	if errors.As(err, &ae) && ae.Kind != apperr.KindInternal {
		WriteError(w, ae.Kind.StatusCode(), ae.Message)
		return
	}

	logger.Log.Error("request failed", zap.Error(err))
	resp := ErrorResponse{Message: genericErrorMessage, Status: http.StatusInternalServerError}
	if development {
		resp.Detail = err.Error()
	}
	WriteJSON(w, http.StatusInternalServerError, resp)
}

// DecodeJSON reads a JSON body into dst. An empty body leaves dst untouched.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return apperr.Wrap(apperr.KindValidation, "invalid request body", err)
	}
	return nil
}
