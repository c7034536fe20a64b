// Package handlers carries the helpers shared by the per-role handler
// packages: request decoding with validation, and the mapping from
// domain error kinds to HTTP status classes.
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/AP24110011521/SRMS-CCC/internal/school"
	"github.com/AP24110011521/SRMS-CCC/internal/utils/response"
)

// DecodeValid decodes the JSON request body into dst and checks its
// validate:"..." tags. On failure it writes the 400 response itself
// and returns false — the caller just returns.
func DecodeValid(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if errors.Is(err, io.EOF) {
		response.WriteJSON(w, http.StatusBadRequest,
			response.Error(errors.New("request body is empty")))
		return false
	}
	if err != nil {
		response.WriteJSON(w, http.StatusBadRequest, response.Error(err))
		return false
	}

	if err := validator.New().Struct(dst); err != nil {
		validateErrs := err.(validator.ValidationErrors)
		response.WriteJSON(w, http.StatusBadRequest,
			response.ValidationError(validateErrs))
		return false
	}
	return true
}

// WriteDomainError maps the three domain error kinds onto HTTP
// statuses: bad input → 400, unknown key → 404, anything else → 500
// with a generic message (the cause goes to the log, not the client).
func WriteDomainError(w http.ResponseWriter, err error) {
	var verr *school.ValidationError
	if errors.As(err, &verr) {
		response.WriteJSON(w, http.StatusBadRequest, response.Error(err))
		return
	}

	var nferr *school.NotFoundError
	if errors.As(err, &nferr) {
		response.WriteJSON(w, http.StatusNotFound, response.Error(err))
		return
	}

	slog.Error("server fault", slog.String("error", err.Error()))
	response.WriteJSON(w, http.StatusInternalServerError,
		response.Error(errors.New("Server error")))
}
