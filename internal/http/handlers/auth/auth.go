// Package auth contains the login handler.
//
// Handlers follow the closure/factory pattern used throughout this
// codebase: the factory takes the school service once at route
// registration and returns the http.HandlerFunc the router needs.
package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/AP24110011521/SRMS-CCC/internal/http/handlers"
	"github.com/AP24110011521/SRMS-CCC/internal/school"
	"github.com/AP24110011521/SRMS-CCC/internal/utils/response"
)

type loginRequest struct {
	Role     string `json:"role" validate:"required"`
	UserID   string `json:"userId" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login handles POST /api/login.
//
// A failed credential check answers 200 with success:false and the
// generic message, not 401 — the UI treats login failure as a normal
// outcome, and the body never reveals whether the id or the password
// was wrong.
func Login(svc *school.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if !handlers.DecodeValid(w, r, &req) {
			return
		}

		slog.Info("login attempt",
			slog.String("role", req.Role),
			slog.String("userId", req.UserID),
		)

		res, err := svc.Login(req.Role, req.UserID, req.Password)
		if err != nil {
			var verr *school.ValidationError
			if errors.As(err, &verr) {
				response.WriteJSON(w, http.StatusOK, response.Error(err))
				return
			}
			handlers.WriteDomainError(w, err)
			return
		}

		payload := map[string]any{
			"role":   res.Role,
			"userId": res.UserID,
		}
		if res.Name != "" {
			payload["name"] = res.Name
		}
		if res.StudentID != "" {
			payload["studentId"] = res.StudentID
		}
		response.WriteJSON(w, http.StatusOK, response.OK("", payload))
	}
}
