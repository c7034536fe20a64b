package admin

import (
	"log/slog"
	"net/http"

	"github.com/AP24110011521/SRMS-CCC/internal/http/handlers"
	"github.com/AP24110011521/SRMS-CCC/internal/school"
	"github.com/AP24110011521/SRMS-CCC/internal/utils/response"
)

type setFeeStatusRequest struct {
	FeeStatus string `json:"feeStatus" validate:"required,oneof=pending partial paid"`
}

// SetFeeStatus handles PUT /api/admin/students/{id}/fee-status — the
// explicit override that sets the status without re-deriving it from
// feePaid vs feeAmount.
func SetFeeStatus(svc *school.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		var req setFeeStatusRequest
		if !handlers.DecodeValid(w, r, &req) {
			return
		}

		slog.Info("overriding fee status",
			slog.String("studentId", id),
			slog.String("feeStatus", req.FeeStatus),
		)

		if err := svc.SetFeeStatus(id, req.FeeStatus); err != nil {
			handlers.WriteDomainError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK,
			response.OK("Fee status updated", nil))
	}
}
