// Package parent contains the handlers behind the parent dashboard:
// the child overview aggregate and fee payment.
package parent

import (
	"log/slog"
	"net/http"

	"github.com/AP24110011521/SRMS-CCC/internal/http/handlers"
	"github.com/AP24110011521/SRMS-CCC/internal/school"
	"github.com/AP24110011521/SRMS-CCC/internal/utils/response"
)

// Dashboard handles GET /api/parent/{phone}: the linked child's
// profile, marks, attendance with percentage, and payment history in
// one response.
func Dashboard(svc *school.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		phone := r.PathValue("phone")
		slog.Info("getting parent dashboard", slog.String("parentPhone", phone))

		dash, err := svc.ParentDashboard(phone)
		if err != nil {
			handlers.WriteDomainError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK,
			response.OK("", map[string]any{
				"profile":              dash.Profile,
				"marks":                dash.Marks,
				"attendance":           dash.Attendance,
				"attendancePercentage": dash.AttendancePercentage,
				"payments":             dash.Payments,
			}))
	}
}

type payFeeRequest struct {
	StudentID string  `json:"studentId" validate:"required"`
	Amount    float64 `json:"amount" validate:"required,gt=0"`
}

// PayFee handles POST /api/parent/payments. A successful deposit
// reports the new feePaid and the remaining balance floored at zero.
func PayFee(svc *school.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req payFeeRequest
		if !handlers.DecodeValid(w, r, &req) {
			return
		}

		slog.Info("processing payment",
			slog.String("studentId", req.StudentID),
			slog.Float64("amount", req.Amount),
		)

		receipt, err := svc.PayFee(req.StudentID, req.Amount)
		if err != nil {
			handlers.WriteDomainError(w, err)
			return
		}

		slog.Info("payment processed",
			slog.String("studentId", req.StudentID),
			slog.Float64("feePaid", receipt.FeePaid),
		)

		response.WriteJSON(w, http.StatusOK,
			response.OK("Payment processed successfully", map[string]any{
				"feePaid":      receipt.FeePaid,
				"feeRemaining": receipt.FeeRemaining,
			}))
	}
}
