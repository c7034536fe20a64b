// Package student contains the read-only handlers behind the student
// dashboard: own profile, marks, and attendance.
package student

import (
	"log/slog"
	"net/http"

	"github.com/AP24110011521/SRMS-CCC/internal/http/handlers"
	"github.com/AP24110011521/SRMS-CCC/internal/school"
	"github.com/AP24110011521/SRMS-CCC/internal/utils/response"
)

// Profile handles GET /api/student/{id}.
func Profile(svc *school.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("getting student profile", slog.String("studentId", id))

		profile, err := svc.GetStudent(id)
		if err != nil {
			handlers.WriteDomainError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK,
			response.OK("", map[string]any{"profile": profile}))
	}
}

// Marks handles GET /api/student/{id}/marks. Entries come back in the
// order they were recorded; resubmitted marks appear as separate
// entries.
func Marks(svc *school.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		marks, err := svc.Marks(id)
		if err != nil {
			handlers.WriteDomainError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK,
			response.OK("", map[string]any{"marks": marks}))
	}
}

// Attendance handles GET /api/student/{id}/attendance, returning the
// raw records plus the present/total percentage (two decimals, 0 when
// there are no records).
func Attendance(svc *school.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		records, pct, err := svc.Attendance(id)
		if err != nil {
			handlers.WriteDomainError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK,
			response.OK("", map[string]any{
				"attendance": records,
				"percentage": pct,
			}))
	}
}
