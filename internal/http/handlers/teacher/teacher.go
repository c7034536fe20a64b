// Package teacher contains the handlers behind the teacher dashboard:
// class listings, attendance marking, and marks entry.
package teacher

import (
	"log/slog"
	"net/http"

	"github.com/AP24110011521/SRMS-CCC/internal/http/handlers"
	"github.com/AP24110011521/SRMS-CCC/internal/school"
	"github.com/AP24110011521/SRMS-CCC/internal/utils/response"
)

// Students handles GET /api/teacher/students?year=&branch=&section=.
// Each provided query parameter narrows the listing by exact match.
func Students(svc *school.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		students, err := svc.StudentsByClass(
			q.Get("year"), q.Get("branch"), q.Get("section"))
		if err != nil {
			handlers.WriteDomainError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK,
			response.OK("", map[string]any{"students": students}))
	}
}

type markAttendanceRequest struct {
	Date      string `json:"date" validate:"required"`
	StudentID string `json:"studentId" validate:"required"`
	Status    string `json:"status" validate:"required,oneof=present absent"`
}

// MarkAttendance handles POST /api/teacher/attendance. One call
// appends one record; marking a whole class means one call per
// (student, date) pair, and nothing deduplicates repeats.
func MarkAttendance(svc *school.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req markAttendanceRequest
		if !handlers.DecodeValid(w, r, &req) {
			return
		}

		slog.Info("marking attendance",
			slog.String("studentId", req.StudentID),
			slog.String("date", req.Date),
			slog.String("status", req.Status),
		)

		if err := svc.MarkAttendance(req.Date, req.StudentID, req.Status); err != nil {
			handlers.WriteDomainError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK,
			response.OK("Attendance marked", nil))
	}
}

// addMarksRequest uses *float64 for marks so an absent field fails
// required validation while an explicit 0 passes.
type addMarksRequest struct {
	StudentID string   `json:"studentId" validate:"required"`
	Subject   string   `json:"subject" validate:"required"`
	Term      string   `json:"term" validate:"required"`
	Marks     *float64 `json:"marks" validate:"required"`
}

// AddMarks handles POST /api/teacher/marks.
func AddMarks(svc *school.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addMarksRequest
		if !handlers.DecodeValid(w, r, &req) {
			return
		}

		slog.Info("adding marks",
			slog.String("studentId", req.StudentID),
			slog.String("subject", req.Subject),
			slog.String("term", req.Term),
		)

		if err := svc.AddMark(req.StudentID, req.Subject, req.Term, *req.Marks); err != nil {
			handlers.WriteDomainError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK,
			response.OK("Marks added successfully", nil))
	}
}
