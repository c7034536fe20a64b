// Package admin contains the handlers behind the admin dashboard:
// student and teacher administration plus the fee-status override.
package admin

import (
	"log/slog"
	"net/http"

	"github.com/AP24110011521/SRMS-CCC/internal/http/handlers"
	"github.com/AP24110011521/SRMS-CCC/internal/school"
	"github.com/AP24110011521/SRMS-CCC/internal/utils/response"
)

type addStudentRequest struct {
	StudentID   string  `json:"studentId" validate:"required"`
	Name        string  `json:"name" validate:"required"`
	DOB         string  `json:"dob" validate:"required"`
	Year        string  `json:"year" validate:"required"`
	Branch      string  `json:"branch" validate:"required"`
	Section     string  `json:"section" validate:"required"`
	Password    string  `json:"password" validate:"required"`
	ParentPhone string  `json:"parentPhone" validate:"required"`
	Hostel      string  `json:"hostel"`
	Club        string  `json:"club"`
	FeeAmount   float64 `json:"feeAmount" validate:"gte=0"`
}

// AddStudent handles POST /api/admin/students.
func AddStudent(svc *school.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addStudentRequest
		if !handlers.DecodeValid(w, r, &req) {
			return
		}

		slog.Info("adding student", slog.String("studentId", req.StudentID))

		err := svc.AddStudent(school.AddStudentInput{
			StudentID:   req.StudentID,
			Name:        req.Name,
			DOB:         req.DOB,
			Year:        req.Year,
			Branch:      req.Branch,
			Section:     req.Section,
			Password:    req.Password,
			ParentPhone: req.ParentPhone,
			Hostel:      req.Hostel,
			Club:        req.Club,
			FeeAmount:   req.FeeAmount,
		})
		if err != nil {
			handlers.WriteDomainError(w, err)
			return
		}

		slog.Info("student added", slog.String("studentId", req.StudentID))
		response.WriteJSON(w, http.StatusCreated,
			response.OK("Student added successfully", nil))
	}
}

// editStudentRequest is a partial update: absent string fields keep
// the stored value; hostel, club, and feeAmount distinguish absent
// (nil) from explicitly provided via pointers.
type editStudentRequest struct {
	Name        string   `json:"name"`
	DOB         string   `json:"dob"`
	Year        string   `json:"year"`
	Branch      string   `json:"branch"`
	Section     string   `json:"section"`
	ParentPhone string   `json:"parentPhone"`
	Hostel      *string  `json:"hostel"`
	Club        *string  `json:"club"`
	FeeAmount   *float64 `json:"feeAmount"`
}

// EditStudent handles PUT /api/admin/students/{id}.
func EditStudent(svc *school.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("updating student", slog.String("studentId", id))

		var req editStudentRequest
		if !handlers.DecodeValid(w, r, &req) {
			return
		}

		updated, err := svc.EditStudent(id, school.EditStudentInput{
			Name:        req.Name,
			DOB:         req.DOB,
			Year:        req.Year,
			Branch:      req.Branch,
			Section:     req.Section,
			ParentPhone: req.ParentPhone,
			Hostel:      req.Hostel,
			Club:        req.Club,
			FeeAmount:   req.FeeAmount,
		})
		if err != nil {
			handlers.WriteDomainError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK,
			response.OK("Student updated successfully", map[string]any{
				"student": updated,
			}))
	}
}

// ListStudents handles GET /api/admin/students. Password digests are
// stripped by the service before anything reaches the wire.
func ListStudents(svc *school.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		students, err := svc.ListStudents()
		if err != nil {
			handlers.WriteDomainError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK,
			response.OK("", map[string]any{"students": students}))
	}
}
