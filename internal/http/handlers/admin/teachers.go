package admin

import (
	"log/slog"
	"net/http"

	"github.com/AP24110011521/SRMS-CCC/internal/http/handlers"
	"github.com/AP24110011521/SRMS-CCC/internal/school"
	"github.com/AP24110011521/SRMS-CCC/internal/utils/response"
)

type addTeacherRequest struct {
	TeacherID string `json:"teacherId" validate:"required"`
	Name      string `json:"name" validate:"required"`
	Subject   string `json:"subject" validate:"required"`
	Password  string `json:"password" validate:"required"`
}

// AddTeacher handles POST /api/admin/teachers.
func AddTeacher(svc *school.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addTeacherRequest
		if !handlers.DecodeValid(w, r, &req) {
			return
		}

		slog.Info("adding teacher", slog.String("teacherId", req.TeacherID))

		err := svc.AddTeacher(school.AddTeacherInput{
			TeacherID: req.TeacherID,
			Name:      req.Name,
			Subject:   req.Subject,
			Password:  req.Password,
		})
		if err != nil {
			handlers.WriteDomainError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusCreated,
			response.OK("Teacher added successfully", nil))
	}
}

type editTeacherRequest struct {
	Name    string `json:"name"`
	Subject string `json:"subject"`
}

// EditTeacher handles PUT /api/admin/teachers/{id}.
func EditTeacher(svc *school.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("updating teacher", slog.String("teacherId", id))

		var req editTeacherRequest
		if !handlers.DecodeValid(w, r, &req) {
			return
		}

		updated, err := svc.EditTeacher(id, school.EditTeacherInput{
			Name:    req.Name,
			Subject: req.Subject,
		})
		if err != nil {
			handlers.WriteDomainError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK,
			response.OK("Teacher updated successfully", map[string]any{
				"teacher": updated,
			}))
	}
}

// ListTeachers handles GET /api/admin/teachers.
func ListTeachers(svc *school.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teachers, err := svc.ListTeachers()
		if err != nil {
			handlers.WriteDomainError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK,
			response.OK("", map[string]any{"teachers": teachers}))
	}
}
