package admin

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AP24110011521/SRMS-CCC/internal/school"
	"github.com/AP24110011521/SRMS-CCC/internal/storage/jsonl"
)

func setup(t *testing.T) *school.Service {
	t.Helper()
	store, err := jsonl.New(t.TempDir())
	require.NoError(t, err)
	return school.NewService(store, "admin", "admin123")
}

func doJSON(t *testing.T, h http.HandlerFunc, method, path string, body any, pathValues map[string]string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range pathValues {
		req.SetPathValue(k, v)
	}
	rec := httptest.NewRecorder()
	h(rec, req)

	var out map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return rec, out
}

func validStudent() map[string]any {
	return map[string]any{
		"studentId": "S1", "name": "Ann", "dob": "2006-07-12",
		"year": "2", "branch": "CSE", "section": "A",
		"password": "secret", "parentPhone": "9000000001", "feeAmount": 1000,
	}
}

func TestAddStudent(t *testing.T) {
	svc := setup(t)

	rec, out := doJSON(t, AddStudent(svc), http.MethodPost, "/api/admin/students", validStudent(), nil)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, true, out["success"])
	assert.Equal(t, "Student added successfully", out["message"])
}

func TestAddStudentDuplicate(t *testing.T) {
	svc := setup(t)

	rec, _ := doJSON(t, AddStudent(svc), http.MethodPost, "/api/admin/students", validStudent(), nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, out := doJSON(t, AddStudent(svc), http.MethodPost, "/api/admin/students", validStudent(), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, out["success"])
	assert.Equal(t, "Student ID already exists", out["message"])
}

func TestAddStudentValidation(t *testing.T) {
	svc := setup(t)

	body := validStudent()
	delete(body, "dob")
	rec, out := doJSON(t, AddStudent(svc), http.MethodPost, "/api/admin/students", body, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, out["success"])
	assert.Contains(t, out["message"], "DOB")
}

func TestEditStudent(t *testing.T) {
	svc := setup(t)
	doJSON(t, AddStudent(svc), http.MethodPost, "/api/admin/students", validStudent(), nil)

	rec, out := doJSON(t, EditStudent(svc), http.MethodPut, "/api/admin/students/S1",
		map[string]any{"name": "Renamed", "hostel": "Block C"},
		map[string]string{"id": "S1"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, out["success"])

	st := out["student"].(map[string]any)
	assert.Equal(t, "Renamed", st["name"])
	assert.Equal(t, "Block C", st["hostel"])
	assert.Equal(t, "2006-07-12", st["dob"])
	assert.NotContains(t, st, "password")
}

func TestEditStudentNotFound(t *testing.T) {
	svc := setup(t)

	rec, _ := doJSON(t, EditStudent(svc), http.MethodPut, "/api/admin/students/ghost",
		map[string]any{"name": "X"}, map[string]string{"id": "ghost"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSetFeeStatus(t *testing.T) {
	svc := setup(t)
	doJSON(t, AddStudent(svc), http.MethodPost, "/api/admin/students", validStudent(), nil)

	rec, out := doJSON(t, SetFeeStatus(svc), http.MethodPut, "/api/admin/students/S1/fee-status",
		map[string]any{"feeStatus": "paid"}, map[string]string{"id": "S1"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, out["success"])

	// An illegal status never reaches the service.
	rec, _ = doJSON(t, SetFeeStatus(svc), http.MethodPut, "/api/admin/students/S1/fee-status",
		map[string]any{"feeStatus": "refunded"}, map[string]string{"id": "S1"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListStudentsStorageFaultIs500(t *testing.T) {
	dir := t.TempDir()
	store, err := jsonl.New(dir)
	require.NoError(t, err)
	svc := school.NewService(store, "admin", "admin123")

	// A corrupted collection surfaces as a generic server fault; the
	// cause stays out of the response body.
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "students.txt"), []byte("not json\n"), 0o644))

	rec, out := doJSON(t, ListStudents(svc), http.MethodGet, "/api/admin/students", nil, nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, false, out["success"])
	assert.Equal(t, "Server error", out["message"])
}

func TestListTeachersSanitized(t *testing.T) {
	svc := setup(t)
	rec, _ := doJSON(t, AddTeacher(svc), http.MethodPost, "/api/admin/teachers",
		map[string]any{"teacherId": "T1", "name": "Mr. Rao", "subject": "Math", "password": "chalk"}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec2, out := doJSON(t, ListTeachers(svc), http.MethodGet, "/api/admin/teachers", nil, nil)
	assert.Equal(t, http.StatusOK, rec2.Code)

	teachers := out["teachers"].([]any)
	require.Len(t, teachers, 1)
	assert.NotContains(t, teachers[0].(map[string]any), "password")
}
