package parent

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
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

	svc := school.NewService(store, "admin", "admin123")
	require.NoError(t, svc.AddStudent(school.AddStudentInput{
		StudentID: "S1", Name: "Ann", DOB: "2006-07-12", Year: "2",
		Branch: "CSE", Section: "A", Password: "secret",
		ParentPhone: "9000000001", FeeAmount: 1000,
	}))
	return svc
}

func postPayment(t *testing.T, svc *school.Service, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/parent/payments", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	PayFee(svc)(rec, req)

	var out map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return rec, out
}

func TestPayFee(t *testing.T) {
	svc := setup(t)

	rec, out := postPayment(t, svc, map[string]any{"studentId": "S1", "amount": 400})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, out["success"])
	assert.Equal(t, 400.0, out["feePaid"])
	assert.Equal(t, 600.0, out["feeRemaining"])
}

func TestPayFeeInvalidAmount(t *testing.T) {
	svc := setup(t)

	rec, out := postPayment(t, svc, map[string]any{"studentId": "S1", "amount": -10})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, out["success"])
}

func TestPayFeeUnknownStudent(t *testing.T) {
	svc := setup(t)

	rec, out := postPayment(t, svc, map[string]any{"studentId": "ghost", "amount": 100})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, false, out["success"])
	assert.Equal(t, "Student not found", out["message"])
}

func TestDashboard(t *testing.T) {
	svc := setup(t)
	require.NoError(t, svc.MarkAttendance("2024-01-10", "S1", "present"))
	_, err := svc.PayFee("S1", 400)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/parent/9000000001", nil)
	req.SetPathValue("phone", "9000000001")
	rec := httptest.NewRecorder()
	Dashboard(svc)(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var out map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	assert.Equal(t, true, out["success"])
	assert.Equal(t, 100.0, out["attendancePercentage"])

	profile := out["profile"].(map[string]any)
	assert.Equal(t, "S1", profile["studentId"])
	assert.NotContains(t, profile, "password")

	payments := out["payments"].([]any)
	assert.Len(t, payments, 1)
}

func TestDashboardUnknownPhone(t *testing.T) {
	svc := setup(t)

	req := httptest.NewRequest(http.MethodGet, "/api/parent/0000000000", nil)
	req.SetPathValue("phone", "0000000000")
	rec := httptest.NewRecorder()
	Dashboard(svc)(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
