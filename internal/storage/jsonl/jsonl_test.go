package jsonl

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AP24110011521/SRMS-CCC/internal/storage"
	"github.com/AP24110011521/SRMS-CCC/internal/types"
)

func setup(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestReadEmptyCollections(t *testing.T) {
	s := setup(t)

	students, err := s.Students()
	require.NoError(t, err)
	assert.Empty(t, students)

	payments, err := s.Payments()
	require.NoError(t, err)
	assert.Empty(t, payments)
}

func TestAppendPreservesOrder(t *testing.T) {
	s := setup(t)

	for _, id := range []string{"S1", "S2", "S3"} {
		require.NoError(t, s.AppendStudent(types.Student{
			StudentID: id,
			Name:      "Student " + id,
			Password:  "digest",
			FeeStatus: types.FeeStatusPending,
		}))
	}

	students, err := s.Students()
	require.NoError(t, err)
	require.Len(t, students, 3)
	assert.Equal(t, "S1", students[0].StudentID)
	assert.Equal(t, "S2", students[1].StudentID)
	assert.Equal(t, "S3", students[2].StudentID)
}

func TestRewriteRoundTrip(t *testing.T) {
	s := setup(t)

	want := []types.Student{
		{StudentID: "S2", Name: "Bea", Password: "d2", FeeAmount: 1000, FeePaid: 400, FeeStatus: types.FeeStatusPartial},
		{StudentID: "S1", Name: "Ann", Password: "d1", Hostel: "Not Assigned", Club: "None", FeeStatus: types.FeeStatusPending},
	}
	require.NoError(t, s.RewriteStudents(want))

	got, err := s.Students()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRewriteReplacesExistingContent(t *testing.T) {
	s := setup(t)

	require.NoError(t, s.AppendTeacher(types.Teacher{TeacherID: "T1", Name: "Old", Subject: "Math", Password: "d"}))
	require.NoError(t, s.AppendTeacher(types.Teacher{TeacherID: "T2", Name: "Keep", Subject: "Physics", Password: "d"}))

	require.NoError(t, s.RewriteTeachers([]types.Teacher{
		{TeacherID: "T1", Name: "New", Subject: "Math", Password: "d"},
	}))

	teachers, err := s.Teachers()
	require.NoError(t, err)
	require.Len(t, teachers, 1)
	assert.Equal(t, "New", teachers[0].Name)
}

func TestFileIsNewlineTerminatedJSONLines(t *testing.T) {
	s := setup(t)

	require.NoError(t, s.AppendMark(types.MarkEntry{StudentID: "S1", Subject: "Math", Term: "T1", Marks: 88}))
	require.NoError(t, s.AppendMark(types.MarkEntry{StudentID: "S1", Subject: "Math", Term: "T1", Marks: 91}))

	raw, err := os.ReadFile(filepath.Join(s.dir, marksFile))
	require.NoError(t, err)

	content := string(raw)
	assert.True(t, strings.HasSuffix(content, "\n"), "last line must be newline-terminated")
	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		assert.True(t, strings.HasPrefix(line, "{"), "each line is one JSON object")
	}
}

func TestLongRecordRoundTrip(t *testing.T) {
	s := setup(t)

	// A record whose JSON line far exceeds bufio.Scanner's default
	// 64KB token limit must read back exactly as written.
	long := types.Student{
		StudentID: "S1",
		Name:      strings.Repeat("x", 70*1024),
		Password:  "digest",
		FeeStatus: types.FeeStatusPending,
	}
	require.NoError(t, s.RewriteStudents([]types.Student{long}))

	got, err := s.Students()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, long, got[0])

	// Append-path writes the same way; read both back.
	require.NoError(t, s.AppendStudent(types.Student{
		StudentID: "S2", Name: "Short", Password: "digest",
		FeeStatus: types.FeeStatusPending,
	}))
	got, err = s.Students()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "S2", got[1].StudentID)
}

func TestMalformedLineFailsRead(t *testing.T) {
	s := setup(t)

	require.NoError(t, s.AppendAttendance(types.AttendanceRecord{
		Date: "2024-01-10", StudentID: "S1", Status: types.AttendancePresent,
	}))
	f, err := os.OpenFile(filepath.Join(s.dir, attendanceFile), os.O_WRONLY|os.O_APPEND, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString("not json\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	_, err = s.Attendance()
	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrMalformed)
}

func TestBlankLinesAreSkipped(t *testing.T) {
	s := setup(t)

	path := filepath.Join(s.dir, paymentsFile)
	content := `{"studentId":"S1","amount":400,"date":"2024-01-10","timestamp":"2024-01-10T09:30:00Z"}` + "\n\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	payments, err := s.Payments()
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, 400.0, payments[0].Amount)
}
