package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AP24110011521/SRMS-CCC/internal/types"
)

func setup(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "srms.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// The sqlite backend must honour the same contract as the flat files:
// read order is append order, and a rewrite replaces content exactly.
func TestRewriteRoundTrip(t *testing.T) {
	s := setup(t)

	want := []types.Student{
		{StudentID: "S2", Name: "Bea", DOB: "2006-03-01", Year: "2", Branch: "CSE",
			Section: "A", Password: "d2", ParentPhone: "111", Hostel: "H1",
			Club: "Chess", FeeAmount: 1000, FeePaid: 400, FeeStatus: types.FeeStatusPartial},
		{StudentID: "S1", Name: "Ann", DOB: "2006-07-12", Year: "1", Branch: "ECE",
			Section: "B", Password: "d1", ParentPhone: "222", Hostel: "Not Assigned",
			Club: "None", FeeStatus: types.FeeStatusPending},
	}
	require.NoError(t, s.RewriteStudents(want))

	got, err := s.Students()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestAppendPreservesOrder(t *testing.T) {
	s := setup(t)

	require.NoError(t, s.AppendPayment(types.Payment{StudentID: "S1", Amount: 400, Date: "2024-01-10", Timestamp: "2024-01-10T09:30:00Z"}))
	require.NoError(t, s.AppendPayment(types.Payment{StudentID: "S1", Amount: 600, Date: "2024-02-10", Timestamp: "2024-02-10T09:30:00Z"}))

	payments, err := s.Payments()
	require.NoError(t, err)
	require.Len(t, payments, 2)
	assert.Equal(t, 400.0, payments[0].Amount)
	assert.Equal(t, 600.0, payments[1].Amount)
}

func TestEmptyCollectionsReadEmpty(t *testing.T) {
	s := setup(t)

	parents, err := s.Parents()
	require.NoError(t, err)
	assert.Empty(t, parents)

	marks, err := s.Marks()
	require.NoError(t, err)
	assert.Empty(t, marks)
}
