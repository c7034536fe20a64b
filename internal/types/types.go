// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles —
// handlers, storage, and the school service can all import types
// without depending on each other.
//
// The json:"..." tags double as the persisted schema: records are
// stored as one JSON object per line, so the tag names here are
// exactly the keys that appear in the data files.
package types

// Fee status values derived from feePaid vs feeAmount.
const (
	FeeStatusPending = "pending"
	FeeStatusPartial = "partial"
	FeeStatusPaid    = "paid"
)

// Attendance status values.
const (
	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
)

// Student is one record in the students collection.
//
// Password carries the sha256 hex digest of the student's password —
// never the plaintext. The omitempty tag lets Sanitized() copies
// (Password cleared) encode without the field, so digests never leak
// into API responses.
type Student struct {
	StudentID   string  `json:"studentId"`
	Name        string  `json:"name"`
	DOB         string  `json:"dob"`
	Year        string  `json:"year"`
	Branch      string  `json:"branch"`
	Section     string  `json:"section"`
	Password    string  `json:"password,omitempty"`
	ParentPhone string  `json:"parentPhone"`
	Hostel      string  `json:"hostel"`
	Club        string  `json:"club"`
	FeeAmount   float64 `json:"feeAmount"`
	FeePaid     float64 `json:"feePaid"`
	FeeStatus   string  `json:"feeStatus"`
}

// RefreshFeeStatus recomputes the derived FeeStatus field:
// paid iff FeePaid >= FeeAmount > 0, else partial iff FeePaid > 0,
// else pending. A zero FeeAmount therefore never reads as paid.
func (s *Student) RefreshFeeStatus() {
	switch {
	case s.FeePaid >= s.FeeAmount && s.FeeAmount > 0:
		s.FeeStatus = FeeStatusPaid
	case s.FeePaid > 0:
		s.FeeStatus = FeeStatusPartial
	default:
		s.FeeStatus = FeeStatusPending
	}
}

// Sanitized returns a copy safe to send to clients: the password
// digest is cleared (and omitted from JSON via omitempty).
func (s Student) Sanitized() Student {
	s.Password = ""
	return s
}

// Teacher is one record in the teachers collection.
type Teacher struct {
	TeacherID string `json:"teacherId"`
	Name      string `json:"name"`
	Subject   string `json:"subject"`
	Password  string `json:"password,omitempty"`
}

// Sanitized returns a copy with the password digest cleared.
func (t Teacher) Sanitized() Teacher {
	t.Password = ""
	return t
}

// Parent links a phone number to exactly one student (single-child
// model). The password digest is initialised equal to the student's
// at creation time.
type Parent struct {
	ParentPhone string `json:"parentPhone"`
	StudentID   string `json:"studentId"`
	Password    string `json:"password,omitempty"`
}

// AttendanceRecord is one append-only attendance entry. There is no
// uniqueness constraint on (date, studentId): duplicates are possible
// and every entry counts toward the percentage.
type AttendanceRecord struct {
	Date      string `json:"date"`
	StudentID string `json:"studentId"`
	Status    string `json:"status"`
}

// MarkEntry is one append-only marks entry. Re-submitting marks for
// the same (studentId, subject, term) appends a new entry rather than
// replacing the old one.
type MarkEntry struct {
	StudentID string  `json:"studentId"`
	Subject   string  `json:"subject"`
	Term      string  `json:"term"`
	Marks     float64 `json:"marks"`
}

// Payment is one entry in the append-only payment ledger; entries are
// never mutated or deleted.
type Payment struct {
	StudentID string  `json:"studentId"`
	Amount    float64 `json:"amount"`
	Date      string  `json:"date"`      // calendar date, YYYY-MM-DD
	Timestamp string  `json:"timestamp"` // exact instant, RFC 3339
}
