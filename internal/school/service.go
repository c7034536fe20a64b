// Package school implements the domain operations over the record
// store: login verification, student/teacher administration,
// attendance marking, marks entry, and the fee-payment ledger.
//
// The service holds no state between calls — every operation re-reads
// the collections it needs from storage and, when mutating an existing
// record, rewrites the whole collection. There is no locking: two
// concurrent mutations of the same collection both read the
// pre-mutation content and the last rewrite wins. That lost-update
// hazard is the documented behaviour for this system's
// single-admin-at-a-time scale.
package school

import (
	"math"
	"time"

	"github.com/AP24110011521/SRMS-CCC/internal/storage"
	"github.com/AP24110011521/SRMS-CCC/internal/types"
	"github.com/AP24110011521/SRMS-CCC/internal/utils/hash"
)

// Roles accepted by Login.
const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
	RoleStudent = "student"
	RoleParent  = "parent"
)

// invalidCredentials is the single message returned for every login
// failure. Unknown id and wrong password are deliberately
// indistinguishable at the boundary.
const invalidCredentials = "Invalid credentials"

// Service implements the domain operations over a storage.Storage.
type Service struct {
	store storage.Storage

	// The fixed admin credential pair, digested at construction.
	// Admin is not a record in any collection.
	adminID     string
	adminDigest string

	// now is the clock used to stamp payments; overridable in tests.
	now func() time.Time
}

// NewService returns a Service using the given store and the fixed
// admin credential pair from configuration.
func NewService(store storage.Storage, adminID, adminPassword string) *Service {
	return &Service{
		store:       store,
		adminID:     adminID,
		adminDigest: hash.Password(adminPassword),
		now:         time.Now,
	}
}

// ── Authentication ───────────────────────────────────────────────────

// AuthResult is the minimal profile returned on a successful login.
type AuthResult struct {
	Role      string `json:"role"`
	UserID    string `json:"userId"`
	Name      string `json:"name,omitempty"`
	StudentID string `json:"studentId,omitempty"` // parent logins: the linked child
}

// Login verifies a credential pair for the given role by hash
// equality. Any mismatch — unknown role, unknown id, or wrong
// password — fails with the same generic ValidationError.
func (s *Service) Login(role, userID, password string) (AuthResult, error) {
	digest := hash.Password(password)

	switch role {
	case RoleAdmin:
		if userID == s.adminID && digest == s.adminDigest {
			return AuthResult{Role: RoleAdmin, UserID: userID}, nil
		}

	case RoleTeacher:
		teachers, err := s.store.Teachers()
		if err != nil {
			return AuthResult{}, storageErr(err)
		}
		for _, t := range teachers {
			if t.TeacherID == userID && t.Password == digest {
				return AuthResult{Role: RoleTeacher, UserID: t.TeacherID, Name: t.Name}, nil
			}
		}

	case RoleStudent:
		students, err := s.store.Students()
		if err != nil {
			return AuthResult{}, storageErr(err)
		}
		for _, st := range students {
			if st.StudentID == userID && st.Password == digest {
				return AuthResult{Role: RoleStudent, UserID: st.StudentID, Name: st.Name}, nil
			}
		}

	case RoleParent:
		parents, err := s.store.Parents()
		if err != nil {
			return AuthResult{}, storageErr(err)
		}
		for _, p := range parents {
			if p.ParentPhone == userID && p.Password == digest {
				return AuthResult{Role: RoleParent, UserID: p.ParentPhone, StudentID: p.StudentID}, nil
			}
		}
	}

	return AuthResult{}, validationErr(invalidCredentials)
}

// ── Student administration ───────────────────────────────────────────

// AddStudentInput carries the fields for student creation. Hostel,
// Club, and FeeAmount are optional and default on the record.
type AddStudentInput struct {
	StudentID   string
	Name        string
	DOB         string
	Year        string
	Branch      string
	Section     string
	Password    string
	ParentPhone string
	Hostel      string
	Club        string
	FeeAmount   float64
}

// AddStudent validates the input, rejects duplicate ids, and appends
// the new student. As a side effect it creates a parent account for
// ParentPhone — seeded with the student's password digest — unless one
// already exists for that phone. A second student under a shared phone
// therefore silently gets no parent record of its own: the first
// student's parent link wins.
func (s *Service) AddStudent(in AddStudentInput) error {
	if in.Name == "" || in.DOB == "" || in.Year == "" || in.Branch == "" ||
		in.Section == "" || in.StudentID == "" || in.Password == "" || in.ParentPhone == "" {
		return validationErr("All fields are required")
	}
	if in.FeeAmount < 0 {
		return validationErr("Fee amount must not be negative")
	}

	students, err := s.store.Students()
	if err != nil {
		return storageErr(err)
	}
	for _, st := range students {
		if st.StudentID == in.StudentID {
			return validationErr("Student ID already exists")
		}
	}

	digest := hash.Password(in.Password)
	student := types.Student{
		StudentID:   in.StudentID,
		Name:        in.Name,
		DOB:         in.DOB,
		Year:        in.Year,
		Branch:      in.Branch,
		Section:     in.Section,
		Password:    digest,
		ParentPhone: in.ParentPhone,
		Hostel:      in.Hostel,
		Club:        in.Club,
		FeeAmount:   in.FeeAmount,
		FeePaid:     0,
		FeeStatus:   types.FeeStatusPending,
	}
	if student.Hostel == "" {
		student.Hostel = "Not Assigned"
	}
	if student.Club == "" {
		student.Club = "None"
	}

	if err := s.store.AppendStudent(student); err != nil {
		return storageErr(err)
	}

	// No rollback if this second write fails: the student exists
	// without a parent account. Accepted partial-failure window.
	parents, err := s.store.Parents()
	if err != nil {
		return storageErr(err)
	}
	for _, p := range parents {
		if p.ParentPhone == in.ParentPhone {
			return nil
		}
	}
	if err := s.store.AppendParent(types.Parent{
		ParentPhone: in.ParentPhone,
		StudentID:   in.StudentID,
		Password:    digest,
	}); err != nil {
		return storageErr(err)
	}
	return nil
}

// EditStudentInput carries a partial update. String fields left empty
// keep the existing value; Hostel, Club, and FeeAmount are pointers so
// an explicitly provided value — including "" or 0 — overwrites, while
// nil keeps the old one. Password and FeePaid are never editable here.
type EditStudentInput struct {
	Name        string
	DOB         string
	Year        string
	Branch      string
	Section     string
	ParentPhone string
	Hostel      *string
	Club        *string
	FeeAmount   *float64
}

// EditStudent merges the provided fields over the existing record,
// recomputes the derived fee status against the unchanged FeePaid,
// and rewrites the students collection.
func (s *Service) EditStudent(studentID string, in EditStudentInput) (types.Student, error) {
	students, err := s.store.Students()
	if err != nil {
		return types.Student{}, storageErr(err)
	}

	idx := -1
	for i, st := range students {
		if st.StudentID == studentID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return types.Student{}, notFoundErr("Student not found")
	}

	st := &students[idx]
	if in.Name != "" {
		st.Name = in.Name
	}
	if in.DOB != "" {
		st.DOB = in.DOB
	}
	if in.Year != "" {
		st.Year = in.Year
	}
	if in.Branch != "" {
		st.Branch = in.Branch
	}
	if in.Section != "" {
		st.Section = in.Section
	}
	if in.ParentPhone != "" {
		st.ParentPhone = in.ParentPhone
	}
	if in.Hostel != nil {
		st.Hostel = *in.Hostel
	}
	if in.Club != nil {
		st.Club = *in.Club
	}
	if in.FeeAmount != nil {
		if *in.FeeAmount < 0 {
			return types.Student{}, validationErr("Fee amount must not be negative")
		}
		st.FeeAmount = *in.FeeAmount
	}
	st.RefreshFeeStatus()

	if err := s.store.RewriteStudents(students); err != nil {
		return types.Student{}, storageErr(err)
	}
	return st.Sanitized(), nil
}

// ListStudents returns every student with password digests stripped.
func (s *Service) ListStudents() ([]types.Student, error) {
	students, err := s.store.Students()
	if err != nil {
		return nil, storageErr(err)
	}
	out := make([]types.Student, 0, len(students))
	for _, st := range students {
		out = append(out, st.Sanitized())
	}
	return out, nil
}

// StudentsByClass returns students matching the non-empty filters,
// passwords stripped, in stored order.
func (s *Service) StudentsByClass(year, branch, section string) ([]types.Student, error) {
	students, err := s.store.Students()
	if err != nil {
		return nil, storageErr(err)
	}
	out := make([]types.Student, 0)
	for _, st := range students {
		if year != "" && st.Year != year {
			continue
		}
		if branch != "" && st.Branch != branch {
			continue
		}
		if section != "" && st.Section != section {
			continue
		}
		out = append(out, st.Sanitized())
	}
	return out, nil
}

// GetStudent returns one sanitized student profile.
func (s *Service) GetStudent(studentID string) (types.Student, error) {
	students, err := s.store.Students()
	if err != nil {
		return types.Student{}, storageErr(err)
	}
	for _, st := range students {
		if st.StudentID == studentID {
			return st.Sanitized(), nil
		}
	}
	return types.Student{}, notFoundErr("Student not found")
}

// ── Teacher administration ───────────────────────────────────────────

// AddTeacherInput carries the fields for teacher creation.
type AddTeacherInput struct {
	TeacherID string
	Name      string
	Subject   string
	Password  string
}

// AddTeacher validates the input, rejects duplicate ids, and appends
// the new teacher. No derived records, no fee logic.
func (s *Service) AddTeacher(in AddTeacherInput) error {
	if in.Name == "" || in.Subject == "" || in.TeacherID == "" || in.Password == "" {
		return validationErr("All fields are required")
	}

	teachers, err := s.store.Teachers()
	if err != nil {
		return storageErr(err)
	}
	for _, t := range teachers {
		if t.TeacherID == in.TeacherID {
			return validationErr("Teacher ID already exists")
		}
	}

	if err := s.store.AppendTeacher(types.Teacher{
		TeacherID: in.TeacherID,
		Name:      in.Name,
		Subject:   in.Subject,
		Password:  hash.Password(in.Password),
	}); err != nil {
		return storageErr(err)
	}
	return nil
}

// EditTeacherInput carries a partial update; empty fields keep the
// existing value. Password is never editable here.
type EditTeacherInput struct {
	Name    string
	Subject string
}

// EditTeacher merges the provided fields and rewrites the collection.
func (s *Service) EditTeacher(teacherID string, in EditTeacherInput) (types.Teacher, error) {
	teachers, err := s.store.Teachers()
	if err != nil {
		return types.Teacher{}, storageErr(err)
	}

	idx := -1
	for i, t := range teachers {
		if t.TeacherID == teacherID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return types.Teacher{}, notFoundErr("Teacher not found")
	}

	t := &teachers[idx]
	if in.Name != "" {
		t.Name = in.Name
	}
	if in.Subject != "" {
		t.Subject = in.Subject
	}

	if err := s.store.RewriteTeachers(teachers); err != nil {
		return types.Teacher{}, storageErr(err)
	}
	return t.Sanitized(), nil
}

// ListTeachers returns every teacher with password digests stripped.
func (s *Service) ListTeachers() ([]types.Teacher, error) {
	teachers, err := s.store.Teachers()
	if err != nil {
		return nil, storageErr(err)
	}
	out := make([]types.Teacher, 0, len(teachers))
	for _, t := range teachers {
		out = append(out, t.Sanitized())
	}
	return out, nil
}

// ── Attendance ───────────────────────────────────────────────────────

// MarkAttendance appends one attendance record. No deduplication:
// marking the same student twice for the same date produces two
// records and both count toward the percentage. Callers marking a
// class invoke this once per (student, date) pair.
func (s *Service) MarkAttendance(date, studentID, status string) error {
	if date == "" || studentID == "" || status == "" {
		return validationErr("All fields are required")
	}
	if status != types.AttendancePresent && status != types.AttendanceAbsent {
		return validationErr("Status must be present or absent")
	}

	if err := s.store.AppendAttendance(types.AttendanceRecord{
		Date:      date,
		StudentID: studentID,
		Status:    status,
	}); err != nil {
		return storageErr(err)
	}
	return nil
}

// Attendance returns a student's records in original order plus the
// present/total percentage rounded to two decimal places, 0 when the
// student has no records.
func (s *Service) Attendance(studentID string) ([]types.AttendanceRecord, float64, error) {
	all, err := s.store.Attendance()
	if err != nil {
		return nil, 0, storageErr(err)
	}

	records := make([]types.AttendanceRecord, 0)
	present := 0
	for _, a := range all {
		if a.StudentID != studentID {
			continue
		}
		records = append(records, a)
		if a.Status == types.AttendancePresent {
			present++
		}
	}

	var pct float64
	if len(records) > 0 {
		pct = math.Round(float64(present)/float64(len(records))*100*100) / 100
	}
	return records, pct, nil
}

// ── Marks ────────────────────────────────────────────────────────────

// AddMark appends one marks entry. An existing entry for the same
// (studentId, subject, term) is never overwritten — re-submission
// appends alongside it.
func (s *Service) AddMark(studentID, subject, term string, marks float64) error {
	if studentID == "" || subject == "" || term == "" {
		return validationErr("All fields are required")
	}

	if err := s.store.AppendMark(types.MarkEntry{
		StudentID: studentID,
		Subject:   subject,
		Term:      term,
		Marks:     marks,
	}); err != nil {
		return storageErr(err)
	}
	return nil
}

// Marks returns a student's entries in original order.
func (s *Service) Marks(studentID string) ([]types.MarkEntry, error) {
	all, err := s.store.Marks()
	if err != nil {
		return nil, storageErr(err)
	}
	entries := make([]types.MarkEntry, 0)
	for _, m := range all {
		if m.StudentID == studentID {
			entries = append(entries, m)
		}
	}
	return entries, nil
}

// ── Fee ledger ───────────────────────────────────────────────────────

// PaymentReceipt is returned to the payer after a successful payment.
type PaymentReceipt struct {
	FeePaid      float64 `json:"feePaid"`
	FeeRemaining float64 `json:"feeRemaining"`
}

// PayFee records a fee deposit: feePaid grows by amount (never capped
// — overpayment is persisted as-is), the derived status is recomputed,
// the students collection is rewritten, and a Payment is appended with
// the paid date and exact instant. The reported remaining balance is
// floored at zero for display; the stored feePaid is not.
//
// This is the one multi-step mutation (rewrite one collection, append
// to another) and there is no rollback: a failure between the two
// writes leaves the ledger missing the payment the balance already
// reflects.
func (s *Service) PayFee(studentID string, amount float64) (PaymentReceipt, error) {
	if amount <= 0 {
		return PaymentReceipt{}, validationErr("Invalid payment amount")
	}

	students, err := s.store.Students()
	if err != nil {
		return PaymentReceipt{}, storageErr(err)
	}

	idx := -1
	for i, st := range students {
		if st.StudentID == studentID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return PaymentReceipt{}, notFoundErr("Student not found")
	}

	st := &students[idx]
	st.FeePaid += amount
	st.RefreshFeeStatus()

	if err := s.store.RewriteStudents(students); err != nil {
		return PaymentReceipt{}, storageErr(err)
	}

	paidAt := s.now()
	if err := s.store.AppendPayment(types.Payment{
		StudentID: studentID,
		Amount:    amount,
		Date:      paidAt.Format("2006-01-02"),
		Timestamp: paidAt.Format(time.RFC3339),
	}); err != nil {
		return PaymentReceipt{}, storageErr(err)
	}

	return PaymentReceipt{
		FeePaid:      st.FeePaid,
		FeeRemaining: math.Max(0, st.FeeAmount-st.FeePaid),
	}, nil
}

// SetFeeStatus is the admin override: it sets the status directly,
// bypassing the derivation from feePaid vs feeAmount.
func (s *Service) SetFeeStatus(studentID, status string) error {
	if status != types.FeeStatusPending && status != types.FeeStatusPartial && status != types.FeeStatusPaid {
		return validationErr("Status must be pending, partial, or paid")
	}

	students, err := s.store.Students()
	if err != nil {
		return storageErr(err)
	}

	idx := -1
	for i, st := range students {
		if st.StudentID == studentID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return notFoundErr("Student not found")
	}

	students[idx].FeeStatus = status
	if err := s.store.RewriteStudents(students); err != nil {
		return storageErr(err)
	}
	return nil
}

// ── Parent dashboard ─────────────────────────────────────────────────

// Dashboard aggregates everything a parent sees about their child.
type Dashboard struct {
	Profile              types.Student            `json:"profile"`
	Marks                []types.MarkEntry        `json:"marks"`
	Attendance           []types.AttendanceRecord `json:"attendance"`
	AttendancePercentage float64                  `json:"attendancePercentage"`
	Payments             []types.Payment          `json:"payments"`
}

// ParentDashboard resolves the parent's linked child and returns the
// child's sanitized profile, marks, attendance with percentage, and
// payment history.
func (s *Service) ParentDashboard(parentPhone string) (Dashboard, error) {
	parents, err := s.store.Parents()
	if err != nil {
		return Dashboard{}, storageErr(err)
	}

	var parent *types.Parent
	for i, p := range parents {
		if p.ParentPhone == parentPhone {
			parent = &parents[i]
			break
		}
	}
	if parent == nil {
		return Dashboard{}, notFoundErr("Parent not found")
	}

	profile, err := s.GetStudent(parent.StudentID)
	if err != nil {
		return Dashboard{}, err
	}

	marks, err := s.Marks(parent.StudentID)
	if err != nil {
		return Dashboard{}, err
	}

	attendance, pct, err := s.Attendance(parent.StudentID)
	if err != nil {
		return Dashboard{}, err
	}

	all, err := s.store.Payments()
	if err != nil {
		return Dashboard{}, storageErr(err)
	}
	payments := make([]types.Payment, 0)
	for _, p := range all {
		if p.StudentID == parent.StudentID {
			payments = append(payments, p)
		}
	}

	return Dashboard{
		Profile:              profile,
		Marks:                marks,
		Attendance:           attendance,
		AttendancePercentage: pct,
		Payments:             payments,
	}, nil
}
