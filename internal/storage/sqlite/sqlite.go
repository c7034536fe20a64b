// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// The flat-file store is the system's default; this backend exists for
// deployments that outgrow whole-file rewrites. It keeps the exact
// same contract — read-all in append order, append-one, rewrite-all —
// so the school service cannot tell the two apart. Append order is
// modelled with an AUTOINCREMENT seq column; rewrite is a DELETE plus
// bulk INSERT inside one transaction.
//
// The blank import below registers the sqlite3 driver with
// database/sql; nothing from the driver package is called directly.
package sqlite

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/AP24110011521/SRMS-CCC/internal/types"
)

// Store is the SQLite implementation of storage.Storage.
// A single *sql.DB is a connection pool and is safe for concurrent
// use by multiple goroutines.
type Store struct {
	db *sql.DB
}

// New opens the database at path and creates the six collection
// tables if they do not already exist.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// One table per collection. seq preserves append order; the
	// domain keys (studentId etc.) are plain columns because
	// uniqueness is enforced by the school service, exactly as with
	// the flat files.
	schema := []string{
		`CREATE TABLE IF NOT EXISTS students (
			seq         INTEGER PRIMARY KEY AUTOINCREMENT,
			student_id  TEXT NOT NULL,
			name        TEXT NOT NULL,
			dob         TEXT NOT NULL,
			year        TEXT NOT NULL,
			branch      TEXT NOT NULL,
			section     TEXT NOT NULL,
			password    TEXT NOT NULL,
			parent_phone TEXT NOT NULL,
			hostel      TEXT NOT NULL,
			club        TEXT NOT NULL,
			fee_amount  REAL NOT NULL,
			fee_paid    REAL NOT NULL,
			fee_status  TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS teachers (
			seq        INTEGER PRIMARY KEY AUTOINCREMENT,
			teacher_id TEXT NOT NULL,
			name       TEXT NOT NULL,
			subject    TEXT NOT NULL,
			password   TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS parents (
			seq          INTEGER PRIMARY KEY AUTOINCREMENT,
			parent_phone TEXT NOT NULL,
			student_id   TEXT NOT NULL,
			password     TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS attendance (
			seq        INTEGER PRIMARY KEY AUTOINCREMENT,
			date       TEXT NOT NULL,
			student_id TEXT NOT NULL,
			status     TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS marks (
			seq        INTEGER PRIMARY KEY AUTOINCREMENT,
			student_id TEXT NOT NULL,
			subject    TEXT NOT NULL,
			term       TEXT NOT NULL,
			marks      REAL NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS payments (
			seq        INTEGER PRIMARY KEY AUTOINCREMENT,
			student_id TEXT NOT NULL,
			amount     REAL NOT NULL,
			date       TEXT NOT NULL,
			timestamp  TEXT NOT NULL
		)`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return nil, fmt.Errorf("sqlite.New: create table: %w", err)
		}
	}

	return &Store{db: db}, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Students() ([]types.Student, error) {
	rows, err := s.db.Query(`
		SELECT student_id, name, dob, year, branch, section, password,
		       parent_phone, hostel, club, fee_amount, fee_paid, fee_status
		FROM students ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("Students: query: %w", err)
	}
	defer rows.Close()

	students := make([]types.Student, 0)
	for rows.Next() {
		var st types.Student
		if err := rows.Scan(
			&st.StudentID, &st.Name, &st.DOB, &st.Year, &st.Branch,
			&st.Section, &st.Password, &st.ParentPhone, &st.Hostel,
			&st.Club, &st.FeeAmount, &st.FeePaid, &st.FeeStatus,
		); err != nil {
			return nil, fmt.Errorf("Students: scan row: %w", err)
		}
		students = append(students, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("Students: rows iteration: %w", err)
	}
	return students, nil
}

func insertStudent(ex interface {
	Exec(query string, args ...any) (sql.Result, error)
}, st types.Student) error {
	_, err := ex.Exec(`
		INSERT INTO students (student_id, name, dob, year, branch, section,
			password, parent_phone, hostel, club, fee_amount, fee_paid, fee_status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		st.StudentID, st.Name, st.DOB, st.Year, st.Branch, st.Section,
		st.Password, st.ParentPhone, st.Hostel, st.Club,
		st.FeeAmount, st.FeePaid, st.FeeStatus,
	)
	return err
}

func (s *Store) AppendStudent(st types.Student) error {
	if err := insertStudent(s.db, st); err != nil {
		return fmt.Errorf("AppendStudent: exec: %w", err)
	}
	return nil
}

func (s *Store) RewriteStudents(ss []types.Student) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("RewriteStudents: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM students"); err != nil {
		return fmt.Errorf("RewriteStudents: delete: %w", err)
	}
	for _, st := range ss {
		if err := insertStudent(tx, st); err != nil {
			return fmt.Errorf("RewriteStudents: insert: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("RewriteStudents: commit: %w", err)
	}
	return nil
}

func (s *Store) Teachers() ([]types.Teacher, error) {
	rows, err := s.db.Query(
		"SELECT teacher_id, name, subject, password FROM teachers ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("Teachers: query: %w", err)
	}
	defer rows.Close()

	teachers := make([]types.Teacher, 0)
	for rows.Next() {
		var t types.Teacher
		if err := rows.Scan(&t.TeacherID, &t.Name, &t.Subject, &t.Password); err != nil {
			return nil, fmt.Errorf("Teachers: scan row: %w", err)
		}
		teachers = append(teachers, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("Teachers: rows iteration: %w", err)
	}
	return teachers, nil
}

func (s *Store) AppendTeacher(t types.Teacher) error {
	_, err := s.db.Exec(
		"INSERT INTO teachers (teacher_id, name, subject, password) VALUES (?, ?, ?, ?)",
		t.TeacherID, t.Name, t.Subject, t.Password,
	)
	if err != nil {
		return fmt.Errorf("AppendTeacher: exec: %w", err)
	}
	return nil
}

func (s *Store) RewriteTeachers(ts []types.Teacher) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("RewriteTeachers: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM teachers"); err != nil {
		return fmt.Errorf("RewriteTeachers: delete: %w", err)
	}
	for _, t := range ts {
		if _, err := tx.Exec(
			"INSERT INTO teachers (teacher_id, name, subject, password) VALUES (?, ?, ?, ?)",
			t.TeacherID, t.Name, t.Subject, t.Password,
		); err != nil {
			return fmt.Errorf("RewriteTeachers: insert: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("RewriteTeachers: commit: %w", err)
	}
	return nil
}

func (s *Store) Parents() ([]types.Parent, error) {
	rows, err := s.db.Query(
		"SELECT parent_phone, student_id, password FROM parents ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("Parents: query: %w", err)
	}
	defer rows.Close()

	parents := make([]types.Parent, 0)
	for rows.Next() {
		var p types.Parent
		if err := rows.Scan(&p.ParentPhone, &p.StudentID, &p.Password); err != nil {
			return nil, fmt.Errorf("Parents: scan row: %w", err)
		}
		parents = append(parents, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("Parents: rows iteration: %w", err)
	}
	return parents, nil
}

func (s *Store) AppendParent(p types.Parent) error {
	_, err := s.db.Exec(
		"INSERT INTO parents (parent_phone, student_id, password) VALUES (?, ?, ?)",
		p.ParentPhone, p.StudentID, p.Password,
	)
	if err != nil {
		return fmt.Errorf("AppendParent: exec: %w", err)
	}
	return nil
}

func (s *Store) Attendance() ([]types.AttendanceRecord, error) {
	rows, err := s.db.Query(
		"SELECT date, student_id, status FROM attendance ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("Attendance: query: %w", err)
	}
	defer rows.Close()

	records := make([]types.AttendanceRecord, 0)
	for rows.Next() {
		var a types.AttendanceRecord
		if err := rows.Scan(&a.Date, &a.StudentID, &a.Status); err != nil {
			return nil, fmt.Errorf("Attendance: scan row: %w", err)
		}
		records = append(records, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("Attendance: rows iteration: %w", err)
	}
	return records, nil
}

func (s *Store) AppendAttendance(a types.AttendanceRecord) error {
	_, err := s.db.Exec(
		"INSERT INTO attendance (date, student_id, status) VALUES (?, ?, ?)",
		a.Date, a.StudentID, a.Status,
	)
	if err != nil {
		return fmt.Errorf("AppendAttendance: exec: %w", err)
	}
	return nil
}

func (s *Store) Marks() ([]types.MarkEntry, error) {
	rows, err := s.db.Query(
		"SELECT student_id, subject, term, marks FROM marks ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("Marks: query: %w", err)
	}
	defer rows.Close()

	entries := make([]types.MarkEntry, 0)
	for rows.Next() {
		var m types.MarkEntry
		if err := rows.Scan(&m.StudentID, &m.Subject, &m.Term, &m.Marks); err != nil {
			return nil, fmt.Errorf("Marks: scan row: %w", err)
		}
		entries = append(entries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("Marks: rows iteration: %w", err)
	}
	return entries, nil
}

func (s *Store) AppendMark(m types.MarkEntry) error {
	_, err := s.db.Exec(
		"INSERT INTO marks (student_id, subject, term, marks) VALUES (?, ?, ?, ?)",
		m.StudentID, m.Subject, m.Term, m.Marks,
	)
	if err != nil {
		return fmt.Errorf("AppendMark: exec: %w", err)
	}
	return nil
}

func (s *Store) Payments() ([]types.Payment, error) {
	rows, err := s.db.Query(
		"SELECT student_id, amount, date, timestamp FROM payments ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("Payments: query: %w", err)
	}
	defer rows.Close()

	payments := make([]types.Payment, 0)
	for rows.Next() {
		var p types.Payment
		if err := rows.Scan(&p.StudentID, &p.Amount, &p.Date, &p.Timestamp); err != nil {
			return nil, fmt.Errorf("Payments: scan row: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("Payments: rows iteration: %w", err)
	}
	return payments, nil
}

func (s *Store) AppendPayment(p types.Payment) error {
	_, err := s.db.Exec(
		"INSERT INTO payments (student_id, amount, date, timestamp) VALUES (?, ?, ?, ?)",
		p.StudentID, p.Amount, p.Date, p.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("AppendPayment: exec: %w", err)
	}
	return nil
}
