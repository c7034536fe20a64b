// Package storage defines the Storage interface — the record-store
// contract that any backend must satisfy to work with this
// application.
//
// The school service (domain layer) depends only on this interface:
// switching backends means implementing it for the new store and
// changing one line in main.go, and tests can run against whichever
// backend is cheapest to spin up.
//
// The contract is deliberately primitive, mirroring the flat-file
// origin of the data: per collection there is read-all, append-one,
// and (for the mutable collections) rewrite-all. There is no point
// update — callers read the whole collection, modify it in memory,
// and rewrite it. There is also no transaction spanning collections:
// a crash between two writes can leave related collections
// inconsistent, which is accepted at this system's scale.
package storage

import (
	"errors"

	"github.com/AP24110011521/SRMS-CCC/internal/types"
)

// ErrMalformed wraps parse failures on persisted content so callers
// can tell corrupt data apart from plain I/O errors.
var ErrMalformed = errors.New("malformed record")

// Storage is the record-store contract.
//
// Read methods return records in append order and an empty slice (not
// an error) when the collection has never been written. Append methods
// add exactly one record without touching existing content. Rewrite
// methods atomically replace the whole collection with the given
// ordered sequence.
//
// Only students and teachers are ever mutated, so only they get a
// rewrite; parents, attendance, marks, and payments are append-only
// history.
type Storage interface {
	Students() ([]types.Student, error)
	AppendStudent(s types.Student) error
	RewriteStudents(ss []types.Student) error

	Teachers() ([]types.Teacher, error)
	AppendTeacher(t types.Teacher) error
	RewriteTeachers(ts []types.Teacher) error

	Parents() ([]types.Parent, error)
	AppendParent(p types.Parent) error

	Attendance() ([]types.AttendanceRecord, error)
	AppendAttendance(a types.AttendanceRecord) error

	Marks() ([]types.MarkEntry, error)
	AppendMark(m types.MarkEntry) error

	Payments() ([]types.Payment, error)
	AppendPayment(p types.Payment) error
}
