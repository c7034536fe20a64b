// Package jsonl implements storage.Storage over flat line-delimited
// JSON text files — the store the system has always used.
//
// Layout: one file per collection under the configured data directory,
// one JSON object per line, UTF-8, no header, newline-terminated
// including the last line. A file that does not exist reads as an
// empty collection; a line that does not parse fails the whole read.
//
// Appends use O_APPEND so existing content is never read or rewritten.
// Rewrites go through a temp file in the same directory followed by a
// rename, so readers never observe a half-written collection.
package jsonl

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/AP24110011521/SRMS-CCC/internal/storage"
	"github.com/AP24110011521/SRMS-CCC/internal/types"
)

// Collection file names, kept byte-compatible with the data files the
// original deployment produced.
const (
	studentsFile   = "students.txt"
	teachersFile   = "teachers.txt"
	parentsFile    = "parents.txt"
	attendanceFile = "attendance.txt"
	marksFile      = "marks.txt"
	paymentsFile   = "payments.txt"
)

// maxLineBytes bounds a single record line on read. Far beyond any
// realistic record, it exists so a corrupt or hostile file cannot ask
// for unbounded memory.
const maxLineBytes = 16 * 1024 * 1024

// Store is the flat-file implementation of storage.Storage.
type Store struct {
	dir string
}

// New ensures the data directory and the six collection files exist
// and returns a ready-to-use *Store. Creating the files up front is
// idempotent and keeps first reads from racing first appends on a
// fresh deployment.
func New(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("jsonl.New: create data dir: %w", err)
	}

	files := []string{
		studentsFile, teachersFile, parentsFile,
		attendanceFile, marksFile, paymentsFile,
	}
	for _, name := range files {
		path := filepath.Join(dataDir, name)
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("jsonl.New: create %s: %w", name, err)
		}
		f.Close()
	}

	return &Store{dir: dataDir}, nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name)
}

// readAll parses every line of the named collection into T. Blank
// lines are skipped; a missing file is an empty collection.
func readAll[T any](s *Store, name string) ([]T, error) {
	f, err := os.Open(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	defer f.Close()

	records := make([]T, 0)
	sc := bufio.NewScanner(f)
	// Writes impose no line-length cap, so reads must not either;
	// the scanner's default 64KB token limit would strand records it
	// had happily persisted.
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec T
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("read %s line %d: %w: %v",
				name, lineNo, storage.ErrMalformed, err)
		}
		records = append(records, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return records, nil
}

// appendOne serialises one record and appends it as a single line.
func appendOne[T any](s *Store, name string, rec T) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("append %s: marshal: %w", name, err)
	}

	f, err := os.OpenFile(s.path(name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("append %s: open: %w", name, err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("append %s: write: %w", name, err)
	}
	return nil
}

// rewriteAll replaces the collection content atomically: the new
// content is written to a temp file in the same directory and renamed
// over the old file, so a crash mid-rewrite leaves the previous
// content intact.
func rewriteAll[T any](s *Store, name string, records []T) error {
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("rewrite %s: create temp: %w", name, err)
	}
	tmpName := tmp.Name()

	w := bufio.NewWriter(tmp)
	for _, rec := range records {
		data, err := json.Marshal(rec)
		if err != nil {
			tmp.Close()
			os.Remove(tmpName)
			return fmt.Errorf("rewrite %s: marshal: %w", name, err)
		}
		w.Write(data)
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("rewrite %s: flush: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rewrite %s: close temp: %w", name, err)
	}

	if err := os.Rename(tmpName, s.path(name)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rewrite %s: rename: %w", name, err)
	}
	return nil
}

func (s *Store) Students() ([]types.Student, error) {
	return readAll[types.Student](s, studentsFile)
}

func (s *Store) AppendStudent(st types.Student) error {
	return appendOne(s, studentsFile, st)
}

func (s *Store) RewriteStudents(ss []types.Student) error {
	return rewriteAll(s, studentsFile, ss)
}

func (s *Store) Teachers() ([]types.Teacher, error) {
	return readAll[types.Teacher](s, teachersFile)
}

func (s *Store) AppendTeacher(t types.Teacher) error {
	return appendOne(s, teachersFile, t)
}

func (s *Store) RewriteTeachers(ts []types.Teacher) error {
	return rewriteAll(s, teachersFile, ts)
}

func (s *Store) Parents() ([]types.Parent, error) {
	return readAll[types.Parent](s, parentsFile)
}

func (s *Store) AppendParent(p types.Parent) error {
	return appendOne(s, parentsFile, p)
}

func (s *Store) Attendance() ([]types.AttendanceRecord, error) {
	return readAll[types.AttendanceRecord](s, attendanceFile)
}

func (s *Store) AppendAttendance(a types.AttendanceRecord) error {
	return appendOne(s, attendanceFile, a)
}

func (s *Store) Marks() ([]types.MarkEntry, error) {
	return readAll[types.MarkEntry](s, marksFile)
}

func (s *Store) AppendMark(m types.MarkEntry) error {
	return appendOne(s, marksFile, m)
}

func (s *Store) Payments() ([]types.Payment, error) {
	return readAll[types.Payment](s, paymentsFile)
}

func (s *Store) AppendPayment(p types.Payment) error {
	return appendOne(s, paymentsFile, p)
}
