// Package store keeps the append-only log of survey submissions.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spigell/subject-advisor/internal/recommend"

	_ "modernc.org/sqlite"
)

const defaultListLimit = 50

// Student identifies who filled in the survey.
type Student struct {
	FullName string `json:"full_name" form:"ho_ten" validate:"required,max=120"`
	Class    string `json:"class" form:"lop" validate:"max=20"`
	Phone    string `json:"phone" form:"sdt" validate:"omitempty,max=20,numeric"`
	Email    string `json:"email" form:"email" validate:"omitempty,email"`
}

// Submission is one row of the log.
type Submission struct {
	ID          int64     `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	Student     Student   `json:"student"`
	Suggestions [3]string `json:"suggestions"`
}

// NewSubmission builds a row from an analysis. Missing recommendations are
// stored as empty strings.
func NewSubmission(student Student, a recommend.Analysis, now time.Time) Submission {
	sub := Submission{CreatedAt: now.UTC(), Student: student}
	for i, name := range a.Names() {
		if i == len(sub.Suggestions) {
			break
		}
		sub.Suggestions[i] = name
	}
	return sub
}

// Store is a SQLite backed submission log.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path.
func Open(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("store path is required")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("store: mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open db: %w", err)
	}
	db.SetMaxOpenConns(1) // single writer

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: init schema: %w", err)
	}

	return &Store{db: db}, nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS submissions (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at   TEXT NOT NULL,
		full_name    TEXT NOT NULL,
		class        TEXT,
		phone        TEXT,
		email        TEXT,
		suggestion_1 TEXT NOT NULL DEFAULT '',
		suggestion_2 TEXT NOT NULL DEFAULT '',
		suggestion_3 TEXT NOT NULL DEFAULT ''
	)`)
	return err
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Append stores a submission and returns its id.
func (s *Store) Append(ctx context.Context, sub Submission) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO submissions (created_at, full_name, class, phone, email, suggestion_1, suggestion_2, suggestion_3)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		sub.CreatedAt.UTC().Format(time.RFC3339),
		sub.Student.FullName, sub.Student.Class, sub.Student.Phone, sub.Student.Email,
		sub.Suggestions[0], sub.Suggestions[1], sub.Suggestions[2],
	)
	if err != nil {
		return 0, fmt.Errorf("store: insert: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("store: last insert id: %w", err)
	}
	return id, nil
}

// List returns the latest submissions, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Submission, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, full_name, class, phone, email, suggestion_1, suggestion_2, suggestion_3
		 FROM submissions ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("store: query: %w", err)
	}
	defer rows.Close()

	var out []Submission
	for rows.Next() {
		var (
			sub       Submission
			createdAt string
		)
		if err := rows.Scan(
			&sub.ID, &createdAt,
			&sub.Student.FullName, &sub.Student.Class, &sub.Student.Phone, &sub.Student.Email,
			&sub.Suggestions[0], &sub.Suggestions[1], &sub.Suggestions[2],
		); err != nil {
			return nil, fmt.Errorf("store: scan: %w", err)
		}

		sub.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("store: parse created_at of row %d: %w", sub.ID, err)
		}

		out = append(out, sub)
	}

	return out, rows.Err()
}

// DumpToTmpFile writes submissions as indented JSON into a new temp file and
// returns its name.
func DumpToTmpFile(subs []Submission) (string, error) {
	file, err := os.CreateTemp("", "submissions_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(subs); err != nil {
		return "", err
	}
	return file.Name(), nil
}
