package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/TWRT/issue-disassembler/internal/models"
	"github.com/samber/lo"
)

var (
	ErrTodoNotFound  = errors.New("todo not found")
	ErrIssueNotFound = errors.New("issue not found")
)

// TodoRecord is a stored Todo. Issues keep the order they were decoded in.
type TodoRecord struct {
	ID       int64       `json:"id"`
	Todo     models.Todo `json:"todo"`
	StoredAt time.Time   `json:"stored_at"`
}

type TodoRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewTodoRepository(db *sql.DB) *TodoRepository {
	return &TodoRepository{db: db, now: time.Now}
}

func (r *TodoRepository) Create(todo *models.Todo) (int64, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin create todo: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`
		INSERT INTO todos (title, summary, created_at, has_issues, stored_at)
		VALUES (?, ?, ?, ?, ?)
	`,
		nullString(todo.Title),
		nullString(todo.Summary),
		formatTime(todo.CreatedAt),
		todo.Issues != nil,
		r.now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("create todo: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create todo id: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO issues (todo_id, position, title, description, estimated_working_hours, progression)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("prepare create issues: %w", err)
	}
	defer stmt.Close()

	for i, issue := range todo.Issues {
		var hours, progression any
		if issue.EstimatedWorkingHours != nil {
			hours = *issue.EstimatedWorkingHours
		}
		if issue.Progression != nil {
			progression = *issue.Progression
		}
		if _, err := stmt.Exec(id, i, nullString(issue.Title), nullString(issue.Description), hours, progression); err != nil {
			return 0, fmt.Errorf("create issue at position %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit create todo: %w", err)
	}
	return id, nil
}

// GetTodos returns every stored Todo, newest first.
func (r *TodoRepository) GetTodos() ([]TodoRecord, error) {
	rows, err := r.db.Query(`
		SELECT id, title, summary, created_at, has_issues, stored_at
		FROM todos
		ORDER BY id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("get todos: %w", err)
	}
	defer rows.Close()

	records := []TodoRecord{}
	for rows.Next() {
		rec, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate todos: %w", err)
	}

	issues, err := r.getIssues(`SELECT todo_id, title, description, estimated_working_hours, progression
		FROM issues ORDER BY todo_id, position`)
	if err != nil {
		return nil, err
	}
	byTodo := lo.GroupBy(issues, func(i storedIssue) int64 { return i.todoID })

	for i := range records {
		if records[i].Todo.Issues != nil {
			records[i].Todo.Issues = lo.Map(byTodo[records[i].ID], func(s storedIssue, _ int) models.Issue {
				return s.issue
			})
		}
	}

	return records, nil
}

func (r *TodoRepository) GetTodo(id int64) (TodoRecord, error) {
	row := r.db.QueryRow(`
		SELECT id, title, summary, created_at, has_issues, stored_at
		FROM todos WHERE id = ?
	`, id)

	rec, err := scanTodo(row)
	if errors.Is(err, sql.ErrNoRows) {
		return TodoRecord{}, fmt.Errorf("%w: %d", ErrTodoNotFound, id)
	}
	if err != nil {
		return TodoRecord{}, err
	}

	issues, err := r.getIssues(`SELECT todo_id, title, description, estimated_working_hours, progression
		FROM issues WHERE todo_id = ? ORDER BY position`, id)
	if err != nil {
		return TodoRecord{}, err
	}
	if rec.Todo.Issues != nil {
		rec.Todo.Issues = lo.Map(issues, func(s storedIssue, _ int) models.Issue { return s.issue })
	}

	return rec, nil
}

func (r *TodoRepository) Delete(id int64) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin delete todo: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM issues WHERE todo_id = ?`, id); err != nil {
		return fmt.Errorf("delete issues of todo %d: %w", id, err)
	}

	result, err := tx.Exec(`DELETE FROM todos WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete todo %d: %w", id, err)
	}
	if err := expectOneRow(result, fmt.Errorf("%w: %d", ErrTodoNotFound, id)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete todo: %w", err)
	}
	return nil
}

// DeleteIssue removes the issue at position and closes the gap, so the
// remaining issues stay contiguous.
func (r *TodoRepository) DeleteIssue(todoID int64, position int) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin delete issue: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`DELETE FROM issues WHERE todo_id = ? AND position = ?`, todoID, position)
	if err != nil {
		return fmt.Errorf("delete issue: %w", err)
	}
	if err := expectOneRow(result, fmt.Errorf("%w: todo=%d position=%d", ErrIssueNotFound, todoID, position)); err != nil {
		return err
	}

	if _, err := tx.Exec(`
		UPDATE issues SET position = position - 1
		WHERE todo_id = ? AND position > ?
	`, todoID, position); err != nil {
		return fmt.Errorf("shift issue positions: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete issue: %w", err)
	}
	return nil
}

func (r *TodoRepository) UpdateIssueProgression(todoID int64, position, progression int) error {
	result, err := r.db.Exec(`
		UPDATE issues SET progression = ?
		WHERE todo_id = ? AND position = ?
	`, progression, todoID, position)
	if err != nil {
		return fmt.Errorf("update issue progression: %w", err)
	}
	return expectOneRow(result, fmt.Errorf("%w: todo=%d position=%d", ErrIssueNotFound, todoID, position))
}

type storedIssue struct {
	todoID int64
	issue  models.Issue
}

func (r *TodoRepository) getIssues(query string, args ...any) ([]storedIssue, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("get issues: %w", err)
	}
	defer rows.Close()

	var issues []storedIssue
	for rows.Next() {
		var s storedIssue
		var title, description sql.NullString
		var hours sql.NullInt16
		var progression sql.NullInt64

		if err := rows.Scan(&s.todoID, &title, &description, &hours, &progression); err != nil {
			return nil, fmt.Errorf("scan issue: %w", err)
		}

		s.issue.Title = stringPtr(title)
		s.issue.Description = stringPtr(description)
		if hours.Valid {
			h := hours.Int16
			s.issue.EstimatedWorkingHours = &h
		}
		if progression.Valid {
			p := int(progression.Int64)
			s.issue.Progression = &p
		}
		issues = append(issues, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate issues: %w", err)
	}
	return issues, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTodo(s scanner) (TodoRecord, error) {
	var rec TodoRecord
	var title, summary, createdAt sql.NullString
	var storedAt string
	var hasIssues bool

	if err := s.Scan(&rec.ID, &title, &summary, &createdAt, &hasIssues, &storedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return TodoRecord{}, err
		}
		return TodoRecord{}, fmt.Errorf("scan todo: %w", err)
	}

	rec.Todo.Title = stringPtr(title)
	rec.Todo.Summary = stringPtr(summary)
	// A non-nil Issues marks that the Todo carried an issues array, possibly
	// empty; callers fill it in.
	if hasIssues {
		rec.Todo.Issues = []models.Issue{}
	}

	if createdAt.Valid {
		t, err := time.Parse(time.RFC3339Nano, createdAt.String)
		if err != nil {
			return TodoRecord{}, fmt.Errorf("parse created_at of todo %d: %w", rec.ID, err)
		}
		rec.Todo.CreatedAt = &t
	}

	t, err := time.Parse(time.RFC3339Nano, storedAt)
	if err != nil {
		return TodoRecord{}, fmt.Errorf("parse stored_at of todo %d: %w", rec.ID, err)
	}
	rec.StoredAt = t

	return rec, nil
}

func expectOneRow(result sql.Result, notFound error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return notFound
	}
	return nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}

func formatTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.UTC().Format(time.RFC3339Nano), Valid: true}
}
