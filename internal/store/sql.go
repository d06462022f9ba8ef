package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"taskmaster/internal/service"
)

const (
	listTasksQuery = `
SELECT id, title, description, created_date, is_completed
FROM tasks
ORDER BY created_date DESC, id DESC`

	getTaskQuery = `
SELECT id, title, description, created_date, is_completed
FROM tasks
WHERE id = ?`

	insertTaskQuery = `
INSERT INTO tasks (title, description, created_date, is_completed)
VALUES (?, ?, ?, ?)`

	updateTaskQuery = `
UPDATE tasks SET title = ?, description = ?, is_completed = ?
WHERE id = ?`

	updateStatusQuery = `UPDATE tasks SET is_completed = ? WHERE id = ?`

	deleteTaskQuery = `DELETE FROM tasks WHERE id = ?`
)

// SQL is a Store backed by a tasks table reached through sqlx. The same
// queries serve MySQL and SQLite.
type SQL struct {
	db *sqlx.DB
}

var _ Store = (*SQL)(nil)

type taskRow struct {
	ID          int64          `db:"id"`
	Title       string         `db:"title"`
	Description sql.NullString `db:"description"`
	CreatedDate sqlDate        `db:"created_date"`
	IsCompleted bool           `db:"is_completed"`
}

func (r taskRow) toTask() service.Task {
	return service.Task{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description.String,
		CreatedDate: string(r.CreatedDate),
		IsCompleted: r.IsCompleted,
	}
}

func (s *SQL) List(ctx context.Context) ([]service.Task, error) {
	var rows []taskRow
	if err := s.db.SelectContext(ctx, &rows, listTasksQuery); err != nil {
		return nil, err
	}

	tasks := make([]service.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, row.toTask())
	}
	return tasks, nil
}

func (s *SQL) Get(ctx context.Context, id int64) (service.Task, error) {
	var row taskRow
	if err := s.db.GetContext(ctx, &row, getTaskQuery, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return service.Task{}, ErrNotFound
		}
		return service.Task{}, err
	}
	return row.toTask(), nil
}

func (s *SQL) Create(ctx context.Context, task service.NewTask) (service.Task, error) {
	res, err := s.db.ExecContext(ctx, insertTaskQuery, task.Title, task.Description, task.CreatedDate, task.IsCompleted)
	if err != nil {
		return service.Task{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return service.Task{}, err
	}
	return s.Get(ctx, id)
}

func (s *SQL) Update(ctx context.Context, task service.Task) (service.Task, error) {
	res, err := s.db.ExecContext(ctx, updateTaskQuery, task.Title, task.Description, task.IsCompleted, task.ID)
	if err != nil {
		return service.Task{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return service.Task{}, err
	}
	if n == 0 {
		return service.Task{}, ErrNotFound
	}
	return s.Get(ctx, task.ID)
}

func (s *SQL) SetCompletion(ctx context.Context, id int64, completed bool) (bool, error) {
	return s.execAffects(ctx, updateStatusQuery, completed, id)
}

func (s *SQL) Delete(ctx context.Context, id int64) (bool, error) {
	return s.execAffects(ctx, deleteTaskQuery, id)
}

func (s *SQL) execAffects(ctx context.Context, query string, args ...any) (bool, error) {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *SQL) Close() error {
	return s.db.Close()
}

// sqlDate scans a DATE column as YYYY-MM-DD. MySQL with parseTime returns
// time.Time, SQLite stores the text as written.
type sqlDate string

func (d *sqlDate) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*d = sqlDate(v.Format(service.DateLayout))
	case string:
		*d = sqlDate(trimDate(v))
	case []byte:
		*d = sqlDate(trimDate(string(v)))
	case nil:
		*d = ""
	default:
		return fmt.Errorf("unsupported created_date type %T", src)
	}
	return nil
}

// trimDate drops a time part some drivers append to DATE values.
func trimDate(s string) string {
	if len(s) > len(service.DateLayout) {
		return s[:len(service.DateLayout)]
	}
	return s
}
