package repo

import (
	"context"
	"errors"

	dom "Todo/internal/domain"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when no task row matches the id.
var ErrNotFound = errors.New("task not found")

var taskColumns = []string{"id", "text", "completed", "created_at"}

type TaskRepo interface {
	Create(ctx context.Context, t dom.Task) (dom.Task, error)
	GetByID(ctx context.Context, id int64) (dom.Task, error)
	List(ctx context.Context) ([]dom.Task, error)
	Update(ctx context.Context, id int64, patch dom.Task) (dom.Task, error)
	Delete(ctx context.Context, id int64) error
}

type PGTaskRepo struct {
	db      *pgxpool.Pool
	builder squirrel.StatementBuilderType
}

func NewPGTaskRepo(db *pgxpool.Pool) *PGTaskRepo {
	return &PGTaskRepo{
		db:      db,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *PGTaskRepo) Create(ctx context.Context, t dom.Task) (dom.Task, error) {
	query, args, err := r.builder.
		Insert("tasks").
		Columns("text", "completed").
		Values(t.Text, t.Completed).
		Suffix("RETURNING id, text, completed, created_at").
		ToSql()
	if err != nil {
		return dom.Task{}, err
	}
	return scanTask(r.db.QueryRow(ctx, query, args...))
}

func (r *PGTaskRepo) GetByID(ctx context.Context, id int64) (dom.Task, error) {
	query, args, err := r.builder.
		Select(taskColumns...).
		From("tasks").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return dom.Task{}, err
	}
	return scanTask(r.db.QueryRow(ctx, query, args...))
}

func (r *PGTaskRepo) List(ctx context.Context) ([]dom.Task, error) {
	query, args, err := r.builder.
		Select(taskColumns...).
		From("tasks").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list := []dom.Task{}
	for rows.Next() {
		var t dom.Task
		if err := rows.Scan(&t.ID, &t.Text, &t.Completed, &t.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func (r *PGTaskRepo) Update(ctx context.Context, id int64, patch dom.Task) (dom.Task, error) {
	query, args, err := r.builder.
		Update("tasks").
		Set("text", patch.Text).
		Set("completed", patch.Completed).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING id, text, completed, created_at").
		ToSql()
	if err != nil {
		return dom.Task{}, err
	}
	return scanTask(r.db.QueryRow(ctx, query, args...))
}

func (r *PGTaskRepo) Delete(ctx context.Context, id int64) error {
	query, args, err := r.builder.
		Delete("tasks").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanTask(row pgx.Row) (dom.Task, error) {
	var t dom.Task
	err := row.Scan(&t.ID, &t.Text, &t.Completed, &t.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return dom.Task{}, ErrNotFound
	}
	return t, err
}
