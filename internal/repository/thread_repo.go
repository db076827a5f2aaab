package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"discussion_board/internal/apperr"
	"discussion_board/internal/models"
)

type ThreadRepository struct {
	db *sql.DB
}

func NewThreadRepository(db *sql.DB) *ThreadRepository {
	return &ThreadRepository{db: db}
}

var _ Threads = (*ThreadRepository)(nil)

const (
	insertThreadSQL = `
		INSERT INTO discussion_threads (user_id, title, content, image_path, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`

	selectThreadSQL = `
		SELECT id, user_id, title, content, image_path, created_at, updated_at
		FROM discussion_threads WHERE id = ?`

	// instr() is a case-sensitive substring match, unlike LIKE which folds
	// ASCII case in SQLite.
	listThreadsSQL = `
		SELECT id, user_id, title, content, image_path, created_at, updated_at
		FROM discussion_threads ORDER BY id ASC`

	listThreadsByTitleSQL = `
		SELECT id, user_id, title, content, image_path, created_at, updated_at
		FROM discussion_threads WHERE instr(title, ?) > 0 ORDER BY id ASC`

	listThreadsByUserSQL = `
		SELECT id, user_id, title, content, image_path, created_at, updated_at
		FROM discussion_threads WHERE user_id = ? ORDER BY id ASC`

	updateThreadContentSQL = `UPDATE discussion_threads SET content = ?, updated_at = ? WHERE id = ?`

	deleteThreadSQL = `DELETE FROM discussion_threads WHERE id = ?`
)

// nullableString maps "" to NULL for optional columns.
func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func scanThread(scan func(dest ...any) error) (models.DiscussionThread, error) {
	var (
		t         models.DiscussionThread
		imagePath sql.NullString
	)
	if err := scan(&t.ID, &t.UserID, &t.Title, &t.Content, &imagePath, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return models.DiscussionThread{}, err
	}
	t.ImagePath = imagePath.String
	t.CreatedAt = t.CreatedAt.UTC()
	t.UpdatedAt = t.UpdatedAt.UTC()
	return t, nil
}

// Create inserts a new thread row and returns its ID.
func (r *ThreadRepository) Create(ctx context.Context, t models.DiscussionThread) (int64, error) {
	var id int64
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, insertThreadSQL,
			t.UserID,
			t.Title,
			t.Content,
			nullableString(t.ImagePath),
			t.CreatedAt.UTC(),
			t.UpdatedAt.UTC(),
		)
		if err != nil {
			return fmt.Errorf("insert discussion thread: %w", err)
		}
		id, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("get last insert id for thread: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// GetByID fetches a single thread. Returns (nil, nil) if not found.
func (r *ThreadRepository) GetByID(ctx context.Context, id int64) (*models.DiscussionThread, error) {
	t, err := scanThread(r.db.QueryRowContext(ctx, selectThreadSQL, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select thread %d: %w", id, err)
	}
	return &t, nil
}

// List returns all threads in insertion order, optionally narrowed to those
// whose title contains searchTitle.
func (r *ThreadRepository) List(ctx context.Context, searchTitle string) ([]models.DiscussionThread, error) {
	if searchTitle == "" {
		return r.queryThreads(ctx, listThreadsSQL)
	}
	return r.queryThreads(ctx, listThreadsByTitleSQL, searchTitle)
}

// ListByUser returns all threads owned by userID in insertion order.
func (r *ThreadRepository) ListByUser(ctx context.Context, userID int64) ([]models.DiscussionThread, error) {
	return r.queryThreads(ctx, listThreadsByUserSQL, userID)
}

func (r *ThreadRepository) queryThreads(ctx context.Context, query string, args ...any) ([]models.DiscussionThread, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list threads: %w", err)
	}
	defer rows.Close()

	out := make([]models.DiscussionThread, 0, 16)
	for rows.Next() {
		t, err := scanThread(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan thread row: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate thread rows: %w", err)
	}
	return out, nil
}

// UpdateContent sets the content and updated_at of a thread inside a single
// transaction; an unknown id rolls back with NotFound.
func (r *ThreadRepository) UpdateContent(ctx context.Context, id int64, content string, updatedAt time.Time) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, updateThreadContentSQL, content, updatedAt.UTC(), id)
		if err != nil {
			return fmt.Errorf("update thread %d: %w", id, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected for thread %d: %w", id, err)
		}
		if n == 0 {
			return apperr.NotFound("discussion thread not found")
		}
		return nil
	})
}

// Delete removes a thread row permanently.
func (r *ThreadRepository) Delete(ctx context.Context, id int64) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, deleteThreadSQL, id)
		if err != nil {
			return fmt.Errorf("delete thread %d: %w", id, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected for thread %d: %w", id, err)
		}
		if n == 0 {
			return apperr.NotFound("discussion thread not found")
		}
		return nil
	})
}
