package repository

import (
	"context"
	"database/sql"
	"time"

	"discussion_board/internal/models"
	"discussion_board/internal/repository/db"
)

type Users interface {
	Create(ctx context.Context, username, passwordHash string, createdAt time.Time) (int64, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

type Threads interface {
	Create(ctx context.Context, t models.DiscussionThread) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.DiscussionThread, error)
	List(ctx context.Context, searchTitle string) ([]models.DiscussionThread, error)
	ListByUser(ctx context.Context, userID int64) ([]models.DiscussionThread, error)
	UpdateContent(ctx context.Context, id int64, content string, updatedAt time.Time) error
	Delete(ctx context.Context, id int64) error
}

type Repository struct {
	Users   Users
	Threads Threads
}

func NewRepository(sqlDB *sql.DB) *Repository {
	return &Repository{
		Users:   NewUserRepository(sqlDB),
		Threads: NewThreadRepository(sqlDB),
	}
}

// InitDB opens the SQLite database and bootstraps the schema.
func InitDB(path string) (*sql.DB, error) {
	return db.InitDB(path)
}

// withTx runs fn inside a transaction, rolling back on any failure so no
// partial write is ever observable.
func withTx(ctx context.Context, sqlDB *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
