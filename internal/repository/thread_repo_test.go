package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"discussion_board/internal/apperr"
	"discussion_board/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

var threadColumns = []string{"id", "user_id", "title", "content", "image_path", "created_at", "updated_at"}

func newMockThreadRepo(t *testing.T) (*ThreadRepository, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	repo := NewThreadRepository(db)
	cleanup := func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet sqlmock expectations: %v", err)
		}
		_ = db.Close()
	}
	return repo, mock, cleanup
}

func TestThreadRepository_Create(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	thread := models.DiscussionThread{
		UserID:    1,
		Title:     "T1",
		Content:   "C1",
		ImagePath: "abc.png",
		CreatedAt: now,
		UpdatedAt: now,
	}

	t.Run("success commits", func(t *testing.T) {
		repo, mock, cleanup := newMockThreadRepo(t)
		defer cleanup()

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(insertThreadSQL)).
			WithArgs(int64(1), "T1", "C1", "abc.png", now, now).
			WillReturnResult(sqlmock.NewResult(11, 1))
		mock.ExpectCommit()

		id, err := repo.Create(context.Background(), thread)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if id != 11 {
			t.Fatalf("expected id 11, got %d", id)
		}
	})

	t.Run("insert failure rolls back", func(t *testing.T) {
		repo, mock, cleanup := newMockThreadRepo(t)
		defer cleanup()

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(insertThreadSQL)).
			WithArgs(int64(1), "T1", "C1", "abc.png", now, now).
			WillReturnError(errors.New("disk full"))
		mock.ExpectRollback()

		_, err := repo.Create(context.Background(), thread)
		if err == nil {
			t.Fatalf("expected error, got nil")
		}
	})

	t.Run("empty image path stored as NULL", func(t *testing.T) {
		repo, mock, cleanup := newMockThreadRepo(t)
		defer cleanup()

		noImage := thread
		noImage.ImagePath = ""

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(insertThreadSQL)).
			WithArgs(int64(1), "T1", "C1", nil, now, now).
			WillReturnResult(sqlmock.NewResult(12, 1))
		mock.ExpectCommit()

		if _, err := repo.Create(context.Background(), noImage); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestThreadRepository_GetByID(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		repo, mock, cleanup := newMockThreadRepo(t)
		defer cleanup()

		rows := sqlmock.NewRows(threadColumns).
			AddRow(11, 1, "T1", "C1", nil, now, now)
		mock.ExpectQuery(regexp.QuoteMeta(selectThreadSQL)).
			WithArgs(int64(11)).
			WillReturnRows(rows)

		got, err := repo.GetByID(context.Background(), 11)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got == nil || got.ID != 11 || got.UserID != 1 || got.ImagePath != "" {
			t.Fatalf("unexpected thread: %+v", got)
		}
	})

	t.Run("not found returns nil, nil", func(t *testing.T) {
		repo, mock, cleanup := newMockThreadRepo(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta(selectThreadSQL)).
			WithArgs(int64(404)).
			WillReturnRows(sqlmock.NewRows(threadColumns))

		got, err := repo.GetByID(context.Background(), 404)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != nil {
			t.Fatalf("expected nil thread, got %+v", got)
		}
	})
}

func TestThreadRepository_List(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("no filter lists all in insertion order", func(t *testing.T) {
		repo, mock, cleanup := newMockThreadRepo(t)
		defer cleanup()

		rows := sqlmock.NewRows(threadColumns).
			AddRow(1, 1, "first", "a", nil, now, now).
			AddRow(2, 2, "second", "b", "x.png", now, now)
		mock.ExpectQuery(regexp.QuoteMeta(listThreadsSQL)).
			WillReturnRows(rows)

		out, err := repo.List(context.Background(), "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out) != 2 || out[0].ID != 1 || out[1].ID != 2 {
			t.Fatalf("unexpected result: %+v", out)
		}
		if out[1].ImagePath != "x.png" {
			t.Fatalf("expected image path to round-trip, got %q", out[1].ImagePath)
		}
	})

	t.Run("filter uses substring match", func(t *testing.T) {
		repo, mock, cleanup := newMockThreadRepo(t)
		defer cleanup()

		rows := sqlmock.NewRows(threadColumns).
			AddRow(2, 2, "second", "b", nil, now, now)
		mock.ExpectQuery(regexp.QuoteMeta(listThreadsByTitleSQL)).
			WithArgs("eco").
			WillReturnRows(rows)

		out, err := repo.List(context.Background(), "eco")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out) != 1 || out[0].Title != "second" {
			t.Fatalf("unexpected result: %+v", out)
		}
	})

	t.Run("no match is empty, not an error", func(t *testing.T) {
		repo, mock, cleanup := newMockThreadRepo(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta(listThreadsByTitleSQL)).
			WithArgs("zzz").
			WillReturnRows(sqlmock.NewRows(threadColumns))

		out, err := repo.List(context.Background(), "zzz")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out) != 0 {
			t.Fatalf("expected empty result, got %+v", out)
		}
	})
}

func TestThreadRepository_ListByUser(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	repo, mock, cleanup := newMockThreadRepo(t)
	defer cleanup()

	rows := sqlmock.NewRows(threadColumns).
		AddRow(3, 7, "mine", "c", nil, now, now)
	mock.ExpectQuery(regexp.QuoteMeta(listThreadsByUserSQL)).
		WithArgs(int64(7)).
		WillReturnRows(rows)

	out, err := repo.ListByUser(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 || out[0].UserID != 7 {
		t.Fatalf("unexpected result: %+v", out)
	}
}

func TestThreadRepository_UpdateContent(t *testing.T) {
	updatedAt := time.Date(2025, 6, 1, 12, 5, 0, 0, time.UTC)

	t.Run("success commits", func(t *testing.T) {
		repo, mock, cleanup := newMockThreadRepo(t)
		defer cleanup()

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(updateThreadContentSQL)).
			WithArgs("C2", updatedAt, int64(11)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		if err := repo.UpdateContent(context.Background(), 11, "C2", updatedAt); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("zero rows rolls back with not found", func(t *testing.T) {
		repo, mock, cleanup := newMockThreadRepo(t)
		defer cleanup()

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(updateThreadContentSQL)).
			WithArgs("C2", updatedAt, int64(404)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.UpdateContent(context.Background(), 404, "C2", updatedAt)
		if apperr.KindOf(err) != apperr.KindNotFound {
			t.Fatalf("expected not-found error, got: %v", err)
		}
	})
}

func TestThreadRepository_Delete(t *testing.T) {
	t.Run("success commits", func(t *testing.T) {
		repo, mock, cleanup := newMockThreadRepo(t)
		defer cleanup()

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(deleteThreadSQL)).
			WithArgs(int64(11)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		if err := repo.Delete(context.Background(), 11); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("zero rows rolls back with not found", func(t *testing.T) {
		repo, mock, cleanup := newMockThreadRepo(t)
		defer cleanup()

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(deleteThreadSQL)).
			WithArgs(int64(404)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.Delete(context.Background(), 404)
		if apperr.KindOf(err) != apperr.KindNotFound {
			t.Fatalf("expected not-found error, got: %v", err)
		}
	})
}
