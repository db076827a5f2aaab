package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"discussion_board/internal/apperr"
	"discussion_board/internal/models"
	"discussion_board/internal/repository"
)

// maxSearchTitleLen bounds the title search filter.
const maxSearchTitleLen = 20

// ThreadService orchestrates thread CRUD against the repository, enforcing
// ownership before any mutation.
type ThreadService struct {
	threads repository.Threads
	images  ImageStore
	now     func() time.Time
}

func NewThreadService(threads repository.Threads, images ImageStore) *ThreadService {
	return &ThreadService{threads: threads, images: images, now: time.Now}
}

var _ Threads = (*ThreadService)(nil)

// authorizeOwner is the single ownership check used by every mutating
// operation.
func authorizeOwner(user *models.User, thread *models.DiscussionThread) error {
	if thread.UserID != user.ID {
		return apperr.Forbidden("this is not your discussion thread")
	}
	return nil
}

// List returns threads in insertion order, optionally filtered to titles
// containing searchTitle (case-sensitive). An empty result is not an error.
func (s *ThreadService) List(ctx context.Context, searchTitle string) ([]models.DiscussionThread, error) {
	if len(searchTitle) > maxSearchTitleLen {
		return nil, apperr.Validation(fmt.Sprintf("search_title must be at most %d characters", maxSearchTitleLen))
	}
	return s.threads.List(ctx, searchTitle)
}

// ListByOwner returns the threads owned by the given user.
func (s *ThreadService) ListByOwner(ctx context.Context, owner *models.User) ([]models.DiscussionThread, error) {
	return s.threads.ListByUser(ctx, owner.ID)
}

// Create validates the input and optional attachment, then persists the
// thread. The attachment is validated before anything is written; if the row
// insert fails after the file was stored, the file is removed again so
// neither an orphaned row nor an orphaned file survives.
func (s *ThreadService) Create(ctx context.Context, owner *models.User, in CreateThreadInput) (models.DiscussionThread, error) {
	if strings.TrimSpace(in.Title) == "" {
		return models.DiscussionThread{}, apperr.Validation("title is required")
	}
	if strings.TrimSpace(in.Content) == "" {
		return models.DiscussionThread{}, apperr.Validation("content is required")
	}

	var imagePath string
	if in.Image != nil {
		if !strings.HasPrefix(in.Image.ContentType, "image/") {
			return models.DiscussionThread{}, apperr.Validation("uploaded file is not an image")
		}
		path, err := s.images.Save(in.Image.Filename, in.Image.Data)
		if err != nil {
			return models.DiscussionThread{}, err
		}
		imagePath = path
	}

	now := s.now().UTC()
	t := models.DiscussionThread{
		UserID:    owner.ID,
		Title:     in.Title,
		Content:   in.Content,
		ImagePath: imagePath,
		CreatedAt: now,
		UpdatedAt: now,
	}

	id, err := s.threads.Create(ctx, t)
	if err != nil {
		if imagePath != "" {
			_ = s.images.Remove(imagePath)
		}
		return models.DiscussionThread{}, err
	}
	t.ID = id
	return t, nil
}

// Get fetches a single thread.
func (s *ThreadService) Get(ctx context.Context, id int64) (models.DiscussionThread, error) {
	t, err := s.fetch(ctx, id)
	if err != nil {
		return models.DiscussionThread{}, err
	}
	return *t, nil
}

// Update replaces the content and refreshes updated_at. Blank content is
// rejected before any read or write; only the owner may update, anyone else
// gets Forbidden before anything is written.
func (s *ThreadService) Update(ctx context.Context, id int64, actor *models.User, content string) (models.DiscussionThread, error) {
	if strings.TrimSpace(content) == "" {
		return models.DiscussionThread{}, apperr.Validation("content is required")
	}
	t, err := s.fetch(ctx, id)
	if err != nil {
		return models.DiscussionThread{}, err
	}
	if err := authorizeOwner(actor, t); err != nil {
		return models.DiscussionThread{}, err
	}

	updatedAt := s.now().UTC()
	if err := s.threads.UpdateContent(ctx, id, content, updatedAt); err != nil {
		return models.DiscussionThread{}, err
	}
	t.Content = content
	t.UpdatedAt = updatedAt
	return *t, nil
}

// Delete permanently removes the thread. Owner only; hard delete.
func (s *ThreadService) Delete(ctx context.Context, id int64, actor *models.User) error {
	t, err := s.fetch(ctx, id)
	if err != nil {
		return err
	}
	if err := authorizeOwner(actor, t); err != nil {
		return err
	}
	return s.threads.Delete(ctx, id)
}

func (s *ThreadService) fetch(ctx context.Context, id int64) (*models.DiscussionThread, error) {
	t, err := s.threads.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, apperr.NotFound("discussion thread not found")
	}
	return t, nil
}
