package service

import (
	"context"
	"io"

	"discussion_board/internal/models"
	"discussion_board/internal/repository"
)

type Authorization interface {
	SignUp(ctx context.Context, username, password, confirmPassword string) (int64, error)
	GenerateToken(ctx context.Context, username, password string) (string, error)
	ParseToken(accessToken string) (string, error)
	ResolveUser(ctx context.Context, accessToken string) (*models.User, error)
}

// ImageUpload is an attachment supplied with a thread creation request.
type ImageUpload struct {
	Filename    string
	ContentType string
	Data        io.Reader
}

// CreateThreadInput carries the fields for a new discussion thread.
type CreateThreadInput struct {
	Title   string
	Content string
	Image   *ImageUpload // optional
}

// Threads exposes the discussion-thread operations. Reads are public;
// mutations require the acting user and enforce ownership.
type Threads interface {
	List(ctx context.Context, searchTitle string) ([]models.DiscussionThread, error)
	ListByOwner(ctx context.Context, owner *models.User) ([]models.DiscussionThread, error)
	Create(ctx context.Context, owner *models.User, in CreateThreadInput) (models.DiscussionThread, error)
	Get(ctx context.Context, id int64) (models.DiscussionThread, error)
	Update(ctx context.Context, id int64, actor *models.User, content string) (models.DiscussionThread, error)
	Delete(ctx context.Context, id int64, actor *models.User) error
}

// ImageStore persists uploaded attachments outside the database.
type ImageStore interface {
	Save(filename string, data io.Reader) (string, error)
	Remove(path string) error
}

//
// Root Service aggregates all sub-services.
//

type Service struct {
	Authorization
	Threads
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, tokens TokenConfig, images ImageStore) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Users, tokens),
		Threads:       NewThreadService(repos.Threads, images),
	}
}
