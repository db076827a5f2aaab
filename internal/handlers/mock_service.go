package handlers

import (
	"context"
	"net/http"

	"discussion_board/internal/models"
	"discussion_board/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID    int64
	signUpErr   error
	genToken    string
	genTokenErr error
	parseSub    string
	parseErr    error
	resolveUser *models.User
	resolveErr  error

	lastSignUpUsername string
	lastSignUpPassword string
	lastSignUpConfirm  string
	lastGenUsername    string
	lastGenPassword    string
	lastResolveToken   string
}

func (m *mockAuth) SignUp(_ context.Context, username, password, confirmPassword string) (int64, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	m.lastSignUpConfirm = confirmPassword
	return m.signUpID, m.signUpErr
}

func (m *mockAuth) GenerateToken(_ context.Context, username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genToken, m.genTokenErr
}

func (m *mockAuth) ParseToken(token string) (string, error) {
	return m.parseSub, m.parseErr
}

func (m *mockAuth) ResolveUser(_ context.Context, token string) (*models.User, error) {
	m.lastResolveToken = token
	if m.resolveErr != nil {
		return nil, m.resolveErr
	}
	return m.resolveUser, nil
}

type mockThreads struct {
	listResp   []models.DiscussionThread
	listErr    error
	ownedResp  []models.DiscussionThread
	ownedErr   error
	createResp models.DiscussionThread
	createErr  error
	getResp    models.DiscussionThread
	getErr     error
	updateResp models.DiscussionThread
	updateErr  error
	deleteErr  error

	lastSearch  string
	lastCreate  service.CreateThreadInput
	lastUpdate  string
	lastID      int64
	createCalls int
	deleteCalls int
}

func (m *mockThreads) List(_ context.Context, searchTitle string) ([]models.DiscussionThread, error) {
	m.lastSearch = searchTitle
	return m.listResp, m.listErr
}

func (m *mockThreads) ListByOwner(_ context.Context, owner *models.User) ([]models.DiscussionThread, error) {
	return m.ownedResp, m.ownedErr
}

func (m *mockThreads) Create(_ context.Context, owner *models.User, in service.CreateThreadInput) (models.DiscussionThread, error) {
	m.lastCreate = in
	m.createCalls++
	return m.createResp, m.createErr
}

func (m *mockThreads) Get(_ context.Context, id int64) (models.DiscussionThread, error) {
	m.lastID = id
	return m.getResp, m.getErr
}

func (m *mockThreads) Update(_ context.Context, id int64, actor *models.User, content string) (models.DiscussionThread, error) {
	m.lastID = id
	m.lastUpdate = content
	return m.updateResp, m.updateErr
}

func (m *mockThreads) Delete(_ context.Context, id int64, actor *models.User) error {
	m.lastID = id
	m.deleteCalls++
	return m.deleteErr
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
