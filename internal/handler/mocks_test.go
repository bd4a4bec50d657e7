package handler_test

import (
	"access-request-server/config"
	"access-request-server/internal/handler"
	"access-request-server/internal/model"
	"access-request-server/internal/security"
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAccessRequestService struct{ mock.Mock }

func (m *MockAccessRequestService) request(args mock.Arguments) (*model.AccessRequest, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AccessRequest), args.Error(1)
}

func (m *MockAccessRequestService) Create(ctx context.Context, params model.NewAccessRequestParams) (*model.AccessRequest, error) {
	return m.request(m.Called(ctx, params))
}

func (m *MockAccessRequestService) ConfirmEmailByToken(ctx context.Context, token string) (*model.AccessRequest, error) {
	return m.request(m.Called(ctx, token))
}

func (m *MockAccessRequestService) QueryByReceiver(ctx context.Context, receiverUserID int64) ([]model.AccessRequest, error) {
	args := m.Called(ctx, receiverUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AccessRequest), args.Error(1)
}

func (m *MockAccessRequestService) GetByReceiver(ctx context.Context, requestID int64, receiverUserID int64) (*model.AccessRequest, error) {
	return m.request(m.Called(ctx, requestID, receiverUserID))
}

func (m *MockAccessRequestService) Accept(ctx context.Context, requestID int64, receiverUserID int64, message string, expiresAt *time.Time) (*model.AccessRequest, error) {
	return m.request(m.Called(ctx, requestID, receiverUserID, message, expiresAt))
}

func (m *MockAccessRequestService) Reject(ctx context.Context, requestID int64, receiverUserID int64, message string) (*model.AccessRequest, error) {
	return m.request(m.Called(ctx, requestID, receiverUserID, message))
}

type MockSecretLinkService struct{ mock.Mock }

func (m *MockSecretLinkService) Create(ctx context.Context, params model.NewSecretLinkParams) (*model.SecretLink, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SecretLink), args.Error(1)
}

func (m *MockSecretLinkService) QueryByOwner(ctx context.Context, ownerUserID int64) ([]model.SecretLink, error) {
	args := m.Called(ctx, ownerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SecretLink), args.Error(1)
}

func (m *MockSecretLinkService) RevokeOwned(ctx context.Context, linkID int64, ownerUserID int64) (bool, error) {
	args := m.Called(ctx, linkID, ownerUserID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSecretLinkService) AbsoluteURL(link *model.SecretLink, endpoint string) (string, error) {
	args := m.Called(link, endpoint)
	return args.String(0), args.Error(1)
}

type MockRecordFileService struct{ mock.Mock }

func (m *MockRecordFileService) DownloadURL(ctx context.Context, recordID int64, key string, token string, userID int64) (string, error) {
	args := m.Called(ctx, recordID, key, token, userID)
	return args.String(0), args.Error(1)
}

type MockRecordResolver struct{ mock.Mock }

func (m *MockRecordResolver) GetRecord(ctx context.Context, id int64) (*model.Record, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Record), args.Error(1)
}

type MockUserDirectory struct{ mock.Mock }

func (m *MockUserDirectory) FindByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

type testServer struct {
	router   chi.Router
	jwt      *security.JWTService
	requests *MockAccessRequestService
	links    *MockSecretLinkService
	files    *MockRecordFileService
	records  *MockRecordResolver
	users    *MockUserDirectory
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	jwtService, err := security.NewJWTService(&config.JWTConfig{SecretKey: "handler-test", AccessTokenTTL: "15m"})
	require.NoError(t, err)

	s := &testServer{
		router:   chi.NewRouter(),
		jwt:      jwtService,
		requests: &MockAccessRequestService{},
		links:    &MockSecretLinkService{},
		files:    &MockRecordFileService{},
		records:  &MockRecordResolver{},
		users:    &MockUserDirectory{},
	}

	handler.SetupAccessRequestRoutes(s.router, handler.NewAccessRequestHandler(s.requests, s.users), jwtService)
	handler.SetupSecretLinkRoutes(s.router, handler.NewSecretLinkHandler(s.links, s.records, "/records/{resource_id}"), jwtService)
	handler.SetupRecordFileRoutes(s.router, handler.NewRecordFileHandler(s.files), jwtService)

	return s
}

// do : userID == 0 отправляет анонимный запрос
func (s *testServer) do(t *testing.T, method, target, body string, userID int64) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != 0 {
		token, err := s.jwt.GenerateAccessToken(userID)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}
