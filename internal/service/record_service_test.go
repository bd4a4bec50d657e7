package service_test

import (
	"access-request-server/internal/model"
	"access-request-server/internal/service"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRecordRepository struct{ mock.Mock }

func (m *MockRecordRepository) GetByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*model.Record, error) {
	args := m.Called(ctx, exec, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Record), args.Error(1)
}

type MockCacheRepository struct{ mock.Mock }

func (m *MockCacheRepository) SetRecord(ctx context.Context, record *model.Record) error {
	return m.Called(ctx, record).Error(0)
}

func (m *MockCacheRepository) GetRecord(ctx context.Context, id int64) (*model.Record, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Record), args.Error(1)
}

type MockS3Storage struct{ mock.Mock }

func (m *MockS3Storage) GeneratePresignedGetURL(ctx context.Context, key string, expire time.Duration) (string, error) {
	args := m.Called(ctx, key, expire)
	return args.String(0), args.Error(1)
}

func TestRecordService_GetRecord_CacheHit(t *testing.T) {
	repo := &MockRecordRepository{}
	cache := &MockCacheRepository{}
	record := &model.Record{ID: 1, OwnerUserID: 10, Title: "Doc"}

	cache.On("GetRecord", mock.Anything, int64(1)).Return(record, nil)

	got, err := service.NewRecordService(repo, cache, fakeDB).GetRecord(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, record, got)
	repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything, mock.Anything)
}

func TestRecordService_GetRecord_CacheMissPopulatesCache(t *testing.T) {
	repo := &MockRecordRepository{}
	cache := &MockCacheRepository{}
	record := &model.Record{ID: 1, OwnerUserID: 10, Title: "Doc"}

	cache.On("GetRecord", mock.Anything, int64(1)).Return(nil, nil)
	repo.On("GetByID", mock.Anything, mock.Anything, int64(1)).Return(record, nil)
	cache.On("SetRecord", mock.Anything, record).Return(nil)

	got, err := service.NewRecordService(repo, cache, fakeDB).GetRecord(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, record, got)
	cache.AssertExpectations(t)
}

func TestRecordService_GetRecord_CacheDownFallsBackToDB(t *testing.T) {
	repo := &MockRecordRepository{}
	cache := &MockCacheRepository{}
	record := &model.Record{ID: 1}

	cache.On("GetRecord", mock.Anything, int64(1)).Return(nil, errors.New("redis down"))
	repo.On("GetByID", mock.Anything, mock.Anything, int64(1)).Return(record, nil)
	cache.On("SetRecord", mock.Anything, record).Return(errors.New("redis down"))

	got, err := service.NewRecordService(repo, cache, fakeDB).GetRecord(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, record, got)
}

func TestRecordService_GetRecord_NotFound(t *testing.T) {
	repo := &MockRecordRepository{}
	cache := &MockCacheRepository{}

	cache.On("GetRecord", mock.Anything, int64(5)).Return(nil, nil)
	repo.On("GetByID", mock.Anything, mock.Anything, int64(5)).Return(nil, &model.RecordNotFoundError{ResourceID: 5})

	got, err := service.NewRecordService(repo, cache, fakeDB).GetRecord(context.Background(), 5)
	require.NoError(t, err)
	assert.Nil(t, got)
	cache.AssertNotCalled(t, "SetRecord", mock.Anything, mock.Anything)
}

func TestRecordService_GetRecord_DBError(t *testing.T) {
	repo := &MockRecordRepository{}
	cache := &MockCacheRepository{}

	cache.On("GetRecord", mock.Anything, int64(5)).Return(nil, nil)
	repo.On("GetByID", mock.Anything, mock.Anything, int64(5)).Return(nil, errors.New("connection refused"))

	_, err := service.NewRecordService(repo, cache, fakeDB).GetRecord(context.Background(), 5)
	assert.Error(t, err)
}

func TestRecordFileService_DownloadURL(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	storage := &MockS3Storage{}
	files := service.NewRecordFileService(h.records, h.authorizer, storage, 15*time.Minute)

	h.records.On("GetRecord", mock.Anything, int64(2)).
		Return(&model.Record{ID: 2, OwnerUserID: 20, AccessRight: model.AccessRightOpen}, nil)
	h.records.On("GetRecord", mock.Anything, int64(3)).Return(nil, nil)
	storage.On("GeneratePresignedGetURL", mock.Anything, "records/1/data.csv", 15*time.Minute).
		Return("https://s3.example/records/1/data.csv?X-Amz-Signature=abc", nil)
	storage.On("GeneratePresignedGetURL", mock.Anything, "records/2/data.csv", 15*time.Minute).
		Return("https://s3.example/records/2/data.csv?X-Amz-Signature=def", nil)

	link := h.createLink(t, nil)

	t.Run("by secret link", func(t *testing.T) {
		url, err := files.DownloadURL(ctx, recordID, "data.csv", link.Token, 0)
		require.NoError(t, err)
		assert.Contains(t, url, "records/1/data.csv")
	})

	t.Run("by owner", func(t *testing.T) {
		_, err := files.DownloadURL(ctx, recordID, "data.csv", "", ownerID)
		require.NoError(t, err)
	})

	t.Run("open record", func(t *testing.T) {
		_, err := files.DownloadURL(ctx, 2, "data.csv", "", 0)
		require.NoError(t, err)
	})

	t.Run("no token", func(t *testing.T) {
		_, err := files.DownloadURL(ctx, recordID, "data.csv", "", 77)
		assert.ErrorIs(t, err, model.ErrForbidden)
	})

	t.Run("token for another record", func(t *testing.T) {
		other, err := h.linkService.Create(ctx, model.NewSecretLinkParams{
			Title:       "Other",
			OwnerUserID: ownerID,
			ExtraData:   map[string]any{"resource_id": int64(4)},
		})
		require.NoError(t, err)

		_, err = files.DownloadURL(ctx, recordID, "data.csv", other.Token, 0)
		assert.ErrorIs(t, err, model.ErrForbidden)
	})

	t.Run("missing record", func(t *testing.T) {
		_, err := files.DownloadURL(ctx, 3, "data.csv", link.Token, 0)
		assert.ErrorIs(t, err, model.ErrRecordNotFound)
	})

	t.Run("bad key", func(t *testing.T) {
		_, err := files.DownloadURL(ctx, recordID, "../secret", link.Token, 0)
		assert.ErrorIs(t, err, model.ErrInvalidInput)
	})
}
