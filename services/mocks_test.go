package services_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"cleanindia-be/media"
	"cleanindia-be/models"
	"cleanindia-be/store"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")
	mp4Bytes = []byte("\x00\x00\x00\x20ftypisom\x00\x00\x02\x00isomiso2avc1mp41\x00\x00\x00\x08free")
)

type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockUserStore) FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.User, error) {
	args := m.Called(ctx, ids)
	users, _ := args.Get(0).(map[primitive.ObjectID]*models.User)
	return users, args.Error(1)
}

func (m *MockUserStore) List(ctx context.Context, filter store.UserFilter, page store.Page) ([]models.User, int64, error) {
	args := m.Called(ctx, filter, page)
	users, _ := args.Get(0).([]models.User)
	return users, args.Get(1).(int64), args.Error(2)
}

func (m *MockUserStore) Count(ctx context.Context, filter store.UserFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserStore) SetActive(ctx context.Context, id primitive.ObjectID, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

type MockComplaintStore struct {
	mock.Mock
}

func (m *MockComplaintStore) Create(ctx context.Context, complaint *models.Complaint) error {
	args := m.Called(ctx, complaint)
	return args.Error(0)
}

func (m *MockComplaintStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Complaint, error) {
	args := m.Called(ctx, id)
	complaint, _ := args.Get(0).(*models.Complaint)
	return complaint, args.Error(1)
}

func (m *MockComplaintStore) FindOwned(ctx context.Context, owner, id primitive.ObjectID) (*models.Complaint, error) {
	args := m.Called(ctx, owner, id)
	complaint, _ := args.Get(0).(*models.Complaint)
	return complaint, args.Error(1)
}

func (m *MockComplaintStore) ListByOwner(ctx context.Context, owner primitive.ObjectID) ([]models.Complaint, error) {
	args := m.Called(ctx, owner)
	complaints, _ := args.Get(0).([]models.Complaint)
	return complaints, args.Error(1)
}

func (m *MockComplaintStore) List(ctx context.Context, filter store.ComplaintFilter, page store.Page, sort store.Sort) ([]models.Complaint, int64, error) {
	args := m.Called(ctx, filter, page, sort)
	complaints, _ := args.Get(0).([]models.Complaint)
	return complaints, args.Get(1).(int64), args.Error(2)
}

func (m *MockComplaintStore) Update(ctx context.Context, id primitive.ObjectID, patch models.ComplaintPatch, by primitive.ObjectID, now time.Time) (*models.Complaint, error) {
	args := m.Called(ctx, id, patch, by, now)
	complaint, _ := args.Get(0).(*models.Complaint)
	return complaint, args.Error(1)
}

func (m *MockComplaintStore) AttachProof(ctx context.Context, owner, id primitive.ObjectID, videoURL string, now time.Time) (*models.Complaint, error) {
	args := m.Called(ctx, owner, id, videoURL, now)
	complaint, _ := args.Get(0).(*models.Complaint)
	return complaint, args.Error(1)
}

func (m *MockComplaintStore) Counts(ctx context.Context, since time.Time) (*store.ComplaintCounts, error) {
	args := m.Called(ctx, since)
	counts, _ := args.Get(0).(*store.ComplaintCounts)
	return counts, args.Error(1)
}

// fakeUploader records uploads and hands out unique URLs.
type fakeUploader struct {
	mu    sync.Mutex
	err   error
	calls []media.Kind
}

func (f *fakeUploader) Upload(_ context.Context, data []byte, kind media.Kind) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, kind)
	if f.err != nil {
		return "", f.err
	}
	if len(data) == 0 {
		return "", errors.New("empty upload")
	}
	return "https://media.example/" + string(kind) + "/" + primitive.NewObjectID().Hex(), nil
}
