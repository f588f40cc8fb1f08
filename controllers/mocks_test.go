package controllers_test

import (
	"context"
	"time"

	"cleanindia-be/models"
	"cleanindia-be/services"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	args := m.Called(ctx, name, email, password)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	args := m.Called(ctx, email, password)
	user, _ := args.Get(0).(*models.User)
	return user, args.String(1), args.Error(2)
}

func (m *MockAuthService) Me(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockAuthService) TokenTTL() time.Duration {
	return time.Hour
}

type MockComplaintService struct {
	mock.Mock
}

func (m *MockComplaintService) Submit(ctx context.Context, in services.SubmitInput) (*models.ComplaintView, error) {
	args := m.Called(ctx, in)
	view, _ := args.Get(0).(*models.ComplaintView)
	return view, args.Error(1)
}

func (m *MockComplaintService) History(ctx context.Context, owner primitive.ObjectID) ([]models.ComplaintView, error) {
	args := m.Called(ctx, owner)
	views, _ := args.Get(0).([]models.ComplaintView)
	return views, args.Error(1)
}

func (m *MockComplaintService) GetOwned(ctx context.Context, owner primitive.ObjectID, complaintID string) (*models.ComplaintView, error) {
	args := m.Called(ctx, owner, complaintID)
	view, _ := args.Get(0).(*models.ComplaintView)
	return view, args.Error(1)
}

func (m *MockComplaintService) AttachProof(ctx context.Context, owner primitive.ObjectID, complaintID string, video []byte) (*models.ComplaintView, error) {
	args := m.Called(ctx, owner, complaintID, video)
	view, _ := args.Get(0).(*models.ComplaintView)
	return view, args.Error(1)
}

type MockAdminService struct {
	mock.Mock
}

func (m *MockAdminService) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	args := m.Called(ctx)
	stats, _ := args.Get(0).(*models.DashboardStats)
	return stats, args.Error(1)
}

func (m *MockAdminService) ListUsers(ctx context.Context, page, limit int, search string) (*services.UserPage, error) {
	args := m.Called(ctx, page, limit, search)
	p, _ := args.Get(0).(*services.UserPage)
	return p, args.Error(1)
}

func (m *MockAdminService) DeactivateUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockAdminService) ListComplaints(ctx context.Context, q services.ComplaintQuery) (*services.ComplaintPage, error) {
	args := m.Called(ctx, q)
	p, _ := args.Get(0).(*services.ComplaintPage)
	return p, args.Error(1)
}

func (m *MockAdminService) GetComplaint(ctx context.Context, complaintID string) (*models.ComplaintView, error) {
	args := m.Called(ctx, complaintID)
	view, _ := args.Get(0).(*models.ComplaintView)
	return view, args.Error(1)
}

func (m *MockAdminService) UpdateComplaint(ctx context.Context, complaintID string, upd services.ComplaintUpdate, actor primitive.ObjectID) (*models.ComplaintView, error) {
	args := m.Called(ctx, complaintID, upd, actor)
	view, _ := args.Get(0).(*models.ComplaintView)
	return view, args.Error(1)
}

func (m *MockAdminService) ListModerators(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]models.User)
	return users, args.Error(1)
}

func (m *MockAdminService) CreateModerator(ctx context.Context, in services.CreateModeratorInput) (*models.User, error) {
	args := m.Called(ctx, in)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}
