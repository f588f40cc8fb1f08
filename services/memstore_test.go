package services_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"cleanindia-be/apperr"
	"cleanindia-be/models"
	"cleanindia-be/store"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var errNotImplemented = errors.New("not implemented")

// memUsers is a read-mostly in-memory identity store for scenario tests.
type memUsers struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]models.User
}

func newMemUsers(users ...models.User) *memUsers {
	s := &memUsers{users: make(map[primitive.ObjectID]models.User)}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *memUsers) Create(context.Context, *models.User) error { return errNotImplemented }

func (s *memUsers) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, apperr.NotFound("User not found")
	}
	return &u, nil
}

func (s *memUsers) FindByEmail(context.Context, string) (*models.User, error) {
	return nil, errNotImplemented
}

func (s *memUsers) FindByIDs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[primitive.ObjectID]*models.User)
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			u := u
			out[id] = &u
		}
	}
	return out, nil
}

func (s *memUsers) List(context.Context, store.UserFilter, store.Page) ([]models.User, int64, error) {
	return nil, 0, errNotImplemented
}

func (s *memUsers) Count(context.Context, store.UserFilter) (int64, error) {
	return 0, errNotImplemented
}

func (s *memUsers) SetActive(context.Context, primitive.ObjectID, bool) error {
	return errNotImplemented
}

// memComplaints applies patches field by field under a lock, the way a single
// $set behaves on one document.
type memComplaints struct {
	mu         sync.Mutex
	complaints map[primitive.ObjectID]models.Complaint
}

func newMemComplaints() *memComplaints {
	return &memComplaints{complaints: make(map[primitive.ObjectID]models.Complaint)}
}

func (s *memComplaints) Create(_ context.Context, c *models.Complaint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	s.complaints[c.ID] = *c
	return nil
}

func (s *memComplaints) FindByID(_ context.Context, id primitive.ObjectID) (*models.Complaint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.complaints[id]
	if !ok {
		return nil, apperr.NotFound("Complaint not found")
	}
	return &c, nil
}

func (s *memComplaints) FindOwned(ctx context.Context, owner, id primitive.ObjectID) (*models.Complaint, error) {
	c, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.User != owner {
		return nil, apperr.NotFound("Complaint not found")
	}
	return c, nil
}

func (s *memComplaints) ListByOwner(context.Context, primitive.ObjectID) ([]models.Complaint, error) {
	return nil, errNotImplemented
}

func (s *memComplaints) List(context.Context, store.ComplaintFilter, store.Page, store.Sort) ([]models.Complaint, int64, error) {
	return nil, 0, errNotImplemented
}

func (s *memComplaints) Update(_ context.Context, id primitive.ObjectID, p models.ComplaintPatch, by primitive.ObjectID, now time.Time) (*models.Complaint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.complaints[id]
	if !ok {
		return nil, apperr.NotFound("Complaint not found")
	}
	c.UpdatedBy = &by
	if p.Status != nil {
		c.Status = *p.Status
		if *p.Status == models.StatusResolved {
			c.ResolvedAt = &now
		}
	}
	if p.AdminNotes != nil {
		c.AdminNotes = *p.AdminNotes
	}
	if p.Priority != nil {
		c.Priority = *p.Priority
	}
	if p.AssignedTo != nil {
		c.AssignedTo = p.AssignedTo
	}
	s.complaints[id] = c
	return &c, nil
}

func (s *memComplaints) AttachProof(_ context.Context, owner, id primitive.ObjectID, videoURL string, now time.Time) (*models.Complaint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.complaints[id]
	if !ok || c.User != owner {
		return nil, apperr.NotFound("Complaint not found")
	}
	c.ProofVideo = videoURL
	c.Status = models.StatusResolved
	c.ResolvedAt = &now
	s.complaints[id] = c
	return &c, nil
}

func (s *memComplaints) Counts(context.Context, time.Time) (*store.ComplaintCounts, error) {
	return nil, errNotImplemented
}
