// Package store persists users and complaints in MongoDB.
package store

import (
	"context"
	"time"

	"cleanindia-be/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserStore is the identity store.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.User, error)
	List(ctx context.Context, filter UserFilter, page Page) ([]models.User, int64, error)
	Count(ctx context.Context, filter UserFilter) (int64, error)
	SetActive(ctx context.Context, id primitive.ObjectID, active bool) error
}

// ComplaintStore is the complaint store.
type ComplaintStore interface {
	Create(ctx context.Context, complaint *models.Complaint) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Complaint, error)
	FindOwned(ctx context.Context, owner, id primitive.ObjectID) (*models.Complaint, error)
	ListByOwner(ctx context.Context, owner primitive.ObjectID) ([]models.Complaint, error)
	List(ctx context.Context, filter ComplaintFilter, page Page, sort Sort) ([]models.Complaint, int64, error)
	Update(ctx context.Context, id primitive.ObjectID, patch models.ComplaintPatch, by primitive.ObjectID, now time.Time) (*models.Complaint, error)
	AttachProof(ctx context.Context, owner, id primitive.ObjectID, videoURL string, now time.Time) (*models.Complaint, error)
	Counts(ctx context.Context, since time.Time) (*ComplaintCounts, error)
}

// UserFilter selects users. Empty Roles means any role.
type UserFilter struct {
	Roles  []models.Role
	Search string
}

// ComplaintFilter selects complaints. Nil fields do not constrain the query.
type ComplaintFilter struct {
	Status   *models.ComplaintStatus
	Priority *models.Priority
	Search   string
}

// Page is a 1-based page of Limit items.
type Page struct {
	Page  int
	Limit int
}

func (p Page) Skip() int64 {
	return int64((p.Page - 1) * p.Limit)
}

// TotalPages returns ceil(total/limit).
func (p Page) TotalPages(total int64) int {
	if p.Limit <= 0 {
		return 0
	}
	return int((total + int64(p.Limit) - 1) / int64(p.Limit))
}

// Sort is a single-key ordering.
type Sort struct {
	Field string
	Desc  bool
}

// SortableComplaintFields are the complaint fields accepted as a sort key.
var SortableComplaintFields = map[string]bool{
	"submittedAt": true,
	"resolvedAt":  true,
	"status":      true,
	"priority":    true,
	"name":        true,
}

// ComplaintCounts aggregates complaint totals for the dashboard.
type ComplaintCounts struct {
	Total    int64
	ByStatus map[models.ComplaintStatus]int64
	Since    int64
}
