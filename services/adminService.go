package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"cleanindia-be/apperr"
	"cleanindia-be/models"
	"cleanindia-be/store"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	defaultPageLimit = 10
	recentWindow     = 7 * 24 * time.Hour
)

// AdminService handles the staff-facing operations.
type AdminService struct {
	Users      store.UserStore
	Complaints store.ComplaintStore
	Now        func() time.Time
}

func NewAdminService(users store.UserStore, complaints store.ComplaintStore) *AdminService {
	return &AdminService{Users: users, Complaints: complaints, Now: time.Now}
}

func (s *AdminService) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	totalUsers, err := s.Users.Count(ctx, store.UserFilter{Roles: []models.Role{models.RoleUser}})
	if err != nil {
		return nil, err
	}

	counts, err := s.Complaints.Counts(ctx, s.Now().Add(-recentWindow))
	if err != nil {
		return nil, err
	}

	return &models.DashboardStats{
		TotalUsers:           totalUsers,
		TotalComplaints:      counts.Total,
		PendingComplaints:    counts.ByStatus[models.StatusPending],
		ResolvedComplaints:   counts.ByStatus[models.StatusResolved],
		InProgressComplaints: counts.ByStatus[models.StatusInProgress],
		RecentComplaints:     counts.Since,
	}, nil
}

// UserPage is one page of citizen accounts.
type UserPage struct {
	Users       []models.User
	TotalPages  int
	CurrentPage int
	Total       int64
}

// ListUsers pages through accounts with role user, newest first. A page past the
// end is empty, not an error.
func (s *AdminService) ListUsers(ctx context.Context, page, limit int, search string) (*UserPage, error) {
	p := normalizePage(page, limit)

	users, total, err := s.Users.List(ctx, store.UserFilter{
		Roles:  []models.Role{models.RoleUser},
		Search: strings.TrimSpace(search),
	}, p)
	if err != nil {
		return nil, err
	}

	return &UserPage{
		Users:       users,
		TotalPages:  p.TotalPages(total),
		CurrentPage: p.Page,
		Total:       total,
	}, nil
}

// ComplaintQuery carries the raw listing parameters. "all" or empty Status and
// Priority do not filter.
type ComplaintQuery struct {
	Page      int
	Limit     int
	Status    string
	Priority  string
	Search    string
	SortBy    string
	SortOrder string
}

type ComplaintPage struct {
	Complaints  []models.ComplaintView
	TotalPages  int
	CurrentPage int
	Total       int64
}

func (s *AdminService) ListComplaints(ctx context.Context, q ComplaintQuery) (*ComplaintPage, error) {
	filter, err := complaintFilter(q)
	if err != nil {
		return nil, err
	}
	p := normalizePage(q.Page, q.Limit)

	sortBy := q.SortBy
	if !store.SortableComplaintFields[sortBy] {
		sortBy = "submittedAt"
	}
	sort := store.Sort{Field: sortBy, Desc: q.SortOrder == "" || q.SortOrder == "desc"}

	complaints, total, err := s.Complaints.List(ctx, filter, p, sort)
	if err != nil {
		return nil, err
	}

	views, err := populate(ctx, s.Users, complaints, listView)
	if err != nil {
		return nil, err
	}

	return &ComplaintPage{
		Complaints:  views,
		TotalPages:  p.TotalPages(total),
		CurrentPage: p.Page,
		Total:       total,
	}, nil
}

func complaintFilter(q ComplaintQuery) (store.ComplaintFilter, error) {
	var f store.ComplaintFilter

	if q.Status != "" && q.Status != "all" {
		status := models.ComplaintStatus(q.Status)
		if !status.Valid() {
			return f, apperr.Validation("Invalid status")
		}
		f.Status = &status
	}
	if q.Priority != "" && q.Priority != "all" {
		priority := models.Priority(q.Priority)
		if !priority.Valid() {
			return f, apperr.Validation("Invalid priority")
		}
		f.Priority = &priority
	}
	f.Search = strings.TrimSpace(q.Search)

	return f, nil
}

// ComplaintUpdate is an admin patch as received. Empty Status, Priority and
// AssignedTo are treated as absent; an empty AdminNotes clears the notes.
type ComplaintUpdate struct {
	Status     *string
	AdminNotes *string
	Priority   *string
	AssignedTo *string
}

// UpdateComplaint applies the present fields of upd in a single write and always
// records actor as the last updater.
func (s *AdminService) UpdateComplaint(ctx context.Context, complaintID string, upd ComplaintUpdate, actor primitive.ObjectID) (*models.ComplaintView, error) {
	id, err := parseID(complaintID, "Complaint")
	if err != nil {
		return nil, err
	}

	if _, err := s.Complaints.FindByID(ctx, id); err != nil {
		return nil, err
	}

	patch, err := s.buildPatch(ctx, upd)
	if err != nil {
		return nil, err
	}

	complaint, err := s.Complaints.Update(ctx, id, patch, actor, s.Now())
	if err != nil {
		return nil, err
	}
	return populateOne(ctx, s.Users, complaint, listView)
}

func (s *AdminService) buildPatch(ctx context.Context, upd ComplaintUpdate) (models.ComplaintPatch, error) {
	var patch models.ComplaintPatch

	if upd.Status != nil && *upd.Status != "" {
		status := models.ComplaintStatus(*upd.Status)
		if !status.Valid() {
			return patch, apperr.Validation("Invalid status")
		}
		patch.Status = &status
	}

	if upd.AdminNotes != nil {
		notes := *upd.AdminNotes
		patch.AdminNotes = &notes
	}

	if upd.Priority != nil && *upd.Priority != "" {
		priority := models.Priority(*upd.Priority)
		if !priority.Valid() {
			return patch, apperr.Validation("Invalid priority")
		}
		patch.Priority = &priority
	}

	if upd.AssignedTo != nil && *upd.AssignedTo != "" {
		assigneeID, err := parseID(*upd.AssignedTo, "Assignee")
		if err != nil {
			return patch, err
		}
		assignee, err := s.Users.FindByID(ctx, assigneeID)
		if errors.Is(err, apperr.ErrNotFound) {
			return patch, apperr.Validation("Assignee not found")
		}
		if err != nil {
			return patch, err
		}
		if !assignee.Role.IsStaff() || !assignee.IsActive {
			return patch, apperr.Validation("Complaints can only be assigned to active staff")
		}
		patch.AssignedTo = &assigneeID
	}

	return patch, nil
}

// GetComplaint returns any complaint with extended owner details.
func (s *AdminService) GetComplaint(ctx context.Context, complaintID string) (*models.ComplaintView, error) {
	id, err := parseID(complaintID, "Complaint")
	if err != nil {
		return nil, err
	}

	complaint, err := s.Complaints.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return populateOne(ctx, s.Users, complaint, detailView)
}

// DeactivateUser soft-deletes a non-admin account. Deactivating twice succeeds.
func (s *AdminService) DeactivateUser(ctx context.Context, userID string) error {
	id, err := parseID(userID, "User")
	if err != nil {
		return err
	}

	user, err := s.Users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if user.Role == models.RoleAdmin {
		return apperr.Forbidden("Cannot delete admin user")
	}
	if !user.IsActive {
		return nil
	}
	return s.Users.SetActive(ctx, id, false)
}

func (s *AdminService) ListModerators(ctx context.Context) ([]models.User, error) {
	users, _, err := s.Users.List(ctx, store.UserFilter{
		Roles: []models.Role{models.RoleAdmin, models.RoleModerator},
	}, store.Page{})
	return users, err
}

type CreateModeratorInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// CreateModerator creates a verified staff account. The password goes through the
// same hashing as registration.
func (s *AdminService) CreateModerator(ctx context.Context, in CreateModeratorInput) (*models.User, error) {
	role := models.RoleModerator
	if in.Role != "" {
		role = models.Role(in.Role)
	}
	if !role.IsStaff() {
		return nil, apperr.Validation("Role must be moderator or admin")
	}

	return createAccount(ctx, s.Users, accountInput{
		Name:     in.Name,
		Email:    in.Email,
		Password: in.Password,
		Role:     role,
		Verified: true,
		Now:      s.Now(),
	})
}

func normalizePage(page, limit int) store.Page {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	return store.Page{Page: page, Limit: limit}
}
