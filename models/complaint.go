package models

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ComplaintStatus enum
type ComplaintStatus string

const (
	StatusPending    ComplaintStatus = "pending"
	StatusInProgress ComplaintStatus = "in-progress"
	StatusResolved   ComplaintStatus = "resolved"
	StatusRejected   ComplaintStatus = "rejected"
)

func (s ComplaintStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusResolved, StatusRejected:
		return true
	}
	return false
}

// Priority enum
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type Location struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

// Valid reports whether both coordinates are finite and inside their ranges.
func (l Location) Valid() bool {
	if math.IsNaN(l.Lat) || math.IsNaN(l.Lng) || math.IsInf(l.Lat, 0) || math.IsInf(l.Lng, 0) {
		return false
	}
	return l.Lat >= -90 && l.Lat <= 90 && l.Lng >= -180 && l.Lng <= 180
}

// Complaint is a citizen report as stored in the complaints collection.
type Complaint struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	User        primitive.ObjectID  `bson:"user" json:"user"`
	Image       string              `bson:"image" json:"image"`
	Location    Location            `bson:"location" json:"location"`
	Address     string              `bson:"address" json:"address"`
	Name        string              `bson:"name" json:"name"`
	Phone       string              `bson:"phone" json:"phone"`
	Status      ComplaintStatus     `bson:"status" json:"status"`
	ProofVideo  string              `bson:"proofVideo" json:"proofVideo"`
	AdminNotes  string              `bson:"adminNotes" json:"adminNotes"`
	AssignedTo  *primitive.ObjectID `bson:"assignedTo,omitempty" json:"assignedTo,omitempty"`
	Priority    Priority            `bson:"priority" json:"priority"`
	SubmittedAt time.Time           `bson:"submittedAt" json:"submittedAt"`
	ResolvedAt  *time.Time          `bson:"resolvedAt,omitempty" json:"resolvedAt,omitempty"`
	UpdatedBy   *primitive.ObjectID `bson:"updatedBy,omitempty" json:"updatedBy,omitempty"`
}

// ComplaintView is a complaint with its user references populated.
type ComplaintView struct {
	Complaint
	User       *UserRef `json:"user"`
	AssignedTo *UserRef `json:"assignedTo,omitempty"`
	UpdatedBy  *UserRef `json:"updatedBy,omitempty"`
}

// ComplaintPatch holds the triage fields an admin may change. Nil means untouched;
// a non-nil empty AdminNotes clears the notes.
type ComplaintPatch struct {
	Status     *ComplaintStatus
	AdminNotes *string
	Priority   *Priority
	AssignedTo *primitive.ObjectID
}

// DashboardStats are the counters shown on the admin dashboard.
type DashboardStats struct {
	TotalUsers           int64 `json:"totalUsers"`
	TotalComplaints      int64 `json:"totalComplaints"`
	PendingComplaints    int64 `json:"pendingComplaints"`
	ResolvedComplaints   int64 `json:"resolvedComplaints"`
	InProgressComplaints int64 `json:"inProgressComplaints"`
	RecentComplaints     int64 `json:"recentComplaints"`
}
