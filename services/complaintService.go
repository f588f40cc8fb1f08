// Package services implements the citizen, staff and account operations on top of
// the stores and the media uploader.
package services

import (
	"context"
	"strings"
	"time"

	"cleanindia-be/apperr"
	"cleanindia-be/media"
	"cleanindia-be/metrics"
	"cleanindia-be/models"
	"cleanindia-be/store"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ComplaintService handles the citizen-facing complaint operations.
type ComplaintService struct {
	Complaints store.ComplaintStore
	Users      store.UserStore
	Media      media.Uploader
	Now        func() time.Time
}

func NewComplaintService(complaints store.ComplaintStore, users store.UserStore, uploader media.Uploader) *ComplaintService {
	return &ComplaintService{
		Complaints: complaints,
		Users:      users,
		Media:      uploader,
		Now:        time.Now,
	}
}

// SubmitInput is a complaint as posted by a citizen. Lat and Lng are nil when the
// field was not sent.
type SubmitInput struct {
	Owner   primitive.ObjectID
	Name    string
	Phone   string
	Lat     *float64
	Lng     *float64
	Address string
	Image   []byte
}

// Submit uploads the image and stores a new pending complaint owned by in.Owner.
func (s *ComplaintService) Submit(ctx context.Context, in SubmitInput) (*models.ComplaintView, error) {
	if len(in.Image) == 0 {
		return nil, apperr.Validation("Image is required")
	}

	name := strings.TrimSpace(in.Name)
	phone := strings.TrimSpace(in.Phone)
	if name == "" || phone == "" || in.Lat == nil || in.Lng == nil {
		return nil, apperr.Validation("All fields are required")
	}

	location := models.Location{Lat: *in.Lat, Lng: *in.Lng}
	if !location.Valid() {
		return nil, apperr.Validation("Invalid coordinates")
	}

	if _, _, err := media.Detect(in.Image, media.KindImage); err != nil {
		return nil, apperr.Validation("Uploaded file must be an image")
	}

	imageURL, err := s.upload(ctx, in.Image, media.KindImage)
	if err != nil {
		return nil, err
	}

	complaint := &models.Complaint{
		User:        in.Owner,
		Image:       imageURL,
		Location:    location,
		Address:     strings.TrimSpace(in.Address),
		Name:        name,
		Phone:       phone,
		Status:      models.StatusPending,
		Priority:    models.PriorityMedium,
		SubmittedAt: s.Now(),
	}
	if err := s.Complaints.Create(ctx, complaint); err != nil {
		return nil, err
	}
	metrics.ComplaintsSubmitted.Inc()

	return populateOne(ctx, s.Users, complaint, citizenView)
}

// History returns every complaint owned by owner, newest first.
func (s *ComplaintService) History(ctx context.Context, owner primitive.ObjectID) ([]models.ComplaintView, error) {
	complaints, err := s.Complaints.ListByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}
	return populate(ctx, s.Users, complaints, citizenView)
}

// GetOwned returns the complaint only if owner submitted it.
func (s *ComplaintService) GetOwned(ctx context.Context, owner primitive.ObjectID, complaintID string) (*models.ComplaintView, error) {
	id, err := parseID(complaintID, "Complaint")
	if err != nil {
		return nil, err
	}

	complaint, err := s.Complaints.FindOwned(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	return populateOne(ctx, s.Users, complaint, citizenView)
}

// AttachProof uploads a resolution video and marks the complaint resolved. The
// complaint is only written after the upload succeeded.
func (s *ComplaintService) AttachProof(ctx context.Context, owner primitive.ObjectID, complaintID string, video []byte) (*models.ComplaintView, error) {
	if len(video) == 0 {
		return nil, apperr.Validation("Video is required")
	}
	id, err := parseID(complaintID, "Complaint")
	if err != nil {
		return nil, err
	}

	if _, err := s.Complaints.FindOwned(ctx, owner, id); err != nil {
		return nil, err
	}

	if _, _, err := media.Detect(video, media.KindVideo); err != nil {
		return nil, apperr.Validation("Uploaded file must be a video")
	}

	videoURL, err := s.upload(ctx, video, media.KindVideo)
	if err != nil {
		return nil, err
	}

	complaint, err := s.Complaints.AttachProof(ctx, owner, id, videoURL, s.Now())
	if err != nil {
		return nil, err
	}
	return populateOne(ctx, s.Users, complaint, citizenView)
}

func (s *ComplaintService) upload(ctx context.Context, data []byte, kind media.Kind) (string, error) {
	url, err := s.Media.Upload(ctx, data, kind)
	if err != nil {
		metrics.MediaUploads.WithLabelValues(string(kind), "error").Inc()
		return "", apperr.Upload(err)
	}
	metrics.MediaUploads.WithLabelValues(string(kind), "ok").Inc()
	return url, nil
}
