package controllers

import (
	"context"
	"errors"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"cleanindia-be/apperr"
	"cleanindia-be/middlewares"
	"cleanindia-be/models"
	"cleanindia-be/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ComplaintService interface {
	Submit(ctx context.Context, in services.SubmitInput) (*models.ComplaintView, error)
	History(ctx context.Context, owner primitive.ObjectID) ([]models.ComplaintView, error)
	GetOwned(ctx context.Context, owner primitive.ObjectID, complaintID string) (*models.ComplaintView, error)
	AttachProof(ctx context.Context, owner primitive.ObjectID, complaintID string, video []byte) (*models.ComplaintView, error)
}

type ComplaintController struct {
	Complaints     ComplaintService
	MaxUploadBytes int64
	Log            *logrus.Entry
}

func NewComplaintController(complaints ComplaintService, maxUploadBytes int64, log *logrus.Entry) *ComplaintController {
	return &ComplaintController{Complaints: complaints, MaxUploadBytes: maxUploadBytes, Log: log}
}

// SubmitComplaint accepts a multipart form with an image and the reporter's
// details.
func (cc *ComplaintController) SubmitComplaint(c *gin.Context) {
	owner, ok := middlewares.UserID(c)
	if !ok {
		respondFail(c, http.StatusUnauthorized, "Unauthorized, no token")
		return
	}

	image, err := cc.formFile(c, "image")
	if err != nil {
		respondError(c, cc.Log, err)
		return
	}

	complaint, err := cc.Complaints.Submit(c.Request.Context(), services.SubmitInput{
		Owner:   owner,
		Name:    c.PostForm("name"),
		Phone:   c.PostForm("phone"),
		Lat:     formFloat(c, "lat"),
		Lng:     formFloat(c, "lng"),
		Address: c.PostForm("address"),
		Image:   image,
	})
	if err != nil {
		respondError(c, cc.Log, err)
		return
	}

	respondOK(c, http.StatusOK, gin.H{
		"message":   "Complaint submitted successfully",
		"complaint": complaint,
	})
}

// GetComplaintHistory lists the caller's complaints, newest first.
func (cc *ComplaintController) GetComplaintHistory(c *gin.Context) {
	owner, ok := middlewares.UserID(c)
	if !ok {
		respondFail(c, http.StatusUnauthorized, "Unauthorized, no token")
		return
	}

	complaints, err := cc.Complaints.History(c.Request.Context(), owner)
	if err != nil {
		respondError(c, cc.Log, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"complaints": complaints})
}

// UploadProof attaches a resolution video to one of the caller's complaints.
func (cc *ComplaintController) UploadProof(c *gin.Context) {
	owner, ok := middlewares.UserID(c)
	if !ok {
		respondFail(c, http.StatusUnauthorized, "Unauthorized, no token")
		return
	}

	video, err := cc.formFile(c, "video")
	if err != nil {
		respondError(c, cc.Log, err)
		return
	}

	complaint, err := cc.Complaints.AttachProof(c.Request.Context(), owner, c.PostForm("complaintId"), video)
	if err != nil {
		respondError(c, cc.Log, err)
		return
	}

	respondOK(c, http.StatusOK, gin.H{
		"message":   "Proof uploaded successfully",
		"complaint": complaint,
	})
}

// GetComplaint returns one of the caller's complaints. Other users' complaints
// are reported as not found.
func (cc *ComplaintController) GetComplaint(c *gin.Context) {
	owner, ok := middlewares.UserID(c)
	if !ok {
		respondFail(c, http.StatusUnauthorized, "Unauthorized, no token")
		return
	}

	complaint, err := cc.Complaints.GetOwned(c.Request.Context(), owner, c.Param("id"))
	if err != nil {
		respondError(c, cc.Log, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"complaint": complaint})
}

// formFile reads an optional multipart file. A missing file yields nil data so
// the service can report which field is required.
func (cc *ComplaintController) formFile(c *gin.Context, field string) ([]byte, error) {
	if cc.MaxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, cc.MaxUploadBytes)
	}

	header, err := c.FormFile(field)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, apperr.Validation("Uploaded file is too large")
		}
		return nil, nil
	}

	f, err := header.Open()
	if err != nil {
		return nil, apperr.Validation("Could not read uploaded file")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, apperr.Validation("Could not read uploaded file")
	}
	return data, nil
}

// formFloat returns nil for a missing field and NaN for one that does not parse.
func formFloat(c *gin.Context, field string) *float64 {
	raw := strings.TrimSpace(c.PostForm(field))
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		v = math.NaN()
	}
	return &v
}
