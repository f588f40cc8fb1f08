package controllers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"cleanindia-be/middlewares"
	"cleanindia-be/models"
	"cleanindia-be/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AdminService interface {
	DashboardStats(ctx context.Context) (*models.DashboardStats, error)
	ListUsers(ctx context.Context, page, limit int, search string) (*services.UserPage, error)
	DeactivateUser(ctx context.Context, userID string) error
	ListComplaints(ctx context.Context, q services.ComplaintQuery) (*services.ComplaintPage, error)
	GetComplaint(ctx context.Context, complaintID string) (*models.ComplaintView, error)
	UpdateComplaint(ctx context.Context, complaintID string, upd services.ComplaintUpdate, actor primitive.ObjectID) (*models.ComplaintView, error)
	ListModerators(ctx context.Context) ([]models.User, error)
	CreateModerator(ctx context.Context, in services.CreateModeratorInput) (*models.User, error)
}

type AdminController struct {
	Admin AdminService
	Log   *logrus.Entry
}

func NewAdminController(admin AdminService, log *logrus.Entry) *AdminController {
	return &AdminController{Admin: admin, Log: log}
}

func (ac *AdminController) GetDashboardStats(c *gin.Context) {
	stats, err := ac.Admin.DashboardStats(c.Request.Context())
	if err != nil {
		respondError(c, ac.Log, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"stats": stats})
}

// GetAllUsers pages through citizen accounts. Query: page, limit, search.
func (ac *AdminController) GetAllUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	result, err := ac.Admin.ListUsers(c.Request.Context(), page, limit, c.Query("search"))
	if err != nil {
		respondError(c, ac.Log, err)
		return
	}

	respondOK(c, http.StatusOK, gin.H{
		"users":       result.Users,
		"totalPages":  result.TotalPages,
		"currentPage": result.CurrentPage,
		"totalUsers":  result.Total,
	})
}

func (ac *AdminController) DeleteUser(c *gin.Context) {
	if err := ac.Admin.DeactivateUser(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, ac.Log, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"message": "User deactivated successfully"})
}

// GetAllComplaints lists complaints. Query: page, limit, status, priority,
// search, sortBy, sortOrder.
func (ac *AdminController) GetAllComplaints(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	result, err := ac.Admin.ListComplaints(c.Request.Context(), services.ComplaintQuery{
		Page:      page,
		Limit:     limit,
		Status:    c.Query("status"),
		Priority:  c.Query("priority"),
		Search:    c.Query("search"),
		SortBy:    c.DefaultQuery("sortBy", "submittedAt"),
		SortOrder: c.DefaultQuery("sortOrder", "desc"),
	})
	if err != nil {
		respondError(c, ac.Log, err)
		return
	}

	respondOK(c, http.StatusOK, gin.H{
		"complaints":      result.Complaints,
		"totalPages":      result.TotalPages,
		"currentPage":     result.CurrentPage,
		"totalComplaints": result.Total,
	})
}

func (ac *AdminController) GetComplaintDetails(c *gin.Context) {
	complaint, err := ac.Admin.GetComplaint(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, ac.Log, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"complaint": complaint})
}

// UpdateComplaintStatus applies a partial update. Absent fields are left alone.
func (ac *AdminController) UpdateComplaintStatus(c *gin.Context) {
	actor, ok := middlewares.UserID(c)
	if !ok {
		respondFail(c, http.StatusUnauthorized, "Unauthorized, no token")
		return
	}

	var input struct {
		Status     *string `json:"status"`
		AdminNotes *string `json:"adminNotes" binding:"omitempty,max=2000"`
		Priority   *string `json:"priority"`
		AssignedTo *string `json:"assignedTo" binding:"omitempty,objectid"`
	}
	// a missing body is an empty patch
	if err := c.ShouldBindJSON(&input); err != nil && !errors.Is(err, io.EOF) {
		respondFail(c, http.StatusBadRequest, bindingMessage(err))
		return
	}

	complaint, err := ac.Admin.UpdateComplaint(c.Request.Context(), c.Param("id"), services.ComplaintUpdate{
		Status:     input.Status,
		AdminNotes: input.AdminNotes,
		Priority:   input.Priority,
		AssignedTo: input.AssignedTo,
	}, actor)
	if err != nil {
		respondError(c, ac.Log, err)
		return
	}

	respondOK(c, http.StatusOK, gin.H{
		"message":   "Complaint updated successfully",
		"complaint": complaint,
	})
}

func (ac *AdminController) GetModerators(c *gin.Context) {
	moderators, err := ac.Admin.ListModerators(c.Request.Context())
	if err != nil {
		respondError(c, ac.Log, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"moderators": moderators})
}

func (ac *AdminController) CreateModerator(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required,max=50"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
		Role     string `json:"role" binding:"omitempty,oneof=moderator admin"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondFail(c, http.StatusBadRequest, bindingMessage(err))
		return
	}

	moderator, err := ac.Admin.CreateModerator(c.Request.Context(), services.CreateModeratorInput{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
		Role:     input.Role,
	})
	if err != nil {
		respondError(c, ac.Log, err)
		return
	}

	respondOK(c, http.StatusOK, gin.H{
		"message": "Moderator created successfully",
		"moderator": gin.H{
			"id":    moderator.ID,
			"name":  moderator.Name,
			"email": moderator.Email,
			"role":  moderator.Role,
		},
	})
}
