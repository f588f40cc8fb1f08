package controllers

import (
	"context"
	"net/http"
	"time"

	"cleanindia-be/middlewares"
	"cleanindia-be/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	Me(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	TokenTTL() time.Duration
}

// CookieOptions control the auth cookie. Production cookies are Secure and
// sent cross-site.
type CookieOptions struct {
	Domain     string
	Production bool
}

type AuthController struct {
	Auth   AuthService
	Cookie CookieOptions
	Log    *logrus.Entry
}

func NewAuthController(auth AuthService, cookie CookieOptions, log *logrus.Entry) *AuthController {
	return &AuthController{Auth: auth, Cookie: cookie, Log: log}
}

// RegisterUser creates a citizen account.
func (ac *AuthController) RegisterUser(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required,max=50"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondFail(c, http.StatusBadRequest, bindingMessage(err))
		return
	}

	user, err := ac.Auth.Register(c.Request.Context(), input.Name, input.Email, input.Password)
	if err != nil {
		respondError(c, ac.Log, err)
		return
	}

	respondOK(c, http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user":    user,
	})
}

// LoginUser checks credentials and sets the token cookie. The token is also
// returned for clients that send it as a Bearer header.
func (ac *AuthController) LoginUser(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondFail(c, http.StatusBadRequest, bindingMessage(err))
		return
	}

	user, token, err := ac.Auth.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		respondError(c, ac.Log, err)
		return
	}

	ac.setCookie(c, token, int(ac.Auth.TokenTTL().Seconds()))
	respondOK(c, http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    user,
		"token":   token,
	})
}

// LogoutUser clears the token cookie.
func (ac *AuthController) LogoutUser(c *gin.Context) {
	ac.setCookie(c, "", -1)
	respondOK(c, http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// GetMe returns the authenticated user.
func (ac *AuthController) GetMe(c *gin.Context) {
	userID, ok := middlewares.UserID(c)
	if !ok {
		respondFail(c, http.StatusUnauthorized, "Unauthorized, no token")
		return
	}

	user, err := ac.Auth.Me(c.Request.Context(), userID)
	if err != nil {
		respondError(c, ac.Log, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"user": user})
}

func (ac *AuthController) setCookie(c *gin.Context, value string, maxAge int) {
	domain := ac.Cookie.Domain
	sameSite := http.SameSiteLaxMode
	// cross-origin cookies need SameSite=None, which browsers only accept with Secure
	if ac.Cookie.Production {
		domain = ""
		sameSite = http.SameSiteNoneMode
	}

	http.SetCookie(c.Writer, &http.Cookie{
		Name:     middlewares.TokenCookie,
		Value:    value,
		MaxAge:   maxAge,
		Path:     "/",
		Domain:   domain,
		Secure:   ac.Cookie.Production,
		HttpOnly: true,
		SameSite: sameSite,
	})
}
