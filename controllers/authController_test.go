package controllers_test

import (
	"net/http"
	"testing"

	"cleanindia-be/apperr"
	"cleanindia-be/controllers"
	"cleanindia-be/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newAuthRouter(svc *MockAuthService, production bool, user primitive.ObjectID) *gin.Engine {
	ctrl := controllers.NewAuthController(svc, controllers.CookieOptions{Domain: "localhost", Production: production}, quietLog())
	r := gin.New()
	r.POST("/auth/register", ctrl.RegisterUser)
	r.POST("/auth/login", ctrl.LoginUser)
	r.POST("/auth/logout", ctrl.LogoutUser)
	r.GET("/auth/me", asUser(user), ctrl.GetMe)
	return r
}

func TestRegisterUser(t *testing.T) {
	svc := new(MockAuthService)
	user := &models.User{ID: primitive.NewObjectID(), Name: "Asha", Email: "asha@example.com", Password: "$2a$10$hash", Role: models.RoleUser}
	svc.On("Register", mock.Anything, "Asha", "asha@example.com", "s3cret!").Return(user, nil)

	w := doJSON(newAuthRouter(svc, false, primitive.NilObjectID), http.MethodPost, "/auth/register",
		map[string]string{"name": "Asha", "email": "asha@example.com", "password": "s3cret!"})

	require.Equal(t, http.StatusCreated, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.NotContains(t, body["user"], "password")
	assert.NotContains(t, w.Body.String(), "$2a$10$hash")
}

func TestRegisterUser_Rejections(t *testing.T) {
	svc := new(MockAuthService)
	svc.On("Register", mock.Anything, "Asha", "taken@example.com", "s3cret!").Return(nil, apperr.Conflict("User already exists"))
	r := newAuthRouter(svc, false, primitive.NilObjectID)

	w := doJSON(r, http.MethodPost, "/auth/register", map[string]string{"name": "Asha", "password": "s3cret!"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "email is required", decode(t, w)["message"])

	w = doJSON(r, http.MethodPost, "/auth/register", map[string]string{"name": "Asha", "email": "taken@example.com", "password": "s3cret!"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "User already exists", body["message"])
}

func TestLoginUser_SetsCookie(t *testing.T) {
	svc := new(MockAuthService)
	user := &models.User{ID: primitive.NewObjectID(), Name: "Asha", Email: "asha@example.com"}
	svc.On("Login", mock.Anything, "asha@example.com", "s3cret!").Return(user, "signed.jwt.token", nil)

	w := doJSON(newAuthRouter(svc, true, primitive.NilObjectID), http.MethodPost, "/auth/login",
		map[string]string{"email": "asha@example.com", "password": "s3cret!"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "signed.jwt.token", decode(t, w)["token"])

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "token", cookies[0].Name)
	assert.Equal(t, "signed.jwt.token", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.True(t, cookies[0].Secure)
	assert.Equal(t, http.SameSiteNoneMode, cookies[0].SameSite)
	assert.Equal(t, 3600, cookies[0].MaxAge)
}

func TestLoginUser_Failures(t *testing.T) {
	svc := new(MockAuthService)
	svc.On("Login", mock.Anything, "asha@example.com", "wrong").Return(nil, "", apperr.Unauthenticated("Invalid credentials"))
	svc.On("Login", mock.Anything, "gone@example.com", "s3cret!").Return(nil, "", apperr.Forbidden("Account is deactivated"))
	r := newAuthRouter(svc, false, primitive.NilObjectID)

	w := doJSON(r, http.MethodPost, "/auth/login", map[string]string{"email": "asha@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, w.Result().Cookies())

	w = doJSON(r, http.MethodPost, "/auth/login", map[string]string{"email": "gone@example.com", "password": "s3cret!"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestLogoutUser_ClearsCookie(t *testing.T) {
	w := doJSON(newAuthRouter(new(MockAuthService), false, primitive.NilObjectID), http.MethodPost, "/auth/logout", nil)

	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "token", cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestGetMe(t *testing.T) {
	id := primitive.NewObjectID()
	svc := new(MockAuthService)
	svc.On("Me", mock.Anything, id).Return(&models.User{ID: id, Name: "Asha"}, nil)

	w := doJSON(newAuthRouter(svc, false, id), http.MethodGet, "/auth/me", nil)

	require.Equal(t, http.StatusOK, w.Code)
	user := decode(t, w)["user"].(map[string]any)
	assert.Equal(t, "Asha", user["name"])
}
