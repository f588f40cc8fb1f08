package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"cleanindia-be/apperr"
	"cleanindia-be/models"
	"cleanindia-be/store"
	authUtils "cleanindia-be/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Identity is what the auth gate resolves a token to.
type Identity struct {
	UserID primitive.ObjectID
	Role   models.Role
}

// AuthService issues and verifies tokens and owns account creation.
type AuthService struct {
	Users    store.UserStore
	secret   []byte
	tokenTTL time.Duration
	Now      func() time.Time
}

func NewAuthService(users store.UserStore, secret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		Users:    users,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		Now:      time.Now,
	}
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	return createAccount(ctx, s.Users, accountInput{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     models.RoleUser,
		Now:      s.Now(),
	})
}

// Login checks the credentials and returns the user with a fresh token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.Users.FindByEmail(ctx, email)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, "", apperr.Unauthenticated("Invalid credentials")
	}
	if err != nil {
		return nil, "", err
	}

	if !user.ComparePassword(password) {
		return nil, "", apperr.Unauthenticated("Invalid credentials")
	}
	if !user.IsActive {
		return nil, "", apperr.Forbidden("Account is deactivated")
	}

	token, err := authUtils.GenerateToken(s.secret, user.ID.Hex(), string(user.Role), s.tokenTTL)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) TokenTTL() time.Duration {
	return s.tokenTTL
}

// Verify resolves a token to an identity without touching the store.
func (s *AuthService) Verify(token string) (*Identity, error) {
	claims, err := authUtils.ParseToken(s.secret, token)
	if err != nil {
		return nil, apperr.Unauthenticated("Invalid token")
	}
	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, apperr.Unauthenticated("Invalid token")
	}
	return &Identity{UserID: id, Role: models.Role(claims.Role)}, nil
}

// AuthorizeStaff reloads the user so that role changes and deactivation take effect
// before the token expires.
func (s *AuthService) AuthorizeStaff(ctx context.Context, id primitive.ObjectID) (*Identity, error) {
	user, err := s.Users.FindByID(ctx, id)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.Forbidden("Access denied. Admin privileges required.")
	}
	if err != nil {
		return nil, err
	}
	if !user.Role.IsStaff() || !user.IsActive {
		return nil, apperr.Forbidden("Access denied. Admin privileges required.")
	}
	return &Identity{UserID: user.ID, Role: user.Role}, nil
}

func (s *AuthService) Me(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.Users.FindByID(ctx, id)
}

// EnsureAdmin creates the bootstrap admin account unless its email is taken.
func (s *AuthService) EnsureAdmin(ctx context.Context, name, email, password string) (bool, error) {
	_, err := createAccount(ctx, s.Users, accountInput{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     models.RoleAdmin,
		Verified: true,
		Now:      s.Now(),
	})
	if errors.Is(err, apperr.ErrConflict) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

type accountInput struct {
	Name     string
	Email    string
	Password string
	Role     models.Role
	Verified bool
	Now      time.Time
}

// createAccount is the single path that creates users and hashes their passwords.
func createAccount(ctx context.Context, users store.UserStore, in accountInput) (*models.User, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if name == "" || email == "" || in.Password == "" {
		return nil, apperr.Validation("Name, email and password are required")
	}

	_, err := users.FindByEmail(ctx, email)
	if err == nil {
		return nil, apperr.Conflict("User already exists")
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}

	user := &models.User{
		Name:              name,
		Email:             email,
		Role:              in.Role,
		IsActive:          true,
		IsAccountVerified: in.Verified,
		CreatedAt:         in.Now,
		UpdatedAt:         in.Now,
	}
	if err := user.SetPassword(in.Password); err != nil {
		return nil, apperr.Validation("Invalid password")
	}

	if err := users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
