package models

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// Role is the single closed set of identities; capabilities are checked per operation.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

// IsStaff reports whether the role may triage complaints.
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleModerator
}

type User struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name              string             `bson:"name" json:"name"`
	Email             string             `bson:"email" json:"email"`
	Password          string             `bson:"password,omitempty" json:"-"`
	Phone             string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Role              Role               `bson:"role" json:"role"`
	IsActive          bool               `bson:"isActive" json:"isActive"`
	IsAccountVerified bool               `bson:"isAccountVerified" json:"isAccountVerified"`

	// One-time codes written by the account verification flow. Never serialized.
	VerifyOTP         string `bson:"verifyOtp,omitempty" json:"-"`
	VerifyOTPExpireAt int64  `bson:"verifyOtpExpireAt,omitempty" json:"-"`
	ResetOTP          string `bson:"resetOtp,omitempty" json:"-"`
	ResetOTPExpireAt  int64  `bson:"resetOtpExpireAt,omitempty" json:"-"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// HashPassword is the only way a credential is turned into its stored form.
func HashPassword(plain string) (string, error) {
	if plain == "" {
		return "", errors.New("password is empty")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// SetPassword hashes plain and stores the hash on the user.
func (u *User) SetPassword(plain string) error {
	hashed, err := HashPassword(plain)
	if err != nil {
		return err
	}
	u.Password = hashed
	return nil
}

func (u *User) ComparePassword(candidate string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(candidate))
	return err == nil
}

// UserRef is the populated form of a user reference inside a complaint response.
type UserRef struct {
	ID    primitive.ObjectID `json:"id"`
	Name  string             `json:"name"`
	Email string             `json:"email,omitempty"`
	Phone string             `json:"phone,omitempty"`
}

// Ref projects the user onto the requested reference fields.
func (u *User) Ref(withEmail, withPhone bool) *UserRef {
	ref := &UserRef{ID: u.ID, Name: u.Name}
	if withEmail {
		ref.Email = u.Email
	}
	if withPhone {
		ref.Phone = u.Phone
	}
	return ref
}
