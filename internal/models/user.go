package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultCredits is the allotment every account starts with and is reset to
// by the daily job.
const DefaultCredits = 40

// GenerationCost is the number of credits debited per successful generation.
const GenerationCost = 5

// User is a document in the accounts collection.
type User struct {
	ID        primitive.ObjectID `json:"id"         bson:"_id,omitempty"`
	Name      string             `json:"name"       bson:"name"`
	Email     string             `json:"email"      bson:"email"`
	Password  string             `json:"-"          bson:"password"` // never serialize
	Avatar    string             `json:"avatar"     bson:"avatar"`
	Credits   int                `json:"credits"    bson:"credits"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// PublicUser is the shape of the user object embedded in API responses.
type PublicUser struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Avatar  string `json:"avatar"`
	Credits int    `json:"credits"`
}

// Public returns the API view of the user, without the credential hash.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:      u.ID.Hex(),
		Name:    u.Name,
		Email:   u.Email,
		Avatar:  u.Avatar,
		Credits: u.Credits,
	}
}

// SignupRequest is the JSON body for POST /api/v1/signup.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Avatar   string `json:"avatar"`
}

// LoginRequest is the JSON body for POST /api/v1/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
