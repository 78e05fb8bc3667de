package auth

import (
	"time"

	"github.com/hms/hms/pkg/wire"
)

type Role string

const (
	RolePatient  Role = "patient"
	RoleDoctor   Role = "doctor"
	RoleHospital Role = "hospital"
)

var validRoles = map[Role]bool{
	RolePatient: true, RoleDoctor: true, RoleHospital: true,
}

// User is the signed-in identity. It lives for one session.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Role      Role      `json:"role"`
	Token     string    `json:"token,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// userRecord is the user as the backend sends it; any field may be missing.
type userRecord struct {
	ID        *string `json:"id"`
	UserID    *string `json:"user_id"`
	Name      *string `json:"name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	Role      *string `json:"role"`
	Token     *string `json:"token"`
	CreatedAt *string `json:"created_at"`
	UpdatedAt *string `json:"updated_at"`
}

// authResponse covers both shapes the backend answers with: a nested user
// next to the token, or the user fields at the top level.
type authResponse struct {
	userRecord
	User        *userRecord `json:"user"`
	AccessToken *string     `json:"access_token"`
}

func mapUser(r userRecord) User {
	return User{
		ID:        wire.Str(r.ID, wire.Str(r.UserID, "")),
		Name:      wire.Str(r.Name, ""),
		Email:     wire.Str(r.Email, ""),
		Phone:     wire.Str(r.Phone, ""),
		Role:      Role(wire.Str(r.Role, string(RolePatient))),
		Token:     wire.Str(r.Token, ""),
		CreatedAt: wire.Time(r.CreatedAt),
		UpdatedAt: wire.Time(r.UpdatedAt),
	}
}

func (r authResponse) toUser() User {
	u := mapUser(r.userRecord)
	if r.User != nil {
		nested := mapUser(*r.User)
		if nested.Token == "" {
			nested.Token = u.Token
		}
		u = nested
	}
	if u.Token == "" {
		u.Token = wire.Str(r.AccessToken, "")
	}
	return u
}
