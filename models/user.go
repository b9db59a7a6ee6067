package models

import "strings"

// User represents the authenticated account as presented to the UI.
// It is derived strictly from the backend profile response; FirstName and
// LastName are a pure function of FullName and round-trip when re-joined
// with a single space.
type User struct {
	// ID is the backend identifier of the account.
	ID int64 `json:"id"`

	// Email is the contact and login address.
	Email string `json:"email"`

	// FullName is the canonical display name as stored by the backend.
	FullName string `json:"full_name"`

	// FirstName is the leading component of FullName, split for UI
	// convenience.
	FirstName string `json:"first_name"`

	// LastName is the remainder of FullName after the first component.
	LastName string `json:"last_name"`

	// IsVerified reports whether the account's email has been confirmed.
	IsVerified bool `json:"is_verified"`

	// Features lists the feature tags enabled for this account
	// (e.g. "banking", "stocks", "travel").
	Features []string `json:"features,omitempty"`
}

// SplitName populates FirstName and LastName from FullName.
// The first whitespace-separated field becomes FirstName; everything after
// it, joined with single spaces, becomes LastName.
func (u *User) SplitName() {
	u.FirstName, u.LastName = SplitFullName(u.FullName)
}

// JoinedName re-joins the split name with a single space. For canonical
// input it equals strings.TrimSpace(FullName).
func (u User) JoinedName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// SplitFullName splits a canonical full name into its first component and
// the rest.
func SplitFullName(full string) (first, last string) {
	fields := strings.Fields(full)
	if len(fields) == 0 {
		return "", ""
	}
	return fields[0], strings.Join(fields[1:], " ")
}

// UserProfile is the wire shape of GET /auth/me.
type UserProfile struct {
	ID         int64    `json:"id"`
	Email      string   `json:"email"`
	FullName   string   `json:"full_name"`
	IsVerified bool     `json:"is_verified"`
	Features   []string `json:"features"`
}

// User converts the wire profile into the UI-facing [User] with the name
// split applied.
func (p UserProfile) User() User {
	u := User{
		ID:         p.ID,
		Email:      p.Email,
		FullName:   p.FullName,
		IsVerified: p.IsVerified,
		Features:   p.Features,
	}
	u.SplitName()
	return u
}

// RegisterRequest is the wire shape of POST /auth/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// UpdateProfileRequest is the wire shape of PUT /auth/me. Zero-valued fields
// are omitted so the backend treats the body as a partial patch.
type UpdateProfileRequest struct {
	Email    string `json:"email,omitempty"`
	FullName string `json:"full_name,omitempty"`
}

// ChangePasswordRequest is the wire shape of POST /auth/change-password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// LoginRequest is the wire shape of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest is the wire shape of POST /auth/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}
