package models

import (
	"encoding/json"
	"strings"
)

// User is the account returned by the auth endpoints.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	Mobile   string `json:"mobile,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
}

// UnmarshalJSON accepts both "id" and the API's "_id".
func (u *User) UnmarshalJSON(b []byte) error {
	type alias User
	aux := struct {
		*alias
		MongoID string `json:"_id"`
	}{alias: (*alias)(u)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if u.ID == "" {
		u.ID = aux.MongoID
	}
	return nil
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// RoleOrGuest returns the user's role, or RoleGuest for a nil user.
func (u *User) RoleOrGuest() Role {
	if u == nil {
		return RoleGuest
	}
	return u.Role
}

// Clone returns a copy that shares no memory with u.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

// AuthPayload is the {user, token} pair returned by login, register and
// profile updates. It is also the exact shape of the persisted record.
type AuthPayload struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// Complete reports whether the payload carries both a user and a token.
func (p AuthPayload) Complete() bool {
	return p.User != nil && strings.TrimSpace(p.Token) != ""
}
