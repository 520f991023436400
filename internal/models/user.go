package models

import (
	"errors"
	"strings"
	"time"
)

const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
	RoleParent  = "parent"
	RoleStudent = "student"
)

var validRoles = map[string]struct{}{
	RoleAdmin: {}, RoleTeacher: {}, RoleParent: {}, RoleStudent: {},
}

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) Validate() error {
	if len(strings.TrimSpace(u.Name)) < 2 {
		return errors.New("name too short")
	}
	if !strings.Contains(u.Email, "@") {
		return errors.New("invalid email")
	}
	if u.Role == "" {
		u.Role = RoleStudent
	}
	if _, ok := validRoles[u.Role]; !ok {
		return errors.New("unknown role")
	}
	return nil
}
