package models

import (
	"errors"
	"strings"
	"time"
)

type Subject struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	Level     string    `json:"level"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Subject) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return errors.New("name required")
	}
	if strings.TrimSpace(s.Code) == "" {
		return errors.New("code required")
	}
	return nil
}
