package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AminHassanDouale/ilmacademy-sub004/internal/auth"
	"github.com/AminHassanDouale/ilmacademy-sub004/internal/models"
	repo "github.com/AminHassanDouale/ilmacademy-sub004/internal/repository"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type UserService struct {
	users repo.Users
	tm    *auth.TokenManager
	audit *AuditService
}

func NewUserService(users repo.Users, tm *auth.TokenManager, audit *AuditService) *UserService {
	return &UserService{users: users, tm: tm, audit: audit}
}

func (s *UserService) Register(ctx context.Context, name, email, password, role string) (models.User, error) {
	u := models.User{Name: strings.TrimSpace(name), Email: strings.ToLower(strings.TrimSpace(email)), Role: role}
	if err := u.Validate(); err != nil {
		return models.User{}, fmt.Errorf("%w: %s", ErrValidation, err)
	}
	if len(password) < 8 {
		return models.User{}, fmt.Errorf("%w: password too short", ErrValidation)
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}
	created, err := s.users.Create(ctx, u.Name, u.Email, hash, u.Role)
	if err != nil {
		return models.User{}, err
	}
	_ = s.audit.Record(ctx, RecordInput{
		ActorID:     &created.ID,
		Verb:        models.VerbCreate,
		Description: fmt.Sprintf("Registered user %s (%s)", created.Name, created.Role),
		SubjectType: ptr("user"),
		SubjectID:   &created.ID,
	})
	return created, nil
}

func (s *UserService) Login(ctx context.Context, email, password string, meta map[string]any) (TokenPair, models.User, error) {
	u, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return TokenPair{}, models.User{}, ErrInvalidCredentials
		}
		return TokenPair{}, models.User{}, err
	}
	if err := auth.VerifyPassword(password, u.PasswordHash); err != nil {
		return TokenPair{}, models.User{}, ErrInvalidCredentials
	}
	access, refresh, exp, err := s.tm.GeneratePair(u.ID, u.Role)
	if err != nil {
		return TokenPair{}, models.User{}, err
	}
	_ = s.audit.Record(ctx, RecordInput{
		ActorID:     &u.ID,
		Verb:        models.VerbLogin,
		Description: fmt.Sprintf("%s logged in", u.Name),
		SubjectType: ptr("user"),
		SubjectID:   &u.ID,
		Metadata:    meta,
	})
	return TokenPair{AccessToken: access, RefreshToken: refresh, ExpiresAt: exp}, u, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) GetByID(ctx context.Context, id string) (models.User, error) {
	return s.users.GetByID(ctx, id)
}

func ptr(s string) *string { return &s }
