package users

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/camfab-erp/camfab-erp/internal/shared"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, tenant shared.Tenant, req CreateUserRequest) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	id, err := s.repo.Create(ctx, User{
		OrgID:        tenant.OrgID,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Active:       true,
	})
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.Get(ctx, id)
}

// Authenticate returns the same error for an unknown email, a wrong password,
// and a deactivated user, so callers cannot probe which one failed.
func (s *Service) Authenticate(ctx context.Context, tenant shared.Tenant, req LoginRequest) (*User, error) {
	user, err := s.repo.GetByEmail(ctx, tenant.OrgID, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.Active {
		return nil, shared.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, shared.ErrInvalidCredentials
	}
	return user, nil
}
