package service

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"khata/internal/domain"
	"khata/internal/port"
)

const bcryptCost = 12

// RegisterInput is the DTO for signing up a new company with its first admin.
type RegisterInput struct {
	Company  CreateTenantInput `json:"company" binding:"required"`
	Email    string            `json:"email" binding:"required,email"`
	Password string            `json:"password" binding:"required,min=8"`
	FullName string            `json:"full_name" binding:"required"`
}

// RegisterOutput contains the results of a successful registration.
type RegisterOutput struct {
	Tenant *domain.Tenant `json:"tenant"`
	User   *domain.User   `json:"user"`
	Tokens *TokenPair     `json:"tokens"`
}

// RegistrationService defines the company sign-up contract.
type RegistrationService interface {
	Register(ctx context.Context, input RegisterInput) (*RegisterOutput, error)
}

type registrationService struct {
	tenantSvc TenantService
	userRepo  port.UserRepository
	authSvc   AuthService
	tx        port.Transactor
}

// NewRegistrationService creates a new RegistrationService.
func NewRegistrationService(
	tenantSvc TenantService,
	userRepo port.UserRepository,
	authSvc AuthService,
	tx port.Transactor,
) RegistrationService {
	return &registrationService{
		tenantSvc: tenantSvc,
		userRepo:  userRepo,
		authSvc:   authSvc,
		tx:        tx,
	}
}

// Register creates the tenant and its admin user in one transaction.
func (s *registrationService) Register(ctx context.Context, input RegisterInput) (*RegisterOutput, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	out := &RegisterOutput{}
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		tenant, err := s.tenantSvc.Create(ctx, input.Company)
		if err != nil {
			return err
		}
		user := &domain.User{
			TenantID:     tenant.ID,
			Email:        strings.ToLower(strings.TrimSpace(input.Email)),
			PasswordHash: string(hash),
			FullName:     strings.TrimSpace(input.FullName),
			Role:         domain.RoleAdmin,
			IsActive:     true,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return err
		}
		out.Tenant, out.User = tenant, user
		return nil
	})
	if err != nil {
		return nil, err
	}

	if out.Tokens, err = s.authSvc.IssueTokens(out.User); err != nil {
		return nil, err
	}
	return out, nil
}
