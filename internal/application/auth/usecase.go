// Package auth authenticates staff accounts and issues JWTs.
package auth

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/clinicore/clinic-api/internal/application/dto"
	"github.com/clinicore/clinic-api/internal/domain"
	"github.com/clinicore/clinic-api/internal/domain/repository"
	"github.com/clinicore/clinic-api/internal/platform/loginguard"
	"github.com/clinicore/clinic-api/pkg/config"
	"github.com/clinicore/clinic-api/pkg/jwt"
	"github.com/clinicore/clinic-api/pkg/logger"
)

// UseCase handles login. Wrong email and wrong password both surface as
// ErrUnauthorized so the response does not leak which accounts exist.
type UseCase struct {
	userRepo repository.UserRepository
	guard    *loginguard.Guard
	jwtCfg   config.JWTConfig
	log      *logger.Logger
}

// NewUseCase constructs the use case.
func NewUseCase(userRepo repository.UserRepository, guard *loginguard.Guard, jwtCfg config.JWTConfig, log *logger.Logger) *UseCase {
	return &UseCase{userRepo: userRepo, guard: guard, jwtCfg: jwtCfg, log: log}
}

// Login verifies credentials and returns a signed token.
// Returns ErrTooManyAttempts while the account is throttled.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	if !uc.guard.Allowed(email) {
		uc.log.Warn().Str("email", email).Msg("login throttled")
		return nil, domain.ErrTooManyAttempts
	}

	user, err := uc.userRepo.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Status != "active" {
		uc.guard.Fail(email)
		return nil, domain.ErrUnauthorized
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		uc.guard.Fail(email)
		return nil, domain.ErrUnauthorized
	}
	uc.guard.Reset(email)

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.Expiration)
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("login ok")
	return &dto.LoginResponse{
		Token: token,
		User: dto.UserResponse{
			ID:        user.ID,
			Email:     user.Email,
			Name:      user.Name,
			Role:      user.Role,
			Status:    user.Status,
			CreatedAt: user.CreatedAt,
		},
	}, nil
}
