package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/clinicore/clinic-api/internal/application/auth"
	"github.com/clinicore/clinic-api/internal/application/dto"
	"github.com/clinicore/clinic-api/internal/domain"
	"github.com/clinicore/clinic-api/internal/domain/entity"
	"github.com/clinicore/clinic-api/internal/platform/loginguard"
	"github.com/clinicore/clinic-api/pkg/config"
	"github.com/clinicore/clinic-api/pkg/jwt"
	"github.com/clinicore/clinic-api/pkg/logger"
)

type memUserRepo struct {
	users map[string]*entity.User // keyed by email
}

func (r *memUserRepo) Create(u *entity.User) error {
	r.users[u.Email] = u
	return nil
}

func (r *memUserRepo) FindByEmail(email string) (*entity.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "test-secret", Expiration: 60, Issuer: "clinicore"}
}

func newAuthFixture(t *testing.T) (*auth.UseCase, *memUserRepo) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &memUserRepo{users: map[string]*entity.User{}}
	_ = repo.Create(&entity.User{
		ID:           "user-1",
		Email:        "ana@clinic.test",
		PasswordHash: string(hash),
		Name:         "Ana",
		Role:         entity.RoleReceptionist,
		Status:       "active",
		CreatedAt:    time.Now(),
	})

	log := logger.New(logger.Config{Env: "test", Level: "error"})
	uc := auth.NewUseCase(repo, loginguard.New(3, 15*time.Minute), testJWTConfig(), log)
	return uc, repo
}

func TestLogin_Success(t *testing.T) {
	uc, _ := newAuthFixture(t)

	res, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@clinic.test", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, "user-1", res.User.ID)
	assert.Equal(t, entity.RoleReceptionist, res.User.Role)

	userID, role, err := jwt.Parse("test-secret", res.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, entity.RoleReceptionist, role)
}

func TestLogin_EmailCaseInsensitive(t *testing.T) {
	uc, _ := newAuthFixture(t)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "  Ana@Clinic.Test ", Password: "correct-horse"})
	assert.NoError(t, err)
}

func TestLogin_WrongPassword(t *testing.T) {
	uc, _ := newAuthFixture(t)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@clinic.test", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UnknownEmailSameError(t *testing.T) {
	uc, _ := newAuthFixture(t)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "nobody@clinic.test", Password: "whatever"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_DisabledAccount(t *testing.T) {
	uc, repo := newAuthFixture(t)
	repo.users["ana@clinic.test"].Status = "disabled"

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@clinic.test", Password: "correct-horse"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_ThrottledAfterRepeatedFailures(t *testing.T) {
	uc, _ := newAuthFixture(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := uc.Login(ctx, dto.LoginRequest{Email: "ana@clinic.test", Password: "wrong"})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	}

	// even the correct password is rejected while locked
	_, err := uc.Login(ctx, dto.LoginRequest{Email: "ana@clinic.test", Password: "correct-horse"})
	assert.ErrorIs(t, err, domain.ErrTooManyAttempts)
}

func TestLogin_SuccessResetsFailureCount(t *testing.T) {
	uc, _ := newAuthFixture(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, _ = uc.Login(ctx, dto.LoginRequest{Email: "ana@clinic.test", Password: "wrong"})
	}
	_, err := uc.Login(ctx, dto.LoginRequest{Email: "ana@clinic.test", Password: "correct-horse"})
	require.NoError(t, err)

	// counter starts over after the success
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ana@clinic.test", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_EmptyInput(t *testing.T) {
	uc, _ := newAuthFixture(t)

	_, err := uc.Login(context.Background(), dto.LoginRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
