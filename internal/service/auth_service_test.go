package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"storefront/internal/auth"
	"storefront/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// MockTokenStore is a mock implementation of auth.TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

func hashFor(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestRegisterNewUser(t *testing.T) {
	userRepo := new(MockUserRepository)
	jwtService := auth.NewJWTService("test-secret")
	svc := NewAuthService(userRepo, jwtService, new(MockTokenStore))

	userRepo.On("FindByEmail", mock.Anything, "alice@example.com").Return(nil, gorm.ErrRecordNotFound)
	userRepo.On("FindByUsername", mock.Anything, "alice").Return(nil, gorm.ErrRecordNotFound)
	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

	user, err := svc.Register(context.Background(), "alice", "alice@example.com", "secret1", "1990-01-01")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NotEqual(t, "secret1", user.PasswordHash, "password must be hashed")

	userRepo.AssertExpectations(t)
}

func TestRegisterExistingEmail(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewAuthService(userRepo, auth.NewJWTService("test-secret"), new(MockTokenStore))

	existing := &model.User{ID: 1, Username: "alice", Email: "alice@example.com"}
	userRepo.On("FindByEmail", mock.Anything, "alice@example.com").Return(existing, nil)

	_, err := svc.Register(context.Background(), "other", "alice@example.com", "secret1", "")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestLoginSuccess(t *testing.T) {
	userRepo := new(MockUserRepository)
	jwtService := auth.NewJWTService("test-secret")
	svc := NewAuthService(userRepo, jwtService, new(MockTokenStore))

	stored := &model.User{ID: 7, Username: "alice", PasswordHash: hashFor(t, "secret1")}
	userRepo.On("FindByUsername", mock.Anything, "alice").Return(stored, nil)

	token, user, err := svc.Login(context.Background(), "alice", "secret1")
	require.NoError(t, err)
	assert.Equal(t, uint(7), user.ID)

	claims, err := jwtService.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.NotEmpty(t, claims.ID, "token must carry a JTI for revocation")
}

func TestLoginWrongPassword(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewAuthService(userRepo, auth.NewJWTService("test-secret"), new(MockTokenStore))

	stored := &model.User{ID: 7, Username: "alice", PasswordHash: hashFor(t, "secret1")}
	userRepo.On("FindByUsername", mock.Anything, "alice").Return(stored, nil)

	_, _, err := svc.Login(context.Background(), "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownUser(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewAuthService(userRepo, auth.NewJWTService("test-secret"), new(MockTokenStore))

	userRepo.On("FindByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

	_, _, err := svc.Login(context.Background(), "ghost", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogoutRevokesToken(t *testing.T) {
	userRepo := new(MockUserRepository)
	jwtService := auth.NewJWTService("test-secret")
	tokenStore := new(MockTokenStore)
	svc := NewAuthService(userRepo, jwtService, tokenStore)

	token, err := jwtService.GenerateToken(7, "alice")
	require.NoError(t, err)

	tokenStore.On("RevokeToken", mock.Anything, mock.AnythingOfType("string"), mock.AnythingOfType("time.Duration")).Return(nil)

	require.NoError(t, svc.Logout(context.Background(), token))
	tokenStore.AssertExpectations(t)
}

func TestLogoutBadToken(t *testing.T) {
	svc := NewAuthService(new(MockUserRepository), auth.NewJWTService("test-secret"), new(MockTokenStore))

	err := svc.Logout(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestChangePassword(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewAuthService(userRepo, auth.NewJWTService("test-secret"), new(MockTokenStore))

	stored := &model.User{ID: 7, Username: "alice", PasswordHash: hashFor(t, "old-pass")}
	userRepo.On("FindByID", mock.Anything, uint(7)).Return(stored, nil)
	userRepo.On("Update", mock.Anything, stored).Return(nil)

	require.NoError(t, svc.ChangePassword(context.Background(), 7, "old-pass", "new-pass"))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("new-pass")))
}

func TestChangePasswordWrongOld(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewAuthService(userRepo, auth.NewJWTService("test-secret"), new(MockTokenStore))

	stored := &model.User{ID: 7, Username: "alice", PasswordHash: hashFor(t, "old-pass")}
	userRepo.On("FindByID", mock.Anything, uint(7)).Return(stored, nil)

	err := svc.ChangePassword(context.Background(), 7, "not-old", "new-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
