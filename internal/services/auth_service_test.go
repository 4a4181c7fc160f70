package services_test

import (
	"fmt"
	"testing"

	"looped/internal/models"
	"looped/internal/repositories"
	"looped/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a testify mock of repositories.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Count() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func notFoundErr(email string) error {
	return fmt.Errorf("user with email %s: %w", email, repositories.ErrNotFound)
}

func TestAuthService_RegisterUser(t *testing.T) {
	userRepo := new(MockUserRepository)
	auditRepo := repositories.NewMockAuditLogRepository()
	service := services.NewAuthService(userRepo, services.NewAuditService(auditRepo, nil), "test-secret")

	user := &models.User{Email: "buyer@looped.com", Password: "password123", Name: "Sample Buyer"}
	userRepo.On("GetByEmail", "buyer@looped.com").Return(nil, notFoundErr("buyer@looped.com")).Once()
	userRepo.On("Create", user).Run(func(args mock.Arguments) {
		args.Get(0).(*models.User).ID = "user-1"
	}).Return(nil).Once()

	err := service.RegisterUser(user)
	assert.NoError(t, err)
	userRepo.AssertExpectations(t)

	// Password was hashed before storage.
	assert.NotEqual(t, "password123", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))
	assert.Equal(t, models.RoleBuyer, user.Role)

	// Registration is audited as a self-performed user creation.
	entries, total, _ := auditRepo.Page(repositories.AuditLogFilter{}, 1, 10)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, models.AuditActionCreate, entries[0].Action)
	assert.Equal(t, models.AuditEntityUser, entries[0].Entity)
	assert.Equal(t, "user-1", entries[0].EntityID)
	assert.Equal(t, "user-1", entries[0].PerformedBy)
}

func TestAuthService_RegisterUserDuplicateEmail(t *testing.T) {
	userRepo := new(MockUserRepository)
	auditRepo := repositories.NewMockAuditLogRepository()
	service := services.NewAuthService(userRepo, services.NewAuditService(auditRepo, nil), "test-secret")

	existing := &models.User{ID: "user-1", Email: "buyer@looped.com"}
	userRepo.On("GetByEmail", "buyer@looped.com").Return(existing, nil).Once()

	err := service.RegisterUser(&models.User{Email: "buyer@looped.com", Password: "password123", Name: "Imposter"})
	assert.ErrorIs(t, err, services.ErrEmailTaken)

	// No user row was written and no audit entry was produced.
	userRepo.AssertNotCalled(t, "Create", mock.Anything)
	_, total, _ := auditRepo.Page(repositories.AuditLogFilter{}, 1, 10)
	assert.Equal(t, int64(0), total)
}

func TestAuthService_LoginUserIssuesRoleBearingToken(t *testing.T) {
	userRepo := new(MockUserRepository)
	auditRepo := repositories.NewMockAuditLogRepository()
	service := services.NewAuthService(userRepo, services.NewAuditService(auditRepo, nil), "test-secret")

	hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	assert.NoError(t, err)
	admin := &models.User{ID: "admin-1", Email: "admin@looped.com", Password: string(hashed), Role: models.RoleSuperadmin}
	userRepo.On("GetByEmail", "admin@looped.com").Return(admin, nil).Once()

	token, err := service.LoginUser("admin@looped.com", "admin123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := service.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "admin-1", claims["user_id"])
	assert.Equal(t, string(models.RoleSuperadmin), claims["role"])
}

func TestAuthService_LoginUserWrongPassword(t *testing.T) {
	userRepo := new(MockUserRepository)
	auditRepo := repositories.NewMockAuditLogRepository()
	service := services.NewAuthService(userRepo, services.NewAuditService(auditRepo, nil), "test-secret")

	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{ID: "user-1", Email: "buyer@looped.com", Password: string(hashed), Role: models.RoleBuyer}
	userRepo.On("GetByEmail", "buyer@looped.com").Return(user, nil).Once()

	_, err := service.LoginUser("buyer@looped.com", "wrong")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestAuthService_LoginUserUnknownEmail(t *testing.T) {
	userRepo := new(MockUserRepository)
	auditRepo := repositories.NewMockAuditLogRepository()
	service := services.NewAuthService(userRepo, services.NewAuditService(auditRepo, nil), "test-secret")

	userRepo.On("GetByEmail", "ghost@looped.com").Return(nil, notFoundErr("ghost@looped.com")).Once()

	_, err := service.LoginUser("ghost@looped.com", "whatever")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestAuthService_SessionFromHeader(t *testing.T) {
	userRepo := new(MockUserRepository)
	auditRepo := repositories.NewMockAuditLogRepository()
	service := services.NewAuthService(userRepo, services.NewAuditService(auditRepo, nil), "test-secret")

	hashed, _ := bcrypt.GenerateFromPassword([]byte("user123"), bcrypt.DefaultCost)
	buyer := &models.User{ID: "buyer-1", Email: "buyer@looped.com", Password: string(hashed), Role: models.RoleBuyer}
	userRepo.On("GetByEmail", "buyer@looped.com").Return(buyer, nil).Once()

	token, err := service.LoginUser("buyer@looped.com", "user123")
	assert.NoError(t, err)

	// Valid credential resolves to the authenticated session.
	session := service.SessionFromHeader("Bearer " + token)
	assert.True(t, session.Authenticated())
	assert.False(t, session.IsSuperadmin())
	assert.Equal(t, "buyer-1", session.UserID)
	assert.Equal(t, models.RoleBuyer, session.Role)

	// Anything short of a valid Bearer credential is anonymous.
	assert.Equal(t, services.Anonymous, service.SessionFromHeader(""))
	assert.Equal(t, services.Anonymous, service.SessionFromHeader(token))
	assert.Equal(t, services.Anonymous, service.SessionFromHeader("Basic "+token))
	assert.Equal(t, services.Anonymous, service.SessionFromHeader("Bearer not-a-token"))

	// A token signed with a different secret is rejected.
	other := services.NewAuthService(userRepo, services.NewAuditService(auditRepo, nil), "other-secret")
	assert.Equal(t, services.Anonymous, other.SessionFromHeader("Bearer "+token))
}
