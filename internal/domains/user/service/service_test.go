package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	bookmodel "readtrack-backend/internal/domains/book/model"
	recmodel "readtrack-backend/internal/domains/recommendation/model"
	"readtrack-backend/internal/domains/user/model"
	"readtrack-backend/internal/domains/user/service"
	"readtrack-backend/pkg/jwt"
)

// ===== MOCKS =====

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, id uuid.UUID, role string) error {
	args := m.Called(ctx, id, role)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, search *string, page, limit int) ([]*model.User, int, error) {
	args := m.Called(ctx, search, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*model.User), args.Int(1), args.Error(2)
}

func (m *MockUserRepository) DeleteCascade(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockUserRepository) ReviewedBookIDs(ctx context.Context, tx pgx.Tx, userID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, tx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	args := m.Called(ctx, key, dest)
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, keys ...string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}

func (m *MockCache) DeletePattern(ctx context.Context, pattern string) error {
	args := m.Called(ctx, pattern)
	return args.Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// ===== HELPERS =====

type testDeps struct {
	userRepo *MockUserRepository
	cache    *MockCache
	svc      service.ServiceInterface
}

func newTestService(t *testing.T) *testDeps {
	t.Helper()
	deps := &testDeps{
		userRepo: new(MockUserRepository),
		cache:    new(MockCache),
	}
	jwtManager := jwt.NewManager("test-secret", 15*time.Minute, 24*time.Hour)
	deps.svc = service.NewUserService(deps.userRepo, jwtManager, deps.cache)
	return deps
}

func assertUserCode(t *testing.T, err error, code string) {
	t.Helper()
	var userErr *model.UserError
	assert.ErrorAs(t, err, &userErr)
	assert.Equal(t, code, userErr.Code)
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hash)
}

// ===== TESTS =====

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		deps := newTestService(t)

		var created *model.User
		deps.userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
			created = u
			return u.Email == "jo@example.com" && u.Role == model.RoleUser && u.IsActive
		})).Return(nil).Once()

		resp, err := deps.svc.Register(ctx, model.RegisterRequest{
			Email:    "  Jo@Example.com ",
			Password: "hunter2hunter2",
			FullName: "Jo Reader",
		})

		assert.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)
		assert.Equal(t, "jo@example.com", resp.User.Email)

		// The stored hash must verify against the raw password
		assert.NoError(t, bcrypt.CompareHashAndPassword(
			[]byte(created.PasswordHash), []byte("hunter2hunter2")))
	})

	t.Run("EmailTaken", func(t *testing.T) {
		deps := newTestService(t)

		deps.userRepo.On("Create", mock.Anything, mock.Anything).
			Return(model.ErrEmailTaken).Once()

		_, err := deps.svc.Register(ctx, model.RegisterRequest{
			Email:    "jo@example.com",
			Password: "hunter2hunter2",
			FullName: "Jo Reader",
		})

		assertUserCode(t, err, model.ErrCodeEmailTaken)
	})

	t.Run("InvalidEmail", func(t *testing.T) {
		deps := newTestService(t)

		_, err := deps.svc.Register(ctx, model.RegisterRequest{
			Email:    "not-an-email",
			Password: "hunter2hunter2",
			FullName: "Jo Reader",
		})

		assert.Error(t, err)
		deps.userRepo.AssertNotCalled(t, "Create")
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	account := func(t *testing.T) *model.User {
		return &model.User{
			ID:           uuid.New(),
			Email:        "jo@example.com",
			PasswordHash: hashPassword(t, "hunter2hunter2"),
			FullName:     "Jo Reader",
			Role:         model.RoleUser,
			IsActive:     true,
		}
	}

	t.Run("Success", func(t *testing.T) {
		deps := newTestService(t)

		deps.userRepo.On("GetByEmail", mock.Anything, "jo@example.com").
			Return(account(t), nil).Once()

		resp, err := deps.svc.Login(ctx, model.LoginRequest{
			Email:    "Jo@Example.com",
			Password: "hunter2hunter2",
		})

		assert.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		deps := newTestService(t)

		deps.userRepo.On("GetByEmail", mock.Anything, "jo@example.com").
			Return(account(t), nil).Once()

		_, err := deps.svc.Login(ctx, model.LoginRequest{
			Email:    "jo@example.com",
			Password: "wrong-password",
		})

		assertUserCode(t, err, model.ErrCodeInvalidCredentials)
	})

	t.Run("UnknownEmailSameError", func(t *testing.T) {
		deps := newTestService(t)

		deps.userRepo.On("GetByEmail", mock.Anything, "ghost@example.com").
			Return(nil, model.ErrUserNotFound).Once()

		_, err := deps.svc.Login(ctx, model.LoginRequest{
			Email:    "ghost@example.com",
			Password: "whatever123",
		})

		assertUserCode(t, err, model.ErrCodeInvalidCredentials)
	})

	t.Run("DisabledAccount", func(t *testing.T) {
		deps := newTestService(t)

		disabled := account(t)
		disabled.IsActive = false
		deps.userRepo.On("GetByEmail", mock.Anything, "jo@example.com").
			Return(disabled, nil).Once()

		_, err := deps.svc.Login(ctx, model.LoginRequest{
			Email:    "jo@example.com",
			Password: "hunter2hunter2",
		})

		assertUserCode(t, err, model.ErrCodeAccountDisabled)
	})
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	existing := func() *model.User {
		return &model.User{
			ID:             userID,
			Email:          "jo@example.com",
			FullName:       "Jo Reader",
			Role:           model.RoleUser,
			FavoriteGenres: []string{"fantasy"},
			IsActive:       true,
		}
	}

	t.Run("GenreChangeInvalidatesRecommendations", func(t *testing.T) {
		deps := newTestService(t)

		deps.userRepo.On("GetByID", mock.Anything, userID).Return(existing(), nil).Once()
		deps.userRepo.On("UpdateProfile", mock.Anything, mock.Anything).Return(nil).Once()
		deps.cache.On("Delete", mock.Anything, []string{recmodel.CacheKey(userID)}).Return(nil).Once()

		resp, err := deps.svc.UpdateProfile(ctx, userID, model.UpdateProfileRequest{
			FavoriteGenres: []string{"scifi", "horror"},
		})

		assert.NoError(t, err)
		assert.Equal(t, []string{"scifi", "horror"}, resp.FavoriteGenres)
		deps.cache.AssertExpectations(t)
	})

	t.Run("NameOnlyChangeKeepsCache", func(t *testing.T) {
		deps := newTestService(t)
		newName := "Jo R."

		deps.userRepo.On("GetByID", mock.Anything, userID).Return(existing(), nil).Once()
		deps.userRepo.On("UpdateProfile", mock.Anything, mock.Anything).Return(nil).Once()

		resp, err := deps.svc.UpdateProfile(ctx, userID, model.UpdateProfileRequest{
			FullName: &newName,
		})

		assert.NoError(t, err)
		assert.Equal(t, "Jo R.", resp.FullName)
		deps.cache.AssertNotCalled(t, "Delete")
	})
}

func TestAdminDeleteUser(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("InvalidatesAffectedBooks", func(t *testing.T) {
		deps := newTestService(t)
		bookA := uuid.New()
		bookB := uuid.New()

		deps.userRepo.On("DeleteCascade", mock.Anything, userID).
			Return([]uuid.UUID{bookA, bookB}, nil).Once()
		deps.cache.On("Delete", mock.Anything, []string{
			recmodel.CacheKey(userID),
			bookmodel.CacheKey(bookA),
			bookmodel.CacheKey(bookB),
		}).Return(nil).Once()

		err := deps.svc.AdminDeleteUser(ctx, userID)

		assert.NoError(t, err)
		deps.cache.AssertExpectations(t)
	})

	t.Run("NotFound", func(t *testing.T) {
		deps := newTestService(t)

		deps.userRepo.On("DeleteCascade", mock.Anything, userID).
			Return(nil, model.ErrUserNotFound).Once()

		err := deps.svc.AdminDeleteUser(ctx, userID)

		assertUserCode(t, err, model.ErrCodeUserNotFound)
	})
}

func TestAdminUpdateRole(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		deps := newTestService(t)

		deps.userRepo.On("UpdateRole", mock.Anything, userID, model.RoleAdmin).Return(nil).Once()

		err := deps.svc.AdminUpdateRole(ctx, userID, model.UpdateRoleRequest{Role: model.RoleAdmin})

		assert.NoError(t, err)
	})

	t.Run("InvalidRole", func(t *testing.T) {
		deps := newTestService(t)

		err := deps.svc.AdminUpdateRole(ctx, userID, model.UpdateRoleRequest{Role: "superuser"})

		assert.Error(t, err)
		deps.userRepo.AssertNotCalled(t, "UpdateRole")
	})
}
