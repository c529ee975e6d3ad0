package v1

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-dogwalking-backend/internal/domain"
	"go-dogwalking-backend/internal/usecase"
	"go-dogwalking-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Mock Repositories
type MockWalkerRepo struct {
	mock.Mock
}

func (m *MockWalkerRepo) FetchPool(ctx context.Context, filter *domain.WalkerFilter) ([]domain.Walker, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Walker), args.Error(1)
}

func (m *MockWalkerRepo) FetchPage(ctx context.Context, limit, offset int) ([]domain.Walker, int64, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Walker), args.Get(1).(int64), args.Error(2)
}

func (m *MockWalkerRepo) GetByUserID(ctx context.Context, userID string) (*domain.Walker, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Walker), args.Error(1)
}

func (m *MockWalkerRepo) Create(ctx context.Context, walker *domain.Walker) error {
	return m.Called(ctx, walker).Error(0)
}

func (m *MockWalkerRepo) Update(ctx context.Context, walker *domain.Walker) error {
	return m.Called(ctx, walker).Error(0)
}

type MockProfileRepo struct {
	mock.Mock
}

func (m *MockProfileRepo) GetByUserIDs(ctx context.Context, userIDs []string) (map[string]domain.WalkerProfile, error) {
	args := m.Called(ctx, userIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.WalkerProfile), args.Error(1)
}

func (m *MockProfileRepo) GetByUserID(ctx context.Context, userID string) (*domain.WalkerProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WalkerProfile), args.Error(1)
}

// authedTestContext builds a gin context the way the auth middleware leaves
// it: identity stored under plain string keys via c.Set. The handlers must
// translate that into the typed-key context the usecases read.
func authedTestContext(t *testing.T, method, path, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest(method, path, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	c.Set(string(domain.KeyUserID), "walker-1")
	c.Set(string(domain.KeyUserEmail), "walker@example.com")
	c.Set(string(domain.KeyUserRole), domain.RoleWalker)

	return c, w
}

func TestWalkerHandlerMyListing(t *testing.T) {
	t.Run("Resolves the user the middleware stored on the gin context", func(t *testing.T) {
		walkerRepo := new(MockWalkerRepo)
		profileRepo := new(MockProfileRepo)
		handler := &WalkerHandler{
			walkerUC: usecase.NewWalkerUsecase(walkerRepo, profileRepo, validation.New()),
		}

		walkerRepo.On("GetByUserID", mock.Anything, "walker-1").
			Return(&domain.Walker{ID: 1, UserID: "walker-1"}, nil)

		c, w := authedTestContext(t, http.MethodGet, "/v1/walkers/me", "")
		handler.MyListing(c)

		assert.Empty(t, c.Errors)
		assert.Equal(t, http.StatusOK, w.Code)
		walkerRepo.AssertExpectations(t)
	})

	t.Run("Rejects when the middleware set no user", func(t *testing.T) {
		walkerRepo := new(MockWalkerRepo)
		profileRepo := new(MockProfileRepo)
		handler := &WalkerHandler{
			walkerUC: usecase.NewWalkerUsecase(walkerRepo, profileRepo, validation.New()),
		}

		gin.SetMode(gin.TestMode)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/v1/walkers/me", nil)

		handler.MyListing(c)

		assert.Len(t, c.Errors, 1)
		walkerRepo.AssertNotCalled(t, "GetByUserID", mock.Anything, mock.Anything)
	})
}

func TestWalkerHandlerUpdateMyListing(t *testing.T) {
	t.Run("Forces the authenticated user id onto the listing", func(t *testing.T) {
		walkerRepo := new(MockWalkerRepo)
		profileRepo := new(MockProfileRepo)
		handler := &WalkerHandler{
			walkerUC: usecase.NewWalkerUsecase(walkerRepo, profileRepo, validation.New()),
		}

		walkerRepo.On("GetByUserID", mock.Anything, "walker-1").Return(nil, nil)
		walkerRepo.On("Create", mock.Anything, mock.MatchedBy(func(wk *domain.Walker) bool {
			return wk.UserID == "walker-1"
		})).Return(nil)

		c, w := authedTestContext(t, http.MethodPut, "/v1/walkers/me",
			`{"user_id":"someone-else","hourly_rate":12,"services":["walking"]}`)
		handler.UpdateMyListing(c)

		assert.Empty(t, c.Errors)
		assert.Equal(t, http.StatusOK, w.Code)
		walkerRepo.AssertExpectations(t)
	})

	t.Run("Rejects owners", func(t *testing.T) {
		walkerRepo := new(MockWalkerRepo)
		profileRepo := new(MockProfileRepo)
		handler := &WalkerHandler{
			walkerUC: usecase.NewWalkerUsecase(walkerRepo, profileRepo, validation.New()),
		}

		c, _ := authedTestContext(t, http.MethodPut, "/v1/walkers/me", `{"hourly_rate":12}`)
		c.Set(string(domain.KeyUserRole), domain.RoleOwner)

		handler.UpdateMyListing(c)

		assert.Len(t, c.Errors, 1)
		walkerRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		walkerRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}
