package usecase_test

import (
	"context"
	"errors"
	"testing"

	"go-dogwalking-backend/internal/domain"
	"go-dogwalking-backend/internal/usecase"

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

func ratedWalker(userID string, rating float64) domain.Walker {
	return domain.Walker{UserID: userID, Rating: &rating}
}

func TestFindMatchesRanking(t *testing.T) {
	ctx := context.Background()

	t.Run("Sorts descending and drops zero scores", func(t *testing.T) {
		walkerRepo := new(MockWalkerRepo)
		profileRepo := new(MockProfileRepo)

		pool := []domain.Walker{
			ratedWalker("low", 2.0),
			{UserID: "nothing"}, // no scorable dimension at all
			ratedWalker("high", 5.0),
		}
		walkerRepo.On("FetchPool", ctx, (*domain.WalkerFilter)(nil)).Return(pool, nil)
		profileRepo.On("GetByUserIDs", ctx, mock.Anything).Return(map[string]domain.WalkerProfile{}, nil)

		uc := usecase.NewMatchUsecase(walkerRepo, profileRepo)
		ranked := uc.FindMatches(ctx, &domain.SearchCriteria{})

		assert.Len(t, ranked, 2)
		assert.Equal(t, "high", ranked[0].UserID)
		assert.Equal(t, "low", ranked[1].UserID)
	})

	t.Run("Ties keep pool order", func(t *testing.T) {
		walkerRepo := new(MockWalkerRepo)
		profileRepo := new(MockProfileRepo)

		pool := []domain.Walker{ratedWalker("x", 4.0), ratedWalker("y", 4.0)}
		walkerRepo.On("FetchPool", ctx, (*domain.WalkerFilter)(nil)).Return(pool, nil)
		profileRepo.On("GetByUserIDs", ctx, mock.Anything).Return(map[string]domain.WalkerProfile{}, nil)

		uc := usecase.NewMatchUsecase(walkerRepo, profileRepo)
		ranked := uc.FindMatches(ctx, &domain.SearchCriteria{})

		assert.Len(t, ranked, 2)
		assert.Equal(t, "x", ranked[0].UserID)
		assert.Equal(t, "y", ranked[1].UserID)
	})

	t.Run("Joins display profiles and tolerates missing ones", func(t *testing.T) {
		walkerRepo := new(MockWalkerRepo)
		profileRepo := new(MockProfileRepo)

		pool := []domain.Walker{ratedWalker("with-profile", 5.0), ratedWalker("no-profile", 4.0)}
		walkerRepo.On("FetchPool", ctx, (*domain.WalkerFilter)(nil)).Return(pool, nil)
		profileRepo.On("GetByUserIDs", ctx, []string{"with-profile", "no-profile"}).Return(map[string]domain.WalkerProfile{
			"with-profile": {UserID: "with-profile", FullName: "Dana Walker", City: "Berlin"},
		}, nil)

		uc := usecase.NewMatchUsecase(walkerRepo, profileRepo)
		ranked := uc.FindMatches(ctx, &domain.SearchCriteria{})

		assert.Len(t, ranked, 2)
		assert.Equal(t, "Dana Walker", ranked[0].FullName)
		assert.Equal(t, "Berlin", ranked[0].City)
		assert.Empty(t, ranked[1].FullName)
	})

	t.Run("Passes the service-type pre-filter to the repository", func(t *testing.T) {
		walkerRepo := new(MockWalkerRepo)
		profileRepo := new(MockProfileRepo)

		walkerRepo.On("FetchPool", ctx, &domain.WalkerFilter{ServiceType: domain.ServiceSitting}).
			Return([]domain.Walker{}, nil)
		profileRepo.On("GetByUserIDs", ctx, mock.Anything).Return(map[string]domain.WalkerProfile{}, nil)

		uc := usecase.NewMatchUsecase(walkerRepo, profileRepo)
		serviceType := domain.ServiceSitting
		uc.FindMatches(ctx, &domain.SearchCriteria{ServiceType: &serviceType})

		walkerRepo.AssertExpectations(t)
	})
}

func TestFindMatchesDegradesToEmpty(t *testing.T) {
	ctx := context.Background()

	t.Run("Pool fetch failure yields empty result, no panic", func(t *testing.T) {
		walkerRepo := new(MockWalkerRepo)
		profileRepo := new(MockProfileRepo)
		walkerRepo.On("FetchPool", ctx, (*domain.WalkerFilter)(nil)).Return(nil, errors.New("connection refused"))

		uc := usecase.NewMatchUsecase(walkerRepo, profileRepo)
		ranked := uc.FindMatches(ctx, &domain.SearchCriteria{})

		assert.Empty(t, ranked)
	})

	t.Run("Profile batch failure yields empty result", func(t *testing.T) {
		walkerRepo := new(MockWalkerRepo)
		profileRepo := new(MockProfileRepo)
		walkerRepo.On("FetchPool", ctx, (*domain.WalkerFilter)(nil)).Return([]domain.Walker{ratedWalker("w", 5.0)}, nil)
		profileRepo.On("GetByUserIDs", ctx, mock.Anything).Return(nil, errors.New("timeout"))

		uc := usecase.NewMatchUsecase(walkerRepo, profileRepo)
		ranked := uc.FindMatches(ctx, &domain.SearchCriteria{})

		assert.Empty(t, ranked)
	})

	t.Run("Failed search leaves the last successful ranking readable", func(t *testing.T) {
		walkerRepo := new(MockWalkerRepo)
		profileRepo := new(MockProfileRepo)
		walkerRepo.On("FetchPool", ctx, (*domain.WalkerFilter)(nil)).Return([]domain.Walker{ratedWalker("w", 5.0)}, nil).Once()
		walkerRepo.On("FetchPool", ctx, (*domain.WalkerFilter)(nil)).Return(nil, errors.New("down")).Once()
		profileRepo.On("GetByUserIDs", ctx, mock.Anything).Return(map[string]domain.WalkerProfile{}, nil)

		uc := usecase.NewMatchUsecase(walkerRepo, profileRepo)
		uc.FindMatches(ctx, &domain.SearchCriteria{})
		uc.FindMatches(ctx, &domain.SearchCriteria{})

		assert.Len(t, uc.TopMatches(10), 1)
	})
}

func TestTopMatches(t *testing.T) {
	ctx := context.Background()
	walkerRepo := new(MockWalkerRepo)
	profileRepo := new(MockProfileRepo)

	pool := []domain.Walker{ratedWalker("a", 5.0), ratedWalker("b", 4.0), ratedWalker("c", 3.0)}
	walkerRepo.On("FetchPool", ctx, (*domain.WalkerFilter)(nil)).Return(pool, nil)
	profileRepo.On("GetByUserIDs", ctx, mock.Anything).Return(map[string]domain.WalkerProfile{}, nil)

	uc := usecase.NewMatchUsecase(walkerRepo, profileRepo)
	ranked := uc.FindMatches(ctx, &domain.SearchCriteria{})

	t.Run("Returns a prefix of the ranking", func(t *testing.T) {
		top := uc.TopMatches(2)
		assert.Equal(t, ranked[:2], top)
	})

	t.Run("Clamps n to the ranking length", func(t *testing.T) {
		assert.Len(t, uc.TopMatches(50), 3)
	})

	t.Run("Negative n returns nothing", func(t *testing.T) {
		assert.Empty(t, uc.TopMatches(-1))
	})
}

func TestMatchByUserID(t *testing.T) {
	ctx := context.Background()
	walkerRepo := new(MockWalkerRepo)
	profileRepo := new(MockProfileRepo)

	walkerRepo.On("FetchPool", ctx, (*domain.WalkerFilter)(nil)).Return([]domain.Walker{ratedWalker("a", 5.0)}, nil)
	profileRepo.On("GetByUserIDs", ctx, mock.Anything).Return(map[string]domain.WalkerProfile{}, nil)

	uc := usecase.NewMatchUsecase(walkerRepo, profileRepo)
	uc.FindMatches(ctx, &domain.SearchCriteria{})

	t.Run("Finds a ranked walker", func(t *testing.T) {
		match, err := uc.MatchByUserID("a")
		assert.NoError(t, err)
		assert.Equal(t, "a", match.UserID)
	})

	t.Run("Unknown walker is not found", func(t *testing.T) {
		_, err := uc.MatchByUserID("ghost")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "No match found")
	})
}
