package usecase

import (
	"context"
	"sort"
	"sync"

	"go-dogwalking-backend/internal/domain"
	"go-dogwalking-backend/pkg/apperror"
	"go-dogwalking-backend/pkg/logger"
)

type matchUsecase struct {
	walkerRepo  domain.WalkerRepository
	profileRepo domain.ProfileRepository

	// Last successful ranking. Concurrent searches race on it and the last
	// writer wins; readers always see a complete result set.
	mu         sync.RWMutex
	lastRanked []domain.ScoredWalker
}

func NewMatchUsecase(walkerRepo domain.WalkerRepository, profileRepo domain.ProfileRepository) domain.MatchUsecase {
	return &matchUsecase{
		walkerRepo:  walkerRepo,
		profileRepo: profileRepo,
	}
}

// FindMatches runs the ranking pipeline: fetch the candidate pool (optionally
// pre-filtered by service type server-side), batch-join display profiles,
// score every walker, drop zero scores, and sort descending (stable on ties,
// so pool order is preserved between equals).
//
// Data-access failures are absorbed here: the caller gets an empty list and
// the last successful ranking stays untouched. No retry; the caller decides
// when to search again.
func (u *matchUsecase) FindMatches(ctx context.Context, criteria *domain.SearchCriteria) []domain.ScoredWalker {
	if criteria == nil {
		criteria = &domain.SearchCriteria{}
	}

	var filter *domain.WalkerFilter
	if criteria.ServiceType != nil {
		filter = &domain.WalkerFilter{ServiceType: *criteria.ServiceType}
	}

	walkers, err := u.walkerRepo.FetchPool(ctx, filter)
	if err != nil {
		logger.Log.Error("Failed to fetch walker pool", "error", err)
		return []domain.ScoredWalker{}
	}

	userIDs := make([]string, 0, len(walkers))
	for _, w := range walkers {
		userIDs = append(userIDs, w.UserID)
	}

	profiles, err := u.profileRepo.GetByUserIDs(ctx, userIDs)
	if err != nil {
		logger.Log.Error("Failed to fetch walker profiles", "error", err)
		return []domain.ScoredWalker{}
	}

	ranked := make([]domain.ScoredWalker, 0, len(walkers))
	for _, walker := range walkers {
		var profile *domain.WalkerProfile
		if p, ok := profiles[walker.UserID]; ok {
			profile = &p
		}

		score, reasons := ScoreWalker(&walker, profile, criteria)
		if score == 0 {
			continue
		}

		scored := domain.ScoredWalker{
			WalkerWithProfile: domain.WalkerWithProfile{Walker: walker},
			MatchScore:        score,
			MatchReasons:      reasons,
		}
		// Missing profile is fine; the walker still ranks on intrinsic fields.
		if profile != nil {
			scored.FullName = profile.FullName
			scored.AvatarURL = profile.AvatarURL
			scored.City = profile.City
			scored.Bio = profile.Bio
		}
		ranked = append(ranked, scored)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].MatchScore > ranked[j].MatchScore
	})

	u.mu.Lock()
	u.lastRanked = ranked
	u.mu.Unlock()

	return ranked
}

// TopMatches returns a prefix of the last successful ranking.
func (u *matchUsecase) TopMatches(n int) []domain.ScoredWalker {
	u.mu.RLock()
	defer u.mu.RUnlock()

	if n < 0 {
		n = 0
	}
	if n > len(u.lastRanked) {
		n = len(u.lastRanked)
	}

	top := make([]domain.ScoredWalker, n)
	copy(top, u.lastRanked[:n])
	return top
}

// MatchByUserID looks up a single walker in the last successful ranking.
func (u *matchUsecase) MatchByUserID(userID string) (*domain.ScoredWalker, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	for i := range u.lastRanked {
		if u.lastRanked[i].UserID == userID {
			match := u.lastRanked[i]
			return &match, nil
		}
	}
	return nil, apperror.NotFound("No match found for this walker")
}
