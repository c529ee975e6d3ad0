package usecase

import (
	"context"
	"strings"

	"go-dogwalking-backend/internal/domain"
	"go-dogwalking-backend/pkg/apperror"
	"go-dogwalking-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type walkerUsecase struct {
	walkerRepo  domain.WalkerRepository
	profileRepo domain.ProfileRepository
	validate    *validator.Validate
}

func NewWalkerUsecase(walkerRepo domain.WalkerRepository, profileRepo domain.ProfileRepository, validate *validator.Validate) domain.WalkerUsecase {
	return &walkerUsecase{
		walkerRepo:  walkerRepo,
		profileRepo: profileRepo,
		validate:    validate,
	}
}

// GetListing returns the caller's own walker listing. Strict ownership: the
// context user must match the requested user.
func (u *walkerUsecase) GetListing(ctx context.Context, userID string) (*domain.Walker, error) {
	ctxUserID, ok := ctx.Value(domain.KeyUserID).(string)
	if !ok || ctxUserID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	if ctxUserID != userID {
		return nil, apperror.Forbidden("You can only view your own listing")
	}

	walker, err := u.walkerRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if walker == nil {
		return nil, apperror.NotFound("Walker listing not found")
	}
	return walker, nil
}

// UpdateListing upserts the caller's walker listing. The user id is forced
// from the authenticated context so nobody can edit someone else's listing.
func (u *walkerUsecase) UpdateListing(ctx context.Context, walker *domain.Walker) error {
	ctxUserID, ok := ctx.Value(domain.KeyUserID).(string)
	if !ok || ctxUserID == "" {
		return apperror.Unauthorized("User not authenticated")
	}
	walker.UserID = ctxUserID

	if err := u.validate.Struct(walker); err != nil {
		return apperror.BadRequest(strings.Join(validation.FormatValidationErrors(err), "; "))
	}

	existing, err := u.walkerRepo.GetByUserID(ctx, ctxUserID)
	if err != nil {
		return err
	}
	if existing == nil {
		return u.walkerRepo.Create(ctx, walker)
	}
	return u.walkerRepo.Update(ctx, walker)
}

// ListWalkers returns a paginated public browse of walkers with their
// display profiles joined.
func (u *walkerUsecase) ListWalkers(ctx context.Context, page, pageSize int) ([]domain.WalkerWithProfile, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	offset := (page - 1) * pageSize

	walkers, total, err := u.walkerRepo.FetchPage(ctx, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}

	userIDs := make([]string, 0, len(walkers))
	for _, w := range walkers {
		userIDs = append(userIDs, w.UserID)
	}
	profiles, err := u.profileRepo.GetByUserIDs(ctx, userIDs)
	if err != nil {
		return nil, 0, err
	}

	result := make([]domain.WalkerWithProfile, 0, len(walkers))
	for _, walker := range walkers {
		item := domain.WalkerWithProfile{Walker: walker}
		if p, ok := profiles[walker.UserID]; ok {
			item.FullName = p.FullName
			item.AvatarURL = p.AvatarURL
			item.City = p.City
			item.Bio = p.Bio
		}
		result = append(result, item)
	}
	return result, total, nil
}

// GetWalkerDetail returns a single public walker page.
func (u *walkerUsecase) GetWalkerDetail(ctx context.Context, userID string) (*domain.WalkerWithProfile, error) {
	walker, err := u.walkerRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if walker == nil {
		return nil, apperror.NotFound("Walker not found")
	}

	detail := &domain.WalkerWithProfile{Walker: *walker}
	profile, err := u.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile != nil {
		detail.FullName = profile.FullName
		detail.AvatarURL = profile.AvatarURL
		detail.City = profile.City
		detail.Bio = profile.Bio
	}
	return detail, nil
}
