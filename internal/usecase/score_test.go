package usecase_test

import (
	"testing"

	"go-dogwalking-backend/internal/domain"
	"go-dogwalking-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
)

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }
func bptr(v bool) *bool       { return &v }
func sptr(v string) *string   { return &v }

func TestScoreWalkerFullProfile(t *testing.T) {
	// Rating 30 + experience 15 (capped) + verified 15 + distance ~18 (2km of
	// a 10km radius) + service 10 + budget 5 + reviews 2 = 95.
	walker := &domain.Walker{
		UserID:          "walker-1",
		Rating:          fptr(5.0),
		ExperienceYears: iptr(5),
		Verified:        bptr(true),
		Services:        []string{domain.ServiceWalking, domain.ServiceSitting},
		HourlyRate:      fptr(10),
		ReviewCount:     iptr(20),
		Latitude:        fptr(52.5380), // ~2km north of the search origin
		Longitude:       fptr(13.4050),
		ServiceRadiusKm: fptr(10),
	}
	criteria := &domain.SearchCriteria{
		Latitude:    fptr(52.5200),
		Longitude:   fptr(13.4050),
		ServiceType: sptr(domain.ServiceWalking),
		MaxBudget:   fptr(20),
	}

	score, reasons := usecase.ScoreWalker(walker, nil, criteria)

	assert.Equal(t, 95, score)
	assert.NotEmpty(t, reasons)
}

func TestScoreWalkerEmpty(t *testing.T) {
	score, reasons := usecase.ScoreWalker(&domain.Walker{UserID: "walker-1"}, nil, &domain.SearchCriteria{})

	assert.Equal(t, 0, score)
	assert.Empty(t, reasons)
}

func TestScoreWalkerCityFallback(t *testing.T) {
	t.Run("Falls back to city match when criteria has no coordinates", func(t *testing.T) {
		walker := &domain.Walker{
			UserID:    "walker-1",
			Latitude:  fptr(52.52),
			Longitude: fptr(13.405),
		}
		profile := &domain.WalkerProfile{UserID: "walker-1", City: "Berlin"}
		criteria := &domain.SearchCriteria{City: sptr("berlin")}

		score, reasons := usecase.ScoreWalker(walker, profile, criteria)

		assert.Equal(t, 15, score)
		assert.Equal(t, []string{"Based in Berlin"}, reasons)
	})

	t.Run("Matches city as case-insensitive substring", func(t *testing.T) {
		profile := &domain.WalkerProfile{UserID: "walker-1", City: "Berlin-Mitte"}
		criteria := &domain.SearchCriteria{City: sptr("Berlin")}

		score, _ := usecase.ScoreWalker(&domain.Walker{UserID: "walker-1"}, profile, criteria)
		assert.Equal(t, 15, score)
	})

	t.Run("No fallback when cities differ", func(t *testing.T) {
		profile := &domain.WalkerProfile{UserID: "walker-1", City: "Hamburg"}
		criteria := &domain.SearchCriteria{City: sptr("Berlin")}

		score, reasons := usecase.ScoreWalker(&domain.Walker{UserID: "walker-1"}, profile, criteria)
		assert.Equal(t, 0, score)
		assert.Empty(t, reasons)
	})
}

func TestScoreWalkerDistance(t *testing.T) {
	criteria := &domain.SearchCriteria{Latitude: fptr(52.5200), Longitude: fptr(13.4050)}

	t.Run("Zero contribution beyond the service radius", func(t *testing.T) {
		walker := &domain.Walker{
			UserID:          "walker-1",
			Latitude:        fptr(52.7), // ~20km away
			Longitude:       fptr(13.4050),
			ServiceRadiusKm: fptr(5),
		}
		score, _ := usecase.ScoreWalker(walker, nil, criteria)
		assert.Equal(t, 0, score)
	})

	t.Run("Strictly decreasing within the radius", func(t *testing.T) {
		near := &domain.Walker{UserID: "w1", Latitude: fptr(52.5290), Longitude: fptr(13.4050), ServiceRadiusKm: fptr(10)}
		far := &domain.Walker{UserID: "w2", Latitude: fptr(52.5700), Longitude: fptr(13.4050), ServiceRadiusKm: fptr(10)}

		nearScore, _ := usecase.ScoreWalker(near, nil, criteria)
		farScore, _ := usecase.ScoreWalker(far, nil, criteria)
		assert.Greater(t, nearScore, farScore)
	})

	t.Run("Default radius applies when unset", func(t *testing.T) {
		// ~8km away: inside the 10km default, outside nothing else
		walker := &domain.Walker{UserID: "w1", Latitude: fptr(52.5920), Longitude: fptr(13.4050)}
		score, _ := usecase.ScoreWalker(walker, nil, criteria)
		assert.Greater(t, score, 0)
	})
}

func TestScoreWalkerRatingMonotonic(t *testing.T) {
	criteria := &domain.SearchCriteria{}
	base := &domain.Walker{UserID: "w1", Rating: fptr(3.0), ReviewCount: iptr(10)}
	better := &domain.Walker{UserID: "w1", Rating: fptr(4.0), ReviewCount: iptr(10)}

	baseScore, _ := usecase.ScoreWalker(base, nil, criteria)
	betterScore, _ := usecase.ScoreWalker(better, nil, criteria)

	assert.GreaterOrEqual(t, betterScore, baseScore)
}

func TestScoreWalkerAvailability(t *testing.T) {
	criteria := &domain.SearchCriteria{PreferredDays: []string{"monday", "wednesday"}}

	t.Run("Full overlap scores 10 with reason", func(t *testing.T) {
		walker := &domain.Walker{UserID: "w1", AvailableDays: []string{"monday", "tuesday", "wednesday"}}
		score, reasons := usecase.ScoreWalker(walker, nil, criteria)
		assert.Equal(t, 10, score)
		assert.Contains(t, reasons, "Available every requested day")
	})

	t.Run("Partial overlap scores proportionally without reason", func(t *testing.T) {
		walker := &domain.Walker{UserID: "w1", AvailableDays: []string{"monday"}}
		score, reasons := usecase.ScoreWalker(walker, nil, criteria)
		assert.Equal(t, 5, score)
		assert.NotContains(t, reasons, "Available every requested day")
	})

	t.Run("Not scored when criteria has no preferred days", func(t *testing.T) {
		walker := &domain.Walker{UserID: "w1", AvailableDays: []string{"monday"}}
		score, _ := usecase.ScoreWalker(walker, nil, &domain.SearchCriteria{})
		assert.Equal(t, 0, score)
	})
}

func TestScoreWalkerBudget(t *testing.T) {
	walker := &domain.Walker{UserID: "w1", HourlyRate: fptr(20)}

	t.Run("Rate at the budget scores 5 without favorable-rate reason", func(t *testing.T) {
		score, reasons := usecase.ScoreWalker(walker, nil, &domain.SearchCriteria{MaxBudget: fptr(20)})
		assert.Equal(t, 5, score)
		assert.NotContains(t, reasons, "Favorable rate")
	})

	t.Run("Rate at 80% of budget earns the reason", func(t *testing.T) {
		score, reasons := usecase.ScoreWalker(walker, nil, &domain.SearchCriteria{MaxBudget: fptr(25)})
		assert.Equal(t, 5, score)
		assert.Contains(t, reasons, "Favorable rate")
	})

	t.Run("Rate above budget is not scored", func(t *testing.T) {
		score, _ := usecase.ScoreWalker(walker, nil, &domain.SearchCriteria{MaxBudget: fptr(15)})
		assert.Equal(t, 0, score)
	})
}

func TestScoreWalkerCaps(t *testing.T) {
	t.Run("Experience caps at 15", func(t *testing.T) {
		walker := &domain.Walker{UserID: "w1", ExperienceYears: iptr(12)}
		score, _ := usecase.ScoreWalker(walker, nil, &domain.SearchCriteria{})
		assert.Equal(t, 15, score)
	})

	t.Run("Review volume caps at 5", func(t *testing.T) {
		walker := &domain.Walker{UserID: "w1", ReviewCount: iptr(500)}
		score, _ := usecase.ScoreWalker(walker, nil, &domain.SearchCriteria{})
		assert.Equal(t, 5, score)
	})
}

func TestScoreWalkerReasonOrder(t *testing.T) {
	// A walker clearing every reason threshold must produce reasons in fixed
	// dimension order; only the first three are usually surfaced downstream.
	walker := &domain.Walker{
		UserID:          "walker-1",
		Rating:          fptr(4.8),
		ExperienceYears: iptr(6),
		Verified:        bptr(true),
		Services:        []string{domain.ServiceSitting},
		HourlyRate:      fptr(10),
		ReviewCount:     iptr(40),
		Latitude:        fptr(52.5290),
		Longitude:       fptr(13.4050),
		AvailableDays:   []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"},
	}
	criteria := &domain.SearchCriteria{
		Latitude:      fptr(52.5200),
		Longitude:     fptr(13.4050),
		ServiceType:   sptr(domain.ServiceSitting),
		PreferredDays: []string{"monday", "friday"},
		MaxBudget:     fptr(30),
	}

	_, reasons := usecase.ScoreWalker(walker, nil, criteria)

	assert.Equal(t, []string{
		"Highly rated (4.8 stars)",
		"6+ years of experience",
		"Identity verified",
		"Only 1.0 km away",
		"Offers sitting",
		"Available every requested day",
		"Favorable rate",
		"40 reviews",
	}, reasons)
}
