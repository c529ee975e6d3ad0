package usecase

import (
	"fmt"
	"math"
	"strings"

	"go-dogwalking-backend/internal/domain"
	"go-dogwalking-backend/pkg/geo"
)

// Dimension weights. The composite is an additive ranking signal with a
// theoretical ceiling around 110; it is not normalized to a 0-100 scale.
const (
	weightRating       = 30.0
	weightExperience   = 15.0
	weightVerified     = 15.0
	weightDistance     = 20.0
	weightCityFallback = 15.0
	weightService      = 10.0
	weightAvailability = 10.0
	weightBudget       = 5.0
	weightReviews      = 5.0
)

// ScoreWalker evaluates one walker against the search criteria and returns
// the match score plus the human-readable reasons that earned it.
//
// Each dimension is independent: missing data on either side means the
// dimension simply contributes nothing. This function never fails; worst
// case is (0, nil), which the orchestrator drops from results.
//
// Reasons are appended in fixed dimension order (rating, experience,
// verification, distance/city, service, availability, budget, reviews).
// Downstream typically surfaces only the first three, so the order is part
// of the contract.
func ScoreWalker(walker *domain.Walker, profile *domain.WalkerProfile, criteria *domain.SearchCriteria) (int, []string) {
	if criteria == nil {
		criteria = &domain.SearchCriteria{}
	}

	var score float64
	var reasons []string

	// Rating
	if walker.Rating != nil {
		score += (*walker.Rating / 5.0) * weightRating
		if *walker.Rating >= 4.5 {
			reasons = append(reasons, fmt.Sprintf("Highly rated (%.1f stars)", *walker.Rating))
		}
	}

	// Experience
	if walker.ExperienceYears != nil {
		score += math.Min(float64(*walker.ExperienceYears)*2, weightExperience)
		if *walker.ExperienceYears >= 3 {
			reasons = append(reasons, fmt.Sprintf("%d+ years of experience", *walker.ExperienceYears))
		}
	}

	// Verification
	if walker.Verified != nil && *walker.Verified {
		score += weightVerified
		reasons = append(reasons, "Identity verified")
	}

	// Distance, falling back to a city match when either side has no
	// coordinates. The two are mutually exclusive per walker.
	if criteria.HasCoordinates() && walker.Latitude != nil && walker.Longitude != nil {
		radius := domain.DefaultServiceRadiusKm
		if walker.ServiceRadiusKm != nil {
			radius = *walker.ServiceRadiusKm
		}
		dist := geo.DistanceKm(*criteria.Latitude, *criteria.Longitude, *walker.Latitude, *walker.Longitude)
		if dist <= radius {
			score += math.Max(0, weightDistance-(dist/radius)*10)
			if dist <= 3 {
				reasons = append(reasons, fmt.Sprintf("Only %.1f km away", dist))
			}
		}
	} else if criteria.City != nil && profile != nil && profile.City != "" {
		if strings.Contains(strings.ToLower(profile.City), strings.ToLower(*criteria.City)) {
			score += weightCityFallback
			reasons = append(reasons, fmt.Sprintf("Based in %s", profile.City))
		}
	}

	// Service type
	if criteria.ServiceType != nil && containsString(walker.Services, *criteria.ServiceType) {
		score += weightService
		reasons = append(reasons, fmt.Sprintf("Offers %s", serviceLabel(*criteria.ServiceType)))
	}

	// Availability overlap, proportional to the requested days covered
	if len(criteria.PreferredDays) > 0 {
		matching := countOverlap(criteria.PreferredDays, walker.AvailableDays)
		score += float64(matching) / float64(len(criteria.PreferredDays)) * weightAvailability
		if matching == len(criteria.PreferredDays) {
			reasons = append(reasons, "Available every requested day")
		}
	}

	// Budget
	if walker.HourlyRate != nil && criteria.MaxBudget != nil && *walker.HourlyRate <= *criteria.MaxBudget {
		score += weightBudget
		if *walker.HourlyRate <= *criteria.MaxBudget*0.8 {
			reasons = append(reasons, "Favorable rate")
		}
	}

	// Review volume
	if walker.ReviewCount != nil {
		score += math.Min(float64(*walker.ReviewCount)/10.0, weightReviews)
		if *walker.ReviewCount >= 20 {
			reasons = append(reasons, fmt.Sprintf("%d reviews", *walker.ReviewCount))
		}
	}

	return int(math.Round(score)), reasons
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

func countOverlap(wanted, offered []string) int {
	available := make(map[string]struct{}, len(offered))
	for _, day := range offered {
		available[strings.ToLower(day)] = struct{}{}
	}
	matching := 0
	for _, day := range wanted {
		if _, ok := available[strings.ToLower(day)]; ok {
			matching++
		}
	}
	return matching
}

func serviceLabel(serviceType string) string {
	return strings.ReplaceAll(serviceType, "_", " ")
}
