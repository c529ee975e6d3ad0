package domain

// Service types a walker can offer.
const (
	ServiceWalking  = "walking"
	ServiceSitting  = "sitting"
	ServiceDaycare  = "daycare"
	ServiceBoarding = "boarding"
	ServiceDropIn   = "drop_in"
)

// SearchCriteria is an owner's stated preferences for a match. Every field
// is optional: an absent field means "do not score this dimension", never
// "reject the candidate".
type SearchCriteria struct {
	Latitude      *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude     *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	City          *string  `json:"city" validate:"omitempty,max=100"`
	ServiceType   *string  `json:"service_type" validate:"omitempty,oneof=walking sitting daycare boarding drop_in"`
	DogSize       *string  `json:"dog_size" validate:"omitempty,oneof=small medium large giant"` // reserved, not scored yet
	PreferredDays []string `json:"preferred_days" validate:"omitempty,dive,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	TimeSlot      *string  `json:"time_slot" validate:"omitempty,oneof=morning afternoon evening"` // reserved, not scored yet
	MaxBudget     *float64 `json:"max_budget" validate:"omitempty,gt=0"`
	MinRating     *float64 `json:"min_rating" validate:"omitempty,gte=0,lte=5"` // reserved, not a hard filter yet
	VerifiedOnly  *bool    `json:"verified_only"`                               // reserved, not a hard filter yet
}

// HasCoordinates reports whether the searcher supplied an origin point.
func (c *SearchCriteria) HasCoordinates() bool {
	return c != nil && c.Latitude != nil && c.Longitude != nil
}
