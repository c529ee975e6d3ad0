package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to user-facing labels
var FieldLabels = map[string]string{
	// Walker listing fields
	"HourlyRate":      "Hourly rate",
	"Rating":          "Rating",
	"ReviewCount":     "Review count",
	"Services":        "Offered services",
	"ExperienceYears": "Years of experience",
	"Latitude":        "Latitude",
	"Longitude":       "Longitude",
	"AvailableDays":   "Available days",
	"AvailableFrom":   "Availability start",
	"AvailableUntil":  "Availability end",
	"MaxDogs":         "Max dogs",
	"ServiceRadiusKm": "Service radius",

	// Search criteria fields
	"City":          "City",
	"ServiceType":   "Service type",
	"DogSize":       "Dog size",
	"PreferredDays": "Preferred days",
	"TimeSlot":      "Time slot",
	"MaxBudget":     "Maximum budget",
	"MinRating":     "Minimum rating",

	// Auth fields
	"Email": "Email",
	"Role":  "Role",
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}

	var messages []string
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())
	param := e.Param()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", label, param)
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", label, param)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", label, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, strings.Join(strings.Split(param, " "), ", "))
	case "email":
		return fmt.Sprintf("%s is not a valid email address", label)
	case "url":
		return fmt.Sprintf("%s is not a valid URL", label)
	case "time_of_day":
		return fmt.Sprintf("%s must be a 24-hour HH:MM time", label)
	case "valid_name":
		return fmt.Sprintf("%s may only contain letters, spaces and common punctuation", label)
	case "no_emoji":
		return fmt.Sprintf("%s must not contain emoji or special symbols", label)
	default:
		return fmt.Sprintf("%s failed validation (%s)", label, e.Tag())
	}
}

func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return formatCamelCase(fieldName)
}

// formatCamelCase converts CamelCase to spaced words
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
		}
		result.WriteRune(r)
	}
	return result.String()
}
