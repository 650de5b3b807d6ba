package aggregates

import (
	"fmt"
	"strings"

	domainagg "github.com/yungbote/coursehub-backend/internal/domain/aggregates"
)

// RequireProgressInRange rejects progress outside [MinProgress, MaxProgress].
func RequireProgressInRange(progress int) error {
	if progress < domainagg.MinProgress || progress > domainagg.MaxProgress {
		return ValidationError(fmt.Sprintf("progress must be between %d and %d, got %d",
			domainagg.MinProgress, domainagg.MaxProgress, progress))
	}
	return nil
}

// RequireNonEmpty rejects blank identifiers.
func RequireNonEmpty(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return ValidationError(field + " is required")
	}
	return nil
}

// RequireFound converts a missing row into a typed not-found error.
func RequireFound(found bool, what string) error {
	if found {
		return nil
	}
	return NotFoundError(strings.TrimSpace(what) + " not found")
}

// RequireIncrementApplied checks a counter moved by exactly the expected delta.
func RequireIncrementApplied(before, after, delta int) error {
	if after-before != delta {
		return InvariantError(fmt.Sprintf("enrolled_count moved by %d, want %d", after-before, delta))
	}
	return nil
}
