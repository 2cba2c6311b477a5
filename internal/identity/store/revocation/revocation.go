// Package revocation holds token revocation lists keyed by JWT id.
package revocation

import (
	"fmt"
	"time"

	"fittrack/pkg/platform/sentinel"
)

// Clock returns the current time.
type Clock func() time.Time

func validateTTL(ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("ttl must be positive: %w", sentinel.ErrInvalidState)
	}
	return nil
}
