package reporter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/leshachaplin/eventreporter/domain"
)

// ErrInvalidEvent is returned for events rejected before any request is sent.
var ErrInvalidEvent = errors.New("invalid event")

func validateEvent(titleID string, event any) error {
	if strings.TrimSpace(titleID) == "" {
		return fmt.Errorf("%w: title id is required", ErrInvalidEvent)
	}
	if err := domain.Validate(event); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}
	return nil
}
