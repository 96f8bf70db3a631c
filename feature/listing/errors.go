package listing

import (
	"errors"
	"fmt"

	"estate-manager/feature/listing/media"

	"github.com/gofiber/fiber/v2"
)

var (
	ErrValidation       = errors.New("invalid listing input")
	ErrNotFound         = errors.New("listing not found")
	ErrMediaUpload      = errors.New("media upload failed")
	ErrCapacity         = media.ErrCapacityExceeded
	ErrSchemaValidation = errors.New("listing failed schema validation")
	ErrInternal         = errors.New("internal error")
)

// ErrorStatus maps each error category to its HTTP status.
var ErrorStatus = map[error]int{
	ErrValidation:       fiber.StatusBadRequest,
	ErrNotFound:         fiber.StatusNotFound,
	ErrMediaUpload:      fiber.StatusBadRequest,
	ErrCapacity:         fiber.StatusBadRequest,
	ErrSchemaValidation: fiber.StatusBadRequest,
	ErrInternal:         fiber.StatusInternalServerError,
}

var errorMessages = map[error]string{
	ErrValidation:       "Invalid request",
	ErrNotFound:         "Listing not found",
	ErrMediaUpload:      "Failed to upload media",
	ErrCapacity:         fmt.Sprintf("A listing can hold at most %d media files", media.MaxMedia),
	ErrSchemaValidation: "Listing data is invalid",
	ErrInternal:         "Failed to update listing",
}

// categories is checked in order; the first match classifies an error.
var categories = []error{
	ErrValidation,
	ErrNotFound,
	ErrCapacity,
	ErrMediaUpload,
	ErrSchemaValidation,
	ErrInternal,
}

// Classify returns err unchanged when it belongs to a known category and
// wraps it in ErrInternal otherwise.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if category(err) != nil {
		return err
	}
	return fmt.Errorf("%w: %w", ErrInternal, err)
}

// StatusOf returns the HTTP status for err.
func StatusOf(err error) int {
	if c := category(err); c != nil {
		return ErrorStatus[c]
	}
	return fiber.StatusInternalServerError
}

// MessageOf returns the client-facing message for err.
func MessageOf(err error) string {
	if c := category(err); c != nil {
		return errorMessages[c]
	}
	return errorMessages[ErrInternal]
}

func category(err error) error {
	for _, c := range categories {
		if errors.Is(err, c) {
			return c
		}
	}
	return nil
}
