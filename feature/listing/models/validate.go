package models

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterStructValidation(listingStructLevel, Listing{})
	})
	return validate
}

// Validate checks the field rules of a listing plus the media invariants:
// unique public ids, and exactly one cover when media is present.
func Validate(l *Listing) error {
	if l == nil {
		return fmt.Errorf("listing is nil")
	}
	return validatorInstance().Struct(l)
}

func listingStructLevel(sl validator.StructLevel) {
	l := sl.Current().Interface().(Listing)

	seen := make(map[string]struct{}, len(l.Media))
	covers := 0
	for _, m := range l.Media {
		if _, dup := seen[m.PublicID]; dup {
			sl.ReportError(l.Media, "Media", "media", "unique_public_id", m.PublicID)
		}
		seen[m.PublicID] = struct{}{}
		if m.IsCover {
			covers++
		}
	}

	if len(l.Media) > 0 && covers != 1 {
		sl.ReportError(l.Media, "Media", "media", "single_cover", fmt.Sprint(covers))
	}
}
