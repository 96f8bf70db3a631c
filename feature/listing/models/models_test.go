package models

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validListing() *Listing {
	return &Listing{
		ID:    "65a1f0c2e4b0a1b2c3d4e5f6",
		Title: "Sunny flat",
		Media: []MediaRecord{
			{PublicID: "a", URL: "http://x/a", ResourceType: "image", IsCover: true, UploadOrder: 1},
			{PublicID: "b", URL: "http://x/b", ResourceType: "video", UploadOrder: 2},
		},
	}
}

func fieldErrorTags(t *testing.T, err error) []string {
	t.Helper()
	var ve validator.ValidationErrors
	require.ErrorAs(t, err, &ve)
	tags := make([]string, 0, len(ve))
	for _, fe := range ve {
		tags = append(tags, fe.Tag())
	}
	return tags
}

func TestValidate(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		assert.NoError(t, Validate(validListing()))
	})

	t.Run("NoMediaIsValid", func(t *testing.T) {
		l := validListing()
		l.Media = nil
		assert.NoError(t, Validate(l))
	})

	t.Run("MissingTitle", func(t *testing.T) {
		l := validListing()
		l.Title = ""
		assert.Contains(t, fieldErrorTags(t, Validate(l)), "required")
	})

	t.Run("NoCover", func(t *testing.T) {
		l := validListing()
		l.Media[0].IsCover = false
		assert.Contains(t, fieldErrorTags(t, Validate(l)), "single_cover")
	})

	t.Run("TwoCovers", func(t *testing.T) {
		l := validListing()
		l.Media[1].IsCover = true
		assert.Contains(t, fieldErrorTags(t, Validate(l)), "single_cover")
	})

	t.Run("DuplicatePublicID", func(t *testing.T) {
		l := validListing()
		l.Media[1].PublicID = "a"
		assert.Contains(t, fieldErrorTags(t, Validate(l)), "unique_public_id")
	})

	t.Run("BadResourceType", func(t *testing.T) {
		l := validListing()
		l.Media[1].ResourceType = "audio"
		assert.Contains(t, fieldErrorTags(t, Validate(l)), "oneof")
	})

	t.Run("NegativePrice", func(t *testing.T) {
		l := validListing()
		amount := -1.0
		l.Price.Amount = &amount
		assert.Contains(t, fieldErrorTags(t, Validate(l)), "gte")
	})

	t.Run("TooManyMedia", func(t *testing.T) {
		l := validListing()
		l.Media = nil
		for i := 0; i < 13; i++ {
			l.Media = append(l.Media, MediaRecord{
				PublicID: string(rune('a' + i)), URL: "u", ResourceType: "image", UploadOrder: i + 1, IsCover: i == 0,
			})
		}
		assert.Contains(t, fieldErrorTags(t, Validate(l)), "max")
	})

	t.Run("Nil", func(t *testing.T) {
		assert.Error(t, Validate(nil))
	})
}

func TestListingHelpers(t *testing.T) {
	l := validListing()
	assert.True(t, l.HasMedia("b"))
	assert.False(t, l.HasMedia("z"))

	cover, ok := l.Cover()
	require.True(t, ok)
	assert.Equal(t, "a", cover.PublicID)
}
