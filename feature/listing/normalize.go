package listing

import (
	"fmt"
	"strings"

	"estate-manager/core/storage"
	"estate-manager/core/utils"
	"estate-manager/feature/listing/models"

	"github.com/goccy/go-json"
)

// RawUpdate holds the multipart form values of a listing request. A nil field
// was not sent.
type RawUpdate struct {
	Title              *string
	Description        *string
	PropertyType       *string
	Location           *string
	Price              *string
	Details            *string
	Amenities          *string
	RemovedMediaIDs    *string
	MediaOrder         *string
	MediaTempIDs       *string
	CoverMediaPublicID *string
}

// RawUpdateFromForm picks the listing fields out of multipart form values.
func RawUpdateFromForm(values map[string][]string) RawUpdate {
	get := func(key string) *string {
		v, ok := values[key]
		if !ok || len(v) == 0 {
			return nil
		}
		s := v[0]
		return &s
	}
	return RawUpdate{
		Title:              get("title"),
		Description:        get("description"),
		PropertyType:       get("propertyType"),
		Location:           get("location"),
		Price:              get("price"),
		Details:            get("details"),
		Amenities:          get("amenities"),
		RemovedMediaIDs:    get("removedMediaIds"),
		MediaOrder:         get("mediaOrder"),
		MediaTempIDs:       get("mediaTempIds"),
		CoverMediaPublicID: get("coverMediaPublicId"),
	}
}

// PendingUpload is a file received in the current request and stored on local disk.
type PendingUpload struct {
	LocalPath    string
	MimeType     string
	OriginalName string
	Size         int64
}

// PropertyTypePatch is the optional-field form of models.PropertyType.
type PropertyTypePatch struct {
	Category *string `json:"category"`
	Kind     *string `json:"kind"`
	Purpose  *string `json:"purpose"`
}

// CoordinatesPatch is the optional-field form of models.Coordinates.
type CoordinatesPatch struct {
	Lat utils.Number `json:"lat"`
	Lng utils.Number `json:"lng"`
}

// LocationPatch is the optional-field form of models.Location.
type LocationPatch struct {
	Address     *string           `json:"address"`
	City        *string           `json:"city"`
	State       *string           `json:"state"`
	Country     *string           `json:"country"`
	PostalCode  *string           `json:"postalCode"`
	Coordinates *CoordinatesPatch `json:"coordinates"`
}

// PricePatch is the optional-field form of models.Price.
type PricePatch struct {
	Amount   utils.Number `json:"amount"`
	Currency *string      `json:"currency"`
	Period   *string      `json:"period"`
}

// DetailsPatch is the optional-field form of models.Details.
type DetailsPatch struct {
	Size      utils.Number `json:"size"`
	Bedrooms  utils.Number `json:"bedrooms"`
	Bathrooms utils.Number `json:"bathrooms"`
	Floors    utils.Number `json:"floors"`
	YearBuilt utils.Number `json:"yearBuilt"`
	Furnished utils.Bool   `json:"furnished"`
}

// ChangeSet is a normalized listing request.
type ChangeSet struct {
	Title        *string
	Description  *string
	PropertyType *PropertyTypePatch
	Location     *LocationPatch
	Price        *PricePatch
	Details      *DetailsPatch
	Amenities    []string
	AmenitiesSet bool

	RemovedIDs []string
	Order      []string
	TempIDs    []string
	CoverID    string

	Files []PendingUpload

	// Ignored lists sub-objects that were sent but could not be parsed.
	Ignored []string
}

// Normalize parses and sanitizes a raw request. Unparsable descriptive
// sub-objects are ignored; malformed media fields and unsupported files fail
// with ErrValidation.
func Normalize(raw RawUpdate, files []PendingUpload) (*ChangeSet, error) {
	cs := &ChangeSet{}

	if raw.Title != nil {
		if title := utils.SanitizeText(*raw.Title); title != "" {
			cs.Title = &title
		}
	}
	if raw.Description != nil {
		desc := utils.SanitizeText(*raw.Description)
		cs.Description = &desc
	}

	decodeObject(raw.PropertyType, "propertyType", &cs.PropertyType, cs)
	decodeObject(raw.Location, "location", &cs.Location, cs)
	decodeObject(raw.Price, "price", &cs.Price, cs)
	decodeObject(raw.Details, "details", &cs.Details, cs)

	if raw.Amenities != nil && strings.TrimSpace(*raw.Amenities) != "" {
		var amenities []string
		if err := json.Unmarshal([]byte(*raw.Amenities), &amenities); err != nil {
			cs.Ignored = append(cs.Ignored, "amenities")
		} else {
			cs.AmenitiesSet = true
			cs.Amenities = make([]string, 0, len(amenities))
			for _, a := range amenities {
				if a = utils.SanitizeText(a); a != "" {
					cs.Amenities = append(cs.Amenities, a)
				}
			}
		}
	}

	var err error
	if cs.RemovedIDs, err = decodeTokenList(raw.RemovedMediaIDs, "removedMediaIds"); err != nil {
		return nil, err
	}
	if cs.Order, err = decodeTokenList(raw.MediaOrder, "mediaOrder"); err != nil {
		return nil, err
	}
	if cs.TempIDs, err = decodeTokenList(raw.MediaTempIDs, "mediaTempIds"); err != nil {
		return nil, err
	}
	if raw.CoverMediaPublicID != nil {
		cs.CoverID = strings.TrimSpace(*raw.CoverMediaPublicID)
	}

	for _, f := range files {
		if _, ok := storage.ResourceTypeFor(f.MimeType); !ok {
			return nil, fmt.Errorf("%w: unsupported file type %q for %s", ErrValidation, f.MimeType, f.OriginalName)
		}
	}
	cs.Files = files

	return cs, nil
}

func decodeObject[T any](raw *string, field string, dst **T, cs *ChangeSet) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return
	}
	var v T
	if err := json.Unmarshal([]byte(*raw), &v); err != nil {
		cs.Ignored = append(cs.Ignored, field)
		return
	}
	*dst = &v
}

func decodeTokenList(raw *string, field string) ([]string, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	var list []string
	if err := json.Unmarshal([]byte(*raw), &list); err != nil {
		return nil, fmt.Errorf("%w: %s must be a JSON array of strings", ErrValidation, field)
	}
	out := make([]string, 0, len(list))
	for _, tok := range list {
		if tok = strings.TrimSpace(tok); tok != "" {
			out = append(out, tok)
		}
	}
	return out, nil
}

// Apply copies every set field onto l. Unset fields keep their stored value.
func (cs *ChangeSet) Apply(l *models.Listing) {
	if cs.Title != nil {
		l.Title = *cs.Title
	}
	if cs.Description != nil {
		l.Description = *cs.Description
	}

	if p := cs.PropertyType; p != nil {
		setText(&l.PropertyType.Category, p.Category)
		setText(&l.PropertyType.Kind, p.Kind)
		setText(&l.PropertyType.Purpose, p.Purpose)
	}

	if p := cs.Location; p != nil {
		setText(&l.Location.Address, p.Address)
		setText(&l.Location.City, p.City)
		setText(&l.Location.State, p.State)
		setText(&l.Location.Country, p.Country)
		setText(&l.Location.PostalCode, p.PostalCode)
		if c := p.Coordinates; c != nil {
			setFloat(&l.Location.Coordinates.Lat, c.Lat)
			setFloat(&l.Location.Coordinates.Lng, c.Lng)
		}
	}

	if p := cs.Price; p != nil {
		setFloat(&l.Price.Amount, p.Amount)
		setText(&l.Price.Currency, p.Currency)
		setText(&l.Price.Period, p.Period)
	}

	if p := cs.Details; p != nil {
		setFloat(&l.Details.Size, p.Size)
		setInt(&l.Details.Bedrooms, p.Bedrooms)
		setInt(&l.Details.Bathrooms, p.Bathrooms)
		setInt(&l.Details.Floors, p.Floors)
		setInt(&l.Details.YearBuilt, p.YearBuilt)
		if v := p.Furnished.Ptr(); v != nil {
			l.Details.Furnished = v
		}
	}

	if cs.AmenitiesSet {
		l.Amenities = cs.Amenities
	}
}

func setText(dst *string, v *string) {
	if v == nil {
		return
	}
	*dst = utils.SanitizeText(*v)
}

func setFloat(dst **float64, n utils.Number) {
	if v := n.Float(); v != nil {
		*dst = v
	}
}

func setInt(dst **int, n utils.Number) {
	if v := n.Int(); v != nil {
		*dst = v
	}
}
