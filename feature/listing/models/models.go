package models

import (
	"time"

	"estate-manager/core/storage"
)

// MediaRecord is one stored media asset attached to a listing.
type MediaRecord struct {
	PublicID        string               `bson:"publicId" json:"publicId" validate:"required"`
	URL             string               `bson:"url" json:"url" validate:"required"`
	ResourceType    storage.ResourceType `bson:"resourceType" json:"resourceType" validate:"oneof=image video"`
	Bytes           int64                `bson:"bytes" json:"bytes" validate:"gte=0"`
	DurationSeconds *float64             `bson:"durationSeconds,omitempty" json:"durationSeconds,omitempty" validate:"omitempty,gte=0"`
	IsCover         bool                 `bson:"isCover" json:"isCover"`
	UploadOrder     int                  `bson:"uploadOrder" json:"uploadOrder" validate:"gte=1"`
}

// PropertyType classifies a listing.
type PropertyType struct {
	Category string `bson:"category,omitempty" json:"category,omitempty" validate:"omitempty,oneof=residential commercial land industrial"`
	Kind     string `bson:"kind,omitempty" json:"kind,omitempty" validate:"max=50"`
	Purpose  string `bson:"purpose,omitempty" json:"purpose,omitempty" validate:"omitempty,oneof=sale rent"`
}

// Coordinates is a WGS84 position.
type Coordinates struct {
	Lat *float64 `bson:"lat,omitempty" json:"lat,omitempty" validate:"omitempty,gte=-90,lte=90"`
	Lng *float64 `bson:"lng,omitempty" json:"lng,omitempty" validate:"omitempty,gte=-180,lte=180"`
}

// Location is the postal address of a listing.
type Location struct {
	Address     string      `bson:"address,omitempty" json:"address,omitempty" validate:"max=300"`
	City        string      `bson:"city,omitempty" json:"city,omitempty" validate:"max=100"`
	State       string      `bson:"state,omitempty" json:"state,omitempty" validate:"max=100"`
	Country     string      `bson:"country,omitempty" json:"country,omitempty" validate:"max=100"`
	PostalCode  string      `bson:"postalCode,omitempty" json:"postalCode,omitempty" validate:"max=20"`
	Coordinates Coordinates `bson:"coordinates" json:"coordinates"`
}

// Price is the asking price. Period is set for rentals.
type Price struct {
	Amount   *float64 `bson:"amount,omitempty" json:"amount,omitempty" validate:"omitempty,gte=0"`
	Currency string   `bson:"currency,omitempty" json:"currency,omitempty" validate:"omitempty,len=3"`
	Period   string   `bson:"period,omitempty" json:"period,omitempty" validate:"omitempty,oneof=day week month year"`
}

// Details holds the physical characteristics of a property.
type Details struct {
	Size      *float64 `bson:"size,omitempty" json:"size,omitempty" validate:"omitempty,gte=0"`
	Bedrooms  *int     `bson:"bedrooms,omitempty" json:"bedrooms,omitempty" validate:"omitempty,gte=0"`
	Bathrooms *int     `bson:"bathrooms,omitempty" json:"bathrooms,omitempty" validate:"omitempty,gte=0"`
	Floors    *int     `bson:"floors,omitempty" json:"floors,omitempty" validate:"omitempty,gte=0"`
	YearBuilt *int     `bson:"yearBuilt,omitempty" json:"yearBuilt,omitempty" validate:"omitempty,gte=1800,lte=2100"`
	Furnished *bool    `bson:"furnished,omitempty" json:"furnished,omitempty"`
}

// Listing is the listing document. Nested values are stored as JSON columns
// when the listing lives in a SQL table.
type Listing struct {
	ID           string        `bson:"_id" json:"id" gorm:"primaryKey;size:24"`
	Title        string        `bson:"title" json:"title" gorm:"size:200" validate:"required,max=200"`
	Description  string        `bson:"description" json:"description" gorm:"type:text" validate:"max=5000"`
	PropertyType PropertyType  `bson:"propertyType" json:"propertyType" gorm:"serializer:json;type:text"`
	Location     Location      `bson:"location" json:"location" gorm:"serializer:json;type:text"`
	Price        Price         `bson:"price" json:"price" gorm:"serializer:json;type:text"`
	Details      Details       `bson:"details" json:"details" gorm:"serializer:json;type:text"`
	Amenities    []string      `bson:"amenities" json:"amenities" gorm:"serializer:json;type:text" validate:"max=50,dive,required,max=100"`
	Media        []MediaRecord `bson:"media" json:"media" gorm:"serializer:json;type:text" validate:"max=12,dive"`
	CreatedAt    time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// HasMedia reports whether publicID is attached to the listing.
func (l *Listing) HasMedia(publicID string) bool {
	for _, m := range l.Media {
		if m.PublicID == publicID {
			return true
		}
	}
	return false
}

// Cover returns the cover media record, if any.
func (l *Listing) Cover() (MediaRecord, bool) {
	for _, m := range l.Media {
		if m.IsCover {
			return m, true
		}
	}
	return MediaRecord{}, false
}
