// Package models defines the listing document and its media records.
//
// The same struct is stored in MongoDB (bson tags) and in SQL tables through
// GORM, where nested values are serialized as JSON columns. Validate applies
// the field rules and the media invariants before a listing is persisted.
package models
