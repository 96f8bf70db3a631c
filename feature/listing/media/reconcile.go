package media

import (
	"errors"
	"fmt"
	"time"

	"estate-manager/core/storage"
	"estate-manager/feature/listing/models"
)

// MaxMedia is the maximum number of media records on a listing.
const MaxMedia = 12

// ErrCapacityExceeded is returned when survivors plus uploads exceed the cap.
var ErrCapacityExceeded = errors.New("media capacity exceeded")

// Input is everything the reconciler needs. It performs no I/O: uploads are
// already done and deletions are only planned.
type Input struct {
	// Existing is the listing's media before this request.
	Existing []models.MediaRecord
	// Uploaded holds the results of this request's uploads, in file order.
	Uploaded []storage.UploadResult
	// RemovedIDs are public ids the client asked to delete.
	RemovedIDs []string
	// Order is the client's display order of public ids and new-* markers.
	Order []string
	// TempIDs are correlation tokens aligned with Uploaded.
	TempIDs []string
	// CoverID is the public id (or new-* marker) that should become cover.
	CoverID string
	// MaxTotal defaults to MaxMedia.
	MaxTotal int
	// Now seeds synthesized temp tokens.
	Now time.Time
}

// Plan is the computed, not yet persisted, media state.
type Plan struct {
	// FinalMedia is the ordered media list with cover and upload order assigned.
	FinalMedia []models.MediaRecord
	// IDsToDeleteRemotely are pre-existing public ids that leave the listing,
	// explicitly removed or dropped because the order omitted them.
	IDsToDeleteRemotely []string
	// UploadedPublicIDs are every object created by this request.
	UploadedPublicIDs []string
	// DiscardedUploads are uploads of this request the order omitted.
	DiscardedUploads []string
	// Skipped are order tokens that resolved to nothing or repeated an earlier token.
	Skipped []string
	// TempTokens maps each resolved temp token to the public id it produced.
	TempTokens map[string]string
}

// Survivors returns existing records whose public id is not in removed.
func Survivors(existing []models.MediaRecord, removed []string) []models.MediaRecord {
	drop := make(map[string]struct{}, len(removed))
	for _, id := range removed {
		drop[id] = struct{}{}
	}
	out := make([]models.MediaRecord, 0, len(existing))
	for _, m := range existing {
		if _, ok := drop[m.PublicID]; ok {
			continue
		}
		out = append(out, m)
	}
	return out
}

// CheckCapacity fails with ErrCapacityExceeded when survivors plus incoming exceed max.
func CheckCapacity(survivors, incoming, max int) error {
	if max <= 0 {
		max = MaxMedia
	}
	if survivors+incoming > max {
		return fmt.Errorf("%w: %d existing + %d new > %d", ErrCapacityExceeded, survivors, incoming, max)
	}
	return nil
}

// Reconcile merges surviving media, new uploads and the client order into the
// final media list. Duplicate order tokens keep their first position.
func Reconcile(in Input) (*Plan, error) {
	survivors := Survivors(in.Existing, in.RemovedIDs)
	if err := CheckCapacity(len(survivors), len(in.Uploaded), in.MaxTotal); err != nil {
		return nil, err
	}

	plan := &Plan{
		UploadedPublicIDs: make([]string, 0, len(in.Uploaded)),
		TempTokens:        make(map[string]string, len(in.Uploaded)),
	}

	existingByID := make(map[string]models.MediaRecord, len(survivors))
	for _, m := range survivors {
		existingByID[m.PublicID] = m
	}

	uploaded := make([]models.MediaRecord, len(in.Uploaded))
	newByToken := make(map[string]models.MediaRecord, len(in.Uploaded))
	tokens := ResolveTempTokens(in.Order, in.TempIDs, len(in.Uploaded), in.Now)
	for i, res := range in.Uploaded {
		rec := fromUpload(res)
		uploaded[i] = rec
		newByToken[tokens[i]] = rec
		plan.TempTokens[tokens[i]] = rec.PublicID
		plan.UploadedPublicIDs = append(plan.UploadedPublicIDs, rec.PublicID)
	}

	var final []models.MediaRecord
	placed := make(map[string]struct{})
	for _, tok := range in.Order {
		var (
			rec models.MediaRecord
			ok  bool
		)
		if IsTempToken(tok) {
			rec, ok = newByToken[tok]
		} else {
			rec, ok = existingByID[tok]
		}
		if !ok {
			plan.Skipped = append(plan.Skipped, tok)
			continue
		}
		if _, dup := placed[rec.PublicID]; dup {
			plan.Skipped = append(plan.Skipped, tok)
			continue
		}
		placed[rec.PublicID] = struct{}{}
		final = append(final, rec)
	}

	if len(final) == 0 {
		final = make([]models.MediaRecord, 0, len(survivors)+len(uploaded))
		final = append(final, survivors...)
		final = append(final, uploaded...)
	} else {
		for _, m := range survivors {
			if _, ok := placed[m.PublicID]; !ok {
				plan.IDsToDeleteRemotely = append(plan.IDsToDeleteRemotely, m.PublicID)
			}
		}
		for _, m := range uploaded {
			if _, ok := placed[m.PublicID]; !ok {
				plan.DiscardedUploads = append(plan.DiscardedUploads, m.PublicID)
			}
		}
	}

	existing := make(map[string]struct{}, len(in.Existing))
	for _, m := range in.Existing {
		existing[m.PublicID] = struct{}{}
	}
	removed := make(map[string]struct{}, len(in.RemovedIDs))
	for _, id := range in.RemovedIDs {
		if _, ok := existing[id]; !ok {
			continue
		}
		if _, dup := removed[id]; dup {
			continue
		}
		removed[id] = struct{}{}
		plan.IDsToDeleteRemotely = append(plan.IDsToDeleteRemotely, id)
	}

	coverID := in.CoverID
	if publicID, ok := plan.TempTokens[coverID]; ok {
		coverID = publicID
	}
	assignPositions(final, coverID)
	plan.FinalMedia = final

	return plan, nil
}

func assignPositions(final []models.MediaRecord, coverID string) {
	coverIdx := -1
	for i := range final {
		final[i].UploadOrder = i + 1
		final[i].IsCover = false
		if coverIdx < 0 && coverID != "" && final[i].PublicID == coverID {
			coverIdx = i
		}
	}
	if len(final) == 0 {
		return
	}
	if coverIdx < 0 {
		coverIdx = 0
	}
	final[coverIdx].IsCover = true
}

func fromUpload(res storage.UploadResult) models.MediaRecord {
	rt := res.ResourceType
	if rt == "" {
		rt = storage.ResourceImage
	}
	bytes := res.Bytes
	if bytes < 0 {
		bytes = 0
	}
	return models.MediaRecord{
		PublicID:        res.PublicID,
		URL:             res.URL,
		ResourceType:    rt,
		Bytes:           bytes,
		DurationSeconds: res.DurationSeconds,
	}
}
