// Package media computes a listing's final media list.
//
// Reconcile is a pure function: given the stored media, the results of this
// request's uploads, the ids to remove, the client's display order and the
// requested cover, it returns a Plan with the ordered records and the remote
// objects that should be deleted once the listing is saved.
//
// Order tokens are either existing public ids or new-* markers that refer to
// uploads. ResolveTempTokens decides which marker belongs to which upload.
// Unknown and repeated tokens are skipped; the first occurrence keeps its
// position. An order that resolves to nothing keeps every survivor followed by
// every upload, so a malformed order cannot wipe a listing's media.
package media
