// Package audit compares the media referenced by listings with the objects in
// the media bucket.
//
// Storage-only objects are orphans left by interrupted requests or failed
// compensations. Database-only references point at objects that no longer
// exist. Both kinds can be purged: orphans are removed from the bucket and
// dangling references are detached from their listing, which recomputes the
// listing's cover and order.
package audit
