// Package listing implements listing CRUD and the listing update transaction.
//
// An update runs in three steps:
//
//   - Normalize turns the raw multipart fields into a typed ChangeSet.
//   - media.Reconcile merges stored media, new uploads and the client order.
//   - Service.UpdateListing runs the whole thing inside a store transaction,
//     uploading files before reconciliation and undoing those uploads through a
//     saga ledger if the transaction does not commit.
//
// Scratch files written by the handler are always removed before
// UpdateListing returns. Remote deletions of removed media are best effort:
// failures are logged and the update proceeds.
//
// Listings are stored in MongoDB (MongoStore) or in a SQL table (GormStore).
package listing
