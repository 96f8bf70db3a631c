// Package database opens the connection that backs the listing store.
//
// MongoDB is the default backend (ConnectMongo). It must run as a replica set
// so listing updates can use multi-document transactions. The mysql and sqlite
// drivers go through GORM (Connect) and share the same listing semantics.
//
// # Usage
//
//	if cfg.Database.IsDocumentStore() {
//	    client, db, err := database.ConnectMongo(ctx, cfg.Database)
//	} else {
//	    db, err := database.Connect(cfg.Database)
//	}
package database
