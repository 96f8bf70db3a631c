// Package loader provides the feature loading system.
//
// Each feature implements the Feature interface and registers its own routes.
// The Manager holds the registry and loads every enabled feature at startup.
//
//	mgr := loader.NewManager(logger)
//	mgr.Register(listing.NewFeature(...))
//	mgr.Register(audit.NewFeature(...))
//	if err := mgr.LoadAll(app); err != nil { ... }
package loader
