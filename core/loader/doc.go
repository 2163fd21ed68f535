// Package loader registers features with the HTTP app.
//
// A feature owns a route group and the service behind it. cmd/start builds
// every feature from the shared runtime (store, cache, orchestrator) and hands
// them to a Manager, which loads the enabled ones in registration order:
//
//	mgr := loader.NewManager()
//	mgr.Register(scouting.NewFeature(o, c, cfg.Team.Name, logg))
//	if err := mgr.LoadAll(app); err != nil { ... }
//
// LoadAll stops at the first feature whose Load fails.
package loader
