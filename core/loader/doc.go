// Package loader provides the plugin-like feature loading system.
//
// Features register their routes on the Fiber application. Each feature
// implements the Feature interface:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// # Manager
//
// The Manager holds the registry of features. Register adds one; LoadAll
// loads the enabled ones in registration order and logs the disabled ones
// (e.g. 'columns' without a database).
package loader
