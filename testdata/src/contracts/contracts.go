// Package contracts declares service contracts used by other fixtures.
package contracts

// Plugin is implemented by loadable plugins.
type Plugin interface {
	Name() string
}

// Base is a concrete contract, satisfied only by embedding.
type Base struct{}

// Name returns the plugin name.
func (Base) Name() string { return "base" }
