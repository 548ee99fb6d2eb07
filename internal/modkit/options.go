package modkit

// Option mutates build configuration for a module
type Option func(*buildCfg)

type buildCfg struct {
	name  string
	ports any
}

// WithName sets a module name used in logs
func WithName(name string) Option {
	return func(c *buildCfg) { c.name = name }
}

// WithPorts injects collaborator ports owned by another package
// the concrete type is owned by the importing module
func WithPorts[T any](p T) Option {
	return func(c *buildCfg) { c.ports = p }
}
