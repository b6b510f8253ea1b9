// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package module

// Definition describes a module as it appears in a stream.
type Definition struct {
	// Name is the name of the module, such as "http" or "log".
	Name string

	// Group is the name of the stream the module belongs to.
	Group string

	// Label distinguishes two modules of the same name within a group.
	// It defaults to Name.
	Label string

	// Parameters are the module options given in the stream definition.
	Parameters map[string]string
}

// EffectiveLabel returns the label of the module, falling back to its name.
func (d Definition) EffectiveLabel() string {
	if d.Label != "" {
		return d.Label
	}
	return d.Name
}

// Parameter returns the named parameter and whether it was set.
func (d Definition) Parameter(key string) (string, bool) {
	v, ok := d.Parameters[key]
	return v, ok
}
