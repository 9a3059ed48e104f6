package catalog

import (
	"fmt"

	"github.com/randalmurphal/typeconv/pkg/typeconv/registry"
)

// Export saves a manifest of reg's current snapshot under name and returns it.
func Export(store Store, name string, reg *registry.Registry) (*Manifest, error) {
	m := New(reg.ID().String(), reg.Snapshot())
	data, err := m.Marshal()
	if err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}
	if err := store.Save(name, data); err != nil {
		return nil, err
	}
	return m, nil
}

// Load reads the manifest saved under name.
func Load(store Store, name string) (*Manifest, error) {
	data, err := store.Load(name)
	if err != nil {
		return nil, err
	}
	m, err := Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal manifest %q: %w", name, err)
	}
	if m.Version != Version {
		return nil, fmt.Errorf("manifest %q: unsupported version %d", name, m.Version)
	}
	return m, nil
}
