// Package catalog exports the contents of a converter registry as a
// manifest and keeps manifests in a store for diagnostics and documentation.
package catalog

import (
	"encoding/json"
	"iter"
	"time"

	"github.com/randalmurphal/typeconv/pkg/typeconv/record"
	"github.com/randalmurphal/typeconv/pkg/typeconv/registry"
)

// Version is the current manifest format version.
const Version = 1

// Entry describes one registered converter.
type Entry struct {
	Sequence      int    `json:"sequence"`
	ID            string `json:"id"`
	From          string `json:"from"`
	To            string `json:"to"`
	Argument      string `json:"argument,omitempty"`
	Name          string `json:"name,omitempty"`
	DeclaringType string `json:"declaring_type,omitempty"`
	Static        bool   `json:"static,omitempty"`
	Disambiguates bool   `json:"disambiguates,omitempty"`
}

// Signature renders the entry like record.Signature.String.
func (e Entry) Signature() string {
	s := e.From + " -> " + e.To
	if e.Argument != "" {
		s += " [" + e.Argument + "]"
	}
	if e.Name != "" {
		s += " (" + e.Name + ")"
	}
	return s
}

// EntryOf describes rec at position seq.
func EntryOf(seq int, rec *record.Record) Entry {
	e := Entry{
		Sequence:      seq,
		ID:            rec.ID().String(),
		From:          record.TypeName(rec.From()),
		To:            record.TypeName(rec.To()),
		Name:          rec.Name(),
		Static:        rec.IsStatic(),
		Disambiguates: rec.AllowsDisambiguation(),
	}
	if rec.Argument() != nil {
		e.Argument = rec.Argument().String()
	}
	if rec.DeclaringType() != nil {
		e.DeclaringType = rec.DeclaringType().String()
	}
	return e
}

// FromRecords describes records in iteration order, numbering from 1.
func FromRecords(records iter.Seq[*record.Record]) []Entry {
	var entries []Entry
	for rec := range records {
		entries = append(entries, EntryOf(len(entries)+1, rec))
	}
	return entries
}

// Manifest is the exported state of one registry snapshot.
type Manifest struct {
	Version         int       `json:"version"`
	RegistryID      string    `json:"registry_id"`
	SnapshotVersion uint64    `json:"snapshot_version"`
	Timestamp       time.Time `json:"timestamp"`
	Entries         []Entry   `json:"entries"`
}

// New creates a manifest of snap belonging to the registry with id registryID.
func New(registryID string, snap *registry.Snapshot) *Manifest {
	return &Manifest{
		Version:         Version,
		RegistryID:      registryID,
		SnapshotVersion: snap.Version(),
		Timestamp:       time.Now().UTC(),
		Entries:         FromRecords(snap.All()),
	}
}

// Marshal serializes a manifest to JSON.
func (m *Manifest) Marshal() ([]byte, error) {
	return json.Marshal(m)
}

// Unmarshal deserializes a manifest from JSON.
func Unmarshal(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Diff returns the signatures present only in b (added) and only in a
// (removed), each in its manifest's order.
func Diff(a, b *Manifest) (added, removed []string) {
	count := func(m *Manifest) map[string]int {
		out := make(map[string]int)
		for _, e := range m.Entries {
			out[e.Signature()]++
		}
		return out
	}

	inA := count(a)
	for _, e := range b.Entries {
		sig := e.Signature()
		if inA[sig] > 0 {
			inA[sig]--
			continue
		}
		added = append(added, sig)
	}

	inB := count(b)
	for _, e := range a.Entries {
		sig := e.Signature()
		if inB[sig] > 0 {
			inB[sig]--
			continue
		}
		removed = append(removed, sig)
	}
	return added, removed
}
