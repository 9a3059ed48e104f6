package registry

import (
	"iter"
	"maps"
	"reflect"
	"slices"

	"github.com/randalmurphal/typeconv/pkg/typeconv/record"
)

// Query selects records.
//
// Exact queries match From and To by identity. Assignable queries match
// records whose To is assignable to the requested To and whose From the
// requested From is assignable to. A nil From, To or Argument leaves that
// dimension unconstrained.
type Query struct {
	From       reflect.Type
	To         reflect.Type
	Argument   reflect.Type
	Assignable bool
}

// Snapshot is an immutable view of a registry at one point in time.
// It is safe for concurrent use.
type Snapshot struct {
	version uint64
	records []*record.Record
	index   map[record.Key][]*record.Record
}

var emptySnapshot = &Snapshot{index: map[record.Key][]*record.Record{}}

// Version increases with every published change of the owning registry.
func (s *Snapshot) Version() uint64 { return s.version }

// Count returns the number of records.
func (s *Snapshot) Count() int { return len(s.records) }

// All iterates over all records in insertion order.
func (s *Snapshot) All() iter.Seq[*record.Record] {
	return slices.Values(s.records)
}

// Records returns a copy of all records in insertion order.
func (s *Snapshot) Records() []*record.Record {
	return slices.Clone(s.records)
}

// Contains reports whether rec itself (not an equal signature) is registered.
func (s *Snapshot) Contains(rec *record.Record) bool {
	if rec == nil {
		return false
	}
	return slices.Contains(s.index[rec.Key()], rec)
}

// Query iterates over the records matching q in insertion order.
// The sequence can be ranged over any number of times.
func (s *Snapshot) Query(q Query) iter.Seq[*record.Record] {
	return func(yield func(*record.Record) bool) {
		source := s.records
		if !q.Assignable && q.From != nil && q.To != nil {
			source = s.index[record.Key{From: q.From, To: q.To}]
		}
		for _, rec := range source {
			if !q.matches(rec) {
				continue
			}
			if !yield(rec) {
				return
			}
		}
	}
}

func (q Query) matches(rec *record.Record) bool {
	if q.Argument != nil && rec.Argument() != q.Argument {
		return false
	}
	if q.Assignable {
		return assignable(q.From, rec.From()) && assignable(rec.To(), q.To)
	}
	return (q.From == nil || rec.From() == q.From) && (q.To == nil || rec.To() == q.To)
}

// assignable reports whether a value of type from can be used as to.
// A nil type on either side matches anything.
func assignable(from, to reflect.Type) bool {
	if from == nil || to == nil {
		return true
	}
	return from == to || from.AssignableTo(to)
}

// WithBaseType iterates over records whose declaring type is t, or is
// assignable to t (directly or through its pointer type).
func (s *Snapshot) WithBaseType(t reflect.Type) iter.Seq[*record.Record] {
	return s.filter(func(rec *record.Record) bool {
		d := rec.DeclaringType()
		if d == nil || t == nil {
			return false
		}
		return d == t || d.AssignableTo(t) || reflect.PointerTo(d).AssignableTo(t)
	})
}

// WithFrom iterates over records converting from exactly t.
func (s *Snapshot) WithFrom(t reflect.Type) iter.Seq[*record.Record] {
	return s.filter(func(rec *record.Record) bool { return rec.From() == t })
}

// WithTo iterates over records converting to exactly t.
func (s *Snapshot) WithTo(t reflect.Type) iter.Seq[*record.Record] {
	return s.filter(func(rec *record.Record) bool { return rec.To() == t })
}

// WithArgument iterates over records taking an argument of exactly t.
// A nil t selects records without an argument.
func (s *Snapshot) WithArgument(t reflect.Type) iter.Seq[*record.Record] {
	return s.filter(func(rec *record.Record) bool { return rec.Argument() == t })
}

func (s *Snapshot) filter(keep func(*record.Record) bool) iter.Seq[*record.Record] {
	return func(yield func(*record.Record) bool) {
		for _, rec := range s.records {
			if keep(rec) && !yield(rec) {
				return
			}
		}
	}
}

// conflict returns the error Add would report for rec, or nil.
func (s *Snapshot) conflict(rec *record.Record) error {
	bucket := s.index[rec.Key()]
	if slices.Contains(bucket, rec) {
		return &DuplicateConverterError{Signature: rec.Signature(), Existing: rec}
	}
	if rec.AllowsDisambiguation() {
		return nil
	}
	sig := rec.Signature()
	for _, existing := range bucket {
		if existing.Signature() == sig {
			return &DuplicateConverterError{Signature: sig, Existing: existing}
		}
	}
	return nil
}

// with returns a new snapshot with rec appended. s is left untouched.
func (s *Snapshot) with(rec *record.Record, version uint64) *Snapshot {
	index := maps.Clone(s.index)
	if index == nil {
		index = make(map[record.Key][]*record.Record)
	}
	key := rec.Key()
	index[key] = append(slices.Clip(index[key]), rec)
	return &Snapshot{
		version: version,
		records: append(slices.Clip(s.records), rec),
		index:   index,
	}
}

// without returns a new snapshot lacking rec, and whether rec was present.
func (s *Snapshot) without(rec *record.Record, version uint64) (*Snapshot, bool) {
	if !s.Contains(rec) {
		return s, false
	}
	index := maps.Clone(s.index)
	key := rec.Key()
	bucket := slices.DeleteFunc(slices.Clone(index[key]), func(r *record.Record) bool { return r == rec })
	if len(bucket) == 0 {
		delete(index, key)
	} else {
		index[key] = bucket
	}
	records := slices.DeleteFunc(slices.Clone(s.records), func(r *record.Record) bool { return r == rec })
	return &Snapshot{version: version, records: records, index: index}, true
}
