// Package resolve selects the single conversion record that serves a request.
//
// Resolution is staged. Each stage queries a registry snapshot and, if it
// yields candidates, ranks them; later stages only run when earlier ones
// find nothing:
//
//  1. exact: From and To match by identity
//  2. assignable-to: From matches, the record's To is assignable to To
//  3. assignable-from: From is assignable to the record's From and the
//     record's To is assignable to To
//
// Within a stage, records whose Argument equals the requested argument type
// outrank argument-less records, and records whose Name equals the requested
// alias outrank nameless ones. If several candidates remain, the first
// registered wins only when the alias was matched explicitly and every
// remaining record allows disambiguation; otherwise the result is Ambiguous.
//
// The engine never returns errors: NotFound and Ambiguous are outcomes that
// the caller turns into errors or fallbacks.
package resolve

import (
	"iter"
	"reflect"

	"github.com/randalmurphal/typeconv/pkg/typeconv/record"
	"github.com/randalmurphal/typeconv/pkg/typeconv/registry"
)

// Outcome classifies a resolution.
type Outcome int

const (
	// NotFound means no record applies.
	NotFound Outcome = iota

	// Found means exactly one record was selected.
	Found

	// Ambiguous means several equally ranked records apply.
	Ambiguous
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case NotFound:
		return "not_found"
	case Found:
		return "found"
	case Ambiguous:
		return "ambiguous"
	default:
		return "unknown"
	}
}

// Stage identifies which matching stage produced a result.
type Stage int

const (
	// StageNone is reported for NotFound results.
	StageNone Stage = iota
	// StageExact matched From and To by identity.
	StageExact
	// StageAssignableTo matched From exactly and To by assignability.
	StageAssignableTo
	// StageAssignableFrom matched both sides by assignability.
	StageAssignableFrom
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageExact:
		return "exact"
	case StageAssignableTo:
		return "assignable_to"
	case StageAssignableFrom:
		return "assignable_from"
	default:
		return "none"
	}
}

// Request describes the conversion a caller wants.
// Request is comparable and used as a cache key.
type Request struct {
	From     reflect.Type
	To       reflect.Type
	Argument reflect.Type
	Name     string

	// Assignable permits the assignable stages.
	Assignable bool
}

// Result is the outcome of a resolution.
type Result struct {
	Outcome Outcome
	// Record is set when Outcome is Found.
	Record *record.Record
	// Candidates holds the tied records when Outcome is Ambiguous.
	Candidates []*record.Record
	Stage      Stage
}

// Source is what the engine reads records from.
// *registry.Registry and *registry.Snapshot both satisfy it.
type Source interface {
	Query(q registry.Query) iter.Seq[*record.Record]
}

// Resolve runs the staged algorithm against src. It has no side effects;
// the same request against unchanged records returns the same result.
func Resolve(src Source, req Request) Result {
	if req.From == nil || req.To == nil {
		return Result{Outcome: NotFound}
	}

	stages := []struct {
		stage Stage
		query registry.Query
		keep  func(*record.Record) bool
	}{
		{StageExact, registry.Query{From: req.From, To: req.To}, nil},
		{StageAssignableTo, registry.Query{From: req.From, To: req.To, Assignable: true},
			func(r *record.Record) bool { return r.From() == req.From }},
		{StageAssignableFrom, registry.Query{From: req.From, To: req.To, Assignable: true}, nil},
	}

	for i, st := range stages {
		if i > 0 && !req.Assignable {
			break
		}
		var found []*record.Record
		for rec := range src.Query(st.query) {
			if st.keep == nil || st.keep(rec) {
				found = append(found, rec)
			}
		}
		if res, ok := rank(found, req); ok {
			res.Stage = st.stage
			return res
		}
	}
	return Result{Outcome: NotFound}
}

// rank applies the argument and alias tie-breaks to one stage's candidates.
// It returns false when no candidate survives the argument filter.
func rank(found []*record.Record, req Request) (Result, bool) {
	candidates := byArgument(found, req.Argument)
	if len(candidates) == 0 {
		return Result{}, false
	}

	candidates, aliased := byName(candidates, req.Name)
	if len(candidates) == 1 {
		return Result{Outcome: Found, Record: candidates[0]}, true
	}
	if aliased && allDisambiguate(candidates) {
		return Result{Outcome: Found, Record: candidates[0]}, true
	}
	return Result{Outcome: Ambiguous, Candidates: candidates}, true
}

// byArgument keeps records taking exactly the requested argument type,
// falling back to argument-less records.
func byArgument(found []*record.Record, arg reflect.Type) []*record.Record {
	if arg != nil {
		if exact := filter(found, func(r *record.Record) bool { return r.Argument() == arg }); len(exact) > 0 {
			return exact
		}
	}
	return filter(found, func(r *record.Record) bool { return r.Argument() == nil })
}

// byName keeps records matching the alias, or nameless records.
// It reports whether the alias matched explicitly.
func byName(candidates []*record.Record, name string) ([]*record.Record, bool) {
	if name != "" {
		if named := filter(candidates, func(r *record.Record) bool { return r.Name() == name }); len(named) > 0 {
			return named, true
		}
	}
	if nameless := filter(candidates, func(r *record.Record) bool { return r.Name() == "" }); len(nameless) > 0 {
		return nameless, false
	}
	return candidates, false
}

func allDisambiguate(candidates []*record.Record) bool {
	for _, r := range candidates {
		if !r.AllowsDisambiguation() {
			return false
		}
	}
	return true
}

func filter(in []*record.Record, keep func(*record.Record) bool) []*record.Record {
	var out []*record.Record
	for _, r := range in {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
