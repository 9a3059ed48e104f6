// Package registry stores conversion records and answers queries over them.
//
// A Registry holds records in insertion order together with an index keyed
// by (From, To). Every mutation builds a new immutable Snapshot under a
// write lock and publishes it atomically, so readers never lock and never
// observe a half-applied change:
//
//	reg := registry.New()
//	err := reg.Add(ctx, record.New(strconv.Atoi))
//
//	for rec := range reg.Query(registry.Query{From: stringType, To: intType}) {
//	    fmt.Println(rec)
//	}
//
// # Uniqueness
//
// The tuple (From, To, Argument, Name) is unique unless the incoming record
// allows disambiguation. Add returns a *DuplicateConverterError otherwise.
//
// # Batches
//
// AddAll is a sequence of individually atomic adds, not a transaction:
// a failing record does not prevent later records in the same batch from
// being added, and records added before a failure stay registered.
//
// # Bootstrap
//
// Initialize runs a module's registration function at most once per owner
// type, replacing load-time discovery with an explicit bootstrap call.
package registry
