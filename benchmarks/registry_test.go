package benchmarks

import (
	"context"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/randalmurphal/typeconv/pkg/typeconv/builtin"
	"github.com/randalmurphal/typeconv/pkg/typeconv/catalog"
	"github.com/randalmurphal/typeconv/pkg/typeconv/record"
	"github.com/randalmurphal/typeconv/pkg/typeconv/registry"
)

// BenchmarkAdd measures registration into a growing registry.
func BenchmarkAdd(b *testing.B) {
	ctx := context.Background()
	reg := registry.New(registry.WithLogger(nil))
	recs := make([]*record.Record, b.N)
	for i := range recs {
		recs[i] = record.New(strconv.Atoi, record.WithName(strconv.Itoa(i)))
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = reg.Add(ctx, recs[i])
	}
}

// BenchmarkReset measures clearing and reseeding the built-ins.
func BenchmarkReset(b *testing.B) {
	ctx := context.Background()
	reg := registry.New(registry.WithLogger(nil), registry.WithSeed(builtin.Seed(nil)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = reg.Reset(ctx)
	}
}

// BenchmarkExport_Memory measures catalog export to the in-memory store.
func BenchmarkExport_Memory(b *testing.B) {
	reg := registry.New(registry.WithLogger(nil), registry.WithSeed(builtin.Seed(nil)), registry.WithAutoReset(true))
	store := catalog.NewMemoryStore()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = catalog.Export(store, "bench", reg)
	}
}

// BenchmarkExport_SQLite measures catalog export to SQLite.
func BenchmarkExport_SQLite(b *testing.B) {
	reg := registry.New(registry.WithLogger(nil), registry.WithSeed(builtin.Seed(nil)), registry.WithAutoReset(true))
	store, err := catalog.NewSQLiteStore(filepath.Join(b.TempDir(), "bench.db"))
	if err != nil {
		b.Fatal(err)
	}
	defer store.Close()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = catalog.Export(store, "bench", reg)
	}
}
