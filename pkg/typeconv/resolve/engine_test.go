package resolve

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/typeconv/pkg/typeconv/record"
)

func TestEngine_CachesPerVersion(t *testing.T) {
	r := newRegistry(t, atoi())
	e := NewEngine()
	req := Request{From: stringType, To: intType}

	res := e.Resolve(r.Snapshot(), req)
	require.Equal(t, Found, res.Outcome)
	assert.Equal(t, 1, e.Len())

	e.Resolve(r.Snapshot(), req)
	assert.Equal(t, 1, e.Len())

	aliased := atoi(record.WithName("fast"))
	require.NoError(t, r.Add(context.Background(), aliased))

	res = e.Resolve(r.Snapshot(), Request{From: stringType, To: intType, Name: "fast"})
	require.Equal(t, Found, res.Outcome)
	assert.Same(t, aliased, res.Record)
	assert.Equal(t, 1, e.Len(), "cache reset on new version")
}

func TestEngine_SeesRemoval(t *testing.T) {
	rec := atoi()
	r := newRegistry(t, rec)
	e := NewEngine()
	req := Request{From: stringType, To: intType}

	require.Equal(t, Found, e.Resolve(r.Snapshot(), req).Outcome)
	require.True(t, r.Remove(rec))
	assert.Equal(t, NotFound, e.Resolve(r.Snapshot(), req).Outcome)
}

func TestEngine_StaleSnapshotNotCached(t *testing.T) {
	r := newRegistry(t, atoi())
	e := NewEngine()

	old := r.Snapshot()
	require.NoError(t, r.Add(context.Background(), parseBase()))
	e.Resolve(r.Snapshot(), Request{From: stringType, To: intType})

	res := e.Resolve(old, Request{From: stringType, To: intType, Argument: intType})
	assert.Equal(t, Found, res.Outcome)
	assert.Nil(t, res.Record.Argument(), "old snapshot has no argument record")
	assert.Equal(t, 1, e.Len())
}

func TestEngine_Concurrent(t *testing.T) {
	r := newRegistry(t, atoi(), parseBase())
	e := NewEngine()

	var wg sync.WaitGroup
	for w := 0; w < 16; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				req := Request{From: stringType, To: intType}
				if (i+id)%2 == 0 {
					req.Argument = intType
				}
				if res := e.Resolve(r.Snapshot(), req); res.Outcome != Found {
					t.Errorf("unexpected outcome %s", res.Outcome)
					return
				}
			}
		}(w)
	}
	wg.Wait()
	assert.Equal(t, 2, e.Len())
}
