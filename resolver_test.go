package datatype

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func dataType(id string, parents ...string) *DataType {
	refs := make([]DataTypeReference, 0, len(parents))
	for _, p := range parents {
		refs = append(refs, DataTypeReference{URL: MustParseVersionedURL(p)})
	}
	return &DataType{ID: MustParseVersionedURL(id), Title: "t", AllOf: refs}
}

const (
	urlA = "https://blockprotocol.org/@alice/types/data-type/a/v/1"
	urlB = "https://blockprotocol.org/@alice/types/data-type/b/v/1"
	urlC = "https://blockprotocol.org/@alice/types/data-type/c/v/1"
)

// TestResolverInheritanceScenario mirrors spec.md §8 scenario 5: A has no
// parents, B's allOf is [A], C's allOf is [B, A]. C reaches A both directly
// (depth 0) and via B (depth 1); min must win, so the recorded depth is 0.
func TestResolverInheritanceScenario(t *testing.T) {
	r := NewResolver()
	a := dataType(urlA)
	b := dataType(urlB, urlA)
	c := dataType(urlC, urlB, urlA)

	metas, err := r.ResolveDataTypeMetadata([]*DataType{a, b, c})
	assert.NoError(t, err)
	assert.Len(t, metas, 3)

	assert.Empty(t, metas[0].InheritanceDepths)
	assert.Equal(t, map[string]uint32{urlA: 0}, metas[1].InheritanceDepths)
	assert.Equal(t, map[string]uint32{urlB: 0, urlA: 0}, metas[2].InheritanceDepths)
}

// TestResolverMissingReferenceScenario mirrors spec.md §8 scenario 6: B
// references A, which is absent from the cache. The call fails with
// MissingSchemas and B's cache entry must remain open (metadata nil).
func TestResolverMissingReferenceScenario(t *testing.T) {
	r := NewResolver()
	b := dataType(urlB, urlA)

	_, err := r.ResolveDataTypeMetadata([]*DataType{b})
	assert.Error(t, err)

	var resolveErr *DataTypeResolveError
	assert.ErrorAs(t, err, &resolveErr)
	assert.Equal(t, MissingSchemas, resolveErr.Kind)
	assert.Equal(t, []VersionedURL{MustParseVersionedURL(urlA)}, resolveErr.Schemas)

	_, err = r.GetClosedDataType(MustParseVersionedURL(urlB))
	var closedErr *DataTypeResolveError
	assert.ErrorAs(t, err, &closedErr)
	assert.Equal(t, MissingClosedDataType, closedErr.Kind)
}

func TestResolverCycleTerminates(t *testing.T) {
	r := NewResolver()
	a := dataType(urlA, urlB)
	b := dataType(urlB, urlA)

	metas, err := r.ResolveDataTypeMetadata([]*DataType{a, b})
	assert.NoError(t, err)
	assert.Len(t, metas, 2)

	_, selfInA := metas[0].InheritanceDepths[urlA]
	_, selfInB := metas[1].InheritanceDepths[urlB]
	assert.False(t, selfInA)
	assert.False(t, selfInB)
}

func TestResolverAddOpenDoesNotClobberClosed(t *testing.T) {
	r := NewResolver()
	a := dataType(urlA)
	r.AddClosed(a, &ClosedDataTypeMetadata{InheritanceDepths: map[string]uint32{}})

	other := dataType(urlA)
	r.AddOpen(other)

	closed, err := r.GetClosedDataType(MustParseVersionedURL(urlA))
	assert.NoError(t, err)
	assert.Same(t, a, closed.Schema)
}

func TestResolverResolveTwiceIsIdempotent(t *testing.T) {
	r := NewResolver()
	a := dataType(urlA)
	b := dataType(urlB, urlA)

	first, err := r.ResolveDataTypeMetadata([]*DataType{a, b})
	assert.NoError(t, err)

	second, err := r.ResolveDataTypeMetadata([]*DataType{a, b})
	assert.NoError(t, err)

	assert.Equal(t, first[1].InheritanceDepths, second[1].InheritanceDepths)
}

func TestGetClosedDataTypeBundlesDefinitions(t *testing.T) {
	r := NewResolver()
	a := dataType(urlA)
	b := dataType(urlB, urlA)

	_, err := r.ResolveDataTypeMetadata([]*DataType{a, b})
	assert.NoError(t, err)

	closed, err := r.GetClosedDataType(MustParseVersionedURL(urlB))
	assert.NoError(t, err)
	assert.Same(t, b, closed.Schema)
	assert.Same(t, a, closed.Definitions[urlA])
}
