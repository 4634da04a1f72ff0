package datatype

import "sort"

// cacheEntry holds a cached data type and, once computed, its closed
// metadata. Both are stored by pointer: Go's garbage collector substitutes
// for the reference counting the original implementation uses to share
// these objects with callers beyond the resolver's lifetime.
type cacheEntry struct {
	dataType *DataType
	metadata *ClosedDataTypeMetadata
}

// ClosedDataTypeMetadata records, for one data type, the minimum inheritance
// hop count to every ancestor reachable through allOf. Depth 0 means direct
// parent; the type's own URL is never a key, even across cycles.
type ClosedDataTypeMetadata struct {
	InheritanceDepths map[string]uint32
}

// ClosedDataType bundles a data type with every ancestor schema reachable
// through its inheritance closure.
type ClosedDataType struct {
	Schema      *DataType
	Definitions map[string]*DataType
}

// Resolver is a cache of known data types keyed by versioned URL, able to
// compute closure (transitive allOf inheritance) on demand. It is
// single-threaded by design (see SPEC_FULL.md §5): unlike the teacher's
// Compiler, it holds no internal mutex, because synchronization across
// goroutines is left entirely to the embedder.
type Resolver struct {
	cache map[string]*cacheEntry
}

// Option configures a Resolver at construction time. The option surface is
// empty today; it exists so callers have the same extension point shape as
// the rest of this module's functional-option constructors.
type Option func(*Resolver)

// NewResolver constructs an empty Resolver.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{cache: make(map[string]*cacheEntry)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// AddOpen inserts dt with no metadata if its URL is absent from the cache;
// otherwise it is a no-op — existing metadata, and the existing data type
// itself, are never clobbered by AddOpen. Use AddClosed to replace.
func (r *Resolver) AddOpen(dt *DataType) {
	key := dt.ID.String()
	if _, exists := r.cache[key]; exists {
		return
	}
	r.cache[key] = &cacheEntry{dataType: dt}
}

// AddClosed inserts or replaces the entry for dt, attaching metadata.
func (r *Resolver) AddClosed(dt *DataType, metadata *ClosedDataTypeMetadata) {
	r.cache[dt.ID.String()] = &cacheEntry{dataType: dt, metadata: metadata}
}

// UpdateMetadata swaps the metadata for id and returns the previous value,
// or nil if id has no cache entry.
func (r *Resolver) UpdateMetadata(id VersionedURL, metadata *ClosedDataTypeMetadata) *ClosedDataTypeMetadata {
	entry, ok := r.cache[id.String()]
	if !ok {
		return nil
	}
	previous := entry.metadata
	entry.metadata = metadata
	return previous
}

// ResolveDataTypeMetadata inserts each of dataTypes via AddOpen, then closes
// over allOf for every one of them in input order, returning their metadata.
// If any reference — at any depth, for any input — is missing from the
// cache, the whole call fails with DataTypeResolveError{Kind: MissingSchemas}
// even though the cache was already updated as a side effect; this is
// intentional (spec §7) and must be preserved by callers re-resolving later.
func (r *Resolver) ResolveDataTypeMetadata(dataTypes []*DataType) ([]*ClosedDataTypeMetadata, error) {
	ids := make([]string, 0, len(dataTypes))
	for _, dt := range dataTypes {
		r.AddOpen(dt)
		ids = append(ids, dt.ID.String())
	}

	missingSchemas := map[string]struct{}{}
	processedSchemas := map[string]struct{}{}
	results := make([]*ClosedDataTypeMetadata, 0, len(ids))

	for _, id := range ids {
		metadata := r.closeOne(id, processedSchemas, missingSchemas)
		results = append(results, metadata)
	}

	if len(missingSchemas) > 0 {
		return nil, &DataTypeResolveError{Kind: MissingSchemas, Schemas: sortedURLs(missingSchemas)}
	}
	return results, nil
}

// closeOne computes (or returns the already-computed) closure for id,
// implementing the layered-frontier algorithm from spec.md §4.4.
func (r *Resolver) closeOne(id string, processedSchemas, missingSchemas map[string]struct{}) *ClosedDataTypeMetadata {
	processedSchemas[id] = struct{}{}

	entry, ok := r.cache[id]
	if !ok {
		missingSchemas[id] = struct{}{}
		return nil
	}
	if entry.metadata != nil {
		return entry.metadata
	}

	depths := map[string]uint32{}
	localMissing := false
	type frontierEntry struct{ url string }

	var frontier []frontierEntry
	visited := map[string]struct{}{id: {}}
	for _, ref := range entry.dataType.AllOf {
		refURL := ref.URL.String()
		if refURL == id {
			continue // self-reference suppression
		}
		frontier = append(frontier, frontierEntry{url: refURL})
	}
	for _, f := range frontier {
		visited[f.url] = struct{}{}
		if _, present := depths[f.url]; !present {
			depths[f.url] = 0
		}
	}

	currentDepth := uint32(0)
	for len(frontier) > 0 {
		var next []frontierEntry
		for _, f := range frontier {
			refEntry, ok := r.cache[f.url]
			if !ok {
				missingSchemas[f.url] = struct{}{}
				localMissing = true
				continue
			}

			if refEntry.metadata != nil {
				for ancestorURL, d := range refEntry.metadata.InheritanceDepths {
					if ancestorURL == id {
						continue
					}
					candidate := d + currentDepth + 1
					if existing, present := depths[ancestorURL]; !present || candidate < existing {
						depths[ancestorURL] = candidate
					}
				}
				continue
			}

			if f.url != id {
				// The original resolver unconditionally inserts here,
				// which can clobber a smaller depth obtained from a
				// closed ancestor folded in earlier in the same sweep;
				// this module applies min uniformly instead, per the
				// spec's resolution of that ambiguity.
				if existing, present := depths[f.url]; !present || currentDepth < existing {
					depths[f.url] = currentDepth
				}
			}
			for _, parentRef := range refEntry.dataType.AllOf {
				parentURL := parentRef.URL.String()
				if _, seen := processedSchemas[parentURL]; seen {
					continue // cycle break
				}
				if _, seen := visited[parentURL]; seen {
					continue // already reached at a shallower or equal depth
				}
				visited[parentURL] = struct{}{}
				next = append(next, frontierEntry{url: parentURL})
			}
		}
		frontier = next
		currentDepth++
	}

	metadata := &ClosedDataTypeMetadata{InheritanceDepths: depths}
	if localMissing {
		// Per invariant §3, metadata is never stored if it would reference
		// an ancestor absent from the cache; the entry stays open so a
		// later resolve (once the missing type is added) can complete it.
		return nil
	}
	r.UpdateMetadata(mustParseCacheKey(id), metadata)
	return metadata
}

// GetClosedDataType builds the closed form of id: the schema plus one
// definition entry per URL in its inheritance_depths.
func (r *Resolver) GetClosedDataType(id VersionedURL) (*ClosedDataType, error) {
	key := id.String()
	entry, ok := r.cache[key]
	if !ok {
		return nil, &DataTypeResolveError{Kind: MissingSchemas, Schemas: []VersionedURL{id}}
	}
	if entry.metadata == nil {
		return nil, &DataTypeResolveError{Kind: MissingClosedDataType, ID: id}
	}

	definitions := make(map[string]*DataType, len(entry.metadata.InheritanceDepths))
	var missing []VersionedURL
	for ancestorURL := range entry.metadata.InheritanceDepths {
		ancestorEntry, ok := r.cache[ancestorURL]
		if !ok {
			missing = append(missing, mustParseCacheKey(ancestorURL))
			continue
		}
		definitions[ancestorURL] = ancestorEntry.dataType
	}
	if len(missing) > 0 {
		return nil, &DataTypeResolveError{Kind: MissingSchemas, Schemas: missing}
	}

	return &ClosedDataType{Schema: entry.dataType, Definitions: definitions}, nil
}

func mustParseCacheKey(s string) VersionedURL {
	u, err := ParseVersionedURL(s)
	if err != nil {
		// Cache keys are always produced by VersionedURL.String() on an
		// already-valid URL, so a parse failure here indicates a bug in
		// this file, not bad external input.
		panic(err)
	}
	return u
}

func sortedURLs(set map[string]struct{}) []VersionedURL {
	keys := make([]string, 0, len(set))
	for s := range set {
		keys = append(keys, s)
	}
	sort.Strings(keys)

	urls := make([]VersionedURL, 0, len(keys))
	for _, s := range keys {
		urls = append(urls, mustParseCacheKey(s))
	}
	return urls
}
