package polyjson

import "sort"

// OrderedEncoder arranges an encoded object's members by the ordinals declared
// in the type's field metadata before any text is emitted. Emission afterwards
// is a single pass in stored order, keeping the whole encode linear in
// document size; no post-hoc text rewriting happens anywhere.
type OrderedEncoder struct {
	// DiscriminatorKey always sorts last regardless of metadata.
	DiscriminatorKey string
}

// Reorder rearranges obj's member order in place for v. When v carries field
// metadata, known members sort by ascending ordinal, the discriminator member
// last and any undeclared members alphabetically between the two. Duplicate
// wire keys across inheritance levels resolve to the more-derived level's
// ordinal. Without metadata the encoder degrades to alphabetical order, which
// is correct but unspecified; that is logged, not an error.
func (e OrderedEncoder) Reorder(v Serializable, obj *Object) {
	ordinals := e.ordinals(v)
	if ordinals == nil {
		log.Debugf("ordered encode: no field metadata for %q, falling back to key order", v.TypeName())
	}
	keys := obj.Keys()
	sort.SliceStable(keys, func(i, j int) bool {
		return e.keyLess(keys[i], keys[j], ordinals)
	})
	obj.setKeyOrder(keys)
}

// keyLess ranks discriminator last, declared keys by ordinal, the rest
// alphabetically after declared keys.
func (e OrderedEncoder) keyLess(a, b string, ordinals map[string]int) bool {
	if a == e.DiscriminatorKey || b == e.DiscriminatorKey {
		return b == e.DiscriminatorKey && a != e.DiscriminatorKey
	}
	ao, aok := ordinals[a]
	bo, bok := ordinals[b]
	switch {
	case aok && bok:
		return ao < bo
	case aok:
		return true
	case bok:
		return false
	default:
		return a < b
	}
}

// ordinals gathers the wire-key-to-ordinal mapping across the full inheritance
// chain. Each descriptor's ordinal already folds in its level's relative
// index, so a flat map suffices; on duplicate keys the higher relative index
// (more-derived level) wins.
func (e OrderedEncoder) ordinals(v Serializable) map[string]int {
	doc, ok := v.(Documentable)
	if !ok {
		return nil
	}
	fds := doc.FieldDescriptors()
	if len(fds) == 0 {
		return nil
	}
	out := make(map[string]int, len(fds))
	for _, fd := range fds {
		if prev, exists := out[fd.WireKey]; exists && prev >= fd.Ordinal() {
			continue
		}
		out[fd.WireKey] = fd.Ordinal()
	}
	return out
}
