package polyjson

// Object is an insertion-ordered string-to-Value mapping. Member order is
// preserved for display and encoding; Equal ignores it.
type Object struct {
	keys   []string
	values map[string]Value
}

// NewObject returns an empty object.
func NewObject() *Object {
	return &Object{values: map[string]Value{}}
}

// Set stores a member, keeping the original position when the key already
// exists. It returns the object for chaining.
func (o *Object) Set(key string, v Value) *Object {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
	return o
}

// Get returns the member for key.
func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Delete removes a member if present.
func (o *Object) Delete(key string) {
	if _, ok := o.values[key]; !ok {
		return
	}
	delete(o.values, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
}

// Len returns the member count.
func (o *Object) Len() int { return len(o.keys) }

// Keys returns the member keys in insertion order. The slice is a copy.
func (o *Object) Keys() []string {
	return append([]string(nil), o.keys...)
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.values[key]
	return ok
}

// Equal reports order-insensitive deep equality.
func (o *Object) Equal(other *Object) bool {
	if o == nil || other == nil {
		return o == other
	}
	if len(o.values) != len(other.values) {
		return false
	}
	for k, v := range o.values {
		w, ok := other.values[k]
		if !ok || !v.Equal(w) {
			return false
		}
	}
	return true
}

// setKeyOrder rearranges the insertion order to match keys, which must be a
// permutation of the current key set. Used by the ordered encoder.
func (o *Object) setKeyOrder(keys []string) {
	o.keys = keys
}

// ---- typed convenience getters used by decode routines ----

// GetString returns the string member for key.
func (o *Object) GetString(key string) (string, bool) {
	v, ok := o.values[key]
	if !ok {
		return "", false
	}
	return v.AsString()
}

// GetInt returns the integral member for key.
func (o *Object) GetInt(key string) (int64, bool) {
	v, ok := o.values[key]
	if !ok {
		return 0, false
	}
	return v.AsInt()
}

// GetNumber returns the numeric magnitude of the member for key.
func (o *Object) GetNumber(key string) (float64, bool) {
	v, ok := o.values[key]
	if !ok {
		return 0, false
	}
	return v.AsNumber()
}

// GetBool returns the boolean member for key.
func (o *Object) GetBool(key string) (bool, bool) {
	v, ok := o.values[key]
	if !ok {
		return false, false
	}
	return v.AsBool()
}

// GetArray returns the array member for key.
func (o *Object) GetArray(key string) ([]Value, bool) {
	v, ok := o.values[key]
	if !ok {
		return nil, false
	}
	return v.AsArray()
}

// GetObject returns the object member for key.
func (o *Object) GetObject(key string) (*Object, bool) {
	v, ok := o.values[key]
	if !ok {
		return nil, false
	}
	return v.AsObject()
}
