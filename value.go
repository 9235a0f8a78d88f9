package polyjson

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Kind enumerates the JSON value tags.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindString
	KindInteger
	KindNumber
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindNumber:
		return "number"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "invalid"
	}
}

// Value is a tagged union over every JSON shape. The zero Value is null.
//
// Integer and Number are distinct tags but interoperate numerically: equality,
// ordering and hashing between them go by numeric magnitude, not by tag.
type Value struct {
	kind Kind
	b    bool
	s    string
	i    int64
	f    float64
	arr  []Value
	obj  *Object
}

// ---- constructors ----

// Null returns the JSON null value.
func Null() Value { return Value{kind: KindNull} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Integer returns an integral numeric value.
func Integer(i int64) Value { return Value{kind: KindInteger, i: i} }

// Number returns a floating-point numeric value.
func Number(f float64) Value { return Value{kind: KindNumber, f: f} }

// Array returns an array value over the given elements.
func Array(elems ...Value) Value {
	if elems == nil {
		elems = []Value{}
	}
	return Value{kind: KindArray, arr: elems}
}

// ObjectValue wraps an Object as a value. A nil object becomes an empty one.
func ObjectValue(o *Object) Value {
	if o == nil {
		o = NewObject()
	}
	return Value{kind: KindObject, obj: o}
}

// FromAny lifts host-native data into a Value. Recognized shapes are nil,
// bool, string, the integer and float primitives, json.Number, []any,
// map[string]any, []Value, *Object and Value itself (recursively for
// collections). Anything else panics with *CodingShapeError: staging
// unrecognized data for encoding is a contract violation, not a recoverable
// decode failure.
func FromAny(v any) Value {
	switch t := v.(type) {
	case nil:
		return Null()
	case Value:
		return t
	case bool:
		return Bool(t)
	case string:
		return String(t)
	case int:
		return Integer(int64(t))
	case int8:
		return Integer(int64(t))
	case int16:
		return Integer(int64(t))
	case int32:
		return Integer(int64(t))
	case int64:
		return Integer(t)
	case uint:
		return Integer(int64(t))
	case uint8:
		return Integer(int64(t))
	case uint16:
		return Integer(int64(t))
	case uint32:
		return Integer(int64(t))
	case float32:
		return Number(float64(t))
	case float64:
		return Number(t)
	case json.Number:
		return numberFromText(string(t))
	case []Value:
		return Array(append([]Value(nil), t...)...)
	case []any:
		elems := make([]Value, len(t))
		for i, e := range t {
			elems[i] = FromAny(e)
		}
		return Array(elems...)
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		o := NewObject()
		for _, k := range keys {
			o.Set(k, FromAny(t[k]))
		}
		return ObjectValue(o)
	case *Object:
		return ObjectValue(t)
	default:
		panic(&CodingShapeError{Value: v})
	}
}

// numberFromText keeps integral literals on the Integer tag.
func numberFromText(s string) Value {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Integer(i)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		panic(&CodingShapeError{Value: json.Number(s)})
	}
	return Number(f)
}

// ---- accessors ----

// Kind returns the value's tag.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is JSON null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns the boolean payload when the tag matches.
func (v Value) AsBool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// AsString returns the string payload when the tag matches.
func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.s, true
}

// AsInt returns the integral payload when the tag matches, or a Number whose
// magnitude is exactly integral.
func (v Value) AsInt() (int64, bool) {
	switch v.kind {
	case KindInteger:
		return v.i, true
	case KindNumber:
		if v.f == math.Trunc(v.f) && !math.IsInf(v.f, 0) {
			return int64(v.f), true
		}
	}
	return 0, false
}

// AsNumber returns the numeric magnitude used for cross-tag comparison. An
// Integer reports its value, a Number its float, and a String is parsed
// tolerating a comma decimal separator. All other tags (and unparseable
// strings) report no magnitude.
func (v Value) AsNumber() (float64, bool) {
	switch v.kind {
	case KindInteger:
		return float64(v.i), true
	case KindNumber:
		return v.f, true
	case KindString:
		s := strings.TrimSpace(v.s)
		if s == "" {
			return 0, false
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f, true
		}
		// locale tolerance: a single decimal comma
		if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
			if f, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64); err == nil {
				return f, true
			}
		}
	}
	return 0, false
}

// AsArray returns the element slice when the tag matches. The slice is shared,
// not copied.
func (v Value) AsArray() ([]Value, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	return v.arr, true
}

// AsObject returns the object payload when the tag matches.
func (v Value) AsObject() (*Object, bool) {
	if v.kind != KindObject {
		return nil, false
	}
	return v.obj, true
}

// ---- comparison ----

func (v Value) numericTag() bool { return v.kind == KindInteger || v.kind == KindNumber }

// Equal reports deep structural equality. Integer and Number compare by
// magnitude across tags; arrays are order-sensitive, objects are not.
func (v Value) Equal(w Value) bool {
	if v.kind == KindInteger && w.kind == KindInteger {
		// exact: float64 magnitude cannot separate int64 values beyond 2^53
		return v.i == w.i
	}
	if v.numericTag() && w.numericTag() {
		a, _ := v.AsNumber()
		b, _ := w.AsNumber()
		return a == b
	}
	if v.kind != w.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == w.b
	case KindString:
		return v.s == w.s
	case KindArray:
		if len(v.arr) != len(w.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(w.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		return v.obj.Equal(w.obj)
	default:
		return false
	}
}

// Less orders two values for stable output. Strings order lexicographically;
// everything else goes through the numeric magnitude, and when either side has
// no magnitude the answer is "not less".
func (v Value) Less(w Value) bool {
	if v.kind == KindString && w.kind == KindString {
		return v.s < w.s
	}
	if v.kind == KindInteger && w.kind == KindInteger {
		return v.i < w.i
	}
	a, aok := v.AsNumber()
	b, bok := w.AsNumber()
	if !aok || !bok {
		return false
	}
	return a < b
}

// ---- hashing ----

const (
	hashTagNull    = 0x00
	hashTagBool    = 0x01
	hashTagString  = 0x02
	hashTagNumeric = 0x03 // shared by Integer and Number
	hashTagArray   = 0x04
	hashTagObject  = 0x05
)

// Hash returns a 64-bit content hash consistent with Equal: values that
// compare equal hash identically, in particular Integer(12) and Number(12.0).
func (v Value) Hash() uint64 {
	d := xxhash.New()
	v.hashInto(d)
	return d.Sum64()
}

func (v Value) hashInto(d *xxhash.Digest) {
	var tag [1]byte
	switch v.kind {
	case KindNull:
		tag[0] = hashTagNull
		_, _ = d.Write(tag[:])
	case KindBool:
		tag[0] = hashTagBool
		_, _ = d.Write(tag[:])
		if v.b {
			_, _ = d.Write([]byte{1})
		} else {
			_, _ = d.Write([]byte{0})
		}
	case KindString:
		tag[0] = hashTagString
		_, _ = d.Write(tag[:])
		_, _ = d.WriteString(v.s)
	case KindInteger, KindNumber:
		mag, _ := v.AsNumber()
		tag[0] = hashTagNumeric
		_, _ = d.Write(tag[:])
		var buf [8]byte
		putUint64(buf[:], math.Float64bits(mag))
		_, _ = d.Write(buf[:])
	case KindArray:
		tag[0] = hashTagArray
		_, _ = d.Write(tag[:])
		for _, e := range v.arr {
			var buf [8]byte
			putUint64(buf[:], e.Hash())
			_, _ = d.Write(buf[:])
		}
	case KindObject:
		tag[0] = hashTagObject
		_, _ = d.Write(tag[:])
		// member order must not matter: fold per-member hashes commutatively
		var sum uint64
		for _, k := range v.obj.keys {
			sum += memberHash(k, v.obj.values[k])
		}
		var buf [8]byte
		putUint64(buf[:], sum)
		_, _ = d.Write(buf[:])
	}
}

func memberHash(key string, v Value) uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(key)
	var buf [8]byte
	putUint64(buf[:], v.Hash())
	_, _ = d.Write(buf[:])
	return d.Sum64()
}

func putUint64(b []byte, u uint64) {
	_ = b[7]
	b[0] = byte(u)
	b[1] = byte(u >> 8)
	b[2] = byte(u >> 16)
	b[3] = byte(u >> 24)
	b[4] = byte(u >> 32)
	b[5] = byte(u >> 40)
	b[6] = byte(u >> 48)
	b[7] = byte(u >> 56)
}
