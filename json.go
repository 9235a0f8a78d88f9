package polyjson

import (
	"bytes"
	"encoding/json"
	"sort"

	gojson "github.com/goccy/go-json"

	"github.com/studykit/polyjson/internal/jsontext"
)

// DecodeBytes parses JSON text into a Value. Number literals keep the
// Integer/Number split: integral literals land on the Integer tag. Object
// member order from the text is not observable through the standard decoder,
// so members adopt sorted key order; the ordered encoder reassigns positions
// from type metadata on output anyway.
func DecodeBytes(data []byte) (Value, error) {
	dec := gojson.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return Value{}, Issues{Issue{Path: "/", Code: CodeParseError, Message: "invalid JSON input", Cause: err}}
	}
	return fromDecoded(raw), nil
}

// fromDecoded lifts decoder output into a Value. The decoder can only produce
// recognized shapes, so unlike FromAny this cannot trip the coding-shape
// contract check.
func fromDecoded(raw any) Value {
	switch t := raw.(type) {
	case nil:
		return Null()
	case bool:
		return Bool(t)
	case string:
		return String(t)
	case json.Number:
		return numberFromText(string(t))
	case float64:
		return Number(t)
	case []any:
		elems := make([]Value, len(t))
		for i, e := range t {
			elems[i] = fromDecoded(e)
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
			o.Set(k, fromDecoded(t[k]))
		}
		return ObjectValue(o)
	default:
		// the decoder contract makes this unreachable
		panic(&CodingShapeError{Value: raw})
	}
}

// AppendJSON appends the compact JSON encoding of v to dst. Object members
// emit in insertion order; no reordering happens here.
func (v Value) AppendJSON(dst []byte) []byte {
	switch v.kind {
	case KindNull:
		return jsontext.AppendNull(dst)
	case KindBool:
		return jsontext.AppendBool(dst, v.b)
	case KindString:
		return jsontext.AppendString(dst, v.s)
	case KindInteger:
		return jsontext.AppendInt(dst, v.i)
	case KindNumber:
		return jsontext.AppendFloat(dst, v.f)
	case KindArray:
		dst = append(dst, '[')
		for i, e := range v.arr {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = e.AppendJSON(dst)
		}
		return append(dst, ']')
	case KindObject:
		dst = append(dst, '{')
		for i, k := range v.obj.keys {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = jsontext.AppendString(dst, k)
			dst = append(dst, ':')
			dst = v.obj.values[k].AppendJSON(dst)
		}
		return append(dst, '}')
	default:
		return jsontext.AppendNull(dst)
	}
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	return v.AppendJSON(nil), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := DecodeBytes(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// String renders the compact JSON text; convenient for logs and tests.
func (v Value) String() string {
	return string(v.AppendJSON(nil))
}
