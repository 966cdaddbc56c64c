package parsing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
)

// maxDepth bounds object/array nesting accepted by DecodeJSON.
const maxDepth = 10000

// object is a decoded JSON object that remembers the order its keys appeared in.
type object struct {
	keys   []string
	values map[string]any
}

func (o *object) get(key string) (any, bool) {
	v, ok := o.values[key]
	return v, ok
}

// DecodeJSON decodes data into a generic value. Objects keep their key order,
// numbers are kept as json.Number.
func DecodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec, 0)
	if err != nil {
		return nil, &ParseError{Message: "invalid JSON", Cause: err}
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, &ParseError{Message: "unexpected data after top-level value"}
	}
	return v, nil
}

func decodeValue(dec *json.Decoder, depth int) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}
	if depth >= maxDepth {
		return nil, fmt.Errorf("nesting deeper than %d levels", maxDepth)
	}

	switch delim {
	case '{':
		obj := &object{values: make(map[string]any)}
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("object key is %T, not string", keyTok)
			}
			val, err := decodeValue(dec, depth+1)
			if err != nil {
				return nil, err
			}
			if _, seen := obj.values[key]; !seen {
				obj.keys = append(obj.keys, key)
			}
			obj.values[key] = val
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return obj, nil
	case '[':
		arr := []any{}
		for dec.More() {
			val, err := decodeValue(dec, depth+1)
			if err != nil {
				return nil, err
			}
			arr = append(arr, val)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return arr, nil
	default:
		return nil, fmt.Errorf("unexpected delimiter %q", delim)
	}
}

// asObject accepts decoded objects and plain Go maps. Plain maps carry no key
// order, so their keys are visited sorted.
func asObject(v any) (*object, bool) {
	switch t := v.(type) {
	case *object:
		return t, true
	case map[string]any:
		obj := &object{keys: make([]string, 0, len(t)), values: t}
		for k := range t {
			obj.keys = append(obj.keys, k)
		}
		sort.Strings(obj.keys)
		return obj, true
	default:
		return nil, false
	}
}

// asList accepts any slice shape a caller might hand over.
func asList(v any) ([]any, bool) {
	switch t := v.(type) {
	case []any:
		return t, true
	case []string:
		out := make([]any, len(t))
		for i, s := range t {
			out[i] = s
		}
		return out, true
	case []map[string]any:
		out := make([]any, len(t))
		for i, m := range t {
			out[i] = m
		}
		return out, true
	default:
		return nil, false
	}
}

// kindOf names a decoded value's JSON kind for diagnostics.
// numberValue reports whether v is one of the numeric kinds kindOf names
// "number", returning its text form and whether it is non-zero.
func numberValue(v any) (text string, nonZero bool, ok bool) {
	switch t := v.(type) {
	case json.Number:
		f, err := t.Float64()
		return t.String(), err != nil || f != 0, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), t != 0, true
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32), t != 0, true
	case int:
		return strconv.Itoa(t), t != 0, true
	case int64:
		return strconv.FormatInt(t, 10), t != 0, true
	case int32:
		return strconv.FormatInt(int64(t), 10), t != 0, true
	}
	return "", false, false
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number, float64, float32, int, int64, int32:
		return "number"
	case *object, map[string]any:
		return "object"
	case []any, []string, []map[string]any:
		return "array"
	default:
		return fmt.Sprintf("%T", v)
	}
}
