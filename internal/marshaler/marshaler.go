package marshaler

import (
	"encoding"
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"

	yerrors "github.com/KimNorgaard/go-yamlite/errors"
	"github.com/KimNorgaard/go-yamlite/internal/fields"
	"github.com/KimNorgaard/go-yamlite/value"
)

// Marshaler is implemented by types that build their own value tree.
type Marshaler interface {
	MarshalYAMLite() (value.Value, error)
}

var (
	marshalerType     = reflect.TypeFor[Marshaler]()
	textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()
)

// Marshal converts a Go value into a value tree. maxDepth limits container
// nesting below the root so self-referencing values fail instead of
// recursing forever. Zero means no limit.
func Marshal(v any, maxDepth int) (value.Value, error) {
	e := &encodeState{maxDepth: maxDepth}
	return e.marshal(reflect.ValueOf(v), "", 0)
}

type encodeState struct {
	maxDepth int
}

func (e *encodeState) checkDepth(depth int, path string) error {
	if e.maxDepth > 0 && depth > e.maxDepth {
		return &yerrors.SerializeError{Key: path, Err: yerrors.ErrMaxDepth}
	}
	return nil
}

// isEmptyValue reports whether v is empty in the encoding/json sense:
// false, 0, a nil pointer, a nil interface value, and any empty array,
// slice, map, or string.
func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Pointer:
		return v.IsNil()
	}
	return false
}

func (e *encodeState) marshal(v reflect.Value, path string, depth int) (value.Value, error) {
	if !v.IsValid() {
		return value.Null{}, nil
	}

	if out, ok := asValue(v); ok {
		return out, nil
	}
	if done, out, err := custom(v, path); done {
		return out, err
	}

	// Follow pointers and interfaces to find the concrete value.
	var seen []uintptr
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return value.Null{}, nil
		}
		if v.Kind() == reflect.Pointer {
			if slices.Contains(seen, v.Pointer()) {
				return nil, &yerrors.SerializeError{Key: path, Err: fmt.Errorf("%w: pointer cycle", yerrors.ErrMaxDepth)}
			}
			seen = append(seen, v.Pointer())
		}
		v = v.Elem()
		if out, ok := asValue(v); ok {
			return out, nil
		}
		if done, out, err := custom(v, path); done {
			return out, err
		}
	}

	switch v.Kind() {
	case reflect.String:
		return value.String(v.String()), nil
	case reflect.Bool:
		return value.Bool(v.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return value.Int(v.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := v.Uint()
		if u > math.MaxInt64 {
			return nil, &yerrors.SerializeError{
				Key: path,
				Err: fmt.Errorf("%w: %d overflows int64", yerrors.ErrUnsupportedType, u),
			}
		}
		return value.Int(int64(u)), nil
	case reflect.Float32:
		// Go through the shortest float32 text so 0.1 stays 0.1.
		f, _ := strconv.ParseFloat(strconv.FormatFloat(v.Float(), 'g', -1, 32), 64)
		return value.Float(f), nil
	case reflect.Float64:
		return value.Float(v.Float()), nil
	case reflect.Slice:
		if v.IsNil() {
			return value.Null{}, nil
		}
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return value.String(v.Bytes()), nil
		}
		return e.marshalList(v, path, depth)
	case reflect.Array:
		return e.marshalList(v, path, depth)
	case reflect.Map:
		if v.IsNil() {
			return value.Null{}, nil
		}
		return e.marshalMap(v, path, depth)
	case reflect.Struct:
		return e.marshalStruct(v, path, depth)
	}
	return nil, &yerrors.SerializeError{Key: path, Err: fmt.Errorf("%w %s", yerrors.ErrUnsupportedType, v.Type())}
}

// asValue passes value trees through unchanged.
func asValue(v reflect.Value) (value.Value, bool) {
	if !v.CanInterface() {
		return nil, false
	}
	switch x := v.Interface().(type) {
	case *value.Mapping:
		if x == nil {
			return value.Null{}, true
		}
		return x, true
	case value.Null:
		return x, true
	case value.Bool:
		return x, true
	case value.Int:
		return x, true
	case value.Float:
		return x, true
	case value.String:
		return x, true
	case value.Sequence:
		return x, true
	}
	return nil, false
}

// custom applies Marshaler and encoding.TextMarshaler implementations.
func custom(v reflect.Value, path string) (bool, value.Value, error) {
	if v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer && v.IsNil() {
		return false, nil, nil
	}
	if v.Kind() != reflect.Pointer && v.CanAddr() {
		pt := reflect.PointerTo(v.Type())
		if pt.Implements(marshalerType) || pt.Implements(textMarshalerType) {
			v = v.Addr()
		}
	}
	switch {
	case v.Type().Implements(marshalerType):
		out, err := v.Interface().(Marshaler).MarshalYAMLite()
		if err != nil {
			return true, nil, &yerrors.SerializeError{Key: path, Err: err}
		}
		if out == nil {
			out = value.Null{}
		}
		return true, out, nil
	case v.Type().Implements(textMarshalerType):
		text, err := v.Interface().(encoding.TextMarshaler).MarshalText()
		if err != nil {
			return true, nil, &yerrors.SerializeError{Key: path, Err: err}
		}
		return true, value.String(text), nil
	}
	return false, nil, nil
}

func (e *encodeState) marshalList(v reflect.Value, path string, depth int) (value.Value, error) {
	if err := e.checkDepth(depth, path); err != nil {
		return nil, err
	}
	seq := make(value.Sequence, v.Len())
	for i := range v.Len() {
		item, err := e.marshal(v.Index(i), fmt.Sprintf("%s[%d]", path, i), depth+1)
		if err != nil {
			return nil, err
		}
		seq[i] = item
	}
	return seq, nil
}

// marshalMap emits entries sorted by key so the output is stable.
func (e *encodeState) marshalMap(v reflect.Value, path string, depth int) (value.Value, error) {
	if err := e.checkDepth(depth, path); err != nil {
		return nil, err
	}
	if v.Type().Key().Kind() != reflect.String {
		return nil, &yerrors.SerializeError{
			Key: path,
			Err: fmt.Errorf("%w: map key type must be a string, got %s", yerrors.ErrInvalidKey, v.Type().Key()),
		}
	}

	keys := v.MapKeys()
	slices.SortFunc(keys, func(a, b reflect.Value) int {
		switch {
		case a.String() < b.String():
			return -1
		case a.String() > b.String():
			return 1
		}
		return 0
	})

	entries := make([]value.Entry, 0, len(keys))
	for _, k := range keys {
		item, err := e.marshal(v.MapIndex(k), joinKey(path, k.String()), depth+1)
		if err != nil {
			return nil, err
		}
		entries = append(entries, value.Pair(k.String(), item))
	}
	return value.NewMapping(entries...)
}

func (e *encodeState) marshalStruct(v reflect.Value, path string, depth int) (value.Value, error) {
	if err := e.checkDepth(depth, path); err != nil {
		return nil, err
	}
	fs := fields.Of(v.Type())
	entries := make([]value.Entry, 0, len(fs.List))
	for _, f := range fs.List {
		fv, ok := fields.ByIndex(v, f.Index)
		if !ok {
			continue
		}
		if f.OmitEmpty && isEmptyValue(fv) {
			continue
		}
		item, err := e.marshal(fv, joinKey(path, f.Name), depth+1)
		if err != nil {
			return nil, err
		}
		entries = append(entries, value.Pair(f.Name, item))
	}
	m, err := value.NewMapping(entries...)
	if err != nil {
		return nil, &yerrors.SerializeError{Key: path, Err: err}
	}
	return m, nil
}

func joinKey(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
