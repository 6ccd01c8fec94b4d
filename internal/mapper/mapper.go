// Package mapper stores a decoded value tree into Go values.
package mapper

import (
	"encoding"
	"fmt"
	"math"
	"reflect"

	yerrors "github.com/KimNorgaard/go-yamlite/errors"
	"github.com/KimNorgaard/go-yamlite/internal/fields"
	"github.com/KimNorgaard/go-yamlite/value"
)

// Unmarshaler is implemented by types that read themselves from a value
// tree.
type Unmarshaler interface {
	UnmarshalYAMLite(value.Value) error
}

const defaultMaxDepth = 1000

var valueType = reflect.TypeFor[value.Value]()

// Map stores v into the value pointed to by out.
func Map(v value.Value, out any, maxDepth int) error {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("yamlite: Unmarshal(non-pointer %T or nil)", out)
	}
	if maxDepth <= 0 {
		maxDepth = defaultMaxDepth
	}
	ds := &decodeState{depth: maxDepth + 1}
	return ds.mapValue(v, rv.Elem(), "")
}

type decodeState struct {
	depth int
}

func (ds *decodeState) mapValue(v value.Value, rv reflect.Value, path string) error {
	ds.depth--
	if ds.depth < 0 {
		return fmt.Errorf("yamlite: %w at key %q", yerrors.ErrMaxDepth, path)
	}
	defer func() { ds.depth++ }()

	if v == nil {
		v = value.Null{}
	}

	if _, isNull := v.(value.Null); isNull {
		switch rv.Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice:
			rv.Set(reflect.Zero(rv.Type()))
			return nil
		}
	}

	handled, err := ds.tryCustomUnmarshal(v, rv)
	if handled || err != nil {
		return err
	}

	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		rv = rv.Elem()
		if handled, err := ds.tryCustomUnmarshal(v, rv); handled || err != nil {
			return err
		}
	}

	if rv.Kind() == reflect.Interface {
		return mapInterface(v, rv)
	}
	if !rv.CanSet() {
		return fmt.Errorf("yamlite: cannot set value of type %s", rv.Type())
	}

	switch x := v.(type) {
	case value.Null:
		rv.Set(reflect.Zero(rv.Type()))
		return nil
	case value.Bool:
		if rv.Kind() != reflect.Bool {
			return typeError(v, rv, path)
		}
		rv.SetBool(bool(x))
		return nil
	case value.Int:
		return mapInt(int64(x), rv, path)
	case value.Float:
		return mapFloat(float64(x), rv, path)
	case value.String:
		return mapString(string(x), rv, path)
	case value.Sequence:
		switch rv.Kind() {
		case reflect.Slice:
			return ds.mapSlice(x, rv, path)
		case reflect.Array:
			return ds.mapArray(x, rv, path)
		}
		return typeError(v, rv, path)
	case *value.Mapping:
		switch rv.Kind() {
		case reflect.Struct:
			return ds.mapStruct(x, rv, path)
		case reflect.Map:
			return ds.mapMap(x, rv, path)
		}
		return typeError(v, rv, path)
	}
	return typeError(v, rv, path)
}

func typeError(v value.Value, rv reflect.Value, path string) error {
	return &yerrors.UnmarshalTypeError{Value: v.Kind().String(), Type: rv.Type(), Key: path}
}

// tryCustomUnmarshal uses Unmarshaler or encoding.TextUnmarshaler when rv
// implements one of them. TextUnmarshaler is only used for strings.
func (ds *decodeState) tryCustomUnmarshal(v value.Value, rv reflect.Value) (bool, error) {
	if !rv.CanAddr() {
		return false, nil
	}
	pv := rv.Addr()
	if !pv.CanInterface() {
		return false, nil
	}

	if u, ok := pv.Interface().(Unmarshaler); ok {
		if err := u.UnmarshalYAMLite(v); err != nil {
			return true, &yerrors.UnmarshalerError{Type: pv.Type(), Err: err}
		}
		return true, nil
	}

	if u, ok := pv.Interface().(encoding.TextUnmarshaler); ok {
		s, isString := v.(value.String)
		if !isString {
			return false, nil
		}
		if err := u.UnmarshalText([]byte(s)); err != nil {
			return true, &yerrors.UnmarshalerError{Type: pv.Type(), Err: err}
		}
		return true, nil
	}
	return false, nil
}

func mapInt(i int64, rv reflect.Value, path string) error {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if rv.OverflowInt(i) {
			return fmt.Errorf("yamlite: integer value %d overflows Go value of type %s", i, rv.Type())
		}
		rv.SetInt(i)
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if i < 0 || rv.OverflowUint(uint64(i)) {
			return fmt.Errorf("yamlite: integer value %d overflows Go value of type %s", i, rv.Type())
		}
		rv.SetUint(uint64(i))
		return nil
	case reflect.Float32, reflect.Float64:
		rv.SetFloat(float64(i))
		return nil
	}
	return typeError(value.Int(i), rv, path)
}

func mapFloat(f float64, rv reflect.Value, path string) error {
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		if !math.IsInf(f, 0) && !math.IsNaN(f) && rv.OverflowFloat(f) {
			return fmt.Errorf("yamlite: float value %g overflows Go value of type %s", f, rv.Type())
		}
		rv.SetFloat(f)
		return nil
	}
	return typeError(value.Float(f), rv, path)
}

func mapString(s string, rv reflect.Value, path string) error {
	switch {
	case rv.Kind() == reflect.String:
		rv.SetString(s)
		return nil
	case rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8:
		rv.SetBytes([]byte(s))
		return nil
	}
	return typeError(value.String(s), rv, path)
}

func (ds *decodeState) mapSlice(seq value.Sequence, rv reflect.Value, path string) error {
	newSlice := reflect.MakeSlice(rv.Type(), len(seq), len(seq))
	for i, item := range seq {
		if err := ds.mapValue(item, newSlice.Index(i), fmt.Sprintf("%s[%d]", path, i)); err != nil {
			return err
		}
	}
	rv.Set(newSlice)
	return nil
}

func (ds *decodeState) mapArray(seq value.Sequence, rv reflect.Value, path string) error {
	if rv.Len() != len(seq) {
		return fmt.Errorf("yamlite: cannot unmarshal sequence of length %d into Go array of length %d", len(seq), rv.Len())
	}
	for i, item := range seq {
		if err := ds.mapValue(item, rv.Index(i), fmt.Sprintf("%s[%d]", path, i)); err != nil {
			return err
		}
	}
	return nil
}

func (ds *decodeState) mapMap(m *value.Mapping, rv reflect.Value, path string) error {
	mapType := rv.Type()
	if mapType.Key().Kind() != reflect.String {
		return fmt.Errorf("yamlite: cannot unmarshal mapping into map with non-string key type %s", mapType.Key())
	}
	if rv.IsNil() {
		rv.Set(reflect.MakeMapWithSize(mapType, m.Len()))
	} else {
		rv.Clear()
	}
	for _, e := range m.Entries() {
		elem := reflect.New(mapType.Elem()).Elem()
		if err := ds.mapValue(e.Value, elem, joinKey(path, e.Key)); err != nil {
			return err
		}
		rv.SetMapIndex(reflect.ValueOf(e.Key).Convert(mapType.Key()), elem)
	}
	return nil
}

// mapStruct fills the fields named by the mapping keys. Unknown keys are
// ignored.
func (ds *decodeState) mapStruct(m *value.Mapping, rv reflect.Value, path string) error {
	fs := fields.Of(rv.Type())
	for _, e := range m.Entries() {
		f, ok := fs.Lookup(e.Key)
		if !ok {
			continue
		}
		fv := fields.ByIndexAlloc(rv, f.Index)
		if !fv.CanSet() {
			continue
		}
		if err := ds.mapValue(e.Value, fv, joinKey(path, e.Key)); err != nil {
			return err
		}
	}
	return nil
}

func mapInterface(v value.Value, rv reflect.Value) error {
	if rv.Type() == valueType {
		rv.Set(reflect.ValueOf(v))
		return nil
	}
	if rv.NumMethod() != 0 {
		return fmt.Errorf("yamlite: cannot unmarshal into non-empty interface %s", rv.Type())
	}
	rv.Set(reflect.ValueOf(value.ToGo(v)))
	return nil
}

func joinKey(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
