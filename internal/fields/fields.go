// Package fields reads the yamlite struct tags of a type once and caches
// the result for the marshaler and the mapper.
package fields

import (
	"reflect"
	"strings"
	"sync"
)

// Field describes one encodable struct field.
type Field struct {
	Name      string
	Index     []int
	Tagged    bool
	OmitEmpty bool
}

// Fields is the ordered field list of a struct type plus a name index.
type Fields struct {
	List   []Field
	byName map[string]int
}

// Lookup finds a field by its encoded name. An exact match wins over a
// case-insensitive one.
func (fs *Fields) Lookup(name string) (Field, bool) {
	if i, ok := fs.byName[name]; ok {
		return fs.List[i], true
	}
	for _, f := range fs.List {
		if !f.Tagged && strings.EqualFold(f.Name, name) {
			return f, true
		}
	}
	return Field{}, false
}

var cache sync.Map

// Of returns the fields of struct type t. Unexported fields and fields
// tagged `yamlite:"-"` are skipped. Fields of embedded structs without a
// tag name are promoted, unless the outer struct already has a field of
// the same name.
func Of(t reflect.Type) *Fields {
	if f, ok := cache.Load(t); ok {
		return f.(*Fields)
	}

	fs := &Fields{byName: make(map[string]int)}
	collect(fs, t, nil, 0)

	f, _ := cache.LoadOrStore(t, fs)
	return f.(*Fields)
}

func collect(fs *Fields, t reflect.Type, index []int, depth int) {
	var embedded []reflect.StructField

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		tag := sf.Tag.Get("yamlite")
		if tag == "-" {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")

		if sf.Anonymous && name == "" {
			ft := sf.Type
			if ft.Kind() == reflect.Pointer {
				if !sf.IsExported() {
					continue
				}
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				embedded = append(embedded, sf)
				continue
			}
		}
		if !sf.IsExported() {
			continue
		}

		f := Field{Index: append(append([]int(nil), index...), sf.Index...)}
		if name != "" {
			f.Name = name
			f.Tagged = true
		} else {
			f.Name = sf.Name
		}
		for opts != "" {
			var opt string
			opt, opts, _ = strings.Cut(opts, ",")
			if opt == "omitempty" {
				f.OmitEmpty = true
			}
		}
		add(fs, f)
	}

	// Embedded fields are visited after the outer ones so that outer names
	// shadow promoted names.
	for _, sf := range embedded {
		ft := sf.Type
		if ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		if depth < 16 {
			collect(fs, ft, append(append([]int(nil), index...), sf.Index...), depth+1)
		}
	}
}

func add(fs *Fields, f Field) {
	if _, dup := fs.byName[f.Name]; dup {
		return
	}
	fs.byName[f.Name] = len(fs.List)
	fs.List = append(fs.List, f)
}

// ByIndex returns the field of v at index, walking through embedded
// pointers. It reports false when a nil embedded pointer is in the way.
func ByIndex(v reflect.Value, index []int) (reflect.Value, bool) {
	for i, x := range index {
		if i > 0 && v.Kind() == reflect.Pointer {
			if v.IsNil() {
				return reflect.Value{}, false
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}
	return v, true
}

// ByIndexAlloc is like ByIndex but allocates nil embedded pointers on the
// way. v must be addressable.
func ByIndexAlloc(v reflect.Value, index []int) reflect.Value {
	for i, x := range index {
		if i > 0 && v.Kind() == reflect.Pointer {
			if v.IsNil() {
				v.Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}
	return v
}
