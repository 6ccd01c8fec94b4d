package fields_test

import (
	"reflect"
	"testing"

	"github.com/KimNorgaard/go-yamlite/internal/fields"
	"github.com/stretchr/testify/require"
)

type Base struct {
	ID   int    `yamlite:"id"`
	Name string `yamlite:"name"`
}

type Meta struct {
	Owner string
}

type Service struct {
	Base
	*Meta
	Name    string   `yamlite:"name,omitempty"`
	Port    int      `yamlite:"port"`
	Hidden  string   `yamlite:"-"`
	Tags    []string `yamlite:",omitempty"`
	private int
}

func names(fs *fields.Fields) []string {
	out := make([]string, len(fs.List))
	for i, f := range fs.List {
		out[i] = f.Name
	}
	return out
}

func TestOf(t *testing.T) {
	fs := fields.Of(reflect.TypeOf(Service{}))
	require.Equal(t, []string{"name", "port", "Tags", "id", "Owner"}, names(fs))

	name, ok := fs.Lookup("name")
	require.True(t, ok)
	require.True(t, name.OmitEmpty)
	require.Equal(t, []int{2}, name.Index)

	id, ok := fs.Lookup("id")
	require.True(t, ok)
	require.Equal(t, []int{0, 0}, id.Index)

	tags, ok := fs.Lookup("tags")
	require.True(t, ok, "untagged names match case-insensitively")
	require.True(t, tags.OmitEmpty)

	_, ok = fs.Lookup("Hidden")
	require.False(t, ok)
	_, ok = fs.Lookup("private")
	require.False(t, ok)

	require.Same(t, fs, fields.Of(reflect.TypeOf(Service{})))
}

func TestByIndex(t *testing.T) {
	fs := fields.Of(reflect.TypeOf(Service{}))
	owner, ok := fs.Lookup("Owner")
	require.True(t, ok)

	var s Service
	_, ok = fields.ByIndex(reflect.ValueOf(s), owner.Index)
	require.False(t, ok, "nil embedded pointer")

	fv := fields.ByIndexAlloc(reflect.ValueOf(&s).Elem(), owner.Index)
	fv.SetString("ops")
	require.NotNil(t, s.Meta)
	require.Equal(t, "ops", s.Owner)

	fv, ok = fields.ByIndex(reflect.ValueOf(s), owner.Index)
	require.True(t, ok)
	require.Equal(t, "ops", fv.String())
}
