package yamlite_test

import (
	"testing"
	"time"

	"github.com/KimNorgaard/go-yamlite"
	"github.com/KimNorgaard/go-yamlite/value"
	"github.com/stretchr/testify/require"
)

type Database struct {
	Host    string `yamlite:"host"`
	Port    int    `yamlite:"port"`
	Replica *Database
}

type Common struct {
	Owner string `yamlite:"owner"`
}

type AppConfig struct {
	Common
	Name     string         `yamlite:"name"`
	Version  float64        `yamlite:"version"`
	Debug    bool           `yamlite:"debug"`
	Timeout  time.Duration  `yamlite:"timeout"`
	Started  time.Time      `yamlite:"started"`
	Database Database       `yamlite:"database"`
	Tags     []string       `yamlite:"tags"`
	Limits   map[string]int `yamlite:"limits"`
	Notes    string         `yamlite:"notes"`
	Extra    any            `yamlite:"extra"`
}

const appConfig = `# application
name: api
version: 2
debug: TRUE
owner: ops
timeout: 1500000000
started: 2024-05-01T10:00:00Z
database:
  host: db.internal
  port: 5432
  replica:
    host: db2.internal
    port: 5433

tags:
  - edge
  - "true"
limits:
  cpu: 2
  memory: 512
notes: |
  line one
  line two
extra:
  - 1
  - x
`

func TestUnmarshal_Struct(t *testing.T) {
	var cfg AppConfig
	require.NoError(t, yamlite.Unmarshal([]byte(appConfig), &cfg, lf))

	require.Equal(t, "api", cfg.Name)
	require.Equal(t, 2.0, cfg.Version)
	require.True(t, cfg.Debug)
	require.Equal(t, "ops", cfg.Owner)
	require.Equal(t, 1500*time.Millisecond, cfg.Timeout)
	require.Equal(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), cfg.Started)
	require.Equal(t, "db.internal", cfg.Database.Host)
	require.Equal(t, 5432, cfg.Database.Port)
	require.NotNil(t, cfg.Database.Replica)
	require.Equal(t, 5433, cfg.Database.Replica.Port)
	require.Equal(t, []string{"edge", "true"}, cfg.Tags)
	require.Equal(t, map[string]int{"cpu": 2, "memory": 512}, cfg.Limits)
	require.Equal(t, "line one\nline two\n", cfg.Notes)
	require.Equal(t, []any{int64(1), "x"}, cfg.Extra)
}

func TestUnmarshal_Generic(t *testing.T) {
	var out any
	require.NoError(t, yamlite.Unmarshal([]byte("- a\n- 1\n-\n  k: ~\n"), &out, lf))
	require.Equal(t, []any{"a", int64(1), map[string]any{"k": nil}}, out)
}

func TestUnmarshal_Value(t *testing.T) {
	var out value.Value
	require.NoError(t, yamlite.Unmarshal([]byte("k: v\n"), &out, lf))
	require.True(t, value.Equal(value.MustMapping(value.Pair("k", value.String("v"))), out))
}

func TestUnmarshal_TypeMismatchErrors(t *testing.T) {
	testCases := []struct {
		name        string
		input       string
		target      func() any
		expectedErr string
	}{
		{
			name:        "mapping into slice",
			input:       "key: value\n",
			target:      func() any { return new([]string) },
			expectedErr: "yamlite: cannot unmarshal mapping into Go value of type []string",
		},
		{
			name:        "sequence into map",
			input:       "- 1\n",
			target:      func() any { return new(map[string]int) },
			expectedErr: "yamlite: cannot unmarshal sequence into Go value of type map[string]int",
		},
		{
			name:        "string into int field",
			input:       "database:\n  port: high\n",
			target:      func() any { return new(AppConfig) },
			expectedErr: `yamlite: cannot unmarshal string into Go value of type int for key "database.port"`,
		},
		{
			name:        "float into int",
			input:       "port: 1.5\n",
			target:      func() any { return new(Database) },
			expectedErr: `yamlite: cannot unmarshal float into Go value of type int for key "port"`,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := yamlite.Unmarshal([]byte(tc.input), tc.target(), lf)
			require.EqualError(t, err, tc.expectedErr)
		})
	}
}

func TestUnmarshal_TextUnmarshalerError(t *testing.T) {
	var cfg AppConfig
	err := yamlite.Unmarshal([]byte("started: yesterday\n"), &cfg, lf)

	var uerr *yamlite.UnmarshalerError
	require.ErrorAs(t, err, &uerr)
	require.Equal(t, "*time.Time", uerr.Type.String())
	require.Contains(t, err.Error(), `"yesterday"`)
}

func TestUnmarshal_ParseErrorIsReturned(t *testing.T) {
	var cfg AppConfig
	err := yamlite.Unmarshal([]byte("name: a\nname: b\n"), &cfg, lf)
	require.ErrorIs(t, err, yamlite.ErrDuplicateKey)
}
