package validator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type dep struct{}

func TestValidate(t *testing.T) {
	var nilDep *dep

	tests := []struct {
		name    string
		deps    []any
		wantErr bool
	}{
		{name: "all present", deps: []any{&dep{}, 10, "bucket"}},
		{name: "nil pointer", deps: []any{&dep{}, nilDep}, wantErr: true},
		{name: "untyped nil", deps: []any{nil}, wantErr: true},
		{name: "zero int", deps: []any{&dep{}, 0}, wantErr: true},
		{name: "empty string", deps: []any{""}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate("component", tt.deps...)
			if tt.wantErr {
				require.ErrorContains(t, err, "component")
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestIsNil(t *testing.T) {
	var nilDep *dep
	var nilMap map[string]any
	var boxed any = nilDep

	require.True(t, IsNil(nil))
	require.True(t, IsNil(nilDep))
	require.True(t, IsNil(nilMap))
	require.True(t, IsNil(boxed))

	require.False(t, IsNil(&dep{}))
	require.False(t, IsNil(dep{}))
	require.False(t, IsNil(0))
	require.False(t, IsNil(""))
}

func TestStruct(t *testing.T) {
	type cfg struct {
		Backend string `validate:"oneof=couchbase local"`
		Workers int    `validate:"min=1"`
	}

	require.NoError(t, Struct(cfg{Backend: "local", Workers: 2}))
	require.Error(t, Struct(cfg{Backend: "kafka", Workers: 2}))
	require.Error(t, Struct(cfg{Backend: "local", Workers: 0}))
}

func TestMap(t *testing.T) {
	rules := map[string]any{
		"sender_id": "required",
		"message":   "required,max=5",
	}

	errs := Map(map[string]any{"sender_id": 1, "message": "hello"}, rules)
	require.Empty(t, errs)

	errs = Map(map[string]any{"sender_id": 1}, rules)
	require.Len(t, errs, 1)
	require.Contains(t, errs, "message")

	errs = Map(map[string]any{"sender_id": 1, "message": "too long"}, rules)
	require.Contains(t, errs, "message")
}
