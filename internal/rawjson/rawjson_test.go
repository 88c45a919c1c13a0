package rawjson

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	ID     string `json:"id"`
	Note   string `json:"note,omitempty"`
	Plain  int
	Hidden string `json:"-"`
	lower  string
}

func TestKeys(t *testing.T) {
	keys := Keys(reflect.TypeOf(sample{}))

	assert.Equal(t, map[string]struct{}{"id": {}, "note": {}, "Plain": {}}, keys)
}

func TestExtraAndMerge(t *testing.T) {
	known := Keys(reflect.TypeOf(sample{}))
	in := []byte(`{"id":"A","joinDate":"2024-01-01","tags":["x",1],"Plain":2}`)

	extra, err := Extra(in, known)
	require.NoError(t, err)
	assert.Len(t, extra, 2)

	out, err := Merge([]byte(`{"id":"B","Plain":3}`), known, extra)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"B","Plain":3,"joinDate":"2024-01-01","tags":["x",1]}`, string(out))
	assert.True(t, json.Valid(out))
}

func TestExtraWithoutUnknownKeys(t *testing.T) {
	extra, err := Extra([]byte(`{"id":"A"}`), Keys(reflect.TypeOf(sample{})))
	require.NoError(t, err)
	assert.Nil(t, extra)
}

func TestMergeIntoEmptyObject(t *testing.T) {
	out, err := Merge([]byte(`{}`), nil, map[string]json.RawMessage{"a": json.RawMessage(`1`)})
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(out))
}

func TestMergeKnownKeysWin(t *testing.T) {
	known := map[string]struct{}{"id": {}}
	out, err := Merge([]byte(`{"id":"new"}`), known, map[string]json.RawMessage{"id": json.RawMessage(`"old"`)})
	require.NoError(t, err)
	assert.Equal(t, `{"id":"new"}`, string(out))
}

func TestMergeRejectsNonObject(t *testing.T) {
	_, err := Merge([]byte(`[1]`), nil, map[string]json.RawMessage{"a": json.RawMessage(`1`)})
	assert.ErrorIs(t, err, ErrNotObject)
}
