package restclient

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRows_PreservesKeyOrder(t *testing.T) {
	rows, err := DecodeRows(strings.NewReader(`[{"name":"A","id":1,"active":true},{"name":"B","id":2,"active":false}]`))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"name", "id", "active"}, rows[0].Keys())

	v, ok := rows[1].Get("id")
	require.True(t, ok)
	assert.Equal(t, json.Number("2"), v)
	v, _ = rows[1].Get("active")
	assert.Equal(t, false, v)
}

func TestDecodeRows_ValueKinds(t *testing.T) {
	rows, err := DecodeRows(strings.NewReader(`[{"n":null,"f":1.50,"s":"x","o":{ "a" : [1, 2] },"l":[ ]}]`))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	row := rows[0]

	v, _ := row.Get("n")
	assert.Nil(t, v)
	v, _ = row.Get("f")
	assert.Equal(t, json.Number("1.50"), v)
	v, _ = row.Get("s")
	assert.Equal(t, "x", v)
	v, _ = row.Get("o")
	assert.Equal(t, json.RawMessage(`{"a":[1,2]}`), v)
	v, _ = row.Get("l")
	assert.Equal(t, json.RawMessage(`[]`), v)
}

func TestDecodeRows_EmptyAndNull(t *testing.T) {
	rows, err := DecodeRows(strings.NewReader(`[]`))
	require.NoError(t, err)
	assert.Empty(t, rows)

	rows, err = DecodeRows(strings.NewReader(`null`))
	require.NoError(t, err)
	assert.Nil(t, rows)

	rows, err = DecodeRows(strings.NewReader(``))
	require.NoError(t, err)
	assert.Nil(t, rows)
}

func TestDecodeRows_Malformed(t *testing.T) {
	_, err := DecodeRows(strings.NewReader(`{"id":1}`))
	assert.Error(t, err, "an object is not a row array")

	_, err = DecodeRows(strings.NewReader(`[1,2]`))
	assert.Error(t, err, "array elements must be objects")

	_, err = DecodeRows(strings.NewReader(`[{"id":1}`))
	assert.Error(t, err, "truncated body")
}

func TestRow_MarshalJSONKeepsOrder(t *testing.T) {
	row := Row{
		{Name: "z", Value: json.Number("1")},
		{Name: "a", Value: "text"},
		{Name: "m", Value: json.RawMessage(`{"k":true}`)},
		{Name: "n", Value: nil},
	}
	b, err := json.Marshal(row)
	require.NoError(t, err)
	assert.Equal(t, `{"z":1,"a":"text","m":{"k":true},"n":null}`, string(b))
}
