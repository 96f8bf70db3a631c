package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in    string
		want  float64
		valid bool
	}{
		{"250000", 250000, true},
		{" 3.5 ", 3.5, true},
		{"", 0, false},
		{"abc", 0, false},
		{"12abc", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
		{"-Infinity", 0, false},
		{"+infinity", 0, false},
		{"1e400", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			n := ParseNumber(tt.in)
			assert.Equal(t, tt.valid, n.Valid)
			assert.Equal(t, tt.want, n.Value)
		})
	}
}

func TestNumber_UnmarshalJSON(t *testing.T) {
	var v struct {
		A Number `json:"a"`
		B Number `json:"b"`
		C Number `json:"c"`
		D Number `json:"d"`
		E Number `json:"e"`
	}
	err := json.Unmarshal([]byte(`{"a": 3, "b": "4", "c": "abc", "d": null, "e": ""}`), &v)
	require.NoError(t, err)

	assert.Equal(t, Number{Value: 3, Valid: true}, v.A)
	assert.Equal(t, Number{Value: 4, Valid: true}, v.B)
	assert.False(t, v.C.Valid)
	assert.False(t, v.D.Valid)
	assert.False(t, v.E.Valid)

	assert.Nil(t, v.C.Int())
	require.NotNil(t, v.B.Int())
	assert.Equal(t, 4, *v.B.Int())
	require.NotNil(t, v.A.Float())
	assert.Equal(t, 3.0, *v.A.Float())
}

func TestNumber_NonFiniteIsUnset(t *testing.T) {
	var v struct {
		Amount   Number `json:"amount"`
		Bedrooms Number `json:"bedrooms"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"amount": "Infinity", "bedrooms": "NaN"}`), &v))

	assert.False(t, v.Amount.Valid)
	assert.Nil(t, v.Amount.Float())
	assert.False(t, v.Bedrooms.Valid)
	assert.Nil(t, v.Bedrooms.Int())
}

func TestNumber_IntRange(t *testing.T) {
	assert.Nil(t, Number{Value: 1e19, Valid: true}.Int())
	assert.Nil(t, Number{Value: -1e19, Valid: true}.Int())
	require.NotNil(t, Number{Value: 1e9, Valid: true}.Int())
	assert.Equal(t, 1000000000, *Number{Value: 1e9, Valid: true}.Int())
}

func TestBool_UnmarshalJSON(t *testing.T) {
	var v struct {
		A Bool `json:"a"`
		B Bool `json:"b"`
		C Bool `json:"c"`
		D Bool `json:"d"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": true, "b": "no", "c": 1, "d": ""}`), &v))

	require.NotNil(t, v.A.Ptr())
	assert.True(t, *v.A.Ptr())
	require.NotNil(t, v.B.Ptr())
	assert.False(t, *v.B.Ptr())
	assert.Nil(t, v.C.Ptr())
	assert.Nil(t, v.D.Ptr())
}

func TestToBool(t *testing.T) {
	assert.True(t, ToBool("true"))
	assert.True(t, ToBool("1"))
	assert.True(t, ToBool(" Yes "))
	assert.False(t, ToBool("no"))
	assert.False(t, ToBool(""))
}

func TestSanitizeText(t *testing.T) {
	tests := map[string]string{
		"  Sunny flat  ":                               "Sunny flat",
		"Nice<script>alert(1)</script> view":           "Nice view",
		"<SCRIPT type=\"x\">bad()</SCRIPT>ok":          "ok",
		"dangling <script src=x> tag":                  "dangling  tag",
		"multi\n<script>\nline\n</script>\ndone":       "multi\n\ndone",
		"no tags at all":                               "no tags at all",
	}
	for in, want := range tests {
		assert.Equal(t, want, SanitizeText(in))
	}
}
