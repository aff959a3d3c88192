package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldValueAsString(t *testing.T) {
	tests := []struct {
		name  string
		value FieldValue
		want  string
	}{
		{name: "short text", value: Text("Staff Engineer"), want: "Staff Engineer"},
		{name: "long text", value: LongText("built things"), want: "built things"},
		{name: "date", value: Date("March 2024"), want: "March 2024"},
		{name: "list joined", value: TextList("Go", "SQL"), want: "Go, SQL"},
		{name: "zero", value: FieldValue{}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.value.AsString())
		})
	}
}

func TestFieldValueAsList(t *testing.T) {
	assert.Equal(t, []string{"Go", "SQL"}, TextList("Go", "SQL").AsList())
	assert.Equal(t, []string{"solo"}, Text("solo").AsList())
	assert.Nil(t, Text("").AsList())
}

func TestFieldValueIsZero(t *testing.T) {
	assert.True(t, Text("").IsZero())
	assert.True(t, TextList().IsZero())
	assert.False(t, Date("2021").IsZero())
	assert.False(t, TextList("x").IsZero())
}

func TestFieldValueJSONRoundTrip(t *testing.T) {
	fields := map[string]FieldValue{
		"role":       Text("Engineer"),
		"highlights": TextList("a", "b"),
	}

	data, err := json.Marshal(fields)
	require.NoError(t, err)

	var decoded map[string]FieldValue
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "Engineer", decoded["role"].Text)
	assert.Equal(t, KindShortText, decoded["role"].Kind)
	assert.Equal(t, []string{"a", "b"}, decoded["highlights"].List)
	assert.Equal(t, KindTextList, decoded["highlights"].Kind)
}

func TestFieldValueUnmarshalRejectsObjects(t *testing.T) {
	var v FieldValue
	assert.Error(t, json.Unmarshal([]byte(`{"nested":true}`), &v))
}
