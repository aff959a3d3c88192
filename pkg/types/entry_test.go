package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntryTags(t *testing.T) {
	e := &Entry{EntryID: "e1", Category: CategoryExperience}

	e.AddTag("ml")
	e.AddTag("industry")
	e.AddTag("ml") // duplicate is a no-op
	assert.Equal(t, []string{"industry", "ml"}, e.Tags, "tags stay sorted and unique")
	assert.True(t, e.HasTag("ml"))

	e.RemoveTag("ml")
	assert.Equal(t, []string{"industry"}, e.Tags)
	e.RemoveTag("absent") // no-op
	assert.Equal(t, []string{"industry"}, e.Tags)
}

func TestEntryFields(t *testing.T) {
	e := &Entry{EntryID: "e1", Category: CategoryExperience}

	assert.True(t, e.Field("role").IsZero(), "unset field reads as zero")

	e.SetField("role", Text("Engineer"))
	assert.Equal(t, "Engineer", e.Field("role").AsString())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{name: "valid sqlite", config: Config{Backend: BackendSQLite, DataDir: "/tmp/x"}},
		{name: "empty backend", config: Config{}, wantErr: ErrBackendEmpty},
		{name: "unknown backend", config: Config{Backend: "papyrus"}, wantErr: ErrBackendUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
