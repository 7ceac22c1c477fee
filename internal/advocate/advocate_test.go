package advocate

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatPhoneNumber(t *testing.T) {
	tests := []struct {
		name string
		in   int64
		want string
	}{
		{name: "ten digits", in: 5551234567, want: "(555) 123-4567"},
		{name: "short", in: 12345, want: "12345"},
		{name: "zero", in: 0, want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPhoneNumber(tt.in))
		})
	}
}

func TestWithIDDefaultsSpecialties(t *testing.T) {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	a := NewAdvocate{FirstName: "Ann", YearsOfExperience: 3}.WithID("7", created)

	assert.Equal(t, "7", a.ID)
	assert.Equal(t, "Ann", a.FirstName)
	assert.Equal(t, created, a.CreatedAt)
	require.NotNil(t, a.Specialties)

	data, err := json.Marshal(a)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"specialties":[]`)
	assert.Contains(t, string(data), `"yearsOfExperience":3`)
}
