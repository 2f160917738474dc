package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExclusions_IsExcluded(t *testing.T) {
	ex := NewExclusions([]string{"UV-351a", "Antares Station", "  "})

	tests := []struct {
		name   string
		id     string
		locNam string
		want   bool
	}{
		{"Id exact", "UV-351a", "", true},
		{"Id other case", "uv-351A", "Katoa", true},
		{"Name match", "ANT", "antares station", true},
		{"No partial match", "UV-351", "Antares", false},
		{"Blank candidate", "", "", false},
		{"Unrelated", "KW-688c", "Etherwind", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ex.IsExcluded(tt.id, tt.locNam))
		})
	}
}

func TestExclusions_Empty(t *testing.T) {
	assert.False(t, NewExclusions(nil).IsExcluded("UV-351a", "Katoa"))
}
