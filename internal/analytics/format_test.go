package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatMagnitude(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{950, "950"},
		{999.6, "1,000"},
		{1000, "1.0K"},
		{1500, "1.5K"},
		{999_949, "999.9K"},
		{1_000_000, "1.0M"},
		{2_300_000, "2.3M"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatMagnitude(tt.in), "FormatMagnitude(%v)", tt.in)
	}
}
