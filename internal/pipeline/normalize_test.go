package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		want  string
		valid bool
	}{
		{name: "plain value", in: "SALE123", want: "SALE123", valid: true},
		{name: "trims whitespace", in: "  SALE123  ", want: "SALE123", valid: true},
		{name: "empty", in: "", valid: false},
		{name: "whitespace only", in: "   ", valid: false},
		{name: "nan sentinel", in: "nan", valid: false},
		{name: "nan sentinel upper", in: "NaN", valid: false},
		{name: "none sentinel", in: "None", valid: false},
		{name: "padded sentinel", in: "  None ", valid: false},
		{name: "value containing sentinel word", in: "nonetheless", want: "nonetheless", valid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeText(tt.in)
			if !tt.valid {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestTextAbsent(t *testing.T) {
	blank := "   "
	value := "X"

	assert.True(t, textAbsent(nil))
	assert.True(t, textAbsent(&blank))
	assert.False(t, textAbsent(&value))
}
