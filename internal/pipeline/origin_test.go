package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOriginClassifier(t *testing.T) {
	c := NewOriginClassifier("CC JV")

	tests := []struct {
		name   string
		center *string
		want   string
		none   bool
	}{
		{name: "center 2", center: strPtr("EXP ATT C CENTER 2 MEX"), want: "CC2"},
		{name: "juarez", center: strPtr("EXP ATT C CENTER JUAREZ"), want: "CC JV"},
		{name: "center 2 wins over juarez token order", center: strPtr("EXP ATT C CENTER 2"), want: "CC2"},
		{name: "no marker", center: strPtr("EXP ATT TIENDA GDL"), none: true},
		{name: "nil input", center: nil, none: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Origin(tt.center)
			if tt.none {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestOriginClassifierConfigurableJuarezLabel(t *testing.T) {
	c := NewOriginClassifier("Juarez")
	got := c.Origin(strPtr("EXP ATT C CENTER JUAREZ 1"))
	require.NotNil(t, got)
	assert.Equal(t, "Juarez", *got)
}

func TestRegionFromCenter(t *testing.T) {
	tests := []struct {
		name   string
		center *string
		want   string
		none   bool
	}{
		{name: "gdl", center: strPtr("EXP ATT C CENTER 2 GDL"), want: "GDL"},
		{name: "mex", center: strPtr("EXP ATT C CENTER MEX"), want: "MEX"},
		{name: "mty", center: strPtr("CENTRO MTY NORTE"), want: "MTY"},
		{name: "first token wins", center: strPtr("GDL MEX"), want: "GDL"},
		{name: "no token", center: strPtr("EXP ATT C CENTER 2"), none: true},
		{name: "nil input", center: nil, none: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RegionFromCenter(tt.center)
			if tt.none {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}
}
