package pipeline

import "strings"

const (
	markerCenter2      = "EXP ATT C CENTER 2"
	markerCenterJuarez = "EXP ATT C CENTER JUAREZ"
	originCenter2      = "CC2"
)

var regionTokens = []string{"GDL", "MEX", "MTY", "PUE", "TIJ", "VER"}

// OriginClassifier maps a raw fulfillment-center string to a short origin
// code. The Juarez label differs between report variants, so it comes
// from configuration.
type OriginClassifier struct {
	juarezLabel string
}

func NewOriginClassifier(juarezLabel string) OriginClassifier {
	return OriginClassifier{juarezLabel: juarezLabel}
}

// Origin returns the origin code for a center string, or nil when no
// marker matches. Ordered substring tests, first match wins.
func (c OriginClassifier) Origin(center *string) *string {
	if center == nil {
		return nil
	}
	switch {
	case strings.Contains(*center, markerCenter2):
		code := originCenter2
		return &code
	case strings.Contains(*center, markerCenterJuarez):
		code := c.juarezLabel
		return &code
	}
	return nil
}

// RegionFromCenter derives the region code from the center string using
// ordered city tokens. Independent of the origin derivation.
func RegionFromCenter(center *string) *string {
	if center == nil {
		return nil
	}
	for _, token := range regionTokens {
		if strings.Contains(*center, token) {
			t := token
			return &t
		}
	}
	return nil
}
