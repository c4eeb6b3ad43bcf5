package exam

import (
	"fmt"
	"regexp"
)

// Markers are the literal labels that delimit regions of an exam document.
type Markers struct {
	Question    *regexp.Regexp
	Explanation *regexp.Regexp
}

// ws also covers NBSP and other Unicode spaces that word processors insert.
const ws = `[\s\p{Zs}]`

var (
	DefaultMarkers = Markers{
		Question:    markerRe(`Câu` + ws + `+\d+`),
		Explanation: markerRe(`Lời` + ws + `+giải`),
	}
	EnglishMarkers = Markers{
		Question:    markerRe(`Question` + ws + `+\d+`),
		Explanation: markerRe(`(?:Explanation|Solution)`),
	}

	singleChoiceRe = regexp.MustCompile(`^([A-D])\.` + ws + `*`)
	trueFalseRe    = regexp.MustCompile(`^([a-d])\)` + ws + `*`)
)

// markerRe matches label at the start of a line. The label must end there:
// "Solutions of" is prose, not the "Solution" marker.
func markerRe(label string) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf(`(?i)^%s*%s(?:%s*[.:]%s*|%s+|$)`, ws, label, ws, ws, ws))
}

// MarkersFor maps a locale name to its marker set; unknown locales get DefaultMarkers.
func MarkersFor(locale string) Markers {
	switch locale {
	case "en":
		return EnglishMarkers
	default:
		return DefaultMarkers
	}
}

// stripMarker removes a leading marker and reports whether one was present.
func stripMarker(re *regexp.Regexp, text string) (string, bool) {
	loc := re.FindStringIndex(text)
	if loc == nil {
		return "", false
	}
	return text[loc[1]:], true
}
