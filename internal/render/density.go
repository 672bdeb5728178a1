package render

import (
	"strings"

	"github.com/yoockh/resumecraft/internal/models"
)

type Density string

const (
	Spacious Density = "spacious"
	Dense    Density = "dense"
)

const (
	denseSectionThreshold = 6
	denseItemThreshold    = 12
)

// Metrics is the fixed typography table selected by density. Font sizes
// are in points, gaps in pixels.
type Metrics struct {
	BaseFont    float64
	SmallFont   float64
	HeadingFont float64
	NameFont    float64
	SectionGap  int
	ItemGap     int
	LineHeight  float64
}

var metricsByDensity = map[Density]Metrics{
	Spacious: {BaseFont: 11, SmallFont: 10, HeadingFont: 13, NameFont: 24, SectionGap: 14, ItemGap: 9, LineHeight: 1.45},
	Dense:    {BaseFont: 9.5, SmallFont: 8.5, HeadingFont: 11.5, NameFont: 20, SectionGap: 8, ItemGap: 5, LineHeight: 1.3},
}

func (d Density) Metrics() Metrics {
	if m, ok := metricsByDensity[d]; ok {
		return m
	}
	return metricsByDensity[Spacious]
}

// SectionCount counts populated content sections (the header is not one).
func SectionCount(r models.Resume) int {
	n := 0
	for _, populated := range []bool{
		strings.TrimSpace(r.Summary) != "",
		len(r.Experience) > 0,
		len(r.Projects) > 0,
		len(r.Education) > 0,
		len(nonBlank(r.Skills)) > 0,
		len(r.Achievements) > 0,
		len(nonBlank(r.Hobbies)) > 0,
	} {
		if populated {
			n++
		}
	}
	return n
}

// ItemCount totals the entries of the multi-record sections.
func ItemCount(r models.Resume) int {
	return len(r.Experience) + len(r.Education) + len(r.Projects) + len(r.Achievements)
}

// Classify picks the layout density in a single pass; no overflow measuring.
func Classify(r models.Resume) Density {
	if SectionCount(r) > denseSectionThreshold || ItemCount(r) > denseItemThreshold {
		return Dense
	}
	return Spacious
}

func nonBlank(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
