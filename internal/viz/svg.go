package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/dynfilter/internal/sim"
)

// SVG renders the target and output of a run as two polylines on a dark
// background.
func SVG(res *sim.Result, width, height int, theme Theme) string {
	if res == nil || len(res.Times) < 2 {
		return ""
	}

	minX, maxX := res.Times[0], res.Times[len(res.Times)-1]
	minY, maxY := math.Inf(1), math.Inf(-1)
	for i := range res.Times {
		minY = min(minY, res.Targets[i], res.Values[i])
		maxY = max(maxY, res.Targets[i], res.Values[i])
	}

	rangeX, rangeY := maxX-minX, maxY-minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	rangeY *= 1.2

	path := func(ys []float64) string {
		var sb strings.Builder
		for i, y := range ys {
			px := (res.Times[i] - minX) / rangeX * float64(width)
			py := float64(height) - (y-minY)/rangeY*float64(height)
			if i == 0 {
				fmt.Fprintf(&sb, "M%.1f,%.1f", px, py)
			} else {
				fmt.Fprintf(&sb, " L%.1f,%.1f", px, py)
			}
		}
		return sb.String()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)
	fmt.Fprintf(&sb, `<path class="target" fill="none" stroke="%s" stroke-width="1" stroke-dasharray="4 2" d="%s"/>
`, theme.Muted, path(res.Targets))
	fmt.Fprintf(&sb, `<path class="output" fill="none" stroke="%s" stroke-width="1.5" d="%s"/>
`, theme.Primary, path(res.Values))
	sb.WriteString("</svg>\n")
	return sb.String()
}
