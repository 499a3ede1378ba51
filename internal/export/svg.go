// Package export renders stored run traces as standalone SVG images.
package export

import (
	"fmt"
	"strings"
)

// DefaultPalette colors the six velocity components in plotting order
// vx, vy, vz, wx, wy, wz.
var DefaultPalette = []string{
	"#00ff00", "#00ccff", "#ff9900", "#ff3366", "#ffee00", "#cc66ff",
}

// TraceToSVG renders one series against time as an SVG polyline.
func TraceToSVG(times, values []float64, width, height int, strokeColor string) string {
	if len(times) < 2 || len(values) < len(times) {
		return ""
	}

	minX, maxX := bounds(times)
	minY, maxY := bounds(values[:len(times)])
	minX, maxX = pad(minX, maxX)
	minY, maxY = pad(minY, maxY)

	var sb strings.Builder
	writeHeader(&sb, width, height)
	writePath(&sb, times, values, minX, maxX, minY, maxY, width, height, strokeColor)
	sb.WriteString("</svg>")
	return sb.String()
}

// MultiTraceToSVG renders several series that share the time axis and
// a common vertical scale, one polyline per series. Colors repeat when
// there are more series than palette entries.
func MultiTraceToSVG(times []float64, series [][]float64, width, height int, palette []string) string {
	if len(times) < 2 || len(series) == 0 {
		return ""
	}
	if len(palette) == 0 {
		palette = DefaultPalette
	}

	minX, maxX := bounds(times)

	minY, maxY := series[0][0], series[0][0]
	for _, s := range series {
		if len(s) < len(times) {
			return ""
		}
		lo, hi := bounds(s[:len(times)])
		if lo < minY {
			minY = lo
		}
		if hi > maxY {
			maxY = hi
		}
	}

	minX, maxX = pad(minX, maxX)
	minY, maxY = pad(minY, maxY)

	var sb strings.Builder
	writeHeader(&sb, width, height)
	for i, s := range series {
		writePath(&sb, times, s, minX, maxX, minY, maxY, width, height, palette[i%len(palette)])
	}
	sb.WriteString("</svg>")
	return sb.String()
}

func bounds(vals []float64) (float64, float64) {
	lo, hi := vals[0], vals[0]
	for _, v := range vals {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

func pad(lo, hi float64) (float64, float64) {
	span := hi - lo
	if span == 0 {
		span = 1
	}
	return lo - span*0.1, hi + span*0.1
}

func writeHeader(sb *strings.Builder, width, height int) {
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))
}

func writePath(sb *strings.Builder, times, values []float64, minX, maxX, minY, maxY float64, width, height int, strokeColor string) {
	rangeX := maxX - minX
	rangeY := maxY - minY

	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, strokeColor))

	for i := range times {
		x := (times[i] - minX) / rangeX * float64(width)
		y := float64(height) - (values[i]-minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString("\"/>\n")
}
