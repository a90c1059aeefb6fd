// Package chart turns a historical price series into SVG path data.
package chart

import (
	"strconv"
	"strings"

	"crypto-tracker/internal/domain"
)

// Default viewport size in SVG user units.
const (
	DefaultWidth  = 800
	DefaultHeight = 300
)

// flatPadding widens a flat series so it renders mid-height instead of on an edge.
const flatPadding = 0.001

// Area is a rendered area chart.
type Area struct {
	Width  int
	Height int
	Line   string // polyline points "x,y x,y ..."
	Fill   string // closed polygon points including the baseline
	Min    float64
	Max    float64
	First  domain.ChartPoint
	Last   domain.ChartPoint
	Points int
}

// Empty reports whether there is nothing to draw.
func (a *Area) Empty() bool {
	return a == nil || a.Points == 0
}

// Rising reports whether the series closed above where it opened.
func (a *Area) Rising() bool {
	return !a.Empty() && a.Last.Value >= a.First.Value
}

// Build scales points into a width x height viewport. X is spread evenly by
// index, Y is normalized between the series min and max with higher values
// drawn nearer the top.
func Build(points []domain.ChartPoint, width, height int) *Area {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}

	a := &Area{Width: width, Height: height, Points: len(points)}
	if len(points) == 0 {
		return a
	}

	a.First = points[0]
	a.Last = points[len(points)-1]

	minV, maxV := points[0].Value, points[0].Value
	for _, p := range points {
		if p.Value < minV {
			minV = p.Value
		}
		if p.Value > maxV {
			maxV = p.Value
		}
	}
	a.Min, a.Max = minV, maxV

	valueRange := maxV - minV
	if valueRange == 0 {
		minV -= flatPadding
		valueRange = 2 * flatPadding
	}

	w, h := float64(width), float64(height)
	coords := make([]string, 0, len(points))
	for i, p := range points {
		x := w / 2
		if len(points) > 1 {
			x = float64(i) / float64(len(points)-1) * w
		}
		y := h - (p.Value-minV)/valueRange*h
		coords = append(coords, coord(x, y))
	}

	a.Line = strings.Join(coords, " ")

	startX := "0"
	endX := strconv.Itoa(width)
	if len(points) == 1 {
		startX, endX = coordNum(w/2), coordNum(w/2)
	}
	baseline := strconv.Itoa(height)
	a.Fill = startX + "," + baseline + " " + a.Line + " " + endX + "," + baseline
	return a
}

func coord(x, y float64) string {
	return coordNum(x) + "," + coordNum(y)
}

func coordNum(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
