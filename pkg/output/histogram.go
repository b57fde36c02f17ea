// pkg/output/histogram.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package output

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"firewatch/pkg/model"
)

const (
	panelW, panelH = 480, 320
	margin         = 20
	bucketCount    = 20
)

var (
	axisColor = color.RGBA{60, 60, 60, 255}
	barColor  = color.RGBA{30, 110, 180, 255}
	barColor2 = color.RGBA{200, 90, 40, 255}
	bgColor   = color.RGBA{255, 255, 255, 255}
)

// WriteInspectionTimesPNG renders the four §6.3 histograms into one
// <scenario>_inspection_times.png, arranged as a 2x2 grid: UAV inspection
// latencies, suppression latencies, strikes per water bomber, and initial
// vs final levels of every finite-capacity tank.
func WriteInspectionTimesPNG(path string, strikes *model.StrikeArena, wbFleet *model.Fleet, tanks []*model.WaterTank) error {
	img := image.NewRGBA(image.Rect(0, 0, 2*panelW, 2*panelH))
	fillRect(img, img.Bounds(), bgColor)

	inspLatencies, suppLatencies := collectLatencies(strikes)
	drawHistogram(img, image.Rect(0, 0, panelW, panelH), inspLatencies)
	drawHistogram(img, image.Rect(panelW, 0, 2*panelW, panelH), suppLatencies)

	perWB := strikesPerWaterBomber(strikes, wbFleet)
	drawBars(img, image.Rect(0, panelH, panelW, 2*panelH), perWB)

	initial, final := finiteTankLevels(tanks)
	drawPairedBars(img, image.Rect(panelW, panelH, 2*panelW, 2*panelH), initial, final)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("inspection times png: %w", err)
	}
	defer f.Close()
	return png.Encode(f, img)
}

func collectLatencies(strikes *model.StrikeArena) (inspection, suppression []float64) {
	for _, s := range strikes.All() {
		if rt, ok := s.ResponseTime(); ok {
			inspection = append(inspection, rt)
		}
		if rt, ok := s.SuppressionResponseTime(); ok {
			suppression = append(suppression, rt)
		}
	}
	return inspection, suppression
}

func strikesPerWaterBomber(strikes *model.StrikeArena, wbFleet *model.Fleet) []float64 {
	counts := make([]float64, wbFleet.Len())
	for _, s := range strikes.All() {
		if s.Suppressed && s.SuppressedBy >= 0 && s.SuppressedBy < len(counts) {
			counts[s.SuppressedBy]++
		}
	}
	return counts
}

func finiteTankLevels(tanks []*model.WaterTank) (initial, final []float64) {
	for _, t := range tanks {
		if t.Infinite() {
			continue
		}
		initial = append(initial, t.InitialLevel)
		final = append(final, t.Level)
	}
	return initial, final
}

// drawHistogram bins values into bucketCount equal-width buckets across
// their observed range and draws a single-series bar chart.
func drawHistogram(img *image.RGBA, area image.Rectangle, values []float64) {
	fillRect(img, area, bgColor)
	drawAxes(img, area)
	if len(values) == 0 {
		return
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if hi == lo {
		hi = lo + 1
	}

	counts := make([]int, bucketCount)
	for _, v := range values {
		b := int((v - lo) / (hi - lo) * float64(bucketCount))
		if b >= bucketCount {
			b = bucketCount - 1
		}
		counts[b]++
	}
	maxCount := 0
	for _, c := range counts {
		if c > maxCount {
			maxCount = c
		}
	}
	if maxCount == 0 {
		return
	}

	innerW := area.Dx() - 2*margin
	innerH := area.Dy() - 2*margin
	barW := innerW / bucketCount
	for i, c := range counts {
		h := c * innerH / maxCount
		x0 := area.Min.X + margin + i*barW
		r := image.Rect(x0, area.Max.Y-margin-h, x0+barW-2, area.Max.Y-margin)
		fillRect(img, r, barColor)
	}
}

// drawBars draws one bar per entry in values (e.g. strikes suppressed by
// each water bomber, in fleet-id order).
func drawBars(img *image.RGBA, area image.Rectangle, values []float64) {
	fillRect(img, area, bgColor)
	drawAxes(img, area)
	if len(values) == 0 {
		return
	}

	maxV := values[0]
	for _, v := range values {
		if v > maxV {
			maxV = v
		}
	}
	if maxV == 0 {
		maxV = 1
	}

	innerW := area.Dx() - 2*margin
	innerH := area.Dy() - 2*margin
	barW := innerW / len(values)
	for i, v := range values {
		h := int(v / maxV * float64(innerH))
		x0 := area.Min.X + margin + i*barW
		r := image.Rect(x0, area.Max.Y-margin-h, x0+barW-2, area.Max.Y-margin)
		fillRect(img, r, barColor)
	}
}

// drawPairedBars draws two side-by-side bars per tank: initial level, then
// final level, so a drained tank is visually obvious next to its starting
// point.
func drawPairedBars(img *image.RGBA, area image.Rectangle, initial, final []float64) {
	fillRect(img, area, bgColor)
	drawAxes(img, area)
	if len(initial) == 0 {
		return
	}

	maxV := 0.0
	for _, v := range initial {
		if v > maxV {
			maxV = v
		}
	}
	for _, v := range final {
		if v > maxV {
			maxV = v
		}
	}
	if maxV == 0 {
		maxV = 1
	}

	innerW := area.Dx() - 2*margin
	innerH := area.Dy() - 2*margin
	groupW := innerW / len(initial)
	barW := groupW / 2
	for i := range initial {
		x0 := area.Min.X + margin + i*groupW
		hi := int(initial[i] / maxV * float64(innerH))
		ri := image.Rect(x0, area.Max.Y-margin-hi, x0+barW-2, area.Max.Y-margin)
		fillRect(img, ri, barColor)

		hf := int(final[i] / maxV * float64(innerH))
		rf := image.Rect(x0+barW, area.Max.Y-margin-hf, x0+2*barW-2, area.Max.Y-margin)
		fillRect(img, rf, barColor2)
	}
}

func drawAxes(img *image.RGBA, area image.Rectangle) {
	fillRect(img, image.Rect(area.Min.X+margin, area.Max.Y-margin, area.Max.X-margin, area.Max.Y-margin+1), axisColor)
	fillRect(img, image.Rect(area.Min.X+margin, area.Min.Y+margin, area.Min.X+margin+1, area.Max.Y-margin), axisColor)
}

func fillRect(img *image.RGBA, r image.Rectangle, c color.Color) {
	r = r.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.Set(x, y, c)
		}
	}
}
