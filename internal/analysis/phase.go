package analysis

import (
	"strings"
)

// PhasePortrait2D holds data for a 2D phase space plot
type PhasePortrait2D struct {
	Points []struct{ X, Y float64 }
}

// GeneratePhasePortrait pairs each sample with its rate of change, taken as
// a central difference where both neighbours exist.
func GeneratePhasePortrait(signal []float64, dt float64) *PhasePortrait2D {
	if len(signal) < 2 || dt <= 0 {
		return nil
	}

	portrait := &PhasePortrait2D{
		Points: make([]struct{ X, Y float64 }, 0, len(signal)),
	}
	last := len(signal) - 1
	for i, v := range signal {
		var d float64
		switch i {
		case 0:
			d = (signal[1] - signal[0]) / dt
		case last:
			d = (signal[last] - signal[last-1]) / dt
		default:
			d = (signal[i+1] - signal[i-1]) / (2 * dt)
		}
		portrait.Points = append(portrait.Points, struct{ X, Y float64 }{X: v, Y: d})
	}
	return portrait
}

// PhasePortraitToASCII converts phase portrait to ASCII art
func PhasePortraitToASCII(portrait *PhasePortrait2D, width, height int) string {
	if portrait == nil || len(portrait.Points) == 0 {
		return ""
	}

	// Find bounds
	minX, maxX := portrait.Points[0].X, portrait.Points[0].X
	minY, maxY := portrait.Points[0].Y, portrait.Points[0].Y

	for _, p := range portrait.Points {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	// Add padding
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	// Create canvas
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	// Plot points
	for _, p := range portrait.Points {
		col := int((p.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((p.Y-minY)/rangeY*float64(height-1))

		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	// Draw axes if they cross the visible area
	if minX <= 0 && maxX >= 0 {
		col := int((0 - minX) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			if col >= 0 && col < width && canvas[row][col] == ' ' {
				canvas[row][col] = '│'
			}
		}
	}
	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int((0-minY)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			if row >= 0 && row < height && canvas[row][col] == ' ' {
				canvas[row][col] = '─'
			}
		}
	}

	// Convert to string
	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}

// Crossings returns the indices where signal crosses threshold going up.
func Crossings(signal []float64, threshold float64) []int {
	var out []int
	for i := 1; i < len(signal); i++ {
		if signal[i-1] < threshold && signal[i] >= threshold {
			out = append(out, i)
		}
	}
	return out
}

// MeanPeriod is the average spacing between upward crossings, in samples.
// It is zero when fewer than two crossings occur.
func MeanPeriod(crossings []int) float64 {
	if len(crossings) < 2 {
		return 0
	}
	return float64(crossings[len(crossings)-1]-crossings[0]) / float64(len(crossings)-1)
}
