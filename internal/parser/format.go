package parser

import (
	"fmt"
	"math"
)

// secondsPrecision is the number of decimals kept for DMS seconds.
const secondsPrecision = 4

// FormatLatitudeDMS renders decimal degrees as text like 15°13'12.1252"N, which ParseLatitude reads back.
func FormatLatitudeDMS(deg float64) string {
	return latitudeAxis.formatDMS(deg)
}

// FormatLongitudeDMS renders decimal degrees as text like 100°12'12.3256"E, which ParseLongitude reads back.
func FormatLongitudeDMS(deg float64) string {
	return longitudeAxis.formatDMS(deg)
}

func (ax axis) formatDMS(deg float64) string {
	hemisphere := ax.positive
	if deg < 0 {
		hemisphere = ax.negative
	}

	scale := math.Pow10(secondsPrecision)
	abs := math.Abs(deg)
	d := math.Floor(abs)
	m := math.Floor((abs - d) * 60)
	s := math.Max(math.Round((abs-d-m/60)*3600*scale)/scale, 0)

	if s >= 60 {
		s -= 60
		m++
	}
	if m >= 60 {
		m -= 60
		d++
	}

	return fmt.Sprintf("%.0f°%02.0f'%0*.*f\"%c", d, m, secondsPrecision+3, secondsPrecision, s, hemisphere)
}
