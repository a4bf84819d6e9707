// Package wgs84 converts between geodetic and ECEF coordinates on the WGS84 ellipsoid.
package wgs84

import (
	"math"

	"github.com/UnknownOlympus/ecefconv/internal/models"
)

// WGS84 ellipsoid parameters.
const (
	A  = 6378137.0           // semi-major axis (meters)
	F  = 1.0 / 298.257223563 // flattening
	E2 = 2*F - F*F           // first eccentricity squared
	B  = A * (1 - F)         // semi-minor (polar) axis (meters)

	// Epsilon is the latitude convergence tolerance in radians.
	Epsilon = 1e-12
	// MaxIterations bounds the latitude refinement loop.
	MaxIterations = 100
)

// cosLatFloor is the |cos(lat)| below which height is derived from z instead of p,
// since p/cos(lat) loses precision close to the poles.
const cosLatFloor = 1e-3

const (
	deg2rad = math.Pi / 180
	rad2deg = 180 / math.Pi
)

// GeodeticToECEF converts geodetic coordinates (degrees, meters above the ellipsoid)
// to ECEF coordinates in meters. It is closed form and defined for any finite input.
func GeodeticToECEF(latDeg, lonDeg, heightM float64) models.ECEFCoordinate {
	lat := latDeg * deg2rad
	lon := lonDeg * deg2rad

	sinLat := math.Sin(lat)
	cosLat := math.Cos(lat)

	// Radius of curvature in the prime vertical.
	N := primeVerticalRadius(sinLat)

	return models.ECEFCoordinate{
		X: (N + heightM) * cosLat * math.Cos(lon),
		Y: (N + heightM) * cosLat * math.Sin(lon),
		Z: (N*(1-E2) + heightM) * sinLat,
	}
}

// ECEFToGeodetic converts ECEF coordinates (meters) to geodetic coordinates.
// See ECEFToGeodeticIterations for the convergence details.
func ECEFToGeodetic(x, y, z float64) models.GeodeticCoordinate {
	geo, _ := ECEFToGeodeticIterations(x, y, z)
	return geo
}

// ECEFToGeodeticIterations converts ECEF coordinates to geodetic coordinates and also
// reports how many latitude refinement steps were taken.
//
// Latitude is refined with the iterative Bowring scheme until two successive estimates
// differ by less than Epsilon, or MaxIterations is reached, in which case the last
// estimate is kept. Points on the polar axis are resolved without iterating: latitude
// is ±90° (0° at the Earth's center) and longitude follows atan2(0, 0) = 0.
func ECEFToGeodeticIterations(x, y, z float64) (models.GeodeticCoordinate, int) {
	lon := math.Atan2(y, x)
	p := math.Hypot(x, y)

	if p == 0 {
		return polarAxis(lon, z), 0
	}

	lat, iterations := refineLatitude(p, z)

	sinLat := math.Sin(lat)
	cosLat := math.Cos(lat)
	N := primeVerticalRadius(sinLat)

	var height float64
	if math.Abs(cosLat) > cosLatFloor {
		height = p/cosLat - N
	} else {
		height = math.Abs(z)/math.Abs(sinLat) - N*(1-E2)
	}

	return models.GeodeticCoordinate{
		Latitude:  lat * rad2deg,
		Longitude: lon * rad2deg,
		Height:    height,
	}, iterations
}

// refineLatitude runs the latitude iteration for a point at distance p > 0 from the polar axis.
func refineLatitude(p, z float64) (float64, int) {
	lat := math.Atan2(z, p)

	for i := 1; i <= MaxIterations; i++ {
		sinLat := math.Sin(lat)
		N := primeVerticalRadius(sinLat)
		next := math.Atan((z + E2*N*sinLat) / p)

		if math.Abs(next-lat) < Epsilon {
			return next, i
		}
		lat = next
	}

	return lat, MaxIterations
}

func polarAxis(lon, z float64) models.GeodeticCoordinate {
	switch {
	case z > 0:
		return models.GeodeticCoordinate{Latitude: 90, Longitude: lon * rad2deg, Height: z - B}
	case z < 0:
		return models.GeodeticCoordinate{Latitude: -90, Longitude: lon * rad2deg, Height: -z - B}
	default:
		// Earth's center.
		return models.GeodeticCoordinate{Latitude: 0, Longitude: lon * rad2deg, Height: -A}
	}
}

func primeVerticalRadius(sinLat float64) float64 {
	return A / math.Sqrt(1-E2*sinLat*sinLat)
}
