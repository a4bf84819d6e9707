package models

// GeodeticCoordinate represents a point on the WGS84 ellipsoid.
type GeodeticCoordinate struct {
	Latitude  float64 // Latitude in degrees, within [-90, 90].
	Longitude float64 // Longitude in degrees, within [-180, 180].
	Height    float64 // Ellipsoidal height in meters.
}

// ECEFCoordinate represents an Earth-Centered-Earth-Fixed cartesian position in meters.
type ECEFCoordinate struct {
	X float64 // X points at the intersection of the equator and the prime meridian.
	Y float64 // Y points at the equator, 90 degrees east.
	Z float64 // Z points at the north pole.
}

// Sample inputs offered to users who want to try a conversion without typing their own values.
var (
	ExampleGeodeticInput = [3]string{`15°13'12.1252"N`, "100 12 12.3256 E", "5.202"}
	ExampleECEFInput     = [3]string{"-1070053.3249", "6068573.9676", "1640100.7872"}
)
