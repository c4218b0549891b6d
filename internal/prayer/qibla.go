package prayer

import "math"

// Kaaba coordinates, Masjid al-Haram.
const (
	kaabaLatitude  = 21.4225
	kaabaLongitude = 39.8262
)

// QiblaDirection returns the initial great-circle bearing from the
// given point to the Kaaba, in degrees clockwise from true north.
func QiblaDirection(latitude, longitude float64) (float64, error) {
	if err := ValidateCoordinates(latitude, longitude); err != nil {
		return 0, err
	}

	lat1 := latitude * math.Pi / 180
	lat2 := kaabaLatitude * math.Pi / 180
	dLng := (kaabaLongitude - longitude) * math.Pi / 180

	y := math.Sin(dLng) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLng)

	bearing := math.Atan2(y, x) * 180 / math.Pi
	return math.Mod(bearing+360, 360), nil
}
