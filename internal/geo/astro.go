// Package geo computes sunrise and sunset times for a fixed coordinate.
package geo

import (
	"math"
	"sync"
	"time"
)

// SunTimes contains the solar boundary instants for one calendar day
type SunTimes struct {
	Sunrise time.Time
	Sunset  time.Time
}

// Gate answers the daytime predicate for a fixed coordinate.
// Computed times are memoized per day, the 2-minute re-checks hit the cache.
type Gate struct {
	lat float64
	lon float64

	mu    sync.RWMutex
	cache map[string]SunTimes // keyed by UTC date
}

// NewGate creates a gate for the given coordinate
func NewGate(lat, lon float64) *Gate {
	return &Gate{
		lat:   lat,
		lon:   lon,
		cache: make(map[string]SunTimes),
	}
}

// Times returns sunrise/sunset for the UTC day containing t
func (g *Gate) Times(t time.Time) SunTimes {
	key := t.UTC().Format("2006-01-02")

	g.mu.RLock()
	cached, ok := g.cache[key]
	g.mu.RUnlock()
	if ok {
		return cached
	}

	times := Calculate(t, g.lat, g.lon)

	g.mu.Lock()
	g.cache[key] = times
	g.mu.Unlock()

	return times
}

// IsDaytime reports whether t falls within [sunrise, sunset) of its day.
// Daytime begins exactly at sunrise and ends exactly at sunset.
func (g *Gate) IsDaytime(t time.Time) bool {
	times := g.Times(t)
	return !t.Before(times.Sunrise) && t.Before(times.Sunset)
}

// Calculate computes sunrise and sunset for the UTC day containing date.
// Pure solar math, no I/O. Returns absolute UTC instants.
func Calculate(date time.Time, lat, lon float64) SunTimes {
	// Julian day - add 0.5 because the NOAA sunrise equation expects JD at noon, not midnight
	jd := toJulianDay(date.UTC()) + 0.5

	// -0.833 deg accounts for refraction and the solar disc radius
	sunrise := sunTime(jd, lat, lon, -0.833, true)
	sunset := sunTime(jd, lat, lon, -0.833, false)

	return SunTimes{Sunrise: sunrise, Sunset: sunset}
}

// toJulianDay converts a date to Julian day number
func toJulianDay(t time.Time) float64 {
	y := float64(t.Year())
	m := float64(t.Month())
	d := float64(t.Day())

	if m <= 2 {
		y--
		m += 12
	}

	a := math.Floor(y / 100)
	b := 2 - a + math.Floor(a/4)

	return math.Floor(365.25*(y+4716)) + math.Floor(30.6001*(m+1)) + d + b - 1524.5
}

// sunTime calculates the sunrise or sunset instant
func sunTime(jd, lat, lon float64, angle float64, rising bool) time.Time {
	// Approximate solar noon
	n := jd - 2451545.0 + 0.0008
	jStar := n - lon/360.0

	// Solar mean anomaly
	m := math.Mod(357.5291+0.98560028*jStar, 360.0)
	mRad := m * math.Pi / 180.0

	// Equation of center
	c := 1.9148*math.Sin(mRad) + 0.02*math.Sin(2*mRad) + 0.0003*math.Sin(3*mRad)

	// Ecliptic longitude
	lambda := math.Mod(m+c+180+102.9372, 360.0)
	lambdaRad := lambda * math.Pi / 180.0

	// Solar transit
	jTransit := 2451545.0 + jStar + 0.0053*math.Sin(mRad) - 0.0069*math.Sin(2*lambdaRad)

	// Declination of the sun
	sinDec := math.Sin(lambdaRad) * math.Sin(23.44*math.Pi/180.0)
	dec := math.Asin(sinDec)

	// Hour angle
	latRad := lat * math.Pi / 180.0
	angleRad := angle * math.Pi / 180.0

	cosOmega := (math.Sin(angleRad) - math.Sin(latRad)*math.Sin(dec)) / (math.Cos(latRad) * math.Cos(dec))

	// Clamp for polar day/night
	if cosOmega > 1 {
		cosOmega = 1
	} else if cosOmega < -1 {
		cosOmega = -1
	}

	omega := math.Acos(cosOmega) * 180.0 / math.Pi

	var jTime float64
	if rising {
		jTime = jTransit - omega/360.0
	} else {
		jTime = jTransit + omega/360.0
	}

	return julianToTime(jTime)
}

// julianToTime converts a Julian day to a UTC time.Time
func julianToTime(jd float64) time.Time {
	unixTime := (jd - 2440587.5) * 86400.0
	sec := math.Floor(unixTime)
	return time.Unix(int64(sec), int64((unixTime-sec)*1e9)).UTC()
}
