package ledger

import (
	"math"
	"strings"
)

type coordinate struct {
	Lat float64
	Lon float64
}

// Fields served by Palm Route Air. Coordinates are real-world; codes outside
// this table contribute zero distance revenue.
var airportCoords = map[string]coordinate{
	"KPOC": {34.0916, -117.7817}, // Brackett Field, La Verne
	"KCRQ": {33.1283, -117.2800}, // McClellan-Palomar, Carlsbad
	"KSBA": {34.4262, -119.8404}, // Santa Barbara Muni
	"KSAN": {32.7336, -117.1897}, // San Diego Intl
	"KSNA": {33.6757, -117.8682}, // John Wayne, Orange County
	"KLAX": {33.9425, -118.4081}, // Los Angeles Intl
	"KBUR": {34.2007, -118.3585}, // Hollywood Burbank
	"KVNY": {34.2098, -118.4900}, // Van Nuys
	"KONT": {34.0560, -117.6012}, // Ontario Intl
	"KPSP": {33.8297, -116.5067}, // Palm Springs Intl
	"KSDM": {32.5723, -116.9800}, // Brown Field, San Diego
	"KCMA": {34.2137, -119.0943}, // Camarillo
	"KOXR": {34.2008, -119.2072}, // Oxnard
	"KTOA": {33.8034, -118.3396}, // Zamperini Field, Torrance
	"KFUL": {33.8720, -117.9798}, // Fullerton Muni
	"KRAL": {33.9519, -117.4451}, // Riverside Muni
	"KSBD": {34.0954, -117.2350}, // San Bernardino Intl
	"KHHR": {33.9228, -118.3352}, // Hawthorne Muni
	"KLGB": {33.8177, -118.1516}, // Long Beach
	"KSMO": {34.0158, -118.4513}, // Santa Monica Muni
}

// DistanceNM returns the great-circle distance between two airport codes in
// nautical miles, rounded to one decimal place. Unknown codes yield zero.
func DistanceNM(from, to string) float64 {
	a, ok := airportCoords[normalizeCode(from)]
	if !ok {
		return 0
	}
	b, ok := airportCoords[normalizeCode(to)]
	if !ok {
		return 0
	}
	return round1(haversineNM(a, b))
}

// KnownAirport reports whether the code is in the coordinate table.
func KnownAirport(code string) bool {
	_, ok := airportCoords[normalizeCode(code)]
	return ok
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func haversineNM(a, b coordinate) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon
	return 2 * EarthRadiusNM * math.Asin(math.Sqrt(h))
}
