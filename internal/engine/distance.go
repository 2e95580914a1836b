package engine

import "math"

const earthRadiusKm = 6371.0

// DistanceTable holds the great-circle distance in kilometers between
// every pair of team stadiums. It is built once per run and read-only
// afterwards, so it may be shared across concurrent runs.
type DistanceTable map[PairKey]float64

// BuildDistanceTable computes pairwise Haversine distances for the teams.
func BuildDistanceTable(teams []Team) DistanceTable {
	table := make(DistanceTable, len(teams)*(len(teams)-1)/2)
	for i := 0; i < len(teams); i++ {
		for j := i + 1; j < len(teams); j++ {
			a, b := teams[i], teams[j]
			table[NewPairKey(a.ID, b.ID)] = haversineKm(
				a.Stadium.Latitude, a.Stadium.Longitude,
				b.Stadium.Latitude, b.Stadium.Longitude,
			)
		}
	}
	return table
}

// Between returns the stadium distance for two team ids.
func (t DistanceTable) Between(a, b string) float64 {
	return t[NewPairKey(a, b)]
}

func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	h := sinLat*sinLat + math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*sinLon*sinLon

	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
