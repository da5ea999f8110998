package cache

import (
	"strings"

	"journey-synthesis-service/internal/ports"

	"github.com/mmcloughlin/geohash"
)

// 9 geohash characters is a cell of roughly 5m x 5m: coordinates closer than
// that share travel costs.
const coordinatePrecision = 9

func coordKey(lat, lon float64) string {
	return geohash.EncodeWithPrecision(lat, lon, coordinatePrecision)
}

func pairKeys(p ports.CoordinatePair) (origin, destination string) {
	return coordKey(p.From.Lat, p.From.Lon), coordKey(p.To.Lat, p.To.Lon)
}

// keyedPairs dedupes pairs by their cache keys and indexes them for lookups.
func keyedPairs(pairs []ports.CoordinatePair) (map[[2]string][]ports.CoordinatePair, []string, []string) {
	byKey := make(map[[2]string][]ports.CoordinatePair, len(pairs))
	var origins, destinations []string
	seenO, seenD := map[string]struct{}{}, map[string]struct{}{}
	for _, p := range pairs {
		o, d := pairKeys(p)
		byKey[[2]string{o, d}] = append(byKey[[2]string{o, d}], p)
		if _, ok := seenO[o]; !ok {
			seenO[o] = struct{}{}
			origins = append(origins, o)
		}
		if _, ok := seenD[d]; !ok {
			seenD[d] = struct{}{}
			destinations = append(destinations, d)
		}
	}
	return byKey, origins, destinations
}

// NormalizeAddress lowercases and collapses whitespace so equivalent inputs share a key.
func NormalizeAddress(address string) string {
	return strings.Join(strings.Fields(strings.ToLower(address)), " ")
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
