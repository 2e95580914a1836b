package engine

// Season calendar length: 5 match weekends plus up to 3 rest weekends.
const seasonSlots = RoundCount + 3

// GeneratePatterns enumerates every way of placing the 5 match weekends
// across the season calendar. When requestedRests > 0 only patterns with
// exactly that many interior rest weekends are returned; leading and
// trailing rests just shift the season start and do not count.
func GeneratePatterns(requestedRests int) []RestPattern {
	var patterns []RestPattern

	var build func(slot, placed int, current RestPattern)
	build = func(slot, placed int, current RestPattern) {
		if placed == RoundCount {
			pattern := append(RestPattern(nil), current...)
			for len(pattern) < seasonSlots {
				pattern = append(pattern, false)
			}
			if requestedRests > 0 && pattern.InteriorRests() != requestedRests {
				return
			}
			patterns = append(patterns, pattern)
			return
		}
		if seasonSlots-slot < RoundCount-placed {
			return
		}
		build(slot+1, placed+1, append(current, true))
		build(slot+1, placed, append(current, false))
	}
	build(0, 0, make(RestPattern, 0, seasonSlots))

	return patterns
}
