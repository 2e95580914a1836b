package engine

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Weights is the engine's full tuning surface. Every term of the cost
// function has a named weight here; zero-value fields are filled from
// DefaultWeights by DecodeWeights.
type Weights struct {
	// Structural penalty weights.
	W1 float64 `mapstructure:"w1"` // consecutive away weekends (soft)
	W2 float64 `mapstructure:"w2"` // worst-case team travel
	W3 float64 `mapstructure:"w3"` // competitiveness-vs-round ordering
	W4 float64 `mapstructure:"w4"` // top-two missed-slot term

	WFri         float64 `mapstructure:"wFri"`         // Friday-night overload
	WTravelTotal float64 `mapstructure:"wTravelTotal"` // summed travel
	WTravelFair  float64 `mapstructure:"wTravelFair"`  // travel stddev across teams
	WSlot        float64 `mapstructure:"wSlot"`        // timeslot desirability
	WShortGap    float64 `mapstructure:"wShortGap"`    // rest days between a team's fixtures

	MinGapDays int `mapstructure:"minGapDays"`

	// Competitiveness formula: alpha scores rank closeness, beta scores
	// combined strength.
	Alpha float64 `mapstructure:"alpha"`
	Beta  float64 `mapstructure:"beta"`

	FridayNightLimit      int     `mapstructure:"fridayNightLimit"`
	FridayNightPenalty    float64 `mapstructure:"fridayNightPenalty"`
	Top2MissedSlotPenalty float64 `mapstructure:"top2MissedSlotPenalty"`

	RunLocalSearch bool `mapstructure:"runLocalSearch"`
}

// DefaultWeights returns the documented defaults for every tunable.
func DefaultWeights() Weights {
	return Weights{
		W1:                    10,
		W2:                    1,
		W3:                    2,
		W4:                    1,
		WFri:                  1,
		WTravelTotal:          0.1,
		WTravelFair:           1,
		WSlot:                 1,
		WShortGap:             3,
		MinGapDays:            6,
		Alpha:                 1,
		Beta:                  0.5,
		FridayNightLimit:      2,
		FridayNightPenalty:    25,
		Top2MissedSlotPenalty: 100,
		RunLocalSearch:        true,
	}
}

// DecodeWeights overlays a loosely-typed option map onto the defaults.
// Unknown keys are an error so typos in config files surface immediately.
func DecodeWeights(options map[string]any) (Weights, error) {
	w := DefaultWeights()
	if len(options) == 0 {
		return w, nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &w,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return w, fmt.Errorf("building weights decoder: %w", err)
	}
	if err := decoder.Decode(options); err != nil {
		return w, fmt.Errorf("decoding weights: %w", err)
	}
	return w, nil
}
