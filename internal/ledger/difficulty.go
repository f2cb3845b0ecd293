package ledger

import "strings"

// DifficultyParams scale the financial computation per difficulty tier.
type DifficultyParams struct {
	RevenueMultiplier float64
	PenaltyFraction   float64
	JitterVariance    float64
}

const DefaultDifficulty = "Normal"

var difficultyTiers = map[string]DifficultyParams{
	"easy":      {RevenueMultiplier: 1.15, PenaltyFraction: 0.10, JitterVariance: 0.02},
	"normal":    {RevenueMultiplier: 1.0, PenaltyFraction: 0.25, JitterVariance: 0.05},
	"hard":      {RevenueMultiplier: 0.90, PenaltyFraction: 0.40, JitterVariance: 0.08},
	"realistic": {RevenueMultiplier: 0.85, PenaltyFraction: 0.50, JitterVariance: 0.12},
}

// Difficulty resolves a tier name to its parameters. Unknown or empty names
// fall back to Normal.
func Difficulty(name string) DifficultyParams {
	if params, ok := difficultyTiers[strings.ToLower(strings.TrimSpace(name))]; ok {
		return params
	}
	return difficultyTiers["normal"]
}

// DifficultyNames lists the known tiers in ascending difficulty.
func DifficultyNames() []string {
	return []string{"Easy", "Normal", "Hard", "Realistic"}
}

// KnownDifficulty reports whether name maps to a configured tier.
func KnownDifficulty(name string) bool {
	_, ok := difficultyTiers[strings.ToLower(strings.TrimSpace(name))]
	return ok
}
