package model

// Strategy name constants
const (
	StrategyFrontier = "frontier"
	StrategyGreedy   = "greedy"
	StrategyGoodGame = "goodgame"
	StrategyRandom   = "random"
)

// StrategyDisplayName returns a human-readable label for a strategy
func StrategyDisplayName(strategy string) string {
	switch strategy {
	case StrategyFrontier:
		return "Frontier"
	case StrategyGreedy:
		return "Greedy"
	case StrategyGoodGame:
		return "Good Game"
	case StrategyRandom:
		return "Random"
	default:
		return strategy
	}
}

// ValidStrategies returns all valid strategy names
func ValidStrategies() []string {
	return []string{StrategyFrontier, StrategyGreedy, StrategyGoodGame, StrategyRandom}
}

// IsValidStrategy reports whether name is a known strategy
func IsValidStrategy(name string) bool {
	for _, s := range ValidStrategies() {
		if s == name {
			return true
		}
	}
	return false
}
