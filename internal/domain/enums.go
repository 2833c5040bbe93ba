package domain

import "fmt"

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// DefaultDifficulty applies to every learning outcome the user has not rated.
const DefaultDifficulty = DifficultyHard

// ParseDifficulty validates a user-supplied level.
func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(s); d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return d, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, medium or hard)", s)
	}
}

// Mastery is the fraction of a learning outcome's weight the level earns.
func (d Difficulty) Mastery() float64 {
	switch d {
	case DifficultyEasy:
		return 1
	case DifficultyMedium:
		return 0.5
	default:
		return 0
	}
}
