package level

import "strconv"

// Rank is the numeric level a profession has reached: 1 is the first level, 2 and up are next levels.
type Rank int

const (
	// FirstLevelRank is the rank of every first level.
	FirstLevelRank Rank = 1
	// MinimumNextLevel is the lowest rank a next level may have.
	MinimumNextLevel Rank = 2
	// MaximumNextLevel is the highest rank a next level may have.
	MaximumNextLevel Rank = 21
)

// Value returns the rank as a plain int.
func (r Rank) Value() int { return int(r) }

// IsFirstLevel reports whether r is a first-level rank (r <= 1).
func (r Rank) IsFirstLevel() bool { return r <= FirstLevelRank }

// IsNextLevel reports whether r is a next-level rank (r >= 2).
func (r Rank) IsNextLevel() bool { return r > FirstLevelRank }

func (r Rank) String() string { return strconv.Itoa(int(r)) }
