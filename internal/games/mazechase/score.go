package mazechase

// ScoreKeeper tracks the running score, the high score and the escalating
// capture bonus.
type ScoreKeeper struct {
	score     int
	high      int
	lastBonus int // 0 until the first capture of a power-mode activation
	base      int
}

// NewScoreKeeper creates a keeper whose first capture in a chain pays base.
func NewScoreKeeper(base int) ScoreKeeper {
	return ScoreKeeper{base: base}
}

// Award adds points and raises the high score when exceeded.
// It reports whether the high score changed.
func (k *ScoreKeeper) Award(points int) bool {
	k.score += points
	if k.score > k.high {
		k.high = k.score
		return true
	}
	return false
}

// AwardCapture pays the next bonus of the chain: base on the first capture,
// double the previous bonus after that.
func (k *ScoreKeeper) AwardCapture() int {
	bonus := k.base
	if k.lastBonus != 0 {
		bonus = k.lastBonus * 2
	}
	k.lastBonus = bonus
	k.Award(bonus)
	return bonus
}

// ResetChain starts a new capture chain.
func (k *ScoreKeeper) ResetChain() {
	k.lastBonus = 0
}

// ResetScore zeroes the score for a new game. The high score is kept.
func (k *ScoreKeeper) ResetScore() {
	k.score = 0
	k.lastBonus = 0
}

// Score returns the running score.
func (k *ScoreKeeper) Score() int { return k.score }

// HighScore returns the best score seen.
func (k *ScoreKeeper) HighScore() int { return k.high }

// LastBonus returns the most recent capture bonus of the current chain.
func (k *ScoreKeeper) LastBonus() int { return k.lastBonus }

// SeedHighScore raises the high score to h, e.g. from the score store.
func (k *ScoreKeeper) SeedHighScore(h int) {
	if h > k.high {
		k.high = h
	}
}

// restore overwrites every field from persisted values.
func (k *ScoreKeeper) restore(score, high, lastBonus int) {
	k.score = score
	k.high = max(high, score)
	k.lastBonus = lastBonus
}
