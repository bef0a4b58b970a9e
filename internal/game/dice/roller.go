package dice

import "go.uber.org/zap"

// Roller wraps a Source and logger to provide the logged d6 primitives the
// battle phases roll with. All rolls are logged at debug level.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewRoller creates a Roller that rolls with src and logs each roll to logger.
//
// Precondition: src and logger must be non-nil.
func NewRoller(src Source, logger *zap.Logger) *Roller {
	return &Roller{src: src, logger: logger}
}

// D6 rolls a single six-sided die.
//
// Postcondition: Returns a value in [1, 6].
func (r *Roller) D6(reason string) int {
	v := r.src.Intn(6) + 1
	r.logger.Debug("dice roll",
		zap.String("reason", reason),
		zap.Int("d6", v),
	)
	return v
}

// D6Rerolled rolls a d6 twice and returns both results with the higher of
// the two. This is the keep-the-better reroll granted by certain traits.
//
// Postcondition: best == max(first, second); all values in [1, 6].
func (r *Roller) D6Rerolled(reason string) (first, second, best int) {
	first = r.src.Intn(6) + 1
	second = r.src.Intn(6) + 1
	best = first
	if second > best {
		best = second
	}
	r.logger.Debug("dice reroll",
		zap.String("reason", reason),
		zap.Int("first", first),
		zap.Int("second", second),
		zap.Int("kept", best),
	)
	return first, second, best
}

// Flip performs a uniform coin flip.
//
// Postcondition: Returns true with probability 1/2.
func (r *Roller) Flip(reason string) bool {
	v := r.src.Intn(2) == 0
	r.logger.Debug("coin flip",
		zap.String("reason", reason),
		zap.Bool("heads", v),
	)
	return v
}

// PickIndex selects a uniform random index in [0, n).
//
// Precondition: n > 0.
func (r *Roller) PickIndex(reason string, n int) int {
	v := r.src.Intn(n)
	r.logger.Debug("random pick",
		zap.String("reason", reason),
		zap.Int("n", n),
		zap.Int("index", v),
	)
	return v
}
