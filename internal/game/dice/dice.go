// Package dice provides the randomness abstraction for the Hegemony battle
// engine. Every phase of battle resolution draws from an injected Source, so
// a seeded source reproduces an entire battle roll-for-roll.
package dice

// Source is the randomness provider for dice rolls.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}
