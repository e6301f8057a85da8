// Package swallow holds the decision rules for consuming scene objects.
// Everything here is pure and stateless: the same inputs always produce the
// same answer, so the functions are safe to call from any tick, any number
// of times.
package swallow

// Default tuning values. Empirically tuned in playtesting; overridable via
// the game config, but the defaults are load-bearing for level balance.
const (
	// DefaultProximityFactor scales how close an object's edge must be to
	// the hole center, relative to the hole radius, before it tips in.
	DefaultProximityFactor = 0.9

	// DefaultGrowthRate converts a swallowed object's radius into hole
	// radius increase.
	DefaultGrowthRate = 0.3
)

// Rules carries the tunable swallow parameters.
type Rules struct {
	ProximityFactor float64
	GrowthRate      float64
}

// DefaultRules returns rules with the stock tuning.
func DefaultRules() Rules {
	return Rules{
		ProximityFactor: DefaultProximityFactor,
		GrowthRate:      DefaultGrowthRate,
	}
}

// CanSwallow reports whether an object of radius objRadius whose center is
// dist away from the hole center can be consumed by a hole of holeRadius.
//
// Two conditions must hold:
//   - the object's edge (dist - objRadius) is within the hole's capture
//     range (holeRadius * ProximityFactor);
//   - the object is strictly smaller than the hole. An object exactly the
//     hole's size is never swallowable, which keeps growth monotonic and
//     forces the player to grow before tackling bigger objects.
//
// objRadius must be positive and dist non-negative; callers own validation.
func (r Rules) CanSwallow(holeRadius, objRadius, dist float64) bool {
	if objRadius >= holeRadius {
		return false
	}
	return dist-objRadius < holeRadius*r.ProximityFactor
}

// Growth returns the hole radius increase earned by swallowing an object of
// the given radius. Growth is proportional to object size rather than a
// fixed increment, so progress comes in designed jumps: small props barely
// matter once the hole is big, required landmarks pay out large.
func (r Rules) Growth(objRadius float64) float64 {
	return objRadius * r.GrowthRate
}

// CanSwallow applies the default rules. Convenience for callers that do not
// carry tuned parameters.
func CanSwallow(holeRadius, objRadius, dist float64) bool {
	return DefaultRules().CanSwallow(holeRadius, objRadius, dist)
}

// Growth applies an explicit growth rate without constructing Rules.
func Growth(objRadius, rate float64) float64 {
	return objRadius * rate
}
