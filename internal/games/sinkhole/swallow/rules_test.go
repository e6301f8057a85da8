package swallow

import (
	"math"
	"testing"
)

func TestStrictSizeRule(t *testing.T) {
	// An object exactly the hole's size is never swallowable, at any distance.
	for _, r := range []float64{0.1, 0.8, 1.0, 5.0} {
		for _, d := range []float64{0, 0.01, r, 10 * r} {
			if CanSwallow(r, r, d) {
				t.Errorf("CanSwallow(%v, %v, %v) = true, equal sizes must never swallow", r, r, d)
			}
		}
	}

	// A slightly smaller object at zero distance is swallowable.
	if !CanSwallow(1.0, 1.0-1e-6, 0) {
		t.Error("object marginally smaller than the hole at distance 0 should be swallowable")
	}

	// Larger objects are never swallowable.
	if CanSwallow(1.0, 1.5, 0) {
		t.Error("object larger than the hole must never be swallowable")
	}
}

func TestProximityBoundary(t *testing.T) {
	rules := DefaultRules()
	holeR := 1.0
	objR := 0.2

	// Edge distance just inside holeR * factor swallows.
	inside := objR + holeR*rules.ProximityFactor - 1e-9
	if !rules.CanSwallow(holeR, objR, inside) {
		t.Errorf("edge just inside capture range should swallow (dist=%v)", inside)
	}

	// Edge distance at exactly the boundary does not (strict less-than).
	boundary := objR + holeR*rules.ProximityFactor
	if rules.CanSwallow(holeR, objR, boundary) {
		t.Errorf("edge exactly at capture range should not swallow (dist=%v)", boundary)
	}

	// Way outside never swallows.
	if rules.CanSwallow(holeR, objR, 10) {
		t.Error("distant object should not swallow")
	}
}

func TestProximityFactorTunable(t *testing.T) {
	tight := Rules{ProximityFactor: 0.5, GrowthRate: DefaultGrowthRate}
	loose := Rules{ProximityFactor: 1.5, GrowthRate: DefaultGrowthRate}

	// Object edge at 1.0 * holeRadius away: only the loose rules capture it.
	holeR, objR := 1.0, 0.1
	dist := objR + holeR*1.0
	if tight.CanSwallow(holeR, objR, dist) {
		t.Error("tight rules should not capture at 1.0R edge distance")
	}
	if !loose.CanSwallow(holeR, objR, dist) {
		t.Error("loose rules should capture at 1.0R edge distance")
	}
}

func TestGrowthValues(t *testing.T) {
	cases := []struct {
		objR, rate, want float64
	}{
		{0.25, 0.3, 0.075},
		{1.0, 0.3, 0.3},
		{0.5, 0.3, 0.15},
		{2.0, 0.1, 0.2},
	}
	for _, c := range cases {
		if got := Growth(c.objR, c.rate); math.Abs(got-c.want) > 1e-12 {
			t.Errorf("Growth(%v, %v) = %v, want %v", c.objR, c.rate, got, c.want)
		}
	}
}

func TestGrowthSequence(t *testing.T) {
	// Starting at 0.8, swallowing 0.25 then 0.5 then 1.0 at rate 0.3 yields
	// 0.8 -> 0.875 -> 1.025 -> 1.325.
	rules := DefaultRules()
	radius := 0.8
	want := []float64{0.875, 1.025, 1.325}

	for i, objR := range []float64{0.25, 0.5, 1.0} {
		radius += rules.Growth(objR)
		if math.Abs(radius-want[i]) > 1e-12 {
			t.Fatalf("after swallow %d radius = %v, want %v", i+1, radius, want[i])
		}
	}
}
