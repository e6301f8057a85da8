package core

import (
	"math"
	"testing"
)

func TestVec2Dist(t *testing.T) {
	a := Vec2{X: 0, Z: 0}
	b := Vec2{X: 3, Z: 4}

	if got := a.Dist(b); math.Abs(got-5) > 1e-9 {
		t.Errorf("Dist(0,0 -> 3,4) = %v, want 5", got)
	}
	if got := b.Dist(a); math.Abs(got-5) > 1e-9 {
		t.Errorf("Dist should be symmetric, got %v", got)
	}
	if got := a.Dist(a); got != 0 {
		t.Errorf("Dist to self = %v, want 0", got)
	}
}

func TestVec2Arithmetic(t *testing.T) {
	v := Vec2{X: 1, Z: -2}.Add(Vec2{X: 2, Z: 5})
	if v.X != 3 || v.Z != 3 {
		t.Errorf("Add = %+v, want {3 3}", v)
	}

	v = Vec2{X: 4, Z: 6}.Sub(Vec2{X: 1, Z: 2})
	if v.X != 3 || v.Z != 4 {
		t.Errorf("Sub = %+v, want {3 4}", v)
	}

	v = Vec2{X: 1, Z: -1}.Scale(2.5)
	if v.X != 2.5 || v.Z != -2.5 {
		t.Errorf("Scale = %+v, want {2.5 -2.5}", v)
	}
}

func TestVec3Ground(t *testing.T) {
	p := Vec3{X: 1, Y: 9, Z: 2}
	g := p.Ground()
	if g.X != 1 || g.Z != 2 {
		t.Errorf("Ground = %+v, want {1 2}", g)
	}
}

func TestClamp(t *testing.T) {
	if Clamp(5, 0, 10) != 5 {
		t.Error("Clamp(5, 0, 10) should be 5")
	}
	if Clamp(-1, 0, 10) != 0 {
		t.Error("Clamp(-1, 0, 10) should be 0")
	}
	if Clamp(11, 0, 10) != 10 {
		t.Error("Clamp(11, 0, 10) should be 10")
	}

	if ClampF(1.5, 0, 1) != 1 {
		t.Error("ClampF(1.5, 0, 1) should be 1")
	}
	if ClampF(-0.5, 0, 1) != 0 {
		t.Error("ClampF(-0.5, 0, 1) should be 0")
	}
}

func TestMinMaxAbs(t *testing.T) {
	if Min(2, 3) != 2 || Min(3, 2) != 2 {
		t.Error("Min broken")
	}
	if Max(2, 3) != 3 || Max(3, 2) != 3 {
		t.Error("Max broken")
	}
	if Abs(-4) != 4 || Abs(4) != 4 {
		t.Error("Abs broken")
	}
}
