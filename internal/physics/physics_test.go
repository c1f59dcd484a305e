package physics

import (
	"math"
	"testing"
)

type circle struct {
	p Vec
	r float64
}

func (c circle) Center() Vec              { return c.p }
func (c circle) CollisionRadius() float64 { return c.r }

func TestCheckCollision(t *testing.T) {
	tests := []struct {
		name string
		a, b circle
		want bool
	}{
		{"same position", circle{V(100, 100), 15}, circle{V(100, 100), 20}, true},
		{"touching", circle{V(0, 0), 15}, circle{V(35, 0), 20}, true},
		{"apart by 36", circle{V(0, 0), 15}, circle{V(36, 0), 20}, false},
		{"diagonal overlap", circle{V(0, 0), 10}, circle{V(10, 10), 5}, true},
		{"diagonal apart", circle{V(0, 0), 5}, circle{V(10, 10), 5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CheckCollision(tt.a, tt.b); got != tt.want {
				t.Errorf("CheckCollision = %v, want %v", got, tt.want)
			}
			if got := CheckCollision(tt.b, tt.a); got != tt.want {
				t.Errorf("CheckCollision (swapped) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVecRotate(t *testing.T) {
	got := V(1, 0).Rotate(90)
	if math.Abs(got.X) > 1e-9 || math.Abs(got.Y-1) > 1e-9 {
		t.Errorf("Rotate(90) of (1,0) = %v, want (0,1)", got)
	}

	v := V(3, 4)
	r := v.Rotate(37)
	if math.Abs(r.Len()-5) > 1e-9 {
		t.Errorf("rotation changed length: %v", r.Len())
	}
	if a := v.Angle(r); math.Abs(a-37) > 1e-9 {
		t.Errorf("Angle = %v, want 37", a)
	}
	if a := v.Angle(v.Rotate(-20)); math.Abs(a+20) > 1e-9 {
		t.Errorf("Angle = %v, want -20", a)
	}
}

func TestForward(t *testing.T) {
	f := Forward(0)
	if f != V(0, 1) {
		t.Errorf("Forward(0) = %v, want (0,1)", f)
	}
	f = Forward(90)
	if math.Abs(f.X+1) > 1e-9 || math.Abs(f.Y) > 1e-9 {
		t.Errorf("Forward(90) = %v, want (-1,0)", f)
	}
}

func TestSpatialGridQueryAround(t *testing.T) {
	g := NewSpatialGrid(100, 100, 10)
	g.Insert(V(5, 5), 0)
	g.Insert(V(15, 5), 1)
	g.Insert(V(55, 55), 2)
	g.Insert(V(95, 95), 3) // Wraps next to (5,5)

	found := map[int]bool{}
	g.QueryAround(V(5, 5), func(i int) bool {
		found[i] = true
		return false
	})

	for _, want := range []int{0, 1, 3} {
		if !found[want] {
			t.Errorf("expected item %d near (5,5)", want)
		}
	}
	if found[2] {
		t.Error("item 2 should not be near (5,5)")
	}
	if g.Len() != 4 {
		t.Errorf("Len = %d, want 4", g.Len())
	}

	g.Clear()
	calls := 0
	g.QueryAround(V(5, 5), func(int) bool { calls++; return false })
	if calls != 0 || g.Len() != 0 {
		t.Errorf("grid not cleared: calls=%d len=%d", calls, g.Len())
	}
}

func TestSpatialGridSmallFieldVisitsOnce(t *testing.T) {
	g := NewSpatialGrid(10, 10, 10) // Single cell
	g.Insert(V(1, 1), 7)

	calls := 0
	g.QueryAround(V(1, 1), func(int) bool { calls++; return false })
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestSpatialGridClampsOutside(t *testing.T) {
	g := NewSpatialGrid(100, 100, 10)
	g.Insert(V(-3, 104), 9)

	hit := false
	g.QueryAround(V(2, 98), func(i int) bool {
		hit = i == 9
		return hit
	})
	if !hit {
		t.Error("expected clamped item to be found")
	}
}
