package pointer

import (
	"math"
	"testing"
	"time"

	"github.com/richinsley/goglitch/page"
)

func TestRecordMoveSmoothsVelocity(t *testing.T) {
	tr := NewTracker()
	now := time.Unix(0, 0)
	tr.RecordMove(0, 0, now)
	if tr.Velocity() != 0 {
		t.Fatalf("first move velocity = %v, want 0", tr.Velocity())
	}
	tr.RecordMove(10, 0, now.Add(time.Millisecond))
	if got, want := tr.Velocity(), 3.0; math.Abs(got-want) > 1e-6 {
		t.Errorf("velocity = %v, want %v", got, want)
	}
	tr.RecordMove(10, 10, now.Add(2*time.Millisecond))
	if got, want := tr.Velocity(), 3.0*0.7+10*0.3; math.Abs(got-want) > 1e-6 {
		t.Errorf("velocity = %v, want %v", got, want)
	}
}

func TestDecayWaitsForIdle(t *testing.T) {
	tr := NewTracker()
	now := time.Unix(0, 0)
	tr.RecordMove(0, 0, now)
	tr.RecordMove(100, 0, now)
	v := tr.Velocity()
	tr.Decay(now.Add(10 * time.Millisecond))
	if tr.Velocity() != v {
		t.Errorf("velocity decayed before idle: %v -> %v", v, tr.Velocity())
	}
	tr.Decay(now.Add(20 * time.Millisecond))
	if got := tr.Velocity(); math.Abs(got-v*DecayRate) > 1e-9 {
		t.Errorf("velocity = %v, want %v", got, v*DecayRate)
	}
}

func TestVelocityNonNegativeAndDecaysToZero(t *testing.T) {
	tr := NewTracker()
	now := time.Unix(0, 0)
	moves := [][2]float64{{0, 0}, {50, 3}, {-20, 80}, {7, 7}, {7, 7}, {300, -40}}
	for i, m := range moves {
		tr.RecordMove(m[0], m[1], now.Add(time.Duration(i)*time.Millisecond))
		if tr.Velocity() < 0 {
			t.Fatalf("velocity went negative: %v", tr.Velocity())
		}
	}
	prev := tr.Velocity()
	later := now.Add(time.Second)
	for i := 0; i < 1000; i++ {
		tr.Update(later)
		if tr.Velocity() > prev {
			t.Fatalf("decay not monotonic: %v -> %v", prev, tr.Velocity())
		}
		prev = tr.Velocity()
	}
	if tr.Velocity() != 0 {
		t.Errorf("velocity after long pause = %v, want 0", tr.Velocity())
	}
}

func TestEffectScaleBounded(t *testing.T) {
	tr := NewTracker()
	now := time.Unix(0, 0)
	for i := 0; i < 200; i++ {
		tr.RecordMove(float64(i*500), 0, now)
		s := tr.ComputeScale()
		if s < 0 || s > 1 {
			t.Fatalf("scale = %v, out of [0,1]", s)
		}
	}
	if s := tr.EffectScale(); math.Abs(s-1) > 0.01 {
		t.Errorf("scale after sustained fast motion = %v, want ~1", s)
	}
	for i := 0; i < 2000; i++ {
		s := tr.Update(now.Add(time.Second))
		if s < 0 || s > 1 {
			t.Fatalf("scale = %v, out of [0,1]", s)
		}
	}
	if tr.EffectScale() != 0 {
		t.Errorf("scale after rest = %v, want 0", tr.EffectScale())
	}
	if tr.Settling() {
		t.Error("Settling() = true after rest")
	}
}

func TestScaleForVelocityDisabled(t *testing.T) {
	tr := NewTracker()
	tr.RecordMove(0, 0, time.Unix(0, 0))
	tr.RecordMove(3, 4, time.Unix(0, 0))
	tr.ComputeScale()
	if got := tr.ScaleFor(false); got != 1 {
		t.Errorf("ScaleFor(false) = %v, want 1", got)
	}
	if got := tr.ScaleFor(true); got != tr.EffectScale() {
		t.Errorf("ScaleFor(true) = %v, want %v", got, tr.EffectScale())
	}
}

func TestReset(t *testing.T) {
	tr := NewTracker()
	now := time.Unix(0, 0)
	tr.RecordMove(0, 0, now)
	tr.RecordMove(100, 100, now)
	tr.Reset(5, 5, now)
	if tr.Velocity() != 0 {
		t.Errorf("velocity after reset = %v", tr.Velocity())
	}
	tr.RecordMove(5, 5, now)
	if tr.Velocity() != 0 {
		t.Errorf("velocity after stationary move = %v", tr.Velocity())
	}
}

func TestHitTest(t *testing.T) {
	box := page.Rect{X: 10, Y: 20, Width: 100, Height: 50}
	tests := []struct {
		name   string
		x, y   float64
		over   bool
		lx, ly float32
	}{
		{"top-left corner", 10, 20, true, 0, 50},
		{"center", 60, 45, true, 50, 25},
		{"bottom edge", 60, 70, true, 50, 0},
		{"outside", 5, 45, false, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			over, local := HitTest(box, tt.x, tt.y)
			if over != tt.over {
				t.Fatalf("over = %v, want %v", over, tt.over)
			}
			if local.X() != tt.lx || local.Y() != tt.ly {
				t.Errorf("local = %v, want (%v, %v)", local, tt.lx, tt.ly)
			}
		})
	}
}
