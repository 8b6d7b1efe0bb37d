package score

import (
	"testing"
	"time"
)

func TestFeverManual(t *testing.T) {
	f := Fever{}
	if f.Charge(150, time.Second) {
		t.Fatal("manual fever must not activate on its own")
	}
	if f.Meter != FeverMax || !f.Ready() || f.Active {
		t.Fatalf("meter should clamp at 100 and be ready: %+v", f)
	}
	if !f.Activate(2 * time.Second) {
		t.Fatal("activation at a full meter should succeed")
	}
	if f.End != 9*time.Second || f.Ready() {
		t.Fatalf("unexpected active fever %+v", f)
	}
	if f.Activate(3 * time.Second) {
		t.Fatal("fever cannot activate twice")
	}

	f.Charge(5, 3*time.Second)
	f.Drain(50)
	if f.Meter != FeverMax {
		t.Fatal("meter must not change while active")
	}

	if f.Tick(8999 * time.Millisecond) {
		t.Fatal("fever ended early")
	}
	if f.Remaining(8*time.Second) != time.Second {
		t.Errorf("remaining %v", f.Remaining(8*time.Second))
	}
	if !f.Tick(9*time.Second) || f.Active || f.Meter != 0 {
		t.Fatalf("fever should expire at its end time: %+v", f)
	}
}

func TestFeverNotReady(t *testing.T) {
	f := Fever{Meter: 99}
	if f.Activate(0) {
		t.Fatal("activation below 100 should fail")
	}
	f.Drain(200)
	if f.Meter != 0 {
		t.Errorf("meter should floor at zero, got %v", f.Meter)
	}
}

func TestFeverAuto(t *testing.T) {
	f := Fever{Meter: 95, Auto: true}
	if !f.Charge(10, 4*time.Second) {
		t.Fatal("auto fever should activate when the meter fills")
	}
	if !f.Active || f.End != 11*time.Second {
		t.Errorf("unexpected auto fever %+v", f)
	}
}
