package hints

import (
	"testing"

	"github.com/pthm-cable/pinflow/config"
	"github.com/pthm-cable/pinflow/levels"
)

func TestThreeResetsShowHintImmediately(t *testing.T) {
	a := NewAdvisor(DefaultPolicy())
	for i := 0; i < 2; i++ {
		a.RecordReset()
		if a.IsHintAvailable() {
			t.Fatalf("hint available after %d resets", i+1)
		}
	}
	a.RecordReset()
	if !a.IsHintAvailable() {
		t.Error("hint should be available right after the third reset")
	}
}

func TestIdleThresholdIsStrict(t *testing.T) {
	a := NewAdvisor(DefaultPolicy())
	for i := 0; i < 15; i++ {
		a.Update(1)
	}
	if a.IsHintAvailable() {
		t.Error("exactly 15s idle should not trigger the hint")
	}
	a.Update(0.1)
	if !a.IsHintAvailable() {
		t.Error("more than 15s idle should trigger the hint")
	}
}

func TestActionClearsHint(t *testing.T) {
	a := NewAdvisor(DefaultPolicy())
	a.Update(20)
	a.RecordAction()
	if a.IsHintAvailable() || a.Idle() != 0 {
		t.Error("action should hide the hint and clear idle time")
	}

	// Attempts persist, so the next tick brings it back.
	for i := 0; i < 3; i++ {
		a.RecordReset()
	}
	a.RecordAction()
	if a.IsHintAvailable() {
		t.Error("action should hide the hint even above the attempt threshold")
	}
	a.Update(0)
	if !a.IsHintAvailable() {
		t.Error("attempt threshold should re-raise the hint on the next update")
	}
}

func TestResetLevelPolicy(t *testing.T) {
	tests := []struct {
		name         string
		perLevel     bool
		wantAttempts int
	}{
		{"attempts carry over", false, 3},
		{"attempts reset per level", true, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := DefaultPolicy()
			p.ResetAttemptsPerLevel = tc.perLevel
			a := NewAdvisor(p)
			for i := 0; i < 3; i++ {
				a.RecordReset()
			}
			a.ResetLevel()
			if a.IsHintAvailable() {
				t.Error("ResetLevel should hide the hint")
			}
			if a.Attempts() != tc.wantAttempts {
				t.Errorf("attempts = %d, want %d", a.Attempts(), tc.wantAttempts)
			}
		})
	}
}

func TestHintText(t *testing.T) {
	a := NewAdvisor(DefaultPolicy())
	var def levels.Definition
	if got := a.Hint(def); got != HintFindWater {
		t.Errorf("hint = %q", got)
	}
	for i := 0; i < 5; i++ {
		a.RecordReset()
	}
	if got := a.Hint(def); got != HintReorder {
		t.Errorf("hint after 5 resets = %q", got)
	}
}

func TestPolicyFromConfig(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	if got := PolicyFromConfig(cfg); got != DefaultPolicy() {
		t.Errorf("config policy %+v differs from defaults %+v", got, DefaultPolicy())
	}
}
