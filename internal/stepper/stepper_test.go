package stepper

import (
	"reflect"
	"testing"
)

func TestNextAndPreviousAreCapped(t *testing.T) {
	n := New(FirstStep)

	if got := n.Previous(); got != FirstStep {
		t.Errorf("Previous from first = %d, want %d", got, FirstStep)
	}
	for i := 0; i < 10; i++ {
		n.Next()
	}
	if got := n.Current(); got != LastStep {
		t.Errorf("Current after many Next = %d, want %d", got, LastStep)
	}
	if got := n.Next(); got != LastStep {
		t.Errorf("Next from last = %d, want %d", got, LastStep)
	}
	if got := n.Previous(); got != LastStep-1 {
		t.Errorf("Previous from last = %d, want %d", got, LastStep-1)
	}
}

func TestGoToIsUnguarded(t *testing.T) {
	n := New(StepBasics)

	if got := n.GoTo(StepReviewPublish); got != StepReviewPublish {
		t.Fatalf("GoTo(7) = %d", got)
	}
	if !n.CanPublish() {
		t.Error("publish should be enabled on the last step")
	}
	if got := n.GoTo(StepRequirements); got != StepRequirements {
		t.Fatalf("GoTo(3) = %d", got)
	}
	if n.CanPublish() {
		t.Error("publish should be disabled away from the last step")
	}
}

func TestGoToClamps(t *testing.T) {
	tests := []struct {
		input    int
		expected int
	}{
		{0, FirstStep},
		{-4, FirstStep},
		{8, LastStep},
		{4, 4},
	}
	for _, tt := range tests {
		n := New(StepBasics)
		if got := n.GoTo(tt.input); got != tt.expected {
			t.Errorf("GoTo(%d) = %d, want %d", tt.input, got, tt.expected)
		}
	}
}

func TestCompletedIsPositional(t *testing.T) {
	n := New(StepDosDonts)

	for step := FirstStep; step <= LastStep; step++ {
		want := step < StepDosDonts
		if got := n.Completed(step); got != want {
			t.Errorf("Completed(%d) = %v, want %v", step, got, want)
		}
	}

	state := n.State()
	if !reflect.DeepEqual(state.Completed, []int{1, 2, 3}) {
		t.Errorf("State().Completed = %v", state.Completed)
	}
	if state.Total != 7 || len(state.Steps) != 7 {
		t.Errorf("State() total = %d, steps = %d", state.Total, len(state.Steps))
	}
}

func TestStepsAreOrdered(t *testing.T) {
	for i, s := range Steps {
		if s.ID != i+1 {
			t.Errorf("Steps[%d].ID = %d", i, s.ID)
		}
	}
}
