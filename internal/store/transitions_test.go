package store

import (
	"testing"

	"queueflow/internal/models"
)

func TestValidTransition(t *testing.T) {
	cases := []struct {
		action string
		from   string
		want   bool
	}{
		{"call_next", models.StatusWaiting, true},
		{"call_next", models.StatusCalled, false},
		{"start_service", models.StatusCalled, true},
		{"start_service", models.StatusWaiting, false},
		{"complete", models.StatusCalled, true},
		{"complete", models.StatusInService, true},
		{"complete", models.StatusWaiting, false},
		{"cancel", models.StatusWaiting, true},
		{"cancel", models.StatusCalled, false},
		{"cancel", models.StatusCompleted, false},
		{"miss", models.StatusCalled, true},
		{"miss", models.StatusInService, true},
		{"miss", models.StatusWaiting, false},
		{"transfer", models.StatusWaiting, false},
	}
	for _, tc := range cases {
		if got := ValidTransition(tc.action, tc.from); got != tc.want {
			t.Errorf("ValidTransition(%q, %q) = %v, want %v", tc.action, tc.from, got, tc.want)
		}
	}
}

func TestTerminalStatusesAllowNothing(t *testing.T) {
	for _, status := range []string{models.StatusCompleted, models.StatusCancelled, models.StatusMissed} {
		for action := range transitionMap {
			if ValidTransition(action, status) {
				t.Errorf("action %q allowed from terminal status %q", action, status)
			}
		}
	}
}
