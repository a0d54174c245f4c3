package domain

import (
	"strings"
	"testing"
	"time"
)

func TestNewPingResult(t *testing.T) {
	result := NewPingResult(42 * time.Millisecond)

	if result.Message != "**Pong:** 42 ms" {
		t.Errorf("unexpected message: %q", result.Message)
	}
	if result.Latency != 42*time.Millisecond {
		t.Errorf("unexpected latency: %v", result.Latency)
	}
}

func TestNewGreetingResult_MentionsUser(t *testing.T) {
	result := NewGreetingResult("<@123>")

	if !strings.HasSuffix(result.Message, " <@123>") {
		t.Errorf("expected mention suffix, got %q", result.Message)
	}

	found := false
	for _, greeting := range greetings {
		if strings.HasPrefix(result.Message, greeting) {
			found = true
		}
	}
	if !found {
		t.Errorf("message %q does not start with a known greeting", result.Message)
	}
}

func TestNewDecisionResult_PicksKnownAnswer(t *testing.T) {
	result := NewDecisionResult()

	found := false
	for _, answer := range answers {
		if result.Answer == answer {
			found = true
		}
	}
	if !found {
		t.Errorf("answer %q is not in the known set", result.Answer)
	}
}
