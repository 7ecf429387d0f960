package assistant

import (
	"testing"

	"alcyxob/fitness-assistant/internal/domain"
)

func assertNoSystemTurn(t *testing.T, turns []domain.ConversationTurn) {
	t.Helper()
	for i, turn := range turns {
		if turn.Role == domain.RoleSystem {
			t.Fatalf("visible turn %d has role system", i)
		}
	}
}

// TestSessionVisibleHistory verifies the system turn stays hidden across
// appends and resets.
func TestSessionVisibleHistory(t *testing.T) {
	s := NewSession(nil, nil)
	if got := len(s.VisibleHistory()); got != 0 {
		t.Fatalf("len(VisibleHistory()) = %d, want 0", got)
	}

	s.AppendUser("hi")
	s.AppendAssistant("hello")
	s.AppendUser("again")
	s.AppendUser("and again")
	visible := s.VisibleHistory()
	assertNoSystemTurn(t, visible)
	if len(visible) != 4 {
		t.Fatalf("len(VisibleHistory()) = %d, want 4", len(visible))
	}
	if visible[0].Content != "hi" || visible[1].Role != domain.RoleAssistant {
		t.Errorf("VisibleHistory() = %+v", visible)
	}

	s.Reset()
	assertNoSystemTurn(t, s.VisibleHistory())
	if got := len(s.VisibleHistory()); got != 0 {
		t.Errorf("after Reset len = %d, want 0", got)
	}
	if s.Len() != 1 || s.FullHistory()[0].Role != domain.RoleSystem {
		t.Errorf("after Reset FullHistory() = %+v", s.FullHistory())
	}

	s.Reset()
	s.AppendAssistant("fresh")
	assertNoSystemTurn(t, s.VisibleHistory())
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
}

// TestSessionSetProfile verifies the system turn is regenerated in place.
func TestSessionSetProfile(t *testing.T) {
	s := NewSession(nil, nil)
	s.AppendUser("hi")
	s.AppendAssistant("hello")

	p := sampleProfile()
	s.SetProfile(p)

	full := s.FullHistory()
	if len(full) != 3 {
		t.Fatalf("len(FullHistory()) = %d, want 3", len(full))
	}
	if full[0].Content != SystemPrompt(p) {
		t.Errorf("system turn = %q, want SystemPrompt(p)", full[0].Content)
	}
	if s.Profile() != p {
		t.Error("Profile() did not return the stored profile")
	}
	if full[1].Content != "hi" || full[2].Content != "hello" {
		t.Errorf("later turns changed: %+v", full[1:])
	}
}

// TestSessionFullHistoryCopy verifies callers cannot mutate stored turns.
func TestSessionFullHistoryCopy(t *testing.T) {
	s := NewSession(func(*domain.UserProfile) string { return "sys" }, nil)
	full := s.FullHistory()
	full[0].Content = "changed"
	if s.FullHistory()[0].Content != "sys" {
		t.Error("FullHistory() exposed internal storage")
	}
}

// TestSessionTruncate verifies truncate never drops the system turn.
func TestSessionTruncate(t *testing.T) {
	s := NewSession(nil, nil)
	s.AppendUser("a")
	s.AppendUser("b")
	s.truncate(2)
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
	s.truncate(0)
	if s.Len() != 2 {
		t.Errorf("truncate(0) changed Len() to %d", s.Len())
	}
}
