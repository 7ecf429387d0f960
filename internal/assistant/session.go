package assistant

import (
	"time"

	"alcyxob/fitness-assistant/internal/domain"
)

// PromptFunc renders the system turn for a (possibly nil) profile.
type PromptFunc func(profile *domain.UserProfile) string

// Session holds one user's ordered conversation. Turn 0 is always the
// system instruction and is never returned by VisibleHistory.
//
// Session is not safe for concurrent use; Orchestrator serializes access.
type Session struct {
	prompt  PromptFunc
	profile *domain.UserProfile
	turns   []domain.ConversationTurn
	now     func() time.Time
}

// NewSession creates a session whose system turn is prompt(profile).
// A nil prompt uses SystemPrompt.
func NewSession(prompt PromptFunc, profile *domain.UserProfile) *Session {
	if prompt == nil {
		prompt = SystemPrompt
	}
	s := &Session{prompt: prompt, profile: profile, now: time.Now}
	s.turns = []domain.ConversationTurn{{
		Role:      domain.RoleSystem,
		Content:   prompt(profile),
		Timestamp: s.now(),
	}}
	return s
}

// SetProfile stores profile and regenerates the system turn in place.
func (s *Session) SetProfile(profile *domain.UserProfile) {
	s.profile = profile
	s.turns[0].Content = s.prompt(profile)
}

// Profile returns the profile the system turn was built from.
func (s *Session) Profile() *domain.UserProfile {
	return s.profile
}

// AppendUser records a user turn. Role alternation is not enforced.
func (s *Session) AppendUser(content string) domain.ConversationTurn {
	return s.append(domain.RoleUser, content)
}

// AppendAssistant records an assistant turn.
func (s *Session) AppendAssistant(content string) domain.ConversationTurn {
	return s.append(domain.RoleAssistant, content)
}

func (s *Session) append(role domain.Role, content string) domain.ConversationTurn {
	turn := domain.ConversationTurn{Role: role, Content: content, Timestamp: s.now()}
	s.turns = append(s.turns, turn)
	return turn
}

// VisibleHistory returns every turn except the system turn.
func (s *Session) VisibleHistory() []domain.ConversationTurn {
	out := make([]domain.ConversationTurn, 0, len(s.turns)-1)
	for _, t := range s.turns {
		if t.Role != domain.RoleSystem {
			out = append(out, t)
		}
	}
	return out
}

// FullHistory returns all turns including the system turn.
func (s *Session) FullHistory() []domain.ConversationTurn {
	return append([]domain.ConversationTurn(nil), s.turns...)
}

// Reset discards everything but the system turn.
func (s *Session) Reset() {
	s.turns = s.turns[:1]
}

// Len counts all turns, the system turn included.
func (s *Session) Len() int {
	return len(s.turns)
}

// truncate drops turns appended after the first n.
func (s *Session) truncate(n int) {
	if n >= 1 && n < len(s.turns) {
		s.turns = s.turns[:n]
	}
}
