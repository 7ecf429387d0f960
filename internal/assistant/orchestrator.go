package assistant

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"alcyxob/fitness-assistant/internal/domain"
	"alcyxob/fitness-assistant/internal/llm"
)

// ErrEmptyMessage is returned for blank user input.
var ErrEmptyMessage = errors.New("message cannot be empty")

// State is where an orchestrator is in its request cycle.
type State int

const (
	StateIdle State = iota
	StateAwaitingProvider
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingProvider:
		return "awaiting_provider"
	case StateError:
		return "error"
	}
	return "unknown"
}

// Options configures provider requests.
type Options struct {
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration // 0 waits until the provider answers or fails
}

// Orchestrator is one user's assistant. SendMessage calls are serialized,
// so concurrent requests cannot interleave turns.
type Orchestrator struct {
	mu       sync.Mutex
	session  *Session
	schedule Schedule
	router   *Router
	fallback *Fallback
	client   llm.Client
	opts     Options
	state    State
}

// NewOrchestrator wires a session to a schedule and provider. A nil router
// uses NewRouter(time.Now).
func NewOrchestrator(session *Session, schedule Schedule, router *Router, client llm.Client, opts Options) *Orchestrator {
	if router == nil {
		router = NewRouter(nil)
	}
	return &Orchestrator{
		session:  session,
		schedule: schedule,
		router:   router,
		fallback: NewFallback(router),
		client:   client,
		opts:     opts,
	}
}

// SendMessage answers text and returns the assistant turn.
//
// Recognised schedule intents never reach the provider. Quota failures are
// answered by the fallback. Any other provider failure is returned as an
// *llm.ProviderError and leaves the session as it was before the call.
func (o *Orchestrator) SendMessage(ctx context.Context, text string) (domain.ConversationTurn, error) {
	if text == "" {
		return domain.ConversationTurn{}, ErrEmptyMessage
	}
	o.mu.Lock()
	defer o.mu.Unlock()

	reply, matched, err := o.router.Route(ctx, text, o.schedule)
	if err != nil {
		o.state = StateError
		return domain.ConversationTurn{}, err
	}
	if matched {
		o.session.AppendUser(text)
		o.state = StateIdle
		return o.session.AppendAssistant(reply), nil
	}

	mark := o.session.Len()
	o.session.AppendUser(text)
	o.state = StateAwaitingProvider

	resp, err := o.complete(ctx)
	if err == nil {
		o.state = StateIdle
		return o.session.AppendAssistant(resp.Message.Content), nil
	}

	if llm.IsQuotaExceeded(err) {
		log.Printf("WARN: Provider quota exceeded, answering from fallback: %v", err)
		reply, ferr := o.fallback.Respond(ctx, text, o.schedule)
		if ferr != nil {
			o.session.truncate(mark)
			o.state = StateError
			return domain.ConversationTurn{}, ferr
		}
		o.state = StateIdle
		return o.session.AppendAssistant(reply), nil
	}

	o.session.truncate(mark)
	o.state = StateError
	return domain.ConversationTurn{}, llm.AsProviderError(err)
}

func (o *Orchestrator) complete(ctx context.Context) (llm.ChatResponse, error) {
	if o.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.opts.Timeout)
		defer cancel()
	}
	history := o.session.FullHistory()
	messages := make([]llm.Message, 0, len(history))
	for _, t := range history {
		messages = append(messages, llm.Message{Role: string(t.Role), Content: t.Content})
	}
	return o.client.Chat(ctx, llm.ChatRequest{
		Model:       o.opts.Model,
		Messages:    messages,
		Temperature: o.opts.Temperature,
		MaxTokens:   o.opts.MaxTokens,
	})
}

// History returns the visible conversation.
func (o *Orchestrator) History() []domain.ConversationTurn {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.session.VisibleHistory()
}

// Reset clears the conversation, keeping the system turn.
func (o *Orchestrator) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.session.Reset()
	o.state = StateIdle
}

// SetProfile regenerates the system turn for profile.
func (o *Orchestrator) SetProfile(profile *domain.UserProfile) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.session.SetProfile(profile)
}

// State reports the outcome of the last SendMessage.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}
