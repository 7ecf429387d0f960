package service

import (
	"alcyxob/fitness-assistant/internal/assistant"
	"alcyxob/fitness-assistant/internal/domain"
	"alcyxob/fitness-assistant/internal/llm"
	"alcyxob/fitness-assistant/internal/repository"
	"alcyxob/fitness-assistant/internal/storage"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// transcriptURLExpiry is how long an exported transcript link stays valid.
const transcriptURLExpiry = time.Hour

type AssistantService interface {
	SendMessage(ctx context.Context, userID, text string) (domain.ConversationTurn, error)
	History(ctx context.Context, userID string) ([]domain.ConversationTurn, error)
	Reset(ctx context.Context, userID string) error
	GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error)
	SetProfile(ctx context.Context, userID string, profile *domain.UserProfile) error
	ExportTranscript(ctx context.Context, userID string) (*domain.TranscriptExport, error)
}

// assistantService keeps one Orchestrator per user for the life of the process.
type assistantService struct {
	mu       sync.Mutex
	sessions map[string]*assistant.Orchestrator

	users    repository.UserRepository
	workouts WorkoutService
	router   *assistant.Router
	client   llm.Client
	files    storage.FileStorage // nil disables transcript export
	opts     assistant.Options
}

// NewAssistantService creates an AssistantService. files may be nil.
func NewAssistantService(
	users repository.UserRepository,
	workouts WorkoutService,
	client llm.Client,
	files storage.FileStorage,
	opts assistant.Options,
) AssistantService {
	return &assistantService{
		sessions: make(map[string]*assistant.Orchestrator),
		users:    users,
		workouts: workouts,
		router:   assistant.NewRouter(workouts.Now),
		client:   client,
		files:    files,
		opts:     opts,
	}
}

// orchestrator returns the user's live session, creating it from the stored
// profile on first use.
func (s *assistantService) orchestrator(ctx context.Context, userID string) (*assistant.Orchestrator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o, ok := s.sessions[userID]; ok {
		return o, nil
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		log.Printf("ERROR: AssistantService: loading user %s: %v", userID, err)
		return nil, err
	}

	session := assistant.NewSession(assistant.SystemPrompt, user.Profile)
	o := assistant.NewOrchestrator(session, s.workouts.ForUser(userID), s.router, s.client, s.opts)
	s.sessions[userID] = o
	return o, nil
}

func (s *assistantService) SendMessage(ctx context.Context, userID, text string) (domain.ConversationTurn, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.ConversationTurn{}, ErrEmptyMessage
	}
	o, err := s.orchestrator(ctx, userID)
	if err != nil {
		return domain.ConversationTurn{}, err
	}
	turn, err := o.SendMessage(ctx, text)
	if err != nil {
		log.Printf("ERROR: AssistantService: message for user %s failed: %v", userID, err)
		return domain.ConversationTurn{}, err
	}
	return turn, nil
}

func (s *assistantService) History(ctx context.Context, userID string) ([]domain.ConversationTurn, error) {
	o, err := s.orchestrator(ctx, userID)
	if err != nil {
		return nil, err
	}
	return o.History(), nil
}

func (s *assistantService) Reset(ctx context.Context, userID string) error {
	o, err := s.orchestrator(ctx, userID)
	if err != nil {
		return err
	}
	o.Reset()
	return nil
}

func (s *assistantService) GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user.Profile, nil
}

// SetProfile persists profile and regenerates the live session's system turn.
func (s *assistantService) SetProfile(ctx context.Context, userID string, profile *domain.UserProfile) error {
	if err := validateProfile(profile); err != nil {
		return err
	}
	o, err := s.orchestrator(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.users.UpdateProfile(ctx, userID, profile); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		log.Printf("ERROR: AssistantService: saving profile for user %s: %v", userID, err)
		return err
	}
	o.SetProfile(profile)
	return nil
}

func validateProfile(p *domain.UserProfile) error {
	switch {
	case p == nil:
		return fmt.Errorf("%w: profile is required", ErrProfileInvalid)
	case p.Age < 0, p.WeightKg < 0, p.HeightCm < 0, p.WorkoutDurationMinutes < 0:
		return fmt.Errorf("%w: numeric fields cannot be negative", ErrProfileInvalid)
	case p.FitnessLevel != "" && !p.FitnessLevel.Valid():
		return fmt.Errorf("%w: unknown fitness level %q", ErrProfileInvalid, p.FitnessLevel)
	}
	for _, d := range p.PreferredWorkoutDays {
		if d < 0 || d > 6 {
			return fmt.Errorf("%w: weekday %d out of range 0-6", ErrProfileInvalid, d)
		}
	}
	return nil
}

type transcriptDocument struct {
	UserID     string                    `json:"userId"`
	ExportedAt time.Time                 `json:"exportedAt"`
	Turns      []domain.ConversationTurn `json:"turns"`
}

// ExportTranscript uploads the visible history as JSON and returns a
// temporary download link.
func (s *assistantService) ExportTranscript(ctx context.Context, userID string) (*domain.TranscriptExport, error) {
	if s.files == nil {
		return nil, ErrExportUnavailable
	}
	o, err := s.orchestrator(ctx, userID)
	if err != nil {
		return nil, err
	}

	doc := transcriptDocument{UserID: userID, ExportedAt: time.Now().UTC(), Turns: o.History()}
	body, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding transcript: %w", err)
	}

	objectKey := path.Join("transcripts", userID, uuid.NewString()+".json")
	if err := s.files.PutObject(ctx, objectKey, "application/json", body); err != nil {
		return nil, fmt.Errorf("uploading transcript: %w", err)
	}

	url, err := s.files.GeneratePresignedDownloadURL(ctx, objectKey, transcriptURLExpiry)
	if err != nil {
		if derr := s.files.DeleteObject(ctx, objectKey); derr != nil {
			log.Printf("WARN: AssistantService: orphaned transcript %s: %v", objectKey, derr)
		}
		return nil, fmt.Errorf("presigning transcript: %w", err)
	}

	log.Printf("INFO: Exported %d turns for user %s to %s", len(doc.Turns), userID, objectKey)
	return &domain.TranscriptExport{
		UserID:      userID,
		S3ObjectKey: objectKey,
		DownloadURL: url,
		TurnCount:   len(doc.Turns),
		Size:        int64(len(body)),
		ExportedAt:  doc.ExportedAt,
	}, nil
}
