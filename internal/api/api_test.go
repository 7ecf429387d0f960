package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"alcyxob/fitness-assistant/internal/assistant"
	"alcyxob/fitness-assistant/internal/domain"
	"alcyxob/fitness-assistant/internal/llm"
	"alcyxob/fitness-assistant/internal/repository/memory"
	"alcyxob/fitness-assistant/internal/service"

	"github.com/gin-gonic/gin"
)

const testSecret = "test-secret"

var testNow = time.Date(2025, time.March, 12, 9, 0, 0, 0, time.UTC)

type scriptedClient struct {
	calls int
	reply string
	err   error
}

func (c *scriptedClient) Chat(ctx context.Context, req llm.ChatRequest) (llm.ChatResponse, error) {
	c.calls++
	if c.err != nil {
		return llm.ChatResponse{}, c.err
	}
	return llm.ChatResponse{Message: llm.Message{Role: "assistant", Content: c.reply}}, nil
}

type testServer struct {
	router   *gin.Engine
	workouts service.WorkoutService
	client   *scriptedClient
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := memory.NewUserRepository()
	workouts := service.NewWorkoutService(memory.NewWorkoutRepository(), func() time.Time { return testNow })
	client := &scriptedClient{reply: "Drink water."}
	authSvc := service.NewAuthService(users, workouts, nil, testSecret, time.Hour)
	assistantSvc := service.NewAssistantService(users, workouts, client, nil, assistant.Options{})

	router := gin.New()
	SetupRoutes(router, testSecret, authSvc, workouts, assistantSvc, nil)
	return &testServer{router: router, workouts: workouts, client: client}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// login registers a user and returns its token and id.
func (s *testServer) login(t *testing.T, email string) (string, string) {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{"name": "Alex", "email": email, "password": "password123"})
	if w.Code != http.StatusCreated {
		t.Fatalf("register status = %d, body = %s", w.Code, w.Body)
	}
	w = s.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": email, "password": "password123"})
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d, body = %s", w.Code, w.Body)
	}
	var resp LoginResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	return resp.Token, resp.User.ID
}

// TestAuthFlow verifies registration, duplicates and bad credentials.
func TestAuthFlow(t *testing.T) {
	s := newTestServer(t)
	token, id := s.login(t, "alex@example.com")
	if token == "" || id == "" {
		t.Fatalf("token = %q id = %q", token, id)
	}

	w := s.do(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{"name": "Alex", "email": "alex@example.com", "password": "password123"})
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate register status = %d, want 409", w.Code)
	}
	w = s.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": "alex@example.com", "password": "nope"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("bad login status = %d, want 401", w.Code)
	}
	w = s.do(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{"name": "A", "email": "not-an-email", "password": "short"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("invalid register status = %d, want 400", w.Code)
	}

	w = s.do(t, http.MethodGet, "/api/v1/me", token, nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), id) {
		t.Errorf("me = %d %s", w.Code, w.Body)
	}
}

// TestAuthMiddleware verifies missing, malformed and foreign tokens are rejected.
func TestAuthMiddleware(t *testing.T) {
	s := newTestServer(t)
	for _, header := range []string{"", "Token abc", "Bearer not.a.jwt"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("Authorization %q status = %d, want 401", header, w.Code)
		}
	}

	other := service.NewAuthService(memory.NewUserRepository(), s.workouts, nil, "other-secret", time.Hour)
	other.Register(context.Background(), "Eve", "eve@example.com", "password123")
	token, _, err := other.Login(context.Background(), "eve@example.com", "password123")
	if err != nil {
		t.Fatal(err)
	}
	if w := s.do(t, http.MethodGet, "/api/v1/me", token, nil); w.Code != http.StatusUnauthorized {
		t.Errorf("foreign token status = %d, want 401", w.Code)
	}
}

// TestWorkoutEndpoints verifies the schedule API end to end.
func TestWorkoutEndpoints(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.login(t, "alex@example.com")

	w := s.do(t, http.MethodGet, "/api/v1/workouts/today", token, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("today (empty) status = %d, want 404", w.Code)
	}

	w = s.do(t, http.MethodPost, "/api/v1/workouts", token, gin.H{
		"name":            "Leg Day",
		"type":            "strength",
		"date":            testNow.Add(8 * time.Hour),
		"durationMinutes": 45,
		"exercises":       []gin.H{{"name": "Squats", "sets": 4, "reps": "8"}},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", w.Code, w.Body)
	}
	var created domain.WorkoutRecord
	json.Unmarshal(w.Body.Bytes(), &created)

	w = s.do(t, http.MethodGet, "/api/v1/workouts/today", token, nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Leg Day") {
		t.Errorf("today = %d %s", w.Code, w.Body)
	}
	w = s.do(t, http.MethodGet, "/api/v1/workouts/date/2025-03-12", token, nil)
	if w.Code != http.StatusOK {
		t.Errorf("date status = %d", w.Code)
	}
	w = s.do(t, http.MethodGet, "/api/v1/workouts/date/12-03-2025", token, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad date status = %d, want 400", w.Code)
	}
	w = s.do(t, http.MethodGet, "/api/v1/workouts/upcoming?days=3", token, nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), created.ID) {
		t.Errorf("upcoming = %d %s", w.Code, w.Body)
	}
	w = s.do(t, http.MethodGet, "/api/v1/workouts/upcoming?days=-1", token, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("negative days status = %d, want 400", w.Code)
	}

	if w = s.do(t, http.MethodPost, "/api/v1/workouts/nonexistent/cancel", token, nil); w.Code != http.StatusNotFound {
		t.Errorf("cancel unknown status = %d, want 404", w.Code)
	}
	if w = s.do(t, http.MethodPost, "/api/v1/workouts/"+created.ID+"/complete", token, nil); w.Code != http.StatusOK {
		t.Errorf("complete status = %d", w.Code)
	}
	if w = s.do(t, http.MethodPost, "/api/v1/workouts/"+created.ID+"/cancel", token, nil); w.Code != http.StatusOK {
		t.Errorf("cancel status = %d", w.Code)
	}
	if w = s.do(t, http.MethodGet, "/api/v1/workouts/today", token, nil); w.Code != http.StatusNotFound {
		t.Errorf("today after cancel status = %d, want 404", w.Code)
	}
	w = s.do(t, http.MethodPost, "/api/v1/workouts/"+created.ID+"/reschedule", token, gin.H{"date": testNow.AddDate(0, 0, 2)})
	if w.Code != http.StatusOK {
		t.Errorf("reschedule status = %d, body = %s", w.Code, w.Body)
	}
	if w = s.do(t, http.MethodGet, "/api/v1/workouts/date/2025-03-14", token, nil); w.Code != http.StatusOK {
		t.Errorf("rescheduled date status = %d", w.Code)
	}

	w = s.do(t, http.MethodGet, "/api/v1/workouts", token, nil)
	var list []domain.WorkoutRecord
	json.Unmarshal(w.Body.Bytes(), &list)
	if len(list) != 1 || !list[0].Completed || list[0].Canceled {
		t.Errorf("list = %+v", list)
	}
}

// TestAssistantEndpoints verifies messaging, history and reset.
func TestAssistantEndpoints(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.login(t, "alex@example.com")

	w := s.do(t, http.MethodPost, "/api/v1/assistant/messages", token, gin.H{"message": "what workout is scheduled today"})
	if w.Code != http.StatusOK {
		t.Fatalf("message status = %d, body = %s", w.Code, w.Body)
	}
	var resp SendMessageResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	want := "You don't have any workouts scheduled for today. Would you like me to help you schedule one?"
	if resp.Reply.Content != want || resp.Reply.Role != domain.RoleAssistant {
		t.Errorf("reply = %+v", resp.Reply)
	}
	if s.client.calls != 0 {
		t.Errorf("provider calls = %d, want 0", s.client.calls)
	}

	w = s.do(t, http.MethodPost, "/api/v1/assistant/messages", token, gin.H{"message": "how much water?"})
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Reply.Content != "Drink water." {
		t.Errorf("reply = %q", resp.Reply.Content)
	}

	w = s.do(t, http.MethodGet, "/api/v1/assistant/history", token, nil)
	var history struct {
		Turns []domain.ConversationTurn `json:"turns"`
	}
	json.Unmarshal(w.Body.Bytes(), &history)
	if len(history.Turns) != 4 {
		t.Errorf("len(turns) = %d, want 4", len(history.Turns))
	}
	for _, turn := range history.Turns {
		if turn.Role == domain.RoleSystem {
			t.Error("history exposes the system turn")
		}
	}

	if w = s.do(t, http.MethodDelete, "/api/v1/assistant/history", token, nil); w.Code != http.StatusNoContent {
		t.Errorf("reset status = %d", w.Code)
	}
	w = s.do(t, http.MethodGet, "/api/v1/assistant/history", token, nil)
	json.Unmarshal(w.Body.Bytes(), &history)
	if len(history.Turns) != 0 {
		t.Errorf("history after reset = %+v", history.Turns)
	}

	if w = s.do(t, http.MethodPost, "/api/v1/assistant/messages", token, gin.H{"message": ""}); w.Code != http.StatusBadRequest {
		t.Errorf("empty message status = %d, want 400", w.Code)
	}
	if w = s.do(t, http.MethodPost, "/api/v1/assistant/transcripts", token, nil); w.Code != http.StatusServiceUnavailable {
		t.Errorf("export status = %d, want 503", w.Code)
	}
}

// TestAssistantProviderErrors verifies quota failures still answer and other
// failures map to 502.
func TestAssistantProviderErrors(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.login(t, "alex@example.com")

	s.client.err = &llm.ProviderError{StatusCode: http.StatusTooManyRequests, Message: "You exceeded your current quota"}
	w := s.do(t, http.MethodPost, "/api/v1/assistant/messages", token, gin.H{"message": "tell me about protein"})
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "protein") {
		t.Errorf("quota = %d %s", w.Code, w.Body)
	}

	s.client.err = &llm.ProviderError{StatusCode: http.StatusInternalServerError, Message: "boom"}
	w = s.do(t, http.MethodPost, "/api/v1/assistant/messages", token, gin.H{"message": "hello"})
	if w.Code != http.StatusBadGateway {
		t.Errorf("provider error status = %d, want 502", w.Code)
	}
}

// TestProfileEndpoints verifies profiles are stored and validated.
func TestProfileEndpoints(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.login(t, "alex@example.com")

	w := s.do(t, http.MethodGet, "/api/v1/profile", token, nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"profile":null`) {
		t.Errorf("empty profile = %d %s", w.Code, w.Body)
	}

	profile := gin.H{
		"name":                   "Alex",
		"age":                    30,
		"weightKg":               70.5,
		"heightCm":               180,
		"fitnessLevel":           "intermediate",
		"fitnessGoals":           []string{"build muscle"},
		"preferredWorkoutDays":   []int{1, 3},
		"workoutDurationMinutes": 45,
	}
	if w = s.do(t, http.MethodPut, "/api/v1/profile", token, profile); w.Code != http.StatusOK {
		t.Fatalf("put profile status = %d, body = %s", w.Code, w.Body)
	}
	w = s.do(t, http.MethodGet, "/api/v1/profile", token, nil)
	if !strings.Contains(w.Body.String(), `"fitnessLevel":"intermediate"`) {
		t.Errorf("profile = %s", w.Body)
	}

	profile["fitnessLevel"] = "elite"
	if w = s.do(t, http.MethodPut, "/api/v1/profile", token, profile); w.Code != http.StatusBadRequest {
		t.Errorf("invalid profile status = %d, want 400", w.Code)
	}
}
