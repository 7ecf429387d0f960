package assistant

import (
	"context"
	"errors"
	"sync"
	"time"

	"alcyxob/fitness-assistant/internal/domain"
	"alcyxob/fitness-assistant/internal/llm"
)

// fixedNow is a Wednesday.
var fixedNow = time.Date(2025, time.March, 12, 9, 30, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

type fakeSchedule struct {
	records  []domain.WorkoutRecord
	canceled []string
	err      error
}

func (f *fakeSchedule) GetByExactDate(ctx context.Context, date time.Time) (*domain.WorkoutRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.records {
		if !f.records[i].Canceled && domain.SameDay(date, f.records[i].Date) {
			w := f.records[i]
			return &w, nil
		}
	}
	return nil, nil
}

func (f *fakeSchedule) GetUpcoming(ctx context.Context, windowDays int) ([]domain.WorkoutRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	end := fixedNow.AddDate(0, 0, windowDays)
	var out []domain.WorkoutRecord
	for _, w := range f.records {
		if w.Canceled || w.Date.Before(fixedNow) || w.Date.After(end) {
			continue
		}
		out = append(out, w)
	}
	return out, nil
}

func (f *fakeSchedule) Cancel(ctx context.Context, id string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	for i := range f.records {
		if f.records[i].ID == id {
			f.records[i].Canceled = true
			f.canceled = append(f.canceled, id)
			return true, nil
		}
	}
	return false, nil
}

func legDay(date time.Time) domain.WorkoutRecord {
	return domain.WorkoutRecord{
		ID:              "w-leg",
		Date:            date,
		Name:            "Leg Day",
		Type:            "strength",
		DurationMinutes: 45,
		Exercises: []domain.ExerciseSpec{
			{Name: "Squats", Sets: 4, Reps: "8", Weight: "80kg"},
			{Name: "Lunges", Sets: 3, Reps: "10"},
			{Name: "Calf Raises", Sets: 3, Reps: "15"},
		},
	}
}

type fakeClient struct {
	mu       sync.Mutex
	calls    int
	requests []llm.ChatRequest
	reply    string
	err      error
	block    bool
}

func (c *fakeClient) Chat(ctx context.Context, req llm.ChatRequest) (llm.ChatResponse, error) {
	c.mu.Lock()
	c.calls++
	c.requests = append(c.requests, req)
	c.mu.Unlock()
	if c.block {
		<-ctx.Done()
		return llm.ChatResponse{}, &llm.ProviderError{Message: "request failed: " + ctx.Err().Error(), Err: ctx.Err()}
	}
	if c.err != nil {
		return llm.ChatResponse{}, c.err
	}
	return llm.ChatResponse{Message: llm.Message{Role: "assistant", Content: c.reply}}, nil
}

func (c *fakeClient) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

var errStoreDown = errors.New("store down")
