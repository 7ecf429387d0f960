// Package seed loads workout fixtures and schedules them for a user.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"time"

	"alcyxob/fitness-assistant/internal/domain"
	"alcyxob/fitness-assistant/internal/repository"

	"gopkg.in/yaml.v3"
)

//go:embed sample.yaml
var samplePlan []byte

// Plan is a set of workouts positioned relative to a start day.
type Plan struct {
	Workouts []Workout `yaml:"workouts"`
}

type Workout struct {
	DayOffset       int        `yaml:"day_offset"`
	Hour            int        `yaml:"hour"`
	Name            string     `yaml:"name"`
	Type            string     `yaml:"type"`
	DurationMinutes int        `yaml:"duration_minutes"`
	Exercises       []Exercise `yaml:"exercises"`
}

type Exercise struct {
	Name            string `yaml:"name"`
	Sets            int    `yaml:"sets"`
	Reps            string `yaml:"reps"`
	Weight          string `yaml:"weight"`
	DurationSeconds *int   `yaml:"duration_seconds"`
	RestSeconds     *int   `yaml:"rest_seconds"`
}

// Sample returns the built-in plan.
func Sample() (*Plan, error) {
	return Parse(samplePlan)
}

// Load reads a plan from path, or the built-in plan when path is empty.
func Load(path string) (*Plan, error) {
	if path == "" {
		return Sample()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML plan.
func Parse(data []byte) (*Plan, error) {
	var p Plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing seed file: %w", err)
	}
	for i, w := range p.Workouts {
		if w.Name == "" {
			return nil, fmt.Errorf("seed workout %d: name is required", i)
		}
		if w.Hour < 0 || w.Hour > 23 {
			return nil, fmt.Errorf("seed workout %q: hour %d out of range", w.Name, w.Hour)
		}
	}
	return &p, nil
}

// Records materializes the plan for userID starting on the calendar day of start.
func (p *Plan) Records(userID string, start time.Time) []domain.WorkoutRecord {
	day := domain.StartOfDay(start)
	out := make([]domain.WorkoutRecord, 0, len(p.Workouts))
	for _, w := range p.Workouts {
		exercises := make([]domain.ExerciseSpec, 0, len(w.Exercises))
		for _, e := range w.Exercises {
			exercises = append(exercises, domain.ExerciseSpec{
				Name:            e.Name,
				Sets:            e.Sets,
				Reps:            e.Reps,
				Weight:          e.Weight,
				DurationSeconds: e.DurationSeconds,
				RestSeconds:     e.RestSeconds,
			})
		}
		out = append(out, domain.WorkoutRecord{
			UserID:          userID,
			Date:            day.AddDate(0, 0, w.DayOffset).Add(time.Duration(w.Hour) * time.Hour),
			Name:            w.Name,
			Type:            w.Type,
			DurationMinutes: w.DurationMinutes,
			Exercises:       exercises,
		})
	}
	return out
}

// Apply stores the plan for userID and returns how many records were created.
func (p *Plan) Apply(ctx context.Context, repo repository.WorkoutRepository, userID string, start time.Time) (int, error) {
	n := 0
	for _, rec := range p.Records(userID, start) {
		if _, err := repo.Create(ctx, &rec); err != nil {
			return n, fmt.Errorf("seeding %q: %w", rec.Name, err)
		}
		n++
	}
	return n, nil
}
