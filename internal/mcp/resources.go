package mcp

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"
)

func (h *handlers) todaysWorkout(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	store, ok := h.store(ctx)
	if !ok {
		return nil, errors.New(errUnauthenticated)
	}
	now := h.workouts.Now()

	w, err := store.GetByExactDate(ctx, now)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(map[string]any{
		"date":    now.Format("2006-01-02"),
		"workout": w,
	})
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
