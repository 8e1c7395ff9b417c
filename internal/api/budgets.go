package api

import (
	"context"
	"fmt"
	"net/url"
)

// BudgetsService talks to /budgets.
type BudgetsService struct {
	client *Client
}

// List returns budget lines, optionally for one project.
func (s *BudgetsService) List(ctx context.Context, filter BudgetFilter) (*Envelope[[]Budget], error) {
	var out Envelope[[]Budget]
	if err := s.client.Get(ctx, "/budgets", filter.values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Get returns one budget line.
func (s *BudgetsService) Get(ctx context.Context, id int) (*Envelope[Budget], error) {
	var out Envelope[Budget]
	if err := s.client.Get(ctx, fmt.Sprintf("/budgets/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create adds a budget line.
func (s *BudgetsService) Create(ctx context.Context, fields any) (*Envelope[Budget], error) {
	var out Envelope[Budget]
	if err := s.client.Post(ctx, "/budgets", fields, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update changes a budget line.
func (s *BudgetsService) Update(ctx context.Context, id int, fields any) (*Envelope[Budget], error) {
	var out Envelope[Budget]
	if err := s.client.Put(ctx, fmt.Sprintf("/budgets/%d", id), fields, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a budget line.
func (s *BudgetsService) Delete(ctx context.Context, id int) (*Envelope[any], error) {
	var out Envelope[any]
	if err := s.client.Delete(ctx, fmt.Sprintf("/budgets/%d", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddExecution records a spend against budget id.
func (s *BudgetsService) AddExecution(ctx context.Context, id int, exec Execution) (*Envelope[Execution], error) {
	var out Envelope[Execution]
	if err := s.client.Post(ctx, fmt.Sprintf("/budgets/%d/executions", id), exec, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Stats returns budget statistics. A zero year means the current year.
func (s *BudgetsService) Stats(ctx context.Context, year int) (*Envelope[BudgetStats], error) {
	q := url.Values{}
	setInt(q, "year", year)

	var out Envelope[BudgetStats]
	if err := s.client.Get(ctx, "/budgets/stats", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
