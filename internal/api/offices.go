package api

import (
	"context"
	"fmt"
)

// OfficesService talks to /offices.
type OfficesService struct {
	client *Client
}

// List returns overseas offices.
func (s *OfficesService) List(ctx context.Context, filter OfficeFilter) (*Envelope[[]Office], error) {
	var out Envelope[[]Office]
	if err := s.client.Get(ctx, "/offices", filter.values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Get returns one office.
func (s *OfficesService) Get(ctx context.Context, id int) (*Envelope[Office], error) {
	var out Envelope[Office]
	if err := s.client.Get(ctx, fmt.Sprintf("/offices/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create adds an office.
func (s *OfficesService) Create(ctx context.Context, fields any) (*Envelope[Office], error) {
	var out Envelope[Office]
	if err := s.client.Post(ctx, "/offices", fields, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update changes an office.
func (s *OfficesService) Update(ctx context.Context, id int, fields any) (*Envelope[Office], error) {
	var out Envelope[Office]
	if err := s.client.Put(ctx, fmt.Sprintf("/offices/%d", id), fields, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes an office.
func (s *OfficesService) Delete(ctx context.Context, id int) (*Envelope[any], error) {
	var out Envelope[any]
	if err := s.client.Delete(ctx, fmt.Sprintf("/offices/%d", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
