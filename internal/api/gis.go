package api

import (
	"context"
	"fmt"
)

// GISService talks to /gis.
type GISService struct {
	client *Client
}

// Projects returns map markers.
func (s *GISService) Projects(ctx context.Context, filter GISFilter) (*Envelope[[]GISProject], error) {
	var out Envelope[[]GISProject]
	if err := s.client.Get(ctx, "/gis/projects", filter.values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Stats returns map statistics.
func (s *GISService) Stats(ctx context.Context) (*Envelope[GISStats], error) {
	var out Envelope[GISStats]
	if err := s.client.Get(ctx, "/gis/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateLocation sets the coordinates of a project.
func (s *GISService) UpdateLocation(ctx context.Context, projectID int, latitude, longitude float64) (*Envelope[Location], error) {
	body := Location{Latitude: &latitude, Longitude: &longitude}

	var out Envelope[Location]
	if err := s.client.Put(ctx, fmt.Sprintf("/gis/projects/%d/location", projectID), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
