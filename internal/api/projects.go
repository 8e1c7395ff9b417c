package api

import (
	"context"
	"fmt"
	"net/url"
)

// ProjectsService talks to /projects.
type ProjectsService struct {
	client *Client
}

// List returns one page of projects.
func (s *ProjectsService) List(ctx context.Context, filter ProjectFilter) (*Envelope[[]Project], error) {
	var out Envelope[[]Project]
	if err := s.client.Get(ctx, "/projects", filter.values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Get returns a project with its details.
func (s *ProjectsService) Get(ctx context.Context, id int) (*Envelope[Project], error) {
	var out Envelope[Project]
	if err := s.client.Get(ctx, fmt.Sprintf("/projects/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create creates a project from fields.
func (s *ProjectsService) Create(ctx context.Context, fields any) (*Envelope[Project], error) {
	var out Envelope[Project]
	if err := s.client.Post(ctx, "/projects", fields, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update changes the given fields of a project.
func (s *ProjectsService) Update(ctx context.Context, id int, fields any) (*Envelope[Project], error) {
	var out Envelope[Project]
	if err := s.client.Put(ctx, fmt.Sprintf("/projects/%d", id), fields, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a project.
func (s *ProjectsService) Delete(ctx context.Context, id int) (*Envelope[any], error) {
	var out Envelope[any]
	if err := s.client.Delete(ctx, fmt.Sprintf("/projects/%d", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Stats returns project statistics. A zero year means the current year.
func (s *ProjectsService) Stats(ctx context.Context, year int) (*Envelope[ProjectStats], error) {
	q := url.Values{}
	setInt(q, "year", year)

	var out Envelope[ProjectStats]
	if err := s.client.Get(ctx, "/projects/stats", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ByType lists projects of one type.
func (s *ProjectsService) ByType(ctx context.Context, projectType string) (*Envelope[[]Project], error) {
	return s.List(ctx, ProjectFilter{Type: projectType})
}

// ByDepartment lists projects of one department.
func (s *ProjectsService) ByDepartment(ctx context.Context, department string) (*Envelope[[]Project], error) {
	return s.List(ctx, ProjectFilter{Department: department})
}
