package api

import (
	"context"
	"fmt"
	"net/url"
)

// UsersService talks to /users. Most operations need the admin role.
type UsersService struct {
	client *Client
}

// List returns users, optionally for one department.
func (s *UsersService) List(ctx context.Context, department string) (*Envelope[[]User], error) {
	q := url.Values{}
	setString(q, "department", department)

	var out Envelope[[]User]
	if err := s.client.Get(ctx, "/users", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Get returns one user.
func (s *UsersService) Get(ctx context.Context, id int) (*Envelope[User], error) {
	var out Envelope[User]
	if err := s.client.Get(ctx, fmt.Sprintf("/users/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create adds a user.
func (s *UsersService) Create(ctx context.Context, fields any) (*Envelope[User], error) {
	var out Envelope[User]
	if err := s.client.Post(ctx, "/users", fields, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update changes a user.
func (s *UsersService) Update(ctx context.Context, id int, fields any) (*Envelope[User], error) {
	var out Envelope[User]
	if err := s.client.Put(ctx, fmt.Sprintf("/users/%d", id), fields, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdatePassword resets a user's password.
func (s *UsersService) UpdatePassword(ctx context.Context, id int, change PasswordChange) (*Envelope[any], error) {
	var out Envelope[any]
	if err := s.client.Put(ctx, fmt.Sprintf("/users/%d/password", id), change, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a user.
func (s *UsersService) Delete(ctx context.Context, id int) (*Envelope[any], error) {
	var out Envelope[any]
	if err := s.client.Delete(ctx, fmt.Sprintf("/users/%d", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
