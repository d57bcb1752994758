package experience

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

type Type string

const (
	TypeWork      Type = "work"
	TypeEducation Type = "education"
)

// Experience is one work or education entry. The id is assigned once at
// creation and never reassigned or reused.
type Experience struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Organization string    `json:"organization"`
	Location     string    `json:"location"`
	Period       string    `json:"period"`
	Description  []string  `json:"description"`
	Type         Type      `json:"type"`
}

var ErrInvalidType = errors.New("experience type must be work or education")

func (e *Experience) Validate() error {
	if e.Title == "" {
		return errors.New("experience title is required")
	}
	switch e.Type {
	case TypeWork, TypeEducation:
	default:
		return ErrInvalidType
	}
	return nil
}

// Update carries a partial experience edit. Nil fields are left untouched.
type Update struct {
	Title        *string
	Organization *string
	Location     *string
	Period       *string
	Description  []string
	Type         *Type
}

func (e *Experience) Apply(u Update) {
	if u.Title != nil {
		e.Title = *u.Title
	}
	if u.Organization != nil {
		e.Organization = *u.Organization
	}
	if u.Location != nil {
		e.Location = *u.Location
	}
	if u.Period != nil {
		e.Period = *u.Period
	}
	if u.Description != nil {
		e.Description = u.Description
	}
	if u.Type != nil {
		e.Type = *u.Type
	}
}

// Repository is the remote backend contract for the experience collection.
// The backend stores ids verbatim so they stay stable across devices.
type Repository interface {
	FetchAll(ctx context.Context) ([]Experience, error)
	Create(ctx context.Context, e Experience) error
	Update(ctx context.Context, id uuid.UUID, e Experience) error
	Delete(ctx context.Context, id uuid.UUID) error
}
