package project

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

type Category string

const (
	CategoryDesign      Category = "design"
	CategoryProgramming Category = "programming"
	CategoryUIUX        Category = "uiux"
)

// Project is one portfolio entry. The id is assigned once at creation and
// CreatedAt reflects the original creation time even across later edits.
type Project struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Category     Category  `json:"category"`
	Image        string    `json:"image"`
	Link         string    `json:"link"`
	LiveURL      string    `json:"live_url"`
	GithubURL    string    `json:"github_url"`
	Technologies []string  `json:"technologies"`
	CreatedAt    time.Time `json:"created_at"`
}

var ErrInvalidCategory = errors.New("project category must be design, programming, or uiux")

func (p *Project) Validate() error {
	if p.Title == "" {
		return errors.New("project title is required")
	}
	switch p.Category {
	case CategoryDesign, CategoryProgramming, CategoryUIUX:
	default:
		return ErrInvalidCategory
	}
	return nil
}

// Update carries a partial project edit. Nil fields are left untouched.
// ID and CreatedAt are immutable and deliberately absent.
type Update struct {
	Title        *string
	Description  *string
	Category     *Category
	Image        *string
	Link         *string
	LiveURL      *string
	GithubURL    *string
	Technologies []string
}

func (p *Project) Apply(u Update) {
	if u.Title != nil {
		p.Title = *u.Title
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.Category != nil {
		p.Category = *u.Category
	}
	if u.Image != nil {
		p.Image = *u.Image
	}
	if u.Link != nil {
		p.Link = *u.Link
	}
	if u.LiveURL != nil {
		p.LiveURL = *u.LiveURL
	}
	if u.GithubURL != nil {
		p.GithubURL = *u.GithubURL
	}
	if u.Technologies != nil {
		p.Technologies = u.Technologies
	}
}

// Repository is the remote backend contract for the project collection.
// FetchAll returns projects most-recent-first.
type Repository interface {
	FetchAll(ctx context.Context) ([]Project, error)
	Create(ctx context.Context, p Project) error
	Update(ctx context.Context, id uuid.UUID, p Project) error
	Delete(ctx context.Context, id uuid.UUID) error
}
