package skill

import (
	"context"
	"errors"
)

type Category string

const (
	CategoryProgramming Category = "programming"
	CategoryDesign      Category = "design"
	CategoryTools       Category = "tools"
	CategorySoft        Category = "soft"
)

// DefaultIcon is used when a skill is added without one.
const DefaultIcon = "code"

// Skill is keyed by its name: no two skills share a name. Level is an
// integer in [0,100]; clamping is the caller's job, the store keeps the
// value exactly as supplied.
type Skill struct {
	Name     string   `json:"name"`
	Level    int      `json:"level"`
	Category Category `json:"category"`
	Icon     string   `json:"icon"`
}

var (
	ErrNameRequired    = errors.New("skill name is required")
	ErrInvalidCategory = errors.New("invalid skill category")
)

func (s *Skill) Validate() error {
	if s.Name == "" {
		return ErrNameRequired
	}
	switch s.Category {
	case CategoryProgramming, CategoryDesign, CategoryTools, CategorySoft:
	default:
		return ErrInvalidCategory
	}
	return nil
}

// Update carries a partial skill edit. Nil fields are left untouched.
type Update struct {
	Name     *string
	Level    *int
	Category *Category
	Icon     *string
}

func (s *Skill) Apply(u Update) {
	if u.Name != nil {
		s.Name = *u.Name
	}
	if u.Level != nil {
		s.Level = *u.Level
	}
	if u.Category != nil {
		s.Category = *u.Category
	}
	if u.Icon != nil {
		s.Icon = *u.Icon
	}
}

// Repository is the remote backend contract for the skill collection.
// Update and Delete are keyed by the name the backend currently holds.
type Repository interface {
	FetchAll(ctx context.Context) ([]Skill, error)
	Create(ctx context.Context, s Skill) error
	Update(ctx context.Context, name string, s Skill) error
	Delete(ctx context.Context, name string) error
}
