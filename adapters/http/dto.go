package http

import (
	"time"

	"github.com/lamnguyen/folio/internal/domain/experience"
	"github.com/lamnguyen/folio/internal/domain/profile"
	"github.com/lamnguyen/folio/internal/domain/project"
	"github.com/lamnguyen/folio/internal/domain/skill"
)

// Profile DTOs

type SocialLinkDTO struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
	Icon     string `json:"icon"`
}

type ProfileDTO struct {
	Name         string          `json:"name"`
	Title        string          `json:"title"`
	Tagline      string          `json:"tagline"`
	Email        string          `json:"email"`
	Phone        string          `json:"phone"`
	Location     string          `json:"location"`
	Bio          string          `json:"bio"`
	ProfileImage string          `json:"profile_image"`
	LogoImage    string          `json:"logo_image"`
	SocialLinks  []SocialLinkDTO `json:"social_links"`
}

func ToProfileDTO(p profile.Profile) ProfileDTO {
	dto := ProfileDTO{
		Name:         p.Name,
		Title:        p.Title,
		Tagline:      p.Tagline,
		Email:        p.Email,
		Phone:        p.Phone,
		Location:     p.Location,
		Bio:          p.Bio,
		ProfileImage: p.ProfileImage,
		LogoImage:    p.LogoImage,
	}
	dto.SocialLinks = make([]SocialLinkDTO, len(p.SocialLinks))
	for i, l := range p.SocialLinks {
		dto.SocialLinks[i] = SocialLinkDTO{Platform: l.Platform, URL: l.URL, Icon: l.Icon}
	}
	return dto
}

// UpdateProfileRequest is a partial edit; absent fields stay untouched.
type UpdateProfileRequest struct {
	Name         *string         `json:"name"`
	Title        *string         `json:"title"`
	Tagline      *string         `json:"tagline"`
	Email        *string         `json:"email"`
	Phone        *string         `json:"phone"`
	Location     *string         `json:"location"`
	Bio          *string         `json:"bio"`
	ProfileImage *string         `json:"profile_image"`
	LogoImage    *string         `json:"logo_image"`
	SocialLinks  []SocialLinkDTO `json:"social_links"`
}

func (req *UpdateProfileRequest) ToDomainUpdate() profile.Update {
	u := profile.Update{
		Name:         req.Name,
		Title:        req.Title,
		Tagline:      req.Tagline,
		Email:        req.Email,
		Phone:        req.Phone,
		Location:     req.Location,
		Bio:          req.Bio,
		ProfileImage: req.ProfileImage,
		LogoImage:    req.LogoImage,
	}
	if req.SocialLinks != nil {
		u.SocialLinks = make([]profile.SocialLink, len(req.SocialLinks))
		for i, l := range req.SocialLinks {
			u.SocialLinks[i] = profile.SocialLink{Platform: l.Platform, URL: l.URL, Icon: l.Icon}
		}
	}
	return u
}

type UpdateProfileImageRequest struct {
	Image string `json:"image" binding:"required"`
}

type UpdateSocialLinkRequest struct {
	URL  *string `json:"url"`
	Icon *string `json:"icon"`
}

// Skill DTOs

type SkillDTO struct {
	Name     string `json:"name"`
	Level    int    `json:"level"`
	Category string `json:"category"`
	Icon     string `json:"icon"`
}

func ToSkillDTOs(skills []skill.Skill) []SkillDTO {
	dtos := make([]SkillDTO, len(skills))
	for i, s := range skills {
		dtos[i] = SkillDTO{Name: s.Name, Level: s.Level, Category: string(s.Category), Icon: s.Icon}
	}
	return dtos
}

type AddSkillRequest struct {
	Name     string `json:"name" binding:"required"`
	Level    int    `json:"level" binding:"gte=0,lte=100"`
	Category string `json:"category" binding:"required,oneof=programming design tools soft"`
	Icon     string `json:"icon"`
}

type UpdateSkillRequest struct {
	Name     *string `json:"name"`
	Level    *int    `json:"level" binding:"omitempty,gte=0,lte=100"`
	Category *string `json:"category" binding:"omitempty,oneof=programming design tools soft"`
	Icon     *string `json:"icon"`
}

func (req *UpdateSkillRequest) ToDomainUpdate() skill.Update {
	u := skill.Update{
		Name:  req.Name,
		Level: req.Level,
		Icon:  req.Icon,
	}
	if req.Category != nil {
		c := skill.Category(*req.Category)
		u.Category = &c
	}
	return u
}

// Experience DTOs

type ExperienceDTO struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Organization string   `json:"organization"`
	Location     string   `json:"location"`
	Period       string   `json:"period"`
	Description  []string `json:"description"`
	Type         string   `json:"type"`
}

func ToExperienceDTOs(experiences []experience.Experience) []ExperienceDTO {
	dtos := make([]ExperienceDTO, len(experiences))
	for i, e := range experiences {
		dtos[i] = ExperienceDTO{
			ID:           e.ID.String(),
			Title:        e.Title,
			Organization: e.Organization,
			Location:     e.Location,
			Period:       e.Period,
			Description:  e.Description,
			Type:         string(e.Type),
		}
	}
	return dtos
}

type AddExperienceRequest struct {
	Title        string   `json:"title" binding:"required"`
	Organization string   `json:"organization"`
	Location     string   `json:"location"`
	Period       string   `json:"period"`
	Description  []string `json:"description"`
	Type         string   `json:"type" binding:"required,oneof=work education"`
}

type UpdateExperienceRequest struct {
	Title        *string  `json:"title"`
	Organization *string  `json:"organization"`
	Location     *string  `json:"location"`
	Period       *string  `json:"period"`
	Description  []string `json:"description"`
	Type         *string  `json:"type" binding:"omitempty,oneof=work education"`
}

func (req *UpdateExperienceRequest) ToDomainUpdate() experience.Update {
	u := experience.Update{
		Title:        req.Title,
		Organization: req.Organization,
		Location:     req.Location,
		Period:       req.Period,
		Description:  req.Description,
	}
	if req.Type != nil {
		t := experience.Type(*req.Type)
		u.Type = &t
	}
	return u
}

// Project DTOs

type ProjectDTO struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	Image        string    `json:"image"`
	Link         string    `json:"link"`
	LiveURL      string    `json:"live_url"`
	GithubURL    string    `json:"github_url"`
	Technologies []string  `json:"technologies"`
	CreatedAt    time.Time `json:"created_at"`
}

func ToProjectDTO(p project.Project) ProjectDTO {
	return ProjectDTO{
		ID:           p.ID.String(),
		Title:        p.Title,
		Description:  p.Description,
		Category:     string(p.Category),
		Image:        p.Image,
		Link:         p.Link,
		LiveURL:      p.LiveURL,
		GithubURL:    p.GithubURL,
		Technologies: p.Technologies,
		CreatedAt:    p.CreatedAt,
	}
}

func ToProjectDTOs(projects []project.Project) []ProjectDTO {
	dtos := make([]ProjectDTO, len(projects))
	for i, p := range projects {
		dtos[i] = ToProjectDTO(p)
	}
	return dtos
}

type AddProjectRequest struct {
	Title        string   `json:"title" binding:"required"`
	Description  string   `json:"description"`
	Category     string   `json:"category" binding:"required,oneof=design programming uiux"`
	Image        string   `json:"image"`
	Link         string   `json:"link"`
	LiveURL      string   `json:"live_url"`
	GithubURL    string   `json:"github_url"`
	Technologies []string `json:"technologies"`
}

type UpdateProjectRequest struct {
	Title        *string  `json:"title"`
	Description  *string  `json:"description"`
	Category     *string  `json:"category" binding:"omitempty,oneof=design programming uiux"`
	Image        *string  `json:"image"`
	Link         *string  `json:"link"`
	LiveURL      *string  `json:"live_url"`
	GithubURL    *string  `json:"github_url"`
	Technologies []string `json:"technologies"`
}

func (req *UpdateProjectRequest) ToDomainUpdate() project.Update {
	u := project.Update{
		Title:        req.Title,
		Description:  req.Description,
		Image:        req.Image,
		Link:         req.Link,
		LiveURL:      req.LiveURL,
		GithubURL:    req.GithubURL,
		Technologies: req.Technologies,
	}
	if req.Category != nil {
		c := project.Category(*req.Category)
		u.Category = &c
	}
	return u
}

// Auth DTOs

type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}
