package store

import (
	"time"

	"github.com/google/uuid"

	"github.com/lamnguyen/folio/internal/domain/experience"
	"github.com/lamnguyen/folio/internal/domain/profile"
	"github.com/lamnguyen/folio/internal/domain/project"
	"github.com/lamnguyen/folio/internal/domain/skill"
)

// Compiled-in defaults, used when neither the local mirror nor a remote
// backend has data. They make a fresh deployment render something sensible
// until the owner edits their own content.

func defaultProfile() profile.Profile {
	return profile.Profile{
		Name:     "Your Name",
		Title:    "Software Engineer & Designer",
		Tagline:  "Building things that matter",
		Email:    "hello@example.com",
		Location: "Somewhere, Earth",
		Bio:      "Edit this bio from admin mode to introduce yourself.",
		SocialLinks: []profile.SocialLink{
			{Platform: "GitHub", URL: "https://github.com", Icon: "github"},
			{Platform: "LinkedIn", URL: "https://linkedin.com", Icon: "linkedin"},
		},
	}
}

func defaultSkills() []skill.Skill {
	return []skill.Skill{
		{Name: "Go", Level: 80, Category: skill.CategoryProgramming, Icon: "code"},
		{Name: "TypeScript", Level: 70, Category: skill.CategoryProgramming, Icon: "code"},
		{Name: "UI Design", Level: 75, Category: skill.CategoryDesign, Icon: "pen-tool"},
		{Name: "Git", Level: 80, Category: skill.CategoryTools, Icon: "git-branch"},
		{Name: "Communication", Level: 85, Category: skill.CategorySoft, Icon: "message-circle"},
	}
}

func defaultExperiences() []experience.Experience {
	return []experience.Experience{
		{
			ID:           uuid.New(),
			Title:        "Your Most Recent Role",
			Organization: "A Company",
			Location:     "Remote",
			Period:       "2023 - Present",
			Description: []string{
				"Describe what you did here from admin mode",
			},
			Type: experience.TypeWork,
		},
		{
			ID:           uuid.New(),
			Title:        "Your Degree",
			Organization: "A University",
			Location:     "Somewhere",
			Period:       "2019 - 2023",
			Description: []string{
				"Describe your studies here",
			},
			Type: experience.TypeEducation,
		},
	}
}

func defaultProjects() []project.Project {
	return []project.Project{
		{
			ID:           uuid.New(),
			Title:        "Sample Project",
			Description:  "Replace this with your own work from admin mode.",
			Category:     project.CategoryProgramming,
			Technologies: []string{"Go"},
			CreatedAt:    time.Now().UTC(),
		},
	}
}
