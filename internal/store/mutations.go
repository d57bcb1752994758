package store

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lamnguyen/folio/adapters/localstore"
	"github.com/lamnguyen/folio/internal/domain/experience"
	"github.com/lamnguyen/folio/internal/domain/profile"
	"github.com/lamnguyen/folio/internal/domain/project"
	"github.com/lamnguyen/folio/internal/domain/skill"
)

// Every mutation below follows the same shape: apply to memory under the
// lock, re-persist the affected collection to the mirror, then hand the
// remote equivalent to the outbound queue. Update and delete targeting an
// absent key are silent no-ops.

// AddSkill appends a skill. An empty icon gets the generic default.
func (s *Store) AddSkill(sk skill.Skill) {
	if sk.Icon == "" {
		sk.Icon = skill.DefaultIcon
	}

	s.mu.Lock()
	s.skills = append(s.skills, sk)
	s.persistLocked(localstore.KeySkills, s.skills)
	s.mu.Unlock()

	s.dispatch("skill", "create", sk.Name, func(ctx context.Context) error {
		return s.remote.Skills.Create(ctx, sk)
	})
}

// UpdateSkill shallow-merges u into the skill named name.
func (s *Store) UpdateSkill(name string, u skill.Update) {
	var merged skill.Skill
	found := false

	s.mu.Lock()
	for i := range s.skills {
		if s.skills[i].Name == name {
			s.skills[i].Apply(u)
			merged = s.skills[i]
			found = true
			break
		}
	}
	if found {
		s.persistLocked(localstore.KeySkills, s.skills)
	}
	s.mu.Unlock()

	if !found {
		return
	}
	s.dispatch("skill", "update", name, func(ctx context.Context) error {
		return s.remote.Skills.Update(ctx, name, merged)
	})
}

// DeleteSkill removes the skill named name.
func (s *Store) DeleteSkill(name string) {
	s.mu.Lock()
	before := len(s.skills)
	s.skills = slices.DeleteFunc(s.skills, func(sk skill.Skill) bool {
		return sk.Name == name
	})
	removed := len(s.skills) != before
	if removed {
		s.persistLocked(localstore.KeySkills, s.skills)
	}
	s.mu.Unlock()

	if !removed {
		return
	}
	s.dispatch("skill", "delete", name, func(ctx context.Context) error {
		return s.remote.Skills.Delete(ctx, name)
	})
}

// AddExperience assigns a fresh id and prepends the entry, and returns the
// stored copy. The id never changes afterwards.
func (s *Store) AddExperience(e experience.Experience) experience.Experience {
	e.ID = uuid.New()
	if e.Description == nil {
		e.Description = []string{}
	}

	s.mu.Lock()
	s.experiences = append([]experience.Experience{e}, s.experiences...)
	s.persistLocked(localstore.KeyExperiences, s.experiences)
	s.mu.Unlock()

	s.dispatch("experience", "create", e.ID.String(), func(ctx context.Context) error {
		return s.remote.Experiences.Create(ctx, e)
	})
	return e
}

// UpdateExperience shallow-merges u into the experience with the given id.
func (s *Store) UpdateExperience(id uuid.UUID, u experience.Update) {
	var merged experience.Experience
	found := false

	s.mu.Lock()
	for i := range s.experiences {
		if s.experiences[i].ID == id {
			s.experiences[i].Apply(u)
			merged = s.experiences[i]
			found = true
			break
		}
	}
	if found {
		s.persistLocked(localstore.KeyExperiences, s.experiences)
	}
	s.mu.Unlock()

	if !found {
		return
	}
	s.dispatch("experience", "update", id.String(), func(ctx context.Context) error {
		return s.remote.Experiences.Update(ctx, id, merged)
	})
}

func (s *Store) DeleteExperience(id uuid.UUID) {
	s.mu.Lock()
	before := len(s.experiences)
	s.experiences = slices.DeleteFunc(s.experiences, func(e experience.Experience) bool {
		return e.ID == id
	})
	removed := len(s.experiences) != before
	if removed {
		s.persistLocked(localstore.KeyExperiences, s.experiences)
	}
	s.mu.Unlock()

	if !removed {
		return
	}
	s.dispatch("experience", "delete", id.String(), func(ctx context.Context) error {
		return s.remote.Experiences.Delete(ctx, id)
	})
}

// AddProject assigns a fresh id and creation timestamp, prepends the entry
// (most-recent-first ordering), and returns the stored copy.
func (s *Store) AddProject(p project.Project) project.Project {
	p.ID = uuid.New()
	p.CreatedAt = time.Now().UTC()
	if p.Technologies == nil {
		p.Technologies = []string{}
	}

	s.mu.Lock()
	s.projects = append([]project.Project{p}, s.projects...)
	s.persistLocked(localstore.KeyProjects, s.projects)
	s.mu.Unlock()

	s.dispatch("project", "create", p.ID.String(), func(ctx context.Context) error {
		return s.remote.Projects.Create(ctx, p)
	})
	return p
}

// UpdateProject shallow-merges u into the project with the given id.
// CreatedAt keeps its original value.
func (s *Store) UpdateProject(id uuid.UUID, u project.Update) {
	var merged project.Project
	found := false

	s.mu.Lock()
	for i := range s.projects {
		if s.projects[i].ID == id {
			s.projects[i].Apply(u)
			merged = s.projects[i]
			found = true
			break
		}
	}
	if found {
		s.persistLocked(localstore.KeyProjects, s.projects)
	}
	s.mu.Unlock()

	if !found {
		return
	}
	s.dispatch("project", "update", id.String(), func(ctx context.Context) error {
		return s.remote.Projects.Update(ctx, id, merged)
	})
}

func (s *Store) DeleteProject(id uuid.UUID) {
	s.mu.Lock()
	before := len(s.projects)
	s.projects = slices.DeleteFunc(s.projects, func(p project.Project) bool {
		return p.ID == id
	})
	removed := len(s.projects) != before
	if removed {
		s.persistLocked(localstore.KeyProjects, s.projects)
	}
	s.mu.Unlock()

	if !removed {
		return
	}
	s.dispatch("project", "delete", id.String(), func(ctx context.Context) error {
		return s.remote.Projects.Delete(ctx, id)
	})
}

// UpdateProfile shallow-merges u into the profile. Inline data-URI images
// are uploaded first and replaced with the returned public URL; if the
// upload fails the inline data is kept as-is and the merge proceeds.
func (s *Store) UpdateProfile(ctx context.Context, u profile.Update) {
	u.ProfileImage = s.substituteInline(ctx, u.ProfileImage, "profile")
	u.LogoImage = s.substituteInline(ctx, u.LogoImage, "logo")

	var snapshot profile.Profile
	s.mu.Lock()
	s.profile.Apply(u)
	snapshot = s.profile
	snapshot.SocialLinks = slices.Clone(snapshot.SocialLinks)
	s.persistLocked(localstore.KeyProfile, s.profile)
	s.mu.Unlock()

	s.dispatch("profile", "update", "profile", func(ctx context.Context) error {
		return s.remote.Profile.Upsert(ctx, &snapshot)
	})
}

// UpdateProfileImage is a convenience path for UpdateProfile with only the
// profile image set.
func (s *Store) UpdateProfileImage(ctx context.Context, image string) {
	s.UpdateProfile(ctx, profile.Update{ProfileImage: &image})
}

// UpdateSocialLink upserts the link for platform: the existing entry is
// edited in place, or a new one is appended when the platform is absent.
func (s *Store) UpdateSocialLink(ctx context.Context, platform string, u profile.LinkUpdate) {
	var snapshot profile.Profile
	s.mu.Lock()
	s.profile.UpsertSocialLink(platform, u)
	snapshot = s.profile
	snapshot.SocialLinks = slices.Clone(snapshot.SocialLinks)
	s.persistLocked(localstore.KeyProfile, s.profile)
	s.mu.Unlock()

	s.dispatch("profile", "update", platform, func(ctx context.Context) error {
		return s.remote.Profile.Upsert(ctx, &snapshot)
	})
}

func isInlineImage(v string) bool {
	return strings.HasPrefix(v, "data:")
}
