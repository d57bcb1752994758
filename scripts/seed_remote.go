package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/lamnguyen/folio/adapters/localstore"
	"github.com/lamnguyen/folio/adapters/persistence"
	"github.com/lamnguyen/folio/internal/config"
	"github.com/lamnguyen/folio/internal/domain/experience"
	"github.com/lamnguyen/folio/internal/domain/profile"
	"github.com/lamnguyen/folio/internal/domain/project"
	"github.com/lamnguyen/folio/internal/domain/skill"
	"github.com/lamnguyen/folio/pkg/logger"
)

// Pushes the contents of the local mirror to the remote backend. Run once
// when promoting a local-only deployment to a hosted one.
func main() {
	fmt.Println("seeding remote backend from local mirror...")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}
	if !cfg.RemoteConfigured() {
		log.Fatal("REMOTE_DSN is not set, nothing to seed")
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()

	mirror, err := localstore.Open(cfg.Local.Path, appLogger)
	if err != nil {
		log.Fatalf("cannot open local mirror: %v", err)
	}
	defer mirror.Close()

	pool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		log.Fatalf("cannot connect Postgres: %v", err)
	}
	defer pool.Close()

	ctx := context.Background()

	var p profile.Profile
	if loadKey(mirror, localstore.KeyProfile, &p) {
		repo := persistence.NewPostgresProfileRepo(pool, appLogger)
		if err := repo.Upsert(ctx, &p); err != nil {
			log.Fatalf("cannot seed profile: %v", err)
		}
		fmt.Println("seeded profile")
	}

	var skills []skill.Skill
	if loadKey(mirror, localstore.KeySkills, &skills) {
		repo := persistence.NewPostgresSkillRepo(pool, appLogger)
		for _, s := range skills {
			if err := repo.Create(ctx, s); err != nil {
				log.Fatalf("cannot seed skill '%s': %v", s.Name, err)
			}
		}
		fmt.Printf("seeded %d skills\n", len(skills))
	}

	var experiences []experience.Experience
	if loadKey(mirror, localstore.KeyExperiences, &experiences) {
		repo := persistence.NewPostgresExperienceRepo(pool, appLogger)
		// The mirror holds newest-first; insert oldest-first so created_at
		// preserves the ordering.
		for i := len(experiences) - 1; i >= 0; i-- {
			if err := repo.Create(ctx, experiences[i]); err != nil {
				log.Fatalf("cannot seed experience '%s': %v", experiences[i].Title, err)
			}
		}
		fmt.Printf("seeded %d experiences\n", len(experiences))
	}

	var projects []project.Project
	if loadKey(mirror, localstore.KeyProjects, &projects) {
		repo := persistence.NewPostgresProjectRepo(pool, appLogger)
		for _, pr := range projects {
			if err := repo.Create(ctx, pr); err != nil {
				log.Fatalf("cannot seed project '%s': %v", pr.Title, err)
			}
		}
		fmt.Printf("seeded %d projects\n", len(projects))
	}

	fmt.Println("done!")
}

func loadKey(mirror *localstore.Store, key string, out any) bool {
	data, ok, err := mirror.Load(key)
	if err != nil {
		log.Fatalf("cannot read local mirror key '%s': %v", key, err)
	}
	if !ok {
		fmt.Printf("key '%s' not in local mirror, skipping\n", key)
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		log.Fatalf("malformed local mirror entry '%s': %v", key, err)
	}
	return true
}
