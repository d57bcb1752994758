// Package store holds the single authoritative in-memory copy of the
// portfolio: profile, skills, experiences, projects, and the admin
// credential. It is the only component allowed to mutate that state.
//
// Mutations are optimistic: they apply to memory first, are mirrored to the
// local store synchronously, and are pushed to the remote backend through an
// outbound queue drained by a background goroutine. Local always wins
// immediately; a remote failure is logged and surfaced as a notification but
// never rolls the local change back.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/lamnguyen/folio/adapters/event"
	"github.com/lamnguyen/folio/adapters/localstore"
	"github.com/lamnguyen/folio/internal/application/service"
	"github.com/lamnguyen/folio/internal/domain/admin"
	"github.com/lamnguyen/folio/internal/domain/experience"
	"github.com/lamnguyen/folio/internal/domain/profile"
	"github.com/lamnguyen/folio/internal/domain/project"
	"github.com/lamnguyen/folio/internal/domain/skill"
	"github.com/lamnguyen/folio/pkg/apperror"
	"github.com/lamnguyen/folio/pkg/auth"
	"github.com/lamnguyen/folio/pkg/logger"
)

var tracer = otel.Tracer("portfolio_store")

// Mirror is the durable local key-value store behind the portfolio state.
type Mirror interface {
	Load(key string) ([]byte, bool, error)
	Save(key string, value []byte) error
}

// Publisher emits one change event per mutation, best-effort.
type Publisher interface {
	Publish(ctx context.Context, payload event.PortfolioEventPayload) error
}

// Remote groups the per-entity repositories of the hosted backend. A nil
// Remote means pure local operation.
type Remote struct {
	Profile     profile.Repository
	Skills      skill.Repository
	Experiences experience.Repository
	Projects    project.Repository
}

type Options struct {
	Mirror   Mirror
	Remote   *Remote
	Uploader service.Uploader
	Events   Publisher
	Logger   logger.Logger

	// Notifier receives non-fatal user-facing messages (failed syncs,
	// failed uploads). Defaults to a log line.
	Notifier func(msg string)

	// DefaultPassword seeds the credential when the mirror has none yet.
	// It is hashed before it is stored.
	DefaultPassword string

	QueueSize int
}

type Store struct {
	mu          sync.RWMutex
	profile     profile.Profile
	skills      []skill.Skill
	experiences []experience.Experience
	projects    []project.Project

	passwordHash string
	session      admin.Session

	loading atomic.Bool
	synced  atomic.Bool

	mirror   Mirror
	remote   *Remote
	uploader service.Uploader
	events   Publisher
	notify   func(string)
	logger   logger.Logger

	defaultPassword string

	queue  chan outbound
	closed atomic.Bool
	wg     sync.WaitGroup
}

func New(opts Options) (*Store, error) {
	if opts.Mirror == nil {
		return nil, fmt.Errorf("store: a local mirror is required")
	}
	if opts.Logger == nil {
		opts.Logger = logger.NewNop()
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = 128
	}

	s := &Store{
		mirror:          opts.Mirror,
		remote:          opts.Remote,
		uploader:        opts.Uploader,
		events:          opts.Events,
		logger:          opts.Logger,
		defaultPassword: opts.DefaultPassword,
		queue:           make(chan outbound, opts.QueueSize),
	}
	if opts.Notifier != nil {
		s.notify = opts.Notifier
	} else {
		s.notify = func(msg string) { s.logger.Warn(msg) }
	}
	s.loading.Store(true)

	s.wg.Add(1)
	go s.runSyncer()

	return s, nil
}

// Initialize seeds the in-memory state from the local mirror synchronously,
// then kicks off the remote load in the background. The caller can render
// immediately; IsLoading flips to false once the remote attempt settles or
// is skipped, and IsSynced is true only after a successful remote load.
func (s *Store) Initialize(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "Initialize")
	defer span.End()

	s.mu.Lock()
	s.profile = loadOr(s, localstore.KeyProfile, defaultProfile())
	s.skills = loadOr(s, localstore.KeySkills, defaultSkills())
	s.experiences = loadOr(s, localstore.KeyExperiences, defaultExperiences())
	s.projects = loadOr(s, localstore.KeyProjects, defaultProjects())
	s.session = admin.NewSession(loadOr(s, localstore.KeyAdmin, false))

	hash := loadOr(s, localstore.KeyPassword, "")
	if hash == "" {
		var err error
		hash, err = auth.HashPassword(s.defaultPassword)
		if err != nil {
			s.mu.Unlock()
			return fmt.Errorf("cannot seed admin credential: %w", err)
		}
		s.persistLocked(localstore.KeyPassword, hash)
	}
	s.passwordHash = hash
	s.mu.Unlock()

	if s.remote == nil {
		span.SetAttributes(attribute.Bool("remote_configured", false))
		s.loading.Store(false)
		return nil
	}

	go s.loadFromRemote(context.WithoutCancel(ctx))
	return nil
}

// loadFromRemote replaces the in-memory collections with the backend's data
// and re-persists them locally. Empty remote collections never clobber
// local data.
func (s *Store) loadFromRemote(ctx context.Context) {
	defer s.loading.Store(false)

	ctx, span := tracer.Start(ctx, "loadFromRemote")
	defer span.End()

	remoteProfile, err := s.remote.Profile.Fetch(ctx)
	if err != nil && !apperror.IsNotFound(err) {
		s.remoteLoadFailed(err)
		return
	}
	remoteSkills, err := s.remote.Skills.FetchAll(ctx)
	if err != nil {
		s.remoteLoadFailed(err)
		return
	}
	remoteExperiences, err := s.remote.Experiences.FetchAll(ctx)
	if err != nil {
		s.remoteLoadFailed(err)
		return
	}
	remoteProjects, err := s.remote.Projects.FetchAll(ctx)
	if err != nil {
		s.remoteLoadFailed(err)
		return
	}

	s.mu.Lock()
	if remoteProfile != nil {
		s.profile = *remoteProfile
		s.persistLocked(localstore.KeyProfile, s.profile)
	}
	if len(remoteSkills) > 0 {
		s.skills = remoteSkills
		s.persistLocked(localstore.KeySkills, s.skills)
	}
	if len(remoteExperiences) > 0 {
		s.experiences = remoteExperiences
		s.persistLocked(localstore.KeyExperiences, s.experiences)
	}
	if len(remoteProjects) > 0 {
		s.projects = remoteProjects
		s.persistLocked(localstore.KeyProjects, s.projects)
	}
	s.mu.Unlock()

	s.synced.Store(true)
	s.logger.Info("Loaded portfolio from remote backend",
		zap.Int("skills", len(remoteSkills)),
		zap.Int("experiences", len(remoteExperiences)),
		zap.Int("projects", len(remoteProjects)),
	)
}

func (s *Store) remoteLoadFailed(err error) {
	s.logger.Error("Remote load failed, keeping local data", err)
	s.notify("Could not reach the backend. Working from the local copy.")
}

func (s *Store) IsLoading() bool { return s.loading.Load() }
func (s *Store) IsSynced() bool  { return s.synced.Load() }

func (s *Store) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.LoggedIn()
}

// Login flips the session to authenticated iff password matches the stored
// credential. Any number of attempts is allowed; a failure changes nothing.
func (s *Store) Login(password string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !auth.CheckPasswordHash(password, s.passwordHash) {
		return false
	}
	s.session.LogIn()
	s.persistLocked(localstore.KeyAdmin, true)
	return true
}

// VerifyPassword reports whether password matches the stored credential
// without touching the session. The presentation layer uses it to demand
// re-entry of the current password before a change.
func (s *Store) VerifyPassword(password string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return auth.CheckPasswordHash(password, s.passwordHash)
}

// Logout unconditionally clears the authenticated flag.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.LogOut()
	s.persistLocked(localstore.KeyAdmin, false)
}

// ChangePassword overwrites the stored credential unconditionally. Requiring
// re-entry of the current password is the presentation layer's job.
func (s *Store) ChangePassword(newPassword string) error {
	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("cannot hash new password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.passwordHash = hash
	s.persistLocked(localstore.KeyPassword, hash)
	return nil
}

// Profile returns a copy of the current profile.
func (s *Store) Profile() profile.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p := s.profile
	p.SocialLinks = slices.Clone(p.SocialLinks)
	return p
}

// Skills returns a copy of the skill collection.
func (s *Store) Skills() []skill.Skill {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.skills)
}

// Experiences returns a copy of the experience collection, newest first.
func (s *Store) Experiences() []experience.Experience {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.experiences)
}

// Projects returns a copy of the project collection, newest first.
func (s *Store) Projects() []project.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.projects)
}

// persistLocked writes one state piece to the mirror. Failures are reported
// but never fail the mutation that caused them: memory stays authoritative.
func (s *Store) persistLocked(key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("Cannot encode state for local mirror", err, zap.String("key", key))
		return
	}
	if err := s.mirror.Save(key, data); err != nil {
		s.logger.Error("Cannot write local mirror", err, zap.String("key", key))
		s.notify("Could not save changes to local storage.")
	}
}

// loadOr reads one mirrored value, falling back to the compiled-in default
// when the key is absent or its payload does not decode.
func loadOr[T any](s *Store, key string, fallback T) T {
	data, ok, err := s.mirror.Load(key)
	if err != nil {
		s.logger.Error("Cannot read local mirror", err, zap.String("key", key))
		return fallback
	}
	if !ok {
		return fallback
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		s.logger.Warn("Malformed local mirror entry, using defaults", zap.String("key", key), zap.Error(err))
		return fallback
	}
	return v
}
