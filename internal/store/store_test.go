package store

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"image"
	"image/png"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lamnguyen/folio/adapters/event"
	"github.com/lamnguyen/folio/adapters/localstore"
	"github.com/lamnguyen/folio/internal/domain/experience"
	"github.com/lamnguyen/folio/internal/domain/profile"
	"github.com/lamnguyen/folio/internal/domain/project"
	"github.com/lamnguyen/folio/internal/domain/skill"
	"github.com/lamnguyen/folio/pkg/apperror"
	"github.com/lamnguyen/folio/pkg/auth"
)

// memMirror is an in-memory Mirror for tests.
type memMirror struct {
	mu      sync.Mutex
	data    map[string][]byte
	saveErr error
}

func newMemMirror() *memMirror {
	return &memMirror{data: map[string][]byte{}}
}

func (m *memMirror) Load(key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.data[key]
	return data, ok, nil
}

func (m *memMirror) Save(key string, value []byte) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memMirror) get(t *testing.T, key string, out any) {
	t.Helper()
	m.mu.Lock()
	data, ok := m.data[key]
	m.mu.Unlock()
	require.True(t, ok, "mirror key %s not written", key)
	require.NoError(t, json.Unmarshal(data, out))
}

// fakeRemote backs all four repository fakes with one recorder.
type fakeRemote struct {
	mu          sync.Mutex
	profile     *profile.Profile
	skills      []skill.Skill
	experiences []experience.Experience
	projects    []project.Project

	fetchErr error
	writeErr error
	onWrite  func()

	calls []string
}

func (f *fakeRemote) write(call string) error {
	if f.onWrite != nil {
		f.onWrite()
	}
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
	return f.writeErr
}

func (f *fakeRemote) callLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeRemote) remote() *Remote {
	return &Remote{
		Profile:     fakeProfileRepo{f},
		Skills:      fakeSkillRepo{f},
		Experiences: fakeExperienceRepo{f},
		Projects:    fakeProjectRepo{f},
	}
}

type fakeProfileRepo struct{ f *fakeRemote }

func (r fakeProfileRepo) Fetch(ctx context.Context) (*profile.Profile, error) {
	if r.f.fetchErr != nil {
		return nil, r.f.fetchErr
	}
	if r.f.profile == nil {
		return nil, apperror.NewNotFound("profile", "1")
	}
	p := *r.f.profile
	return &p, nil
}

func (r fakeProfileRepo) Upsert(ctx context.Context, p *profile.Profile) error {
	return r.f.write("profile.upsert")
}

type fakeSkillRepo struct{ f *fakeRemote }

func (r fakeSkillRepo) FetchAll(ctx context.Context) ([]skill.Skill, error) {
	if r.f.fetchErr != nil {
		return nil, r.f.fetchErr
	}
	return r.f.skills, nil
}

func (r fakeSkillRepo) Create(ctx context.Context, s skill.Skill) error {
	return r.f.write("skill.create:" + s.Name)
}

func (r fakeSkillRepo) Update(ctx context.Context, name string, s skill.Skill) error {
	return r.f.write("skill.update:" + name)
}

func (r fakeSkillRepo) Delete(ctx context.Context, name string) error {
	return r.f.write("skill.delete:" + name)
}

type fakeExperienceRepo struct{ f *fakeRemote }

func (r fakeExperienceRepo) FetchAll(ctx context.Context) ([]experience.Experience, error) {
	if r.f.fetchErr != nil {
		return nil, r.f.fetchErr
	}
	return r.f.experiences, nil
}

func (r fakeExperienceRepo) Create(ctx context.Context, e experience.Experience) error {
	return r.f.write("experience.create:" + e.ID.String())
}

func (r fakeExperienceRepo) Update(ctx context.Context, id uuid.UUID, e experience.Experience) error {
	return r.f.write("experience.update:" + id.String())
}

func (r fakeExperienceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.f.write("experience.delete:" + id.String())
}

type fakeProjectRepo struct{ f *fakeRemote }

func (r fakeProjectRepo) FetchAll(ctx context.Context) ([]project.Project, error) {
	if r.f.fetchErr != nil {
		return nil, r.f.fetchErr
	}
	return r.f.projects, nil
}

func (r fakeProjectRepo) Create(ctx context.Context, p project.Project) error {
	return r.f.write("project.create:" + p.ID.String())
}

func (r fakeProjectRepo) Update(ctx context.Context, id uuid.UUID, p project.Project) error {
	return r.f.write("project.update:" + id.String())
}

func (r fakeProjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.f.write("project.delete:" + id.String())
}

type fakeUploader struct {
	mu      sync.Mutex
	url     string
	err     error
	folders []string
}

func (u *fakeUploader) Upload(ctx context.Context, file io.Reader, folder, publicID string) (string, error) {
	u.mu.Lock()
	u.folders = append(u.folders, folder)
	u.mu.Unlock()
	if u.err != nil {
		return "", u.err
	}
	return u.url, nil
}

// notifications collects notifier messages across goroutines.
type notifications struct {
	mu   sync.Mutex
	msgs []string
}

func (n *notifications) add(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.msgs = append(n.msgs, msg)
}

func (n *notifications) all() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.msgs...)
}

func newTestStore(t *testing.T, opts Options) *Store {
	t.Helper()
	if opts.Mirror == nil {
		opts.Mirror = newMemMirror()
	}
	if opts.DefaultPassword == "" {
		opts.DefaultPassword = "admin"
	}

	s, err := New(opts)
	require.NoError(t, err)
	require.NoError(t, s.Initialize(context.Background()))
	return s
}

func waitSettled(t *testing.T, s *Store) {
	t.Helper()
	require.Eventually(t, func() bool { return !s.IsLoading() },
		2*time.Second, 10*time.Millisecond, "remote load never settled")
}

func TestInitializeSeedsDefaultsOnEmptyMirror(t *testing.T) {
	mirror := newMemMirror()
	s := newTestStore(t, Options{Mirror: mirror})
	defer s.Close()

	assert.False(t, s.IsLoading())
	assert.False(t, s.IsSynced())
	assert.False(t, s.IsAdmin())

	assert.Equal(t, defaultProfile().Name, s.Profile().Name)
	assert.NotEmpty(t, s.Skills())
	assert.NotEmpty(t, s.Experiences())
	assert.NotEmpty(t, s.Projects())

	// The seed credential is hashed before it hits the mirror.
	var hash string
	mirror.get(t, localstore.KeyPassword, &hash)
	assert.NotEqual(t, "admin", hash)
	assert.True(t, auth.CheckPasswordHash("admin", hash))
}

func TestInitializeLoadsPersistedState(t *testing.T) {
	mirror := newMemMirror()

	first := newTestStore(t, Options{Mirror: mirror})
	first.AddSkill(skill.Skill{Name: "Go", Level: 90, Category: skill.CategoryProgramming})
	require.True(t, first.Login("admin"))
	first.Close()

	second := newTestStore(t, Options{Mirror: mirror})
	defer second.Close()

	names := make([]string, 0)
	for _, sk := range second.Skills() {
		names = append(names, sk.Name)
	}
	assert.Contains(t, names, "Go")
	assert.True(t, second.IsAdmin(), "session flag survives restart")
}

func TestRemoteLoadReplacesLocalAndPersists(t *testing.T) {
	mirror := newMemMirror()
	remote := &fakeRemote{
		profile: &profile.Profile{Name: "Remote Name"},
		skills:  []skill.Skill{{Name: "Figma", Level: 80, Category: skill.CategoryDesign, Icon: "figma"}},
	}

	s := newTestStore(t, Options{Mirror: mirror, Remote: remote.remote()})
	defer s.Close()
	waitSettled(t, s)

	assert.True(t, s.IsSynced())
	assert.Equal(t, "Remote Name", s.Profile().Name)
	require.Len(t, s.Skills(), 1)
	assert.Equal(t, "Figma", s.Skills()[0].Name)

	var mirrored []skill.Skill
	mirror.get(t, localstore.KeySkills, &mirrored)
	require.Len(t, mirrored, 1)
	assert.Equal(t, "Figma", mirrored[0].Name)
}

func TestRemoteLoadEmptyCollectionsKeepLocal(t *testing.T) {
	remote := &fakeRemote{}

	s := newTestStore(t, Options{Remote: remote.remote()})
	defer s.Close()
	waitSettled(t, s)

	assert.True(t, s.IsSynced(), "an empty backend is still a successful load")
	assert.NotEmpty(t, s.Skills(), "empty remote must not clobber local skills")
	assert.Equal(t, defaultProfile().Name, s.Profile().Name)
}

func TestRemoteLoadFailureKeepsLocal(t *testing.T) {
	notes := &notifications{}
	remote := &fakeRemote{fetchErr: errors.New("connection refused")}

	s := newTestStore(t, Options{Remote: remote.remote(), Notifier: notes.add})
	defer s.Close()
	waitSettled(t, s)

	assert.False(t, s.IsSynced())
	assert.NotEmpty(t, s.Skills())
	assert.NotEmpty(t, notes.all(), "a failed remote load surfaces a notification")
}

func TestLogin(t *testing.T) {
	mirror := newMemMirror()
	s := newTestStore(t, Options{Mirror: mirror, DefaultPassword: "s3cret"})
	defer s.Close()

	assert.False(t, s.Login("wrong"))
	assert.False(t, s.IsAdmin())

	assert.True(t, s.Login("s3cret"))
	assert.True(t, s.IsAdmin())

	var persisted bool
	mirror.get(t, localstore.KeyAdmin, &persisted)
	assert.True(t, persisted)

	s.Logout()
	assert.False(t, s.IsAdmin())
	mirror.get(t, localstore.KeyAdmin, &persisted)
	assert.False(t, persisted)
}

func TestChangePassword(t *testing.T) {
	s := newTestStore(t, Options{DefaultPassword: "old-pass"})
	defer s.Close()

	require.NoError(t, s.ChangePassword("new-pass"))

	assert.False(t, s.VerifyPassword("old-pass"))
	assert.True(t, s.VerifyPassword("new-pass"))
	assert.True(t, s.Login("new-pass"))
}

func TestAddSkillDefaultsIconAndSyncs(t *testing.T) {
	mirror := newMemMirror()
	remote := &fakeRemote{}
	s := newTestStore(t, Options{Mirror: mirror, Remote: remote.remote()})
	waitSettled(t, s)

	s.AddSkill(skill.Skill{Name: "Go", Level: 90, Category: skill.CategoryProgramming})
	s.Close()

	skills := s.Skills()
	require.NotEmpty(t, skills)
	added := skills[len(skills)-1]
	assert.Equal(t, "Go", added.Name)
	assert.Equal(t, skill.DefaultIcon, added.Icon)

	assert.Contains(t, remote.callLog(), "skill.create:Go")
}

func TestUpdateSkillMergesFields(t *testing.T) {
	remote := &fakeRemote{}
	s := newTestStore(t, Options{Remote: remote.remote()})
	waitSettled(t, s)

	s.AddSkill(skill.Skill{Name: "Go", Level: 50, Category: skill.CategoryProgramming, Icon: "gopher"})

	level := 95
	s.UpdateSkill("Go", skill.Update{Level: &level})
	s.Close()

	var got skill.Skill
	for _, sk := range s.Skills() {
		if sk.Name == "Go" {
			got = sk
		}
	}
	assert.Equal(t, 95, got.Level)
	assert.Equal(t, "gopher", got.Icon, "untouched fields keep their values")
	assert.Contains(t, remote.callLog(), "skill.update:Go")
}

func TestUpdateUnknownSkillIsSilentNoOp(t *testing.T) {
	remote := &fakeRemote{}
	s := newTestStore(t, Options{Remote: remote.remote()})
	waitSettled(t, s)

	before := s.Skills()
	level := 10
	s.UpdateSkill("does-not-exist", skill.Update{Level: &level})
	s.Close()

	assert.Equal(t, before, s.Skills())
	assert.Empty(t, remote.callLog())
}

func TestDeleteSkill(t *testing.T) {
	remote := &fakeRemote{}
	s := newTestStore(t, Options{Remote: remote.remote()})
	waitSettled(t, s)

	s.AddSkill(skill.Skill{Name: "Go", Level: 90, Category: skill.CategoryProgramming})
	count := len(s.Skills())

	s.DeleteSkill("Go")
	s.DeleteSkill("never-existed")
	s.Close()

	assert.Len(t, s.Skills(), count-1)
	log := remote.callLog()
	assert.Contains(t, log, "skill.delete:Go")
	assert.NotContains(t, log, "skill.delete:never-existed")
}

func TestAddExperienceAssignsIDAndPrepends(t *testing.T) {
	remote := &fakeRemote{}
	s := newTestStore(t, Options{Remote: remote.remote()})
	waitSettled(t, s)

	first := s.AddExperience(experience.Experience{Title: "First", Type: experience.TypeWork})
	second := s.AddExperience(experience.Experience{Title: "Second", Type: experience.TypeEducation})
	s.Close()

	assert.NotEqual(t, uuid.Nil, first.ID)
	assert.NotEqual(t, first.ID, second.ID)

	got := s.Experiences()
	require.GreaterOrEqual(t, len(got), 2)
	assert.Equal(t, "Second", got[0].Title, "newest entry comes first")
	assert.Equal(t, "First", got[1].Title)

	assert.Contains(t, remote.callLog(), "experience.create:"+first.ID.String())
}

func TestUpdateAndDeleteExperienceByID(t *testing.T) {
	remote := &fakeRemote{}
	s := newTestStore(t, Options{Remote: remote.remote()})
	waitSettled(t, s)

	e := s.AddExperience(experience.Experience{Title: "Old Title", Type: experience.TypeWork})

	title := "New Title"
	s.UpdateExperience(e.ID, experience.Update{Title: &title})
	assert.Equal(t, "New Title", s.Experiences()[0].Title)

	s.DeleteExperience(e.ID)
	s.DeleteExperience(uuid.New())
	s.Close()

	for _, got := range s.Experiences() {
		assert.NotEqual(t, e.ID, got.ID)
	}
	log := remote.callLog()
	assert.Contains(t, log, "experience.update:"+e.ID.String())
	assert.Contains(t, log, "experience.delete:"+e.ID.String())
}

func TestAddProjectAssignsIDAndTimestamp(t *testing.T) {
	s := newTestStore(t, Options{})
	defer s.Close()

	p := s.AddProject(project.Project{Title: "Folio", Category: project.CategoryProgramming})

	assert.NotEqual(t, uuid.Nil, p.ID)
	assert.False(t, p.CreatedAt.IsZero())
	assert.NotNil(t, p.Technologies)
	assert.Equal(t, "Folio", s.Projects()[0].Title, "newest project comes first")
}

func TestUpdateProjectKeepsCreatedAt(t *testing.T) {
	s := newTestStore(t, Options{})
	defer s.Close()

	p := s.AddProject(project.Project{Title: "Folio", Category: project.CategoryProgramming})

	title := "Folio v2"
	s.UpdateProject(p.ID, project.Update{Title: &title})

	got := s.Projects()[0]
	assert.Equal(t, "Folio v2", got.Title)
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, p.CreatedAt, got.CreatedAt)
}

func TestUpdateProfileMergesFields(t *testing.T) {
	mirror := newMemMirror()
	remote := &fakeRemote{}
	s := newTestStore(t, Options{Mirror: mirror, Remote: remote.remote()})
	waitSettled(t, s)

	originalTitle := s.Profile().Title
	name := "Lam Nguyen"
	s.UpdateProfile(context.Background(), profile.Update{Name: &name})
	s.Close()

	assert.Equal(t, "Lam Nguyen", s.Profile().Name)
	assert.Equal(t, originalTitle, s.Profile().Title)
	assert.Contains(t, remote.callLog(), "profile.upsert")

	var mirrored profile.Profile
	mirror.get(t, localstore.KeyProfile, &mirrored)
	assert.Equal(t, "Lam Nguyen", mirrored.Name)
}

func TestUpdateSocialLink(t *testing.T) {
	s := newTestStore(t, Options{})
	defer s.Close()

	url := "https://github.com/someone"
	s.UpdateSocialLink(context.Background(), "github", profile.LinkUpdate{URL: &url})

	links := s.Profile().SocialLinks
	var link profile.SocialLink
	for _, l := range links {
		if l.Platform == "github" {
			link = l
		}
	}
	require.Equal(t, "github", link.Platform)
	assert.Equal(t, url, link.URL)

	// Editing the same platform updates in place instead of appending.
	newURL := "https://github.com/someone-else"
	s.UpdateSocialLink(context.Background(), "github", profile.LinkUpdate{URL: &newURL})

	count := 0
	for _, l := range s.Profile().SocialLinks {
		if l.Platform == "github" {
			count++
			assert.Equal(t, newURL, l.URL)
		}
	}
	assert.Equal(t, 1, count)

	// A brand-new platform gets the generic link icon.
	s.UpdateSocialLink(context.Background(), "mastodon", profile.LinkUpdate{URL: &url})
	for _, l := range s.Profile().SocialLinks {
		if l.Platform == "mastodon" {
			assert.Equal(t, "link", l.Icon)
		}
	}
}

func TestRemoteWriteFailureKeepsLocalChange(t *testing.T) {
	notes := &notifications{}
	remote := &fakeRemote{writeErr: errors.New("timeout")}
	s := newTestStore(t, Options{Remote: remote.remote(), Notifier: notes.add})
	waitSettled(t, s)

	s.AddSkill(skill.Skill{Name: "Go", Level: 90, Category: skill.CategoryProgramming})
	s.Close()

	names := make([]string, 0)
	for _, sk := range s.Skills() {
		names = append(names, sk.Name)
	}
	assert.Contains(t, names, "Go", "failed remote write never rolls back local state")
	assert.NotEmpty(t, notes.all())
}

func TestFullQueueDropsWriteWithNotification(t *testing.T) {
	notes := &notifications{}
	started := make(chan struct{}, 8)
	release := make(chan struct{})
	remote := &fakeRemote{onWrite: func() {
		started <- struct{}{}
		<-release
	}}

	s := newTestStore(t, Options{Remote: remote.remote(), Notifier: notes.add, QueueSize: 1})
	waitSettled(t, s)

	s.AddSkill(skill.Skill{Name: "A", Level: 1, Category: skill.CategoryTools})
	<-started // syncer is now blocked inside the first remote call
	s.AddSkill(skill.Skill{Name: "B", Level: 1, Category: skill.CategoryTools})
	s.AddSkill(skill.Skill{Name: "C", Level: 1, Category: skill.CategoryTools})

	close(release)
	s.Close()

	assert.Len(t, remote.callLog(), 2, "third write is dropped, not queued")
	assert.Len(t, s.Skills(), len(defaultSkills())+3, "all three stay in local state")

	dropped := false
	for _, msg := range notes.all() {
		if msg == "Could not queue skill change for the backend. It is saved locally." {
			dropped = true
		}
	}
	assert.True(t, dropped)
}

func TestEventsPublishedPerMutation(t *testing.T) {
	pub := &fakePublisher{}
	s := newTestStore(t, Options{Events: pub})

	s.AddSkill(skill.Skill{Name: "Go", Level: 90, Category: skill.CategoryProgramming})
	s.DeleteSkill("Go")
	s.Close()

	payloads := pub.all()
	require.Len(t, payloads, 2)
	assert.Equal(t, "skill", payloads[0].Entity)
	assert.Equal(t, "create", payloads[0].Op)
	assert.Equal(t, "delete", payloads[1].Op)
	assert.False(t, payloads[0].OccurredAt.IsZero())
}

func inlinePNG(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestInlineProfileImageIsUploaded(t *testing.T) {
	up := &fakeUploader{url: "https://cdn.example.com/profile.jpg"}
	s := newTestStore(t, Options{Uploader: up})
	defer s.Close()

	s.UpdateProfileImage(context.Background(), inlinePNG(t))

	assert.Equal(t, "https://cdn.example.com/profile.jpg", s.Profile().ProfileImage)
	assert.Equal(t, []string{"profile"}, up.folders)
}

func TestInlineImageKeptWhenUploadFails(t *testing.T) {
	notes := &notifications{}
	up := &fakeUploader{err: errors.New("quota exceeded")}
	s := newTestStore(t, Options{Uploader: up, Notifier: notes.add})
	defer s.Close()

	inline := inlinePNG(t)
	s.UpdateProfileImage(context.Background(), inline)

	assert.Equal(t, inline, s.Profile().ProfileImage, "failed upload keeps the inline data")
	assert.NotEmpty(t, notes.all())
}

func TestPlainImageURLSkipsUploader(t *testing.T) {
	up := &fakeUploader{url: "https://cdn.example.com/unused.jpg"}
	s := newTestStore(t, Options{Uploader: up})
	defer s.Close()

	s.UpdateProfileImage(context.Background(), "https://example.com/me.png")

	assert.Equal(t, "https://example.com/me.png", s.Profile().ProfileImage)
	assert.Empty(t, up.folders)
}

type fakePublisher struct {
	mu       sync.Mutex
	payloads []event.PortfolioEventPayload
}

func (p *fakePublisher) Publish(ctx context.Context, payload event.PortfolioEventPayload) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.payloads = append(p.payloads, payload)
	return nil
}

func (p *fakePublisher) all() []event.PortfolioEventPayload {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]event.PortfolioEventPayload(nil), p.payloads...)
}
