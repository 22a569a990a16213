package lifecycle

import (
	"context"
	"errors"
	"sync"
	"testing"

	"badgepress/internal/models"
)

// fakeRemote is an in-memory Remote with a switchable failure mode.
type fakeRemote struct {
	mu        sync.Mutex
	templates map[string]models.Template
	failing   bool
	saves     int
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{templates: make(map[string]models.Template)}
}

var errRemoteDown = errors.New("remote store unreachable")

func (f *fakeRemote) ListByEvent(eventID string) ([]models.Template, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return nil, errRemoteDown
	}
	var out []models.Template
	for _, t := range f.templates {
		if t.EventID == eventID && t.DeletedAt == nil {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeRemote) Save(t *models.Template) (*models.Template, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves++
	if f.failing {
		return nil, errRemoteDown
	}
	stored := t.Clone()
	if prev, ok := f.templates[t.ID]; ok {
		stored.Version = prev.Version + 1
	}
	f.templates[t.ID] = stored
	out := stored.Clone()
	return &out, nil
}

func (f *fakeRemote) Publish(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return errRemoteDown
	}
	target, ok := f.templates[id]
	if !ok {
		return errors.New("not found")
	}
	for tid, t := range f.templates {
		if t.EventID == target.EventID && t.Status == models.StatusOfficial {
			t.Status = models.StatusDraft
			f.templates[tid] = t
		}
	}
	target.Status = models.StatusOfficial
	f.templates[id] = target
	return nil
}

func (f *fakeRemote) SoftDelete(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return errRemoteDown
	}
	target, ok := f.templates[id]
	if !ok {
		return errors.New("not found")
	}
	live := 0
	for _, t := range f.templates {
		if t.EventID == target.EventID && t.DeletedAt == nil {
			live++
		}
	}
	if live <= 1 {
		return ErrLastTemplate
	}
	now := target.CreatedAt
	target.DeletedAt = &now
	f.templates[id] = target
	return nil
}

func (f *fakeRemote) setFailing(failing bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failing = failing
}

// fakeCache is an in-memory LocalCache.
type fakeCache struct {
	mu     sync.Mutex
	events map[string][]models.Template
}

func newFakeCache() *fakeCache {
	return &fakeCache{events: make(map[string][]models.Template)}
}

func (f *fakeCache) GetEvent(_ context.Context, eventID string) ([]models.Template, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	templates, ok := f.events[eventID]
	return templates, ok
}

func (f *fakeCache) SetEvent(_ context.Context, eventID string, templates []models.Template) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events[eventID] = templates
}

func (f *fakeCache) SetTemplate(ctx context.Context, tmpl models.Template) {
	f.mu.Lock()
	defer f.mu.Unlock()
	templates := f.events[tmpl.EventID]
	for i := range templates {
		if templates[i].ID == tmpl.ID {
			templates[i] = tmpl
			f.events[tmpl.EventID] = templates
			return
		}
	}
	f.events[tmpl.EventID] = append(templates, tmpl)
}

func validTemplate(eventID string) models.Template {
	tmpl := models.NewTemplate(eventID, "Badge")
	tmpl.Elements = []models.Element{models.NewGuestFieldElement(models.FieldName)}
	return tmpl
}

// TestLoadPrefersRemote: a healthy remote serves loads and warms the cache.
func TestLoadPrefersRemote(t *testing.T) {
	remote := newFakeRemote()
	cache := newFakeCache()
	m := New(remote, cache)
	ctx := context.Background()

	tmpl := validTemplate("ev-1")
	if v := m.Save(ctx, tmpl); len(v) != 0 {
		t.Fatalf("save violations: %v", v)
	}

	got := m.Load(ctx, "ev-1")
	if len(got) != 1 || got[0].ID != tmpl.ID {
		t.Fatalf("load: %+v", got)
	}
	if _, ok := cache.GetEvent(ctx, "ev-1"); !ok {
		t.Error("load should warm the cache")
	}
}

// TestSaveFallsBackToCache: a save during a remote outage lands in the
// cache, surfaces no error, and is served by the next load.
func TestSaveFallsBackToCache(t *testing.T) {
	remote := newFakeRemote()
	cache := newFakeCache()
	m := New(remote, cache)
	ctx := context.Background()

	remote.setFailing(true)

	tmpl := validTemplate("ev-1")
	if v := m.Save(ctx, tmpl); len(v) != 0 {
		t.Fatalf("save during outage returned violations: %v", v)
	}

	got := m.Load(ctx, "ev-1")
	if len(got) != 1 || got[0].ID != tmpl.ID {
		t.Fatalf("load after outage save: %+v", got)
	}
}

// TestLoadSynthesizesDefault: with nothing anywhere, the editor still
// gets one template with a usable guest-field layout.
func TestLoadSynthesizesDefault(t *testing.T) {
	remote := newFakeRemote()
	remote.setFailing(true)
	m := New(remote, newFakeCache())

	got := m.Load(context.Background(), "ev-empty")
	if len(got) != 1 {
		t.Fatalf("templates: got %d, want 1", len(got))
	}
	def := got[0]
	if len(def.Elements) == 0 {
		t.Fatal("default template has no elements")
	}
	hasName, hasQR := false, false
	for _, el := range def.Elements {
		if el.GuestField == models.FieldName {
			hasName = true
		}
		if el.GuestField == models.FieldQRCode {
			hasQR = true
		}
	}
	if !hasName || !hasQR {
		t.Errorf("default layout missing name or qr binding: %+v", def.Elements)
	}
	if violations := models.Validate(def); len(violations) != 0 {
		t.Errorf("default template must validate cleanly: %v", violations)
	}
}

// TestSaveValidationSurfaces: malformed templates are rejected at save
// time, the one place validation is enforced.
func TestSaveValidationSurfaces(t *testing.T) {
	m := New(newFakeRemote(), newFakeCache())

	tmpl := validTemplate("ev-1")
	tmpl.Elements[0].Width = -1

	violations := m.Save(context.Background(), tmpl)
	if len(violations) == 0 {
		t.Fatal("expected validation violations")
	}
}

// TestSaveSupersede: when a newer save is issued for the same id while an
// older one is in flight, the older result is discarded.
func TestSaveSupersede(t *testing.T) {
	remote := newFakeRemote()
	cache := newFakeCache()
	m := New(remote, cache)
	ctx := context.Background()

	tmpl := validTemplate("ev-1")
	tmpl.Name = "older"

	// Simulate the older save being in flight: take its sequence number,
	// then let a newer save complete first.
	oldSeq := m.nextSeq(tmpl.ID)

	newer := tmpl.Clone()
	newer.Name = "newer"
	if v := m.Save(ctx, newer); len(v) != 0 {
		t.Fatalf("newer save: %v", v)
	}

	if m.isLatest(tmpl.ID, oldSeq) {
		t.Fatal("older sequence should have been superseded")
	}

	cached, ok := cache.GetEvent(ctx, "ev-1")
	if !ok || len(cached) != 1 || cached[0].Name != "newer" {
		t.Errorf("cache should hold the newer save: %+v", cached)
	}
}

// TestPublishSingleOfficial: publishing supersedes the previous official
// template for the event.
func TestPublishSingleOfficial(t *testing.T) {
	remote := newFakeRemote()
	cache := newFakeCache()
	m := New(remote, cache)
	ctx := context.Background()

	a := validTemplate("ev-1")
	b := validTemplate("ev-1")
	m.Save(ctx, a)
	m.Save(ctx, b)

	if _, err := m.Publish(ctx, a); err != nil {
		t.Fatalf("publish a: %v", err)
	}
	if _, err := m.Publish(ctx, b); err != nil {
		t.Fatalf("publish b: %v", err)
	}

	official := 0
	for _, tmpl := range m.Load(ctx, "ev-1") {
		if tmpl.IsOfficial() {
			official++
			if tmpl.ID != b.ID {
				t.Errorf("official: got %q, want %q", tmpl.ID, b.ID)
			}
		}
	}
	if official != 1 {
		t.Errorf("official count: got %d, want 1", official)
	}
}

// TestDeleteLastTemplateRejected: an event always keeps at least one
// template.
func TestDeleteLastTemplateRejected(t *testing.T) {
	remote := newFakeRemote()
	m := New(remote, newFakeCache())
	ctx := context.Background()

	only := validTemplate("ev-1")
	m.Save(ctx, only)

	if err := m.Delete(ctx, only); !IsLastTemplateErr(err) {
		t.Errorf("deleting last template: got %v, want ErrLastTemplate", err)
	}

	second := validTemplate("ev-1")
	m.Save(ctx, second)
	if err := m.Delete(ctx, second); err != nil {
		t.Errorf("deleting non-last template: %v", err)
	}
}

// TestPublishInvalidTemplate: validation also guards publish.
func TestPublishInvalidTemplate(t *testing.T) {
	m := New(newFakeRemote(), newFakeCache())

	tmpl := validTemplate("ev-1")
	tmpl.Name = ""
	violations, err := m.Publish(context.Background(), tmpl)
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(violations) == 0 {
		t.Error("expected validation violations")
	}
}
