package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/LovationAdmin/pcease-api/models"
)

// NewMemoryStore returns a Store kept entirely in process memory. Used by
// STORE=memory and by tests.
func NewMemoryStore() *Store {
	return &Store{
		Components:  NewMemoryComponents(),
		Users:       NewMemoryUsers(),
		Threads:     NewMemoryThreads(),
		SavedBuilds: NewMemorySavedBuilds(),
	}
}

// ============================================================================
// COMPONENTS
// ============================================================================

type componentKey struct {
	category models.Category
	id       int
}

type MemoryComponents struct {
	mu    sync.RWMutex
	items map[componentKey]models.Component
}

func NewMemoryComponents() *MemoryComponents {
	return &MemoryComponents{items: make(map[componentKey]models.Component)}
}

func cloneComponent(c models.Component) models.Component {
	out := c
	if c.Vendors != nil {
		out.Vendors = append([]models.VendorOffer(nil), c.Vendors...)
	}
	if c.Specs != nil {
		out.Specs = make(map[string]interface{}, len(c.Specs))
		for k, v := range c.Specs {
			out.Specs[k] = v
		}
	}
	return out
}

func (m *MemoryComponents) List(ctx context.Context, filter models.ComponentFilter) ([]models.Component, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	matched := make([]models.Component, 0, len(m.items))
	for _, c := range m.items {
		if MatchComponent(c, filter) {
			matched = append(matched, cloneComponent(c))
		}
	}
	total := len(matched)
	return SortAndPage(matched, filter), total, nil
}

func (m *MemoryComponents) All(ctx context.Context) ([]models.Component, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Component, 0, len(m.items))
	for _, c := range m.items {
		out = append(out, cloneComponent(c))
	}
	SortCatalog(out)
	return out, nil
}

func (m *MemoryComponents) Get(ctx context.Context, category models.Category, id int) (*models.Component, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.items[componentKey{category, id}]
	if !ok {
		return nil, ErrNotFound
	}
	out := cloneComponent(c)
	return &out, nil
}

func (m *MemoryComponents) Create(ctx context.Context, c *models.Component) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := componentKey{c.Category, c.ID}
	if _, exists := m.items[key]; exists {
		return ErrConflict
	}
	now := time.Now()
	c.CreatedAt, c.UpdatedAt = now, now
	m.items[key] = cloneComponent(*c)
	return nil
}

func (m *MemoryComponents) Upsert(ctx context.Context, items []models.Component) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	for _, c := range items {
		key := componentKey{c.Category, c.ID}
		if prev, ok := m.items[key]; ok {
			c.CreatedAt = prev.CreatedAt
		} else {
			c.CreatedAt = now
		}
		c.UpdatedAt = now
		m.items[key] = cloneComponent(c)
	}
	return len(items), nil
}

func (m *MemoryComponents) UpdateSpecs(ctx context.Context, category models.Category, id int, specs map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := componentKey{category, id}
	c, ok := m.items[key]
	if !ok {
		return ErrNotFound
	}
	c.Specs = specs
	c.UpdatedAt = time.Now()
	m.items[key] = cloneComponent(c)
	return nil
}

// ============================================================================
// USERS
// ============================================================================

type MemoryUsers struct {
	mu     sync.RWMutex
	byID   map[string]models.User
	byName map[string]string
}

func NewMemoryUsers() *MemoryUsers {
	return &MemoryUsers{byID: make(map[string]models.User), byName: make(map[string]string)}
}

func (m *MemoryUsers) Create(ctx context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.byName[u.Username]; exists {
		return ErrConflict
	}
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	m.byID[u.ID] = *u
	m.byName[u.Username] = u.ID
	return nil
}

func (m *MemoryUsers) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.byName[username]
	if !ok {
		return nil, ErrNotFound
	}
	u := m.byID[id]
	return &u, nil
}

func (m *MemoryUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

// ============================================================================
// FORUM
// ============================================================================

type MemoryThreads struct {
	mu      sync.RWMutex
	threads map[string]models.Thread
	replies map[string][]models.Reply
	order   map[string]int64
	seq     int64
}

func NewMemoryThreads() *MemoryThreads {
	return &MemoryThreads{
		threads: make(map[string]models.Thread),
		replies: make(map[string][]models.Reply),
		order:   make(map[string]int64),
	}
}

func threadMatches(t models.Thread, f models.ThreadFilter) bool {
	if f.Category != "" && !strings.EqualFold(t.Category, f.Category) {
		return false
	}
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(t.Title), q) && !strings.Contains(strings.ToLower(t.Content), q) {
			return false
		}
	}
	return true
}

func (m *MemoryThreads) List(ctx context.Context, filter models.ThreadFilter) ([]models.Thread, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Thread, 0, len(m.threads))
	for id, t := range m.threads {
		if !threadMatches(t, filter) {
			continue
		}
		t.ReplyCount = len(m.replies[id])
		t.Replies = nil
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return m.order[out[i].ID] > m.order[out[j].ID]
	})
	start, end := pageBounds(len(out), filter.Skip, filter.Limit)
	return out[start:end], nil
}

func (m *MemoryThreads) Get(ctx context.Context, id string) (*models.Thread, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.threads[id]
	if !ok {
		return nil, ErrNotFound
	}
	t.Replies = append([]models.Reply{}, m.replies[id]...)
	t.ReplyCount = len(t.Replies)
	return &t, nil
}

func (m *MemoryThreads) Create(ctx context.Context, t *models.Thread) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	stored := *t
	stored.Replies = nil
	m.threads[t.ID] = stored
	m.seq++
	m.order[t.ID] = m.seq
	return nil
}

func (m *MemoryThreads) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.threads[id]; !ok {
		return ErrNotFound
	}
	delete(m.threads, id)
	delete(m.replies, id)
	delete(m.order, id)
	return nil
}

func (m *MemoryThreads) AddReply(ctx context.Context, r *models.Reply) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.threads[r.ThreadID]; !ok {
		return ErrNotFound
	}
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	m.replies[r.ThreadID] = append(m.replies[r.ThreadID], *r)
	return nil
}

// ============================================================================
// SAVED BUILDS
// ============================================================================

type MemorySavedBuilds struct {
	mu     sync.RWMutex
	builds map[string]models.SavedBuild
	order  map[string]int64
	seq    int64
}

func NewMemorySavedBuilds() *MemorySavedBuilds {
	return &MemorySavedBuilds{builds: make(map[string]models.SavedBuild), order: make(map[string]int64)}
}

func (m *MemorySavedBuilds) ListByUser(ctx context.Context, userID string) ([]models.SavedBuild, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []models.SavedBuild{}
	for _, b := range m.builds {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return m.order[out[i].ID] > m.order[out[j].ID]
	})
	return out, nil
}

func (m *MemorySavedBuilds) Get(ctx context.Context, id, userID string) (*models.SavedBuild, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.builds[id]
	if !ok || b.UserID != userID {
		return nil, ErrNotFound
	}
	return &b, nil
}

func (m *MemorySavedBuilds) Create(ctx context.Context, b *models.SavedBuild) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	now := time.Now()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
	m.builds[b.ID] = *b
	m.seq++
	m.order[b.ID] = m.seq
	return nil
}

func (m *MemorySavedBuilds) Update(ctx context.Context, b *models.SavedBuild) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	prev, ok := m.builds[b.ID]
	if !ok || prev.UserID != b.UserID {
		return ErrNotFound
	}
	b.CreatedAt = prev.CreatedAt
	b.UpdatedAt = time.Now()
	m.builds[b.ID] = *b
	return nil
}

func (m *MemorySavedBuilds) Delete(ctx context.Context, id, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.builds[id]
	if !ok || b.UserID != userID {
		return ErrNotFound
	}
	delete(m.builds, id)
	delete(m.order, id)
	return nil
}
