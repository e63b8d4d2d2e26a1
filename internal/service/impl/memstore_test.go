package impl

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"clubhub/internal/domain"
	"clubhub/internal/store"
)

type memoryStore struct {
	mu       sync.Mutex
	seq      int
	accounts map[string]domain.Account
	events   []*domain.Event

	failList error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{accounts: make(map[string]domain.Account)}
}

func (m *memoryStore) nextID() string {
	m.seq++
	return fmt.Sprintf("%024x", m.seq)
}

func (m *memoryStore) taken(email, username string) bool {
	for _, acc := range m.accounts {
		if acc.Base().Email == email {
			return true
		}
		if c, ok := acc.(*domain.Club); ok && username != "" && c.Username == username {
			return true
		}
	}
	return false
}

func (m *memoryStore) CreateClub(_ context.Context, c *domain.Club) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.taken(c.Email, c.Username) {
		return store.ErrDuplicate
	}
	c.ID = m.nextID()
	cp := *c
	m.accounts[c.ID] = &cp
	return nil
}

func (m *memoryStore) CreateStudent(_ context.Context, s *domain.Student) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.taken(s.Email, "") {
		return store.ErrDuplicate
	}
	s.ID = m.nextID()
	cp := *s
	m.accounts[s.ID] = &cp
	return nil
}

func (m *memoryStore) ClubByUsername(_ context.Context, username string) (*domain.Club, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, acc := range m.accounts {
		if c, ok := acc.(*domain.Club); ok && c.Username == username {
			cp := *c
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memoryStore) StudentByEmail(_ context.Context, email string) (*domain.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, acc := range m.accounts {
		if s, ok := acc.(*domain.Student); ok && s.Email == email {
			cp := *s
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memoryStore) ByID(_ context.Context, id string) (domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	acc, ok := m.accounts[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return acc, nil
}

func (m *memoryStore) EmailExists(_ context.Context, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.taken(email, ""), nil
}

func (m *memoryStore) UsernameExists(_ context.Context, username string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, acc := range m.accounts {
		if c, ok := acc.(*domain.Club); ok && c.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryStore) List(_ context.Context) ([]domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Account, 0, len(m.accounts))
	for _, acc := range m.accounts {
		out = append(out, acc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Base().ID < out[j].Base().ID })
	return out, nil
}

// eventStore shares the account map so that ids line up.
type eventStore struct{ *memoryStore }

func (e eventStore) Create(_ context.Context, ev *domain.Event) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	ev.ID = e.nextID()
	cp := *ev
	e.events = append(e.events, &cp)
	return nil
}

// List returns insertion order; sorting is the service's job.
func (e eventStore) List(_ context.Context) ([]*domain.Event, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.failList != nil {
		return nil, e.failList
	}
	out := make([]*domain.Event, len(e.events))
	copy(out, e.events)
	return out, nil
}
