package services

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"gorm.io/gorm"

	"github.com/myproparti-blip/My-pro-backend/internal/models"
	"github.com/myproparti-blip/My-pro-backend/internal/repositories"
)

// In-memory repository doubles. The db handle is unused; services are
// exercised with a nil *gorm.DB.

type fakeUserRepo struct {
	mu    sync.Mutex
	seq   int
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (r *fakeUserRepo) Create(_ *gorm.DB, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	if user.ID == "" {
		user.ID = fmt.Sprintf("user-%d", r.seq)
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) FindByID(_ *gorm.DB, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) FindByPhone(_ *gorm.DB, phone string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Phone == phone {
			clone := *user
			return &clone, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) FindAll(_ *gorm.DB) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.User, 0, len(r.users))
	for _, user := range r.users {
		out = append(out, *user)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeUserRepo) Update(_ *gorm.DB, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

type fakePropertyRepo struct {
	mu         sync.Mutex
	seq        int
	properties map[string]*models.Property
}

func newFakePropertyRepo() *fakePropertyRepo {
	return &fakePropertyRepo{properties: make(map[string]*models.Property)}
}

func (r *fakePropertyRepo) Create(_ *gorm.DB, property *models.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	if property.ID == "" {
		property.ID = fmt.Sprintf("prop-%d", r.seq)
	}
	clone := *property
	r.properties[property.ID] = &clone
	return nil
}

func (r *fakePropertyRepo) FindByID(_ *gorm.DB, id string) (*models.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	property, ok := r.properties[id]
	if !ok {
		return nil, repositories.ErrPropertyNotFound
	}
	clone := *property
	return &clone, nil
}

func (r *fakePropertyRepo) FindAll(_ *gorm.DB, filter repositories.PropertyFilter) ([]models.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Property, 0, len(r.properties))
	for _, property := range r.properties {
		if filter.Status != "" && string(property.Status) != filter.Status {
			continue
		}
		if filter.City != "" && property.City != filter.City {
			continue
		}
		if filter.PropertyType != "" && property.PropertyType != filter.PropertyType {
			continue
		}
		out = append(out, *property)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakePropertyRepo) FindByUserID(_ *gorm.DB, userID string) ([]models.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Property, 0)
	for _, property := range r.properties {
		if property.UserID == userID {
			out = append(out, *property)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakePropertyRepo) Update(_ *gorm.DB, property *models.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *property
	r.properties[property.ID] = &clone
	return nil
}

func (r *fakePropertyRepo) Delete(_ *gorm.DB, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.properties[id]; !ok {
		return repositories.ErrPropertyNotFound
	}
	delete(r.properties, id)
	return nil
}

type fakeAgentRepo struct {
	mu     sync.Mutex
	seq    int
	agents map[string]*models.Agent
}

func newFakeAgentRepo() *fakeAgentRepo {
	return &fakeAgentRepo{agents: make(map[string]*models.Agent)}
}

func (r *fakeAgentRepo) Create(_ *gorm.DB, agent *models.Agent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	if agent.ID == "" {
		agent.ID = fmt.Sprintf("agent-%d", r.seq)
	}
	clone := *agent
	r.agents[agent.ID] = &clone
	return nil
}

func (r *fakeAgentRepo) FindByID(_ *gorm.DB, id string) (*models.Agent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	agent, ok := r.agents[id]
	if !ok {
		return nil, repositories.ErrAgentNotFound
	}
	clone := *agent
	return &clone, nil
}

func (r *fakeAgentRepo) FindByPhone(_ *gorm.DB, phone string) (*models.Agent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, agent := range r.agents {
		if agent.Phone == phone {
			clone := *agent
			return &clone, nil
		}
	}
	return nil, repositories.ErrAgentNotFound
}

func (r *fakeAgentRepo) FindAll(_ *gorm.DB, filter repositories.AgentFilter) ([]models.Agent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Agent, 0, len(r.agents))
	for _, agent := range r.agents {
		if filter.Status != "" && string(agent.Status) != filter.Status {
			continue
		}
		if filter.OperatingCity != "" && agent.OperatingCity != filter.OperatingCity {
			continue
		}
		out = append(out, *agent)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeAgentRepo) FindByUserID(_ *gorm.DB, userID string) ([]models.Agent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Agent, 0)
	for _, agent := range r.agents {
		if agent.UserID == userID {
			out = append(out, *agent)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeAgentRepo) Update(_ *gorm.DB, agent *models.Agent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *agent
	r.agents[agent.ID] = &clone
	return nil
}

func (r *fakeAgentRepo) Delete(_ *gorm.DB, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.agents[id]; !ok {
		return repositories.ErrAgentNotFound
	}
	delete(r.agents, id)
	return nil
}

// fakeSMS records dispatches and optionally fails them.
type fakeSMS struct {
	mu    sync.Mutex
	sent  []string
	codes []string
	fail  bool
}

func (s *fakeSMS) Send(_ context.Context, phone, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return fmt.Errorf("gateway down")
	}
	s.sent = append(s.sent, phone)
	s.codes = append(s.codes, code)
	return nil
}

// recordingNotifier captures fanout calls for assertions.
type recordingNotifier struct {
	mu     sync.Mutex
	events []string
}

func (n *recordingNotifier) NotifyDataUpdate(key string, _ interface{}, userID string) {
	n.record(fanoutEvent("update", key, userID))
}

func (n *recordingNotifier) NotifyCacheInvalidate(key string, userID string) {
	n.record(fanoutEvent("invalidate", key, userID))
}

func (n *recordingNotifier) NotifyFullRefresh(userID string) {
	n.record(fanoutEvent("refresh", "", userID))
}

// fanoutEvent flattens a call to "kind:key@target" for assertions; empty
// parts are omitted.
func fanoutEvent(kind, key, userID string) string {
	event := kind
	if key != "" {
		event += ":" + key
	}
	if userID != "" {
		event += "@" + userID
	}
	return event
}

func (n *recordingNotifier) record(event string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

func (n *recordingNotifier) has(event string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, e := range n.events {
		if e == event {
			return true
		}
	}
	return false
}
