package services

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/ArowuTest/bridgetunes-raffle/internal/models"
	"github.com/ArowuTest/bridgetunes-raffle/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var errStorage = errors.New("storage unavailable")

type memParticipants struct {
	mu   sync.Mutex
	rows []models.Participant
	err  error
}

func (m *memParticipants) ReplaceAll(_ context.Context, ps []models.Participant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.rows = append([]models.Participant(nil), ps...)
	return nil
}

func (m *memParticipants) FindAll(context.Context) ([]models.Participant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Participant(nil), m.rows...), m.err
}

func (m *memParticipants) Count(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.rows)), m.err
}

type memDraws struct {
	mu      sync.Mutex
	draws   map[primitive.ObjectID]models.Draw
	order   []primitive.ObjectID
	updates int
}

func newMemDraws() *memDraws {
	return &memDraws{draws: make(map[primitive.ObjectID]models.Draw)}
}

func (m *memDraws) Create(_ context.Context, d *models.Draw) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d.ID = primitive.NewObjectID()
	m.draws[d.ID] = *d
	m.order = append(m.order, d.ID)
	return nil
}

func (m *memDraws) Update(_ context.Context, d *models.Draw) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.draws[d.ID]; !ok {
		return repositories.ErrNotFound
	}
	m.draws[d.ID] = *d
	m.updates++
	return nil
}

func (m *memDraws) FindByID(_ context.Context, id primitive.ObjectID) (*models.Draw, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.draws[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &d, nil
}

func (m *memDraws) FindRecent(_ context.Context, limit int) ([]*models.Draw, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*models.Draw{}
	for i := len(m.order) - 1; i >= 0 && len(out) < limit; i-- {
		d := m.draws[m.order[i]]
		out = append(out, &d)
	}
	return out, nil
}

type memWinners struct {
	mu   sync.Mutex
	rows []*models.Winner
	err  error
}

func (m *memWinners) CreateMany(_ context.Context, ws []*models.Winner) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.rows = append(m.rows, ws...)
	return nil
}

func (m *memWinners) FindByDrawID(_ context.Context, id primitive.ObjectID) ([]*models.Winner, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*models.Winner{}
	for _, w := range m.rows {
		if w.DrawID == id {
			out = append(out, w)
		}
	}
	return out, nil
}

type memTemplates struct {
	mu    sync.Mutex
	byKey map[string]models.Template
}

func newMemTemplates() *memTemplates {
	return &memTemplates{byKey: make(map[string]models.Template)}
}

func (m *memTemplates) Upsert(_ context.Context, t *models.Template) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byKey[t.Name] = *t
	return nil
}

func (m *memTemplates) FindByName(_ context.Context, name string) (*models.Template, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.byKey[name]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &t, nil
}

func (m *memTemplates) FindAll(context.Context) ([]*models.Template, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*models.Template{}
	for _, t := range m.byKey {
		t := t
		out = append(out, &t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type memAdmins struct {
	mu    sync.Mutex
	users map[string]models.AdminUser
}

func newMemAdmins() *memAdmins {
	return &memAdmins{users: make(map[string]models.AdminUser)}
}

func (m *memAdmins) Create(_ context.Context, u *models.AdminUser) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u.ID = primitive.NewObjectID()
	m.users[u.Email] = *u
	return nil
}

func (m *memAdmins) FindByEmail(_ context.Context, email string) (*models.AdminUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[email]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &u, nil
}
