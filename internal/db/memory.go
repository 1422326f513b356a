package db

import (
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/Nixie-Tech-LLC/onair/internal/model"
)

// MemoryStore is an in-process Store used by tests of the layers above the database.
type MemoryStore struct {
	mu       sync.Mutex
	users    []model.User
	station  model.Station
	programs map[string]model.Program
	schedule model.Schedule

	// Err, when set, is returned by every call.
	Err error
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	st := model.Station{ID: stationID}
	st.Sanitize()
	return &MemoryStore{
		station:  st,
		programs: map[string]model.Program{},
		schedule: model.Schedule{},
	}
}

func (m *MemoryStore) CreateUser(email, hashedPassword string, name *string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createUser(email, hashedPassword, name)
}

func (m *MemoryStore) CreateFirstUser(email, hashedPassword string, name *string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err == nil && len(m.users) > 0 {
		return 0, ErrSignupClosed
	}
	return m.createUser(email, hashedPassword, name)
}

// createUser expects m.mu to be held.
func (m *MemoryStore) createUser(email, hashedPassword string, name *string) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	for _, u := range m.users {
		if u.Email == email {
			return 0, ErrDuplicateEmail
		}
	}
	now := time.Now()
	id := len(m.users) + 1
	m.users = append(m.users, model.User{
		ID: id, Email: email, HashedPassword: hashedPassword, Name: name,
		CreatedAt: now, UpdatedAt: now,
	})
	return id, nil
}

func (m *MemoryStore) CountUsers() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users), m.Err
}

func (m *MemoryStore) GetUserByEmail(email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	for _, u := range m.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *MemoryStore) GetUserByID(id int) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	for _, u := range m.users {
		if u.ID == id {
			u := u
			return &u, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *MemoryStore) UpdateUserProfile(id int, email string, name *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	for i := range m.users {
		if m.users[i].ID == id {
			m.users[i].Email = email
			m.users[i].Name = name
			m.users[i].UpdatedAt = time.Now()
			return nil
		}
	}
	return ErrNoSuchUser
}

func (m *MemoryStore) GetStation() (model.Station, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.station, m.Err
}

func (m *MemoryStore) SaveStation(st model.Station) (model.Station, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return model.Station{}, m.Err
	}
	st.ID = stationID
	st.UpdatedAt = time.Now()
	m.station = st
	return st, nil
}

func (m *MemoryStore) ListPrograms() ([]model.Program, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]model.Program, 0, len(m.programs))
	for _, p := range m.programs {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *MemoryStore) GetProgram(id string) (model.Program, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return model.Program{}, m.Err
	}
	p, ok := m.programs[id]
	if !ok {
		return model.Program{}, sql.ErrNoRows
	}
	return p, nil
}

func (m *MemoryStore) CreateProgram(p model.Program) (model.Program, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return model.Program{}, m.Err
	}
	if _, ok := m.programs[p.ID]; ok {
		return model.Program{}, ErrDuplicateProgram
	}
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	m.programs[p.ID] = p
	return p, nil
}

func (m *MemoryStore) UpdateProgram(p model.Program) (model.Program, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return model.Program{}, m.Err
	}
	old, ok := m.programs[p.ID]
	if !ok {
		return model.Program{}, sql.ErrNoRows
	}
	p.CreatedAt = old.CreatedAt
	p.UpdatedAt = time.Now()
	m.programs[p.ID] = p
	return p, nil
}

func (m *MemoryStore) DeleteProgram(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.programs[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.programs, id)
	return nil
}

func (m *MemoryStore) GetSchedule() (model.Schedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return copySchedule(m.schedule), nil
}

func (m *MemoryStore) ReplaceSchedule(s model.Schedule) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.schedule = copySchedule(s)
	return nil
}

func copySchedule(s model.Schedule) model.Schedule {
	out := model.Schedule{}
	for day, entries := range s {
		if len(entries) == 0 {
			continue
		}
		cp := make([]model.ScheduleEntry, len(entries))
		for i, e := range entries {
			e.Day = string(day)
			e.Position = i
			cp[i] = e
		}
		out[day] = cp
	}
	return out
}
