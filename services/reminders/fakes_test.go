package reminders

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	employeeRepo "admitdesk/database/repository/employee"
	reminderRepo "admitdesk/database/repository/reminder"
	"admitdesk/models"
	"admitdesk/services/notification"
)

// memReminders mirrors the Mongo repository's query semantics in memory.
type memReminders struct {
	mu      sync.Mutex
	byID    map[string]*models.Reminder
	nextID  int
	findErr error
	markErr error
	// stolen simulates another dispatcher flipping the flag first.
	stolen map[string]bool
}

func newMemReminders(rs ...models.Reminder) *memReminders {
	m := &memReminders{byID: map[string]*models.Reminder{}, stolen: map[string]bool{}}
	for i := range rs {
		r := rs[i]
		m.byID[r.ID] = &r
	}
	return m
}

func (m *memReminders) Create(_ context.Context, r *models.Reminder) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r.ID == "" {
		m.nextID++
		r.ID = fmt.Sprintf("R%d", m.nextID)
	}
	cp := *r
	m.byID[r.ID] = &cp
	return nil
}

func (m *memReminders) GetByID(_ context.Context, id string) (*models.Reminder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.byID[id]
	if !ok {
		return nil, reminderRepo.ErrReminderNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *memReminders) List(_ context.Context, f models.ReminderFilter) ([]models.Reminder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Reminder{}
	for _, r := range m.byID {
		if f.EmployeeID != "" && r.EmployeeID != f.EmployeeID {
			continue
		}
		if f.Type != "" && r.Type != f.Type {
			continue
		}
		if f.TargetID != "" && r.TargetID != f.TargetID {
			continue
		}
		if f.Notified != nil && r.Notified != *f.Notified {
			continue
		}
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out, nil
}

func (m *memReminders) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return reminderRepo.ErrReminderNotFound
	}
	delete(m.byID, id)
	return nil
}

func (m *memReminders) DeleteByTarget(_ context.Context, ownerType, targetID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, r := range m.byID {
		if r.Type == ownerType && r.TargetID == targetID {
			delete(m.byID, id)
			n++
		}
	}
	return n, nil
}

func (m *memReminders) FindDue(_ context.Context, now, notBefore string, limit int64) ([]models.Reminder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findErr != nil {
		return nil, m.findErr
	}
	var out []models.Reminder
	for _, r := range m.byID {
		if r.Notified || r.Time > now || (notBefore != "" && r.Time < notBefore) {
			continue
		}
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memReminders) MarkSent(_ context.Context, id string, at time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.markErr != nil {
		return false, m.markErr
	}
	r, ok := m.byID[id]
	if !ok {
		return false, nil
	}
	if m.stolen[id] {
		r.Notified = true
		return false, nil
	}
	if r.Notified {
		return false, nil
	}
	r.Notified = true
	r.NotifiedAt = &at
	return true, nil
}

func (m *memReminders) get(id string) models.Reminder {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.byID[id]
}

type emission struct {
	Room  string
	Event models.RealtimeEvent
}

type recordingPublisher struct {
	mu        sync.Mutex
	emissions []emission
	err       error
}

func (p *recordingPublisher) Publish(_ context.Context, room string, ev models.RealtimeEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.emissions = append(p.emissions, emission{Room: room, Event: ev})
	return nil
}

type recordingSMS struct {
	mu   sync.Mutex
	sent []notification.SMS
	// failFor makes sends to these numbers fail.
	failFor map[string]bool
}

func (s *recordingSMS) Send(_ context.Context, msg notification.SMS) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, msg)
	if s.failFor[msg.To] {
		return errors.New("provider unavailable")
	}
	return nil
}

type recordingPush struct {
	tokens []string
}

func (p *recordingPush) Send(_ context.Context, token, _, _ string, _ map[string]string) error {
	p.tokens = append(p.tokens, token)
	return nil
}

type staticContacts struct {
	contacts map[string]models.Contact
	err      error
}

func (c *staticContacts) GetContact(_ context.Context, id string) (*models.Contact, error) {
	if c.err != nil {
		return nil, c.err
	}
	contact, ok := c.contacts[id]
	if !ok {
		return nil, employeeRepo.ErrEmployeeNotFound
	}
	return &contact, nil
}
