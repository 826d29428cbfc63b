// Package state provides thread-safe state management for the application.
package state

import (
	"sync"
	"time"

	"github.com/litescript/ls-hora/internal/engine"
	"github.com/litescript/ls-hora/internal/hora"
	"github.com/litescript/ls-hora/internal/jyotish"
	"github.com/litescript/ls-hora/internal/news"
)

// EventType represents the type of state change event.
type EventType string

const (
	EventHoraChange EventType = "HORA_CHANGE"
	EventRahuStart  EventType = "RAHU_START"
	EventRahuEnd    EventType = "RAHU_END"
	EventDateChange EventType = "DATE_CHANGE"
)

// Event represents a change between two consecutive evaluations.
type Event struct {
	Type      EventType      `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	Date      string         `json:"date"`
	OldPlanet jyotish.Planet `json:"old_planet,omitempty"`
	NewPlanet jyotish.Planet `json:"new_planet,omitempty"`
}

// Manager handles all shared application state with thread-safe access.
type Manager struct {
	mu sync.RWMutex

	// Current state
	current      *engine.Evaluation
	lastUpdate   time.Time
	lastError    error
	evalDuration time.Duration

	// Headlines are fetched separately from evaluations
	news        []news.Item
	newsError   error
	newsFetched time.Time

	// Event log (ring buffer)
	events       []Event
	maxEvents    int
	eventWriteAt int

	refreshInterval time.Duration
	now             func() time.Time
}

// Config holds configuration for the state manager.
type Config struct {
	MaxEvents       int
	RefreshInterval time.Duration
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		MaxEvents:       50,
		RefreshInterval: 60 * time.Second,
	}
}

// NewManager creates a new state manager.
func NewManager(cfg Config) *Manager {
	maxEvents := cfg.MaxEvents
	if maxEvents <= 0 {
		maxEvents = 50
	}
	return &Manager{
		maxEvents:       maxEvents,
		events:          make([]Event, 0, maxEvents),
		refreshInterval: cfg.RefreshInterval,
		now:             time.Now,
	}
}

// Update stores a new evaluation. A nil evaluation records only the error
// and keeps the previous result on display.
func (m *Manager) Update(ev *engine.Evaluation, dur time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastUpdate = m.now()
	m.lastError = err
	m.evalDuration = dur

	if ev == nil {
		return
	}

	if m.current != nil {
		m.detectEvents(m.current, ev)
	}
	m.current = ev
}

// detectEvents compares consecutive evaluations. Hora and Rahu transitions
// are only meaningful while both are live views of the same day.
func (m *Manager) detectEvents(prev, next *engine.Evaluation) {
	ts := next.Now
	date := next.Schedule.Date.Format("2006-01-02")

	if !prev.Schedule.Date.Equal(next.Schedule.Date) {
		m.addEvent(Event{Type: EventDateChange, Timestamp: ts, Date: date})
		return
	}
	if !prev.Live || !next.Live {
		return
	}

	oldPlanet, oldRahu := slotInfo(prev.Current)
	newPlanet, newRahu := slotInfo(next.Current)

	if !sameSlot(prev.Current, next.Current) {
		m.addEvent(Event{
			Type:      EventHoraChange,
			Timestamp: ts,
			Date:      date,
			OldPlanet: oldPlanet,
			NewPlanet: newPlanet,
		})
	}

	switch {
	case !oldRahu && newRahu:
		m.addEvent(Event{Type: EventRahuStart, Timestamp: ts, Date: date, NewPlanet: newPlanet})
	case oldRahu && !newRahu:
		m.addEvent(Event{Type: EventRahuEnd, Timestamp: ts, Date: date, OldPlanet: oldPlanet})
	}
}

func slotInfo(s *hora.Slot) (jyotish.Planet, bool) {
	if s == nil {
		return "", false
	}
	return s.Planet, s.IsRahu
}

func sameSlot(a, b *hora.Slot) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Start.Equal(b.Start)
}

// addEvent adds an event to the ring buffer.
func (m *Manager) addEvent(e Event) {
	if len(m.events) < m.maxEvents {
		m.events = append(m.events, e)
	} else {
		m.events[m.eventWriteAt] = e
		m.eventWriteAt = (m.eventWriteAt + 1) % m.maxEvents
	}
}

// UpdateNews stores the latest headlines. An empty list keeps the previous
// headlines.
func (m *Manager) UpdateNews(res news.Result) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.newsError = res.Error
	if len(res.Items) == 0 {
		return
	}
	m.news = append([]news.Item(nil), res.Items...)
	m.newsFetched = res.FetchedAt
}

// Snapshot represents an immutable snapshot of current state.
type Snapshot struct {
	Evaluation   *engine.Evaluation
	LastUpdate   time.Time
	LastError    error
	EvalDuration time.Duration
	News         []news.Item
	NewsError    error
	NewsFetched  time.Time
	Events       []Event
}

// Snapshot returns a consistent snapshot of current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	items := make([]news.Item, len(m.news))
	copy(items, m.news)

	return Snapshot{
		Evaluation:   m.current,
		LastUpdate:   m.lastUpdate,
		LastError:    m.lastError,
		EvalDuration: m.evalDuration,
		News:         items,
		NewsError:    m.newsError,
		NewsFetched:  m.newsFetched,
		Events:       m.getEventsOrdered(),
	}
}

// getEventsOrdered returns events in chronological order.
func (m *Manager) getEventsOrdered() []Event {
	if len(m.events) == 0 {
		return nil
	}

	if len(m.events) < m.maxEvents {
		result := make([]Event, len(m.events))
		copy(result, m.events)
		return result
	}

	// Ring buffer is full, reorder from oldest to newest
	result := make([]Event, m.maxEvents)
	for i := 0; i < m.maxEvents; i++ {
		idx := (m.eventWriteAt + i) % m.maxEvents
		result[i] = m.events[idx]
	}
	return result
}

// RecentEvents returns the last n events.
func (m *Manager) RecentEvents(n int) []Event {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.getEventsOrdered()
	if len(all) <= n {
		return all
	}
	return all[len(all)-n:]
}

// RefreshInterval returns the configured refresh interval.
func (m *Manager) RefreshInterval() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.refreshInterval
}

// SetRefreshInterval updates the refresh interval.
func (m *Manager) SetRefreshInterval(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refreshInterval = d
}

// HasData returns true once an evaluation has succeeded.
func (m *Manager) HasData() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current != nil
}
