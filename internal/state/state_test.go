package state

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/litescript/ls-hora/internal/engine"
	"github.com/litescript/ls-hora/internal/hora"
	"github.com/litescript/ls-hora/internal/jyotish"
	"github.com/litescript/ls-hora/internal/news"
)

var day = time.Date(2025, 1, 6, 0, 0, 0, 0, hora.IST)

func slot(h int, p jyotish.Planet, rahu bool) *hora.Slot {
	start := day.Add(time.Duration(h) * time.Hour)
	return &hora.Slot{Start: start, End: start.Add(time.Hour), Planet: p, IsRahu: rahu}
}

func liveEval(now time.Time, current *hora.Slot) *engine.Evaluation {
	return &engine.Evaluation{
		Now:      now,
		Live:     true,
		Schedule: hora.Schedule{Date: day},
		Current:  current,
	}
}

func TestNewManager(t *testing.T) {
	cfg := DefaultConfig()
	m := NewManager(cfg)

	if m == nil {
		t.Fatal("NewManager returned nil")
	}

	if m.RefreshInterval() != cfg.RefreshInterval {
		t.Errorf("RefreshInterval = %v, want %v", m.RefreshInterval(), cfg.RefreshInterval)
	}

	if m.HasData() {
		t.Error("HasData should be false initially")
	}
}

func TestManager_Update(t *testing.T) {
	m := NewManager(DefaultConfig())

	ev := liveEval(day.Add(10*time.Hour), slot(10, jyotish.Mars, false))
	m.Update(ev, 100*time.Millisecond, nil)

	if !m.HasData() {
		t.Error("HasData should be true after Update")
	}

	snap := m.Snapshot()

	if snap.Evaluation != ev {
		t.Error("Snapshot Evaluation doesn't match")
	}

	if snap.EvalDuration != 100*time.Millisecond {
		t.Errorf("EvalDuration = %v, want 100ms", snap.EvalDuration)
	}

	if snap.LastError != nil {
		t.Errorf("LastError = %v, want nil", snap.LastError)
	}

	if len(snap.Events) != 0 {
		t.Errorf("first update produced %d events, want 0", len(snap.Events))
	}
}

func TestManager_UpdateWithError(t *testing.T) {
	m := NewManager(DefaultConfig())

	ev := liveEval(day.Add(10*time.Hour), nil)
	m.Update(ev, 0, nil)

	testErr := errors.New("market is closed")
	m.Update(nil, 50*time.Millisecond, testErr)

	snap := m.Snapshot()

	if snap.Evaluation != ev {
		t.Error("previous evaluation should be kept on error")
	}

	if snap.LastError != testErr {
		t.Errorf("LastError = %v, want %v", snap.LastError, testErr)
	}
}

func TestManager_EventDetection_HoraChange(t *testing.T) {
	m := NewManager(DefaultConfig())

	m.Update(liveEval(day.Add(10*time.Hour+30*time.Minute), slot(10, jyotish.Mars, false)), 0, nil)
	m.Update(liveEval(day.Add(10*time.Hour+45*time.Minute), slot(10, jyotish.Mars, false)), 0, nil)

	if events := m.RecentEvents(10); len(events) != 0 {
		t.Fatalf("same slot produced %d events", len(events))
	}

	next := day.Add(11*time.Hour + time.Minute)
	m.Update(liveEval(next, slot(11, jyotish.Sun, false)), 0, nil)

	events := m.RecentEvents(10)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	e := events[0]
	if e.Type != EventHoraChange {
		t.Errorf("event type = %q, want HORA_CHANGE", e.Type)
	}
	if e.OldPlanet != jyotish.Mars || e.NewPlanet != jyotish.Sun {
		t.Errorf("planets = %s -> %s, want Mars -> Sun", e.OldPlanet, e.NewPlanet)
	}
	if !e.Timestamp.Equal(next) {
		t.Errorf("timestamp = %v, want %v", e.Timestamp, next)
	}
	if e.Date != "2025-01-06" {
		t.Errorf("date = %q", e.Date)
	}
}

func TestManager_EventDetection_Rahu(t *testing.T) {
	m := NewManager(DefaultConfig())

	m.Update(liveEval(day.Add(13*time.Hour), slot(13, jyotish.Jupiter, false)), 0, nil)
	m.Update(liveEval(day.Add(14*time.Hour), slot(14, jyotish.Mars, true)), 0, nil)
	m.Update(liveEval(day.Add(15*time.Hour), slot(15, jyotish.Sun, true)), 0, nil)
	m.Update(liveEval(day.Add(16*time.Hour), nil), 0, nil)

	var got []EventType
	for _, e := range m.RecentEvents(10) {
		got = append(got, e.Type)
	}
	want := []EventType{
		EventHoraChange, EventRahuStart,
		EventHoraChange,
		EventHoraChange, EventRahuEnd,
	}
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestManager_EventDetection_DateChange(t *testing.T) {
	m := NewManager(DefaultConfig())

	m.Update(liveEval(day.Add(15*time.Hour), slot(15, jyotish.Sun, false)), 0, nil)

	tomorrow := &engine.Evaluation{
		Now:      day.Add(33 * time.Hour),
		Live:     true,
		Schedule: hora.Schedule{Date: day.AddDate(0, 0, 1)},
	}
	m.Update(tomorrow, 0, nil)

	events := m.RecentEvents(10)
	if len(events) != 1 || events[0].Type != EventDateChange {
		t.Fatalf("events = %+v, want one DATE_CHANGE", events)
	}
	if events[0].Date != "2025-01-07" {
		t.Errorf("date = %q, want 2025-01-07", events[0].Date)
	}
}

func TestManager_EventDetection_NotLive(t *testing.T) {
	m := NewManager(DefaultConfig())

	future := func() *engine.Evaluation {
		return &engine.Evaluation{Schedule: hora.Schedule{Date: day}}
	}
	m.Update(future(), 0, nil)
	m.Update(future(), 0, nil)

	if events := m.RecentEvents(10); len(events) != 0 {
		t.Errorf("future views produced %d events", len(events))
	}
}

func TestManager_EventRingBuffer(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxEvents = 3
	m := NewManager(cfg)

	planets := []jyotish.Planet{jyotish.Sun, jyotish.Venus, jyotish.Mercury, jyotish.Moon, jyotish.Saturn, jyotish.Jupiter}
	for i, p := range planets {
		m.Update(liveEval(day.Add(time.Duration(9+i)*time.Hour), slot(9+i, p, false)), 0, nil)
	}

	events := m.Snapshot().Events
	if len(events) != 3 {
		t.Fatalf("len(events) = %d, want 3", len(events))
	}
	// Oldest kept is Mercury -> Moon
	if events[0].OldPlanet != jyotish.Mercury || events[2].NewPlanet != jyotish.Jupiter {
		t.Errorf("events not ordered oldest first: %+v", events)
	}

	recent := m.RecentEvents(1)
	if len(recent) != 1 || recent[0].NewPlanet != jyotish.Jupiter {
		t.Errorf("RecentEvents(1) = %+v", recent)
	}
}

func TestManager_UpdateNews(t *testing.T) {
	m := NewManager(DefaultConfig())
	fetched := time.Date(2025, 1, 6, 9, 30, 0, 0, hora.IST)

	m.UpdateNews(news.Result{
		Items:     []news.Item{{Title: "Nifty opens flat", Source: "ET"}},
		FetchedAt: fetched,
	})
	m.UpdateNews(news.Result{Error: errors.New("offline")})

	snap := m.Snapshot()
	if len(snap.News) != 1 || snap.News[0].Title != "Nifty opens flat" {
		t.Errorf("News = %+v", snap.News)
	}
	if !snap.NewsFetched.Equal(fetched) {
		t.Errorf("NewsFetched = %v", snap.NewsFetched)
	}
	if snap.NewsError == nil {
		t.Error("NewsError should be set")
	}

	snap.News[0].Title = "changed"
	if m.Snapshot().News[0].Title != "Nifty opens flat" {
		t.Error("Snapshot modification affected manager state")
	}
}

func TestManager_ConcurrentAccess(t *testing.T) {
	m := NewManager(DefaultConfig())

	var wg sync.WaitGroup
	iterations := 100

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < iterations; i++ {
			m.Update(liveEval(day.Add(time.Duration(i)*time.Minute), slot(9+i%7, jyotish.HoraPlanet(jyotish.Moon, i), i%3 == 0)), time.Duration(i)*time.Millisecond, nil)
			m.UpdateNews(news.Result{Items: []news.Item{news.Unavailable}})
		}
	}()

	for r := 0; r < 5; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				_ = m.Snapshot()
				_ = m.HasData()
				_ = m.RefreshInterval()
				_ = m.RecentEvents(5)
			}
		}()
	}

	wg.Wait()
}

func TestManager_SetRefreshInterval(t *testing.T) {
	m := NewManager(DefaultConfig())

	newInterval := 30 * time.Second
	m.SetRefreshInterval(newInterval)

	if m.RefreshInterval() != newInterval {
		t.Errorf("RefreshInterval = %v, want %v", m.RefreshInterval(), newInterval)
	}
}
