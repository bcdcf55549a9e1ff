package deck

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/wfunc/wordclash/logger"
	"github.com/wfunc/wordclash/models"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func card(word string) models.Card {
	return models.Card{
		ID:        "id-" + word,
		Word:      word,
		Forbidden: []string{"a", "b", "c", "d", "e"},
	}
}

func seedCards(n int) []models.Card {
	cards := make([]models.Card, n)
	for i := range cards {
		cards[i] = card(fmt.Sprintf("word%d", i))
	}
	return cards
}

// MockProvider is a test double for the Provider interface.
type MockProvider struct {
	mu    sync.Mutex
	calls int32
	cards []models.Card
	err   error
	block chan struct{} // when set, GenerateCards waits until closed
	done  chan struct{} // closed after every call returns
}

func (p *MockProvider) GenerateCards(ctx context.Context, count int) ([]models.Card, error) {
	atomic.AddInt32(&p.calls, 1)
	if p.block != nil {
		<-p.block
	}
	defer func() {
		if p.done != nil {
			select {
			case p.done <- struct{}{}:
			default:
			}
		}
	}()
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cards, p.err
}

// MockStore records persisted cards.
type MockStore struct {
	mu       sync.Mutex
	inserted []models.Card
}

func (s *MockStore) LoadAllCards() ([]models.Card, error) { return nil, nil }

func (s *MockStore) InsertCards(cards []models.Card) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inserted = append(s.inserted, cards...)
	return len(cards), nil
}

func (s *MockStore) Close() error { return nil }

func waitReplenished(t *testing.T, ch chan int) int {
	t.Helper()
	select {
	case total := <-ch:
		return total
	case <-time.After(2 * time.Second):
		t.Fatal("Replenishment never completed")
		return 0
	}
}

func TestMerge_DedupesByWord(t *testing.T) {
	m := NewManager([]models.Card{
		card("apple"),
		{ID: "dup", Word: "  Apple ", Forbidden: []string{"a", "b", "c", "d", "e"}},
		{ID: "blank", Word: "", Forbidden: []string{"a", "b", "c", "d", "e"}},
		{ID: "short", Word: "pear", Forbidden: []string{"a", "b"}},
		{Word: "plum", Forbidden: []string{"a", "b", "c", "d", "e"}},
	}, nil, nil, 5, 10, nil)

	if got := m.PoolSize(); got != 2 {
		t.Fatalf("Expected pool of 2 after dedupe and validation, got %d", got)
	}
	for _, c := range m.ShuffledDeck() {
		if c.ID == "" {
			t.Fatalf("Card %q entered the pool without an ID", c.Word)
		}
	}
}

func TestShuffledDeck_IsACopy(t *testing.T) {
	m := NewManager(seedCards(30), nil, nil, 5, 10, nil)

	deck := m.ShuffledDeck()
	if len(deck) != 30 {
		t.Fatalf("Expected 30 cards, got %d", len(deck))
	}
	words := make(map[string]bool, len(deck))
	for _, c := range deck {
		words[c.Word] = true
	}
	if len(words) != 30 {
		t.Fatal("Shuffle must preserve the card set")
	}

	// Mutating the handed-out deck must not corrupt the pool.
	deck[0].Word = "vandalized"
	for _, c := range m.ShuffledDeck() {
		if c.Word == "vandalized" {
			t.Fatal("ShuffledDeck handed out a view into the pool")
		}
	}
}

func TestCheckLowWatermark_AboveThresholdIsQuiet(t *testing.T) {
	provider := &MockProvider{}
	m := NewManager(seedCards(20), provider, nil, 5, 10, nil)

	if m.CheckLowWatermark(nil) {
		t.Fatal("Pool above the watermark must not replenish")
	}
	if atomic.LoadInt32(&provider.calls) != 0 {
		t.Fatal("Provider must not be consulted above the watermark")
	}
}

func TestCheckLowWatermark_Replenishes(t *testing.T) {
	provider := &MockProvider{cards: []models.Card{card("fresh1"), card("fresh2")}}
	store := &MockStore{}
	m := NewManager(seedCards(3), provider, store, 5, 10, nil)

	notify := make(chan int, 1)
	if !m.CheckLowWatermark(func(total int) { notify <- total }) {
		t.Fatal("Pool below the watermark must start a replenishment")
	}

	if total := waitReplenished(t, notify); total != 5 {
		t.Fatalf("Expected pool of 5 after merge, got %d", total)
	}
	if m.PoolSize() != 5 {
		t.Fatalf("Pool size is %d", m.PoolSize())
	}

	store.mu.Lock()
	persisted := len(store.inserted)
	store.mu.Unlock()
	if persisted != 2 {
		t.Fatalf("Expected 2 fresh cards persisted, got %d", persisted)
	}
}

func TestCheckLowWatermark_SingleFlight(t *testing.T) {
	provider := &MockProvider{
		cards: []models.Card{card("fresh1")},
		block: make(chan struct{}),
	}
	m := NewManager(seedCards(3), provider, nil, 5, 10, nil)

	notify := make(chan int, 1)
	if !m.CheckLowWatermark(func(total int) { notify <- total }) {
		t.Fatal("First check must start a replenishment")
	}
	for i := 0; i < 10; i++ {
		if m.CheckLowWatermark(nil) {
			t.Fatal("Second check must not start a concurrent replenishment")
		}
	}

	close(provider.block)
	waitReplenished(t, notify)
	if got := atomic.LoadInt32(&provider.calls); got != 1 {
		t.Fatalf("Expected a single provider call, got %d", got)
	}
}

func TestReplenish_FailureLeavesPoolIntact(t *testing.T) {
	provider := &MockProvider{
		err:  errors.New("generator offline"),
		done: make(chan struct{}, 1),
	}
	m := NewManager(seedCards(3), provider, nil, 5, 10, nil)

	if !m.CheckLowWatermark(nil) {
		t.Fatal("Check below the watermark must attempt a replenishment")
	}
	select {
	case <-provider.done:
	case <-time.After(2 * time.Second):
		t.Fatal("Provider was never called")
	}

	// The in-flight flag must clear so the next check retries.
	deadline := time.Now().Add(2 * time.Second)
	for {
		if m.CheckLowWatermark(nil) {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("Failed replenishment must not jam the single-flight latch")
		}
		time.Sleep(5 * time.Millisecond)
	}
	if m.PoolSize() != 3 {
		t.Fatalf("Failure must leave the pool unchanged, got %d", m.PoolSize())
	}
}

func TestNilProvider(t *testing.T) {
	m := NewManager(seedCards(1), nil, nil, 5, 10, nil)
	if m.CheckLowWatermark(nil) {
		t.Fatal("Without a provider the check must be a no-op")
	}
}
