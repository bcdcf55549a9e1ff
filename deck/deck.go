// deck/deck.go
package deck

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wfunc/wordclash/logger"
	"github.com/wfunc/wordclash/models"
	"github.com/wfunc/wordclash/persistence"
)

// Provider 外部生成式内容提供方
type Provider interface {
	GenerateCards(ctx context.Context, count int) ([]models.Card, error)
}

// Metrics 补卡相关指标（可为 nil）
type Metrics interface {
	IncDeckReplenish()
	IncDeckReplenishFailure()
	SetDeckPoolSize(size int)
}

const replenishTimeout = 30 * time.Second

// Manager 持有全局卡池。对局开始时复制一份洗好的私有牌堆；
// 水位过低时在后台补充，对局永远不会被补卡阻塞。
type Manager struct {
	mu           sync.Mutex
	pool         []models.Card
	words        map[string]bool // 小写词表，按词去重
	rng          *rand.Rand
	provider     Provider
	store        persistence.CardStore
	lowWatermark int
	batch        int
	replenishing bool
	metrics      Metrics
}

func NewManager(cards []models.Card, provider Provider, store persistence.CardStore,
	lowWatermark, batch int, metrics Metrics) *Manager {

	m := &Manager{
		words:        make(map[string]bool),
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
		provider:     provider,
		store:        store,
		lowWatermark: lowWatermark,
		batch:        batch,
		metrics:      metrics,
	}
	m.merge(cards)
	if m.metrics != nil {
		m.metrics.SetDeckPoolSize(len(m.pool))
	}
	return m
}

// merge 去重合并（按词，大小写不敏感），返回实际新增数量。调用方须持锁或在构造期。
func (m *Manager) merge(cards []models.Card) int {
	added := 0
	for _, card := range cards {
		word := strings.ToLower(strings.TrimSpace(card.Word))
		if word == "" || m.words[word] {
			continue
		}
		if len(card.Forbidden) != 5 {
			continue
		}
		if card.ID == "" {
			card.ID = uuid.New().String()
		}
		m.words[word] = true
		m.pool = append(m.pool, card)
		added++
	}
	return added
}

// ShuffledDeck 返回全池的洗牌副本（Fisher–Yates）
func (m *Manager) ShuffledDeck() []models.Card {
	m.mu.Lock()
	defer m.mu.Unlock()

	deck := make([]models.Card, len(m.pool))
	copy(deck, m.pool)
	m.rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	return deck
}

func (m *Manager) PoolSize() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pool)
}

// CheckLowWatermark 记分后调用。水位过低且没有补卡在途时发起一次
// 后台补充，返回是否发起。同一时刻最多一次补充在途。
func (m *Manager) CheckLowWatermark(onReplenished func(total int)) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.provider == nil || m.replenishing || len(m.pool) > m.lowWatermark {
		return false
	}
	m.replenishing = true
	go m.replenish(onReplenished)
	return true
}

// replenish 后台补卡。失败只记日志，卡池保持原样，
// 下一次水位检查会再给它机会。
func (m *Manager) replenish(onReplenished func(total int)) {
	ctx, cancel := context.WithTimeout(context.Background(), replenishTimeout)
	defer cancel()

	cards, err := m.provider.GenerateCards(ctx, m.batch)

	m.mu.Lock()
	m.replenishing = false
	if err != nil {
		m.mu.Unlock()
		logger.Log.Warnf("Deck replenishment failed: %v", err)
		if m.metrics != nil {
			m.metrics.IncDeckReplenishFailure()
		}
		return
	}

	added := m.merge(cards)
	total := len(m.pool)
	fresh := make([]models.Card, 0, added)
	if added > 0 {
		fresh = append(fresh, m.pool[total-added:]...)
	}
	m.mu.Unlock()

	logger.Log.Infof("Deck replenished: %d new cards, pool size %d", added, total)
	if m.metrics != nil {
		m.metrics.IncDeckReplenish()
		m.metrics.SetDeckPoolSize(total)
	}

	if m.store != nil && len(fresh) > 0 {
		if _, err := m.store.InsertCards(fresh); err != nil {
			logger.Log.Warnf("Failed to persist replenished cards: %v", err)
		}
	}

	if onReplenished != nil {
		onReplenished(total)
	}
}
