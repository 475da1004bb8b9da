package cache

import (
	"context"
	"sync"
	"time"

	"startupcopilot/internal/domain"
	"startupcopilot/internal/engine"
)

// LevelFetchFunc достаёт определения уровней из конфигурации (БД).
type LevelFetchFunc func(ctx context.Context) ([]domain.LevelDefinition, error)

// LevelCache — in-process снапшот определений уровней с TTL.
// Пороговые значения меняются редко, поэтому устаревание до пяти минут
// допустимо; зато читатели дашборда не ходят в БД на каждый запрос.
// Конструируется явно и передаётся зависимостью, часы подменяемы в тестах.
type LevelCache struct {
	mu     sync.RWMutex
	fetch  LevelFetchFunc
	ttl    time.Duration
	now    func() time.Time
	defs   []domain.LevelDefinition
	expiry time.Time
}

const DefaultLevelTTL = 5 * time.Minute

func NewLevelCache(fetch LevelFetchFunc, ttl time.Duration, now func() time.Time) *LevelCache {
	if ttl <= 0 {
		ttl = DefaultLevelTTL
	}
	if now == nil {
		now = time.Now
	}
	return &LevelCache{fetch: fetch, ttl: ttl, now: now}
}

// Get никогда не падает: при недоступной конфигурации или невалидных
// данных отдаёт зашитую таблицу. Конкурирующие читатели внутри TTL
// видят один снапшот; параллельное обновление после истечения может
// случиться дважды — это не проблема корректности.
func (c *LevelCache) Get(ctx context.Context) []domain.LevelDefinition {
	c.mu.RLock()
	if c.defs != nil && c.now().Before(c.expiry) {
		defs := c.defs
		c.mu.RUnlock()
		return defs
	}
	c.mu.RUnlock()

	defs, err := c.fetch(ctx)
	if err != nil || engine.ValidateLevelDefs(defs) != nil {
		defs = engine.FallbackLevels()
	}

	c.mu.Lock()
	c.defs = defs
	c.expiry = c.now().Add(c.ttl)
	c.mu.Unlock()
	return defs
}
