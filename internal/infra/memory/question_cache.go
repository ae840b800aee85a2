package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/SantiagoCMS/Jogo-do-Milhao/internal/app"
	"github.com/SantiagoCMS/Jogo-do-Milhao/internal/domain"
	"golang.org/x/sync/singleflight"
)

// QuestionCache memoises source results per (level, subjects) with a TTL to
// avoid repeated store hits. It implements app.QuestionSource.
type QuestionCache struct {
	source app.QuestionSource
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group

	mu    sync.RWMutex
	rnd   *rand.Rand
	cache map[string]cachedQuestions
}

type cachedQuestions struct {
	questions []domain.Question
	expiresAt time.Time
}

func NewQuestionCache(source app.QuestionSource, ttl time.Duration) *QuestionCache {
	return &QuestionCache{
		source: source,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[string]cachedQuestions),
	}
}

func (c *QuestionCache) LoadQuestions(ctx context.Context, level string, subjects []string) ([]domain.Question, error) {
	key := app.QueryKey(level, subjects)
	if questions, ok := c.lookup(key, c.clock()); ok {
		return questions, nil
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		now := c.clock()
		if questions, ok := c.lookup(key, now); ok {
			return questions, nil
		}

		questions, err := c.source.LoadQuestions(ctx, level, subjects)
		if err != nil {
			return nil, err
		}

		expiresAt := now.Add(c.ttlWithJitter())
		c.mu.Lock()
		c.cache[key] = cachedQuestions{questions: questions, expiresAt: expiresAt}
		c.mu.Unlock()
		return questions, nil
	})
	if err != nil {
		return nil, err
	}
	return clone(result.([]domain.Question)), nil
}

func (c *QuestionCache) lookup(key string, now time.Time) ([]domain.Question, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.cache[key]
	if !ok || !entry.expiresAt.After(now) {
		return nil, false
	}
	return clone(entry.questions), true
}

func (c *QuestionCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}

func clone(questions []domain.Question) []domain.Question {
	return append([]domain.Question(nil), questions...)
}
