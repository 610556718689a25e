package llmvalidate

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// outcome is one observation fed into the circuit breaker's sliding window.
type outcome struct {
	failed           bool
	invalidJSONRetry bool
}

// CircuitBreaker is a sliding-window health gate over the last `window`
// adjudication outcomes for one entity type within one run. Once the window
// is full, a fail rate or invalid-JSON rate at or above the configured
// ceiling opens the breaker for the remainder of the stage (§4.3, §5: a
// tripped breaker never persists across stages or runs).
//
// State is kept in Redis when a client is supplied so that multiple worker
// instances racing on the same run observe a consistent window; when Redis
// is unavailable it degrades to an in-process window scoped to this
// CircuitBreaker value.
type CircuitBreaker struct {
	window             int
	maxFailRate        float64
	maxInvalidJSONRate float64

	redis   *redis.Client
	redisKey string

	mu     sync.Mutex
	local  []outcome
}

// NewCircuitBreaker builds a breaker for one (run_id, entity_type) scope.
// redisClient may be nil, in which case the breaker is purely in-memory.
func NewCircuitBreaker(redisClient *redis.Client, redisKey string, window int, maxFailRate, maxInvalidJSONRate float64) *CircuitBreaker {
	return &CircuitBreaker{
		window:             window,
		maxFailRate:        maxFailRate,
		maxInvalidJSONRate: maxInvalidJSONRate,
		redis:              redisClient,
		redisKey:           redisKey,
	}
}

// Record appends one outcome to the window.
func (b *CircuitBreaker) Record(ctx context.Context, failed, invalidJSONRetry bool) {
	if b.redis != nil {
		if err := b.recordRedis(ctx, failed, invalidJSONRetry); err == nil {
			return
		} else {
			log.Warn().Err(err).Msg("circuit breaker redis write failed, falling back to in-memory window")
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.local = appendBounded(b.local, outcome{failed: failed, invalidJSONRetry: invalidJSONRetry}, b.window)
}

// Tripped reports whether the window is full and either rate ceiling is
// breached.
func (b *CircuitBreaker) Tripped(ctx context.Context) bool {
	var window []outcome
	if b.redis != nil {
		if fromRedis, err := b.readRedis(ctx); err == nil {
			window = fromRedis
		} else {
			log.Warn().Err(err).Msg("circuit breaker redis read failed, falling back to in-memory window")
		}
	}
	if window == nil {
		b.mu.Lock()
		window = append([]outcome(nil), b.local...)
		b.mu.Unlock()
	}

	if len(window) < b.window {
		return false
	}

	var failed, invalidJSONRetry int
	for _, o := range window {
		if o.failed {
			failed++
		}
		if o.invalidJSONRetry {
			invalidJSONRetry++
		}
	}

	failRate := float64(failed) / float64(len(window))
	invalidRate := float64(invalidJSONRetry) / float64(len(window))
	return failRate >= b.maxFailRate || invalidRate >= b.maxInvalidJSONRate
}

func appendBounded(window []outcome, o outcome, max int) []outcome {
	window = append(window, o)
	if len(window) > max {
		window = window[len(window)-max:]
	}
	return window
}

func (b *CircuitBreaker) recordRedis(ctx context.Context, failed, invalidJSONRetry bool) error {
	encoded := "0"
	if failed && invalidJSONRetry {
		encoded = "3"
	} else if failed {
		encoded = "1"
	} else if invalidJSONRetry {
		encoded = "2"
	}

	pipe := b.redis.TxPipeline()
	pipe.RPush(ctx, b.redisKey, encoded)
	pipe.LTrim(ctx, b.redisKey, int64(-b.window), -1)
	pipe.Expire(ctx, b.redisKey, 6*time.Hour)
	_, err := pipe.Exec(ctx)
	return err
}

func (b *CircuitBreaker) readRedis(ctx context.Context) ([]outcome, error) {
	vals, err := b.redis.LRange(ctx, b.redisKey, 0, -1).Result()
	if err != nil {
		return nil, err
	}

	window := make([]outcome, 0, len(vals))
	for _, v := range vals {
		switch v {
		case "1":
			window = append(window, outcome{failed: true})
		case "2":
			window = append(window, outcome{invalidJSONRetry: true})
		case "3":
			window = append(window, outcome{failed: true, invalidJSONRetry: true})
		default:
			window = append(window, outcome{})
		}
	}
	return window, nil
}
