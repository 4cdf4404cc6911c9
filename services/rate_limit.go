package services

import (
	ctx "context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/lingo-leap/lingo_api/shared"
	log "github.com/sirupsen/logrus"
)

type RateLimitService struct {
	context.DefaultService

	configs map[string]*RateLimitConfig
	mutex   sync.RWMutex

	redisSvc *RedisService
}

// RateLimitConfig represents rate limiting configuration
type RateLimitConfig struct {
	EndpointType string
	MaxRequests  int
	WindowSize   time.Duration
	Description  string
	IsActive     bool
}

const RATE_LIMIT_SVC = "rate_limit_svc"

func (svc RateLimitService) Id() string {
	return RATE_LIMIT_SVC
}

func (svc *RateLimitService) Configure(ctx *context.Context) error {
	svc.configs = make(map[string]*RateLimitConfig)
	return svc.DefaultService.Configure(ctx)
}

func (svc *RateLimitService) Start() error {
	svc.redisSvc = svc.Service(REDIS_SVC).(*RedisService)
	svc.initDefaultConfigs()
	return nil
}

// ==================== CONFIGURATION MANAGEMENT ====================

func (svc *RateLimitService) initDefaultConfigs() {
	svc.mutex.Lock()
	defer svc.mutex.Unlock()

	svc.configs = map[string]*RateLimitConfig{
		"login": {
			EndpointType: "login",
			MaxRequests:  10,
			WindowSize:   15 * time.Minute,
			Description:  "Login attempts rate limit",
			IsActive:     true,
		},
		"register": {
			EndpointType: "register",
			MaxRequests:  5,
			WindowSize:   15 * time.Minute,
			Description:  "Registration rate limit",
			IsActive:     true,
		},
		"lesson_complete": {
			EndpointType: "lesson_complete",
			MaxRequests:  60,
			WindowSize:   time.Hour,
			Description:  "Lesson completion rate limit",
			IsActive:     true,
		},
		"quiz_submit": {
			EndpointType: "quiz_submit",
			MaxRequests:  20,
			WindowSize:   time.Hour,
			Description:  "Daily quiz submission rate limit",
			IsActive:     true,
		},
		"quest_claim": {
			EndpointType: "quest_claim",
			MaxRequests:  30,
			WindowSize:   time.Hour,
			Description:  "Quest claim rate limit",
			IsActive:     true,
		},
		"api_general": {
			EndpointType: "api_general",
			MaxRequests:  1000,
			WindowSize:   time.Hour,
			Description:  "General API rate limit per IP",
			IsActive:     true,
		},
	}
}

// ==================== CORE RATE LIMITING LOGIC ====================

// IsAllowed runs a fixed-window counter in redis: INCR the window key,
// set the TTL on first hit, reject once the counter passes the limit.
func (svc *RateLimitService) IsAllowed(identifier, endpointType string) (bool, int, error) {
	svc.mutex.RLock()
	config, exists := svc.configs[endpointType]
	svc.mutex.RUnlock()

	if !exists || !config.IsActive {
		return true, -1, nil
	}

	rctx := ctx.Background()
	key := fmt.Sprintf("rate_limit:%s:%s", endpointType, identifier)

	count, err := svc.redisSvc.Increment(rctx, key)
	if err != nil {
		return false, 0, err
	}

	if count == 1 {
		if err := svc.redisSvc.Expire(rctx, key, config.WindowSize); err != nil {
			log.Printf("Failed to set rate limit TTL for %s: %v", key, err)
		}
	}

	remaining := config.MaxRequests - int(count)
	if remaining < 0 {
		remaining = 0
	}

	return count <= int64(config.MaxRequests), remaining, nil
}

// ==================== MIDDLEWARE FUNCTIONS ====================

// RateLimit creates a rate limiting middleware for specific endpoint types
func (svc *RateLimitService) RateLimit(endpointType string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identifier := svc.getIdentifier(c)

		allowed, remaining, err := svc.IsAllowed(identifier, endpointType)
		if err != nil {
			log.Printf("Rate limit check error for %s (%s): %v", endpointType, identifier, err)
			// Continue with request on error to avoid blocking users due to system issues
			return c.Next()
		}

		if remaining >= 0 {
			c.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		}

		if !allowed {
			return shared.ResponseJSON(c, http.StatusTooManyRequests, "Too many requests. Please try again later.", nil)
		}

		return c.Next()
	}
}

// IPRateLimit applies general rate limiting by IP address
func (svc *RateLimitService) IPRateLimit() fiber.Handler {
	return svc.RateLimit("api_general")
}

func (svc *RateLimitService) getIdentifier(c *fiber.Ctx) string {
	// Prefer the authenticated user; anonymous traffic keys on IP.
	if userID, ok := c.Locals(shared.UserID).(string); ok && userID != "" {
		return userID
	}
	return c.IP()
}
