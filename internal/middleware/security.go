package middleware

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/peerlearn/peerlearn-backend/pkg/clientip"
)

const (
	headerXContentTypeOptions     = "X-Content-Type-Options"
	headerXFrameOptions           = "X-Frame-Options"
	headerContentSecurityPolicy   = "Content-Security-Policy"
	headerStrictTransportSecurity = "Strict-Transport-Security"
)

// SecurityHeaders sets security-related response headers.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(headerXContentTypeOptions, "nosniff")
		w.Header().Set(headerXFrameOptions, "DENY")
		w.Header().Set(headerContentSecurityPolicy, "default-src 'self'")
		w.Header().Set(headerStrictTransportSecurity, "max-age=31536000; includeSubDomains")
		next.ServeHTTP(w, r)
	})
}

// --- Global rate limiting (per-IP, 2/s, burst 20) ---

type limiterEntry struct {
	limiter *rate.Limiter
	lastUse time.Time
}

var (
	globalEntries    = make(map[string]*limiterEntry)
	globalEntriesMu  sync.Mutex
	globalCleanupRun bool
)

const (
	globalRateLimitRPS    = 2
	globalRateLimitBurst  = 20
	globalCleanupInterval = 5 * time.Minute
	globalLimiterTTL      = 30 * time.Minute
)

func getGlobalLimiter(ip string) *rate.Limiter {
	globalEntriesMu.Lock()
	defer globalEntriesMu.Unlock()
	startGlobalCleanupOnce()
	e, ok := globalEntries[ip]
	if !ok {
		e = &limiterEntry{
			limiter: rate.NewLimiter(rate.Limit(globalRateLimitRPS), globalRateLimitBurst),
			lastUse: time.Now(),
		}
		globalEntries[ip] = e
	}
	e.lastUse = time.Now()
	return e.limiter
}

func startGlobalCleanupOnce() {
	if globalCleanupRun {
		return
	}
	globalCleanupRun = true
	go func() {
		ticker := time.NewTicker(globalCleanupInterval)
		defer ticker.Stop()
		for range ticker.C {
			globalEntriesMu.Lock()
			now := time.Now()
			for ip, e := range globalEntries {
				if now.Sub(e.lastUse) > globalLimiterTTL {
					delete(globalEntries, ip)
				}
			}
			globalEntriesMu.Unlock()
		}
	}()
}

// GlobalRateLimit limits each IP to 2 req/s, burst 20. Returns 429 when exceeded.
func GlobalRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientip.RealClientIP(r)
		if !getGlobalLimiter(ip).Allow() {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"success":false,"message":"Too many requests. Please slow down."}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// --- Verification route rate limiting (1 req/5s, burst 3) ---

var (
	verifyEntries    = make(map[string]*limiterEntry)
	verifyEntriesMu  sync.Mutex
	verifyCleanupRun bool
)

const (
	verifyRateLimitEvery  = 5 * time.Second
	verifyRateLimitBurst  = 3
	verifyCleanupInterval = 5 * time.Minute
	verifyLimiterTTL      = 30 * time.Minute
)

var verifyPaths = map[string]bool{
	"/api/auth/request-code": true,
	"/api/auth/verify":       true,
}

func getVerifyLimiter(ip string) *rate.Limiter {
	verifyEntriesMu.Lock()
	defer verifyEntriesMu.Unlock()
	startVerifyCleanupOnce()
	e, ok := verifyEntries[ip]
	if !ok {
		e = &limiterEntry{
			limiter: rate.NewLimiter(rate.Every(verifyRateLimitEvery), verifyRateLimitBurst),
			lastUse: time.Now(),
		}
		verifyEntries[ip] = e
	}
	e.lastUse = time.Now()
	return e.limiter
}

func startVerifyCleanupOnce() {
	if verifyCleanupRun {
		return
	}
	verifyCleanupRun = true
	go func() {
		ticker := time.NewTicker(verifyCleanupInterval)
		defer ticker.Stop()
		for range ticker.C {
			verifyEntriesMu.Lock()
			now := time.Now()
			for ip, e := range verifyEntries {
				if now.Sub(e.lastUse) > verifyLimiterTTL {
					delete(verifyEntries, ip)
				}
			}
			verifyEntriesMu.Unlock()
		}
	}()
}

// VerifyRateLimit throttles the code request/verify routes so codes cannot
// be brute-forced faster than the attempt counter burns down.
func VerifyRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !verifyPaths[r.URL.Path] {
			next.ServeHTTP(w, r)
			return
		}
		ip := clientip.RealClientIP(r)
		if !getVerifyLimiter(ip).Allow() {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"success":false,"message":"Too many verification attempts. Please wait before retrying."}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ProductionSecurity returns the middleware chain for production deployments.
func ProductionSecurity() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		SecurityHeaders,
		GlobalRateLimit,
		VerifyRateLimit,
	}
}
