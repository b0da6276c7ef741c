package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net"
	"net/http"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

type Config struct {
	Endpoint            string
	Total               int
	Rate                int
	Concurrency         int
	SessionReusePercent int
}

func parseFlags() *Config {
	c := &Config{}
	flag.StringVar(&c.Endpoint, "endpoint", "", "Target URL (required)")
	flag.IntVar(&c.Total, "total", 10000, "Total requests")
	flag.IntVar(&c.Rate, "rate", 2000, "Requests per second")
	flag.IntVar(&c.Concurrency, "concurrency", 0, "Worker count (0=auto)")
	flag.IntVar(&c.SessionReusePercent, "session-reuse-percent", 70, "Chance of reusing an existing session token")
	flag.Parse()

	if c.Endpoint == "" {
		fmt.Fprintln(os.Stderr, "Error: -endpoint is required")
		flag.Usage()
		os.Exit(1)
	}

	if c.Concurrency == 0 {
		c.Concurrency = c.Rate / 20 // Auto-scale workers
		if c.Concurrency < 50 {
			c.Concurrency = 50
		}
	}

	if c.SessionReusePercent > 100 {
		c.SessionReusePercent = 100
	} else if c.SessionReusePercent < 0 {
		c.SessionReusePercent = 0
	}

	return c
}

type Stats struct {
	ok      uint64
	errors  uint64
	latency int64 // microseconds
}

// SessionPool keeps recently used session tokens so a share of the
// generated traffic looks like returning visitors.
type SessionPool struct {
	mu  sync.RWMutex
	buf []string
	max int
}

func NewSessionPool(max int) *SessionPool {
	return &SessionPool{buf: make([]string, 0, max), max: max}
}

func (p *SessionPool) Add(token string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.buf) >= p.max {
		p.buf = p.buf[1:]
	}
	p.buf = append(p.buf, token)
}

func (p *SessionPool) GetRandom(rng *rand.Rand) (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if len(p.buf) == 0 {
		return "", false
	}
	return p.buf[rng.Intn(len(p.buf))], true
}

func (s *Stats) AddOK(duration time.Duration) {
	atomic.AddUint64(&s.ok, 1)
	atomic.AddInt64(&s.latency, duration.Microseconds())
}

func (s *Stats) AddError() {
	atomic.AddUint64(&s.errors, 1)
}

func (s *Stats) StartLogger(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	var lastOK, lastErr uint64

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			ok := atomic.LoadUint64(&s.ok)
			errs := atomic.LoadUint64(&s.errors)
			latTotal := atomic.LoadInt64(&s.latency)

			curOK := ok - lastOK
			curErr := errs - lastErr
			lastOK, lastErr = ok, errs

			avgLat := 0.0
			if ok > 0 {
				avgLat = float64(latTotal) / float64(ok) / 1000.0
			}

			log.Printf("[STATS] 1s -> OK: %d | ERR: %d | AvgLat: %.2fms | Total OK: %d", curOK, curErr, avgLat, ok)
		}
	}
}

func main() {
	cfg := parseFlags()
	stats := &Stats{}
	pool := NewSessionPool(10000)

	client := &http.Client{
		Timeout: 10 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        cfg.Concurrency,
			MaxIdleConnsPerHost: cfg.Concurrency, // Critical: Keep as many connections open as there are workers.
			IdleConnTimeout:     90 * time.Second,
			DialContext: (&net.Dialer{
				Timeout:   5 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
		},
	}

	log.Printf("Starting Load Test: Target=%s Rate=%d/s Total=%d Workers=%d", cfg.Endpoint, cfg.Rate, cfg.Total, cfg.Concurrency)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go stats.StartLogger(ctx)

	jobs := make(chan struct{}, cfg.Rate*2)
	var wg sync.WaitGroup
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	rngs := make([]*rand.Rand, cfg.Concurrency)
	for i := 0; i < cfg.Concurrency; i++ {
		rngs[i] = rand.New(rand.NewSource(rng.Int63()))
	}

	for i := 0; i < cfg.Concurrency; i++ {
		wg.Add(1)
		go startWorker(client, cfg.Endpoint, jobs, stats, pool, cfg.SessionReusePercent, rngs[i], &wg)
	}

	// Rate Limiter (Main Loop)
	remaining := cfg.Total
	for remaining > 0 {
		start := time.Now()
		batch := cfg.Rate
		if remaining < batch {
			batch = remaining
		}

		for i := 0; i < batch; i++ {
			jobs <- struct{}{}
		}
		remaining -= batch

		elapsed := time.Since(start)
		if elapsed < time.Second {
			time.Sleep(time.Second - elapsed)
		}
	}

	close(jobs)
	wg.Wait()

	log.Printf("DONE. Total OK: %d | Total Errors: %d", atomic.LoadUint64(&stats.ok), atomic.LoadUint64(&stats.errors))
}

func startWorker(client *http.Client, endpoint string, jobs <-chan struct{}, stats *Stats, pool *SessionPool, reusePercent int, rng *rand.Rand, wg *sync.WaitGroup) {
	defer wg.Done()

	headers := http.Header{"Content-Type": []string{"application/json"}}

	for range jobs {
		event := generateBeacon(rng, pool, reusePercent)
		start := time.Now()

		err := sendEvent(client, endpoint, event, headers)
		if err != nil {
			stats.AddError()
		} else {
			stats.AddOK(time.Since(start))
		}
	}
}

func sendEvent(client *http.Client, url string, data any, headers http.Header) error {
	body, _ := json.Marshal(data)
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	req.Header = headers

	resp, err := client.Do(req)
	if err != nil {
		return err
	}

	// Read and discard the Body so the connection can be reused (Keep-Alive)
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("http status: %d", resp.StatusCode)
	}
	return nil
}

var (
	paths = []string{
		"/", "/articles/launch-week", "/articles/roadmap-2026",
		"/articles/behind-the-scenes", "/events/meetup-berlin", "/about", "/contact",
	}
	referrers = []string{
		"", "", "https://www.google.com/search", "https://facebook.com",
		"https://t.co/abc", "https://linkedin.com/feed", "https://news.example.org",
	}
	eventTypes = []string{"time_spent", "scroll_depth", "social_share", "newsletter_subscription"}
	platforms  = []string{"twitter", "facebook", "linkedin"}
	languages  = []string{"en-US", "de-DE", "fr-FR", "es-ES"}
)

func sessionToken(rng *rand.Rand, pool *SessionPool, reusePercent int) string {
	if reusePercent > 0 && rng.Intn(100) < reusePercent {
		if token, ok := pool.GetRandom(rng); ok {
			return token
		}
	}
	token := fmt.Sprintf("lt-%d-%d", time.Now().UnixNano(), rng.Intn(1_000_000))
	pool.Add(token)
	return token
}

func generateBeacon(rng *rand.Rand, pool *SessionPool, reusePercent int) map[string]any {
	session := sessionToken(rng, pool, reusePercent)
	path := paths[rng.Intn(len(paths))]
	now := time.Now().UnixMilli()

	switch rng.Intn(10) {
	case 0, 1: // clicks
		return map[string]any{
			"type":        "click",
			"sessionId":   session,
			"path":        path,
			"x":           rng.Intn(1920),
			"y":           rng.Intn(1080),
			"elementType": "article_link",
			"targetUrl":   paths[1+rng.Intn(len(paths)-1)],
			"timestamp":   now,
		}
	case 2: // named events
		evt := eventTypes[rng.Intn(len(eventTypes))]
		data := map[string]any{}
		switch evt {
		case "time_spent":
			data["seconds"] = rng.Intn(300)
		case "scroll_depth":
			data["depth"] = rng.Intn(100)
		case "social_share":
			data["platform"] = platforms[rng.Intn(len(platforms))]
		}
		return map[string]any{
			"type":      "event",
			"sessionId": session,
			"eventType": evt,
			"path":      path,
			"data":      data,
			"timestamp": now,
		}
	default: // page views dominate real traffic
		return map[string]any{
			"type":          "pageview",
			"sessionId":     session,
			"path":          path,
			"title":         "Load Test Page",
			"referrer":      referrers[rng.Intn(len(referrers))],
			"userAgent":     "load-tester/1.0",
			"language":      languages[rng.Intn(len(languages))],
			"viewportWidth": 360 + rng.Intn(1560),
			"timestamp":     now,
		}
	}
}
