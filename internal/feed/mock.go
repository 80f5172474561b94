package feed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"flakwall/internal/weblog"
)

// MockSource generates a synthetic access-log stream for demo and offline
// use. Paths, methods and status codes are drawn from weighted tables that
// roughly resemble a small API's traffic mix.
type MockSource struct {
	Journal *Journal
	Rate    float64 // mean events per second
	Seed    int64   // zero seeds from the clock
}

var mockPaths = []struct {
	path   string
	weight int
}{
	{"/api/users", 20},
	{"/api/users/42", 10},
	{"/api/orders", 15},
	{"/api/orders/checkout", 8},
	{"/api/products", 18},
	{"/api/auth/login", 10},
	{"/api/auth/refresh", 6},
	{"/static/app.js", 12},
	{"/healthz", 9},
	{"/admin/metrics", 4},
}

var mockStatuses = []struct {
	status int
	weight int
}{
	{200, 58},
	{201, 8},
	{204, 5},
	{301, 3},
	{304, 6},
	{400, 5},
	{401, 4},
	{403, 2},
	{404, 6},
	{429, 1},
	{500, 3},
	{502, 1},
	{503, 1},
}

var mockMethods = []struct {
	method string
	weight int
}{
	{"GET", 70}, {"POST", 18}, {"PUT", 6}, {"DELETE", 4}, {"PATCH", 2},
}

var mockAgents = []string{
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) Gecko/20100101 Firefox/128.0",
	"curl/8.4.0",
	"Go-http-client/2.0",
	"python-requests/2.31",
}

// Start launches the generator goroutine. Inter-arrival times are jittered
// around 1/Rate so bursts and lulls both occur.
func (s *MockSource) Start(ctx context.Context) error {
	if s.Journal == nil {
		return fmt.Errorf("mock source requires a journal")
	}
	rate := s.Rate
	if rate <= 0 {
		rate = 6
	}
	seed := s.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	go func() {
		for {
			mean := time.Duration(float64(time.Second) / rate)
			jitter := time.Duration(rng.Float64() * 1.6 * float64(mean))
			select {
			case <-ctx.Done():
				return
			case <-time.After(mean/5 + jitter):
				s.Journal.Append(s.generate(rng))
			}
		}
	}()
	return nil
}

func (s *MockSource) generate(rng *rand.Rand) weblog.Event {
	return weblog.Event{
		ID:           "mock_" + uuid.NewString(),
		IP:           fmt.Sprintf("%d.%d.%d.%d", 10+rng.Intn(200), rng.Intn(256), rng.Intn(256), 1+rng.Intn(254)),
		Method:       pickMethod(rng),
		Path:         pickPath(rng),
		Status:       pickStatus(rng),
		UserAgent:    mockAgents[rng.Intn(len(mockAgents))],
		Time:         time.Now(),
		ResponseTime: 2 + rng.Float64()*240,
		Bytes:        int64(120 + rng.Intn(40000)),
	}.Normalize()
}

func pickPath(rng *rand.Rand) string {
	total := 0
	for _, p := range mockPaths {
		total += p.weight
	}
	r := rng.Intn(total)
	for _, p := range mockPaths {
		if r < p.weight {
			return p.path
		}
		r -= p.weight
	}
	return mockPaths[0].path
}

func pickStatus(rng *rand.Rand) int {
	total := 0
	for _, s := range mockStatuses {
		total += s.weight
	}
	r := rng.Intn(total)
	for _, s := range mockStatuses {
		if r < s.weight {
			return s.status
		}
		r -= s.weight
	}
	return 200
}

func pickMethod(rng *rand.Rand) string {
	total := 0
	for _, m := range mockMethods {
		total += m.weight
	}
	r := rng.Intn(total)
	for _, m := range mockMethods {
		if r < m.weight {
			return m.method
		}
		r -= m.weight
	}
	return "GET"
}
