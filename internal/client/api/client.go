// Package api is the backend surface the client talks to. The only
// implementation is MockClient, which fabricates data in memory and
// simulates request latency and failures.
package api

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/dmitrijs2005/vitalsync/internal/client/models"
	"github.com/dmitrijs2005/vitalsync/internal/logging"
)

// AuthResult is what login and registration resolve with.
type AuthResult struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Client lists the backend operations. Every call blocks until the request
// resolves or ctx is done.
type Client interface {
	LoginUser(ctx context.Context, email, password string) (AuthResult, error)
	RegisterUser(ctx context.Context, username, email, password string) (AuthResult, error)
	LogoutUser(ctx context.Context) error

	GetHealthMetrics(ctx context.Context, t models.MetricType, p models.Period) ([]models.HealthMetric, error)
	GetAllHealthData(ctx context.Context) (models.HealthData, error)

	GetConnectedDevices(ctx context.Context) ([]models.Device, error)
	ConnectToDevice(ctx context.Context, id string) (models.Device, error)
	DisconnectDevice(ctx context.Context, id string) error

	GetUserProfile(ctx context.Context, token string) (models.User, error)
	UpdateUserProfile(ctx context.Context, token string, patch models.UserPatch) (models.User, error)
}

// Base latencies, multiplied by Options.LatencyScale.
const (
	latencyLogin         = 800 * time.Millisecond
	latencyRegister      = time.Second
	latencyLogout        = 300 * time.Millisecond
	latencyMetrics       = 800 * time.Millisecond
	latencyAllData       = 1200 * time.Millisecond
	latencyDevices       = 600 * time.Millisecond
	latencyConnect       = 2 * time.Second
	latencyDisconnect    = 500 * time.Millisecond
	latencyProfileGet    = 700 * time.Millisecond
	latencyProfileUpdate = time.Second
)

// DefaultTokenSecret signs tokens when Options.TokenSecret is empty.
const DefaultTokenSecret = "vitalsync-dev-secret"

type Options struct {
	// LatencyScale multiplies every base latency; 0 makes requests instant.
	LatencyScale float64
	// FailureRate is the probability in [0,1] that a request fails with
	// ErrNetwork after its delay.
	FailureRate float64
	TokenSecret []byte
	// Seed fixes the random source; 0 seeds from the clock.
	Seed uint64
	Now  func() time.Time
}

// MockClient is the in-memory Client.
type MockClient struct {
	opts Options
	log  logging.Logger
	now  func() time.Time

	mu       sync.Mutex
	rnd      *rand.Rand
	devices  []models.Device
	profiles map[string]models.User
}

var _ Client = (*MockClient)(nil)

func NewMockClient(opts Options, logger logging.Logger) *MockClient {
	if logger == nil {
		logger = logging.Nop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	if len(opts.TokenSecret) == 0 {
		opts.TokenSecret = []byte(DefaultTokenSecret)
	}
	seed := opts.Seed
	if seed == 0 {
		seed = uint64(now().UnixNano())
	}

	return &MockClient{
		opts:     opts,
		log:      logger.With("module", "api"),
		now:      now,
		rnd:      rand.New(rand.NewPCG(seed, seed>>1|1)),
		devices:  initialDevices(now()),
		profiles: make(map[string]models.User),
	}
}

// request simulates the round trip of op: it sleeps for the scaled latency
// and then rolls for a simulated failure.
func (m *MockClient) request(ctx context.Context, op string, base time.Duration) error {
	d := time.Duration(float64(base) * m.opts.LatencyScale)
	m.log.Debug(ctx, "mock request", "op", op, "latency", d)

	if d > 0 {
		t := time.NewTimer(d)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return fmt.Errorf("%s: %w", op, ctx.Err())
		case <-t.C:
		}
	} else if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if m.opts.FailureRate > 0 && m.float64() < m.opts.FailureRate {
		m.log.Warn(ctx, "mock request failed", "op", op)
		return fmt.Errorf("%s: %w", op, ErrNetwork)
	}
	return nil
}

func (m *MockClient) float64() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rnd.Float64()
}

// intn returns a value in [lo, lo+n).
func (m *MockClient) intn(lo, n int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return lo + m.rnd.IntN(n)
}
