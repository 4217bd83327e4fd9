// Package health runs liveness and readiness checks and exposes them over HTTP.
package health

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/lewisedginton/email_responder/pkg/logger"
)

// Check is a single named probe. Check returns nil when healthy.
type Check interface {
	Name() string
	Check(ctx context.Context) error
}

// CheckFunc adapts a plain function to the Check interface.
type CheckFunc struct {
	name      string
	fn        func(context.Context) error
	immediate bool
}

// NewCheckFunc creates a new CheckFunc with the given name and function.
func NewCheckFunc(name string, fn func(context.Context) error) *CheckFunc {
	return &CheckFunc{name: name, fn: fn}
}

// NewStateCheck creates a CheckFunc that reports unhealthy on its first
// failure, ignoring the failure threshold. Use it for in-process state.
func NewStateCheck(name string, fn func(context.Context) error) *CheckFunc {
	return &CheckFunc{name: name, fn: fn, immediate: true}
}

// Name returns the name of this check.
func (c *CheckFunc) Name() string { return c.name }

// Check executes the check function.
func (c *CheckFunc) Check(ctx context.Context) error { return c.fn(ctx) }

// CheckResult is the outcome of one check execution.
type CheckResult struct {
	Name    string
	Healthy bool
	Error   string
	Latency time.Duration
}

// HealthStatus is the aggregate of a probe run. Checks are ordered by name.
type HealthStatus struct {
	Healthy bool
	Checks  []CheckResult
}

// HealthChecker holds liveness and readiness checks. A failing check only
// reports unhealthy after failureThreshold consecutive failures, so a single
// slow upstream response does not flap the probe.
type HealthChecker struct {
	livenessChecks   []Check
	readinessChecks  []Check
	timeout          time.Duration
	failureThreshold int
	logger           logger.Logger

	mu           sync.Mutex
	failureCount map[string]int
}

// Option is a functional option for configuring HealthChecker.
type Option func(*HealthChecker)

// WithTimeout sets the per-check timeout. Default is 5 seconds.
func WithTimeout(d time.Duration) Option {
	return func(h *HealthChecker) {
		if d > 0 {
			h.timeout = d
		}
	}
}

// WithLogger sets the logger for health check operations.
func WithLogger(l logger.Logger) Option {
	return func(h *HealthChecker) {
		h.logger = l
	}
}

// WithFailureThreshold sets how many consecutive failures mark a check unhealthy. Default is 3.
func WithFailureThreshold(threshold int) Option {
	return func(h *HealthChecker) {
		if threshold > 0 {
			h.failureThreshold = threshold
		}
	}
}

// New creates a new HealthChecker with the given options.
func New(opts ...Option) *HealthChecker {
	h := &HealthChecker{
		timeout:          5 * time.Second,
		failureThreshold: 3,
		failureCount:     make(map[string]int),
		logger:           logger.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// AddLivenessCheck registers a check deciding whether the process should be restarted.
func (h *HealthChecker) AddLivenessCheck(check Check) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.livenessChecks = append(h.livenessChecks, check)
}

// AddReadinessCheck registers a check deciding whether the service should receive traffic.
func (h *HealthChecker) AddReadinessCheck(check Check) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.readinessChecks = append(h.readinessChecks, check)
}

// CheckLiveness runs all liveness checks.
func (h *HealthChecker) CheckLiveness(ctx context.Context) (*HealthStatus, error) {
	h.mu.Lock()
	checks := append([]Check(nil), h.livenessChecks...)
	h.mu.Unlock()
	return h.run(ctx, checks)
}

// CheckReadiness runs all readiness checks.
func (h *HealthChecker) CheckReadiness(ctx context.Context) (*HealthStatus, error) {
	h.mu.Lock()
	checks := append([]Check(nil), h.readinessChecks...)
	h.mu.Unlock()
	return h.run(ctx, checks)
}

// run executes checks concurrently. The returned error lists every unhealthy check.
func (h *HealthChecker) run(ctx context.Context, checks []Check) (*HealthStatus, error) {
	status := &HealthStatus{Healthy: true, Checks: make([]CheckResult, len(checks))}

	var wg sync.WaitGroup
	for i, check := range checks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			status.Checks[i] = h.runOne(ctx, check)
		}()
	}
	wg.Wait()

	sort.Slice(status.Checks, func(i, j int) bool { return status.Checks[i].Name < status.Checks[j].Name })

	var result error
	for _, r := range status.Checks {
		if !r.Healthy {
			status.Healthy = false
			result = multierror.Append(result, fmt.Errorf("%s: %s", r.Name, r.Error))
		}
	}
	return status, result
}

func (h *HealthChecker) runOne(parent context.Context, check Check) CheckResult {
	ctx, cancel := context.WithTimeout(parent, h.timeout)
	defer cancel()

	start := time.Now()
	err := check.Check(ctx)
	result := CheckResult{Name: check.Name(), Healthy: true, Latency: time.Since(start)}

	h.mu.Lock()
	defer h.mu.Unlock()

	log := h.logger.WithFields(
		logger.StringField("check", result.Name),
		logger.DurationField("latency", result.Latency),
	)

	if err == nil {
		h.failureCount[result.Name] = 0
		log.Debug("Health check passed")
		return result
	}

	h.failureCount[result.Name]++
	failures := h.failureCount[result.Name]
	threshold := h.failureThreshold
	if c, ok := check.(*CheckFunc); ok && c.immediate {
		threshold = 1
	}
	if failures < threshold {
		log.Debug("Health check failed but below threshold",
			logger.ErrorField(err),
			logger.IntField("failures", failures),
			logger.IntField("threshold", threshold),
		)
		return result
	}

	result.Healthy = false
	result.Error = err.Error()
	log.Warn("Health check failed", logger.ErrorField(err), logger.IntField("failures", failures))
	return result
}
