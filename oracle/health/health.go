package health

import (
	"context"
	"sync"
	"time"

	"github.com/GPTx-global/guru-dataoracle/oracle/log"
)

// Check is a named probe of one component.
type Check interface {
	Check(ctx context.Context) error
	Name() string
}

// Status is the outcome of the last run of a check.
type Status struct {
	Healthy   bool      `json:"healthy"`
	LastCheck time.Time `json:"last_check"`
	LastError string    `json:"last_error,omitempty"`
}

// Checker runs its checks on an interval and keeps their latest status.
type Checker struct {
	mtx      sync.RWMutex
	checks   map[string]Check
	status   map[string]Status
	interval time.Duration
	timeout  time.Duration
}

func NewChecker(interval time.Duration) *Checker {
	return &Checker{
		checks:   make(map[string]Check),
		status:   make(map[string]Status),
		interval: interval,
		timeout:  interval,
	}
}

func (c *Checker) AddCheck(check Check) {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	name := check.Name()
	c.checks[name] = check
	c.status[name] = Status{Healthy: true, LastCheck: time.Now()}
	log.Debugf("added health check %s", name)
}

// Start runs all checks immediately and then on every tick until ctx is done.
func (c *Checker) Start(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	c.RunChecks(ctx)
	for {
		select {
		case <-ticker.C:
			c.RunChecks(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// RunChecks runs every check concurrently and waits for all of them.
func (c *Checker) RunChecks(ctx context.Context) {
	c.mtx.RLock()
	checks := make([]Check, 0, len(c.checks))
	for _, check := range c.checks {
		checks = append(checks, check)
	}
	c.mtx.RUnlock()

	var wg sync.WaitGroup
	for _, check := range checks {
		wg.Add(1)
		go func(check Check) {
			defer wg.Done()

			checkCtx, cancel := context.WithTimeout(ctx, c.timeout)
			defer cancel()
			err := check.Check(checkCtx)

			status := Status{Healthy: err == nil, LastCheck: time.Now()}
			if err != nil {
				status.LastError = err.Error()
				log.Errorf("health check %s failed: %v", check.Name(), err)
			}

			c.mtx.Lock()
			c.status[check.Name()] = status
			c.mtx.Unlock()
		}(check)
	}
	wg.Wait()
}

func (c *Checker) GetStatus() map[string]Status {
	c.mtx.RLock()
	defer c.mtx.RUnlock()

	result := make(map[string]Status, len(c.status))
	for name, status := range c.status {
		result[name] = status
	}
	return result
}

func (c *Checker) IsHealthy() bool {
	c.mtx.RLock()
	defer c.mtx.RUnlock()

	for _, status := range c.status {
		if !status.Healthy {
			return false
		}
	}
	return true
}

// FuncCheck adapts a function to a Check.
type FuncCheck struct {
	name      string
	checkFunc func(ctx context.Context) error
}

func NewFuncCheck(name string, checkFunc func(ctx context.Context) error) *FuncCheck {
	return &FuncCheck{name: name, checkFunc: checkFunc}
}

func (f *FuncCheck) Check(ctx context.Context) error {
	return f.checkFunc(ctx)
}

func (f *FuncCheck) Name() string {
	return f.name
}
