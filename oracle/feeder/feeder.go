package feeder

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	cmap "github.com/orcaman/concurrent-map/v2"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/GPTx-global/guru-dataoracle/oracle/retry"
)

const queueSize = 1 << 10

// Options tune a Feeder. Zero values select the defaults.
type Options struct {
	Workers     int
	HTTPClient  *http.Client
	FetchRetry  *retry.Config
	SubmitRetry *retry.Config
	// MaxFailures opens the submit circuit breaker for ResetTimeout.
	MaxFailures  int
	ResetTimeout time.Duration
}

// Feeder runs jobs that fetch external values and submit them for oracles.
// Every job is executed once at start and then every Interval.
type Feeder struct {
	logger    log.Logger
	submitter Submitter
	opts      Options
	breaker   *retry.CircuitBreaker

	jobStore    cmap.ConcurrentMap[string, Job]
	jobQueue    chan Job
	resultQueue chan Result

	// mtx guards started, ctx and cancel against AddJob and Stop.
	mtx       sync.Mutex
	startOnce sync.Once
	started   bool
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

func New(submitter Submitter, logger log.Logger, opts Options) *Feeder {
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = executorClient()
	}
	if opts.FetchRetry == nil {
		opts.FetchRetry = retry.DefaultConfig()
	}
	if opts.SubmitRetry == nil {
		opts.SubmitRetry = retry.SubmitConfig()
	}
	if opts.MaxFailures <= 0 {
		opts.MaxFailures = 5
	}
	if opts.ResetTimeout <= 0 {
		opts.ResetTimeout = time.Minute
	}

	return &Feeder{
		logger:      logger.With("module", "feeder"),
		submitter:   submitter,
		opts:        opts,
		breaker:     retry.NewCircuitBreaker(opts.MaxFailures, opts.ResetTimeout),
		jobStore:    cmap.New[Job](),
		jobQueue:    make(chan Job, queueSize),
		resultQueue: make(chan Result, queueSize),
	}
}

// AddJob registers a job, replacing the one of the same oracle. A new job
// added after Start runs immediately; a replaced job keeps its schedule and
// picks up the new configuration on its next run.
func (f *Feeder) AddJob(job Job) error {
	if job.OracleID == 0 {
		return fmt.Errorf("oracle id is required")
	}
	if job.Interval <= 0 {
		return fmt.Errorf("interval must be positive")
	}

	key := jobKey(job.OracleID)

	f.mtx.Lock()
	existed := f.jobStore.Has(key)
	f.jobStore.Set(key, job)
	running := f.started
	f.mtx.Unlock()

	if running && !existed {
		f.enqueue(job.OracleID)
	}
	return nil
}

// RemoveJob stops feeding an oracle. A run already in flight still submits.
func (f *Feeder) RemoveJob(oracleID uint64) {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	f.jobStore.Remove(jobKey(oracleID))
}

// Job returns the current state of the job feeding oracleID.
func (f *Feeder) Job(oracleID uint64) (Job, bool) {
	return f.jobStore.Get(jobKey(oracleID))
}

// Jobs returns the number of registered jobs.
func (f *Feeder) Jobs() int {
	return f.jobStore.Count()
}

// Start launches the workers and the submitter and runs every job once.
func (f *Feeder) Start(ctx context.Context) {
	f.startOnce.Do(func() {
		f.mtx.Lock()
		defer f.mtx.Unlock()

		f.ctx, f.cancel = context.WithCancel(ctx)
		f.started = true

		for i := 0; i < f.opts.Workers; i++ {
			f.wg.Add(1)
			go f.worker()
		}

		f.wg.Add(1)
		go f.submitLoop()

		for _, key := range f.jobStore.Keys() {
			if job, ok := f.jobStore.Get(key); ok {
				f.enqueue(job.OracleID)
			}
		}

		f.logger.Info("feeder started", "workers", f.opts.Workers, "jobs", f.jobStore.Count())
	})
}

// Stop cancels pending runs and waits for the workers to exit.
func (f *Feeder) Stop() {
	f.mtx.Lock()
	cancel := f.cancel
	f.mtx.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	f.wg.Wait()
	f.logger.Info("feeder stopped")
}

// Name implements health.Check.
func (f *Feeder) Name() string {
	return "feeder"
}

// Check implements health.Check. The feeder is unhealthy while submissions
// are suspended by the circuit breaker.
func (f *Feeder) Check(ctx context.Context) error {
	if state := f.breaker.State(); state == retry.StateOpen {
		return fmt.Errorf("submissions suspended: circuit %s", state)
	}
	return nil
}

func (f *Feeder) enqueue(oracleID uint64) {
	job, ok := f.jobStore.Get(jobKey(oracleID))
	if !ok {
		return
	}

	select {
	case f.jobQueue <- job:
	case <-f.ctx.Done():
	default:
		f.logger.Error("job queue is full, rescheduling", "oracle_id", oracleID)
		f.schedule(oracleID, job.Interval)
	}
}

// schedule runs the job of oracleID again after delay.
func (f *Feeder) schedule(oracleID uint64, delay time.Duration) {
	f.wg.Add(1)
	go func() {
		defer f.wg.Done()

		timer := time.NewTimer(delay)
		defer timer.Stop()

		select {
		case <-timer.C:
			f.enqueue(oracleID)
		case <-f.ctx.Done():
		}
	}()
}

func (f *Feeder) worker() {
	defer f.wg.Done()

	for {
		select {
		case job := <-f.jobQueue:
			f.run(job)
		case <-f.ctx.Done():
			return
		}
	}
}

func (f *Feeder) run(job Job) {
	job.Nonce++
	job.LastRun = time.Now()

	var raw []byte
	err := retry.Do(f.ctx, f.opts.FetchRetry, func() error {
		var err error
		raw, err = fetchRawData(f.ctx, f.opts.HTTPClient, job.URL)
		return err
	}, retry.DefaultIsRetryable)

	var value string
	if err == nil {
		value, err = extractValue(raw, job.Path)
	}

	if err != nil {
		job.LastError = err.Error()
		f.update(job)
		f.logger.Error("failed to execute job", "oracle_id", job.OracleID, "nonce", job.Nonce, "err", err)
		f.schedule(job.OracleID, job.Interval)
		return
	}

	job.LastError = ""
	f.update(job)

	select {
	case f.resultQueue <- Result{OracleID: job.OracleID, Value: value, Nonce: job.Nonce}:
	case <-f.ctx.Done():
	}
}

// update stores the run state of job, keeping its latest configuration. A job
// removed meanwhile stays removed.
func (f *Feeder) update(job Job) {
	key := jobKey(job.OracleID)
	if !f.jobStore.Has(key) {
		return
	}

	f.jobStore.Upsert(key, job, func(exist bool, current, next Job) Job {
		if !exist {
			return next
		}
		current.Nonce = next.Nonce
		current.LastRun = next.LastRun
		current.LastError = next.LastError
		if next.LastValue != "" {
			current.LastValue = next.LastValue
		}
		return current
	})
}

func (f *Feeder) submitLoop() {
	defer f.wg.Done()

	for {
		select {
		case res := <-f.resultQueue:
			f.submit(res)
		case <-f.ctx.Done():
			return
		}
	}
}

func (f *Feeder) submit(res Result) {
	err := f.breaker.Execute(func() error {
		return retry.Do(f.ctx, f.opts.SubmitRetry, func() error {
			return f.submitter.Submit(f.ctx, res.OracleID, res.Value)
		}, isSubmitRetryable)
	})

	job, ok := f.jobStore.Get(jobKey(res.OracleID))
	if !ok {
		return
	}
	if err != nil {
		job.LastError = err.Error()
		f.logger.Error("failed to submit value", "oracle_id", res.OracleID, "nonce", res.Nonce, "err", err)
	} else {
		job.LastValue = res.Value
		f.logger.Debug("value submitted", "oracle_id", res.OracleID, "nonce", res.Nonce, "value", res.Value)
	}
	f.update(job)
	f.schedule(res.OracleID, job.Interval)
}
