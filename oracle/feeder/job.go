package feeder

import (
	"strconv"
	"time"

	"github.com/GPTx-global/guru-dataoracle/oracle/config"
)

// Job periodically feeds one oracle.
type Job struct {
	OracleID uint64
	URL      string
	Path     string
	Interval time.Duration

	// Nonce counts the runs of the job.
	Nonce     uint64
	LastValue string
	LastRun   time.Time
	LastError string
}

// Result is a value extracted by a job run, waiting to be submitted.
type Result struct {
	OracleID uint64
	Value    string
	Nonce    uint64
}

// NewJob creates a job from its configuration.
func NewJob(cfg config.JobConfig) Job {
	return Job{
		OracleID: cfg.OracleID,
		URL:      cfg.URL,
		Path:     cfg.Path,
		Interval: cfg.Interval,
	}
}

func jobKey(oracleID uint64) string {
	return strconv.FormatUint(oracleID, 10)
}
