package types

import (
	"fmt"
	"time"
)

// MaxDataValueLength bounds the size of a submitted value.
const MaxDataValueLength = 256

// Oracle is a registered data provider.
type Oracle struct {
	Id       uint64 `json:"id"`
	Provider string `json:"provider"`
	DataType string `json:"data_type"`
	Active   bool   `json:"active"`
	Votes    uint64 `json:"votes"`
	Stake    uint64 `json:"stake"`
	Height   int64  `json:"height"`
}

// SubmittedData is the latest value reported by an oracle. Only one record per
// oracle exists; a new submission replaces it.
type SubmittedData struct {
	OracleId  uint64 `json:"oracle_id"`
	Value     string `json:"value"`
	Provider  string `json:"provider"`
	Verified  bool   `json:"verified"`
	Height    int64  `json:"height"`
	Timestamp int64  `json:"timestamp"`
}

// IsStale reports whether the data is older than period seconds at now.
// A zero period disables staleness.
func (d SubmittedData) IsStale(now time.Time, period uint64) bool {
	if period == 0 {
		return false
	}
	age := now.Unix() - d.Timestamp
	return age > int64(period)
}

// Vote records that Voter has voted for OracleId.
type Vote struct {
	OracleId uint64 `json:"oracle_id"`
	Voter    string `json:"voter"`
	Height   int64  `json:"height"`
}

func ValidateDataValue(value string) error {
	if value == "" {
		return fmt.Errorf("value cannot be empty")
	}
	if len(value) > MaxDataValueLength {
		return fmt.Errorf("value length %d exceeds %d", len(value), MaxDataValueLength)
	}
	return nil
}
