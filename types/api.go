package types

import (
	"encoding/json"

	abci "github.com/tendermint/tendermint/abci/types"
)

// CallerHeader carries the authenticated caller address set by the gateway
// in front of the API.
const CallerHeader = "X-Caller-Address"

// RequestIDHeader carries the id assigned to every API request.
const RequestIDHeader = "X-Request-Id"

// Attribute is a key/value pair of an Event.
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Event is an ABCI event with readable attributes.
type Event struct {
	Type       string      `json:"type"`
	Attributes []Attribute `json:"attributes"`
}

// NewEvents converts ABCI events.
func NewEvents(events []abci.Event) []Event {
	out := make([]Event, 0, len(events))
	for _, e := range events {
		event := Event{Type: e.Type, Attributes: make([]Attribute, 0, len(e.Attributes))}
		for _, attr := range e.Attributes {
			event.Attributes = append(event.Attributes, Attribute{Key: string(attr.Key), Value: string(attr.Value)})
		}
		out = append(out, event)
	}
	return out
}

// TxResponse is returned for every accepted write.
type TxResponse struct {
	Height int64           `json:"height"`
	Data   json.RawMessage `json:"data,omitempty"`
	Events []Event         `json:"events"`
}

// ErrorResponse is returned for every rejected call.
type ErrorResponse struct {
	Code      uint32 `json:"code"`
	Codespace string `json:"codespace"`
	Reason    string `json:"reason"`
	Error     string `json:"error"`
}

// StatusResponse reports the committed height.
type StatusResponse struct {
	ChainID string `json:"chain_id"`
	Height  int64  `json:"height"`
}

// Request bodies of the write endpoints.
type (
	SubscribeRequest struct {
		SubscriptionType string `json:"subscription_type" validate:"required"`
		Payment          string `json:"payment" validate:"required"`
	}

	RegisterOracleRequest struct {
		DataType string `json:"data_type" validate:"required"`
		Stake    string `json:"stake"`
	}

	SubmitDataRequest struct {
		Value string `json:"value" validate:"required,max=256"`
	}

	SetSubscriptionFeeRequest struct {
		NewFee *uint64 `json:"new_fee" validate:"required"`
	}
)
