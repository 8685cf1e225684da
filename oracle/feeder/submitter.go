package feeder

import (
	"context"
	"errors"
	"net/http"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/GPTx-global/guru-dataoracle/client"
	"github.com/GPTx-global/guru-dataoracle/oracle/retry"
	"github.com/GPTx-global/guru-dataoracle/x/dataoracle/types"
)

// Submitter records a value for an oracle on behalf of the feeding provider.
type Submitter interface {
	Submit(ctx context.Context, oracleID uint64, value string) error
}

// Deliverer executes messages, e.g. *app.App.
type Deliverer interface {
	Deliver(ctx context.Context, msg types.Msg) (*sdk.Result, int64, error)
}

// AppSubmitter submits directly to an in-process registry.
type AppSubmitter struct {
	app      Deliverer
	provider string
}

func NewAppSubmitter(app Deliverer, provider string) *AppSubmitter {
	return &AppSubmitter{app: app, provider: provider}
}

func (s *AppSubmitter) Submit(ctx context.Context, oracleID uint64, value string) error {
	_, _, err := s.app.Deliver(ctx, &types.MsgSubmitData{
		Provider: s.provider,
		OracleId: oracleID,
		Value:    value,
	})
	return err
}

// ClientSubmitter submits through the API server of a remote registry.
type ClientSubmitter struct {
	client *client.Client
}

// NewClientSubmitter submits as the caller of c.
func NewClientSubmitter(c *client.Client) *ClientSubmitter {
	return &ClientSubmitter{client: c}
}

func (s *ClientSubmitter) Submit(ctx context.Context, oracleID uint64, value string) error {
	_, err := s.client.SubmitData(ctx, oracleID, value)
	return err
}

// isSubmitRetryable retries server side failures of the API and transient
// network errors. Rejections by the registry are final.
func isSubmitRetryable(err error) bool {
	var apiErr *client.Error
	if errors.As(err, &apiErr) {
		return apiErr.Status >= http.StatusInternalServerError
	}
	if types.Reason(err) != "ERR_INVALID_REQUEST" {
		return false
	}
	return retry.DefaultIsRetryable(err)
}
