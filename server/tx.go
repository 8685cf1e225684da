package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	sdk "github.com/cosmos/cosmos-sdk/types"

	gurutypes "github.com/GPTx-global/guru-dataoracle/types"
	"github.com/GPTx-global/guru-dataoracle/x/dataoracle/types"
)

// decode reads a JSON body into v and validates it.
func (s *Server) decode(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	if err := s.validate.Struct(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// deliver runs msg and writes the outcome.
func (s *Server) deliver(w http.ResponseWriter, r *http.Request, msg types.Msg) {
	res, height, err := s.backend.Deliver(r.Context(), msg)
	if err != nil {
		s.logger.Debug("call rejected", "id", requestIDFrom(r.Context()), "type", msg.Type(), "err", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, gurutypes.TxResponse{
		Height: height,
		Data:   res.Data,
		Events: gurutypes.NewEvents(res.Events),
	})
}

func (s *Server) subscribe(w http.ResponseWriter, r *http.Request) {
	var req gurutypes.SubscribeRequest
	if err := s.decode(r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	payment, err := gurutypes.ParseGuruCoin(req.Payment)
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	s.deliver(w, r, &types.MsgSubscribe{
		Subscriber:       callerFrom(r.Context()),
		SubscriptionType: req.SubscriptionType,
		Payment:          payment,
	})
}

func (s *Server) registerOracle(w http.ResponseWriter, r *http.Request) {
	var req gurutypes.RegisterOracleRequest
	if err := s.decode(r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	var stake sdk.Coin
	if req.Stake == "" {
		params, err := s.backend.Params(r.Context(), &types.QueryParamsRequest{})
		if err != nil {
			writeError(w, err)
			return
		}
		stake = sdk.NewInt64Coin(params.Params.FeeDenom, 0)
	} else {
		var err error
		if stake, err = gurutypes.ParseGuruCoin(req.Stake); err != nil {
			writeBadRequest(w, err)
			return
		}
	}

	s.deliver(w, r, &types.MsgRegisterOracle{
		Provider: callerFrom(r.Context()),
		DataType: req.DataType,
		Stake:    stake,
	})
}

func (s *Server) submitData(w http.ResponseWriter, r *http.Request) {
	id, err := oracleID(r)
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	var req gurutypes.SubmitDataRequest
	if err := s.decode(r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	s.deliver(w, r, &types.MsgSubmitData{
		Provider: callerFrom(r.Context()),
		OracleId: id,
		Value:    req.Value,
	})
}

func (s *Server) voteOracle(w http.ResponseWriter, r *http.Request) {
	id, err := oracleID(r)
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	s.deliver(w, r, &types.MsgVoteOracle{
		Voter:    callerFrom(r.Context()),
		OracleId: id,
	})
}

func (s *Server) verifyData(w http.ResponseWriter, r *http.Request) {
	id, err := oracleID(r)
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	s.deliver(w, r, &types.MsgVerifyData{
		Owner:    callerFrom(r.Context()),
		OracleId: id,
	})
}

func (s *Server) setSubscriptionFee(w http.ResponseWriter, r *http.Request) {
	var req gurutypes.SetSubscriptionFeeRequest
	if err := s.decode(r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	s.deliver(w, r, &types.MsgSetSubscriptionFee{
		Owner:  callerFrom(r.Context()),
		NewFee: *req.NewFee,
	})
}
