package server

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strconv"

	"github.com/cosmos/cosmos-sdk/types/query"
	"github.com/gorilla/mux"
	"github.com/spf13/cast"

	gurutypes "github.com/GPTx-global/guru-dataoracle/types"
	"github.com/GPTx-global/guru-dataoracle/x/dataoracle/types"
)

func oracleID(r *http.Request) (uint64, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid oracle id %q: %w", mux.Vars(r)["id"], err)
	}
	return id, nil
}

func pageRequest(r *http.Request) (*query.PageRequest, error) {
	q := r.URL.Query()
	page := &query.PageRequest{}

	var err error
	if v := q.Get("limit"); v != "" {
		if page.Limit, err = strconv.ParseUint(v, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid limit: %w", err)
		}
	}
	if v := q.Get("offset"); v != "" {
		if page.Offset, err = strconv.ParseUint(v, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid offset: %w", err)
		}
	}
	if v := q.Get("key"); v != "" {
		if page.Key, err = base64.StdEncoding.DecodeString(v); err != nil {
			return nil, fmt.Errorf("invalid key: %w", err)
		}
	}
	if v := q.Get("count_total"); v != "" {
		if page.CountTotal, err = cast.ToBoolE(v); err != nil {
			return nil, fmt.Errorf("invalid count_total: %w", err)
		}
	}
	return page, nil
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, gurutypes.StatusResponse{ChainID: s.chainID, Height: s.backend.Height()})
}

func (s *Server) genesis(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.backend.ExportGenesis())
}

func (s *Server) subscription(w http.ResponseWriter, r *http.Request) {
	address := mux.Vars(r)["address"]
	res, err := s.backend.Subscription(r.Context(), &types.QuerySubscriptionRequest{Address: address})
	if err != nil {
		writeError(w, err)
		return
	}
	if res.Subscription == nil {
		writeNotFound(w, "subscription of "+address)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) oracle(w http.ResponseWriter, r *http.Request) {
	id, err := oracleID(r)
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	res, err := s.backend.Oracle(r.Context(), &types.QueryOracleRequest{OracleId: id})
	if err != nil {
		writeError(w, err)
		return
	}
	if res.Oracle == nil {
		writeNotFound(w, fmt.Sprintf("oracle %d", id))
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) oracles(w http.ResponseWriter, r *http.Request) {
	page, err := pageRequest(r)
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	res, err := s.backend.Oracles(r.Context(), &types.QueryOraclesRequest{Pagination: page})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) latestData(w http.ResponseWriter, r *http.Request) {
	id, err := oracleID(r)
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	res, err := s.backend.LatestData(r.Context(), &types.QueryLatestDataRequest{OracleId: id})
	if err != nil {
		writeError(w, err)
		return
	}
	if res.Data == nil {
		writeNotFound(w, fmt.Sprintf("data of oracle %d", id))
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) hasVoted(w http.ResponseWriter, r *http.Request) {
	id, err := oracleID(r)
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	res, err := s.backend.HasVoted(r.Context(), &types.QueryHasVotedRequest{OracleId: id, Voter: mux.Vars(r)["voter"]})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) voters(w http.ResponseWriter, r *http.Request) {
	id, err := oracleID(r)
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	oracle, err := s.backend.Oracle(r.Context(), &types.QueryOracleRequest{OracleId: id})
	if err != nil {
		writeError(w, err)
		return
	}
	if oracle.Oracle == nil {
		writeNotFound(w, fmt.Sprintf("oracle %d", id))
		return
	}

	res, err := s.backend.Voters(r.Context(), &types.QueryVotersRequest{OracleId: id})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) subscriptionFee(w http.ResponseWriter, r *http.Request) {
	res, err := s.backend.SubscriptionFee(r.Context(), &types.QuerySubscriptionFeeRequest{})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) params(w http.ResponseWriter, r *http.Request) {
	res, err := s.backend.Params(r.Context(), &types.QueryParamsRequest{})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) owner(w http.ResponseWriter, r *http.Request) {
	res, err := s.backend.Owner(r.Context(), &types.QueryOwnerRequest{})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) treasury(w http.ResponseWriter, r *http.Request) {
	res, err := s.backend.Treasury(r.Context(), &types.QueryTreasuryRequest{})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type healthResponse struct {
	Healthy bool  `json:"healthy"`
	Height  int64 `json:"height"`
	Checks  any   `json:"checks,omitempty"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	res := healthResponse{Healthy: true, Height: s.backend.Height()}
	if s.checker != nil {
		res.Healthy = s.checker.IsHealthy()
		res.Checks = s.checker.GetStatus()
	}

	status := http.StatusOK
	if !res.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, res)
}

func (s *Server) metricsHandler(w http.ResponseWriter, r *http.Request) {
	if s.metrics == nil {
		http.Error(w, "telemetry disabled", http.StatusServiceUnavailable)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "prometheus"
	}
	gr, err := s.metrics.Gather(format)
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to gather metrics: %s", err), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", gr.ContentType)
	_, _ = w.Write(gr.Metrics)
}
