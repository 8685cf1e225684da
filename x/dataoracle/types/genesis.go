package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// GenesisState is the complete registry state.
type GenesisState struct {
	Owner         string          `json:"owner"`
	Params        Params          `json:"params"`
	NextOracleId  uint64          `json:"next_oracle_id"`
	Subscriptions []Subscription  `json:"subscriptions"`
	Oracles       []Oracle        `json:"oracles"`
	Data          []SubmittedData `json:"data"`
	Votes         []Vote          `json:"votes"`
	Treasury      Treasury        `json:"treasury"`
}

// NewGenesisState creates a new genesis state with no records.
func NewGenesisState(owner string, params Params) GenesisState {
	return GenesisState{
		Owner:         owner,
		Params:        params,
		NextOracleId:  1,
		Subscriptions: []Subscription{},
		Oracles:       []Oracle{},
		Data:          []SubmittedData{},
		Votes:         []Vote{},
	}
}

// DefaultGenesisState returns a default genesis state. The owner must be filled
// in before the state is valid.
func DefaultGenesisState() *GenesisState {
	gs := NewGenesisState("", DefaultParams())
	return &gs
}

// Validate performs basic genesis state validation returning an error upon any
// failure.
func (gs GenesisState) Validate() error {
	if gs.Owner == "" {
		return fmt.Errorf("owner address cannot be empty")
	}
	if _, err := sdk.AccAddressFromBech32(gs.Owner); err != nil {
		return fmt.Errorf("invalid owner address: %w", err)
	}

	if err := gs.Params.Validate(); err != nil {
		return fmt.Errorf("invalid params: %w", err)
	}

	if gs.NextOracleId == 0 {
		return fmt.Errorf("next oracle id must start at 1")
	}

	subscribers := make(map[string]struct{}, len(gs.Subscriptions))
	for _, sub := range gs.Subscriptions {
		if _, err := sdk.AccAddressFromBech32(sub.Subscriber); err != nil {
			return fmt.Errorf("invalid subscriber address: %w", err)
		}
		if !sub.SubscriptionType.Valid() {
			return fmt.Errorf("invalid subscription type for %s", sub.Subscriber)
		}
		if _, ok := subscribers[sub.Subscriber]; ok {
			return fmt.Errorf("duplicate subscription for %s", sub.Subscriber)
		}
		subscribers[sub.Subscriber] = struct{}{}
	}

	oracles := make(map[uint64]Oracle, len(gs.Oracles))
	for _, oracle := range gs.Oracles {
		if oracle.Id == 0 || oracle.Id >= gs.NextOracleId {
			return fmt.Errorf("oracle id %d out of range [1, %d)", oracle.Id, gs.NextOracleId)
		}
		if _, ok := oracles[oracle.Id]; ok {
			return fmt.Errorf("duplicate oracle id %d", oracle.Id)
		}
		if _, err := sdk.AccAddressFromBech32(oracle.Provider); err != nil {
			return fmt.Errorf("invalid provider address of oracle %d: %w", oracle.Id, err)
		}
		if !gs.Params.HasDataType(oracle.DataType) {
			return fmt.Errorf("invalid data type %s of oracle %d", oracle.DataType, oracle.Id)
		}
		oracles[oracle.Id] = oracle
	}

	dataSeen := make(map[uint64]struct{}, len(gs.Data))
	for _, data := range gs.Data {
		oracle, ok := oracles[data.OracleId]
		if !ok {
			return fmt.Errorf("data for unknown oracle %d", data.OracleId)
		}
		if data.Provider != oracle.Provider {
			return fmt.Errorf("data of oracle %d not submitted by its provider", data.OracleId)
		}
		if _, ok := dataSeen[data.OracleId]; ok {
			return fmt.Errorf("duplicate data for oracle %d", data.OracleId)
		}
		dataSeen[data.OracleId] = struct{}{}
	}

	voteCount := make(map[uint64]uint64, len(gs.Oracles))
	votesSeen := make(map[string]struct{}, len(gs.Votes))
	for _, vote := range gs.Votes {
		if _, ok := oracles[vote.OracleId]; !ok {
			return fmt.Errorf("vote for unknown oracle %d", vote.OracleId)
		}
		key := string(GetVoteKey(vote.OracleId, vote.Voter))
		if _, ok := votesSeen[key]; ok {
			return fmt.Errorf("duplicate vote of %s for oracle %d", vote.Voter, vote.OracleId)
		}
		votesSeen[key] = struct{}{}
		voteCount[vote.OracleId]++
	}

	for id, oracle := range oracles {
		if oracle.Votes != voteCount[id] {
			return fmt.Errorf("oracle %d has %d votes but %d vote records", id, oracle.Votes, voteCount[id])
		}
	}

	return nil
}
