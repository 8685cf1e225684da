package keeper

import (
	errorsmod "cosmossdk.io/errors"
	"github.com/cosmos/cosmos-sdk/store/prefix"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/GPTx-global/guru-dataoracle/x/dataoracle/types"
)

// CastVote records a vote of an active subscriber for an oracle. Each
// subscriber may vote once per oracle. The oracle becomes active once its vote
// count reaches the activation threshold; activated reports that transition.
func (k Keeper) CastVote(ctx sdk.Context, voter string, oracleId uint64) (oracle types.Oracle, activated bool, err error) {
	if !k.HasActiveSubscription(ctx, voter) {
		return types.Oracle{}, false, errorsmod.Wrapf(types.ErrInvalidSubscription, "%s has no active subscription", voter)
	}

	oracle, found := k.GetOracle(ctx, oracleId)
	if !found {
		return types.Oracle{}, false, errorsmod.Wrapf(types.ErrOracleNotFound, "oracle %d", oracleId)
	}

	if k.HasVote(ctx, oracleId, voter) {
		return types.Oracle{}, false, errorsmod.Wrapf(types.ErrAlreadyVoted, "%s on oracle %d", voter, oracleId)
	}

	k.SetVote(ctx, types.Vote{
		OracleId: oracleId,
		Voter:    voter,
		Height:   ctx.BlockHeight(),
	})

	oracle.Votes++
	threshold := k.GetParams(ctx).ActivationVotes
	if !oracle.Active && oracle.Votes >= threshold {
		oracle.Active = true
		activated = true
	}
	k.SetOracle(ctx, oracle)

	return oracle, activated, nil
}

func (k Keeper) HasVote(ctx sdk.Context, oracleId uint64, voter string) bool {
	store := ctx.KVStore(k.storeKey)
	return store.Has(types.GetVoteKey(oracleId, voter))
}

func (k Keeper) SetVote(ctx sdk.Context, vote types.Vote) {
	store := ctx.KVStore(k.storeKey)
	store.Set(types.GetVoteKey(vote.OracleId, vote.Voter), k.cdc.MustMarshal(&vote))
}

// GetAllVotes returns every vote record ordered by oracle id.
func (k Keeper) GetAllVotes(ctx sdk.Context) []types.Vote {
	store := prefix.NewStore(ctx.KVStore(k.storeKey), types.KeyVotes)
	iterator := store.Iterator(nil, nil)
	defer iterator.Close()

	votes := []types.Vote{}
	for ; iterator.Valid(); iterator.Next() {
		oracleId, voter, err := types.ParseVoteKey(iterator.Key())
		if err != nil {
			panic(err)
		}
		var vote types.Vote
		k.cdc.MustUnmarshal(iterator.Value(), &vote)
		vote.OracleId, vote.Voter = oracleId, voter
		votes = append(votes, vote)
	}
	return votes
}

// GetOracleVoters returns the addresses that voted for an oracle.
func (k Keeper) GetOracleVoters(ctx sdk.Context, oracleId uint64) []string {
	store := prefix.NewStore(ctx.KVStore(k.storeKey), types.GetVotesPrefix(oracleId))
	iterator := store.Iterator(nil, nil)
	defer iterator.Close()

	voters := []string{}
	for ; iterator.Valid(); iterator.Next() {
		voters = append(voters, string(iterator.Key()))
	}
	return voters
}
