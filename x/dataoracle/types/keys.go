package types

import (
	"encoding/binary"
	"fmt"
)

const (
	// ModuleName defines the module name
	ModuleName = "dataoracle"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// RouterKey defines the module's message routing key
	RouterKey = ModuleName
)

// KV Store key prefix bytes
const (
	prefixOwnerAddress = iota + 1
	prefixParams
	prefixSubscriptions
	prefixOracles
	prefixNextOracleId
	prefixSubmittedData
	prefixVotes
	prefixTreasury
)

// KV Store key prefixes
var (
	KeyOwnerAddress  = []byte{prefixOwnerAddress}
	KeyParams        = []byte{prefixParams}
	KeySubscriptions = []byte{prefixSubscriptions}
	KeyOracles       = []byte{prefixOracles}
	KeyNextOracleId  = []byte{prefixNextOracleId}
	KeySubmittedData = []byte{prefixSubmittedData}
	KeyVotes         = []byte{prefixVotes}
	KeyTreasury      = []byte{prefixTreasury}
)

func IDToBytes(id uint64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, id)
	return bz
}

func BytesToID(bz []byte) (uint64, error) {
	if len(bz) != 8 {
		return 0, fmt.Errorf("invalid id length: %d", len(bz))
	}
	return binary.BigEndian.Uint64(bz), nil
}

// GetSubscriptionKey returns the key for storing the subscription of an address
func GetSubscriptionKey(subscriber string) []byte {
	return append(append([]byte{}, KeySubscriptions...), []byte(subscriber)...)
}

// GetOracleKey returns the key for storing an oracle
func GetOracleKey(id uint64) []byte {
	return append(append([]byte{}, KeyOracles...), IDToBytes(id)...)
}

// GetSubmittedDataKey returns the key for storing the latest data of an oracle
func GetSubmittedDataKey(id uint64) []byte {
	return append(append([]byte{}, KeySubmittedData...), IDToBytes(id)...)
}

// GetVotesPrefix returns the prefix under which all votes of an oracle are stored
func GetVotesPrefix(oracleId uint64) []byte {
	return append(append([]byte{}, KeyVotes...), IDToBytes(oracleId)...)
}

// GetVoteKey returns the key of the vote record (oracle id, voter)
func GetVoteKey(oracleId uint64, voter string) []byte {
	return append(GetVotesPrefix(oracleId), []byte(voter)...)
}

// ParseVoteKey splits a vote key (without the KeyVotes prefix) into oracle id and voter
func ParseVoteKey(key []byte) (uint64, string, error) {
	if len(key) <= 8 {
		return 0, "", fmt.Errorf("invalid vote key length: %d", len(key))
	}
	return binary.BigEndian.Uint64(key[:8]), string(key[8:]), nil
}
