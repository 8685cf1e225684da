package types

// dataoracle module event types
const (
	EventTypeSubscribe          = "subscribe"
	EventTypeRegisterOracle     = "register_oracle"
	EventTypeSubmitData         = "submit_data"
	EventTypeVoteOracle         = "vote_oracle"
	EventTypeOracleActivated    = "oracle_activated"
	EventTypeVerifyData         = "verify_data"
	EventTypeSetSubscriptionFee = "set_subscription_fee"

	AttributeKeySubscriber       = "subscriber"
	AttributeKeySubscriptionType = "subscription_type"
	AttributeKeyFee              = "fee"
	AttributeKeyOracleId         = "oracle_id"
	AttributeKeyProvider         = "provider"
	AttributeKeyDataType         = "data_type"
	AttributeKeyStake            = "stake"
	AttributeKeyValue            = "value"
	AttributeKeyVoter            = "voter"
	AttributeKeyVotes            = "votes"
	AttributeKeyOwner            = "owner"
)
