package kinds

import (
	p "github.com/baking-bad/tzkt-sub003/internal/core/projection"
)

// Kind names
const (
	Transaction         = "transaction"
	Origination         = "origination"
	Delegation          = "delegation"
	Reveal              = "reveal"
	RegisterConstant    = "register_constant"
	SetDepositsLimit    = "set_deposits_limit"
	TransferTicket      = "transfer_ticket"
	IncreasePaidStorage = "increase_paid_storage"
	UpdateConsensusKey  = "update_consensus_key"
	DrainDelegate       = "drain_delegate"
	Staking             = "staking"
	TxRollupOrigination = "tx_rollup_origination"
	TxRollupSubmitBatch = "tx_rollup_submit_batch"
	TxRollupRejection   = "tx_rollup_rejection"
	SrAddMessages       = "sr_add_messages"
	SrCement            = "sr_cement"
	SrExecute           = "sr_execute"
	SrOriginate         = "sr_originate"
	SrPublish           = "sr_publish"
	SrRecoverBond       = "sr_recover_bond"
	SrRefute            = "sr_refute"
	Endorsement         = "endorsement"
	Preendorsement      = "preendorsement"
	Ballot              = "ballot"
	Proposal            = "proposal"
	Activation          = "activation"
	DoubleBaking        = "double_baking"
	DoubleEndorsing     = "double_endorsing"
	DoublePreendorsing  = "double_preendorsing"
	NonceRevelation     = "nonce_revelation"
	VdfRevelation       = "vdf_revelation"
	RevelationPenalty   = "revelation_penalty"
	Baking              = "baking"
	EndorsingReward     = "endorsing_reward"
	Migration           = "migration"
	TokenTransfer       = "token_transfer"
)

func init() {
	for _, k := range definitions() {
		register(k)
	}
}

func kind(name, table string, fields []p.Field, roles map[Role][]string, sortable []string) *Kind {
	return &Kind{Name: name, Table: table, Schema: p.NewSchema(fields...), Roles: roles, Sortable: sortable}
}

func definitions() []*Kind {
	parameter := p.Field{
		Name:    "parameter",
		Columns: []string{"Entrypoint", "RawParameters"},
		Type:    p.TypeParameter,
		Subs:    []string{"entrypoint", "value"},
	}
	slashing := func(name, table string) *Kind {
		return kind(name, table,
			operation(
				account("accuser", "AccuserId"),
				account("offender", "OffenderId"),
				num("accusedLevel", "AccusedLevel"),
				num("reward", "Reward"),
				num("lostStaked", "LostStaked"),
				num("lostUnstaked", "LostUnstaked"),
			),
			map[Role][]string{Accuser: {"accuser"}, Offender: {"offender"}},
			sortWith(sortBase, "accusedLevel"),
		)
	}
	consensus := func(name, table string) *Kind {
		return kind(name, table,
			operation(account("delegate", "DelegateId"), num("slots", "Slots")),
			map[Role][]string{Sender: {"delegate"}},
			sortWith(sortBase, "slots"),
		)
	}

	return []*Kind{
		kind(Transaction, "TransactionOps",
			manager(
				account("initiator", "InitiatorId"),
				account("target", "TargetId"),
				num("nonce", "Nonce"),
				num("amount", "Amount"),
				parameter,
				num("storageUsed", "StorageUsed"),
				num("storageFee", "StorageFee"),
				num("allocationFee", "AllocationFee"),
				flag("hasInternals", "InternalOperations"),
			),
			map[Role][]string{Sender: {"sender"}, Target: {"target"}, Initiator: {"initiator"}},
			sortWith(sortManager, "amount", "storageUsed", "storageFee", "allocationFee"),
		),
		kind(Origination, "OriginationOps",
			manager(
				account("initiator", "InitiatorId"),
				account("contractDelegate", "DelegateId"),
				account("originatedContract", "ContractId"),
				num("nonce", "Nonce"),
				num("contractBalance", "Balance"),
				num("storageUsed", "StorageUsed"),
				num("storageFee", "StorageFee"),
				num("allocationFee", "AllocationFee"),
			),
			map[Role][]string{
				Sender:      {"sender"},
				Initiator:   {"initiator"},
				NewDelegate: {"contractDelegate"},
				Contract:    {"originatedContract"},
			},
			sortWith(sortManager, "contractBalance", "storageUsed", "storageFee", "allocationFee"),
		),
		kind(Delegation, "DelegationOps",
			manager(
				account("initiator", "InitiatorId"),
				account("prevDelegate", "PrevDelegateId"),
				account("newDelegate", "DelegateId"),
				num("nonce", "Nonce"),
				num("amount", "Amount"),
			),
			map[Role][]string{
				Sender:       {"sender"},
				Initiator:    {"initiator"},
				PrevDelegate: {"prevDelegate"},
				NewDelegate:  {"newDelegate"},
			},
			sortWith(sortManager, "amount"),
		),
		kind(Reveal, "RevealOps", manager(), map[Role][]string{Sender: {"sender"}}, sortManager),
		kind(RegisterConstant, "RegisterConstantOps",
			manager(str("address", "Address"), num("storageUsed", "StorageUsed"), num("storageFee", "StorageFee")),
			map[Role][]string{Sender: {"sender"}},
			sortWith(sortManager, "storageUsed"),
		),
		kind(SetDepositsLimit, "SetDepositsLimitOps",
			manager(num("limit", "Limit")),
			map[Role][]string{Sender: {"sender"}},
			sortManager,
		),
		kind(TransferTicket, "TransferTicketOps",
			manager(
				account("target", "TargetId"),
				account("ticketer", "TicketerId"),
				num("amount", "Amount"),
				str("entrypoint", "Entrypoint"),
				num("storageUsed", "StorageUsed"),
				num("storageFee", "StorageFee"),
			),
			map[Role][]string{Sender: {"sender"}, Target: {"target", "ticketer"}},
			sortWith(sortManager, "amount"),
		),
		kind(IncreasePaidStorage, "IncreasePaidStorageOps",
			manager(account("contract", "ContractId"), num("amount", "Amount"), num("storageFee", "StorageFee")),
			map[Role][]string{Sender: {"sender"}, Contract: {"contract"}},
			sortWith(sortManager, "amount"),
		),
		kind(UpdateConsensusKey, "UpdateConsensusKeyOps",
			manager(num("activationCycle", "ActivationCycle"), str("publicKeyHash", "PublicKeyHash")),
			map[Role][]string{Sender: {"sender"}},
			sortManager,
		),
		kind(DrainDelegate, "DrainDelegateOps",
			operation(
				account("delegate", "DelegateId"),
				account("target", "TargetId"),
				num("amount", "Amount"),
				num("fee", "Fee"),
				num("allocationFee", "AllocationFee"),
			),
			map[Role][]string{Sender: {"delegate"}, Target: {"target"}},
			sortWith(sortBase, "amount", "fee"),
		),
		kind(Staking, "StakingOps",
			manager(account("baker", "BakerId"), str("action", "Action"), num("amount", "Amount")),
			map[Role][]string{Sender: {"sender"}, Baker: {"baker"}},
			sortWith(sortManager, "amount"),
		),

		kind(TxRollupOrigination, "TxRollupOriginationOps",
			rollup("RollupId", num("allocationFee", "AllocationFee")),
			map[Role][]string{Sender: {"sender"}, Contract: {"rollup"}},
			sortWith(sortManager, "storageUsed"),
		),
		kind(TxRollupSubmitBatch, "TxRollupSubmitBatchOps",
			rollup("RollupId"),
			map[Role][]string{Sender: {"sender"}, Target: {"rollup"}},
			sortWith(sortManager, "storageUsed"),
		),
		kind(TxRollupRejection, "TxRollupRejectionOps",
			rollup("RollupId", account("committer", "CommitterId"), num("reward", "Reward"), num("loss", "Loss")),
			map[Role][]string{Sender: {"sender"}, Target: {"rollup"}, Offender: {"committer"}},
			sortWith(sortManager, "reward", "loss"),
		),

		kind(SrAddMessages, "SmartRollupAddMessagesOps",
			manager(num("messagesCount", "MessagesCount")),
			map[Role][]string{Sender: {"sender"}},
			sortManager,
		),
		kind(SrCement, "SmartRollupCementOps",
			rollup("SmartRollupId", num("commitment", "CommitmentId")),
			map[Role][]string{Sender: {"sender"}, Target: {"rollup"}},
			sortManager,
		),
		kind(SrExecute, "SmartRollupExecuteOps",
			rollup("SmartRollupId", num("commitment", "CommitmentId")),
			map[Role][]string{Sender: {"sender"}, Target: {"rollup"}},
			sortWith(sortManager, "storageUsed"),
		),
		kind(SrOriginate, "SmartRollupOriginateOps",
			rollup("SmartRollupId", str("pvmKind", "PvmKind"), str("genesisCommitment", "GenesisCommitment")),
			map[Role][]string{Sender: {"sender"}, Contract: {"rollup"}},
			sortWith(sortManager, "storageUsed"),
		),
		kind(SrPublish, "SmartRollupPublishOps",
			rollup("SmartRollupId", num("commitment", "CommitmentId"), num("bond", "Bond")),
			map[Role][]string{Sender: {"sender"}, Target: {"rollup"}},
			sortWith(sortManager, "bond"),
		),
		kind(SrRecoverBond, "SmartRollupRecoverBondOps",
			rollup("SmartRollupId", account("staker", "StakerId"), num("bond", "Bond")),
			map[Role][]string{Sender: {"sender"}, Target: {"rollup"}, Offender: {"staker"}},
			sortWith(sortManager, "bond"),
		),
		kind(SrRefute, "SmartRollupRefuteOps",
			rollup("SmartRollupId",
				account("initiator", "InitiatorId"),
				account("opponent", "OpponentId"),
				str("move", "Move"),
				str("gameStatus", "GameStatus"),
			),
			map[Role][]string{Sender: {"sender", "initiator"}, Target: {"rollup"}, Offender: {"opponent"}},
			sortManager,
		),

		consensus(Endorsement, "EndorsementOps"),
		consensus(Preendorsement, "PreendorsementOps"),
		kind(Ballot, "BallotOps",
			operation(account("delegate", "DelegateId"), num("period", "PeriodId"), str("vote", "Vote"), num("votingPower", "VotingPower")),
			map[Role][]string{Sender: {"delegate"}},
			sortWith(sortBase, "votingPower"),
		),
		kind(Proposal, "ProposalOps",
			operation(account("delegate", "DelegateId"), num("period", "PeriodId"), num("proposalId", "ProposalId"), flag("duplicated", "Duplicated")),
			map[Role][]string{Sender: {"delegate"}},
			sortBase,
		),
		kind(Activation, "ActivationOps",
			operation(account("account", "AccountId"), num("balance", "Balance")),
			map[Role][]string{Target: {"account"}},
			sortWith(sortBase, "balance"),
		),
		slashing(DoubleBaking, "DoubleBakingOps"),
		slashing(DoubleEndorsing, "DoubleEndorsingOps"),
		slashing(DoublePreendorsing, "DoublePreendorsingOps"),
		kind(NonceRevelation, "NonceRevelationOps",
			operation(account("baker", "BakerId"), account("sender", "SenderId"), num("revealedLevel", "RevealedLevel"), num("reward", "Reward")),
			map[Role][]string{Baker: {"baker"}, Sender: {"sender"}},
			sortWith(sortBase, "revealedLevel"),
		),
		kind(VdfRevelation, "VdfRevelationOps",
			operation(account("baker", "BakerId"), num("cycle", "Cycle"), num("reward", "Reward")),
			map[Role][]string{Baker: {"baker"}},
			sortWith(sortBase, "cycle"),
		),
		kind(RevelationPenalty, "RevelationPenaltyOps",
			append(base(), account("baker", "BakerId"), num("missedLevel", "MissedLevel"), num("loss", "Loss")),
			map[Role][]string{Baker: {"baker"}},
			sortWith(sortBase, "loss"),
		),
		kind(Baking, "Blocks",
			append(base(),
				str("block", "Hash"),
				account("baker", "BakerId"),
				account("proposer", "ProposerId"),
				num("payloadRound", "PayloadRound"),
				num("blockRound", "BlockRound"),
				num("reward", "RewardDelegated"),
				num("bonus", "BonusDelegated"),
				num("fees", "Fees"),
			),
			map[Role][]string{Baker: {"baker", "proposer"}},
			sortWith(sortBase, "reward", "fees"),
		),
		kind(EndorsingReward, "EndorsingRewardOps",
			append(base(), account("baker", "BakerId"), num("expected", "Expected"), num("received", "RewardDelegated")),
			map[Role][]string{Baker: {"baker"}},
			sortWith(sortBase, "expected", "received"),
		),
		kind(Migration, "MigrationOps",
			append(base(), account("account", "AccountId"), num("balanceChange", "BalanceChange"), num("migrationKind", "Kind")),
			map[Role][]string{Target: {"account"}},
			sortWith(sortBase, "balanceChange"),
		),
		kind(TokenTransfer, "TokenTransfers",
			append(base(),
				num("token", "TokenId"),
				account("initiator", "InitiatorId"),
				account("from", "FromId"),
				account("to", "ToId"),
				str("amount", "Amount"),
				num("transactionId", "TransactionId"),
				num("originationId", "OriginationId"),
				num("migrationId", "MigrationId"),
			),
			map[Role][]string{Sender: {"from"}, Target: {"to"}, Initiator: {"initiator"}},
			sortBase,
		),
	}
}
