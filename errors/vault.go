package errors

// Authorization core failures. Codes 100~129 are reserved for them.
var (
	// ErrNotASigner is returned when an identity that is not part of the
	// account signer set attempts a signer gated action or signs a relayed
	// action.
	ErrNotASigner = Register(100, "not a signer")

	// ErrNotOwner is returned when an owner gated action is requested by
	// anyone but the account owner.
	ErrNotOwner = Register(101, "not the owner")

	// ErrNotCurrentSigner is returned when a signer that is expected to be
	// replaced is not a member of the signer set.
	ErrNotCurrentSigner = Register(102, "not a current signer")

	ErrRecoveryAlreadyActive = Register(103, "recovery already active")
	ErrNoActiveRecovery      = Register(104, "no active recovery")

	// ErrRecoveryPending is returned when a recovery is executed before
	// its cancellation window has passed.
	ErrRecoveryPending = Register(105, "recovery delay not elapsed")

	ErrAlreadyLocked = Register(106, "already locked")
	ErrNotLocked     = Register(107, "not locked")

	// ErrAccountLocked is returned for any relayed action submitted while
	// the account is locked.
	ErrAccountLocked = Register(108, "account locked")

	// ErrSequenceMismatch is returned when a relayed action was built for
	// a sequence value other than the next one of the account.
	ErrSequenceMismatch = Register(109, "sequence mismatch")

	ErrInvalidSignature = Register(110, "invalid signature")
	ErrDuplicateSigner  = Register(111, "duplicate signer")
	ErrQuorumNotMet     = Register(112, "quorum not met")

	// ErrAlreadyCreated is returned when an account is created twice at
	// the same derived address.
	ErrAlreadyCreated = Register(113, "already created")

	// ErrRelayFailed wraps the failure of a relayed call whose
	// authorization succeeded.
	ErrRelayFailed = Register(114, "relayed call failed")
)
