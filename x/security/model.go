package security

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

// MaxSigners limits the size of a signer set.
const MaxSigners = 16

// Guard is the per account state of the security module.
type Guard struct {
	Signers []vault.Address `protobuf:"bytes,1,rep,name=signers,proto3" json:"signers,omitempty"`
	// Quorum is the number of signatures a relayed action requires. It is
	// always the size of the signer set.
	Quorum   uint32    `protobuf:"varint,2,opt,name=quorum,proto3" json:"quorum,omitempty"`
	Recovery *Recovery `protobuf:"bytes,3,opt,name=recovery,proto3" json:"recovery,omitempty"`
	Lock     *Lock     `protobuf:"bytes,4,opt,name=lock,proto3" json:"lock,omitempty"`
}

func (m *Guard) Reset()         { *m = Guard{} }
func (m *Guard) String() string { return proto.CompactTextString(m) }
func (*Guard) ProtoMessage()    {}

// Validate ensures the guard is valid.
func (m *Guard) Validate() error {
	if err := validateSigners(m.Signers, m.Quorum); err != nil {
		return err
	}
	if m.Recovery != nil {
		if err := m.Recovery.Validate(); err != nil {
			return errors.Wrap(err, "recovery")
		}
	}
	if m.Lock != nil {
		if err := m.Lock.Validate(); err != nil {
			return errors.Wrap(err, "lock")
		}
	}
	return nil
}

// IsSigner returns true if addr belongs to the signer set.
func (m *Guard) IsSigner(addr vault.Address) bool {
	return m.signerIndex(addr) >= 0
}

func (m *Guard) signerIndex(addr vault.Address) int {
	for i, s := range m.Signers {
		if s.Equals(addr) {
			return i
		}
	}
	return -1
}

// Recovery is an active request to replace the account owner.
type Recovery struct {
	ProposedOwner vault.Address  `protobuf:"bytes,1,opt,name=proposed_owner,json=proposedOwner,proto3" json:"proposed_owner,omitempty"`
	TriggeredBy   vault.Address  `protobuf:"bytes,2,opt,name=triggered_by,json=triggeredBy,proto3" json:"triggered_by,omitempty"`
	TriggeredAt   vault.UnixTime `protobuf:"varint,3,opt,name=triggered_at,json=triggeredAt,proto3" json:"triggered_at,omitempty"`
}

func (m *Recovery) Reset()         { *m = Recovery{} }
func (m *Recovery) String() string { return proto.CompactTextString(m) }
func (*Recovery) ProtoMessage()    {}

func (m *Recovery) Validate() error {
	if err := m.ProposedOwner.Validate(); err != nil {
		return errors.Wrap(err, "proposed owner")
	}
	if err := m.TriggeredBy.Validate(); err != nil {
		return errors.Wrap(err, "triggered by")
	}
	return m.TriggeredAt.Validate()
}

// Lock marks an account as locked.
type Lock struct {
	LockedBy vault.Address  `protobuf:"bytes,1,opt,name=locked_by,json=lockedBy,proto3" json:"locked_by,omitempty"`
	LockedAt vault.UnixTime `protobuf:"varint,2,opt,name=locked_at,json=lockedAt,proto3" json:"locked_at,omitempty"`
}

func (m *Lock) Reset()         { *m = Lock{} }
func (m *Lock) String() string { return proto.CompactTextString(m) }
func (*Lock) ProtoMessage()    {}

func (m *Lock) Validate() error {
	if err := m.LockedBy.Validate(); err != nil {
		return errors.Wrap(err, "locked by")
	}
	return m.LockedAt.Validate()
}

// InitPayload is the module specific data an account is initialized with.
type InitPayload struct {
	Signers []vault.Address `protobuf:"bytes,1,rep,name=signers,proto3" json:"signers,omitempty"`
	Quorum  uint32          `protobuf:"varint,2,opt,name=quorum,proto3" json:"quorum,omitempty"`
}

func (m *InitPayload) Reset()         { *m = InitPayload{} }
func (m *InitPayload) String() string { return proto.CompactTextString(m) }
func (*InitPayload) ProtoMessage()    {}

func (m *InitPayload) Validate() error {
	return validateSigners(m.Signers, m.Quorum)
}

// NewInitData returns the serialized init payload for given signers. The
// quorum is the size of the set.
func NewInitData(signers []vault.Address) ([]byte, error) {
	p := InitPayload{Signers: signers, Quorum: uint32(len(signers))}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	raw, err := proto.Marshal(&p)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "marshal: %s", err)
	}
	return raw, nil
}

func validateSigners(signers []vault.Address, quorum uint32) error {
	switch n := len(signers); {
	case n == 0:
		return errors.Wrap(errors.ErrModel, "no signers")
	case n > MaxSigners:
		return errors.Wrapf(errors.ErrModel, "more than %d signers", MaxSigners)
	}
	for i, s := range signers {
		if err := s.Validate(); err != nil {
			return errors.Wrapf(err, "signer %d", i)
		}
		for _, other := range signers[:i] {
			if s.Equals(other) {
				return errors.Wrapf(errors.ErrDuplicateSigner, "signer %s", s)
			}
		}
	}
	if int(quorum) != len(signers) {
		return errors.Wrapf(errors.ErrModel, "quorum %d, every one of %d signers is required", quorum, len(signers))
	}
	return nil
}
