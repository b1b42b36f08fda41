package wallet

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

// Account is the ledger record of a single account.
type Account struct {
	Owner vault.Address `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner,omitempty"`
	// Sequence is the next sequence value a relayed action must present.
	Sequence    uint64          `protobuf:"varint,2,opt,name=sequence,proto3" json:"sequence,omitempty"`
	Modules     []vault.Address `protobuf:"bytes,3,rep,name=modules,proto3" json:"modules,omitempty"`
	Initialized bool            `protobuf:"varint,4,opt,name=initialized,proto3" json:"initialized,omitempty"`
}

func (m *Account) Reset()         { *m = Account{} }
func (m *Account) String() string { return proto.CompactTextString(m) }
func (*Account) ProtoMessage()    {}

// Validate ensures the account is valid.
func (m *Account) Validate() error {
	if !m.Initialized {
		if len(m.Owner) != 0 || len(m.Modules) != 0 || m.Sequence != 0 {
			return errors.Wrap(errors.ErrModel, "uninitialized account must be empty")
		}
		return nil
	}
	if err := m.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	for i, a := range m.Modules {
		if err := a.Validate(); err != nil {
			return errors.Wrapf(err, "module %d", i)
		}
	}
	return nil
}

// HasModule returns true if given module is installed.
func (m *Account) HasModule(module vault.Address) bool {
	for _, a := range m.Modules {
		if a.Equals(module) {
			return true
		}
	}
	return false
}

// Balance is the amount held by an address.
type Balance struct {
	Amount uint64 `protobuf:"varint,1,opt,name=amount,proto3" json:"amount,omitempty"`
}

func (m *Balance) Reset()         { *m = Balance{} }
func (m *Balance) String() string { return proto.CompactTextString(m) }
func (*Balance) ProtoMessage()    {}

func (m *Balance) Validate() error {
	return nil
}
