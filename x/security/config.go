package security

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

const packageName = "security"

// Configuration of the security module, stored under the "security"
// package key.
type Configuration struct {
	Owner vault.Address `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner,omitempty"`
	// RecoveryDelay is the time that must pass between triggering and
	// executing a recovery. Zero executes immediately.
	RecoveryDelay vault.UnixDuration `protobuf:"varint,2,opt,name=recovery_delay,json=recoveryDelay,proto3" json:"recovery_delay,omitempty"`
}

func (m *Configuration) Reset()         { *m = Configuration{} }
func (m *Configuration) String() string { return proto.CompactTextString(m) }
func (*Configuration) ProtoMessage()    {}

func (m *Configuration) GetOwner() vault.Address {
	return m.Owner
}

func (m *Configuration) Validate() error {
	if err := m.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if m.RecoveryDelay < 0 {
		return errors.Wrap(errors.ErrModel, "negative recovery delay")
	}
	return nil
}
