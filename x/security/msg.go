package security

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

const pathExecuteRecovery = "security/execute_recovery"

// ExecuteRecoveryMsg is the relayed call that completes the recovery of an
// account.
type ExecuteRecoveryMsg struct {
	Account vault.Address `protobuf:"bytes,1,opt,name=account,proto3" json:"account,omitempty"`
}

var _ vault.Msg = (*ExecuteRecoveryMsg)(nil)

func (m *ExecuteRecoveryMsg) Reset()         { *m = ExecuteRecoveryMsg{} }
func (m *ExecuteRecoveryMsg) String() string { return proto.CompactTextString(m) }
func (*ExecuteRecoveryMsg) ProtoMessage()    {}

// Path returns the routing path for this message.
func (ExecuteRecoveryMsg) Path() string {
	return pathExecuteRecovery
}

func (m *ExecuteRecoveryMsg) Validate() error {
	if err := m.Account.Validate(); err != nil {
		return errors.Wrap(err, "account")
	}
	return nil
}

// ExecuteRecoveryData returns the call data of a relayed action executing
// the recovery of account.
func ExecuteRecoveryData(account vault.Address) ([]byte, error) {
	return vault.Pack(&ExecuteRecoveryMsg{Account: account})
}
