package deployer

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

// Deployment records the creation of an account.
type Deployment struct {
	Template  vault.Address  `protobuf:"bytes,1,opt,name=template,proto3" json:"template,omitempty"`
	Salt      []byte         `protobuf:"bytes,2,opt,name=salt,proto3" json:"salt,omitempty"`
	Address   vault.Address  `protobuf:"bytes,3,opt,name=address,proto3" json:"address,omitempty"`
	CreatedAt vault.UnixTime `protobuf:"varint,4,opt,name=created_at,json=createdAt,proto3" json:"created_at,omitempty"`
}

func (m *Deployment) Reset()         { *m = Deployment{} }
func (m *Deployment) String() string { return proto.CompactTextString(m) }
func (*Deployment) ProtoMessage()    {}

// Validate ensures the deployment is valid.
func (m *Deployment) Validate() error {
	if err := m.Template.Validate(); err != nil {
		return errors.Wrap(err, "template")
	}
	if len(m.Salt) != SaltLength {
		return errors.Wrapf(errors.ErrModel, "salt must be %d bytes", SaltLength)
	}
	if err := m.Address.Validate(); err != nil {
		return errors.Wrap(err, "address")
	}
	if err := m.CreatedAt.Validate(); err != nil {
		return errors.Wrap(err, "created at")
	}
	return nil
}
