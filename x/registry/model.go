package registry

import (
	"regexp"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

var isModuleName = regexp.MustCompile(`^[A-Za-z0-9_\-]{2,32}$`).MatchString

// Entry binds a module address to a name.
type Entry struct {
	Name   string        `protobuf:"bytes,1,opt,name=name,proto3" json:"name,omitempty"`
	Module vault.Address `protobuf:"bytes,2,opt,name=module,proto3" json:"module,omitempty"`
}

func (m *Entry) Reset()         { *m = Entry{} }
func (m *Entry) String() string { return proto.CompactTextString(m) }
func (*Entry) ProtoMessage()    {}

// Validate ensures the entry is valid.
func (m *Entry) Validate() error {
	if !isModuleName(m.Name) {
		return errors.Wrapf(errors.ErrInput, "invalid module name %q", m.Name)
	}
	if err := m.Module.Validate(); err != nil {
		return errors.Wrap(err, "module")
	}
	return nil
}

// Configuration of the directory, stored under the "registry" package key.
type Configuration struct {
	// Admin is allowed to register and deregister modules as well as to
	// update this configuration.
	Admin vault.Address `protobuf:"bytes,1,opt,name=admin,proto3" json:"admin,omitempty"`
}

func (m *Configuration) Reset()         { *m = Configuration{} }
func (m *Configuration) String() string { return proto.CompactTextString(m) }
func (*Configuration) ProtoMessage()    {}

// GetOwner returns the address allowed to update the configuration.
func (m *Configuration) GetOwner() vault.Address {
	return m.Admin
}

func (m *Configuration) Validate() error {
	if err := m.Admin.Validate(); err != nil {
		return errors.Wrap(err, "admin")
	}
	return nil
}
