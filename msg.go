package vault

import (
	"regexp"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/vault/errors"
)

// Msg is a message that can be relayed to an extension. The path is used
// for routing, the protobuf encoding of the message is the payload.
type Msg interface {
	proto.Message

	// Path returns the routing path for this message.
	Path() string

	// Validate performs a sanity checks on this message. It returns an
	// error if at least one of the checks fails.
	Validate() error
}

var isPath = regexp.MustCompile(`^[a-z0-9_]{2,16}/[a-z0-9_]{2,32}$`).MatchString

// Envelope is the container of a relayed message. It is what travels as
// the opaque call data of a relayed action.
type Envelope struct {
	Path    string `protobuf:"bytes,1,opt,name=path,proto3" json:"path,omitempty"`
	Payload []byte `protobuf:"bytes,2,opt,name=payload,proto3" json:"payload,omitempty"`
}

func (m *Envelope) Reset()         { *m = Envelope{} }
func (m *Envelope) String() string { return proto.CompactTextString(m) }
func (*Envelope) ProtoMessage()    {}

// Validate returns an error if the envelope cannot be routed.
func (m *Envelope) Validate() error {
	if !isPath(m.Path) {
		return errors.Wrapf(errors.ErrInput, "invalid path %q", m.Path)
	}
	return nil
}

// Pack validates and serializes given message into call data.
func Pack(msg Msg) ([]byte, error) {
	if err := msg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid message")
	}
	payload, err := proto.Marshal(msg)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "marshal message: %s", err)
	}
	env := Envelope{Path: msg.Path(), Payload: payload}
	if err := env.Validate(); err != nil {
		return nil, err
	}
	raw, err := proto.Marshal(&env)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "marshal envelope: %s", err)
	}
	return raw, nil
}

// MustPack is Pack that panics on error. Use it only with messages known to
// be valid, for example in tests.
func MustPack(msg Msg) []byte {
	raw, err := Pack(msg)
	if err != nil {
		panic(err)
	}
	return raw
}

// Unpack decodes call data previously created by Pack.
func Unpack(data []byte) (*Envelope, error) {
	var env Envelope
	if err := proto.Unmarshal(data, &env); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "envelope: %s", err)
	}
	if err := env.Validate(); err != nil {
		return nil, err
	}
	return &env, nil
}

// LoadMsg deserializes the envelope payload into dest and validates it.
// The envelope path must match the destination message path.
func (m *Envelope) LoadMsg(dest Msg) error {
	if m.Path != dest.Path() {
		return errors.Wrapf(errors.ErrType, "cannot load %q into %T", m.Path, dest)
	}
	if err := proto.Unmarshal(m.Payload, dest); err != nil {
		return errors.Wrapf(errors.ErrInput, "unmarshal %q: %s", m.Path, err)
	}
	return dest.Validate()
}
