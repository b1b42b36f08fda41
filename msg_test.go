package vault

import (
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/vault/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingMsg struct {
	Text string `protobuf:"bytes,1,opt,name=text,proto3" json:"text,omitempty"`
}

func (m *pingMsg) Reset()         { *m = pingMsg{} }
func (m *pingMsg) String() string { return proto.CompactTextString(m) }
func (*pingMsg) ProtoMessage()    {}
func (*pingMsg) Path() string     { return "test/ping" }

func (m *pingMsg) Validate() error {
	if m.Text == "" {
		return errors.Wrap(errors.ErrInput, "empty text")
	}
	return nil
}

type pongMsg struct {
	Text string `protobuf:"bytes,1,opt,name=text,proto3" json:"text,omitempty"`
}

func (m *pongMsg) Reset()         { *m = pongMsg{} }
func (m *pongMsg) String() string { return proto.CompactTextString(m) }
func (*pongMsg) ProtoMessage()    {}
func (*pongMsg) Path() string     { return "test/pong" }
func (*pongMsg) Validate() error  { return nil }

func TestPackUnpack(t *testing.T) {
	raw, err := Pack(&pingMsg{Text: "hello"})
	require.NoError(t, err)

	env, err := Unpack(raw)
	require.NoError(t, err)
	assert.Equal(t, "test/ping", env.Path)

	var got pingMsg
	require.NoError(t, env.LoadMsg(&got))
	assert.Equal(t, "hello", got.Text)

	var wrong pongMsg
	err = env.LoadMsg(&wrong)
	assert.True(t, errors.ErrType.Is(err))
}

func TestPackInvalid(t *testing.T) {
	_, err := Pack(&pingMsg{})
	assert.True(t, errors.ErrInput.Is(err))
}

func TestUnpackGarbage(t *testing.T) {
	_, err := Unpack([]byte{0xff, 0x01, 0x02})
	assert.True(t, errors.ErrInput.Is(err))

	_, err = Unpack(nil)
	assert.True(t, errors.ErrInput.Is(err))
}
