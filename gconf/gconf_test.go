package gconf

import (
	"encoding/json"
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConf struct {
	Owner vault.Address `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner,omitempty"`
	Limit int64         `protobuf:"varint,2,opt,name=limit,proto3" json:"limit,omitempty"`
}

func (m *testConf) Reset()                   { *m = testConf{} }
func (m *testConf) String() string           { return proto.CompactTextString(m) }
func (*testConf) ProtoMessage()              {}
func (m *testConf) GetOwner() vault.Address { return m.Owner }

func (m *testConf) Validate() error {
	if err := m.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if m.Limit < 0 {
		return errors.Wrap(errors.ErrModel, "negative limit")
	}
	return nil
}

var (
	alice = vault.Address("aaaaaaaaaaaaaaaaaaaa")
	bob   = vault.Address("bbbbbbbbbbbbbbbbbbbb")
)

func TestSaveLoad(t *testing.T) {
	db := store.MemStore()

	var got testConf
	err := Load(db, "test", &got)
	assert.True(t, errors.ErrNotFound.Is(err))

	require.NoError(t, Save(db, "test", &testConf{Owner: alice, Limit: 12}))
	require.NoError(t, Load(db, "test", &got))
	assert.Equal(t, alice, got.Owner)
	assert.Equal(t, int64(12), got.Limit)

	err = Save(db, "test", &testConf{Owner: alice, Limit: -1})
	assert.True(t, errors.ErrModel.Is(err))

	// other packages are separate
	err = Load(db, "other", &got)
	assert.True(t, errors.ErrNotFound.Is(err))
}

func TestInitConfig(t *testing.T) {
	genesis := `{
		"conf": {
			"test": {"owner": "0x6161616161616161616161616161616161616161", "limit": 4}
		}
	}`
	var opts vault.Options
	require.NoError(t, json.Unmarshal([]byte(genesis), &opts))

	db := store.MemStore()
	require.NoError(t, InitConfig(db, opts, "test", &testConf{}))

	var got testConf
	require.NoError(t, Load(db, "test", &got))
	assert.Equal(t, alice, got.Owner)
	assert.Equal(t, int64(4), got.Limit)

	err := InitConfig(db, opts, "missing", &testConf{})
	assert.True(t, errors.ErrNotFound.Is(err))
}

func TestUpdate(t *testing.T) {
	db := store.MemStore()
	require.NoError(t, Save(db, "test", &testConf{Owner: alice, Limit: 1}))

	err := Update(db, "test", bob, &testConf{}, &testConf{Owner: bob, Limit: 2})
	assert.True(t, errors.ErrUnauthorized.Is(err))

	require.NoError(t, Update(db, "test", alice, &testConf{}, &testConf{Owner: bob, Limit: 2}))
	var got testConf
	require.NoError(t, Load(db, "test", &got))
	assert.Equal(t, bob, got.Owner)
	assert.Equal(t, int64(2), got.Limit)
}
