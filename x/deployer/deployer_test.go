package deployer

import (
	"testing"
	"time"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/store"
	"github.com/iov-one/vault/vaulttest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// accountSet is an in memory Accounts implementation.
type accountSet map[string]bool

func (s accountSet) Create(db vault.KVStore, account vault.Address) error {
	if s[string(account)] {
		return errors.Wrap(errors.ErrDuplicate, "account")
	}
	s[string(account)] = true
	return nil
}

func mustSalt(t *testing.T, s string) [32]byte {
	t.Helper()
	salt, err := ParseSalt(s)
	require.NoError(t, err)
	return salt
}

func TestAddressDeterminism(t *testing.T) {
	factory := vaulttest.RandomAddr(t)
	template := vaulttest.RandomAddr(t)
	accounts := accountSet{}
	d := NewDeployer(factory, accounts)
	db := store.MemStore()
	now := time.Now()
	ctx, events := vaulttest.CtxWithEvents(now)
	salt := mustSalt(t, "1")

	before := d.AddressFor(template, salt)
	require.NoError(t, before.Validate())
	assert.Equal(t, before, d.AddressFor(template, salt))

	created, err := d.Create(ctx, db, template, salt)
	require.NoError(t, err)
	assert.Equal(t, before, created)
	assert.Equal(t, before, d.AddressFor(template, salt))
	assert.True(t, accounts[string(created)])

	_, err = d.Create(ctx, db, template, salt)
	assert.True(t, errors.ErrAlreadyCreated.Is(err), "got %+v", err)

	dep, err := d.Deployment(db, created)
	require.NoError(t, err)
	assert.Equal(t, template, dep.Template)
	assert.Equal(t, salt[:], dep.Salt)
	assert.Equal(t, vault.AsUnixTime(now), dep.CreatedAt)

	require.Len(t, events.Events(), 1)
	assert.Equal(t, "account_created", events.Events()[0].Type)
}

func TestAddressInputsAreBound(t *testing.T) {
	factory := vaulttest.RandomAddr(t)
	template := vaulttest.RandomAddr(t)
	salt := mustSalt(t, "1")
	base := AddressFor(factory, template, salt)

	cases := map[string]vault.Address{
		"other factory":  AddressFor(vaulttest.RandomAddr(t), template, salt),
		"other template": AddressFor(factory, vaulttest.RandomAddr(t), salt),
		"other salt":     AddressFor(factory, template, mustSalt(t, "2")),
	}
	for testName, addr := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.False(t, base.Equals(addr))
		})
	}
}

func TestCreateDistinctSalts(t *testing.T) {
	d := NewDeployer(vaulttest.RandomAddr(t), accountSet{})
	db := store.MemStore()
	ctx := vaulttest.Ctx(time.Now())
	template := vaulttest.RandomAddr(t)

	a, err := d.Create(ctx, db, template, mustSalt(t, "1"))
	require.NoError(t, err)
	b, err := d.Create(ctx, db, template, mustSalt(t, "2"))
	require.NoError(t, err)
	assert.False(t, a.Equals(b))
}

func TestCreateInvalidTemplate(t *testing.T) {
	d := NewDeployer(vaulttest.RandomAddr(t), accountSet{})
	_, err := d.Create(vaulttest.Ctx(time.Now()), store.MemStore(), vault.Address("x"), mustSalt(t, "1"))
	assert.True(t, errors.ErrInput.Is(err))
}

func TestDeploymentNotFound(t *testing.T) {
	d := NewDeployer(vaulttest.RandomAddr(t), accountSet{})
	_, err := d.Deployment(store.MemStore(), vaulttest.RandomAddr(t))
	assert.True(t, errors.ErrNotFound.Is(err))
}

func TestParseSalt(t *testing.T) {
	cases := map[string]struct {
		input   string
		want    []byte
		wantErr *errors.Error
	}{
		"text": {
			input: "1",
			want:  append([]byte{'1'}, make([]byte, 31)...),
		},
		"hex": {
			input: "0x" + "ff00000000000000000000000000000000000000000000000000000000000001",
			want:  append(append([]byte{0xff}, make([]byte, 30)...), 0x01),
		},
		"short hex": {
			input:   "0xff",
			wantErr: errors.ErrInput,
		},
		"bad hex": {
			input:   "0xzz",
			wantErr: errors.ErrInput,
		},
		"text too long": {
			input:   "0123456789012345678901234567890123",
			wantErr: errors.ErrInput,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			salt, err := ParseSalt(tc.input)
			if tc.wantErr != nil {
				assert.True(t, tc.wantErr.Is(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, salt[:])
		})
	}
}

func TestNewDeployerInvalidFactory(t *testing.T) {
	assert.Panics(t, func() { NewDeployer(vault.Address("x"), accountSet{}) })
}
