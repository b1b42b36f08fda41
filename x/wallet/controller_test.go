package wallet

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

// staticDirectory registers a fixed set of modules.
type staticDirectory []vault.Address

func (d staticDirectory) IsRegistered(db vault.ReadOnlyKVStore, module vault.Address) (bool, error) {
	for _, a := range d {
		if a.Equals(module) {
			return true, nil
		}
	}
	return false, nil
}

// recordingModule remembers the payloads it was initialized with and the
// calls it received.
type recordingModule struct {
	addr    vault.Address
	inits   map[string][]byte
	calls   [][]byte
	callErr error
}

func newRecordingModule(t testing.TB) *recordingModule {
	return &recordingModule{addr: vaulttest.RandomAddr(t), inits: make(map[string][]byte)}
}

func (m *recordingModule) Address() vault.Address { return m.addr }

func (m *recordingModule) InitAccount(ctx vault.Context, db vault.KVStore, account vault.Address, data []byte) error {
	if string(data) == "fail" {
		return errors.Wrap(errors.ErrInput, "bad payload")
	}
	m.inits[string(account)] = data
	return nil
}

func (m *recordingModule) Call(ctx vault.Context, db vault.KVStore, caller vault.Address, value uint64, data []byte) error {
	if m.callErr != nil {
		return m.callErr
	}
	m.calls = append(m.calls, data)
	return nil
}

type fixture struct {
	ctrl    *Controller
	db      vault.KVStore
	ctx     vault.Context
	module  *recordingModule
	account vault.Address
	owner   vault.Address
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	m := newRecordingModule(t)
	ctrl := NewController(staticDirectory{m.addr})
	ctrl.Attach(m)
	f := &fixture{
		ctrl:    ctrl,
		db:      store.MemStore(),
		ctx:     vaulttest.Ctx(time.Now()),
		module:  m,
		account: vaulttest.RandomAddr(t),
		owner:   vaulttest.RandomAddr(t),
	}
	require.NoError(t, ctrl.Create(f.db, f.account))
	require.NoError(t, ctrl.Initialize(f.ctx, f.db, f.owner, f.account, []vault.Address{m.addr}, [][]byte{[]byte("payload")}))
	return f
}

func TestCreate(t *testing.T) {
	ctrl := NewController(staticDirectory{})
	db := store.MemStore()
	addr := vaulttest.RandomAddr(t)

	require.NoError(t, ctrl.Create(db, addr))
	err := ctrl.Create(db, addr)
	assert.True(t, errors.ErrDuplicate.Is(err))

	err = ctrl.Create(db, vault.Address("short"))
	assert.True(t, errors.ErrInput.Is(err))

	// not initialized yet
	_, err = ctrl.Owner(db, addr)
	assert.True(t, errors.ErrState.Is(err))
	ok, err := ctrl.IsModuleInstalled(db, addr, vaulttest.RandomAddr(t))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestInitialize(t *testing.T) {
	registered := newRecordingModule(t)
	unregistered := newRecordingModule(t)
	detached := vaulttest.RandomAddr(t)
	owner := vaulttest.RandomAddr(t)

	cases := map[string]struct {
		modules  []vault.Address
		initData [][]byte
		wantErr  *errors.Error
	}{
		"single module": {
			modules:  []vault.Address{registered.addr},
			initData: [][]byte{[]byte("signers")},
		},
		"no modules": {
			modules:  nil,
			initData: nil,
		},
		"payload count mismatch": {
			modules:  []vault.Address{registered.addr},
			initData: nil,
			wantErr:  errors.ErrInput,
		},
		"module not in the directory": {
			modules:  []vault.Address{unregistered.addr},
			initData: [][]byte{nil},
			wantErr:  errors.ErrUnauthorized,
		},
		"registered module without implementation": {
			modules:  []vault.Address{detached},
			initData: [][]byte{nil},
			wantErr:  errors.ErrNotFound,
		},
		"module installed twice": {
			modules:  []vault.Address{registered.addr, registered.addr},
			initData: [][]byte{nil, nil},
			wantErr:  errors.ErrDuplicate,
		},
		"module rejects payload": {
			modules:  []vault.Address{registered.addr},
			initData: [][]byte{[]byte("fail")},
			wantErr:  errors.ErrInput,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			ctrl := NewController(staticDirectory{registered.addr, detached})
			ctrl.Attach(registered)
			ctrl.Attach(unregistered)
			db := store.MemStore()
			ctx := vaulttest.Ctx(time.Now())
			account := vaulttest.RandomAddr(t)
			require.NoError(t, ctrl.Create(db, account))

			err := ctrl.Initialize(ctx, db, owner, account, tc.modules, tc.initData)
			if tc.wantErr != nil {
				assert.True(t, tc.wantErr.Is(err), "got %+v", err)
				return
			}
			require.NoError(t, err)

			got, err := ctrl.Owner(db, account)
			require.NoError(t, err)
			assert.Equal(t, owner, got)
			seq, err := ctrl.NextSequenceID(db, account)
			require.NoError(t, err)
			assert.Equal(t, uint64(0), seq)
			for i, m := range tc.modules {
				ok, err := ctrl.IsModuleInstalled(db, account, m)
				require.NoError(t, err)
				assert.True(t, ok)
				assert.Equal(t, tc.initData[i], registered.inits[string(account)])
			}
		})
	}
}

func TestInitializeOnce(t *testing.T) {
	f := newFixture(t)
	err := f.ctrl.Initialize(f.ctx, f.db, vaulttest.RandomAddr(t), f.account, nil, nil)
	assert.True(t, errors.ErrState.Is(err))

	owner, err := f.ctrl.Owner(f.db, f.account)
	require.NoError(t, err)
	assert.Equal(t, f.owner, owner)
}

func TestInitializeMissingAccount(t *testing.T) {
	f := newFixture(t)
	err := f.ctrl.Initialize(f.ctx, f.db, f.owner, vaulttest.RandomAddr(t), nil, nil)
	assert.True(t, errors.ErrNotFound.Is(err))
}

func TestModuleGatedOperations(t *testing.T) {
	f := newFixture(t)
	stranger := vaulttest.RandomAddr(t)

	_, err := f.ctrl.IncrementSequence(f.ctx, f.db, stranger, f.account)
	assert.True(t, errors.ErrUnauthorized.Is(err))
	err = f.ctrl.ReplaceOwner(f.ctx, f.db, stranger, f.account, stranger)
	assert.True(t, errors.ErrUnauthorized.Is(err))
	err = f.ctrl.Execute(f.ctx, f.db, stranger, f.account, stranger, 0, nil)
	assert.True(t, errors.ErrUnauthorized.Is(err))

	// the owner is not a module either
	_, err = f.ctrl.IncrementSequence(f.ctx, f.db, f.owner, f.account)
	assert.True(t, errors.ErrUnauthorized.Is(err))

	seq, err := f.ctrl.IncrementSequence(f.ctx, f.db, f.module.addr, f.account)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), seq)
	seq, err = f.ctrl.NextSequenceID(f.db, f.account)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), seq)

	require.NoError(t, f.ctrl.ReplaceOwner(f.ctx, f.db, f.module.addr, f.account, stranger))
	owner, err := f.ctrl.Owner(f.db, f.account)
	require.NoError(t, err)
	assert.Equal(t, stranger, owner)
}

func TestExecute(t *testing.T) {
	target := vaulttest.RandomAddr(t)

	cases := map[string]struct {
		deposit     uint64
		target      func(f *fixture) vault.Address
		value       uint64
		data        []byte
		callErr     error
		wantErr     *errors.Error
		wantBalance uint64
		wantCalls   int
	}{
		"value transfer": {
			deposit:     100,
			target:      func(*fixture) vault.Address { return target },
			value:       40,
			wantBalance: 60,
		},
		"insufficient balance": {
			deposit:     10,
			target:      func(*fixture) vault.Address { return target },
			value:       40,
			wantErr:     errors.ErrInsufficientAmount,
			wantBalance: 10,
		},
		"call without a callee": {
			target:  func(*fixture) vault.Address { return target },
			data:    []byte("hello"),
			wantErr: errors.ErrNotFound,
		},
		"call a module": {
			target:    func(f *fixture) vault.Address { return f.module.addr },
			data:      []byte("hello"),
			wantCalls: 1,
		},
		"failing callee": {
			target:  func(f *fixture) vault.Address { return f.module.addr },
			data:    []byte("hello"),
			callErr: errors.ErrHuman,
			wantErr: errors.ErrHuman,
		},
		"invalid target": {
			target:  func(*fixture) vault.Address { return vault.Address("x") },
			wantErr: errors.ErrInput,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			f := newFixture(t)
			f.module.callErr = tc.callErr
			require.NoError(t, f.ctrl.Deposit(f.db, f.account, tc.deposit))

			err := f.ctrl.Execute(f.ctx, f.db, f.module.addr, f.account, tc.target(f), tc.value, tc.data)
			if tc.wantErr != nil {
				assert.True(t, tc.wantErr.Is(err), "got %+v", err)
			} else {
				require.NoError(t, err)
				got, err := f.ctrl.Balance(f.db, tc.target(f))
				require.NoError(t, err)
				assert.Equal(t, tc.value, got)
			}
			bal, err := f.ctrl.Balance(f.db, f.account)
			require.NoError(t, err)
			assert.Equal(t, tc.wantBalance, bal)
			assert.Len(t, f.module.calls, tc.wantCalls)
		})
	}
}

func TestDepositBeforeCreate(t *testing.T) {
	ctrl := NewController(staticDirectory{})
	db := store.MemStore()
	addr := vaulttest.RandomAddr(t)

	require.NoError(t, ctrl.Deposit(db, addr, 5))
	require.NoError(t, ctrl.Deposit(db, addr, 7))
	require.NoError(t, ctrl.Create(db, addr))
	bal, err := ctrl.Balance(db, addr)
	require.NoError(t, err)
	assert.Equal(t, uint64(12), bal)

	err = ctrl.Deposit(db, addr, ^uint64(0))
	assert.True(t, errors.ErrOverflow.Is(err))
}

func TestAttachTwicePanics(t *testing.T) {
	m := newRecordingModule(t)
	ctrl := NewController(staticDirectory{})
	ctrl.Attach(m)
	assert.Panics(t, func() { ctrl.Attach(m) })
}
