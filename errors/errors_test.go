package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorIs(t *testing.T) {
	cases := map[string]struct {
		a      *Error
		b      error
		wantIs bool
	}{
		"instance of the same error": {
			a:      ErrNotASigner,
			b:      ErrNotASigner,
			wantIs: true,
		},
		"two different coded errors": {
			a:      ErrNotASigner,
			b:      ErrNotOwner,
			wantIs: false,
		},
		"successful comparison to a wrapped error": {
			a:      ErrSequenceMismatch,
			b:      Wrap(ErrSequenceMismatch, "gone"),
			wantIs: true,
		},
		"unsuccessful comparison to a wrapped error": {
			a:      ErrSequenceMismatch,
			b:      Wrap(ErrAccountLocked, "too big"),
			wantIs: false,
		},
		"deeply wrapped error": {
			a:      ErrQuorumNotMet,
			b:      Wrap(Wrapf(Wrap(ErrQuorumNotMet, "one"), "%d", 2), "three"),
			wantIs: true,
		},
		"not equal to stdlib error": {
			a:      ErrDuplicate,
			b:      fmt.Errorf("stdlib error"),
			wantIs: false,
		},
		"nil is nil": {
			a:      nil,
			b:      nil,
			wantIs: true,
		},
		"nil is not not-nil": {
			a:      nil,
			b:      ErrHuman,
			wantIs: false,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.wantIs, tc.a.Is(tc.b))
		})
	}
}

func TestWrapEmpty(t *testing.T) {
	assert.Nil(t, Wrap(nil, "wrapping <nil>"))
	assert.Nil(t, Wrapf(nil, "wrapping %d", 1))
}

func TestWrappedMessage(t *testing.T) {
	err := Wrapf(ErrNotLocked, "account %s", "abc")
	assert.Equal(t, "account abc: not locked", err.Error())
}

func TestCode(t *testing.T) {
	assert.Equal(t, uint32(0), Code(nil))
	assert.Equal(t, uint32(100), Code(ErrNotASigner))
	assert.Equal(t, uint32(109), Code(Wrap(Wrap(ErrSequenceMismatch, "a"), "b")))
	assert.Equal(t, uint32(1), Code(stderrors.New("unregistered")))
}

func TestRegisterDuplicateCodePanics(t *testing.T) {
	assert.Panics(t, func() {
		Register(ErrNotOwner.ABCICode(), "another")
	})
}

func TestRecover(t *testing.T) {
	fn := func() (err error) {
		defer Recover(&err)
		panic("boom")
	}
	err := fn()
	assert.True(t, ErrPanic.Is(err))
	assert.Equal(t, ErrPanic, Redact(err))

	other := Wrap(ErrNotFound, "x")
	assert.Equal(t, other, Redact(other))
}
