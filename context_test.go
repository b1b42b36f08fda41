package vault

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

func TestContext(t *testing.T) {
	bg := context.Background()

	// try logger with default
	newLogger := log.NewTMLogger(os.Stdout)
	ctx := WithLogger(bg, newLogger)
	assert.Equal(t, DefaultLogger, GetLogger(bg))
	assert.Equal(t, newLogger, GetLogger(ctx))

	// test height - uninitialized
	val, ok := GetHeight(ctx)
	assert.Equal(t, int64(0), val)
	assert.False(t, ok)
	// set
	ctx = WithHeight(ctx, 7)
	val, ok = GetHeight(ctx)
	assert.Equal(t, int64(7), val)
	assert.True(t, ok)
	// no reset
	assert.Panics(t, func() { WithHeight(ctx, 9) })

	// changing the info, should modify the logger, but not the height
	ctx2 := WithLogInfo(ctx, "foo", "bar")
	assert.NotEqual(t, GetLogger(ctx), GetLogger(ctx2))
	val, _ = GetHeight(ctx)
	assert.Equal(t, int64(7), val)

	// chain id MUST be set exactly once
	assert.Panics(t, func() { GetChainID(ctx) })
	ctx2 = WithChainID(ctx, "my-chain")
	assert.Equal(t, "my-chain", GetChainID(ctx2))
	// don't try a second time
	assert.Panics(t, func() { WithChainID(ctx2, "my-chain") })
}

func TestBlockTime(t *testing.T) {
	ctx := context.Background()
	_, err := BlockTime(ctx)
	assert.Error(t, err)
	assert.Panics(t, func() { InThePast(ctx, time.Now()) })

	now := time.Unix(1500000000, 0)
	ctx = WithBlockTime(ctx, now)
	got, err := BlockTime(ctx)
	require.NoError(t, err)
	assert.True(t, now.Equal(got))

	assert.True(t, InThePast(ctx, now.Add(-time.Second)))
	assert.False(t, InThePast(ctx, now))
	assert.True(t, IsExpired(ctx, AsUnixTime(now)))
	assert.False(t, IsExpired(ctx, AsUnixTime(now).Add(time.Minute)))
}

func TestChainID(t *testing.T) {
	cases := []struct {
		chainID string
		valid   bool
	}{
		{"", false},
		{"foo", false},
		{"special", true},
		{"wish-YOU-88", true},
		{"invalid;;chars", false},
		{"this-chain-id-is-way-too-long", false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.valid, IsValidChainID(tc.chainID), tc.chainID)
	}
}

func TestEmitEvent(t *testing.T) {
	var events EventLog
	ctx := WithEventLog(context.Background(), &events)

	EmitEvent(ctx, "locked", "account", "0x01", "by", 7)
	EmitEvent(ctx, "unlocked")

	got := events.Events()
	require.Len(t, got, 2)
	assert.Equal(t, "locked", got[0].Type)
	v, ok := got[0].Attr("by")
	assert.True(t, ok)
	assert.Equal(t, "7", v)
	_, ok = got[1].Attr("by")
	assert.False(t, ok)

	// without a log events are only written to the logger
	EmitEvent(context.Background(), "noop")
	assert.Panics(t, func() { EmitEvent(ctx, "odd", "key") })
}

func TestEventLogAppend(t *testing.T) {
	var outer, inner EventLog
	ctx := WithEventLog(context.Background(), &outer)
	EmitEvent(WithEventLog(ctx, &inner), "nested")
	assert.Len(t, outer.Events(), 0)

	GetEventLog(ctx).Append(inner.Events()...)
	require.Len(t, outer.Events(), 1)
	assert.Equal(t, "nested", outer.Events()[0].Type)

	// no log in the context
	assert.Nil(t, GetEventLog(context.Background()))
	GetEventLog(context.Background()).Append(Event{Type: "dropped"})
}
