package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func resetEvents(t *testing.T) {
	t.Helper()
	EventInitialize()
	t.Cleanup(func() {
		_ = EventShutdown()
	})
}

func TestEventRegisterAndFire(t *testing.T) {
	resetEvents(t)

	got := EventContext{}
	fired := 0
	listener := &struct{}{}
	require.True(t, EventRegister(EVENT_CODE_RESIZED, listener, func(code SystemEventCode, sender, listenerInst interface{}, data EventContext) bool {
		fired++
		got = data
		return true
	}))

	ctx := EventContext{}
	ctx.Data.U32[0] = 1280
	ctx.Data.U32[1] = 720
	require.True(t, EventFire(EVENT_CODE_RESIZED, nil, ctx))
	require.Equal(t, 1, fired)
	require.Equal(t, uint32(1280), got.Data.U32[0])
	require.Equal(t, uint32(720), got.Data.U32[1])
}

func TestEventFireWithoutListeners(t *testing.T) {
	resetEvents(t)
	require.False(t, EventFire(EVENT_CODE_APPLICATION_QUIT, nil, EventContext{}))
}

func TestEventDuplicateRegistrationRejected(t *testing.T) {
	resetEvents(t)

	listener := &struct{}{}
	cb := func(code SystemEventCode, sender, listenerInst interface{}, data EventContext) bool { return false }
	require.True(t, EventRegister(EVENT_CODE_APPLICATION_QUIT, listener, cb))
	require.False(t, EventRegister(EVENT_CODE_APPLICATION_QUIT, listener, cb))
}

func TestEventUnregister(t *testing.T) {
	resetEvents(t)

	fired := 0
	listener := &struct{}{}
	cb := func(code SystemEventCode, sender, listenerInst interface{}, data EventContext) bool {
		fired++
		return true
	}
	require.True(t, EventRegister(EVENT_CODE_APPLICATION_QUIT, listener, cb))
	require.True(t, EventUnregister(EVENT_CODE_APPLICATION_QUIT, listener, cb))
	require.False(t, EventFire(EVENT_CODE_APPLICATION_QUIT, nil, EventContext{}))
	require.Equal(t, 0, fired)

	require.False(t, EventUnregister(EVENT_CODE_APPLICATION_QUIT, listener, cb))
}
