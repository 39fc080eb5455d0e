package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelayHoldsOne(t *testing.T) {
	r := NewRelay(time.Minute)
	defer r.Stop()

	assert.Nil(t, r.Current())

	r.Push(Success, "pertama")
	r.Push(Error, "kedua")

	n := r.Current()
	require.NotNil(t, n)
	assert.Equal(t, Error, n.Kind)
	assert.Equal(t, "kedua", n.Message, "a new notification replaces the pending one")
}

func TestRelayExpires(t *testing.T) {
	r := NewRelay(30 * time.Millisecond)
	defer r.Stop()

	r.Push(Success, "sebentar")
	require.NotNil(t, r.Current())

	assert.Eventually(t, func() bool { return r.Current() == nil },
		time.Second, 5*time.Millisecond)
}

func TestRelayPushResetsExpiry(t *testing.T) {
	r := NewRelay(60 * time.Millisecond)
	defer r.Stop()

	r.Push(Success, "pertama")
	time.Sleep(40 * time.Millisecond)

	// The replacement restarts the delay; the first notification's expiry
	// must not clear it.
	r.Push(Success, "kedua")
	time.Sleep(40 * time.Millisecond)

	n := r.Current()
	require.NotNil(t, n, "stale expiry must not clear the newer notification")
	assert.Equal(t, "kedua", n.Message)

	assert.Eventually(t, func() bool { return r.Current() == nil },
		time.Second, 5*time.Millisecond)
}

func TestRelayClear(t *testing.T) {
	r := NewRelay(time.Minute)
	r.Push(Success, "x")
	r.Clear()
	assert.Nil(t, r.Current())
}

func TestRelayCurrentReturnsCopy(t *testing.T) {
	r := NewRelay(time.Minute)
	defer r.Stop()

	r.Push(Success, "asli")
	n := r.Current()
	n.Message = "diubah"
	assert.Equal(t, "asli", r.Current().Message)
}

func TestRelayDefaultTTL(t *testing.T) {
	r := NewRelay(0)
	defer r.Stop()
	assert.Equal(t, DefaultTTL, r.ttl)
}
