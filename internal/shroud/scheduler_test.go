package shroud

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dragynn-Redeux/ACE-Dragynn-sub001/internal/testutil"
)

func TestNewSchedulerValidatesSchedule(t *testing.T) {
	m := NewManager(testutil.NewMockPropertyStore(), ManagerConfig{})

	_, err := NewScheduler(m, "not a schedule")
	assert.Error(t, err)

	s, err := NewScheduler(m, "")
	require.NoError(t, err)
	assert.Equal(t, DefaultRefreshSchedule, s.schedule)

	_, err = NewScheduler(m, "*/5 * * * *")
	assert.NoError(t, err)
}

func TestSchedulerReloads(t *testing.T) {
	store := testutil.NewMockPropertyStore()
	store.Set(PropertyKey, "0x00010001 [1 1 1] 0 0 0 1|1|2")
	m := NewManager(store, ManagerConfig{})

	s, err := NewScheduler(m, "@every 1s")
	require.NoError(t, err)

	ctx, cancel := testutil.ContextWithCancel(t)
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	require.Eventually(t, func() bool {
		return m.Zones().Len() == 1
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}
