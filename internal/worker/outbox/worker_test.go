package outbox

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestNextRetryDelayDoublesDefaultInterval(t *testing.T) {
	w := NewWorker(nil, nil)

	require.Equal(t, 60*time.Second, w.nextRetryDelay(1))
	require.Equal(t, 120*time.Second, w.nextRetryDelay(2))
	require.Equal(t, 240*time.Second, w.nextRetryDelay(3))
}

func TestNextRetryDelayHonorsConfiguredInterval(t *testing.T) {
	viper.Set("rabbitmq.outbox.retry_interval_seconds", 10)
	defer viper.Set("rabbitmq.outbox.retry_interval_seconds", 0)

	w := NewWorker(nil, nil)

	require.Equal(t, 10*time.Second, w.retryInterval)
	require.Equal(t, 20*time.Second, w.nextRetryDelay(1))
	require.Equal(t, 40*time.Second, w.nextRetryDelay(2))
}
