package notify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/staybook/internal/config"
	"github.com/baharkarakas/staybook/internal/logger"
	"github.com/baharkarakas/staybook/internal/worker"
)

func TestFromConfig(t *testing.T) {
	wp := worker.NewPool(1)
	defer wp.Stop()
	log := logger.Discard()

	n, closeFn, err := FromConfig(context.Background(), config.Config{NotifyBackend: "none"}, wp, log)
	require.NoError(t, err)
	assert.IsType(t, Nop{}, n)
	closeFn()

	n, closeFn, err = FromConfig(context.Background(), config.Config{NotifyBackend: "pool", Mailer: "log"}, wp, log)
	require.NoError(t, err)
	assert.IsType(t, &PoolQueue{}, n)
	closeFn()

	_, _, err = FromConfig(context.Background(), config.Config{NotifyBackend: "kafka"}, wp, log)
	assert.Error(t, err)

	_, _, err = FromConfig(context.Background(), config.Config{NotifyBackend: "pool", Mailer: "smtp"}, wp, log)
	assert.Error(t, err, "smtp without host")
}
