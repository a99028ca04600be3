package redis

import (
	"context"
	"net"
	"testing"

	"skillCompare/pkg/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	host, port, err := net.SplitHostPort(mr.Addr())
	require.NoError(t, err)

	client, err := Open(context.Background(), config.RedisConfig{RedisHost: host, RedisPort: port})

	require.NoError(t, err)
	assert.NoError(t, Close(client))
}

func TestOpen_PingFailure(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	host, port, err := net.SplitHostPort(addr)
	require.NoError(t, err)
	mr.Close()

	_, err = Open(context.Background(), config.RedisConfig{RedisHost: host, RedisPort: port})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to ping redis at "+addr)
}

func TestOptions(t *testing.T) {
	opts := options(config.RedisConfig{RedisHost: "cache", RedisPort: "6380", RedisPassword: "pw", RedisDB: 2})

	assert.Equal(t, "cache:6380", opts.Addr)
	assert.Equal(t, "pw", opts.Password)
	assert.Equal(t, 2, opts.DB)
}

func TestClose_Nil(t *testing.T) {
	assert.NoError(t, Close(nil))
}
