package registry

import (
	"testing"

	"github.com/go-kit/kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		ConsulAddr:  "127.0.0.1:8500",
		NameSpace:   "gokitcalc",
		ServiceName: "calcsvc",
		ServiceHost: "10.0.0.7",
		HTTPPort:    "8180",
		CheckPath:   "/health",
	}
}

func TestRegistration(t *testing.T) {
	r, err := Registration(testConfig())
	require.NoError(t, err)

	assert.Equal(t, "calcsvc-10.0.0.7:8180", r.ID)
	assert.Equal(t, "calcsvc", r.Name)
	assert.Equal(t, "10.0.0.7", r.Address)
	assert.Equal(t, 8180, r.Port)
	assert.Equal(t, []string{"gokitcalc", "http"}, r.Tags)
	require.NotNil(t, r.Check)
	assert.Equal(t, "http://10.0.0.7:8180/health", r.Check.HTTP)
	assert.Equal(t, "10s", r.Check.Interval)
	assert.Equal(t, "1s", r.Check.Timeout)
}

func TestRegistrationInvalidPort(t *testing.T) {
	cfg := testConfig()
	cfg.HTTPPort = "http"

	_, err := Registration(cfg)
	assert.Error(t, err)
}

func TestNewRegistrar(t *testing.T) {
	r, err := NewRegistrar(testConfig(), log.NewNopLogger())
	require.NoError(t, err)
	assert.NotNil(t, r)
}
