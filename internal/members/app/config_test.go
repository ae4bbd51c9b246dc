package app

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(context.Background(), envconfig.MapLookuper(map[string]string{}))
	require.NoError(t, err)

	require.Equal(t, "rendezvous-members", cfg.Issuer)
	require.Equal(t, "members.db", cfg.DatabaseFile)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, 10*time.Second, cfg.BlobDeleteTimeout)
	require.Equal(t, 30*24*time.Hour, cfg.RejectedRetention)
	require.Equal(t, time.Hour, cfg.HousekeepingInterval)
	require.Equal(t, int64(10<<20), cfg.MaxUploadBytes)
	require.Empty(t, cfg.BootstrapToken)
}

func TestLoadConfigOverrides(t *testing.T) {
	cfg, err := loadConfig(context.Background(), envconfig.MapLookuper(map[string]string{
		"MEMBERS_ISSUER":             "club",
		"BOOTSTRAP_TOKEN":            "tok",
		"PORT":                       "9090",
		"MEMBERS_REJECTED_RETENTION": "48h",
		"MAX_UPLOAD_BYTES":           "2048",
		"LOG_FORMAT":                 "text",
	}))
	require.NoError(t, err)

	require.Equal(t, "club", cfg.Issuer)
	require.Equal(t, "tok", cfg.BootstrapToken)
	require.Equal(t, 9090, cfg.Port)
	require.Equal(t, 48*time.Hour, cfg.RejectedRetention)
	require.Equal(t, int64(2048), cfg.MaxUploadBytes)
	require.Equal(t, "text", cfg.LogFormat)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	tests := map[string]map[string]string{
		"port out of range": {"PORT": "70000"},
		"port not a number": {"PORT": "eighty"},
		"bad duration":      {"HOUSEKEEPING_INTERVAL": "soon"},
		"zero upload limit": {"MAX_UPLOAD_BYTES": "0"},
	}

	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := loadConfig(context.Background(), envconfig.MapLookuper(env))
			require.Error(t, err)
		})
	}
}
