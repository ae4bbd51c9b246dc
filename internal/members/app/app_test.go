package app

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/rendezvous/pkg/jwtx"
	"github.com/aussiebroadwan/rendezvous/pkg/membersdk"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	dir := t.TempDir()
	return Config{
		Issuer:               "members-test",
		TokenSecret:          strings.Repeat("k", jwtx.MinSecretBytes),
		BootstrapToken:       "bootstrap-me",
		DatabaseFile:         filepath.Join(dir, "members.db"),
		PepperFile:           filepath.Join(dir, "pepper"),
		BlobDir:              filepath.Join(dir, "media"),
		BlobBaseURL:          "http://localhost/media",
		BlobDeleteTimeout:    time.Second,
		RejectedRetention:    time.Hour,
		MaxUploadBytes:       1 << 20,
		Env:                  "test",
		LogLevel:             "error",
		LogFormat:            "text",
		Port:                 0,
		ShutdownGracePeriod:  time.Second,
		HousekeepingInterval: time.Hour,
	}
}

func TestApplicationServesRequests(t *testing.T) {
	cfg := testConfig(t)
	application, err := New(cfg)
	require.NoError(t, err)

	srv := httptest.NewServer(application.Handler())
	defer srv.Close()

	ctx := context.Background()
	client := membersdk.NewClient(srv.URL)

	ready, err := client.GetReadiness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
	require.Equal(t, BuildVersion, ready.Version)

	_, err = client.Bootstrap(ctx, cfg.BootstrapToken, membersdk.BootstrapRequest{
		AdminUsername: "root",
		AdminPassword: "root-password",
	})
	require.NoError(t, err)

	login, err := client.Login(ctx, "root", "root-password")
	require.NoError(t, err)
	require.Equal(t, []string{"Admin"}, login.User.Roles)

	require.NoError(t, application.Shutdown())
}

func TestApplicationKeepsPepperAcrossRestarts(t *testing.T) {
	cfg := testConfig(t)
	ctx := context.Background()

	first, err := New(cfg)
	require.NoError(t, err)
	srv := httptest.NewServer(first.Handler())
	_, err = membersdk.NewClient(srv.URL).Register(ctx, membersdk.RegisterRequest{Username: "alice", Password: "alice-password"})
	require.NoError(t, err)
	srv.Close()
	require.NoError(t, first.Shutdown())

	second, err := New(cfg)
	require.NoError(t, err)
	srv = httptest.NewServer(second.Handler())
	defer srv.Close()

	_, err = membersdk.NewClient(srv.URL).Login(ctx, "alice", "alice-password")
	require.NoError(t, err)
	require.NoError(t, second.Shutdown())
}

func TestNewFailsWithoutSecretOutsideDev(t *testing.T) {
	cfg := testConfig(t)
	cfg.TokenSecret = ""
	cfg.Env = "prod"

	_, err := New(cfg)
	require.ErrorIs(t, err, ErrNoSigningSecret)
}
