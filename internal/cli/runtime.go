package cli

import (
	"fmt"

	"github.com/reservat/provider-console/internal/common/httpclient"
	"github.com/reservat/provider-console/internal/console/catalog"
	"github.com/reservat/provider-console/internal/console/media"
	"github.com/reservat/provider-console/internal/console/reservation"
	"github.com/reservat/provider-console/internal/console/session"
)

// runtime wires the transport, session manager, and domain clients for one
// command invocation. Every client shares the same session manager, so a 401
// anywhere drops the session for all of them.
type runtime struct {
	cfg          *Config
	client       *httpclient.HTTPClient
	sessions     *session.Manager
	catalog      *catalog.Catalog
	reservations *reservation.Client
	photos       *media.Client
}

func newRuntime() (*runtime, error) {
	cfg := GetConfig()
	if cfg == nil {
		return nil, fmt.Errorf("no configuration loaded")
	}

	credsPath, err := session.DefaultCredentialsPath()
	if err != nil {
		return nil, fmt.Errorf("failed to locate credentials store: %w", err)
	}
	store := session.NewFileTokenStore(credsPath)

	client := httpclient.NewClient(&clientConfig{
		serverURL: cfg.ServerURL,
		store:     store,
	})
	sessions := session.NewManager(client, store)
	client.SetUnauthorizedHook(sessions.Invalidate)

	return &runtime{
		cfg:          cfg,
		client:       client,
		sessions:     sessions,
		catalog:      catalog.New(client, sessions),
		reservations: reservation.NewClient(client, sessions),
		photos:       media.NewClient(client, sessions),
	}, nil
}

// requireSession restores the persisted session and fails with a uniform
// message when there is none.
func (rt *runtime) requireSession() (*session.Claims, error) {
	claims := rt.sessions.Current()
	if claims == nil {
		return nil, fmt.Errorf("not logged in. Run \"reservat login\" first")
	}
	return claims, nil
}
