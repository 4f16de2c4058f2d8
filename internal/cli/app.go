// Package cli is the interactive terminal frontend: a small REPL over the
// note and account services.
package cli

import (
	"bufio"
	"context"
	"os"

	"notekeeper/internal/auth"
	"notekeeper/internal/config"
	"notekeeper/internal/logging"
	"notekeeper/internal/notesync"
	"notekeeper/internal/remote"
	"notekeeper/internal/services"
)

// App wires the services together and holds the interactive session state.
type App struct {
	config      *config.Config
	authService *services.AuthService
	noteService *services.NoteService
	syncService *services.SyncService
	provider    auth.Provider
	log         logging.Logger
	reader      *bufio.Reader
	userEmail   string
}

// NewApp opens the local database, builds the remote gateways and wires the
// services.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	repos, err := InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	store, err := remote.NewS3Store(ctx, remote.S3Config{
		Endpoint:  c.S3Endpoint,
		Region:    c.S3Region,
		Bucket:    c.S3Bucket,
		AccessKey: c.S3AccessKey,
		SecretKey: c.S3SecretKey,
	})
	if err != nil {
		return nil, err
	}

	provider := auth.NewRESTClient(c.AuthEndpointURL)
	repo := notesync.NewSyncRepository(repos.Notes, store, store, provider, log)

	syncService := services.NewSyncService(repo, log, services.Timeouts{
		Metadata: c.MetadataUploadTimeout,
		Media:    c.MediaUploadTimeout,
		Fetch:    c.FetchTimeout,
	})
	noteService := services.NewNoteService(repo, provider, syncService)
	authService := services.NewAuthService(provider, repos.Users, syncService, log)

	return &App{
		config:      c,
		authService: authService,
		noteService: noteService,
		syncService: syncService,
		provider:    provider,
		log:         log,
		reader:      bufio.NewReader(os.Stdin),
	}, nil
}

// Run starts the REPL and blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	_, err := a.provider.CurrentUserID()
	return err == nil
}
