package cli

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/skillswap/skillswap/internal/common/httpclient"
	"github.com/skillswap/skillswap/internal/common/logtrace"
	"github.com/skillswap/skillswap/internal/common/telemetry"
	"github.com/skillswap/skillswap/internal/profile"
	"github.com/skillswap/skillswap/internal/view"
	"github.com/skillswap/skillswap/pkg/api"
	"github.com/skillswap/skillswap/pkg/types"
	"github.com/spf13/cobra"
)

// newHTTPClient builds the transport behind the API client.
var newHTTPClient = func(cfg *Config) httpclient.HTTPClientInterface {
	return httpclient.NewClient(cfg, httpclient.ClientOptions{DisableCertValidation: cfg.Insecure})
}

// app is what one command invocation works with. The profile store is
// created here, once, and shared by every view through the context.
type app struct {
	cfg      *Config
	api      *api.Client
	profile  *profile.Store
	scope    *view.Scope
	shutdown telemetry.ShutdownFunc
}

type appContextKey struct{}

func openApp(ctx context.Context, cmd *cobra.Command, cfg *Config) context.Context {
	logtrace.InitLoggerWithWriter(cmd.ErrOrStderr(), cfg.LogLevel)
	ctx = log.Logger.WithContext(ctx)

	client := api.NewClient(newHTTPClient(cfg))
	a := &app{
		cfg:      cfg,
		api:      client,
		profile:  profile.NewStore(client, cfg.ProfileID),
		scope:    view.NewScope(ctx),
		shutdown: telemetry.Setup(ctx, "skillswap-cli", getCLIVersion()),
	}
	log.Ctx(ctx).Debug().Str("server", cfg.ServerURL).Int64("profile_id", cfg.ProfileID).Msg("cli started")

	ctx = profile.NewContext(ctx, a.profile)
	return context.WithValue(ctx, appContextKey{}, a)
}

func appFromContext(ctx context.Context) *app {
	if ctx == nil {
		return nil
	}
	a, _ := ctx.Value(appContextKey{}).(*app)
	return a
}

// close releases the view scope and flushes telemetry.
func (a *app) close() {
	a.scope.Close()
	a.scope.Wait()
	if err := a.shutdown(context.Background()); err != nil {
		log.Warn().Err(err).Msg("telemetry shutdown failed")
	}
}

func getApp(cmd *cobra.Command) *app {
	a := appFromContext(cmd.Context())
	if a == nil {
		// only reachable when a command skipped the persistent pre-run
		panic("skillswap: command run without application context")
	}
	return a
}

// requireProfile loads the active profile, once per invocation.
func requireProfile(cmd *cobra.Command) (*types.User, error) {
	store := profile.FromContext(cmd.Context())
	if err := store.Load(cmd.Context()); err != nil {
		return nil, &profileLoadError{err: err}
	}
	p := store.Profile()
	if p == nil {
		return nil, &profileLoadError{err: store.State().Err}
	}
	return p, nil
}
