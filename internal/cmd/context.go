package cmd

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/krcglobal/gbms/internal/api"
	"github.com/krcglobal/gbms/internal/auth"
	"github.com/krcglobal/gbms/internal/config"
	"github.com/krcglobal/gbms/internal/log"
	"github.com/krcglobal/gbms/internal/metrics"
	"github.com/krcglobal/gbms/internal/session"
	"github.com/krcglobal/gbms/internal/storage"
	"github.com/krcglobal/gbms/internal/telemetry"
	"github.com/krcglobal/gbms/internal/ux"
	"github.com/krcglobal/gbms/internal/version"
)

// CommandContext holds the global flags and the lazily built client stack
// shared by every command. Nothing is global, so tests can build as many
// command trees as they like.
type CommandContext struct {
	// Global flags
	ConfigFile string
	APIURL     string
	Home       string
	Format     string
	LogLevel   string
	LogFormat  string
	Timeout    time.Duration
	Verbose    bool
	Demo       bool

	getenv     func(string) string
	httpClient *http.Client
	prompt     bool
	tracing    bool

	app *App
}

// App is the wired client stack.
type App struct {
	Config  *config.Config
	Logger  *log.Logger
	Store   storage.Store
	Session session.Session
	Client  *api.Client
	Auth    *auth.Manager
	Metrics *metrics.Metrics

	registry *prometheus.Registry
}

// Option customizes the command tree, mainly for tests.
type Option func(*CommandContext)

// WithGetenv replaces os.Getenv for configuration lookups.
func WithGetenv(fn func(string) string) Option {
	return func(c *CommandContext) {
		c.getenv = fn
	}
}

// WithHTTPClient sets the HTTP client used to reach the backend.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *CommandContext) {
		c.httpClient = hc
	}
}

// WithoutPrompts disables interactive prompts regardless of the terminal.
func WithoutPrompts() Option {
	return func(c *CommandContext) {
		c.prompt = false
	}
}

func newCommandContext(opts ...Option) *CommandContext {
	c := &CommandContext{
		getenv: os.Getenv,
		prompt: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Config loads the configuration and applies the flag overrides. The
// result is not validated.
func (c *CommandContext) Config() (*config.Config, error) {
	cfg, err := config.Load(c.Home, c.ConfigFile, c.getenv)
	if err != nil {
		return nil, err
	}

	overrides := config.Overrides{
		BaseURL:   c.APIURL,
		LogLevel:  c.LogLevel,
		LogFormat: c.LogFormat,
		Timeout:   c.Timeout,
	}
	if c.Verbose && overrides.LogLevel == "" {
		overrides.LogLevel = "debug"
	}
	if c.Demo {
		overrides.AuthMode = config.AuthModeDemo
	}
	cfg.Apply(overrides)
	return cfg, nil
}

// App builds the client stack on first use: configuration, logger, local
// storage, session, API client and auth manager.
func (c *CommandContext) App() (*App, error) {
	if c.app != nil {
		return c.app, nil
	}

	cfg, err := c.Config()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := log.New(log.Config{
		Level:       log.ParseLevel(cfg.Log.Level),
		Format:      log.ParseFormat(cfg.Log.Format),
		Output:      os.Stderr,
		AddSource:   c.Verbose,
		ServiceName: "gbms",
	})
	log.SetDefaultLogger(logger)

	store := storage.NewFileStore(cfg.StorageFile(), logger)
	sess := session.New(store, session.Keys{Token: cfg.Storage.TokenKey, User: cfg.Storage.UserKey})

	registry, m := metrics.NewRegistry()

	// The manager is created after the client, which needs it as its 401 hook.
	var manager *auth.Manager
	clientOpts := []api.Option{
		api.WithLogger(logger),
		api.WithObserver(m),
		api.WithUnauthorizedHandler(func(ctx context.Context) {
			m.SessionExpirations.Inc()
			manager.HandleUnauthorized(ctx)
		}),
	}
	if c.httpClient != nil {
		clientOpts = append(clientOpts, api.WithHTTPClient(c.httpClient))
	}
	client := api.New(api.Config{
		BaseURL:   cfg.API.BaseURL,
		Timeout:   cfg.API.Timeout,
		UserAgent: version.GetInfo().UserAgent(),
	}, sess, clientOpts...)

	var verifier auth.Verifier
	if cfg.Auth.Mode == config.AuthModeDemo {
		verifier = auth.NewDemoVerifier()
	} else {
		verifier = auth.NewAPIVerifier(client.Auth)
	}

	managerOpts := []auth.ManagerOption{
		auth.WithLogger(logger),
		auth.WithTokenValidator(auth.ValidatorFor(cfg.Auth.TokenCheck)),
		auth.WithNavigator(auth.NavigatorFunc(func(page string) {
			logger.Debug("navigate", "page", page)
		})),
	}
	if cfg.Auth.Mode == config.AuthModeAPI {
		managerOpts = append(managerOpts, auth.WithRevoker(client.Auth))
	}
	manager = auth.NewManager(sess, verifier, managerOpts...)

	c.app = &App{
		Config:  cfg,
		Logger:  logger,
		Store:   store,
		Session: sess,
		Client:  client,
		Auth:    manager,
		Metrics: m,

		registry: registry,
	}
	return c.app, nil
}

// instrument wraps the RunE of cmd and all its children so every run is
// recorded and the metrics textfile, when configured, is rewritten.
func (c *CommandContext) instrument(cmd *cobra.Command) {
	for _, child := range cmd.Commands() {
		c.instrument(child)
	}
	if cmd.RunE == nil {
		return
	}

	run := cmd.RunE
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		start := time.Now()
		ctx, span := telemetry.StartCommandSpan(cmd.Context(), cmd.CommandPath())
		cmd.SetContext(ctx)

		err := run(cmd, args)

		telemetry.EndSpan(span, err)
		c.record(cmd, time.Since(start), err)
		return err
	}
}

// startTracing installs the trace exporter when an endpoint is configured.
// Configuration errors are left for the command itself to report.
func (c *CommandContext) startTracing(ctx context.Context) {
	cfg, err := c.Config()
	if err != nil || cfg.Tracing.Endpoint == "" {
		return
	}

	tc := telemetry.DefaultConfig()
	tc.ServiceVersion = version.GetInfo().Short()
	tc.Endpoint = cfg.Tracing.Endpoint
	tc.Insecure = cfg.Tracing.Insecure
	if cfg.Tracing.SampleRate > 0 {
		tc.SampleRate = cfg.Tracing.SampleRate
	}
	if _, err := telemetry.InitProvider(ctx, tc); err != nil {
		log.DefaultLogger().WithError(err).Warn("tracing disabled")
		return
	}
	c.tracing = true
}

func (c *CommandContext) record(cmd *cobra.Command, d time.Duration, err error) {
	if c.tracing {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(cmd.Context()), 5*time.Second)
		if serr := telemetry.Shutdown(ctx); serr != nil {
			log.DefaultLogger().WithError(serr).Warn("failed to flush traces")
		}
		cancel()
	}

	app := c.app
	if app == nil {
		return
	}
	app.Metrics.ObserveCommand(cmd.CommandPath(), d, err)

	path := app.Config.MetricsFile()
	if path == "" {
		return
	}
	if werr := metrics.WriteTextfile(app.registry, path); werr != nil {
		app.Logger.WithError(werr).Warn("failed to write metrics")
	}
}

// Authenticated returns the app when a live session exists, and the
// not-logged-in error otherwise.
func (c *CommandContext) Authenticated(ctx context.Context) (*App, error) {
	app, err := c.App()
	if err != nil {
		return nil, err
	}
	if !app.Auth.RequireAuth(ctx) {
		return nil, errNotLoggedIn()
	}
	return app, nil
}

// Authorized is Authenticated plus a role check against the stored user.
func (c *CommandContext) Authorized(ctx context.Context, roles ...string) (*App, error) {
	app, err := c.Authenticated(ctx)
	if err != nil {
		return nil, err
	}
	if err := app.Auth.RequireRole(ctx, roles...); err != nil {
		return nil, err
	}
	return app, nil
}

// Print writes data to the command output in the selected format. Text
// output uses table when it is non-nil.
func (c *CommandContext) Print(cmd *cobra.Command, table *ux.Table, data any) error {
	f, err := ux.NewFormatter(c.Format, &ux.FormatterOptions{Writer: cmd.OutOrStdout()})
	if err != nil {
		return err
	}
	if table != nil && c.textOutput() {
		return f.Format(table)
	}
	return f.Format(data)
}

// Notice writes a human readable line. It is suppressed for machine
// readable formats so their output stays parseable.
func (c *CommandContext) Notice(cmd *cobra.Command, format string, args ...any) {
	if !c.textOutput() {
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), format+"\n", args...)
}

func (c *CommandContext) textOutput() bool {
	return c.Format == "" || c.Format == ux.FormatText
}

// Prompting reports whether interactive prompts may be shown.
func (c *CommandContext) Prompting(in io.Reader) bool {
	if !c.prompt {
		return false
	}
	f, ok := in.(*os.File)
	return ok && f == os.Stdin && shouldPrompt()
}
