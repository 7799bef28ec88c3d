// Package cmd contains the command-line interface of the getsupabase tool.
//
// Every command that talks to the project goes through withClient, which
// resolves the configuration (defaults, --config file, .env and environment,
// then flags), builds the logger and the REST client, picks the credential
// mode and wires Ctrl-C into the context passed to the command.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"getsupabase/config"
	"getsupabase/logger"
	"getsupabase/restclient"
)

// newClient is a package-level variable to allow test injection.
var newClient = restclient.New

// session is what a command gets to work with once credentials are settled.
type session struct {
	cfg    *config.Config
	client *restclient.Client
	logger *slog.Logger
	out    io.Writer
}

// loadConfig resolves the configuration and applies the flags the user set
// explicitly, so unset flags never mask the file or the environment.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("url") {
		cfg.Endpoint = flagURL
	}
	if flags.Changed("anon-key") {
		cfg.PublicKey = flagAnonKey
	}
	if flags.Changed("key") {
		cfg.PrivilegedKey = flagKey
	}
	if flags.Changed("email") {
		cfg.Credentials.Email = flagEmail
	}
	if flags.Changed("password") {
		cfg.Credentials.Password = flagPassword
	}
	if flags.Changed("output") {
		cfg.Export.OutputDir = flagOutput
	}
	if flags.Changed("format") {
		cfg.Export.Format = flagFormat
	}
	if flags.Changed("tables") {
		cfg.Export.Tables = flagTables
	}
	if flags.Changed("page-size") {
		cfg.Export.PageSize = flagPageSize
	}
	if flags.Changed("rps") {
		cfg.Export.RequestsPerSecond = flagRPS
	}
	if flags.Changed("timeout") {
		cfg.Export.Timeout = flagTimeout
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = flagLogLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = flagLogFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// withClient builds a session and calls fn with it. In password mode the
// user is signed in first and signed out when fn returns; a failed login
// ends the command before fn runs.
func withClient(cmd *cobra.Command, fn func(ctx context.Context, s *session) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cmd.ErrOrStderr()})
	if err != nil {
		return err
	}
	client, err := newClient(cfg.Endpoint, cfg.APIKey(), restclient.Options{
		Timeout:           cfg.Export.Timeout,
		RequestsPerSecond: cfg.Export.RequestsPerSecond,
		Logger:            log,
	})
	if err != nil {
		return fmt.Errorf("error creating client: %w", err)
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	mode := cfg.Mode()
	log.Debug("session configured", "endpoint", cfg.Endpoint, "mode", mode.String())
	switch mode {
	case config.ModeServiceKey:
		fmt.Fprintln(out, "Using service key; row-level security is bypassed.")
	case config.ModePassword:
		fmt.Fprintf(out, "Logging in as %s... ", cfg.Credentials.Email)
		if _, err := client.SignInWithPassword(ctx, cfg.Credentials.Email, cfg.Credentials.Password); err != nil {
			fmt.Fprintln(out, "FAILED")
			return fmt.Errorf("login failed: %w", err)
		}
		fmt.Fprintln(out, "OK")
		defer func() {
			if err := client.SignOut(context.WithoutCancel(ctx)); err != nil {
				log.Warn("sign out failed", "error", err)
			}
		}()
	default:
		if cfg.Credentials.Email != "" || cfg.Credentials.Password != "" {
			log.Warn("login needs both email and password; using the anon key")
		}
		fmt.Fprintln(out, "WARNING: no credentials given, using the anon key. Tables protected by row-level security may come back empty.")
	}

	return fn(ctx, &session{cfg: cfg, client: client, logger: log, out: out})
}
