package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/abrezinsky/cubeplan/internal/app"
	"github.com/abrezinsky/cubeplan/internal/auth"
	"github.com/abrezinsky/cubeplan/internal/browser"
	"github.com/abrezinsky/cubeplan/internal/catalog"
	"github.com/abrezinsky/cubeplan/internal/config"
	"github.com/abrezinsky/cubeplan/internal/logger"
)

// serveOptions are the serve flags. Flags the user sets override the
// environment configuration.
type serveOptions struct {
	port       int
	dbPath     string
	adminPw    string
	logLevel   string
	baseURL    string
	noKeyboard bool
}

func newServeCmd() *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the organiser web API",
		Example: `  cubeplan serve                        # port 8081, cubeplan.db
  cubeplan serve --port 8080 --db /data/open.db
  cubeplan serve --adminpw secret123 --nokeyboard
  cubeplan serve --base-url https://plan.example.org`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			opts.apply(cmd.Flags().Changed, cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runServe(cmd.Context(), cmd.OutOrStdout(), cfg, !opts.noKeyboard)
		},
	}

	f := cmd.Flags()
	f.IntVar(&opts.port, "port", 8081, "HTTP server port")
	f.StringVar(&opts.dbPath, "db", "cubeplan.db", "SQLite database path")
	f.StringVar(&opts.adminPw, "adminpw", "", "organiser password (generated if not set)")
	f.StringVar(&opts.logLevel, "loglevel", "info", "log level: debug, info, warn, error")
	f.StringVar(&opts.baseURL, "base-url", "", "public address for schedule links (detected LAN address if not set)")
	f.BoolVar(&opts.noKeyboard, "nokeyboard", false, "disable keyboard shortcuts")
	return cmd
}

// apply copies the flags the user set onto cfg
func (o serveOptions) apply(changed func(name string) bool, cfg *config.Config) {
	if changed("port") {
		cfg.Server.Port = o.port
	}
	if changed("db") {
		cfg.Database.Path = o.dbPath
	}
	if changed("adminpw") {
		cfg.Auth.AdminPassword = o.adminPw
	}
	if changed("loglevel") {
		cfg.Log.Level = o.logLevel
	}
	if changed("base-url") {
		cfg.Server.BaseURL = o.baseURL
	}
}

func runServe(ctx context.Context, out io.Writer, cfg *config.Config, keyboardEnabled bool) error {
	printBanner(out)

	password := cfg.Auth.AdminPassword
	if password == "" {
		password = auth.GeneratePassword()
	}
	adminAuth := auth.New(password)

	stdin := int(os.Stdin.Fd())
	interactive := keyboardEnabled && term.IsTerminal(stdin)

	// Raw mode turns off output post-processing, so log lines need \r\n
	var logOut io.Writer = os.Stdout
	if interactive {
		logOut = crlfWriter{w: os.Stdout}
		out = crlfWriter{w: out}
	}
	appLog := logger.NewWithWriter(logOut, logger.ParseLevel(cfg.Log.Level))

	a, err := app.New(appLog, cfg, catalog.Default(), adminAuth)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	appLog.Info("Organiser password", "password", password)

	if interactive {
		kb := &keyboard{
			out:  out,
			log:  appLog,
			url:  func() string { return a.BaseURL() + "/api/competitions" },
			open: browser.Open,
			quit: stop,
		}
		restore, err := kb.start(stdin, os.Stdin)
		if err != nil {
			appLog.Warn("Keyboard shortcuts unavailable", "error", err)
		} else {
			defer restore()
			kb.printHelp()
		}
	} else if keyboardEnabled {
		appLog.Debug("Keyboard shortcuts disabled: stdin is not a terminal")
	} else {
		color.New(color.FgYellow).Fprintln(out, "Keyboard shortcuts disabled")
	}

	return a.Run(ctx)
}

// printBanner prints the startup logo
func printBanner(out io.Writer) {
	cube := color.New(color.FgCyan, color.Bold)
	accent := color.New(color.FgYellow)

	logo := []string{
		`   +-----+      _                 _             `,
		`  / R R /|  ___ _   _| |__   ___ _ __ | | __ _ _ __  `,
		` +-----+ | / __| | | | '_ \ / _ \ '_ \| |/ _' | '_ \ `,
		` | G G | +| (__| |_| | |_) |  __/ |_) | | (_| | | | |`,
		` | G G |/  \___|\__,_|_.__/ \___| .__/|_|\__,_|_| |_|`,
		` +-----+                        |_|                  `,
	}

	fmt.Fprintln(out)
	for _, line := range logo {
		cube.Fprintln(out, line)
	}
	accent.Fprintf(out, "  competition estimator and scheduler %s\n\n", version)
}
