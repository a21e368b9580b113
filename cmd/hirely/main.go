// Command hirely is a terminal client for the hirely job board.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/VishalGhuge111/hirely"
	"github.com/VishalGhuge111/hirely/internal/config"
	"github.com/VishalGhuge111/hirely/internal/logutil"
	"github.com/VishalGhuge111/hirely/internal/storage"
	"github.com/VishalGhuge111/hirely/pkg/views"
	"github.com/spf13/cobra"
)

// cli carries what every command needs once the root has set up.
type cli struct {
	envFile    string
	log        *slog.Logger
	app        *hirely.App
	closeStore func() error
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:           "hirely",
		Short:         "Browse jobs, apply and manage listings from the terminal",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd.Context(), cmd.ErrOrStderr())
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if c.closeStore != nil {
				return c.closeStore()
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&c.envFile, "env-file", ".env", "dotenv file to load before reading the environment")

	root.AddCommand(
		c.loginCmd(),
		c.registerCmd(),
		c.verifyCmd(),
		c.resendOTPCmd(),
		c.forgotPasswordCmd(),
		c.resetPasswordCmd(),
		c.logoutCmd(),
		c.whoamiCmd(),
		c.profileCmd(),
		c.jobsCmd(),
		c.applyCmd(),
		c.applicationsCmd(),
		c.adminCmd(),
		c.contactCmd(),
	)
	return root
}

func (c *cli) setup(ctx context.Context, stderr io.Writer) error {
	if err := config.LoadEnvFiles(c.envFile); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	c.log = logutil.New(stderr, cfg.LogLevel, cfg.LogFormat)

	store, closeStore, err := storage.Open(c.log, cfg.Storage, cfg.StoragePath)
	if err != nil {
		return err
	}
	c.closeStore = closeStore

	c.app, err = hirely.New(ctx,
		hirely.WithLogger(c.log),
		hirely.WithBaseURL(cfg.APIBaseURL),
		hirely.WithStorage(store),
		hirely.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
		hirely.WithForcedLogoutHook(func(context.Context) {
			fmt.Fprintln(stderr, "Your session has expired. You have been signed out.")
			fmt.Fprintln(stderr, "location: "+c.app.Nav.Current().Path)
		}),
	)
	return err
}

// mount mounts p, turning a guard redirect into a readable error.
func (c *cli) mount(ctx context.Context, p views.Page) error {
	err := p.Mount(ctx)
	if errors.Is(err, views.ErrRedirected) {
		return fmt.Errorf("%s is not available here; redirected to %s", p.Path(), c.app.Nav.Current().Path)
	}
	return err
}

// failed prefers the message a view showed over the raw error.
func failed(msg string, err error) error {
	if msg != "" {
		return errors.New(msg)
	}
	return err
}
