package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/blackcoderx/lmfetch/pkg/app"
	"github.com/blackcoderx/lmfetch/pkg/auth"
	"github.com/blackcoderx/lmfetch/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via -ldflags
var version = "dev"

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "lmfetch",
		Short: "Download catalog assets described by an OpenAPI document",
		Long: `lmfetch reads the server address from an OpenAPI (swagger) document,
lists every collection of the catalog, lists the items of each collection and
downloads one asset per item into a local directory. Files that already exist
are skipped.

Credentials are read from LM_USERNAME and LM_PASSWORD (a .env file in the
working directory is loaded first).`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd.OutOrStdout())
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			_, err = a.Runner.Run(ctx)
			return err
		},
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is ./lmfetch.yaml)")
	flags.StringP("spec", "s", config.DefaultSpec, "OpenAPI document describing the catalog")
	flags.StringP("output", "o", config.DefaultOutput, "directory the assets are written to")
	flags.StringP("asset-type", "a", config.DefaultAssetType, "asset to download for each item (data, thumbnail, ...)")
	flags.IntP("limit", "l", config.DefaultLimit, "maximum number of items requested per collection")
	flags.Duration("timeout", 0, "per-request timeout, 0 waits forever")
	flags.String("log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	flags.String("user-agent", config.DefaultUserAgent, "User-Agent header sent with every request")

	for key, flag := range map[string]string{
		config.KeySpec:      "spec",
		config.KeyOutput:    "output",
		config.KeyAssetType: "asset-type",
		config.KeyLimit:     "limit",
		config.KeyTimeout:   "timeout",
		config.KeyLogLevel:  "log-level",
		config.KeyUserAgent: "user-agent",
	} {
		_ = viper.BindPFlag(key, flags.Lookup(flag))
	}
}

func initConfig() {
	// Load .env file if it exists (warn if malformed)
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	if err := config.Init(viper.GetViper(), cfgFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setup builds the application from the global viper state and environment.
// Progress lines are written to w.
func setup(w io.Writer) (*app.App, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, err
	}

	creds, err := auth.FromEnv()
	if err != nil {
		return nil, err
	}

	return app.New(cfg, creds, app.NewLogger(w, cfg.Level()))
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
