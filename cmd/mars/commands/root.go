package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mars/internal/app"
)

type rootOptions struct {
	configPath string
	location   string
	passphrase string
	logLevel   string

	wire *app.Wire
}

// Execute runs the CLI against os.Args.
func Execute() error {
	root := NewRootCmd()
	err := root.Execute()
	if err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "error:", err)
	}
	return err
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "mars",
		Short:         "Persist a JSON payload to a file and read it back",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig(opts.configPath, app.EnvMap())
			if err != nil {
				return err
			}
			if opts.location != "" {
				cfg.Location = opts.location
			}
			if opts.passphrase != "" {
				cfg.Passphrase = opts.passphrase
			}
			if opts.logLevel != "" {
				cfg.LogLevel = opts.logLevel
			}
			w, err := app.NewWire(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			opts.wire = w
			return nil
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", defaultConfigPath(), "config file (TOML)")
	root.PersistentFlags().StringVarP(&opts.location, "file", "f", "", "payload file (default ./martian_spaceship.json)")
	root.PersistentFlags().StringVarP(&opts.passphrase, "passphrase", "p", "", "passphrase to seal the payload file")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error")

	root.AddCommand(sendCmd(opts), receiveCmd(opts))
	return root
}

func defaultConfigPath() string {
	if v := os.Getenv("MARS_CONFIG"); v != "" {
		return v
	}
	return "mars.toml"
}
