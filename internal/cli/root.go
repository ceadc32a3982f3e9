// Package cli implements the profilectl command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	verbose bool
}

var flags rootFlags

// log is the CLI diagnostic logger. The library never logs; everything a
// subcommand wants to say beyond its primary output goes through here.
var log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger().Level(zerolog.WarnLevel)

// NewRootCmd creates the top-level "profilectl" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "profilectl",
		Short: "Build and export Apple configuration profiles",
		Long: "Profilectl compiles a YAML profile definition into a signed-ready\n" +
			".mobileconfig property list, validating every payload field against\n" +
			"its schema on the way.",
		// Do not print usage on errors returned by subcommands.
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flags.verbose {
				log = log.Level(zerolog.DebugLevel)
			}
		},
	}

	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable diagnostic output")

	// Flag defaults may come from PROFILECTL_* environment variables.
	cfg := viper.New()
	cfg.SetEnvPrefix("PROFILECTL")
	cfg.AutomaticEnv()

	root.AddCommand(newVersionCmd())
	root.AddCommand(newCompileCmd(cfg))

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(exitUserError)
	}
	os.Exit(exitSuccess)
}

// exitError prints the error to stderr and exits with the given code.
// Subcommands use it for system failures, which exit 2 instead of the
// user-error 1 that Execute applies to returned errors.
func exitError(cmd *cobra.Command, code int, msg string) error {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(code)
	return nil // unreachable
}
