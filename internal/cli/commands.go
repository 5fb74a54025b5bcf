// Package cli renders the SkillSwap views as cobra commands. Each command
// drives one of the view flows against the SkillSwap API and prints the
// result for a terminal, or as JSON or YAML.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	jsonOutput  bool
	yamlOutput  bool
	configFile  string
	insecureTLS bool
)

var ErrAlreadyHandled = errors.New("already handled")

var okLabel = color.New(color.FgGreen)
var errorLabel = color.New(color.FgRed)
var headerLabel = color.New(color.Bold)

// newRootCmd builds the command tree. Flag variables are rebound, and so
// reset, every time it is called.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "skillswap [command] [flags]",
		Short: "SkillSwap CLI - browse, book and teach skills from the terminal",
		Long: `SkillSwap CLI is a command line front-end for the SkillSwap marketplace.
Members exchange skills for credits: browse what others teach, book a
session in one of their time slots, and post skills of your own.

Examples:
  # Point the CLI at a server and pick your profile
  skillswap config --server http://localhost:8000 --profile 12

  # See your dashboard
  skillswap home

  # Find Python skills under 20 credits
  skillswap skills list -q python -p 20

  # Book the first slot of skill 1
  skillswap skill book 1 --slot 0`,
		PersistentPreRunE: preRunHandlePersistents,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "", "", "Path to configuration file to override default")
	rootCmd.PersistentFlags().BoolVarP(&jsonOutput, "json", "j", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&yamlOutput, "yaml", "y", false, "Output in YAML format")
	rootCmd.PersistentFlags().BoolVar(&insecureTLS, "insecure", false, "Skip TLS certificate verification of the server")
	rootCmd.MarkFlagsMutuallyExclusive("json", "yaml")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newHomeCmd())
	rootCmd.AddCommand(newSkillsCmd())
	rootCmd.AddCommand(newSkillCmd())
	rootCmd.AddCommand(newTeachCmd())
	rootCmd.AddCommand(newSessionCmd())
	rootCmd.AddCommand(newSessionsCmd())
	rootCmd.AddCommand(newProfileCmd())
	rootCmd.AddCommand(newRegisterCmd())
	rootCmd.AddCommand(newReviewsCmd())
	rootCmd.AddCommand(newUsersCmd())
	return rootCmd
}

// Execute runs the command line with the process arguments and exits
// non-zero on failure. This is called by main.main().
func Execute() {
	os.Exit(Run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// Run executes one command line and returns the exit code. Errors are
// printed to errOut, or to out as {"error": ...} with --json.
func Run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetIn(in)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	rootCmd.SilenceErrors = true // Prevent Cobra from printing the error
	rootCmd.SilenceUsage = true  // Prevent Cobra from printing usage on error

	executed, err := rootCmd.ExecuteContextC(ctx)
	if executed != nil {
		if a := appFromContext(executed.Context()); a != nil {
			a.close()
		}
	}
	if err == nil {
		return 0
	}
	if errors.Is(err, ErrAlreadyHandled) {
		return 1
	}
	if jsonOutput {
		printJSONError(out, err)
		return 1
	}
	var pe *profileLoadError
	if errors.As(err, &pe) {
		errorLabel.Fprintf(errOut, "Error loading profile: %v\n", pe.err)
	} else {
		errorLabel.Fprintf(errOut, "Error: %v\n", err)
	}
	return 1
}

// preRunHandlePersistents loads the configuration and opens the application
// context before a command runs. config and version work without it.
func preRunHandlePersistents(cmd *cobra.Command, args []string) error {
	c := cmd
	for c != nil {
		if c.Name() == "config" || c.Name() == "version" {
			return nil
		}
		c = c.Parent()
	}

	cfg, err := LoadConfig(configFile)
	if err != nil {
		return err
	}
	if insecureTLS {
		cfg.Insecure = true
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(openApp(ctx, cmd, cfg))
	return nil
}

// newVersionCmd creates and returns a new version command
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of skillswap",
		Run: func(cmd *cobra.Command, args []string) {
			configPath := configFile
			if configPath == "" {
				var err error
				configPath, err = GetDefaultConfigPath()
				if err != nil {
					configPath = "unknown"
				}
			}

			if jsonOutput {
				printJSON(cmd.OutOrStdout(), map[string]string{
					"version":     getCLIVersion(),
					"config_file": configPath,
				})
			} else {
				cmd.Printf("skillswap CLI %s\n", getCLIVersion())
				cmd.Printf("Config file: %s\n", configPath)
			}
		},
	}
}

// getCLIVersion returns the current CLI version
func getCLIVersion() string {
	return "v0.1.0"
}

// profileLoadError marks a failure to load the active profile, which is
// reported differently from errors inside a view.
type profileLoadError struct {
	err error
}

func (e *profileLoadError) Error() string {
	return fmt.Sprintf("loading profile: %v", e.err)
}

func (e *profileLoadError) Unwrap() error {
	return e.err
}
