// Package main is the entry point for the scriptrun CLI application.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	runcli "github.com/NikitaCOEUR/scriptrun/internal/cli"
	"github.com/NikitaCOEUR/scriptrun/internal/config"
	"github.com/NikitaCOEUR/scriptrun/internal/trace"
	"github.com/NikitaCOEUR/scriptrun/pkg/version"
	"github.com/urfave/cli/v3"
)

func main() {
	stopTrace := trace.Init()
	code := run(context.Background(), os.Args, os.Stdout, os.Stderr)
	stopTrace()
	os.Exit(code)
}

// run executes the application and returns the process exit status: the
// script's own status for "run", 1 for any error.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	exitCode := 0
	app := newApp(stdout, stderr, &exitCode)

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return exitCode
}

func globals(cmd *cli.Command) runcli.Globals {
	return runcli.Globals{
		ConfigName: cmd.String("config-name"),
		LogLevel:   cmd.String("log-level"),
		DebugLog:   cmd.String("debug-log"),
	}
}

func newApp(stdout, stderr io.Writer, exitCode *int) *cli.Command {
	return &cli.Command{
		Name:                  "scriptrun",
		Usage:                 "Run project scripts with context-aware shell completion",
		Version:               version.Version,
		EnableShellCompletion: true,
		Writer:                stdout,
		ErrWriter:             stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config-name",
				Value:   config.DefaultConfigName,
				Usage:   "Configuration file searched from the current directory upwards",
				Sources: cli.EnvVars("SCRIPTRUN_CONFIG_NAME"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars("SCRIPTRUN_LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:    "debug-log",
				Usage:   "Append JSON debug logs to this file",
				Sources: cli.EnvVars("SCRIPTRUN_DEBUG_LOG"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:            "run",
				Usage:           "Run a project script",
				ArgsUsage:       "<script> [args...]",
				SkipFlagParsing: true, // Arguments belong to the script
				Action: func(ctx context.Context, cmd *cli.Command) error {
					args := cmd.Args().Slice()
					if len(args) > 0 && args[0] == "--" {
						args = args[1:]
					}
					if len(args) == 0 {
						return fmt.Errorf("script name required")
					}

					code, err := runcli.Run(ctx, runcli.RunParams{
						Globals: globals(cmd),
						Script:  args[0],
						Args:    args[1:],
						Stdout:  stdout,
						Stderr:  stderr,
					})
					if err != nil {
						return err
					}
					*exitCode = code
					return nil
				},
			},
			{
				Name:            "complete",
				Usage:           "Print completions for a script command line",
				ArgsUsage:       "<alias> [words...] <current>",
				Hidden:          true, // Called by the shell hook
				SkipFlagParsing: true, // Words are passed verbatim
				HideHelp:        true,
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runcli.Complete(ctx, runcli.CompleteParams{
						Globals:  globals(cmd),
						Words:    cmd.Args().Slice(),
						Output:   stdout,
						Registry: runcli.NewRegistry(),
					})
				},
			},
			{
				Name:  "list",
				Usage: "List the scripts of the current project",
				Action: func(_ context.Context, cmd *cli.Command) error {
					return runcli.List(runcli.ListParams{Globals: globals(cmd), Output: stdout})
				},
			},
			{
				Name:  "status",
				Usage: "Show the configuration, scripts and completion setup",
				Action: func(_ context.Context, cmd *cli.Command) error {
					return runcli.Status(runcli.StatusParams{Globals: globals(cmd), Output: stdout})
				},
			},
			{
				Name:      "validate",
				Usage:     "Validate a scriptrun configuration file",
				ArgsUsage: "[config-file]",
				Action: func(_ context.Context, cmd *cli.Command) error {
					return runcli.Validate(runcli.ValidateParams{
						Globals: globals(cmd),
						Path:    cmd.Args().First(),
						Output:  stdout,
					})
				},
			},
			{
				Name:      "schema",
				Usage:     "Display or export the JSON Schema for scriptrun configuration files",
				ArgsUsage: "[output-file]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (prints to stdout if not specified)",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					outputPath := cmd.String("output")
					if outputPath == "" {
						outputPath = cmd.Args().First()
					}
					return runcli.Schema(outputPath, stdout)
				},
			},
			{
				Name:  "hook",
				Usage: "Print the shell code defining the script alias and its completion",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "shell",
						Value:   "auto",
						Usage:   "Shell type: bash, zsh, or auto",
						Sources: cli.EnvVars("SCRIPTRUN_SHELL"),
					},
					&cli.StringFlag{
						Name:  "alias",
						Value: "run",
						Usage: "Alias running scripts",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					return runcli.Hook(runcli.HookParams{
						Globals: globals(cmd),
						Shell:   cmd.String("shell"),
						Alias:   cmd.String("alias"),
						Output:  stdout,
					})
				},
			},
			{
				Name:  "setup",
				Usage: "Install the hook into the shell RC file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "shell",
						Value:   "auto",
						Usage:   "Shell type: bash, zsh, or auto",
						Sources: cli.EnvVars("SCRIPTRUN_SHELL"),
					},
					&cli.StringFlag{
						Name:  "alias",
						Value: "run",
						Usage: "Alias running scripts",
					},
					&cli.BoolFlag{
						Name:  "uninstall",
						Usage: "Remove the hook instead",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					return runcli.Setup(runcli.SetupParams{
						Globals:   globals(cmd),
						Shell:     cmd.String("shell"),
						Alias:     cmd.String("alias"),
						Uninstall: cmd.Bool("uninstall"),
						Output:    stdout,
					})
				},
			},
		},
	}
}
