// Package main implements a CLI tool to increment the build number stored in
// a JSON version file.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/bcomnes/buildnum/internal/logger"
	buildnum "github.com/bcomnes/buildnum/pkg"
)

const usageLine = "Usage: version.py <path-to-version-json>"

var errUsage = errors.New("expected exactly one argument")

func exactlyOnePath(_ *cobra.Command, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	return nil
}

func newRootCmd(updater *buildnum.Updater) *cobra.Command {
	return &cobra.Command{
		Use:   "buildnum <path-to-version-json>",
		Short: "Increment version.build in a JSON version file",
		Long: `Reads the JSON version file at the given path, adds one to version.build
(starting from 0 when it is missing), and rewrites the file with 4-space indentation.`,
		Args: exactlyOnePath,
		// The single argument is always a path, even if it looks like a flag.
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			meta, err := updater.Run(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated build number to %d\n", meta.NewBuild)
			return nil
		},
	}
}

// execute validates args and runs cmd without going through cobra's command
// lookup, so a path named like a hidden cobra command (such as __complete)
// is still treated as a path.
func execute(cmd *cobra.Command, args []string) error {
	if err := cmd.ValidateArgs(args); err != nil {
		return err
	}
	return cmd.RunE(cmd, args)
}

// run executes the CLI with args (excluding the program name) and returns
// the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	log := logger.New(stderr, zapcore.WarnLevel)
	defer func() { _ = log.Sync() }()

	cmd := newRootCmd(buildnum.New(buildnum.WithLogger(log)))
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := execute(cmd, args)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errUsage):
		fmt.Fprintln(stdout, usageLine)
	case errors.Is(err, buildnum.ErrNotFound):
		fmt.Fprintf(stdout, "Version file not found: %s\n", args[0])
	default:
		log.Error("failed to update build number", zap.String("path", args[0]), zap.Error(err))
	}
	return 1
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
