// Package cli provides the tada command tree.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/store"
	"github.com/idilsaglam/tada/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Exit codes: 0 ok, 1 runtime error, 2 usage or validation.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// Options wire the command tree to its environment.
type Options struct {
	Stdout, Stderr io.Writer
	// Slot replaces the configured backend; tests use it with memstore.
	Slot store.Slot
}

type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func usageErr(format string, a ...any) error {
	return &exitError{code: ExitUsage, err: fmt.Errorf(format, a...)}
}

func runtimeErr(err error) error {
	return &exitError{code: ExitError, err: err}
}

// NewRootCmd builds a fresh command tree. With no subcommand it starts the TUI.
func NewRootCmd(opt Options) *cobra.Command {
	root, _ := newRoot(opt)
	return root
}

func newRoot(opt Options) (*cobra.Command, *app) {
	if opt.Stdout == nil {
		opt.Stdout = os.Stdout
	}
	if opt.Stderr == nil {
		opt.Stderr = os.Stderr
	}
	a := &app{opt: opt}

	root := &cobra.Command{
		Use:   "todo",
		Short: "tada - a to-do list that celebrates when you finish things",
		Long: `tada keeps a small to-do list of titled items with descriptions.

Run without a subcommand to open the interactive list. Finishing an item
removes it and fires a confetti burst.`,
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE:              a.runTUI,
	}
	root.SetOut(opt.Stdout)
	root.SetErr(opt.Stderr)
	root.SetVersionTemplate("tada {{.Version}}\n")

	pf := root.PersistentFlags()
	pf.String("config", "", "config file (default $XDG_CONFIG_HOME/tada/config.yaml)")
	pf.String("storage", "", "storage backend: file, sqlite or memory")
	pf.String("data-dir", "", "directory holding the persisted list")
	pf.String("theme", "", "output theme: classic, neon or mono")
	pf.Bool("no-celebrate", false, "skip the confetti on finish")
	pf.String("log-level", "", "log level: debug, info, warn or error")

	root.AddCommand(
		newAddCmd(a),
		newListCmd(a),
		newFinishCmd(a),
		newTUICmd(a),
	)
	return root, a
}

// Execute runs the tree on args and returns the process exit code.
func Execute(args []string, opt Options) int {
	root, a := newRoot(opt)
	root.SetArgs(args)
	err := root.Execute()
	if cerr := a.close(); err == nil && cerr != nil {
		err = runtimeErr(cerr)
	}
	if err == nil {
		return ExitOK
	}

	var ee *exitError
	if !errors.As(err, &ee) {
		// cobra's own arg and flag errors
		ui.Fail(root.ErrOrStderr(), err.Error())
		fmt.Fprintln(root.ErrOrStderr())
		fmt.Fprint(root.ErrOrStderr(), root.UsageString())
		return ExitUsage
	}

	var ve *model.ValidationError
	if errors.As(err, &ve) {
		ui.Fail(root.ErrOrStderr(), ve.Message)
	} else {
		ui.Fail(root.ErrOrStderr(), ee.Error())
	}
	return ee.code
}
