package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/tada/internal/confetti"
	"github.com/idilsaglam/tada/internal/logging"
	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/store"
	"github.com/idilsaglam/tada/internal/store/schema"
	"github.com/idilsaglam/tada/internal/tui"
	"github.com/idilsaglam/tada/internal/ui"
)

func newAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <title> <description>",
		Short: "Add a new item",
		Long: `Add a new item at the end of the list.

Both title and description are required; quote them when they hold spaces.

Examples:
  todo add "Buy milk" "2%"
  todo add "Call dentist" "reschedule"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := a.newStore(nil)
			it, err := s.Add(args[0], args[1])
			if err != nil {
				var ve *model.ValidationError
				if errors.As(err, &ve) {
					return &exitError{code: ExitUsage, err: err}
				}
				return runtimeErr(err)
			}
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("added #%d", it.ID))
			return nil
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List items",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := a.newStore(nil)
			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				b, err := schema.Encode(s.Items())
				if err != nil {
					return runtimeErr(err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(b))
				return nil
			}
			ui.Panel(cmd.OutOrStdout(), ui.ListLines(s.Items()))
			return nil
		},
	}
	cmd.Flags().Bool("json", false, "print the persisted JSON array")
	return cmd
}

func newFinishCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "finish <id>",
		Aliases: []string{"done", "rm"},
		Short:   "Finish (remove) the item with the given id and celebrate",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return usageErr("finish: not a number: %s", args[0])
			}
			s := a.newStore(a.printerCelebrator(cmd.OutOrStdout()))
			if s.Remove(id) {
				ui.OK(cmd.OutOrStdout(), fmt.Sprintf("finished #%d", id))
			} else {
				ui.Hint(cmd.OutOrStdout(), fmt.Sprintf("no item with id %d", id))
			}
			return nil
		},
	}
}

func newTUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive list (same as running with no subcommand)",
		Args:  cobra.NoArgs,
		RunE:  a.runTUI,
	}
}

func (a *app) printerCelebrator(w io.Writer) store.Celebrator {
	if !a.cfg.UI.Celebrate {
		return nil
	}
	return confetti.NewPrinter(w)
}

// runTUI owns the terminal until quit, so logs go to log.file or nowhere.
func (a *app) runTUI(cmd *cobra.Command, _ []string) error {
	logger := logging.Discard()
	if a.cfg.Log.File != "" {
		l, c, err := logging.OpenFile(a.cfg.Log.File, a.cfg.Log.Level)
		if err != nil {
			return runtimeErr(err)
		}
		a.closers = append(a.closers, c)
		logger = l
	}

	var field *confetti.Field
	var party store.Celebrator
	if a.cfg.UI.Celebrate {
		field = confetti.NewField(80, 8, nil)
		party = tui.Confetti{Field: field}
	}
	s := store.New(a.slot, store.WithCelebrator(party), store.WithLogger(logger))
	s.Hydrate()

	if err := tui.Run(tui.New(s, field, logger)); err != nil {
		return runtimeErr(fmt.Errorf("tui: %w", err))
	}
	return nil
}
