package cli

import (
	"strings"

	"github.com/podded/podded/engine/core"
	"github.com/podded/podded/engine/script/uc"
	"github.com/spf13/cobra"
)

func (a *App) editCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "edit [VARIABLE]",
		Short: "Edit one variable, or the whole document, in $EDITOR",
		Args:  maxArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return uc.NewEdit(a.deps).Execute(cmd.Context(), &uc.EditInput{
				Path: a.document,
				Slot: optional(args),
			})
		},
	}
}

func (a *App) lockCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "lock [force]",
		Short: "Stop the document from modifying itself; force toggles without asking",
		Args:  maxArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			force := false
			switch sub := strings.ToLower(optional(args)); sub {
			case "":
			case "force":
				force = true
			default:
				return core.NewArgumentError("Unknown sub-command: %s, expected 'force' or none", sub)
			}
			return uc.NewLock(a.deps).Execute(cmd.Context(), &uc.LockInput{Path: a.document, Force: force})
		},
	}
}

func (a *App) clearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear [build|run]",
		Short: "Reset BUILD and/or COMMAND to their defaults",
		Args:  maxArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return uc.NewClear(a.deps).Execute(cmd.Context(), &uc.ClearInput{
				Path:   a.document,
				Target: optional(args),
			})
		},
	}
}

func (a *App) printCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "print [VARIABLE]",
		Short: "Print every variable, or the value of one",
		Args:  maxArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return uc.NewPrint(a.deps).Execute(cmd.Context(), &uc.PrintInput{
				Path: a.document,
				Slot: optional(args),
			})
		},
	}
}

func (a *App) copyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "copy PATH",
		Short: "Write an unlocked copy of the document to PATH",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return uc.NewCopy(a.deps).Execute(cmd.Context(), &uc.CopyInput{Path: a.document, Dest: args[0]})
		},
	}
}

func (a *App) newCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "new PATH",
		Short: "Write an unlocked copy with BUILD and COMMAND cleared to PATH",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return uc.NewCopy(a.deps).Execute(cmd.Context(), &uc.CopyInput{
				Path:  a.document,
				Dest:  args[0],
				Reset: true,
			})
		},
	}
}

func (a *App) initCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init PATH",
		Short: "Write a new empty document to PATH",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return uc.NewInit(a.deps).Execute(cmd.Context(), &uc.InitInput{Dest: args[0]})
		},
	}
}
