package cli

import (
	"github.com/podded/podded/engine/script/uc"
	"github.com/spf13/cobra"
)

// Commands taking run arguments leave flag parsing to the container runtime.

func (a *App) commandCommand() *cobra.Command {
	return &cobra.Command{
		Use:                "command ARGS...",
		Aliases:            []string{"cmd"},
		Short:              "Save ARGS as the new COMMAND without running",
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return uc.NewCommand(a.deps).Execute(cmd.Context(), &uc.CommandInput{
				Path:   a.document,
				Tokens: args,
			})
		},
	}
}

func (a *App) runCommand(interactive bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:                "run [ARGS...]",
		Short:              "Run the container, saving ARGS as the new COMMAND first",
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return uc.NewRun(a.deps).Execute(cmd.Context(), &uc.RunInput{
				Path:        a.document,
				Tokens:      args,
				Interactive: interactive,
			})
		},
	}
	if interactive {
		cmd.Use = "run-it [ARGS...]"
		cmd.Aliases = []string{"runit"}
		cmd.Short = "Run the container attached to the terminal, saving ARGS first"
	}
	return cmd
}

func (a *App) allCommand(interactive bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "all",
		Short: "Build the image, then run the container",
		Args:  maxArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return uc.NewAll(a.deps).Execute(cmd.Context(), &uc.AllInput{
				Path:        a.document,
				Interactive: interactive,
			})
		},
	}
	if interactive {
		cmd.Use = "all-it"
		cmd.Aliases = []string{"allit"}
		cmd.Short = "Build the image, then run the container attached to the terminal"
	}
	return cmd
}
