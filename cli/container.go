package cli

import (
	"github.com/podded/podded/engine/script/uc"
	"github.com/spf13/cobra"
)

func (a *App) stopCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stop [SECONDS]",
		Short: "Stop the container, waiting SECONDS before killing it",
		Args:  maxArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seconds, err := parseSeconds(optional(args))
			if err != nil {
				return err
			}
			return uc.NewStop(a.deps).Execute(cmd.Context(), &uc.StopInput{Path: a.document, Seconds: seconds})
		},
	}
}

func (a *App) attachCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "attach",
		Short: "Attach the terminal to the running container",
		Args:  maxArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return uc.NewAttach(a.deps).Execute(cmd.Context(), &uc.DocumentInput{Path: a.document})
		},
	}
}

func (a *App) execCommand() *cobra.Command {
	return &cobra.Command{
		Use:                "exec [ARGS...]",
		Short:              "Execute a command inside the running container",
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return uc.NewExec(a.deps).Execute(cmd.Context(), &uc.ExecInput{Path: a.document, Args: args})
		},
	}
}

func (a *App) serviceCommand(action uc.ServiceAction, short string) *cobra.Command {
	return &cobra.Command{
		Use:   string(action),
		Short: short,
		Args:  maxArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return uc.NewService(a.deps).Execute(cmd.Context(), &uc.ServiceInput{Path: a.document, Action: action})
		},
	}
}
