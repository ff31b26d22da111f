package cli

import (
	"github.com/podded/podded/engine/script/uc"
	"github.com/spf13/cobra"
)

func (a *App) buildCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "build [PATH]",
		Short: "Build the image, saving PATH as the new BUILD first",
		Args:  maxArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return uc.NewBuild(a.deps).Execute(cmd.Context(), &uc.BuildInput{
				Path:   a.document,
				Source: optional(args),
			})
		},
	}
}

func (a *App) buildCopyCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "build-copy PATH",
		Aliases: []string{"build-take", "build-keep"},
		Short:   "Save PATH as the new BUILD without building",
		Args:    exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return uc.NewBuild(a.deps).Execute(cmd.Context(), &uc.BuildInput{
				Path:     a.document,
				Source:   args[0],
				SaveOnly: true,
			})
		},
	}
}
