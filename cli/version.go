package cli

import (
	"strings"

	"github.com/podded/podded/engine/script/uc"
	"github.com/spf13/cobra"
)

func (a *App) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version [diff|update]",
		Short: "Compare the document with the published template, or move it onto the template",
		Args:  maxArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return uc.NewVersion(a.deps).Execute(cmd.Context(), &uc.VersionInput{
				Path:   a.document,
				Action: uc.VersionAction(strings.ToLower(optional(args))),
			})
		},
	}
}
