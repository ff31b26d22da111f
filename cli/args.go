package cli

import (
	"strconv"

	"github.com/podded/podded/engine/core"
	"github.com/spf13/cobra"
)

func maxArgs(n int) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) > n {
			return core.NewArgumentError("Expected at most %d argument(s), got %d", n, len(args))
		}
		return nil
	}
}

func exactArgs(n int) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) != n {
			return core.NewArgumentError("Expected %d argument(s), got %d", n, len(args))
		}
		return nil
	}
}

func optional(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func parseSeconds(arg string) (int, error) {
	if arg == "" {
		return -1, nil
	}
	n, err := strconv.Atoi(arg)
	if err != nil || n < 0 {
		return 0, core.NewArgumentError("SECONDS must be a non-negative integer, got %q", arg)
	}
	return n, nil
}
