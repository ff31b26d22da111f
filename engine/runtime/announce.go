package runtime

import (
	"context"
	"fmt"
	"io"

	"github.com/podded/podded/engine/compose"
)

// Announce prints argv shell-quoted and then runs it.
func Announce(ctx context.Context, r Runner, out io.Writer, argv []string, stdio Stdio) error {
	fmt.Fprintln(out, compose.Join(argv))
	return r.Run(ctx, argv, stdio)
}

// AnnounceOutput prints argv shell-quoted and then captures its output.
func AnnounceOutput(ctx context.Context, r Runner, out io.Writer, argv []string) (string, error) {
	fmt.Fprintln(out, compose.Join(argv))
	return r.Output(ctx, argv)
}
