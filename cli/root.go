// Package cli is the podded command line: `podded DOCUMENT COMMAND [ARGS...]`.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/podded/podded/cli/helpers"
	"github.com/podded/podded/engine/compose"
	"github.com/podded/podded/engine/core"
	"github.com/podded/podded/engine/runtime"
	"github.com/podded/podded/engine/script"
	"github.com/podded/podded/engine/script/uc"
	"github.com/podded/podded/engine/update"
	"github.com/podded/podded/pkg/config"
	"github.com/podded/podded/pkg/logger"
	"github.com/podded/podded/pkg/version"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// commands that do not take a document
var rootCommands = map[string]bool{
	"init":                          true,
	"version":                       true,
	"help":                          true,
	"completion":                    true,
	cobra.ShellCompRequestCmd:       true,
	cobra.ShellCompNoDescRequestCmd: true,
}

// App wires the command tree to its collaborators. Nil collaborators are
// built from the loaded configuration.
type App struct {
	Fs       afero.Fs
	Stdio    runtime.Stdio
	Runner   runtime.Runner
	Editor   runtime.Editor
	Prompter runtime.Prompter
	Fetcher  update.Fetcher
	Getenv   func(string) string
	Home     string

	flags     *pflag.FlagSet
	document  string
	deps      *uc.Deps
	errStyles *helpers.Styles
}

// Execute runs podded with the process arguments and returns the exit status.
func Execute(ctx context.Context, args []string, stdio runtime.Stdio) int {
	app := &App{Fs: afero.NewOsFs(), Stdio: stdio, Getenv: os.Getenv}
	return app.Run(ctx, args)
}

// Run executes one command line and reports its error on stderr.
func (a *App) Run(ctx context.Context, args []string) int {
	return a.report(a.execute(ctx, args))
}

func (a *App) execute(ctx context.Context, args []string) error {
	a.init()
	cmdArgs, err := a.route(args)
	if err != nil {
		return err
	}
	root := a.rootCommand()
	root.SetArgs(cmdArgs)
	return root.ExecuteContext(ctx)
}

func (a *App) init() {
	if a.Fs == nil {
		a.Fs = afero.NewOsFs()
	}
	if a.Getenv == nil {
		a.Getenv = os.Getenv
	}
	if a.Home == "" {
		a.Home, _ = os.UserHomeDir()
	}
	a.flags = globalFlags()
	a.document = ""
	a.deps = nil
	a.errStyles = nil
}

func globalFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("podded", pflag.ContinueOnError)
	flags.SetInterspersed(false)
	flags.Usage = func() {}
	flags.String("log-level", "", "log level (debug, info, warn, error, disabled)")
	flags.Bool("log-json", false, "write logs as JSON")
	flags.String("color", "", "colored output (auto, always, never)")
	flags.String("runtime", "", "container runtime binary used by status; document templates name their own")
	flags.String("quadlet-dir", "", "directory quadlet units are installed to")
	flags.String("editor", "", "editor command line")
	flags.String("config", "", "configuration file")
	flags.String("env-file", "", "dotenv file loaded before the configuration")
	return flags
}

// route splits `[FLAGS] DOCUMENT [FLAGS] COMMAND [ARGS]` into the document
// and the arguments handed to cobra. Commands that take no document are
// recognized in the document position.
func (a *App) route(args []string) ([]string, error) {
	rest, help, err := a.parseFlags(args)
	if err != nil || help {
		return []string{"help"}, err
	}
	if len(rest) == 0 {
		return []string{"help"}, nil
	}
	if name := strings.ToLower(rest[0]); rootCommands[name] {
		return append([]string{name}, rest[1:]...), nil
	}
	a.document = rest[0]
	rest, help, err = a.parseFlags(rest[1:])
	if err != nil || help || len(rest) == 0 {
		return []string{"help"}, err
	}
	return append([]string{strings.ToLower(rest[0])}, rest[1:]...), nil
}

func (a *App) parseFlags(args []string) ([]string, bool, error) {
	if err := a.flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, core.NewArgumentError("%v", err)
	}
	return a.flags.Args(), false, nil
}

func (a *App) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "podded DOCUMENT COMMAND [ARGS...]",
		Short: "Keep a podman container definition in one self-updating file",
		Long: `podded drives podman from a single executable document that stores
its own Containerfile (BUILD) and run arguments (COMMAND).

Make the document executable with "#!/usr/bin/env podded" and run it as
./DOCUMENT COMMAND, or call podded DOCUMENT COMMAND.`,
		Args:              cobra.ArbitraryArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return core.NewArgumentError("Unknown command: %s", args[0])
		},
	}
	root.SetIn(a.Stdio.In)
	root.SetOut(a.Stdio.Out)
	root.SetErr(a.Stdio.Err)
	root.PersistentFlags().AddFlagSet(a.flags)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return core.NewArgumentError("%v", err)
	})
	root.AddCommand(
		a.buildCommand(),
		a.buildCopyCommand(),
		a.commandCommand(),
		a.runCommand(false),
		a.runCommand(true),
		a.allCommand(false),
		a.allCommand(true),
		a.editCommand(),
		a.lockCommand(),
		a.clearCommand(),
		a.printCommand(),
		a.copyCommand(),
		a.newCommand(),
		a.initCommand(),
		a.serviceCommand(uc.ActionStatus, "Show the container and the systemd service"),
		a.serviceCommand(uc.ActionEnable, "Install the quadlet unit and start the service"),
		a.serviceCommand(uc.ActionDisable, "Stop the service and remove the quadlet unit"),
		a.serviceCommand(uc.ActionQuadlet, "Print the quadlet unit without installing it"),
		a.stopCommand(),
		a.attachCommand(),
		a.execCommand(),
		a.versionCommand(),
	)
	return root
}

// setup loads the configuration and builds the use case dependencies before
// any command runs.
func (a *App) setup(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if err := config.LoadEnvFile(a.envFile()); err != nil {
		return core.NewArgumentError("%v", err)
	}
	cfg, err := config.NewService().Load(ctx,
		config.NewYAMLProvider(a.Fs, a.configPath()),
		config.NewCLIProvider(a.changedFlags()),
	)
	if err != nil {
		return core.NewValidationError("", err, "invalid configuration")
	}
	ctx, log := logger.SetupLogger(ctx, cfg.Log.Level, cfg.Log.JSON, a.Stdio.Err)
	ctx = config.ContextWithConfig(ctx, cfg)
	cmd.SetContext(ctx)
	a.errStyles = helpers.NewStyles(a.Stdio.Err, helpers.ShouldUseColor(cfg.CLI.Color, a.Stdio.Err))
	a.deps = a.buildDeps(cfg)
	log.Debug("Command ready", "command", cmd.Name(), "document", a.document, "build", version.Get().String())
	return nil
}

func (a *App) buildDeps(cfg *config.Config) *uc.Deps {
	runner := a.Runner
	if runner == nil {
		runner = runtime.NewExecRunner()
	}
	editor := a.Editor
	if editor == nil {
		editor = runtime.NewEditor(cfg.Editor.Command, runner, a.Stdio)
	}
	prompter := a.Prompter
	if prompter == nil {
		interactive := cfg.CLI.Interactive && helpers.IsInteractive(a.Stdio.In, a.Stdio.Out)
		prompter = runtime.NewPrompter(a.Stdio.In, a.Stdio.Out, interactive)
	}
	fetcher := a.Fetcher
	if fetcher == nil {
		fetcher = update.NewHTTPFetcher(cfg.Update.Timeout, version.UserAgent())
	}
	styles := helpers.NewStyles(a.Stdio.Out, helpers.ShouldUseColor(cfg.CLI.Color, a.Stdio.Out))
	return &uc.Deps{
		Store:         script.NewStore(a.Fs, nil),
		Runner:        runner,
		Editor:        editor,
		Prompter:      prompter,
		Updater:       update.NewUpdater(fetcher, cfg.Update.URL, nil),
		Stdio:         a.Stdio,
		RuntimeBinary: cfg.Runtime.Binary,
		Manager:       compose.ServiceManager{Binary: cfg.Service.Binary, Scope: cfg.Service.Scope},
		QuadletDir:    cfg.Quadlet.Dir,
		Home:          a.Home,
		Version:       version.Version,
		RenderDiff:    styles.RenderDiff,
	}
}

// changedFlags collects the global flags set on the command line, before or
// after the document.
func (a *App) changedFlags() map[string]any {
	values := make(map[string]any)
	a.flags.VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			values[f.Name] = f.Value.String()
		}
	})
	return values
}

func (a *App) flag(name string) string {
	f := a.flags.Lookup(name)
	if f == nil || !f.Changed {
		return ""
	}
	return f.Value.String()
}

func (a *App) configPath() string {
	if path := a.flag("config"); path != "" {
		return path
	}
	return config.DefaultPath(a.Getenv)
}

// envFile is --env-file, else the .env next to the document.
func (a *App) envFile() string {
	if path := a.flag("env-file"); path != "" {
		return path
	}
	if a.document == "" {
		return ""
	}
	return filepath.Join(filepath.Dir(a.document), ".env")
}

func (a *App) report(err error) int {
	cliErr := helpers.Classify(err)
	if cliErr == nil {
		return helpers.ExitOK
	}
	styles := a.errStyles
	if styles == nil {
		styles = helpers.NewStyles(a.Stdio.Err, false)
	}
	fmt.Fprintln(a.Stdio.Err, styles.RenderError(cliErr))
	return cliErr.Code
}
