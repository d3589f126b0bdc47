package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/termquest/termquest/pkg/console"
	"github.com/termquest/termquest/pkg/game"
	"github.com/termquest/termquest/pkg/logging"
	"github.com/termquest/termquest/pkg/script"
)

var (
	flagLogFile     string
	flagScriptsDir  string
	flagPlayerName  string
	flagNoAltScreen bool
)

// rootCmd runs the interactive split-screen console session.
var rootCmd = &cobra.Command{
	Use:   "termquest",
	Short: "Split-screen terminal console over a toy command engine",
	Long: `Termquest runs a two-pane terminal UI: a scrolling output pane above a
single-line input pane with history and cursor editing. Commands are
dispatched to a small game engine; additional commands can be provided as
Lua scripts in the scripts directory.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSession()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Flags().StringVar(&flagLogFile, "log-file", ".termquest/session.log", "diagnostic log file")
	rootCmd.Flags().StringVar(&flagScriptsDir, "scripts", "scripts", "directory of Lua command scripts")
	rootCmd.Flags().StringVar(&flagPlayerName, "player", "Kieran", "player name")
	rootCmd.Flags().BoolVar(&flagNoAltScreen, "no-alt-screen", false, "stay on the primary screen buffer")

	rootCmd.AddCommand(versionCmd)
}

func runSession() error {
	diag := logging.Open(flagLogFile)
	defer func() {
		if err := diag.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "closing log: %v\n", err)
		}
	}()

	engine := game.NewEngine(flagPlayerName)

	runner := script.NewRunner(diag.Logf)
	defer runner.Close()
	if err := runner.LoadDir(flagScriptsDir); err != nil {
		diag.Logf("scripts: %v", err)
	}
	for _, sc := range runner.Commands() {
		engine.Register(sc.Name(), sc)
		diag.Logf("registered script command %q", sc.Name())
	}

	session, err := console.NewSession(engine,
		console.WithDiagnostics(diag),
		console.WithAltScreen(!flagNoAltScreen),
	)
	if err != nil {
		diag.Logf("session init failed: %v", err)
		return fmt.Errorf("session init: %w", err)
	}

	return session.Run()
}
