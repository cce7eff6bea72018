// Package main provides the entry point for Save State.
// Save State is a small GTK4 application that keeps a Run/Kill toggle pair
// in sync with an XML state file, so the last choice survives a restart.
//
// Usage:
//
//	save-state [options]
//
// Without options the GUI is started. --status, --set and --history operate
// on the state file without opening a window.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/yllada/save-state/cli"
	"github.com/yllada/save-state/common"
	"github.com/yllada/save-state/config"
	"github.com/yllada/save-state/state"
	"github.com/yllada/save-state/ui"
)

// Build-time variables injected via ldflags (-X main.appVersion=x.y.z)
var (
	appVersion = "dev"
	buildTime  = "unknown"
	commitSHA  = "unknown"
)

var (
	// GUI/General flags
	showVersion = flag.Bool("version", false, "Show version and exit")
	verbose     = flag.Bool("verbose", false, "Enable verbose logging")
	showHelp    = flag.Bool("help", false, "Show help message")
	stateFile   = flag.String("state", "", "State file path (overrides config)")
	layoutFile  = flag.String("layout", "", "GtkBuilder layout path (overrides config)")

	// CLI flags
	showStatus   = flag.Bool("status", false, "Print the persisted state")
	setState     = flag.String("set", "", "Write a new state (on|off)")
	historyLimit = flag.Int("history", 0, "Show the last N recorded transitions")
)

func main() {
	flag.Parse()
	os.Exit(run())
}

// run executes the selected mode and returns the process exit code, so
// deferred cleanup runs before main exits.
func run() int {
	if *showHelp {
		cli.PrintHelp()
		return 0
	}

	if *showVersion {
		fmt.Printf("Save State v%s\n", appVersion)
		if buildTime != "unknown" {
			fmt.Printf("  Build:  %s\n", buildTime)
			fmt.Printf("  Commit: %s\n", commitSHA)
		}
		return 0
	}

	logLevel := common.LevelInfo
	if *verbose {
		logLevel = common.LevelDebug
	}

	if err := common.InitLogger(common.LogConfig{
		Level:      logLevel,
		EnableFile: true,
		MaxSizeMB:  5,
		MaxBackups: 5,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not initialize file logging: %v\n", err)
	}
	defer common.CloseLogger()

	cfg, err := config.Load()
	if err != nil {
		common.LogWarn("Using default configuration: %v", err)
		cfg = config.Fallback()
	}
	cfg.Override(*stateFile, *layoutFile)

	history := openHistory(cfg)
	if history != nil {
		defer history.Close()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	setupSignalHandler(cancel)

	if *showStatus || *setState != "" || *historyLimit > 0 {
		return runCLI(ctx, cfg, history)
	}

	common.LogInfo("Starting %s v%s", common.AppName, appVersion)
	app := ui.NewApplication(ctx, common.AppID, appVersion, cfg, history)
	exitCode := app.Run(os.Args[:1])

	if exitCode != 0 {
		common.LogWarn("Application exited with code %d", exitCode)
	}
	return exitCode
}

// openHistory opens the transition journal when enabled. A journal that
// cannot be opened disables history instead of failing startup.
func openHistory(cfg *config.Config) *state.History {
	if !cfg.RecordHistory {
		return nil
	}

	path, err := config.HistoryPath()
	if err != nil {
		common.LogWarn("History disabled: %v", err)
		return nil
	}

	history, err := state.OpenHistory(path)
	if err != nil {
		common.LogWarn("History disabled: %v", err)
		return nil
	}
	return history
}

// runCLI handles command-line interface operations and returns the exit code.
func runCLI(ctx context.Context, cfg *config.Config, history *state.History) int {
	cliApp := cli.New(common.AbsPath(cfg.EffectiveStateFile()), history)

	select {
	case <-ctx.Done():
		common.LogInfo("Operation cancelled before execution")
		return 1
	default:
	}

	var cliErr error

	switch {
	case *setState != "":
		cliErr = cliApp.Set(ctx, *setState)
	case *showStatus:
		cliErr = cliApp.Status()
	case *historyLimit > 0:
		cliErr = cliApp.History(ctx, *historyLimit)
	}

	if cliErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", cliErr)
		return 1
	}
	return 0
}

// setupSignalHandler configures graceful shutdown on SIGINT/SIGTERM.
// The first signal cancels the context, which also quits the GUI; a second
// one gets the default behavior and terminates the process.
func setupSignalHandler(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		signal.Stop(sigChan)
		common.LogInfo("Received signal %v, initiating graceful shutdown...", sig)
		cancel()
	}()
}
