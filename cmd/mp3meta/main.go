package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/handiism/mp3meta/internal/config"
	"github.com/handiism/mp3meta/internal/pipeline"
	"github.com/urfave/cli/v2"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFE66D"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#95E1A3"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#A8DADC"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C757D"))
)

func main() {
	app := &cli.App{
		Name:      "mp3meta",
		Usage:     "Transliterate Cyrillic ID3 tags to Latin script",
		ArgsUsage: "[directory]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "root", Aliases: []string{"r"}, Usage: "directory to scan (overrides config)"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "directory to write rewritten files to (default: root)"},
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "path to config file"},
			&cli.StringFlag{Name: "script", Aliases: []string{"s"}, Usage: "source script: ukrainian or russian"},
			&cli.StringFlag{Name: "legacy-charset", Usage: "re-decode ISO-8859-1 frames as windows-1251, koi8-r or koi8-u"},
			&cli.IntFlag{Name: "workers", Aliases: []string{"j"}, Usage: "number of files processed concurrently"},
			&cli.BoolFlag{Name: "sanitize", Usage: "replace characters that are invalid in file names"},
			&cli.BoolFlag{Name: "playlist", Usage: "create a playlist of the rewritten files"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "show verbose output"},
			&cli.BoolFlag{Name: "dry-run", Usage: "show what would be written without writing"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	settings, err := loadSettings(c)
	if err != nil {
		return err
	}
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	// Handle interrupts
	ctx, cancel := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	p := pipeline.NewDefault(settings, func(event pipeline.ProgressEvent) {
		if event.Level == pipeline.LevelVerbose && !settings.Verbose {
			return
		}
		fmt.Println(render(event))
	})

	fmt.Println(titleStyle.Render("mp3meta"))
	fmt.Println(dimStyle.Render(fmt.Sprintf("%s -> %s (%s)", settings.RootDirectory, settings.OutputDir(), settings.Script())))
	fmt.Println()

	if err := p.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return cli.Exit("\nInterrupted, cancelled.", 130)
		}
		// The failure was already reported as an error event.
		return cli.Exit("", 1)
	}

	processed, skipped, total := p.GetProgress()
	fmt.Println()
	fmt.Println(successStyle.Render(fmt.Sprintf("Processed %d/%d files, skipped %d without a tag", processed, total, skipped)))
	return nil
}

// loadSettings reads the config file, if any, and applies flag overrides.
func loadSettings(c *cli.Context) (*config.Settings, error) {
	settings := config.DefaultSettings()
	if path := c.String("config"); path != "" {
		var err error
		settings, err = config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	if c.IsSet("root") {
		settings.RootDirectory = c.String("root")
	} else if c.NArg() > 0 {
		settings.RootDirectory = c.Args().First()
	}
	if c.IsSet("output") {
		settings.OutputDirectory = c.String("output")
	}
	if c.IsSet("script") {
		settings.SourceScript = c.String("script")
	}
	if c.IsSet("legacy-charset") {
		settings.LegacyCharset = c.String("legacy-charset")
	}
	if c.IsSet("workers") {
		settings.Workers = c.Int("workers")
	}
	if c.Bool("sanitize") {
		settings.SanitizeFileNames = true
	}
	if c.Bool("playlist") {
		settings.CreatePlaylist = true
	}
	if c.Bool("verbose") {
		settings.Verbose = true
	}
	settings.DryRun = c.Bool("dry-run")

	return settings, nil
}

func render(event pipeline.ProgressEvent) string {
	switch event.Level {
	case pipeline.LevelError:
		return errorStyle.Render("✗ " + event.Message)
	case pipeline.LevelWarning:
		return warningStyle.Render("! " + event.Message)
	case pipeline.LevelSuccess:
		return successStyle.Render("✓ " + event.Message)
	case pipeline.LevelInfo:
		return infoStyle.Render("› " + event.Message)
	default:
		return dimStyle.Render("  " + event.Message)
	}
}
