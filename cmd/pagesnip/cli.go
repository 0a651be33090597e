package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/pagesnip"
	"github.com/fwojciec/pagesnip/batch"
	"github.com/fwojciec/pagesnip/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	DB     *sqlite.DB

	Presets  pagesnip.PresetService
	History  pagesnip.HistoryService
	Settings pagesnip.SettingsService

	// Page commands only.
	Fetcher   pagesnip.Fetcher
	Parser    pagesnip.Parser
	Locator   pagesnip.Locator
	Converter pagesnip.ElementConverter
	Batch     *batch.Runner

	// Captures, if set, receives confirmed selections instead of stdout.
	Captures pagesnip.CaptureWriter

	// Logger is nil unless verbose output was requested.
	Logger *slog.Logger
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Timeout    time.Duration `default:"30s" help:"Page load timeout"`
	Width      int           `default:"1280" help:"Viewport width in pixels"`
	Height     int           `default:"800" help:"Viewport height in pixels"`
	PresetFile string        `name:"presets" type:"path" placeholder:"FILE" help:"YAML file with extra preset rules"`
	Out        string        `short:"o" type:"path" placeholder:"DIR" help:"Write captures under DIR instead of printing them"`
	Verbose    bool          `short:"v" help:"Log fetches and located regions to stderr"`
	Static     bool          `help:"Fetch pages over plain HTTP without a browser. Pages have no layout, so only explicit paths can be applied"`

	Smart   SmartCmd   `cmd:"" help:"Locate and capture the main content of pages"`
	Apply   ApplyCmd   `cmd:"" help:"Capture the element at a known path"`
	Session SessionCmd `cmd:"" help:"Run an interactive selection session over JSON lines"`
	Presets PresetsCmd `cmd:"" help:"Manage preset rules"`
	History HistoryCmd `cmd:"" help:"List captured selections"`
	Config  ConfigCmd  `cmd:"" help:"Read and change settings"`
}

// SmartCmd is the "smart" subcommand.
type SmartCmd struct {
	URLs        []string `arg:"" name:"url" help:"Page URLs"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent page limit"`
}

// ApplyCmd is the "apply" subcommand.
type ApplyCmd struct {
	URL  string `arg:"" help:"Page URL"`
	Path string `arg:"" optional:"" help:"Element path"`
	Last bool   `help:"Use the most recent path captured from the page"`
}

// SessionCmd is the "session" subcommand.
type SessionCmd struct {
	URL string `arg:"" help:"Page URL"`
}

// PresetsCmd groups the preset subcommands.
type PresetsCmd struct {
	List   PresetsListCmd   `cmd:"" default:"1" help:"List stored preset rules"`
	Add    PresetsAddCmd    `cmd:"" help:"Store a preset rule"`
	Delete PresetsDeleteCmd `cmd:"" help:"Delete a preset rule"`
	Import PresetsImportCmd `cmd:"" help:"Store every rule of a YAML file"`
}

// PresetsListCmd is the "presets list" subcommand.
type PresetsListCmd struct{}

// PresetsAddCmd is the "presets add" subcommand.
type PresetsAddCmd struct {
	Name      string   `arg:"" help:"Rule name"`
	Patterns  []string `short:"p" name:"pattern" required:"" help:"URL substring the rule applies to (repeatable)"`
	Selectors []string `short:"s" name:"selector" required:"" help:"Content selector, tried in order (repeatable)"`
	Priority  int      `help:"Rules with higher priority are tried first"`
}

// PresetsDeleteCmd is the "presets delete" subcommand.
type PresetsDeleteCmd struct {
	ID string `arg:"" help:"Rule ID"`
}

// PresetsImportCmd is the "presets import" subcommand.
type PresetsImportCmd struct {
	File string `arg:"" type:"existingfile" help:"YAML rule file"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	URL   string `help:"Only show captures of this page"`
	Limit int    `short:"n" default:"20" help:"Maximum number of entries"`
}

// ConfigCmd groups the settings subcommands.
type ConfigCmd struct {
	Get ConfigGetCmd `cmd:"" help:"Print a setting"`
	Set ConfigSetCmd `cmd:"" help:"Change a setting"`
}

// ConfigGetCmd is the "config get" subcommand.
type ConfigGetCmd struct {
	Key string `arg:"" enum:"highlight.outline,highlight.background,debounce.ms" help:"Setting key"`
}

// ConfigSetCmd is the "config set" subcommand.
type ConfigSetCmd struct {
	Key   string `arg:"" enum:"highlight.outline,highlight.background,debounce.ms" help:"Setting key"`
	Value string `arg:"" help:"New value"`
}
