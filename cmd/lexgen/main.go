// Command lexgen compiles regular expressions to minimal DFAs, tests strings
// against them and tokenizes input with multi-rule lexer definitions.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"lexgen/internal/config"
)

// Version is set at build time via -ldflags.
var Version = "dev"

type CLI struct {
	Config  string `name:"config" placeholder:"PATH" env:"LEXGEN_CONFIG" help:"Configuration file (YAML or JSON)"`
	LogJSON bool   `name:"log-json" help:"Log JSON lines instead of text"`
	Verbose bool   `short:"v" help:"Log at debug level"`

	Match    matchCommand    `cmd:"" help:"Report whether strings are in a pattern's language"`
	Tokenize tokenizeCommand `cmd:"" help:"Split input into tokens with a rule file"`
	Dump     dumpCommand     `cmd:"" help:"Print the automata built for a pattern or a rule file"`
	Repl     replCommand     `cmd:"" help:"Try patterns interactively"`
	Version  struct{}        `cmd:"" help:"Print the version"`
}

// Context is handed to every command.
type Context struct {
	cfg    config.Config
	logger *slog.Logger
	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "lexgen: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("lexgen"),
		kong.Description("Regex to minimal DFA lexer generator."),
		kong.Writers(stdout, stderr),
		kong.UsageOnError(),
	)
	if err != nil {
		return err
	}
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load(cli.Config)
	if err != nil {
		return fmt.Errorf("command line options: %w", err)
	}
	if cli.LogJSON {
		cfg.LogJSON = true
	}
	if cli.Verbose {
		cfg.LogLevel = "debug"
	}
	logger := newLogger(stderr, cfg)
	logger.Debug("starting lexgen", "version", Version, "command", kongCtx.Command(), "config", cli.Config)

	if kongCtx.Command() == "version" {
		fmt.Fprintln(stdout, "lexgen", Version)
		return nil
	}
	return kongCtx.Run(&Context{cfg: cfg, logger: logger, in: stdin, out: stdout, errOut: stderr})
}

func newLogger(w io.Writer, cfg config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(cfg.LogLevel)}
	if cfg.LogJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
