package main

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"lexgen/internal/lexspec"
	"lexgen/internal/regexlib"
)

type patternOptions struct {
	Alphabet string `placeholder:"RUNES" help:"Input alphabet; defaults to the runes the pattern uses"`
	Kind     string `help:"Token kind carried by the pattern's final states"`
}

func (p patternOptions) options(ctx *Context) []regexlib.Option {
	opts := []regexlib.Option{regexlib.WithPriorities(ctx.cfg.Priorities)}
	if p.Alphabet != "" {
		opts = append(opts, regexlib.WithAlphabet(regexlib.ParseAlphabet(p.Alphabet)))
	}
	if p.Kind != "" {
		opts = append(opts, regexlib.WithKind(p.Kind))
	}
	return opts
}

func (p patternOptions) compile(ctx *Context, pattern string) (*regexlib.Regex, error) {
	re, err := regexlib.Compile(pattern, p.options(ctx)...)
	if err != nil {
		return nil, err
	}
	ctx.logger.Debug("compiled pattern",
		"pattern", pattern,
		"nfa_states", re.NFA().Arena().Len(),
		"dfa_states", len(re.RawDFA().States),
		"min_states", len(re.DFA().States),
	)
	return re, nil
}

type matchCommand struct {
	patternOptions
	Re     string   `name:"re" required:"" placeholder:"PATTERN" help:"Pattern to compile"`
	Show   bool     `help:"Print the original and minimized DFA first"`
	Inputs []string `arg:"" optional:"" help:"Strings to test; read one per line from stdin when absent"`
}

func (c *matchCommand) Run(ctx *Context) error {
	re, err := c.compile(ctx, c.Re)
	if err != nil {
		return err
	}
	if c.Show {
		fmt.Fprintf(ctx.out, "Testing Regex: %s\n\n--- Original DFA ---\n", c.Re)
		if err := regexlib.Visualize(ctx.out, re.RawDFA()); err != nil {
			return err
		}
		fmt.Fprintln(ctx.out, "--- Minimized DFA ---")
		if err := regexlib.Visualize(ctx.out, re.DFA()); err != nil {
			return err
		}
	}

	report := func(s string) {
		verdict := "Rejected"
		if re.Match(s) {
			verdict = "Accepted"
		}
		fmt.Fprintf(ctx.out, "String '%s': %s\n", s, verdict)
	}
	if len(c.Inputs) > 0 {
		for _, s := range c.Inputs {
			report(s)
		}
		return nil
	}
	sc := bufio.NewScanner(ctx.in)
	for sc.Scan() {
		report(sc.Text())
	}
	return sc.Err()
}

type tokenizeCommand struct {
	Rules string `required:"" type:"existingfile" placeholder:"FILE" help:"Rule file"`
	Input string `arg:"" optional:"" default:"-" help:"Input file, - for stdin"`
}

func (c *tokenizeCommand) Run(ctx *Context) error {
	lx, err := loadLexer(ctx, c.Rules)
	if err != nil {
		return err
	}
	var data []byte
	if c.Input == "-" {
		data, err = io.ReadAll(ctx.in)
	} else {
		data, err = os.ReadFile(c.Input)
	}
	if err != nil {
		return err
	}

	sc := lx.Scanner(string(data))
	for {
		tok, err := sc.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%s: %w", c.Input, err)
		}
		fmt.Fprintf(ctx.out, "%d:%d\t%s\t%q\n", tok.Line, tok.Column, tok.Kind, tok.Lexeme)
	}
}

func loadLexer(ctx *Context, path string) (*lexspec.Lexer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	spec, err := lexspec.Parse(f, path)
	if err != nil {
		return nil, err
	}
	return lexspec.Build(spec,
		lexspec.WithLogger(ctx.logger),
		lexspec.WithIgnored(ctx.cfg.Ignored...),
	)
}

type dumpCommand struct {
	patternOptions
	Re      string `name:"re" xor:"source" placeholder:"PATTERN" help:"Pattern to compile"`
	Rules   string `xor:"source" type:"existingfile" placeholder:"FILE" help:"Rule file"`
	Format  string `enum:"text,dot,table" default:"text" help:"Output format (text, dot, table)"`
	Raw     bool   `help:"Dump the DFA before minimization"`
	NFA     bool   `name:"nfa" help:"Dump the Thompson NFA of --re (dot only)"`
	Postfix bool   `help:"Print the postfix form of --re first"`
	Output  string `short:"o" placeholder:"FILE" help:"Write to FILE instead of stdout"`
	PNG     bool   `name:"png" help:"Render a PNG into --output with Graphviz dot (dot format only)"`
}

func (c *dumpCommand) Run(ctx *Context) error {
	switch {
	case c.Re == "" && c.Rules == "":
		return errors.New("one of --re or --rules is required")
	case c.Rules != "" && (c.NFA || c.Postfix):
		return errors.New("--nfa and --postfix need --re")
	case c.NFA && c.Format != "dot":
		return errors.New("--nfa needs --format dot")
	case c.PNG && (c.Format != "dot" || c.Output == ""):
		return errors.New("--png needs --format dot and --output")
	}

	var buf bytes.Buffer
	if err := c.render(ctx, &buf); err != nil {
		return err
	}
	switch {
	case c.PNG:
		cmd := exec.Command("dot", "-Tpng", "-o", c.Output)
		cmd.Stdin = &buf
		cmd.Stderr = ctx.errOut
		if err := cmd.Run(); err != nil {
			return fmt.Errorf("dot failed: %w", err)
		}
		ctx.logger.Info("PNG written", "file", c.Output)
		return nil
	case c.Output != "":
		return os.WriteFile(c.Output, buf.Bytes(), 0o644)
	default:
		_, err := buf.WriteTo(ctx.out)
		return err
	}
}

// render writes the requested automaton to w. The postfix form, when asked
// for, always goes to stdout.
func (c *dumpCommand) render(ctx *Context, w io.Writer) error {
	var raw, minimized *regexlib.DFA
	if c.Rules != "" {
		lx, err := loadLexer(ctx, c.Rules)
		if err != nil {
			return err
		}
		raw, minimized = lx.RawDFA(), lx.DFA()
	} else {
		re, err := c.compile(ctx, c.Re)
		if err != nil {
			return err
		}
		if c.Postfix {
			post, err := regexlib.ToPostfix(c.Re)
			if err != nil {
				return err
			}
			fmt.Fprintf(ctx.out, "postfix: %s\n", regexlib.FormatPostfix(post))
		}
		if c.NFA {
			return regexlib.ExportDOT(w, re.NFA())
		}
		raw, minimized = re.RawDFA(), re.DFA()
	}

	d := minimized
	if c.Raw {
		d = raw
	}
	switch c.Format {
	case "dot":
		return regexlib.ExportDOT(w, d)
	case "table":
		return regexlib.WriteTable(w, d)
	default:
		return regexlib.Visualize(w, d)
	}
}
