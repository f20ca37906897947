package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/manifoldco/promptui"

	"lexgen/internal/regexlib"
)

type replCommand struct {
	patternOptions
}

func (c *replCommand) Run(ctx *Context) error {
	cache, err := regexlib.NewCache(ctx.cfg.CacheSize)
	if err != nil {
		return err
	}
	opts := c.options(ctx)
	compile := func(pattern string) (*regexlib.Regex, error) {
		return cache.Compile(pattern, opts...)
	}

	for {
		patternPrompt := promptui.Prompt{
			Label: "Pattern (empty to quit)",
			Validate: func(s string) error {
				if s == "" {
					return nil
				}
				_, err := compile(s)
				return err
			},
		}
		pattern, err := patternPrompt.Run()
		if done(err) {
			return nil
		}
		if err != nil {
			return err
		}
		if pattern == "" {
			return nil
		}
		re, err := compile(pattern)
		if err != nil {
			return err
		}

		textPrompt := promptui.Prompt{Label: "Text"}
		text, err := textPrompt.Run()
		if done(err) {
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(ctx.out, describe(re, text))
		ctx.logger.Debug("repl", "pattern", pattern, "cached", cache.Len())
	}
}

func done(err error) bool {
	return errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) || errors.Is(err, io.EOF)
}

// describe reports whether text is in re's language and, when it is not,
// which substrings match.
func describe(re *regexlib.Regex, text string) string {
	if re.Match(text) {
		return promptui.Styler(promptui.FGGreen)(fmt.Sprintf("✔ %q accepted (%d states)", text, len(re.DFA().States)))
	}
	matches := re.FindAll(text)
	if len(matches) == 0 {
		return promptui.Styler(promptui.FGRed)(fmt.Sprintf("✘ %q rejected, no match", text))
	}
	parts := make([]string, len(matches))
	for i, m := range matches {
		parts[i] = fmt.Sprintf("%q@%d", text[m.Start:m.End], m.Start)
	}
	return promptui.Styler(promptui.FGYellow)(fmt.Sprintf("✘ %q rejected, matches %s", text, strings.Join(parts, " ")))
}
