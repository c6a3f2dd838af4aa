// SPDX-License-Identifier: MPL-2.0

package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"mvdan.cc/sh/v3/syntax"

	"github.com/opcmd/opcmd/internal/config"
	"github.com/opcmd/opcmd/pkg/opcmd"
)

// ErrUnrepresentable is returned for a value no dotenv quoting round-trips.
var ErrUnrepresentable = errors.New("value cannot be written as dotenv")

// document is the JSON form of a generated command.
type document struct {
	Args     []string          `json:"args"`
	Env      map[string]string `json:"env"`
	Warnings []string          `json:"warnings"`
}

// Render writes res to w in the given format.
func Render(w io.Writer, res *opcmd.Result, format config.OutputFormat) error {
	var (
		out string
		err error
	)
	switch format {
	case config.OutputText:
		out, err = Text(res)
	case config.OutputJSON:
		out, err = JSON(res)
	case config.OutputShell:
		out, err = Shell(res)
	case config.OutputDotenv:
		out, err = Dotenv(res.Env)
	case config.OutputArgs:
		out = Args(res.Args)
	default:
		_, errs := format.IsValid()
		return errs[0]
	}
	if err != nil {
		return err
	}
	if out != "" && !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	_, err = io.WriteString(w, out)
	return err
}

// Text renders a styled listing of the command line, environment and
// warnings. Colors are dropped automatically when w is not a terminal.
func Text(res *opcmd.Result) (string, error) {
	line, err := quoteWords(res.Args)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("Command"))
	b.WriteString("\n")
	if line == "" {
		b.WriteString(itemStyle.Render(SubtitleStyle.Render("(no arguments)")))
	} else {
		b.WriteString(itemStyle.Render(CmdStyle.Render(line)))
	}
	b.WriteString("\n")

	if len(res.Env) > 0 {
		b.WriteString(sectionStyle.Render("Environment"))
		b.WriteString("\n")
		for _, k := range sortedKeys(res.Env) {
			b.WriteString(itemStyle.Render(envKeyStyle.Render(k) + "=" + res.Env[k]))
			b.WriteString("\n")
		}
	}

	if len(res.Warnings) > 0 {
		b.WriteString(sectionStyle.Render("Warnings"))
		b.WriteString("\n")
		for _, w := range res.Warnings {
			b.WriteString(itemStyle.Render(WarningStyle.Render("! " + w.Error())))
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}

// JSON renders {"args": [...], "env": {...}, "warnings": [...]}.
func JSON(res *opcmd.Result) (string, error) {
	doc := document{
		Args:     res.Args,
		Env:      res.Env,
		Warnings: make([]string, 0, len(res.Warnings)),
	}
	if doc.Args == nil {
		doc.Args = []string{}
	}
	if doc.Env == nil {
		doc.Env = map[string]string{}
	}
	for _, w := range res.Warnings {
		doc.Warnings = append(doc.Warnings, w.Error())
	}
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding JSON: %w", err)
	}
	return string(out), nil
}

// Shell renders a single bash command line. The environment is
// applied through env(1); every word is quoted only as far as needed.
func Shell(res *opcmd.Result) (string, error) {
	words := make([]string, 0, len(res.Env)+len(res.Args)+1)
	if len(res.Env) > 0 {
		words = append(words, "env")
		for _, k := range sortedKeys(res.Env) {
			words = append(words, k+"="+res.Env[k])
		}
	}
	words = append(words, res.Args...)
	return quoteWords(words)
}

// Dotenv renders env as sorted KEY=value lines readable by godotenv.Load.
//
// godotenv reads single-quoted values raw but loses a double-quoted value's
// trailing escaped quote or backslash, so values holding '"' or '\' are
// single-quoted when they can be. A value that needs both forms fails with
// ErrUnrepresentable.
func Dotenv(env map[string]string) (string, error) {
	plain := make(map[string]string, len(env))
	var lines []string
	for k, v := range env {
		switch {
		case strings.ContainsAny(v, `"\`) && !strings.Contains(v, "'"):
			lines = append(lines, k+"='"+v+"'")
		case strings.HasSuffix(v, `"`) || strings.HasSuffix(v, `\`):
			return "", fmt.Errorf("encoding dotenv: %w: %s ends in %q and contains a single quote", ErrUnrepresentable, k, v[len(v)-1:])
		case isRewrittenInt(v):
			// godotenv.Marshal would rewrite "007" as 7.
			lines = append(lines, fmt.Sprintf("%s=%q", k, v))
		default:
			plain[k] = v
		}
	}
	out, err := godotenv.Marshal(plain)
	if err != nil {
		return "", fmt.Errorf("encoding dotenv: %w", err)
	}
	if out != "" {
		lines = append(lines, strings.Split(out, "\n")...)
	}
	slices.Sort(lines)
	return strings.Join(lines, "\n"), nil
}

func isRewrittenInt(v string) bool {
	n, err := strconv.Atoi(v)
	return err == nil && strconv.Itoa(n) != v
}

// Args renders one argument per line.
func Args(args []string) string {
	return strings.Join(args, "\n")
}

func quoteWords(words []string) (string, error) {
	quoted := make([]string, len(words))
	for i, word := range words {
		q, err := syntax.Quote(word, syntax.LangBash)
		if err != nil {
			return "", fmt.Errorf("cannot quote argument %d: %w", i, err)
		}
		quoted[i] = q
	}
	return strings.Join(quoted, " "), nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
