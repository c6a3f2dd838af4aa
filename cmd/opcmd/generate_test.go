// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/opcmd/opcmd/internal/catalog"
	"github.com/opcmd/opcmd/internal/config"
	"github.com/opcmd/opcmd/internal/testutil"
	"github.com/opcmd/opcmd/pkg/opcmd"
)

type generated struct {
	Args     []string          `json:"args"`
	Env      map[string]string `json:"env"`
	Warnings []string          `json:"warnings"`
}

func generateJSON(t *testing.T, configDir string, args ...string) (generated, string) {
	t.Helper()
	stdout, stderr, err := runCLI(t, configDir, append([]string{"generate", "--format", "json"}, args...)...)
	if err != nil {
		t.Fatalf("generate %v: %v\nstderr: %s", args, err, stderr)
	}
	var got generated
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("invalid JSON output %q: %v", stdout, err)
	}
	return got, stderr
}

func TestGenerate_JSON(t *testing.T) {
	t.Parallel()

	dir := writeDefinitions(t, map[string]string{"train.yaml": trainYAML})

	got, _ := generateJSON(t, "",
		filepath.Join(dir, "train.yaml"),
		"--flag", "learning_rate=0.01",
		"--flag", "debug=true",
		"--flag", "seed=7",
		"--flag", "epochs",
		"--param", "run_dir=/runs/42",
	)

	want := generated{
		Args: []string{"python", "train.py", "--cfg", "/runs/42/cfg.yaml", "--debug", "--lr", "0.01"},
		Env: map[string]string{
			"MODE":       "train",
			"LR":         "0.01",
			"FLAG_DEBUG": "true",
			"FLAG_SEED":  "7",
		},
		Warnings: []string{},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("generate output mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerate_NamedDefinition(t *testing.T) {
	t.Parallel()

	first := writeDefinitions(t, map[string]string{"serve.yaml": "args: [serve, first]\n"})
	second := writeDefinitions(t, map[string]string{"serve.json": `{"args": ["serve", "second"]}`})

	got, _ := generateJSON(t, "", "serve", "--search-path", first, "--search-path", second)
	if diff := cmp.Diff([]string{"serve", "first"}, got.Args); diff != "" {
		t.Errorf("Args mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerate_ConfigSearchPath(t *testing.T) {
	t.Parallel()

	defs := writeDefinitions(t, map[string]string{"serve.cue": `args: ["serve", "--port", "80"]` + "\n"})
	cfgDir := t.TempDir()
	testutil.WriteFile(t, cfgDir, "config.cue", "search_path: ["+jsonString(defs)+"]\n")

	got, _ := generateJSON(t, cfgDir, "serve")
	if diff := cmp.Diff([]string{"serve", "--port", "80"}, got.Args); diff != "" {
		t.Errorf("Args mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerate_FlagsAndParamsFiles(t *testing.T) {
	t.Parallel()

	dir := writeDefinitions(t, map[string]string{
		"train.yaml":  trainYAML,
		"flags.yaml":  "learning_rate: 0.5\nbatch: 32\nepochs: null\n",
		"params.env":  "run_dir=/from/file\n",
		"params2.env": "run_dir=/from/second\n",
	})

	got, _ := generateJSON(t, "",
		filepath.Join(dir, "train.yaml"),
		"--flags-file", filepath.Join(dir, "flags.yaml"),
		"--flag", "learning_rate=0.1",
		"--params-file", filepath.Join(dir, "params.env"),
		"--params-file", filepath.Join(dir, "params2.env"),
	)

	wantArgs := []string{"python", "train.py", "--cfg", "/from/second/cfg.yaml", "--batch", "32", "--lr", "0.1"}
	if diff := cmp.Diff(wantArgs, got.Args); diff != "" {
		t.Errorf("Args mismatch (-want +got):\n%s", diff)
	}
	if got.Env["LR"] != "0.1" || got.Env["FLAG_BATCH"] != "32" {
		t.Errorf("Env = %v, want LR=0.1 and FLAG_BATCH=32", got.Env)
	}
	if _, ok := got.Env["FLAG_EPOCHS"]; ok {
		t.Error("absent flag from flags file should not be exported")
	}
}

func TestGenerate_ShadowedFlagWarning(t *testing.T) {
	t.Parallel()

	dir := writeDefinitions(t, map[string]string{"job.yaml": "args: [train, --timeout, \"10\", __flag_args__]\n"})

	got, stderr := generateJSON(t, "", filepath.Join(dir, "job.yaml"), "--flag", "timeout=30")
	if diff := cmp.Diff([]string{"train", "--timeout", "10"}, got.Args); diff != "" {
		t.Errorf("Args mismatch (-want +got):\n%s", diff)
	}
	if len(got.Warnings) != 1 || !strings.Contains(got.Warnings[0], "timeout=30") {
		t.Errorf("Warnings = %v, want one shadow warning", got.Warnings)
	}
	if !strings.Contains(stderr, "ignoring flag") {
		t.Errorf("stderr %q does not contain the logged warning", stderr)
	}

	// Raising the log level silences the logger but not the result.
	got, stderr = generateJSON(t, "", filepath.Join(dir, "job.yaml"), "--flag", "timeout=30", "--log-level", "error")
	if strings.Contains(stderr, "ignoring flag") {
		t.Errorf("stderr %q should be empty at error level", stderr)
	}
	if len(got.Warnings) != 1 {
		t.Errorf("Warnings = %v, want one", got.Warnings)
	}
}

func TestGenerate_OutputFormats(t *testing.T) {
	t.Parallel()

	dir := writeDefinitions(t, map[string]string{
		"echo.yaml": "args: [echo, \"hello world\", __flag_args__]\nenv:\n  GREETING: hi there\n",
	})
	path := filepath.Join(dir, "echo.yaml")

	tests := []struct {
		format string
		want   string
	}{
		{"args", "echo\nhello world\n--n\n1\n"},
		{"shell", "env 'FLAG_N=1' 'GREETING=hi there' echo 'hello world' --n 1\n"},
		{"dotenv", "FLAG_N=1\nGREETING=\"hi there\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			t.Parallel()
			stdout, stderr, err := runCLI(t, "", "generate", path, "--flag", "n=1", "--format", tt.format)
			if err != nil {
				t.Fatalf("generate: %v\nstderr: %s", err, stderr)
			}
			if diff := cmp.Diff(tt.want, stdout); diff != "" {
				t.Errorf("output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGenerate_TextFormat(t *testing.T) {
	t.Parallel()

	dir := writeDefinitions(t, map[string]string{"run.yaml": "args: [run]\nenv:\n  MODE: fast\n"})

	stdout, _, err := runCLI(t, "", "generate", filepath.Join(dir, "run.yaml"))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for _, want := range []string{"Command", "run", "Environment", "MODE", "fast"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("text output %q does not contain %q", stdout, want)
		}
	}
}

func TestGenerate_Errors(t *testing.T) {
	t.Parallel()

	dir := writeDefinitions(t, map[string]string{
		"train.yaml": trainYAML,
		"bad.yaml":   "flags:\n  lr: oops\n",
	})
	train := filepath.Join(dir, "train.yaml")

	tests := []struct {
		name     string
		args     []string
		wantErr  error
		wantCode int
	}{
		{
			name:     "unresolved reference",
			args:     []string{train},
			wantErr:  opcmd.ErrUnresolvedReference,
			wantCode: exitInvalidDefinition,
		},
		{
			name:     "collection flag value",
			args:     []string{train, "--param", "run_dir=x", "--flag", "layers=[1, 2]"},
			wantErr:  opcmd.ErrUnsupportedType,
			wantCode: exitInvalidDefinition,
		},
		{
			name:     "malformed definition",
			args:     []string{filepath.Join(dir, "bad.yaml")},
			wantErr:  opcmd.ErrMalformedConfig,
			wantCode: exitInvalidDefinition,
		},
		{
			name:     "unknown definition name",
			args:     []string{"missing", "--search-path", dir},
			wantErr:  catalog.ErrDefinitionNotFound,
			wantCode: exitFailure,
		},
		{
			name:     "empty flag name",
			args:     []string{train, "--flag", "=1"},
			wantErr:  ErrInvalidAssignment,
			wantCode: exitFailure,
		},
		{
			name:     "param without value",
			args:     []string{train, "--param", "run_dir"},
			wantErr:  ErrInvalidAssignment,
			wantCode: exitFailure,
		},
		{
			name:     "unknown output format",
			args:     []string{train, "--format", "xml"},
			wantErr:  config.ErrInvalidOutputFormat,
			wantCode: exitFailure,
		},
		{
			name:     "invalid log level",
			args:     []string{train, "--log-level", "loud"},
			wantErr:  config.ErrInvalidLogLevel,
			wantCode: exitFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, _, err := runCLI(t, "", append([]string{"generate"}, tt.args...)...)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("generate error = %v, want %v", err, tt.wantErr)
			}
			var exitErr *ExitError
			if !errors.As(err, &exitErr) {
				t.Fatalf("error %T is not an *ExitError", err)
			}
			if exitErr.Code != tt.wantCode {
				t.Errorf("exit code = %d, want %d", exitErr.Code, tt.wantCode)
			}
		})
	}
}

func TestGenerate_VerboseErrorShowsHelp(t *testing.T) {
	t.Parallel()

	dir := writeDefinitions(t, map[string]string{"train.yaml": trainYAML})

	_, stderr, err := runCLI(t, "", "generate", filepath.Join(dir, "train.yaml"), "-v")
	if err == nil {
		t.Fatal("generate should fail without run_dir")
	}
	for _, want := range []string{"--param name=value", "Error chain:", "Unresolved reference"} {
		if !strings.Contains(stderr, want) {
			t.Errorf("stderr does not contain %q:\n%s", want, stderr)
		}
	}
}

func jsonString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
