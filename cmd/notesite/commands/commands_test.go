package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/notesite/internal/config"
	"git.home.luguber.info/inful/notesite/internal/foundation/errors"
	"git.home.luguber.info/inful/notesite/internal/render"
	"git.home.luguber.info/inful/notesite/internal/testutil"
)

// runCLI parses args and runs the selected command, returning its stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("notesite"),
		kong.Bind(&Global{Out: &out}),
		kong.BindTo(t.Context(), (*context.Context)(nil)),
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)
	kctx, err := parser.Parse(args)
	if err != nil {
		return out.String(), err
	}
	err = kctx.Run()
	return out.String(), err
}

func TestInitThenCheck(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "notesite.yaml")

	out, err := runCLI(t, "-c", cfg, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "initialized successfully")
	assert.Contains(t, out, "sidebars.yaml")

	_, err = runCLI(t, "-c", cfg, "init")
	require.Error(t, err)

	out, err = runCLI(t, "-c", cfg, "check")
	require.NoError(t, err)
	assert.Contains(t, out, "[metadata-duplicate]")
	assert.Contains(t, out, "4 warnings (should fix)")
}

func TestCheck_JSON(t *testing.T) {
	cfg := testutil.NewProject(t).Write()
	out, err := runCLI(t, "-c", cfg, "check", "--format", "json")
	require.NoError(t, err)

	var report struct {
		Config  string `json:"config"`
		Summary struct {
			Docs     int  `json:"docs"`
			Errors   int  `json:"errors"`
			Warnings int  `json:"warnings"`
			Passed   bool `json:"passed"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, cfg, report.Config)
	assert.Equal(t, 10, report.Summary.Docs)
	assert.Equal(t, 4, report.Summary.Warnings)
	assert.True(t, report.Summary.Passed)
}

func TestCheck_ErrorsExitNonZero(t *testing.T) {
	cfg := testutil.NewProject(t).WithSite(func(s *config.Site) {
		s.ThemeConfig.Algolia.APIKey = "not-hex"
	}).Write()
	metricsFile := filepath.Join(t.TempDir(), "notesite.prom")

	out, err := runCLI(t, "-c", cfg, "check", "--metrics-file", metricsFile)
	require.Error(t, err)
	assert.Contains(t, out, "algolia.api_key")
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
	assert.Equal(t, 2, ExitCode(err, false))

	testutil.NewFileAssertions(t, filepath.Dir(metricsFile)).
		AssertFileContains("notesite.prom", `notesite_check_issues_total{rule="search-credentials",severity="ERROR"} 1`)
}

func TestRender(t *testing.T) {
	cfg := testutil.NewProject(t).Write()
	site := filepath.Join(t.TempDir(), "site")
	db := filepath.Join(t.TempDir(), "history.db")

	out, err := runCLI(t, "-c", cfg, "render", "-o", site, "--year", "2024", "--history", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Rendered 4 files to "+site+" (year 2024)")
	assert.Contains(t, out, "check: 0 error(s), 4 warning(s)")
	testutil.NewFileAssertions(t, site).
		AssertFileExists(render.HugoConfigFile).
		AssertFileExists(render.HeadPartial).
		AssertFileExists(render.SidebarsData).
		AssertFileExists(render.DocSearchFile)

	out, err = runCLI(t, "-c", cfg, "render", "-o", site, "--year", "2024", "--history", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Output unchanged since the previous render")

	out, err = runCLI(t, "history", "--history", db)
	require.NoError(t, err)
	assert.Contains(t, out, "WARNINGS")
	assert.Equal(t, 3, bytes.Count([]byte(out), []byte("\n")), out)
}

func TestRender_InvalidYear(t *testing.T) {
	cfg := testutil.NewProject(t).Write()
	_, err := runCLI(t, "-c", cfg, "render", "-o", t.TempDir(), "--year", "12")
	require.Error(t, err)
	assert.Equal(t, 2, ExitCode(err, false))
}

func TestVerify(t *testing.T) {
	cfg := testutil.NewProject(t).Write()
	site := filepath.Join(t.TempDir(), "site")

	out, err := runCLI(t, "-c", cfg, "verify", "--year", "2024")
	require.NoError(t, err)
	assert.Contains(t, out, "Deterministic: 4 files")

	_, err = runCLI(t, "-c", cfg, "render", "-o", site, "--year", "2024")
	require.NoError(t, err)
	out, err = runCLI(t, "-c", cfg, "verify", "--year", "2024", "--against", site)
	require.NoError(t, err)
	assert.Contains(t, out, "is up to date")

	out, err = runCLI(t, "-c", cfg, "verify", "--year", "2025", "--against", site)
	require.Error(t, err)
	assert.Contains(t, out, "stale: hugo.yaml")
	assert.NotContains(t, out, "stale: data/sidebars.yaml")
}

func TestSidebars(t *testing.T) {
	cfg := testutil.NewProject(t).Write()
	out, err := runCLI(t, "-c", cfg, "sidebars")
	require.NoError(t, err)
	assert.Contains(t, out, "SIDEBAR")
	assert.Regexp(t, `pltSidebar\s+https://dds\.com\.np/docs/plt/syllabus\s+2\s+0`, out)
	assert.Regexp(t, `madtSideBar\s+https://dds\.com\.np/docs/madt\s+2\s+0`, out)
}

func TestHistory_Empty(t *testing.T) {
	db := filepath.Join(t.TempDir(), "history.db")
	out, err := runCLI(t, "history", "--history", db)
	require.NoError(t, err)
	assert.Equal(t, "No renders recorded\n", out)
}

func TestMissingConfig(t *testing.T) {
	_, err := runCLI(t, "-c", filepath.Join(t.TempDir(), "missing.yaml"), "check")
	require.Error(t, err)
	assert.Equal(t, 4, ExitCode(err, false))
}

func TestLogLevelEnv(t *testing.T) {
	cfg := testutil.NewProject(t).Write()
	t.Setenv(LogLevelEnv, "debug")
	_, err := runCLI(t, "-c", cfg, "sidebars")
	require.NoError(t, err)

	t.Setenv(LogLevelEnv, "chatty")
	_, err = runCLI(t, "-c", cfg, "sidebars")
	require.Error(t, err)
}

func TestStaleFiles(t *testing.T) {
	want := map[string][]byte{"a": []byte("1"), "b": []byte("2")}
	got := map[string][]byte{"a": []byte("1"), "b": []byte("3"), "c": []byte("x")}
	assert.Equal(t, []string{"b", "c"}, staleFiles(want, got))
	assert.Empty(t, staleFiles(want, want))
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil, false))
	assert.Equal(t, 1, ExitCode(os.ErrClosed, false))
}
