package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/alexanderramin/rectplan/internal/config"
	"github.com/alexanderramin/rectplan/internal/domain"
	"github.com/alexanderramin/rectplan/internal/importer"
	"github.com/alexanderramin/rectplan/internal/planner"
	"github.com/alexanderramin/rectplan/internal/repository"
	"github.com/alexanderramin/rectplan/internal/service"
	"github.com/alexanderramin/rectplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	db := testutil.NewTestDB(t)

	profileRepo := repository.NewSQLiteProfileRepo(db)
	runRepo := repository.NewSQLitePlanRunRepo(db)
	uow := testutil.NewTestUoW(db)

	cfg := config.Default()
	return &App{
		Profiles: service.NewProfileService(profileRepo, uow),
		Plans:    service.NewPlanService(profileRepo, runRepo, uow),
		Config:   &cfg,
	}
}

func seedProfile(t *testing.T, app *App, name string, opts ...testutil.ProfileOption) *domain.Profile {
	t.Helper()
	p := testutil.NewTestProfile(name, opts...)
	require.NoError(t, app.Profiles.Create(context.Background(), p))
	return p
}

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// executeCmd runs a cobra command and captures stdout/stderr without ANSI
// styling.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return ansi.ReplaceAllString(buf.String(), ""), err
}

func decodePlan(t *testing.T, out string) planner.ProcessPlan {
	t.Helper()
	var plan planner.ProcessPlan
	require.NoError(t, json.Unmarshal([]byte(out), &plan), out)
	return plan
}

// --- root ---

func TestRootCmd_NoArgs_ShowsHelp(t *testing.T) {
	app := testApp(t)

	output, err := executeCmd(t, app)
	require.NoError(t, err)
	assert.Contains(t, output, "rectplan")
	assert.Contains(t, output, "profile")
}

// --- plan ---

func TestPlanCmd_DefaultsWithoutProfiles(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "plan")
	require.NoError(t, err)
	assert.Contains(t, out, "PROCESS PLAN")
	assert.Contains(t, out, "216 mL")
	assert.NotContains(t, out, "Using")
}

func TestPlanCmd_JSON(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "plan", "--json")
	require.NoError(t, err)
	plan := decodePlan(t, out)
	assert.InDelta(t, 216, plan.Heads.VolumeMl, 1e-9)
	assert.InDelta(t, 5625, plan.Hearts.VolumeMl, 1e-9)
}

func TestPlanCmd_FlagsOverrideBase(t *testing.T) {
	app := testApp(t)
	seedProfile(t, app, "Big batch", testutil.WithBatch(36, 40))

	out, err := executeCmd(t, app, "plan", "--profile", "big batch", "--json")
	require.NoError(t, err)
	assert.InDelta(t, 432, decodePlan(t, out).Heads.VolumeMl, 1e-9)

	out, err = executeCmd(t, app, "plan", "--profile", "big batch", "--volume", "18", "--json")
	require.NoError(t, err)
	assert.InDelta(t, 216, decodePlan(t, out).Heads.VolumeMl, 1e-9)
}

func TestPlanCmd_UsesActiveProfile(t *testing.T) {
	app := testApp(t)
	p := seedProfile(t, app, "Everyday")
	require.NoError(t, app.Profiles.Activate(context.Background(), p.ID))

	out, err := executeCmd(t, app, "plan")
	require.NoError(t, err)
	assert.Contains(t, out, "Using active profile Everyday")
}

func TestPlanCmd_FromFile(t *testing.T) {
	app := testApp(t)
	path := filepath.Join(t.TempDir(), "wash.toml")
	require.NoError(t, os.WriteFile(path, []byte("version = 1\n\n[config]\nvolume_l = 9.0\n"), 0o644))

	out, err := executeCmd(t, app, "plan", "--file", path, "--json")
	require.NoError(t, err)
	assert.InDelta(t, 108, decodePlan(t, out).Heads.VolumeMl, 1e-9)
}

func TestPlanCmd_Errors(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "plan", "--profile", "x", "--file", "y")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")

	_, err = executeCmd(t, app, "plan", "--strength", "140")
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrInvalidConfig)

	_, err = executeCmd(t, app, "plan", "--profile", "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "profile not found")
}

// --- profile ---

func TestProfileCreate_WithFlags(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "profile", "create", "--name", "Rum", "--notes", "molasses", "--power", "3.2", "--tails", "--activate")
	require.NoError(t, err)
	assert.Contains(t, out, "Created profile Rum")

	p, err := app.Profiles.Active(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Rum", p.Name)
	assert.Equal(t, "molasses", p.Notes)
	assert.InDelta(t, 3.2, p.Config.PowerKW, 1e-9)
	assert.True(t, p.Config.Tails.Enabled)
}

func TestProfileCreate_FromFile(t *testing.T) {
	app := testApp(t)
	path := filepath.Join(t.TempDir(), "grain.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version":1,"config":{"strength_vol":35}}`), 0o644))

	_, err := executeCmd(t, app, "profile", "create", "--file", path)
	require.NoError(t, err)

	p, err := app.Profiles.Resolve(context.Background(), "grain")
	require.NoError(t, err)
	assert.InDelta(t, 35, p.Config.StrengthVol, 1e-9)
}

func TestProfileCreate_Errors(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "profile", "create")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--name is required")

	_, err = executeCmd(t, app, "profile", "create", "--wizard")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interactive terminal")

	seedProfile(t, app, "Taken")
	_, err = executeCmd(t, app, "profile", "create", "--name", "taken")
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrConflict)
}

func TestProfileListAndShow(t *testing.T) {
	app := testApp(t)
	p := seedProfile(t, app, "Sugar wash")
	seedProfile(t, app, "Grain")

	out, err := executeCmd(t, app, "profile", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Sugar wash")
	assert.Contains(t, out, "Grain")

	out, err = executeCmd(t, app, "profile", "show", p.ID[:8], "--plan")
	require.NoError(t, err)
	assert.Contains(t, out, "Sugar wash")
	assert.Contains(t, out, "PROCESS PLAN")

	_, err = executeCmd(t, app, "profile", "show")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no active profile")
}

func TestProfileCopyRenameDelete(t *testing.T) {
	app := testApp(t)
	ctx := context.Background()
	seedProfile(t, app, "Base", testutil.WithPower(4))

	out, err := executeCmd(t, app, "profile", "copy", "base", "--name", "Variant")
	require.NoError(t, err)
	assert.Contains(t, out, "Copied Base to Variant")

	cp, err := app.Profiles.Resolve(ctx, "variant")
	require.NoError(t, err)
	assert.InDelta(t, 4, cp.Config.PowerKW, 1e-9)

	_, err = executeCmd(t, app, "profile", "rename", "variant", "--name", "Variant 2")
	require.NoError(t, err)
	_, err = app.Profiles.Resolve(ctx, "Variant 2")
	require.NoError(t, err)

	_, err = executeCmd(t, app, "profile", "delete", "Variant 2")
	require.NoError(t, err)
	_, err = app.Profiles.Resolve(ctx, "Variant 2")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProfileActivate_ProtectsDelete(t *testing.T) {
	app := testApp(t)
	seedProfile(t, app, "Only")

	out, err := executeCmd(t, app, "profile", "activate", "only")
	require.NoError(t, err)
	assert.Contains(t, out, "Active profile: Only")

	out, err = executeCmd(t, app, "profile", "active")
	require.NoError(t, err)
	assert.Contains(t, out, "Only")

	_, err = executeCmd(t, app, "profile", "delete", "only")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is active")
}

func TestProfileUpdate(t *testing.T) {
	app := testApp(t)
	p := seedProfile(t, app, "Edit me")

	_, err := executeCmd(t, app, "profile", "update", p.ID, "--hearts-percent", "70", "--finish-temp", "93")
	require.NoError(t, err)

	got, err := app.Profiles.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.InDelta(t, 70, got.Config.Hearts.Percent, 1e-9)
	assert.InDelta(t, 93, got.Config.Controller.HeartsFinishTemp, 1e-9)

	_, err = executeCmd(t, app, "profile", "update", p.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to update")

	_, err = executeCmd(t, app, "profile", "update", p.ID, "--strength", "-1")
	assert.ErrorIs(t, err, service.ErrInvalidConfig)
}

func TestProfileApplyAndHistory(t *testing.T) {
	app := testApp(t)
	p := seedProfile(t, app, "Apply me")

	out, err := executeCmd(t, app, "profile", "apply", p.ID, "-q")
	require.NoError(t, err)
	assert.Contains(t, out, "Applied plan to Apply me")
	assert.NotContains(t, out, "PROCESS PLAN")

	got, err := app.Profiles.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	require.NotNil(t, got.AppliedAt)
	assert.Equal(t, domain.DutyCycle{2.1, 10}, got.Config.Controller.Hearts)

	out, err = executeCmd(t, app, "profile", "history", p.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "HISTORY: APPLY ME")
	assert.Contains(t, out, "5625 mL")
}

func TestProfileExportImport(t *testing.T) {
	app := testApp(t)
	p := seedProfile(t, app, "Original", testutil.WithBatch(25, 30))
	path := filepath.Join(t.TempDir(), "original.toml")

	out, err := executeCmd(t, app, "profile", "export", p.ID, "--out", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported Original")

	f, err := importer.LoadProfileFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Original", f.Name)

	_, err = executeCmd(t, app, "profile", "import", path, "--name", "Imported")
	require.NoError(t, err)
	imp, err := app.Profiles.Resolve(context.Background(), "imported")
	require.NoError(t, err)
	assert.InDelta(t, 25, imp.Config.VolumeL, 1e-9)
	assert.InDelta(t, 30, imp.Config.StrengthVol, 1e-9)

	_, err = executeCmd(t, app, "profile", "import", path)
	assert.ErrorIs(t, err, repository.ErrConflict, "name from file already exists")
}

func TestProfileExport_Stdout(t *testing.T) {
	app := testApp(t)
	p := seedProfile(t, app, "Stdout")

	out, err := executeCmd(t, app, "profile", "export", p.ID)
	require.NoError(t, err)

	var f importer.ProfileFile
	require.NoError(t, json.Unmarshal([]byte(out), &f))
	assert.Equal(t, "Stdout", f.Name)
	assert.Equal(t, importer.CurrentVersion, f.Version)

	_, err = executeCmd(t, app, "profile", "export", p.ID, "--format", "yaml")
	assert.Error(t, err)
}

// --- config ---

func TestConfigInitAndShow(t *testing.T) {
	app := testApp(t)
	path := filepath.Join(t.TempDir(), "config.toml")

	_, err := executeCmd(t, app, "config", "init", "--path", path)
	require.NoError(t, err)
	_, err = os.Stat(path)
	require.NoError(t, err)

	_, err = executeCmd(t, app, "config", "init", "--path", path)
	require.Error(t, err, "existing config is not overwritten")

	out, err := executeCmd(t, app, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "[storage]")
	assert.Contains(t, out, "127.0.0.1:8085")
}

// --- calc ---

func TestCalcCmd_RequiresTerminal(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "calc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interactive terminal")
}
