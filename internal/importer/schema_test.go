package importer

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alexanderramin/rectplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_PartialJSONMergesDefaults(t *testing.T) {
	in := `{"name":"Rye","config":{"volume_l":30,"hearts":{"percent":70},"controller":{"valve_bw":[5000,9000,4000]}}}`

	f, err := Decode(strings.NewReader(in), FormatJSON)
	require.NoError(t, err)

	def := domain.DefaultConfig()
	assert.Equal(t, "Rye", f.Name)
	assert.Equal(t, CurrentVersion, f.Version)
	assert.Equal(t, 30.0, f.Config.VolumeL)
	assert.Equal(t, def.StrengthVol, f.Config.StrengthVol)
	assert.Equal(t, 70.0, f.Config.Hearts.Percent)
	assert.True(t, f.Config.Hearts.Enabled, "unset enabled flag keeps the default")
	assert.Equal(t, def.Hearts.TargetFlowMlh, f.Config.Hearts.TargetFlowMlh)
	assert.Equal(t, [3]float64{5000, 9000, 4000}, f.Config.Controller.ValveBW)
	assert.Equal(t, def.Controller.Hearts, f.Config.Controller.Hearts)
}

func TestDecode_PartialTOML(t *testing.T) {
	in := `
name = "Fruit brandy"

[config]
power_kw = 3.5
strength_vol = 25.0

[config.tails]
enabled = true
percent = 4.0

[config.controller]
hearts = [2.5, 10.0]
hearts_finish_temp = 94.5
`
	f, err := Decode(strings.NewReader(in), FormatTOML)
	require.NoError(t, err)

	assert.Equal(t, "Fruit brandy", f.Name)
	assert.Equal(t, 3.5, f.Config.PowerKW)
	assert.Equal(t, 25.0, f.Config.StrengthVol)
	assert.Equal(t, 18.0, f.Config.VolumeL)
	assert.True(t, f.Config.Tails.Enabled)
	assert.Equal(t, 4.0, f.Config.Tails.Percent)
	assert.Equal(t, domain.DutyCycle{2.5, 10}, f.Config.Controller.Hearts)
	assert.Equal(t, 94.5, f.Config.Controller.HeartsFinishTemp)
}

func TestDecode_RejectsUnknownFields(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"name":"x","config":{"powerKw":2}}`), FormatJSON)
	assert.Error(t, err)

	_, err = Decode(strings.NewReader("name = 'x'\nbogus = 1\n"), FormatTOML)
	assert.Error(t, err)
}

func TestEncodeDecode_BothFormats(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Tails.Enabled = true
	cfg.Controller.DecrementPct = 4
	cfg.Controller.VirtualTailsBW = 15000
	orig := &ProfileFile{Name: "Grain", Notes: "wheat/rye", Config: cfg}

	for _, format := range []Format{FormatJSON, FormatTOML} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, orig, format))

			got, err := Decode(&buf, format)
			require.NoError(t, err)
			assert.Equal(t, orig.Name, got.Name)
			assert.Equal(t, orig.Notes, got.Notes)
			assert.Equal(t, orig.Config, got.Config)
		})
	}
}

func TestLoadProfileFile_NameFromFileName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plum-wash.toml")
	require.NoError(t, os.WriteFile(path, []byte("[config]\nvolume_l = 12.0\n"), 0o644))

	f, err := LoadProfileFile(path)
	require.NoError(t, err)
	assert.Equal(t, "plum-wash", f.Name)
	assert.Equal(t, 12.0, f.Config.VolumeL)
}

func TestLoadProfileFile_Missing(t *testing.T) {
	_, err := LoadProfileFile(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("TOML")
	require.NoError(t, err)
	assert.Equal(t, FormatTOML, f)

	_, err = ParseFormat("yaml")
	assert.Error(t, err)

	assert.Equal(t, FormatJSON, FormatFromPath("a/b.json"))
	assert.Equal(t, FormatTOML, FormatFromPath("a/b.TOML"))
}

func TestValidateProfileFile(t *testing.T) {
	f := &ProfileFile{Version: CurrentVersion, Name: "ok", Config: domain.DefaultConfig()}
	assert.Empty(t, ValidateProfileFile(f))

	f.Name = " padded"
	f.Version = 7
	f.Config.Controller.DecrementPct = 100
	errs := ValidateProfileFile(f)
	require.Len(t, errs, 3)
	assert.True(t, errors.Is(errors.Join(errs...), domain.ErrInvalidDecrement))
}

func TestValidateName(t *testing.T) {
	assert.Empty(t, ValidateName("Sugar wash #3"))
	assert.NotEmpty(t, ValidateName(""))
	assert.NotEmpty(t, ValidateName("   "))
	assert.NotEmpty(t, ValidateName(strings.Repeat("x", 81)))
}
