package report

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netopsio/maintreport/internal/domain"
)

func writeProfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadProfileDefaults(t *testing.T) {
	p, err := LoadProfile(writeProfile(t, "sheet_name: Report\n"))
	require.NoError(t, err)

	assert.Equal(t, DefaultTitleText, p.TitleText)
	assert.Equal(t, DefaultTitleTextSecondary, p.TitleTextSecondary)
	assert.Equal(t, DefaultTitleRowHeight, p.TitleRowHeight)
	assert.Equal(t, DefaultTitleFontName, p.TitleFontName)
	assert.Equal(t, DefaultTitleFontSize, p.TitleFontSize)
	assert.Equal(t, DefaultTitleFontColor, p.TitleFontColor)
	assert.Equal(t, DefaultTitleBgColor, p.TitleBgColor)
	assert.Equal(t, DefaultTableStyle, p.TableStyle)
	assert.Equal(t, DefaultTableFontName, p.TableFontName)
	assert.Equal(t, DefaultTableFontSize, p.TableFontSize)
	assert.Equal(t, DefaultGracePeriodDays, *p.GracePeriodDays)

	// Omitted lists keep their disabling meaning.
	assert.Zero(t, p.FreezeColumns)
	assert.Empty(t, p.GracePeriodCols)
	assert.Nil(t, p.ColumnOrder(domain.ModeDynamic))
	assert.Equal(t, "", p.Logo.Path)
}

func TestLoadProfileZeroGraceIsKept(t *testing.T) {
	p, err := LoadProfile(writeProfile(t, "sheet_name: Report\ngrace_period_days: 0\n"))
	require.NoError(t, err)
	assert.Zero(t, *p.GracePeriodDays)
}

func TestLoadProfileColumnOrders(t *testing.T) {
	p, err := LoadProfile(writeProfile(t, `
sheet_name: Report
dynamic_column_order: [host, sr_no]
static_tss_column_order: [host, tss_status]
`))
	require.NoError(t, err)

	assert.Equal(t, []string{"host", "sr_no"}, p.ColumnOrder(domain.ModeDynamic))
	assert.Equal(t, []string{"host", "tss_status"}, p.ColumnOrder(domain.ModeStaticTSS))
	assert.Nil(t, p.ColumnOrder(domain.ModeStatic))
}

func TestLoadProfileValidation(t *testing.T) {
	cases := map[string]string{
		"missing sheet name": "zoom: 100\n",
		"duplicate column":   "sheet_name: R\ndynamic_column_order: [host, host]\n",
		"duplicate date col": "sheet_name: R\ngrace_period_cols: [a, a]\n",
		"bad color":          "sheet_name: R\ntitle_bg_color: red\n",
		"negative grace":     "sheet_name: R\ngrace_period_days: -1\n",
		"negative freeze":    "sheet_name: R\nfreeze_columns: -2\n",
		"unknown key":        "sheet_name: R\nweekly_column_order: [host]\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadProfile(writeProfile(t, content))
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrConfig))
		})
	}
}

func TestLoadProfileMissingFileIsResourceError(t *testing.T) {
	_, err := LoadProfile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrResource))
}

func TestTitleForMode(t *testing.T) {
	p := &Profile{SheetName: "R"}
	p.ApplyDefaults()

	assert.Equal(t, DefaultTitleText, p.TitleFor(domain.ModeDynamic))
	assert.Equal(t, DefaultTitleText, p.TitleFor(domain.ModeStatic))
	assert.Equal(t, DefaultTitleTextSecondary, p.TitleFor(domain.ModeDynamicTSS))
	assert.Equal(t, DefaultTitleTextSecondary, p.TitleFor(domain.ModeStaticTSS))
}

func TestShippedProfileParses(t *testing.T) {
	p, err := LoadProfile(filepath.Join("..", "..", "report_profile.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "Cisco_Maintenance_Report", p.SheetName)
	assert.Equal(t, 3, p.FreezeColumns)
	assert.Equal(t, 90, *p.GracePeriodDays)
	assert.Contains(t, p.ColumnOrder(domain.ModeDynamicTSS), "tss_serial")
	assert.NotContains(t, p.ColumnOrder(domain.ModeDynamic), "tss_serial")
}
