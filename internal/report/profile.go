package report

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/netopsio/maintreport/internal/domain"
)

// Defaults for every optional style key. The column and date lists have no
// defaults: an omitted column order disables filtering for that mode and an
// omitted date-column list disables tiering.
const (
	DefaultTitleText          = "Cisco Maintenance Report"
	DefaultTitleTextSecondary = "Cisco Maintenance Report incl. IBM TSS Analysis"
	DefaultTitleRowHeight     = 60.0
	DefaultTitleFontName      = "Calibri"
	DefaultTitleFontSize      = 20.0
	DefaultTitleFontColor     = "#FFFFFF"
	DefaultTitleBgColor       = "#FF452C"
	DefaultTableStyle         = "TableStyleMedium8"
	DefaultTableFontName      = "Calibri"
	DefaultTableFontSize      = 11.0
	DefaultGracePeriodDays    = 90
)

// Logo describes the optional title-band image. A zero Path disables image
// placement entirely.
type Logo struct {
	Path    string  `yaml:"title_logo"`
	XScale  float64 `yaml:"title_logo_x_scale"`
	YScale  float64 `yaml:"title_logo_y_scale"`
	XOffset int     `yaml:"title_logo_x_offset"`
	YOffset int     `yaml:"title_logo_y_offset"`
}

// Profile is the declarative report configuration: per-mode column orders,
// style parameters, grace policy and logo placement. It is loaded once per
// run and read-only afterwards, so one Profile may back concurrent renders.
type Profile struct {
	SheetName     string  `yaml:"sheet_name"`
	Zoom          float64 `yaml:"zoom"`
	FreezeColumns int     `yaml:"freeze_columns"`

	TitleText          string  `yaml:"title_text"`
	TitleTextSecondary string  `yaml:"title_text_secondary"`
	TitleRowHeight     float64 `yaml:"title_row_height"`
	TitleFontName      string  `yaml:"title_font_name"`
	TitleFontSize      float64 `yaml:"title_font_size"`
	TitleFontColor     string  `yaml:"title_font_color"`
	TitleBgColor       string  `yaml:"title_bg_color"`

	Logo Logo `yaml:",inline"`

	TableStyle    string  `yaml:"table_style"`
	TableFontName string  `yaml:"table_font_name"`
	TableFontSize float64 `yaml:"table_font_size"`

	GracePeriodDays *int     `yaml:"grace_period_days"`
	GracePeriodCols []string `yaml:"grace_period_cols"`

	// StatusCols are yes/no columns flagged green/red by value.
	StatusCols []string `yaml:"status_cols"`

	DynamicColumnOrder    []string `yaml:"dynamic_column_order"`
	DynamicTSSColumnOrder []string `yaml:"dynamic_tss_column_order"`
	StaticColumnOrder     []string `yaml:"static_column_order"`
	StaticTSSColumnOrder  []string `yaml:"static_tss_column_order"`
}

// LoadProfile reads, defaults and validates a YAML profile. An unreadable
// file is a resource error; malformed content is a configuration error.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read profile %s: %v", domain.ErrResource, path, err)
	}

	// Strict decoding: a misspelled or unknown key is a configuration error,
	// not a silently ignored setting.
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var p Profile
	if err := dec.Decode(&p); err != nil && err != io.EOF {
		return nil, fmt.Errorf("%w: parse profile %s: %v", domain.ErrConfig, path, err)
	}

	p.ApplyDefaults()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// ApplyDefaults fills every absent optional style key with its documented
// default. The per-mode column orders and the grace column list stay as
// given: their absence carries meaning.
func (p *Profile) ApplyDefaults() {
	if p.TitleText == "" {
		p.TitleText = DefaultTitleText
	}
	if p.TitleTextSecondary == "" {
		p.TitleTextSecondary = DefaultTitleTextSecondary
	}
	if p.TitleRowHeight == 0 {
		p.TitleRowHeight = DefaultTitleRowHeight
	}
	if p.TitleFontName == "" {
		p.TitleFontName = DefaultTitleFontName
	}
	if p.TitleFontSize == 0 {
		p.TitleFontSize = DefaultTitleFontSize
	}
	if p.TitleFontColor == "" {
		p.TitleFontColor = DefaultTitleFontColor
	}
	if p.TitleBgColor == "" {
		p.TitleBgColor = DefaultTitleBgColor
	}
	if p.Logo.Path != "" {
		if p.Logo.XScale == 0 {
			p.Logo.XScale = 1.0
		}
		if p.Logo.YScale == 0 {
			p.Logo.YScale = 1.0
		}
	}
	if p.TableStyle == "" {
		p.TableStyle = DefaultTableStyle
	}
	if p.TableFontName == "" {
		p.TableFontName = DefaultTableFontName
	}
	if p.TableFontSize == 0 {
		p.TableFontSize = DefaultTableFontSize
	}
	if p.GracePeriodDays == nil {
		days := DefaultGracePeriodDays
		p.GracePeriodDays = &days
	}
}

// Validate fails fast on configuration errors before any rendering work.
func (p *Profile) Validate() error {
	if p.SheetName == "" {
		return fmt.Errorf("%w: sheet_name is required", domain.ErrConfig)
	}
	if p.Zoom < 0 {
		return fmt.Errorf("%w: zoom must not be negative", domain.ErrConfig)
	}
	if p.FreezeColumns < 0 {
		return fmt.Errorf("%w: freeze_columns must not be negative", domain.ErrConfig)
	}
	if *p.GracePeriodDays < 0 {
		return fmt.Errorf("%w: grace_period_days must not be negative", domain.ErrConfig)
	}
	for key, color := range map[string]string{
		"title_font_color": p.TitleFontColor,
		"title_bg_color":   p.TitleBgColor,
	} {
		if !validHexColor(color) {
			return fmt.Errorf("%w: %s %q is not a #RRGGBB color", domain.ErrConfig, key, color)
		}
	}
	for mode, cols := range map[domain.ReportMode][]string{
		domain.ModeDynamic:    p.DynamicColumnOrder,
		domain.ModeDynamicTSS: p.DynamicTSSColumnOrder,
		domain.ModeStatic:     p.StaticColumnOrder,
		domain.ModeStaticTSS:  p.StaticTSSColumnOrder,
	} {
		if dup := firstDuplicate(cols); dup != "" {
			return fmt.Errorf("%w: column %q listed twice in %s_column_order", domain.ErrConfig, dup, mode)
		}
	}
	if dup := firstDuplicate(p.GracePeriodCols); dup != "" {
		return fmt.Errorf("%w: column %q listed twice in grace_period_cols", domain.ErrConfig, dup)
	}
	return nil
}

// ColumnOrder returns the column spec for the mode. A nil result disables
// filtering: projection passes every column through.
func (p *Profile) ColumnOrder(mode domain.ReportMode) []string {
	switch mode {
	case domain.ModeDynamic:
		return p.DynamicColumnOrder
	case domain.ModeDynamicTSS:
		return p.DynamicTSSColumnOrder
	case domain.ModeStatic:
		return p.StaticColumnOrder
	case domain.ModeStaticTSS:
		return p.StaticTSSColumnOrder
	}
	return nil
}

// GracePolicy returns the active grace policy. An empty column list means
// tiering is disabled.
func (p *Profile) GracePolicy() GracePolicy {
	return GracePolicy{Columns: p.GracePeriodCols, Days: *p.GracePeriodDays}
}

// TitleFor selects the title text variant for the mode.
func (p *Profile) TitleFor(mode domain.ReportMode) string {
	if mode.IncludesSecondary() {
		return p.TitleTextSecondary
	}
	return p.TitleText
}

func validHexColor(s string) bool {
	if len(s) != 7 || !strings.HasPrefix(s, "#") {
		return false
	}
	for _, r := range s[1:] {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

func firstDuplicate(cols []string) string {
	seen := make(map[string]bool, len(cols))
	for _, c := range cols {
		if seen[c] {
			return c
		}
		seen[c] = true
	}
	return ""
}
