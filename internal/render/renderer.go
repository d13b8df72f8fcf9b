package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	// Register image decoders for excelize.AddPicture.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/xuri/excelize/v2"

	"github.com/netopsio/maintreport/internal/domain"
	"github.com/netopsio/maintreport/internal/report"
)

// Worksheet layout: row 1 is the title band, row 2 the table header, data
// starts at row 3.
const (
	titleRow     = 1
	headerRow    = 2
	dataStartRow = 3
)

// Tier fill palette, one visually distinct fill per urgency tier.
const (
	fillNormal  = "9BBB59"
	fillWarning = "F79646"
	fillExpired = "C0504D"
)

const tableName = "MaintenanceReport"

// Renderer emits one styled report workbook per call. It holds only the
// read-only profile, so a single Renderer is safe for concurrent renders.
type Renderer struct {
	profile *report.Profile
}

func New(profile *report.Profile) *Renderer {
	return &Renderer{profile: profile}
}

// tierStyles caches the per-tier cell styles of one workbook.
type tierStyles struct {
	base    int
	byTier  map[domain.Tier]int
	statusY int
	statusN int
}

// Render builds the report workbook in memory: title band (with the
// mode-dependent text variant and optional logo), frozen panes, a styled
// worksheet table over the projected rows, and tier-keyed fills on annotated
// date cells. The caller owns the returned file and must Close it.
func (r *Renderer) Render(mode domain.ReportMode, columns []string, rows []domain.Row, tiers []map[string]domain.Tier) (*excelize.File, error) {
	p := r.profile
	f := excelize.NewFile()
	sheet := p.SheetName
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		f.Close()
		return nil, err
	}

	if err := r.renderSheet(f, sheet, mode, columns, rows, tiers); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

// RenderToFile renders and saves the workbook. An unwritable target is a
// resource error carrying the offending path.
func (r *Renderer) RenderToFile(path string, mode domain.ReportMode, columns []string, rows []domain.Row, tiers []map[string]domain.Tier) error {
	f, err := r.Render(mode, columns, rows, tiers)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("%w: write report %s: %v", domain.ErrResource, path, err)
	}
	return nil
}

// RenderBytes renders the workbook into memory.
func (r *Renderer) RenderBytes(mode domain.ReportMode, columns []string, rows []domain.Row, tiers []map[string]domain.Tier) ([]byte, error) {
	f, err := r.Render(mode, columns, rows, tiers)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: encode report: %v", domain.ErrResource, err)
	}
	return buf.Bytes(), nil
}

// RenderTo renders and streams the workbook to the writer.
func (r *Renderer) RenderTo(w io.Writer, mode domain.ReportMode, columns []string, rows []domain.Row, tiers []map[string]domain.Tier) error {
	f, err := r.Render(mode, columns, rows, tiers)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("%w: write report: %v", domain.ErrResource, err)
	}
	return nil
}

func (r *Renderer) renderSheet(f *excelize.File, sheet string, mode domain.ReportMode, columns []string, rows []domain.Row, tiers []map[string]domain.Tier) error {
	p := r.profile

	if p.Zoom > 0 {
		zoom := p.Zoom
		if err := f.SetSheetView(sheet, 0, &excelize.ViewOptions{ZoomScale: &zoom}); err != nil {
			return err
		}
	}

	if err := r.renderTitleBand(f, sheet, mode, len(columns)); err != nil {
		return err
	}

	styles, err := r.newTierStyles(f)
	if err != nil {
		return err
	}

	if err := r.renderTable(f, sheet, columns, rows, tiers, styles); err != nil {
		return err
	}

	if err := r.autoSizeColumns(f, sheet, columns, rows); err != nil {
		return err
	}

	return r.freezePanes(f, sheet)
}

// renderTitleBand emits the merged, styled top row. The leading frozen-column
// span is reserved as the logo zone; the title text fills the remainder.
func (r *Renderer) renderTitleBand(f *excelize.File, sheet string, mode domain.ReportMode, width int) error {
	p := r.profile

	if err := f.SetRowHeight(sheet, titleRow, p.TitleRowHeight); err != nil {
		return err
	}

	styleID, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Family: p.TitleFontName,
			Size:   p.TitleFontSize,
			Color:  hexColor(p.TitleFontColor),
			Bold:   true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{hexColor(p.TitleBgColor)},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
		Border:    []excelize.Border{{Type: "bottom", Color: "000000", Style: 1}},
	})
	if err != nil {
		return err
	}

	if width < 1 {
		width = 1
	}
	logoSpan := p.FreezeColumns
	if logoSpan >= width {
		logoSpan = width - 1
	}

	textStart := logoSpan + 1
	if logoSpan > 0 {
		// Logo zone, merged across the frozen columns.
		start, _ := excelize.CoordinatesToCellName(1, titleRow)
		end, _ := excelize.CoordinatesToCellName(logoSpan, titleRow)
		if err := f.MergeCell(sheet, start, end); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, start, end, styleID); err != nil {
			return err
		}
	}

	textCell, _ := excelize.CoordinatesToCellName(textStart, titleRow)
	lastCell, _ := excelize.CoordinatesToCellName(width, titleRow)
	if textStart < width {
		if err := f.MergeCell(sheet, textCell, lastCell); err != nil {
			return err
		}
	}
	if err := f.SetCellValue(sheet, textCell, p.TitleFor(mode)); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, textCell, lastCell, styleID); err != nil {
		return err
	}

	return r.placeLogo(f, sheet)
}

// placeLogo inserts the configured logo image into the title band. No logo
// configured means no image and no error; a configured logo that is missing
// on disk aborts the render.
func (r *Renderer) placeLogo(f *excelize.File, sheet string) error {
	logo := r.profile.Logo
	if logo.Path == "" {
		return nil
	}
	if _, err := os.Stat(logo.Path); err != nil {
		return fmt.Errorf("%w: title logo %s: %v", domain.ErrResource, logo.Path, err)
	}

	return f.AddPicture(sheet, "A1", logo.Path, &excelize.GraphicOptions{
		ScaleX:  logo.XScale,
		ScaleY:  logo.YScale,
		OffsetX: logo.XOffset,
		OffsetY: logo.YOffset,
	})
}

func (r *Renderer) newTierStyles(f *excelize.File) (*tierStyles, error) {
	p := r.profile
	font := &excelize.Font{Family: p.TableFontName, Size: p.TableFontSize}
	align := &excelize.Alignment{Horizontal: "left", Vertical: "center"}

	newFill := func(color string) (int, error) {
		return f.NewStyle(&excelize.Style{
			Font:      font,
			Alignment: align,
			Fill: excelize.Fill{
				Type:    "pattern",
				Color:   []string{color},
				Pattern: 1,
			},
		})
	}

	base, err := f.NewStyle(&excelize.Style{Font: font, Alignment: align})
	if err != nil {
		return nil, err
	}
	normal, err := newFill(fillNormal)
	if err != nil {
		return nil, err
	}
	warning, err := newFill(fillWarning)
	if err != nil {
		return nil, err
	}
	expired, err := newFill(fillExpired)
	if err != nil {
		return nil, err
	}

	return &tierStyles{
		base: base,
		byTier: map[domain.Tier]int{
			domain.TierNormal:  normal,
			domain.TierWarning: warning,
			domain.TierExpired: expired,
		},
		statusY: normal,
		statusN: expired,
	}, nil
}

// renderTable writes the header row and data rows, overlays a worksheet
// table object and applies the per-cell styles.
func (r *Renderer) renderTable(f *excelize.File, sheet string, columns []string, rows []domain.Row, tiers []map[string]domain.Tier, styles *tierStyles) error {
	if len(columns) == 0 {
		return nil
	}

	statusCols := make(map[string]bool, len(r.profile.StatusCols))
	for _, c := range r.profile.StatusCols {
		statusCols[c] = true
	}

	for j, col := range columns {
		cell, _ := excelize.CoordinatesToCellName(j+1, headerRow)
		if err := f.SetCellValue(sheet, cell, col); err != nil {
			return err
		}
	}

	for i, row := range rows {
		rowTiers := map[string]domain.Tier{}
		if i < len(tiers) && tiers[i] != nil {
			rowTiers = tiers[i]
		}
		for j, c := range row {
			addr, _ := excelize.CoordinatesToCellName(j+1, dataStartRow+i)
			if c.Present && c.Value != nil {
				if err := f.SetCellValue(sheet, addr, c.Value); err != nil {
					return err
				}
			}

			styleID := styles.base
			if tier, ok := rowTiers[c.Column]; ok {
				styleID = styles.byTier[tier]
			} else if statusCols[c.Column] {
				if id, ok := statusStyle(c, styles); ok {
					styleID = id
				}
			}
			if err := f.SetCellStyle(sheet, addr, addr, styleID); err != nil {
				return err
			}
		}
	}

	lastRow := headerRow + len(rows)
	if lastRow == headerRow {
		// AddTable needs at least one data row under the header.
		lastRow++
	}
	first, _ := excelize.CoordinatesToCellName(1, headerRow)
	last, _ := excelize.CoordinatesToCellName(len(columns), lastRow)
	stripes := true
	return f.AddTable(sheet, &excelize.Table{
		Range:          fmt.Sprintf("%s:%s", first, last),
		Name:           tableName,
		StyleName:      r.profile.TableStyle,
		ShowRowStripes: &stripes,
	})
}

// statusStyle maps a YES/NO status cell to the green/red fill.
func statusStyle(c domain.Cell, styles *tierStyles) (int, bool) {
	s, ok := c.Value.(string)
	if !ok || !c.Present {
		return 0, false
	}
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "YES":
		return styles.statusY, true
	case "NO":
		return styles.statusN, true
	}
	return 0, false
}

// autoSizeColumns widens each column to its longest content plus room for
// the table filter button.
func (r *Renderer) autoSizeColumns(f *excelize.File, sheet string, columns []string, rows []domain.Row) error {
	for j, col := range columns {
		width := len(col)
		for _, row := range rows {
			if j >= len(row) || !row[j].Present || row[j].Value == nil {
				continue
			}
			if l := len(fmt.Sprint(row[j].Value)); l > width {
				width = l
			}
		}
		if width > 60 {
			width = 60
		}
		name, err := excelize.ColumnNumberToName(j + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, name, name, float64(width+5)); err != nil {
			return err
		}
	}
	return nil
}

// freezePanes keeps the title and header rows plus the configured leading
// columns visible while scrolling the data table.
func (r *Renderer) freezePanes(f *excelize.File, sheet string) error {
	topLeft, _ := excelize.CoordinatesToCellName(r.profile.FreezeColumns+1, dataStartRow)
	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		XSplit:      r.profile.FreezeColumns,
		YSplit:      headerRow,
		TopLeftCell: topLeft,
		ActivePane:  "bottomRight",
	})
}

func hexColor(s string) string {
	return strings.TrimPrefix(s, "#")
}
