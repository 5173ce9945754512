package kgml

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/omicsdesk/genomaps/pkg/kgml/status"
)

const (
	// default width of reaction lines in the base maps
	defaultLineWidth = 1.0

	canvasMargin = 20.0
	labelFont    = "Helvetica"
)

// Drawer renders recolored pathways to PDF
type Drawer struct {
	fs     afero.Fs
	logger *zap.Logger

	// LineWidth overrides the width of prioritized reaction lines in
	// overview maps; the Mapper widens them from the base default.
	lineWidth float64
}

// DrawerOption configures a Drawer
type DrawerOption func(*Drawer)

// DrawerWithFS overrides the filesystem used by DrawMapFile
func DrawerWithFS(fs afero.Fs) DrawerOption {
	return func(d *Drawer) {
		d.fs = fs
	}
}

// DrawerWithLogger sets a logger
func DrawerWithLogger(logger *zap.Logger) DrawerOption {
	return func(d *Drawer) {
		d.logger = logger
	}
}

// NewDrawer builds a Drawer
func NewDrawer(opts ...DrawerOption) *Drawer {
	d := &Drawer{
		fs:        afero.NewOsFs(),
		logger:    zap.NewNop(),
		lineWidth: defaultLineWidth,
	}
	for _, apply := range opts {
		apply(d)
	}
	return d
}

// DrawMap renders the pathway as a single-page PDF
func (d *Drawer) DrawMap(pathway *Pathway, w io.Writer) error {
	width, height := canvasSize(pathway)

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: width, Ht: height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	pdf.SetFont(labelFont, "", 6)

	d.logger.Debug("drawing pathway map",
		zap.String("pathway", pathway.Number),
		zap.Float64("width", width),
		zap.Float64("height", height),
	)

	// Base layers first: map links, then compounds, then ortholog
	// reactions ordered by display priority.
	for _, entry := range pathway.EntriesOfType(EntryTypeMap) {
		d.drawEntry(pdf, entry)
	}
	for _, entry := range pathway.EntriesOfType(EntryTypeCompound) {
		d.drawEntry(pdf, entry)
	}
	orthologs := append([]*Entry(nil), pathway.EntriesOfType(EntryTypeOrtholog)...)
	sort.SliceStable(orthologs, func(i, j int) bool {
		return orthologs[i].priority < orthologs[j].priority
	})
	for _, entry := range orthologs {
		d.drawEntry(pdf, entry)
	}

	if err := pdf.Output(w); err != nil {
		return status.ErrRender.WrapMessage(err, "pathway %s", pathway.Number)
	}
	return nil
}

// DrawMapFile renders the pathway to a PDF file
func (d *Drawer) DrawMapFile(pathway *Pathway, path string) error {
	f, err := d.fs.Create(path)
	if err != nil {
		return status.ErrRender.Wrap(err)
	}
	if err := d.DrawMap(pathway, f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func (d *Drawer) drawEntry(pdf *gofpdf.Fpdf, entry *Entry) {
	for _, graphics := range entry.Graphics {
		if graphics.FgColor == FgUndrawn {
			continue
		}
		switch graphics.Type {
		case GraphicsTypeLine:
			d.drawLine(pdf, entry, graphics)
		case GraphicsTypeCircle:
			d.drawCircle(pdf, graphics)
		case GraphicsTypeRectangle, GraphicsTypeRoundRectangle:
			d.drawBox(pdf, graphics)
		}
	}
}

func (d *Drawer) drawLine(pdf *gofpdf.Fpdf, entry *Entry, graphics *Graphics) {
	points, err := parseCoords(graphics.Coords)
	if err != nil || len(points) < 2 {
		d.logger.Debug("skipping line with unusable coords",
			zap.String("entry", entry.ID), zap.String("coords", graphics.Coords))
		return
	}
	r, g, b, ok := parseHex(graphics.FgColor)
	if !ok {
		return
	}
	width := graphics.Width
	if width <= 0 {
		width = d.lineWidth
	}
	pdf.SetDrawColor(r, g, b)
	pdf.SetLineWidth(width)
	pdf.SetLineCapStyle("round")
	for i := 1; i < len(points); i++ {
		pdf.Line(points[i-1].x, points[i-1].y, points[i].x, points[i].y)
	}
}

func (d *Drawer) drawCircle(pdf *gofpdf.Fpdf, graphics *Graphics) {
	rx := graphics.Width / 2
	ry := graphics.Height / 2
	if rx <= 0 {
		rx = 4
	}
	if ry <= 0 {
		ry = rx
	}
	styleStr := ""
	if r, g, b, ok := parseHex(graphics.BgColor); ok {
		pdf.SetFillColor(r, g, b)
		styleStr += "F"
	}
	if r, g, b, ok := parseHex(graphics.FgColor); ok {
		pdf.SetDrawColor(r, g, b)
		pdf.SetLineWidth(defaultLineWidth)
		styleStr += "D"
	}
	if styleStr == "" {
		return
	}
	pdf.Ellipse(graphics.X, graphics.Y, rx, ry, 0, styleStr)
}

func (d *Drawer) drawBox(pdf *gofpdf.Fpdf, graphics *Graphics) {
	x := graphics.X - graphics.Width/2
	y := graphics.Y - graphics.Height/2
	styleStr := ""
	if r, g, b, ok := parseHex(graphics.BgColor); ok {
		pdf.SetFillColor(r, g, b)
		styleStr += "F"
	}
	if r, g, b, ok := parseHex(graphics.FgColor); ok {
		pdf.SetDrawColor(r, g, b)
		pdf.SetLineWidth(defaultLineWidth)
		styleStr += "D"
	}
	if styleStr == "" {
		return
	}
	if graphics.Type == GraphicsTypeRoundRectangle {
		pdf.RoundedRect(x, y, graphics.Width, graphics.Height, 3, "1234", styleStr)
	} else {
		pdf.Rect(x, y, graphics.Width, graphics.Height, styleStr)
	}

	label := boxLabel(graphics.Name)
	if label == "" {
		return
	}
	if r, g, b, ok := parseHex(graphics.FgColor); ok {
		pdf.SetTextColor(r, g, b)
	} else {
		pdf.SetTextColor(0, 0, 0)
	}
	textWidth := pdf.GetStringWidth(label)
	pdf.Text(graphics.X-textWidth/2, graphics.Y+2, label)
}

// boxLabel keeps the first name of a graphics element, as in the
// reference maps where boxes show one representative identifier
func boxLabel(name string) string {
	name = strings.TrimSuffix(strings.TrimSpace(name), "...")
	if i := strings.IndexAny(name, ", "); i >= 0 {
		name = name[:i]
	}
	return name
}

type point struct {
	x, y float64
}

func parseCoords(coords string) ([]point, error) {
	if coords == "" {
		return nil, nil
	}
	fields := strings.Split(coords, ",")
	if len(fields)%2 != 0 {
		return nil, fmt.Errorf("odd number of coordinates in %q", coords)
	}
	points := make([]point, 0, len(fields)/2)
	for i := 0; i < len(fields); i += 2 {
		x, err := strconv.ParseFloat(strings.TrimSpace(fields[i]), 64)
		if err != nil {
			return nil, err
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(fields[i+1]), 64)
		if err != nil {
			return nil, err
		}
		points = append(points, point{x: x, y: y})
	}
	return points, nil
}

// parseHex decodes #rrggbb colors, case-insensitive. The sentinel
// "0", "none" and empty values report !ok.
func parseHex(color string) (r, g, b int, ok bool) {
	if len(color) != 7 || color[0] != '#' {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(color[1:], 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(v >> 16), int(v >> 8 & 0xFF), int(v & 0xFF), true
}

func canvasSize(pathway *Pathway) (width, height float64) {
	for _, entry := range pathway.Entries {
		for _, graphics := range entry.Graphics {
			if points, err := parseCoords(graphics.Coords); err == nil {
				for _, p := range points {
					width = max(width, p.x)
					height = max(height, p.y)
				}
			}
			width = max(width, graphics.X+graphics.Width/2)
			height = max(height, graphics.Y+graphics.Height/2)
		}
	}
	if width == 0 {
		width = 1000
	}
	if height == 0 {
		height = 800
	}
	return width + canvasMargin, height + canvasMargin
}
