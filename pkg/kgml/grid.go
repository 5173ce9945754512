package kgml

import (
	"math"

	"github.com/jung-kurt/gofpdf"
	"github.com/jung-kurt/gofpdf/contrib/gofpdi"
	"github.com/spf13/afero"

	"github.com/omicsdesk/genomaps/pkg/kgml/status"
)

const (
	gridMargin   = 10.0
	letterWidth  = 612.0
	letterHeight = 792.0
)

// ComposeGrid assembles drawn map PDFs into a single grid page, one
// cell per input map, with a label over each cell. The page is laid
// out landscape when the first input page is wider than tall. The
// output is written through fs; inputs must live on the OS
// filesystem, the PDF page importer reads them by path.
func ComposeGrid(fs afero.Fs, inPaths []string, labels []string, outPath string) error {
	if len(inPaths) == 0 {
		return status.ErrGrid.WrapMessage(nil, "no input maps")
	}
	if labels != nil && len(labels) != len(inPaths) {
		return status.ErrGrid.WrapMessage(nil, "%d labels for %d maps", len(labels), len(inPaths))
	}

	pdf := gofpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetFont(labelFont, "", gridMargin*0.8)
	pdf.SetTextColor(0, 0, 0)

	type cell struct {
		template      int
		width, height float64
	}
	cells := make([]cell, 0, len(inPaths))
	for _, path := range inPaths {
		template := gofpdi.ImportPage(pdf, path, 1, "/MediaBox")
		box, ok := gofpdi.GetPageSizes()[1]["/MediaBox"]
		if !ok {
			return status.ErrGrid.WrapMessage(nil, "no page box in %s", path)
		}
		cells = append(cells, cell{template: template, width: box["w"], height: box["h"]})
	}
	if pdf.Err() {
		return status.ErrGrid.Wrap(pdf.Error())
	}

	// Page orientation follows the first (unified) map.
	pageWidth, pageHeight := letterWidth, letterHeight
	if cells[0].width > cells[0].height {
		pageWidth, pageHeight = letterHeight, letterWidth
	}
	pdf.AddPageFormat("P", gofpdf.SizeType{Wd: pageWidth, Ht: pageHeight})

	cols := int(math.Ceil(math.Sqrt(float64(len(cells)))))
	rows := int(math.Ceil(float64(len(cells)) / float64(cols)))
	cellWidth := (pageWidth - float64(cols+1)*gridMargin) / float64(cols)
	cellHeight := (pageHeight - float64(rows+1)*gridMargin) / float64(rows)

	for i, c := range cells {
		col := i % cols
		row := i / cols
		x := gridMargin + float64(col)*(cellWidth+gridMargin)
		y := gridMargin + float64(row)*(cellHeight+gridMargin)

		// Fit to the cell preserving aspect ratio.
		aspect := c.width / c.height
		drawWidth := cellWidth
		drawHeight := cellWidth / aspect
		if drawHeight > cellHeight {
			drawHeight = cellHeight
			drawWidth = cellHeight * aspect
		}
		drawX := x + (cellWidth-drawWidth)/2
		drawY := y + (cellHeight-drawHeight)/2

		gofpdi.UseImportedTemplate(pdf, c.template, drawX, drawY, drawWidth, drawHeight)
		if labels != nil {
			pdf.Text(drawX, drawY, labels[i])
		}
	}
	if pdf.Err() {
		return status.ErrGrid.Wrap(pdf.Error())
	}

	f, err := fs.Create(outPath)
	if err != nil {
		return status.ErrGrid.Wrap(err)
	}
	if err := pdf.Output(f); err != nil {
		_ = f.Close()
		return status.ErrGrid.Wrap(err)
	}
	return f.Close()
}
