package kgml

import (
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/omicsdesk/genomaps/pkg/kgml/status"
)

// Colorbar describes a standalone color legend
type Colorbar struct {
	// Colors from lowest to highest value, drawn bottom-up
	Colors []string

	// Labels tick each color segment; optional, but when present one
	// label per color is required
	Labels []string

	// Title is the rotated legend label along the bar
	Title string
}

const (
	colorbarWidth    = 130.0
	colorbarHeight   = 440.0
	colorbarBar      = 30.0
	colorbarMargin   = 16.0
	colorbarFontSize = 10.0
)

// DrawColorbar renders the legend as a small single-page PDF
func DrawColorbar(bar Colorbar, w io.Writer) error {
	if len(bar.Colors) == 0 {
		return status.ErrRender.WrapMessage(nil, "colorbar without colors")
	}
	if bar.Labels != nil && len(bar.Labels) != len(bar.Colors) {
		return status.ErrRender.WrapMessage(nil,
			"%d labels for %d colors", len(bar.Labels), len(bar.Colors))
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: colorbarWidth, Ht: colorbarHeight},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	segments := len(bar.Colors)
	segmentHeight := (colorbarHeight - 2*colorbarMargin) / float64(segments)
	fontSize := colorbarFontSize
	if segmentHeight < fontSize {
		fontSize = segmentHeight
	}
	pdf.SetFont(labelFont, "", fontSize)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetDrawColor(0, 0, 0)

	// Lowest value sits at the bottom of the bar.
	for i, color := range bar.Colors {
		r, g, b, ok := parseHex(color)
		if !ok {
			return status.ErrRender.WrapMessage(nil, "bad colorbar color %q", color)
		}
		top := colorbarMargin + float64(segments-1-i)*segmentHeight
		pdf.SetFillColor(r, g, b)
		pdf.Rect(colorbarMargin, top, colorbarBar, segmentHeight, "F")

		if bar.Labels != nil {
			pdf.Text(
				colorbarMargin+colorbarBar+6,
				top+segmentHeight/2+fontSize/3,
				bar.Labels[i],
			)
		}
	}
	pdf.Rect(colorbarMargin, colorbarMargin, colorbarBar, segmentHeight*float64(segments), "D")

	if bar.Title != "" {
		titleSize := fontSize * 1.25
		if titleSize > 14 {
			titleSize = 14
		}
		pdf.SetFont(labelFont, "", titleSize)
		x := colorbarWidth - colorbarMargin
		y := colorbarHeight / 2
		pdf.TransformBegin()
		pdf.TransformRotate(-90, x, y)
		pdf.Text(x-pdf.GetStringWidth(bar.Title)/2, y, bar.Title)
		pdf.TransformEnd()
	}

	if err := pdf.Output(w); err != nil {
		return status.ErrRender.Wrap(err)
	}
	return nil
}
