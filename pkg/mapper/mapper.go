// Package mapper draws KEGG pathway maps annotated with KO ortholog
// data from project databases. Reactions containing select KOs are
// highlighted on reference maps, either with fixed colors or with
// colors sampled from a colormap to reflect how many databases or
// genomes share the reaction.
package mapper

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/omicsdesk/genomaps/pkg/colormap"
	"github.com/omicsdesk/genomaps/pkg/kegg"
	"github.com/omicsdesk/genomaps/pkg/kgml"
	"github.com/omicsdesk/genomaps/pkg/mapper/status"
)

// DefaultColorHex is the fixed highlight color when none is chosen
const DefaultColorHex = "#2ca02c"

// ColorOriginal requests the reference map's own colors instead of a
// fixed highlight color
const ColorOriginal = "original"

// Color schemes for multi-source drawing
const (
	SchemeStatic     = "static"
	SchemeByCount    = "by_count"
	SchemeByDatabase = "by_database"
)

// Default colormaps per scheme
const (
	defaultCountColormap    = "plasma_r"
	defaultDatabaseColormap = "tab10"
)

var hexColorRx = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Mapper draws pathway map files under an output directory
type Mapper struct {
	kegg            *kegg.Context
	drawer          *kgml.Drawer
	fs              afero.Fs
	logger          *zap.Logger
	overwriteOutput bool
}

// New builds a Mapper over a KEGG data directory
func New(kctx *kegg.Context, opts ...Option) *Mapper {
	m := &Mapper{
		kegg:   kctx,
		fs:     kctx.FS(),
		logger: zap.NewNop(),
	}
	for _, apply := range opts {
		apply(m)
	}
	if m.drawer == nil {
		m.drawer = kgml.NewDrawer(kgml.DrawerWithFS(m.fs), kgml.DrawerWithLogger(m.logger))
	}
	return m
}

// DrawnMaps records, per pathway number, whether the map file was
// drawn. False means the map contained none of the select KOs and
// drawing maps lacking KOs was disabled.
type DrawnMaps map[string]bool

// Count of maps actually drawn
func (d DrawnMaps) Count() int {
	n := 0
	for _, drawn := range d {
		if drawn {
			n++
		}
	}
	return n
}

// MultiDrawn records the outputs of multi-source drawing: unified
// maps of all sources, per-source individual maps, and grids showing
// both side by side.
type MultiDrawn struct {
	Unified    DrawnMaps
	Individual map[string]DrawnMaps
	Grid       DrawnMaps
}

// Selection names the sources whose individual maps or grids are
// wanted: either all of them or an explicit subset
type Selection struct {
	All   bool
	Names []string
}

// Active tells whether the selection requests anything
func (s Selection) Active() bool {
	return s.All || len(s.Names) > 0
}

// ColormapSpec configures dynamic coloring of multi-source maps
type ColormapSpec struct {
	// Static disables dynamic coloring; the fixed ColorHex applies
	Static bool

	// Name of a built-in colormap; empty picks the scheme default
	Name string

	// Limits trim sampling to a fraction of the colormap. When nil,
	// scheme defaults apply.
	Limits *[2]float64

	// Scheme is by_count or by_database; empty resolves from the
	// number of sources
	Scheme string

	// ReverseOverlay draws reactions in fewer sources on top of those
	// in more sources
	ReverseOverlay bool
}

// DrawOptions parameterize the drawing operations. The zero value
// draws all available maps with the default fixed color.
type DrawOptions struct {
	// PathwayPatterns are regex patterns anchored at the start of the
	// five-digit pathway numbers; nil selects all available maps
	PathwayPatterns []string

	// ColorHex is the fixed highlight color, or ColorOriginal to keep
	// the reference map's colors; empty means DefaultColorHex
	ColorHex string

	// Colormap drives dynamic coloring in multi-source operations
	Colormap ColormapSpec

	// DrawIndividualFiles keeps per-source map files
	DrawIndividualFiles Selection

	// DrawGrid composes per-pathway grids of unified and individual maps
	DrawGrid Selection

	// DrawMapsLackingKOs draws maps even when they contain none of the
	// select KOs
	DrawMapsLackingKOs bool

	// NoColorbar suppresses the colorbar.pdf legend
	NoColorbar bool

	// ConsensusThreshold overrides the stored consensus proportion for
	// pan database drawing
	ConsensusThreshold *float64

	// DiscardTies overrides the stored tie handling for pan database
	// drawing
	DiscardTies *bool
}

func (o DrawOptions) colorHex() string {
	if o.ColorHex == "" {
		return DefaultColorHex
	}
	return o.ColorHex
}

// validateColorHex rejects malformed and reserved highlight colors
func validateColorHex(hex string) error {
	if hex == ColorOriginal {
		return nil
	}
	if !hexColorRx.MatchString(hex) {
		return status.ErrConfig.WrapMessage(nil,
			"%q is not a color hex code of the form #rrggbb", hex)
	}
	switch strings.ToUpper(hex) {
	case kgml.White, kgml.Black:
		return status.ErrReservedColor.WrapMessage(nil,
			"%s is reserved for map backgrounds and text, choose another highlight color", hex)
	}
	return nil
}

// mapFileName is the per-pathway output file name
func mapFileName(number string) string {
	return fmt.Sprintf("kos_%s.pdf", number)
}

// findMaps resolves the pathway numbers to draw and applies the
// overwrite guard against the output directory
func (m *Mapper) findMaps(outDir string, patterns []string) ([]string, error) {
	var numbers []string
	var err error
	if patterns == nil {
		numbers, err = m.kegg.AvailablePathwayNumbers()
	} else {
		numbers, err = m.kegg.SelectPathwayNumbers(patterns)
	}
	if err != nil {
		return nil, err
	}
	if err := m.guardOverwrite(outDir, numbers); err != nil {
		return nil, err
	}
	return numbers, nil
}

func (m *Mapper) guardOverwrite(outDir string, numbers []string) error {
	if m.overwriteOutput {
		return nil
	}
	for _, number := range numbers {
		path := filepath.Join(outDir, mapFileName(number))
		exists, err := afero.Exists(m.fs, path)
		if err != nil {
			return status.ErrDraw.Wrap(err)
		}
		if exists {
			return status.ErrOverwrite.WrapMessage(nil,
				"in the output directory %s; either delete the contents of the directory, "+
					"or enable overwriting output destinations", outDir)
		}
	}
	return nil
}

func (m *Mapper) ensureOutDir(outDir string) error {
	if err := m.fs.MkdirAll(outDir, 0755); err != nil {
		return status.ErrDraw.Wrap(err)
	}
	return nil
}

func (m *Mapper) loadPathway(number string) (*kgml.Pathway, error) {
	return kgml.Load(m.fs, m.kegg.KGMLPath(number))
}

// resolveSelection validates and dedupes a source selection against
// the known source names, preserving request order
func resolveSelection(sel Selection, sources []string) ([]string, error) {
	if !sel.Active() {
		return nil, nil
	}
	if sel.All {
		return append([]string(nil), sources...), nil
	}
	known := make(map[string]struct{}, len(sources))
	for _, source := range sources {
		known[source] = struct{}{}
	}
	var names []string
	seen := make(map[string]struct{})
	for _, name := range sel.Names {
		if _, ok := known[name]; !ok {
			return nil, status.ErrUnknownSource.WrapMessage(nil,
				"%q (known: %s)", name, strings.Join(sources, ", "))
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names, nil
}

// priorityColor pairs a sampled color with its display priority
type priorityColor struct {
	hex      string
	priority float64
}

// countPriorityColors samples one color per possible source count,
// the lowest count taking the lowest colormap value
func countPriorityColors(cmap colormap.Map, n int, reverse bool) []priorityColor {
	var colors []priorityColor
	for _, x := range colormap.Linspace(n) {
		priority := x
		if reverse {
			priority = 1 - x
		}
		colors = append(colors, priorityColor{hex: cmap.At(x).Hex(), priority: priority})
	}
	return colors
}

// comboPriorityColors samples one qualitative color per source
// combination
func comboPriorityColors(cmap colormap.Map, combos [][]string, reverse bool) ([]priorityColor, error) {
	listed, _ := cmap.(*colormap.Listed)
	n := 256
	if listed != nil {
		n = listed.N()
	}
	if len(combos) > n {
		return nil, status.ErrConfig.WrapMessage(nil,
			"%d source combinations exceed the %d colors of colormap %s",
			len(combos), n, cmap.Name())
	}
	var colors []priorityColor
	for i := range combos {
		var c colormap.Color
		if listed != nil {
			c = listed.Color(i)
		} else {
			c = cmap.At(float64(i) / float64(n))
		}
		priority := float64(i+1) / float64(n)
		if reverse {
			priority = 1 - float64(i)/float64(n)
		}
		colors = append(colors, priorityColor{hex: c.Hex(), priority: priority})
	}
	return colors, nil
}

// sourceCombos enumerates all combinations of the sources, by size
// then input order
func sourceCombos(sources []string) [][]string {
	var combos [][]string
	var build func(start int, current []string, size int)
	build = func(start int, current []string, size int) {
		if len(current) == size {
			combos = append(combos, append([]string(nil), current...))
			return
		}
		for i := start; i < len(sources); i++ {
			build(i+1, append(current, sources[i]), size)
		}
	}
	for size := 1; size <= len(sources); size++ {
		build(0, nil, size)
	}
	return combos
}

func comboKey(sources map[string]struct{}) string {
	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, "\x00")
}

// drawColorbarFile writes the colorbar legend next to the maps
func (m *Mapper) drawColorbarFile(outDir string, colors []priorityColor, labels []string, title string) error {
	hexes := make([]string, len(colors))
	for i, color := range colors {
		hexes[i] = color.hex
	}
	f, err := m.fs.Create(filepath.Join(outDir, "colorbar.pdf"))
	if err != nil {
		return status.ErrDraw.Wrap(err)
	}
	if err := kgml.DrawColorbar(kgml.Colorbar{Colors: hexes, Labels: labels, Title: title}, f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
