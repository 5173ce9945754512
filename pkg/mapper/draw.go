package mapper

import (
	"path/filepath"

	"go.uber.org/zap"

	"github.com/omicsdesk/genomaps/pkg/colormap"
	"github.com/omicsdesk/genomaps/pkg/kgml"
	"github.com/omicsdesk/genomaps/pkg/mapper/status"
)

// overviewLineWidth widens colored reaction lines in overview maps
// from the base map default of 1.0
const overviewLineWidth = 5.0

// mapKOsFixedColors draws the given maps, highlighting reactions
// containing select KOs in a single color or the reference colors
func (m *Mapper) mapKOsFixedColors(
	koIDs []string,
	outDir string,
	numbers []string,
	colorHex string,
	lackingOK bool,
) (DrawnMaps, error) {
	if err := m.guardOverwrite(outDir, numbers); err != nil {
		return nil, err
	}
	if err := m.ensureOutDir(outDir); err != nil {
		return nil, err
	}

	ids := kgml.IDSet(koIDs)
	drawn := make(DrawnMaps, len(numbers))
	for _, number := range numbers {
		var ok bool
		var err error
		if colorHex == ColorOriginal {
			ok, err = m.drawMapKOsOriginalColor(number, ids, outDir, lackingOK)
		} else {
			ok, err = m.drawMapKOsSingleColor(number, ids, colorHex, outDir, lackingOK)
		}
		if err != nil {
			return nil, err
		}
		drawn[number] = ok
	}
	m.logger.Debug("drew maps with fixed colors",
		zap.String("dir", outDir), zap.Int("count", drawn.Count()))
	return drawn, nil
}

// drawMapKOsSingleColor highlights reactions containing select KOs in
// one color. In global and overview maps the foreground of reaction
// lines is set; in standard maps the background of reaction boxes.
func (m *Mapper) drawMapKOsSingleColor(
	number string,
	koIDs map[string]struct{},
	colorHex string,
	outDir string,
	lackingOK bool,
) (bool, error) {
	pathway, err := m.loadPathway(number)
	if err != nil {
		return false, err
	}

	selected := pathway.EntriesMatchingKEGGIDs(koIDs)
	if len(selected) == 0 && !lackingOK {
		return false, nil
	}
	selectedSet := make(map[*kgml.Entry]struct{}, len(selected))
	for _, entry := range selected {
		selectedSet[entry] = struct{}{}
	}

	for _, entry := range pathway.EntriesOfType(kgml.EntryTypeOrtholog) {
		if _, ok := selectedSet[entry]; !ok {
			// a nonsense foreground keeps unselected entries apart from
			// prioritized ones sharing the same original colors
			for _, graphics := range entry.Graphics {
				graphics.FgColor = kgml.FgUndrawn
			}
			continue
		}
		for _, graphics := range entry.Graphics {
			switch {
			case pathway.IsGlobalMap():
				graphics.FgColor = colorHex
				graphics.BgColor = kgml.White
			case pathway.IsOverviewMap():
				graphics.FgColor = colorHex
				graphics.BgColor = kgml.White
				graphics.Width = overviewLineWidth
			default:
				graphics.FgColor = kgml.Black
				graphics.BgColor = colorHex
			}
		}
	}

	spec := kgml.PrioritySpec{}
	switch {
	case pathway.IsGlobalMap():
		spec.Ortholog = map[kgml.ColorPair]float64{{Fg: colorHex, Bg: kgml.White}: 1}
		spec.RecolorUnprioritized = kgml.RecolorGray
		spec.ColorAssociatedCompounds = kgml.CompoundsHigh
	case pathway.IsOverviewMap():
		spec.Ortholog = map[kgml.ColorPair]float64{{Fg: colorHex, Bg: kgml.White}: 1}
		spec.RecolorUnprioritized = kgml.RecolorWhite
		spec.ColorAssociatedCompounds = kgml.CompoundsHigh
	default:
		spec.Ortholog = map[kgml.ColorPair]float64{{Fg: kgml.Black, Bg: colorHex}: 1}
		spec.RecolorUnprioritized = kgml.RecolorWhite
	}
	pathway.SetColorPriority(spec)

	if err := m.writeMap(pathway, filepath.Join(outDir, mapFileName(number))); err != nil {
		return false, err
	}
	return true, nil
}

// drawMapKOsOriginalColor keeps the reference map colors of reactions
// containing select KOs and repaints everything else
func (m *Mapper) drawMapKOsOriginalColor(
	number string,
	koIDs map[string]struct{},
	outDir string,
	lackingOK bool,
) (bool, error) {
	pathway, err := m.loadPathway(number)
	if err != nil {
		return false, err
	}

	selected := pathway.EntriesMatchingKEGGIDs(koIDs)
	if len(selected) == 0 && !lackingOK {
		return false, nil
	}
	selectedSet := make(map[*kgml.Entry]struct{}, len(selected))
	for _, entry := range selected {
		selectedSet[entry] = struct{}{}
	}

	// Secondary colors: white line backgrounds, black box text. Pairs
	// encountered later get higher priority, so that KGML order wins as
	// it would in the reference rendering.
	var orderedPairs []kgml.ColorPair
	seenPairs := make(map[kgml.ColorPair]struct{})
	for _, entry := range pathway.EntriesOfType(kgml.EntryTypeOrtholog) {
		if _, ok := selectedSet[entry]; !ok {
			for _, graphics := range entry.Graphics {
				graphics.FgColor = kgml.FgUndrawn
			}
			continue
		}
		for _, graphics := range entry.Graphics {
			switch {
			case pathway.IsGlobalMap():
				graphics.BgColor = kgml.White
			case pathway.IsOverviewMap():
				graphics.BgColor = kgml.White
				graphics.Width = overviewLineWidth
			default:
				graphics.FgColor = kgml.Black
			}
			pair := kgml.ColorPair{Fg: graphics.FgColor, Bg: graphics.BgColor}
			if _, ok := seenPairs[pair]; !ok {
				seenPairs[pair] = struct{}{}
				orderedPairs = append(orderedPairs, pair)
			}
		}
	}

	ortholog := make(map[kgml.ColorPair]float64, len(orderedPairs))
	for i, pair := range orderedPairs {
		ortholog[pair] = float64(i+1) / float64(len(orderedPairs))
	}

	spec := kgml.PrioritySpec{Ortholog: ortholog}
	switch {
	case pathway.IsGlobalMap():
		spec.RecolorUnprioritized = kgml.RecolorGray
		spec.ColorAssociatedCompounds = kgml.CompoundsHigh
	case pathway.IsOverviewMap():
		spec.RecolorUnprioritized = kgml.RecolorWhite
		spec.ColorAssociatedCompounds = kgml.CompoundsHigh
	default:
		spec.RecolorUnprioritized = kgml.RecolorWhite
	}
	pathway.SetColorPriority(spec)

	if err := m.writeMap(pathway, filepath.Join(outDir, mapFileName(number))); err != nil {
		return false, err
	}
	return true, nil
}

// drawMapKOsMembership colors reactions by the sources containing
// their KOs: by source count, or, with combos, by the exact source
// combination
func (m *Mapper) drawMapKOsMembership(
	number string,
	membership map[string][]string,
	colors []priorityColor,
	outDir string,
	cmap colormap.Map,
	combos [][]string,
	lackingOK bool,
) (bool, error) {
	pathway, err := m.loadPathway(number)
	if err != nil {
		return false, err
	}

	ids := make(map[string]struct{}, len(membership))
	for id := range membership {
		ids[id] = struct{}{}
	}
	selected := pathway.EntriesMatchingKEGGIDs(ids)
	if len(selected) == 0 && !lackingOK {
		return false, nil
	}

	comboIndex := make(map[string]int, len(combos))
	for i, combo := range combos {
		set := make(map[string]struct{}, len(combo))
		for _, name := range combo {
			set[name] = struct{}{}
		}
		comboIndex[comboKey(set)] = i
	}

	// A reaction entry can represent several KOs; its color reflects
	// the union of their sources.
	for _, entry := range selected {
		sources := make(map[string]struct{})
		for _, id := range entry.KEGGIDs() {
			for _, source := range membership[id] {
				sources[source] = struct{}{}
			}
		}
		if len(sources) == 0 {
			continue
		}

		var color priorityColor
		if combos == nil {
			color = colors[len(sources)-1]
		} else {
			i, ok := comboIndex[comboKey(sources)]
			if !ok {
				return false, status.ErrDraw.WrapMessage(nil,
					"no color for source combination of entry %s in map %s", entry.ID, number)
			}
			color = colors[i]
		}
		for _, graphics := range entry.Graphics {
			switch {
			case pathway.IsGlobalMap():
				graphics.FgColor = color.hex
				graphics.BgColor = kgml.White
			case pathway.IsOverviewMap():
				graphics.FgColor = color.hex
				graphics.BgColor = kgml.White
				graphics.Width = overviewLineWidth
			default:
				graphics.FgColor = kgml.Black
				graphics.BgColor = color.hex
			}
		}
	}
	selectedSet := make(map[*kgml.Entry]struct{}, len(selected))
	for _, entry := range selected {
		selectedSet[entry] = struct{}{}
	}
	for _, entry := range pathway.EntriesOfType(kgml.EntryTypeOrtholog) {
		if _, ok := selectedSet[entry]; ok {
			continue
		}
		for _, graphics := range entry.Graphics {
			graphics.FgColor = kgml.FgUndrawn
		}
	}

	ortholog := make(map[kgml.ColorPair]float64, len(colors))
	for _, color := range colors {
		if pathway.IsGlobalMap() || pathway.IsOverviewMap() {
			ortholog[kgml.ColorPair{Fg: color.hex, Bg: kgml.White}] = color.priority
		} else {
			ortholog[kgml.ColorPair{Fg: kgml.Black, Bg: color.hex}] = color.priority
		}
	}
	spec := kgml.PrioritySpec{Ortholog: ortholog}
	switch {
	case pathway.IsGlobalMap():
		spec.RecolorUnprioritized = kgml.RecolorGray
		spec.ColorAssociatedCompounds = kgml.CompoundsHigh
		spec.Colormap = cmap
	case pathway.IsOverviewMap():
		spec.RecolorUnprioritized = kgml.RecolorWhite
		spec.ColorAssociatedCompounds = kgml.CompoundsHigh
		spec.Colormap = cmap
	default:
		spec.RecolorUnprioritized = kgml.RecolorWhite
	}
	pathway.SetColorPriority(spec)

	if err := m.writeMap(pathway, filepath.Join(outDir, mapFileName(number))); err != nil {
		return false, err
	}
	return true, nil
}

func (m *Mapper) writeMap(pathway *kgml.Pathway, path string) error {
	if m.overwriteOutput {
		// fs.Create truncates, but a stale file must not survive a
		// failed render
		_ = m.fs.Remove(path)
	}
	return m.drawer.DrawMapFile(pathway, path)
}
