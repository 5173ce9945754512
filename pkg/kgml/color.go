package kgml

import (
	"strings"

	"github.com/omicsdesk/genomaps/pkg/colormap"
)

// ColorPair is the foreground/background color combination of a
// graphics element
type ColorPair struct {
	Fg string
	Bg string
}

// Recolor selects how unprioritized reaction graphics are repainted
type Recolor string

// Recoloring modes for unprioritized entries
const (
	RecolorNone  Recolor = ""
	RecolorWhite Recolor = "w"
	RecolorGray  Recolor = "g"
)

// CompoundColoring selects how compound circles take the color of
// prioritized reactions involving them
type CompoundColoring string

// Compound coloring modes
const (
	CompoundsNone CompoundColoring = ""
	CompoundsHigh CompoundColoring = "high"
	CompoundsLow  CompoundColoring = "low"
)

const grayRecolor = "#DCDCDC"

// PrioritySpec drives SetColorPriority
type PrioritySpec struct {
	// Ortholog maps color pairs of ortholog graphics to a display
	// priority in [0, 1]. Entries carrying a prioritized pair are
	// drawn over entries with lower priorities.
	Ortholog map[ColorPair]float64

	// RecolorUnprioritized repaints ortholog entries without a
	// prioritized color pair
	RecolorUnprioritized Recolor

	// ColorAssociatedCompounds colors compound circles after the
	// highest or lowest priority reaction involving the compound
	ColorAssociatedCompounds CompoundColoring

	// Colormap, when set, interpolates compound colors from the
	// priority value instead of reusing the reaction color verbatim
	Colormap colormap.Map
}

// SetColorPriority records display priorities on ortholog entries
// from their current colors, repaints unprioritized entries, and
// optionally propagates colors to associated compound circles.
//
// Callers first assign highlight colors to the graphics of selected
// entries, then use this to fix the overlay order of the final
// rendering.
func (p *Pathway) SetColorPriority(spec PrioritySpec) {
	for _, entry := range p.EntriesOfType(EntryTypeOrtholog) {
		entry.prioritized = false
		entry.priority = 0
		for _, graphics := range entry.Graphics {
			priority, ok := spec.Ortholog[ColorPair{Fg: graphics.FgColor, Bg: graphics.BgColor}]
			if !ok {
				continue
			}
			if !entry.prioritized || priority > entry.priority {
				entry.priority = priority
			}
			entry.prioritized = true
		}
		if entry.prioritized {
			continue
		}
		switch spec.RecolorUnprioritized {
		case RecolorWhite:
			for _, graphics := range entry.Graphics {
				graphics.FgColor = White
				graphics.BgColor = White
			}
		case RecolorGray:
			for _, graphics := range entry.Graphics {
				graphics.FgColor = grayRecolor
				graphics.BgColor = White
			}
		}
	}

	if spec.ColorAssociatedCompounds != CompoundsNone {
		p.colorAssociatedCompounds(spec)
	}
}

// reactionHighlight is the display color and priority a reaction
// inherited from a prioritized ortholog entry
type reactionHighlight struct {
	color    string
	priority float64
}

func (p *Pathway) colorAssociatedCompounds(spec PrioritySpec) {
	// Index prioritized ortholog entries by the reactions they catalyze.
	highlights := make(map[string]reactionHighlight)
	for _, entry := range p.EntriesOfType(EntryTypeOrtholog) {
		if !entry.prioritized || len(entry.Graphics) == 0 {
			continue
		}
		// In global and overview maps the highlight is the line
		// foreground color.
		color := entry.Graphics[0].FgColor
		for _, token := range strings.Fields(entry.Reaction) {
			id := bareID(token)
			current, ok := highlights[id]
			if !ok || pickPriority(spec.ColorAssociatedCompounds, entry.priority, current.priority) {
				highlights[id] = reactionHighlight{color: color, priority: entry.priority}
			}
		}
	}
	if len(highlights) == 0 {
		return
	}

	// Index reactions by their substrate and product compounds.
	compoundReactions := make(map[string][]string)
	for _, reaction := range p.Reactions {
		reactionID := bareID(reaction.Name)
		for _, ref := range append(reaction.Substrates, reaction.Products...) {
			compoundID := bareID(ref.Name)
			compoundReactions[compoundID] = append(compoundReactions[compoundID], reactionID)
		}
	}

	for _, entry := range p.EntriesOfType(EntryTypeCompound) {
		var best reactionHighlight
		found := false
		for _, compoundID := range entry.KEGGIDs() {
			for _, reactionID := range compoundReactions[compoundID] {
				highlight, ok := highlights[reactionID]
				if !ok {
					continue
				}
				if !found || pickPriority(spec.ColorAssociatedCompounds, highlight.priority, best.priority) {
					best = highlight
					found = true
				}
			}
		}
		if !found {
			continue
		}
		color := best.color
		if spec.Colormap != nil {
			color = strings.ToUpper(spec.Colormap.At(best.priority).Hex())
		}
		for _, graphics := range entry.Graphics {
			graphics.FgColor = color
			graphics.BgColor = color
		}
		entry.prioritized = true
		entry.priority = best.priority
	}
}

// pickPriority tells whether candidate should replace current under
// the given compound coloring mode
func pickPriority(mode CompoundColoring, candidate, current float64) bool {
	if mode == CompoundsLow {
		return candidate < current
	}
	return candidate > current
}

func bareID(token string) string {
	// first token only: reaction names may list several "rn:RXXXXX"
	token = strings.TrimSpace(token)
	if i := strings.IndexByte(token, ' '); i >= 0 {
		token = token[:i]
	}
	if i := strings.IndexByte(token, ':'); i >= 0 {
		return token[i+1:]
	}
	return token
}
