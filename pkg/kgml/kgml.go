// Package kgml models KEGG pathway maps from their KGML files and
// renders them to PDF after recoloring reaction graphics.
package kgml

import (
	"encoding/xml"
	"io"
	"strings"

	"github.com/spf13/afero"

	"github.com/omicsdesk/genomaps/pkg/kegg"
	"github.com/omicsdesk/genomaps/pkg/kgml/status"
)

// Entry types of interest in a KGML document
const (
	EntryTypeOrtholog = "ortholog"
	EntryTypeCompound = "compound"
	EntryTypeMap      = "map"
	EntryTypeGene     = "gene"
	EntryTypeGroup    = "group"
)

// Graphics types
const (
	GraphicsTypeRectangle      = "rectangle"
	GraphicsTypeRoundRectangle = "roundrectangle"
	GraphicsTypeCircle         = "circle"
	GraphicsTypeLine           = "line"
)

// Reserved colors. White is the background of recolored reaction
// lines and black the text of recolored boxes, so neither may be
// requested as a highlight color.
const (
	White = "#FFFFFF"
	Black = "#000000"

	// FgUndrawn marks graphics of unselected entries before color
	// priorities are applied, so they cannot be confused with
	// prioritized graphics sharing the same original colors.
	FgUndrawn = "0"
)

// Pathway is the root element of a KGML document
type Pathway struct {
	XMLName xml.Name `xml:"pathway"`
	Name    string   `xml:"name,attr"`
	Org     string   `xml:"org,attr"`
	Number  string   `xml:"number,attr"`
	Title   string   `xml:"title,attr"`
	Image   string   `xml:"image,attr"`
	Link    string   `xml:"link,attr"`

	Entries   []*Entry    `xml:"entry"`
	Relations []*Relation `xml:"relation"`
	Reactions []*Reaction `xml:"reaction"`
}

// Entry is a node of the pathway: an ortholog reaction, a compound,
// a link to another map...
type Entry struct {
	ID       string      `xml:"id,attr"`
	Name     string      `xml:"name,attr"`
	Type     string      `xml:"type,attr"`
	Reaction string      `xml:"reaction,attr"`
	Link     string      `xml:"link,attr"`
	Graphics []*Graphics `xml:"graphics"`

	// set by SetColorPriority
	prioritized bool
	priority    float64
}

// Graphics is the drawable shape of an entry
type Graphics struct {
	Name    string  `xml:"name,attr"`
	Type    string  `xml:"type,attr"`
	X       float64 `xml:"x,attr"`
	Y       float64 `xml:"y,attr"`
	Width   float64 `xml:"width,attr"`
	Height  float64 `xml:"height,attr"`
	Coords  string  `xml:"coords,attr"`
	FgColor string  `xml:"fgcolor,attr"`
	BgColor string  `xml:"bgcolor,attr"`
}

// Relation is an edge between two entries
type Relation struct {
	Entry1   string     `xml:"entry1,attr"`
	Entry2   string     `xml:"entry2,attr"`
	Type     string     `xml:"type,attr"`
	Subtypes []*Subtype `xml:"subtype"`
}

// Subtype qualifies a relation
type Subtype struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

// Reaction ties ortholog entries to the compounds they consume and produce
type Reaction struct {
	ID         string         `xml:"id,attr"`
	Name       string         `xml:"name,attr"`
	Type       string         `xml:"type,attr"`
	Substrates []*ReactionRef `xml:"substrate"`
	Products   []*ReactionRef `xml:"product"`
}

// ReactionRef names a substrate or product compound
type ReactionRef struct {
	ID   string `xml:"id,attr"`
	Name string `xml:"name,attr"`
}

// Parse decodes a KGML document
func Parse(r io.Reader) (*Pathway, error) {
	var pathway Pathway
	dec := xml.NewDecoder(r)
	// KGML documents declare a DTD; no external entities are needed
	dec.Strict = false
	if err := dec.Decode(&pathway); err != nil {
		return nil, status.ErrParse.Wrap(err)
	}
	if pathway.Number == "" {
		return nil, status.ErrParse.WrapMessage(nil, "pathway element carries no number")
	}
	return &pathway, nil
}

// Load reads and decodes a KGML file
func Load(fs afero.Fs, path string) (*Pathway, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, status.ErrNotExists.Wrap(err)
	}
	defer f.Close()
	p, err := Parse(f)
	if err != nil {
		return nil, status.ErrParse.WrapMessage(err, "file %s", path)
	}
	return p, nil
}

// IsGlobalMap tells whether this pathway is a global metabolism map
func (p *Pathway) IsGlobalMap() bool {
	return kegg.IsGlobalMapID(p.Number)
}

// IsOverviewMap tells whether this pathway is an overview map
func (p *Pathway) IsOverviewMap() bool {
	return kegg.IsOverviewMapID(p.Number)
}

// EntriesOfType returns entries of the given KGML type
func (p *Pathway) EntriesOfType(entryType string) []*Entry {
	var entries []*Entry
	for _, entry := range p.Entries {
		if entry.Type == entryType {
			entries = append(entries, entry)
		}
	}
	return entries
}

// KEGGIDs splits the entry name attribute into bare identifiers,
// dropping the "ko:"/"cpd:" style prefixes
func (e *Entry) KEGGIDs() []string {
	var ids []string
	for _, token := range strings.Fields(e.Name) {
		if i := strings.IndexByte(token, ':'); i >= 0 {
			ids = append(ids, token[i+1:])
		} else {
			ids = append(ids, token)
		}
	}
	return ids
}

// EntriesMatchingKEGGIDs returns entries naming any of the given
// identifiers, e.g. KO accessions for ortholog entries
func (p *Pathway) EntriesMatchingKEGGIDs(ids map[string]struct{}) []*Entry {
	var entries []*Entry
	for _, entry := range p.Entries {
		for _, id := range entry.KEGGIDs() {
			if _, ok := ids[id]; ok {
				entries = append(entries, entry)
				break
			}
		}
	}
	return entries
}

// Prioritized tells whether SetColorPriority selected this entry,
// and with which priority
func (e *Entry) Prioritized() (float64, bool) {
	return e.priority, e.prioritized
}

// IDSet is a convenience constructor for EntriesMatchingKEGGIDs
func IDSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
