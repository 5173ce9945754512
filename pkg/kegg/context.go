// Package kegg locates reference data in a KEGG data directory:
// the pathway index and the KGML files used to draw pathway maps.
package kegg

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"github.com/omicsdesk/genomaps/pkg/kegg/status"
)

// Pathway map ID classes. KOs are drawn as reaction lines in global
// maps and as reaction arrows in overview maps; elsewhere as boxes.
var (
	globalMapIDRe   = regexp.MustCompile(`^011\d{2}$`)
	overviewMapIDRe = regexp.MustCompile(`^012\d{2}$`)
)

// IsGlobalMapID tells whether a five-digit pathway number denotes a global map
func IsGlobalMapID(number string) bool {
	return globalMapIDRe.MatchString(number)
}

// IsOverviewMapID tells whether a five-digit pathway number denotes an overview map
func IsOverviewMapID(number string) bool {
	return overviewMapIDRe.MatchString(number)
}

// Context resolves files under a KEGG data directory, as laid out by
// the data setup tooling
type Context struct {
	dir string
	fs  afero.Fs
}

// Option configures a Context
type Option func(*Context)

// WithFS overrides the filesystem, e.g. for testing
func WithFS(fs afero.Fs) Option {
	return func(c *Context) {
		c.fs = fs
	}
}

// DefaultDir is the data directory used when none is configured
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".genomaps", "kegg")
}

// NewContext builds a Context rooted at dir, or at DefaultDir() when
// dir is empty. The directory must exist.
func NewContext(dir string, opts ...Option) (*Context, error) {
	if dir == "" {
		dir = DefaultDir()
	}
	c := &Context{dir: dir, fs: afero.NewOsFs()}
	for _, apply := range opts {
		apply(c)
	}
	ok, err := afero.DirExists(c.fs, dir)
	if err != nil {
		return nil, status.ErrDataDir.Wrap(err)
	}
	if !ok {
		return nil, status.ErrDataDir.WrapMessage(nil, "%q does not exist", dir)
	}
	return c, nil
}

// Dir is the data directory root
func (c *Context) Dir() string { return c.dir }

// FS is the filesystem the data directory lives on
func (c *Context) FS() afero.Fs { return c.fs }

// IndexFile is the tab-delimited pathway index, with per-map counts
// of KO, EC and RN annotated elements in the KGML files
func (c *Context) IndexFile() string {
	return filepath.Join(c.dir, "map_images", "kgml.tsv")
}

// KGMLPath returns the KGML file used to draw the given pathway. A 1x
// resolution KO file underlies global maps, a 2x file all others.
func (c *Context) KGMLPath(number string) string {
	if IsGlobalMapID(number) {
		return filepath.Join(c.dir, "kgml", "1x", "ko", fmt.Sprintf("ko%s.xml", number))
	}
	return filepath.Join(c.dir, "kgml", "2x", "ko", fmt.Sprintf("ko%s.xml", number))
}

// AvailablePathwayNumbers lists the five-digit numbers of pathways
// set up in the data directory, skipping maps without any KO, EC or
// RN annotated element, in index order.
func (c *Context) AvailablePathwayNumbers() ([]string, error) {
	f, err := c.fs.Open(c.IndexFile())
	if err != nil {
		return nil, status.ErrDataDir.Wrap(err)
	}
	defer f.Close()

	var numbers []string
	scanner := bufio.NewScanner(f)
	first := true
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" {
			continue
		}
		if first {
			// header: map_id, KO, EC, RN
			first = false
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 4 {
			return nil, status.ErrIndexFormat.WrapMessage(nil, "line %q", line)
		}
		total := 0
		for _, field := range fields[1:4] {
			n, err := strconv.Atoi(field)
			if err != nil {
				return nil, status.ErrIndexFormat.WrapMessage(err, "line %q", line)
			}
			total += n
		}
		if total == 0 {
			continue
		}
		mapID := fields[0]
		if len(mapID) < 5 {
			return nil, status.ErrIndexFormat.WrapMessage(nil, "map id %q", mapID)
		}
		numbers = append(numbers, mapID[len(mapID)-5:])
	}
	if err := scanner.Err(); err != nil {
		return nil, status.ErrDataDir.Wrap(err)
	}
	return numbers, nil
}

// SelectPathwayNumbers matches regex patterns against the available
// pathway numbers. Matches anchor at the start of the number, keep
// the order in which patterns produce them and are deduplicated.
func (c *Context) SelectPathwayNumbers(patterns []string) ([]string, error) {
	available, err := c.AvailablePathwayNumbers()
	if err != nil {
		return nil, err
	}
	if patterns == nil {
		return available, nil
	}

	var selected []string
	seen := make(map[string]struct{})
	for _, pattern := range patterns {
		re, err := regexp.Compile("^(?:" + pattern + ")")
		if err != nil {
			return nil, status.ErrPattern.WrapMessage(err, "%q", pattern)
		}
		for _, number := range available {
			if !re.MatchString(number) {
				continue
			}
			if _, ok := seen[number]; ok {
				continue
			}
			seen[number] = struct{}{}
			selected = append(selected, number)
		}
	}
	return selected, nil
}
