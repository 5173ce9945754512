package projdb

import (
	"bufio"
	"strings"

	"github.com/spf13/afero"

	"github.com/omicsdesk/genomaps/pkg/projdb/status"
)

// externalGenomesHeader is the exact header required of an external
// genomes file
var externalGenomesHeader = []string{"name", "contigs_db_path"}

// ExternalGenome is one row of an external genomes file
type ExternalGenome struct {
	Name          string
	ContigsDBPath string
}

// ReadExternalGenomes parses a tab-delimited external genomes file.
// The header line must be exactly `name<TAB>contigs_db_path`.
func ReadExternalGenomes(fs afero.Fs, path string) ([]ExternalGenome, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, status.ErrNotExists.Wrap(err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, status.ErrExternalGenomes.Wrap(err)
		}
		return nil, status.ErrExternalGenomes.WrapMessage(nil, "%s is empty", path)
	}
	header := strings.Split(strings.TrimRight(scanner.Text(), "\r\n"), "\t")
	if len(header) != len(externalGenomesHeader) ||
		header[0] != externalGenomesHeader[0] || header[1] != externalGenomesHeader[1] {
		return nil, status.ErrExternalGenomes.WrapMessage(nil,
			"%s: header must be exactly %q, got %q",
			path, strings.Join(externalGenomesHeader, "\t"), strings.Join(header, "\t"))
	}

	var genomes []ExternalGenome
	seen := make(map[string]struct{})
	line := 1
	for scanner.Scan() {
		line++
		text := strings.TrimRight(scanner.Text(), "\r\n")
		if text == "" {
			continue
		}
		fields := strings.Split(text, "\t")
		if len(fields) != 2 || fields[0] == "" || fields[1] == "" {
			return nil, status.ErrExternalGenomes.WrapMessage(nil,
				"%s line %d: expected two tab-delimited values", path, line)
		}
		if _, ok := seen[fields[0]]; ok {
			return nil, status.ErrExternalGenomes.WrapMessage(nil,
				"%s line %d: duplicate genome name %q", path, line, fields[0])
		}
		seen[fields[0]] = struct{}{}
		genomes = append(genomes, ExternalGenome{Name: fields[0], ContigsDBPath: fields[1]})
	}
	if err := scanner.Err(); err != nil {
		return nil, status.ErrExternalGenomes.Wrap(err)
	}
	if genomes == nil {
		return nil, status.ErrExternalGenomes.WrapMessage(nil, "%s lists no genomes", path)
	}
	return genomes, nil
}
