package projdb

import (
	"context"

	"github.com/omicsdesk/genomaps/pkg/projdb/status"
)

// ContigsDB is a project database describing the sequences and
// annotations of a single genome or metagenome
type ContigsDB struct {
	*DB
}

// OpenContigs opens a contigs database
func OpenContigs(ctx context.Context, path string) (*ContigsDB, error) {
	db, err := OpenTyped(ctx, path, TypeContigs)
	if err != nil {
		return nil, err
	}
	return &ContigsDB{DB: db}, nil
}

// FunctionSources lists the gene function annotation sources run on
// this database
func (c *ContigsDB) FunctionSources() []string {
	return splitCommaList(c.self[selfFunctionSources])
}

// RequireKOfam verifies the database has been annotated with KOfam
func (c *ContigsDB) RequireKOfam() error {
	for _, source := range c.FunctionSources() {
		if source == KOfamSource {
			return nil
		}
	}
	return status.ErrMissingAnnotation.WrapMessage(nil, "%s", c.path)
}

// KOAccessions returns the distinct KO accessions annotating genes of
// this database
func (c *ContigsDB) KOAccessions(ctx context.Context) ([]string, error) {
	return c.stringColumn(ctx,
		`SELECT DISTINCT accession FROM gene_functions WHERE source = ? ORDER BY accession`,
		KOfamSource,
	)
}
