package projdb

import (
	"context"
	"database/sql"

	"github.com/omicsdesk/genomaps/pkg/projdb/status"
)

// GenomeStorage is a database pooling the gene calls and annotations
// of several genomes, the companion of a pan database
type GenomeStorage struct {
	*DB
}

// OpenGenomeStorage opens a genome storage database
func OpenGenomeStorage(ctx context.Context, path string) (*GenomeStorage, error) {
	db, err := OpenTyped(ctx, path, TypeGenomeStorage)
	if err != nil {
		return nil, err
	}
	return &GenomeStorage{DB: db}, nil
}

// GenomeNames lists the genomes pooled in storage
func (g *GenomeStorage) GenomeNames(ctx context.Context) ([]string, error) {
	return g.stringColumn(ctx,
		`SELECT DISTINCT genome_name FROM genome_info ORDER BY genome_name`)
}

// HasGenome tells whether a genome is present in storage
func (g *GenomeStorage) HasGenome(ctx context.Context, genome string) (bool, error) {
	names, err := g.GenomeNames(ctx)
	if err != nil {
		return false, err
	}
	for _, name := range names {
		if name == genome {
			return true, nil
		}
	}
	return false, nil
}

// GenomeKOAccessions returns the distinct KO accessions annotating
// genes of one genome
func (g *GenomeStorage) GenomeKOAccessions(ctx context.Context, genome string) ([]string, error) {
	ok, err := g.HasGenome(ctx, genome)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, status.ErrUnknownGenome.WrapMessage(nil, "%q in %s", genome, g.path)
	}
	return g.stringColumn(ctx,
		`SELECT DISTINCT accession FROM gene_function_calls
		 WHERE genome_name = ? AND source = ? ORDER BY accession`,
		genome, KOfamSource,
	)
}

// KOAnnotations returns, per genome, the KO accession of each
// annotated gene
func (g *GenomeStorage) KOAnnotations(ctx context.Context) (map[string]map[int64]string, error) {
	rows, err := g.sqldb.QueryContext(ctx,
		`SELECT genome_name, gene_callers_id, accession FROM gene_function_calls WHERE source = ?`,
		KOfamSource,
	)
	if err != nil {
		return nil, status.ErrQuery.WrapMessage(err, "%s", g.path)
	}
	defer rows.Close()

	annotations := make(map[string]map[int64]string)
	for rows.Next() {
		var genome string
		var geneID int64
		var accession sql.NullString
		if err := rows.Scan(&genome, &geneID, &accession); err != nil {
			return nil, status.ErrQuery.Wrap(err)
		}
		if !accession.Valid || accession.String == "" {
			continue
		}
		genes, ok := annotations[genome]
		if !ok {
			genes = make(map[int64]string)
			annotations[genome] = genes
		}
		genes[geneID] = accession.String
	}
	if err := rows.Err(); err != nil {
		return nil, status.ErrQuery.Wrap(err)
	}
	return annotations, nil
}
