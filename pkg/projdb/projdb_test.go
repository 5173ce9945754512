package projdb

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omicsdesk/genomaps/pkg/errors"
	"github.com/omicsdesk/genomaps/pkg/projdb/status"
)

func makeDB(t *testing.T, name string, stmts ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	sqldb, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer func() { require.NoError(t, sqldb.Close()) }()
	for _, stmt := range stmts {
		_, err := sqldb.Exec(stmt)
		require.NoError(t, err, stmt)
	}
	return path
}

func makeContigsDB(t *testing.T, project string) string {
	t.Helper()
	return makeDB(t, project+".db",
		`CREATE TABLE self (key TEXT, value TEXT)`,
		`INSERT INTO self VALUES
			('db_type', 'contigs'),
			('version', '24'),
			('project_name', '`+project+`'),
			('gene_function_sources', 'COG20_FUNCTION,KOfam')`,
		`CREATE TABLE gene_functions (
			gene_callers_id INTEGER, source TEXT, accession TEXT, function TEXT, e_value REAL)`,
		`INSERT INTO gene_functions VALUES
			(0, 'KOfam', 'K00001', 'alcohol dehydrogenase', 1e-30),
			(1, 'KOfam', 'K00002', 'AKR1A1', 1e-25),
			(2, 'KOfam', 'K00001', 'alcohol dehydrogenase', 1e-20),
			(3, 'COG20_FUNCTION', 'COG1012', 'dehydrogenase', 1e-10)`,
	)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	path := makeContigsDB(t, "ecoli")

	db, err := Open(ctx, path)
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, path, db.Path())
	assert.Equal(t, TypeContigs, db.Type())
	assert.Equal(t, "24", db.Version())
	assert.Equal(t, "ecoli", db.ProjectName())

	sources, ok := db.SelfValue("gene_function_sources")
	assert.True(t, ok)
	assert.Equal(t, "COG20_FUNCTION,KOfam", sources)
}

func TestOpenMissing(t *testing.T) {
	_, err := Open(context.Background(), filepath.Join(t.TempDir(), "nope.db"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrNotExists))
}

func TestOpenNotADatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.txt")
	require.NoError(t, os.WriteFile(path, []byte("not sqlite at all\n"), 0600))

	_, err := Open(context.Background(), path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrNotDatabase))
}

func TestOpenNoDBType(t *testing.T) {
	path := makeDB(t, "untyped.db",
		`CREATE TABLE self (key TEXT, value TEXT)`,
		`INSERT INTO self VALUES ('version', '24')`,
	)
	_, err := Open(context.Background(), path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrNotDatabase))
}

func TestOpenTypedMismatch(t *testing.T) {
	path := makeContigsDB(t, "ecoli")
	_, err := OpenTyped(context.Background(), path, TypePan, TypeProfile)
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrDBType))
	assert.Contains(t, err.Error(), `"contigs"`)
}

func TestContigsKOAccessions(t *testing.T) {
	ctx := context.Background()
	db, err := OpenContigs(ctx, makeContigsDB(t, "ecoli"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.RequireKOfam())
	assert.Equal(t, []string{"COG20_FUNCTION", "KOfam"}, db.FunctionSources())

	accessions, err := db.KOAccessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"K00001", "K00002"}, accessions)
}

func TestContigsRequireKOfamMissing(t *testing.T) {
	path := makeDB(t, "bare.db",
		`CREATE TABLE self (key TEXT, value TEXT)`,
		`INSERT INTO self VALUES
			('db_type', 'contigs'), ('project_name', 'bare'),
			('gene_function_sources', 'COG20_FUNCTION')`,
	)
	db, err := OpenContigs(context.Background(), path)
	require.NoError(t, err)
	defer db.Close()

	err = db.RequireKOfam()
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrMissingAnnotation))
}

func makeGenomeStorage(t *testing.T) string {
	t.Helper()
	return makeDB(t, "storage.db",
		`CREATE TABLE self (key TEXT, value TEXT)`,
		`INSERT INTO self VALUES ('db_type', 'genomestorage'), ('version', '7')`,
		`CREATE TABLE genome_info (genome_name TEXT, num_genes INTEGER)`,
		`INSERT INTO genome_info VALUES ('g_beta', 120), ('g_alpha', 98)`,
		`CREATE TABLE gene_function_calls (
			genome_name TEXT, gene_callers_id INTEGER, source TEXT, accession TEXT)`,
		`INSERT INTO gene_function_calls VALUES
			('g_alpha', 0, 'KOfam', 'K00001'),
			('g_alpha', 1, 'KOfam', 'K00003'),
			('g_beta', 0, 'KOfam', 'K00001'),
			('g_beta', 1, 'COG20_FUNCTION', 'COG1012'),
			('g_beta', 2, 'KOfam', '')`,
	)
}

func TestGenomeStorage(t *testing.T) {
	ctx := context.Background()
	storage, err := OpenGenomeStorage(ctx, makeGenomeStorage(t))
	require.NoError(t, err)
	defer storage.Close()

	names, err := storage.GenomeNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"g_alpha", "g_beta"}, names)

	accessions, err := storage.GenomeKOAccessions(ctx, "g_alpha")
	require.NoError(t, err)
	assert.Equal(t, []string{"K00001", "K00003"}, accessions)

	_, err = storage.GenomeKOAccessions(ctx, "g_gamma")
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrUnknownGenome))
}

func TestGenomeStorageKOAnnotations(t *testing.T) {
	ctx := context.Background()
	storage, err := OpenGenomeStorage(ctx, makeGenomeStorage(t))
	require.NoError(t, err)
	defer storage.Close()

	annotations, err := storage.KOAnnotations(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]map[int64]string{
		"g_alpha": {0: "K00001", 1: "K00003"},
		"g_beta":  {0: "K00001"},
	}, annotations)
}

func makePanDB(t *testing.T, selfExtra string) string {
	t.Helper()
	stmts := []string{
		`CREATE TABLE self (key TEXT, value TEXT)`,
		`INSERT INTO self VALUES
			('db_type', 'pan'), ('project_name', 'testpan'),
			('external_genome_names', 'g_alpha,g_beta')`,
		`CREATE TABLE gene_clusters (
			gene_caller_id INTEGER, gene_cluster_id TEXT, genome_name TEXT, alignment_summary TEXT)`,
		`INSERT INTO gene_clusters VALUES
			(0, 'GC_002', 'g_alpha', ''),
			(0, 'GC_002', 'g_beta', ''),
			(1, 'GC_001', 'g_alpha', '')`,
		`CREATE TABLE item_orders (name TEXT, type TEXT, data TEXT)`,
		`INSERT INTO item_orders VALUES
			('presence_absence:euclidean:ward', 'newick', '(GC_001:0.5,GC_002:0.5);'),
			('frequency:euclidean:ward', 'newick', '(GC_002:0.2,GC_001:0.2);'),
			('forced_synteny', 'basic', 'GC_002,GC_001')`,
	}
	if selfExtra != "" {
		stmts = append(stmts, selfExtra)
	}
	return makeDB(t, "pan.db", stmts...)
}

func TestPanDB(t *testing.T) {
	ctx := context.Background()
	pan, err := OpenPan(ctx, makePanDB(t,
		`INSERT INTO self VALUES
			('reaction_network_consensus_threshold', '0.75'),
			('reaction_network_discard_ties', '1')`))
	require.NoError(t, err)
	defer pan.Close()

	assert.Equal(t, []string{"g_alpha", "g_beta"}, pan.GenomeNames())

	threshold, discardTies, err := pan.ConsensusParams()
	require.NoError(t, err)
	require.NotNil(t, threshold)
	assert.Equal(t, 0.75, *threshold)
	assert.True(t, discardTies)

	members, err := pan.GeneClusters(ctx)
	require.NoError(t, err)
	assert.Len(t, members, 3)
	assert.Contains(t, members, GeneClusterMember{GeneCallerID: 0, ClusterID: "GC_002", GenomeName: "g_beta"})
}

func TestPanDBConsensusParamsAbsent(t *testing.T) {
	pan, err := OpenPan(context.Background(), makePanDB(t, ""))
	require.NoError(t, err)
	defer pan.Close()

	threshold, discardTies, err := pan.ConsensusParams()
	require.NoError(t, err)
	assert.Nil(t, threshold)
	assert.False(t, discardTies)
}

func TestPanDBConsensusThresholdOutOfRange(t *testing.T) {
	pan, err := OpenPan(context.Background(), makePanDB(t,
		`INSERT INTO self VALUES ('reaction_network_consensus_threshold', '1.5')`))
	require.NoError(t, err)
	defer pan.Close()

	_, _, err = pan.ConsensusParams()
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrQuery))
}

func TestConsensusKOs(t *testing.T) {
	members := []GeneClusterMember{
		{GeneCallerID: 0, ClusterID: "GC_001", GenomeName: "g_alpha"},
		{GeneCallerID: 0, ClusterID: "GC_001", GenomeName: "g_beta"},
		{GeneCallerID: 1, ClusterID: "GC_001", GenomeName: "g_gamma"},
		{GeneCallerID: 2, ClusterID: "GC_002", GenomeName: "g_alpha"},
		{GeneCallerID: 3, ClusterID: "GC_003", GenomeName: "g_beta"},
	}
	annotations := map[string]map[int64]string{
		"g_alpha": {0: "K00001", 2: "K00005"},
		"g_beta":  {0: "K00001", 3: "K00009"},
		"g_gamma": {1: "K00002"},
	}

	consensus := ConsensusKOs(members, annotations, nil, false)
	require.Len(t, consensus, 3)
	assert.Equal(t, ConsensusKO{
		ClusterID: "GC_001", Accession: "K00001",
		Genomes: []string{"g_alpha", "g_beta", "g_gamma"},
	}, consensus[0])
	assert.Equal(t, "K00005", consensus[1].Accession)
	assert.Equal(t, "K00009", consensus[2].Accession)
}

func TestConsensusKOsThreshold(t *testing.T) {
	members := []GeneClusterMember{
		{GeneCallerID: 0, ClusterID: "GC_001", GenomeName: "g_alpha"},
		{GeneCallerID: 0, ClusterID: "GC_001", GenomeName: "g_beta"},
		{GeneCallerID: 1, ClusterID: "GC_001", GenomeName: "g_gamma"},
	}
	annotations := map[string]map[int64]string{
		"g_alpha": {0: "K00001"},
		"g_beta":  {0: "K00001"},
		"g_gamma": {1: "K00002"},
	}

	strict := 0.75
	assert.Empty(t, ConsensusKOs(members, annotations, &strict, false))

	loose := 0.5
	consensus := ConsensusKOs(members, annotations, &loose, false)
	require.Len(t, consensus, 1)
	assert.Equal(t, "K00001", consensus[0].Accession)
}

func TestConsensusKOsTies(t *testing.T) {
	members := []GeneClusterMember{
		{GeneCallerID: 0, ClusterID: "GC_001", GenomeName: "g_alpha"},
		{GeneCallerID: 0, ClusterID: "GC_001", GenomeName: "g_beta"},
	}
	annotations := map[string]map[int64]string{
		"g_alpha": {0: "K00002"},
		"g_beta":  {0: "K00001"},
	}

	consensus := ConsensusKOs(members, annotations, nil, false)
	require.Len(t, consensus, 1)
	assert.Equal(t, "K00001", consensus[0].Accession)

	assert.Empty(t, ConsensusKOs(members, annotations, nil, true))
}

func TestConsensusKOsUnannotatedCluster(t *testing.T) {
	members := []GeneClusterMember{
		{GeneCallerID: 9, ClusterID: "GC_009", GenomeName: "g_alpha"},
	}
	assert.Empty(t, ConsensusKOs(members, map[string]map[int64]string{}, nil, false))
}
