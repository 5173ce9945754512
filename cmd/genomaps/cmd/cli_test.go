package cmd

import (
	"database/sql"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type exitMocksT struct {
	fatalCalls int
	exitCodes  []int
}

var exitMocks *exitMocksT

func setupExitMocks(t *testing.T) {
	t.Helper()
	exitMocks = &exitMocksT{}
	logFatalln = func(v ...interface{}) {
		exitMocks.fatalCalls++
	}
	logFatalf = func(format string, v ...interface{}) {
		exitMocks.fatalCalls++
	}
	osExit = func(code int) {
		exitMocks.exitCodes = append(exitMocks.exitCodes, code)
	}
	t.Cleanup(func() {
		logFatalln = log.Fatalln
		logFatalf = log.Fatalf
		osExit = os.Exit
	})
}

// flag state and Changed bits persist between Execute calls on the
// shared command tree, reset them per test
func resetFlags(t *testing.T) {
	t.Helper()
	genomapsFlags.pathways = (flagsT{}).pathways
	genomapsFlags.orders = (flagsT{}).orders
	genomapsFlags.root.keggDir = ""
	genomapsFlags.root.logLevel = ""
	for _, cmd := range []interface{ Flags() *pflag.FlagSet }{
		PathwaysDrawCommand, OrderExportCommand, OrderListCommand,
	} {
		cmd.Flags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
	}
}

func makeFixtureDB(t *testing.T, name string, stmts ...string) string {
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

func makeOrdersFixture(t *testing.T) string {
	t.Helper()
	return makeFixtureDB(t, "pan.db",
		`CREATE TABLE self (key TEXT, value TEXT)`,
		`INSERT INTO self VALUES ('db_type', 'pan'), ('project_name', 'orders_test')`,
		`CREATE TABLE item_orders (name TEXT, type TEXT, data TEXT)`,
		`INSERT INTO item_orders VALUES
			('gc_freqs:euclidean:ward', 'newick', '((GC_001:0.1,GC_002:0.2):0.3,GC_003:0.4);'),
			('forced', 'basic', 'GC_003,GC_001,GC_002')`,
	)
}

func makeContigsFixtureDB(t *testing.T, project string, accessions ...string) string {
	t.Helper()
	stmts := []string{
		`CREATE TABLE self (key TEXT, value TEXT)`,
		`INSERT INTO self VALUES
			('db_type', 'contigs'), ('project_name', '` + project + `'),
			('gene_function_sources', 'KOfam')`,
		`CREATE TABLE gene_functions (
			gene_callers_id INTEGER, source TEXT, accession TEXT, function TEXT, e_value REAL)`,
	}
	for i, accession := range accessions {
		stmts = append(stmts,
			`INSERT INTO gene_functions VALUES (`+
				string(rune('0'+i))+`, 'KOfam', '`+accession+`', '', 1e-20)`)
	}
	return makeFixtureDB(t, project+".db", stmts...)
}

const fixtureMapKGML = `<?xml version="1.0"?>
<pathway name="path:ko00010" org="ko" number="00010" title="Glycolysis">
  <entry id="35" name="ko:K00001" type="ortholog" reaction="rn:R00754">
    <graphics name="K00001" fgcolor="#000000" bgcolor="#BFBFFF" type="rectangle" x="483" y="407" width="46" height="17"/>
  </entry>
</pathway>`

func makeKeggFixtureDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		filepath.Join(dir, "map_images", "kgml.tsv"):          "map_id\tKO\tEC\tRN\nmap00010\t5\t4\t3\n",
		filepath.Join(dir, "kgml", "2x", "ko", "ko00010.xml"): fixtureMapKGML,
	}
	for path, content := range files {
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return dir
}

func TestOrdersExportNewick(t *testing.T) {
	setupExitMocks(t)
	resetFlags(t)
	dbPath := makeOrdersFixture(t)
	outFile := filepath.Join(t.TempDir(), "order.txt")

	rootCmd.SetArgs([]string{"orders", "export",
		"--db", dbPath,
		"--name", "gc_freqs",
		"--output-file", outFile,
	})
	require.NoError(t, rootCmd.Execute())
	require.Empty(t, exitMocks.exitCodes)

	content, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Equal(t, "((GC_001:0.1,GC_002:0.2):0.3,GC_003:0.4);\n", string(content))
}

func TestOrdersExportBasic(t *testing.T) {
	setupExitMocks(t)
	resetFlags(t)
	dbPath := makeOrdersFixture(t)
	outFile := filepath.Join(t.TempDir(), "order.txt")

	rootCmd.SetArgs([]string{"orders", "export",
		"--db", dbPath,
		"--name", "forced",
		"--output-file", outFile,
	})
	require.NoError(t, rootCmd.Execute())
	require.Empty(t, exitMocks.exitCodes)

	content, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Equal(t, "GC_003\nGC_001\nGC_002\n", string(content))
}

func TestOrdersExportWithoutName(t *testing.T) {
	setupExitMocks(t)
	resetFlags(t)
	dbPath := makeOrdersFixture(t)

	rootCmd.SetArgs([]string{"orders", "export", "--db", dbPath})
	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, []int{-1}, exitMocks.exitCodes)
}

func TestOrdersExportUnknownName(t *testing.T) {
	setupExitMocks(t)
	resetFlags(t)
	dbPath := makeOrdersFixture(t)

	rootCmd.SetArgs([]string{"orders", "export",
		"--db", dbPath,
		"--name", "no_such_order",
		"--output-file", filepath.Join(t.TempDir(), "order.txt"),
	})
	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, []int{-1}, exitMocks.exitCodes)
}

func TestOrdersExportMissingDB(t *testing.T) {
	setupExitMocks(t)
	resetFlags(t)

	rootCmd.SetArgs([]string{"orders", "export",
		"--db", filepath.Join(t.TempDir(), "absent.db"),
		"--name", "gc_freqs",
	})
	require.NoError(t, rootCmd.Execute())
	// missing file is a file error, not a configuration error
	assert.Equal(t, []int{-2}, exitMocks.exitCodes)
}

func TestOrdersExportWrongDBType(t *testing.T) {
	setupExitMocks(t)
	resetFlags(t)
	dbPath := makeContigsFixtureDB(t, "alpha", "K00001")

	rootCmd.SetArgs([]string{"orders", "export",
		"--db", dbPath,
		"--name", "gc_freqs",
	})
	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, []int{-1}, exitMocks.exitCodes)
}

func TestOrdersExportUnwritableOutput(t *testing.T) {
	setupExitMocks(t)
	resetFlags(t)
	dbPath := makeOrdersFixture(t)

	rootCmd.SetArgs([]string{"orders", "export",
		"--db", dbPath,
		"--name", "forced",
		"--output-file", filepath.Join(t.TempDir(), "no", "such", "dir", "order.txt"),
	})
	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, []int{-2}, exitMocks.exitCodes)
}

func TestOrdersList(t *testing.T) {
	setupExitMocks(t)
	resetFlags(t)
	dbPath := makeOrdersFixture(t)

	var buf strings.Builder
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	rootCmd.SetArgs([]string{"orders", "list", "--db", dbPath})
	require.NoError(t, rootCmd.Execute())
	require.Empty(t, exitMocks.exitCodes)

	out := buf.String()
	assert.Contains(t, out, "gc_freqs , euclidean , ward , newick , 3 items")
	assert.Contains(t, out, "forced ,  ,  , basic , 3 items")
}

func TestPathwaysDrawContigsDB(t *testing.T) {
	setupExitMocks(t)
	resetFlags(t)
	dbPath := makeContigsFixtureDB(t, "alpha", "K00001")
	outDir := filepath.Join(t.TempDir(), "maps")

	rootCmd.SetArgs([]string{"pathways", "draw",
		"--contigs-dbs", dbPath,
		"--kegg-dir", makeKeggFixtureDir(t),
		"--output-dir", outDir,
	})
	require.NoError(t, rootCmd.Execute())
	require.Empty(t, exitMocks.exitCodes)

	content, err := os.ReadFile(filepath.Join(outDir, "kos_00010.pdf"))
	require.NoError(t, err)
	assert.True(t, len(content) > 4 && string(content[:5]) == "%PDF-")
}

func TestPathwaysDrawPatternWithQuantifier(t *testing.T) {
	setupExitMocks(t)
	resetFlags(t)
	dbPath := makeContigsFixtureDB(t, "alpha", "K00001")
	outDir := filepath.Join(t.TempDir(), "maps")

	// the brace quantifier's comma must not split the pattern
	rootCmd.SetArgs([]string{"pathways", "draw",
		"--contigs-dbs", dbPath,
		"--pathway-numbers", `000\d{1,2}`,
		"--kegg-dir", makeKeggFixtureDir(t),
		"--output-dir", outDir,
	})
	require.NoError(t, rootCmd.Execute())
	require.Empty(t, exitMocks.exitCodes)

	_, err := os.Stat(filepath.Join(outDir, "kos_00010.pdf"))
	assert.NoError(t, err)
}

func TestPathwaysDrawExternalGenomesMerge(t *testing.T) {
	setupExitMocks(t)
	resetFlags(t)
	// only the externally listed genome carries the mapped KO
	alphaPath := makeContigsFixtureDB(t, "alpha", "K99999")
	betaPath := makeContigsFixtureDB(t, "beta", "K00001")
	tsvPath := filepath.Join(t.TempDir(), "genomes.txt")
	require.NoError(t, os.WriteFile(tsvPath,
		[]byte("name\tcontigs_db_path\nbeta\t"+betaPath+"\n"), 0644))
	outDir := filepath.Join(t.TempDir(), "maps")

	rootCmd.SetArgs([]string{"pathways", "draw",
		"--contigs-dbs", alphaPath,
		"--external-genomes", tsvPath,
		"--kegg-dir", makeKeggFixtureDir(t),
		"--output-dir", outDir,
	})
	require.NoError(t, rootCmd.Execute())
	require.Empty(t, exitMocks.exitCodes)

	// drawn only because beta's database joined the source list
	content, err := os.ReadFile(filepath.Join(outDir, "kos_00010.pdf"))
	require.NoError(t, err)
	assert.True(t, len(content) > 4 && string(content[:5]) == "%PDF-")
}

func TestPathwaysDrawConflictingSources(t *testing.T) {
	setupExitMocks(t)
	resetFlags(t)

	rootCmd.SetArgs([]string{"pathways", "draw",
		"--contigs-dbs", "contigs.db",
		"--pan-db", "pan.db",
		"--genomes-storage", "storage.db",
		"--output-dir", t.TempDir(),
	})
	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, []int{-1}, exitMocks.exitCodes)
}

func TestPathwaysDrawNoSources(t *testing.T) {
	setupExitMocks(t)
	resetFlags(t)

	rootCmd.SetArgs([]string{"pathways", "draw", "--output-dir", t.TempDir()})
	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, []int{-1}, exitMocks.exitCodes)
}

func TestPathwaysDrawPanWithoutStorage(t *testing.T) {
	setupExitMocks(t)
	resetFlags(t)

	rootCmd.SetArgs([]string{"pathways", "draw",
		"--pan-db", "pan.db",
		"--output-dir", t.TempDir(),
	})
	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, []int{-1}, exitMocks.exitCodes)
}

func TestPathwaysDrawConsensusFlagsWithContigs(t *testing.T) {
	setupExitMocks(t)
	resetFlags(t)

	rootCmd.SetArgs([]string{"pathways", "draw",
		"--contigs-dbs", "contigs.db",
		"--consensus-threshold", "0.5",
		"--output-dir", t.TempDir(),
	})
	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, []int{-1}, exitMocks.exitCodes)
}

func TestPathwaysDrawKOColorWithColormap(t *testing.T) {
	setupExitMocks(t)
	resetFlags(t)

	rootCmd.SetArgs([]string{"pathways", "draw",
		"--contigs-dbs", "contigs.db",
		"--ko-color", "#FF0000",
		"--colormap", "viridis",
		"--output-dir", t.TempDir(),
	})
	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, []int{-1}, exitMocks.exitCodes)
}

func TestPathwaysDrawReservedColor(t *testing.T) {
	setupExitMocks(t)
	resetFlags(t)
	dbPath := makeContigsFixtureDB(t, "alpha", "K00001")

	rootCmd.SetArgs([]string{"pathways", "draw",
		"--contigs-dbs", dbPath,
		"--ko-color", "#FFFFFF",
		"--kegg-dir", makeKeggFixtureDir(t),
		"--output-dir", t.TempDir(),
	})
	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, []int{-1}, exitMocks.exitCodes)
}

func TestPathwaysDrawBadColormapLimits(t *testing.T) {
	setupExitMocks(t)
	resetFlags(t)

	rootCmd.SetArgs([]string{"pathways", "draw",
		"--contigs-dbs", "contigs.db",
		"--colormap-limits", "0.1,0.9,0.5",
		"--output-dir", t.TempDir(),
	})
	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, []int{-1}, exitMocks.exitCodes)
}
