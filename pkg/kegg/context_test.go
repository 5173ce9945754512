package kegg

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omicsdesk/genomaps/pkg/errors"
	"github.com/omicsdesk/genomaps/pkg/kegg/status"
)

const testIndex = `map_id	KO	EC	RN
map00010	57	60	54
map00020	38	40	36
map01100	315	0	0
map01200	120	0	0
map04930	0	0	0
map00030	29	31	28
`

func testContext(t *testing.T) *Context {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/kegg/map_images", 0o755))
	require.NoError(t, afero.WriteFile(fs, "/kegg/map_images/kgml.tsv", []byte(testIndex), 0o644))
	ctx, err := NewContext("/kegg", WithFS(fs))
	require.NoError(t, err)
	return ctx
}

func TestMapIDClasses(t *testing.T) {
	assert.True(t, IsGlobalMapID("01100"))
	assert.False(t, IsGlobalMapID("01200"))
	assert.True(t, IsOverviewMapID("01200"))
	assert.False(t, IsOverviewMapID("00010"))
	assert.False(t, IsGlobalMapID("011000"))
}

func TestNewContextMissingDir(t *testing.T) {
	_, err := NewContext("/nowhere", WithFS(afero.NewMemMapFs()))
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrDataDir))
}

func TestAvailablePathwayNumbers(t *testing.T) {
	ctx := testContext(t)
	numbers, err := ctx.AvailablePathwayNumbers()
	require.NoError(t, err)
	// map04930 has no annotated elements and is dropped
	assert.Equal(t, []string{"00010", "00020", "01100", "01200", "00030"}, numbers)
}

func TestSelectPathwayNumbers(t *testing.T) {
	ctx := testContext(t)

	all, err := ctx.SelectPathwayNumbers(nil)
	require.NoError(t, err)
	assert.Len(t, all, 5)

	selected, err := ctx.SelectPathwayNumbers([]string{`000[12]0`})
	require.NoError(t, err)
	assert.Equal(t, []string{"00010", "00020"}, selected)

	// pattern order wins over index order, duplicates are dropped
	selected, err = ctx.SelectPathwayNumbers([]string{"011", "000", "00010"})
	require.NoError(t, err)
	assert.Equal(t, []string{"01100", "00010", "00020", "00030"}, selected)

	_, err = ctx.SelectPathwayNumbers([]string{"("})
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrPattern))
}

func TestKGMLPath(t *testing.T) {
	ctx := testContext(t)
	assert.Equal(t, "/kegg/kgml/1x/ko/ko01100.xml", ctx.KGMLPath("01100"))
	assert.Equal(t, "/kegg/kgml/2x/ko/ko01200.xml", ctx.KGMLPath("01200"))
	assert.Equal(t, "/kegg/kgml/2x/ko/ko00010.xml", ctx.KGMLPath("00010"))
}
