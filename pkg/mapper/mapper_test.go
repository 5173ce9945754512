package mapper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omicsdesk/genomaps/pkg/colormap"
	"github.com/omicsdesk/genomaps/pkg/errors"
	"github.com/omicsdesk/genomaps/pkg/mapper/status"
)

func TestValidateColorHex(t *testing.T) {
	require.NoError(t, validateColorHex("#2ca02c"))
	require.NoError(t, validateColorHex("#FF00aa"))
	require.NoError(t, validateColorHex(ColorOriginal))

	err := validateColorHex("green")
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrConfig))

	for _, reserved := range []string{"#FFFFFF", "#ffffff", "#000000"} {
		err := validateColorHex(reserved)
		require.Error(t, err, reserved)
		assert.True(t, errors.Is(err, status.ErrReservedColor), reserved)
		assert.Contains(t, err.Error(), "reserved")
	}
}

func TestResolveContigsScheme(t *testing.T) {
	scheme, err := resolveContigsScheme(ColormapSpec{Static: true}, 2)
	require.NoError(t, err)
	assert.Equal(t, SchemeStatic, scheme)

	scheme, err = resolveContigsScheme(ColormapSpec{}, 3)
	require.NoError(t, err)
	assert.Equal(t, SchemeByDatabase, scheme)

	scheme, err = resolveContigsScheme(ColormapSpec{}, 4)
	require.NoError(t, err)
	assert.Equal(t, SchemeByCount, scheme)

	scheme, err = resolveContigsScheme(ColormapSpec{Scheme: SchemeByCount}, 2)
	require.NoError(t, err)
	assert.Equal(t, SchemeByCount, scheme)

	_, err = resolveContigsScheme(ColormapSpec{Scheme: "by_color"}, 2)
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrConfig))
}

func TestResolveContigsColormapDefaults(t *testing.T) {
	cmap, err := resolveContigsColormap(ColormapSpec{}, SchemeByCount)
	require.NoError(t, err)
	// trimmed to (0.1, 0.9)
	assert.Contains(t, cmap.Name(), "plasma_r")
	assert.Contains(t, cmap.Name(), "trunc")

	cmap, err = resolveContigsColormap(ColormapSpec{}, SchemeByDatabase)
	require.NoError(t, err)
	// (0.0, 1.0) limits leave the qualitative map whole
	assert.Equal(t, "tab10", cmap.Name())

	// an explicitly named colormap is used untrimmed
	cmap, err = resolveContigsColormap(ColormapSpec{Name: "viridis"}, SchemeByCount)
	require.NoError(t, err)
	assert.Equal(t, "viridis", cmap.Name())

	_, err = resolveContigsColormap(ColormapSpec{Name: "nope"}, SchemeByCount)
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrConfig))

	_, err = resolveContigsColormap(
		ColormapSpec{Name: "plasma", Limits: &[2]float64{0.9, 0.1}}, SchemeByCount)
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrConfig))
}

func TestResolvePanColormap(t *testing.T) {
	cmap, err := resolvePanColormap(ColormapSpec{})
	require.NoError(t, err)
	assert.Contains(t, cmap.Name(), "plasma_r")
	assert.Contains(t, cmap.Name(), "trunc")

	// the count default limits apply even to a named colormap
	cmap, err = resolvePanColormap(ColormapSpec{Name: "viridis"})
	require.NoError(t, err)
	assert.Contains(t, cmap.Name(), "viridis")
	assert.Contains(t, cmap.Name(), "trunc")
}

func TestSourceCombos(t *testing.T) {
	combos := sourceCombos([]string{"a", "b", "c"})
	assert.Equal(t, [][]string{
		{"a"}, {"b"}, {"c"},
		{"a", "b"}, {"a", "c"}, {"b", "c"},
		{"a", "b", "c"},
	}, combos)
}

func TestCountPriorityColors(t *testing.T) {
	cmap, err := colormap.Get("plasma")
	require.NoError(t, err)

	colors := countPriorityColors(cmap, 3, false)
	require.Len(t, colors, 3)
	assert.Equal(t, 0.0, colors[0].priority)
	assert.Equal(t, 0.5, colors[1].priority)
	assert.Equal(t, 1.0, colors[2].priority)
	assert.Equal(t, cmap.At(0).Hex(), colors[0].hex)
	assert.Equal(t, cmap.At(1).Hex(), colors[2].hex)

	reversed := countPriorityColors(cmap, 3, true)
	assert.Equal(t, 1.0, reversed[0].priority)
	assert.Equal(t, 0.0, reversed[2].priority)
	assert.Equal(t, colors[0].hex, reversed[0].hex)
}

func TestComboPriorityColors(t *testing.T) {
	combos := sourceCombos([]string{"a", "b"})
	require.Len(t, combos, 3)

	colors, err := comboPriorityColors(colormap.Tab10, combos, false)
	require.NoError(t, err)
	require.Len(t, colors, 3)
	assert.Equal(t, colormap.Tab10.Color(0).Hex(), colors[0].hex)
	assert.Equal(t, colormap.Tab10.Color(2).Hex(), colors[2].hex)
	assert.Less(t, colors[0].priority, colors[1].priority)

	reversed, err := comboPriorityColors(colormap.Tab10, combos, true)
	require.NoError(t, err)
	assert.Greater(t, reversed[0].priority, reversed[1].priority)

	// 4 sources make 15 combinations, more than tab10 has colors
	_, err = comboPriorityColors(colormap.Tab10, sourceCombos([]string{"a", "b", "c", "d"}), false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrConfig))
}

func TestResolveSelection(t *testing.T) {
	sources := []string{"g1", "g2", "g3"}

	names, err := resolveSelection(Selection{}, sources)
	require.NoError(t, err)
	assert.Nil(t, names)

	names, err = resolveSelection(Selection{All: true}, sources)
	require.NoError(t, err)
	assert.Equal(t, sources, names)

	names, err = resolveSelection(Selection{Names: []string{"g3", "g1", "g3"}}, sources)
	require.NoError(t, err)
	assert.Equal(t, []string{"g3", "g1"}, names)

	_, err = resolveSelection(Selection{Names: []string{"g9"}}, sources)
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrUnknownSource))
}

func TestMapFileName(t *testing.T) {
	assert.Equal(t, "kos_00010.pdf", mapFileName("00010"))
}
