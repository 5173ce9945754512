package mapper

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/omicsdesk/genomaps/pkg/colormap"
	"github.com/omicsdesk/genomaps/pkg/mapper/status"
	"github.com/omicsdesk/genomaps/pkg/projdb"
	projstatus "github.com/omicsdesk/genomaps/pkg/projdb/status"
)

// MapContigsDatabaseKOs draws pathway maps highlighting the KOs
// annotating genes of one contigs database.
//
// Returns, per pathway number, whether the map was drawn. A map
// without any of the database's KOs is only drawn with
// DrawMapsLackingKOs set.
func (m *Mapper) MapContigsDatabaseKOs(
	ctx context.Context,
	contigsDBPath string,
	outDir string,
	opts DrawOptions,
) (DrawnMaps, error) {
	colorHex := opts.colorHex()
	if err := validateColorHex(colorHex); err != nil {
		return nil, err
	}
	numbers, err := m.findMaps(outDir, opts.PathwayPatterns)
	if err != nil {
		return nil, err
	}
	koIDs, err := m.contigsKOs(ctx, contigsDBPath)
	if err != nil {
		return nil, err
	}
	drawn, err := m.mapKOsFixedColors(koIDs, outDir, numbers, colorHex, opts.DrawMapsLackingKOs)
	if err != nil {
		return nil, err
	}
	m.logger.Info("drew contigs database maps",
		zap.String("db", contigsDBPath), zap.Int("count", drawn.Count()))
	return drawn, nil
}

func (m *Mapper) contigsKOs(ctx context.Context, path string) ([]string, error) {
	cdb, err := projdb.OpenContigs(ctx, path)
	if err != nil {
		return nil, err
	}
	defer cdb.Close()
	return cdb.KOAccessions(ctx)
}

// MapContigsDatabasesKOs draws pathway maps highlighting KOs across
// several contigs databases, identified by their project names.
//
// Unified maps of all databases land in the output directory.
// Individual maps per database and per-pathway grids of unified plus
// individual maps are drawn on request, in per-database subdirectories
// and the grid subdirectory.
func (m *Mapper) MapContigsDatabasesKOs(
	ctx context.Context,
	contigsDBPaths []string,
	outDir string,
	opts DrawOptions,
) (*MultiDrawn, error) {
	if len(contigsDBPaths) == 0 {
		return nil, status.ErrConfig.WrapMessage(nil, "no contigs databases given")
	}
	scheme, err := resolveContigsScheme(opts.Colormap, len(contigsDBPaths))
	if err != nil {
		return nil, err
	}
	var cmap colormap.Map
	if scheme != SchemeStatic {
		if cmap, err = resolveContigsColormap(opts.Colormap, scheme); err != nil {
			return nil, err
		}
	}
	colorHex := opts.colorHex()
	if err := validateColorHex(colorHex); err != nil {
		return nil, err
	}

	// Load database metadata and find which databases contain each KO.
	var projectNames []string
	dbPaths := make(map[string]string, len(contigsDBPaths))
	koDBs := make(map[string][]string)
	for _, path := range contigsDBPaths {
		cdb, err := projdb.OpenContigs(ctx, path)
		if err != nil {
			return nil, err
		}
		if err := cdb.RequireKOfam(); err != nil {
			_ = cdb.Close()
			return nil, err
		}
		name := cdb.ProjectName()
		if _, dup := dbPaths[name]; dup {
			_ = cdb.Close()
			return nil, projstatus.ErrDuplicateProject.WrapMessage(nil, "%q", name)
		}
		projectNames = append(projectNames, name)
		dbPaths[name] = path

		koIDs, err := cdb.KOAccessions(ctx)
		_ = cdb.Close()
		if err != nil {
			return nil, err
		}
		for _, ko := range koIDs {
			koDBs[ko] = append(koDBs[ko], name)
		}
	}

	numbers, err := m.findMaps(outDir, opts.PathwayPatterns)
	if err != nil {
		return nil, err
	}
	if err := m.ensureOutDir(outDir); err != nil {
		return nil, err
	}

	result := &MultiDrawn{
		Unified:    make(DrawnMaps, len(numbers)),
		Individual: make(map[string]DrawnMaps),
		Grid:       make(DrawnMaps),
	}

	if scheme == SchemeStatic {
		koIDs := make([]string, 0, len(koDBs))
		for ko := range koDBs {
			koIDs = append(koIDs, ko)
		}
		if result.Unified, err = m.mapKOsFixedColors(
			koIDs, outDir, numbers, colorHex, opts.DrawMapsLackingKOs,
		); err != nil {
			return nil, err
		}
	} else {
		var colors []priorityColor
		var combos [][]string
		var labels []string
		var title string
		switch scheme {
		case SchemeByCount:
			colors = countPriorityColors(cmap, len(contigsDBPaths), opts.Colormap.ReverseOverlay)
			for i := range colors {
				labels = append(labels, strconv.Itoa(i+1))
			}
			title = "database count"
		case SchemeByDatabase:
			combos = sourceCombos(projectNames)
			if colors, err = comboPriorityColors(cmap, combos, opts.Colormap.ReverseOverlay); err != nil {
				return nil, err
			}
			for _, combo := range combos {
				labels = append(labels, strings.Join(combo, ", "))
			}
			title = "databases"
		}
		if !opts.NoColorbar {
			if err := m.drawColorbarFile(outDir, colors, labels, title); err != nil {
				return nil, err
			}
		}
		for _, number := range numbers {
			ok, err := m.drawMapKOsMembership(
				number, koDBs, colors, outDir, cmap, combos, opts.DrawMapsLackingKOs,
			)
			if err != nil {
				return nil, err
			}
			result.Unified[number] = ok
		}
	}

	draw := func(ctx context.Context, source, dir string, numbers []string, lackingOK bool) (DrawnMaps, error) {
		koIDs, err := m.contigsKOs(ctx, dbPaths[source])
		if err != nil {
			return nil, err
		}
		return m.mapKOsFixedColors(koIDs, dir, numbers, colorHex, lackingOK)
	}
	if err := m.drawIndividualAndGrids(
		ctx, outDir, numbers, opts, projectNames, "all", draw, result,
	); err != nil {
		return nil, err
	}

	m.logger.Info("drew contigs databases maps",
		zap.Int("databases", len(contigsDBPaths)),
		zap.String("scheme", scheme),
		zap.Int("unified", result.Unified.Count()),
		zap.Int("grids", result.Grid.Count()))
	return result, nil
}

// resolveContigsScheme picks the coloring scheme: static when dynamic
// coloring is disabled, otherwise the explicit scheme, defaulting on
// the database count
func resolveContigsScheme(spec ColormapSpec, nSources int) (string, error) {
	if spec.Static {
		return SchemeStatic, nil
	}
	switch spec.Scheme {
	case "":
		if nSources < 4 {
			return SchemeByDatabase, nil
		}
		return SchemeByCount, nil
	case SchemeByCount, SchemeByDatabase:
		return spec.Scheme, nil
	default:
		return "", status.ErrConfig.WrapMessage(nil,
			"unknown colormap scheme %q, expected %s or %s",
			spec.Scheme, SchemeByCount, SchemeByDatabase)
	}
}

// resolveContigsColormap applies the scheme's default colormap and
// limits; an explicitly named colormap is used untrimmed unless limits
// are given
func resolveContigsColormap(spec ColormapSpec, scheme string) (colormap.Map, error) {
	name := spec.Name
	limits := spec.Limits
	if name == "" {
		switch scheme {
		case SchemeByCount:
			name = defaultCountColormap
			if limits == nil {
				limits = &[2]float64{0.1, 0.9}
			}
		case SchemeByDatabase:
			name = defaultDatabaseColormap
			if limits == nil {
				limits = &[2]float64{0, 1}
			}
		}
	}
	cmap, err := colormap.Get(name)
	if err != nil {
		return nil, status.ErrConfig.Wrap(err)
	}
	if limits != nil {
		if cmap, err = colormap.Truncate(cmap, limits[0], limits[1]); err != nil {
			return nil, status.ErrConfig.Wrap(err)
		}
	}
	return cmap, nil
}
