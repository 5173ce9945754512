package mapper

import (
	"context"
	"path/filepath"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/omicsdesk/genomaps/pkg/kgml"
	"github.com/omicsdesk/genomaps/pkg/mapper/status"
)

// individualDrawer draws the maps of one source into its own directory
type individualDrawer func(
	ctx context.Context, source, outDir string, numbers []string, lackingOK bool,
) (DrawnMaps, error)

// drawIndividualAndGrids runs the per-source and grid stages of
// multi-source drawing: individual maps land in per-source
// subdirectories, grids in the grid/ subdirectory. Sources drawn only
// to complete grids are removed afterwards.
func (m *Mapper) drawIndividualAndGrids(
	ctx context.Context,
	outDir string,
	numbers []string,
	opts DrawOptions,
	sources []string,
	unifiedLabel string,
	draw individualDrawer,
	result *MultiDrawn,
) error {
	fileNames, err := resolveSelection(opts.DrawIndividualFiles, sources)
	if err != nil {
		return err
	}
	gridNames, err := resolveSelection(opts.DrawGrid, sources)
	if err != nil {
		return err
	}
	if len(fileNames) == 0 && len(gridNames) == 0 {
		return nil
	}

	drawNames := make([]string, 0, len(fileNames)+len(gridNames))
	seen := make(map[string]struct{})
	for _, name := range append(append([]string(nil), fileNames...), gridNames...) {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		drawNames = append(drawNames, name)
	}

	for _, name := range drawNames {
		drawn, err := draw(ctx, name, filepath.Join(outDir, name), numbers, opts.DrawMapsLackingKOs)
		if err != nil {
			return err
		}
		result.Individual[name] = drawn
	}

	if len(gridNames) == 0 {
		return nil
	}

	// Draw empty maps needed to fill in grids: pathways with some but
	// not all sources drawn get placeholders, removed afterwards.
	var removePaths []string
	if !opts.DrawMapsLackingKOs {
		byPathway := make(map[string]map[string]bool)
		for name, drawn := range result.Individual {
			for number, ok := range drawn {
				if byPathway[number] == nil {
					byPathway[number] = make(map[string]bool)
				}
				byPathway[number][name] = ok
			}
		}
		for number, bySource := range byPathway {
			anyDrawn, anyMissing := false, false
			for _, ok := range bySource {
				if ok {
					anyDrawn = true
				} else {
					anyMissing = true
				}
			}
			if !anyDrawn || !anyMissing {
				continue
			}
			for name, ok := range bySource {
				if ok {
					continue
				}
				if _, err := draw(ctx, name, filepath.Join(outDir, name), []string{number}, true); err != nil {
					return err
				}
				removePaths = append(removePaths, filepath.Join(outDir, name, mapFileName(number)))
			}
		}
	}

	gridDir := filepath.Join(outDir, "grid")
	if err := m.ensureOutDir(gridDir); err != nil {
		return err
	}
	for _, number := range numbers {
		unifiedPath := filepath.Join(outDir, mapFileName(number))
		if exists, err := afero.Exists(m.fs, unifiedPath); err != nil || !exists {
			if err != nil {
				return status.ErrDraw.Wrap(err)
			}
			continue
		}
		inPaths := []string{unifiedPath}
		labels := []string{unifiedLabel}
		complete := true
		for _, name := range gridNames {
			individualPath := filepath.Join(outDir, name, mapFileName(number))
			exists, err := afero.Exists(m.fs, individualPath)
			if err != nil {
				return status.ErrDraw.Wrap(err)
			}
			if !exists {
				complete = false
				break
			}
			inPaths = append(inPaths, individualPath)
			labels = append(labels, name)
		}
		if !complete {
			continue
		}
		if err := kgml.ComposeGrid(m.fs, inPaths, labels, filepath.Join(gridDir, mapFileName(number))); err != nil {
			return err
		}
		result.Grid[number] = true
	}

	for _, path := range removePaths {
		if err := m.fs.Remove(path); err != nil {
			return status.ErrDraw.Wrap(err)
		}
	}
	wanted := make(map[string]struct{}, len(fileNames))
	for _, name := range fileNames {
		wanted[name] = struct{}{}
	}
	for _, name := range drawNames {
		if _, ok := wanted[name]; ok {
			continue
		}
		if err := m.fs.RemoveAll(filepath.Join(outDir, name)); err != nil {
			return status.ErrDraw.Wrap(err)
		}
		delete(result.Individual, name)
	}

	m.logger.Debug("drew individual maps and grids",
		zap.String("dir", outDir),
		zap.Int("sources", len(result.Individual)),
		zap.Int("grids", result.Grid.Count()))
	return nil
}
