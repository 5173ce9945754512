package mapper

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/omicsdesk/genomaps/pkg/colormap"
	"github.com/omicsdesk/genomaps/pkg/mapper/status"
	"github.com/omicsdesk/genomaps/pkg/projdb"
)

// MapGenomesStorageGenomeKOs draws pathway maps highlighting the KOs
// annotating genes of one genome in a genome storage.
func (m *Mapper) MapGenomesStorageGenomeKOs(
	ctx context.Context,
	storagePath string,
	genome string,
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

	storage, err := projdb.OpenGenomeStorage(ctx, storagePath)
	if err != nil {
		return nil, err
	}
	koIDs, err := storage.GenomeKOAccessions(ctx, genome)
	_ = storage.Close()
	if err != nil {
		return nil, err
	}

	drawn, err := m.mapKOsFixedColors(koIDs, outDir, numbers, colorHex, opts.DrawMapsLackingKOs)
	if err != nil {
		return nil, err
	}
	m.logger.Info("drew genome maps",
		zap.String("genome", genome), zap.Int("count", drawn.Count()))
	return drawn, nil
}

// MapPanDatabaseKOs draws pathway maps highlighting consensus KOs of
// the pan database's gene clusters, colored by the number of genomes
// contributing genes to clusters with each KO.
//
// Consensus parameters default to those stored with a reaction
// network in the pan database; DrawOptions can override them.
func (m *Mapper) MapPanDatabaseKOs(
	ctx context.Context,
	panDBPath string,
	storagePath string,
	outDir string,
	opts DrawOptions,
) (*MultiDrawn, error) {
	colorHex := opts.colorHex()
	if err := validateColorHex(colorHex); err != nil {
		return nil, err
	}
	var cmap colormap.Map
	if !opts.Colormap.Static {
		var err error
		if cmap, err = resolvePanColormap(opts.Colormap); err != nil {
			return nil, err
		}
	}

	pan, err := projdb.OpenPan(ctx, panDBPath)
	if err != nil {
		return nil, err
	}
	defer pan.Close()
	storage, err := projdb.OpenGenomeStorage(ctx, storagePath)
	if err != nil {
		return nil, err
	}
	defer storage.Close()

	genomeNames := pan.GenomeNames()
	if len(genomeNames) == 0 {
		return nil, status.ErrConfig.WrapMessage(nil,
			"pan database %s names no genomes", panDBPath)
	}

	threshold, discardTies, err := m.consensusParams(pan, opts)
	if err != nil {
		return nil, err
	}

	// Derive consensus KOs and which genomes contribute genes to the
	// clusters carrying each KO.
	members, err := pan.GeneClusters(ctx)
	if err != nil {
		return nil, err
	}
	annotations, err := storage.KOAnnotations(ctx)
	if err != nil {
		return nil, err
	}
	consensus := projdb.ConsensusKOs(members, annotations, threshold, discardTies)

	koGenomes := make(map[string][]string)
	seenGenomes := make(map[string]map[string]struct{})
	for _, ko := range consensus {
		if seenGenomes[ko.Accession] == nil {
			seenGenomes[ko.Accession] = make(map[string]struct{})
		}
		for _, genome := range ko.Genomes {
			if _, ok := seenGenomes[ko.Accession][genome]; ok {
				continue
			}
			seenGenomes[ko.Accession][genome] = struct{}{}
			koGenomes[ko.Accession] = append(koGenomes[ko.Accession], genome)
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

	if opts.Colormap.Static {
		koIDs := make([]string, 0, len(koGenomes))
		for ko := range koGenomes {
			koIDs = append(koIDs, ko)
		}
		if result.Unified, err = m.mapKOsFixedColors(
			koIDs, outDir, numbers, colorHex, opts.DrawMapsLackingKOs,
		); err != nil {
			return nil, err
		}
	} else {
		colors := countPriorityColors(cmap, len(genomeNames), opts.Colormap.ReverseOverlay)
		if !opts.NoColorbar {
			labels := make([]string, len(colors))
			for i := range labels {
				labels[i] = strconv.Itoa(i + 1)
			}
			if err := m.drawColorbarFile(outDir, colors, labels, "genomes"); err != nil {
				return nil, err
			}
		}
		for _, number := range numbers {
			ok, err := m.drawMapKOsMembership(
				number, koGenomes, colors, outDir, cmap, nil, opts.DrawMapsLackingKOs,
			)
			if err != nil {
				return nil, err
			}
			result.Unified[number] = ok
		}
	}

	draw := func(ctx context.Context, genome, dir string, numbers []string, lackingOK bool) (DrawnMaps, error) {
		koIDs, err := storage.GenomeKOAccessions(ctx, genome)
		if err != nil {
			return nil, err
		}
		return m.mapKOsFixedColors(koIDs, dir, numbers, colorHex, lackingOK)
	}
	if err := m.drawIndividualAndGrids(
		ctx, outDir, numbers, opts, genomeNames, "pangenome", draw, result,
	); err != nil {
		return nil, err
	}

	m.logger.Info("drew pan database maps",
		zap.String("pan", panDBPath),
		zap.Int("genomes", len(genomeNames)),
		zap.Int("unified", result.Unified.Count()),
		zap.Int("grids", result.Grid.Count()))
	return result, nil
}

// consensusParams resolves the consensus threshold and tie handling
// from the options, falling back on what the pan database stores
func (m *Mapper) consensusParams(pan *projdb.PanDB, opts DrawOptions) (*float64, bool, error) {
	storedThreshold, storedTies, err := pan.ConsensusParams()
	if err != nil {
		return nil, false, err
	}
	threshold := opts.ConsensusThreshold
	if threshold == nil {
		threshold = storedThreshold
	} else if *threshold < 0 || *threshold > 1 {
		return nil, false, status.ErrConfig.WrapMessage(nil,
			"consensus threshold %g out of [0, 1]", *threshold)
	}
	discardTies := storedTies
	if opts.DiscardTies != nil {
		discardTies = *opts.DiscardTies
	}
	return threshold, discardTies, nil
}

// resolvePanColormap defaults to the sequential count colormap with
// trimmed limits
func resolvePanColormap(spec ColormapSpec) (colormap.Map, error) {
	name := spec.Name
	if name == "" {
		name = defaultCountColormap
	}
	limits := spec.Limits
	if limits == nil {
		limits = &[2]float64{0.1, 0.9}
	}
	cmap, err := colormap.Get(name)
	if err != nil {
		return nil, status.ErrConfig.Wrap(err)
	}
	if cmap, err = colormap.Truncate(cmap, limits[0], limits[1]); err != nil {
		return nil, status.ErrConfig.Wrap(err)
	}
	return cmap, nil
}
