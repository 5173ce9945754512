package cmd

import (
	"context"
	"strconv"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/omicsdesk/genomaps/pkg/errors"
	"github.com/omicsdesk/genomaps/pkg/kegg"
	"github.com/omicsdesk/genomaps/pkg/mapper"
	"github.com/omicsdesk/genomaps/pkg/mapper/status"
	"github.com/omicsdesk/genomaps/pkg/projdb"
)

// PathwaysDrawCommand draws KO data on pathway maps
var PathwaysDrawCommand = &cobra.Command{
	Use:   "draw",
	Short: "Draw KO annotations on pathway maps",
	Long: `Draw pathway maps, highlighting reactions containing KO annotations.

KOs are loaded from contigs databases given directly or through an
external genomes file, or from a pan database paired with its genomes
storage. With several contigs databases or a pan database, unified
maps incorporate data from all sources, and maps for individual
sources and per-pathway grids can be drawn alongside.`,
	Run: func(cmd *cobra.Command, args []string) {
		contigsDBs, err := gatherContigsDBs()
		if err != nil {
			wrapFatalWithCodef(-1, "%v", err)
			return
		}
		if err := validatePathwaysDraw(cmd, len(contigsDBs)); err != nil {
			wrapFatalWithCodef(-1, "%v", err)
			return
		}
		opts, err := pathwaysDrawOptions(cmd)
		if err != nil {
			wrapFatalWithCodef(-1, "%v", err)
			return
		}

		logger := mustGetLogger()
		kctx, err := kegg.NewContext(genomapsFlags.root.keggDir)
		if err != nil {
			wrapFatalWithCodef(-1, "%v", err)
			return
		}
		m := mapper.New(kctx,
			mapper.WithLogger(logger),
			mapper.WithOverwrite(genomapsFlags.pathways.Overwrite),
		)

		ctx := context.Background()
		outDir := genomapsFlags.pathways.OutputDir
		switch {
		case genomapsFlags.pathways.PanDB != "":
			_, err = m.MapPanDatabaseKOs(ctx,
				genomapsFlags.pathways.PanDB,
				genomapsFlags.pathways.GenomesStorage,
				outDir, opts)
		case len(contigsDBs) == 1:
			_, err = m.MapContigsDatabaseKOs(ctx, contigsDBs[0], outDir, opts)
		default:
			_, err = m.MapContigsDatabasesKOs(ctx, contigsDBs, outDir, opts)
		}
		if err != nil {
			if errors.Is(err, status.ErrReservedColor) {
				wrapFatalWithCodef(-1,
					"The colors white ('#FFFFFF') and black ('#000000') are reserved for map "+
						"backgrounds and text. Please provide a different --ko-color.")
				return
			}
			wrapFatalWithCodef(-1, "%v", err)
			return
		}
	},
}

// gatherContigsDBs collects contigs database paths from the flag and
// the external genomes file
func gatherContigsDBs() ([]string, error) {
	paths := append([]string(nil), genomapsFlags.pathways.ContigsDBs...)
	if genomapsFlags.pathways.ExternalGenomes != "" {
		genomes, err := projdb.ReadExternalGenomes(
			afero.NewOsFs(), genomapsFlags.pathways.ExternalGenomes)
		if err != nil {
			return nil, err
		}
		for _, genome := range genomes {
			paths = append(paths, genome.ContigsDBPath)
		}
	}
	return paths, nil
}

func validatePathwaysDraw(cmd *cobra.Command, numContigsDBs int) error {
	flags := genomapsFlags.pathways
	hasContigs := numContigsDBs > 0
	hasPan := flags.PanDB != "" || flags.GenomesStorage != ""
	switch {
	case hasContigs && hasPan:
		return errors.New("--contigs-dbs/--external-genomes and --pan-db/--genomes-storage are mutually exclusive")
	case !hasContigs && !hasPan:
		return errors.New("provide KO annotations with --contigs-dbs, --external-genomes, or --pan-db with --genomes-storage")
	case flags.PanDB != "" && flags.GenomesStorage == "":
		return errors.New("--pan-db requires --genomes-storage")
	case flags.GenomesStorage != "" && flags.PanDB == "":
		return errors.New("--genomes-storage requires --pan-db")
	}
	if flags.PanDB == "" {
		if cmd.Flags().Changed("consensus-threshold") || cmd.Flags().Changed("discard-ties") {
			return errors.New("--consensus-threshold and --discard-ties only apply to --pan-db")
		}
	} else if flags.ColormapScheme != "" {
		return errors.New("--colormap-scheme only applies to contigs databases")
	}
	return nil
}

func pathwaysDrawOptions(cmd *cobra.Command) (mapper.DrawOptions, error) {
	flags := genomapsFlags.pathways
	opts := mapper.DrawOptions{
		ColorHex:            flags.KOColor,
		DrawMapsLackingKOs:  flags.DrawLackingKOs,
		NoColorbar:          flags.NoColorbar,
		DrawIndividualFiles: toSelection(flags.DrawIndividual),
		DrawGrid:            toSelection(flags.DrawGrid),
	}
	if len(flags.PathwayNumbers) > 0 {
		opts.PathwayPatterns = flags.PathwayNumbers
	}

	static := flags.KOColor != ""
	if cmd.Flags().Changed("colormap") {
		switch {
		case flags.Colormap == "":
			static = true
		case static:
			return opts, errors.New("--ko-color and --colormap are mutually exclusive")
		}
	}
	opts.Colormap = mapper.ColormapSpec{
		Static:         static,
		Name:           flags.Colormap,
		Scheme:         flags.ColormapScheme,
		ReverseOverlay: flags.ReverseOverlay,
	}
	if flags.ColormapLimits != "" {
		if static {
			return opts, errors.New("--colormap-limits requires colormap coloring")
		}
		limits, err := parseColormapLimits(flags.ColormapLimits)
		if err != nil {
			return opts, err
		}
		opts.Colormap.Limits = limits
	}

	if cmd.Flags().Changed("consensus-threshold") {
		threshold := flags.ConsensusThreshold
		opts.ConsensusThreshold = &threshold
	}
	if cmd.Flags().Changed("discard-ties") {
		discardTies := flags.DiscardTies
		opts.DiscardTies = &discardTies
	}
	return opts, nil
}

func toSelection(values []string) mapper.Selection {
	if len(values) == 0 {
		return mapper.Selection{}
	}
	for _, value := range values {
		if value == "all" {
			return mapper.Selection{All: true}
		}
	}
	return mapper.Selection{Names: values}
}

func parseColormapLimits(value string) (*[2]float64, error) {
	fields := strings.Split(value, ",")
	if len(fields) != 2 {
		return nil, errors.Newf("--colormap-limits expects two comma-separated fractions, got %q", value)
	}
	var limits [2]float64
	for i, field := range fields {
		fraction, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, errors.Newf("--colormap-limits value %q is not a number", field)
		}
		limits[i] = fraction
	}
	return &limits, nil
}

func init() {
	requiredFlags := []string{addOutputDirFlag(PathwaysDrawCommand)}

	addContigsDBsFlag(PathwaysDrawCommand)
	addExternalGenomesFlag(PathwaysDrawCommand)
	addPanDBFlag(PathwaysDrawCommand)
	addGenomesStorageFlag(PathwaysDrawCommand)
	addPathwayNumbersFlag(PathwaysDrawCommand)
	addKOColorFlag(PathwaysDrawCommand)
	addColormapFlag(PathwaysDrawCommand)
	addColormapLimitsFlag(PathwaysDrawCommand)
	addColormapSchemeFlag(PathwaysDrawCommand)
	addReverseOverlayFlag(PathwaysDrawCommand)
	addNoColorbarFlag(PathwaysDrawCommand)
	addDrawIndividualFilesFlag(PathwaysDrawCommand)
	addDrawGridFlag(PathwaysDrawCommand)
	addDrawMapsLackingKOsFlag(PathwaysDrawCommand)
	addConsensusThresholdFlag(PathwaysDrawCommand)
	addDiscardTiesFlag(PathwaysDrawCommand)
	addKeggDirFlag(PathwaysDrawCommand)
	addOverwriteFlag(PathwaysDrawCommand)

	for _, flag := range requiredFlags {
		err := PathwaysDrawCommand.MarkFlagRequired(flag)
		if err != nil {
			logFatalln(err)
		}
	}

	pathwaysCmd.AddCommand(PathwaysDrawCommand)
}
