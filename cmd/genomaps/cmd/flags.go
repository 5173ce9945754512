package cmd

import (
	"github.com/spf13/cobra"
)

type flagsT struct {
	pathways struct {
		ContigsDBs         []string
		ExternalGenomes    string
		PanDB              string
		GenomesStorage     string
		OutputDir          string
		PathwayNumbers     []string
		KOColor            string
		Colormap           string
		ColormapLimits     string
		ColormapScheme     string
		ReverseOverlay     bool
		NoColorbar         bool
		DrawIndividual     []string
		DrawGrid           []string
		DrawLackingKOs     bool
		ConsensusThreshold float64
		DiscardTies        bool
		Overwrite          bool
	}
	orders struct {
		DB         string
		Name       string
		OutputFile string
	}
	root struct {
		keggDir  string
		logLevel string
	}
}

var genomapsFlags = flagsT{}

func addLogLevelFlag(cmd *cobra.Command) string {
	loglevel := "loglevel"
	// empty default so a config file loglevel can take effect
	cmd.PersistentFlags().StringVar(&genomapsFlags.root.logLevel, loglevel, "",
		"The logging level, one of: none, info, debug. Defaults to the config file value, then info")
	return loglevel
}

func addKeggDirFlag(cmd *cobra.Command) string {
	keggDir := "kegg-dir"
	cmd.Flags().StringVar(&genomapsFlags.root.keggDir, keggDir, "",
		"Directory containing the KEGG data set up for drawing. Defaults to ~/.genomaps/kegg")
	return keggDir
}

func addContigsDBsFlag(cmd *cobra.Command) string {
	contigsDBs := "contigs-dbs"
	cmd.Flags().StringSliceVar(&genomapsFlags.pathways.ContigsDBs, contigsDBs, nil,
		"One or more contigs database files with KO annotations")
	return contigsDBs
}

func addExternalGenomesFlag(cmd *cobra.Command) string {
	externalGenomes := "external-genomes"
	cmd.Flags().StringVar(&genomapsFlags.pathways.ExternalGenomes, externalGenomes, "",
		"Tab-delimited file of genome names and contigs database paths, "+
			"with the header: name, contigs_db_path")
	return externalGenomes
}

func addPanDBFlag(cmd *cobra.Command) string {
	panDB := "pan-db"
	cmd.Flags().StringVar(&genomapsFlags.pathways.PanDB, panDB, "",
		"Pan database file, to draw consensus KOs of its gene clusters. Requires --genomes-storage")
	return panDB
}

func addGenomesStorageFlag(cmd *cobra.Command) string {
	genomesStorage := "genomes-storage"
	cmd.Flags().StringVar(&genomapsFlags.pathways.GenomesStorage, genomesStorage, "",
		"Genomes storage database associated with the pan database")
	return genomesStorage
}

func addOutputDirFlag(cmd *cobra.Command) string {
	outputDir := "output-dir"
	cmd.Flags().StringVar(&genomapsFlags.pathways.OutputDir, outputDir, "",
		"Directory in which pathway map PDF files are drawn. Created if it does not exist")
	return outputDir
}

func addPathwayNumbersFlag(cmd *cobra.Command) string {
	pathwayNumbers := "pathway-numbers"
	// StringArray, not StringSlice: patterns may contain commas, e.g. {2,3} quantifiers
	cmd.Flags().StringArrayVar(&genomapsFlags.pathways.PathwayNumbers, pathwayNumbers, nil,
		"Regular expression matched against the five-digit pathway numbers to draw, "+
			"repeatable. All available maps are drawn by default")
	return pathwayNumbers
}

func addKOColorFlag(cmd *cobra.Command) string {
	koColor := "ko-color"
	cmd.Flags().StringVar(&genomapsFlags.pathways.KOColor, koColor, "",
		"Color hex code for reactions containing select KOs, or 'original' to keep "+
			"the reference map colors. Disables colormap coloring")
	return koColor
}

func addColormapFlag(cmd *cobra.Command) string {
	colormapFlag := "colormap"
	cmd.Flags().StringVar(&genomapsFlags.pathways.Colormap, colormapFlag, "",
		"Name of the colormap for dynamic coloring. An empty value disables dynamic coloring")
	return colormapFlag
}

func addColormapLimitsFlag(cmd *cobra.Command) string {
	colormapLimits := "colormap-limits"
	cmd.Flags().StringVar(&genomapsFlags.pathways.ColormapLimits, colormapLimits, "",
		"Two comma-separated fractions limiting the colormap range, e.g. 0.2,0.8")
	return colormapLimits
}

func addColormapSchemeFlag(cmd *cobra.Command) string {
	colormapScheme := "colormap-scheme"
	cmd.Flags().StringVar(&genomapsFlags.pathways.ColormapScheme, colormapScheme, "",
		"How contigs database reactions are dynamically colored, one of: by_count, by_database. "+
			"Defaults on the number of databases")
	return colormapScheme
}

func addReverseOverlayFlag(cmd *cobra.Command) string {
	reverseOverlay := "reverse-overlay"
	cmd.Flags().BoolVar(&genomapsFlags.pathways.ReverseOverlay, reverseOverlay, false,
		"Draw reactions in fewer databases or genomes on top of those in more")
	return reverseOverlay
}

func addNoColorbarFlag(cmd *cobra.Command) string {
	noColorbar := "no-colorbar"
	cmd.Flags().BoolVar(&genomapsFlags.pathways.NoColorbar, noColorbar, false,
		"Do not save a colorbar legend to colorbar.pdf")
	return noColorbar
}

func addDrawIndividualFilesFlag(cmd *cobra.Command) string {
	drawIndividualFiles := "draw-individual-files"
	cmd.Flags().StringSliceVar(&genomapsFlags.pathways.DrawIndividual, drawIndividualFiles, nil,
		"Also draw maps for individual databases or genomes: 'all', or a subset of names")
	cmd.Flags().Lookup(drawIndividualFiles).NoOptDefVal = "all"
	return drawIndividualFiles
}

func addDrawGridFlag(cmd *cobra.Command) string {
	drawGrid := "draw-grid"
	cmd.Flags().StringSliceVar(&genomapsFlags.pathways.DrawGrid, drawGrid, nil,
		"Draw per-pathway grids of the unified map and individual maps: 'all', or a subset of names")
	cmd.Flags().Lookup(drawGrid).NoOptDefVal = "all"
	return drawGrid
}

func addDrawMapsLackingKOsFlag(cmd *cobra.Command) string {
	drawMapsLackingKOs := "draw-maps-lacking-kos"
	cmd.Flags().BoolVar(&genomapsFlags.pathways.DrawLackingKOs, drawMapsLackingKOs, false,
		"Draw maps even when they contain none of the select KOs")
	return drawMapsLackingKOs
}

func addConsensusThresholdFlag(cmd *cobra.Command) string {
	consensusThreshold := "consensus-threshold"
	cmd.Flags().Float64Var(&genomapsFlags.pathways.ConsensusThreshold, consensusThreshold, 0,
		"Proportion of genes in a cluster that must carry the most frequent KO, on [0, 1]. "+
			"Defaults to the value stored with a reaction network in the pan database")
	return consensusThreshold
}

func addDiscardTiesFlag(cmd *cobra.Command) string {
	discardTies := "discard-ties"
	cmd.Flags().BoolVar(&genomapsFlags.pathways.DiscardTies, discardTies, false,
		"Do not assign a consensus KO to gene clusters with tied most frequent annotations")
	return discardTies
}

func addOverwriteFlag(cmd *cobra.Command) string {
	overwrite := "overwrite"
	cmd.Flags().BoolVar(&genomapsFlags.pathways.Overwrite, overwrite, false,
		"Overwrite pre-existing output files")
	return overwrite
}

func addOrdersDBFlag(cmd *cobra.Command) string {
	db := "db"
	cmd.Flags().StringVar(&genomapsFlags.orders.DB, db, "",
		"Pan or profile database file storing item orders")
	return db
}

func addOrderNameFlag(cmd *cobra.Command) string {
	name := "name"
	cmd.Flags().StringVar(&genomapsFlags.orders.Name, name, "",
		"Name of the item order to export. Omit to list the available orders")
	return name
}

func addOrderOutputFileFlag(cmd *cobra.Command) string {
	outputFile := "output-file"
	cmd.Flags().StringVar(&genomapsFlags.orders.OutputFile, outputFile, "item-order.txt",
		"File the item order is written to")
	return outputFile
}
