package projdb

import (
	"context"
	"sort"
	"strconv"

	"github.com/omicsdesk/genomaps/pkg/projdb/status"
)

// Self table keys specific to pan databases
const (
	selfExternalGenomeNames = "external_genome_names"
	selfConsensusThreshold  = "reaction_network_consensus_threshold"
	selfDiscardTies         = "reaction_network_discard_ties"
)

// PanDB is a pangenomic database describing gene clusters across the
// genomes of a genome storage
type PanDB struct {
	*DB
}

// OpenPan opens a pan database
func OpenPan(ctx context.Context, path string) (*PanDB, error) {
	db, err := OpenTyped(ctx, path, TypePan)
	if err != nil {
		return nil, err
	}
	return &PanDB{DB: db}, nil
}

// GenomeNames lists the genomes of the pangenome
func (p *PanDB) GenomeNames() []string {
	return splitCommaList(p.self[selfExternalGenomeNames])
}

// ConsensusParams returns the consensus annotation parameters stored
// with a reaction network, if any. The threshold is nil when absent.
func (p *PanDB) ConsensusParams() (threshold *float64, discardTies bool, err error) {
	if raw, ok := p.self[selfConsensusThreshold]; ok && raw != "" {
		value, perr := strconv.ParseFloat(raw, 64)
		if perr != nil {
			return nil, false, status.ErrQuery.WrapMessage(perr, "self value %s", selfConsensusThreshold)
		}
		if value < 0 || value > 1 {
			return nil, false, status.ErrQuery.WrapMessage(nil,
				"self value %s out of [0, 1]: %g", selfConsensusThreshold, value)
		}
		threshold = &value
	}
	if raw, ok := p.self[selfDiscardTies]; ok && raw != "" {
		flag, perr := strconv.Atoi(raw)
		if perr != nil {
			return nil, false, status.ErrQuery.WrapMessage(perr, "self value %s", selfDiscardTies)
		}
		discardTies = flag != 0
	}
	return threshold, discardTies, nil
}

// GeneClusterMember is one gene's membership in a gene cluster
type GeneClusterMember struct {
	GeneCallerID int64
	ClusterID    string
	GenomeName   string
}

// GeneClusters lists all gene cluster memberships
func (p *PanDB) GeneClusters(ctx context.Context) ([]GeneClusterMember, error) {
	rows, err := p.sqldb.QueryContext(ctx,
		`SELECT gene_caller_id, gene_cluster_id, genome_name FROM gene_clusters`)
	if err != nil {
		return nil, status.ErrQuery.WrapMessage(err, "%s", p.path)
	}
	defer rows.Close()

	var members []GeneClusterMember
	for rows.Next() {
		var member GeneClusterMember
		if err := rows.Scan(&member.GeneCallerID, &member.ClusterID, &member.GenomeName); err != nil {
			return nil, status.ErrQuery.Wrap(err)
		}
		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, status.ErrQuery.Wrap(err)
	}
	return members, nil
}

// ConsensusKO is the KO accession agreed on by the genes of a cluster,
// and the genomes contributing genes to that cluster
type ConsensusKO struct {
	ClusterID string
	Accession string
	Genomes   []string
}

// ConsensusKOs derives a consensus KO per gene cluster from per-gene
// annotations.
//
// The most frequent KO among the annotated genes of a cluster becomes
// its consensus. With a threshold set, at least that proportion of the
// cluster's genes must carry the winning annotation. With discardTies,
// clusters whose most frequent annotation is not unique get none;
// otherwise the tie breaks to the lexicographically first accession.
func ConsensusKOs(
	members []GeneClusterMember,
	annotations map[string]map[int64]string,
	threshold *float64,
	discardTies bool,
) []ConsensusKO {
	type clusterTally struct {
		counts  map[string]int
		genes   int
		genomes map[string]struct{}
	}

	tallies := make(map[string]*clusterTally)
	var clusterIDs []string
	for _, member := range members {
		tally, ok := tallies[member.ClusterID]
		if !ok {
			tally = &clusterTally{
				counts:  make(map[string]int),
				genomes: make(map[string]struct{}),
			}
			tallies[member.ClusterID] = tally
			clusterIDs = append(clusterIDs, member.ClusterID)
		}
		tally.genes++
		tally.genomes[member.GenomeName] = struct{}{}
		if accession, ok := annotations[member.GenomeName][member.GeneCallerID]; ok {
			tally.counts[accession]++
		}
	}
	sort.Strings(clusterIDs)

	var consensus []ConsensusKO
	for _, clusterID := range clusterIDs {
		tally := tallies[clusterID]
		if len(tally.counts) == 0 {
			continue
		}

		best := ""
		bestCount := 0
		tied := false
		for accession, count := range tally.counts {
			switch {
			case count > bestCount:
				best, bestCount, tied = accession, count, false
			case count == bestCount:
				tied = true
				if accession < best {
					best = accession
				}
			}
		}
		if tied && discardTies {
			continue
		}
		if threshold != nil && float64(bestCount)/float64(tally.genes) < *threshold {
			continue
		}

		genomes := make([]string, 0, len(tally.genomes))
		for genome := range tally.genomes {
			genomes = append(genomes, genome)
		}
		sort.Strings(genomes)
		consensus = append(consensus, ConsensusKO{
			ClusterID: clusterID,
			Accession: best,
			Genomes:   genomes,
		})
	}
	return consensus
}
