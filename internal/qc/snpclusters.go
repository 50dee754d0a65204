package qc

// ClusteredSnp is one dense run of private mutations found within
// config.WindowSize of each other.
type ClusteredSnp struct {
	Start         int
	End           int
	NumberOfSNPs int
}

// SnpClustersResult is the outcome of RuleSnpClusters.
type SnpClustersResult struct {
	RuleResult
	TotalSNPs    int
	ClusteredSNPs []ClusteredSnp
}

// findSnpClusters slides a window of config.WindowSize positions over the
// sorted private-mutation positions; whenever more than config.ClusterCutOff
// positions fall in the current window, they are folded into a cluster
// (when the previous cluster ends at the mutation just before this one, the
// position is appended to that cluster instead of starting a new one).
func findSnpClusters(positions []int, cfg *SnpClustersConfig) [][]int {
	var currentCluster []int
	var allClusters [][]int
	previousPos := -1

	for _, pos := range positions {
		currentCluster = append(currentCluster, pos)

		for len(currentCluster) > 0 && currentCluster[0] < pos-cfg.WindowSize {
			currentCluster = currentCluster[1:]
		}

		if len(currentCluster) > cfg.ClusterCutOff {
			if len(allClusters) > 0 && len(currentCluster) > 1 &&
				allClusters[len(allClusters)-1][len(allClusters[len(allClusters)-1])-1] == previousPos {
				last := len(allClusters) - 1
				allClusters[last] = append(allClusters[last], pos)
			} else {
				cluster := make([]int, len(currentCluster))
				copy(cluster, currentCluster)
				allClusters = append(allClusters, cluster)
			}
		}
		previousPos = pos
	}

	return allClusters
}

// RuleSnpClusters scores dense local clusters of positions (already sorted
// in ascending order) against config.WindowSize/ClusterCutOff, weighting
// each cluster found by config.ScoreWeight.
func RuleSnpClusters(positions []int, cfg *SnpClustersConfig) *SnpClustersResult {
	if cfg == nil || !cfg.Enabled {
		return nil
	}

	clusters := findSnpClusters(positions, cfg)

	clusteredSNPs := make([]ClusteredSnp, 0, len(clusters))
	totalSNPs := 0
	for _, cluster := range clusters {
		clusteredSNPs = append(clusteredSNPs, ClusteredSnp{
			Start:        cluster[0],
			End:          cluster[len(cluster)-1],
			NumberOfSNPs: len(cluster),
		})
		totalSNPs += len(cluster)
	}

	score := maxZero(float64(len(clusters)) * cfg.ScoreWeight)
	return &SnpClustersResult{
		RuleResult:    RuleResult{Score: score, Status: Status(score)},
		TotalSNPs:     totalSNPs,
		ClusteredSNPs: clusteredSNPs,
	}
}
