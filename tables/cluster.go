package tables

import (
	"math"
	"sort"
)

// cluster is a running mean of nearby positions
type cluster struct {
	sum   float64
	count int
	avg   float64
}

func (c *cluster) add(v float64) {
	c.sum += v
	c.count++
	c.avg = c.sum / float64(c.count)
}

func (c *cluster) absorb(o cluster) {
	c.sum += o.sum
	c.count += o.count
	c.avg = c.sum / float64(c.count)
}

// clusterValues sorts values and assigns each to the first cluster whose
// running mean lies within tolerance, starting a new cluster otherwise.
// Clusters are returned in creation order.
func clusterValues(values []float64, tolerance float64) []cluster {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	var clusters []cluster
	for _, v := range sorted {
		placed := false
		for i := range clusters {
			if math.Abs(clusters[i].avg-v) <= tolerance {
				clusters[i].add(v)
				placed = true
				break
			}
		}
		if !placed {
			clusters = append(clusters, cluster{sum: v, count: 1, avg: v})
		}
	}
	return clusters
}

// mergeAdjacent folds each cluster into its predecessor when their means
// are within both mergeTol and maxSpan.
func mergeAdjacent(clusters []cluster, mergeTol, maxSpan float64) []cluster {
	if len(clusters) < 2 {
		return clusters
	}
	merged := make([]cluster, 0, len(clusters))
	cur := clusters[0]
	for _, c := range clusters[1:] {
		dist := math.Abs(c.avg - cur.avg)
		if dist <= mergeTol && dist <= maxSpan {
			cur.absorb(c)
			continue
		}
		merged = append(merged, cur)
		cur = c
	}
	return append(merged, cur)
}

// clusterCenters returns the means of clusterValues in ascending order.
func clusterCenters(values []float64, tolerance float64) []float64 {
	clusters := clusterValues(values, tolerance)
	out := make([]float64, len(clusters))
	for i, c := range clusters {
		out[i] = c.avg
	}
	sort.Float64s(out)
	return out
}

// nearestCluster returns the index of the closest center strictly within
// tolerance, or -1.
func nearestCluster(x float64, centers []float64, tolerance float64) int {
	best := -1
	bestDist := tolerance
	for i, c := range centers {
		d := math.Abs(c - x)
		if d <= tolerance && d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}
