package lexrank

import (
	"math"

	"github.com/localrivet/lexsummary/internal/vector"
)

// BuildSimilarityGraph returns the symmetric adjacency matrix of the
// sentence vectors. An edge carries the cosine similarity of its endpoints
// and exists only when that similarity exceeds SimilarityThreshold. The
// diagonal is always zero.
func BuildSimilarityGraph(vectors [][]float64) [][]float64 {
	n := len(vectors)
	graph := make([][]float64, n)
	for i := range graph {
		graph[i] = make([]float64, n)
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			sim := vector.CosineSimilarity(vectors[i], vectors[j])
			if sim > SimilarityThreshold {
				graph[i][j] = sim
				graph[j][i] = sim
			}
		}
	}
	return graph
}

// RankResult holds the centrality score of every sentence along with how
// the iteration ended.
type RankResult struct {
	Scores     []float64
	Iterations int
	Converged  bool
}

// Rank scores each node of graph with a damped random walk. Every row of the
// graph is normalized by its sum to form the transition matrix; a node with
// no edges keeps an all-zero row and only receives the teleport share.
// Iteration stops once the total absolute score change falls below
// ConvergenceThreshold or after MaxIterations rounds.
func Rank(graph [][]float64) RankResult {
	n := len(graph)
	if n == 0 {
		return RankResult{Scores: []float64{}, Converged: true}
	}

	transition := make([][]float64, n)
	for i, row := range graph {
		transition[i] = make([]float64, n)
		sum := 0.0
		for _, w := range row {
			sum += w
		}
		if sum == 0 {
			continue
		}
		for j, w := range row {
			transition[i][j] = w / sum
		}
	}

	scores := make([]float64, n)
	for i := range scores {
		scores[i] = 1.0
	}

	teleport := (1 - DampingFactor) / float64(n)
	result := RankResult{}
	for iter := 0; iter < MaxIterations; iter++ {
		next := make([]float64, n)
		for i := 0; i < n; i++ {
			sum := 0.0
			for j := 0; j < n; j++ {
				if j != i {
					sum += transition[j][i] * scores[j]
				}
			}
			next[i] = teleport + DampingFactor*sum
		}

		delta := 0.0
		for i := range next {
			delta += math.Abs(next[i] - scores[i])
		}
		scores = next
		result.Iterations = iter + 1

		if delta < ConvergenceThreshold {
			result.Converged = true
			break
		}
	}

	result.Scores = scores
	return result
}
