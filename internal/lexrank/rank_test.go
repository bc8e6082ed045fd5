package lexrank

import (
	"math"
	"testing"
)

func TestBuildSimilarityGraph(t *testing.T) {
	vectors := [][]float64{
		{1, 0},
		{1, 0},
		{0, 1},
		{1, 20},
	}

	graph := BuildSimilarityGraph(vectors)

	if len(graph) != len(vectors) {
		t.Fatalf("graph has %d rows, want %d", len(graph), len(vectors))
	}
	for i := range graph {
		if graph[i][i] != 0 {
			t.Errorf("graph[%d][%d] = %v, want 0", i, i, graph[i][i])
		}
		for j := range graph {
			if graph[i][j] != graph[j][i] {
				t.Errorf("graph is not symmetric at (%d, %d)", i, j)
			}
		}
	}

	if math.Abs(graph[0][1]-1) > 1e-9 {
		t.Errorf("graph[0][1] = %v, want 1", graph[0][1])
	}
	if graph[0][2] != 0 {
		t.Errorf("orthogonal vectors share an edge: %v", graph[0][2])
	}
	// cos = 1/sqrt(401), below the edge threshold.
	if graph[0][3] != 0 {
		t.Errorf("weak similarity produced an edge: %v", graph[0][3])
	}
	if graph[2][3] <= SimilarityThreshold {
		t.Errorf("graph[2][3] = %v, want an edge", graph[2][3])
	}
}

func TestBuildSimilarityGraphEmpty(t *testing.T) {
	if graph := BuildSimilarityGraph(nil); len(graph) != 0 {
		t.Errorf("BuildSimilarityGraph(nil) = %v, want empty", graph)
	}
}

func TestRank(t *testing.T) {
	t.Run("empty graph", func(t *testing.T) {
		result := Rank(nil)
		if len(result.Scores) != 0 || !result.Converged {
			t.Errorf("Rank(nil) = %+v", result)
		}
	})

	t.Run("no edges", func(t *testing.T) {
		result := Rank([][]float64{{0, 0}, {0, 0}})
		teleport := (1 - DampingFactor) / 2
		for i, score := range result.Scores {
			if math.Abs(score-teleport) > 1e-12 {
				t.Errorf("score[%d] = %v, want %v", i, score, teleport)
			}
		}
		if !result.Converged || result.Iterations != 2 {
			t.Errorf("Converged = %v, Iterations = %d; want true, 2", result.Converged, result.Iterations)
		}
	})

	t.Run("pair converges", func(t *testing.T) {
		result := Rank([][]float64{{0, 1}, {1, 0}})
		if !result.Converged || result.Iterations >= MaxIterations {
			t.Errorf("Converged = %v, Iterations = %d", result.Converged, result.Iterations)
		}
		for i, score := range result.Scores {
			if math.Abs(score-0.5) > 1e-3 {
				t.Errorf("score[%d] = %v, want about 0.5", i, score)
			}
		}
	})

	t.Run("isolated node gets teleport share", func(t *testing.T) {
		result := Rank([][]float64{
			{0, 0.5, 0},
			{0.5, 0, 0},
			{0, 0, 0},
		})
		teleport := (1 - DampingFactor) / 3
		if math.Abs(result.Scores[2]-teleport) > 1e-12 {
			t.Errorf("isolated score = %v, want %v", result.Scores[2], teleport)
		}
		if result.Scores[0] != result.Scores[1] {
			t.Errorf("connected pair scored unevenly: %v", result.Scores)
		}
		if result.Scores[0] <= result.Scores[2] {
			t.Errorf("connected node scored %v, isolated %v", result.Scores[0], result.Scores[2])
		}
	})

	t.Run("star center ranks highest", func(t *testing.T) {
		result := Rank([][]float64{
			{0, 1, 1, 1},
			{1, 0, 0, 0},
			{1, 0, 0, 0},
			{1, 0, 0, 0},
		})
		for i := 1; i < 4; i++ {
			if result.Scores[0] <= result.Scores[i] {
				t.Errorf("center %v not above leaf %d (%v)", result.Scores[0], i, result.Scores[i])
			}
		}
	})

	t.Run("bounded iterations", func(t *testing.T) {
		graph := [][]float64{
			{0, 1, 1},
			{1, 0, 1},
			{1, 1, 0},
		}
		result := Rank(graph)
		if result.Iterations > MaxIterations {
			t.Errorf("Iterations = %d, want at most %d", result.Iterations, MaxIterations)
		}
		for i, score := range result.Scores {
			if math.Abs(score-1.0/3.0) > 1e-3 {
				t.Errorf("score[%d] = %v, want about 1/3", i, score)
			}
		}
	})
}
