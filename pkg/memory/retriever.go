package memory

import (
	"math"
	"sort"
	"time"
)

type scoredSnippet struct {
	snippet Snippet
	vector  float64
	recency float64
	score   float64
}

// defaultRecencyHalfLife controls how quickly old snippets fade out of
// recall. Two weeks halves a snippet's recency weight.
const defaultRecencyHalfLife = 14 * 24 * time.Hour

// rankSnippets orders candidates by blended similarity and recency and
// returns the top K contents, most relevant first.
func rankSnippets(queryVec []float32, candidates []Snippet, vectors map[string][]float32, nowMS int64, topK int) []Snippet {
	if topK <= 0 || len(candidates) == 0 {
		return nil
	}

	scored := make([]*scoredSnippet, 0, len(candidates))
	for _, c := range candidates {
		s := &scoredSnippet{snippet: c}
		if vec, ok := vectors[c.ID]; ok {
			s.vector = (cosineSimilarity(queryVec, vec) + 1) / 2
		}
		s.recency = recencyWeight(nowMS, c.LastSeenMS, defaultRecencyHalfLife)
		s.score = 0.75*s.vector + 0.25*s.recency
		scored = append(scored, s)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	if len(scored) > topK {
		scored = scored[:topK]
	}
	out := make([]Snippet, 0, len(scored))
	for _, s := range scored {
		out = append(out, s.snippet)
	}
	return out
}

func recencyWeight(nowMS, seenMS int64, halfLife time.Duration) float64 {
	if seenMS <= 0 || nowMS <= seenMS {
		return 1
	}
	age := time.Duration(nowMS-seenMS) * time.Millisecond
	return math.Pow(0.5, float64(age)/float64(halfLife))
}
