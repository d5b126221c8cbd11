package memory

import (
	"hash/fnv"
	"math"
	"regexp"
	"strings"
)

// Embedder turns text into a fixed-width vector. Embeddings are local and
// deterministic; no model server is involved.
type Embedder interface {
	ModelID() string
	Embed(text string) []float32
}

const (
	chargramModelID = "solace-chargram-384-v1"
	hashModelID     = "solace-hash-256-v1"
)

var tokenPattern = regexp.MustCompile(`[A-Za-z0-9_\-']+`)

// ChargramEmbedder hashes character trigrams plus whole tokens. It is the
// default because it tolerates typos in short chat messages.
type ChargramEmbedder struct {
	dims int
}

func NewChargramEmbedder() *ChargramEmbedder {
	return &ChargramEmbedder{dims: 384}
}

func (e *ChargramEmbedder) ModelID() string { return chargramModelID }

func (e *ChargramEmbedder) Embed(text string) []float32 {
	vec := make([]float32, e.dims)
	normalized := strings.ToLower(strings.TrimSpace(text))
	if normalized == "" {
		return vec
	}
	window := "#" + normalized + "#"
	for i := 0; i+3 <= len(window); i++ {
		gram := window[i : i+3]
		h := fnv.New64a()
		_, _ = h.Write([]byte(gram))
		sum := h.Sum64()
		vec[int(sum%uint64(e.dims))] += 1
	}
	for _, token := range tokenize(normalized) {
		h := fnv.New64a()
		_, _ = h.Write([]byte("tok:" + token))
		sum := h.Sum64()
		vec[int(sum%uint64(e.dims))] += 1.25
	}
	normalizeVector(vec)
	return vec
}

// HashEmbedder is a cheaper token-only variant, kept for smaller databases.
type HashEmbedder struct {
	dims int
}

func NewHashEmbedder() *HashEmbedder {
	return &HashEmbedder{dims: 256}
}

func (e *HashEmbedder) ModelID() string { return hashModelID }

func (e *HashEmbedder) Embed(text string) []float32 {
	vec := make([]float32, e.dims)
	for _, token := range tokenize(text) {
		h := fnv.New64a()
		_, _ = h.Write([]byte(token))
		sum := h.Sum64()
		idx := int(sum % uint64(e.dims))
		sign := float32(1)
		if sum&1 == 1 {
			sign = -1
		}
		weight := float32(1 + (len(token) / 8))
		vec[idx] += sign * weight
	}
	normalizeVector(vec)
	return vec
}

// EmbedderByName maps a config string to an embedder, defaulting to chargram.
func EmbedderByName(name string) Embedder {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case hashModelID, "hash", "hash-256":
		return NewHashEmbedder()
	default:
		return NewChargramEmbedder()
	}
}

func tokenize(text string) []string {
	text = strings.ToLower(text)
	matches := tokenPattern.FindAllString(text, -1)
	if len(matches) == 0 {
		return []string{text}
	}
	return matches
}

func vectorNorm(vec []float32) float64 {
	if len(vec) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vec {
		sum += float64(v * v)
	}
	return math.Sqrt(sum)
}

func normalizeVector(vec []float32) {
	n := vectorNorm(vec)
	if n == 0 {
		return
	}
	inv := float32(1.0 / n)
	for i := range vec {
		vec[i] *= inv
	}
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot float64
	for i := 0; i < n; i++ {
		dot += float64(a[i] * b[i])
	}
	return dot
}
