package emotion

import (
	"bufio"
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// LexiconSentiment estimates polarity and subjectivity from fixed word lists.
// It always contributes: the sentiment field is overwritten and confidence is
// boosted when the text reads as subjective.
type LexiconSentiment struct{}

func NewLexiconSentiment() *LexiconSentiment { return &LexiconSentiment{} }

func (s *LexiconSentiment) Name() string { return "lexicon_sentiment" }

var (
	positiveWords = wordSet("good", "great", "happy", "love", "wonderful", "amazing", "excellent",
		"awesome", "fantastic", "glad", "grateful", "proud", "excited", "hopeful", "calm",
		"joy", "fun", "nice", "better", "best")
	negativeWords = wordSet("bad", "sad", "hate", "terrible", "awful", "horrible", "angry",
		"worried", "anxious", "stressed", "scared", "upset", "lonely", "hopeless", "tired",
		"worse", "worst", "pain", "hurt", "fear")
	subjectiveWords = wordSet("i", "me", "my", "feel", "feeling", "felt", "think", "believe",
		"seems", "maybe", "really", "very", "honestly", "personally", "wish", "want", "hope")

	wordToken = regexp.MustCompile(`[a-z']+`)
)

func wordSet(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

func (s *LexiconSentiment) Enrich(_ context.Context, text string, res *Result) bool {
	tokens := wordToken.FindAllString(strings.ToLower(text), -1)
	if len(tokens) == 0 {
		return false
	}

	var pos, neg, subj int
	for _, tok := range tokens {
		if _, ok := positiveWords[tok]; ok {
			pos++
		}
		if _, ok := negativeWords[tok]; ok {
			neg++
		}
		if _, ok := subjectiveWords[tok]; ok {
			subj++
		}
	}

	if pos+neg > 0 {
		res.Sentiment.Polarity = float64(pos-neg) / float64(pos+neg)
	} else {
		res.Sentiment.Polarity = 0
	}
	subjectivity := float64(subj) / float64(len(tokens)) * 4
	if subjectivity > 1 {
		subjectivity = 1
	}
	res.Sentiment.Subjectivity = subjectivity
	res.Method = MethodSentiment

	if subjectivity > 0.5 {
		res.Confidence += 0.2
		if res.Confidence > 1.0 {
			res.Confidence = 1.0
		}
	}
	return true
}

// Completer is the minimal generation capability the advanced layer needs.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// labelMap translates classifier output labels into the closed category set.
// Unmapped labels are dropped.
var labelMap = map[string]Category{
	"joy":        Happy,
	"happiness":  Happy,
	"love":       Happy,
	"sadness":    Sad,
	"anger":      Angry,
	"disgust":    Angry,
	"fear":       Anxious,
	"worry":      Anxious,
	"stress":     Stressed,
	"surprise":   Confused,
	"confusion":  Confused,
	"neutral":    Neutral,
	"enthusiasm": Motivated,
}

// LLMClassifier asks a language model to label the text and maps the labels
// back into the closed category set. It only overwrites the prior layers when
// at least one label maps; any transport or parse failure leaves the result
// untouched.
type LLMClassifier struct {
	completer Completer
	log       zerolog.Logger
}

func NewLLMClassifier(completer Completer, log zerolog.Logger) *LLMClassifier {
	return &LLMClassifier{
		completer: completer,
		log:       log.With().Str("component", "emotion.llm").Logger(),
	}
}

func (c *LLMClassifier) Name() string { return "llm_classifier" }

const classifyPrompt = `Classify the emotional content of the message below.
Respond with one line per detected emotion in the form "label score", where
label is one of: joy, sadness, anger, fear, surprise, disgust, neutral, worry,
love, stress, confusion, enthusiasm, and score is a number between 0 and 1.
Output nothing else.

Message: `

func (c *LLMClassifier) Enrich(ctx context.Context, text string, res *Result) bool {
	if c == nil || c.completer == nil || strings.TrimSpace(text) == "" {
		return false
	}

	raw, err := c.completer.Complete(ctx, classifyPrompt+text)
	if err != nil {
		c.log.Warn().Err(err).Msg("classifier call failed, keeping rule result")
		return false
	}

	mapped := parseLabels(raw)
	if len(mapped) == 0 {
		return false
	}

	best := Category("")
	bestScore := -1.0
	for _, cat := range Categories {
		if s, ok := mapped[cat]; ok && s.Score > bestScore {
			best = cat
			bestScore = s.Score
		}
	}

	res.Primary = best
	res.PrimaryIntensity = mapped[best].Intensity
	res.Confidence = bestScore
	res.AllEmotions = mapped
	res.Method = MethodClassifier
	return true
}

func parseLabels(raw string) map[Category]Score {
	mapped := map[Category]Score{}
	sc := bufio.NewScanner(strings.NewReader(raw))
	for sc.Scan() {
		fields := strings.Fields(strings.TrimSpace(sc.Text()))
		if len(fields) < 2 {
			continue
		}
		label := strings.ToLower(strings.Trim(fields[0], ":,"))
		score, err := strconv.ParseFloat(fields[len(fields)-1], 64)
		if err != nil || score < 0 || score > 1 {
			continue
		}
		cat, ok := labelMap[label]
		if !ok {
			continue
		}
		if prev, exists := mapped[cat]; exists && prev.Score >= score {
			continue
		}
		mapped[cat] = Score{Score: score, Intensity: intensityForScore(score)}
	}
	return mapped
}

func intensityForScore(score float64) Intensity {
	switch {
	case score > 0.7:
		return High
	case score > 0.3:
		return Medium
	default:
		return Low
	}
}
