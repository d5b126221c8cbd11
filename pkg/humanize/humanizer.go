package humanize

import (
	"math/rand"
	"regexp"
	"strings"
	"unicode"
)

// Stage gate probabilities. Tunable constants, not config: they define the
// voice of the product.
const (
	pPunctuation = 0.8
	pFiller      = 0.7
	pExpression  = 0.7
	pFollowUp    = 0.6
	pHesitation  = 0.3

	// sub-chances inside the follow-up stage
	pEmotionalFollowUp = 0.5
	pGenericFollowUp   = 0.3

	maxWords      = 400
	truncateWords = 380
)

// FallbackInvitation is returned when there is nothing to enhance.
const FallbackInvitation = "I'm here to listen. What's on your mind?"

var fillers = []string{
	"Hmm", "Oh", "Ah", "Well", "You know", "Actually",
	"Hmm, let's see", "Oh right", "So", "You know what I mean?",
	"Wait a second", "Believe it or not", "I was thinking",
	"Funny you should mention that", "To be honest", "You see",
}

var expressions = []string{
	"you know?", "right?", "you see", "I get that", "makes sense",
	"it's like", "sort of", "kind of", "maybe", "perhaps",
	"I think", "I feel like", "to be honest", "frankly", "truthfully",
	"if that makes sense", "you know what I mean", "in my experience",
	"from what I've seen", "I've noticed that", "to tell you the truth",
}

var hesitations = []string{"um", "uh", "like", "you know"}

var punctuationVariants = map[byte][]string{
	'.': {".", "...", ", you know?", ", maybe?", ", if that makes sense", ". "},
	'?': {"?", "? Hmm", "? What do you think?", "? I'm curious"},
	'!': {"!", "! That's amazing!", "! How cool is that?", "! Wow"},
}

var genericFollowUps = []string{
	"What do you think about that?",
	"How does that make you feel?",
	"Want to share more about it?",
	"Does that resonate with you at all?",
}

// contractions maps full forms to their spoken contractions. Keys are
// lowercase; the replacement preserves a capitalized first letter.
var contractions = map[string]string{
	"i am": "I'm", "you are": "you're", "he is": "he's", "she is": "she's",
	"it is": "it's", "we are": "we're", "they are": "they're",
	"i have": "I've", "you have": "you've", "we have": "we've", "they have": "they've",
	"i will": "I'll", "you will": "you'll", "we will": "we'll", "they will": "they'll",
	"do not": "don't", "does not": "doesn't", "did not": "didn't",
	"cannot": "can't", "could not": "couldn't", "would not": "wouldn't",
	"should not": "shouldn't", "is not": "isn't", "are not": "aren't",
	"have not": "haven't", "has not": "hasn't",
}

// contractionOrder keeps replacement deterministic across runs.
var contractionOrder = []string{
	"i am", "you are", "he is", "she is", "it is", "we are", "they are",
	"i have", "you have", "we have", "they have",
	"i will", "you will", "we will", "they will",
	"do not", "does not", "did not", "cannot", "could not", "would not",
	"should not", "is not", "are not", "have not", "has not",
}

type contractionRule struct {
	re   *regexp.Regexp
	full string
}

// Whole-word matching keeps already-contracted text intact: "You aren't"
// must not match the "you are" rule.
var contractionRules = buildContractionRules()

func buildContractionRules() []contractionRule {
	rules := make([]contractionRule, 0, len(contractionOrder))
	for _, full := range contractionOrder {
		re := regexp.MustCompile(`(?i)\b` + strings.ReplaceAll(full, " ", `\s+`) + `\b`)
		rules = append(rules, contractionRule{re: re, full: full})
	}
	return rules
}

// EmotionalContext is a response-shaping lexicon hit. It is deliberately
// narrower than the classifier's taxonomy: it only carries the follow-up and
// quick-response material for the matched mood.
type EmotionalContext struct {
	Responses []string
	FollowUps []string
}

type emotionalPattern struct {
	re  *regexp.Regexp
	ctx EmotionalContext
}

var emotionalPatterns = []emotionalPattern{
	{
		re: regexp.MustCompile(`(?i)\bstress\b|\banxious\b|\bworried\b`),
		ctx: EmotionalContext{
			Responses: []string{
				"I can sense that weight you're carrying… it sounds really tough.",
				"That sounds so stressful. I'm here to listen if you want to share more.",
				"Stress can feel so overwhelming, but I'm glad you're opening up about it.",
			},
			FollowUps: []string{
				"What do you think is making this feel so heavy right now?",
				"Is there a specific part of this that feels the most challenging?",
				"Would it help to talk through what's been on your mind?",
			},
		},
	},
	{
		re: regexp.MustCompile(`(?i)\bhappy\b|\bexcited\b|\bjoy\b|\bgreat\b`),
		ctx: EmotionalContext{
			Responses: []string{
				"Oh that's wonderful to hear! You sound really excited about this.",
				"I love seeing you this happy – tell me more about what's making you feel this way!",
				"Your joy is contagious! What's been the best part of it for you?",
			},
			FollowUps: []string{
				"How long have you been feeling like this? It's great!",
				"What do you think is the most exciting part about this?",
				"Is there someone you want to share this happiness with?",
			},
		},
	},
	{
		re: regexp.MustCompile(`(?i)\bsad\b|\bupset\b|\bhurt\b|\bdisappointed\b`),
		ctx: EmotionalContext{
			Responses: []string{
				"I'm so sorry you're feeling this way. It must be really hard.",
				"That sounds really painful. I'm here for you, even if it's just to listen.",
				"Heartache can feel so heavy, but you're not going through this alone.",
			},
			FollowUps: []string{
				"Do you want to talk about what happened? Sometimes sharing helps.",
				"What do you think might help you feel even a little better right now?",
				"Is there something you wish could be different about this situation?",
			},
		},
	},
	{
		re: regexp.MustCompile(`(?i)\bconfused\b|\buncertain\b|\bnot sure\b`),
		ctx: EmotionalContext{
			Responses: []string{
				"It's completely normal to feel confused sometimes – especially with complex situations.",
				"Uncertainty can be really uncomfortable, but it also means there are possibilities.",
				"I get that feeling of not knowing which way to turn. Let's try to untangle this together.",
			},
			FollowUps: []string{
				"What's the first thing that comes to mind when you think about this?",
				"Is there a small part of this that feels clearer than the rest?",
				"If you had all the answers right now, what would you want them to be?",
			},
		},
	},
	{
		re: regexp.MustCompile(`(?i)\bthank\b|\bappreciate\b`),
		ctx: EmotionalContext{
			Responses: []string{
				"You're welcome – it means a lot that I can be here for you.",
				"I'm just glad I could help in some way.",
				"Anytime! That's what friends are for, right?",
			},
			FollowUps: []string{
				"How are you feeling now after our chat?",
				"Is there anything else on your mind you'd like to talk about?",
				"I'm here whenever you need to talk again.",
			},
		},
	},
}

// DetectEmotionalContext matches userInput against the response-shaping
// lexicon. Returns nil when nothing matches.
func DetectEmotionalContext(userInput string) *EmotionalContext {
	for i := range emotionalPatterns {
		if emotionalPatterns[i].re.MatchString(userInput) {
			ctx := emotionalPatterns[i].ctx
			return &ctx
		}
	}
	return nil
}

// Humanizer rewrites a draft reply to sound conversational. All randomness
// comes from the injected source so tests can pin outcomes.
type Humanizer struct {
	rng *rand.Rand
}

func New(rng *rand.Rand) *Humanizer {
	return &Humanizer{rng: rng}
}

// Enhance applies the full pipeline. The output is never empty and never
// contains doubled whitespace.
func (h *Humanizer) Enhance(draft, userInput string) string {
	if strings.TrimSpace(draft) == "" {
		return FallbackInvitation
	}

	out := capitalizeFirst(draft)
	emotional := DetectEmotionalContext(userInput)

	out = ApplyContractions(out)

	if h.rng.Float64() < pPunctuation {
		out = h.varyPunctuation(out)
	}
	if h.rng.Float64() < pFiller {
		out = h.addFiller(out)
	}
	if h.rng.Float64() < pExpression {
		out = h.addExpression(out)
	}
	if h.rng.Float64() < pFollowUp {
		out = h.addFollowUp(out, emotional)
	}
	if h.rng.Float64() < pHesitation {
		out = h.addHesitation(out)
	}

	words := strings.Fields(out)
	if len(words) > maxWords {
		out = strings.Join(words[:truncateWords], " ") + "..."
	}

	return strings.Join(strings.Fields(out), " ")
}

// AdaptedResponse returns a canned emotionally-matched reply for userInput,
// or false when the lexicon has nothing for it.
func (h *Humanizer) AdaptedResponse(userInput string) (string, bool) {
	ctx := DetectEmotionalContext(userInput)
	if ctx == nil || len(ctx.Responses) == 0 {
		return "", false
	}
	return ctx.Responses[h.rng.Intn(len(ctx.Responses))], true
}

func capitalizeFirst(s string) string {
	r := []rune(s)
	if len(r) > 0 && unicode.IsLower(r[0]) {
		r[0] = unicode.ToUpper(r[0])
	}
	return string(r)
}

// ApplyContractions collapses full forms into contractions, preserving the
// case of the matched text ("Do not" -> "Don't").
func ApplyContractions(s string) string {
	for _, rule := range contractionRules {
		contraction := contractions[rule.full]
		s = rule.re.ReplaceAllStringFunc(s, func(m string) string {
			switch {
			case isAllUpper(m):
				return strings.ToUpper(contraction)
			case unicode.IsUpper([]rune(m)[0]):
				return titleFirst(contraction)
			default:
				return lowerFirst(contraction)
			}
		})
	}
	return s
}

func isAllUpper(s string) bool {
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
	}
	return true
}

func lowerFirst(s string) string {
	r := []rune(s)
	if len(r) > 0 {
		// "I'm", "I've" etc. keep the pronoun capitalized
		if strings.HasPrefix(s, "I'") {
			return s
		}
		r[0] = unicode.ToLower(r[0])
	}
	return string(r)
}

func titleFirst(s string) string {
	r := []rune(s)
	if len(r) > 0 {
		r[0] = unicode.ToUpper(r[0])
	}
	return string(r)
}

func (h *Humanizer) varyPunctuation(s string) string {
	if len(s) < 2 {
		return s
	}
	last := s[len(s)-1]
	variants, ok := punctuationVariants[last]
	if !ok {
		return s
	}
	return s[:len(s)-1] + variants[h.rng.Intn(len(variants))]
}

func (h *Humanizer) addFiller(s string) string {
	words := strings.Fields(s)
	if len(words) < 5 {
		return s
	}
	if startsWithFiller(s) {
		return s
	}
	filler := fillers[h.rng.Intn(len(fillers))]
	return filler + ", " + lowerFirstWord(s)
}

func startsWithFiller(s string) bool {
	lower := strings.ToLower(s)
	for _, f := range fillers {
		if strings.HasPrefix(lower, strings.ToLower(f)) {
			return true
		}
	}
	return false
}

func lowerFirstWord(s string) string {
	r := []rune(s)
	if len(r) > 0 && unicode.IsUpper(r[0]) {
		// Keep the pronoun "I" as-is
		if !(r[0] == 'I' && (len(r) == 1 || r[1] == ' ' || r[1] == '\'')) {
			r[0] = unicode.ToLower(r[0])
		}
	}
	return string(r)
}

func (h *Humanizer) addExpression(s string) string {
	words := strings.Fields(s)
	if len(words) < 8 {
		return s
	}

	// Candidate positions immediately after a word ending a sentence.
	positions := []int{}
	for i := 1; i < len(words)-1; i++ {
		if endsWithTerminalPunct(words[i-1]) {
			positions = append(positions, i)
		}
	}
	if len(positions) == 0 {
		return s
	}

	pos := positions[h.rng.Intn(len(positions))]
	expr := expressions[h.rng.Intn(len(expressions))]
	if !endsWithPunct(expr) {
		expr += ","
	}
	out := make([]string, 0, len(words)+1)
	out = append(out, words[:pos]...)
	out = append(out, expr)
	out = append(out, words[pos:]...)
	return strings.Join(out, " ")
}

func endsWithTerminalPunct(w string) bool {
	if w == "" {
		return false
	}
	switch w[len(w)-1] {
	case '.', '!', '?':
		return true
	}
	return false
}

func endsWithPunct(w string) bool {
	if w == "" {
		return false
	}
	switch w[len(w)-1] {
	case '.', ',', '!', '?':
		return true
	}
	return false
}

func (h *Humanizer) addFollowUp(s string, emotional *EmotionalContext) string {
	if strings.Contains(s, "?") || len(strings.Fields(s)) > 30 {
		return s
	}

	if emotional != nil && len(emotional.FollowUps) > 0 && h.rng.Float64() < pEmotionalFollowUp {
		return ensureSentenceEnd(s) + " " + emotional.FollowUps[h.rng.Intn(len(emotional.FollowUps))]
	}
	if h.rng.Float64() < pGenericFollowUp {
		return ensureSentenceEnd(s) + " " + genericFollowUps[h.rng.Intn(len(genericFollowUps))]
	}
	return s
}

// ensureSentenceEnd normalizes the tail to a terminal mark so a follow-up can
// be appended cleanly.
func ensureSentenceEnd(s string) string {
	base := strings.TrimRight(s, " \t")
	if base == "" {
		return base
	}
	switch base[len(base)-1] {
	case ',', ';', ':':
		base = base[:len(base)-1]
	}
	switch base[len(base)-1] {
	case '.', '!', '?':
		return base
	}
	return base + "."
}

func (h *Humanizer) addHesitation(s string) string {
	words := strings.Fields(s)
	if len(words) <= 5 {
		return s
	}
	pos := 1 + h.rng.Intn(len(words)-2)
	tok := hesitations[h.rng.Intn(len(hesitations))]
	out := make([]string, 0, len(words)+1)
	out = append(out, words[:pos]...)
	out = append(out, tok)
	out = append(out, words[pos:]...)
	return strings.Join(out, " ")
}
