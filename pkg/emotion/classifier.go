package emotion

import (
	"context"
	"regexp"

	"github.com/rs/zerolog"
)

// keywordSet holds the compiled patterns for one category.
type keywordSet struct {
	keywords []*regexp.Regexp
	high     []*regexp.Regexp
	low      []*regexp.Regexp
}

const matchWeight = 0.2 // each keyword hit adds this much, capped at 1.0

var (
	highModifiers = compileAll(`\breally\b`, `\bvery\b`, `\bextremely\b`, `\bso\b`, `\bincredibly\b`, `\bdeeply\b`, `\bcompletely\b`, `\btotally\b`, `\bterribly\b`)
	lowModifiers  = compileAll(`\ba bit\b`, `\bslightly\b`, `\bsomewhat\b`, `\ba little\b`)

	patterns = map[Category]keywordSet{
		Happy: {
			keywords: compileAll(`\bhappy\b`, `\bjoy\b`, `\bexcited\b`, `\bgreat\b`, `\bamazing\b`,
				`\bwonderful\b`, `\bdelighted\b`, `\bpleased\b`, `\bglad\b`, `\bcheerful\b`,
				`\bthankful\b`, `\bgrateful\b`, `\bblessed\b`, `\bproud\b`, `\bsatisfied\b`),
			high: highModifiers, low: lowModifiers,
		},
		Sad: {
			keywords: compileAll(`\bsad\b`, `\bunhappy\b`, `\bupset\b`, `\bdepressed\b`, `\bheartbroken\b`,
				`\bdown\b`, `\bmiserable\b`, `\bdisappointed\b`, `\bregret\b`, `\bsorry\b`,
				`\blonely\b`, `\bhopeless\b`, `\bgrief\b`, `\bmelancholy\b`, `\bblue\b`),
			high: highModifiers, low: lowModifiers,
		},
		Angry: {
			keywords: compileAll(`\bangry\b`, `\bfurious\b`, `\bmad\b`, `\birritated\b`, `\bannoyed\b`,
				`\bfrustrated\b`, `\benraged\b`, `\bupset\b`, `\boffended\b`, `\bresentful\b`,
				`\bhostile\b`, `\bhateful\b`, `\binfuriated\b`, `\bpissed\b`, `\bagitated\b`),
			high: highModifiers, low: lowModifiers,
		},
		Anxious: {
			keywords: compileAll(`\banxious\b`, `\bnervous\b`, `\bworried\b`, `\bfearful\b`, `\bscared\b`,
				`\bafraid\b`, `\bpanicked\b`, `\buneasy\b`, `\bdistressed\b`, `\bconcerned\b`,
				`\bapprehensive\b`, `\bdread\b`, `\btense\b`, `\bterrified\b`, `\bfrightened\b`),
			high: highModifiers, low: lowModifiers,
		},
		Stressed: {
			keywords: compileAll(`\bstressed\b`, `\boverwhelmed\b`, `\bexhausted\b`, `\btired\b`, `\bburnt out\b`,
				`\bpressured\b`, `\boverloaded\b`, `\bbusy\b`, `\bchaotic\b`, `\bhectic\b`,
				`\bstrain\b`, `\btoo much\b`, `\bcan't handle\b`, `\bstruggling\b`, `\bdifficult\b`),
			high: highModifiers, low: lowModifiers,
		},
		Confused: {
			keywords: compileAll(`\bconfused\b`, `\bpuzzled\b`, `\blost\b`, `\buncertain\b`, `\bunsure\b`,
				`\bperplexed\b`, `\bmisunderstood\b`, `\bdon't understand\b`, `\bunclear\b`, `\bambiguous\b`,
				`\bdisorientated\b`, `\bmixed up\b`, `\bmuddled\b`, `\bdon't get it\b`),
			high: highModifiers, low: lowModifiers,
		},
		Motivated: {
			keywords: compileAll(`\bmotivated\b`, `\binspired\b`, `\bdetermined\b`, `\bdriven\b`, `\bfocused\b`,
				`\bready\b`, `\beager\b`, `\bexcited\b`, `\benthusiastic\b`, `\bpassionate\b`,
				`\bambitious\b`, `\bcommitted\b`, `\bdedicated\b`, `\bpumped\b`, `\benergized\b`),
			high: highModifiers, low: lowModifiers,
		},
		Neutral: {
			keywords: compileAll(`\bneutral\b`, `\bokay\b`, `\bfine\b`, `\balright\b`, `\baverage\b`,
				`\bnormal\b`, `\bregular\b`, `\bstandard\b`, `\bordinary\b`, `\bcommon\b`),
		},
	}
)

func compileAll(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, regexp.MustCompile(`(?i)`+e))
	}
	return out
}

// Enricher is an optional classification layer. Enrich may overwrite fields of
// res and reports whether it contributed anything; a false return leaves the
// previous layer's result untouched.
type Enricher interface {
	Name() string
	Enrich(ctx context.Context, text string, res *Result) bool
}

// Classifier runs the rule-based keyword layer, then any configured enrichers
// in order. The rule layer never fails; enricher failures are swallowed.
type Classifier struct {
	enrichers []Enricher
	log       zerolog.Logger
}

func NewClassifier(log zerolog.Logger, enrichers ...Enricher) *Classifier {
	return &Classifier{enrichers: enrichers, log: log.With().Str("component", "emotion").Logger()}
}

// Detect classifies text. Empty input yields the neutral prior.
func (c *Classifier) Detect(ctx context.Context, text string) Result {
	res := Result{
		Primary:          Neutral,
		PrimaryIntensity: Medium,
		Confidence:       0.5,
		AllEmotions:      map[Category]Score{},
		Method:           MethodRuleBased,
	}

	ruleDetect(text, &res)

	for _, e := range c.enrichers {
		if e == nil {
			continue
		}
		if e.Enrich(ctx, text, &res) {
			c.log.Debug().Str("enricher", e.Name()).Str("primary", string(res.Primary)).Msg("enricher contributed")
		}
	}
	return res
}

func ruleDetect(text string, res *Result) {
	for _, cat := range Categories {
		set, ok := patterns[cat]
		if !ok {
			continue
		}
		score := 0.0
		for _, re := range set.keywords {
			score += float64(len(re.FindAllStringIndex(text, -1))) * matchWeight
		}
		if score <= 0 {
			continue
		}
		if score > 1.0 {
			score = 1.0
		}

		intensity := Medium
		highCount := countMatches(set.high, text)
		lowCount := countMatches(set.low, text)
		if highCount > lowCount {
			intensity = High
		} else if lowCount > 0 {
			intensity = Low
		}

		res.AllEmotions[cat] = Score{Score: score, Intensity: intensity}
	}

	// Primary is the argmax by score; iteration over Categories keeps the
	// tie-break at declaration order.
	best := -1.0
	for _, cat := range Categories {
		s, ok := res.AllEmotions[cat]
		if ok && s.Score > best {
			best = s.Score
			res.Primary = cat
			res.PrimaryIntensity = s.Intensity
			res.Confidence = s.Score
		}
	}
}

func countMatches(patterns []*regexp.Regexp, text string) int {
	n := 0
	for _, re := range patterns {
		n += len(re.FindAllStringIndex(text, -1))
	}
	return n
}
