package emotion

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

func ruleOnly() *Classifier {
	return NewClassifier(zerolog.Nop())
}

func TestDetect_HighIntensityHappy(t *testing.T) {
	res := ruleOnly().Detect(context.Background(), "I am extremely happy today")

	if res.Primary != Happy {
		t.Fatalf("primary = %s, want happy", res.Primary)
	}
	if res.PrimaryIntensity != High {
		t.Fatalf("intensity = %s, want high", res.PrimaryIntensity)
	}
	if res.Confidence <= 0 {
		t.Fatalf("confidence = %v, want > 0", res.Confidence)
	}
	if res.Method != MethodRuleBased {
		t.Fatalf("method = %s, want %s", res.Method, MethodRuleBased)
	}
}

func TestDetect_EmptyTextIsNeutralPrior(t *testing.T) {
	res := ruleOnly().Detect(context.Background(), "")

	if res.Primary != Neutral || res.PrimaryIntensity != Medium {
		t.Fatalf("got %s/%s, want neutral/medium", res.Primary, res.PrimaryIntensity)
	}
	if res.Confidence != 0.5 {
		t.Fatalf("confidence = %v, want 0.5", res.Confidence)
	}
	if len(res.AllEmotions) != 0 {
		t.Fatalf("expected no scored emotions, got %v", res.AllEmotions)
	}
}

func TestDetect_LowIntensityQualifier(t *testing.T) {
	res := ruleOnly().Detect(context.Background(), "I'm a bit sad")

	if res.Primary != Sad {
		t.Fatalf("primary = %s, want sad", res.Primary)
	}
	if res.PrimaryIntensity != Low {
		t.Fatalf("intensity = %s, want low", res.PrimaryIntensity)
	}
}

func TestDetect_HighestCumulativeScoreWins(t *testing.T) {
	// Two sad keywords vs one happy keyword.
	res := ruleOnly().Detect(context.Background(), "I'm glad you asked, but I feel sad and lonely")

	if res.Primary != Sad {
		t.Fatalf("primary = %s, want sad (cumulative score)", res.Primary)
	}
	if _, ok := res.AllEmotions[Happy]; !ok {
		t.Fatalf("happy should still be scored in all_emotions: %v", res.AllEmotions)
	}
}

func TestDetect_TieBreakByDeclarationOrder(t *testing.T) {
	// One keyword each for happy and sad: equal scores, happy declared first.
	res := ruleOnly().Detect(context.Background(), "happy and sad at once")

	if res.Primary != Happy {
		t.Fatalf("primary = %s, want happy (declaration-order tie break)", res.Primary)
	}
}

func TestDetect_CaseInsensitiveWordBoundary(t *testing.T) {
	res := ruleOnly().Detect(context.Background(), "STRESSED about everything")
	if res.Primary != Stressed {
		t.Fatalf("primary = %s, want stressed", res.Primary)
	}

	// "unhappiness" must not match \bhappy\b or \bunhappy\b.
	res = ruleOnly().Detect(context.Background(), "the unhappiest word stems should not fire")
	if res.Primary != Neutral {
		t.Fatalf("primary = %s, want neutral (no word-boundary match)", res.Primary)
	}
}

func TestDetect_ScoreCappedAtOne(t *testing.T) {
	res := ruleOnly().Detect(context.Background(),
		"happy joy excited great amazing wonderful delighted pleased glad cheerful")

	s := res.AllEmotions[Happy]
	if s.Score != 1.0 {
		t.Fatalf("score = %v, want capped 1.0", s.Score)
	}
	if res.Confidence != 1.0 {
		t.Fatalf("confidence = %v, want 1.0", res.Confidence)
	}
}

func TestLexiconSentiment_BoostsSubjectiveConfidence(t *testing.T) {
	c := NewClassifier(zerolog.Nop(), NewLexiconSentiment())
	res := c.Detect(context.Background(), "I really feel happy, honestly I think my life is wonderful")

	if res.Method != MethodSentiment {
		t.Fatalf("method = %s, want %s", res.Method, MethodSentiment)
	}
	if res.Sentiment.Polarity <= 0 {
		t.Fatalf("polarity = %v, want positive", res.Sentiment.Polarity)
	}
	if res.Sentiment.Subjectivity <= 0.5 {
		t.Fatalf("subjectivity = %v, want > 0.5 for first-person feeling talk", res.Sentiment.Subjectivity)
	}
	base := ruleOnly().Detect(context.Background(), "I really feel happy, honestly I think my life is wonderful")
	wantBoost := base.Confidence + 0.2
	if wantBoost > 1.0 {
		wantBoost = 1.0
	}
	if res.Confidence != wantBoost {
		t.Fatalf("confidence = %v, want boosted %v", res.Confidence, wantBoost)
	}
}

type fakeCompleter struct {
	out string
	err error
}

func (f *fakeCompleter) Complete(_ context.Context, _ string) (string, error) {
	return f.out, f.err
}

func TestLLMClassifier_OverwritesOnMappedLabels(t *testing.T) {
	c := NewClassifier(zerolog.Nop(), NewLLMClassifier(&fakeCompleter{out: "fear 0.82\njoy 0.10"}, zerolog.Nop()))
	res := c.Detect(context.Background(), "tell me about tomorrow")

	if res.Primary != Anxious {
		t.Fatalf("primary = %s, want anxious (fear maps to anxious)", res.Primary)
	}
	if res.PrimaryIntensity != High {
		t.Fatalf("intensity = %s, want high for score > 0.7", res.PrimaryIntensity)
	}
	if res.Method != MethodClassifier {
		t.Fatalf("method = %s, want %s", res.Method, MethodClassifier)
	}
	if res.Confidence != 0.82 {
		t.Fatalf("confidence = %v, want 0.82", res.Confidence)
	}
}

func TestLLMClassifier_KeepsRuleResultOnFailure(t *testing.T) {
	c := NewClassifier(zerolog.Nop(), NewLLMClassifier(&fakeCompleter{err: errors.New("boom")}, zerolog.Nop()))
	res := c.Detect(context.Background(), "I'm a bit sad")

	if res.Primary != Sad || res.PrimaryIntensity != Low {
		t.Fatalf("got %s/%s, want rule-layer sad/low preserved", res.Primary, res.PrimaryIntensity)
	}
	if res.Method != MethodRuleBased {
		t.Fatalf("method = %s, want %s", res.Method, MethodRuleBased)
	}
}

func TestLLMClassifier_UnmappedLabelsDropped(t *testing.T) {
	c := NewClassifier(zerolog.Nop(), NewLLMClassifier(&fakeCompleter{out: "boredom 0.9\nennui 0.8"}, zerolog.Nop()))
	res := c.Detect(context.Background(), "happy thoughts")

	if res.Primary != Happy {
		t.Fatalf("primary = %s, want happy (no usable mapped label)", res.Primary)
	}
	if res.Method != MethodRuleBased {
		t.Fatalf("method = %s, want rule_based retained", res.Method)
	}
}

func TestParseLabels_IntensityThresholds(t *testing.T) {
	mapped := parseLabels("joy 0.71\nsadness 0.31\nanger 0.30")

	if mapped[Happy].Intensity != High {
		t.Fatalf("joy 0.71 intensity = %s, want high", mapped[Happy].Intensity)
	}
	if mapped[Sad].Intensity != Medium {
		t.Fatalf("sadness 0.31 intensity = %s, want medium", mapped[Sad].Intensity)
	}
	if mapped[Angry].Intensity != Low {
		t.Fatalf("anger 0.30 intensity = %s, want low", mapped[Angry].Intensity)
	}
}
