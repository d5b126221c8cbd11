package emotion

import "math/rand"

// responseTemplates maps category and intensity to candidate replies. Three
// candidates per cell; selection is a uniform draw.
var responseTemplates = map[Category]map[Intensity][]string{
	Happy: {
		High: {
			"I'm so glad to hear you're feeling great! That positive energy is contagious. 😊",
			"That's wonderful! I love seeing you this happy. What's bringing you so much joy?",
			"Amazing! Your happiness is radiating through your words. Let's keep this momentum going!",
		},
		Medium: {
			"I'm happy to hear you're in good spirits! What's been going well for you?",
			"That's nice to hear! A positive mindset can make such a difference.",
			"I'm glad things are looking up for you. What's been making you feel good?",
		},
		Low: {
			"I sense a bit of positivity there. Even small moments of happiness are worth celebrating.",
			"That's good to hear. Sometimes even a little happiness can brighten our perspective.",
			"I'm glad there's something making you feel a bit better. Would you like to talk more about it?",
		},
	},
	Sad: {
		High: {
			"I'm really sorry you're feeling this way. It sounds incredibly difficult, and I'm here to listen. 💙",
			"That sounds really hard. I wish I could give you a hug right now. Would it help to talk more about what's going on?",
			"I can hear how much pain you're in, and I want you to know you don't have to face it alone. I'm here with you.",
		},
		Medium: {
			"I'm sorry you're feeling down. Would sharing more about what's happening help?",
			"That sounds tough. It's okay to feel sad sometimes, and I'm here to listen.",
			"I hear the sadness in your words. Would you like to talk about what's on your mind?",
		},
		Low: {
			"I notice a hint of sadness there. Even small feelings are valid and worth acknowledging.",
			"Sometimes we feel a little blue, and that's okay. Is there something specific on your mind?",
			"I'm picking up on some sadness. Would you like to explore what might be causing it?",
		},
	},
	Angry: {
		High: {
			"I can tell you're really upset right now, and that's completely valid. Would it help to talk through what happened? 🧡",
			"Your frustration comes through clearly, and it sounds justified. I'm here to listen without judgment.",
			"That situation would make anyone angry. Would it help to explore what options you have now?",
		},
		Medium: {
			"I can sense your frustration. Would you like to talk more about what's bothering you?",
			"That does sound annoying. It's natural to feel irritated by these things.",
			"I understand why that would make you upset. How have you been handling it so far?",
		},
		Low: {
			"I notice a bit of irritation there. Even small annoyances can build up over time.",
			"That does sound a little frustrating. Would you like to talk more about it?",
			"I can understand why that might bother you. Is there anything that might help the situation?",
		},
	},
	Anxious: {
		High: {
			"I can hear how anxious you're feeling right now. Let's take a moment to breathe together. What's the biggest worry on your mind? 💚",
			"That sounds really overwhelming. Your feelings of anxiety are completely valid, and I'm here to help you navigate them.",
			"When anxiety is this intense, it can feel all-consuming. Let's break down what's happening and take it one step at a time.",
		},
		Medium: {
			"I can sense your worry. Would it help to talk through what's making you anxious?",
			"Feeling anxious is natural when facing uncertainty. What's on your mind?",
			"I understand that anxious feeling. Sometimes naming our specific worries can help reduce them.",
		},
		Low: {
			"I notice a hint of worry there. Even small concerns deserve attention.",
			"It sounds like there's something on your mind. Would you like to explore what's causing that slight anxiety?",
			"A little bit of nervousness is completely normal. Is there something specific you're concerned about?",
		},
	},
	Stressed: {
		High: {
			"It sounds like you're under immense pressure right now. Let's take a moment to identify what needs your immediate attention and what can wait. 💜",
			"I can hear how overwhelmed you are. When everything feels too much, sometimes we need to step back and just focus on the next small step.",
			"That level of stress sounds really difficult to manage. Let's think about what small things might help lighten your load right now.",
		},
		Medium: {
			"I can tell you're feeling the pressure. What's contributing most to your stress right now?",
			"Balancing everything can be really challenging. Which part feels most overwhelming?",
			"That does sound stressful. Sometimes talking through our priorities can help manage the load.",
		},
		Low: {
			"I sense you're feeling a bit pressured. Even low levels of stress can affect us over time.",
			"Life can get busy sometimes. Is there anything specific adding to your plate right now?",
			"I notice a bit of tension there. Would it help to talk about what's on your mind?",
		},
	},
	Confused: {
		High: {
			"It sounds like you're really struggling to make sense of this situation. That's completely understandable. Let's try to untangle it together, one piece at a time. 💭",
			"When everything feels this confusing, it can be overwhelming. Let's start with what you do know and work from there.",
			"I can hear how disoriented you feel right now. Sometimes writing things down or talking them through can help bring clarity.",
		},
		Medium: {
			"I understand your confusion. Would it help to break this down into smaller parts?",
			"It can be frustrating when things don't make sense. Which part feels most unclear?",
			"That does sound confusing. Sometimes talking it through can help bring clarity.",
		},
		Low: {
			"I sense some uncertainty there. Would it help to explore what's causing the confusion?",
			"Sometimes things aren't immediately clear, and that's okay. What part feels a bit fuzzy?",
			"I notice you're not entirely sure about this. Would you like to talk it through?",
		},
	},
	Motivated: {
		High: {
			"Your enthusiasm is incredible! I love seeing this energy and determination. What's your first step toward making this happen? 🌟",
			"Wow, you're really fired up about this! That kind of passion is exactly what drives meaningful change and achievement.",
			"I can feel your motivation radiating through your words! Let's channel this amazing energy into an actionable plan.",
		},
		Medium: {
			"I can sense your motivation. What's inspiring you right now?",
			"That sounds like a great goal. What steps are you thinking of taking?",
			"I like your positive energy. Having direction and purpose is so valuable.",
		},
		Low: {
			"I notice a spark of interest there. Even small motivation can lead to meaningful action.",
			"That sounds like something you're curious about. Would you like to explore it further?",
			"I sense some potential enthusiasm. Sometimes starting small can build momentum.",
		},
	},
	Neutral: {
		High: {
			"I appreciate your balanced perspective on this. What would you like to focus on today?",
			"You seem to be taking things as they come. Is there anything specific you'd like to discuss?",
			"Sometimes a neutral stance gives us space to consider different options. What's on your mind?",
		},
		Medium: {
			"What's been on your mind lately?",
			"I'm here to chat about whatever you'd like. What's important to you right now?",
			"How can I support you today?",
		},
		Low: {
			"What would you like to talk about today?",
			"I'm here and ready to listen. What's on your mind?",
			"Is there something specific you'd like to explore in our conversation?",
		},
	},
}

// TemplateSelector picks a reply template for a classified emotion. The RNG
// is injected so tests can pin the draw.
type TemplateSelector struct {
	rng *rand.Rand
}

func NewTemplateSelector(rng *rand.Rand) *TemplateSelector {
	return &TemplateSelector{rng: rng}
}

// Select returns a template for the given category and intensity, falling back
// to neutral/medium when the requested cell is absent.
func (s *TemplateSelector) Select(cat Category, intensity Intensity) string {
	byIntensity, ok := responseTemplates[cat]
	if !ok {
		byIntensity = responseTemplates[Neutral]
	}
	candidates, ok := byIntensity[intensity]
	if !ok || len(candidates) == 0 {
		candidates = responseTemplates[Neutral][Medium]
	}
	return candidates[s.rng.Intn(len(candidates))]
}
