package chat

import (
	"strings"

	"github.com/solaceapp/solace/pkg/persona"
)

// GenericFallback is the reply of last resort when generation fails and no
// personality-specific fallback applies.
const GenericFallback = "I'm having some technical difficulties right now, but I'm still here for you. Could you try again? 💙"

var (
	stressWords = []string{"stress", "stressed", "anxious", "worried", "overwhelmed", "panic"}
	sadWords    = []string{"sad", "depressed", "down", "upset", "crying"}
	goalWords   = []string{"goal", "study", "exam", "project", "work"}
)

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

// FallbackReply picks an offline reply matched to the active personality
// and a rough read of the user's mood, so a generation outage still feels
// in character.
func FallbackReply(profile persona.Profile, userInput string) string {
	lower := strings.ToLower(userInput)
	stressed := containsAny(lower, stressWords)
	sad := containsAny(lower, sadWords)
	goal := containsAny(lower, goalWords)

	switch profile.ID {
	case "motivator":
		if stressed {
			return "Hey champion! 💪 I'm in " + profile.Name + " mode but having tech issues. Even when systems fail, YOU don't! Take 3 deep breaths with me. You've overcome challenges before - this is just another stepping stone. What's one tiny action you can take right now?"
		}
		if sad {
			return "I see you, friend! 🌟 I'm in " + profile.Name + " mode but offline right now. Your feelings are valid, and you're stronger than you know. Sometimes the best victories come after the hardest battles. What would make you feel 1% better right now?"
		}
		return "Hey there, superstar! ⚡ I'm in " + profile.Name + " mode but having some technical difficulties. You've got this though! Every expert was once a beginner. What's one small step you can take right now toward your goal?"
	case "mentor":
		if stressed {
			return "I'm in " + profile.Name + " mode but experiencing connectivity issues. 🧘 In my experience, stress often signals that we care deeply about something important. What matters most to you in this situation? Let's find clarity together."
		}
		if goal {
			return "I'm in " + profile.Name + " mode but having technical issues. 📚 Remember, every master was once a disaster. The path of learning is never linear. What specific challenge are you facing? Sometimes talking through it helps on its own."
		}
		return "I'm currently in " + profile.Name + " mode but experiencing some connectivity issues. 🤔 In times like these, I find it helpful to pause and reflect. What's really on your mind today? Your thoughts matter, even when technology doesn't cooperate."
	case "coach":
		if goal {
			return "I'm in " + profile.Name + " mode but having technical issues. 🎯 Let's focus on what we can control. What's your main objective right now? What's the biggest obstacle? Sometimes the best strategies come from simple clarity."
		}
		if stressed {
			return "I'm in " + profile.Name + " mode but offline. 📊 Let's break this down systematically: What's the core issue? What resources do you have? What's the next logical step? You've got a brilliant mind - use it!"
		}
		return "I'm in " + profile.Name + " mode but having technical issues. 🏆 Let's focus on what we can control. What's your main objective right now, and what's blocking you? The best coaches adapt to any situation - including tech failures!"
	case "mitra":
		if sad {
			return "I'm having a hiccup on my side, but I'm right here with you. 💙 I hear you, and your feelings matter. Let's take a gentle breath together. If you're up for it, tell me one small thing that's weighing on you and we can face it together."
		}
		if stressed {
			return "I'm in " + profile.Name + " mode, but my tools are offline for a moment. 🫶 When stress rises, it's often your mind trying to protect something important. What feels most urgent right now? We can make a tiny 2-step plan to help you breathe and move forward."
		}
		if goal {
			return "I'm in " + profile.Name + " mode, but experiencing some tech issues. ✨ You're capable - let's sketch a simple, practical next step while things reload: What's one 10-minute action you can take right now toward your goal?"
		}
		return "A quick heads-up: I'm in " + profile.Name + " mode but having technical trouble. Still, I'm here to listen. What's on your mind today? If you'd like, I can help you pick one small, meaningful action to start with."
	default:
		if stressed || sad {
			return "I'm having some technical difficulties right now, but I'm still here for you in spirit. 💙 Your feelings are completely valid. Sometimes the most healing thing is just knowing someone cares - and I do. What's going on?"
		}
		return "I'm having some technical difficulties right now, but I'm still here for you. 💙 What's going on? I'd love to listen and help however I can. Sometimes the best support comes from simply being heard, not from perfect technology."
	}
}
