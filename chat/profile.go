package chat

import "strings"

// Role identifies who sent a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of a conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Profile is what is known about a learner.
type Profile struct {
	Interests  string `json:"interests"`
	Background string `json:"background"`
	SkillLevel string `json:"skill_level"`
}

var (
	interestKeywords   = []string{"interested in", "want to learn", "goal", "passion"}
	backgroundKeywords = []string{"experience", "background", "worked as", "studied"}
)

func containsAny(text string, keywords ...string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

// ExtractProfile scans the user turns of history for keywords. Turns that
// mention interests or background are appended to the matching field. The
// skill level comes from the last user turn that names one.
func ExtractProfile(history []Message) Profile {
	var interests, background []string
	var level string

	for _, msg := range history {
		if msg.Role != RoleUser {
			continue
		}
		text := strings.ToLower(msg.Content)

		if containsAny(text, interestKeywords...) {
			interests = append(interests, msg.Content)
		}
		if containsAny(text, backgroundKeywords...) {
			background = append(background, msg.Content)
		}

		switch {
		case containsAny(text, "beginner", "new to"):
			level = "Beginner"
		case strings.Contains(text, "intermediate"):
			level = "Intermediate"
		case containsAny(text, "advanced", "expert"):
			level = "Advanced"
		}
	}

	return Profile{
		Interests:  strings.TrimSpace(strings.Join(interests, " ")),
		Background: strings.TrimSpace(strings.Join(background, " ")),
		SkillLevel: level,
	}
}
