package chat

import "fmt"

// SystemPrompt instructs the model how to act as a course advisor.
const SystemPrompt = `
You are a helpful course recommendation assistant. Your role is to help users find the most suitable learning paths and courses based on their interests, background, and skill level.

Guidelines:
1. Use the provided course database to make recommendations
2. Be personalized and consider the user's specific needs
3. Explain why certain courses are recommended
4. Suggest learning paths when appropriate
5. Be encouraging and supportive
6. If no perfect match exists, suggest the closest alternatives
7. Always reference specific courses from the database
8. Provide practical advice on how to get started

Always base your recommendations on the course database provided in the context.
`

const userPromptTemplate = `
User Context:
- Interests: %s
- Background: %s
- Skill Level: %s
- Message: %s

Course Database Context:
%s

Please provide personalized course recommendations based on the user's needs and the available courses in the database.
`

func buildUserPrompt(message string, profile Profile, courseContext string) string {
	return fmt.Sprintf(userPromptTemplate,
		profile.Interests,
		profile.Background,
		profile.SkillLevel,
		message,
		courseContext,
	)
}
