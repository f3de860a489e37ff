// Package chat is the conversational layer over course recommendations.
//
// An Assistant recommends courses for a learner, formats them as context
// for a language model and returns the model's reply. Model failures are
// turned into messages the user can read; they never reach the caller as
// errors. ExtractProfile derives a learner profile from chat history.
package chat
