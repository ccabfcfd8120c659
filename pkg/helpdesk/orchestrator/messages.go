package orchestrator

import "ai-helpdesk-be/internal/dto"

// Fixed user-facing texts. Every failure path has one; the bot never leaves
// an inbound message unanswered.
const (
	GreetingText = "Hello! I'm your AI Helpdesk Bot. How can I assist you?"

	ApologyText = "Sorry, something went wrong while processing your request. Please try again."

	ResolutionPromptText = "Did that resolve your issue?"
	IdlePromptText       = "Are you still there? Did that resolve your issue?"

	AskEmailText     = "Please share your email address so I can send you a summary of this session."
	InvalidEmailText = "That doesn't look like a valid email address. Please try again (e.g. name@company.com)."

	EmptyQuestionText = "What would you like to know?"
)

func caseClosedText(email string) string {
	return "Thanks! Your case has been recorded and a summary is on its way to " + email + ". Goodbye!"
}

func scopeConfirmedText(scope string) string {
	return "Got it, you're asking about " + scope + ". " + EmptyQuestionText
}

// Callback payloads for the resolved/unresolved choice.
const (
	CallbackResolved   = "resolved"
	CallbackUnresolved = "unresolved"
)

func resolutionButtons() []dto.OutgoingButton {
	return []dto.OutgoingButton{
		{Text: "Resolved", Data: CallbackResolved},
		{Text: "Unresolved", Data: CallbackUnresolved},
	}
}
