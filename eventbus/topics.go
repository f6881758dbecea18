package eventbus

// Topic names are declared in one place so they can be swapped for
// configuration later if needed.
const (
	TopicTurnEvents = "chatbot.turn.events"
)
