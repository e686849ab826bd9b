package chatbot

// SenderUser marks a history turn written by the user; every other sender is treated as the model.
const SenderUser = "user"

// Message is one prior conversation turn supplied by the client.
type Message struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

// Request is the chatbot call payload.
type Request struct {
	Message        string    `json:"message"`
	MessageHistory []Message `json:"messageHistory"`
	SessionID      string    `json:"sessionId"`
}
