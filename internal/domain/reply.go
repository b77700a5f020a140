package domain

// Reply is the assistant's answer to a single processed message.
type Reply struct {
	// Text is the composed natural-language response.
	Text string `json:"text"`

	// Analysis is the classification the reply was built from.
	Analysis Analysis `json:"analysis"`
}
