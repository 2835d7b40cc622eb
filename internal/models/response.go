package models

// ChatRequest is the JSON body posted to the chat endpoint
type ChatRequest struct {
	Message string `json:"message"`
}

// Response body fields read with gjson.
const (
	FieldResponse = "response"
	FieldStatus   = "status"
	FieldDetail   = "detail"
)

// Reply is the decoded result of one chat exchange
type Reply struct {
	RequestID string
	Text      string
	// Status is the HTTP status of the reply; non-2xx replies still carry
	// text when their JSON body has a response field.
	Status int
}
