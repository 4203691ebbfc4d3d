package models

// ChatRequest is the body POSTed to the chat endpoint
type ChatRequest struct {
	Question string `json:"question"`
}

// ChatResponse is the decoded reply of the chat endpoint.
// HasAnswer is false when the body carried no usable answer field.
type ChatResponse struct {
	Answer    string
	HasAnswer bool
}

// Text returns the answer, or NoAnswerPlaceholder when there is none
func (r ChatResponse) Text() string {
	if !r.HasAnswer {
		return NoAnswerPlaceholder
	}
	return r.Answer
}

// PingResponse is the decoded reply of the ping endpoint
type PingResponse struct {
	Message string `json:"message"`
}
