package models

import (
	"encoding/json"
	"testing"
)

func TestChatResponse_Text(t *testing.T) {
	tests := []struct {
		name string
		resp ChatResponse
		want string
	}{
		{"answer present", ChatResponse{Answer: "42", HasAnswer: true}, "42"},
		{"empty answer is still an answer", ChatResponse{Answer: "", HasAnswer: true}, ""},
		{"missing answer", ChatResponse{}, NoAnswerPlaceholder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.resp.Text(); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestChatRequest_WireFormat(t *testing.T) {
	data, err := json.Marshal(ChatRequest{Question: "What is my top seller?"})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	want := `{"question":"What is my top seller?"}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}
}

func TestMessageConstructors(t *testing.T) {
	u := UserMessage("hi")
	if u.Role != RoleUser || u.Content != "hi" {
		t.Errorf("UserMessage() = %+v", u)
	}
	a := AssistantMessage("hello")
	if a.Role != RoleAssistant || a.Content != "hello" {
		t.Errorf("AssistantMessage() = %+v", a)
	}
}

func TestRole_Label(t *testing.T) {
	if RoleUser.Label() != "You" {
		t.Errorf("RoleUser.Label() = %s", RoleUser.Label())
	}
	if RoleAssistant.Label() != "Assistant" {
		t.Errorf("RoleAssistant.Label() = %s", RoleAssistant.Label())
	}
}

func TestDefaultHeaders(t *testing.T) {
	h := DefaultHeaders()
	if h["Content-Type"] != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", h["Content-Type"])
	}
}
