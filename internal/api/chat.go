package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	http "github.com/bogdanfinn/fhttp"
	"github.com/tidwall/gjson"

	apierrors "github.com/storefront/storechat/internal/errors"
	"github.com/storefront/storechat/internal/models"
)

// GJSON paths into backend replies
const (
	PathAnswer  = "answer"
	PathMessage = "message"
)

// Chat posts one question to the chat endpoint and decodes the reply
func (c *Client) Chat(ctx context.Context, question string) (models.ChatResponse, error) {
	if question == "" {
		return models.ChatResponse{}, apierrors.ErrEmptyQuestion
	}

	payload, err := json.Marshal(models.ChatRequest{Question: question})
	if err != nil {
		return models.ChatResponse{}, fmt.Errorf("failed to build payload: %w", err)
	}

	body, err := c.do(ctx, http.MethodPost, models.EndpointChat, bytes.NewReader(payload))
	if err != nil {
		return models.ChatResponse{}, err
	}

	return ParseChatResponse(body)
}

// ParseChatResponse decodes a 2xx chat reply. The body must be valid JSON;
// a missing or null answer field yields a response without an answer.
func ParseChatResponse(body []byte) (models.ChatResponse, error) {
	if !gjson.ValidBytes(body) {
		return models.ChatResponse{}, apierrors.NewParseError("response body is not valid JSON", models.EndpointChat)
	}

	answer := gjson.GetBytes(body, PathAnswer)
	if !answer.Exists() || answer.Type == gjson.Null {
		return models.ChatResponse{}, nil
	}

	return models.ChatResponse{Answer: answer.String(), HasAnswer: true}, nil
}

// Ping checks that the backend is reachable and returns its greeting
func (c *Client) Ping(ctx context.Context) (models.PingResponse, error) {
	body, err := c.do(ctx, http.MethodGet, models.EndpointPing, nil)
	if err != nil {
		return models.PingResponse{}, err
	}

	if !gjson.ValidBytes(body) {
		return models.PingResponse{}, apierrors.NewParseError("response body is not valid JSON", models.EndpointPing)
	}

	return models.PingResponse{Message: gjson.GetBytes(body, PathMessage).String()}, nil
}
