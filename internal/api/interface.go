package api

import (
	"context"

	"github.com/storefront/storechat/internal/models"
)

// BackendClient is the surface of the storefront backend used by the
// chat widget and the commands.
type BackendClient interface {
	Chat(ctx context.Context, question string) (models.ChatResponse, error)
	Ping(ctx context.Context) (models.PingResponse, error)
	BaseURL() string
	Close()
	IsClosed() bool
}

// Ensure Client implements BackendClient
var _ BackendClient = (*Client)(nil)
