package api

import (
	"context"
	"io"
	"time"

	http "github.com/bogdanfinn/fhttp"
	"github.com/google/uuid"

	apierrors "github.com/storefront/storechat/internal/errors"
	"github.com/storefront/storechat/internal/models"
)

// do sends one request and returns the body of a 2xx response.
// Transport failures, non-2xx statuses and body read failures are mapped
// to the typed errors of the errors package.
func (c *Client) do(ctx context.Context, method, endpoint string, body io.Reader) ([]byte, error) {
	if c.IsClosed() {
		return nil, apierrors.ErrClientClosed
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpointURL(endpoint), body)
	if err != nil {
		return nil, apierrors.NewNetworkErrorWithEndpoint("build request", endpoint, err)
	}

	for key, value := range models.DefaultHeaders() {
		req.Header.Set(key, value)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	log := c.logger.With().
		Str("request_id", requestID).
		Str("method", method).
		Str("endpoint", endpoint).
		Logger()
	log.Debug().Msg("request sent")
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		classified := apierrors.FromTransport(method+" "+endpoint, endpoint, err)
		log.Warn().Err(err).Dur("duration", time.Since(start)).Msg("request failed")
		return nil, classified
	}
	defer func() {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Warn().Err(err).Int("status", resp.StatusCode).Msg("reading response failed")
		return nil, apierrors.FromTransport("read "+endpoint, endpoint, err)
	}

	log.Info().
		Int("status", resp.StatusCode).
		Int("bytes", len(data)).
		Dur("duration", time.Since(start)).
		Msg("request settled")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if len(data) > maxErrorBody {
			data = data[:maxErrorBody]
		}
		return nil, apierrors.NewStatusErrorWithBody(resp.StatusCode, endpoint, string(data))
	}

	return data, nil
}
