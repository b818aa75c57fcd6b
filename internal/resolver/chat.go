package resolver

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/coreyclarkphd/flowscript/internal/value"
)

// ChatResolver POSTs the current value as a JSON prompt payload to a
// configured endpoint and decodes the JSON response, matching the shape of
// a chat-completion client. The actual provider integration is out of
// scope (spec.md §1); only the command/input -> V contract is implemented.
type ChatResolver struct {
	Endpoint string
	Client   *http.Client
}

// NewChatResolver returns a ChatResolver posting to endpoint with http.DefaultClient.
func NewChatResolver(endpoint string) *ChatResolver {
	return &ChatResolver{Endpoint: endpoint, Client: http.DefaultClient}
}

func (c *ChatResolver) Resolve(ctx context.Context, command string, input value.V) (value.V, error) {
	payload, err := input.MarshalJSON()
	if err != nil {
		return value.Null(), fmt.Errorf("resolver: encode prompt for %q: %w", command, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return value.Null(), fmt.Errorf("resolver: build request for %q: %w", command, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Flowscript-Command", command)

	resp, err := c.Client.Do(req)
	if err != nil {
		return value.Null(), fmt.Errorf("resolver: request for %q failed: %w", command, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return value.Null(), fmt.Errorf("resolver: read response for %q: %w", command, err)
	}
	if resp.StatusCode >= 300 {
		return value.Null(), fmt.Errorf("resolver: %q returned status %d: %s", command, resp.StatusCode, string(body))
	}

	result, err := value.Parse(string(body))
	if err != nil {
		return value.Null(), fmt.Errorf("resolver: decode response for %q: %w", command, err)
	}
	return result, nil
}
