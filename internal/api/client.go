// Package api wraps the dashboard REST API. Every method issues one HTTP
// call, honors the caller's context, and reports failures as typed errors:
// TransportError, APIError or DecodeError.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"chatdash/internal/models"
	"chatdash/internal/observability"
)

const maxResponseBytes = 10 << 20

// Client talks to the dashboard API and the local AI endpoint.
type Client struct {
	http    *http.Client
	baseURL string
	aiURL   string
}

// New builds a Client. baseURL is the API root (including the /api
// prefix), aiURL the loopback model endpoint.
func New(baseURL, aiURL string, timeout time.Duration) *Client {
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		aiURL:   strings.TrimRight(aiURL, "/"),
	}
}

// envelope captures the application-level outcome some endpoints report
// inside a 200 body.
type envelope struct {
	Success *bool  `json:"success"`
	Error   string `json:"error"`
}

func (c *Client) roundTrip(ctx context.Context, endpoint, method, rawURL string, body any) ([]byte, int, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, 0, &TransportError{Endpoint: endpoint, Err: err}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, 0, &TransportError{Endpoint: endpoint, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, &TransportError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, 0, &TransportError{Endpoint: endpoint, Err: err}
	}
	return data, resp.StatusCode, nil
}

// call runs one envelope-checked JSON exchange and decodes the body into
// out when non-nil.
func (c *Client) call(ctx context.Context, endpoint, method, path string, body, out any) error {
	start := time.Now()
	err := c.callOnce(ctx, endpoint, method, path, body, out)
	observability.ObserveAPIRequest(endpoint, start, err)
	return err
}

func (c *Client) callOnce(ctx context.Context, endpoint, method, path string, body, out any) error {
	data, status, err := c.roundTrip(ctx, endpoint, method, c.baseURL+path, body)
	if err != nil {
		return err
	}

	var env envelope
	_ = json.Unmarshal(data, &env)

	if status >= 300 {
		return &APIError{Endpoint: endpoint, Status: status, Message: env.Error}
	}
	if env.Success != nil && !*env.Success {
		return &APIError{Endpoint: endpoint, Status: status, Message: env.Error}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return &DecodeError{Endpoint: endpoint, Err: err}
		}
	}
	return nil
}

// Status reports server-side connectivity.
func (c *Client) Status(ctx context.Context) (bool, error) {
	var resp struct {
		Connected bool `json:"connected"`
	}
	if err := c.call(ctx, "status", http.MethodGet, "/status", nil, &resp); err != nil {
		return false, err
	}
	return resp.Connected, nil
}

// MyUserID returns the local account id, zero when the server has none.
func (c *Client) MyUserID(ctx context.Context) (int64, error) {
	var resp struct {
		UserID *int64 `json:"user_id"`
	}
	if err := c.call(ctx, "my_user_id", http.MethodGet, "/my_user_id", nil, &resp); err != nil {
		return 0, err
	}
	if resp.UserID == nil {
		return 0, nil
	}
	return *resp.UserID, nil
}

// Settings loads the settings blob.
func (c *Client) Settings(ctx context.Context) (models.Settings, error) {
	var s models.Settings
	if err := c.call(ctx, "settings", http.MethodGet, "/settings", nil, &s); err != nil {
		return models.Settings{}, err
	}
	return s, nil
}

// SaveSettings persists the whole settings blob.
func (c *Client) SaveSettings(ctx context.Context, s models.Settings) error {
	return c.call(ctx, "settings", http.MethodPost, "/settings", s, nil)
}

// Channels lists channels, optionally only active ones.
func (c *Client) Channels(ctx context.Context, activeOnly bool) ([]models.Channel, error) {
	flag := "0"
	if activeOnly {
		flag = "1"
	}
	var resp struct {
		Channels *[]models.Channel `json:"channels"`
	}
	if err := c.call(ctx, "channels", http.MethodGet, "/channels?active_only="+flag, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Channels == nil {
		return nil, &DecodeError{Endpoint: "channels", Field: "channels"}
	}
	return *resp.Channels, nil
}

// ToggleChannel activates or deactivates a channel.
func (c *Client) ToggleChannel(ctx context.Context, id int64, active bool) error {
	path := fmt.Sprintf("/channels/%d/toggle", id)
	return c.call(ctx, "channel_toggle", http.MethodPost, path, map[string]bool{"active": active}, nil)
}

// PinChannel pins or unpins a channel in the chat list.
func (c *Client) PinChannel(ctx context.Context, id int64, pinned bool) error {
	path := fmt.Sprintf("/channels/%d/pin", id)
	return c.call(ctx, "channel_pin", http.MethodPost, path, map[string]bool{"pinned": pinned}, nil)
}

// PurgeChannelMessages deletes every stored message of a channel.
func (c *Client) PurgeChannelMessages(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/channels/%d/messages", id)
	return c.call(ctx, "channel_purge", http.MethodDelete, path, nil, nil)
}

// ChannelCounts returns the total stored message count per channel.
func (c *Client) ChannelCounts(ctx context.Context) (map[int64]int64, error) {
	var raw map[string]int64
	if err := c.call(ctx, "channel_counts", http.MethodGet, "/channel_counts", nil, &raw); err != nil {
		return nil, err
	}
	counts := make(map[int64]int64, len(raw))
	for k, v := range raw {
		id, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			return nil, &DecodeError{Endpoint: "channel_counts", Err: fmt.Errorf("channel key %q: %w", k, err)}
		}
		counts[id] = v
	}
	return counts, nil
}

// LastMessages returns the latest message preview per channel.
func (c *Client) LastMessages(ctx context.Context) (map[int64]models.MessagePreview, error) {
	var raw map[string]models.MessagePreview
	if err := c.call(ctx, "last_messages", http.MethodGet, "/last_messages", nil, &raw); err != nil {
		return nil, err
	}
	previews := make(map[int64]models.MessagePreview, len(raw))
	for k, v := range raw {
		id, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			return nil, &DecodeError{Endpoint: "last_messages", Err: fmt.Errorf("channel key %q: %w", k, err)}
		}
		previews[id] = v
	}
	return previews, nil
}

// Messages fetches the newest-first page for a channel, optionally
// filtered by a content query.
func (c *Client) Messages(ctx context.Context, channelID int64, query string, limit int) ([]models.Message, error) {
	values := url.Values{}
	values.Set("channel_id", strconv.FormatInt(channelID, 10))
	values.Set("q", query)
	values.Set("limit", strconv.Itoa(limit))

	var resp struct {
		Messages *[]models.Message `json:"messages"`
	}
	if err := c.call(ctx, "messages", http.MethodGet, "/messages?"+values.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	if resp.Messages == nil {
		return nil, &DecodeError{Endpoint: "messages", Field: "messages"}
	}
	return *resp.Messages, nil
}

// DeleteMessage removes one message.
func (c *Client) DeleteMessage(ctx context.Context, id int64) error {
	return c.call(ctx, "message_delete", http.MethodDelete, fmt.Sprintf("/messages/%d", id), nil, nil)
}

// SendMessage queues an outgoing message for a channel.
func (c *Client) SendMessage(ctx context.Context, channelID int64, content string) error {
	body := map[string]any{"channel_id": channelID, "content": content}
	return c.call(ctx, "send_message", http.MethodPost, "/send_message", body, nil)
}

// Requirements lists requirements with their source tags parsed.
func (c *Client) Requirements(ctx context.Context) ([]models.Requirement, error) {
	var resp struct {
		Requirements *[]models.Requirement `json:"requirements"`
	}
	if err := c.call(ctx, "requirements", http.MethodGet, "/requirements", nil, &resp); err != nil {
		return nil, err
	}
	if resp.Requirements == nil {
		return nil, &DecodeError{Endpoint: "requirements", Field: "requirements"}
	}
	reqs := *resp.Requirements
	for i := range reqs {
		reqs[i].Source = models.ParseSource(reqs[i].RawSource)
	}
	return reqs, nil
}

// CreateRequirement adds a manual requirement.
func (c *Client) CreateRequirement(ctx context.Context, content string) error {
	return c.call(ctx, "requirement_create", http.MethodPost, "/requirements", map[string]string{"content": content}, nil)
}

// RequirementUpdate is a partial requirement mutation; nil fields are left
// untouched by the server.
type RequirementUpdate struct {
	Status *string `json:"status,omitempty"`
	Pinned *bool   `json:"pinned,omitempty"`
}

// UpdateRequirement applies a partial update.
func (c *Client) UpdateRequirement(ctx context.Context, id int64, upd RequirementUpdate) error {
	return c.call(ctx, "requirement_update", http.MethodPut, fmt.Sprintf("/requirements/%d", id), upd, nil)
}

// DeleteRequirement removes a requirement.
func (c *Client) DeleteRequirement(ctx context.Context, id int64) error {
	return c.call(ctx, "requirement_delete", http.MethodDelete, fmt.Sprintf("/requirements/%d", id), nil, nil)
}

// AIAssist asks the server for a suggested reply. A degraded AI backend
// still produces a human-readable reply string, so the reply is returned
// whenever present even if the server flags the attempt as failed.
func (c *Client) AIAssist(ctx context.Context, messages []string, prompt, model string) (string, error) {
	start := time.Now()
	body := map[string]any{"messages": messages, "prompt": prompt, "model": model}

	data, status, err := c.roundTrip(ctx, "ai_assist", http.MethodPost, c.baseURL+"/ai_assist", body)
	observability.ObserveAPIRequest("ai_assist", start, err)
	if err != nil {
		return "", err
	}
	if status >= 300 {
		return "", &APIError{Endpoint: "ai_assist", Status: status}
	}

	var resp struct {
		Reply   string `json:"reply"`
		Success *bool  `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", &DecodeError{Endpoint: "ai_assist", Err: err}
	}
	if resp.Reply == "" {
		return "", &APIError{Endpoint: "ai_assist", Status: status, Message: resp.Error}
	}
	return resp.Reply, nil
}

// ImageURL builds the media URL for a message attachment.
func (c *Client) ImageURL(messageID int64) string {
	return fmt.Sprintf("%s/image/%d", c.baseURL, messageID)
}

// LocalModels lists the models offered by the loopback AI endpoint.
// Callers are expected to degrade to an empty list on error.
func (c *Client) LocalModels(ctx context.Context) ([]string, error) {
	data, status, err := c.roundTrip(ctx, "local_models", http.MethodGet, c.aiURL+"/api/tags", nil)
	if err != nil {
		return nil, err
	}
	if status >= 300 {
		return nil, &APIError{Endpoint: "local_models", Status: status}
	}

	var resp struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, &DecodeError{Endpoint: "local_models", Err: err}
	}
	names := make([]string, 0, len(resp.Models))
	for _, m := range resp.Models {
		names = append(names, m.Name)
	}
	return names, nil
}
