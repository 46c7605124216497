package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"flightwatch-service/internal/domain/repository"
	"flightwatch-service/pkg/logger"
)

// Notifier posts messages to Slack channels via chat.postMessage
type Notifier struct {
	baseURL    string
	botToken   string
	httpClient *http.Client
	logger     logger.Logger
}

// NewNotifier creates a new Slack notifier
func NewNotifier(baseURL, botToken string, logger logger.Logger) repository.Notifier {
	return &Notifier{
		baseURL:    baseURL,
		botToken:   botToken,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

type postMessageRequest struct {
	Channel string `json:"channel"`
	Text    string `json:"text"`
}

type postMessageResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
	TS    string `json:"ts,omitempty"`
}

// PostMessage posts a message to the given channel
func (n *Notifier) PostMessage(ctx context.Context, channelID, text string) error {
	body, err := json.Marshal(postMessageRequest{Channel: channelID, Text: text})
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	url := fmt.Sprintf("%s/chat.postMessage", n.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+n.botToken)
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	defer resp.Body.Close()

	var response postMessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if !response.OK {
		return fmt.Errorf("slack returned error: %s", response.Error)
	}

	n.logger.Debug("Message posted", "channel", channelID, "ts", response.TS)
	return nil
}
