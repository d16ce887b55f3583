package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"storyshort/internal/config"
)

const userAgent = "storyshort/0.1"

// Export summarizes a finished export for a notification.
type Export struct {
	CompositionID string
	OutputPath    string
	Seconds       float64
	Degraded      bool
	Elapsed       time.Duration
}

// Service is the notification surface used by the CLI and preview API.
type Service interface {
	NotifyExportCompleted(ctx context.Context, export Export) error
	NotifyExportFailed(ctx context.Context, compositionID string, err error) error
	TestNotification(ctx context.Context) error
}

// NewService builds an ntfy-backed notifier when a topic is configured and a
// no-op otherwise.
func NewService(cfg *config.Config) Service {
	if cfg == nil {
		return noopService{}
	}
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ntfyService{
		endpoint: topic,
		client:   &http.Client{Timeout: timeout},
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
}

func (n *ntfyService) NotifyExportCompleted(ctx context.Context, export Export) error {
	message := fmt.Sprintf("🎬 Export ready: %s (%.1fs", strings.TrimSpace(export.OutputPath), export.Seconds)
	if export.Elapsed > 0 {
		message += fmt.Sprintf(", rendered in %s", export.Elapsed.Round(time.Second))
	}
	message += ")"
	tags := []string{"storyshort", "export", "completed"}
	if export.Degraded {
		message += "\nAudio duration unknown; fallback timing used"
		tags = append(tags, "fallback")
	}
	return n.send(ctx, payload{
		title:   "storyshort - Export Complete",
		message: message,
		tags:    tags,
	})
}

func (n *ntfyService) NotifyExportFailed(ctx context.Context, compositionID string, err error) error {
	var builder strings.Builder
	builder.WriteString("❌ Export failed")
	if id := strings.TrimSpace(compositionID); id != "" {
		builder.WriteString(" for ")
		builder.WriteString(id)
	}
	builder.WriteString(": ")
	if err != nil {
		builder.WriteString(strings.TrimSpace(err.Error()))
	} else {
		builder.WriteString("unknown")
	}
	return n.send(ctx, payload{
		title:    "storyshort - Export Failed",
		message:  builder.String(),
		tags:     []string{"storyshort", "export", "error"},
		priority: "high",
	})
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	return n.send(ctx, payload{
		title:    "storyshort - Test",
		message:  "🧪 Notification system test",
		tags:     []string{"storyshort", "test"},
		priority: "low",
	})
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyExportCompleted(context.Context, Export) error     { return nil }
func (noopService) NotifyExportFailed(context.Context, string, error) error { return nil }
func (noopService) TestNotification(context.Context) error                  { return nil }
