package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os/exec"
	"strings"
	"time"
)

// Payload is the inbound notification request.
type Payload struct {
	// Title is the notification headline. Required.
	Title string `json:"title"`

	// Message is the notification body. Required.
	Message string `json:"message"`

	// Urgency is one of "low", "normal", "critical". Empty defaults to
	// "normal".
	Urgency string `json:"urgency,omitempty"`
}

// Validate checks the payload for required fields and a known urgency.
func (p Payload) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("title must not be empty")
	}
	if strings.TrimSpace(p.Message) == "" {
		return fmt.Errorf("message must not be empty")
	}
	switch p.Urgency {
	case "", "low", "normal", "critical":
		return nil
	}
	return fmt.Errorf("urgency must be low, normal, or critical; got %q", p.Urgency)
}

// Sender delivers one notification to the desktop.
type Sender interface {
	Send(ctx context.Context, p Payload) error
}

// CommandSender delivers notifications by running notify-send.
type CommandSender struct {
	// Timeout bounds one notify-send invocation.
	Timeout time.Duration
}

// Send implements Sender.
func (s *CommandSender) Send(ctx context.Context, p Payload) error {
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	urgency := p.Urgency
	if urgency == "" {
		urgency = "normal"
	}

	cmd := exec.CommandContext(ctx, "notify-send", "--urgency", urgency, p.Title, p.Message)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("notify-send failed: %w (output: %s)", err, strings.TrimSpace(string(out)))
	}
	return nil
}

// Relay is the HTTP handler accepting notification payloads.
type Relay struct {
	sender Sender
	logger *slog.Logger
}

// NewRelay creates a relay over the given sender. A nil sender gets a
// CommandSender.
func NewRelay(sender Sender) *Relay {
	if sender == nil {
		sender = &CommandSender{}
	}
	return &Relay{
		sender: sender,
		logger: slog.Default().With("component", "notify"),
	}
}

// ServeHTTP implements http.Handler. Valid payloads are acknowledged
// with 202 Accepted; delivery happens asynchronously so a slow desktop
// session cannot back-pressure the webhook source.
func (r *Relay) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var payload Payload
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		r.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON payload: %v", err))
		return
	}
	if err := payload.Validate(); err != nil {
		r.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	go func() {
		if err := r.sender.Send(context.Background(), payload); err != nil {
			r.logger.Error("notification delivery failed",
				"title", payload.Title,
				"error", err,
			)
			return
		}
		r.logger.Info("notification delivered", "title", payload.Title)
	}()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]string{"status": "accepted"})
}

func (r *Relay) writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// Handler returns the relay's route map: the notification endpoint and
// a liveness probe.
func (r *Relay) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/notify", r)
	mux.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	})
	return mux
}
