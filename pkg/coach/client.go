// Package coach drives one turn of the coach protocol from the client side:
// it sends the trimmed conversation, consumes the event stream in order, and
// settles the timeline entry in Finalized or Failed. Failures become visible
// blocks; no error escapes a boundary method.
package coach

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"liftcoach/pkg/memory/window"
	"liftcoach/pkg/protocol"
	"liftcoach/pkg/timeline"
)

var (
	ErrEmptyPrompt   = errors.New("prompt is empty")
	ErrTurnInFlight  = errors.New("a turn is already in flight")
	errStreamNoFinal = errors.New("stream ended before a final event")
)

const placeholderReply = "Sorry, I couldn't finish that one. Give it another try in a moment."

var recoveryPrompts = []string{
	"Show my weekly trend",
	"Log a set",
	"What did I lift last time?",
}

// Client runs one turn at a time against a coach server. It owns the
// conversation window, the timeline and the client-held preferences. Not
// safe for concurrent use beyond the in-flight rejection it implements.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger

	window   window.Window
	timeline *timeline.Timeline
	prefs    protocol.Preferences
	actions  map[string]ActionFunc

	inFlight atomic.Bool
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithWindowLimit(n int) Option {
	return func(c *Client) { c.window = window.New(n) }
}

func WithPreferences(p protocol.Preferences) Option {
	return func(c *Client) { c.prefs = p }
}

func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     http.DefaultClient,
		log:      log.Logger,
		window:   window.New(window.DefaultLimit),
		timeline: timeline.New(),
		prefs: protocol.Preferences{
			Unit:         protocol.UnitLbs,
			SoundEnabled: true,
		},
	}
	c.actions = builtinActions()
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Timeline() *timeline.Timeline { return c.timeline }

func (c *Client) Preferences() protocol.Preferences { return c.prefs }

func (c *Client) Conversation() []protocol.Message { return c.window.Messages }

// Send runs one turn. It returns an error only when the send is rejected at
// the boundary (empty prompt, turn already in flight); transport and protocol
// failures settle the returned entry in the Failed state instead.
func (c *Client) Send(ctx context.Context, prompt string) (*timeline.Entry, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, ErrEmptyPrompt
	}
	if !c.inFlight.CompareAndSwap(false, true) {
		return nil, ErrTurnInFlight
	}
	defer c.inFlight.Store(false)

	entry := c.timeline.Start(prompt)
	c.window = c.window.Append(protocol.Message{Role: protocol.RoleUser, Content: prompt})

	resp, err := c.postTurn(ctx)
	if err != nil {
		c.fail(entry, fmt.Errorf("send turn: %w", err))
		return entry, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.fail(entry, errorFromResponse(resp))
		return entry, nil
	}

	if strings.Contains(resp.Header.Get("Content-Type"), "text/event-stream") {
		c.consumeStream(entry, resp.Body)
	} else {
		// Degraded non-streaming mode: the whole body is one TurnResponse.
		c.consumeBody(entry, resp.Body)
	}
	return entry, nil
}

func (c *Client) postTurn(ctx context.Context) (*http.Response, error) {
	body, err := json.Marshal(protocol.TurnRequest{
		Messages:    c.window.Messages,
		Preferences: c.prefs,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/coach/turn", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")

	return c.http.Do(req)
}

// finalize applies the authoritative response and closes out the turn.
func (c *Client) finalize(entry *timeline.Entry, resp protocol.TurnResponse) {
	blocks := c.applyClientActions(resp.Blocks)
	entry.Finalize(resp.AssistantText, blocks, resp.Trace)
	c.window = c.window.Append(protocol.Message{Role: protocol.RoleAssistant, Content: resp.AssistantText})
	c.log.Debug().
		Str("entry", entry.ID.String()).
		Strs("tools", resp.Trace.ToolsUsed).
		Bool("fallback", resp.Trace.FallbackUsed).
		Msg("turn finalized")
}

// fail settles the entry with a visible error plus recovery suggestions and
// keeps the conversation window appendable with a placeholder assistant turn.
func (c *Client) fail(entry *timeline.Entry, err error) {
	c.log.Warn().Err(err).Str("entry", entry.ID.String()).Msg("turn failed")
	entry.Fail(
		protocol.StatusBlock{Tone: protocol.ToneError, Title: "Coach is unavailable", Description: err.Error()},
		protocol.SuggestionsBlock{Prompts: recoveryPrompts},
	)
	c.window = c.window.Append(protocol.Message{Role: protocol.RoleAssistant, Content: placeholderReply})
}

func errorFromResponse(resp *http.Response) error {
	msg := fmt.Sprintf("coach returned status %d", resp.StatusCode)
	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return errors.New(msg)
	}
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		msg += ": " + payload.Error
	}
	return errors.New(msg)
}
