package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/justinas/alice"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"liftcoach/internal/actions"
	coach "liftcoach/internal/agents/coach/actor"
	"liftcoach/internal/agents/coach/handler"
	"liftcoach/pkg/eventstream"
	"liftcoach/pkg/logger"
	"liftcoach/pkg/messages"
	"liftcoach/pkg/protocol"
)

type errorResponse struct {
	Error string `json:"error"`
}

type Server struct {
	ac       *actor.RootContext
	server   *http.Server
	router   chi.Router
	registry *actions.Registry
	producer actor.Producer
}

func New(ac *actor.RootContext, h *handler.Handler, registry *actions.Registry, addr string) *Server {
	s := &Server{
		ac:       ac,
		registry: registry,
		producer: func() actor.Actor { return coach.New(h) },
	}

	r := chi.NewRouter()
	r.Use(logMiddleware())
	r.Post("/coach/turn", s.handleTurn)
	r.Post("/coach/undo", s.handleUndo)

	s.router = r
	s.server = &http.Server{
		Addr:    addr,
		Handler: r,
	}
	return s
}

// handleTurn spawns a coach actor for this request and relays its events.
// An Accept header naming text/event-stream gets the frame stream; anything
// else gets the final TurnResponse as one JSON body.
func (s *Server) handleTurn(w http.ResponseWriter, r *http.Request) {
	log.Debug().Msg("turn request")
	req := protocol.TurnRequest{}
	if err := unmarshalRequestBody(r, &req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		log.Debug().Msg("cannot parse body")
		render.JSON(w, r, errorResponse{Error: "unable to parse body"})
		return
	}
	if len(req.Messages) == 0 || req.Messages[len(req.Messages)-1].Role != protocol.RoleUser {
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, errorResponse{Error: "conversation must end with a user message"})
		return
	}

	decider := func(reason interface{}) actor.Directive {
		log.Error().Msgf("handling failure for child. reason: %v", reason)
		return actor.RestartDirective
	}
	strategy := actor.NewOneForOneStrategy(3, 10000, decider)

	props := actor.PropsFromProducer(s.producer, actor.WithSupervisor(strategy))
	pid := s.ac.Spawn(props)

	id := uuid.New()
	events := make(chan protocol.StreamEvent, 8)
	s.ac.Send(pid, messages.NewTurn{
		RequestID:   id,
		Messages:    req.Messages,
		Preferences: req.Preferences,
		Events:      events,
	})
	log.Debug().Str(logger.TurnField, id.String()).Msg("turn started")

	if strings.Contains(r.Header.Get("Accept"), "text/event-stream") {
		s.streamEvents(w, r, events)
		return
	}

	var final *protocol.TurnResponse
	for ev := range events {
		if f, ok := ev.(protocol.FinalEvent); ok {
			resp := f.Response
			final = &resp
		}
	}
	if final == nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.Error().Str(logger.TurnField, id.String()).Msg("turn produced no final response")
		render.JSON(w, r, errorResponse{Error: "turn produced no response"})
		return
	}
	render.JSON(w, r, *final)
}

// streamEvents writes one frame per event. The channel is always drained to
// completion so the coach actor never blocks on a gone client.
func (s *Server) streamEvents(w http.ResponseWriter, r *http.Request, events <-chan protocol.StreamEvent) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		for range events {
		}
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, errorResponse{Error: "streaming unsupported"})
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)

	dead := false
	for ev := range events {
		if dead || r.Context().Err() != nil {
			continue
		}
		data, err := protocol.EncodeStreamEvent(ev)
		if err != nil {
			log.Error().Err(err).Msg("unable to encode event")
			continue
		}
		if err := eventstream.WriteFrame(w, eventstream.Frame{Data: string(data)}); err != nil {
			dead = true
			continue
		}
		flusher.Flush()
	}
}

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	log.Debug().Msg("undo request")
	req := protocol.UndoRequest{}
	if err := unmarshalRequestBody(r, &req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		log.Debug().Msg("cannot parse body")
		render.JSON(w, r, errorResponse{Error: "unable to parse body"})
		return
	}
	if strings.TrimSpace(req.ActionID) == "" {
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, errorResponse{Error: "actionId is required"})
		return
	}

	// turnId is correlation-only; it never affects the reversal.
	ok, message := s.registry.Reverse(req.ActionID)
	log.Debug().
		Str(logger.ActionField, req.ActionID).
		Str(logger.TurnField, req.TurnID).
		Bool("ok", ok).
		Msg("undo handled")
	render.JSON(w, r, protocol.UndoResult{OK: ok, Message: message})
}

func (s *Server) Start() error {
	err := s.server.ListenAndServe()
	if err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}

	log.Info().Msg("http server started")
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	err := s.server.Shutdown(ctx)
	if err != nil {
		return fmt.Errorf("http server: %w", err)
	}

	return nil
}

func logMiddleware() func(http.Handler) http.Handler {
	c := alice.New()
	c = c.Append(hlog.NewHandler(log.Logger))
	c = c.Append(hlog.RemoteAddrHandler("ip"))
	c = c.Append(hlog.UserAgentHandler("agent"))
	c = c.Append(hlog.RefererHandler("referer"))
	c = c.Append(hlog.RequestIDHandler("req_id", "Request-Id"))
	c = c.Append(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("verb", r.Method).
			Stringer("url", r.URL).
			Int("size", size).
			Int("status", status).
			Int64("duration", duration.Milliseconds()).
			Msg("REQ")
	}))

	return c.Then
}

func unmarshalRequestBody(req *http.Request, output interface{}) error {
	if req.Body == nil {
		return errors.New("invalid body in request")
	}

	body, err := io.ReadAll(req.Body)
	if err != nil {
		return err
	}
	if err = req.Body.Close(); err != nil {
		return err
	}
	if err = json.Unmarshal(body, &output); err != nil {
		return err
	}

	return nil
}
