package actor

import (
	"context"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"liftcoach/internal/agents/coach/handler"
	"liftcoach/pkg/logger"
	"liftcoach/pkg/messages"
	"liftcoach/pkg/models"
	"liftcoach/pkg/protocol"
)

// Coach runs one turn and stops itself. The API server spawns one per
// request; events flow to the HTTP handler over the channel in the message.
type Coach struct {
	id      uuid.UUID
	handler *handler.Handler
	state   models.State
}

func New(h *handler.Handler) actor.Actor {
	return &Coach{
		id:      uuid.Nil,
		handler: h,
		state:   models.Idle,
	}
}

func (agent *Coach) Receive(ac actor.Context) {
	l := log.With().Fields(map[string]interface{}{logger.ActorIDField: ac.Self().GetId(), logger.AgentNameField: "coach"}).Logger()
	switch msg := ac.Message().(type) {
	case *actor.Started:
		l.Debug().Msg("starting actor")
	case *actor.Stopping:
		l.Debug().Msg("stopping actor")
	case *actor.Stopped:
		l.Debug().Msg("stopped actor")
	case *actor.Restarting:
		l.Debug().Msg("restarting actor")
	case messages.NewTurn:
		agent.id = msg.RequestID
		agent.state = models.Streaming
		l.Info().Str(logger.TurnField, agent.id.String()).Msg("running turn...")

		resp := agent.handler.Turn(context.Background(), msg, func(ev protocol.StreamEvent) {
			msg.Events <- ev
		})
		msg.Events <- protocol.FinalEvent{Response: resp}
		close(msg.Events)

		agent.state = models.Finalized
		l.Info().Str(logger.TurnField, agent.id.String()).Msg("turn complete")
		ac.Stop(ac.Self())
	default:
		l.Warn().Msgf("unknown message: %v", msg)
	}
}
