package handler

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/chains"
	langChainPrompt "github.com/tmc/langchaingo/prompts"

	"liftcoach/internal/actions"
	"liftcoach/internal/tools"
	"liftcoach/pkg/data"
	"liftcoach/pkg/logger"
	"liftcoach/pkg/messages"
	"liftcoach/pkg/models"
	"liftcoach/pkg/prompts"
	"liftcoach/pkg/protocol"
)

var TurnPrompt = langChainPrompt.NewPromptTemplate(prompts.CoachTurn, []string{"Prompt", "History"})

// Emit delivers one stream event to the client, in call order.
type Emit func(protocol.StreamEvent)

// Handler plans and executes one coach turn. With a chain configured it asks
// the model for a plan; without one, or when the model's answer is unusable,
// the deterministic planner takes over and the trace marks fallbackUsed.
type Handler struct {
	chain   chains.Chain
	model   string
	actions *actions.Registry
}

func New(chain chains.Chain, model string, reg *actions.Registry) *Handler {
	return &Handler{
		chain:   chain,
		model:   model,
		actions: reg,
	}
}

// Turn executes the planned tool calls in order, emitting tool_start and
// tool_result events as it goes, and returns the authoritative response.
// Tool failures become error events, never a failed turn.
func (h *Handler) Turn(ctx context.Context, msg messages.NewTurn, emit Emit) protocol.TurnResponse {
	l := log.With().Str(logger.TurnField, msg.RequestID.String()).Logger()

	prompt := latestUserPrompt(msg.Messages)
	plan, fallback := h.plan(ctx, prompt, marshalHistory(msg.Messages))

	deps := tools.Deps{
		Actions: h.actions,
		Prefs:   msg.Preferences,
		TurnID:  msg.RequestID.String(),
	}

	blocks := make(protocol.Blocks, 0)
	used := make([]string, 0, len(plan.Calls))
	for _, call := range plan.Calls {
		if !known(call.Tool) {
			l.Warn().Str(logger.ToolField, call.Tool).Msg("skipping unknown tool")
			continue
		}
		emit(protocol.ToolStartEvent{ToolName: call.Tool})
		result, err := execute(deps, call)
		if err != nil {
			l.Warn().Err(err).Str(logger.ToolField, call.Tool).Msg("tool failed")
			emit(protocol.ErrorEvent{Message: err.Error()})
			continue
		}
		emit(protocol.ToolResultEvent{Blocks: result})
		blocks = append(blocks, result...)
		used = append(used, call.Tool)
	}
	blocks = append(blocks, protocol.SuggestionsBlock{Prompts: suggestionsFor(used)})

	return protocol.TurnResponse{
		AssistantText: plan.Reply,
		Blocks:        blocks,
		Trace: protocol.Trace{
			Model:        h.model,
			ToolsUsed:    used,
			FallbackUsed: fallback,
		},
	}
}

// plan asks the chain for a turn plan; any failure along the way drops to
// the deterministic planner.
func (h *Handler) plan(ctx context.Context, prompt, history string) (models.Plan, bool) {
	if h.chain == nil {
		return fallbackPlan(prompt), true
	}

	completion, err := chains.Call(ctx, h.chain, map[string]any{"Prompt": prompt, "History": history})
	if err != nil {
		log.Warn().Err(err).Msg("planner chain failed, using fallback")
		return fallbackPlan(prompt), true
	}
	answer, ok := completion["text"].(string)
	if !ok {
		log.Warn().Msg("planner chain returned no text, using fallback")
		return fallbackPlan(prompt), true
	}

	match, err := data.SanitizeAnswer(answer)
	if err != nil {
		log.Warn().Err(err).Msg("unable to sanitize plan, using fallback")
		return fallbackPlan(prompt), true
	}
	var plan models.Plan
	if err := json.Unmarshal([]byte(match), &plan); err != nil || plan.Reply == "" {
		log.Warn().Err(err).Msg("unable to parse plan, using fallback")
		return fallbackPlan(prompt), true
	}
	return plan, false
}

func known(tool string) bool {
	switch tool {
	case tools.LogSetName, tools.WorkoutStatsName, tools.WeeklyTrendName,
		tools.ExerciseHistoryName, tools.UpdatePreferencesName:
		return true
	}
	return false
}

func execute(deps tools.Deps, call models.ToolCall) (protocol.Blocks, error) {
	switch call.Tool {
	case tools.LogSetName:
		return tools.LogSet(deps, call.Args)
	case tools.WorkoutStatsName:
		return tools.WorkoutStats(deps)
	case tools.WeeklyTrendName:
		return tools.WeeklyTrend(deps, call.Args["metric"])
	case tools.ExerciseHistoryName:
		return tools.ExerciseHistory(deps, call.Args["exercise"])
	case tools.UpdatePreferencesName:
		return tools.UpdatePreferences(call.Args)
	default:
		return nil, fmt.Errorf("unknown tool %q", call.Tool)
	}
}

func latestUserPrompt(msgs []protocol.Message) string {
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == protocol.RoleUser {
			return msgs[i].Content
		}
	}
	return ""
}

func marshalHistory(msgs []protocol.Message) string {
	res, err := json.Marshal(msgs)
	if err != nil {
		return "[]"
	}
	return string(res)
}

func suggestionsFor(used []string) []string {
	for _, tool := range used {
		if tool == tools.LogSetName {
			return []string{"Log another set", "Show my weekly trend", "Undo that"}
		}
	}
	return []string{"Log a set", "Show my weekly trend", "How did I do this week?"}
}
