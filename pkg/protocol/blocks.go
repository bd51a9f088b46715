package protocol

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

type BlockType string

const (
	BlockStatus       BlockType = "status"
	BlockUndo         BlockType = "undo"
	BlockMetrics      BlockType = "metrics"
	BlockTrend        BlockType = "trend"
	BlockTable        BlockType = "table"
	BlockEntityList   BlockType = "entity_list"
	BlockDetailPanel  BlockType = "detail_panel"
	BlockConfirmation BlockType = "confirmation"
	BlockQuickLogForm BlockType = "quick_log_form"
	BlockBillingPanel BlockType = "billing_panel"
	BlockSuggestions  BlockType = "suggestions"
	BlockClientAction BlockType = "client_action"
)

// Block is the closed union of result fragments a turn may produce. Every
// variant is a struct in this package; DecodeBlock rejects anything else, so
// consumers can switch exhaustively on BlockType.
type Block interface {
	BlockType() BlockType
}

type Tone string

const (
	ToneSuccess Tone = "success"
	ToneError   Tone = "error"
	ToneInfo    Tone = "info"
)

type StatusBlock struct {
	Tone        Tone   `json:"tone"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

func (StatusBlock) BlockType() BlockType { return BlockStatus }

type UndoBlock struct {
	ActionID    string `json:"actionId"`
	TurnID      string `json:"turnId"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

func (UndoBlock) BlockType() BlockType { return BlockUndo }

type Metric struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type MetricsBlock struct {
	Title   string   `json:"title"`
	Metrics []Metric `json:"metrics"`
}

func (MetricsBlock) BlockType() BlockType { return BlockMetrics }

type TrendMetric string

const (
	TrendReps     TrendMetric = "reps"
	TrendDuration TrendMetric = "duration"
)

type TrendPoint struct {
	Date  string  `json:"date"`
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

type TrendBlock struct {
	Title    string       `json:"title"`
	Subtitle string       `json:"subtitle,omitempty"`
	Metric   TrendMetric  `json:"metric"`
	Total    float64      `json:"total"`
	BestDay  string       `json:"bestDay"`
	Points   []TrendPoint `json:"points"`
}

func (TrendBlock) BlockType() BlockType { return BlockTrend }

type TableRow struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Meta  string `json:"meta,omitempty"`
}

type TableBlock struct {
	Title string     `json:"title"`
	Rows  []TableRow `json:"rows"`
}

func (TableBlock) BlockType() BlockType { return BlockTable }

type EntityListItem struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
}

type EntityListBlock struct {
	Title string           `json:"title"`
	Items []EntityListItem `json:"items"`
}

func (EntityListBlock) BlockType() BlockType { return BlockEntityList }

type DetailField struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type DetailPanelBlock struct {
	Title  string        `json:"title"`
	Fields []DetailField `json:"fields"`
}

func (DetailPanelBlock) BlockType() BlockType { return BlockDetailPanel }

type ConfirmationBlock struct {
	Title        string `json:"title"`
	Prompt       string `json:"prompt"`
	ConfirmLabel string `json:"confirmLabel,omitempty"`
	CancelLabel  string `json:"cancelLabel,omitempty"`
}

func (ConfirmationBlock) BlockType() BlockType { return BlockConfirmation }

type QuickLogFormBlock struct {
	Exercise string  `json:"exercise"`
	Reps     int     `json:"reps,omitempty"`
	Weight   float64 `json:"weight,omitempty"`
	Unit     Unit    `json:"unit,omitempty"`
}

func (QuickLogFormBlock) BlockType() BlockType { return BlockQuickLogForm }

type BillingPanelBlock struct {
	Plan     string `json:"plan"`
	Status   string `json:"status"`
	RenewsAt string `json:"renewsAt,omitempty"`
}

func (BillingPanelBlock) BlockType() BlockType { return BlockBillingPanel }

type SuggestionsBlock struct {
	Prompts []string `json:"prompts"`
}

func (SuggestionsBlock) BlockType() BlockType { return BlockSuggestions }

// ClientActionBlock is the only variant whose effect is local to the client.
// It carries data only and is never rendered; renderers must not see one.
type ClientActionBlock struct {
	Action  string                 `json:"action"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

func (ClientActionBlock) BlockType() BlockType { return BlockClientAction }

// Blocks marshals as a JSON array of tagged objects and unmarshals strictly:
// one unknown or invalid element fails the whole list, which makes the
// enclosing frame get skipped.
type Blocks []Block

func (bs Blocks) MarshalJSON() ([]byte, error) {
	out := make([]json.RawMessage, 0, len(bs))
	for _, b := range bs {
		raw, err := EncodeBlock(b)
		if err != nil {
			return nil, err
		}
		out = append(out, raw)
	}
	return json.Marshal(out)
}

func (bs *Blocks) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return fmt.Errorf("blocks: %w", err)
	}
	out := make(Blocks, 0, len(raws))
	for _, raw := range raws {
		b, err := DecodeBlock(raw)
		if err != nil {
			return err
		}
		out = append(out, b)
	}
	*bs = out
	return nil
}

// EncodeBlock marshals a block with its type discriminator injected.
func EncodeBlock(b Block) ([]byte, error) {
	return encodeTagged(string(b.BlockType()), b)
}

// DecodeBlock unmarshals one tagged block and validates it. An unknown type
// is an error so that callers skip the surrounding frame.
func DecodeBlock(data []byte) (Block, error) {
	var head struct {
		Type BlockType `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("block envelope: %w", err)
	}

	var b Block
	switch head.Type {
	case BlockStatus:
		b = new(StatusBlock)
	case BlockUndo:
		b = new(UndoBlock)
	case BlockMetrics:
		b = new(MetricsBlock)
	case BlockTrend:
		b = new(TrendBlock)
	case BlockTable:
		b = new(TableBlock)
	case BlockEntityList:
		b = new(EntityListBlock)
	case BlockDetailPanel:
		b = new(DetailPanelBlock)
	case BlockConfirmation:
		b = new(ConfirmationBlock)
	case BlockQuickLogForm:
		b = new(QuickLogFormBlock)
	case BlockBillingPanel:
		b = new(BillingPanelBlock)
	case BlockSuggestions:
		b = new(SuggestionsBlock)
	case BlockClientAction:
		b = new(ClientActionBlock)
	default:
		return nil, fmt.Errorf("unknown block type %q", head.Type)
	}
	if err := json.Unmarshal(data, b); err != nil {
		return nil, fmt.Errorf("decode %s block: %w", head.Type, err)
	}
	b = deref(b)
	if err := ValidateBlock(b); err != nil {
		return nil, err
	}
	return b, nil
}

// deref flattens the decode pointer so consumers always see value variants.
func deref(b Block) Block {
	switch v := b.(type) {
	case *StatusBlock:
		return *v
	case *UndoBlock:
		return *v
	case *MetricsBlock:
		return *v
	case *TrendBlock:
		return *v
	case *TableBlock:
		return *v
	case *EntityListBlock:
		return *v
	case *DetailPanelBlock:
		return *v
	case *ConfirmationBlock:
		return *v
	case *QuickLogFormBlock:
		return *v
	case *BillingPanelBlock:
		return *v
	case *SuggestionsBlock:
		return *v
	case *ClientActionBlock:
		return *v
	default:
		return b
	}
}

// ValidateBlock checks the per-variant required fields. The switch is
// exhaustive over the closed union; a variant added without a case here
// fails at the default.
func ValidateBlock(b Block) error {
	switch v := b.(type) {
	case StatusBlock:
		if v.Tone != ToneSuccess && v.Tone != ToneError && v.Tone != ToneInfo {
			return fmt.Errorf("status block: invalid tone %q", v.Tone)
		}
		if v.Title == "" {
			return fmt.Errorf("status block: title is required")
		}
	case UndoBlock:
		if strings.TrimSpace(v.ActionID) == "" {
			return fmt.Errorf("undo block: actionId is required")
		}
	case MetricsBlock:
		if v.Title == "" {
			return fmt.Errorf("metrics block: title is required")
		}
	case TrendBlock:
		if v.Metric != TrendReps && v.Metric != TrendDuration {
			return fmt.Errorf("trend block: invalid metric %q", v.Metric)
		}
	case TableBlock, EntityListBlock, DetailPanelBlock, ConfirmationBlock,
		QuickLogFormBlock, BillingPanelBlock, SuggestionsBlock:
	case ClientActionBlock:
		if v.Action == "" {
			return fmt.Errorf("client_action block: action is required")
		}
	default:
		return fmt.Errorf("unknown block variant %T", b)
	}
	return nil
}

func encodeTagged(typ string, v interface{}) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", typ, err)
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("marshal %s: %w", typ, err)
	}
	fields["type"] = json.RawMessage(strconv.Quote(typ))
	return json.Marshal(fields)
}
