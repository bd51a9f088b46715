package coach

import "liftcoach/pkg/protocol"

// ActionFunc applies one client_action payload to the client's preferences.
type ActionFunc func(prefs *protocol.Preferences, payload map[string]interface{})

func builtinActions() map[string]ActionFunc {
	return map[string]ActionFunc{
		"set_unit": func(prefs *protocol.Preferences, payload map[string]interface{}) {
			switch payload["unit"] {
			case string(protocol.UnitKg):
				prefs.Unit = protocol.UnitKg
			case string(protocol.UnitLbs):
				prefs.Unit = protocol.UnitLbs
			}
		},
		"set_sound": func(prefs *protocol.Preferences, payload map[string]interface{}) {
			if enabled, ok := payload["enabled"].(bool); ok {
				prefs.SoundEnabled = enabled
			}
		},
	}
}

// RegisterAction adds or replaces a client_action handler.
func (c *Client) RegisterAction(name string, fn ActionFunc) {
	c.actions[name] = fn
}

// applyClientActions dispatches every client_action block by its action name
// and returns only the renderable blocks, so a renderer can never see one.
func (c *Client) applyClientActions(blocks []protocol.Block) []protocol.Block {
	rest := make([]protocol.Block, 0, len(blocks))
	for _, b := range blocks {
		action, ok := b.(protocol.ClientActionBlock)
		if !ok {
			rest = append(rest, b)
			continue
		}
		fn, ok := c.actions[action.Action]
		if !ok {
			c.log.Debug().Str("action", action.Action).Msg("unknown client action")
			continue
		}
		fn(&c.prefs, action.Payload)
	}
	return rest
}
