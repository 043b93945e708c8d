package server

import (
	"encoding/json"
	"fmt"

	"isoworld/internal/engine"
	"isoworld/pkg/api"
)

// decodePayload распаковывает payload и прогоняет его через Validator.
// Отсутствующий payload читается как пустой объект.
func decodePayload[T any](raw json.RawMessage) (T, error) {
	var payload T
	if len(raw) == 0 || string(raw) == "null" {
		raw = json.RawMessage("{}")
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return payload, fmt.Errorf("invalid payload format: %w", err)
	}
	if v, ok := any(payload).(api.Validator); ok {
		if err := v.Validate(); err != nil {
			return payload, fmt.Errorf("validation failed: %w", err)
		}
	}
	return payload, nil
}

// toCommand переводит сообщение консоли в команду движка.
func toCommand(msg api.ClientCommand) (engine.Command, error) {
	cmd := engine.Command{Action: msg.Action}
	switch msg.Action {
	case api.ActionSetKey:
		p, err := decodePayload[api.KeyPayload](msg.Payload)
		if err != nil {
			return cmd, err
		}
		cmd.Key = p.Key
	case api.ActionClick:
		p, err := decodePayload[api.PointerPayload](msg.Payload)
		if err != nil {
			return cmd, err
		}
		cmd.X, cmd.Y = p.X, p.Y
	case api.ActionProvider:
		p, err := decodePayload[api.ProviderPayload](msg.Payload)
		if err != nil {
			return cmd, err
		}
		cmd.Provider = p.Name
	default:
		return cmd, fmt.Errorf("%w: %q", engine.ErrUnknownAction, msg.Action)
	}
	return cmd, nil
}

func resultOf(action string, err error) api.CommandResult {
	if err != nil {
		return api.CommandResult{Type: api.TypeError, Action: action, Error: err.Error()}
	}
	return api.CommandResult{Type: api.TypeAck, Action: action}
}
