package commands

import (
	"fmt"
	"strconv"
	"strings"
)

type Type string

const (
	TypeStart   Type = "start"
	TypeStop    Type = "stop"
	TypeReset   Type = "reset"
	TypeEnable  Type = "enable"
	TypeDisable Type = "disable"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ToggleArgs targets either a threshold (minutes > 0) or an event id.
type ToggleArgs struct {
	Minutes int
	EventID string
}

type Command struct {
	Type   Type
	Raw    string
	Toggle *ToggleArgs
}

// Parse turns palette input into a Command:
//
//	start | stop | reset
//	enable <minutes>   e.g. "enable 15"
//	enable <event-id>  e.g. "enable kundun"
//	disable <minutes> | disable <event-id>
func Parse(raw string) (Command, error) {
	input := strings.TrimSpace(raw)
	if input == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "empty command"}
	}
	fields := strings.Fields(input)
	verb := strings.ToLower(fields[0])

	switch verb {
	case "start", "stop", "reset":
		if len(fields) > 1 {
			return Command{}, &CommandError{
				Code:    ErrCodeInvalidArgument,
				Message: fmt.Sprintf("%s takes no arguments", verb),
			}
		}
		return Command{Type: Type(verb), Raw: input}, nil
	case "enable", "disable":
		if len(fields) != 2 {
			return Command{}, &CommandError{
				Code:    ErrCodeInvalidArgument,
				Message: fmt.Sprintf("usage: %s <minutes|event-id>", verb),
			}
		}
		toggle := &ToggleArgs{}
		if minutes, err := strconv.Atoi(fields[1]); err == nil {
			if minutes <= 0 {
				return Command{}, &CommandError{
					Code:    ErrCodeInvalidArgument,
					Message: fmt.Sprintf("minutes must be positive, got %d", minutes),
				}
			}
			toggle.Minutes = minutes
		} else {
			toggle.EventID = strings.ToLower(fields[1])
		}
		return Command{Type: Type(verb), Raw: input, Toggle: toggle}, nil
	default:
		return Command{}, &CommandError{
			Code:    ErrCodeUnknownCommand,
			Message: fmt.Sprintf("unknown command %q", verb),
		}
	}
}
