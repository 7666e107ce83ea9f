package commands

import (
	"fmt"
	"strconv"
	"strings"
)

type Type string

const (
	TypeAdd    Type = "add"
	TypeDone   Type = "done"
	TypeDelete Type = "delete"
	TypeClear  Type = "clear"
	TypeDonate Type = "donate"
	TypeMenu   Type = "menu"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type AddArgs struct {
	Text string
}

// RowArgs addresses a task by its 1-based position in the visible list.
type RowArgs struct {
	Row int
}

type DonateArgs struct {
	Amount int
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Row    *RowArgs
	Donate *DonateArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, raw)
	case TypeDone, TypeDelete:
		return parseRow(input, Type(head), args)
	case TypeClear, TypeMenu:
		return Command{Type: Type(head), Raw: input}, nil
	case TypeDonate:
		return parseDonate(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

// parseAdd keeps the text after the verb verbatim apart from trimming, so
// inner spacing survives.
func parseAdd(input, raw string) (Command, error) {
	text := strings.TrimSpace(raw[len(TypeAdd):])
	if text == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires task text"}
	}
	return Command{Type: TypeAdd, Raw: input, Add: &AddArgs{Text: text}}, nil
}

func parseRow(input string, typ Type, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires a row number", typ)}
	}
	row, err := strconv.Atoi(args[0])
	if err != nil || row < 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid row: %s", args[0])}
	}
	return Command{Type: typ, Raw: input, Row: &RowArgs{Row: row}}, nil
}

func parseDonate(input string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "donate requires an amount"}
	}
	amount, err := strconv.Atoi(args[0])
	if err != nil || amount <= 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid amount: %s", args[0])}
	}
	return Command{Type: TypeDonate, Raw: input, Donate: &DonateArgs{Amount: amount}}, nil
}
