package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add    func(AddArgs) (Result, error)
	Done   func(RowArgs) (Result, error)
	Delete func(RowArgs) (Result, error)
	Clear  func() (Result, error)
	Donate func(DonateArgs) (Result, error)
	Menu   func() (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Add(*cmd.Add)
	case TypeDone:
		if handlers.Done == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Done(*cmd.Row)
	case TypeDelete:
		if handlers.Delete == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Delete(*cmd.Row)
	case TypeClear:
		if handlers.Clear == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Clear()
	case TypeDonate:
		if handlers.Donate == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Donate(*cmd.Donate)
	case TypeMenu:
		if handlers.Menu == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Menu()
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

func missing(t Type) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", t)}
}
