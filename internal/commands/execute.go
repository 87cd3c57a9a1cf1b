package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	AddMedicine    func() (Result, error)
	AddAppointment func() (Result, error)
	Show           func(ShowArgs) (Result, error)
	Delete         func(DeleteArgs) (Result, error)
	Quit           func() (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAddMedicine:
		if handlers.AddMedicine == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "add-medicine handler not configured"}
		}
		return handlers.AddMedicine()
	case TypeAddAppointment:
		if handlers.AddAppointment == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "add-appointment handler not configured"}
		}
		return handlers.AddAppointment()
	case TypeShow:
		if handlers.Show == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "show handler not configured"}
		}
		return handlers.Show(*cmd.Show)
	case TypeDelete:
		if handlers.Delete == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "delete handler not configured"}
		}
		return handlers.Delete(*cmd.Delete)
	case TypeQuit:
		if handlers.Quit == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "quit handler not configured"}
		}
		return handlers.Quit()
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
