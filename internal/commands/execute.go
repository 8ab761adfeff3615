package commands

import (
	"fmt"
	"strconv"

	"github.com/sandeepkv93/dashd/internal/model"
)

type Result struct {
	Message string
}

type Handlers struct {
	Add         func(AddArgs) (Result, error)
	Done        func(TargetArgs) (Result, error)
	Delete      func(TargetArgs) (Result, error)
	Priority    func(TargetArgs) (Result, error)
	Clear       func() (Result, error)
	Filter      func(FilterArgs) (Result, error)
	Sort        func(FilterArgs) (Result, error)
	Category    func(FilterArgs) (Result, error)
	NewCategory func(FilterArgs) (Result, error)
	Search      func(FilterArgs) (Result, error)
	Show        func(FilterArgs) (Result, error)
	Vocab       func(VocabArgs) (Result, error)
	Speak       func(VocabArgs) (Result, error)
	Weather     func(WeatherArgs) (Result, error)
}

func missing(t Type) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", t)}
}

func call[A any](t Type, fn func(A) (Result, error), args *A) (Result, error) {
	if fn == nil {
		return Result{}, missing(t)
	}
	if args == nil {
		return Result{}, invalid("%s is missing its arguments", t)
	}
	return fn(*args)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		return call(cmd.Type, handlers.Add, cmd.Add)
	case TypeDone:
		return call(cmd.Type, handlers.Done, cmd.Target)
	case TypeDelete:
		return call(cmd.Type, handlers.Delete, cmd.Target)
	case TypePriority:
		return call(cmd.Type, handlers.Priority, cmd.Target)
	case TypeClear:
		if handlers.Clear == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Clear()
	case TypeFilter:
		return call(cmd.Type, handlers.Filter, cmd.Filter)
	case TypeSort:
		return call(cmd.Type, handlers.Sort, cmd.Filter)
	case TypeCategory:
		return call(cmd.Type, handlers.Category, cmd.Filter)
	case TypeNewCategory:
		return call(cmd.Type, handlers.NewCategory, cmd.Filter)
	case TypeSearch:
		return call(cmd.Type, handlers.Search, cmd.Filter)
	case TypeShow:
		return call(cmd.Type, handlers.Show, cmd.Filter)
	case TypeVocab:
		return call(cmd.Type, handlers.Vocab, cmd.Vocab)
	case TypeSpeak:
		return call(cmd.Type, handlers.Speak, cmd.Vocab)
	case TypeWeather:
		return call(cmd.Type, handlers.Weather, cmd.Weather)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

// ResolveTarget maps a target ref onto the visible rows. selected is the
// cursor index, or -1 when nothing is selected.
func ResolveTarget(ref string, visible []model.Task, selected int) (model.Task, error) {
	if ref == "." || ref == "" {
		if selected < 0 || selected >= len(visible) {
			return model.Task{}, &CommandError{Code: ErrCodeNoTarget, Message: "no task selected"}
		}
		return visible[selected], nil
	}
	n, err := strconv.Atoi(ref)
	if err != nil || n < 1 || n > len(visible) {
		return model.Task{}, &CommandError{Code: ErrCodeNoTarget, Message: fmt.Sprintf("no visible task #%s", ref)}
	}
	return visible[n-1], nil
}
