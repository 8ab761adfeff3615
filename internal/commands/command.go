package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sandeepkv93/dashd/internal/model"
)

type Type string

const (
	TypeAdd         Type = "add"
	TypeDone        Type = "done"
	TypeDelete      Type = "del"
	TypePriority    Type = "prio"
	TypeClear       Type = "clear"
	TypeFilter      Type = "filter"
	TypeSort        Type = "sort"
	TypeCategory    Type = "cat"
	TypeNewCategory Type = "newcat"
	TypeSearch      Type = "search"
	TypeShow        Type = "show"
	TypeVocab       Type = "vocab"
	TypeSpeak       Type = "speak"
	TypeWeather     Type = "weather"
)

var aliases = map[string]Type{
	"a":      TypeAdd,
	"new":    TypeAdd,
	"toggle": TypeDone,
	"d":      TypeDone,
	"rm":     TypeDelete,
	"delete": TypeDelete,
	"p":      TypePriority,
	"s":      TypeSearch,
	"word":   TypeVocab,
	"say":    TypeSpeak,
}

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
	ErrCodeNoTarget        ErrorCode = "no_target"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func invalid(format string, args ...any) error {
	return &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

// AddArgs come from "add <text> [!priority] [#category] [due:YYYY-MM-DD]".
type AddArgs struct {
	Text     string
	Priority model.Priority
	Category string
	DueDate  string
}

// TargetArgs name a task by 1-based position in the visible list, or "."
// for the selected row.
type TargetArgs struct {
	Ref      string
	Priority model.Priority
}

type FilterArgs struct {
	Status        model.StatusFilter
	Sort          model.SortOption
	Category      string
	Search        string
	ShowCompleted bool
}

type VocabArgs struct {
	Language model.Language
	Text     string
}

type WeatherArgs struct {
	City string
}

type Command struct {
	Type    Type
	Raw     string
	Add     *AddArgs
	Target  *TargetArgs
	Filter  *FilterArgs
	Vocab   *VocabArgs
	Weather *WeatherArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	raw = strings.TrimSpace(strings.TrimLeft(raw, ":/"))
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]
	typ := Type(head)
	if alias, ok := aliases[head]; ok {
		typ = alias
	}

	switch typ {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeDone, TypeDelete:
		return parseTarget(input, typ, args)
	case TypePriority:
		return parsePriority(input, args)
	case TypeClear:
		return Command{Type: TypeClear, Raw: input}, nil
	case TypeFilter:
		return parseFilter(input, args)
	case TypeSort:
		return parseSort(input, args)
	case TypeCategory:
		return parseCategory(input, args)
	case TypeNewCategory:
		name := strings.TrimSpace(strings.Join(args, " "))
		if name == "" {
			return Command{}, invalid("newcat requires a name")
		}
		return Command{Type: TypeNewCategory, Raw: input, Filter: &FilterArgs{Category: name}}, nil
	case TypeSearch:
		return Command{Type: TypeSearch, Raw: input, Filter: &FilterArgs{Search: strings.Join(args, " ")}}, nil
	case TypeShow:
		return parseShow(input, args)
	case TypeVocab:
		return parseVocab(input, args)
	case TypeSpeak:
		return Command{Type: TypeSpeak, Raw: input, Vocab: &VocabArgs{Text: strings.Join(args, " ")}}, nil
	case TypeWeather:
		return Command{Type: TypeWeather, Raw: input, Weather: &WeatherArgs{City: strings.Join(args, " ")}}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	out := AddArgs{}
	words := make([]string, 0, len(args))
	for _, arg := range args {
		lower := strings.ToLower(arg)
		switch {
		case strings.HasPrefix(arg, "!") && len(arg) > 1:
			p, err := model.ParsePriority(arg[1:])
			if err != nil {
				return Command{}, invalid("unknown priority %q", arg[1:])
			}
			out.Priority = p
		case strings.HasPrefix(arg, "#") && len(arg) > 1:
			out.Category = arg[1:]
		case strings.HasPrefix(lower, "due:"):
			due := arg[len("due:"):]
			if _, err := time.Parse(model.DateLayout, due); err != nil {
				return Command{}, invalid("due date must be YYYY-MM-DD, got %q", due)
			}
			out.DueDate = due
		default:
			words = append(words, arg)
		}
	}
	out.Text = strings.TrimSpace(strings.Join(words, " "))
	if out.Text == "" {
		return Command{}, invalid("add requires text")
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &out}, nil
}

func parseTarget(raw string, typ Type, args []string) (Command, error) {
	ref := "."
	if len(args) > 0 {
		ref = args[0]
	}
	if err := checkRef(ref); err != nil {
		return Command{}, err
	}
	return Command{Type: typ, Raw: raw, Target: &TargetArgs{Ref: ref}}, nil
}

func parsePriority(raw string, args []string) (Command, error) {
	var ref, level string
	switch len(args) {
	case 1:
		ref, level = ".", args[0]
	case 2:
		ref, level = args[0], args[1]
	default:
		return Command{}, invalid("prio requires [target] <high|medium|low>")
	}
	if err := checkRef(ref); err != nil {
		return Command{}, err
	}
	p, err := model.ParsePriority(level)
	if err != nil {
		return Command{}, invalid("unknown priority %q", level)
	}
	return Command{Type: TypePriority, Raw: raw, Target: &TargetArgs{Ref: ref, Priority: p}}, nil
}

func checkRef(ref string) error {
	if ref == "." {
		return nil
	}
	if n, err := strconv.Atoi(ref); err != nil || n < 1 {
		return invalid("target must be a row number or '.', got %q", ref)
	}
	return nil
}

func parseFilter(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, invalid("filter requires all, active or completed")
	}
	s, err := model.ParseStatusFilter(args[0])
	if err != nil {
		return Command{}, invalid("unknown filter %q", args[0])
	}
	return Command{Type: TypeFilter, Raw: raw, Filter: &FilterArgs{Status: s}}, nil
}

func parseSort(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, invalid("sort requires newest, oldest or priority")
	}
	s, err := model.ParseSortOption(args[0])
	if err != nil {
		return Command{}, invalid("unknown sort %q", args[0])
	}
	return Command{Type: TypeSort, Raw: raw, Filter: &FilterArgs{Sort: s}}, nil
}

// parseCategory treats no argument, "all" and "none" as clearing the
// category filter.
func parseCategory(raw string, args []string) (Command, error) {
	name := strings.TrimSpace(strings.Join(args, " "))
	switch strings.ToLower(name) {
	case "all", "none", "*":
		name = ""
	}
	return Command{Type: TypeCategory, Raw: raw, Filter: &FilterArgs{Category: name}}, nil
}

func parseShow(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, invalid("show requires on or off")
	}
	switch strings.ToLower(args[0]) {
	case "on", "all", "completed", "done":
		return Command{Type: TypeShow, Raw: raw, Filter: &FilterArgs{ShowCompleted: true}}, nil
	case "off", "hide", "active":
		return Command{Type: TypeShow, Raw: raw, Filter: &FilterArgs{ShowCompleted: false}}, nil
	default:
		return Command{}, invalid("show requires on or off, got %q", args[0])
	}
}

func parseVocab(raw string, args []string) (Command, error) {
	out := VocabArgs{}
	if len(args) > 0 {
		lang, err := model.ParseLanguage(args[0])
		if err != nil {
			return Command{}, invalid("unknown language %q", args[0])
		}
		out.Language = lang
	}
	return Command{Type: TypeVocab, Raw: raw, Vocab: &out}, nil
}
