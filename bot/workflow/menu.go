package workflow

import (
	"errors"
	"strconv"
	"strings"
)

// Option is one selectable entry in a menu prompt. Key is the stable
// internal value handlers switch on; Label is what the user sees.
type Option struct {
	Key   string
	Label string
}

var (
	// ErrNoSelection means the input matched no menu option.
	ErrNoSelection = errors.New("no matching option")

	// ErrAmbiguousSelection means the input matched two or more options.
	ErrAmbiguousSelection = errors.New("matched more than one option")
)

// Resolve matches free-text input to a menu option. An exact 1-based
// numeric index wins; otherwise a case-insensitive substring match against
// the labels succeeds only when exactly one option matches.
func Resolve(input string, options []Option) (Option, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return Option{}, ErrNoSelection
	}

	if num, err := strconv.Atoi(input); err == nil {
		if num < 1 || num > len(options) {
			return Option{}, ErrNoSelection
		}
		return options[num-1], nil
	}

	needle := strings.ToLower(input)
	var matched []Option
	for _, opt := range options {
		if strings.Contains(strings.ToLower(opt.Label), needle) {
			matched = append(matched, opt)
		}
	}

	switch len(matched) {
	case 0:
		return Option{}, ErrNoSelection
	case 1:
		return matched[0], nil
	default:
		return Option{}, ErrAmbiguousSelection
	}
}

// ResolveInput is Resolve with user-facing error messages, suitable for
// returning straight from a step handler.
func ResolveInput(input string, options []Option) (Option, error) {
	opt, err := Resolve(input, options)
	switch {
	case errors.Is(err, ErrAmbiguousSelection):
		return Option{}, errors.New("that matches more than one option — please be more specific")
	case errors.Is(err, ErrNoSelection):
		return Option{}, errors.New("please pick one of the listed options")
	}
	return opt, err
}

// FormatNumbered renders a prompt with its options as a numbered text menu
// for transports without native keyboards.
func FormatNumbered(text string, options []Option) string {
	var sb strings.Builder
	sb.WriteString(text)
	sb.WriteString("\n")
	for i, opt := range options {
		sb.WriteString("\n")
		sb.WriteString(strconv.Itoa(i + 1))
		sb.WriteString(". ")
		sb.WriteString(opt.Label)
	}
	return sb.String()
}
