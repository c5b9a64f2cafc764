// Copyright 2025, hyperchaotic and the launchedit contributors
// SPDX-License-Identifier: GPL-3.0-only

package desktop

import (
	"errors"
	"fmt"
	"strings"
)

// ExecValue is a two-dimensional representation of the Exec key. The outer
// dimension is the argument list; each argument consists of parts that are
// either literal text or a field code. The split is needed because field
// codes must not be expanded inside double quotes while they are expanded
// outside of them, within the same argument.
//
// %F, %U, and %i always occupy their own argument, as the specification
// dictates.
type ExecValue [][]execArgPart

type execArgPart struct {
	arg         string
	isFieldCode bool
}

// Exec key parse errors.
var (
	ErrCharacterMustBeQuoted   = errors.New("character must be quoted")
	ErrEscapeOutsideQuotes     = errors.New("invalid character escaped")
	ErrFieldCodeIncomplete     = errors.New("unexpected end of string, field code not completed")
	ErrFieldCodeMustBeOwnArg   = errors.New("%F and %U must be separate arguments")
	ErrQuoteNotCompleted       = errors.New("double quote does not have matching closing quote")
	ErrTooManyFileFieldCodes   = errors.New("more than one file field code (fuFU)")
	ErrUnknownEscapedCharacter = errors.New("character must not be escaped")
	ErrUnknownFieldCode        = errors.New("unknown field code")
)

// reservedChars must appear inside double quotes.
const reservedChars = "\t\n'><~|&;$*?#()`"

// ParseExec parses value as an Exec key per [the Exec key] rules: argument
// splitting, double quoting with backslash escapes, and %-field codes.
//
// [the Exec key]: https://specifications.freedesktop.org/desktop-entry-spec/1.5/exec-variables.html
func ParseExec(value string) (ExecValue, error) {
	if !isAsciiNoControl(value) {
		return nil, fmt.Errorf("value of type string must be ASCII, got: %s", value)
	}

	value, err := unescapeString(value)
	if err != nil {
		return nil, err
	}

	result := make(ExecValue, 0)

	var nextArg strings.Builder

	argParts := make([]execArgPart, 0)
	quoted := false
	escaped := false
	containsFileFieldCode := false

	addPart := func(part string, isFieldCode bool) {
		if part == "" {
			return
		}

		argParts = append(argParts, execArgPart{arg: part, isFieldCode: isFieldCode})
	}

	for i := 0; i < len(value); i++ {
		char := value[i]

		if escaped {
			switch char {
			case '"', '`', '$', '\\':
				nextArg.WriteByte(char)

				escaped = false

				continue
			default:
				return nil, fmt.Errorf("parseExec: %w: %c", ErrUnknownEscapedCharacter, char)
			}
		}

		switch char {
		case '\\':
			if !quoted {
				return nil, fmt.Errorf("parseExec: %w", ErrEscapeOutsideQuotes)
			}

			escaped = true
		case '"':
			addPart(nextArg.String(), false)
			nextArg.Reset()

			quoted = !quoted
		case ' ':
			switch {
			case quoted:
				nextArg.WriteByte(' ')
			case nextArg.Len() == 0 && len(argParts) == 0:
				// Consecutive separators outside quotes.
			default:
				addPart(nextArg.String(), false)
				nextArg.Reset()

				result = append(result, argParts)
				argParts = nil
			}
		case '%':
			if quoted {
				nextArg.WriteByte(char)

				continue
			}

			if i+1 >= len(value) {
				return nil, fmt.Errorf("parseExec: %w", ErrFieldCodeIncomplete)
			}

			fieldCode := value[i+1]
			addFieldCode := false

			switch fieldCode {
			case '%':
				nextArg.WriteByte('%')
			case 'd', 'D', 'n', 'N', 'v', 'm':
				// Deprecated field codes are dropped.
			case 'F', 'U':
				if containsFileFieldCode {
					return nil, fmt.Errorf("parseExec: %w", ErrTooManyFileFieldCodes)
				}

				if i+2 < len(value) && value[i+2] != ' ' {
					return nil, fmt.Errorf("parseExec: %w", ErrFieldCodeMustBeOwnArg)
				}

				containsFileFieldCode = true
				addFieldCode = true
			case 'f', 'u':
				if containsFileFieldCode {
					return nil, fmt.Errorf("parseExec: %w", ErrTooManyFileFieldCodes)
				}

				containsFileFieldCode = true
				addFieldCode = true
			case 'i', 'c', 'k':
				addFieldCode = true
			default:
				return nil, fmt.Errorf("%w: %c", ErrUnknownFieldCode, fieldCode)
			}

			i++

			if addFieldCode {
				addPart(nextArg.String(), false)
				nextArg.Reset()
				addPart(string(fieldCode), true)
			}
		default:
			if !quoted && strings.IndexByte(reservedChars, char) != -1 {
				return nil, fmt.Errorf("parseExec: %w: %c", ErrCharacterMustBeQuoted, char)
			}

			nextArg.WriteByte(char)
		}
	}

	if escaped {
		return nil, ErrEscapeIncomplete
	}

	if quoted {
		return nil, fmt.Errorf("parseExec: %w", ErrQuoteNotCompleted)
	}

	addPart(nextArg.String(), false)

	if len(argParts) > 0 {
		result = append(result, argParts)
	}

	return result, nil
}

// CanOpenFiles reports whether the Exec value contains a file or URL field
// code (%f, %F, %u, %U).
func (e ExecValue) CanOpenFiles() bool {
	for _, parts := range e {
		for _, part := range parts {
			if !part.isFieldCode {
				continue
			}

			switch part.arg[0] {
			case 'f', 'F', 'u', 'U':
				return true
			}
		}
	}

	return false
}

// FieldCodeProvider supplies the runtime data that Exec field codes expand
// to. A nil function or an empty result leaves the field code unexpanded.
type FieldCodeProvider struct {
	// GetFile relates to the %f field code.
	GetFile func() string

	// GetFiles relates to the %F field code.
	GetFiles func() []string

	// GetURL relates to the %u field code.
	GetURL func() string

	// GetURLs relates to the %U field code.
	GetURLs func() []string

	// GetIcon relates to the %i field code. It expands to two arguments,
	// "--icon" followed by the icon name.
	GetIcon func() string

	// GetName relates to the %c field code, the translated entry name.
	GetName func() string

	// GetDesktopFileLocation relates to the %k field code.
	GetDesktopFileLocation func() string
}

// ToArguments expands the Exec value into an argument vector ready for
// execution, resolving field codes through the provider.
//
//nolint:gocognit // one case per field code
func (e ExecValue) ToArguments(provider FieldCodeProvider) []string {
	result := make([]string, 0, len(e))

	var argument strings.Builder

	addArguments := func(args ...string) {
		if argument.Len() > 0 {
			result = append(result, argument.String())
			argument.Reset()
		}

		result = append(result, args...)
	}

	for _, parts := range e {
		for _, part := range parts {
			if !part.isFieldCode {
				argument.WriteString(part.arg)

				continue
			}

			switch part.arg {
			case "f":
				if provider.GetFile != nil {
					argument.WriteString(provider.GetFile())
				}
			case "F":
				if provider.GetFiles != nil {
					if files := provider.GetFiles(); len(files) > 0 {
						addArguments(files...)
					}
				}
			case "u":
				if provider.GetURL != nil {
					argument.WriteString(provider.GetURL())
				}
			case "U":
				if provider.GetURLs != nil {
					if urls := provider.GetURLs(); len(urls) > 0 {
						addArguments(urls...)
					}
				}
			case "i":
				if provider.GetIcon != nil {
					if icon := provider.GetIcon(); icon != "" {
						addArguments("--icon", icon)
					}
				}
			case "c":
				if provider.GetName != nil {
					argument.WriteString(provider.GetName())
				}
			case "k":
				if provider.GetDesktopFileLocation != nil {
					argument.WriteString(provider.GetDesktopFileLocation())
				}
			}
		}

		if argument.Len() > 0 {
			result = append(result, argument.String())
			argument.Reset()
		}
	}

	return result
}

// String renders the Exec value back into desktop file syntax. Arguments
// containing reserved characters are double quoted.
func (e ExecValue) String() string {
	args := make([]string, 0, len(e))

	for _, parts := range e {
		var b strings.Builder

		needsQuoting := false

		for _, part := range parts {
			if part.isFieldCode {
				b.WriteString("%" + part.arg)

				continue
			}

			if strings.ContainsAny(part.arg, reservedChars+` "%\`) {
				needsQuoting = true
			}

			b.WriteString(part.arg)
		}

		arg := b.String()
		if needsQuoting {
			quoted := strings.NewReplacer(
				`\`, `\\`,
				`"`, `\"`,
				"`", "\\`",
				`$`, `\$`,
			).Replace(arg)
			arg = `"` + quoted + `"`
		}

		args = append(args, arg)
	}

	return strings.Join(args, " ")
}
