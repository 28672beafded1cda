package apperror

import "errors"

// Kind classifies an error by who has to act on it.
type Kind int

const (
	KindInternal      Kind = iota // a bug or failed dependency
	KindInvalidInput              // the caller passed bad tokens, amounts or reserves
	KindNotFound                  // an unknown network or token
	KindConfiguration             // the config file or environment is wrong
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindNotFound:
		return "not_found"
	case KindConfiguration:
		return "configuration"
	default:
		return "internal"
	}
}

// Process exit statuses per kind. 78 is EX_CONFIG from sysexits.h.
const (
	ExitInternal      = 1
	ExitInvalidInput  = 2
	ExitNotFound      = 3
	ExitConfiguration = 78
)

// kindOf gives the default kind of a code.
func kindOf(code Code) Kind {
	switch code {
	case CodeUnknownNetwork, CodeUnknownToken, CodeNotFound:
		return KindNotFound
	case CodeConfigurationError:
		return KindConfiguration
	case CodeInternalError, CodeUnknownError:
		return KindInternal
	default:
		return KindInvalidInput
	}
}

// ExitCode maps err to a process exit status: 0 for nil, the kind's status
// for an AppError and ExitInternal for anything else.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return ExitInternal
	}
	switch appErr.Kind {
	case KindInvalidInput:
		return ExitInvalidInput
	case KindNotFound:
		return ExitNotFound
	case KindConfiguration:
		return ExitConfiguration
	default:
		return ExitInternal
	}
}
