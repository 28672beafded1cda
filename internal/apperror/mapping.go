package apperror

import "errors"

// Rule binds a sentinel error to the code it surfaces as.
type Rule struct {
	Err  error
	Code Code
}

// Mapping translates sentinel errors into coded AppErrors. Rules are
// checked in order with errors.Is, so list the more specific ones first.
type Mapping []Rule

// Code returns the code of the first matching rule, or fallback.
func (m Mapping) Code(err error, fallback Code) Code {
	for _, r := range m {
		if errors.Is(err, r.Err) {
			return r.Code
		}
	}
	return fallback
}

// Wrap returns err as an AppError. Errors that already are AppErrors are
// returned unchanged; anything no rule matches becomes fallback.
func (m Mapping) Wrap(err error, fallback Code, context string) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return New(m.Code(err, fallback), WithContext(context), WithCause(err))
}
