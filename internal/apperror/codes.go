package apperror

// Code represents a unique error code for the application
type Code string

// General error codes
const (
	// General validation
	CodeRequiredField   Code = "REQUIRED_FIELD"
	CodeInvalidInput    Code = "INVALID_INPUT"
	CodeInvalidFormat   Code = "INVALID_FORMAT"
	CodeInvalidState    Code = "INVALID_STATE"
	CodeNotFound        Code = "NOT_FOUND"
	CodeValidationError Code = "VALIDATION_ERROR"

	// Configuration
	CodeConfigurationError Code = "CONFIGURATION_ERROR"

	// System errors
	CodeInternalError Code = "INTERNAL_ERROR"
	CodeUnknownError  Code = "UNKNOWN_ERROR"
)

// Quoting error codes
const (
	// Token and network resolution
	CodeInvalidAddress Code = "INVALID_ADDRESS"
	CodeUnknownNetwork Code = "UNKNOWN_NETWORK"
	CodeUnknownToken   Code = "UNKNOWN_TOKEN"
	CodeChainMismatch  Code = "CHAIN_ID_MISMATCH"

	// Pair construction
	CodeIdenticalTokens Code = "IDENTICAL_TOKENS"
	CodeTokenNotInPair  Code = "TOKEN_NOT_IN_PAIR"

	// Amounts
	CodeInvalidAmount       Code = "INVALID_AMOUNT"
	CodeTokenAmountMismatch Code = "TOKEN_AMOUNT_MISMATCH"

	// Swap math
	CodeInsufficientLiquidity   Code = "INSUFFICIENT_LIQUIDITY"
	CodeInsufficientInputAmount Code = "INSUFFICIENT_INPUT_AMOUNT"
	CodeInvalidPath             Code = "INVALID_PATH"
)
