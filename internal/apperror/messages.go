package apperror

// messages maps error codes to human-readable messages
var messages = map[Code]string{
	// General validation
	CodeRequiredField:   "Required field is missing",
	CodeInvalidInput:    "Invalid input provided",
	CodeInvalidFormat:   "Invalid data format",
	CodeInvalidState:    "Invalid state for this operation",
	CodeNotFound:        "Resource not found",
	CodeValidationError: "Validation error",

	// Configuration
	CodeConfigurationError: "Configuration error",

	// System errors
	CodeInternalError: "Internal error",
	CodeUnknownError:  "An unknown error occurred",

	// Token and network resolution
	CodeInvalidAddress: "Invalid token address",
	CodeUnknownNetwork: "Network is not configured",
	CodeUnknownToken:   "Token is not registered",
	CodeChainMismatch:  "Tokens are on different chains",

	// Pair construction
	CodeIdenticalTokens: "A pair needs two distinct tokens",
	CodeTokenNotInPair:  "Token is not part of the pair",

	// Amounts
	CodeInvalidAmount:       "Invalid token amount",
	CodeTokenAmountMismatch: "Amounts are denominated in different tokens",

	// Swap math
	CodeInsufficientLiquidity:   "Insufficient liquidity for trade size",
	CodeInsufficientInputAmount: "Input amount is too small",
	CodeInvalidPath:             "Swap path is not connected",
}
