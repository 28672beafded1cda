package app

import (
	"github.com/fd1az/pairquote/business/amm/domain"
	"github.com/fd1az/pairquote/internal/apperror"
	"github.com/fd1az/pairquote/internal/asset"
)

var errorCodes = apperror.Mapping{
	{Err: domain.ErrChainMismatch, Code: apperror.CodeChainMismatch},
	{Err: domain.ErrIdenticalTokens, Code: apperror.CodeIdenticalTokens},
	{Err: domain.ErrTokenNotInPair, Code: apperror.CodeTokenNotInPair},
	{Err: domain.ErrInsufficientInputAmount, Code: apperror.CodeInsufficientInputAmount},
	{Err: domain.ErrInsufficientLiquidity, Code: apperror.CodeInsufficientLiquidity},
	{Err: domain.ErrLiquidityExceedsSupply, Code: apperror.CodeInvalidAmount},
	{Err: domain.ErrMissingKLast, Code: apperror.CodeRequiredField},
	{Err: domain.ErrInvalidDeployment, Code: apperror.CodeConfigurationError},
	{Err: domain.ErrInvalidFee, Code: apperror.CodeConfigurationError},
	{Err: asset.ErrTokenMismatch, Code: apperror.CodeTokenAmountMismatch},
	{Err: asset.ErrInvalidAddress, Code: apperror.CodeInvalidAddress},
	{Err: asset.ErrUnknownToken, Code: apperror.CodeUnknownToken},
	{Err: asset.ErrAmbiguousSymbol, Code: apperror.CodeUnknownToken},
	{Err: asset.ErrAmountOverflow, Code: apperror.CodeInvalidAmount},
	{Err: asset.ErrNegativeAmount, Code: apperror.CodeInvalidAmount},
	{Err: asset.ErrNegativeResult, Code: apperror.CodeInvalidAmount},
	{Err: asset.ErrTooManyDecimals, Code: apperror.CodeInvalidAmount},
	{Err: asset.ErrInvalidAmount, Code: apperror.CodeInvalidAmount},
	{Err: asset.ErrNilRaw, Code: apperror.CodeInvalidAmount},
	{Err: asset.ErrNilToken, Code: apperror.CodeRequiredField},
}

// wrap turns a domain error into its coded AppError.
func wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return errorCodes.Wrap(err, apperror.CodeInternalError, context)
}
