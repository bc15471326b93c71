package types

import (
	"cosmossdk.io/errors"
)

// AMM module sentinel errors
var (
	ErrZeroAmount            = errors.Register(ModuleName, 2, "amount must be positive")
	ErrInsufficientLiquidity = errors.Register(ModuleName, 3, "insufficient liquidity in pool")
	ErrInsufficientShares    = errors.Register(ModuleName, 4, "insufficient liquidity shares")
	ErrSlippageExceeded      = errors.Register(ModuleName, 5, "slippage exceeded")
	ErrExpired               = errors.Register(ModuleName, 6, "deadline expired")
	ErrOverflow              = errors.Register(ModuleName, 7, "arithmetic overflow")
	ErrInvariantViolation    = errors.Register(ModuleName, 8, "pool invariant violated")
	ErrPoolNotFound          = errors.Register(ModuleName, 9, "pool not found")
	ErrPoolAlreadyExists     = errors.Register(ModuleName, 10, "pool already exists")
	ErrInvalidTokenPair      = errors.Register(ModuleName, 11, "invalid token pair")
	ErrInvalidFee            = errors.Register(ModuleName, 12, "invalid fee")
	ErrInvalidAddress        = errors.Register(ModuleName, 13, "invalid address")
	ErrInvalidPoolState      = errors.Register(ModuleName, 14, "invalid pool state")
	ErrMaxPoolsReached       = errors.Register(ModuleName, 15, "maximum number of pools reached")
	ErrInvalidParams         = errors.Register(ModuleName, 16, "invalid module parameters")
)
