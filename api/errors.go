package api

import (
	"errors"
	"fmt"
	"net/http"

	errorsmod "cosmossdk.io/errors"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/gin-gonic/gin"

	"github.com/paw-chain/pawswap/x/amm/types"
)

var errStatus = []struct {
	err    error
	status int
}{
	{types.ErrPoolNotFound, http.StatusNotFound},
	{types.ErrZeroAmount, http.StatusBadRequest},
	{types.ErrInvalidTokenPair, http.StatusBadRequest},
	{types.ErrInvalidFee, http.StatusBadRequest},
	{types.ErrInvalidAddress, http.StatusBadRequest},
	{sdkerrors.ErrInvalidCoins, http.StatusBadRequest},
	{types.ErrPoolAlreadyExists, http.StatusConflict},
	{types.ErrMaxPoolsReached, http.StatusConflict},
	{types.ErrInvariantViolation, http.StatusInternalServerError},
	{types.ErrInvalidPoolState, http.StatusInternalServerError},
}

// statusFor maps a keeper error to an HTTP status. Remaining rejections,
// slippage and deadline among them, are the caller's to fix.
func statusFor(err error) int {
	for _, e := range errStatus {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	codespace, _, _ := errorsmod.ABCIInfo(err, false)
	if codespace == errorsmod.UndefinedCodespace {
		return http.StatusInternalServerError
	}
	return http.StatusUnprocessableEntity
}

func abortWithError(c *gin.Context, err error) {
	codespace, code, _ := errorsmod.ABCIInfo(err, false)
	c.AbortWithStatusJSON(statusFor(err), ErrorResponse{
		Error: err.Error(),
		Code:  fmt.Sprintf("%s:%d", codespace, code),
	})
}

func badRequest(c *gin.Context, msg string, err error) {
	resp := ErrorResponse{Error: msg, Code: "BAD_REQUEST"}
	if err != nil {
		resp.Details = err.Error()
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, resp)
}
