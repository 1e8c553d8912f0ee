// Package token wraps the external asset contracts the escrow moves
// value through. Every call names the token by its asset identifier;
// the leased asset and the payment asset resolve through the same
// Interface.
package token

import (
	"context"
	"errors"
	"math"
)

var (
	ErrUnknownAsset          = errors.New("no token is registered under this asset identifier")
	ErrInsufficientBalance   = errors.New("holder balance is below the requested amount")
	ErrInsufficientAllowance = errors.New("spender allowance is below the requested amount")
	ErrHolderDeauthorized    = errors.New("holder is deauthorized for transfers")
	ErrNotAdmin              = errors.New("operator is not the token's administrator")
)

type Interface interface {
	Balance(ctx context.Context, asset, holder string) (int64, error)
	// Transfer moves amount directly; the transfer fails when the
	// holder's authorization flag is cleared.
	Transfer(ctx context.Context, asset, from, to string, amount int64) error
	// TransferFrom pulls amount on behalf of spender against a prior
	// allowance from the holder.
	TransferFrom(ctx context.Context, asset, spender, from, to string, amount int64) error
	IncreaseAllowance(ctx context.Context, asset, from, spender string, amount int64) error
	SetAdmin(ctx context.Context, asset, newAdmin string) error
	SetAuthorized(ctx context.Context, asset, holder string, authorized bool) error
	Authorized(ctx context.Context, asset, holder string) (bool, error)
}

// Pull moves amount from the holder to the recipient with the escrow
// account acting as spender. The allowance is raised by twice the pull
// amount first, so repeated pulls keep approved headroom. The doubling
// is clamped to the pull amount when it would overflow int64.
func Pull(ctx context.Context, t Interface, asset, escrow, from, to string, amount int64) error {
	bump := amount * 2
	if amount > math.MaxInt64/2 {
		bump = amount
	}
	if err := t.IncreaseAllowance(ctx, asset, from, escrow, bump); err != nil {
		return err
	}
	return t.TransferFrom(ctx, asset, escrow, from, to, amount)
}
