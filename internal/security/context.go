package security

import "context"

type contextKey string

const accountKey contextKey = "authenticated-account"

// WithAccount records the authenticated account address on the context.
func WithAccount(ctx context.Context, account string) context.Context {
	return context.WithValue(ctx, accountKey, account)
}

// AccountFromContext returns the authenticated account address, if any.
func AccountFromContext(ctx context.Context) (string, bool) {
	account, ok := ctx.Value(accountKey).(string)
	return account, ok && account != ""
}
