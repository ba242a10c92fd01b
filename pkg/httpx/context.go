package httpx

import (
	"context"

	"github.com/clearlens/camwatch/pkg/api"
)

type ctxKey string

const (
	CtxKeyAccount ctxKey = "account"
)

// ContextWithAccount stores the resolved caller identity in the context.
func ContextWithAccount(ctx context.Context, acct *api.Account) context.Context {
	return context.WithValue(ctx, CtxKeyAccount, acct)
}

// AccountFromContext retrieves the caller identity injected by the
// authentication middleware. The bool is false on unauthenticated requests.
func AccountFromContext(ctx context.Context) (*api.Account, bool) {
	acct, ok := ctx.Value(CtxKeyAccount).(*api.Account)
	return acct, ok
}
