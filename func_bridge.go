package ignition

import "context"

// FuncBridge adapts plain functions into a Bridge.
// Useful for testing and for hosts whose bridge surface already exists as
// closures. Nil fields get safe defaults: Available reports true,
// RegisterListener is a no-op, QueryStatus returns a zero Status.
type FuncBridge struct {
	AvailableFunc        func() bool
	RegisterListenerFunc func(ctx context.Context) error
	QueryStatusFunc      func(ctx context.Context) (Status, error)
}

// Available reports bridge presence via AvailableFunc.
func (b *FuncBridge) Available() bool {
	if b.AvailableFunc == nil {
		return true
	}
	return b.AvailableFunc()
}

// RegisterListener subscribes to backend events via RegisterListenerFunc.
func (b *FuncBridge) RegisterListener(ctx context.Context) error {
	if b.RegisterListenerFunc == nil {
		return nil
	}
	return b.RegisterListenerFunc(ctx)
}

// QueryStatus performs one status query via QueryStatusFunc.
func (b *FuncBridge) QueryStatus(ctx context.Context) (Status, error) {
	if b.QueryStatusFunc == nil {
		return Status{}, nil
	}
	return b.QueryStatusFunc(ctx)
}

// Ensure FuncBridge implements Bridge.
var _ Bridge = (*FuncBridge)(nil)
