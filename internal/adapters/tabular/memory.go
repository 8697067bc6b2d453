package tabular

import (
	"context"
	"sync"
)

// MemoryClient is an in-memory Client used by tests and local runs. It
// mimics the semantics of the real store: append-only, unordered reads
// across worksheets, insertion order within one.
type MemoryClient struct {
	mu     sync.RWMutex
	sheets map[string][][]string

	// failWith, when set, makes every call fail. Tests use it to exercise
	// the unavailable path.
	failWith error
}

// MemoryOption applies a configuration option to the MemoryClient.
type MemoryOption func(*MemoryClient)

// WithRows seeds a worksheet with initial rows.
func WithRows(worksheet string, rows ...[]string) MemoryOption {
	return func(c *MemoryClient) {
		c.sheets[worksheet] = append(c.sheets[worksheet], rows...)
	}
}

// WithFailure makes every subsequent call return err.
func WithFailure(err error) MemoryOption {
	return func(c *MemoryClient) {
		c.failWith = err
	}
}

// NewMemoryClient creates an in-memory tabular client.
func NewMemoryClient(opts ...MemoryOption) *MemoryClient {
	c := &MemoryClient{sheets: make(map[string][][]string)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Rows returns a copy of the worksheet rows in insertion order.
func (c *MemoryClient) Rows(ctx context.Context, worksheet string) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.failWith != nil {
		return nil, c.failWith
	}
	src := c.sheets[worksheet]
	out := make([][]string, len(src))
	for i, row := range src {
		out[i] = append([]string(nil), row...)
	}
	return out, nil
}

// Append adds one row to the worksheet.
func (c *MemoryClient) Append(ctx context.Context, worksheet string, row []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failWith != nil {
		return c.failWith
	}
	c.sheets[worksheet] = append(c.sheets[worksheet], append([]string(nil), row...))
	return nil
}

// SetFailure toggles the failure mode after construction.
func (c *MemoryClient) SetFailure(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failWith = err
}
