package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockTxManager runs fn directly unless an error is configured for RunInTx. When fn
// fails, Rollbacks is incremented and the error returned as a real manager would.
type MockTxManager struct {
	mock.Mock
	Commits   int
	Rollbacks int
}

func (m *MockTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}

	if err := fn(ctx); err != nil {
		m.Rollbacks++
		return err
	}

	m.Commits++
	return nil
}
