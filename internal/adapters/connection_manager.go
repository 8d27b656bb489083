package adapters

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/supesu/raydium-sniper/pkg/logger"
)

// ConnectionState represents the state of a connection
type ConnectionState int32

const (
	// StateDisconnected indicates the connection is not established
	StateDisconnected ConnectionState = iota
	// StateConnecting indicates the connection is being established
	StateConnecting
	// StateConnected indicates the connection is established and healthy
	StateConnected
	// StateReconnecting indicates the connection is being re-established
	StateReconnecting
	// StateFailed indicates the connection has failed and won't retry
	StateFailed
)

func (s ConnectionState) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateReconnecting:
		return "reconnecting"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ErrNotConnected is returned by IsHealthy while the connection is down
var ErrNotConnected = errors.New("connection is not in connected state")

// ConnectionManager defines the interface for managing connections with auto-reconnection
type ConnectionManager interface {
	// Connect establishes the connection, retrying with backoff
	Connect(ctx context.Context) error

	// Disconnect closes the connection
	Disconnect() error

	// GetState returns the current connection state
	GetState() ConnectionState

	// IsHealthy checks if the connection is healthy
	IsHealthy(ctx context.Context) error

	// Run keeps the connection alive and serves it until ctx is cancelled
	Run(ctx context.Context, serve func(ctx context.Context) error) error
}

// StateObserver is notified on every state change
type StateObserver func(name string, state ConnectionState)

// BaseConnectionManager provides common functionality for connection managers
type BaseConnectionManager struct {
	name     string
	logger   logger.Logger
	config   ConnectionConfig
	state    atomic.Int32
	observer StateObserver

	connectFunc     func(ctx context.Context) error
	disconnectFunc  func() error
	healthCheckFunc func(ctx context.Context) error
}

// NewBaseConnectionManager creates a new base connection manager
func NewBaseConnectionManager(
	name string,
	logger logger.Logger,
	config ConnectionConfig,
	connectFunc func(ctx context.Context) error,
	disconnectFunc func() error,
	healthCheckFunc func(ctx context.Context) error,
) *BaseConnectionManager {
	return &BaseConnectionManager{
		name:            name,
		logger:          logger.WithField("connection", name),
		config:          config,
		connectFunc:     connectFunc,
		disconnectFunc:  disconnectFunc,
		healthCheckFunc: healthCheckFunc,
	}
}

// SetObserver installs a callback for state changes
func (m *BaseConnectionManager) SetObserver(observer StateObserver) {
	m.observer = observer
}

// Connect implements ConnectionManager.Connect
func (m *BaseConnectionManager) Connect(ctx context.Context) error {
	m.setState(StateConnecting)

	if err := m.retryConnect(ctx); err != nil {
		m.setState(StateFailed)
		return err
	}

	m.setState(StateConnected)
	return nil
}

// Disconnect implements ConnectionManager.Disconnect
func (m *BaseConnectionManager) Disconnect() error {
	m.setState(StateDisconnected)

	if m.disconnectFunc != nil {
		return m.disconnectFunc()
	}
	return nil
}

// GetState implements ConnectionManager.GetState
func (m *BaseConnectionManager) GetState() ConnectionState {
	return ConnectionState(m.state.Load())
}

// IsHealthy implements ConnectionManager.IsHealthy
func (m *BaseConnectionManager) IsHealthy(ctx context.Context) error {
	if m.GetState() != StateConnected {
		return fmt.Errorf("%s: %w", m.name, ErrNotConnected)
	}

	if m.healthCheckFunc != nil {
		return m.healthCheckFunc(ctx)
	}
	return nil
}

// Run connects, calls serve and reconnects whenever serve returns an error.
// It returns nil once ctx is cancelled, or the last error when reconnecting fails.
func (m *BaseConnectionManager) Run(ctx context.Context, serve func(ctx context.Context) error) error {
	if err := m.Connect(ctx); err != nil {
		return err
	}

	for {
		err := serve(ctx)

		if disconnectErr := m.Disconnect(); disconnectErr != nil {
			m.logger.WithError(disconnectErr).Debug("Error while closing connection")
		}

		if ctx.Err() != nil {
			return nil
		}

		m.logger.WithError(err).Warn("Connection lost, reconnecting")
		m.setState(StateReconnecting)

		if err := m.retryConnect(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			m.setState(StateFailed)
			return err
		}

		m.setState(StateConnected)
		m.logger.Info("Successfully reconnected")
	}
}

// retryConnect calls connectFunc with exponential backoff
func (m *BaseConnectionManager) retryConnect(ctx context.Context) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = m.config.BaseRetryDelay
	policy.MaxInterval = m.config.MaxRetryDelay

	attempt := 0
	operation := func() (struct{}, error) {
		attempt++
		if err := m.connectFunc(ctx); err != nil {
			if ctx.Err() != nil {
				return struct{}{}, backoff.Permanent(ctx.Err())
			}
			return struct{}{}, err
		}
		return struct{}{}, nil
	}

	notify := func(err error, wait time.Duration) {
		m.logger.WithError(err).WithFields(map[string]interface{}{
			"attempt": attempt,
			"backoff": wait.String(),
		}).Warn("Connection attempt failed")
	}

	_, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(uint(m.config.MaxRetries)),
		backoff.WithNotify(notify))
	if err != nil {
		return fmt.Errorf("failed to connect %s after %d attempts: %w", m.name, attempt, err)
	}
	return nil
}

// setState updates the connection state and notifies the observer
func (m *BaseConnectionManager) setState(state ConnectionState) {
	m.state.Store(int32(state))
	if m.observer != nil {
		m.observer(m.name, state)
	}
}

// ConnectionConfig holds configuration for connection managers
type ConnectionConfig struct {
	MaxRetries     int
	BaseRetryDelay time.Duration
	MaxRetryDelay  time.Duration
}

// DefaultConnectionConfig returns default connection configuration
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		MaxRetries:     10,
		BaseRetryDelay: 1 * time.Second,
		MaxRetryDelay:  30 * time.Second,
	}
}
