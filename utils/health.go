package utils

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Pinger is anything whose reachability can be probed.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Mongo     bool            `json:"mongo"`
	Redis     map[string]bool `json:"redis,omitempty"`
	CheckedAt time.Time       `json:"checkedAt"`
}

// Healthy reports whether every probed dependency answered.
func (h HealthStatus) Healthy() bool {
	if !h.Mongo {
		return false
	}
	for _, ok := range h.Redis {
		if !ok {
			return false
		}
	}
	return true
}

// HealthMonitor keeps the latest health snapshot.
type HealthMonitor struct {
	Mongo    Pinger
	Redis    map[string]Pinger
	Interval time.Duration

	mu      sync.RWMutex
	current HealthStatus
}

// Status returns latest stored health snapshot.
func (m *HealthMonitor) Status() HealthStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Check probes every dependency once and stores the result.
func (m *HealthMonitor) Check(ctx context.Context) HealthStatus {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	status := HealthStatus{CheckedAt: time.Now()}
	if m.Mongo != nil {
		status.Mongo = m.Mongo.Ping(ctx) == nil
	}
	if len(m.Redis) > 0 {
		status.Redis = make(map[string]bool, len(m.Redis))
		for name, p := range m.Redis {
			status.Redis[name] = p.Ping(ctx) == nil
		}
	}

	m.mu.Lock()
	prev := m.current
	m.current = status
	m.mu.Unlock()

	if !status.Healthy() && (prev.CheckedAt.IsZero() || prev.Healthy()) {
		GetLogger().Warn("Dependency health degraded", zap.Any("status", status))
	}
	return status
}

// Start performs periodic health checks until ctx is cancelled.
func (m *HealthMonitor) Start(ctx context.Context) {
	interval := m.Interval
	if interval <= 0 {
		interval = 60 * time.Second
	}
	m.Check(ctx)
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.Check(ctx)
			}
		}
	}()
}
