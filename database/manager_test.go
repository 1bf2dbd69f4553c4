/*
 * Copyright 2025 ApekshaTeotia.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func TestManagerConnectSQLite(t *testing.T) {
	cfg := DefaultConnectionConfig()
	cfg.Type = "sqlite"
	cfg.DBName = "file:" + filepath.Join(t.TempDir(), "manager_test.db")
	cfg.HealthCheckInterval = 0
	cfg.SlowQueryTime = 0

	m := NewManager(cfg)
	ctx := context.Background()
	if err := m.Connect(ctx); err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer func() { _ = m.Disconnect() }()

	if err := m.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}

	status := m.HealthCheck(ctx)
	if !status.Healthy || !status.Connected {
		t.Errorf("health status %+v, want healthy and connected", status)
	}
	if status.ReconnectTries != 0 {
		t.Errorf("reconnect tries %d, want 0", status.ReconnectTries)
	}

	if m.GetDB() == nil || m.GetSQLDB() == nil {
		t.Error("expected live database handles after connect")
	}

	if err := m.Disconnect(); err != nil {
		t.Fatalf("disconnect: %v", err)
	}
	if err := m.Ping(ctx); err == nil {
		t.Error("ping after disconnect should fail")
	}
}

func TestReconnectGivesUpAfterMaxTries(t *testing.T) {
	cfg := DefaultConnectionConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port = 1 // nothing listens here
	cfg.MaxReconnectTries = 3
	cfg.ConnectTimeout = 500 * time.Millisecond
	cfg.HealthCheckInterval = 0

	dm := NewManager(cfg).(*defaultManager)
	dm.backoff.baseDelay = time.Millisecond
	dm.backoff.maxDelay = 2 * time.Millisecond

	dm.scheduleReconnect(dm.generation)

	deadline := time.Now().Add(15 * time.Second)
	for time.Now().Before(deadline) {
		dm.mu.RLock()
		exhausted := dm.reconnectExhausted
		tries := dm.reconnectTries
		dm.mu.RUnlock()

		if exhausted {
			if tries != cfg.MaxReconnectTries {
				t.Fatalf("gave up after %d tries, want %d", tries, cfg.MaxReconnectTries)
			}
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("reconnect attempts did not stop after the configured cap")
}

func TestScheduleReconnectSkipsWhilePending(t *testing.T) {
	cfg := DefaultConnectionConfig()
	cfg.MaxReconnectTries = 10

	dm := NewManager(cfg).(*defaultManager)
	// Long delay keeps the first timer pending for the whole test.
	dm.backoff.baseDelay = time.Hour
	dm.backoff.maxDelay = time.Hour

	dm.scheduleReconnect(dm.generation)
	dm.scheduleReconnect(dm.generation)
	dm.scheduleReconnect(dm.generation)

	dm.mu.RLock()
	tries := dm.reconnectTries
	dm.mu.RUnlock()
	if tries != 1 {
		t.Errorf("reconnect tries %d, want 1 while a timer is pending", tries)
	}

	if err := dm.Disconnect(); err != nil {
		t.Fatalf("disconnect: %v", err)
	}
	dm.mu.RLock()
	timer := dm.reconnectTimer
	dm.mu.RUnlock()
	if timer != nil {
		t.Error("disconnect should cancel the pending reconnect timer")
	}
}

func TestDisconnectStopsHealthMonitoring(t *testing.T) {
	cfg := DefaultConnectionConfig()
	cfg.Type = "sqlite"
	cfg.DBName = "file:" + filepath.Join(t.TempDir(), "monitor_test.db")
	cfg.HealthCheckInterval = time.Millisecond
	cfg.EnableReconnect = true
	cfg.SlowQueryTime = 0

	dm := NewManager(cfg).(*defaultManager)
	dm.backoff.baseDelay = time.Millisecond
	dm.backoff.maxDelay = 2 * time.Millisecond
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := dm.Connect(ctx); err != nil {
			t.Fatalf("connect %d: %v", i, err)
		}
		if err := dm.Disconnect(); err != nil {
			t.Fatalf("disconnect %d: %v", i, err)
		}

		// Give any stray health tick or reconnect timer time to fire.
		time.Sleep(30 * time.Millisecond)

		if db := dm.GetDB(); db != nil {
			t.Fatalf("iteration %d: manager reconnected itself after explicit disconnect", i)
		}
		dm.mu.RLock()
		connected := dm.connected
		timer := dm.reconnectTimer
		dm.mu.RUnlock()
		if connected {
			t.Fatalf("iteration %d: still marked connected after disconnect", i)
		}
		if timer != nil {
			t.Fatalf("iteration %d: reconnect timer armed after disconnect", i)
		}
	}
}

func TestStaleReconnectTimerIsIgnoredAfterDisconnect(t *testing.T) {
	cfg := DefaultConnectionConfig()
	cfg.Type = "sqlite"
	cfg.DBName = "file:" + filepath.Join(t.TempDir(), "stale_timer_test.db")
	cfg.HealthCheckInterval = 0
	cfg.SlowQueryTime = 0

	dm := NewManager(cfg).(*defaultManager)
	dm.backoff.baseDelay = 20 * time.Millisecond
	dm.backoff.maxDelay = 20 * time.Millisecond

	// Arm a reconnect for the current generation, then invalidate it.
	staleGen := dm.generation
	dm.scheduleReconnect(staleGen)
	if err := dm.Disconnect(); err != nil {
		t.Fatalf("disconnect: %v", err)
	}

	// A racing caller holding the old generation must not re-arm anything.
	dm.scheduleReconnect(staleGen)
	dm.mu.RLock()
	timer := dm.reconnectTimer
	dm.mu.RUnlock()
	if timer != nil {
		t.Error("stale generation armed a reconnect timer after disconnect")
	}

	time.Sleep(60 * time.Millisecond)

	if db := dm.GetDB(); db != nil {
		t.Error("stale reconnect timer dialed a disconnected manager")
	}
}

func TestConnectFailureReleasesPool(t *testing.T) {
	cfg := DefaultConnectionConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port = 1 // nothing listens here
	cfg.ConnectTimeout = 500 * time.Millisecond
	cfg.HealthCheckInterval = 0

	dm := NewManager(cfg).(*defaultManager)
	if err := dm.Connect(context.Background()); err == nil {
		t.Fatal("connect to a closed port should fail")
	}

	if dm.GetDB() != nil || dm.GetSQLDB() != nil {
		t.Error("failed connect left database handles behind")
	}
}

func TestSQLiteDSNEnablesForeignKeys(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"", "file::memory:?cache=shared&_pragma=foreign_keys(1)"},
		{":memory:", "file::memory:?cache=shared&_pragma=foreign_keys(1)"},
		{"quiz", "file:quiz.db?_pragma=foreign_keys(1)"},
		{"file:/tmp/quiz.db", "file:/tmp/quiz.db?_pragma=foreign_keys(1)"},
		{"file:/tmp/quiz.db?cache=shared", "file:/tmp/quiz.db?cache=shared&_pragma=foreign_keys(1)"},
	}

	for _, tt := range tests {
		if got := sqliteDSN(tt.name); got != tt.want {
			t.Errorf("sqliteDSN(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestManagerSuccessfulConnectResetsReconnectState(t *testing.T) {
	cfg := DefaultConnectionConfig()
	cfg.Type = "sqlite"
	cfg.DBName = "file:" + filepath.Join(t.TempDir(), "reset_test.db")
	cfg.HealthCheckInterval = 0
	cfg.SlowQueryTime = 0

	dm := NewManager(cfg).(*defaultManager)
	dm.reconnectTries = 7
	dm.reconnectExhausted = true

	if err := dm.Connect(context.Background()); err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer func() { _ = dm.Disconnect() }()

	dm.mu.RLock()
	tries, exhausted := dm.reconnectTries, dm.reconnectExhausted
	dm.mu.RUnlock()
	if tries != 0 || exhausted {
		t.Errorf("reconnect state after connect: tries=%d exhausted=%v, want 0/false", tries, exhausted)
	}
}
