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
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/mysqldialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/uptrace/bun/extra/bundebug"
)

type defaultManager struct {
	config             *ConnectionConfig
	db                 *bun.DB
	sqlDB              *sql.DB
	logger             Logger
	mu                 sync.RWMutex
	connected          bool
	lastError          error
	lastHealthCheck    time.Time
	healthStatus       *HealthStatus
	backoff            *reconnectBackoff
	reconnectTries     int
	reconnectTimer     *time.Timer
	reconnectExhausted bool
	stopHealthCheck    chan struct{}
	healthCheckRunning bool
	// generation advances on every explicit Disconnect; pending reconnect
	// timers and health loops from earlier generations become no-ops.
	generation uint64
}

// NewManager returns a Manager backed by Bun. If config is nil, the
// default configuration is used.
func NewManager(config *ConnectionConfig) Manager {
	if config == nil {
		config = DefaultConnectionConfig()
	}
	return &defaultManager{
		config:       config,
		healthStatus: &HealthStatus{},
		backoff:      newReconnectBackoff(config.ReconnectBaseDelay, config.ReconnectMaxDelay),
	}
}

func (dm *defaultManager) Connect(ctx context.Context) error {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	if dm.connected && dm.db != nil {
		return nil
	}

	var err error
	dm.sqlDB, dm.db, err = dm.createConnection()
	if err != nil {
		dm.lastError = err
		return fmt.Errorf("failed to create database connection: %w", err)
	}

	dm.configureConnectionPool()

	ctxTimeout, cancel := context.WithTimeout(ctx, dm.config.ConnectTimeout)
	defer cancel()

	if err := dm.db.PingContext(ctxTimeout); err != nil {
		dm.lastError = err
		_ = dm.db.Close()
		dm.db = nil
		dm.sqlDB = nil
		if dm.logger != nil {
			dm.logger.Error(DescribeConnectionError(err))
		}
		return fmt.Errorf("database connection test failed: %w", err)
	}

	dm.connected = true
	dm.lastError = nil
	dm.reconnectTries = 0
	dm.reconnectExhausted = false

	if dm.config.HealthCheckInterval > 0 {
		dm.startHealthCheck()
	}

	if dm.logger != nil {
		dm.logger.Info("Database connected successfully:", "type", dm.config.Type, "host", dm.config.Host)
	}
	return nil
}

func (dm *defaultManager) createConnection() (*sql.DB, *bun.DB, error) {
	var sqlDB *sql.DB
	var db *bun.DB
	var err error

	if dm.config.ConnectTimeout.Seconds() <= 0 {
		dm.config.ConnectTimeout = 30 * time.Second
	}

	switch dm.config.Type {
	case "mysql":
		sqlDB, db, err = dm.createMySQLConnection()
	case "postgres", "postgresql":
		sqlDB, db, err = dm.createPostgreSQLConnection()
	case "sqlite", "sqlite3":
		sqlDB, db, err = dm.createSQLiteConnection()
	default:
		return nil, nil, fmt.Errorf("unsupported database type: %s", dm.config.Type)
	}

	if err != nil {
		return nil, nil, err
	}

	if dm.config.EnableQueryLog {
		db.AddQueryHook(bundebug.NewQueryHook(
			bundebug.WithVerbose(true),
			bundebug.FromEnv("BUNDEBUG"),
		))
	}

	if dm.config.SlowQueryTime > 0 {
		db.AddQueryHook(NewSlowQueryHook(dm.config.SlowQueryTime, dm.logger))
	}

	return sqlDB, db, nil
}

func (dm *defaultManager) createMySQLConnection() (*sql.DB, *bun.DB, error) {
	charset := dm.config.Charset
	if charset == "" {
		charset = "utf8mb4"
	}
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=Local&timeout=%s&readTimeout=%s&writeTimeout=%s",
		dm.config.Username,
		dm.config.Password,
		dm.config.Host,
		dm.config.Port,
		dm.config.DBName,
		charset,
		dm.config.ConnectTimeout,
		dm.config.ReadTimeout,
		dm.config.WriteTimeout,
	)
	if dm.config.TLS {
		dsn += "&tls=true"
	}

	sqlDB, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, nil, err
	}

	db := bun.NewDB(sqlDB, mysqldialect.New())
	return sqlDB, db, nil
}

func (dm *defaultManager) createPostgreSQLConnection() (*sql.DB, *bun.DB, error) {
	sslMode := dm.config.SSLMode
	if sslMode == "" {
		if dm.config.TLS {
			sslMode = "require"
		} else {
			sslMode = "disable"
		}
	}

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s&connect_timeout=%d",
		dm.config.Username,
		dm.config.Password,
		dm.config.Host,
		dm.config.Port,
		dm.config.DBName,
		sslMode,
		int(dm.config.ConnectTimeout.Seconds()),
	)

	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, nil, err
	}

	db := bun.NewDB(sqlDB, pgdialect.New())
	return sqlDB, db, nil
}

// sqliteDSN normalizes a database name into a file: DSN with referential
// actions enabled. Plain names and :memory: get the same pragma; cascades
// must hold on every path.
func sqliteDSN(name string) string {
	dsn := name
	switch {
	case dsn == "", dsn == ":memory:":
		dsn = "file::memory:?cache=shared"
	case strings.HasPrefix(dsn, "file:"):
		// already a DSN
	default:
		dsn = fmt.Sprintf("file:%s.db", dsn)
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&_pragma=foreign_keys(1)"
	}
	return dsn + "?_pragma=foreign_keys(1)"
}

func (dm *defaultManager) createSQLiteConnection() (*sql.DB, *bun.DB, error) {
	sqlDB, err := sql.Open(sqliteshim.ShimName, sqliteDSN(dm.config.DBName))
	if err != nil {
		return nil, nil, err
	}

	db := bun.NewDB(sqlDB, sqlitedialect.New())
	return sqlDB, db, nil
}

func (dm *defaultManager) configureConnectionPool() {
	if dm.sqlDB == nil {
		return
	}

	dm.sqlDB.SetMaxIdleConns(dm.config.MaxIdleConns)
	dm.sqlDB.SetMaxOpenConns(dm.config.MaxOpenConns)
	dm.sqlDB.SetConnMaxLifetime(dm.config.ConnMaxLifetime)
	dm.sqlDB.SetConnMaxIdleTime(dm.config.ConnMaxIdleTime)
}

// Disconnect closes the connection and permanently cancels any health
// monitoring or reconnect attempts scheduled for it.
func (dm *defaultManager) Disconnect() error {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	dm.generation++
	return dm.closeLocked()
}

// closeLocked tears down the connection, health loop, and pending reconnect
// timer. The caller must hold dm.mu.
func (dm *defaultManager) closeLocked() error {
	if dm.healthCheckRunning {
		close(dm.stopHealthCheck)
		dm.healthCheckRunning = false
	}

	if dm.reconnectTimer != nil {
		dm.reconnectTimer.Stop()
		dm.reconnectTimer = nil
	}

	if dm.db != nil {
		err := dm.db.Close()
		dm.db = nil
		dm.sqlDB = nil
		dm.connected = false

		if dm.logger != nil {
			if err != nil {
				dm.logger.Error("Failed to close database connection", "error", err)
			} else {
				dm.logger.Info("Database connection closed")
			}
		}

		return err
	}

	return nil
}

// Reconnect tears down the current connection and dials again. Unlike
// Disconnect it does not advance the generation, so a failed attempt can
// keep the retry chain alive.
func (dm *defaultManager) Reconnect(ctx context.Context) error {
	if dm.logger != nil {
		dm.logger.Info("Attempting to reconnect to the database")
	}

	dm.mu.Lock()
	err := dm.closeLocked()
	dm.mu.Unlock()
	if err != nil && dm.logger != nil {
		dm.logger.Warn("Error disconnecting existing connection", "error", err)
	}

	return dm.Connect(ctx)
}

func (dm *defaultManager) Ping(ctx context.Context) error {
	dm.mu.RLock()
	db := dm.db
	dm.mu.RUnlock()

	if db == nil {
		return fmt.Errorf("database not connected")
	}

	return db.PingContext(ctx)
}

func (dm *defaultManager) GetDB() *bun.DB {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	return dm.db
}

func (dm *defaultManager) GetSQLDB() *sql.DB {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	return dm.sqlDB
}

func (dm *defaultManager) HealthCheck(ctx context.Context) *HealthStatus {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	start := time.Now()
	status := &HealthStatus{
		LastCheckTime:  start,
		Connected:      dm.connected,
		ReconnectTries: dm.reconnectTries,
	}

	if dm.db == nil {
		status.Healthy = false
		status.LastError = "Database not initialized"
		return status
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, time.Second*5)
	defer cancel()

	err := dm.db.PingContext(ctxTimeout)
	status.ResponseTime = time.Since(start)

	if err != nil {
		status.Healthy = false
		status.Connected = false
		status.LastError = err.Error()
		dm.lastError = err
	} else {
		status.Healthy = true
		status.Connected = true
		dm.lastError = nil
	}

	if dm.sqlDB != nil {
		stats := dm.sqlDB.Stats()
		status.ActiveConns = stats.InUse
		status.IdleConns = stats.Idle
		status.MaxOpenConns = stats.MaxOpenConnections
	}

	dm.healthStatus = status
	dm.lastHealthCheck = start

	return status
}

// startHealthCheck launches the periodic health check loop. The caller must
// hold dm.mu. Disconnect closes the per-run stop channel and a later Connect
// starts a fresh loop.
func (dm *defaultManager) startHealthCheck() {
	if dm.healthCheckRunning {
		return
	}
	dm.healthCheckRunning = true
	stop := make(chan struct{})
	dm.stopHealthCheck = stop
	gen := dm.generation

	go func() {
		ticker := time.NewTicker(dm.config.HealthCheckInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
				status := dm.HealthCheck(ctx)
				cancel()
				// Disconnect may close the channel while the check
				// above waits on the manager lock.
				select {
				case <-stop:
					return
				default:
				}
				if !status.Healthy && dm.config.EnableReconnect {
					dm.scheduleReconnect(gen)
				}

			case <-stop:
				return
			}
		}
	}()
}

// scheduleReconnect arms a one-shot timer for the next reconnect attempt.
// The delay grows exponentially with each consecutive failure and attempts
// stop permanently once MaxReconnectTries is exhausted. gen pins the attempt
// to the connection generation it serves; an explicit Disconnect advances
// the generation and strands the chain.
func (dm *defaultManager) scheduleReconnect(gen uint64) {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	if dm.generation != gen {
		return
	}
	if dm.reconnectTimer != nil {
		return
	}
	if dm.reconnectTries >= dm.config.MaxReconnectTries {
		if !dm.reconnectExhausted {
			dm.reconnectExhausted = true
			if dm.logger != nil {
				dm.logger.Error("Max reconnect attempts reached, giving up", "tries", dm.reconnectTries)
			}
		}
		return
	}

	dm.reconnectTries++
	attempt := dm.reconnectTries
	delay := dm.backoff.Delay(attempt)
	if dm.logger != nil {
		dm.logger.Info("Scheduling database reconnect", "try", attempt, "delay", delay)
	}

	dm.reconnectTimer = time.AfterFunc(delay, func() {
		dm.mu.Lock()
		dm.reconnectTimer = nil
		stale := dm.generation != gen
		dm.mu.Unlock()
		if stale {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), dm.config.ConnectTimeout)
		defer cancel()

		if err := dm.Reconnect(ctx); err != nil {
			if dm.logger != nil {
				dm.logger.Error("Reconnect failed", "error", DescribeConnectionError(err), "try", attempt)
			}
			dm.scheduleReconnect(gen)
			return
		}
		if dm.logger != nil {
			dm.logger.Info("Reconnect succeeded", "try", attempt)
		}
	})
}

func (dm *defaultManager) GetStats() *DBStats {
	dm.mu.RLock()
	sqlDB := dm.sqlDB
	dm.mu.RUnlock()

	if sqlDB == nil {
		return &DBStats{}
	}

	stats := sqlDB.Stats()
	return &DBStats{
		MaxOpenConns:      stats.MaxOpenConnections,
		OpenConns:         stats.OpenConnections,
		InUse:             stats.InUse,
		Idle:              stats.Idle,
		WaitCount:         stats.WaitCount,
		WaitDuration:      stats.WaitDuration,
		MaxIdleClosed:     stats.MaxIdleClosed,
		MaxIdleTimeClosed: stats.MaxIdleTimeClosed,
		MaxLifetimeClosed: stats.MaxLifetimeClosed,
	}
}

func (dm *defaultManager) RunMigrations(ctx context.Context) error {
	db := dm.GetDB()
	if db == nil {
		return fmt.Errorf("database not initialized")
	}

	migrationManager := NewMigrationManager(db, dm.logger)

	return migrationManager.RunMigrations(ctx)
}

func (dm *defaultManager) Seed(ctx context.Context) error {
	db := dm.GetDB()
	if db == nil {
		return fmt.Errorf("database not initialized")
	}
	migrationManager := NewMigrationManager(db, dm.logger)
	return migrationManager.Seed(ctx)
}

func (dm *defaultManager) SetLogger(logger Logger) {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	dm.logger = logger
}
