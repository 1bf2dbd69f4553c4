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
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// yamlConfig is the YAML file structure. Durations are strings parsed with
// time.ParseDuration ("10s", "1h").
type yamlConfig struct {
	Connection struct {
		Type                string `yaml:"type"`
		Host                string `yaml:"host"`
		Port                int    `yaml:"port"`
		Username            string `yaml:"username"`
		Password            string `yaml:"password"`
		DBName              string `yaml:"dbname"`
		Charset             string `yaml:"charset"`
		TLS                 bool   `yaml:"tls"`
		SSLMode             string `yaml:"sslmode"`
		MaxIdleConns        int    `yaml:"max_idle_conns"`
		MaxOpenConns        int    `yaml:"max_open_conns"`
		ConnMaxLifetime     string `yaml:"conn_max_lifetime"`
		ConnMaxIdleTime     string `yaml:"conn_max_idle_time"`
		ConnectTimeout      string `yaml:"connect_timeout"`
		ReadTimeout         string `yaml:"read_timeout"`
		WriteTimeout        string `yaml:"write_timeout"`
		EnableReconnect     *bool  `yaml:"enable_reconnect"`
		MaxReconnectTries   int    `yaml:"max_reconnect_tries"`
		ReconnectBaseDelay  string `yaml:"reconnect_base_delay"`
		ReconnectMaxDelay   string `yaml:"reconnect_max_delay"`
		HealthCheckInterval string `yaml:"health_check_interval"`
		EnableQueryLog      bool   `yaml:"enable_query_log"`
		SlowQueryTime       string `yaml:"slow_query_time"`
	} `yaml:"connection"`
	Migration MigrationConfig `yaml:"migration"`
	Seed      SeedConfig      `yaml:"seed"`
}

// LoadConfig builds the database configuration with precedence:
// environment variables > YAML file > defaults. A .env file in the working
// directory is loaded first if present. Environment overrides for the
// connection itself are applied later by the factory.
func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ConnectionConfig: *DefaultConnectionConfig(),
		SeedConfig:       SeedConfig{Environment: "development"},
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fileCfg yamlConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyYAMLConnection(&cfg.ConnectionConfig, &fileCfg)
	cfg.MigrationConfig = fileCfg.Migration
	if fileCfg.Seed.Environment != "" {
		cfg.SeedConfig = fileCfg.Seed
	} else {
		env := cfg.SeedConfig.Environment
		cfg.SeedConfig = fileCfg.Seed
		cfg.SeedConfig.Environment = env
	}

	return cfg, nil
}

func applyYAMLConnection(cc *ConnectionConfig, fileCfg *yamlConfig) {
	conn := &fileCfg.Connection
	if conn.Type != "" {
		cc.Type = conn.Type
	}
	if conn.Host != "" {
		cc.Host = conn.Host
	}
	if conn.Port != 0 {
		cc.Port = conn.Port
	}
	if conn.Username != "" {
		cc.Username = conn.Username
	}
	if conn.Password != "" {
		cc.Password = conn.Password
	}
	if conn.DBName != "" {
		cc.DBName = conn.DBName
	}
	if conn.Charset != "" {
		cc.Charset = conn.Charset
	}
	cc.TLS = conn.TLS
	if conn.SSLMode != "" {
		cc.SSLMode = conn.SSLMode
	}
	if conn.MaxIdleConns != 0 {
		cc.MaxIdleConns = conn.MaxIdleConns
	}
	if conn.MaxOpenConns != 0 {
		cc.MaxOpenConns = conn.MaxOpenConns
	}
	applyDuration(&cc.ConnMaxLifetime, conn.ConnMaxLifetime)
	applyDuration(&cc.ConnMaxIdleTime, conn.ConnMaxIdleTime)
	applyDuration(&cc.ConnectTimeout, conn.ConnectTimeout)
	applyDuration(&cc.ReadTimeout, conn.ReadTimeout)
	applyDuration(&cc.WriteTimeout, conn.WriteTimeout)
	if conn.EnableReconnect != nil {
		cc.EnableReconnect = *conn.EnableReconnect
	}
	if conn.MaxReconnectTries != 0 {
		cc.MaxReconnectTries = conn.MaxReconnectTries
	}
	applyDuration(&cc.ReconnectBaseDelay, conn.ReconnectBaseDelay)
	applyDuration(&cc.ReconnectMaxDelay, conn.ReconnectMaxDelay)
	applyDuration(&cc.HealthCheckInterval, conn.HealthCheckInterval)
	cc.EnableQueryLog = conn.EnableQueryLog
	applyDuration(&cc.SlowQueryTime, conn.SlowQueryTime)
}

func applyDuration(dst *time.Duration, raw string) {
	if raw == "" {
		return
	}
	if d, err := time.ParseDuration(raw); err == nil {
		*dst = d
	}
}
