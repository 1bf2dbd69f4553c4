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

package utils

import (
	"testing"

	"github.com/sirupsen/logrus"
)

func TestParseLogLevel(t *testing.T) {
	cases := map[string]logrus.Level{
		"trace":   logrus.TraceLevel,
		"debug":   logrus.DebugLevel,
		"info":    logrus.InfoLevel,
		"":        logrus.InfoLevel,
		"WARN":    logrus.WarnLevel,
		"warning": logrus.WarnLevel,
		"error":   logrus.ErrorLevel,
		"bogus":   logrus.InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLogLevel(in); got != want {
			t.Errorf("parse %q: %v, want %v", in, got, want)
		}
	}
}

func TestSetLoggerLevel(t *testing.T) {
	l := NewLogger("TEST")
	if !SetLoggerLevel("TEST", "error") {
		t.Fatal("registered logger not found")
	}
	if l.GetLevel() != logrus.ErrorLevel {
		t.Errorf("level %v, want error", l.GetLevel())
	}
	if SetLoggerLevel("MISSING", "debug") {
		t.Error("unknown logger name should report false")
	}
}

func TestDotPathCompact(t *testing.T) {
	if got := dotPathCompact("database/manager.go", 30); got != "database.manager.go" {
		t.Errorf("compact: %q", got)
	}
	got := dotPathCompact("database/internal/manager.go", 15)
	if len(got) > 15 {
		t.Errorf("compact %q exceeds width limit", got)
	}
}

func TestEnvDefaults(t *testing.T) {
	t.Setenv("UTILS_TEST_STR", "value")
	if EnvDefaultString("UTILS_TEST_STR", "def") != "value" {
		t.Error("env string should win")
	}
	if EnvDefaultString("UTILS_TEST_UNSET", "def") != "def" {
		t.Error("default string should apply")
	}

	t.Setenv("UTILS_TEST_BOOL", "true")
	if !EnvDefaultBool("UTILS_TEST_BOOL", false) {
		t.Error("env bool should win")
	}
	if EnvDefaultBool("UTILS_TEST_BOOL_UNSET", true) != true {
		t.Error("default bool should apply")
	}

	t.Setenv("UTILS_TEST_INT", "42")
	if EnvDefaultInt("UTILS_TEST_INT", 7) != 42 {
		t.Error("env int should win")
	}
	if EnvDefaultInt("UTILS_TEST_INT_UNSET", 7) != 7 {
		t.Error("default int should apply")
	}
}
