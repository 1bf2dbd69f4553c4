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
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/go-sql-driver/mysql"
)

func mysqlErr(number uint16, message string) error {
	return &mysql.MySQLError{Number: number, Message: message}
}

func TestIsSqlErrorMySQLNumbers(t *testing.T) {
	cases := []struct {
		err  error
		want SQLError
	}{
		{mysqlErr(1045, "Access denied for user 'quiz'@'localhost'"), AccessDeniedErr},
		{mysqlErr(1049, "Unknown database 'quiz'"), UnknownDatabaseErr},
		{mysqlErr(1044, "Access denied for user to database 'quiz'"), UnknownDatabaseErr},
		{mysqlErr(1146, "Table 'quiz.users' doesn't exist"), NoTableErr},
		{mysqlErr(1050, "Table 'users' already exists"), ExistTableErr},
		{mysqlErr(1054, "Unknown column 'nickname' in 'field list'"), NoColumnErr},
		{mysqlErr(1062, "Duplicate entry 'a@example.com' for key 'users.email'"), DuplicateKeyErr},
		{mysqlErr(1048, "Column 'email' cannot be null"), NotNullViolationErr},
		{mysqlErr(1451, "Cannot delete or update a parent row"), ForeignKeyViolationErr},
		{mysqlErr(1452, "Cannot add or update a child row"), ForeignKeyViolationErr},
		{mysqlErr(1265, "Data truncated for column 'role'"), DataTruncatedErr},
		{mysqlErr(9999, "something else"), UnknownErr},
	}

	for _, tc := range cases {
		is, got := IsSqlError(tc.err)
		if !is {
			t.Errorf("%v: expected driver error classification", tc.err)
			continue
		}
		if got != tc.want {
			t.Errorf("%v: classified as %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestIsSqlErrorWrapped(t *testing.T) {
	wrapped := fmt.Errorf("insert user: %w", mysqlErr(1062, "Duplicate entry"))
	is, got := IsSqlError(wrapped)
	if !is || got != DuplicateKeyErr {
		t.Errorf("wrapped duplicate key: is=%v code=%d", is, got)
	}
}

func TestIsSqlErrorFallbackMessages(t *testing.T) {
	cases := []struct {
		msg  string
		want SQLError
	}{
		{"dial tcp 127.0.0.1:3306: connect: connection refused", ConnectionRefusedErr},
		{"pq: password authentication failed for user \"quiz\"", AccessDeniedErr},
		{"pq: database \"quiz\" does not exist", UnknownDatabaseErr},
		{"SQL logic error: no such table: users (1)", NoTableErr},
		{"SQL logic error: no such column: nickname (1)", NoColumnErr},
		{"constraint failed: UNIQUE constraint failed: users.email (2067)", DuplicateKeyErr},
		{"constraint failed: NOT NULL constraint failed: users.email (1299)", NotNullViolationErr},
		{"constraint failed: FOREIGN KEY constraint failed (787)", ForeignKeyViolationErr},
	}

	for _, tc := range cases {
		is, got := IsSqlError(errors.New(tc.msg))
		if !is {
			t.Errorf("%q: expected classification", tc.msg)
			continue
		}
		if got != tc.want {
			t.Errorf("%q: classified as %d, want %d", tc.msg, got, tc.want)
		}
	}
}

func TestIsSqlErrorUnrelated(t *testing.T) {
	if is, _ := IsSqlError(errors.New("file not found")); is {
		t.Error("unrelated error should not classify as a driver error")
	}
	if is, _ := IsSqlError(nil); is {
		t.Error("nil error should not classify")
	}
}

func TestDescribeConnectionError(t *testing.T) {
	if got := DescribeConnectionError(mysqlErr(1045, "Access denied")); !strings.Contains(got, "access denied") && !strings.Contains(got, "Database access denied") {
		t.Errorf("access denied message: %q", got)
	}
	if got := DescribeConnectionError(errors.New("dial tcp: connect: connection refused")); !strings.Contains(got, "connection refused") {
		t.Errorf("connection refused message: %q", got)
	}
	if got := DescribeConnectionError(mysqlErr(1049, "Unknown database")); !strings.Contains(got, "does not exist") {
		t.Errorf("unknown database message: %q", got)
	}
	if got := DescribeConnectionError(errors.New("some other failure")); !strings.Contains(got, "some other failure") {
		t.Errorf("fallback should contain the original error: %q", got)
	}
	if got := DescribeConnectionError(nil); got != "" {
		t.Errorf("nil error should describe as empty, got %q", got)
	}
}
