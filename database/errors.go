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
	"strings"

	"github.com/go-sql-driver/mysql"
)

type SQLError int

const (
	UnknownErr SQLError = iota
	AccessDeniedErr
	ConnectionRefusedErr
	UnknownDatabaseErr
	NoRowsErr
	NoTableErr
	ExistTableErr
	NoColumnErr
	DuplicateKeyErr
	NotNullViolationErr
	ForeignKeyViolationErr
	CheckConstraintViolationErr
	DataTruncatedErr
)

// IsSqlError reports whether err originates from the database driver and
// classifies it. MySQL errors are matched by driver error number; other
// dialects fall back to SQLSTATE and message matching.
func IsSqlError(err error) (is bool, sqlErr SQLError) {
	if err == nil {
		return false, UnknownErr
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case 1045:
			return true, AccessDeniedErr
		case 1044, 1049:
			return true, UnknownDatabaseErr
		case 1146:
			return true, NoTableErr
		case 1050:
			return true, ExistTableErr
		case 1054:
			return true, NoColumnErr
		case 1062:
			return true, DuplicateKeyErr
		case 1048:
			return true, NotNullViolationErr
		case 1216, 1217, 1451, 1452:
			return true, ForeignKeyViolationErr
		case 3819:
			return true, CheckConstraintViolationErr
		case 1265:
			return true, DataTruncatedErr
		default:
			return true, UnknownErr
		}
	}
	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "connect: connection refused") {
		return true, ConnectionRefusedErr
	}
	if strings.Contains(s, "password authentication failed") ||
		strings.Contains(s, "sqlstate 28p01") {
		return true, AccessDeniedErr
	}
	if strings.Contains(s, "sqlstate 3d000") ||
		(strings.Contains(s, "database") && strings.Contains(s, "does not exist")) {
		return true, UnknownDatabaseErr
	}
	if strings.Contains(s, "sqlstate 42p01") ||
		strings.Contains(s, "undefined table") ||
		strings.Contains(s, "no such table") {
		return true, NoTableErr
	}
	if strings.Contains(s, "already exists") &&
		(strings.Contains(s, "table") || strings.Contains(s, "relation")) {
		return true, ExistTableErr
	}
	if strings.Contains(s, "sqlstate 42703") ||
		strings.Contains(s, "undefined column") ||
		strings.Contains(s, "no such column") {
		return true, NoColumnErr
	}
	if strings.Contains(s, "duplicate key value") ||
		strings.Contains(s, "unique constraint failed") ||
		strings.Contains(s, "sqlstate 23505") {
		return true, DuplicateKeyErr
	}
	if strings.Contains(s, "not-null constraint") ||
		strings.Contains(s, "sqlstate 23502") ||
		strings.Contains(s, "not null constraint failed") {
		return true, NotNullViolationErr
	}
	if strings.Contains(s, "foreign key violation") ||
		strings.Contains(s, "foreign key constraint failed") ||
		strings.Contains(s, "sqlstate 23503") {
		return true, ForeignKeyViolationErr
	}
	if strings.Contains(s, "check constraint") ||
		strings.Contains(s, "sqlstate 23514") {
		return true, CheckConstraintViolationErr
	}
	if strings.Contains(s, "string data right truncation") ||
		strings.Contains(s, "sqlstate 22001") ||
		strings.Contains(s, "data truncated") {
		return true, DataTruncatedErr
	}
	return false, UnknownErr
}

// DescribeConnectionError turns a connection-phase driver error into a
// human-readable message suitable for logging. The original error is
// always returned to the caller unchanged; this only describes it.
func DescribeConnectionError(err error) string {
	if err == nil {
		return ""
	}
	_, code := IsSqlError(err)
	switch code {
	case AccessDeniedErr:
		return "Database access denied. Check your username and password."
	case ConnectionRefusedErr:
		return "Database connection refused. Make sure the database server is running."
	case UnknownDatabaseErr:
		return "Database does not exist. Create it before starting the service."
	default:
		return "Database connection failed: " + err.Error()
	}
}
