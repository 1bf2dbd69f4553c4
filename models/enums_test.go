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

package models

import (
	"testing"

	"github.com/ApekshaTeotia/Quiz/types"
)

func TestRoleValues(t *testing.T) {
	cases := []struct {
		role Role
		str  string
	}{
		{RoleStudent, "student"},
		{RoleTeacher, "teacher"},
		{RoleAdmin, "admin"},
	}
	for _, tc := range cases {
		if !tc.role.IsValid() {
			t.Errorf("%v should be valid", tc.role)
		}
		if tc.role.String() != tc.str {
			t.Errorf("%v string %q, want %q", tc.role, tc.role.String(), tc.str)
		}
		if ParseRole(tc.str) != tc.role {
			t.Errorf("parse %q: %v", tc.str, ParseRole(tc.str))
		}
	}

	bad := ParseRole("superuser")
	if bad.IsValid() {
		t.Error("unknown role should be invalid")
	}
	if bad.Number() != types.IllegalValue || bad.String() != types.IllegalName {
		t.Errorf("invalid role: number=%d string=%q", bad.Number(), bad.String())
	}
}

func TestRoleScanValue(t *testing.T) {
	v, err := RoleTeacher.Value()
	if err != nil || v != "teacher" {
		t.Fatalf("value: %v %v", v, err)
	}

	var r Role
	if err := r.Scan("admin"); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if r != RoleAdmin {
		t.Errorf("scanned %v, want admin", r)
	}

	if err := r.Scan([]byte("student")); err != nil {
		t.Fatalf("scan bytes: %v", err)
	}
	if r != RoleStudent {
		t.Errorf("scanned %v, want student", r)
	}

	if err := r.Scan("superuser"); err == nil {
		t.Error("unknown role should fail to scan")
	}
	if _, err := Role(99).Value(); err == nil {
		t.Error("invalid role should fail to store")
	}
}

func TestDifficultyParseAndScan(t *testing.T) {
	if ParseDifficulty("medium") != DifficultyMedium {
		t.Error("parse medium")
	}
	if ParseDifficulty("extreme").IsValid() {
		t.Error("unknown difficulty should be invalid")
	}

	var d Difficulty
	if err := d.Scan("hard"); err != nil || d != DifficultyHard {
		t.Errorf("scan hard: %v %v", d, err)
	}
}

func TestQuestionTypeParseAndScan(t *testing.T) {
	if ParseQuestionType("true_false") != QuestionTypeTrueFalse {
		t.Error("parse true_false")
	}
	if ParseQuestionType("essay").IsValid() {
		t.Error("unknown question type should be invalid")
	}

	var q QuestionType
	if err := q.Scan("short_answer"); err != nil || q != QuestionTypeShortAnswer {
		t.Errorf("scan short_answer: %v %v", q, err)
	}

	if QuestionTypeMultipleChoice.Desc() == types.IllegalDesc {
		t.Error("valid enum should have a description")
	}
}

func TestQuestionIsCorrect(t *testing.T) {
	q := &Question{CorrectAnswer: "append"}
	if !q.IsCorrect("append") {
		t.Error("matching answer should be correct")
	}
	if q.IsCorrect("Append") {
		t.Error("comparison is exact")
	}
}
