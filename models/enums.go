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
	"database/sql/driver"
	"fmt"

	"github.com/ApekshaTeotia/Quiz/types"
)

// Role is the access level of a user, stored as its String() value.
type Role int

const (
	RoleStudent Role = iota
	RoleTeacher
	RoleAdmin
)

var roles = []struct {
	value Role
	str   string
	name  string
	desc  string
}{
	{RoleStudent, "student", "STUDENT", "takes quizzes"},
	{RoleTeacher, "teacher", "TEACHER", "creates and manages quizzes"},
	{RoleAdmin, "admin", "ADMIN", "full administrative access"},
}

func (r Role) IsValid() bool { return r >= RoleStudent && r <= RoleAdmin }

func (r Role) Number() int {
	if !r.IsValid() {
		return types.IllegalValue
	}
	return int(r)
}

func (r Role) String() string {
	if !r.IsValid() {
		return types.IllegalName
	}
	return roles[r].str
}

func (r Role) Name() string {
	if !r.IsValid() {
		return types.IllegalName
	}
	return roles[r].name
}

func (r Role) Desc() string {
	if !r.IsValid() {
		return types.IllegalDesc
	}
	return roles[r].desc
}

// ParseRole maps a stored string to a Role, returning an invalid Role for
// unrecognized input.
func ParseRole(s string) Role {
	for _, r := range roles {
		if r.str == s {
			return r.value
		}
	}
	return Role(types.IllegalValue)
}

func (r Role) Value() (driver.Value, error) {
	if !r.IsValid() {
		return nil, fmt.Errorf("invalid role: %d", int(r))
	}
	return r.String(), nil
}

func (r *Role) Scan(value interface{}) error {
	s, err := enumString(value)
	if err != nil {
		return err
	}
	parsed := ParseRole(s)
	if !parsed.IsValid() {
		return fmt.Errorf("unknown role: %q", s)
	}
	*r = parsed
	return nil
}

// Difficulty grades a quiz, stored as its String() value.
type Difficulty int

const (
	DifficultyEasy Difficulty = iota
	DifficultyMedium
	DifficultyHard
)

var difficulties = []struct {
	value Difficulty
	str   string
	name  string
	desc  string
}{
	{DifficultyEasy, "easy", "EASY", "introductory questions"},
	{DifficultyMedium, "medium", "MEDIUM", "standard questions"},
	{DifficultyHard, "hard", "HARD", "challenging questions"},
}

func (d Difficulty) IsValid() bool { return d >= DifficultyEasy && d <= DifficultyHard }

func (d Difficulty) Number() int {
	if !d.IsValid() {
		return types.IllegalValue
	}
	return int(d)
}

func (d Difficulty) String() string {
	if !d.IsValid() {
		return types.IllegalName
	}
	return difficulties[d].str
}

func (d Difficulty) Name() string {
	if !d.IsValid() {
		return types.IllegalName
	}
	return difficulties[d].name
}

func (d Difficulty) Desc() string {
	if !d.IsValid() {
		return types.IllegalDesc
	}
	return difficulties[d].desc
}

// ParseDifficulty maps a stored string to a Difficulty.
func ParseDifficulty(s string) Difficulty {
	for _, d := range difficulties {
		if d.str == s {
			return d.value
		}
	}
	return Difficulty(types.IllegalValue)
}

func (d Difficulty) Value() (driver.Value, error) {
	if !d.IsValid() {
		return nil, fmt.Errorf("invalid difficulty: %d", int(d))
	}
	return d.String(), nil
}

func (d *Difficulty) Scan(value interface{}) error {
	s, err := enumString(value)
	if err != nil {
		return err
	}
	parsed := ParseDifficulty(s)
	if !parsed.IsValid() {
		return fmt.Errorf("unknown difficulty: %q", s)
	}
	*d = parsed
	return nil
}

// QuestionType describes how a question is answered, stored as its
// String() value.
type QuestionType int

const (
	QuestionTypeMultipleChoice QuestionType = iota
	QuestionTypeTrueFalse
	QuestionTypeShortAnswer
)

var questionTypes = []struct {
	value QuestionType
	str   string
	name  string
	desc  string
}{
	{QuestionTypeMultipleChoice, "multiple_choice", "MULTIPLE_CHOICE", "pick one option"},
	{QuestionTypeTrueFalse, "true_false", "TRUE_FALSE", "true or false"},
	{QuestionTypeShortAnswer, "short_answer", "SHORT_ANSWER", "free text answer"},
}

func (q QuestionType) IsValid() bool {
	return q >= QuestionTypeMultipleChoice && q <= QuestionTypeShortAnswer
}

func (q QuestionType) Number() int {
	if !q.IsValid() {
		return types.IllegalValue
	}
	return int(q)
}

func (q QuestionType) String() string {
	if !q.IsValid() {
		return types.IllegalName
	}
	return questionTypes[q].str
}

func (q QuestionType) Name() string {
	if !q.IsValid() {
		return types.IllegalName
	}
	return questionTypes[q].name
}

func (q QuestionType) Desc() string {
	if !q.IsValid() {
		return types.IllegalDesc
	}
	return questionTypes[q].desc
}

// ParseQuestionType maps a stored string to a QuestionType.
func ParseQuestionType(s string) QuestionType {
	for _, q := range questionTypes {
		if q.str == s {
			return q.value
		}
	}
	return QuestionType(types.IllegalValue)
}

func (q QuestionType) Value() (driver.Value, error) {
	if !q.IsValid() {
		return nil, fmt.Errorf("invalid question type: %d", int(q))
	}
	return q.String(), nil
}

func (q *QuestionType) Scan(value interface{}) error {
	s, err := enumString(value)
	if err != nil {
		return err
	}
	parsed := ParseQuestionType(s)
	if !parsed.IsValid() {
		return fmt.Errorf("unknown question type: %q", s)
	}
	*q = parsed
	return nil
}

func enumString(value interface{}) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return "", fmt.Errorf("unsupported enum column type %T", value)
	}
}

var (
	_ types.BaseEnum = RoleStudent
	_ types.BaseEnum = DifficultyEasy
	_ types.BaseEnum = QuestionTypeMultipleChoice
)
