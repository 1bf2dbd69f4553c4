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
	"time"

	"github.com/uptrace/bun"

	"github.com/ApekshaTeotia/Quiz/database"
	"github.com/ApekshaTeotia/Quiz/types"
)

// Creation priorities keep referenced tables ahead of their referrers.
const (
	priorityUsers = iota + 1
	priorityQuizzes
	priorityQuestions
)

func init() {
	database.RegisteredModel(database.NewModelAdapter((*User)(nil), priorityUsers))
	database.RegisteredModel(database.NewModelAdapter((*Quiz)(nil), priorityQuizzes))
	database.RegisteredModel(database.NewModelAdapter((*Question)(nil), priorityQuestions))
}

// User is an account that owns quizzes.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID        int64      `bun:"id,pk,autoincrement" json:"id"`
	Email     string     `bun:"email,notnull,unique" json:"email"`
	Password  string     `bun:"password,notnull" json:"-"`
	Name      string     `bun:"name" json:"name"`
	Role      Role       `bun:"role,type:varchar(20),default:'student'" json:"role"`
	CreatedAt time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time  `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`
	LastLogin *time.Time `bun:"last_login" json:"last_login,omitempty"`

	Quizzes []*Quiz `bun:"rel:has-many,join:id=user_id" json:"quizzes,omitempty"`
}

// Quiz groups questions under a title and topic. Deleting the owning user
// cascades to the quiz and its questions.
type Quiz struct {
	bun.BaseModel `bun:"table:quizzes,alias:q"`

	ID          int64      `bun:"id,pk,autoincrement" json:"id"`
	UserID      int64      `bun:"user_id,notnull" json:"user_id"`
	Title       string     `bun:"title,notnull" json:"title"`
	Description string     `bun:"description,type:text" json:"description"`
	Topic       string     `bun:"topic" json:"topic"`
	Difficulty  Difficulty `bun:"difficulty,type:varchar(20),default:'medium'" json:"difficulty"`
	CreatedAt   time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time  `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`

	User      *User       `bun:"rel:belongs-to,join:user_id=id" json:"user,omitempty"`
	Questions []*Question `bun:"rel:has-many,join:id=quiz_id" json:"questions,omitempty"`
}

// Question belongs to a quiz. Options is only populated for multiple-choice
// questions.
type Question struct {
	bun.BaseModel `bun:"table:questions,alias:qn"`

	ID            int64             `bun:"id,pk,autoincrement" json:"id"`
	QuizID        int64             `bun:"quiz_id,notnull" json:"quiz_id"`
	QuestionText  string            `bun:"question_text,type:text,notnull" json:"question_text"`
	QuestionType  QuestionType      `bun:"question_type,type:varchar(20),default:'multiple_choice'" json:"question_type"`
	CorrectAnswer string            `bun:"correct_answer,notnull" json:"correct_answer"`
	Options       types.StringArray `bun:"options,type:json" json:"options,omitempty"`
	Explanation   string            `bun:"explanation,type:text" json:"explanation"`
	Points        int               `bun:"points,default:1" json:"points"`
	CreatedAt     time.Time         `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time         `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`

	Quiz *Quiz `bun:"rel:belongs-to,join:quiz_id=id" json:"quiz,omitempty"`
}

// IsCorrect compares a submitted answer against the stored one.
func (q *Question) IsCorrect(answer string) bool {
	return q.CorrectAnswer == answer
}
