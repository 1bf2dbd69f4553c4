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

package quiz

import (
	"context"
	"time"

	"github.com/ApekshaTeotia/Quiz/models"
	"github.com/ApekshaTeotia/Quiz/types"
)

// UserStore adds user-specific queries on top of the generic service.
type UserStore struct {
	Service[models.User]
}

func NewUserStore() *UserStore {
	return &UserStore{Service: NewService[models.User]()}
}

// FindByEmail returns the user with the given email address.
func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.SelectBuilder().Model(&user).Where("email = ?", email).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// EmailTaken reports whether an account already uses the email address.
func (s *UserStore) EmailTaken(ctx context.Context, email string) (bool, error) {
	return s.Exists(ctx, "email = ?", email)
}

// TouchLastLogin records a successful login time for the user.
func (s *UserStore) TouchLastLogin(ctx context.Context, userID int64) error {
	now := time.Now()
	_, err := s.UpdateBuilder().
		Model((*models.User)(nil)).
		Set("last_login = ?", now).
		Where("id = ?", userID).
		Exec(ctx)
	return err
}

// ListByRole returns all users with the given role.
func (s *UserStore) ListByRole(ctx context.Context, role models.Role) ([]*models.User, error) {
	return s.List(ctx, types.NewQueryFilter("role = ?", role))
}

// QuizStore adds quiz-specific queries on top of the generic service.
type QuizStore struct {
	Service[models.Quiz]
}

func NewQuizStore() *QuizStore {
	return &QuizStore{Service: NewService[models.Quiz]()}
}

// ListByUser returns the quizzes owned by a user, newest first.
func (s *QuizStore) ListByUser(ctx context.Context, userID int64) ([]*models.Quiz, error) {
	var quizzes []*models.Quiz
	err := s.SelectBuilder().
		Model(&quizzes).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Scan(ctx)
	return quizzes, err
}

// GetWithQuestions loads a quiz together with its questions.
func (s *QuizStore) GetWithQuestions(ctx context.Context, quizID int64) (*models.Quiz, error) {
	var q models.Quiz
	err := s.SelectBuilder().
		Model(&q).
		Relation("Questions").
		Where("q.id = ?", quizID).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// PageByUser returns a page of a user's quizzes.
func (s *QuizStore) PageByUser(ctx context.Context, userID int64, page, pageSize int) (*types.Pagination[models.Quiz], error) {
	req := types.NewPageRequest(page, pageSize,
		types.NewQueryFilter("user_id = ?", userID),
		[]string{"created_at DESC"})
	return s.Page(ctx, req)
}

// ListByTopic returns quizzes on the given topic, optionally restricted to a
// difficulty when it is valid.
func (s *QuizStore) ListByTopic(ctx context.Context, topic string, difficulty models.Difficulty) ([]*models.Quiz, error) {
	if difficulty.IsValid() {
		return s.List(ctx, types.NewQueryFilter("topic = ? AND difficulty = ?", topic, difficulty))
	}
	return s.List(ctx, types.NewQueryFilter("topic = ?", topic))
}

// QuestionStore adds question-specific queries on top of the generic service.
type QuestionStore struct {
	Service[models.Question]
}

func NewQuestionStore() *QuestionStore {
	return &QuestionStore{Service: NewService[models.Question]()}
}

// ListByQuiz returns a quiz's questions in insertion order.
func (s *QuestionStore) ListByQuiz(ctx context.Context, quizID int64) ([]*models.Question, error) {
	var questions []*models.Question
	err := s.SelectBuilder().
		Model(&questions).
		Where("quiz_id = ?", quizID).
		Order("id ASC").
		Scan(ctx)
	return questions, err
}

// TotalPoints sums the points of all questions in a quiz.
func (s *QuestionStore) TotalPoints(ctx context.Context, quizID int64) (int, error) {
	var total int
	err := s.SelectBuilder().
		Model((*models.Question)(nil)).
		ColumnExpr("COALESCE(SUM(points), 0)").
		Where("quiz_id = ?", quizID).
		Scan(ctx, &total)
	return total, err
}

// CountByQuiz returns the number of questions in a quiz.
func (s *QuestionStore) CountByQuiz(ctx context.Context, quizID int64) (int, error) {
	return s.Count(ctx, types.NewQueryFilter("quiz_id = ?", quizID))
}
