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

package quiz_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	quiz "github.com/ApekshaTeotia/Quiz"
	"github.com/ApekshaTeotia/Quiz/database"
	"github.com/ApekshaTeotia/Quiz/models"
)

func setupStores(t *testing.T) {
	t.Helper()

	cfg := &database.Config{
		ConnectionConfig: database.ConnectionConfig{
			Type:           "sqlite",
			DBName:         "file:" + filepath.Join(t.TempDir(), "stores_test.db"),
			MaxIdleConns:   2,
			MaxOpenConns:   2,
			ConnectTimeout: 5 * time.Second,
		},
		MigrationConfig: database.MigrationConfig{EnableMigrateOnStartup: true},
	}
	if _, err := database.InitDB(cfg); err != nil {
		t.Fatalf("init database: %v", err)
	}
	t.Cleanup(func() { _ = database.CloseDB() })
}

func TestUserStore(t *testing.T) {
	setupStores(t)
	ctx := context.Background()
	users := quiz.NewUserStore()

	teacher := &models.User{Email: "t@example.com", Password: "hash", Name: "Teacher", Role: models.RoleTeacher}
	if err := users.Save(ctx, teacher); err != nil {
		t.Fatalf("save: %v", err)
	}

	found, err := users.FindByEmail(ctx, "t@example.com")
	if err != nil {
		t.Fatalf("find by email: %v", err)
	}
	if found.ID != teacher.ID || found.Role != models.RoleTeacher {
		t.Errorf("found %+v", found)
	}

	taken, err := users.EmailTaken(ctx, "t@example.com")
	if err != nil || !taken {
		t.Errorf("email taken: %v %v", taken, err)
	}
	free, err := users.EmailTaken(ctx, "free@example.com")
	if err != nil || free {
		t.Errorf("free email reported taken: %v %v", free, err)
	}

	if err := users.TouchLastLogin(ctx, teacher.ID); err != nil {
		t.Fatalf("touch last login: %v", err)
	}
	refreshed, err := users.Get(ctx, teacher.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if refreshed.LastLogin == nil {
		t.Error("last login should be set")
	}

	teachers, err := users.ListByRole(ctx, models.RoleTeacher)
	if err != nil || len(teachers) != 1 {
		t.Errorf("teachers: %d %v", len(teachers), err)
	}
}

func TestQuizAndQuestionStores(t *testing.T) {
	setupStores(t)
	ctx := context.Background()

	users := quiz.NewUserStore()
	quizzes := quiz.NewQuizStore()
	questions := quiz.NewQuestionStore()

	owner := &models.User{Email: "owner@example.com", Password: "hash", Role: models.RoleTeacher}
	if err := users.Save(ctx, owner); err != nil {
		t.Fatalf("save owner: %v", err)
	}

	q1 := &models.Quiz{UserID: owner.ID, Title: "Concurrency", Topic: "golang", Difficulty: models.DifficultyHard}
	q2 := &models.Quiz{UserID: owner.ID, Title: "Channels", Topic: "golang", Difficulty: models.DifficultyMedium}
	if err := quizzes.Save(ctx, q1, q2); err != nil {
		t.Fatalf("save quizzes: %v", err)
	}

	owned, err := quizzes.ListByUser(ctx, owner.ID)
	if err != nil {
		t.Fatalf("list by user: %v", err)
	}
	if len(owned) != 2 {
		t.Errorf("owned quizzes %d, want 2", len(owned))
	}

	hardOnly, err := quizzes.ListByTopic(ctx, "golang", models.DifficultyHard)
	if err != nil {
		t.Fatalf("list by topic: %v", err)
	}
	if len(hardOnly) != 1 || hardOnly[0].Title != "Concurrency" {
		t.Errorf("hard quizzes: %v", hardOnly)
	}

	qs := []*models.Question{
		{QuizID: q1.ID, QuestionText: "What does go keyword do?", QuestionType: models.QuestionTypeShortAnswer, CorrectAnswer: "starts a goroutine", Points: 2},
		{QuizID: q1.ID, QuestionText: "Channels are typed.", QuestionType: models.QuestionTypeTrueFalse, CorrectAnswer: "true", Points: 1},
	}
	if err := questions.Save(ctx, qs...); err != nil {
		t.Fatalf("save questions: %v", err)
	}

	listed, err := questions.ListByQuiz(ctx, q1.ID)
	if err != nil {
		t.Fatalf("list by quiz: %v", err)
	}
	if len(listed) != 2 {
		t.Errorf("questions %d, want 2", len(listed))
	}

	total, err := questions.TotalPoints(ctx, q1.ID)
	if err != nil {
		t.Fatalf("total points: %v", err)
	}
	if total != 3 {
		t.Errorf("total points %d, want 3", total)
	}

	count, err := questions.CountByQuiz(ctx, q2.ID)
	if err != nil {
		t.Fatalf("count by quiz: %v", err)
	}
	if count != 0 {
		t.Errorf("questions on empty quiz %d, want 0", count)
	}

	loaded, err := quizzes.GetWithQuestions(ctx, q1.ID)
	if err != nil {
		t.Fatalf("get with questions: %v", err)
	}
	if len(loaded.Questions) != 2 {
		t.Errorf("loaded questions %d, want 2", len(loaded.Questions))
	}

	page, err := quizzes.PageByUser(ctx, owner.ID, 1, 1)
	if err != nil {
		t.Fatalf("page by user: %v", err)
	}
	if page.Total != 2 || len(page.Items) != 1 {
		t.Errorf("page: total=%d items=%d", page.Total, len(page.Items))
	}
}
