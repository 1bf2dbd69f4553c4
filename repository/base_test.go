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

package repository_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/uptrace/bun"

	"github.com/ApekshaTeotia/Quiz/database"
	"github.com/ApekshaTeotia/Quiz/models"
	"github.com/ApekshaTeotia/Quiz/repository"
	"github.com/ApekshaTeotia/Quiz/types"
)

func setupRepo(t *testing.T) repository.Repository[models.User] {
	t.Helper()

	cfg := &database.Config{
		ConnectionConfig: database.ConnectionConfig{
			Type:           "sqlite",
			DBName:         "file:" + filepath.Join(t.TempDir(), "repo_test.db"),
			MaxIdleConns:   2,
			MaxOpenConns:   2,
			ConnectTimeout: 5 * time.Second,
		},
		MigrationConfig: database.MigrationConfig{EnableMigrateOnStartup: true},
	}
	db, err := database.InitDB(cfg)
	if err != nil {
		t.Fatalf("init database: %v", err)
	}
	t.Cleanup(func() { _ = database.CloseDB() })
	return repository.NewRepository[models.User](db)
}

func TestRepositoryCRUD(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	user := &models.User{Email: "crud@example.com", Password: "hash", Name: "Before"}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("create: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("expected autoincrement id")
	}

	loaded, err := repo.GetOne(ctx, user.ID)
	if err != nil {
		t.Fatalf("get one: %v", err)
	}
	if loaded.Email != "crud@example.com" || loaded.Role != models.RoleStudent {
		t.Errorf("loaded user: %+v", loaded)
	}

	loaded.Name = "After"
	if err := repo.Update(ctx, loaded); err != nil {
		t.Fatalf("update: %v", err)
	}
	reloaded, err := repo.GetOne(ctx, user.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Name != "After" {
		t.Errorf("name after update %q, want After", reloaded.Name)
	}

	exists, err := repo.Exists(ctx, "email = ?", "crud@example.com")
	if err != nil || !exists {
		t.Errorf("exists: %v %v", exists, err)
	}

	if err := repo.Delete(ctx, user.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetOne(ctx, user.ID); err == nil {
		t.Error("get after delete should fail")
	}
}

func TestRepositoryListAndCount(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		role := models.RoleStudent
		if i == 0 {
			role = models.RoleTeacher
		}
		u := &models.User{Email: fmt.Sprintf("list%d@example.com", i), Password: "hash", Role: role}
		if err := repo.Create(ctx, u); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	all, err := repo.GetAll(ctx)
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("all users %d, want 3", len(all))
	}

	students, err := repo.List(ctx, types.NewQueryFilter("role = ?", models.RoleStudent))
	if err != nil {
		t.Fatalf("list students: %v", err)
	}
	if len(students) != 2 {
		t.Errorf("students %d, want 2", len(students))
	}

	count, err := repo.Count(ctx, types.NewQueryFilter("role = ?", models.RoleTeacher))
	if err != nil {
		t.Fatalf("count teachers: %v", err)
	}
	if count != 1 {
		t.Errorf("teachers %d, want 1", count)
	}
}

func TestRepositoryPagination(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		u := &models.User{Email: fmt.Sprintf("page%02d@example.com", i), Password: "hash"}
		if err := repo.Create(ctx, u); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	page, err := repo.Page(ctx, types.NewPageRequestWithOrders(2, 10, []string{"email ASC"}))
	if err != nil {
		t.Fatalf("page: %v", err)
	}
	if page.Total != 25 {
		t.Errorf("total %d, want 25", page.Total)
	}
	if len(page.Items) != 10 {
		t.Errorf("items %d, want 10", len(page.Items))
	}
	if page.Items[0].Email != "page10@example.com" {
		t.Errorf("first item on page 2: %q, want page10@example.com", page.Items[0].Email)
	}

	empty, err := repo.Page(ctx, types.NewPageRequestWithFilter(1, 10, types.NewQueryFilter("email = ?", "missing@example.com")))
	if err != nil {
		t.Fatalf("empty page: %v", err)
	}
	if empty.Total != 0 || len(empty.Items) != 0 {
		t.Errorf("empty page: total=%d items=%d", empty.Total, len(empty.Items))
	}
}

func TestRepositoryUpsert(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	u := &models.User{Email: "upsert@example.com", Password: "hash", Name: "First"}
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("create: %v", err)
	}

	update := &models.User{Email: "upsert@example.com", Password: "hash", Name: "Second"}
	if err := repo.Upsert(ctx, []string{"name"}, []string{"email"}, update); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	loaded, err := repo.GetOne(ctx, u.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loaded.Name != "Second" {
		t.Errorf("name after upsert %q, want Second", loaded.Name)
	}

	count, err := repo.Count(ctx, nil)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("users after upsert %d, want 1", count)
	}
}

func TestRepositoryTransactionRollback(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	err := repo.RunInTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		u := &models.User{Email: "tx@example.com", Password: "hash"}
		if err := repo.CreateWithTx(ctx, &tx, u); err != nil {
			return err
		}
		return fmt.Errorf("force rollback")
	})
	if err == nil {
		t.Fatal("expected propagated error from transaction")
	}

	exists, err := repo.Exists(ctx, "email = ?", "tx@example.com")
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if exists {
		t.Error("rolled back insert should not be visible")
	}
}
