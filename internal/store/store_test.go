package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"cvforge/internal/database"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(database.AllModels()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) uint {
	t.Helper()
	user := database.User{Username: username, PasswordHash: "x"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user.ID
}

func TestCreateResume_DefaultTemplate(t *testing.T) {
	db := newTestDB(t)
	s := New(db, 0)
	ctx := context.Background()
	userID := seedUser(t, db, "alice")

	resume, err := s.CreateResume(ctx, userID, ResumeSettings{Title: "My Resume"})
	if err != nil {
		t.Fatalf("create resume: %v", err)
	}
	if resume.Template != "modern" {
		t.Fatalf("expected default template modern, got %q", resume.Template)
	}
	if resume.UserID == nil || *resume.UserID != userID {
		t.Fatalf("expected resume owned by %d", userID)
	}

	history, err := AuditLog(resume)
	if err != nil {
		t.Fatalf("audit log: %v", err)
	}
	if len(history) != 0 {
		t.Fatalf("expected empty history on create, got %d entries", len(history))
	}
}

func TestCreateResume_Limit(t *testing.T) {
	db := newTestDB(t)
	s := New(db, 2)
	ctx := context.Background()
	userID := seedUser(t, db, "alice")

	for i := 0; i < 2; i++ {
		if _, err := s.CreateResume(ctx, userID, ResumeSettings{Title: "r", Template: "classic"}); err != nil {
			t.Fatalf("create resume %d: %v", i, err)
		}
	}
	if _, err := s.CreateResume(ctx, userID, ResumeSettings{Title: "r", Template: "classic"}); !errors.Is(err, ErrResumeLimit) {
		t.Fatalf("expected ErrResumeLimit, got %v", err)
	}

	// 限额按用户计，另一用户不受影响。
	otherID := seedUser(t, db, "bob")
	if _, err := s.CreateResume(ctx, otherID, ResumeSettings{Title: "r", Template: "classic"}); err != nil {
		t.Fatalf("other user create: %v", err)
	}
}

func TestGetResume_OwnershipMismatch(t *testing.T) {
	db := newTestDB(t)
	s := New(db, 0)
	ctx := context.Background()
	aliceID := seedUser(t, db, "alice")
	bobID := seedUser(t, db, "bob")

	resume, err := s.CreateResume(ctx, aliceID, ResumeSettings{Title: "private", Template: "modern"})
	if err != nil {
		t.Fatalf("create resume: %v", err)
	}

	if _, err := s.GetResume(ctx, bobID, resume.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign resume, got %v", err)
	}
	if _, err := s.GetResume(ctx, aliceID, resume.ID); err != nil {
		t.Fatalf("owner should read own resume: %v", err)
	}
}

func TestUpdateSettings_AppendsAuditEntry(t *testing.T) {
	db := newTestDB(t)
	s := New(db, 0)
	ctx := context.Background()
	userID := seedUser(t, db, "alice")

	resume, err := s.CreateResume(ctx, userID, ResumeSettings{Title: "v1", Template: "modern"})
	if err != nil {
		t.Fatalf("create resume: %v", err)
	}

	settings := ResumeSettings{Title: "v2", Template: "classic"}
	updated, err := s.UpdateSettings(ctx, userID, resume.ID, settings, "alice")
	if err != nil {
		t.Fatalf("update settings: %v", err)
	}
	if updated.Title != "v2" || updated.Template != "classic" {
		t.Fatalf("settings not applied: %+v", updated)
	}

	history, err := AuditLog(updated)
	if err != nil {
		t.Fatalf("audit log: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected exactly 1 audit entry, got %d", len(history))
	}
	first := history[0]
	if first.Event != "updated_settings" || first.By != "alice" {
		t.Fatalf("unexpected audit entry: %+v", first)
	}

	// 再次更新只追加，不改写已有条目。
	settings.Title = "v3"
	updated, err = s.UpdateSettings(ctx, userID, resume.ID, settings, "alice")
	if err != nil {
		t.Fatalf("second update: %v", err)
	}
	history, err = AuditLog(updated)
	if err != nil {
		t.Fatalf("audit log: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 audit entries, got %d", len(history))
	}
	if !history[0].TS.Equal(first.TS) || history[0].By != first.By {
		t.Fatalf("earlier audit entry was rewritten: %+v", history[0])
	}
}

func TestUpdateSettings_ForeignResume(t *testing.T) {
	db := newTestDB(t)
	s := New(db, 0)
	ctx := context.Background()
	aliceID := seedUser(t, db, "alice")
	bobID := seedUser(t, db, "bob")

	resume, err := s.CreateResume(ctx, aliceID, ResumeSettings{Title: "private", Template: "modern"})
	if err != nil {
		t.Fatalf("create resume: %v", err)
	}

	if _, err := s.UpdateSettings(ctx, bobID, resume.ID, ResumeSettings{Title: "hacked", Template: "modern"}, "bob"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	got, err := s.GetResume(ctx, aliceID, resume.ID)
	if err != nil {
		t.Fatalf("reload resume: %v", err)
	}
	if got.Title != "private" {
		t.Fatalf("foreign update must not modify resume, got title %q", got.Title)
	}
}

func TestDeleteResume_Cascades(t *testing.T) {
	db := newTestDB(t)
	s := New(db, 0)
	ctx := context.Background()
	userID := seedUser(t, db, "alice")

	resume, err := s.CreateResume(ctx, userID, ResumeSettings{Title: "doomed", Template: "modern"})
	if err != nil {
		t.Fatalf("create resume: %v", err)
	}

	if _, err := s.GetOrCreatePersonalInfo(ctx, userID, resume.ID); err != nil {
		t.Fatalf("create personal info: %v", err)
	}
	if _, err := s.AddExperience(ctx, userID, resume.ID, database.Experience{
		Company: "Acme", Position: "Engineer", StartDate: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), Current: true,
	}); err != nil {
		t.Fatalf("add experience: %v", err)
	}
	if _, err := s.AddSkill(ctx, userID, resume.ID, database.Skill{Name: "Go"}); err != nil {
		t.Fatalf("add skill: %v", err)
	}

	if err := s.DeleteResume(ctx, userID, resume.ID); err != nil {
		t.Fatalf("delete resume: %v", err)
	}

	if _, err := s.GetResume(ctx, userID, resume.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("resume should be gone, got %v", err)
	}
	var count int64
	for _, model := range []any{&database.PersonalInfo{}, &database.Experience{}, &database.Skill{}} {
		if err := db.Model(model).Where("resume_id = ?", resume.ID).Count(&count).Error; err != nil {
			t.Fatalf("count children: %v", err)
		}
		if count != 0 {
			t.Fatalf("expected children deleted for %T, found %d", model, count)
		}
	}
}

func TestDeleteResume_ForeignResume(t *testing.T) {
	db := newTestDB(t)
	s := New(db, 0)
	ctx := context.Background()
	aliceID := seedUser(t, db, "alice")
	bobID := seedUser(t, db, "bob")

	resume, err := s.CreateResume(ctx, aliceID, ResumeSettings{Title: "keep", Template: "modern"})
	if err != nil {
		t.Fatalf("create resume: %v", err)
	}

	if err := s.DeleteResume(ctx, bobID, resume.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := s.GetResume(ctx, aliceID, resume.ID); err != nil {
		t.Fatalf("resume must survive foreign delete: %v", err)
	}
}

func TestGetOrCreatePersonalInfo_Idempotent(t *testing.T) {
	db := newTestDB(t)
	s := New(db, 0)
	ctx := context.Background()
	userID := seedUser(t, db, "alice")

	resume, err := s.CreateResume(ctx, userID, ResumeSettings{Title: "r", Template: "modern"})
	if err != nil {
		t.Fatalf("create resume: %v", err)
	}

	first, err := s.GetOrCreatePersonalInfo(ctx, userID, resume.ID)
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	second, err := s.GetOrCreatePersonalInfo(ctx, userID, resume.ID)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected same record, got %d and %d", first.ID, second.ID)
	}

	var count int64
	if err := db.Model(&database.PersonalInfo{}).Where("resume_id = ?", resume.ID).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly 1 personal info record, got %d", count)
	}
}

func TestUpsertPersonalInfo_PreservesIdentity(t *testing.T) {
	db := newTestDB(t)
	s := New(db, 0)
	ctx := context.Background()
	userID := seedUser(t, db, "alice")

	resume, err := s.CreateResume(ctx, userID, ResumeSettings{Title: "r", Template: "modern"})
	if err != nil {
		t.Fatalf("create resume: %v", err)
	}

	first, err := s.UpsertPersonalInfo(ctx, userID, resume.ID, database.PersonalInfo{
		FirstName: "Jamie", LastName: "Smith", Email: "jamie@example.com",
	})
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	second, err := s.UpsertPersonalInfo(ctx, userID, resume.ID, database.PersonalInfo{
		FirstName: "Jamie", LastName: "Smith-Jones", Email: "jamie@example.com",
	})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("upsert must reuse record %d, got %d", first.ID, second.ID)
	}
	if second.LastName != "Smith-Jones" {
		t.Fatalf("upsert must overwrite fields, got %q", second.LastName)
	}
}

func TestAddSkill_DefaultLevel(t *testing.T) {
	db := newTestDB(t)
	s := New(db, 0)
	ctx := context.Background()
	userID := seedUser(t, db, "alice")

	resume, err := s.CreateResume(ctx, userID, ResumeSettings{Title: "r", Template: "modern"})
	if err != nil {
		t.Fatalf("create resume: %v", err)
	}

	skill, err := s.AddSkill(ctx, userID, resume.ID, database.Skill{Name: "Go"})
	if err != nil {
		t.Fatalf("add skill: %v", err)
	}
	if skill.Level != "intermediate" {
		t.Fatalf("expected default level intermediate, got %q", skill.Level)
	}
}

func TestLoadDocument_Ordering(t *testing.T) {
	db := newTestDB(t)
	s := New(db, 0)
	ctx := context.Background()
	userID := seedUser(t, db, "alice")

	resume, err := s.CreateResume(ctx, userID, ResumeSettings{Title: "r", Template: "modern"})
	if err != nil {
		t.Fatalf("create resume: %v", err)
	}

	older := time.Date(2018, 3, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2022, 7, 1, 0, 0, 0, 0, time.UTC)
	if _, err := s.AddExperience(ctx, userID, resume.ID, database.Experience{Company: "First", StartDate: older, Current: false}); err != nil {
		t.Fatalf("add experience: %v", err)
	}
	if _, err := s.AddExperience(ctx, userID, resume.ID, database.Experience{Company: "Second", StartDate: newer, Current: true}); err != nil {
		t.Fatalf("add experience: %v", err)
	}
	for _, name := range []string{"Python", "Go", "SQL"} {
		if _, err := s.AddSkill(ctx, userID, resume.ID, database.Skill{Name: name}); err != nil {
			t.Fatalf("add skill %s: %v", name, err)
		}
	}

	doc, err := s.LoadDocument(ctx, userID, resume.ID)
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	if len(doc.Experiences) != 2 || doc.Experiences[0].Company != "Second" {
		t.Fatalf("experiences must be newest first, got %+v", doc.Experiences)
	}
	wantSkills := []string{"Go", "Python", "SQL"}
	if len(doc.Skills) != len(wantSkills) {
		t.Fatalf("expected %d skills, got %d", len(wantSkills), len(doc.Skills))
	}
	for i, want := range wantSkills {
		if doc.Skills[i].Name != want {
			t.Fatalf("skills must be alphabetical, got %q at %d", doc.Skills[i].Name, i)
		}
	}
}
