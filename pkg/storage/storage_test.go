package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.sqlite"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	u, err := db.CreateUser(ctx, "parent@example.com", "hash", "Parent")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if u.ID == "" {
		t.Fatal("expected generated user id")
	}

	if _, err := db.CreateUser(ctx, "parent@example.com", "hash2", "Other"); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestUserLookupAndPIN(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	created, err := db.CreateUser(ctx, "parent@example.com", "hash", "Parent")
	if err != nil {
		t.Fatal(err)
	}

	byEmail, err := db.GetUserByEmail(ctx, "parent@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if byEmail.ID != created.ID || byEmail.PasswordHash != "hash" {
		t.Fatalf("unexpected user: %+v", byEmail)
	}

	if err := db.SetPIN(ctx, created.ID, "1234"); err != nil {
		t.Fatalf("SetPIN: %v", err)
	}
	byID, err := db.GetUserByID(ctx, created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if byID.PIN != "1234" {
		t.Fatalf("PIN not persisted: %+v", byID)
	}

	if _, err := db.GetUserByEmail(ctx, "nobody@example.com"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := db.SetPIN(ctx, "missing-id", "0000"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestProfileCRUD(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	parent, _ := db.CreateUser(ctx, "parent@example.com", "hash", "Parent")
	other, _ := db.CreateUser(ctx, "other@example.com", "hash", "Other")

	p, err := db.CreateProfile(ctx, Profile{
		ParentID:      parent.ID,
		Name:          "Kid",
		Age:           7,
		MaturityLevel: "strict",
		BlockedSites:  []string{"badsite.com"},
	})
	if err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}

	got, err := db.GetProfile(ctx, p.ID, parent.ID)
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if got.Name != "Kid" || got.Age != 7 || len(got.BlockedSites) != 1 {
		t.Fatalf("unexpected profile: %+v", got)
	}
	if got.WhitelistedSites == nil {
		t.Fatal("site lists must decode to empty slices, not nil")
	}

	// Ownership: another parent cannot see or delete the profile.
	if _, err := db.GetProfile(ctx, p.ID, other.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign parent, got %v", err)
	}
	if err := db.DeleteProfile(ctx, p.ID, other.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign delete, got %v", err)
	}

	got.Age = 13
	got.MaturityLevel = "lenient"
	updated, err := db.UpdateProfile(ctx, got)
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if updated.Age != 13 || updated.MaturityLevel != "lenient" {
		t.Fatalf("update not applied: %+v", updated)
	}

	list, err := db.ListProfiles(ctx, parent.ID)
	if err != nil || len(list) != 1 {
		t.Fatalf("ListProfiles: %v, %d entries", err, len(list))
	}
}

func TestDeleteProfileCascadesLogs(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	parent, _ := db.CreateUser(ctx, "parent@example.com", "hash", "Parent")
	p, _ := db.CreateProfile(ctx, Profile{ParentID: parent.ID, Name: "Kid", Age: 7, MaturityLevel: "strict"})

	_, err := db.AppendLog(ctx, ContentLog{
		ProfileID:      p.ID,
		ContentType:    "text",
		IsSafe:         false,
		Confidence:     0.3,
		Reasons:        []string{"Violence-related: 'blood'"},
		ContentSnippet: "blood and gore",
	})
	if err != nil {
		t.Fatalf("AppendLog: %v", err)
	}

	if err := db.DeleteProfile(ctx, p.ID, parent.ID); err != nil {
		t.Fatalf("DeleteProfile: %v", err)
	}

	logs, err := db.ListLogs(ctx, ListLogsOptions{ParentID: parent.ID})
	if err != nil {
		t.Fatal(err)
	}
	if len(logs) != 0 {
		t.Fatalf("logs must cascade with profile deletion, got %d", len(logs))
	}
}

func TestListLogsOrderingAndSearch(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	parent, _ := db.CreateUser(ctx, "parent@example.com", "hash", "Parent")
	other, _ := db.CreateUser(ctx, "other@example.com", "hash", "Other")
	p, _ := db.CreateProfile(ctx, Profile{ParentID: parent.ID, Name: "Kid", Age: 7, MaturityLevel: "strict"})
	foreign, _ := db.CreateProfile(ctx, Profile{ParentID: other.ID, Name: "Else", Age: 10, MaturityLevel: "moderate"})

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i, snippet := range []string{"blood and gore", "netflix and chill tonight"} {
		_, err := db.AppendLog(ctx, ContentLog{
			ProfileID:      p.ID,
			ContentType:    "text",
			DetectedAt:     base.Add(time.Duration(i) * time.Minute),
			Confidence:     0.3,
			Reasons:        []string{"some reason"},
			ContentSnippet: snippet,
		})
		if err != nil {
			t.Fatal(err)
		}
	}
	// A log the first parent must never see.
	if _, err := db.AppendLog(ctx, ContentLog{
		ProfileID: foreign.ID, ContentType: "url", Confidence: 1,
		Reasons: []string{"Adult website: pornhub"}, ContentSnippet: "[Content blocked]",
	}); err != nil {
		t.Fatal(err)
	}

	logs, err := db.ListLogs(ctx, ListLogsOptions{ParentID: parent.ID})
	if err != nil {
		t.Fatal(err)
	}
	if len(logs) != 2 {
		t.Fatalf("expected 2 logs, got %d", len(logs))
	}
	if !logs[0].DetectedAt.After(logs[1].DetectedAt) {
		t.Fatalf("logs must be newest first: %v then %v", logs[0].DetectedAt, logs[1].DetectedAt)
	}
	if logs[0].ProfileName != "Kid" {
		t.Fatalf("expected profile name enrichment, got %q", logs[0].ProfileName)
	}

	found, err := db.ListLogs(ctx, ListLogsOptions{ParentID: parent.ID, Keyword: "netflix"})
	if err != nil {
		t.Fatal(err)
	}
	if len(found) != 1 || found[0].ContentSnippet != "netflix and chill tonight" {
		t.Fatalf("keyword search failed: %+v", found)
	}

	limited, err := db.ListLogs(ctx, ListLogsOptions{ParentID: parent.ID, Limit: 1})
	if err != nil || len(limited) != 1 {
		t.Fatalf("limit not applied: %v, %d entries", err, len(limited))
	}
}

func TestGetStats(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	parent, _ := db.CreateUser(ctx, "parent@example.com", "hash", "Parent")
	p, _ := db.CreateProfile(ctx, Profile{ParentID: parent.ID, Name: "Kid", Age: 7, MaturityLevel: "strict"})
	quiet, _ := db.CreateProfile(ctx, Profile{ParentID: parent.ID, Name: "Zed", Age: 14, MaturityLevel: "lenient"})

	for i := 0; i < 3; i++ {
		if _, err := db.AppendLog(ctx, ContentLog{
			ProfileID: p.ID, ContentType: "text", Confidence: 0.3,
			Reasons: []string{"r"}, ContentSnippet: "s",
		}); err != nil {
			t.Fatal(err)
		}
	}

	stats, err := db.GetStats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(stats) != 2 {
		t.Fatalf("expected stats for 2 profiles, got %d", len(stats))
	}
	byID := map[string]int{}
	for _, s := range stats {
		byID[s.ProfileID] = s.Detections
	}
	if byID[p.ID] != 3 || byID[quiet.ID] != 0 {
		t.Fatalf("unexpected counts: %v", byID)
	}
}
