package db

import (
	"reflect"
	"testing"
	"testing/fstest"

	"github.com/creator-marketplace/backend/migrations"
)

func TestPendingFilesSortedAndFiltered(t *testing.T) {
	fsys := fstest.MapFS{
		"0002_b.up.sql":   {Data: []byte("SELECT 2")},
		"0001_a.up.sql":   {Data: []byte("SELECT 1")},
		"0001_a.down.sql": {Data: []byte("SELECT 0")},
		"README.md":       {Data: []byte("notes")},
		"nested/x.up.sql": {Data: []byte("SELECT 3")},
	}

	got, err := pendingFiles(fsys)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"0001_a.up.sql", "0002_b.up.sql"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("pendingFiles() = %v, want %v", got, want)
	}
}

func TestEmbeddedMigrations(t *testing.T) {
	got, err := pendingFiles(migrations.FS)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"0001_campaign_drafts.up.sql", "0002_campaigns.up.sql", "0003_audit_log.up.sql"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("embedded migrations = %v, want %v", got, want)
	}
}
