package db

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/sigreer/hostprobe/internal/collector"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	d, err := New(filepath.Join(t.TempDir(), "nested", "history.db"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { d.Close() })
	return d
}

func TestNewAppliesMigrations(t *testing.T) {
	d := openTestDB(t)

	version, err := d.SchemaVersion()
	if err != nil {
		t.Fatal(err)
	}
	if version != 2 {
		t.Errorf("SchemaVersion() = %d, want 2", version)
	}
}

func TestNewReopenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	first, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	id, err := first.SaveSnapshot(context.Background(), Snapshot{Hostname: "box", Document: json.RawMessage(`{}`)})
	if err != nil {
		t.Fatal(err)
	}
	first.Close()

	second, err := New(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer second.Close()

	got, err := second.GetSnapshot(context.Background(), id)
	if err != nil || got == nil {
		t.Fatalf("GetSnapshot() after reopen = %v, %v", got, err)
	}
}

func TestSaveAndGetSnapshot(t *testing.T) {
	d := openTestDB(t)
	ctx := context.Background()
	taken := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	id, err := d.SaveSnapshot(ctx, Snapshot{
		Hostname:      "workstation",
		KernelRelease: "6.18.4-arch1-1",
		PCICount:      6,
		BlockCount:    4,
		ModuleCount:   120,
		Document:      json.RawMessage(`{"uname":{"kernel_release":"6.18.4-arch1-1"}}`),
		TakenAt:       taken,
	})
	if err != nil {
		t.Fatalf("SaveSnapshot() error = %v", err)
	}
	if len(id) != 36 {
		t.Errorf("SaveSnapshot() id = %q, want a UUID", id)
	}

	got, err := d.GetSnapshot(ctx, id)
	if err != nil {
		t.Fatalf("GetSnapshot() error = %v", err)
	}
	if got == nil {
		t.Fatal("GetSnapshot() = nil")
	}
	if got.Hostname != "workstation" || got.KernelRelease != "6.18.4-arch1-1" {
		t.Errorf("GetSnapshot() = %+v", got)
	}
	if got.PCICount != 6 || got.BlockCount != 4 || got.ModuleCount != 120 {
		t.Errorf("counts = %d/%d/%d", got.PCICount, got.BlockCount, got.ModuleCount)
	}
	if string(got.Document) != `{"uname":{"kernel_release":"6.18.4-arch1-1"}}` {
		t.Errorf("Document = %s", got.Document)
	}
	if !got.TakenAt.Equal(taken) {
		t.Errorf("TakenAt = %v, want %v", got.TakenAt, taken)
	}
}

func TestGetSnapshotMissing(t *testing.T) {
	d := openTestDB(t)

	got, err := d.GetSnapshot(context.Background(), "00000000-0000-0000-0000-000000000000")
	if err != nil {
		t.Fatalf("GetSnapshot() error = %v", err)
	}
	if got != nil {
		t.Errorf("GetSnapshot() = %+v, want nil", got)
	}
}

func TestSaveSnapshotRequiresDocument(t *testing.T) {
	d := openTestDB(t)

	if _, err := d.SaveSnapshot(context.Background(), Snapshot{Hostname: "box"}); err == nil {
		t.Error("SaveSnapshot() without document returned nil error")
	}
}

func TestListSnapshotsNewestFirst(t *testing.T) {
	d := openTestDB(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	for i, host := range []string{"first", "second", "third"} {
		_, err := d.SaveSnapshot(ctx, Snapshot{
			Hostname: host,
			Document: json.RawMessage(`{}`),
			TakenAt:  base.Add(time.Duration(i) * time.Hour),
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	all, err := d.ListSnapshots(ctx, 0)
	if err != nil {
		t.Fatalf("ListSnapshots() error = %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("ListSnapshots() len = %d, want 3", len(all))
	}
	for i, want := range []string{"third", "second", "first"} {
		if all[i].Hostname != want {
			t.Errorf("ListSnapshots()[%d] = %s, want %s", i, all[i].Hostname, want)
		}
		if all[i].Document != nil {
			t.Errorf("ListSnapshots()[%d] loaded its document", i)
		}
	}

	limited, err := d.ListSnapshots(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 2 || limited[0].Hostname != "third" {
		t.Errorf("ListSnapshots(2) = %+v", limited)
	}
}

func TestListSnapshotsEmpty(t *testing.T) {
	d := openTestDB(t)

	got, err := d.ListSnapshots(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("ListSnapshots() = %#v, want empty", got)
	}
}

func TestNewSnapshot(t *testing.T) {
	data := &collector.SystemData{
		Uname: collector.UnameInfo{KernelRelease: "6.18.4-arch1-1"},
		Lspci: []collector.PCIDevice{{Slot: "00:00.0"}, {Slot: "00:02.0"}},
		Lsblk: []collector.BlockDevice{{Name: "nvme0n1"}},
		Lsmod: []collector.KernelModule{},
	}

	s, err := NewSnapshot("box", data)
	if err != nil {
		t.Fatalf("NewSnapshot() error = %v", err)
	}
	if s.Hostname != "box" || s.KernelRelease != "6.18.4-arch1-1" {
		t.Errorf("NewSnapshot() = %+v", s)
	}
	if s.PCICount != 2 || s.BlockCount != 1 || s.ModuleCount != 0 {
		t.Errorf("counts = %d/%d/%d", s.PCICount, s.BlockCount, s.ModuleCount)
	}

	var decoded collector.SystemData
	if err := json.Unmarshal(s.Document, &decoded); err != nil {
		t.Fatalf("document does not decode: %v", err)
	}
	if len(decoded.Lspci) != 2 || decoded.Lspci[1].Slot != "00:02.0" {
		t.Errorf("decoded Lspci = %+v", decoded.Lspci)
	}
}
