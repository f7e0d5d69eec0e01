package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/sigreer/hostprobe/internal/collector"
	"github.com/sigreer/hostprobe/internal/db"
)

func strPtr(s string) *string { return &s }

func TestWriteJSON(t *testing.T) {
	value := map[string]any{"a": []int{1}, "b": "<x>"}

	tests := []struct {
		name   string
		pretty bool
		indent int
		want   string
	}{
		{"compact", false, 4, `{"a":[1],"b":"<x>"}` + "\n"},
		{"pretty four", true, 4, "{\n    \"a\": [\n        1\n    ],\n    \"b\": \"<x>\"\n}\n"},
		{"pretty two", true, 2, "{\n  \"a\": [\n    1\n  ],\n  \"b\": \"<x>\"\n}\n"},
		{"pretty zero", true, 0, "{\n\"a\": [\n1\n],\n\"b\": \"<x>\"\n}\n"},
		{"negative indent", true, -2, "{\n\"a\": [\n1\n],\n\"b\": \"<x>\"\n}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteJSON(&buf, value, tt.pretty, tt.indent); err != nil {
				t.Fatal(err)
			}
			if buf.String() != tt.want {
				t.Errorf("WriteJSON() =\n%q\nwant\n%q", buf.String(), tt.want)
			}
		})
	}
}

func TestWriteJSONRawDocument(t *testing.T) {
	var buf bytes.Buffer
	raw := json.RawMessage(`{"lspci":[],"x11":{"xinput":{"devices":null}}}`)
	if err := WriteJSON(&buf, raw, true, 2); err != nil {
		t.Fatal(err)
	}
	want := "{\n  \"lspci\": [],\n  \"x11\": {\n    \"xinput\": {\n      \"devices\": null\n    }\n  }\n}\n"
	if buf.String() != want {
		t.Errorf("WriteJSON(raw) =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestPrintSummary(t *testing.T) {
	data := &collector.SystemData{
		Uname: collector.UnameInfo{KernelRelease: "6.18.4-arch1-1", Machine: "x86_64"},
		User:  collector.UserPasswdInfo{Username: "alice", UID: "1000", LoginShell: "/bin/zsh"},
		DMI:   collector.DMIInfo{SysVendor: "Dell Inc.", ProductName: "XPS 15 9570"},
		XDG:   collector.XDGInfo{SessionType: strPtr("x11")},
		CPU:   collector.CPUInfo{ModelName: "Intel(R) Core(TM) i7-9750H", CPUs: "12"},
		Proc: collector.ProcInfo{
			Meminfo: collector.ProcMemInfo{
				MemTotal:     "16777216 kB",
				MemAvailable: "8388608 kB",
			},
			Partitions: []collector.Partition{{Major: "259", Minor: "0", Blocks: "1048576", Name: "nvme0n1"}},
		},
		Lsblk: []collector.BlockDevice{{Name: "nvme0n1", DevType: "disk", Size: "476.9G"}},
		Lspci: []collector.PCIDevice{
			{Slot: "00:02.0", ClassName: "VGA compatible controller", KernelDriverInUse: strPtr("i915")},
			{Slot: "00:1f.4", ClassName: "SMBus"},
		},
		Lsmod: make([]collector.KernelModule, 1234),
	}

	var buf bytes.Buffer
	PrintSummary(&buf, data)
	out := buf.String()

	for _, want := range []string{
		"6.18.4-arch1-1 (x86_64)",
		"alice (uid 1000) /bin/zsh",
		"Dell Inc. XPS 15 9570",
		"Intel(R) Core(TM) i7-9750H (12 CPUs)",
		"16 GiB total, 8.0 GiB available",
		"x11",
		"nvme0n1          disk   476.9G   -",
		"1.0 GiB",
		"i915",
		"00:1f.4  SMBus                        -",
		"1,234",
		"Input devices        unavailable",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Swap") || strings.Contains(out, "BIOS") {
		t.Errorf("summary printed empty fields:\n%s", out)
	}
}

func TestPrintSummaryEmptyDocument(t *testing.T) {
	var buf bytes.Buffer
	PrintSummary(&buf, &collector.SystemData{})
	if !strings.Contains(buf.String(), "BLOCK DEVICE") {
		t.Errorf("summary missing table headers:\n%s", buf.String())
	}
}

func TestMemoryLine(t *testing.T) {
	tests := []struct {
		total, other string
		want         string
	}{
		{"2048 kB", "1024 kB", "2.0 MiB total, 1.0 MiB free"},
		{"2048 kB", "", "2.0 MiB total"},
		{"", "1024 kB", ""},
		{"lots kB", "1024 kB", ""},
		{"512", "", "512 B total"},
	}

	for _, tt := range tests {
		if got := memoryLine(tt.total, tt.other, "free"); got != tt.want {
			t.Errorf("memoryLine(%q, %q) = %q, want %q", tt.total, tt.other, got, tt.want)
		}
	}
}

func TestPrintSnapshots(t *testing.T) {
	var buf bytes.Buffer
	PrintSnapshots(&buf, []*db.Snapshot{{
		ID:            "5f1c3a52-8f0e-4d8b-9b57-2f1a2d7c9e10",
		Hostname:      "workstation",
		KernelRelease: "6.18.4-arch1-1",
		PCICount:      6,
		BlockCount:    4,
		ModuleCount:   120,
		TakenAt:       time.Now().Add(-2 * time.Hour),
	}})
	out := buf.String()

	for _, want := range []string{"5f1c3a52-8f0e-4d8b-9b57-2f1a2d7c9e10", "workstation", "6.18.4-arch1-1", "120", "2 hours ago"} {
		if !strings.Contains(out, want) {
			t.Errorf("listing missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	PrintSnapshots(&buf, nil)
	if strings.TrimSpace(buf.String()) != "No snapshots recorded" {
		t.Errorf("empty listing = %q", buf.String())
	}
}
