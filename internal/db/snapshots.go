package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sigreer/hostprobe/internal/collector"
)

// DefaultListLimit caps ListSnapshots when no positive limit is given
const DefaultListLimit = 20

// Snapshot is one stored inventory document with its listing metadata
type Snapshot struct {
	ID            string
	Hostname      string
	KernelRelease string
	PCICount      int
	BlockCount    int
	ModuleCount   int
	Document      json.RawMessage
	TakenAt       time.Time
}

// NewSnapshot builds a snapshot of data taken on hostname. The document is
// stored compact; rendering is left to the reader.
func NewSnapshot(hostname string, data *collector.SystemData) (Snapshot, error) {
	doc, err := json.Marshal(data)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to encode document: %w", err)
	}
	return Snapshot{
		Hostname:      hostname,
		KernelRelease: data.Uname.KernelRelease,
		PCICount:      len(data.Lspci),
		BlockCount:    len(data.Lsblk),
		ModuleCount:   len(data.Lsmod),
		Document:      doc,
	}, nil
}

// SaveSnapshot stores s and returns its ID. A missing ID or timestamp is
// filled in.
func (d *DB) SaveSnapshot(ctx context.Context, s Snapshot) (string, error) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.TakenAt.IsZero() {
		s.TakenAt = time.Now()
	}
	if len(s.Document) == 0 {
		return "", errors.New("snapshot has no document")
	}

	_, err := d.conn.ExecContext(ctx, `
		INSERT INTO snapshots (id, hostname, kernel_release, pci_count, block_count, module_count, document, taken_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, s.ID, s.Hostname, s.KernelRelease, s.PCICount, s.BlockCount, s.ModuleCount, string(s.Document), s.TakenAt.UTC())
	if err != nil {
		return "", fmt.Errorf("failed to save snapshot: %w", err)
	}

	return s.ID, nil
}

// ListSnapshots returns the most recent snapshots, newest first. Documents
// are not loaded.
func (d *DB) ListSnapshots(ctx context.Context, limit int) ([]*Snapshot, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	rows, err := d.conn.QueryContext(ctx, `
		SELECT id, hostname, kernel_release, pci_count, block_count, module_count, taken_at
		FROM snapshots
		ORDER BY taken_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	snapshots := make([]*Snapshot, 0)
	for rows.Next() {
		var s Snapshot
		var kernel sql.NullString
		var pci, block, modules sql.NullInt64

		if err := rows.Scan(&s.ID, &s.Hostname, &kernel, &pci, &block, &modules, &s.TakenAt); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}

		s.KernelRelease = kernel.String
		s.PCICount = int(pci.Int64)
		s.BlockCount = int(block.Int64)
		s.ModuleCount = int(modules.Int64)
		snapshots = append(snapshots, &s)
	}

	return snapshots, rows.Err()
}

// GetSnapshot loads a snapshot with its document. It returns nil, nil when
// no snapshot has the given ID.
func (d *DB) GetSnapshot(ctx context.Context, id string) (*Snapshot, error) {
	var s Snapshot
	var kernel, document sql.NullString
	var pci, block, modules sql.NullInt64

	err := d.conn.QueryRowContext(ctx, `
		SELECT id, hostname, kernel_release, pci_count, block_count, module_count, document, taken_at
		FROM snapshots
		WHERE id = ?
	`, id).Scan(&s.ID, &s.Hostname, &kernel, &pci, &block, &modules, &document, &s.TakenAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}

	s.KernelRelease = kernel.String
	s.PCICount = int(pci.Int64)
	s.BlockCount = int(block.Int64)
	s.ModuleCount = int(modules.Int64)
	s.Document = json.RawMessage(document.String)
	return &s, nil
}
