// internal/repository/fixtures.go
package repository

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/gurkanbulca/opsboard/internal/board"
)

//go:embed fixtures/board.yaml
var defaultFixtures []byte

// Fixtures is the mock data file: one board per organization.
type Fixtures struct {
	Organizations []OrganizationFixture `yaml:"organizations"`
}

type OrganizationFixture struct {
	ID    string       `yaml:"id"`
	Name  string       `yaml:"name"`
	Tasks []board.Task `yaml:"tasks"`
}

// LoadFixtures decodes and normalises a fixtures document. Missing ids and timestamps are
// filled in; unknown enum values are rejected.
func LoadFixtures(r io.Reader, now time.Time) (*Fixtures, error) {
	var fx Fixtures
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&fx); err != nil {
		return nil, fmt.Errorf("decode fixtures: %w", err)
	}

	for oi := range fx.Organizations {
		org := &fx.Organizations[oi]
		if org.ID == "" {
			return nil, fmt.Errorf("fixtures: organization %d has no id", oi)
		}
		for ti := range org.Tasks {
			if err := normalizeFixtureTask(&org.Tasks[ti], org.ID, now); err != nil {
				return nil, fmt.Errorf("fixtures: organization %s task %d: %w", org.ID, ti, err)
			}
		}
	}
	return &fx, nil
}

// LoadFixturesFile reads fixtures from path, or the embedded defaults when path is empty.
func LoadFixturesFile(path string, now time.Time) (*Fixtures, error) {
	if path == "" {
		return LoadFixtures(bytes.NewReader(defaultFixtures), now)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fixtures: %w", err)
	}
	defer f.Close()
	return LoadFixtures(f, now)
}

// SeedMemory loads every organization of fx into repo.
func SeedMemory(ctx context.Context, repo *MemoryTaskRepository, fx *Fixtures) error {
	for _, org := range fx.Organizations {
		if err := repo.Seed(ctx, org.ID, org.Tasks); err != nil {
			return fmt.Errorf("seed %s: %w", org.ID, err)
		}
	}
	return nil
}

func normalizeFixtureTask(t *board.Task, orgID string, now time.Time) error {
	if t.Title == "" {
		return fmt.Errorf("title is required")
	}
	if _, err := board.ParseStatus(string(t.Status)); err != nil {
		return err
	}
	if t.Priority == "" {
		t.Priority = board.PriorityMedium
	}
	if _, err := board.ParsePriority(string(t.Priority)); err != nil {
		return err
	}
	if t.Type == "" {
		t.Type = board.TypeGeneral
	}
	if _, err := board.ParseType(string(t.Type)); err != nil {
		return err
	}

	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	t.OrganizationID = orgID
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = t.CreatedAt
	}
	if t.Checklist == nil {
		t.Checklist = []board.ChecklistItem{}
	}
	if t.Activity == nil {
		t.Activity = []board.Activity{}
	}
	for i := range t.Checklist {
		if t.Checklist[i].ID == "" {
			t.Checklist[i].ID = uuid.NewString()
		}
	}
	for i := range t.Activity {
		a := &t.Activity[i]
		if a.ID == "" {
			a.ID = uuid.NewString()
		}
		if a.Kind == "" {
			a.Kind = board.ActivityComment
		}
		if a.CreatedAt.IsZero() {
			a.CreatedAt = t.CreatedAt
		}
	}
	return nil
}
