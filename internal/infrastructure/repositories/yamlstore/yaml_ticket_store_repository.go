package yamlstore

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rios0rios0/vermap/internal/domain/entities"
)

const (
	ticketDirMode  = 0o755
	ticketFileMode = 0o644
	ticketFileExt  = ".yaml"
)

// YamlTicketStoreRepository persists drafted tickets as one YAML file per
// package under a tickets directory.
type YamlTicketStoreRepository struct{}

// NewYamlTicketStoreRepository creates a YAML-backed ticket store.
func NewYamlTicketStoreRepository() *YamlTicketStoreRepository {
	return &YamlTicketStoreRepository{}
}

// SaveAll writes each record to <dir>/<package>.yaml, creating the directory
// when missing. Existing files for the same package are overwritten.
func (r *YamlTicketStoreRepository) SaveAll(dir string, tickets []*entities.TicketRecord) error {
	if err := os.MkdirAll(dir, ticketDirMode); err != nil {
		return fmt.Errorf("failed to create ticket directory %q: %w", dir, err)
	}

	for _, ticket := range tickets {
		data, err := yaml.Marshal(ticket)
		if err != nil {
			return fmt.Errorf("failed to marshal ticket for %s: %w", ticket.PackageName, err)
		}

		path := filepath.Join(dir, ticket.PackageName+ticketFileExt)
		if err = os.WriteFile(path, data, ticketFileMode); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}

	return nil
}

// LoadAll reads every ticket file in dir, sorted by package name.
func (r *YamlTicketStoreRepository) LoadAll(dir string) ([]*entities.TicketRecord, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read ticket directory %q: %w", dir, err)
	}

	var tickets []*entities.TicketRecord
	for _, entry := range dirEntries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ticketFileExt) {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", entry.Name(), err)
		}

		var ticket entities.TicketRecord
		if err = yaml.Unmarshal(data, &ticket); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", entry.Name(), err)
		}
		tickets = append(tickets, &ticket)
	}

	sort.Slice(tickets, func(i, j int) bool {
		return tickets[i].PackageName < tickets[j].PackageName
	})

	return tickets, nil
}
