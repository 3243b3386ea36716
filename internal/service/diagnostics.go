package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/utafrali/storefront-api/internal/domain"
	"github.com/utafrali/storefront-api/internal/repository"
)

// Status labels shown by the connectivity report.
const (
	BackendRunning       = "✅ Running"
	DatabaseNotAvailable = "❌ Not Available"
	DatabaseConnected    = "✅ Connected"
	DatabaseNotConnected = "❌ Not Connected"
	databaseErrorPrefix  = "⚠️ Error: "
	maxErrorDetailRunes  = 80
)

// StatusReport is the body of the connectivity check. Collections is nil
// unless the store answered, and is then rendered even when empty.
type StatusReport struct {
	Backend     string
	Database    string
	Collections []string
}

func (r StatusReport) MarshalJSON() ([]byte, error) {
	out := struct {
		Backend     string    `json:"backend"`
		Database    string    `json:"database"`
		Collections *[]string `json:"collections,omitempty"`
	}{Backend: r.Backend, Database: r.Database}
	if r.Collections != nil {
		out.Collections = &r.Collections
	}
	return json.Marshal(out)
}

// DiagnosticsService reports on store connectivity and the fixed schema.
type DiagnosticsService struct {
	store repository.DocumentStore
}

func NewDiagnosticsService(store repository.DocumentStore) *DiagnosticsService {
	return &DiagnosticsService{store: store}
}

// Status never fails. Store problems are reported in the Database field.
func (s *DiagnosticsService) Status(ctx context.Context) StatusReport {
	report := StatusReport{Backend: BackendRunning, Database: DatabaseNotAvailable}

	names, err := s.store.ListCollectionNames(ctx)
	switch {
	case errors.Is(err, repository.ErrUnavailable):
		report.Database = DatabaseNotConnected
	case err != nil:
		report.Database = databaseErrorPrefix + truncate(err.Error(), maxErrorDetailRunes)
	default:
		report.Database = DatabaseConnected
		if names == nil {
			names = []string{}
		}
		report.Collections = names
	}
	return report
}

// Collections returns the published schema collections.
func (s *DiagnosticsService) Collections() []string {
	return domain.Collections()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
