package ports

import (
	"context"

	"github.com/liketelecom/fieldservice/internal/core/domain"
)

// RankingEntry pairs a user with their points for the ranked month.
type RankingEntry struct {
	User   *domain.User
	Points int
}

// RankingService derives the monthly leaderboard from the point ledger.
// It is a pure read projection; truncation for display is a presentation
// concern.
type RankingService interface {
	// Monthly returns the full descending ranking of active users holding
	// the given role, for the current month.
	Monthly(ctx context.Context, role string) ([]RankingEntry, error)
}
