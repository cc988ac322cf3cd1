package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/liketelecom/fieldservice/internal/core/domain"
	"github.com/liketelecom/fieldservice/internal/core/ports"
	"github.com/liketelecom/fieldservice/internal/core/state"
)

// RankingService projects the monthly leaderboard out of the point ledger.
// It never mutates state.
type RankingService struct {
	state *state.AppState
}

func NewRankingService(st *state.AppState) *RankingService {
	return &RankingService{state: st}
}

// Monthly ranks active users of the given role by their current-month
// points, descending. Ties break by name ascending so the order is
// deterministic. The full list is returned; truncation is a display concern.
func (s *RankingService) Monthly(ctx context.Context, role string) ([]ports.RankingEntry, error) {
	if role != domain.RoleTechnician && role != domain.RoleHelper {
		return nil, fmt.Errorf("%w: ranking role must be technician or helper", domain.ErrValidation)
	}

	bucket := domain.MonthKey(time.Now().UTC())

	var entries []ports.RankingEntry
	s.state.View(func(v *state.View) {
		for _, u := range v.Users() {
			if u.Role != role || u.Status != domain.UserActive {
				continue
			}
			entries = append(entries, ports.RankingEntry{
				User:   u,
				Points: u.PointsFor(bucket),
			})
		}
	})

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Points != entries[j].Points {
			return entries[i].Points > entries[j].Points
		}
		return entries[i].User.Name < entries[j].User.Name
	})
	return entries, nil
}
