package application

import (
	"math/rand"
	"sync"

	"ctabot/internal/domain"
	"ctabot/internal/domain/entities"
	"ctabot/internal/ports/input"
)

var _ input.DrawUseCase = (*DrawService)(nil)

// DrawService picks lucky draw winners.
type DrawService struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewDrawService(seed int64) *DrawService {
	return &DrawService{rng: rand.New(rand.NewSource(seed))}
}

// Draw samples up to winners members without replacement among the human
// candidates, restricted to roleID when it is set.
func (s *DrawService) Draw(candidates []entities.Member, roleID string, winners int) ([]entities.Member, error) {
	eligible := make([]entities.Member, 0, len(candidates))
	for _, m := range candidates {
		if m.Bot {
			continue
		}
		if roleID != "" && !m.HasRole(roleID) {
			continue
		}
		eligible = append(eligible, m)
	}
	if len(eligible) == 0 || winners < 1 {
		return nil, domain.ErrNoEligibleMembers
	}
	winners = min(winners, len(eligible))

	s.mu.Lock()
	perm := s.rng.Perm(len(eligible))
	s.mu.Unlock()

	out := make([]entities.Member, winners)
	for i := range out {
		out[i] = eligible[perm[i]]
	}
	return out, nil
}
