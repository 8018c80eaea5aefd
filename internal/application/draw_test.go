package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ctabot/internal/domain"
	"ctabot/internal/domain/entities"
)

func drawCandidates() []entities.Member {
	return []entities.Member{
		{UserID: "1", DisplayName: "Aria", RoleIDs: []string{"officer"}},
		{UserID: "2", DisplayName: "Bren"},
		{UserID: "3", DisplayName: "music bot", Bot: true, RoleIDs: []string{"officer"}},
		{UserID: "4", DisplayName: "Cato", RoleIDs: []string{"member", "officer"}},
		{UserID: "5", DisplayName: "Dara", RoleIDs: []string{"member"}},
	}
}

func TestDrawService_UniqueHumanWinners(t *testing.T) {
	svc := NewDrawService(42)

	winners, err := svc.Draw(drawCandidates(), "", 3)
	require.NoError(t, err)
	require.Len(t, winners, 3)

	seen := map[string]bool{}
	for _, w := range winners {
		assert.False(t, w.Bot)
		assert.False(t, seen[w.UserID], "winner drawn twice")
		seen[w.UserID] = true
	}
}

func TestDrawService_RoleFilterAndCap(t *testing.T) {
	svc := NewDrawService(7)

	winners, err := svc.Draw(drawCandidates(), "officer", 10)
	require.NoError(t, err)

	ids := []string{}
	for _, w := range winners {
		ids = append(ids, w.UserID)
	}
	assert.ElementsMatch(t, []string{"1", "4"}, ids)
}

func TestDrawService_NoEligible(t *testing.T) {
	svc := NewDrawService(1)

	_, err := svc.Draw(drawCandidates(), "guest", 1)
	assert.ErrorIs(t, err, domain.ErrNoEligibleMembers)

	_, err = svc.Draw(nil, "", 1)
	assert.ErrorIs(t, err, domain.ErrNoEligibleMembers)
}
