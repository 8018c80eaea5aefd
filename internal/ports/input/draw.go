package input

import "ctabot/internal/domain/entities"

type DrawUseCase interface {
	Draw(candidates []entities.Member, roleID string, winners int) ([]entities.Member, error)
}
