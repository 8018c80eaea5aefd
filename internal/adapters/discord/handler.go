package discord

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"ctabot/internal/config"
	"ctabot/internal/domain"
	"ctabot/internal/ports/input"
	"ctabot/internal/ports/output"
	dpkg "ctabot/pkg/discord"
)

// commandTimeout bounds the Discord calls made while serving one interaction.
const commandTimeout = 15 * time.Second

type commandFunc func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, opts dpkg.Options)

// Handler handles Discord interactions using use cases.
type Handler struct {
	ctx    context.Context
	alerts input.AlertUseCase
	draws  input.DrawUseCase
	tr     output.T
	cfg    *config.Config
	logger *zap.Logger
	routes map[string]commandFunc
}

// NewHandler creates a Handler. ctx outlives every interaction and cancels the
// background work they start (purge notices).
func NewHandler(
	ctx context.Context,
	alerts input.AlertUseCase,
	draws input.DrawUseCase,
	tr output.T,
	cfg *config.Config,
	logger *zap.Logger,
) *Handler {
	h := &Handler{
		ctx:    ctx,
		alerts: alerts,
		draws:  draws,
		tr:     tr,
		cfg:    cfg,
		logger: logger,
	}
	h.routes = map[string]commandFunc{
		routeClearMessages: h.handleClearMessages,
		routeVoiceMembers:  h.handleVoiceMembers,
		routeMoveAll:       h.handleMoveAll,
		routeLuckyDraw:     h.handleLuckyDraw,
		routeSetCTA:        h.handleSetCTA,
	}
	return h
}

// HandleCommand routes a slash command to its handler after checking the
// member's permissions.
func (h *Handler) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()
	sub, opts := dpkg.Subcommand(data)
	route := data.Name + " " + sub

	fn, ok := h.routes[route]
	if !ok {
		h.logger.Warn("unknown command", zap.String("command", route))
		return
	}
	if perm, ok := requiredPermissions[route]; ok && !hasPermission(i.Member, perm) {
		respondEphemeral(s, i.Interaction, h.errorMessage(i, domain.ErrMissingPermission, nil))
		return
	}

	ctx, cancel := context.WithTimeout(h.ctx, commandTimeout)
	defer cancel()
	h.logger.Debug("command", zap.String("command", route), zap.String("user_id", interactionUserID(i)))
	fn(ctx, s, i, opts)
}

func locale(i *discordgo.InteractionCreate) string {
	return string(i.Locale)
}

func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}
