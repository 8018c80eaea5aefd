package discord

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"ctabot/internal/application"
	"ctabot/internal/config"
	"ctabot/internal/ports/output"
	"ctabot/pkg/tz"
)

// Bot is the Discord adapter.
type Bot struct {
	session    *discordgo.Session
	config     *config.Config
	handler    *Handler
	alerts     *application.AlertService
	countdowns *application.CountdownTracker
	dispatcher *application.Dispatcher
	logger     *zap.Logger
}

// NewBot creates a Bot and wires ports: output adapters -> application (use cases) -> handler.
// ctx bounds every goroutine the bot starts.
func NewBot(ctx context.Context, cfg *config.Config, store *application.AlertStore, tr output.T, logger *zap.Logger) (*Bot, error) {
	s, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	s.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsGuildVoiceStates |
		discordgo.IntentsGuildMessages

	loc := tz.Fixed(cfg.UTCOffsetHours)
	messenger := NewMessenger(s, tr, cfg.Locale, logger)
	countdowns := application.NewCountdownTracker(ctx, messenger, cfg.CountdownInterval, logger.Named("countdown"))
	alerts := application.NewAlertService(store, messenger, countdowns, loc, logger.Named("alerts"))
	dispatcher := application.NewDispatcher(store, messenger, countdowns, application.DispatchConfig{
		ChannelID:   cfg.CTAChannelID,
		Interval:    cfg.DispatchInterval,
		RetryWindow: cfg.RetryWindow,
		Location:    loc,
	}, logger.Named("dispatch"))
	draws := application.NewDrawService(time.Now().UnixNano())

	bot := &Bot{
		session:    s,
		config:     cfg,
		handler:    NewHandler(ctx, alerts, draws, tr, cfg, logger.Named("commands")),
		alerts:     alerts,
		countdowns: countdowns,
		dispatcher: dispatcher,
		logger:     logger,
	}
	bot.setupHandlers()
	return bot, nil
}

func (b *Bot) setupHandlers() {
	b.session.AddHandler(b.handleInteraction)
	b.session.AddHandler(b.handler.HandleMemberAdd)
	b.session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		b.logger.Info("connected", zap.String("user", r.User.Username), zap.Int("guilds", len(r.Guilds)))
	})
}

func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand || i.GuildID != b.config.GuildID {
		return
	}
	b.handler.HandleCommand(s, i)
}

// Run connects to Discord, registers the guild commands, resumes the
// countdowns of stored alerts and runs the dispatch loop until ctx is done.
func (b *Bot) Run(ctx context.Context) error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}
	defer func() {
		if err := b.session.Close(); err != nil {
			b.logger.Warn("close discord session", zap.Error(err))
		}
	}()

	registered, err := b.session.ApplicationCommandBulkOverwrite(b.session.State.User.ID, b.config.GuildID, commands())
	if err != nil {
		b.logger.Error("command registration failed", zap.Error(err))
	} else {
		b.logger.Info("commands registered", zap.Int("count", len(registered)))
	}

	resumed := b.alerts.ResumeCountdowns()
	b.logger.Info("bot online",
		zap.Int("pending_alerts", len(b.alerts.PendingAlerts())),
		zap.Int("countdowns_resumed", resumed))

	dispatchDone := b.startScheduledTasks(ctx)
	<-ctx.Done()

	b.logger.Info("shutting down")
	b.countdowns.StopAll()
	<-dispatchDone
	return nil
}
