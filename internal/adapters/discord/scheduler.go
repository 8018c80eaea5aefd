package discord

import (
	"context"
)

// startScheduledTasks runs the alert dispatch loop until ctx is done. The
// returned channel is closed once the loop has exited.
func (b *Bot) startScheduledTasks(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		b.dispatcher.Run(ctx)
	}()
	return done
}
