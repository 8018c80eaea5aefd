package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli"
	"go.uber.org/zap"

	"ctabot/internal/config"
	"ctabot/internal/domain/entities"
	"ctabot/pkg/tz"
)

func listAlerts(_ *cli.Context) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}
	ctx := context.Background()
	repo, closeRepo, err := openRepository(ctx, cfg, zap.NewNop())
	if err != nil {
		return err
	}
	defer closeRepo()

	alerts, err := repo.Load(ctx)
	if err != nil {
		return err
	}
	return printAlerts(os.Stdout, alerts, tz.Fixed(cfg.UTCOffsetHours), time.Now())
}

func printAlerts(out io.Writer, alerts []entities.Alert, loc *time.Location, now time.Time) error {
	if len(alerts) == 0 {
		_, err := fmt.Fprintln(out, "ctabot: no pending alerts")
		return err
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ALERT TIME\tMASSING TIME\tLOCATION\tROLE\tMESSAGE ID\tSTATUS")
	for _, a := range alerts {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			a.TriggerTime, a.MassingTime, a.Location, a.RoleID, a.Notification.MessageID, alertStatus(a, loc, now))
	}
	return w.Flush()
}

func alertStatus(a entities.Alert, loc *time.Location, now time.Time) string {
	at, err := tz.ParseAlertTime(a.TriggerTime, loc)
	switch {
	case err != nil:
		return "invalid"
	case now.Before(at):
		return "in " + at.Sub(now).Truncate(time.Second).String()
	default:
		return "due"
	}
}
