package api

import (
	"github.com/buswatch/buswatch/pkg/database"
	"github.com/buswatch/buswatch/pkg/metrics"
	"github.com/buswatch/buswatch/pkg/prediction"
	"github.com/buswatch/buswatch/pkg/ratelimit"
	"github.com/buswatch/buswatch/pkg/redis_client"
	"github.com/buswatch/buswatch/pkg/tracker"
	"github.com/buswatch/buswatch/pkg/util"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Provides the core web API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Value: ":8080",
						Usage: "listen target for the web server",
					},
					&cli.DurationFlag{
						Name:  "event-cooldown",
						Value: ratelimit.DefaultCooldown,
						Usage: "minimum gap between event submissions per journey",
					},
				},
				Action: func(c *cli.Context) error {
					if err := database.Connect(); err != nil {
						return err
					}
					if err := redis_client.Connect(); err != nil {
						return err
					}

					if metricsListen := util.GetEnvironmentDefault("BUSWATCH_METRICS_LISTEN", ""); metricsListen != "" {
						metrics.Serve(metricsListen)
					}

					journeyStore := database.JourneyStore{}

					journeyTracker := &tracker.Tracker{
						Journeys: journeyStore,
						Routes:   database.RouteStore{},
						Stops:    database.StopStore{},
						Predictor: &prediction.Engine{
							Samples: journeyStore,
						},
					}

					limiter := ratelimit.NewCooldownLimiter(redis_client.Client, c.Duration("event-cooldown"))

					return SetupServer(c.String("listen"), journeyTracker, limiter)
				},
			},
		},
	}
}
