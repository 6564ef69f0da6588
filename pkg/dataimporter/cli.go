package dataimporter

import (
	"github.com/buswatch/buswatch/pkg/database"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	fileFlag := &cli.StringFlag{
		Name:     "file",
		Usage:    "path to the source file",
		Required: true,
	}

	connect := func(c *cli.Context) error {
		return database.Connect()
	}

	return &cli.Command{
		Name:  "data-importer",
		Usage: "Imports reference data into the database",
		Subcommands: []*cli.Command{
			{
				Name:   "stops",
				Usage:  "import stops from a CSV export",
				Flags:  []cli.Flag{fileFlag},
				Before: connect,
				Action: func(c *cli.Context) error {
					return ImportStops(c.Context, c.String("file"))
				},
			},
			{
				Name:   "routes",
				Usage:  "import route definitions and stop sequences from the schedule file",
				Flags:  []cli.Flag{fileFlag},
				Before: connect,
				Action: func(c *cli.Context) error {
					return ImportRoutes(c.Context, c.String("file"))
				},
			},
			{
				Name:   "timetable",
				Usage:  "refresh cached official timetable snapshots from the schedule file",
				Flags:  []cli.Flag{fileFlag},
				Before: connect,
				Action: func(c *cli.Context) error {
					return RefreshTimetables(c.Context, c.String("file"))
				},
			},
			{
				Name:   "seed-official",
				Usage:  "seed official duration samples from the schedule file",
				Flags:  []cli.Flag{fileFlag},
				Before: connect,
				Action: func(c *cli.Context) error {
					return SeedOfficialSamples(c.Context, c.String("file"))
				},
			},
		},
	}
}
