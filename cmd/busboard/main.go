package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/uqlakes/busboard"
	"github.com/uqlakes/busboard/config"
	"github.com/uqlakes/busboard/formatter"
	"github.com/uqlakes/busboard/internal"
	"github.com/uqlakes/busboard/schedule"

	_ "time/tzdata"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal().Err(err).Send()
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "busboard",
		Usage: "Next departures and live vehicle positions for one bus station",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML config path (default: ./" + config.DefaultPath + " if present)",
				EnvVars: []string{"BUSBOARD_CONFIG"},
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
		},
		Before: func(c *cli.Context) error {
			internal.InitLogging(c.Bool("debug"))
			return nil
		},
		Action: interactiveAction,
		Commands: []*cli.Command{
			{
				Name:   "interactive",
				Usage:  "prompt for date, time and route, then print the board (default)",
				Action: interactiveAction,
			},
			{
				Name:  "departures",
				Usage: "print the board for one search",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "date", Usage: "departure date, YYYY-MM-DD (default: today)"},
					&cli.StringFlag{Name: "time", Usage: "departure time, HH:mm (default: now)"},
					&cli.StringFlag{Name: "route", Value: busboard.AllRoutesKey, Usage: "route short name, menu number or \"all\""},
					&cli.StringFlag{Name: "format", Value: "table", Usage: "output format: table|json"},
				},
				Action: departuresAction,
			},
			{
				Name:   "routes",
				Usage:  "list the station's routes and live cache state",
				Action: routesAction,
			},
		},
	}
}

// withBoard loads the board, runs fn and flushes metrics
func withBoard(c *cli.Context, fn func(*busboard.Board) error) error {
	cfg, err := config.LoadAppConfig(c.String("config"))
	if err != nil {
		return err
	}

	board, err := busboard.New(c.Context, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := board.Close(); err != nil {
			log.Warn().Err(err).Send()
		}
	}()

	return fn(board)
}

func interactiveAction(c *cli.Context) error {
	return withBoard(c, func(board *busboard.Board) error {
		return runSession(board, os.Stdin, c.App.Writer)
	})
}

func departuresAction(c *cli.Context) error {
	format := c.String("format")
	if format != "table" && format != "json" {
		return cli.Exit(fmt.Sprintf("unknown format %q, use table or json", format), 2)
	}

	return withBoard(c, func(board *busboard.Board) error {
		now := board.Now()
		date := c.String("date")
		if date == "" {
			date = now.Format(schedule.DateLayout)
		}
		clock := c.String("time")
		if clock == "" {
			clock = now.Format("15:04")
		}

		q, err := board.ParseQuery(date, clock, c.String("route"))
		var qe *busboard.QueryError
		if errors.As(err, &qe) {
			return cli.Exit(qe.Msg, 2)
		}
		if err != nil {
			return err
		}

		rows, err := board.Search(q)
		if err != nil {
			return err
		}

		if format == "json" {
			return formatter.WriteJSON(c.App.Writer, formatter.WrapBoard(board.Config.Station.Name, q, rows, now))
		}
		formatter.WriteTable(c.App.Writer, rows)
		return nil
	})
}

func routesAction(c *cli.Context) error {
	return withBoard(c, func(board *busboard.Board) error {
		out := c.App.Writer
		fmt.Fprintf(out, "Routes serving %s (%s):\n", board.Config.Station.Name, board.Config.Station.ParentStation)
		formatter.WriteRouteMenu(out, board.RouteChoices())

		fmt.Fprintln(out)
		for _, st := range board.CacheStatus() {
			switch {
			case !st.Present:
				fmt.Fprintf(out, "%s: missing\n", st.File)
			case st.Fresh:
				fmt.Fprintf(out, "%s: fresh (%s old)\n", st.File, st.Age.Round(time.Second))
			default:
				fmt.Fprintf(out, "%s: stale (%s old)\n", st.File, st.Age.Round(time.Second))
			}
		}
		return nil
	})
}
