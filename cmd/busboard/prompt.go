package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/uqlakes/busboard"
	"github.com/uqlakes/busboard/formatter"
	"github.com/uqlakes/busboard/gtfs"
	"github.com/uqlakes/busboard/schedule"
)

var (
	acceptAnswers  = map[string]bool{"y": true, "yes": true}
	declineAnswers = map[string]bool{"n": true, "no": true}
)

// prompter reads one answer per line from in and writes prompts to out
type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewScanner(in), out: out}
}

// ask returns the next trimmed line, or io.EOF once input is exhausted
func (p *prompter) ask(question string) (string, error) {
	fmt.Fprint(p.out, question)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.in.Text()), nil
}

func (p *prompter) askDate(loc *time.Location) (time.Time, error) {
	for {
		input, err := p.ask("What date will you depart by bus? (YYYY-MM-DD) ")
		if err != nil {
			return time.Time{}, err
		}
		d, err := schedule.ParseDate(input, loc)
		if err == nil {
			return d, nil
		}
		fmt.Fprintln(p.out, "Incorrect date format. Please use YYYY-MM-DD")
	}
}

func (p *prompter) askTime() (schedule.Clock, error) {
	for {
		input, err := p.ask("What time will you depart by bus? (HH:mm) ")
		if err != nil {
			return schedule.Clock{}, err
		}
		c, err := schedule.ParseClock(input)
		if err == nil {
			return c, nil
		}
		fmt.Fprintln(p.out, "Incorrect time format. Please use HH:mm")
	}
}

func (p *prompter) askRoutes(board *busboard.Board) ([]gtfs.Route, error) {
	formatter.WriteRouteMenu(p.out, board.RouteChoices())
	for {
		input, err := p.ask("What bus route would you like to take? ")
		if err != nil {
			return nil, err
		}
		routes, err := board.SelectRoutes(input)
		if err == nil {
			return routes, nil
		}
		fmt.Fprintln(p.out, "Please enter a valid option for a bus route.")
	}
}

func (p *prompter) askAgain() (bool, error) {
	for {
		input, err := p.ask("Would you like to search again? ")
		if err != nil {
			return false, err
		}
		answer := strings.ToLower(input)
		switch {
		case acceptAnswers[answer]:
			return true, nil
		case declineAnswers[answer]:
			return false, nil
		}
		fmt.Fprintln(p.out, "Please enter a valid option.")
	}
}

// runSession drives the interactive search loop until the user declines or input ends
func runSession(board *busboard.Board, in io.Reader, out io.Writer) error {
	p := newPrompter(in, out)
	name := board.Config.Station.Name
	fmt.Fprintf(out, "Welcome to the %s bus tracker!\n", name)

	for {
		again, err := searchOnce(p, board)
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(out)
			break
		}
		if err != nil {
			return err
		}
		if !again {
			break
		}
	}

	fmt.Fprintf(out, "Thanks for using the %s bus tracker!\n", name)
	return nil
}

func searchOnce(p *prompter, board *busboard.Board) (bool, error) {
	date, err := p.askDate(board.Location)
	if err != nil {
		return false, err
	}
	clock, err := p.askTime()
	if err != nil {
		return false, err
	}
	routes, err := p.askRoutes(board)
	if err != nil {
		return false, err
	}

	rows, err := board.Search(schedule.Query{Date: date, Time: clock, Routes: routes})
	if err != nil {
		return false, err
	}
	formatter.WriteTable(p.out, rows)

	return p.askAgain()
}
