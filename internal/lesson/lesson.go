// Package lesson holds the interactive walkthroughs of the program. Each lesson
// combines the API clients with console prompts and formatted reports.
package lesson

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"apiexplorer/internal/coinpaprika"
	"apiexplorer/internal/console"
	"apiexplorer/internal/fetcher"
	"apiexplorer/internal/jsonplaceholder"
	"apiexplorer/internal/openmeteo"
	"apiexplorer/internal/report"
)

// Default targets of the resilience demo
const (
	DefaultUnreachableURL = "https://this-domain-does-not-exist-12345.com/api"
	DefaultSlowURL        = "https://httpstat.us/200?sleep=5000"
	DefaultSlowTimeout    = time.Second
)

// ErrUnknownLesson is returned by Lookup
var ErrUnknownLesson = errors.New("unknown lesson")

// Demo holds the deliberately failing targets of the resilience lesson
type Demo struct {
	UnreachableURL string
	SlowURL        string
	SlowTimeout    time.Duration
}

// DefaultDemo returns the public targets used outside of tests
func DefaultDemo() Demo {
	return Demo{
		UnreachableURL: DefaultUnreachableURL,
		SlowURL:        DefaultSlowURL,
		SlowTimeout:    DefaultSlowTimeout,
	}
}

// Env is everything a lesson needs
type Env struct {
	Out         *report.Printer
	In          *console.Prompter
	Fetcher     *fetcher.Fetcher
	Placeholder *jsonplaceholder.Client
	Weather     *openmeteo.Client
	Crypto      *coinpaprika.Client
	Cities      *openmeteo.Cities
	Coins       *coinpaprika.Coins
	OutputFile  string
	Demo        Demo
	Logger      zerolog.Logger
	Now         func() time.Time
}

func (e *Env) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

// fail reports err to the user. Shape mismatches get their own wording.
func (e *Env) fail(prefix string, err error) {
	if errors.Is(err, fetcher.ErrUnexpectedShape) {
		e.Out.Linef("Error: Unexpected response structure. %v", err)
		return
	}
	e.Out.Linef("%s: %v", prefix, err)
}

// Lesson is a named, runnable walkthrough
type Lesson struct {
	Name  string
	Title string
	Run   func(ctx context.Context, env *Env) error
}

var lessons = []Lesson{
	{Name: "basics", Title: "Basic GET requests", Run: Basics},
	{Name: "status", Title: "Status codes and JSON parsing", Run: StatusCodes},
	{Name: "explore", Title: "Dynamic queries with user input", Run: Explore},
	{Name: "resilience", Title: "Robust error handling", Run: Resilience},
	{Name: "dashboard", Title: "Weather and crypto dashboard", Run: Dashboard},
}

// All returns every lesson in teaching order
func All() []Lesson {
	return append([]Lesson(nil), lessons...)
}

// Names lists the lesson names in teaching order
func Names() []string {
	names := make([]string, 0, len(lessons))
	for _, l := range lessons {
		names = append(names, l.Name)
	}
	return names
}

// Lookup finds a lesson by name
func Lookup(name string) (Lesson, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, l := range lessons {
		if l.Name == key {
			return l, nil
		}
	}
	return Lesson{}, fmt.Errorf("%w %q, available lessons: %s", ErrUnknownLesson, name, strings.Join(Names(), ", "))
}

// Exec runs the lesson with logging around it
func (l Lesson) Exec(ctx context.Context, env *Env) error {
	env.Logger.Debug().Str("lesson", l.Name).Msg("starting lesson")
	start := time.Now()

	err := l.Run(ctx, env)

	env.Logger.Debug().
		Str("lesson", l.Name).
		Dur("elapsed", time.Since(start)).
		Err(err).
		Msg("lesson finished")
	return err
}
