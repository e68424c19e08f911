// Package ui holds the presentation state machine: the single application
// state, the transitions triggered by user actions, and HTML rendering.
package ui

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Dev-33/WeatherNow---Live-Weather-Tracker/internal/history"
	"github.com/Dev-33/WeatherNow---Live-Weather-Tracker/internal/theme"
	"github.com/Dev-33/WeatherNow---Live-Weather-Tracker/internal/weather"
)

// Phase is the visible display region. Exactly one is shown at a time.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseError   Phase = "error"
	PhaseResult  Phase = "result"
)

// Error panel titles.
const (
	TitleEmptyInput = "Empty Input"
	TitleTimeout    = "Timeout Error"
	TitleNetwork    = "Network Error"
	TitleError      = "Error"
)

var validate = validator.New()

// State is everything the page shows.
type State struct {
	Phase        Phase        `json:"phase"`
	Input        string       `json:"input"`
	ErrorTitle   string       `json:"errorTitle,omitempty"`
	ErrorMessage string       `json:"errorMessage,omitempty"`
	Result       *WeatherView `json:"result,omitempty"`
	History      []string     `json:"history"`
	Dark         bool         `json:"dark"`
}

// App owns the application state. Searches release the lock while the
// gateway call is in flight, so overlapping searches are not coordinated:
// whichever settles last sets the final state.
type App struct {
	mu        sync.Mutex
	state     State
	gateway   weather.Gateway
	history   *history.Manager
	theme     *theme.Preference
	listeners []func(State)
	logger    *slog.Logger
	now       func() time.Time
}

// Option configures an App.
type Option func(*App)

// WithClock overrides the clock used for the result date line.
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) { a.logger = logger }
}

func NewApp(gateway weather.Gateway, hist *history.Manager, pref *theme.Preference, opts ...Option) *App {
	a := &App{
		state:   State{Phase: PhaseIdle, History: []string{}},
		gateway: gateway,
		history: hist,
		theme:   pref,
		logger:  slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}

	hist.OnChange(func(entries []string) {
		a.update(func(s *State) { s.History = entries })
	})
	return a
}

// Start loads persisted history and theme and resets to Idle.
func (a *App) Start() error {
	if err := a.history.Load(); err != nil {
		return err
	}
	if err := a.theme.Load(); err != nil {
		return err
	}

	a.update(func(s *State) {
		*s = State{
			Phase:   PhaseIdle,
			History: a.history.Entries(),
			Dark:    a.theme.Dark(),
		}
	})
	return nil
}

// State returns a copy of the current state.
func (a *App) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state.clone()
}

// Subscribe registers fn to receive the state after every transition.
func (a *App) Subscribe(fn func(State)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.listeners = append(a.listeners, fn)
}

// Submit handles the search form. Blank input goes straight to the Error
// phase without contacting the gateway.
func (a *App) Submit(ctx context.Context, input string) State {
	city := strings.TrimSpace(input)
	if err := validate.Var(city, "required"); err != nil {
		return a.update(func(s *State) {
			s.Phase = PhaseError
			s.Input = input
			s.ErrorTitle = TitleEmptyInput
			s.ErrorMessage = weather.MsgEmptyInput
			s.Result = nil
		})
	}

	return a.search(ctx, city, func(s *State) { s.Input = input })
}

// SelectHistory re-runs the search for a history entry.
func (a *App) SelectHistory(ctx context.Context, city string) State {
	city = strings.TrimSpace(city)
	if city == "" {
		return a.State()
	}
	return a.search(ctx, city, nil)
}

// ToggleTheme flips the theme. The phase is unchanged.
func (a *App) ToggleTheme() (State, error) {
	dark, err := a.theme.Toggle()
	if err != nil {
		a.logger.Error("failed to persist theme preference", "error", err)
	}
	return a.update(func(s *State) { s.Dark = dark }), err
}

// ClearHistory empties the history. The phase is unchanged.
func (a *App) ClearHistory() (State, error) {
	err := a.history.Clear()
	if err != nil {
		a.logger.Error("failed to clear search history", "error", err)
	}
	return a.State(), err
}

// search moves to Loading (applying prepare in the same transition), queries
// the gateway and settles in Result or Error.
func (a *App) search(ctx context.Context, city string, prepare func(*State)) State {
	a.update(func(s *State) {
		if prepare != nil {
			prepare(s)
		}
		s.Phase = PhaseLoading
		s.ErrorTitle = ""
		s.ErrorMessage = ""
		s.Result = nil
	})

	snap, err := a.gateway.FetchWeather(ctx, city)
	if err != nil {
		a.logger.ErrorContext(ctx, "weather fetch error", "city", city, "error", err)
		return a.update(func(s *State) {
			s.Phase = PhaseError
			s.ErrorTitle = ErrorTitle(err)
			s.ErrorMessage = weather.MessageOf(err)
			s.Result = nil
		})
	}

	if err := a.history.Record(city); err != nil {
		a.logger.ErrorContext(ctx, "failed to persist search history", "city", city, "error", err)
	}

	view := NewWeatherView(snap, a.now())
	return a.update(func(s *State) {
		s.Phase = PhaseResult
		s.Input = ""
		s.ErrorTitle = ""
		s.ErrorMessage = ""
		s.Result = &view
	})
}

// ErrorTitle is the error panel title for a failed search.
func ErrorTitle(err error) string {
	switch weather.KindOf(err) {
	case weather.KindTimeout:
		return TitleTimeout
	case weather.KindNetwork:
		return TitleNetwork
	case weather.KindEmptyInput:
		return TitleEmptyInput
	default:
		return TitleError
	}
}

// update applies fn under the lock and notifies listeners outside it.
func (a *App) update(fn func(*State)) State {
	a.mu.Lock()
	fn(&a.state)
	next := a.state.clone()
	listeners := make([]func(State), len(a.listeners))
	copy(listeners, a.listeners)
	a.mu.Unlock()

	a.logger.Debug("ui state", "phase", string(next.Phase))
	for _, l := range listeners {
		l(next.clone())
	}
	return next
}

func (s State) clone() State {
	out := s
	out.History = make([]string, len(s.History))
	copy(out.History, s.History)
	if s.Result != nil {
		r := *s.Result
		out.Result = &r
	}
	return out
}
