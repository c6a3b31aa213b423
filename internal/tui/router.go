package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/jaskwallet/internal/nav"
)

// Router implements nav.Navigator for services running inside commands.
// Requests are delivered to the Model as messages.
type Router struct {
	ch chan navMsg
}

func NewRouter() *Router {
	return &Router{ch: make(chan navMsg, 16)}
}

func (r *Router) Navigate(route nav.Route, params nav.Params) {
	r.ch <- navMsg{route: route, params: params}
}

func (r *Router) Push(route nav.Route, params nav.Params) {
	r.ch <- navMsg{route: route, params: params, push: true}
}

func (r *Router) wait() tea.Cmd {
	return func() tea.Msg {
		return routerMsg{<-r.ch}
	}
}

type stackEntry struct {
	screen Screen
	cancel context.CancelFunc
}

// ScreenStack holds the open screens. Removing an entry cancels its
// context.
type ScreenStack struct {
	items []stackEntry
}

func (s *ScreenStack) Push(screen Screen, cancel context.CancelFunc) {
	if screen == nil {
		return
	}
	s.items = append(s.items, stackEntry{screen: screen, cancel: cancel})
}

func (s *ScreenStack) Pop() Screen {
	if len(s.items) == 0 {
		return nil
	}
	last := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	if last.cancel != nil {
		last.cancel()
	}
	return last.screen
}

// Truncate pops until n screens remain.
func (s *ScreenStack) Truncate(n int) {
	for len(s.items) > n {
		s.Pop()
	}
}

func (s ScreenStack) Top() Screen {
	if len(s.items) == 0 {
		return nil
	}
	return s.items[len(s.items)-1].screen
}

func (s ScreenStack) Len() int {
	return len(s.items)
}

// IndexOfRoute returns the highest index showing route, or -1.
func (s ScreenStack) IndexOfRoute(route nav.Route) int {
	for i := len(s.items) - 1; i >= 0; i-- {
		if s.items[i].screen.Route() == route {
			return i
		}
	}
	return -1
}

// IndexOfVisit returns the index of the screen for visit, or -1.
func (s ScreenStack) IndexOfVisit(visit string) int {
	for i, e := range s.items {
		if e.screen.Visit() == visit {
			return i
		}
	}
	return -1
}

func (s *ScreenStack) Set(i int, screen Screen) {
	s.items[i].screen = screen
}

func (s ScreenStack) Routes() []nav.Route {
	out := make([]nav.Route, 0, len(s.items))
	for _, e := range s.items {
		out = append(out, e.screen.Route())
	}
	return out
}
