// Package opentherm assembles the frame codec and link state machine into
// a host-facing controller: init, the application dispatcher of named
// boiler operations, and the diagnostics a caller needs to run one.
package opentherm

import (
	"context"
	"errors"
	"fmt"

	"github.com/otlink/opentherm/frame"
	"github.com/otlink/opentherm/link"
)

// LineDriver is the physical layer a Controller drives. hwgpio.Line is the
// production implementation; tests may supply their own.
type LineDriver = link.LineDriver

// Config collects a Controller's construction parameters.
type Config struct {
	Role       link.Role
	Line       LineDriver
	OnResponse func(frame.Frame, link.ResponseStatus)

	// Clock overrides the link's timing source. Production callers leave
	// this nil (the link falls back to a real monotonic clock); tests
	// inject a fake so timing-dependent scenarios run without waiting on
	// real time (see link.Clock and link/link_test.go).
	Clock link.Clock
}

// Controller is the host-facing entry point: it owns a Link and exposes the
// link's send/request/tick operations plus the application dispatcher of
// named boiler operations.
type Controller struct {
	link *link.Link
}

// Open validates cfg and starts the link. It returns an error, and leaves
// the controller unusable, if no LineDriver was supplied.
func Open(cfg Config) (*Controller, error) {
	if cfg.Line == nil {
		return nil, fmt.Errorf("opentherm: open: %w", errNoLineDriver)
	}
	l := link.New(link.Config{
		Role:       cfg.Role,
		Line:       cfg.Line,
		OnResponse: cfg.OnResponse,
		Clock:      cfg.Clock,
	})
	l.Start()
	return &Controller{link: l}, nil
}

var errNoLineDriver = errors.New("no LineDriver configured")

// SendFrame transmits f if the link is ready. See link.Link.SendFrame.
func (c *Controller) SendFrame(f frame.Frame) (bool, error) {
	return c.link.SendFrame(f)
}

// Request sends f and blocks until the link returns to ready, returning the
// decoded response frame. See link.Link.Request.
func (c *Controller) Request(ctx context.Context, f frame.Frame) (frame.Frame, error) {
	return c.link.Request(ctx, f)
}

// Tick enforces timeouts and inter-frame spacing. See link.Link.Tick.
func (c *Controller) Tick() {
	c.link.Tick()
}

// OnEdge notifies the link of a transition on the input line. A LineDriver's
// edge-watching goroutine (hwgpio.Line.Watch, in production) must call this
// on every edge it observes; without it the receive state machine never
// advances. See link.Link.OnEdge.
func (c *Controller) OnEdge() {
	c.link.OnEdge()
}

// IsReady reports whether the controller can accept a new request.
func (c *Controller) IsReady() bool {
	return c.link.IsReady()
}

// LastResponse returns the most recently completed response frame.
func (c *Controller) LastResponse() frame.Frame {
	return c.link.LastResponse()
}

// LastResponseStatus returns the classification of the most recently
// completed transaction.
func (c *Controller) LastResponseStatus() link.ResponseStatus {
	return c.link.LastResponseStatus()
}

// Snapshot is a single consistent read of the controller's diagnostic
// state, useful for a status line or monitor UI without racing the four
// accessors above against each other.
type Snapshot struct {
	Status        link.Status
	LastFrame     frame.Frame
	LastStatus    link.ResponseStatus
	MicrosSinceTs int64
}

// Snapshot reports the controller's current state in one read.
func (c *Controller) Snapshot() Snapshot {
	s := c.link.Snapshot()
	return Snapshot{
		Status:        s.Status,
		LastFrame:     s.LastFrame,
		LastStatus:    s.LastStatus,
		MicrosSinceTs: s.MicrosSinceTs,
	}
}
