// Package hwgpio adapts two periph.io GPIO pins into the link.LineDriver
// contract: one output pin drives the bus active/idle, one input pin is
// sampled on edge and its level read back to the receive state machine.
package hwgpio

import (
	"context"
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"

	"github.com/otlink/opentherm/link"
)

// activeLevel is the electrical level the bus driver asserts for logic 0:
// pulling the output low sinks current through the optoisolator, which is
// the OpenTherm convention for an active (logic 0) bus state.
const (
	activeLevel = gpio.Low
	idleLevel   = gpio.High
)

// Line drives the OpenTherm bus over a pair of periph.io GPIO pins. It
// implements link.LineDriver.
type Line struct {
	out gpio.PinOut
	in  gpio.PinIn

	// lastErr records the most recent Out() failure. link.LineDriver has no
	// error return for DriveActive/DriveIdle (the bit-banged emitter can't
	// usefully react mid-frame anyway); callers that want to surface a
	// stuck pin check this between transactions.
	lastErr error
}

// Open resolves outputPin and inputPin by name through gpioreg (populated by
// whichever platform driver the caller registered via host.Init) and
// configures them for OpenTherm's half-duplex signaling: out idle-high,
// in armed for edge interrupts with its pull-resistor setting left
// unchanged, so the current-loop receiver sets the level.
func Open(outputPin, inputPin string) (*Line, error) {
	out := gpioreg.ByName(outputPin)
	if out == nil {
		return nil, fmt.Errorf("hwgpio: output pin %q not found", outputPin)
	}
	in := gpioreg.ByName(inputPin)
	if in == nil {
		return nil, fmt.Errorf("hwgpio: input pin %q not found", inputPin)
	}
	if err := out.Out(idleLevel); err != nil {
		return nil, fmt.Errorf("hwgpio: configure output pin %q: %w", outputPin, err)
	}
	if err := in.In(gpio.PullNoChange, gpio.BothEdges); err != nil {
		return nil, fmt.Errorf("hwgpio: configure input pin %q: %w", inputPin, err)
	}
	return &Line{out: out, in: in}, nil
}

// DriveActive implements link.LineDriver.
func (l *Line) DriveActive() {
	if err := l.out.Out(activeLevel); err != nil {
		l.lastErr = err
	}
}

// DriveIdle implements link.LineDriver.
func (l *Line) DriveIdle() {
	if err := l.out.Out(idleLevel); err != nil {
		l.lastErr = err
	}
}

// Err returns the most recent output-pin error, if any.
func (l *Line) Err() error { return l.lastErr }

// ReadLine implements link.LineDriver, translating the electrical idle/
// active levels back to the logical 1/0 the link package reasons about.
func (l *Line) ReadLine() int {
	if l.in.Read() == idleLevel {
		return 1
	}
	return 0
}

// DelayMicros implements link.LineDriver using a busy-wait: half a bit cell
// is 500us and the receiver only tolerates a couple hundred microseconds of
// jitter, which rules out the millisecond resolution of a scheduler sleep,
// so this spins against a monotonic clock sample (see clock_linux.go /
// clock_other.go) the way the teacher's own smoke tests calibrate FTDI
// bit-bang timing.
func (l *Line) DelayMicros(us uint32) {
	deadline := nowMonotonicMicros() + int64(us)
	for nowMonotonicMicros() < deadline {
	}
}

// Watch runs until ctx is cancelled, calling onEdge every time the input pin
// transitions. It is meant to run in its own goroutine, feeding link.OnEdge.
func (l *Line) Watch(ctx context.Context, onEdge func()) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if l.in.WaitForEdge(100 * time.Millisecond) {
			onEdge()
		}
	}
}

// Halt releases the underlying pins, leaving the output idle.
func (l *Line) Halt() error {
	l.out.Out(idleLevel)
	if h, ok := l.in.(interface{ Halt() error }); ok {
		return h.Halt()
	}
	return nil
}

var _ link.LineDriver = (*Line)(nil)
