// Package link implements the OpenTherm bit-banged link engine: the
// transmit sequencer that emits a 34-bit Manchester frame with ~1 ms bit
// cells, and the receive state machine that reconstructs a 34-bit frame
// from asynchronous edge events using midpoint sampling. It owns the
// shared link status that is mutated from both the edge-interrupt path and
// the foreground polling loop.
package link

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/otlink/opentherm/frame"
)

// Role distinguishes the master (thermostat) and slave (boiler) ends of the
// link. Their behavior diverges only where the code below branches on the
// role (arming on a line-high edge in OnEdge, and the validity check and
// inter-frame gap in Tick); the state machine itself is not duplicated.
type Role int

const (
	Master Role = iota
	Slave
)

func (r Role) String() string {
	if r == Slave {
		return "slave"
	}
	return "master"
}

// Status is the link's single enumerated state.
type Status int

const (
	NotInitialized Status = iota
	Ready
	Delay
	RequestSending
	ResponseWaiting
	ResponseStartBit
	ResponseReceiving
	ResponseReady
	ResponseInvalid
)

func (s Status) String() string {
	switch s {
	case NotInitialized:
		return "NOT_INITIALIZED"
	case Ready:
		return "READY"
	case Delay:
		return "DELAY"
	case RequestSending:
		return "REQUEST_SENDING"
	case ResponseWaiting:
		return "RESPONSE_WAITING"
	case ResponseStartBit:
		return "RESPONSE_START_BIT"
	case ResponseReceiving:
		return "RESPONSE_RECEIVING"
	case ResponseReady:
		return "RESPONSE_READY"
	case ResponseInvalid:
		return "RESPONSE_INVALID"
	default:
		return "UNKNOWN"
	}
}

// ResponseStatus classifies the outcome of the most recently completed
// transaction.
type ResponseStatus int

const (
	None ResponseStatus = iota
	Success
	Invalid
	Timeout
)

func (s ResponseStatus) String() string {
	switch s {
	case None:
		return "NONE"
	case Success:
		return "SUCCESS"
	case Invalid:
		return "INVALID"
	case Timeout:
		return "TIMEOUT"
	default:
		return "UNKNOWN"
	}
}

// Timing constants from the OpenTherm Lite physical layer: a 1ms bit cell
// split into two 500us halves, a 750us guard band separating mid-cell
// transitions from cell-boundary transitions, a 1s overall response timeout,
// and the minimum inter-frame gaps the protocol mandates for each role.
const (
	HalfBitMicros         = 500
	midBitGuardMicros     = 750
	responseTimeoutMicros = 1_000_000
	slaveGapMicros        = 20_000
	masterGapMicros       = 100_000
)

// LineDriver is the bit-banged physical layer the link engine drives. The
// active level corresponds to logic 0 on the bus, idle to logic 1.
// Implementations must be callable with no dynamic allocation and must not
// suspend for longer than requested.
type LineDriver interface {
	DriveActive()
	DriveIdle()
	DelayMicros(us uint32)
	ReadLine() int
}

// Clock supplies a monotonic microsecond timestamp. Production code uses
// wallClock; tests inject a fake so timing-dependent scenarios run without
// waiting on real time.
type Clock interface {
	NowMicros() int64
}

// ErrNotInitialized is returned by SendFrame, and therefore by Request, when
// the link has not completed Start.
var ErrNotInitialized = errors.New("link: not initialized")

// ErrBusy is returned by Request when called recursively from inside the
// response callback: the callback must not re-enter Request synchronously.
var ErrBusy = errors.New("link: busy (called from within response callback)")

// Link is the link state machine. All mutable fields are guarded by mu; the
// edge handler OnEdge and the foreground Tick both take it for their brief,
// bounded critical sections — the hosted-Go equivalent of the
// interrupt-masking critical section a bare-metal target would use.
type Link struct {
	role       Role
	line       LineDriver
	clock      Clock
	onResponse func(frame.Frame, ResponseStatus)

	sem *semaphore.Weighted

	mu         sync.Mutex
	status     Status
	response   uint32
	bitIndex   int
	ts         int64
	lastFrame  frame.Frame
	lastStatus ResponseStatus
	inCallback bool
}

// Config collects the construction parameters of a Link.
type Config struct {
	Role       Role
	Line       LineDriver
	Clock      Clock
	OnResponse func(frame.Frame, ResponseStatus)
}

// New constructs a Link in the NotInitialized state. Call Start once the
// caller's GPIO/interrupt plumbing is ready to deliver edges.
func New(cfg Config) *Link {
	clock := cfg.Clock
	if clock == nil {
		clock = wallClock{}
	}
	return &Link{
		role:       cfg.Role,
		line:       cfg.Line,
		clock:      clock,
		onResponse: cfg.OnResponse,
		sem:        semaphore.NewWeighted(1),
		status:     NotInitialized,
	}
}

// Start transitions the link from NotInitialized to Ready. It is the only
// legal way out of NotInitialized.
func (l *Link) Start() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.status = Ready
	l.lastStatus = None
}

// IsReady reports whether the link can accept a new SendFrame.
func (l *Link) IsReady() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.status == Ready
}

// LastResponse returns the most recently completed response frame (zero if
// none has completed, or if the last attempt timed out or its bit stream was
// malformed). A fully received frame that fails classification is still
// returned as received.
func (l *Link) LastResponse() frame.Frame {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastFrame
}

// LastResponseStatus returns the classification of the most recently
// completed transaction.
func (l *Link) LastResponseStatus() ResponseStatus {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastStatus
}

// Snapshot is a read-only aggregate of link state for diagnostics.
type Snapshot struct {
	Status        Status
	LastFrame     frame.Frame
	LastStatus    ResponseStatus
	MicrosSinceTs int64
}

// Snapshot reports the current state in one read, avoiding the
// read-four-fields-separately race a caller polling IsReady/LastResponse/
// LastResponseStatus individually would otherwise have.
func (l *Link) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return Snapshot{
		Status:        l.status,
		LastFrame:     l.lastFrame,
		LastStatus:    l.lastStatus,
		MicrosSinceTs: l.clock.NowMicros() - l.ts,
	}
}

// SendFrame transmits f as a 34-bit Manchester frame (start bit, 32 data
// bits MSB-first, stop bit) if the link is Ready. It returns false without
// touching the line if the link was not Ready.
func (l *Link) SendFrame(f frame.Frame) (bool, error) {
	l.mu.Lock()
	if l.status == NotInitialized {
		l.mu.Unlock()
		return false, ErrNotInitialized
	}
	if l.status != Ready {
		l.mu.Unlock()
		return false, nil
	}
	l.status = RequestSending
	l.response = 0
	l.bitIndex = 0
	l.lastStatus = None
	l.mu.Unlock()

	// Bit-banged emission runs without the lock held: it must not be
	// preempted by anything that touches the output pin, but interrupts
	// stay enabled so the receiver ISR can capture the reply's leading edge.
	l.encodeBit(true) // start bit
	for i := 31; i >= 0; i-- {
		l.encodeBit((uint32(f)>>uint(i))&1 == 1)
	}
	l.encodeBit(true) // stop bit
	l.line.DriveIdle()

	l.mu.Lock()
	l.ts = l.clock.NowMicros()
	l.status = ResponseWaiting
	l.mu.Unlock()
	return true, nil
}

// encodeBit emits one Manchester bit cell: logical 1 is a rising mid-cell
// edge (active then idle), logical 0 is a falling mid-cell edge (idle then
// active).
func (l *Link) encodeBit(one bool) {
	if one {
		l.line.DriveActive()
		l.line.DelayMicros(HalfBitMicros)
		l.line.DriveIdle()
		l.line.DelayMicros(HalfBitMicros)
		return
	}
	l.line.DriveIdle()
	l.line.DelayMicros(HalfBitMicros)
	l.line.DriveActive()
	l.line.DelayMicros(HalfBitMicros)
}

// OnEdge is invoked on every transition of the input line. It samples the
// current line level and timestamp once and advances the receive state
// machine accordingly.
func (l *Link) OnEdge() {
	now := l.clock.NowMicros()
	line := l.line.ReadLine()

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.status == Ready {
		if l.role == Slave && line == 1 {
			l.status = ResponseWaiting
		} else {
			return
		}
	}

	switch l.status {
	case ResponseWaiting:
		if line == 1 {
			l.status = ResponseStartBit
		} else {
			l.status = ResponseInvalid
		}
		l.ts = now

	case ResponseStartBit:
		if now-l.ts < midBitGuardMicros && line == 0 {
			l.status = ResponseReceiving
			l.bitIndex = 0
		} else {
			l.status = ResponseInvalid
		}
		l.ts = now

	case ResponseReceiving:
		if now-l.ts <= midBitGuardMicros {
			return // mid-cell transition, not a bit boundary
		}
		if l.bitIndex < 32 {
			bit := uint32(0)
			if line == 0 {
				bit = 1
			}
			l.response = (l.response << 1) | bit
			l.bitIndex++
			l.ts = now
		} else {
			l.status = ResponseReady
			l.ts = now
		}
	}
}

// Tick enforces timeouts and inter-frame spacing, and delivers the response
// callback exactly once per completed (or abandoned) transaction. Callers
// invoke it periodically — typically in a loop around Request, or from a
// scheduler tick.
func (l *Link) Tick() {
	l.mu.Lock()
	status := l.status
	ts := l.ts
	l.mu.Unlock()

	if status == Ready || status == NotInitialized {
		return
	}

	now := l.clock.NowMicros()

	if status != Delay && now-ts > responseTimeoutMicros {
		l.finish(Ready, Timeout, 0, false)
		return
	}

	switch status {
	case ResponseInvalid:
		l.finish(Delay, Invalid, 0, false)

	case ResponseReady:
		l.mu.Lock()
		resp := l.response
		l.mu.Unlock()
		f := frame.Frame(resp)
		var valid bool
		if l.role == Slave {
			valid = frame.ClassifyRequest(f)
		} else {
			valid = frame.ClassifyResponse(f)
		}
		result := Invalid
		if valid {
			result = Success
		}
		l.finish(Delay, result, f, true)

	case Delay:
		gap := int64(masterGapMicros)
		if l.role == Slave {
			gap = slaveGapMicros
		}
		if now-ts > gap {
			l.mu.Lock()
			l.status = Ready
			l.mu.Unlock()
		}
	}
}

// finish transitions to next, records f and status as the last response,
// and invokes the callback outside the lock.
func (l *Link) finish(next Status, status ResponseStatus, f frame.Frame, keepFrame bool) {
	l.mu.Lock()
	l.status = next
	l.lastStatus = status
	if keepFrame {
		l.lastFrame = f
	} else {
		l.lastFrame = 0
	}
	l.mu.Unlock()

	if l.onResponse == nil {
		return
	}
	l.mu.Lock()
	l.inCallback = true
	l.mu.Unlock()

	l.onResponse(f, status)

	l.mu.Lock()
	l.inCallback = false
	l.mu.Unlock()
}

// Request sends f and blocks until the link returns to Ready, yielding
// between Tick calls. It enforces the at-most-one-outstanding-request
// ordering guarantee with a weighted semaphore, and refuses recursive
// re-entry from inside the response callback.
func (l *Link) Request(ctx context.Context, f frame.Frame) (frame.Frame, error) {
	l.mu.Lock()
	busy := l.inCallback
	l.mu.Unlock()
	if busy {
		return 0, ErrBusy
	}
	if err := l.sem.Acquire(ctx, 1); err != nil {
		return 0, fmt.Errorf("link: acquire: %w", err)
	}
	defer l.sem.Release(1)

	started, err := l.SendFrame(f)
	if err != nil {
		return 0, err
	}
	if !started {
		return 0, nil
	}
	for !l.IsReady() {
		l.Tick()
		l.yield()
	}
	return l.LastResponse(), nil
}

// yield gives up the processor between Tick calls while Request spins. It
// is a plain method (not a field) in production; tests substitute a fake
// Clock and drive OnEdge/Tick directly rather than overriding this.
func (l *Link) yield() {
	runtime.Gosched()
}

// wallClock is the production Clock, backed by the runtime's monotonic
// clock through nowMicros (see time.go).
type wallClock struct{}

func (wallClock) NowMicros() int64 {
	return nowMicros()
}
