package opentherm

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/otlink/opentherm/frame"
	"github.com/otlink/opentherm/link"
)

// fakeClock and fakeLine give the dispatcher-level tests the same full
// control over the microsecond timeline that link/link_test.go uses,
// mutex-guarded since Request runs its spin loop on a separate goroutine
// from the one driving the simulated wire.
type fakeClock struct {
	mu sync.Mutex
	v  int64
}

func (c *fakeClock) NowMicros() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.v
}

func (c *fakeClock) set(v int64) {
	c.mu.Lock()
	c.v = v
	c.mu.Unlock()
}

func (c *fakeClock) advance(d int64) {
	c.mu.Lock()
	c.v += d
	c.mu.Unlock()
}

type fakeLine struct {
	mu         sync.Mutex
	level      int
	delayCount int
	drives     []bool // true for DriveActive, false for DriveIdle, in call order
}

func (f *fakeLine) DriveActive()          { f.mu.Lock(); f.drives = append(f.drives, true); f.mu.Unlock() }
func (f *fakeLine) DriveIdle()            { f.mu.Lock(); f.drives = append(f.drives, false); f.mu.Unlock() }
func (f *fakeLine) DelayMicros(us uint32) { f.mu.Lock(); f.delayCount++; f.mu.Unlock() }
func (f *fakeLine) ReadLine() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.level
}
func (f *fakeLine) setLevel(l int) {
	f.mu.Lock()
	f.level = l
	f.mu.Unlock()
}

// sentFrame decodes the 32 data bits of the first frame SendFrame emitted:
// every bit cell makes two drive calls, cell 0 is the start bit, and a cell
// that begins with DriveActive carries a logical 1.
func (f *fakeLine) sentFrame() frame.Frame {
	f.mu.Lock()
	defer f.mu.Unlock()
	var v uint32
	for i := 1; i <= 32; i++ {
		v <<= 1
		if f.drives[2*i] {
			v |= 1
		}
	}
	return frame.Frame(v)
}

// injectFrame mirrors link/link_test.go's helper: it drives the receive
// state machine through WAITING -> START_BIT -> RECEIVING -> READY for the
// given 32-bit value via the documented OnEdge transition rules.
func injectFrame(l *link.Link, clk *fakeClock, line *fakeLine, start int64, value uint32) {
	clk.set(start)
	line.setLevel(1)
	l.OnEdge()

	t := start + 400
	clk.set(t)
	line.setLevel(0)
	l.OnEdge()

	for i := 31; i >= 0; i-- {
		b := (value >> uint(i)) & 1
		t += 1000
		clk.set(t)
		if b == 1 {
			line.setLevel(0)
		} else {
			line.setLevel(1)
		}
		l.OnEdge()
	}

	t += 1000
	clk.set(t)
	l.OnEdge()
}

// waitForStatus polls until the link reaches want or the deadline passes.
func waitForStatus(t *testing.T, c *Controller, want link.Status) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if c.Snapshot().Status == want {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("status never reached %v, last snapshot %+v", want, c.Snapshot())
}

func TestGetBoilerTempRoundTrip(t *testing.T) {
	clk := &fakeClock{}
	line := &fakeLine{level: 1}
	c, err := Open(Config{Role: link.Master, Line: line, Clock: clk})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	type result struct {
		v   float32
		err error
	}
	resultCh := make(chan result, 1)
	go func() {
		v, err := c.GetBoilerTemp(context.Background())
		resultCh <- result{v, err}
	}()

	waitForStatus(t, c, link.ResponseWaiting)

	resp := frame.Build(frame.ReadAck, frame.MsgTBoiler, frame.TempToData(60.5))
	injectFrame(c.link, clk, line, clk.NowMicros()+10, uint32(resp))
	waitForStatus(t, c, link.Delay)
	clk.advance(link.HalfBitMicros * 401) // clear the 100ms master gap

	select {
	case r := <-resultCh:
		if r.err != nil {
			t.Fatalf("GetBoilerTemp: %v", r.err)
		}
		if r.v != 60.5 {
			t.Fatalf("GetBoilerTemp = %v, want 60.5", r.v)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("GetBoilerTemp did not return")
	}
}

func TestSetBoilerTempClampsAboveRange(t *testing.T) {
	clk := &fakeClock{}
	line := &fakeLine{level: 1}
	c, err := Open(Config{Role: link.Master, Line: line, Clock: clk})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	errCh := make(chan error, 1)
	go func() { errCh <- c.SetBoilerTemp(context.Background(), 150.0) }()

	waitForStatus(t, c, link.ResponseWaiting)

	// SetBoilerTemp clamps 150.0 to 100.0 before encoding; a slave that
	// echoes the clamped value back acks cleanly.
	ack := frame.Build(frame.WriteAck, frame.MsgTSet, frame.TempToData(100.0))
	injectFrame(c.link, clk, line, clk.NowMicros()+10, uint32(ack))
	waitForStatus(t, c, link.Delay)
	clk.advance(link.HalfBitMicros * 401)

	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("SetBoilerTemp(150.0): %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("SetBoilerTemp did not return")
	}

	if got := frame.GetUint(line.sentFrame()); got != 25600 {
		t.Fatalf("SetBoilerTemp(150.0) sent payload %d, want 25600 (clamped to 100.0)", got)
	}
}

func TestTempToDataClampsBelowRange(t *testing.T) {
	if got := frame.TempToData(-5.0); got != 0 {
		t.Fatalf("TempToData(-5.0) = %d, want 0", got)
	}
}

func TestStatusResponseFlags(t *testing.T) {
	// bit0 fault, bit1 CH active, bit2 DHW active, bit3 flame, bit4 cooling,
	// bit6 diagnostic. Set CH active, flame, diagnostic.
	s := StatusResponse{raw: 1<<1 | 1<<3 | 1<<6}
	if !s.CHActive() {
		t.Error("CHActive() = false, want true")
	}
	if s.DHWActive() {
		t.Error("DHWActive() = true, want false")
	}
	if !s.Flame() {
		t.Error("Flame() = false, want true")
	}
	if s.Cooling() {
		t.Error("Cooling() = true, want false")
	}
	if !s.Diagnostic() {
		t.Error("Diagnostic() = false, want true")
	}
	if s.Fault() {
		t.Error("Fault() = true, want false")
	}
}

func TestOpenRequiresLineDriver(t *testing.T) {
	if _, err := Open(Config{Role: link.Master}); err == nil {
		t.Fatal("Open with no LineDriver = nil error, want non-nil")
	}
}
