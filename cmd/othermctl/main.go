// Command othermctl is a demo/ops CLI for the opentherm controller: it
// wires a real GPIO pin pair through hwgpio, reads the boiler temperature
// through the application dispatcher (once, or every 2s with -monitor), and
// prints it together with the link status.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/otlink/opentherm"
	"github.com/otlink/opentherm/frame"
	"github.com/otlink/opentherm/host"
	"github.com/otlink/opentherm/hwgpio"
	"github.com/otlink/opentherm/link"
)

func main() {
	outputPin := flag.String("output-pin", "", "GPIO identifier driving the bus (logic 0 = active)")
	inputPin := flag.String("input-pin", "", "GPIO identifier sampling the bus")
	role := flag.String("role", "master", "link role: master or slave")
	monitor := flag.Bool("monitor", false, "keep polling boiler status every 2s until 'q' is pressed")
	flag.Parse()

	out := newStatusLogger()

	if *outputPin == "" || *inputPin == "" {
		out.Printf("usage: othermctl -output-pin=<gpio> -input-pin=<gpio> [-role=master|slave] [-monitor]")
		os.Exit(2)
	}

	if _, err := host.Init(); err != nil {
		out.Printf("host.Init: %v", err)
		os.Exit(1)
	}

	r := link.Master
	if *role == "slave" {
		r = link.Slave
	}

	line, err := hwgpio.Open(*outputPin, *inputPin)
	if err != nil {
		out.Printf("hwgpio.Open: %v", err)
		os.Exit(1)
	}

	ctrl, err := opentherm.Open(opentherm.Config{
		Role: r,
		Line: line,
		OnResponse: func(f frame.Frame, status link.ResponseStatus) {
			if status != link.Success {
				out.Printf("response %v: %v", status, f)
			}
		},
	})
	if err != nil {
		out.Printf("opentherm.Open: %v", err)
		os.Exit(1)
	}

	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	go func() {
		if err := line.Watch(watchCtx, ctrl.OnEdge); err != nil && watchCtx.Err() == nil {
			out.Printf("watch: %v", err)
		}
	}()

	runOnce(out, ctrl)
	if !*monitor {
		return
	}

	quit := watchQuitKey(out)
	for {
		select {
		case <-quit:
			return
		case <-time.After(2 * time.Second):
			runOnce(out, ctrl)
		}
	}
}

func runOnce(out *log.Logger, ctrl *opentherm.Controller) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	temp, err := ctrl.GetBoilerTemp(ctx)
	if err != nil {
		out.Printf("GetBoilerTemp: %v", err)
		return
	}
	status := ctrl.LastResponseStatus()
	snap := ctrl.Snapshot()
	out.Printf("boiler temp = %.1f degC (status=%v, link=%v)", temp, status, snap.Status)
}

// watchQuitKey puts stdin into raw mode (when it's a real terminal) so the
// monitor loop exits on a single 'q' keypress rather than requiring Enter,
// the same pattern IntuitionEngine's terminal_host.go uses for its own
// stdin reader, restoring cooked mode once a quit key is seen.
func watchQuitKey(out *log.Logger) <-chan struct{} {
	done := make(chan struct{})
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		close(done)
		return done
	}
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		out.Printf("term.MakeRaw: %v", err)
		close(done)
		return done
	}
	go func() {
		defer term.Restore(fd, oldState)
		defer close(done)
		buf := make([]byte, 1)
		for {
			n, err := os.Stdin.Read(buf)
			if err != nil || n == 0 {
				return
			}
			if buf[0] == 'q' {
				return
			}
		}
	}()
	return done
}

// newStatusLogger writes through go-colorable when stdout is a terminal
// (detected via go-isatty) and plain otherwise, matching how
// periph-extra/devices/screen drives its own terminal output.
func newStatusLogger() *log.Logger {
	if isatty.IsTerminal(os.Stdout.Fd()) {
		return log.New(colorable.NewColorableStdout(), "othermctl: ", log.LstdFlags)
	}
	return log.New(os.Stdout, "othermctl: ", log.LstdFlags)
}
