package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/skratchdot/open-golang/open"

	"github.com/dtand/rommer-gba/gba"
	"github.com/dtand/rommer-gba/tracer"
	"github.com/dtand/rommer-gba/util"
)

// include these bridge drivers:
import (
	_ "github.com/dtand/rommer-gba/gba/agblink"
	_ "github.com/dtand/rommer-gba/gba/bizhawk"
	_ "github.com/dtand/rommer-gba/gba/mock"
	_ "github.com/dtand/rommer-gba/gba/retroarch"
)

var logPath string

// safetyFlushFrames forces buffered events out even on quiet sessions
// (~10s at 60fps)
const safetyFlushFrames = 600

// init is called first before all other package inits so it is best to set up log here:
func init() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds | log.LUTC)

	ts := time.Now().Format("2006-01-02T15:04:05.000Z")
	ts = strings.ReplaceAll(ts, ":", "-")
	ts = strings.ReplaceAll(ts, ".", "-")
	logPath = filepath.Join(os.TempDir(), fmt.Sprintf("rommer-%s.log", ts))
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY, 0644)
	if err == nil {
		log.Printf("logging to '%s'\n", logPath)
		log.SetOutput(util.NewDiagnosticLogger(logFile))
	} else {
		log.Printf("could not open log file '%s' for writing\n", logPath)
	}
}

func main() {
	// Parse env vars; this component takes no CLI flags:
	driverName := util.GetOrDefault("ROMMER_DRIVER", "mock")
	addr := os.Getenv("ROMMER_ADDR")
	sessionDir := util.GetOrDefault("ROMMER_SESSION_DIR", "session")

	fps, err := strconv.Atoi(util.GetOrDefault("ROMMER_FPS", "60"))
	if err != nil || fps <= 0 {
		fps = 60
	}

	if err = os.MkdirAll(sessionDir, 0755); err != nil {
		log.Fatalf("session dir '%s': %v\n", sessionDir, err)
	}

	bridge, err := gba.Open(driverName, addr)
	if err != nil {
		log.Printf("%v\n", err)
		log.Fatalf("available drivers: %s\n", strings.Join(gba.Drivers(), ", "))
	}

	t, err := tracer.New(bridge, tracer.Config{
		EventLogPath: filepath.Join(sessionDir, "event_log.csv"),
		SnapshotDir:  filepath.Join(sessionDir, "snapshots"),
	})
	if err != nil {
		log.Fatalf("%v\n", err)
	}

	log.Printf("tracing via %s driver into '%s' at %d fps\n", driverName, sessionDir, fps)

	if util.IsTruthy(os.Getenv("ROMMER_OPEN_SESSION_DIR")) {
		if err = open.Start(sessionDir); err != nil {
			log.Printf("open session dir: %v\n", err)
		}
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	frame := uint64(0)

pump:
	for {
		select {
		case <-ticker.C:
			t.OnFrame(frame)
			frame++
			if frame%safetyFlushFrames == 0 {
				if err = t.Flush(); err != nil {
					log.Printf("safety flush: %v\n", err)
				}
			}
		case <-sigc:
			log.Printf("shutting down\n")
			break pump
		}
	}

	t.OnShutdown()

	if err = t.DumpChangeHistogram(os.Stdout); err != nil {
		log.Printf("histogram: %v\n", err)
	}

	f := t.Faults
	log.Printf("session: %d frames, %d frame sets; faults: %d panics, %d read errors, %d input errors, %d capture errors, %d write failures\n",
		frame, t.FrameSetID(), f.FramePanics, f.ReadErrors, f.InputErrors, f.CaptureErrors, t.Events().WriteFailures)

	if err = bridge.Close(); err != nil {
		log.Printf("close bridge: %v\n", err)
	}

	_ = util.FlushLogger()
}
