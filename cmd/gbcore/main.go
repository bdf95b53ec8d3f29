// Command gbcore runs a cartridge image on the CPU core until it
// halts, and reports the final machine state.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/thelolagemann/gbcore/internal/cheats"
	"github.com/thelolagemann/gbcore/internal/gameboy"
	"github.com/thelolagemann/gbcore/pkg/log"
	"github.com/thelolagemann/gbcore/pkg/stats"
	"github.com/thelolagemann/gbcore/pkg/trace"
	"github.com/thelolagemann/gbcore/pkg/trace/web"
	"github.com/thelolagemann/gbcore/pkg/utils"
)

func main() {
	romFile := flag.String("rom", "", "The rom file to load (.gb, .gz, .zip or .7z)")
	bootROM := flag.String("boot", "", "The 256 byte boot rom file to map over the cartridge")
	strict := flag.Bool("strict", false, "Halt on writes to read-only memory instead of ignoring them")
	steps := flag.Uint64("steps", 0, "Maximum number of instructions to execute, 0 for no limit")
	level := flag.String("log", "info", "The log level (debug, info, warn, error)")
	traceSteps := flag.Bool("trace", false, "Log every executed instruction at debug level")
	wsAddr := flag.String("ws", "", "Serve a websocket trace stream on the given address, e.g. :8090")
	histogram := flag.String("histogram", "", "Write an opcode frequency chart to the given PNG file")
	top := flag.Int("top", 20, "Number of opcodes shown in the histogram")
	restore := flag.String("restore", "", "Restore the machine from a snapshot file before running")
	snapshot := flag.String("snapshot", "", "Write a snapshot of the final machine state to the given file")
	cheatFile := flag.String("cheats", "", "Load Game Genie and GameShark codes from the given cheat file")
	flag.Parse()

	logger := log.NewWithOutput(os.Stderr, log.ParseLevel(*level))

	if *romFile == "" {
		flag.Usage()
		os.Exit(2)
	}

	rom, err := utils.LoadFile(*romFile)
	if err != nil {
		logger.Fatal(err)
	}

	opts := []gameboy.Opt{gameboy.WithLogger(logger), gameboy.Permissive()}
	if *strict {
		opts = append(opts, gameboy.Strict())
	}
	if *bootROM != "" {
		boot, err := utils.LoadFile(*bootROM)
		if err != nil {
			logger.Fatal(err)
		}
		opts = append(opts, gameboy.WithBootROM(boot))
	}

	if *cheatFile != "" {
		f, err := os.Open(*cheatFile)
		if err != nil {
			logger.Fatal(err)
		}
		genie, shark := cheats.NewGameGenie(), cheats.NewGameShark()
		loaded, err := cheats.ParseCheatFile(f, genie, shark)
		f.Close()
		if err != nil {
			logger.Fatal(err)
		}
		for _, c := range loaded {
			logger.Infof("loaded cheat %q (%d codes)", c.Name, len(c.Codes))
		}
		opts = append(opts, gameboy.WithCheats(genie, shark))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// assemble the trace sinks
	var tracers []trace.Tracer
	if *traceSteps {
		tracers = append(tracers, trace.NewLogTracer(logger))
	}
	var hist *stats.Histogram
	if *histogram != "" {
		hist = stats.NewHistogram()
		tracers = append(tracers, hist)
	}
	if *wsAddr != "" {
		hub := web.NewHub(logger, 64)
		go hub.Run(ctx)

		srv := &http.Server{Addr: *wsAddr, Handler: hub}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Errorf("trace server: %v", err)
			}
		}()
		defer srv.Close()

		logger.Infof("streaming trace on ws://%s", *wsAddr)
		tracers = append(tracers, hub)
	}
	if len(tracers) > 0 {
		opts = append(opts, gameboy.WithTracer(trace.Multi(tracers...)))
	}

	gb, err := gameboy.NewGameBoy(rom, opts...)
	if err != nil {
		logger.Fatal(err)
	}
	logger.Infof("loaded %s (%d bytes)", gb.MMU.Cart.Title(), gb.MMU.Cart.Len())

	if *restore != "" {
		data, err := os.ReadFile(*restore)
		if err != nil {
			logger.Fatal(err)
		}
		if err := gb.Restore(data); err != nil {
			logger.Fatal(err)
		}
	}

	res := gb.Run(ctx, *steps)
	report(logger, gb, res)

	if hist != nil {
		writeHistogram(logger, hist, *histogram, *top)
	}

	if *snapshot != "" {
		data, err := gb.Snapshot()
		if err != nil {
			logger.Fatal(err)
		}
		if err := os.WriteFile(*snapshot, data, 0o644); err != nil {
			logger.Fatal(err)
		}
		logger.Infof("wrote snapshot to %s", *snapshot)
	}

	if res.Reason == gameboy.StopFault {
		os.Exit(1)
	}
}

// report logs the outcome of the run and the final register file.
func report(logger *logrus.Logger, gb *gameboy.GameBoy, res gameboy.Result) {
	r := gb.CPU.Snapshot()
	entry := logger.WithFields(logrus.Fields{
		"steps":       res.Steps,
		"reason":      res.Reason,
		"fingerprint": gb.Fingerprint(),
		"boot":        gb.MMU.BootEnabled(),
	})
	if res.Err != nil {
		entry = entry.WithError(res.Err)
	}
	entry.Info("run finished")
	logger.Infof("registers: %s | flags %s", r, gb.CPU.Flags)
}

func writeHistogram(logger *logrus.Logger, hist *stats.Histogram, filename string, top int) {
	f, err := os.Create(filename)
	if err != nil {
		logger.Errorf("creating histogram: %v", err)
		return
	}
	defer f.Close()

	if err := hist.Render(f, top, 800, 600); err != nil {
		logger.Errorf("rendering histogram: %v", err)
		return
	}
	for _, e := range hist.Top(5) {
		logger.Debugf("hot opcode %s", e)
	}
	logger.Infof("wrote opcode histogram to %s", filename)
}
