// Command gbemu is the composition root: it loads a ROM, builds a
// GameBoy core, and drives it against either an SDL2 window or a
// websocket-based web frontend.
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/thelolagemann/go-gameboy/internal/gameboy"
	"github.com/thelolagemann/go-gameboy/internal/ppu"
	"github.com/thelolagemann/go-gameboy/pkg/frontend/sdl"
	"github.com/thelolagemann/go-gameboy/pkg/frontend/web"
	"github.com/thelolagemann/go-gameboy/pkg/log"
	"github.com/thelolagemann/go-gameboy/pkg/romloader"
)

// frameSink and inputSource mirror the FrameSink/InputSource shapes
// so main can drive either frontend through one loop.
type frameSink interface {
	Present(frame [ppu.ScreenHeight][ppu.ScreenWidth]ppu.Colour)
}

type inputSource interface {
	Poll() (pressed, released []uint8)
}

func main() {
	romPath := flag.String("rom", "", "ROM file to load (.gb, .gbc, or .7z archive). Omit to pick a file interactively")
	frontendName := flag.String("frontend", "sdl", "frontend to run: sdl or web")
	addr := flag.String("addr", ":8080", "listen address for the web frontend")
	bootSkip := flag.Bool("boot-skip", true, "start execution at the cartridge entry point instead of a boot ROM")
	flag.Parse()

	logger := log.New()

	if !*bootSkip {
		logger.Errorf("gbemu: boot ROM execution is not supported; continuing with -boot-skip behaviour")
	}

	path := *romPath
	if path == "" {
		picked, err := romloader.Pick()
		if err != nil {
			logger.Errorf("gbemu: no ROM selected: %v", err)
			os.Exit(1)
		}
		path = picked
	}

	rom, err := romloader.Load(path)
	if err != nil {
		logger.Errorf("gbemu: %v", err)
		os.Exit(1)
	}

	gb, err := gameboy.New(rom, gameboy.WithLogger(logger))
	if err != nil {
		logger.Errorf("gbemu: %v", err)
		os.Exit(1)
	}

	switch *frontendName {
	case "sdl":
		runSDL(gb)
	case "web":
		runWeb(gb, *addr)
	default:
		fmt.Fprintf(os.Stderr, "gbemu: unknown frontend %q (want sdl or web)\n", *frontendName)
		os.Exit(1)
	}
}

func runSDL(gb *gameboy.GameBoy) {
	front, err := sdl.New("gbemu")
	if err != nil {
		log.New().Errorf("gbemu: %v", err)
		os.Exit(1)
	}
	defer front.Close()

	run(gb, front, front, func() bool { return front.Closed() })
}

func runWeb(gb *gameboy.GameBoy, addr string) {
	hub := web.NewHub()
	player := web.NewPlayer(hub)

	server := &http.Server{Addr: addr, Handler: hub}
	go func() {
		log.New().Infof("gbemu: web frontend listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.New().Errorf("gbemu: %v", err)
		}
	}()

	run(gb, player, player, func() bool { return false })
}

// run drives gb at roughly 60 frames per second, presenting each
// completed frame to sink and applying input events drained from
// source, until closed reports true.
func run(gb *gameboy.GameBoy, sink frameSink, source inputSource, closed func() bool) {
	ticker := time.NewTicker(time.Second / 60)
	defer ticker.Stop()

	for range ticker.C {
		if closed() {
			return
		}
		pressed, released := source.Poll()
		gb.ProcessInputs(pressed, released)
		sink.Present(gb.Frame())
	}
}
