package web

import (
	"github.com/cespare/xxhash"
	"github.com/google/brotli/go/cbrotli"
	"github.com/thelolagemann/go-gameboy/internal/joypad"
	"github.com/thelolagemann/go-gameboy/internal/ppu"
)

// Player adapts a Hub to the FrameSink/InputSource shape the frame
// driver expects: Present compresses and broadcasts a frame only when
// it actually differs from the last one sent, and Poll drains
// decoded button events from every connected client.
type Player struct {
	hub *Hub

	lastHash uint64
	haveLast bool
}

// NewPlayer returns a Player broadcasting through hub.
func NewPlayer(hub *Hub) *Player {
	return &Player{hub: hub}
}

// Present implements the FrameSink interface. Frames are hashed with
// xxhash first; an unchanged frame (common when a game holds on one
// static screen) is skipped instead of being recompressed and resent.
func (p *Player) Present(frame [ppu.ScreenHeight][ppu.ScreenWidth]ppu.Colour) {
	raw := flatten(frame)
	hash := xxhash.Sum64(raw)
	if p.haveLast && hash == p.lastHash {
		return
	}
	p.lastHash = hash
	p.haveLast = true

	compressed, err := cbrotli.Encode(raw, cbrotli.WriterOptions{Quality: 5})
	if err != nil {
		return
	}
	p.hub.Broadcast(compressed)
}

// Poll implements the InputSource interface, draining every pending
// button event across all connected clients.
func (p *Player) Poll() (pressed, released []uint8) {
	for {
		select {
		case ev := <-p.hub.Events():
			if ev.Button > joypad.Start {
				continue
			}
			if ev.Pressed {
				pressed = append(pressed, ev.Button)
			} else {
				released = append(released, ev.Button)
			}
		default:
			return pressed, released
		}
	}
}

// flatten lays the framebuffer out as a flat RGB byte slice, the wire
// format browser clients decode into a canvas ImageData buffer.
func flatten(frame [ppu.ScreenHeight][ppu.ScreenWidth]ppu.Colour) []byte {
	buf := make([]byte, 0, ppu.ScreenWidth*ppu.ScreenHeight*3)
	for y := 0; y < ppu.ScreenHeight; y++ {
		for x := 0; x < ppu.ScreenWidth; x++ {
			c := frame[y][x]
			buf = append(buf, c[0], c[1], c[2])
		}
	}
	return buf
}
