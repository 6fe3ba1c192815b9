// Package joypad implements the Game Boy's P1 (0xFF00) register: an
// 8-button shadow register read out through a write-partial selector.
package joypad

import "github.com/thelolagemann/go-gameboy/internal/interrupts"

// Button bit assignments, stable across this module.
const (
	Right uint8 = iota
	Left
	Up
	Down
	A
	B
	Select
	Start
)

type irqRequester interface {
	Request(flag uint8)
}

// State holds the joypad button shadow and the write-partial selector
// bits of P1.
//
//	Bit 7,6 - unused, always read as 1
//	Bit 5   - select action keys   (0 = selected)
//	Bit 4   - select direction keys (0 = selected)
//	Bit 3-0 - Down/Up/Left/Right or Start/Select/B/A (0 = pressed), read-only
type State struct {
	irq irqRequester

	// shadow bit layout: 0=Right 1=Left 2=Up 3=Down 4=A 5=B 6=Select
	// 7=Start. 1 = released, 0 = pressed.
	shadow uint8

	// selector holds bits 4 and 5 as last written to P1.
	selector uint8
}

// New returns a joypad with every button released.
func New(irq irqRequester) *State {
	return &State{irq: irq, shadow: 0xFF, selector: 0x30}
}

// Press marks button as pressed, requesting the Joypad interrupt if
// the button was previously released and its class (direction vs.
// action) is currently selected.
func (s *State) Press(button uint8) {
	wasReleased := s.shadow&(1<<button) != 0
	if wasReleased && s.classSelected(button) {
		s.irq.Request(interrupts.Joypad)
	}
	s.shadow &^= 1 << button
}

// Release marks button as released.
func (s *State) Release(button uint8) {
	s.shadow |= 1 << button
}

// classSelected reports whether P1's selector currently exposes the
// class (direction or action) button belongs to.
func (s *State) classSelected(button uint8) bool {
	if button <= Down {
		return s.selector&0x10 == 0 // direction keys selected (active low)
	}
	return s.selector&0x20 == 0 // action keys selected (active low)
}

// WriteSelect stores the two writable selector bits (4, 5) of P1.
func (s *State) WriteSelect(value uint8) {
	s.selector = value & 0x30
}

// Read synthesises the full value of P1 from the stored selector bits
// and whichever button class they expose.
func (s *State) Read() uint8 {
	out := s.selector | 0xC0 | 0x0F

	if s.selector&0x10 == 0 {
		out &= 0xF0 | (s.shadow & 0x0F)
	}
	if s.selector&0x20 == 0 {
		out &= 0xF0 | (s.shadow >> 4 & 0x0F)
	}

	return out
}
