// terminal_keys.go - Keyboard decoding and status line for the terminal control host
/*
██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package main

import (
	"fmt"
	"strings"
	"time"
)

type KeyAction int

const (
	KeyNone KeyAction = iota
	KeyToggle
	KeyWhite
	KeyPink
	KeyBrown
	KeyNext
	KeyPrev
	KeyQuit
)

const (
	KEY_ESC    = 0x1B
	KEY_CTRL_C = 0x03
	KEY_CTRL_D = 0x04
)

type escState int

const (
	escIdle escState = iota
	escSeenEsc
	escSeenBracket
)

// keyDecoder turns raw-mode stdin bytes into actions. Arrow keys arrive as
// ESC [ C / ESC [ D and are tracked across calls.
type keyDecoder struct {
	state escState
}

func (d *keyDecoder) Feed(b byte) KeyAction {
	switch d.state {
	case escSeenEsc:
		if b == '[' || b == 'O' {
			d.state = escSeenBracket
			return KeyNone
		}
		d.state = escIdle
	case escSeenBracket:
		d.state = escIdle
		switch b {
		case 'C':
			return KeyNext
		case 'D':
			return KeyPrev
		}
		return KeyNone
	}

	switch b {
	case KEY_ESC:
		d.state = escSeenEsc
		return KeyNone
	case ' ', '\r', '\n':
		return KeyToggle
	case 'w', 'W', '1':
		return KeyWhite
	case 'p', 'P', '2':
		return KeyPink
	case 'b', 'B', '3':
		return KeyBrown
	case ']', 'n', 'N':
		return KeyNext
	case '[':
		return KeyPrev
	case 'q', 'Q', KEY_CTRL_C, KEY_CTRL_D:
		return KeyQuit
	}
	return KeyNone
}

// applyKeyAction runs a non-quit action against the controller.
func applyKeyAction(c *PlaybackController, a KeyAction) error {
	switch a {
	case KeyToggle:
		return c.Toggle()
	case KeyWhite:
		return c.SetNoiseType(NoiseWhite)
	case KeyPink:
		return c.SetNoiseType(NoisePink)
	case KeyBrown:
		return c.SetNoiseType(NoiseBrown)
	case KeyNext:
		return c.SetNoiseType(c.CurrentNoiseType().Next())
	case KeyPrev:
		return c.SetNoiseType(c.CurrentNoiseType().Prev())
	}
	return nil
}

const terminalHelp = "[space] play/pause  [w/p/b] colour  [←/→] cycle  [q] quit"

// formatStatusLine renders the single status line redrawn by the terminal UI.
func formatStatusLine(snap runtimeStatusSnapshot, remaining time.Duration) string {
	var sb strings.Builder

	state := "stopped"
	if snap.playing {
		state = "playing"
	}
	fmt.Fprintf(&sb, "%-7s %-12s", state, snap.noiseType.Label())
	if snap.playing {
		fmt.Fprintf(&sb, " %-10s", snap.phase)
	}
	if remaining > 0 {
		fmt.Fprintf(&sb, " sleep %s", formatRemaining(remaining))
	}
	if snap.lastError != "" {
		fmt.Fprintf(&sb, " err: %s", snap.lastError)
	}
	return sb.String()
}
