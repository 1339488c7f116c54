// noise_constants.go - Synthesis constants for the noise engine
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

import "time"

const (
	NOISE_SAMPLE_RATE   = 44100 // Default output rate (Hz)
	NOISE_CHANNELS      = 1     // Mono
	NOISE_BIT_DEPTH     = 16    // Signed 16-bit little-endian PCM
	NOISE_BUFFER_FRAMES = 2048  // Frames per buffer-fill iteration

	FADE_DURATION = 500 * time.Millisecond // Fade-in/fade-out window
	STOP_GRACE    = 100 * time.Millisecond // Extra drain time after the fade-out
)

// Pink noise, Paul Kellet's refined method. Pole/gain pairs per tap.
const (
	PINK_B0_POLE = 0.99886
	PINK_B0_GAIN = 0.0555179
	PINK_B1_POLE = 0.99332
	PINK_B1_GAIN = 0.0750759
	PINK_B2_POLE = 0.96900
	PINK_B2_GAIN = 0.1538520
	PINK_B3_POLE = 0.86650
	PINK_B3_GAIN = 0.3104856
	PINK_B4_POLE = 0.55000
	PINK_B4_GAIN = 0.5329522
	PINK_B5_POLE = -0.7616
	PINK_B5_GAIN = 0.0168980 // Subtracted
	PINK_B6_GAIN = 0.115926  // Applied after the output sum
	PINK_DIRECT  = 0.5362    // Direct white contribution
	PINK_SCALE   = 0.11      // Keeps the sum inside the encodable range
)

const (
	BROWN_STEP = 0.02 // Random-walk increment per sample
	BROWN_GAIN = 3.5  // Brown noise sits low; bring it up to level
)

const (
	MAX_AMPLITUDE = 1.0
	MIN_AMPLITUDE = -1.0
	PCM16_SCALE   = 32767.0
)

const SWIPE_THRESHOLD = 100.0 // Horizontal drag (px) needed to change colour
