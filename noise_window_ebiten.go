//go:build !headless

// noise_window_ebiten.go - Ebiten window control surface for the noise player
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
	"context"
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/font/basicfont"
)

func init() {
	compiledFeatures = append(compiledFeatures, "ui:window")
}

const (
	WINDOW_WIDTH  = 480
	WINDOW_HEIGHT = 720

	BUTTON_RADIUS   = 80.0
	BREATH_PERIOD   = 2 * time.Second // One direction of the breathing pulse
	BREATH_MAX_GAIN = 0.15
	STATUS_BAR_H    = 30
)

var (
	bgTopColor     = color.RGBA{0x0A, 0x0E, 0x27, 0xFF}
	bgBottomColor  = color.RGBA{0x1A, 0x1F, 0x3A, 0xFF}
	playingColor   = color.RGBA{0x4C, 0xAF, 0x50, 0xFF}
	stoppedColor   = color.RGBA{0x21, 0x96, 0xF3, 0xFF}
	labelColor     = color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}
	describeColor  = color.RGBA{0xFF, 0xFF, 0xFF, 0x99}
	hintColor      = color.RGBA{0xFF, 0xFF, 0xFF, 0x80}
	statusOffColor = color.RGBA{120, 120, 120, 255}
	statusOnColor  = color.RGBA{0, 220, 90, 255}
)

// noiseWindow implements ebiten.Game over a PlaybackController.
type noiseWindow struct {
	ctx    context.Context
	ctrl   *PlaybackController
	timer  *SleepTimer
	status *runtimeStatusStore
	start  time.Time

	pressX, pressY float64
	pressed        bool
	touchID        ebiten.TouchID
	touching       bool

	showStatusBar bool
	log           *logrus.Entry
}

// RunNoiseWindow opens the window and blocks until it is closed or ctx ends.
// Must be called from the main goroutine.
func RunNoiseWindow(ctx context.Context, ctrl *PlaybackController, timer *SleepTimer) error {
	w := &noiseWindow{
		ctx:           ctx,
		ctrl:          ctrl,
		timer:         timer,
		status:        ctrl.status,
		start:         time.Now(),
		showStatusBar: true,
		log:           logrus.WithField("component", "window"),
	}

	ebiten.SetWindowSize(WINDOW_WIDTH, WINDOW_HEIGHT)
	ebiten.SetWindowTitle(fmt.Sprintf("Intuition Noise %s", Version))
	ebiten.SetWindowResizable(true)
	ebiten.SetRunnableOnUnfocused(true)
	ebiten.SetWindowClosingHandled(true)

	if err := ebiten.RunGame(w); err != nil {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}

func (w *noiseWindow) Update() error {
	if ebiten.IsWindowBeingClosed() || w.ctx.Err() != nil {
		return ebiten.Termination
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyQ), inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeySpace), inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		w.apply(KeyToggle)
	case inpututil.IsKeyJustPressed(ebiten.KeyW), inpututil.IsKeyJustPressed(ebiten.Key1):
		w.apply(KeyWhite)
	case inpututil.IsKeyJustPressed(ebiten.KeyP), inpututil.IsKeyJustPressed(ebiten.Key2):
		w.apply(KeyPink)
	case inpututil.IsKeyJustPressed(ebiten.KeyB), inpututil.IsKeyJustPressed(ebiten.Key3):
		w.apply(KeyBrown)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		w.apply(KeyNext)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		w.apply(KeyPrev)
	case inpututil.IsKeyJustPressed(ebiten.KeyF12):
		w.showStatusBar = !w.showStatusBar
	}

	w.handlePointer()
	return nil
}

func (w *noiseWindow) handlePointer() {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		w.pressX, w.pressY, w.pressed = float64(x), float64(y), true
	}
	if w.pressed && inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		w.pressed = false
		w.release(float64(x), float64(y))
	}

	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		if w.touching {
			break
		}
		x, y := ebiten.TouchPosition(id)
		w.pressX, w.pressY = float64(x), float64(y)
		w.touchID, w.touching = id, true
	}
	if w.touching && inpututil.IsTouchJustReleased(w.touchID) {
		x, y := inpututil.TouchPositionInPreviousTick(w.touchID)
		w.touching = false
		w.release(float64(x), float64(y))
	}
}

// release resolves a press: a horizontal drag switches colour, a tap on the
// button toggles playback.
func (w *noiseWindow) release(x, y float64) {
	if t, ok := SwipeNoiseType(w.ctrl.CurrentNoiseType(), x-w.pressX); ok {
		w.report(w.ctrl.SetNoiseType(t))
		return
	}
	cx, cy := buttonCentre()
	if math.Hypot(x-cx, y-cy) <= BUTTON_RADIUS*(1+BREATH_MAX_GAIN) {
		w.apply(KeyToggle)
	}
}

func (w *noiseWindow) apply(a KeyAction) {
	w.report(applyKeyAction(w.ctrl, a))
}

func (w *noiseWindow) report(err error) {
	if err != nil {
		w.log.WithError(err).Warn("Command failed")
	}
}

func (w *noiseWindow) Draw(screen *ebiten.Image) {
	drawGradient(screen)

	playing := w.ctrl.IsPlaying()
	noiseType := w.ctrl.CurrentNoiseType()

	drawCentredText(screen, noiseType.Label(), 3, 150, labelColor)
	drawCentredText(screen, noiseType.Description(), 1.5, 185, describeColor)

	scale := 1.0
	if playing {
		scale = breathScale(time.Since(w.start))
	}
	drawPlayButton(screen, playing, scale)

	drawCentredText(screen, "<- Swipe to change noise type ->", 1.2, WINDOW_HEIGHT-90, hintColor)
	if w.timer != nil {
		if rem := w.timer.Remaining(); rem > 0 {
			drawCentredText(screen, "Sleep in "+formatRemaining(rem), 1.2, WINDOW_HEIGHT-70, hintColor)
		}
	}

	if w.showStatusBar {
		w.drawStatusBar(screen)
	}
}

func (w *noiseWindow) Layout(_, _ int) (int, int) {
	return WINDOW_WIDTH, WINDOW_HEIGHT
}

func buttonCentre() (float64, float64) {
	return WINDOW_WIDTH / 2, WINDOW_HEIGHT / 2
}

// breathScale eases between 1 and 1+BREATH_MAX_GAIN and back over two periods.
func breathScale(elapsed time.Duration) float64 {
	period := float64(BREATH_PERIOD)
	pos := math.Mod(float64(elapsed), 2*period) / period
	if pos > 1 {
		pos = 2 - pos
	}
	eased := pos * pos * (3 - 2*pos)
	return 1 + BREATH_MAX_GAIN*eased
}

func drawGradient(screen *ebiten.Image) {
	const bands = 48
	bandH := float64(WINDOW_HEIGHT) / bands
	for i := range bands {
		t := float64(i) / (bands - 1)
		c := color.RGBA{
			R: lerpByte(bgTopColor.R, bgBottomColor.R, t),
			G: lerpByte(bgTopColor.G, bgBottomColor.G, t),
			B: lerpByte(bgTopColor.B, bgBottomColor.B, t),
			A: 0xFF,
		}
		ebitenutil.DrawRect(screen, 0, float64(i)*bandH, WINDOW_WIDTH, bandH+1, c)
	}
}

func lerpByte(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t)
}

func drawPlayButton(screen *ebiten.Image, playing bool, scale float64) {
	cx, cy := buttonCentre()
	r := BUTTON_RADIUS * scale

	fill := stoppedColor
	if playing {
		fill = playingColor
	}
	vector.DrawFilledCircle(screen, float32(cx), float32(cy), float32(r), fill, true)

	icon := float32(r * 0.35)
	fx, fy := float32(cx), float32(cy)
	if playing {
		// Pause: two bars.
		barW := icon * 0.4
		vector.DrawFilledRect(screen, fx-icon*0.6, fy-icon, barW, icon*2, labelColor, true)
		vector.DrawFilledRect(screen, fx+icon*0.2, fy-icon, barW, icon*2, labelColor, true)
		return
	}
	// Play: a right-pointing triangle built from vertical strokes.
	left := fx - icon*0.6
	width := icon * 1.6
	for dx := float32(0); dx <= width; dx++ {
		half := icon * (1 - dx/width)
		vector.StrokeLine(screen, left+dx, fy-half, left+dx, fy+half, 1.5, labelColor, true)
	}
}

func drawCentredText(screen *ebiten.Image, s string, scale float64, baselineY int, clr color.Color) {
	face := basicfont.Face7x13
	textW := float64(text.BoundString(face, s).Dx()) * scale
	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(scale, scale)
	opts.GeoM.Translate((WINDOW_WIDTH-textW)/2, float64(baselineY))
	opts.ColorScale.ScaleWithColor(clr)
	text.DrawWithOptions(screen, s, face, opts)
}

type statusToken struct {
	name    string
	enabled bool
}

func drawStatusLine(screen *ebiten.Image, x, baselineY int, label string, tokens []statusToken) {
	face := basicfont.Face7x13
	prefixColor := color.RGBA{190, 190, 190, 255}

	text.Draw(screen, label, face, x, baselineY, prefixColor)
	cursorX := x + text.BoundString(face, label).Dx() + 6

	for _, token := range tokens {
		c := statusOffColor
		if token.enabled {
			c = statusOnColor
		}
		text.Draw(screen, token.name, face, cursorX, baselineY, c)
		cursorX += text.BoundString(face, token.name).Dx() + 8
	}
}

func (w *noiseWindow) drawStatusBar(screen *ebiten.Image) {
	s := w.status.snapshot()

	y := WINDOW_HEIGHT - STATUS_BAR_H
	ebitenutil.DrawRect(screen, 0, float64(y), WINDOW_WIDTH, STATUS_BAR_H, color.RGBA{0, 0, 0, 180})

	tokens := make([]statusToken, 0, 2*int(noiseTypeCount)+2)
	for t := NoiseWhite; t < noiseTypeCount; t++ {
		if t > NoiseWhite {
			tokens = append(tokens, statusToken{name: "|"})
		}
		tokens = append(tokens, statusToken{name: t.String(), enabled: s.playing && s.noiseType == t})
	}
	tokens = append(tokens, statusToken{name: " "}, statusToken{name: s.phase.String(), enabled: s.playing})
	drawStatusLine(screen, 6, y+13, "NOISE", tokens)

	info := fmt.Sprintf("sessions %d  buffers %d", s.sessionsStarted, s.buffersWritten)
	if s.lastError != "" {
		info = "error: " + s.lastError
	}
	text.Draw(screen, info, basicfont.Face7x13, 6, y+26, statusOffColor)
}
