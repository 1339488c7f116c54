// noise_script.go - Lua scripted control sessions
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
	"time"

	"github.com/sirupsen/logrus"
	lua "github.com/yuin/gopher-lua"
)

// ScriptRunner drives a PlaybackController from a Lua script. Each run gets
// a fresh interpreter; globals:
//
//	play() pause() toggle()
//	set_noise(name) next_noise() prev_noise()
//	noise() -> string    playing() -> bool
//	sleep(seconds)       log(msg)
type ScriptRunner struct {
	ctrl  *PlaybackController
	log   *logrus.Entry
	sleep func(ctx context.Context, d time.Duration) error
}

func NewScriptRunner(ctrl *PlaybackController) *ScriptRunner {
	return &ScriptRunner{
		ctrl:  ctrl,
		log:   logrus.WithField("component", "script"),
		sleep: sleepContext,
	}
}

func (r *ScriptRunner) RunFile(ctx context.Context, path string) error {
	L := r.newState(ctx)
	defer L.Close()

	r.log.WithField("path", path).Info("Running script")
	if err := L.DoFile(path); err != nil {
		return fmt.Errorf("script %s: %w", path, err)
	}
	return nil
}

func (r *ScriptRunner) RunString(ctx context.Context, src string) error {
	L := r.newState(ctx)
	defer L.Close()

	if err := L.DoString(src); err != nil {
		return fmt.Errorf("script: %w", err)
	}
	return nil
}

func (r *ScriptRunner) newState(ctx context.Context) *lua.LState {
	L := lua.NewState()
	L.SetContext(ctx)

	register := func(name string, fn lua.LGFunction) {
		L.SetGlobal(name, L.NewFunction(fn))
	}
	register("play", r.luaPlay)
	register("pause", r.luaPause)
	register("toggle", r.luaToggle)
	register("set_noise", r.luaSetNoise)
	register("next_noise", r.luaNextNoise)
	register("prev_noise", r.luaPrevNoise)
	register("noise", r.luaNoise)
	register("playing", r.luaPlaying)
	register("sleep", r.luaSleep)
	register("log", r.luaLog)
	return L
}

func (r *ScriptRunner) check(L *lua.LState, op string, err error) {
	if err != nil {
		L.RaiseError("%s: %v", op, err)
	}
}

func (r *ScriptRunner) luaPlay(L *lua.LState) int {
	r.check(L, "play", r.ctrl.Play())
	return 0
}

func (r *ScriptRunner) luaPause(L *lua.LState) int {
	r.ctrl.Pause()
	return 0
}

func (r *ScriptRunner) luaToggle(L *lua.LState) int {
	r.check(L, "toggle", r.ctrl.Toggle())
	return 0
}

func (r *ScriptRunner) luaSetNoise(L *lua.LState) int {
	t, err := ParseNoiseType(L.CheckString(1))
	r.check(L, "set_noise", err)
	r.check(L, "set_noise", r.ctrl.SetNoiseType(t))
	return 0
}

func (r *ScriptRunner) luaNextNoise(L *lua.LState) int {
	r.check(L, "next_noise", r.ctrl.SetNoiseType(r.ctrl.CurrentNoiseType().Next()))
	return 0
}

func (r *ScriptRunner) luaPrevNoise(L *lua.LState) int {
	r.check(L, "prev_noise", r.ctrl.SetNoiseType(r.ctrl.CurrentNoiseType().Prev()))
	return 0
}

func (r *ScriptRunner) luaNoise(L *lua.LState) int {
	L.Push(lua.LString(r.ctrl.CurrentNoiseType().String()))
	return 1
}

func (r *ScriptRunner) luaPlaying(L *lua.LState) int {
	L.Push(lua.LBool(r.ctrl.IsPlaying()))
	return 1
}

func (r *ScriptRunner) luaSleep(L *lua.LState) int {
	secs := float64(L.CheckNumber(1))
	if secs < 0 {
		L.ArgError(1, "negative duration")
	}
	d := time.Duration(secs * float64(time.Second))
	r.check(L, "sleep", r.sleep(L.Context(), d))
	return 0
}

func (r *ScriptRunner) luaLog(L *lua.LState) int {
	r.log.Info(L.CheckString(1))
	return 0
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if ctx == nil {
		ctx = context.Background()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
