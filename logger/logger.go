/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package logger is a small structured-logging facade over logrus, built
// around a chained Entry rather than printf-style calls.
package logger

import (
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"

	loglvl "github/sabouaram/ews/logger/level"
)

// FuncLog returns a Logger lazily, the way collaborators that are handed a
// logger before one necessarily exists (e.g. config defaults) expect it.
type FuncLog func() Logger

// Logger is the minimal surface every engine component logs through.
type Logger interface {
	// SetLevel changes the minimal level emitted.
	SetLevel(lvl loglvl.Level)
	// GetLevel returns the minimal level emitted.
	GetLevel() loglvl.Level
	// SetOutput changes the destination writer.
	SetOutput(w io.Writer)
	// Entry starts a new log entry at the given level with the given message.
	Entry(lvl loglvl.Level, message string) *Entry
}

type logger struct {
	mu  sync.RWMutex
	lvl loglvl.Level
	out *logrus.Logger
}

// New returns a Logger writing to w (stderr if w is nil) at the given level.
func New(lvl loglvl.Level, w io.Writer) Logger {
	if w == nil {
		w = os.Stderr
	}

	l := &logrus.Logger{
		Out:       w,
		Formatter: &logrus.TextFormatter{FullTimestamp: true},
		Hooks:     make(logrus.LevelHooks),
		Level:     lvl.Logrus(),
	}

	return &logger{lvl: lvl, out: l}
}

func (o *logger) SetLevel(lvl loglvl.Level) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.lvl = lvl
	o.out.SetLevel(lvl.Logrus())
}

func (o *logger) GetLevel() loglvl.Level {
	o.mu.RLock()
	defer o.mu.RUnlock()

	return o.lvl
}

func (o *logger) SetOutput(w io.Writer) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.out.SetOutput(w)
}

func (o *logger) Entry(lvl loglvl.Level, message string) *Entry {
	o.mu.RLock()
	defer o.mu.RUnlock()

	if o.lvl == loglvl.NilLevel {
		// A nil-level logger emits nothing; an Entry without a backend
		// makes Log a no-op.
		return &Entry{level: lvl, message: message}
	}

	return &Entry{log: o.out, level: lvl, message: message}
}
