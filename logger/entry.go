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

package logger

import (
	"strings"

	"github.com/sirupsen/logrus"

	loglvl "github/sabouaram/ews/logger/level"
)

// Entry is a single log record under construction. Build it with the
// FieldAdd/ErrorAdd chain and terminate the chain with Log.
type Entry struct {
	log     *logrus.Logger
	level   loglvl.Level
	message string
	fields  logrus.Fields
	errs    []error
}

// FieldAdd attaches one key/value pair to the entry.
func (e *Entry) FieldAdd(key string, val interface{}) *Entry {
	if e.fields == nil {
		e.fields = make(logrus.Fields, 4)
	}
	e.fields[key] = val
	return e
}

// ErrorAdd appends errors to the entry. If clean is true, nil errors are skipped.
func (e *Entry) ErrorAdd(clean bool, err ...error) *Entry {
	for _, er := range err {
		if clean && er == nil {
			continue
		}
		e.errs = append(e.errs, er)
	}
	return e
}

// Log emits the entry if the logger's level accepts it. NilLevel never emits.
func (e *Entry) Log() {
	if e.log == nil || e.level == loglvl.NilLevel {
		return
	}

	fields := e.fields
	if len(e.errs) > 0 {
		if fields == nil {
			fields = make(logrus.Fields, 1)
		}

		msgs := make([]string, 0, len(e.errs))
		for _, er := range e.errs {
			if er != nil {
				msgs = append(msgs, er.Error())
			}
		}
		if len(msgs) > 0 {
			fields["error"] = strings.Join(msgs, ", ")
		}
	}

	e.log.WithFields(fields).Log(e.level.Logrus(), e.message)
}
