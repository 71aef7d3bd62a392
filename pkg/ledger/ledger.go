// Copyright (c) 2017 Intel Corporation
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package ledger persists the append-only experiment run log. The log file
// is the sole durable record of completed groups: the group number for a new
// session is recovered by counting completion marker lines.
package ledger

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const timestampLayout = "2006-01-02 15:04:05"

const (
	// CompletionMarker is appended once after a fully finished group.
	// CurrentGroupNumber counts these lines, so the text must stay stable
	// across releases to keep old ledgers resumable.
	CompletionMarker = "===== GROUP COMPLETE ====="

	// InterruptionMarker is appended when a group is aborted. It must never
	// match CompletionMarker, so an interrupted group keeps its number.
	InterruptionMarker = "===== GROUP INTERRUPTED ====="
)

// Ledger appends timestamped event lines to a log file. Appending is the
// only mutation; the file is never truncated or rewritten. A single writer
// at a time is assumed.
type Ledger struct {
	path string
	now  func() time.Time
}

// New returns a Ledger writing to path. The file is created on first append.
func New(path string) *Ledger {
	return &Ledger{path: path, now: time.Now}
}

// Path returns the location of the ledger file.
func (l *Ledger) Path() string {
	return l.path
}

// Append writes one line to the ledger, prefixed with a bracketed local
// timestamp.
func (l *Ledger) Append(message string) error {
	file, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return errors.Wrapf(err, "could not open ledger %q", l.path)
	}
	defer file.Close()

	line := fmt.Sprintf("[%s] %s\n", l.now().Format(timestampLayout), message)
	if _, err := file.WriteString(line); err != nil {
		return errors.Wrapf(err, "could not append to ledger %q", l.path)
	}
	return nil
}

// Appendf formats a message and appends it as one line.
func (l *Ledger) Appendf(format string, args ...interface{}) error {
	return l.Append(fmt.Sprintf(format, args...))
}

// CurrentGroupNumber derives the group number for the next session: one more
// than the number of completion markers recorded so far. A missing ledger
// file means no group has completed yet.
func (l *Ledger) CurrentGroupNumber() (int, error) {
	file, err := os.Open(l.path)
	if os.IsNotExist(err) {
		return 1, nil
	}
	if err != nil {
		return 0, errors.Wrapf(err, "could not open ledger %q", l.path)
	}
	defer file.Close()

	completed := 0
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if strings.Contains(scanner.Text(), CompletionMarker) {
			completed++
		}
	}
	if err := scanner.Err(); err != nil {
		return 0, errors.Wrapf(err, "could not read ledger %q", l.path)
	}
	return completed + 1, nil
}
