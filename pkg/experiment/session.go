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

// Package experiment drives one blinded experiment group: it resumes the
// group number from the ledger, shuffles the condition order, applies each
// condition in turn and reveals a condition's identity only when the next
// trial begins. The operator paces the session with ENTER between trials.
package experiment

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/FlameF91/QoE-Linux-Net2/pkg/catalog"
	"github.com/FlameF91/QoE-Linux-Net2/pkg/ledger"
	"github.com/FlameF91/QoE-Linux-Net2/pkg/netem"
	"github.com/FlameF91/QoE-Linux-Net2/pkg/shuffle"
)

// ErrInterrupted is returned by Run when the operator aborts the group.
// The group number is not advanced; a later session retries it.
var ErrInterrupted = errors.New("experiment group interrupted")

// ErrInputClosed is returned by Run when operator input ends before the
// group does. Cleanup behaves exactly as for an interrupt.
var ErrInputClosed = errors.New("operator input closed before the group finished")

var (
	revealStyle  = color.New(color.FgCyan)
	failureStyle = color.New(color.FgRed, color.Bold)
)

// Config wires a Session. Catalog, Ledger and Controller are mandatory.
type Config struct {
	Catalog    *catalog.Catalog
	Ledger     *ledger.Ledger
	Controller *netem.Controller

	// SessionID tags the group header. Defaults to a fresh UUID.
	SessionID string
	// Rng drives the trial order shuffle. Nil uses the shared source;
	// a seeded rng makes the order reproducible.
	Rng *rand.Rand
	// In delivers operator acknowledgments, one per line. Default: stdin.
	In io.Reader
	// Out receives operator-facing output. Default: stdout.
	Out io.Writer
	// Interrupts receives the abort signals. Default: a fresh channel
	// registered for SIGINT and SIGTERM. Tests inject their own.
	Interrupts chan os.Signal
}

// Session runs one full experiment group. Strictly sequential: the only
// suspension points are the operator waits, and those are the points where
// an interrupt is honored.
type Session struct {
	catalog    *catalog.Catalog
	ledger     *ledger.Ledger
	controller *netem.Controller
	id         string
	rng        *rand.Rand
	in         io.Reader
	out        io.Writer
	interrupts chan os.Signal
}

// NewSession returns a Session for the given configuration.
func NewSession(config Config) *Session {
	session := &Session{
		catalog:    config.Catalog,
		ledger:     config.Ledger,
		controller: config.Controller,
		id:         config.SessionID,
		rng:        config.Rng,
		in:         config.In,
		out:        config.Out,
		interrupts: config.Interrupts,
	}
	if session.id == "" {
		session.id = uuid.NewString()
	}
	if session.in == nil {
		session.in = os.Stdin
	}
	if session.out == nil {
		session.out = os.Stdout
	}
	if session.interrupts == nil {
		session.interrupts = make(chan os.Signal, 1)
	}
	return session
}

// Run executes the whole group: header, shuffled trials with blinded
// reveals, final reveal, clear, summary and the completion marker. On
// interrupt it clears the interface, records the interruption marker and
// returns ErrInterrupted.
func (s *Session) Run() error {
	group, err := s.ledger.CurrentGroupNumber()
	if err != nil {
		return err
	}

	signal.Notify(s.interrupts, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(s.interrupts)
	acknowledgments := s.pumpAcknowledgments()

	order := shuffle.Order(s.catalog.IDs(), s.rng)

	s.printf("Starting experiment group %d on %s: %d trials.\n",
		group, s.controller.Device(), len(order))
	err = s.ledger.Appendf("===== GROUP %d STARTED ===== interface=%s trials=%d session=%s",
		group, s.controller.Device(), len(order), s.id)
	if err != nil {
		return err
	}
	if err := s.ledger.Appendf("trial order: %s", strings.Join(order, " ")); err != nil {
		return err
	}

	for i, id := range order {
		if i > 0 {
			if err := s.reveal(i, order[i-1]); err != nil {
				return err
			}
		}

		if err := s.runTrial(i+1, len(order), id); err != nil {
			return err
		}

		s.printf("Condition active. Press ENTER when you are done with this trial.\n")
		if abort := s.waitForAcknowledgment(acknowledgments); abort != nil {
			return s.abort(group, abort)
		}
	}

	if err := s.reveal(len(order), order[len(order)-1]); err != nil {
		return err
	}

	s.controller.Clear()
	if err := s.ledger.Append("impairment cleared"); err != nil {
		return err
	}

	if err := s.summarize(order); err != nil {
		return err
	}
	if err := s.ledger.Append(ledger.CompletionMarker); err != nil {
		return err
	}
	if err := s.ledger.Appendf("group %d finished", group); err != nil {
		return err
	}
	s.printf("\nGroup %d complete. Impairment cleared.\n", group)
	return nil
}

// runTrial logs the condition's full parameters (ledger only, the operator
// stays blind) and applies it. A failed apply is reported and logged but
// never stops the group.
func (s *Session) runTrial(number, total int, id string) error {
	profile, ok := s.catalog.Get(id)
	if !ok {
		return errors.Errorf("condition %q disappeared from the catalogue", id)
	}

	err := s.ledger.Appendf("trial %d/%d: condition %s rtt=%gms delay=%gms jitter=%gms loss=%g%%",
		number, total, profile.ID, profile.RTTMs, netem.OneWayDelayMs(profile.RTTMs),
		profile.JitterMs, profile.LossPct)
	if err != nil {
		return err
	}

	s.printf("\nTrial %d of %d: applying condition (identity hidden).\n", number, total)

	if applyErr := s.controller.Apply(profile); applyErr != nil {
		failureStyle.Fprintf(s.out, "Shaping failed for this trial; continuing anyway.\n")
		return s.ledger.Appendf("trial %d/%d: apply failed: %v", number, total, applyErr)
	}
	return nil
}

// reveal discloses the identity of an already finished trial.
func (s *Session) reveal(number int, id string) error {
	profile, _ := s.catalog.Get(id)
	text := fmt.Sprintf("trial %d was condition %s (rtt=%gms jitter=%gms loss=%g%%)",
		number, profile.ID, profile.RTTMs, profile.JitterMs, profile.LossPct)
	revealStyle.Fprintf(s.out, "%s\n", strings.ToUpper(text[:1])+text[1:])
	return s.ledger.Append("reveal: " + text)
}

// summarize prints and logs the whole group in the order it was run.
func (s *Session) summarize(order []string) error {
	table := newSummaryTable()
	for i, id := range order {
		profile, _ := s.catalog.Get(id)
		table.addTrial(i+1, profile)
		err := s.ledger.Appendf("summary: trial %d condition %s rtt=%gms jitter=%gms loss=%g%%",
			i+1, profile.ID, profile.RTTMs, profile.JitterMs, profile.LossPct)
		if err != nil {
			return err
		}
	}
	s.printf("\nGroup summary, in trial order:\n")
	table.draw(s.out)
	return nil
}

// abort is the interrupt cleanup path: best-effort clear plus the
// interruption marker, which keeps the group number unchanged.
func (s *Session) abort(group int, cause error) error {
	s.printf("\nAborting group %d: clearing impairment.\n", group)
	s.controller.Clear()
	if err := s.ledger.Append(ledger.InterruptionMarker); err != nil {
		return err
	}
	if err := s.ledger.Appendf("group %d interrupted", group); err != nil {
		return err
	}
	return cause
}

// pumpAcknowledgments turns operator input lines into events so that the
// trial waits can select on them against the interrupt signal.
func (s *Session) pumpAcknowledgments() <-chan struct{} {
	acknowledgments := make(chan struct{})
	go func() {
		scanner := bufio.NewScanner(s.in)
		for scanner.Scan() {
			acknowledgments <- struct{}{}
		}
		close(acknowledgments)
	}()
	return acknowledgments
}

// waitForAcknowledgment blocks until the operator presses ENTER. There is
// no timeout. A signal, or end of input, aborts the wait.
func (s *Session) waitForAcknowledgment(acknowledgments <-chan struct{}) error {
	select {
	case _, ok := <-acknowledgments:
		if !ok {
			return ErrInputClosed
		}
		return nil
	case <-s.interrupts:
		return ErrInterrupted
	}
}

func (s *Session) printf(format string, args ...interface{}) {
	fmt.Fprintf(s.out, format, args...)
}
