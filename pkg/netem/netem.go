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

// Package netem translates condition profiles into tc netem qdisc
// configurations on a network interface. Apply always clears first, so the
// kernel state never depends on what was active before.
package netem

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/FlameF91/QoE-Linux-Net2/pkg/catalog"
	"github.com/FlameF91/QoE-Linux-Net2/pkg/executor"
)

// ApplyError reports a shaping invocation that ran but exited non-zero.
// It carries the mechanism's exit code and raw diagnostic text so the
// session can log them and move on.
type ApplyError struct {
	ExitCode int
	Output   string
}

func (e *ApplyError) Error() string {
	return fmt.Sprintf("shaping command exited with code %d: %s", e.ExitCode, e.Output)
}

// Controller applies and clears netem impairment on a single interface.
type Controller struct {
	device string
	tc     []string
	exec   executor.Executor
}

// New returns a Controller for device. tc is the shaping command prefix
// (such as ["tc"] or ["sudo" "tc"]); exec runs the composed commands.
func New(device string, tc []string, exec executor.Executor) *Controller {
	return &Controller{device: device, tc: tc, exec: exec}
}

// Device returns the interface the controller shapes.
func (c *Controller) Device() string {
	return c.device
}

// Apply configures the impairment described by profile. The previous qdisc
// is always removed first, which makes Apply idempotent regardless of prior
// state. The all-zero baseline profile is a pure clear: no zero-magnitude
// netem rule is installed for it.
func (c *Controller) Apply(profile catalog.Profile) error {
	c.Clear()

	if profile.IsBaseline() {
		return nil
	}

	argv := c.command("qdisc", "add", "dev", c.device, "root", "netem")
	if profile.RTTMs != 0 || profile.JitterMs != 0 {
		argv = append(argv, "delay", formatMs(OneWayDelayMs(profile.RTTMs)))
		if profile.JitterMs != 0 {
			argv = append(argv, formatMs(profile.JitterMs), "distribution", "normal")
		}
	}
	if profile.LossPct != 0 {
		argv = append(argv, "loss", formatPct(profile.LossPct))
	}

	result, err := c.exec.Execute(argv)
	if err != nil {
		return errors.Wrapf(err, "could not invoke shaping command for condition %q", profile.ID)
	}
	if !result.Success() {
		return &ApplyError{ExitCode: result.ExitCode, Output: strings.TrimSpace(result.Output)}
	}
	return nil
}

// Clear removes any impairment from the interface. Failures are swallowed
// after logging: deleting the root qdisc of an unshaped interface fails and
// that is fine, and a best-effort clear must never halt the experiment.
func (c *Controller) Clear() error {
	result, err := c.exec.Execute(c.command("qdisc", "del", "dev", c.device, "root"))
	if err != nil {
		logrus.Debugf("netem: clear on %s could not run: %v", c.device, err)
		return err
	}
	if !result.Success() {
		logrus.Debugf("netem: clear on %s exited with code %d: %s",
			c.device, result.ExitCode, strings.TrimSpace(result.Output))
	}
	return nil
}

func (c *Controller) command(args ...string) []string {
	argv := make([]string, 0, len(c.tc)+len(args))
	argv = append(argv, c.tc...)
	return append(argv, args...)
}

// OneWayDelayMs converts a round-trip latency to the one-way delay handed
// to netem: RTT/2 rounded to one decimal place, half away from zero.
func OneWayDelayMs(rttMs float64) float64 {
	return math.Floor(rttMs/2*10+0.5) / 10
}

func formatMs(value float64) string {
	return strconv.FormatFloat(value, 'f', 1, 64) + "ms"
}

func formatPct(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64) + "%"
}
