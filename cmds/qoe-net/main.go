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

package main

import (
	"math/rand"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/google/shlex"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/FlameF91/QoE-Linux-Net2/pkg/catalog"
	"github.com/FlameF91/QoE-Linux-Net2/pkg/conf"
	"github.com/FlameF91/QoE-Linux-Net2/pkg/executor"
	"github.com/FlameF91/QoE-Linux-Net2/pkg/experiment"
	"github.com/FlameF91/QoE-Linux-Net2/pkg/ledger"
	"github.com/FlameF91/QoE-Linux-Net2/pkg/netem"
	"github.com/FlameF91/QoE-Linux-Net2/pkg/utils/errutil"
	"github.com/FlameF91/QoE-Linux-Net2/pkg/utils/netutil"
)

var (
	catalogFlag = conf.NewStringFlag(
		"catalog", "Path to the condition catalogue file.", "conditions.conf")
	ledgerFlag = conf.NewStringFlag(
		"ledger", "Path to the append-only experiment log.", "experiment.log")
	deviceFlag = conf.NewStringFlag(
		"device", "Network interface to impair. Empty means choose interactively.", "")
	tcFlag = conf.NewStringFlag(
		"tc", "Traffic shaping command, split shell-style (e.g. 'sudo tc').", "tc")
	dryRunFlag = conf.NewBoolFlag(
		"dry_run", "Print shaping commands instead of executing them.", false)
	seedFlag = conf.NewIntFlag(
		"seed", "Seed for the trial order shuffle. 0 uses a random seed.", 0)
)

func main() {
	conf.SetAppName("qoe-net")
	conf.SetHelp(`qoe-net runs one blinded network-impairment experiment group.
It reads a catalogue of named network conditions, applies them to a live
interface in randomized order via tc netem, and appends every action to a
ledger so that groups resume with the right number across invocations.
A condition's identity is revealed only when the next trial begins.`)

	errutil.Check(conf.ParseFlags())
	logrus.SetLevel(conf.LogLevel())

	validateOS()

	device := resolveDevice()

	conditions, err := catalog.LoadFile(catalogFlag.Value())
	errutil.Check(err)

	tcCommand, err := shlex.Split(tcFlag.Value())
	errutil.CheckWithContext(err, "parsing the tc flag")
	if len(tcCommand) == 0 {
		errutil.Check(errors.New("the tc flag must name a shaping command"))
	}

	var commandRunner executor.Executor = executor.NewLocal()
	if dryRunFlag.Value() {
		commandRunner = executor.NewDryRun()
	}

	var rng *rand.Rand
	if seed := seedFlag.Value(); seed != 0 {
		rng = rand.New(rand.NewSource(int64(seed)))
	}

	session := experiment.NewSession(experiment.Config{
		Catalog:    conditions,
		Ledger:     ledger.New(ledgerFlag.Value()),
		Controller: netem.New(device, tcCommand, commandRunner),
		Rng:        rng,
	})

	err = session.Run()
	if err == experiment.ErrInterrupted || err == experiment.ErrInputClosed {
		logrus.Errorf("%v", err)
		os.Exit(1)
	}
	errutil.Check(err)
}

// resolveDevice returns a validated interface name, prompting the operator
// when the device flag is empty. Validation happens before any network
// mutation.
func resolveDevice() string {
	device := deviceFlag.Value()
	if device == "" {
		names, err := netutil.Interfaces()
		errutil.Check(err)
		if len(names) == 0 {
			errutil.Check(errors.New("no network interfaces found"))
		}

		prompt := &survey.Select{
			Message: "Interface to impair:",
			Options: names,
		}
		errutil.CheckWithContext(survey.AskOne(prompt, &device), "selecting interface")
	}
	if device == "" {
		errutil.Check(errors.New("interface name is empty"))
	}

	exists, err := netutil.Exists(device)
	errutil.Check(err)
	if !exists {
		errutil.Check(errors.Errorf("unknown interface %q", device))
	}
	return device
}
