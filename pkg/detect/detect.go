// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package detect

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/NVIDIA/gpu-probe/pkg/gpu"
	"github.com/NVIDIA/gpu-probe/pkg/probe/adreno"
	"github.com/NVIDIA/gpu-probe/pkg/probe/mali"
)

// Prober identifies the GPU behind a single device node.
type Prober interface {
	Query(ctx context.Context, path string) (*gpu.Info, error)
}

// Candidate pairs a vendor's prober with a device-node path to try.
type Candidate struct {
	Vendor gpu.Vendor
	Path   string
}

// maliNodeCount is how many numbered kbase nodes are probed on
// multi-GPU boards.
const maliNodeCount = 4

// DefaultCandidates returns the well-known device nodes in probe
// order: Mali nodes first, reflecting the most common SoC population
// of the target hardware classes.
func DefaultCandidates() []Candidate {
	c := make([]Candidate, 0, maliNodeCount+1)
	for i := 0; i < maliNodeCount; i++ {
		c = append(c, Candidate{Vendor: gpu.VendorMali, Path: fmt.Sprintf("/dev/mali%d", i)})
	}
	return append(c, Candidate{Vendor: gpu.VendorAdreno, Path: adreno.DefaultDevicePath})
}

// Detector probes candidate device nodes in order and returns the
// first successful identification.
type Detector struct {
	probers    map[gpu.Vendor]Prober
	candidates []Candidate
}

// Option configures a Detector.
type Option func(*Detector)

// WithProber replaces the prober used for a vendor. Used in tests and
// by callers that need strict decoding.
func WithProber(vendor gpu.Vendor, p Prober) Option {
	return func(d *Detector) {
		d.probers[vendor] = p
	}
}

// WithCandidates replaces the default candidate set.
func WithCandidates(candidates ...Candidate) Option {
	return func(d *Detector) {
		d.candidates = candidates
	}
}

// New creates a Detector wired to the real vendor probers and the
// default candidate set.
func New(opts ...Option) *Detector {
	d := &Detector{
		probers: map[gpu.Vendor]Prober{
			gpu.VendorMali:   &mali.Prober{},
			gpu.VendorAdreno: &adreno.Prober{},
		},
		candidates: DefaultCandidates(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Detect identifies the first reachable GPU using the default detector.
// An empty hintPath scans the well-known device nodes.
func Detect(ctx context.Context, hintPath string) (*gpu.Info, error) {
	return New().Detect(ctx, hintPath)
}

// Detect probes candidates in order and returns the first successful
// identification. With a hint path, each vendor's driver is tried
// against that single node instead of the candidate set. A candidate
// failing does not stop later ones; only exhaustion is an error, and
// the returned NoGPUError carries the cause for every attempted
// candidate.
func (d *Detector) Detect(ctx context.Context, hintPath string) (*gpu.Info, error) {
	candidates := d.candidates
	if hintPath != "" {
		candidates = hintCandidates(hintPath)
	}

	// scan ID correlates the per-candidate log lines of one pass
	log := slog.With("scan", uuid.NewString())

	failures := make([]CandidateFailure, 0, len(candidates))
	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			detectionTotal.WithLabelValues("error").Inc()
			return nil, err
		}

		info, err := d.probe(ctx, c)
		if err != nil {
			log.Debug("candidate probe failed",
				"path", c.Path, "vendor", c.Vendor, "error", err)
			failures = append(failures, CandidateFailure{Path: c.Path, Vendor: c.Vendor, Err: err})
			continue
		}

		log.Debug("candidate probe succeeded",
			"path", c.Path, "vendor", c.Vendor, "model", info.ModelName)
		detectionTotal.WithLabelValues("success").Inc()
		return info, nil
	}

	detectionTotal.WithLabelValues("error").Inc()
	return nil, &NoGPUError{Failures: failures}
}

func (d *Detector) probe(ctx context.Context, c Candidate) (*gpu.Info, error) {
	p, ok := d.probers[c.Vendor]
	if !ok {
		return nil, fmt.Errorf("no prober registered for vendor %q", c.Vendor)
	}

	start := time.Now()
	info, err := p.Query(ctx, c.Path)
	probeDuration.WithLabelValues(string(c.Vendor)).Observe(time.Since(start).Seconds())

	status := "success"
	if err != nil {
		status = "error"
	}
	probeAttemptTotal.WithLabelValues(string(c.Vendor), status).Inc()
	return info, err
}

// hintCandidates tries every vendor against one path, in the same
// vendor priority as the default scan.
func hintCandidates(path string) []Candidate {
	c := make([]Candidate, 0, len(gpu.Vendors))
	for _, v := range gpu.Vendors {
		c = append(c, Candidate{Vendor: v, Path: path})
	}
	return c
}
