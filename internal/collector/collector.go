package collector

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/sigreer/hostprobe/internal/runner"
)

// probe is one independent data-gathering step writing into its own section
type probe struct {
	name string
	run  func(ctx context.Context, r runner.Runner, data *SystemData)
}

var probes = []probe{
	{"uname", func(ctx context.Context, r runner.Runner, d *SystemData) { d.Uname = collectUname(ctx, r) }},
	{"user", func(ctx context.Context, r runner.Runner, d *SystemData) { d.User = collectUser(ctx, r) }},
	{"env", func(_ context.Context, r runner.Runner, d *SystemData) { d.Env = collectEnv(r) }},
	{"dmi", func(_ context.Context, r runner.Runner, d *SystemData) { d.DMI = collectDMI(r) }},
	{"xdg", func(_ context.Context, r runner.Runner, d *SystemData) { d.XDG = collectXDG(r) }},
	{"cpu", func(ctx context.Context, r runner.Runner, d *SystemData) { d.CPU = collectCPU(ctx, r) }},
	{"proc", func(_ context.Context, r runner.Runner, d *SystemData) { d.Proc = collectProc(r) }},
	{"mkinitcpio", func(ctx context.Context, r runner.Runner, d *SystemData) { d.Mkinitcpio = collectMkinitcpio(ctx, r) }},
	{"x11", func(ctx context.Context, r runner.Runner, d *SystemData) { d.X11 = collectX11(ctx, r) }},
	{"pacman", func(ctx context.Context, r runner.Runner, d *SystemData) { d.Pacman = collectPacman(ctx, r) }},
	{"lsblk", func(ctx context.Context, r runner.Runner, d *SystemData) { d.Lsblk = collectLsblk(ctx, r) }},
	{"lspci", func(ctx context.Context, r runner.Runner, d *SystemData) { d.Lspci = collectLspci(ctx, r) }},
	{"lsmod", func(ctx context.Context, r runner.Runner, d *SystemData) { d.Lsmod = collectLsmod(ctx, r) }},
}

// ProbeNames returns the names accepted by WithSkip, in collection order
func ProbeNames() []string {
	names := make([]string, len(probes))
	for i, p := range probes {
		names[i] = p.name
	}
	return names
}

// Collector runs every probe once, sequentially, against a Runner
type Collector struct {
	runner runner.Runner
	logger *slog.Logger
	skip   map[string]bool
}

// Option configures a Collector
type Option func(*Collector)

// WithLogger sets the logger used to report degraded probes
func WithLogger(logger *slog.Logger) Option {
	return func(c *Collector) {
		c.logger = logger
	}
}

// WithSkip disables the named probes. Their sections keep their empty shape.
func WithSkip(names ...string) Option {
	return func(c *Collector) {
		for _, name := range names {
			c.skip[name] = true
		}
	}
}

// New creates a Collector
func New(r runner.Runner, opts ...Option) *Collector {
	c := &Collector{
		runner: r,
		logger: slog.Default(),
		skip:   make(map[string]bool),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ValidateSkip returns an error naming any skip entry that is not a probe
func ValidateSkip(names []string) error {
	known := make(map[string]bool, len(probes))
	for _, p := range probes {
		known[p.name] = true
	}
	var unknown []string
	for _, name := range names {
		if !known[name] {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("unknown probe(s) %v, expected one of %v", unknown, ProbeNames())
	}
	return nil
}

// Collect gathers data from all probes. It never fails: a probe whose tool
// is missing, exits non-zero, prints nothing or prints garbage leaves its
// section empty and the remaining probes still run.
func (c *Collector) Collect(ctx context.Context) *SystemData {
	data := emptySystemData()
	for _, p := range probes {
		if c.skip[p.name] {
			c.logger.Debug("probe skipped", "probe", p.name)
			continue
		}
		c.runProbe(ctx, p, data)
	}
	return data
}

// runProbe confines a fault in one probe to that probe's section
func (c *Collector) runProbe(ctx context.Context, p probe, data *SystemData) {
	section := emptySystemData()
	defer func() {
		if rec := recover(); rec != nil {
			c.logger.Warn("probe failed", "probe", p.name, "panic", rec)
		}
	}()
	p.run(ctx, c.runner, section)
	mergeSection(p.name, data, section)
	c.logger.Debug("probe done", "probe", p.name)
}

// mergeSection copies the section owned by probe name from src into dst
func mergeSection(name string, dst, src *SystemData) {
	switch name {
	case "uname":
		dst.Uname = src.Uname
	case "user":
		dst.User = src.User
	case "env":
		dst.Env = src.Env
	case "dmi":
		dst.DMI = src.DMI
	case "xdg":
		dst.XDG = src.XDG
	case "cpu":
		dst.CPU = src.CPU
	case "proc":
		dst.Proc = src.Proc
	case "mkinitcpio":
		dst.Mkinitcpio = src.Mkinitcpio
	case "x11":
		dst.X11 = src.X11
	case "pacman":
		dst.Pacman = src.Pacman
	case "lsblk":
		dst.Lsblk = src.Lsblk
	case "lspci":
		dst.Lspci = src.Lspci
	case "lsmod":
		dst.Lsmod = src.Lsmod
	}
}

// emptySystemData is the document with every probe degraded: lists are
// empty rather than null, absent-capable values are null
func emptySystemData() *SystemData {
	return &SystemData{
		Proc: ProcInfo{
			Partitions: make([]Partition, 0),
		},
		Mkinitcpio: MkinitcpioInfo{
			Modules: make([]string, 0),
			Hooks:   make([]string, 0),
		},
		X11: X11Info{
			Xrdb: XrdbInfo{Resources: make([]string, 0)},
		},
		Pacman: PacmanInfo{Explicit: make([]string, 0)},
		Lsblk:  make([]BlockDevice, 0),
		Lspci:  make([]PCIDevice, 0),
		Lsmod:  make([]KernelModule, 0),
	}
}
