package collector

import (
	"context"
	"strconv"
	"strings"
	"unicode"

	"github.com/sigreer/hostprobe/internal/runner"
)

// treeGlyphs are the box-drawing characters xinput uses to draw its hierarchy
const treeGlyphs = "⎡⎜⎣↳"

func collectX11(ctx context.Context, r runner.Runner) X11Info {
	var info X11Info

	if out, ok := r.Optional(ctx, "xinput", "list"); ok {
		info.Xinput.Devices = ParseXinputList(out)
	}
	if out, ok := r.Optional(ctx, "xrandr", "--listmonitors"); ok {
		info.Xrandr.Monitors = ParseXrandrMonitors(out)
	}

	xrdb, _ := r.Optional(ctx, "xrdb", "-query")
	info.Xrdb.Resources = nonEmptyLines(xrdb)

	xdpy, _ := r.Optional(ctx, "xdpyinfo")
	info.Xdpyinfo = ParseXdpyinfo(xdpy)

	return info
}

// ParseXinputList parses xinput list output, e.g.
//
//	⎜   ↳ Logitech USB Mouse                    id=10   [slave  pointer  (2)]
//
// Lines without "id=" are section separators and are skipped.
func ParseXinputList(output string) []InputDevice {
	devices := make([]InputDevice, 0)
	for _, line := range strings.Split(output, "\n") {
		left, right, found := strings.Cut(line, "id=")
		if !found {
			continue
		}
		idFields := strings.Fields(right)
		if len(idFields) == 0 {
			continue
		}

		dev := InputDevice{
			Name: strings.TrimSpace(trimTreePrefix(left)),
			ID:   idFields[0],
		}
		if _, annotation, ok := lastGroup(line, '[', ']'); ok {
			dev.Role, dev.DeviceType, dev.AttachedTo = parseXinputAnnotation(annotation)
		}
		devices = append(devices, dev)
	}
	return devices
}

// parseXinputAnnotation splits "slave  pointer  (2)" into its positional parts
func parseXinputAnnotation(annotation string) (role, deviceType, attachedTo *string) {
	content := strings.TrimSpace(annotation)
	if before, inner, ok := trailingGroup(content, '(', ')'); ok {
		attached := strings.TrimSpace(inner)
		attachedTo = &attached
		content = before
	}

	tokens := strings.Fields(content)
	if len(tokens) > 0 {
		role = &tokens[0]
	}
	if len(tokens) > 1 {
		deviceType = &tokens[1]
	}
	return role, deviceType, attachedTo
}

func trimTreePrefix(s string) string {
	return strings.TrimLeftFunc(s, func(r rune) bool {
		return strings.ContainsRune(treeGlyphs, r) || unicode.IsSpace(r)
	})
}

// ParseXrandrMonitors parses xrandr --listmonitors output:
//
//	Monitors: 2
//	 0: +*eDP-1 1920/344x1080/194+0+0  eDP-1
//
// The last token is the monitor name and everything between the colon and
// the name is the geometry.
func ParseXrandrMonitors(output string) []Monitor {
	monitors := make([]Monitor, 0)
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "Monitors:") {
			continue
		}
		indexPart, rest, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		index, err := strconv.ParseUint(strings.TrimSpace(indexPart), 10, 32)
		if err != nil {
			continue
		}
		fields := strings.Fields(rest)
		if len(fields) < 2 {
			continue
		}
		monitors = append(monitors, Monitor{
			Index:    uint32(index),
			Name:     fields[len(fields)-1],
			Geometry: strings.Join(fields[:len(fields)-1], " "),
		})
	}
	return monitors
}

// ParseXdpyinfo picks the dimensions and resolution lines of xdpyinfo.
// Missing or empty values stay nil.
func ParseXdpyinfo(output string) XdpyInfo {
	var info XdpyInfo
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if rest, ok := strings.CutPrefix(line, "dimensions:"); ok {
			if value := strings.TrimSpace(rest); value != "" {
				info.Dimensions = &value
			}
			continue
		}
		if rest, ok := strings.CutPrefix(line, "resolution:"); ok {
			if value := strings.TrimSpace(rest); value != "" {
				info.Resolution = &value
			}
		}
	}
	return info
}
