package collector

import (
	"context"
	"strings"

	"github.com/sigreer/hostprobe/internal/runner"
)

// collectLspci runs lspci -nnk and parses its device records
func collectLspci(ctx context.Context, r runner.Runner) []PCIDevice {
	return ParseLspci(r.Text(ctx, "lspci", "-nnk"))
}

// ParseLspci parses lspci -nnk output. A record opens on every line whose
// first token is a bus:device.function address and collects the indented
// attribute lines that follow it. Lines before the first header are dropped.
func ParseLspci(output string) []PCIDevice {
	devices := make([]PCIDevice, 0)
	var current *PCIDevice

	for _, line := range strings.Split(output, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		if isPCIHeaderLine(line) {
			if current != nil {
				devices = append(devices, *current)
			}
			dev := parsePCIHeader(line)
			current = &dev
			continue
		}

		if current == nil {
			continue
		}

		key, value, found := strings.Cut(strings.TrimLeft(line, " \t"), ":")
		if !found {
			continue
		}
		value = strings.TrimSpace(value)

		switch strings.TrimSpace(key) {
		case "Subsystem":
			name, vendor, device := parseNamedIDs(value)
			current.SubsystemName = &name
			current.SubsystemVendorID = vendor
			current.SubsystemDeviceID = device
		case "Kernel driver in use":
			driver := value
			current.KernelDriverInUse = &driver
		case "Kernel modules":
			current.KernelModules = splitList(value, ",")
		}
	}

	if current != nil {
		devices = append(devices, *current)
	}
	return devices
}

// isPCIHeaderLine reports whether the first whitespace token of line is a
// slot address of the exact form XX:YY.Z in hex.
func isPCIHeaderLine(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	bus, devFn, found := strings.Cut(fields[0], ":")
	if !found {
		return false
	}
	dev, fn, found := strings.Cut(devFn, ".")
	if !found {
		return false
	}
	return len(bus) == 2 && isHex(bus) &&
		len(dev) == 2 && isHex(dev) &&
		len(fn) == 1 && isHex(fn)
}

func isHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// parsePCIHeader parses a header such as
//
//	00:1f.2 SATA controller [0106]: Intel Corporation 82801 [8086:2922] (rev 02)
func parsePCIHeader(line string) PCIDevice {
	line = strings.TrimLeft(line, " \t")
	slot, rest, _ := strings.Cut(line, " ")

	classPart, afterClass := rest, ""
	if pos := strings.Index(rest, "]: "); pos >= 0 {
		classPart, afterClass = rest[:pos+1], rest[pos+3:]
	}

	dev := PCIDevice{
		Slot:          slot,
		KernelModules: make([]string, 0),
	}

	if name, code, ok := lastGroup(classPart, '[', ']'); ok {
		dev.ClassName, dev.ClassCode = name, code
	} else {
		dev.ClassName = strings.TrimSpace(classPart)
	}

	after := strings.TrimSpace(afterClass)
	if before, inner, ok := trailingGroup(after, '(', ')'); ok {
		if rev, isRev := strings.CutPrefix(inner, "rev "); isRev {
			rev = strings.TrimSpace(rev)
			dev.Revision = &rev
			after = before
		}
	}

	dev.DeviceDescription = after
	if desc, ids, ok := lastGroup(after, '[', ']'); ok {
		dev.DeviceDescription = desc
		if vendor, device, ok := splitIDPair(ids); ok {
			dev.VendorID, dev.DeviceID = vendor, device
		}
	}
	return dev
}

// parseNamedIDs splits "<name> [<vendor>:<device>]". The vendor and device
// are nil when the bracket is missing or has no colon.
func parseNamedIDs(value string) (name string, vendor, device *string) {
	name = strings.TrimSpace(value)
	before, ids, ok := lastGroup(value, '[', ']')
	if !ok {
		return name, nil, nil
	}
	name = strings.TrimSpace(before)
	if v, d, ok := splitIDPair(ids); ok {
		vendor, device = &v, &d
	}
	return name, vendor, device
}

// splitList splits s on sep, trims each item and drops empty ones
func splitList(s, sep string) []string {
	items := make([]string, 0)
	for _, item := range strings.Split(s, sep) {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
