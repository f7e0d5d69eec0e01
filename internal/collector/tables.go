package collector

import "strings"

// colonTable maps each "label: value" line to its trimmed value. The first
// occurrence of a label wins. Lines without a colon are ignored.
type colonTable map[string]string

func parseColonTable(output string) colonTable {
	table := make(colonTable)
	for _, line := range strings.Split(output, "\n") {
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		if _, seen := table[key]; seen {
			continue
		}
		table[key] = strings.TrimSpace(value)
	}
	return table
}

// get returns the value for label or "" when absent
func (t colonTable) get(label string) string {
	return t[label]
}

// ParseLscpu projects the lscpu key-value listing
func ParseLscpu(output string) CPUInfo {
	t := parseColonTable(output)
	return CPUInfo{
		Architecture:   t.get("Architecture"),
		VendorID:       t.get("Vendor ID"),
		ModelName:      t.get("Model name"),
		CPUs:           t.get("CPU(s)"),
		CoresPerSocket: t.get("Core(s) per socket"),
		ThreadsPerCore: t.get("Thread(s) per core"),
		Sockets:        t.get("Socket(s)"),
		CPUMaxMHz:      t.get("CPU max MHz"),
		CPUMinMHz:      t.get("CPU min MHz"),
		Virtualization: t.get("Virtualization"),
		L1dCache:       t.get("L1d cache"),
		L1iCache:       t.get("L1i cache"),
		L2Cache:        t.get("L2 cache"),
		L3Cache:        t.get("L3 cache"),
	}
}

// ParseMeminfo projects /proc/meminfo
func ParseMeminfo(output string) ProcMemInfo {
	t := parseColonTable(output)
	return ProcMemInfo{
		MemTotal:     t.get("MemTotal"),
		MemFree:      t.get("MemFree"),
		MemAvailable: t.get("MemAvailable"),
		SwapTotal:    t.get("SwapTotal"),
		SwapFree:     t.get("SwapFree"),
	}
}

// ParsePartitions parses /proc/partitions:
//
//	major minor  #blocks  name
//
//	 259        0  500107608 nvme0n1
func ParsePartitions(output string) []Partition {
	partitions := make([]Partition, 0)
	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 4 || fields[0] == "major" {
			continue
		}
		partitions = append(partitions, Partition{
			Major:  fields[0],
			Minor:  fields[1],
			Blocks: fields[2],
			Name:   fields[3],
		})
	}
	return partitions
}

// ParseLsmod parses lsmod output. The header line is skipped; used_by is the
// comma list in the fourth column.
func ParseLsmod(output string) []KernelModule {
	modules := make([]KernelModule, 0)
	lines := strings.Split(output, "\n")
	if len(lines) > 0 {
		lines = lines[1:]
	}
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}
		modules = append(modules, KernelModule{
			Module:      fields[0],
			Size:        fields[1],
			UsedByCount: fields[2],
			UsedBy:      splitList(strings.Join(fields[3:], " "), ","),
		})
	}
	return modules
}

// parseMkinitcpioList extracts the tokens of a MODULES=(...) or HOOKS=(...)
// line: everything between the first '(' and the last ')'
func parseMkinitcpioList(line string) []string {
	start := strings.IndexByte(line, '(')
	end := strings.LastIndexByte(line, ')')
	if start < 0 || end <= start+1 {
		return make([]string, 0)
	}
	return append(make([]string, 0), strings.Fields(line[start+1:end])...)
}

// parsePasswdLine splits a getent passwd entry
// name:password:uid:gid:gecos:home:shell
func parsePasswdLine(line string) UserPasswdInfo {
	parts := strings.Split(line, ":")
	field := func(i int) string {
		if i < len(parts) {
			return parts[i]
		}
		return ""
	}
	return UserPasswdInfo{
		Username:      field(0),
		UID:           field(2),
		GID:           field(3),
		HomeDirectory: field(5),
		LoginShell:    field(6),
	}
}

// nonEmptyLines returns the trimmed, non-blank lines of s
func nonEmptyLines(s string) []string {
	lines := make([]string, 0)
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
