package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/sigreer/hostprobe/internal/collector"
	"github.com/sigreer/hostprobe/internal/db"
)

// WriteJSON writes v as a single JSON document followed by a newline.
// Pretty output indents nested values by indent spaces per level.
func WriteJSON(w io.Writer, v any, pretty bool, indent int) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	if !pretty {
		_, err := w.Write(buf.Bytes())
		return err
	}

	// json.Indent keeps line breaks even with a zero-width indent
	if indent < 0 {
		indent = 0
	}
	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", strings.Repeat(" ", indent)); err != nil {
		return err
	}
	_, err := w.Write(out.Bytes())
	return err
}

// PrintSummary outputs a human-readable overview of an inventory document
func PrintSummary(w io.Writer, data *collector.SystemData) {
	fmt.Fprintln(w, "SYSTEM")
	fmt.Fprintln(w, strings.Repeat("-", 60))

	kernel := data.Uname.KernelRelease
	if kernel != "" && data.Uname.Machine != "" {
		kernel += " (" + data.Uname.Machine + ")"
	}
	printField(w, "Kernel", kernel)
	printField(w, "User", userLine(data.User))
	printField(w, "Product", joinNonEmpty(data.DMI.SysVendor, data.DMI.ProductName, data.DMI.ProductVersion))
	printField(w, "BIOS", joinNonEmpty(data.DMI.BIOSVendor, data.DMI.BIOSVersion, data.DMI.BIOSDate))
	printField(w, "CPU", cpuLine(data.CPU))
	printField(w, "Memory", memoryLine(data.Proc.Meminfo.MemTotal, data.Proc.Meminfo.MemAvailable, "available"))
	printField(w, "Swap", memoryLine(data.Proc.Meminfo.SwapTotal, data.Proc.Meminfo.SwapFree, "free"))
	printPtrField(w, "Session", data.XDG.SessionType)
	printPtrField(w, "Display", data.X11.Xdpyinfo.Dimensions)

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%-16s %-6s %-8s %-10s %s\n", "BLOCK DEVICE", "TYPE", "SIZE", "FSTYPE", "MOUNTPOINTS")
	fmt.Fprintln(w, strings.Repeat("-", 60))
	for _, b := range data.Lsblk {
		fmt.Fprintf(w, "%-16s %-6s %-8s %-10s %s\n", b.Name, b.DevType, dash(b.Size), dash(b.FSType), b.MountPoints)
	}

	if len(data.Proc.Partitions) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%-16s %-8s %s\n", "PARTITION", "MAJ:MIN", "SIZE")
		fmt.Fprintln(w, strings.Repeat("-", 60))
		for _, p := range data.Proc.Partitions {
			size := "-"
			if blocks, err := strconv.ParseUint(p.Blocks, 10, 64); err == nil {
				size = humanize.IBytes(blocks * 1024)
			}
			fmt.Fprintf(w, "%-16s %-8s %s\n", p.Name, p.Major+":"+p.Minor, size)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%-8s %-28s %s\n", "SLOT", "CLASS", "DRIVER")
	fmt.Fprintln(w, strings.Repeat("-", 60))
	for _, d := range data.Lspci {
		driver := "-"
		if d.KernelDriverInUse != nil {
			driver = *d.KernelDriverInUse
		}
		fmt.Fprintf(w, "%-8s %-28s %s\n", d.Slot, d.ClassName, driver)
	}

	fmt.Fprintln(w)
	printField(w, "Kernel modules", humanize.Comma(int64(len(data.Lsmod))))
	printField(w, "Input devices", countOrAbsent(data.X11.Xinput.Devices == nil, len(data.X11.Xinput.Devices)))
	printField(w, "Monitors", countOrAbsent(data.X11.Xrandr.Monitors == nil, len(data.X11.Xrandr.Monitors)))
	printField(w, "Packages", humanize.Comma(int64(len(data.Pacman.Explicit))))
}

// PrintSnapshots outputs the snapshot listing as a table
func PrintSnapshots(w io.Writer, snapshots []*db.Snapshot) {
	if len(snapshots) == 0 {
		fmt.Fprintln(w, "No snapshots recorded")
		return
	}

	fmt.Fprintf(w, "%-36s  %-16s %-22s %5s %5s %7s  %s\n", "ID", "HOST", "KERNEL", "PCI", "BLOCK", "MODULES", "TAKEN")
	fmt.Fprintln(w, strings.Repeat("-", 112))
	for _, s := range snapshots {
		fmt.Fprintf(w, "%-36s  %-16s %-22s %5d %5d %7d  %s\n",
			s.ID, s.Hostname, dash(s.KernelRelease), s.PCICount, s.BlockCount, s.ModuleCount, humanize.Time(s.TakenAt))
	}
}

// printField prints a field if value is non-empty
func printField(w io.Writer, label, value string) {
	if value != "" {
		fmt.Fprintf(w, "%-20s %s\n", label, value)
	}
}

// printPtrField prints a pointer field if non-nil
func printPtrField(w io.Writer, label string, value *string) {
	if value != nil && *value != "" {
		fmt.Fprintf(w, "%-20s %s\n", label, *value)
	}
}

func userLine(u collector.UserPasswdInfo) string {
	if u.Username == "" {
		return ""
	}
	line := u.Username
	if u.UID != "" {
		line += " (uid " + u.UID + ")"
	}
	if u.LoginShell != "" {
		line += " " + u.LoginShell
	}
	return line
}

func cpuLine(c collector.CPUInfo) string {
	if c.ModelName == "" {
		return ""
	}
	if c.CPUs == "" {
		return c.ModelName
	}
	return fmt.Sprintf("%s (%s CPUs)", c.ModelName, c.CPUs)
}

// memoryLine renders two /proc/meminfo values ("16318536 kB") as binary sizes
func memoryLine(total, other, label string) string {
	t, ok := kibibytes(total)
	if !ok {
		return ""
	}
	line := humanize.IBytes(t) + " total"
	if o, ok := kibibytes(other); ok {
		line += ", " + humanize.IBytes(o) + " " + label
	}
	return line
}

func kibibytes(value string) (uint64, bool) {
	fields := strings.Fields(value)
	if len(fields) == 0 {
		return 0, false
	}
	n, err := strconv.ParseUint(fields[0], 10, 64)
	if err != nil {
		return 0, false
	}
	if len(fields) > 1 && strings.EqualFold(fields[1], "kB") {
		n *= 1024
	}
	return n, true
}

func joinNonEmpty(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}

func countOrAbsent(absent bool, n int) string {
	if absent {
		return "unavailable"
	}
	return strconv.Itoa(n)
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
