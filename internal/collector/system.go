package collector

import (
	"context"

	"github.com/sigreer/hostprobe/internal/runner"
)

const (
	dmiDir           = "/sys/class/dmi/id"
	mkinitcpioConfig = "/etc/mkinitcpio.conf"
)

func collectUname(ctx context.Context, r runner.Runner) UnameInfo {
	return UnameInfo{
		KernelRelease: r.Text(ctx, "uname", "-r"),
		Machine:       r.Text(ctx, "uname", "-m"),
	}
}

// collectUser resolves the current user from $USER (falling back to id -un)
// and looks up its passwd entry
func collectUser(ctx context.Context, r runner.Runner) UserPasswdInfo {
	user, ok := r.LookupEnv("USER")
	if !ok {
		user = r.Text(ctx, "id", "-un")
	}
	return parsePasswdLine(r.Text(ctx, "getent", "passwd", user))
}

func collectEnv(r runner.Runner) EnvInfo {
	return EnvInfo{
		User:    lookupEnv(r, "USER"),
		Logname: lookupEnv(r, "LOGNAME"),
		Home:    lookupEnv(r, "HOME"),
		Shell:   lookupEnv(r, "SHELL"),
		Path:    lookupEnv(r, "PATH"),
		Lang:    lookupEnv(r, "LANG"),
		LCAll:   lookupEnv(r, "LC_ALL"),
		LCCtype: lookupEnv(r, "LC_CTYPE"),
		Term:    lookupEnv(r, "TERM"),
	}
}

func collectXDG(r runner.Runner) XDGInfo {
	return XDGInfo{
		CacheHome:    lookupEnv(r, "XDG_CACHE_HOME"),
		ConfigHome:   lookupEnv(r, "XDG_CONFIG_HOME"),
		DataHome:     lookupEnv(r, "XDG_DATA_HOME"),
		RuntimeDir:   lookupEnv(r, "XDG_RUNTIME_DIR"),
		Seat:         lookupEnv(r, "XDG_SEAT"),
		SessionClass: lookupEnv(r, "XDG_SESSION_CLASS"),
		SessionID:    lookupEnv(r, "XDG_SESSION_ID"),
		SessionType:  lookupEnv(r, "XDG_SESSION_TYPE"),
		StateHome:    lookupEnv(r, "XDG_STATE_HOME"),
		VTNR:         lookupEnv(r, "XDG_VTNR"),
	}
}

func lookupEnv(r runner.Runner, key string) *string {
	value, ok := r.LookupEnv(key)
	if !ok {
		return nil
	}
	return &value
}

func collectDMI(r runner.Runner) DMIInfo {
	read := func(name string) string {
		return r.ReadFile(dmiDir + "/" + name)
	}
	return DMIInfo{
		BIOSDate:       read("bios_date"),
		BIOSVendor:     read("bios_vendor"),
		BIOSVersion:    read("bios_version"),
		BoardName:      read("board_name"),
		BoardVendor:    read("board_vendor"),
		BoardVersion:   read("board_version"),
		ProductName:    read("product_name"),
		ProductSKU:     read("product_sku"),
		ProductVersion: read("product_version"),
		SysVendor:      read("sys_vendor"),
	}
}

func collectCPU(ctx context.Context, r runner.Runner) CPUInfo {
	return ParseLscpu(r.Text(ctx, "lscpu"))
}

func collectProc(r runner.Runner) ProcInfo {
	return ProcInfo{
		Cmdline:    r.ReadFile("/proc/cmdline"),
		Meminfo:    ParseMeminfo(r.ReadFile("/proc/meminfo")),
		Version:    r.ReadFile("/proc/version"),
		Partitions: ParsePartitions(r.ReadFile("/proc/partitions")),
	}
}

func collectMkinitcpio(ctx context.Context, r runner.Runner) MkinitcpioInfo {
	modules, _ := r.Optional(ctx, "grep", "-E", "^MODULES=", mkinitcpioConfig)
	hooks, _ := r.Optional(ctx, "grep", "-E", "^HOOKS=", mkinitcpioConfig)
	return MkinitcpioInfo{
		Modules: parseMkinitcpioList(modules),
		Hooks:   parseMkinitcpioList(hooks),
	}
}

func collectPacman(ctx context.Context, r runner.Runner) PacmanInfo {
	out, _ := r.Optional(ctx, "pacman", "-Qe")
	return PacmanInfo{Explicit: nonEmptyLines(out)}
}

func collectLsmod(ctx context.Context, r runner.Runner) []KernelModule {
	return ParseLsmod(r.Text(ctx, "lsmod"))
}
