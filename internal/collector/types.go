package collector

// SystemData is the full inventory document for one run. Every section is
// always present; probes that could not run leave their leaves empty or null.
type SystemData struct {
	Uname      UnameInfo      `json:"uname"`
	User       UserPasswdInfo `json:"user"`
	Env        EnvInfo        `json:"env"`
	DMI        DMIInfo        `json:"dmi"`
	XDG        XDGInfo        `json:"xdg"`
	CPU        CPUInfo        `json:"cpu"`
	Proc       ProcInfo       `json:"proc"`
	Mkinitcpio MkinitcpioInfo `json:"mkinitcpio"`
	X11        X11Info        `json:"x11"`
	Pacman     PacmanInfo     `json:"pacman"`
	Lsblk      []BlockDevice  `json:"lsblk"`
	Lspci      []PCIDevice    `json:"lspci"`
	Lsmod      []KernelModule `json:"lsmod"`
}

// PCIDevice is one device record from lspci -nnk.
// Optional fields are nil unless the matching attribute line was seen.
type PCIDevice struct {
	Slot              string   `json:"slot"`
	ClassName         string   `json:"class_name"`
	ClassCode         string   `json:"class_code"`
	DeviceDescription string   `json:"device_description"`
	VendorID          string   `json:"vendor_id"`
	DeviceID          string   `json:"device_id"`
	Revision          *string  `json:"revision,omitempty"`
	SubsystemName     *string  `json:"subsystem_name,omitempty"`
	SubsystemVendorID *string  `json:"subsystem_vendor_id,omitempty"`
	SubsystemDeviceID *string  `json:"subsystem_device_id,omitempty"`
	KernelDriverInUse *string  `json:"kernel_driver_in_use,omitempty"`
	KernelModules     []string `json:"kernel_modules"`
}

// BlockDevice is one row of lsblk --json --list output, every column
// flattened to a string
type BlockDevice struct {
	Name         string `json:"name"`
	Path         string `json:"path"`
	MajMin       string `json:"maj_min"`
	RM           string `json:"rm"`
	Size         string `json:"size"`
	RO           string `json:"ro"`
	DevType      string `json:"dev_type"`
	FSRoots      string `json:"fsroots"`
	FSType       string `json:"fstype"`
	FSVer        string `json:"fsver"`
	Label        string `json:"label"`
	UUID         string `json:"uuid"`
	FSUsed       string `json:"fsused"`
	FSSize       string `json:"fssize"`
	PKName       string `json:"pkname"`
	PartUUID     string `json:"partuuid"`
	PartType     string `json:"parttype"`
	PartTypeName string `json:"parttypename"`
	PTType       string `json:"pttype"`
	PTUUID       string `json:"ptuuid"`
	MountPoints  string `json:"mountpoints"`
}

// InputDevice is one device line of xinput list.
// Role and DeviceType are the first and second tokens of the bracketed
// annotation; AttachedTo is its trailing parenthesized group.
type InputDevice struct {
	Name       string  `json:"name"`
	ID         string  `json:"id"`
	Role       *string `json:"role"`
	DeviceType *string `json:"device_type"`
	AttachedTo *string `json:"attached_to"`
}

// KernelModule is one line of lsmod
type KernelModule struct {
	Module      string   `json:"module"`
	Size        string   `json:"size"`
	UsedByCount string   `json:"used_by_count"`
	UsedBy      []string `json:"used_by"`
}

type UnameInfo struct {
	KernelRelease string `json:"kernel_release"`
	Machine       string `json:"machine"`
}

// UserPasswdInfo is the passwd entry of the invoking user
type UserPasswdInfo struct {
	Username      string `json:"username"`
	UID           string `json:"uid"`
	GID           string `json:"gid"`
	HomeDirectory string `json:"home_directory"`
	LoginShell    string `json:"login_shell"`
}

// EnvInfo holds selected environment variables; unset variables are nil
type EnvInfo struct {
	User    *string `json:"user"`
	Logname *string `json:"logname"`
	Home    *string `json:"home"`
	Shell   *string `json:"shell"`
	Path    *string `json:"path"`
	Lang    *string `json:"lang"`
	LCAll   *string `json:"lc_all"`
	LCCtype *string `json:"lc_ctype"`
	Term    *string `json:"term"`
}

type XDGInfo struct {
	CacheHome    *string `json:"xdg_cache_home"`
	ConfigHome   *string `json:"xdg_config_home"`
	DataHome     *string `json:"xdg_data_home"`
	RuntimeDir   *string `json:"xdg_runtime_dir"`
	Seat         *string `json:"xdg_seat"`
	SessionClass *string `json:"xdg_session_class"`
	SessionID    *string `json:"xdg_session_id"`
	SessionType  *string `json:"xdg_session_type"`
	StateHome    *string `json:"xdg_state_home"`
	VTNR         *string `json:"xdg_vtnr"`
}

// DMIInfo mirrors /sys/class/dmi/id
type DMIInfo struct {
	BIOSDate       string `json:"bios_date"`
	BIOSVendor     string `json:"bios_vendor"`
	BIOSVersion    string `json:"bios_version"`
	BoardName      string `json:"board_name"`
	BoardVendor    string `json:"board_vendor"`
	BoardVersion   string `json:"board_version"`
	ProductName    string `json:"product_name"`
	ProductSKU     string `json:"product_sku"`
	ProductVersion string `json:"product_version"`
	SysVendor      string `json:"sys_vendor"`
}

// CPUInfo is a projection of lscpu
type CPUInfo struct {
	Architecture   string `json:"architecture"`
	VendorID       string `json:"vendor_id"`
	ModelName      string `json:"model_name"`
	CPUs           string `json:"cpus"`
	CoresPerSocket string `json:"cores_per_socket"`
	ThreadsPerCore string `json:"threads_per_core"`
	Sockets        string `json:"sockets"`
	CPUMaxMHz      string `json:"cpu_max_mhz"`
	CPUMinMHz      string `json:"cpu_min_mhz"`
	Virtualization string `json:"virtualization"`
	L1dCache       string `json:"l1d_cache"`
	L1iCache       string `json:"l1i_cache"`
	L2Cache        string `json:"l2_cache"`
	L3Cache        string `json:"l3_cache"`
}

type ProcInfo struct {
	Cmdline    string      `json:"cmdline"`
	Meminfo    ProcMemInfo `json:"meminfo"`
	Version    string      `json:"version"`
	Partitions []Partition `json:"partitions"`
}

// ProcMemInfo values keep their unit suffix as printed ("16318536 kB")
type ProcMemInfo struct {
	MemTotal     string `json:"mem_total"`
	MemFree      string `json:"mem_free"`
	MemAvailable string `json:"mem_available"`
	SwapTotal    string `json:"swap_total"`
	SwapFree     string `json:"swap_free"`
}

// Partition is one row of /proc/partitions; Blocks is in 1 KiB units
type Partition struct {
	Major  string `json:"major"`
	Minor  string `json:"minor"`
	Blocks string `json:"blocks"`
	Name   string `json:"name"`
}

type MkinitcpioInfo struct {
	Modules []string `json:"modules"`
	Hooks   []string `json:"hooks"`
}

type X11Info struct {
	Xinput   XinputInfo `json:"xinput"`
	Xrandr   XrandrInfo `json:"xrandr"`
	Xrdb     XrdbInfo   `json:"xrdb"`
	Xdpyinfo XdpyInfo   `json:"xdpyinfo"`
}

// XinputInfo.Devices is nil when xinput is unavailable
type XinputInfo struct {
	Devices []InputDevice `json:"devices"`
}

// XrandrInfo.Monitors is nil when xrandr is unavailable
type XrandrInfo struct {
	Monitors []Monitor `json:"monitors"`
}

// Monitor is one line of xrandr --listmonitors
type Monitor struct {
	Index    uint32 `json:"index"`
	Name     string `json:"name"`
	Geometry string `json:"geometry"`
}

type XrdbInfo struct {
	Resources []string `json:"resources"`
}

type XdpyInfo struct {
	Dimensions *string `json:"dimensions"`
	Resolution *string `json:"resolution"`
}

type PacmanInfo struct {
	Explicit []string `json:"explicit"`
}
