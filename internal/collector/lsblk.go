package collector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sigreer/hostprobe/internal/runner"
)

// lsblkColumns is the column list requested from lsblk; the JSON keys are
// the lowercased column names
const lsblkColumns = "NAME,PATH,MAJ:MIN,RM,SIZE,RO,TYPE,MOUNTPOINTS,FSROOTS,FSTYPE,FSVER,LABEL,UUID,FSUSED,FSSIZE,PKNAME,PARTUUID,PARTTYPE,PARTTYPENAME,PTTYPE,PTUUID"

// collectLsblk parses lsblk JSON output. Any failure yields an empty list.
func collectLsblk(ctx context.Context, r runner.Runner) []BlockDevice {
	out, ok := r.Optional(ctx, "lsblk", "--json", "--list", "-o", lsblkColumns)
	if !ok {
		return make([]BlockDevice, 0)
	}
	return ParseLsblk(out)
}

// ParseLsblk decodes lsblk --json output and flattens each device.
// Unparseable JSON produces an empty list.
func ParseLsblk(output string) []BlockDevice {
	doc, err := decodeJSON(output)
	if err != nil {
		return make([]BlockDevice, 0)
	}
	return BlockDevicesFromJSON(doc)
}

// decodeJSON decodes exactly one JSON value keeping numbers in their literal form
func decodeJSON(text string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode lsblk output: %w", err)
	}
	if err := dec.Decode(new(any)); err != io.EOF {
		return nil, errors.New("failed to decode lsblk output: trailing data after document")
	}
	return doc, nil
}

// BlockDevicesFromJSON walks an already decoded lsblk document. A document
// without a "blockdevices" array produces an empty list; array elements
// that are not objects are skipped.
func BlockDevicesFromJSON(doc any) []BlockDevice {
	devices := make([]BlockDevice, 0)

	root, ok := doc.(map[string]any)
	if !ok {
		return devices
	}
	list, ok := root["blockdevices"].([]any)
	if !ok {
		return devices
	}

	for _, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		field := func(key string) string {
			return DisplayString(obj[key])
		}
		devices = append(devices, BlockDevice{
			Name:         field("name"),
			Path:         field("path"),
			MajMin:       field("maj:min"),
			RM:           field("rm"),
			Size:         field("size"),
			RO:           field("ro"),
			DevType:      field("type"),
			FSRoots:      field("fsroots"),
			FSType:       field("fstype"),
			FSVer:        field("fsver"),
			Label:        field("label"),
			UUID:         field("uuid"),
			FSUsed:       field("fsused"),
			FSSize:       field("fssize"),
			PKName:       field("pkname"),
			PartUUID:     field("partuuid"),
			PartType:     field("parttype"),
			PartTypeName: field("parttypename"),
			PTType:       field("pttype"),
			PTUUID:       field("ptuuid"),
			MountPoints:  field("mountpoints"),
		})
	}
	return devices
}

// DisplayString coerces one decoded JSON value to the single string shown
// for a column. lsblk reports the same column as a string, a number or a
// boolean depending on its version, so everything is flattened:
//
//	string        itself
//	bool          "true" / "false"
//	number        its literal text
//	array         string elements joined by a space, others dropped
//	null, object  ""
func DisplayString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case json.Number:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case []any:
		parts := make([]string, 0, len(val))
		for _, elem := range val {
			if s, ok := elem.(string); ok {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, " ")
	default:
		return ""
	}
}
