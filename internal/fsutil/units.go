package fsutil

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// SizeUnit is the number of bytes in one unit.
type SizeUnit uint64

// Supported size units. KB, MB, GB and TB are decimal; KiB, MiB, GiB and TiB are binary.
const (
	Bytes     SizeUnit = humanize.Byte
	Kilobytes SizeUnit = humanize.KByte
	Megabytes SizeUnit = humanize.MByte
	Gigabytes SizeUnit = humanize.GByte
	Terabytes SizeUnit = humanize.TByte
	Kibibytes SizeUnit = humanize.KiByte
	Mebibytes SizeUnit = humanize.MiByte
	Gibibytes SizeUnit = humanize.GiByte
	Tebibytes SizeUnit = humanize.TiByte
)

//nolint:gochecknoglobals // Immutable lookup table used as a constant.
var sizeUnitNames = map[string]SizeUnit{
	"b":     Bytes,
	"byte":  Bytes,
	"bytes": Bytes,
	"kb":    Kilobytes,
	"mb":    Megabytes,
	"gb":    Gigabytes,
	"tb":    Terabytes,
	"kib":   Kibibytes,
	"mib":   Mebibytes,
	"gib":   Gibibytes,
	"tib":   Tebibytes,
}

// ParseSizeUnit returns the unit for a case-insensitive name such as "MB" or "GiB".
func ParseSizeUnit(name string) (SizeUnit, error) {
	unit, ok := sizeUnitNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("%w: '%s'", ErrUnknownSizeUnit, name)
	}

	return unit, nil
}

// Convert expresses a byte count in the unit.
func (u SizeUnit) Convert(bytes int64) float64 {
	if u == 0 {
		u = Bytes
	}

	return float64(bytes) / float64(u)
}
