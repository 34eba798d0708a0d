package protocol

import (
	"strconv"
	"strings"
)

// StatField identifies a known server statistic.
type StatField int

const (
	// StatOther is the fallback for field names this client does not know.
	StatOther StatField = iota
	StatPid
	StatUptime
	StatTime
	StatVersion
	StatPointerSize
	StatRusageUser
	StatRusageSystem
	StatCurrConnections
	StatTotalConnections
	StatConnectionStructures
	StatBytes
	StatBytesRead
	StatBytesWritten
	StatCurrItems
	StatTotalItems
	StatCmdGet
	StatCmdSet
	StatGetHits
	StatGetMisses
	StatIncrHits
	StatIncrMisses
	StatDecrHits
	StatDecrMisses
)

// counterFields maps stat names with a plain unsigned value to their field.
var counterFields = map[string]StatField{
	"pid":                   StatPid,
	"uptime":                StatUptime,
	"time":                  StatTime,
	"pointer_size":          StatPointerSize,
	"curr_connections":      StatCurrConnections,
	"total_connections":     StatTotalConnections,
	"connection_structures": StatConnectionStructures,
	"bytes":                 StatBytes,
	"bytes_read":            StatBytesRead,
	"bytes_written":         StatBytesWritten,
	"curr_items":            StatCurrItems,
	"total_items":           StatTotalItems,
	"cmd_get":               StatCmdGet,
	"cmd_set":               StatCmdSet,
	"get_hits":              StatGetHits,
	"get_misses":            StatGetMisses,
	"incr_hits":             StatIncrHits,
	"incr_misses":           StatIncrMisses,
	"decr_hits":             StatDecrHits,
	"decr_misses":           StatDecrMisses,
}

// String returns the wire name of the field, "other" for the fallback.
func (f StatField) String() string {
	if f == StatVersion {
		return "version"
	}
	if f == StatRusageUser {
		return "rusage_user"
	}
	if f == StatRusageSystem {
		return "rusage_system"
	}
	for name, field := range counterFields {
		if field == f {
			return name
		}
	}
	return "other"
}

// Stat is one field from a stats reply. Field selects which payload fields
// are meaningful: Count for plain counters, Text for version, Seconds and
// Microseconds for the rusage pair, Name and Text for Other.
type Stat struct {
	Field        StatField
	Count        uint64
	Text         string
	Name         string
	Seconds      uint64
	Microseconds uint64
}

// ParseStat decodes one "STAT <name> <value>" line into a typed Stat.
func ParseStat(line string) (Stat, error) {
	fields := strings.Fields(line)
	if len(fields) != 3 || fields[0] != replyStat {
		return Stat{}, malformedf("stat line %q: want STAT <name> <value>", line)
	}
	name, value := fields[1], fields[2]

	switch name {
	case "version":
		return Stat{Field: StatVersion, Text: value}, nil
	case "rusage_user":
		return rusageStat(StatRusageUser, name, value)
	case "rusage_system":
		return rusageStat(StatRusageSystem, name, value)
	}

	if field, ok := counterFields[name]; ok {
		count, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return Stat{}, malformedf("stat %s value %q is not a number", name, value)
		}
		return Stat{Field: field, Count: count}, nil
	}

	return Stat{Field: StatOther, Name: name, Text: value}, nil
}

// rusageStat splits a "<seconds>.<microseconds>" value into its pair.
func rusageStat(field StatField, name, value string) (Stat, error) {
	secPart, usecPart, _ := strings.Cut(value, ".")

	seconds, err := strconv.ParseUint(secPart, 10, 64)
	if err != nil {
		return Stat{}, malformedf("stat %s seconds %q is not a number", name, secPart)
	}

	var microseconds uint64
	if usecPart != "" {
		microseconds, err = strconv.ParseUint(usecPart, 10, 64)
		if err != nil {
			return Stat{}, malformedf("stat %s microseconds %q is not a number", name, usecPart)
		}
	}

	return Stat{Field: field, Seconds: seconds, Microseconds: microseconds}, nil
}
