// Package timeparse implements the time codec: conversion of the
// time expressions callers may pass (absolute milliseconds, wall-clock
// values, relative "N<unit>-ago" expressions, the literal "now") into
// epoch milliseconds, plus the granularity-string parser the datapoints
// read path uses to turn a caller's granularity into milliseconds.
package timeparse

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/industrialdata/platform-client-go/platformerr"
)

// epoch1970GuardMs is one month past the epoch. Insert timestamps
// below this are almost certainly a seconds-vs-milliseconds mistake.
const epoch1970GuardMs = int64(31 * 24 * time.Hour / time.Millisecond)

var relativePattern = regexp.MustCompile(`^(\d+)?([smhdw])-ago$`)

var unitMs = map[string]int64{
	"s": int64(time.Second / time.Millisecond),
	"m": int64(time.Minute / time.Millisecond),
	"h": int64(time.Hour / time.Millisecond),
	"d": int64(24 * time.Hour / time.Millisecond),
	"w": int64(7 * 24 * time.Hour / time.Millisecond),
}

// NowMillis returns the current time as epoch milliseconds. Callers
// take one reading per request and resolve every "now"/"N<unit>-ago"
// expression in that request against it, so window boundaries computed
// from relative times stay consistent within one call.
func NowMillis() int64 {
	return time.Now().UnixMilli()
}

// ToMillis converts one of the accepted time expressions into epoch
// milliseconds. nowMs is the single clock reading for this call
// (see NowMillis).
//
// Accepted inputs:
//   - int64: already epoch milliseconds, returned unchanged.
//   - time.Time: a wall-clock value.
//   - string "now": resolves to nowMs.
//   - string "N<unit>-ago" (unit one of s,m,h,d,w; N defaults to 1):
//     resolves to nowMs - N*unit_ms.
func ToMillis(v interface{}, nowMs int64) (int64, error) {
	switch t := v.(type) {
	case int64:
		return t, nil
	case int:
		return int64(t), nil
	case time.Time:
		return t.UnixMilli(), nil
	case string:
		return parseStringTime(t, nowMs)
	default:
		return 0, platformerr.InvalidTimestamp("unsupported time value type %T", v)
	}
}

func parseStringTime(s string, nowMs int64) (int64, error) {
	if s == "now" {
		return nowMs, nil
	}
	m := relativePattern.FindStringSubmatch(s)
	if m == nil {
		return 0, platformerr.InvalidTimestamp("could not parse relative time expression %q", s)
	}
	magnitude := int64(1)
	if m[1] != "" {
		n, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return 0, platformerr.InvalidTimestamp("invalid magnitude in %q: %v", s, err)
		}
		magnitude = n
	}
	ms, ok := unitMs[m[2]]
	if !ok {
		return 0, platformerr.InvalidTimestamp("unknown time unit in %q", s)
	}
	return nowMs - magnitude*ms, nil
}

// ValidateInsertTimestamp rejects timestamps in the first month of
// 1970 as a guard against a caller accidentally passing seconds
// instead of milliseconds.
func ValidateInsertTimestamp(ms int64) error {
	if ms >= 0 && ms < epoch1970GuardMs {
		return platformerr.InvalidTimestamp(
			"timestamp %d ms falls within the first month of the Unix epoch; "+
				"this usually means a seconds-denominated timestamp was passed where milliseconds were expected", ms)
	}
	return nil
}

var granularityPattern = regexp.MustCompile(`^(\d+)?([a-zA-Z]+)$`)

var granularityUnitMs = map[string]int64{
	"s": unitMs["s"], "sec": unitMs["s"], "second": unitMs["s"], "seconds": unitMs["s"],
	"m": unitMs["m"], "min": unitMs["m"], "minute": unitMs["m"], "minutes": unitMs["m"],
	"h": unitMs["h"], "hour": unitMs["h"], "hours": unitMs["h"],
	"d": unitMs["d"], "day": unitMs["d"], "days": unitMs["d"],
}

// GranularityToMillis parses a granularity string of the form
// "<magnitude><unit>" (magnitude defaults to 1) into milliseconds.
// Units s/m/h/d and their spelled-out forms are accepted; anything
// else fails with InvalidGranularity.
func GranularityToMillis(g string) (int64, error) {
	g = strings.TrimSpace(g)
	m := granularityPattern.FindStringSubmatch(g)
	if m == nil {
		return 0, platformerr.InvalidGranularity("could not parse granularity %q", g)
	}
	magnitude := int64(1)
	if m[1] != "" {
		n, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return 0, platformerr.InvalidGranularity("invalid magnitude in granularity %q: %v", g, err)
		}
		magnitude = n
	}
	unit, ok := granularityUnitMs[strings.ToLower(m[2])]
	if !ok {
		return 0, platformerr.InvalidGranularity("unknown granularity unit in %q", g)
	}
	return magnitude * unit, nil
}
