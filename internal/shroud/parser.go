package shroud

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Parse decodes the shroud zone configuration value.
//
// Entries are separated by newlines or semicolons:
//
//	<cell> [<x> <y> <z>] <qx> <qy> <qz> <qw>|<radius>|<maxDistance>
//
// Parse never fails. Malformed entries are left out of the ZoneSet and
// reported as diagnostics; the remaining entries keep their input order.
func Parse(raw string) (ZoneSet, []Diagnostic) {
	entries := splitEntries(raw)
	if len(entries) == 0 {
		return ZoneSet{}, nil
	}

	zones := make([]Zone, 0, len(entries))
	var diags []Diagnostic

	for i, entry := range entries {
		z, err := decodeEntry(entry)
		if err != nil {
			diags = append(diags, Diagnostic{Index: i, Entry: entry, Err: err})
			continue
		}
		zones = append(zones, z)
	}

	return newZoneSet(zones), diags
}

// splitEntries режет вход по '\n' и ';', пустые куски отбрасываются.
func splitEntries(raw string) []string {
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '\n' || r == ';'
	})

	entries := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			entries = append(entries, p)
		}
	}
	return entries
}

// decodeEntry decodes "<position>|<radius>|<maxDistance>".
// Segments past the third are ignored.
func decodeEntry(line string) (Zone, error) {
	var segs []string
	for _, s := range strings.Split(line, "|") {
		if s = strings.TrimSpace(s); s != "" {
			segs = append(segs, s)
		}
	}
	if len(segs) < 3 {
		return Zone{}, fmt.Errorf("%w: want 3, got %d", ErrMissingSegments, len(segs))
	}

	pos, err := decodePosition(segs[0])
	if err != nil {
		return Zone{}, err
	}

	radius, err := parseFloat(segs[1])
	if err != nil || radius <= 0 {
		return Zone{}, fmt.Errorf("%w: %q", ErrInvalidRadius, segs[1])
	}

	maxDist, err := parseFloat(segs[2])
	if err != nil || maxDist <= 0 {
		return Zone{}, fmt.Errorf("%w: %q", ErrInvalidMaxDistance, segs[2])
	}

	return NewZone(pos, radius, maxDist)
}

// decodePosition decodes "<cell> [<x> <y> <z>] <qx> <qy> <qz> <qw>".
// Tokens after qw are ignored.
func decodePosition(segment string) (Position, error) {
	s := strings.TrimSpace(segment)
	if s == "" {
		return Position{}, ErrEmptyPosition
	}

	sp := strings.IndexByte(s, ' ')
	if sp <= 0 {
		return Position{}, fmt.Errorf("%w: %q", ErrMissingRegionToken, s)
	}

	token := s[:sp]
	cellID, err := parseCellID(token)
	if err != nil {
		return Position{}, fmt.Errorf("%w: %q", ErrInvalidRegionToken, token)
	}

	rest := s[sp:]
	open := strings.IndexByte(rest, '[')
	closing := strings.IndexByte(rest, ']')
	if open < 0 || closing < 0 || closing < open {
		return Position{}, fmt.Errorf("%w: %q", ErrMissingBrackets, s)
	}

	coords, err := parseFloats(rest[open+1:closing], 3, true)
	if err != nil {
		return Position{}, fmt.Errorf("%w: %v", ErrInvalidCoordinates, err)
	}

	orient, err := parseFloats(rest[closing+1:], 4, false)
	if err != nil {
		return Position{}, fmt.Errorf("%w: %v", ErrInvalidOrientation, err)
	}

	return Position{
		CellID:      cellID,
		Coords:      Vector3{X: coords[0], Y: coords[1], Z: coords[2]},
		Orientation: Quaternion{X: orient[0], Y: orient[1], Z: orient[2], W: orient[3]},
	}, nil
}

// parseFloats разбирает первые n токенов строки. exact требует ровно n токенов.
func parseFloats(s string, n int, exact bool) ([]float64, error) {
	fields := strings.Fields(s)
	if len(fields) < n || (exact && len(fields) != n) {
		return nil, fmt.Errorf("want %d values, got %d", n, len(fields))
	}

	out := make([]float64, n)
	for i := range n {
		v, err := parseFloat(fields[i])
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

var errNotFinite = errors.New("not a finite decimal number")

// parseFloat accepts plain decimal literals only: optional sign, digits,
// optional fraction and exponent. NaN, infinities, hex floats, digit
// separators and out-of-range values are rejected.
func parseFloat(tok string) (float64, error) {
	if tok == "" {
		return 0, fmt.Errorf("%w: empty", errNotFinite)
	}
	for i := 0; i < len(tok); i++ {
		c := tok[i]
		if (c < '0' || c > '9') && c != '.' && c != '-' && c != '+' && c != 'e' && c != 'E' {
			return 0, fmt.Errorf("%w: %q", errNotFinite, tok)
		}
	}

	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", errNotFinite, tok)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q", errNotFinite, tok)
	}
	return v, nil
}

// parseCellID parses a 0x-prefixed hex or a bare decimal uint32.
func parseCellID(tok string) (uint32, error) {
	base := 10
	digits := tok
	if len(tok) >= 2 && tok[0] == '0' && (tok[1] == 'x' || tok[1] == 'X') {
		base = 16
		digits = tok[2:]
	}

	// ParseUint с явной базой не принимает знак, префикс и '_'.
	v, err := strconv.ParseUint(digits, base, 32)
	if err != nil {
		return 0, fmt.Errorf("parse cell id %q: %w", tok, err)
	}
	return uint32(v), nil
}
