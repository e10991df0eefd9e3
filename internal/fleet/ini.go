package fleet

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// The persisted format is a small INI dialect: '['section']' headers,
// 'key=value' pairs, ';' or '#' comments. Parse flattens it into a single
// map keyed by "section.key" (all lower case), which Load then reads through
// the typed helpers below. Serialization goes through iniWriter and always
// emits keys in the declared field order, never alphabetically, so diffs of
// the config file stay readable.

// Parse reads the INI text from r into a flat key map. Section names and
// keys are trimmed and lower-cased; values are trimmed but otherwise kept
// verbatim. Later occurrences of a key overwrite earlier ones. Lines that
// are not a section header and contain no '=' are skipped silently; this
// lenience is deliberate so a hand-edited file never blocks startup.
// Parse fails only if reading from r fails.
func Parse(r io.Reader) (map[string]string, error) {
	kv := make(map[string]string)
	section := ""

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()

		// Comment markers are honored anywhere in the line, not just at
		// the start.
		if i := strings.IndexByte(line, ';'); i >= 0 {
			line = line[:i]
		}
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if len(line) >= 3 && line[0] == '[' && line[len(line)-1] == ']' {
			section = strings.ToLower(strings.TrimSpace(line[1 : len(line)-1]))
			continue
		}

		eq := strings.IndexByte(line, '=')
		if eq < 0 {
			continue
		}

		key := strings.ToLower(strings.TrimSpace(line[:eq]))
		val := strings.TrimSpace(line[eq+1:])

		if section != "" {
			key = section + "." + key
		}
		kv[key] = val
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	return kv, nil
}

// hasKey reports whether the key is present, case-insensitively.
func hasKey(kv map[string]string, key string) bool {
	_, ok := kv[strings.ToLower(key)]
	return ok
}

// The read helpers assign *dst only when the key is present, so callers can
// pre-load dst with a default and layer stored values on top. Numeric
// helpers return a *ValueError when the stored text does not parse; a bad
// number in a config file is a fatal condition for the whole Load, not
// something to silently default away.

func readStr(kv map[string]string, key string, dst *string) {
	if v, ok := kv[strings.ToLower(key)]; ok {
		*dst = v
	}
}

func readInt(kv map[string]string, key string, dst *int) error {
	v, ok := kv[strings.ToLower(key)]
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return &ValueError{Key: key, Value: v, Err: err}
	}
	*dst = n
	return nil
}

func readUint64(kv map[string]string, key string, dst *uint64) error {
	v, ok := kv[strings.ToLower(key)]
	if !ok {
		return nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return &ValueError{Key: key, Value: v, Err: err}
	}
	if n < 0 {
		n = 0
	}
	*dst = uint64(n)
	return nil
}

func readFloat32(kv map[string]string, key string, dst *float32) error {
	v, ok := kv[strings.ToLower(key)]
	if !ok {
		return nil
	}
	f, err := strconv.ParseFloat(v, 32)
	if err != nil {
		return &ValueError{Key: key, Value: v, Err: err}
	}
	*dst = float32(f)
	return nil
}

func readFloat64(kv map[string]string, key string, dst *float64) error {
	v, ok := kv[strings.ToLower(key)]
	if !ok {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return &ValueError{Key: key, Value: v, Err: err}
	}
	*dst = f
	return nil
}

// readBool accepts 1/true/yes/on (any case) as true; every other present
// value, including the empty string, reads as false.
func readBool(kv map[string]string, key string, dst *bool) {
	v, ok := kv[strings.ToLower(key)]
	if !ok {
		return
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		*dst = true
	default:
		*dst = false
	}
}

// iniWriter serializes sections and key/value pairs in declaration order.
type iniWriter struct {
	w   *bufio.Writer
	err error
}

func newINIWriter(w io.Writer) *iniWriter {
	return &iniWriter{w: bufio.NewWriter(w)}
}

func (iw *iniWriter) printf(format string, args ...any) {
	if iw.err != nil {
		return
	}
	_, iw.err = fmt.Fprintf(iw.w, format, args...)
}

func (iw *iniWriter) section(name string) { iw.printf("[%s]\n", name) }
func (iw *iniWriter) blank()              { iw.printf("\n") }

func (iw *iniWriter) str(key, v string) { iw.printf("%s=%s\n", key, v) }

func (iw *iniWriter) num(key string, v int) { iw.printf("%s=%d\n", key, v) }

func (iw *iniWriter) u64(key string, v uint64) { iw.printf("%s=%d\n", key, v) }

func (iw *iniWriter) f32(key string, v float32) {
	iw.printf("%s=%s\n", key, strconv.FormatFloat(float64(v), 'g', -1, 32))
}

func (iw *iniWriter) f64(key string, v float64) {
	iw.printf("%s=%s\n", key, strconv.FormatFloat(v, 'g', -1, 64))
}

// booleans persist as 0/1
func (iw *iniWriter) boolean(key string, v bool) {
	if v {
		iw.printf("%s=1\n", key)
	} else {
		iw.printf("%s=0\n", key)
	}
}

func (iw *iniWriter) flush() error {
	if iw.err != nil {
		return iw.err
	}
	return iw.w.Flush()
}
