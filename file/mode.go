package file

import (
	"fmt"
	"os"
	"strings"

	"github.com/jmgilman/go/file/errors"
)

// Mode describes access rights and creation behavior at open time.
// Each Mode maps to exactly one combination of os.O_* flags.
type Mode int

const (
	// ModeRead opens an existing file read-only.
	ModeRead Mode = iota
	// ModeCreateWrite creates a new file write-only and fails if it exists.
	ModeCreateWrite
	// ModeTruncateWrite creates or truncates a file, write-only.
	ModeTruncateWrite
	// ModeAppendWrite creates or appends to a file, write-only.
	ModeAppendWrite
	// ModeReadWrite opens an existing file read-write.
	ModeReadWrite
	// ModeCreateReadWrite creates a new file read-write and fails if it exists.
	ModeCreateReadWrite
	// ModeTruncateReadWrite creates or truncates a file, read-write.
	ModeTruncateReadWrite
	// ModeAppendReadWrite creates or appends to a file, read-write.
	ModeAppendReadWrite
)

var modeFlags = [...]int{
	ModeRead:              os.O_RDONLY,
	ModeCreateWrite:       os.O_WRONLY | os.O_CREATE | os.O_EXCL,
	ModeTruncateWrite:     os.O_WRONLY | os.O_CREATE | os.O_TRUNC,
	ModeAppendWrite:       os.O_WRONLY | os.O_CREATE | os.O_APPEND,
	ModeReadWrite:         os.O_RDWR,
	ModeCreateReadWrite:   os.O_RDWR | os.O_CREATE | os.O_EXCL,
	ModeTruncateReadWrite: os.O_RDWR | os.O_CREATE | os.O_TRUNC,
	ModeAppendReadWrite:   os.O_RDWR | os.O_CREATE | os.O_APPEND,
}

var modeNames = [...]string{
	ModeRead:              "read",
	ModeCreateWrite:       "createWrite",
	ModeTruncateWrite:     "truncateWrite",
	ModeAppendWrite:       "appendWrite",
	ModeReadWrite:         "readWrite",
	ModeCreateReadWrite:   "createReadWrite",
	ModeTruncateReadWrite: "truncateReadWrite",
	ModeAppendReadWrite:   "appendReadWrite",
}

// Modes returns every Mode in declaration order.
func Modes() []Mode {
	modes := make([]Mode, len(modeFlags))
	for i := range modeFlags {
		modes[i] = Mode(i)
	}
	return modes
}

// Valid reports whether m is one of the declared modes.
func (m Mode) Valid() bool {
	return m >= 0 && int(m) < len(modeFlags)
}

// Flags returns the os.OpenFile flags for m, or -1 for an invalid Mode.
func (m Mode) Flags() int {
	if !m.Valid() {
		return -1
	}
	return modeFlags[m]
}

// String returns the mode name, e.g. "truncateReadWrite".
func (m Mode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// Readable reports whether files opened with m can be read.
func (m Mode) Readable() bool {
	return m.Valid() && m.Flags()&(os.O_WRONLY|os.O_RDWR) != os.O_WRONLY
}

// Writable reports whether files opened with m can be written.
func (m Mode) Writable() bool {
	return m.Valid() && m.Flags()&(os.O_WRONLY|os.O_RDWR) != 0
}

// Creates reports whether m creates a missing file.
func (m Mode) Creates() bool {
	return m.Valid() && m.Flags()&os.O_CREATE != 0
}

// Exclusive reports whether m fails when the file already exists.
func (m Mode) Exclusive() bool {
	return m.Valid() && m.Flags()&os.O_EXCL != 0
}

// ParseMode parses a mode name as returned by Mode.String.
// Matching is case-insensitive.
func ParseMode(s string) (Mode, error) {
	for i, name := range modeNames {
		if strings.EqualFold(s, name) {
			return Mode(i), nil
		}
	}
	return 0, errors.Newf(errors.CodeInvalidInput, "unknown file mode %q", s)
}
