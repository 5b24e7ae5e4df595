package main

import (
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/jmgilman/go/file/file"
)

// modeValue lets --mode accept any file.Mode name.
type modeValue file.Mode

var _ pflag.Value = (*modeValue)(nil)

func (m *modeValue) String() string { return file.Mode(*m).String() }
func (m *modeValue) Type() string   { return "mode" }

func (m *modeValue) Set(s string) error {
	mode, err := file.ParseMode(s)
	if err != nil {
		return err
	}
	if !mode.Writable() {
		return fmt.Errorf("mode %s cannot write", mode)
	}
	*m = modeValue(mode)
	return nil
}

// permValue parses octal permission bits such as 644 or 0o600.
type permValue fs.FileMode

var _ pflag.Value = (*permValue)(nil)

func (p *permValue) String() string { return fmt.Sprintf("%#o", uint32(*p)) }
func (p *permValue) Type() string   { return "perm" }

func (p *permValue) Set(s string) error {
	v, err := strconv.ParseUint(strings.TrimPrefix(s, "0o"), 8, 32)
	if err != nil {
		return fmt.Errorf("invalid permissions %q: %w", s, err)
	}
	if v > 0o777 {
		return fmt.Errorf("invalid permissions %q: only permission bits are allowed", s)
	}
	*p = permValue(v)
	return nil
}

func fsMode(p permValue) fs.FileMode { return fs.FileMode(p) }
