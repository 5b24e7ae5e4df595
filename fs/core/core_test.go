package core_test

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jmgilman/go/file/fs/core"
)

func TestFSType_String(t *testing.T) {
	tests := []struct {
		fsType core.FSType
		want   string
	}{
		{core.FSTypeUnknown, "unknown"},
		{core.FSTypeLocal, "local"},
		{core.FSTypeMemory, "memory"},
		{core.FSTypeRemote, "remote"},
		{core.FSType(999), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.fsType.String())
		})
	}
}

func TestReexportedErrorsMatchStdlib(t *testing.T) {
	tests := []struct {
		name      string
		coreErr   error
		stdlibErr error
	}{
		{"ErrNotExist", core.ErrNotExist, fs.ErrNotExist},
		{"ErrExist", core.ErrExist, fs.ErrExist},
		{"ErrPermission", core.ErrPermission, fs.ErrPermission},
		{"ErrClosed", core.ErrClosed, fs.ErrClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.coreErr, tt.stdlibErr)
			assert.ErrorIs(t, fmt.Errorf("wrapped: %w", tt.coreErr), tt.stdlibErr)
		})
	}
}

func TestErrUnsupported(t *testing.T) {
	assert.Equal(t, "operation not supported", core.ErrUnsupported.Error())
	assert.False(t, errors.Is(core.ErrUnsupported, fs.ErrNotExist))
}
