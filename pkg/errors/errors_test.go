package errors_test

import (
	"errors"
	"fmt"
	"testing"

	pkgerrors "github.com/agentstation/contactmerge/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{Field: "separator", Message: "cannot be empty"}
		assert.Equal(t, "validation failed for field separator: cannot be empty", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrInvalidInput))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{Message: "invalid profile"}
		assert.Equal(t, "validation failed: invalid profile", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})
}

func TestInvalidRecordError(t *testing.T) {
	tests := []struct {
		name string
		err  *pkgerrors.InvalidRecordError
		want string
	}{
		{
			name: "sheet and row",
			err:  pkgerrors.NewInvalidRecordError("捐款人", 12, "missing email and name"),
			want: "invalid record at 捐款人 row 12: missing email and name",
		},
		{
			name: "sheet only",
			err:  pkgerrors.NewInvalidRecordError("MKT", 0, "sentinel name"),
			want: "invalid record in MKT: sentinel name",
		},
		{
			name: "bare",
			err:  &pkgerrors.InvalidRecordError{Reason: "empty"},
			want: "invalid record: empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
			assert.True(t, pkgerrors.IsInvalidRecord(tt.err))
			assert.False(t, pkgerrors.IsValidationError(tt.err))
		})
	}

	t.Run("survives wrapping", func(t *testing.T) {
		err := fmt.Errorf("normalize: %w", pkgerrors.NewInvalidRecordError("ER", 3, "x"))
		var target *pkgerrors.InvalidRecordError
		require.True(t, errors.As(err, &target))
		assert.Equal(t, 3, target.Row)
	})
}

func TestHeaderError(t *testing.T) {
	err := &pkgerrors.HeaderError{Sheet: "MKT", Missing: []string{"email", "地址"}}
	assert.Equal(t, "header not found in sheet MKT (missing labels: email, 地址)", err.Error())
	assert.True(t, pkgerrors.IsHeaderNotFound(err))

	bare := &pkgerrors.HeaderError{Sheet: "MKT"}
	assert.Equal(t, "header not found in sheet MKT", bare.Error())
}

func TestIOError(t *testing.T) {
	t.Run("with path", func(t *testing.T) {
		base := errors.New("permission denied")
		err := pkgerrors.NewIOError("write", "/tmp/out.xlsx", base)
		assert.Equal(t, "IO error during write of /tmp/out.xlsx: permission denied", err.Error())
		assert.Equal(t, base, errors.Unwrap(err))
		assert.True(t, pkgerrors.IsIOError(err))
	})

	t.Run("wrap nil", func(t *testing.T) {
		assert.NoError(t, pkgerrors.WrapIO("read", "x", nil))
	})

	t.Run("wrapped io error is detected", func(t *testing.T) {
		err := fmt.Errorf("read workbook: %w", pkgerrors.WrapIO("read", "in.xlsx", errors.New("boom")))
		assert.True(t, pkgerrors.IsIOError(err))
	})
}

func TestConfigError(t *testing.T) {
	base := errors.New("bad yaml")
	err := pkgerrors.NewConfigError("profile", "cannot load", base)
	assert.Equal(t, "configuration error in profile: cannot load", err.Error())
	assert.ErrorIs(t, err, base)

	noComponent := &pkgerrors.ConfigError{Message: "missing"}
	assert.Equal(t, "configuration error: missing", noComponent.Error())
}

func TestParseError(t *testing.T) {
	t.Run("with line", func(t *testing.T) {
		err := &pkgerrors.ParseError{Format: "yaml", File: "p.yaml", Line: 3, Column: 2, Message: "bad"}
		assert.Equal(t, "parse error in yaml at p.yaml:3:2: bad", err.Error())
	})

	t.Run("file only", func(t *testing.T) {
		err := pkgerrors.WrapParse("csv", "in.csv", errors.New("bare quote"))
		assert.Equal(t, "parse error in csv file in.csv: bare quote", err.Error())
		assert.True(t, pkgerrors.IsParseError(fmt.Errorf("load: %w", err)))
		assert.False(t, pkgerrors.IsParseError(errors.New("x")))
	})

	t.Run("no file", func(t *testing.T) {
		err := pkgerrors.NewParseError("xlsx", "", "corrupt", nil)
		assert.Equal(t, "xlsx parse error: corrupt", err.Error())
	})
}
