package label

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPolicy(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want bool
	}{
		{"lowercase true", "true", true},
		{"uppercase true", "TRUE", true},
		{"single letter", "t", true},
		{"good", "good", true},
		{"active", "Active", true},
		{"yes", "YES", true},
		{"y", "y", true},
		{"string one", "1", true},
		{"numeric one", 1.0, true},
		{"int one", 1, true},
		{"bool true", true, true},
		{"bool false", false, false},
		{"numeric zero", 0.0, false},
		{"numeric two", 2.0, false},
		{"no", "no", false},
		{"inactive", "inactive", false},
		{"mixed case not in set", "tRuE", false},
		{"empty string", "", false},
		{"nil", nil, false},
	}

	p := Default()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Good(tt.in))
		})
	}
}

func TestValuePolicy(t *testing.T) {
	p := Value("CNS")
	assert.True(t, p.Good("CNS"))
	assert.False(t, p.Good("cns"))
	assert.False(t, p.Good("true"))

	n := Value(2.0)
	assert.True(t, n.Good(2.0))
	assert.False(t, n.Good(1.0))
}

func TestFuncPolicy(t *testing.T) {
	p := Func(func(v any) bool {
		s, ok := v.(string)
		return ok && strings.HasPrefix(s, "ok")
	})
	assert.True(t, p.Good("ok-compound"))
	assert.False(t, p.Good("bad-compound"))
	assert.False(t, p.Good(1.0))

	empty := Func(nil)
	assert.False(t, empty.Good("anything"))
}

func TestApply(t *testing.T) {
	raw := []any{"yes", "no", nil, 1.0, "maybe"}

	out := Default().Apply(raw)
	require.Len(t, out, len(raw))

	require.NotNil(t, out[0])
	assert.True(t, *out[0])
	require.NotNil(t, out[1])
	assert.False(t, *out[1])
	assert.Nil(t, out[2], "missing raw label stays missing")
	require.NotNil(t, out[3])
	assert.True(t, *out[3])
	require.NotNil(t, out[4])
	assert.False(t, *out[4])
}

func TestZeroValueIsDefault(t *testing.T) {
	var p Policy
	assert.True(t, p.Good("yes"))
	assert.False(t, p.Good("no"))
}
