package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprint_Deterministic(t *testing.T) {
	sources := []string{"conf/base.yaml", "testdata/extra.yaml"}

	first := Fingerprint(sources)
	second := Fingerprint(sources)

	assert.Equal(t, first, second)
	assert.Len(t, first, 64) // hex sha256
}

func TestFingerprint_OrderSensitive(t *testing.T) {
	a := Fingerprint([]string{"one.yaml", "two.yaml"})
	b := Fingerprint([]string{"two.yaml", "one.yaml"})

	assert.NotEqual(t, a, b)
}

func TestFingerprint_DistinctLists(t *testing.T) {
	tests := []struct {
		name string
		a, b []string
	}{
		{"different element", []string{"a.yaml"}, []string{"b.yaml"}},
		{"extra element", []string{"a.yaml"}, []string{"a.yaml", "b.yaml"}},
		{"duplicate kept", []string{"a.yaml"}, []string{"a.yaml", "a.yaml"}},
		{"boundary ambiguity", []string{"ab"}, []string{"a", "b"}},
		{"empty vs one empty string", nil, []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEqual(t, Fingerprint(tt.a), Fingerprint(tt.b))
		})
	}
}

func TestFingerprint_UnicodeNormalization(t *testing.T) {
	// é as a single code point vs e + combining acute.
	composed := Fingerprint([]string{"café.yaml"})
	decomposed := Fingerprint([]string{"café.yaml"})

	assert.Equal(t, composed, decomposed)
}

func TestFingerprint_EmptyList(t *testing.T) {
	assert.Len(t, Fingerprint(nil), 64)
	assert.Equal(t, Fingerprint(nil), Fingerprint([]string{}))
}
