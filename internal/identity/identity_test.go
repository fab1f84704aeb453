package identity

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateID(t *testing.T) {
	tests := []struct {
		key    string
		digits int
		want   int64
	}{
		{"http://ufcstats.com/fighter-details/abc123", 9, 565404779},
		{"http://ufcstats.com/fighter-details/abc123", 4, 4779},
		{"http://ufcstats.com/fighter-details/abc123", 18, 659504272565404779},
		{"UFC 300: Pereira vs. Hill", 9, 725255606},
		{"a", 9, 556493499},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, err := GenerateID(tt.key, tt.digits)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerateIDDeterministic(t *testing.T) {
	first, err := ID("http://ufcstats.com/fight-details/f1")
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := ID("http://ufcstats.com/fight-details/f1")
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
	assert.Equal(t, int64(674653955), first)
}

func TestGenerateIDRejectsEmptyKey(t *testing.T) {
	_, err := GenerateID("", DefaultDigits)
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestGenerateIDRejectsDigits(t *testing.T) {
	for _, d := range []int{0, -1, 19} {
		_, err := GenerateID("x", d)
		assert.ErrorIs(t, err, ErrInvalidDigits, "digits=%d", d)
	}
}

func TestRegistryObserve(t *testing.T) {
	r := NewRegistry(DefaultDigits)

	id, err := r.Observe("a")
	require.NoError(t, err)
	assert.Equal(t, int64(556493499), id)

	// Same key again is fine.
	_, err = r.Observe("a")
	require.NoError(t, err)
	assert.Equal(t, 1, r.Len())

	_, err = r.Observe("")
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestRegistryDetectsCollision(t *testing.T) {
	// "k0" and "k2" share their last decimal digit.
	r := NewRegistry(1)

	_, err := r.Observe("k0")
	require.NoError(t, err)

	id, err := r.Observe("k2")
	require.ErrorIs(t, err, ErrCollision)
	assert.Equal(t, int64(4), id)
	assert.Contains(t, err.Error(), `"k0"`)
}

func TestRegistryConcurrent(t *testing.T) {
	r := NewRegistry(DefaultDigits)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, k := range []string{"a", "UFC 300: Pereira vs. Hill"} {
				_, err := r.Observe(k)
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 2, r.Len())
}
