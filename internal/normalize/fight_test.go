package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLandedAttempted(t *testing.T) {
	l, a := LandedAttempted("12 of 30")
	assert.Equal(t, 12, l)
	assert.Equal(t, 30, a)

	l, a = LandedAttempted("--")
	assert.Zero(t, l)
	assert.Zero(t, a)

	l, a = LandedAttempted("12/30")
	assert.Zero(t, l)
	assert.Zero(t, a)
}

func TestCountAndRound(t *testing.T) {
	assert.Equal(t, 2, Count(" 2 "))
	assert.Equal(t, 0, Count("--"))
	assert.Equal(t, 0, Count("two"))

	require.NotNil(t, Round("3"))
	assert.Equal(t, 3, *Round("3"))
	assert.Nil(t, Round("0"))
	assert.Nil(t, Round(""))
}

func TestClock(t *testing.T) {
	got := Clock("4:32")
	require.NotNil(t, got)
	assert.Equal(t, 272, *got)

	assert.Nil(t, Clock("--"))
	assert.Nil(t, Clock("4m32s"))

	assert.Equal(t, 135, ControlTime("2:15"))
	assert.Equal(t, 0, ControlTime("--"))
}

func TestScore(t *testing.T) {
	a, b, ok := Score("29 - 28")
	assert.True(t, ok)
	assert.Equal(t, 29, a)
	assert.Equal(t, 28, b)

	_, _, ok = Score("--")
	assert.False(t, ok)
	_, _, ok = Score("win")
	assert.False(t, ok)
}

func TestFlag(t *testing.T) {
	for _, s := range []string{"true", "True", "yes", "Y", "1"} {
		assert.True(t, Flag(s), s)
	}
	for _, s := range []string{"", "--", "false", "no", "belt"} {
		assert.False(t, Flag(s), s)
	}
}

func TestParseTimeFormat(t *testing.T) {
	t.Run("standard", func(t *testing.T) {
		tf := ParseTimeFormat("3 Rnd (5-5-5)")
		require.NotNil(t, tf)
		assert.Equal(t, "3 Rnd (5-5-5)", tf.FormatString)
		require.NotNil(t, tf.BaseRounds)
		assert.Equal(t, 3, *tf.BaseRounds)
		require.NotNil(t, tf.BaseRoundDuration)
		assert.Equal(t, 300, *tf.BaseRoundDuration)
		assert.Zero(t, tf.OvertimeRounds)
		assert.Nil(t, tf.OvertimeDuration)
		assert.False(t, tf.UnlimitedRounds)
		assert.False(t, tf.NoTimeLimit)
	})

	t.Run("overtime", func(t *testing.T) {
		tf := ParseTimeFormat("1 Rnd + OT (12-3)")
		require.NotNil(t, tf)
		assert.Equal(t, 1, *tf.BaseRounds)
		assert.Equal(t, 720, *tf.BaseRoundDuration)
		assert.Equal(t, 1, tf.OvertimeRounds)
		require.NotNil(t, tf.OvertimeDuration)
		assert.Equal(t, 180, *tf.OvertimeDuration)
	})

	t.Run("double overtime", func(t *testing.T) {
		tf := ParseTimeFormat("1 Rnd + 2OT (15-3-3)")
		require.NotNil(t, tf)
		assert.Equal(t, 2, tf.OvertimeRounds)
		assert.Equal(t, 180, *tf.OvertimeDuration)
	})

	t.Run("overtime without its own duration", func(t *testing.T) {
		tf := ParseTimeFormat("1 Rnd + OT (12)")
		require.NotNil(t, tf)
		assert.Equal(t, 1, tf.OvertimeRounds)
		assert.Nil(t, tf.OvertimeDuration)
	})

	t.Run("unlimited", func(t *testing.T) {
		tf := ParseTimeFormat("Unlimited Rnd (10)")
		require.NotNil(t, tf)
		assert.True(t, tf.UnlimitedRounds)
		assert.Nil(t, tf.BaseRounds)
		assert.Equal(t, 600, *tf.BaseRoundDuration)
	})

	t.Run("no time limit", func(t *testing.T) {
		tf := ParseTimeFormat("No Time Limit")
		require.NotNil(t, tf)
		assert.True(t, tf.NoTimeLimit)
		assert.Nil(t, tf.BaseRoundDuration)
	})

	t.Run("garbage", func(t *testing.T) {
		assert.Nil(t, ParseTimeFormat("--"))
		assert.Nil(t, ParseTimeFormat("three rounds"))
	})
}
