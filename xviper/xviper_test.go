package xviper

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		v       = New("test")
	)

	require.NotNil(v)
	assert.Nil(v.Get("nosuchkey"))
}

func TestParseAndBind(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)

		v       = New("test")
		flagSet = pflag.NewFlagSet("test", pflag.ContinueOnError)
	)

	flagSet.String("greeting", "hello", "the greeting text")
	require.NoError(ParseAndBind(v, flagSet, []string{"--greeting", "salutations"}))
	assert.Equal("salutations", v.GetString("greeting"))
}

func TestParseAndBindBadArguments(t *testing.T) {
	var (
		assert  = assert.New(t)
		v       = New("test")
		flagSet = pflag.NewFlagSet("test", pflag.ContinueOnError)
	)

	assert.Error(ParseAndBind(v, flagSet, []string{"--nosuchflag", "value"}))
}

func TestReadInConfigMissingFile(t *testing.T) {
	var (
		assert = assert.New(t)
		v      = New("nosuchapplication")
	)

	assert.NoError(ReadInConfig(v))
}
