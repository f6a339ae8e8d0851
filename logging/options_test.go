package logging

import (
	"bytes"
	"os"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/natefinch/lumberjack.v2"
)

func TestOptionsOutput(t *testing.T) {
	var testData = []struct {
		options          *Options
		expectLumberjack bool
	}{
		{nil, false},
		{&Options{}, false},
		{&Options{File: StdoutFile}, false},
		{&Options{File: "/var/log/vigil/vigil.log"}, true},
	}

	for _, record := range testData {
		t.Logf("%#v", record)
		var (
			assert = assert.New(t)
			output = record.options.output()
		)

		if record.expectLumberjack {
			assert.IsType((*lumberjack.Logger)(nil), output)
		} else {
			assert.NotNil(output)
			assert.NotEqual(os.Stdout, output)
		}
	}
}

func TestOptionsLevel(t *testing.T) {
	var testData = []struct {
		options       *Options
		expectedLevel string
	}{
		{nil, ""},
		{&Options{}, ""},
		{&Options{Level: "DEBUG"}, "DEBUG"},
		{&Options{Level: "info"}, "info"},
	}

	for _, record := range testData {
		assert := assert.New(t)
		assert.Equal(record.expectedLevel, record.options.level())
	}
}

func TestOptionsLoggerFactory(t *testing.T) {
	assert := assert.New(t)
	assert.NotNil((*Options)(nil).loggerFactory())
	assert.NotNil((&Options{JSON: true}).loggerFactory())
	assert.NotNil((&Options{JSON: false}).loggerFactory())
}

func TestSub(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		v       = viper.New()
	)

	assert.Nil(Sub(nil))

	v.SetConfigType("json")
	require.NoError(v.ReadConfig(bytes.NewBufferString(`{
		"log": {
			"file": "/var/log/vigil/vigil.log",
			"level": "INFO",
			"json": true
		}
	}`)))

	require.NotNil(Sub(v))
}

func TestFromViper(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		v       = viper.New()
	)

	v.SetConfigType("json")
	require.NoError(v.ReadConfig(bytes.NewBufferString(`{
		"log": {
			"file": "/var/log/vigil/vigil.log",
			"maxsize": 10,
			"level": "INFO",
			"json": true
		}
	}`)))

	o, err := FromViper(Sub(v))
	require.NoError(err)
	require.NotNil(o)
	assert.Equal("/var/log/vigil/vigil.log", o.File)
	assert.Equal(10, o.MaxSize)
	assert.Equal("INFO", o.Level)
	assert.True(o.JSON)

	o, err = FromViper(nil)
	require.NoError(err)
	require.NotNil(o)
	assert.Equal(*new(Options), *o)
}
