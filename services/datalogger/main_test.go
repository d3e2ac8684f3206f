package datalogger

import (
	"io/ioutil"
	"os"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rfxgate/rfxgate/config"
	"github.com/rfxgate/rfxgate/pubsub"
	"github.com/rfxgate/rfxgate/services"
)

func TestWriteToLogFile(t *testing.T) {
	services.Config = config.ExampleConfig
	dir, err := ioutil.TempDir("", "datalogger")
	assert.NoError(t, err)
	defer os.RemoveAll(dir)
	logDir = dir

	fields := pubsub.Fields{"source": "rfxcom.th9 0xffff", "temp": 21.5}
	event(pubsub.NewEvent("temp", fields))

	data, err := ioutil.ReadFile(path.Join(dir, "temp", "data.log"))
	assert.NoError(t, err)
	assert.Contains(t, string(data), `"device":"temp.garden"`)
	assert.Contains(t, string(data), `"temp":21.5`)
}

func TestInternalTopicsSkipped(t *testing.T) {
	dir, err := ioutil.TempDir("", "datalogger")
	assert.NoError(t, err)
	defer os.RemoveAll(dir)
	logDir = dir

	event(pubsub.NewEvent("_rpc.123", pubsub.Fields{}))
	entries, _ := ioutil.ReadDir(dir)
	assert.Len(t, entries, 0)
}
