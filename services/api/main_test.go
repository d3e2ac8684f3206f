package api

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rfxgate/rfxgate/config"
	"github.com/rfxgate/rfxgate/pubsub"
	"github.com/rfxgate/rfxgate/pubsub/dummy"
	"github.com/rfxgate/rfxgate/services"
)

func setup() {
	services.Config = config.ExampleConfig
	services.Stor = services.NewMemoryStore()
	services.Publisher = &dummy.Publisher{}
}

func TestRecordEvents(t *testing.T) {
	setup()
	sub := &dummy.Subscriber{}
	fields := pubsub.Fields{"source": "rfxcom.th9 0xffff", "device": "temp.garden", "temp": 21.5}
	sub.Events = []*pubsub.Event{pubsub.NewEvent("temp", fields)}
	services.Subscriber = sub

	recordEvents(services.Subscriber.Subscribe(pubsub.All()))

	state := getDevicesState()
	assert.Contains(t, state, "temp.garden")
	last := state["temp.garden"].(map[string]interface{})
	assert.Equal(t, 21.5, last["temp"])
	assert.Equal(t, "temp", last["topic"])
}

func TestApiDevices(t *testing.T) {
	setup()
	services.Stor.Set(statePrefix+"/temp.garden", `{"topic":"temp","temp":21.5,"timestamp":"2014-01-02 03:04:05.987"}`)

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/devices", nil)
	router().ServeHTTP(w, r)

	assert.Equal(t, 200, w.Code)
	var ret map[string]map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &ret)
	assert.NoError(t, err)
	assert.Contains(t, ret, "temp.garden")
	assert.Equal(t, "th9 0xFFFF", ret["temp.garden"]["address"])
	state := ret["temp.garden"]["state"].(map[string]interface{})
	assert.Equal(t, 21.5, state["temp"])

	// devices without state have a null state
	assert.Contains(t, ret, "temp.hall")
	assert.Nil(t, ret["temp.hall"]["state"])
}

func TestApiIndex(t *testing.T) {
	setup()
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/", nil)
	router().ServeHTTP(w, r)
	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), "rfxgate")
}
