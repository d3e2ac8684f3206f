package config

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rfxgate/rfxgate/pubsub"
)

func ExampleOpenRaw() {
	config, _ := OpenRaw([]byte(ExampleYaml))
	fmt.Println(config.Rfxcom.Device)
	fmt.Println(config.Devices["temp.garden"].Address)
	// Output:
	// /dev/rfxcom
	// th9 0xFFFF
}

func Example_lookupDeviceName() {
	config, _ := OpenRaw([]byte(ExampleYaml))
	fields := pubsub.Fields{"source": "rfxcom.th9 0xffff"}
	ev := pubsub.NewEvent("temp", fields)
	fmt.Println(config.LookupDeviceName(ev))
	// Output:
	// temp.garden
}

func Example_lookupDeviceNameMissing() {
	config, _ := OpenRaw([]byte(ExampleYaml))
	fields := pubsub.Fields{"source": "rfxcom.th9 0x1234"}
	ev := pubsub.NewEvent("temp", fields)
	fmt.Printf("%q\n", config.LookupDeviceName(ev))
	// Output:
	// ""
}

func TestAddressesIndexed(t *testing.T) {
	config, err := OpenRaw([]byte(ExampleYaml))
	assert.NoError(t, err)
	// device addresses are registered under the rfxcom protocol, lowercased
	assert.Equal(t, "temp.garden", config.Protocols["rfxcom"]["th9 0xffff"])
	assert.Equal(t, "temp.hall", config.Protocols["rfxcom"]["th1 0x9603"])
}

func TestLookupDeviceProtocol(t *testing.T) {
	config, _ := OpenRaw([]byte(ExampleYaml))
	id, ok := config.LookupDeviceProtocol("temp.garden", "rfxcom")
	assert.True(t, ok)
	assert.Equal(t, "th9 0xffff", id)

	_, ok = config.LookupDeviceProtocol("temp.garden", "xpl")
	assert.False(t, ok)

	id, ok = config.LookupDeviceProtocol("temp.attic", "xpl")
	assert.True(t, ok)
	assert.Equal(t, "bnz-rfxlan.attic", id)
}

func TestDeviceCaps(t *testing.T) {
	config, _ := OpenRaw([]byte(ExampleYaml))
	dev := config.Devices["temp.garden"]
	assert.Equal(t, "temp.garden", dev.Id)
	// caps default to the major part of the device name
	assert.True(t, dev.Cap["temp"])
}

func TestBadYaml(t *testing.T) {
	_, err := OpenRaw([]byte("devices: ["))
	assert.Error(t, err)
}
