package config

import (
	"io"
	"io/ioutil"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/rfxgate/rfxgate/pubsub"
)

type DeviceConf struct {
	Id       string          `json:"id" yaml:"-"`
	Name     string          `json:"name"`
	Group    string          `json:"group"`
	Location string          `json:"location"`
	Address  string          `json:"address"`
	Caps     []string        `json:"caps"`
	Cap      map[string]bool `json:"-" yaml:"-"`
}

type RfxcomConf struct {
	Device string
	Debug  bool
}

type EndpointsConf struct {
	Mqtt struct {
		Broker string
	}
	Api string
}

type XplConf struct {
	Instance  string
	Broadcast string
}

type DataloggerConf struct {
	Path string
}

// Configuration structure
type Config struct {
	// yaml fields
	Devices    map[string]DeviceConf
	Protocols  map[string]map[string]string
	Endpoints  EndpointsConf
	Rfxcom     RfxcomConf
	Xpl        XplConf
	Datalogger DataloggerConf
}

// Open configuration from disk.
func Open() (*Config, error) {
	file, err := os.Open(ConfigPath("rfxgate.yml"))
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return OpenReader(file)
}

// Open configuration from a reader.
func OpenReader(r io.Reader) (*Config, error) {
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return OpenRaw(data)
}

// Open configuration from []byte.
func OpenRaw(data []byte) (*Config, error) {
	self := &Config{}
	err := yaml.Unmarshal(data, self)
	if err != nil {
		return nil, err
	}

	if self.Protocols == nil {
		self.Protocols = map[string]map[string]string{}
	}

	for id, device := range self.Devices {
		device.Id = id
		if len(device.Caps) == 0 {
			major := strings.Split(id, ".")[0]
			device.Caps = []string{major}
		}
		device.Cap = map[string]bool{}
		for _, c := range device.Caps {
			device.Cap[c] = true
		}
		self.Devices[id] = device

		// devices with an rf address are reachable over the rfxcom protocol
		if device.Address != "" {
			if self.Protocols["rfxcom"] == nil {
				self.Protocols["rfxcom"] = map[string]string{}
			}
			self.Protocols["rfxcom"][strings.ToLower(device.Address)] = id
		}
	}

	return self, nil
}

// Resolve the event source (protocol.id) to the configured device, setting
// the device field on the event.
func (self *Config) AddDeviceToEvent(ev *pubsub.Event) {
	device := self.LookupDeviceName(ev)
	if device != "" {
		ev.SetField("device", device)
	}
}

// Find the device name for an event by its source.
func (self *Config) LookupDeviceName(ev *pubsub.Event) string {
	// split source into protocol.id
	ps := strings.SplitN(ev.Source(), ".", 2)
	protocol := ps[0]
	var id string
	if len(ps) > 1 {
		id = ps[1]
	}
	return self.Protocols[protocol][id]
}

// Find the identifier for a device name under the given protocol.
func (self *Config) LookupDeviceProtocol(device string, protocol string) (string, bool) {
	for id, name := range self.Protocols[protocol] {
		if name == device {
			return id, true
		}
	}
	return "", false
}

// helpers

// Resolve a configuration file under .config/rfxgate
func ConfigPath(p string) string {
	config := os.Getenv("XDG_CONFIG_HOME")
	if config == "" {
		config = path.Join(os.Getenv("HOME"), ".config")
	}
	return path.Join(config, "rfxgate", p)
}
