// Service to bridge the event bus to xPL, the protocol spoken by RFXLAN
// transceivers. Sensor readings heard on the bus are broadcast as
// sensor.basic xpl-trig messages, and sensor.basic messages from an RFXLAN
// on the local network are re-emitted on the bus.
package xpl

import (
	"fmt"
	"log"
	"net"
	"regexp"
	"strings"

	"github.com/rfxgate/rfxgate/pubsub"
	"github.com/rfxgate/rfxgate/services"
)

var re_parts = regexp.MustCompile(`(?s)([A-Za-z0-9.-]+)\n\{\n(.+?)\n\}\n`)

func PairKeyValues(s string) map[string]string {
	ret := make(map[string]string)
	for _, pair := range strings.Split(s, "\n") {
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) == 2 {
			ret[kv[0]] = kv[1]
		}
	}
	return ret
}

// Parse an xPL message.
func Parse(body string) map[string]map[string]string {
	parts := make(map[string]map[string]string)
	for _, m := range re_parts.FindAllStringSubmatch(body, -1) {
		k := m[1]
		v := m[2]
		parts[k] = PairKeyValues(v)
	}
	return parts
}

// Message is an xPL message under construction. Body keys keep their order
// on the wire.
type Message struct {
	Type   string // xpl-stat, xpl-trig or xpl-cmnd
	Source string
	Target string
	Schema string
	Body   [][2]string
}

func (m *Message) Format() string {
	target := m.Target
	if target == "" {
		target = "*"
	}
	s := fmt.Sprintf("%s\n{\nhop=1\nsource=%s\ntarget=%s\n}\n%s\n{\n", m.Type, m.Source, target, m.Schema)
	for _, kv := range m.Body {
		s += fmt.Sprintf("%s=%s\n", kv[0], kv[1])
	}
	return s + "}\n"
}

// Service xpl
type Service struct {
}

func (self *Service) ID() string {
	return "xpl"
}

func (self *Service) source() string {
	instance := services.Config.Xpl.Instance
	if instance == "" {
		instance = "default"
	}
	return "rfxgate-rfxcom." + instance
}

// The sensor.basic messages the original rfxcom xPL firmware emits for one
// temperature/humidity reading.
func sensorBasicMessages(source string, ev *pubsub.Event) []*Message {
	address := ev.StringField("address")
	if address == "" {
		return nil
	}
	var msgs []*Message
	add := func(typ string, current string, extra ...[2]string) {
		body := [][2]string{
			{"device", address},
			{"type", typ},
			{"current", current},
		}
		body = append(body, extra...)
		msgs = append(msgs, &Message{
			Type:   "xpl-trig",
			Source: source,
			Schema: "sensor.basic",
			Body:   body,
		})
	}

	if temp, ok := ev.Fields["temp"]; ok {
		add("temp", fmt.Sprint(temp), [2]string{"units", "c"})
	}
	if humidity, ok := ev.Fields["humidity"]; ok {
		status := ev.StringField("status")
		if status != "" {
			add("humidity", fmt.Sprint(humidity), [2]string{"description", status})
			add("status", status)
		} else {
			add("humidity", fmt.Sprint(humidity))
		}
	}
	if battery, ok := ev.Fields["battery"]; ok {
		add("battery", fmt.Sprint(battery))
	}
	if signal, ok := ev.Fields["signal"]; ok {
		add("rssi", fmt.Sprint(signal))
	}
	return msgs
}

// Translate an incoming sensor.basic message to a bus event. RFXLAN
// transceivers address sensors the same way the USB ones do (eg.
// "th9 0xFFFF").
func translateSensorBasic(body map[string]string) *pubsub.Event {
	device := body["device"]
	if device == "" {
		return nil
	}
	fields := pubsub.Fields{
		"source":  "rfxcom." + strings.ToLower(device),
		"address": device,
	}
	current := body["current"]
	switch body["type"] {
	case "temp":
		fields["temp"] = parseNumber(current)
	case "humidity":
		fields["humidity"] = parseNumber(current)
		if desc := body["description"]; desc != "" {
			fields["status"] = desc
		}
	case "battery":
		fields["battery"] = parseNumber(current)
	case "rssi":
		fields["signal"] = parseNumber(current)
	default:
		return nil
	}
	return pubsub.NewEvent("temp", fields)
}

func parseNumber(s string) interface{} {
	var f float64
	if _, err := fmt.Sscanf(s, "%g", &f); err != nil {
		return s
	}
	return f
}

func (self *Service) broadcast(conn net.Conn, ev *pubsub.Event) {
	for _, msg := range sensorBasicMessages(self.source(), ev) {
		if _, err := conn.Write([]byte(msg.Format())); err != nil {
			log.Println("Error broadcasting xpl:", err)
			return
		}
	}
}

func (self *Service) sendEvents(conn net.Conn) {
	for ev := range services.Subscriber.Subscribe(pubsub.Prefix("temp")) {
		self.broadcast(conn, ev)
	}
}

func (self *Service) handle(data string) *pubsub.Event {
	parts := Parse(data)
	var header map[string]string
	for _, t := range []string{"xpl-stat", "xpl-trig"} {
		if h, ok := parts[t]; ok {
			header = h
			break
		}
	}
	if header == nil {
		return nil
	}
	if header["source"] == self.source() {
		// our own broadcast
		return nil
	}
	basic, ok := parts["sensor.basic"]
	if !ok {
		return nil
	}
	ev := translateSensorBasic(basic)
	if ev == nil {
		return nil
	}
	services.Config.AddDeviceToEvent(ev)
	return ev
}

func (self *Service) Run() error {
	addr, err := net.ResolveUDPAddr("udp", ":3865")
	if err != nil {
		return err
	}
	sock, err := net.ListenUDP("udp", addr)
	if err != nil {
		return err
	}

	broadcast := services.Config.Xpl.Broadcast
	if broadcast == "" {
		broadcast = "255.255.255.255:3865"
	}
	conn, err := net.Dial("udp", broadcast)
	if err != nil {
		return err
	}
	go self.sendEvents(conn)

	var buf [1500]byte
	for {
		rlen, _, err := sock.ReadFromUDP(buf[0:])
		if err != nil {
			log.Println("Error reading xpl:", err)
			continue
		}
		data := string(buf[:rlen])
		ev := self.handle(data)
		if ev != nil {
			services.Publisher.Emit(ev)
		}
	}
}
