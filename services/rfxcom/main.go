// Service to communicate with an rfxcom transceiver (RFXtrx433 USB). This
// receives sensor telemetry and can transmit raw packets, handling the
// transceiver's transmit acknowledgements.
package rfxcom

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rfxgate/rfxgate/pubsub"
	"github.com/rfxgate/rfxgate/rfx"
	"github.com/rfxgate/rfxgate/services"
)

// wait between transmit retries after a NACK
const retryDelay = time.Second

// delay between reset and status request - the transceiver stops RF
// reception for up to 10s after a reset, terminated by the status request
const settleDelay = 2 * time.Second

type transmission struct {
	event  *pubsub.Event
	packet *rfx.Raw
}

// Service rfxcom
type Service struct {
	inflight  chan *transmission
	seq       byte
	announced map[string]bool
	received  int
	lastState string

	mu  sync.Mutex
	dev *rfx.Device
}

func (self *Service) setDevice(dev *rfx.Device) {
	self.mu.Lock()
	self.dev = dev
	self.mu.Unlock()
}

func (self *Service) device() *rfx.Device {
	self.mu.Lock()
	defer self.mu.Unlock()
	return self.dev
}

func (self *Service) ID() string {
	return "rfxcom"
}

func (self *Service) nextSeq() byte {
	self.seq += 1
	return self.seq
}

// Read events from the transceiver
func (self *Service) readEvents(dev *rfx.Device) {
	errors := 0
	for {
		packet, err := dev.Read()
		if err != nil {
			log.Println("Error reading:", err)
			errors += 1
			if errors > 10 {
				// give up on the connection, reopen
				return
			}
			continue
		}
		errors = 0
		if packet == nil {
			continue
		}

		self.received += 1
		ev := self.translatePacket(dev, packet)
		if ev != nil {
			services.Publisher.Emit(ev)
		}
	}
}

func (self *Service) translatePacket(dev *rfx.Device, packet rfx.Packet) *pubsub.Event {
	var ev *pubsub.Event
	switch p := packet.(type) {
	case *rfx.Status:
		// no event emitted
		self.lastState = p.String()
		log.Println(p)

	case *rfx.Temp:
		source := fmt.Sprintf("rfxcom.%s", strings.ToLower(p.Address()))
		fields := pubsub.Fields{
			"source":  source,
			"address": p.Address(),
			"temp":    p.Temp,
			"battery": p.Battery,
			"signal":  p.RssiPercent(),
		}
		ev = pubsub.NewEvent("temp", fields)
		self.announce(p.Address(), p.Type(), "temperature,battery,rssi", ev)

	case *rfx.TempHumid:
		source := fmt.Sprintf("rfxcom.%s", strings.ToLower(p.Address()))
		fields := pubsub.Fields{
			"source":   source,
			"address":  p.Address(),
			"temp":     p.Temp,
			"humidity": p.Humidity,
			"status":   p.StatusString(),
			"battery":  p.Battery,
			"signal":   p.RssiPercent(),
		}
		ev = pubsub.NewEvent("temp", fields)
		self.announce(p.Address(), p.Type(), "temperature,humidity,battery,rssi", ev)

	case *rfx.TransmitAck:
		ev = self.handleAck(dev, p)

	default:
		log.Printf("Ignored unhandled packet: %T: %s\n", packet, packet)
	}

	if ev != nil && ev.Device() == "" {
		services.Config.AddDeviceToEvent(ev)
	}

	return ev
}

// Sensors not in the configuration are announced once, so the hub can offer
// creating a device for them.
func (self *Service) announce(address string, model string, features string, ev *pubsub.Event) {
	services.Config.AddDeviceToEvent(ev)
	if ev.Device() != "" {
		return
	}
	if self.announced[address] {
		return
	}
	self.announced[address] = true
	fields := pubsub.Fields{
		"source":   ev.Source(),
		"address":  address,
		"model":    model,
		"features": features,
	}
	log.Printf("New sensor detected: %s (%s)", address, model)
	services.Publisher.Emit(pubsub.NewEvent("announce", fields))
}

// Handle a transmit acknowledgement for the inflight packet. The
// transceiver NACKs packets it couldn't transmit - those are retried after
// a short wait.
func (self *Service) handleAck(dev *rfx.Device, p *rfx.TransmitAck) *pubsub.Event {
	var pending *transmission
	select {
	case pending = <-self.inflight:
	default:
		log.Printf("Unexpected ack: %s", p)
		return nil
	}

	if !p.OK() {
		log.Printf("Transmit failed: %s, retrying in %s", p, retryDelay)
		time.AfterFunc(retryDelay, func() { self.resend(dev, pending) })
		return nil
	}

	fields := pubsub.Fields{
		"device":  pending.event.Device(),
		"command": pending.event.Command(),
	}
	return pubsub.NewEvent("ack", fields)
}

// Translate command messages into raw transceiver packets
func (self *Service) translateCommand(ev *pubsub.Event) (*rfx.Raw, error) {
	data := ev.StringField("packet")
	if data == "" {
		// command not for us
		return nil, nil
	}
	pkt, err := rfx.NewRaw(data)
	if err != nil {
		return nil, err
	}
	pkt.SetSeq(self.nextSeq())
	return pkt, nil
}

func (self *Service) transmitCommands(cmds <-chan *pubsub.Event) {
	for ev := range cmds {
		pkt, err := self.translateCommand(ev)
		if err != nil {
			log.Println("Couldn't translate command:", err)
			continue
		}
		if pkt == nil {
			// command not translated
			continue
		}
		// one transmit in flight at a time: the previous transmission
		// holds the slot until its ack arrives
		self.inflight <- &transmission{event: ev, packet: pkt}
		dev := self.device()
		if dev == nil {
			log.Println("Transceiver not connected, dropping command")
			self.emptyInflight()
			continue
		}
		if err := dev.Send(pkt); err != nil {
			log.Println("Error sending:", err)
			self.emptyInflight()
			continue
		}
	}
}

// Resend a NACKed transmission, unless the connection was reopened in the
// meantime - a retry on the old connection would pair with an ack on the
// new one.
func (self *Service) resend(dev *rfx.Device, pending *transmission) {
	if self.device() != dev {
		log.Println("Reconnected, dropping retry")
		return
	}
	if err := dev.Send(pending.packet); err != nil {
		log.Println("Error resending:", err)
		return
	}
	self.inflight <- pending
}

func getStatus(dev *rfx.Device) {
	log.Println("Getting status")
	status := &rfx.Status{}
	if err := dev.Send(status); err != nil {
		log.Println("Error sending packet:", err)
	}
}

func defaultDevName() string {
	matches, _ := filepath.Glob("/dev/serial/by-id/usb-RFXCOM_RFXtrx433_*-if00-port0")
	if len(matches) > 0 {
		return matches[0]
	}
	return ""
}

func (self *Service) emptyInflight() {
	for {
		select {
		case <-self.inflight:
		default:
			return
		}
	}
}

func (self *Service) QueryHandlers() services.QueryHandlers {
	return services.QueryHandlers{
		"status": services.TextHandler(self.queryStatus),
		"help":   services.StaticHandler("status: get transceiver status"),
	}
}

func (self *Service) queryStatus(q services.Question) string {
	if self.lastState == "" {
		return fmt.Sprintf("packets received: %d", self.received)
	}
	return fmt.Sprintf("%s\npackets received: %d", self.lastState, self.received)
}

func (self *Service) Run() error {
	self.inflight = make(chan *transmission, 1)
	self.announced = map[string]bool{}

	devname := services.Config.Rfxcom.Device
	if devname == "" {
		devname = defaultDevName()
	}
	if devname == "" {
		return fmt.Errorf("rfxcom device not found")
	}

	cmds := services.Subscriber.Subscribe(pubsub.Prefix("command"))
	go self.transmitCommands(cmds)

	for {
		dev, err := rfx.Open(devname, services.Config.Rfxcom.Debug)
		if err != nil {
			log.Println("Error opening device:", err)
			time.Sleep(10 * time.Second)
			continue
		}
		log.Println("Connected")
		self.setDevice(dev)

		// get device status after the post-reset settle delay
		timer := time.AfterFunc(settleDelay, func() { getStatus(dev) })

		self.readEvents(dev)

		log.Println("Disconnected")
		self.setDevice(nil)
		timer.Stop()
		dev.Close()

		self.emptyInflight()
	}
}
