package rfxcom

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rfxgate/rfxgate/config"
	"github.com/rfxgate/rfxgate/pubsub"
	"github.com/rfxgate/rfxgate/pubsub/dummy"
	"github.com/rfxgate/rfxgate/rfx"
	"github.com/rfxgate/rfxgate/services"
)

func setup() (*Service, *dummy.Publisher) {
	services.Config = config.ExampleConfig
	pub := &dummy.Publisher{}
	services.Publisher = pub
	service := &Service{
		inflight:  make(chan *transmission, 1),
		announced: map[string]bool{},
	}
	return service, pub
}

func Example_translateTempHumid() {
	service, _ := setup()
	pkt, _ := rfx.Parse([]byte{0x0a, 0x52, 0x09, 0x07, 0xff, 0xff, 0x00, 0xd2, 0x36, 0x01, 0x59})
	ev := service.translatePacket(nil, pkt)
	loc, _ := time.LoadLocation("UTC")
	ev.Timestamp = time.Date(2014, 1, 2, 3, 4, 5, 987654321, loc)
	fmt.Println(ev)
	// Output:
	// {"address":"th9 0xFFFF","battery":90,"device":"temp.garden","humidity":54,"signal":31,"source":"rfxcom.th9 0xffff","status":"comfort","temp":21,"timestamp":"2014-01-02 03:04:05.987","topic":"temp"}
}

func Example_translateTemp() {
	service, _ := setup()
	pkt, _ := rfx.Parse([]byte{0x08, 0x50, 0x02, 0x2a, 0x1a, 0x2b, 0x00, 0xd2, 0x69})
	ev := service.translatePacket(nil, pkt)
	loc, _ := time.LoadLocation("UTC")
	ev.Timestamp = time.Date(2014, 1, 2, 3, 4, 5, 987654321, loc)
	fmt.Println(ev)
	// Output:
	// {"address":"t2 0x1A2B","battery":90,"device":"temp.attic","signal":37,"source":"rfxcom.t2 0x1a2b","temp":21,"timestamp":"2014-01-02 03:04:05.987","topic":"temp"}
}

func TestTranslateStatus(t *testing.T) {
	service, _ := setup()
	pkt, _ := rfx.Parse([]byte{0x0d, 0x01, 0x00, 0x01, 0x02, 0x53, 0x3e, 0x00, 0x0c, 0x2f, 0x01, 0x01, 0x00, 0x00})
	ev := service.translatePacket(nil, pkt)
	assert.Nil(t, ev)
	assert.Contains(t, service.lastState, "433.92MHz")
}

func TestAnnounceUnknownSensor(t *testing.T) {
	service, pub := setup()
	frame := []byte{0x0a, 0x52, 0x01, 0x07, 0x96, 0x04, 0x00, 0xd2, 0x36, 0x01, 0x59}

	pkt, _ := rfx.Parse(frame)
	ev := service.translatePacket(nil, pkt)
	assert.Equal(t, "", ev.Device())
	assert.Len(t, pub.Events, 1)
	announce := pub.Events[0]
	assert.Equal(t, "announce", announce.Topic)
	assert.Equal(t, "th1 0x9604", announce.StringField("address"))
	assert.Equal(t, "THGN122/123, THGN132, THGR122/228/238/268", announce.StringField("model"))
	assert.Equal(t, "temperature,humidity,battery,rssi", announce.StringField("features"))

	// announced once only
	pkt, _ = rfx.Parse(frame)
	service.translatePacket(nil, pkt)
	assert.Len(t, pub.Events, 1)
}

func TestConfiguredSensorNotAnnounced(t *testing.T) {
	service, pub := setup()
	pkt, _ := rfx.Parse([]byte{0x0a, 0x52, 0x09, 0x07, 0xff, 0xff, 0x00, 0xd2, 0x36, 0x01, 0x59})
	ev := service.translatePacket(nil, pkt)
	assert.Equal(t, "temp.garden", ev.Device())
	assert.Len(t, pub.Events, 0)
}

func TestHandleAck(t *testing.T) {
	service, _ := setup()
	cmd := pubsub.NewCommand("device.x", "send")
	pkt, _ := rfx.NewRaw("14000000")
	service.inflight <- &transmission{event: cmd, packet: pkt}

	ack, _ := rfx.Parse([]byte{0x04, 0x02, 0x01, 0x00, 0x00})
	ev := service.translatePacket(nil, ack)
	assert.NotNil(t, ev)
	assert.Equal(t, "ack", ev.Topic)
	assert.Equal(t, "device.x", ev.Device())
	assert.Equal(t, "send", ev.Command())
}

func TestTransmitWaitsForAck(t *testing.T) {
	service, _ := setup()
	dev, port := rfx.NewMockDevice(nil)
	service.setDevice(dev)

	// a transmission already awaiting its ack
	first := pubsub.NewCommand("device.x", "send")
	pkt, _ := rfx.NewRaw("14000000")
	service.inflight <- &transmission{event: first, packet: pkt}

	second := pubsub.NewCommand("device.y", "send")
	second.SetField("packet", "15000000")
	cmds := make(chan *pubsub.Event, 1)
	cmds <- second
	close(cmds)

	done := make(chan bool)
	go func() {
		service.transmitCommands(cmds)
		done <- true
	}()

	// nothing may be written until the first transmission is acked
	time.Sleep(50 * time.Millisecond)
	assert.Len(t, port.Written, 0)

	ack, _ := rfx.Parse([]byte{0x04, 0x02, 0x01, 0x00, 0x00})
	ev := service.translatePacket(dev, ack)
	assert.NotNil(t, ev)
	<-done
	assert.Equal(t, [][]byte{{0x04, 0x15, 0x00, 0x00, 0x01}}, port.Written)
}

func TestHandleNack(t *testing.T) {
	service, _ := setup()
	dev, port := rfx.NewMockDevice(nil)
	service.setDevice(dev)

	cmd := pubsub.NewCommand("device.x", "send")
	pkt, _ := rfx.NewRaw("14000000")
	pending := &transmission{event: cmd, packet: pkt}
	service.inflight <- pending

	nack, _ := rfx.Parse([]byte{0x04, 0x02, 0x01, 0x00, 0x02})
	ev := service.translatePacket(dev, nack)
	// no ack event, and the slot is freed until the retry
	assert.Nil(t, ev)
	assert.Len(t, service.inflight, 0)

	// the retry resends the packet and requeues the transmission
	service.resend(dev, pending)
	assert.Equal(t, [][]byte{pkt.Send()}, port.Written)
	assert.Len(t, service.inflight, 1)
	assert.Equal(t, pending, <-service.inflight)
}

func TestResendSkippedAfterReconnect(t *testing.T) {
	service, _ := setup()
	old, oldPort := rfx.NewMockDevice(nil)
	dev, _ := rfx.NewMockDevice(nil)
	service.setDevice(dev)

	cmd := pubsub.NewCommand("device.x", "send")
	pkt, _ := rfx.NewRaw("14000000")
	service.resend(old, &transmission{event: cmd, packet: pkt})

	assert.Len(t, oldPort.Written, 0)
	assert.Len(t, service.inflight, 0)
}

func TestHandleUnexpectedAck(t *testing.T) {
	service, _ := setup()
	ack, _ := rfx.Parse([]byte{0x04, 0x02, 0x01, 0x00, 0x00})
	ev := service.translatePacket(nil, ack)
	assert.Nil(t, ev)
}

func TestTranslateCommand(t *testing.T) {
	service, _ := setup()

	// commands without a packet field are not ours
	ev := pubsub.NewCommand("light.kitchen", "on")
	pkt, err := service.translateCommand(ev)
	assert.NoError(t, err)
	assert.Nil(t, pkt)

	ev = pubsub.NewCommand("device.x", "send")
	ev.SetField("packet", "14000000")
	pkt, err = service.translateCommand(ev)
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x04, 0x14, 0x00, 0x00, 0x01}, pkt.Send())

	ev.SetField("packet", "zz")
	_, err = service.translateCommand(ev)
	assert.Error(t, err)
}

func TestSeqWraps(t *testing.T) {
	service, _ := setup()
	service.seq = 255
	assert.Equal(t, byte(0), service.nextSeq())
	assert.Equal(t, byte(1), service.nextSeq())
}
