/*
Package rfx speaks the RFXCOM RFXtrx433 serial wire protocol.

Frames are length-prefixed: a single length byte followed by that many
bytes, of which the first is the packet type. The transceiver is brought
up by sending an interface Reset, waiting for it to settle, then
requesting its Status, which also terminates the post-reset RF silence.

Supported received packets:

- Status (0x01) interface response

- TransmitAck (0x02) transmit acknowledgements

- Temp (0x50) temperature sensors

- TempHumid (0x52) temperature/humidity sensors

Example usage:

	dev, err := rfx.Open("/dev/rfxcom", false)
	if err != nil {
	    panic("Error opening device")
	}

	for {
	    packet, err := dev.Read()
	    if err != nil {
	        continue
	    }
	    fmt.Println("Received", packet)
	}
	dev.Close()
*/
package rfx

import (
	"io"
	"log"
	"time"

	"github.com/pkg/errors"
	"github.com/tarm/serial"
)

// The longest valid frame payload (type 0x03, undecoded RF). Anything
// longer is line noise.
const MaxFrameLength = 36

// Device representing the serial connection to the transceiver.
type Device struct {
	ser   io.ReadWriteCloser
	debug bool
}

// Open the device at the given path and reset the transceiver.
func Open(path string, debug bool) (*Device, error) {
	dev := Device{debug: debug}

	c := &serial.Config{Name: path, Baud: 38400}
	ser, err := serial.OpenPort(c)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}

	if debug {
		dev.ser = LogReadWriteCloser{ser}
	} else {
		dev.ser = ser
	}

	reset := &Reset{}
	if err := dev.Send(reset); err != nil {
		ser.Close()
		return nil, errors.Wrap(err, "sending reset")
	}

	return &dev, nil
}

// Close the device.
func (self *Device) Close() {
	self.ser.Close()
}

// Read a packet from the device. Blocks until data is available.
func (self *Device) Read() (Packet, error) {
	buf := make([]byte, 257)
	for {
		// read length
		i, err := self.ser.Read(buf[0:1])
		if i == 0 && err == io.EOF {
			// empty read, sleep a bit and recheck
			time.Sleep(time.Millisecond * 200)
			continue
		}
		if err != nil {
			return nil, err
		}
		if i == 0 {
			continue
		}

		l := int(buf[0])
		if l > MaxFrameLength {
			// garbage on the line - resync on the next byte
			return nil, errors.Errorf("bad frame length: %d", l)
		}

		// read rest of data
		buf = buf[0 : l+1]
		for read := 0; read < l; read += i {
			i, err = self.ser.Read(buf[read+1:])
			if i == 0 && err == io.EOF {
				time.Sleep(time.Millisecond * 200)
				continue
			}
			if err != nil {
				return nil, err
			}
		}

		// parse packet
		packet, err := Parse(buf)
		if self.debug {
			log.Printf("Parse(%#v) = (%#v, %v)\n", buf, packet, err)
		}
		return packet, err
	}
}

// Send (transmit) a packet.
func (self *Device) Send(p OutPacket) error {
	buf := p.Send()
	_, err := self.ser.Write(buf)
	return err
}
