package rfx

import (
	"github.com/pkg/errors"
)

// Interface representing a received packet.
type Packet interface {
	// Deserialize packet from wire format
	Receive(data []byte)
}

// Interface representing a transmittable packet.
type OutPacket interface {
	// Serialize packet to wire format
	Send() []byte
}

// Parse a packet from a byte array.
func Parse(data []byte) (Packet, error) {
	if data[0] == 0 {
		// ignore the empty packet - not an error
		return nil, nil
	}
	dlen := len(data) - 1
	if int(data[0]) != dlen {
		return nil, errors.Errorf("packet unexpected length: %d != %d", dlen, int(data[0]))
	}

	var pkt Packet
	switch data[1] {
	case 0x01:
		if dlen != 13 {
			return nil, errors.New("Status packet incorrect length")
		}
		pkt = &Status{}
	case 0x02:
		if dlen != 4 {
			return nil, errors.New("TransmitAck packet incorrect length")
		}
		pkt = &TransmitAck{}
	case 0x50:
		if dlen != 8 {
			return nil, errors.New("Temp packet incorrect length")
		}
		pkt = &Temp{}
	case 0x52:
		if dlen != 10 {
			return nil, errors.New("TempHumid packet incorrect length")
		}
		pkt = &TempHumid{}
	default:
		pkt = &Unknown{}
	}

	pkt.Receive(data)
	return pkt, nil
}
