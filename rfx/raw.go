package rfx

import (
	"encoding/hex"

	"github.com/pkg/errors"
)

// Struct for a raw transmit packet, given as the frame contents without the
// leading length byte. Used to pass through commands the library does not
// model.
type Raw struct {
	data []byte
}

// Raw packet constructor.
func NewRaw(hexdata string) (*Raw, error) {
	data, err := hex.DecodeString(hexdata)
	if err != nil {
		return nil, errors.Wrap(err, "raw packet")
	}
	if len(data) < 4 {
		return nil, errors.New("raw packet too short")
	}
	if len(data) > MaxFrameLength {
		return nil, errors.New("raw packet too long")
	}
	return &Raw{data: data}, nil
}

// SetSeq sets the frame sequence number (byte 3).
func (self *Raw) SetSeq(seq byte) {
	self.data[3] = seq
}

func (self *Raw) Send() []byte {
	buf := make([]byte, len(self.data)+1)
	buf[0] = byte(len(self.data))
	copy(buf[1:], self.data)
	return buf
}
