package rfx

import (
	"encoding/hex"
	"fmt"
)

// Struct for packet types not decoded by this library.
type Unknown struct {
	Data []byte
}

func (self *Unknown) Receive(data []byte) {
	self.Data = data
}

// Type of the packet.
func (self *Unknown) Type() byte {
	if len(self.Data) > 1 {
		return self.Data[1]
	}
	return 0
}

func (self *Unknown) String() string {
	return fmt.Sprintf("Unknown: %s", hex.EncodeToString(self.Data))
}
