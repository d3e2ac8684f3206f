package rfx

import (
	"fmt"
)

func ExampleRead() {
	replay := [][]byte{
		{0x0d},
		{0x01, 0x00, 0x01},
		{0x02, 0x53, 0x3e, 0x00},
		{0x0c, 0x2f, 0x01, 0x01},
		{0x00, 0x00},
		{0x00, 0x00},
	}
	dev, _ := NewMockDevice(replay)
	packet, err := dev.Read()
	fmt.Printf("%v %v\n", packet, err)
	packet, err = dev.Read()
	fmt.Printf("%v %v\n", packet, err)
	// Output:
	// Status: type: 433.92MHz transceiver: 83 firmware: 62 protocols: ac, arc, hideki, homeeasy, lacrosse, oregon, x10 <nil>
	// <nil> <nil>
}
