package rfx

// Struct for the interface Reset command. Stops RF reception for up to 10
// seconds; terminated by a following GetStatus.
type Reset struct {
}

func (self *Reset) Send() []byte {
	return []byte{0x0d, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
}
