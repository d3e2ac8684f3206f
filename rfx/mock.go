package rfx

type MockSerialPort struct {
	replay  [][]byte
	Written [][]byte
}

func NewMockSerialPort(replay [][]byte) *MockSerialPort {
	self := &MockSerialPort{
		replay: replay,
	}
	return self
}

// NewMockDevice wraps a MockSerialPort in a Device for testing. The port is
// returned too, to replay reads and inspect writes.
func NewMockDevice(replay [][]byte) (*Device, *MockSerialPort) {
	port := NewMockSerialPort(replay)
	return &Device{ser: port}, port
}

func (self *MockSerialPort) Read(b []byte) (int, error) {
	data := self.replay[0]
	self.replay = self.replay[1:]
	copy(b, data)
	return len(data), nil
}

func (self *MockSerialPort) Write(b []byte) (int, error) {
	self.Written = append(self.Written, b)
	return len(b), nil
}

func (self *MockSerialPort) Close() error {
	return nil
}
