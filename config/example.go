package config

var ExampleYaml = `
devices:
  temp.garden:
    name: Garden
    group: outside
    location: Garden
    address: th9 0xFFFF
  temp.hall:
    name: Hallway
    group: downstairs
    location: Hall
    address: th1 0x9603
  temp.attic:
    name: Attic
    caps: [temp]
    address: t2 0x1A2B
protocols:
  xpl:
    bnz-rfxlan.attic: temp.attic
rfxcom:
  device: /dev/rfxcom
endpoints:
  mqtt:
    broker: tcp://127.0.0.1:1883
  api: :8723
xpl:
  instance: rfxgate
  broadcast: 255.255.255.255:3865
datalogger:
  path: /tmp/rfxgate-data
`

var ExampleConfig, _ = OpenRaw([]byte(ExampleYaml))
