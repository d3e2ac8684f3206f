// The rfxgate RFXCOM sensor gateway
//
// Features
//
// - Bridges RFXCOM RF transceivers (RFXtrx433 USB, RFXLAN) to an MQTT
// event bus
//
// - Decodes temperature/humidity sensor telemetry (temperature,
// humidity, battery level, RSSI)
//
// - Announces newly heard sensors so they can be added to the
// configuration
//
// - xPL bridge for RFXLAN transceivers (sensor.basic messages)
//
// - REST API for device state and live event feeds
//
// - Telemetry logging to disk
//
// - Lightweight, small memory footprint (runs on the Raspberry Pi)
//
// Devices supported
//
// - rfxcom RFXtrx433 USB transceiver (http://www.rfxcom.com/)
//
// - rfxcom RFXLAN transceiver with xPL firmware
//
// - Oregon Scientific, Cresta, La Crosse and compatible 433.92MHz
// temperature/humidity sensors
package rfxgate
