package ble

// Every command sent to the fixture starts with this magic byte.
const frameMagic = 0x3C

// Opcodes understood by the fixture's command characteristic.
const (
	opPowerOff = 0x01
	opSetColor = 0x02
)

// ColorFrame builds the set-color command: [0x3C, 0x02, R, G, B]
func ColorFrame(r, g, b uint8) []byte {
	return []byte{frameMagic, opSetColor, r, g, b}
}

// PowerOffFrame builds the power-off command: [0x3C, 0x01]
func PowerOffFrame() []byte {
	return []byte{frameMagic, opPowerOff}
}
