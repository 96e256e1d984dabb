package cpu

// Status register bits. All other bits are reserved.
const (
	STATUS_ZERO     = uint8(1 << 1) // Z: last result was zero.
	STATUS_NEGATIVE = uint8(1 << 7) // N: bit 7 of last result was set.
)

// Flags is the decoded view of the defined status register bits.
type Flags struct {
	Zero     bool
	Negative bool
}

// FlagsOf computes the flags for a result byte.
func FlagsOf(result uint8) Flags {
	return Flags{
		Zero:     result == 0,
		Negative: result&0x80 != 0,
	}
}

// FlagsFrom decodes the flags held in a raw status byte.
func FlagsFrom(status uint8) Flags {
	return Flags{
		Zero:     status&STATUS_ZERO != 0,
		Negative: status&STATUS_NEGATIVE != 0,
	}
}

// Apply merges the flags into a raw status byte, leaving reserved bits untouched.
func (fl Flags) Apply(status uint8) uint8 {
	status &^= STATUS_ZERO | STATUS_NEGATIVE
	if fl.Zero {
		status |= STATUS_ZERO
	}
	if fl.Negative {
		status |= STATUS_NEGATIVE
	}
	return status
}

// String returns the flags as letters, upper case when set.
func (fl Flags) String() string {
	v := []byte("nz")
	if fl.Negative {
		v[0] = 'N'
	}
	if fl.Zero {
		v[1] = 'Z'
	}
	return string(v)
}
