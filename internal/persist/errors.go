package persist

import "errors"

var (
	// ErrInvalidSignature means the medium does not hold a saved game.
	// Nothing may be applied from it.
	ErrInvalidSignature = errors.New("persist: invalid signature")

	// ErrStorageFault wraps a read or write failure of the medium.
	// Data written after the fault must not be trusted.
	ErrStorageFault = errors.New("persist: storage fault")

	// ErrCorrupt means the record carries a valid signature but values
	// that cannot describe a game.
	ErrCorrupt = errors.New("persist: corrupt record")
)
