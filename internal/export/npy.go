// Package export writes height fields in formats other tools can read.
package export

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/OCharnyshevich/terragen/pkg/heightfield"
)

const (
	npyMagic  = "\x93NUMPY"
	npyAlign  = 64
	npyPrefix = len(npyMagic) + 2 + 2 // magic, version, header length
)

// WriteNPY writes g as a NumPy v1.0 array of little-endian float32 with
// shape (Height, Width) in C order.
func WriteNPY(w io.Writer, g *heightfield.Grid) error {
	dict := fmt.Sprintf("{'descr': '<f4', 'fortran_order': False, 'shape': (%d, %d), }", g.Height, g.Width)

	// pad with spaces and a trailing newline to the alignment boundary
	hlen := len(dict) + 1
	if rem := (npyPrefix + hlen) % npyAlign; rem != 0 {
		hlen += npyAlign - rem
	}
	if hlen > math.MaxUint16 {
		return fmt.Errorf("npy header too long: %d bytes", hlen)
	}

	bw := bufio.NewWriter(w)
	var prefix [npyPrefix]byte
	copy(prefix[:], npyMagic)
	prefix[6], prefix[7] = 1, 0
	binary.LittleEndian.PutUint16(prefix[8:], uint16(hlen))

	if _, err := bw.Write(prefix[:]); err != nil {
		return fmt.Errorf("write npy prefix: %w", err)
	}
	header := dict + strings.Repeat(" ", hlen-len(dict)-1) + "\n"
	if _, err := bw.WriteString(header); err != nil {
		return fmt.Errorf("write npy header: %w", err)
	}

	var buf [4]byte
	for _, v := range g.Cells {
		binary.LittleEndian.PutUint32(buf[:], math.Float32bits(float32(v)))
		if _, err := bw.Write(buf[:]); err != nil {
			return fmt.Errorf("write npy data: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush npy: %w", err)
	}
	return nil
}
