// Package srec encodes and decodes Motorola S-record files.
//
// Decoding accepts S1/S2/S3 data records (2, 3 and 4 byte addresses) and
// merges contiguous records into segments. Encoding always emits S3
// records so any 32-bit address space can be represented.
package srec

import (
	"bufio"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	// recordBytes is the default data payload per emitted record.
	recordBytes = 32
)

var (
	// ErrFormat indicates the input is not a well-formed S-record stream.
	ErrFormat = errors.New("srec: malformed record")
	// ErrChecksum indicates a record failed its checksum.
	ErrChecksum = errors.New("srec: checksum mismatch")
)

// Segment is a contiguous run of bytes at an absolute address.
type Segment struct {
	Address uint32
	Data    []byte
}

// checksum computes the S-record checksum: one's complement of the low
// byte of the sum over the count, address and data bytes.
func checksum(b []byte) byte {
	var sum int
	for _, v := range b {
		sum += int(v)
	}
	return byte(^sum)
}

// Decode reads an S-record stream and returns its data segments in file
// order, with contiguous records merged. Header (S0) and count (S5/S6)
// records are skipped; a termination record (S7/S8/S9) ends the stream.
func Decode(r io.Reader) ([]Segment, error) {
	var segs []Segment
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		if len(text) < 4 || text[0] != 'S' {
			return nil, fmt.Errorf("%w: line %d", ErrFormat, line)
		}

		typ := text[1]
		raw, err := hex.DecodeString(text[2:])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrFormat, line, err)
		}
		// count byte covers address + data + checksum
		if len(raw) < 2 || int(raw[0]) != len(raw)-1 {
			return nil, fmt.Errorf("%w: line %d: bad byte count", ErrFormat, line)
		}
		if checksum(raw[:len(raw)-1]) != raw[len(raw)-1] {
			return nil, fmt.Errorf("%w: line %d", ErrChecksum, line)
		}

		var addrLen int
		switch typ {
		case '0', '5', '6':
			continue
		case '1':
			addrLen = 2
		case '2':
			addrLen = 3
		case '3':
			addrLen = 4
		case '7', '8', '9':
			return segs, nil
		default:
			return nil, fmt.Errorf("%w: line %d: unknown type S%c", ErrFormat, line, typ)
		}

		body := raw[1 : len(raw)-1]
		if len(body) < addrLen {
			return nil, fmt.Errorf("%w: line %d: truncated address", ErrFormat, line)
		}
		var addr uint32
		for _, b := range body[:addrLen] {
			addr = addr<<8 | uint32(b)
		}
		data := body[addrLen:]

		// Merge with previous segment when contiguous.
		if n := len(segs); n > 0 && segs[n-1].Address+uint32(len(segs[n-1].Data)) == addr {
			segs[n-1].Data = append(segs[n-1].Data, data...)
		} else {
			segs = append(segs, Segment{Address: addr, Data: append([]byte(nil), data...)})
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return segs, nil
}

// Encode writes the segments as an S-record stream: an S0 header record
// carrying the header text, S3 data records and a terminating S7 record.
func Encode(w io.Writer, segs []Segment, header string) error {
	if err := writeRecord(w, '0', 2, 0, []byte(header)); err != nil {
		return err
	}
	for _, seg := range segs {
		addr := seg.Address
		data := seg.Data
		for len(data) > 0 {
			n := recordBytes
			if n > len(data) {
				n = len(data)
			}
			if err := writeRecord(w, '3', 4, addr, data[:n]); err != nil {
				return err
			}
			addr += uint32(n)
			data = data[n:]
		}
	}
	var entry uint32
	if len(segs) > 0 {
		entry = segs[0].Address
	}
	return writeRecord(w, '7', 4, entry, nil)
}

// writeRecord emits one record with the given type, address width, address
// and payload.
func writeRecord(w io.Writer, typ byte, addrLen int, addr uint32, data []byte) error {
	body := make([]byte, 0, 1+addrLen+len(data)+1)
	body = append(body, byte(1+addrLen+len(data))) // count: addr + data + checksum
	for i := addrLen - 1; i >= 0; i-- {
		body = append(body, byte(addr>>(8*i)))
	}
	body = append(body, data...)
	body = append(body, checksum(body))

	_, err := fmt.Fprintf(w, "S%c%s\n", typ, strings.ToUpper(hex.EncodeToString(body)))
	return err
}
