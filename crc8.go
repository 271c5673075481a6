// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package onewire

// CRC8 computes the Dallas/Maxim 1-Wire CRC-8 (polynomial x^8+x^5+x^4+1,
// reflected form 0x8C) over data. ReadScratchpad callers are expected to
// verify the scratchpad's trailing CRC byte against CRC8 of the preceding
// bytes before trusting the reading.
func CRC8(data []byte) byte {
	var crc byte
	for _, b := range data {
		crc ^= b
		for i := 0; i < 8; i++ {
			if crc&1 != 0 {
				crc = (crc >> 1) ^ 0x8C
			} else {
				crc >>= 1
			}
		}
	}
	return crc
}
