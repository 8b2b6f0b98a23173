/*
NAME
  tags.go

DESCRIPTION
  tags.go defines the SMUSH four-character chunk tags and their big-endian
  uint32 encoding.

AUTHOR
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package smush

import "fmt"

// Tag is a four-character chunk identifier encoded as a big-endian uint32,
// e.g. MakeTag('A','N','I','M') == 0x414E494D.
type Tag uint32

// MakeTag builds a Tag from four characters, matching the MKTAG macro used
// throughout the reference decoder.
func MakeTag(a, b, c, d byte) Tag {
	return Tag(a)<<24 | Tag(b)<<16 | Tag(c)<<8 | Tag(d)
}

// Outer container tags.
var (
	TagANIM = MakeTag('A', 'N', 'I', 'M')
	TagSANM = MakeTag('S', 'A', 'N', 'M')
	TagSAUD = MakeTag('S', 'A', 'U', 'D')
)

// Header tags.
var (
	TagAHDR = MakeTag('A', 'H', 'D', 'R')
	TagSHDR = MakeTag('S', 'H', 'D', 'R')
	TagFLHD = MakeTag('F', 'L', 'H', 'D')
	TagBl16 = MakeTag('B', 'l', '1', '6')
	TagWave = MakeTag('W', 'a', 'v', 'e')
)

// Frame and sub-chunk tags.
var (
	TagANNO = MakeTag('A', 'N', 'N', 'O')
	TagFRME = MakeTag('F', 'R', 'M', 'E')
	TagFOBJ = MakeTag('F', 'O', 'B', 'J')
	TagFTCH = MakeTag('F', 'T', 'C', 'H')
	TagIACT = MakeTag('I', 'A', 'C', 'T')
	TagNPAL = MakeTag('N', 'P', 'A', 'L')
	TagSTOR = MakeTag('S', 'T', 'O', 'R')
	TagTEXT = MakeTag('T', 'E', 'X', 'T')
	TagTRES = MakeTag('T', 'R', 'E', 'S')
	TagXPAL = MakeTag('X', 'P', 'A', 'L')
)

// String renders a Tag back to its four ASCII characters for logging.
func (t Tag) String() string {
	return fmt.Sprintf("%c%c%c%c", byte(t>>24), byte(t>>16), byte(t>>8), byte(t))
}
