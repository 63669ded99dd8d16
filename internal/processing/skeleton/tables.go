package skeleton

import "skeleton-workbench/internal/processing/neighbors"

// KMM: contour points whose neighbourhood (2, 3 or 4 sticking neighbours)
// marks them for unconditional removal.
var kmmContourTable = neighbors.Table{
	0b0001000100001011,
	0b0000000000001010,
	0b0000000000000000,
	0b1000000010001000,
	0b0000000000000000,
	0b0000000000000000,
	0b0000000000000000,
	0b1000000010000000,
	0b0001000100000000,
	0b0000000000000000,
	0b0000000000000000,
	0b0000000000000000,
	0b1101000000000000,
	0b0000000000000000,
	0b1100000000000000,
	0b1000000000000000,
}

// KMM: edge and corner points that can be removed without breaking
// connectivity.
var kmmDeletionTable = neighbors.Table{
	0b0001010100001111,
	0b0000111100001111,
	0b0000000000000000,
	0b1000111110001111,
	0b0101010100000101,
	0b1101111111011111,
	0b0101010100000101,
	0b1101111111011111,
	0b0001010100000101,
	0b0000010100000101,
	0b0000000000000000,
	0b0000010100000101,
	0b1101010100000101,
	0b1101111111011111,
	0b1101010100000101,
	0b1101111111011111,
}

// K3M border detection (phase 0) and the one-pixel-width cleanup.
var k3mBorderTable = neighbors.Table{
	0b0001001100001011,
	0b0000000010001011,
	0b0000000000000000,
	0b1000000010001011,
	0b0000000000000000,
	0b0000000000000000,
	0b1000000000000000,
	0b1000000010001011,
	0b0101000100000001,
	0b0000000000000001,
	0b0000000000000000,
	0b0000000000000001,
	0b1101000100000001,
	0b0000000000000001,
	0b1101000100000001,
	0b1101000111011110,
}

// K3M phases 1..5: border points with 3, 3-4, 3-5, 3-6 and 3-7 sticking
// neighbours.
var k3mPhaseTables = [5]neighbors.Table{
	{
		0b0000000100000010,
		0b0000000000001000,
		0b0000000000000000,
		0b0000000010000000,
		0b0000000000000000,
		0b0000000000000000,
		0b0000000000000000,
		0b1000000000000000,
		0b0001000000000000,
		0b0000000000000000,
		0b0000000000000000,
		0b0000000000000000,
		0b0100000000000000,
		0b0000000000000000,
		0b1000000000000000,
		0b0000000000000000,
	},
	{
		0b0000000100000011,
		0b0000000000001010,
		0b0000000000000000,
		0b0000000010001000,
		0b0000000000000000,
		0b0000000000000000,
		0b0000000000000000,
		0b1000000010000000,
		0b0001000100000000,
		0b0000000000000000,
		0b0000000000000000,
		0b0000000000000000,
		0b0101000000000000,
		0b0000000000000000,
		0b1100000000000000,
		0b1000000000000000,
	},
	{
		0b0000000100000011,
		0b0000000000001011,
		0b0000000000000000,
		0b0000000010001010,
		0b0000000000000000,
		0b0000000000000000,
		0b0000000000000000,
		0b1000000010001000,
		0b0001000100000001,
		0b0000000000000000,
		0b0000000000000000,
		0b0000000000000000,
		0b0101000100000000,
		0b0000000000000000,
		0b1101000000000000,
		0b1100000010000000,
	},
	{
		0b0000000100000011,
		0b0000000000001011,
		0b0000000000000000,
		0b0000000010001011,
		0b0000000000000000,
		0b0000000000000000,
		0b0000000000000000,
		0b1000000010001010,
		0b0001000100000001,
		0b0000000000000001,
		0b0000000000000000,
		0b0000000000000000,
		0b0101000100000001,
		0b0000000000000000,
		0b1101000100000000,
		0b1101000011001000,
	},
	{
		0b0000000100000011,
		0b0000000000001011,
		0b0000000000000000,
		0b0000000010001011,
		0b0000000000000000,
		0b0000000000000000,
		0b0000000000000000,
		0b1000000010001010,
		0b0001000100000001,
		0b0000000000000001,
		0b0000000000000000,
		0b0000000000000001,
		0b0101000100000001,
		0b0000000000000000,
		0b1101000100000001,
		0b1101000011011010,
	},
}
