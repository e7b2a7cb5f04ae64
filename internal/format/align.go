package format

// Alignment arithmetic for erase/program sector ranges. Alignments are not
// required to be powers of two (flash sector sizes frequently are not), so
// these use plain division rather than masking.

// AlignDown returns n aligned down to the previous multiple of alignment.
func AlignDown(n, alignment int) int {
	return (n / alignment) * alignment
}

// AlignUp returns n aligned up to the next multiple of alignment.
func AlignUp(n, alignment int) int {
	return ((n + alignment - 1) / alignment) * alignment
}
