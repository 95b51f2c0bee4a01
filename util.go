package h1

import "golang.org/x/exp/constraints"

const upperhex = "0123456789ABCDEF"

// Roundup rounds n up to the nearest multiple of align, which must be a
// power of two.
func Roundup[T constraints.Integer](n, align T) T { return (n + (align - 1)) &^ (align - 1) }
