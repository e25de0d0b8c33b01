// Package dfs provides helper functions shared by traversal and cycle
// canonicalisation: slice search, reversal, comparison and Booth's
// minimal-rotation algorithm.
package dfs

import (
	"cmp"
	"strings"
)

// IndexOf returns the first index of val in s, or -1 if not found.
// Time Complexity: O(n).
func IndexOf[T comparable](s []T, val T) int {
	for i, x := range s {
		if x == val {
			return i
		}
	}

	return -1
}

// Compare lexicographically compares two equal-length slices a and b.
// Returns -1 if a < b, 0 if equal, +1 if a > b.
// Time Complexity: O(n).
func Compare[T cmp.Ordered](a, b []T) int {
	for i := range a {
		if c := cmp.Compare(a[i], b[i]); c != 0 {
			return c
		}
	}

	return 0
}

// JoinSig concatenates the elements of c with commas, producing a single
// string signature.
func JoinSig(c []string) string {
	return strings.Join(c, ",")
}

// MinimalRotation implements Booth's algorithm to find the lexicographically
// minimal rotation of s. It returns a new slice of length len(s).
//
// Algorithm overview:
//  1. Duplicate the sequence to length 2n.
//  2. Maintain failure links f initialised to -1.
//  3. Track candidate k; for j in [1, 2n) adjust k based on comparisons.
//  4. Extract the rotation starting at k.
//
// Time Complexity: O(n).
func MinimalRotation[T cmp.Ordered](s []T) []T {
	n := len(s)
	doubled := make([]T, 0, 2*n)
	doubled = append(doubled, s...)
	doubled = append(doubled, s...)
	f := make([]int, 2*n)
	for i := range f {
		f[i] = -1
	}
	k := 0
	for j := 1; j < 2*n; j++ {
		i := f[j-k-1]
		for i != -1 && doubled[j] != doubled[k+i+1] {
			if doubled[j] < doubled[k+i+1] {
				k = j - i - 1
			}
			i = f[i]
		}
		if doubled[j] != doubled[k+i+1] { // i == -1
			if doubled[j] < doubled[k] {
				k = j
			}
			f[j-k] = -1
		} else {
			f[j-k] = i + 1
		}
	}

	res := make([]T, n)
	copy(res, doubled[k:k+n])

	return res
}
