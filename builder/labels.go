// Package builder provides label schemes for fixture nodes.
package builder

import (
	"fmt"
	"strconv"
)

// LabelFn generates a node label from its zero-based index.
// It must be pure and deterministic.
type LabelFn func(idx int) string

// DecimalLabel returns the decimal string of idx, e.g. 0→"0", 42→"42".
func DecimalLabel(idx int) string {
	return strconv.Itoa(idx)
}

// LetterLabel returns the uppercase Latin letter for idx in [0..25].
// Panics if idx is out of range.
func LetterLabel(idx int) string {
	if idx < 0 || idx > 25 {
		panic(fmt.Sprintf("LetterLabel: idx must be in [0,25], got %d", idx))
	}

	return string('A' + rune(idx))
}

// ExcelColumnLabel returns the spreadsheet-style column name for idx,
// e.g. 0→"A", 25→"Z", 26→"AA". Panics if idx < 0.
func ExcelColumnLabel(idx int) string {
	if idx < 0 {
		panic(fmt.Sprintf("ExcelColumnLabel: idx must be ≥ 0, got %d", idx))
	}
	var runes []rune
	for i := idx; i >= 0; i = i/26 - 1 {
		runes = append(runes, rune('A'+(i%26)))
	}
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}

	return string(runes)
}

// PrefixedLabel returns prefix + decimal index, e.g. "node0", "node1", ...
func PrefixedLabel(prefix string) LabelFn {
	return func(idx int) string {
		return prefix + strconv.Itoa(idx)
	}
}

// NamedLabels cycles through names, appending the round number after the
// first pass: "John", "Tina", "John1", "Tina1", ... Panics on an empty list.
func NamedLabels(names ...string) LabelFn {
	if len(names) == 0 {
		panic("NamedLabels: no names")
	}
	list := append([]string(nil), names...)

	return func(idx int) string {
		name := list[idx%len(list)]
		if round := idx / len(list); round > 0 {
			return name + strconv.Itoa(round)
		}

		return name
	}
}
