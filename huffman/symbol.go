// Package huffman builds prefix-free Huffman codes for weighted alphabets and
// encodes and decodes symbol sequences with them.
//
// Trees are stored as arenas of nodes addressed by index and are immutable once
// built, so a Tree or CodeTable can be shared between goroutines without locking.
package huffman

import (
	"fmt"
	"math"
)

// Symbol is one alphabet unit
type Symbol = rune

// WeightedSymbol pairs a symbol with its frequency (a count or a probability)
type WeightedSymbol struct {
	Symbol Symbol
	Freq   float64
}

// DemoText is the sample text encoded by the demo alphabet
const DemoText = "abcde"

// DemoAlphabet returns the classic six-symbol example alphabet
func DemoAlphabet() []WeightedSymbol {
	return []WeightedSymbol{
		{Symbol: 'a', Freq: 5},
		{Symbol: 'b', Freq: 9},
		{Symbol: 'c', Freq: 12},
		{Symbol: 'd', Freq: 13},
		{Symbol: 'e', Freq: 16},
		{Symbol: 'f', Freq: 45},
	}
}

// Alphabet zips parallel symbol and frequency slices into an alphabet
func Alphabet(symbols []Symbol, freqs []float64) ([]WeightedSymbol, error) {
	if len(symbols) != len(freqs) {
		return nil, fmt.Errorf("%w: %d symbols but %d frequencies", ErrInvalidWeight, len(symbols), len(freqs))
	}
	out := make([]WeightedSymbol, len(symbols))
	for i := range symbols {
		out[i] = WeightedSymbol{Symbol: symbols[i], Freq: freqs[i]}
	}
	if err := validateAlphabet(out); err != nil {
		return nil, err
	}
	return out, nil
}

// CountFrequencies tallies the symbols of text in order of first appearance
func CountFrequencies(text string) []WeightedSymbol {
	index := make(map[Symbol]int)
	var out []WeightedSymbol
	for _, r := range text {
		i, ok := index[r]
		if !ok {
			i = len(out)
			index[r] = i
			out = append(out, WeightedSymbol{Symbol: r})
		}
		out[i].Freq++
	}
	return out
}

func validateAlphabet(symbols []WeightedSymbol) error {
	if len(symbols) == 0 {
		return ErrEmptyAlphabet
	}
	seen := make(map[Symbol]struct{}, len(symbols))
	for i, ws := range symbols {
		if ws.Freq < 0 || math.IsNaN(ws.Freq) || math.IsInf(ws.Freq, 0) {
			return fmt.Errorf("%w: %q has frequency %v (index %d)", ErrInvalidWeight, ws.Symbol, ws.Freq, i)
		}
		if _, dup := seen[ws.Symbol]; dup {
			return fmt.Errorf("%w: %q (index %d)", ErrDuplicateSymbol, ws.Symbol, i)
		}
		seen[ws.Symbol] = struct{}{}
	}
	return nil
}
