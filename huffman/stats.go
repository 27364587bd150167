package huffman

import (
	"fmt"
	"math"
)

// Stats summarises how well a code table fits an alphabet
type Stats struct {
	Symbols       int     // alphabet size
	TotalWeight   float64 // sum of all frequencies
	WeightedBits  float64 // sum of freq * code length
	AverageLength float64 // WeightedBits / TotalWeight
	Entropy       float64 // Shannon entropy in bits per symbol
	Efficiency    float64 // Entropy / AverageLength, 1 for an ideal code
	MaxLength     int
}

// Analyze computes Stats for table against the alphabet it was built from
func Analyze(alphabet []WeightedSymbol, table *CodeTable) (Stats, error) {
	if err := validateAlphabet(alphabet); err != nil {
		return Stats{}, err
	}

	st := Stats{Symbols: len(alphabet), MaxLength: table.MaxLen()}
	for _, ws := range alphabet {
		code, ok := table.Lookup(ws.Symbol)
		if !ok {
			return Stats{}, fmt.Errorf("%w: %q", ErrUnknownSymbol, ws.Symbol)
		}
		st.TotalWeight += ws.Freq
		st.WeightedBits += ws.Freq * float64(len(code))
	}
	if st.TotalWeight == 0 {
		return st, nil
	}

	st.AverageLength = st.WeightedBits / st.TotalWeight
	for _, ws := range alphabet {
		if ws.Freq == 0 {
			continue
		}
		p := ws.Freq / st.TotalWeight
		st.Entropy -= p * math.Log2(p)
	}
	if st.AverageLength > 0 {
		st.Efficiency = st.Entropy / st.AverageLength
	}
	return st, nil
}
