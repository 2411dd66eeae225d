// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

// Operator describe the potential (binary) operations available on an Apply.
// Only operators OPand to OPnand can be used in AppEx.
type Operator int

const (
	OPand    Operator = iota // Boolean conjunction
	OPxor                    // Exclusive or
	OPor                     // Disjunction
	OPnand                   // Negation of and
	OPnor                    // Negation of or
	OPimp                    // Implication
	OPbiimp                  // Equivalence (xnor)
	OPdiff                   // Difference
	OPless                   // Less than
	OPinvimp                 // Reverse implication
	op_not                   // Negation. Only used as a key in the caches
)

var opnames = [...]string{
	OPand:    "and",
	OPxor:    "xor",
	OPor:     "or",
	OPnand:   "nand",
	OPnor:    "nor",
	OPimp:    "imp",
	OPbiimp:  "biimp",
	OPdiff:   "diff",
	OPless:   "less",
	OPinvimp: "invimp",
	op_not:   "not",
}

func (op Operator) String() string {
	if op < 0 || int(op) >= len(opnames) {
		return "unknown"
	}
	return opnames[op]
}

// opres gives the truth table of each binary operator, indexed by the values
// of the left and right operands.
var opres = [...][2][2]int{
	//                  00 01   10 11
	OPand:    {{0, 0}, {0, 1}}, // 0001
	OPxor:    {{0, 1}, {1, 0}}, // 0110
	OPor:     {{0, 1}, {1, 1}}, // 0111
	OPnand:   {{1, 1}, {1, 0}}, // 1110
	OPnor:    {{1, 0}, {0, 0}}, // 1000
	OPimp:    {{1, 1}, {0, 1}}, // 1101
	OPbiimp:  {{1, 0}, {0, 1}}, // 1001
	OPdiff:   {{0, 0}, {1, 0}}, // 0010
	OPless:   {{0, 1}, {0, 0}}, // 0100
	OPinvimp: {{1, 0}, {1, 1}}, // 1011
}
