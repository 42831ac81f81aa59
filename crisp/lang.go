package crisp

// TrueSymbol is the self-evaluating truth symbol.  It cannot be rebound.
const TrueSymbol = "t"

// NilSymbol is the token the reader and printer use for the nil value.
const NilSymbol = "nil"

// RestSuffix marks a formal parameter that collects the remaining
// operands of a combiner application.
const RestSuffix = "..."
