package domain

// Entity id prefixes. Every id of a kind has the same total length: the
// prefix followed by random hex, truncated to IDLength characters.
const (
	IDLength = 20

	WalletIDPrefix      = "wall_"
	TransactionIDPrefix = "trax_"
)
