package stablecoin

import solanago "github.com/gagliardetto/solana-go"

// ProgramID is the stablecoin program address.
var ProgramID = solanago.MustPublicKeyFromBase58("rtGDFZ7iMErBqCZYbP794g3tfsvEeWRQoWMDcRxscCM")

// MintSeed is the label the mint PDA is derived from.
const MintSeed = "stablecoin_mint"
