package program

import (
	"fmt"

	solanago "github.com/gagliardetto/solana-go"
)

// MaxSeedLength is the longest seed the runtime accepts.
const MaxSeedLength = 32

// findProgramAddress is swapped in tests to simulate an exhausted bump search.
var findProgramAddress = solanago.FindProgramAddress

// Authority is the program-derived account that is the mint, the mint
// authority and the metadata update authority at once.
type Authority struct {
	Label   []byte
	Address solanago.PublicKey
	Bump    uint8
}

// DeriveAuthority searches bumps from 255 down for label under programID.
// The first off-curve address is canonical.
func DeriveAuthority(label []byte, programID solanago.PublicKey) (Authority, error) {
	if len(label) == 0 || len(label) > MaxSeedLength {
		return Authority{}, ErrBumpNotFound.Withf("label length %d outside 1..%d", len(label), MaxSeedLength)
	}
	address, bump, err := findProgramAddress([][]byte{label}, programID)
	if err != nil {
		return Authority{}, ErrBumpNotFound.Withf("derive %q: %v", label, err)
	}
	return Authority{
		Label:   append([]byte(nil), label...),
		Address: address,
		Bump:    bump,
	}, nil
}

// Signer returns the seeds that stand in for this account's signature.
func (a Authority) Signer() SignerSeeds {
	return SignerSeeds{Label: a.Label, Bump: a.Bump}
}

// Check fails with ErrConstraintSeeds unless supplied is the derived address.
func (a Authority) Check(supplied solanago.PublicKey) error {
	if !supplied.Equals(a.Address) {
		return ErrConstraintSeeds.WithAccount(supplied).Withf("expected %s", a.Address)
	}
	return nil
}

// SignerSeeds is the proof {label, bump} a program hands to a CPI in place
// of a signature. The runtime accepts it for an account only if re-deriving
// the seeds under the calling program yields that account.
type SignerSeeds struct {
	Label []byte
	Bump  uint8
}

// Seeds returns the seed list as passed to the runtime.
func (s SignerSeeds) Seeds() [][]byte {
	return [][]byte{s.Label, {s.Bump}}
}

// Address re-derives the address the seeds sign for.
func (s SignerSeeds) Address(programID solanago.PublicKey) (solanago.PublicKey, error) {
	return solanago.CreateProgramAddress(s.Seeds(), programID)
}

// Signs reports whether the seeds, invoked by programID, sign for account.
func (s SignerSeeds) Signs(programID, account solanago.PublicKey) bool {
	address, err := s.Address(programID)
	if err != nil {
		return false
	}
	return address.Equals(account)
}

func (s SignerSeeds) String() string {
	return fmt.Sprintf("%s#%d", s.Label, s.Bump)
}

// SignedBy reports whether account is signed for by any of seeds when
// invoked by programID.
func SignedBy(programID, account solanago.PublicKey, seeds ...SignerSeeds) bool {
	for _, s := range seeds {
		if s.Signs(programID, account) {
			return true
		}
	}
	return false
}
