package program

import (
	"errors"
	"fmt"

	solanago "github.com/gagliardetto/solana-go"
)

// ErrorCode identifies a failure. Codes below 6000 follow the Anchor
// framework numbering; external program failures live in their own ranges.
type ErrorCode uint32

const (
	// instruction decoding
	CodeInstructionFallbackNotFound  ErrorCode = 101
	CodeInstructionDidNotDeserialize ErrorCode = 102

	// account constraints
	CodeConstraintSeeds             ErrorCode = 2006
	CodeConstraintAssociated        ErrorCode = 2009
	CodeConstraintMintMintAuthority ErrorCode = 2016
	CodeNotEnoughAccountKeys        ErrorCode = 3005
	CodeInvalidProgramID            ErrorCode = 3008
	CodeAccountNotSigner            ErrorCode = 3010
	CodeAccountNotInitialized       ErrorCode = 3012

	// derivation
	CodeBumpNotFound ErrorCode = 6000

	// system program
	CodeAccountAlreadyInUse        ErrorCode = 0x1_0000
	CodeInsufficientLamports       ErrorCode = 0x1_0001
	CodeMissingRequiredSignature   ErrorCode = 0x1_0002
	CodeAccountOwnedByWrongProgram ErrorCode = 0x1_0003

	// runtime
	CodeReadonlyDataModified ErrorCode = 0x4_0000

	// token program
	CodeInsufficientFunds ErrorCode = 0x2_0001
	CodeMintMismatch      ErrorCode = 0x2_0003
	CodeOwnerMismatch     ErrorCode = 0x2_0004
	CodeOverflow          ErrorCode = 0x2_000e
	CodeInvalidDecimals   ErrorCode = 0x2_0100

	// token-metadata program
	CodeNameTooLong          ErrorCode = 0x3_000b
	CodeSymbolTooLong        ErrorCode = 0x3_000c
	CodeUriTooLong           ErrorCode = 0x3_000d
	CodeInvalidMetadataKey   ErrorCode = 0x3_0005
	CodeInvalidMintAuthority ErrorCode = 0x3_0020
	CodeInvalidBasisPoints   ErrorCode = 0x3_0021
	CodeCreatorsTooLong      ErrorCode = 0x3_0022
	CodeDerivedKeyInvalid    ErrorCode = 0x3_0023
)

var codeNames = map[ErrorCode]string{
	CodeInstructionFallbackNotFound:  "InstructionFallbackNotFound",
	CodeInstructionDidNotDeserialize: "InstructionDidNotDeserialize",
	CodeConstraintSeeds:              "ConstraintSeeds",
	CodeConstraintAssociated:         "ConstraintAssociated",
	CodeConstraintMintMintAuthority:  "ConstraintMintMintAuthority",
	CodeNotEnoughAccountKeys:         "NotEnoughAccountKeys",
	CodeInvalidProgramID:             "InvalidProgramId",
	CodeAccountNotSigner:             "AccountNotSigner",
	CodeAccountNotInitialized:        "AccountNotInitialized",
	CodeBumpNotFound:                 "BumpNotFound",
	CodeAccountAlreadyInUse:          "AccountAlreadyInUse",
	CodeInsufficientLamports:         "InsufficientLamports",
	CodeMissingRequiredSignature:     "MissingRequiredSignature",
	CodeAccountOwnedByWrongProgram:   "AccountOwnedByWrongProgram",
	CodeReadonlyDataModified:         "ReadonlyDataModified",
	CodeInsufficientFunds:            "InsufficientFunds",
	CodeMintMismatch:                 "MintMismatch",
	CodeOwnerMismatch:                "OwnerMismatch",
	CodeOverflow:                     "Overflow",
	CodeInvalidDecimals:              "InvalidDecimals",
	CodeNameTooLong:                  "NameTooLong",
	CodeSymbolTooLong:                "SymbolTooLong",
	CodeUriTooLong:                   "UriTooLong",
	CodeInvalidMetadataKey:           "InvalidMetadataKey",
	CodeInvalidMintAuthority:         "InvalidMintAuthority",
	CodeInvalidBasisPoints:           "InvalidBasisPoints",
	CodeCreatorsTooLong:              "CreatorsTooLong",
	CodeDerivedKeyInvalid:            "DerivedKeyInvalid",
}

func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("ErrorCode(%d)", uint32(c))
}

// Class groups codes by how a caller should react to them.
type Class uint8

const (
	// ClassPrecondition: the supplied accounts or state are wrong. Not retried.
	ClassPrecondition Class = iota
	// ClassExternal: a collaborating program rejected the call.
	ClassExternal
	// ClassDerivation: the authority address cannot be derived. Fatal.
	ClassDerivation
)

func (c Class) String() string {
	switch c {
	case ClassPrecondition:
		return "precondition"
	case ClassExternal:
		return "external"
	case ClassDerivation:
		return "derivation"
	default:
		return "unknown"
	}
}

// Class reports the class of the code.
func (c ErrorCode) Class() Class {
	switch {
	case c == CodeBumpNotFound:
		return ClassDerivation
	case c == CodeAccountAlreadyInUse, c == CodeReadonlyDataModified:
		return ClassPrecondition
	case c >= 0x1_0000:
		return ClassExternal
	default:
		return ClassPrecondition
	}
}

// Error is the failure type returned by the program and its collaborators.
type Error struct {
	Code    ErrorCode
	Msg     string
	Account solanago.PublicKey
}

func (e *Error) Error() string {
	if !e.Account.IsZero() {
		return fmt.Sprintf("%s (0x%x): %s (account=%s)", e.Code, uint32(e.Code), e.Msg, e.Account)
	}
	return fmt.Sprintf("%s (0x%x): %s", e.Code, uint32(e.Code), e.Msg)
}

// Is matches any *Error carrying the same code, so sentinels work with errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// WithAccount returns a copy of e naming the offending account.
func (e *Error) WithAccount(account solanago.PublicKey) *Error {
	out := *e
	out.Account = account
	return &out
}

// Withf returns a copy of e with a more specific message.
func (e *Error) Withf(format string, args ...interface{}) *Error {
	out := *e
	out.Msg = fmt.Sprintf(format, args...)
	return &out
}

var (
	ErrInstructionFallbackNotFound  = &Error{Code: CodeInstructionFallbackNotFound, Msg: "fallback functions are not supported"}
	ErrInstructionDidNotDeserialize = &Error{Code: CodeInstructionDidNotDeserialize, Msg: "the program could not deserialize the given instruction"}
	ErrConstraintSeeds              = &Error{Code: CodeConstraintSeeds, Msg: "a seeds constraint was violated"}
	ErrConstraintAssociated         = &Error{Code: CodeConstraintAssociated, Msg: "an associated constraint was violated"}
	ErrConstraintMintMintAuthority  = &Error{Code: CodeConstraintMintMintAuthority, Msg: "a mint mint authority constraint was violated"}
	ErrNotEnoughAccountKeys         = &Error{Code: CodeNotEnoughAccountKeys, Msg: "not enough account keys given to the instruction"}
	ErrInvalidProgramID             = &Error{Code: CodeInvalidProgramID, Msg: "program ID was not as expected"}
	ErrAccountNotSigner             = &Error{Code: CodeAccountNotSigner, Msg: "the given account did not sign"}
	ErrAccountNotInitialized        = &Error{Code: CodeAccountNotInitialized, Msg: "the program expected this account to be already initialized"}
	ErrBumpNotFound                 = &Error{Code: CodeBumpNotFound, Msg: "unable to find a viable program address bump seed"}

	ErrAccountAlreadyInUse        = &Error{Code: CodeAccountAlreadyInUse, Msg: "account already in use"}
	ErrInsufficientLamports       = &Error{Code: CodeInsufficientLamports, Msg: "insufficient lamports"}
	ErrMissingRequiredSignature   = &Error{Code: CodeMissingRequiredSignature, Msg: "missing required signature for instruction"}
	ErrAccountOwnedByWrongProgram = &Error{Code: CodeAccountOwnedByWrongProgram, Msg: "account owned by wrong program"}

	ErrReadonlyDataModified = &Error{Code: CodeReadonlyDataModified, Msg: "instruction modified an account not marked writable"}

	ErrInsufficientFunds = &Error{Code: CodeInsufficientFunds, Msg: "insufficient funds"}
	ErrMintMismatch      = &Error{Code: CodeMintMismatch, Msg: "account not associated with this mint"}
	ErrOwnerMismatch     = &Error{Code: CodeOwnerMismatch, Msg: "owner does not match"}
	ErrOverflow          = &Error{Code: CodeOverflow, Msg: "operation overflowed"}
	ErrInvalidDecimals   = &Error{Code: CodeInvalidDecimals, Msg: "decimals out of range"}

	ErrNameTooLong          = &Error{Code: CodeNameTooLong, Msg: "name too long"}
	ErrSymbolTooLong        = &Error{Code: CodeSymbolTooLong, Msg: "symbol too long"}
	ErrUriTooLong           = &Error{Code: CodeUriTooLong, Msg: "uri too long"}
	ErrInvalidMetadataKey   = &Error{Code: CodeInvalidMetadataKey, Msg: "invalid metadata key"}
	ErrInvalidMintAuthority = &Error{Code: CodeInvalidMintAuthority, Msg: "invalid mint authority"}
	ErrInvalidBasisPoints   = &Error{Code: CodeInvalidBasisPoints, Msg: "basis points cannot be more than 10000"}
	ErrCreatorsTooLong      = &Error{Code: CodeCreatorsTooLong, Msg: "creators list too long"}
	ErrDerivedKeyInvalid    = &Error{Code: CodeDerivedKeyInvalid, Msg: "derived key invalid"}
)

// CodeOf extracts the code of err, if it carries one.
func CodeOf(err error) (ErrorCode, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Code, true
	}
	return 0, false
}

// ClassOf reports the class of err. Errors without a code are external.
func ClassOf(err error) Class {
	if code, ok := CodeOf(err); ok {
		return code.Class()
	}
	return ClassExternal
}

// Retryable reports whether resubmitting the same operation can succeed
// without changing its inputs. Only a payer running out of lamports qualifies.
func Retryable(err error) bool {
	code, ok := CodeOf(err)
	return ok && code == CodeInsufficientLamports
}
