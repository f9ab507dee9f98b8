package settle

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/gagliardetto/solana-go"
	computebudget "github.com/gagliardetto/solana-go/programs/compute-budget"

	"github.com/starforge-games/arena-settle/fnrunner"
	"github.com/starforge-games/arena-settle/params"
)

// Discriminator derives the 8-byte instruction selector for a handler in the
// target program's global namespace: sha256("global:" + name)[0:8]. This is
// a protocol constant in function form; tests pin the value for the settle
// handler against the deployed program.
func Discriminator(name string) [params.DiscriminatorLength]byte {
	sum := sha256.Sum256([]byte("global:" + name))
	var out [params.DiscriminatorLength]byte
	copy(out[:], sum[:params.DiscriminatorLength])
	return out
}

// BuildSettle assembles the arena_matchmaking_settle instruction.
//
// Data layout, 13 bytes total:
//
//	[0:8]   settle handler discriminator
//	[8:12]  random result, u32 little-endian
//	[12]    faction byte
//
// The account schema is positional: the program reads meaning from position,
// not from the key, so order and the writable/signer flags below are
// bit-for-bit fixed.
//
//	 1. enclave signer (signer)
//	 2. user
//	 3. realm PDA (mut)
//	 4. user account PDA
//	 5. spaceship PDA (mut)
//	 6. oracle function
//	 7. oracle function request
//	 8-12. opponent spaceship PDAs 1..5 (mut)
func BuildSettle(runner *fnrunner.Runner, p *ContainerParams, value uint32) solana.Instruction {
	discriminator := Discriminator(params.SettleMethodName)

	data := make([]byte, 0, params.SettleDataLength)
	data = append(data, discriminator[:]...)
	data = binary.LittleEndian.AppendUint32(data, value)
	data = append(data, p.Faction)

	accounts := solana.AccountMetaSlice{
		solana.NewAccountMeta(runner.SignerKey(), false, true),
		solana.NewAccountMeta(p.User, false, false),
		solana.NewAccountMeta(p.RealmPDA, true, false),
		solana.NewAccountMeta(p.UserAccountPDA, false, false),
		solana.NewAccountMeta(p.SpaceshipPDA, true, false),
		solana.NewAccountMeta(runner.Function, false, false),
		solana.NewAccountMeta(runner.Request, false, false),
	}
	for _, opponent := range p.Opponents {
		accounts = append(accounts, solana.NewAccountMeta(opponent, true, false))
	}

	return solana.NewInstruction(p.ProgramID, accounts, data)
}

// BuildComputeBudget returns the constant instruction raising the execution
// compute ceiling. It always leads the emitted list.
func BuildComputeBudget() (solana.Instruction, error) {
	return computebudget.NewSetComputeUnitLimitInstruction(params.ComputeUnitLimit).ValidateAndBuild()
}
