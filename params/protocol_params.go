package params

const (
	// SettleMethodName is the target program's settle handler. The instruction
	// discriminator is derived from this name; changing it breaks the wire
	// contract with the deployed program.
	SettleMethodName = "arena_matchmaking_settle"

	DiscriminatorLength = 8  // Anchor global-namespace sighash length.
	SettleDataLength    = 13 // discriminator + u32 random result + faction byte.

	SettleAccountCount = 12 // Fixed positional account schema of the settle handler.
	MaxOpponents       = 5  // Opponent spaceship PDAs trailing the schema.

	SettleRandomMin uint32 = 1       // Lower bound of the settlement draw, inclusive.
	SettleRandomMax uint32 = 100_000 // Upper bound of the settlement draw, inclusive.

	ComputeUnitLimit uint32 = 1_200_000 // Compute budget requested ahead of the settle instruction.

	// MaxEmitPayloadSize caps the serialized emission envelope. The oracle
	// rejects oversized results, so the cap is enforced at encode time.
	MaxEmitPayloadSize = 700
)
