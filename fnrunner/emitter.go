package fnrunner

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/gagliardetto/solana-go"

	"github.com/starforge-games/arena-settle/fnrunner/fnv1"
)

// Markers recognized by the oracle on the emission channel. The last
// matching line of the function's stdout wins; everything else written to
// the channel corrupts the result, so logging goes to stderr only.
const (
	ResultPrefix = "FN_OUT: "
	ErrorPrefix  = "FN_ERR: "
)

// Emitter is the attestation/emission boundary. Emit delivers the ordered
// instruction list exactly once; EmitError reports a terminal failure class.
// Both may block; neither is retried by the caller.
type Emitter interface {
	Emit(ctx context.Context, ixns []solana.Instruction) error
	EmitError(ctx context.Context, code ErrorCode) error
}

// OracleEmitter writes fn_v1 envelopes to the oracle channel. Quote
// generation and network submission happen on the oracle side of the
// channel.
type OracleEmitter struct {
	out io.Writer
}

func NewOracleEmitter(out io.Writer) *OracleEmitter {
	return &OracleEmitter{out: out}
}

func (e *OracleEmitter) Emit(_ context.Context, ixns []solana.Instruction) error {
	envelope, err := fnv1.Encode(ixns)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(e.out, "%s%s\n", ResultPrefix, hex.EncodeToString(envelope))
	return err
}

func (e *OracleEmitter) EmitError(_ context.Context, code ErrorCode) error {
	_, err := fmt.Fprintf(e.out, "%s%d\n", ErrorPrefix, uint32(code))
	return err
}
