// Package fnrunner holds the per-invocation oracle function identity and the
// emission boundary. One Runner exists per process; it is constructed once
// and passed by reference through the settlement pipeline.
package fnrunner

import (
	"crypto/ed25519"
	"errors"
	"fmt"
	"os"

	"github.com/gagliardetto/solana-go"

	"github.com/starforge-games/arena-settle/entropy"
	"github.com/starforge-games/arena-settle/params"
)

// ErrorCode is a terminal failure class reported to the oracle channel. The
// set is closed: a new failure class takes a fresh, documented integer.
type ErrorCode uint32

const (
	// CodeInvalidParams signals that the request parameters could not be
	// decoded or validated. No instructions were built.
	CodeInvalidParams ErrorCode = 1

	// CodeEmitFailed signals that the fully built instruction list could not
	// be delivered to the oracle channel.
	CodeEmitFailed ErrorCode = 3
)

func (c ErrorCode) String() string {
	switch c {
	case CodeInvalidParams:
		return "invalid request parameters"
	case CodeEmitFailed:
		return "emission failed"
	default:
		return fmt.Sprintf("error code %d", uint32(c))
	}
}

// Environment populated by the oracle before launching the container.
const (
	EnvFunctionKey        = "FUNCTION_KEY"
	EnvFunctionRequestKey = "FUNCTION_REQUEST_KEY"
	EnvFunctionData       = "FUNCTION_DATA"
)

var (
	ErrMissingFunctionKey = errors.New("fnrunner: missing or invalid function key")
	ErrMissingRequestKey  = errors.New("fnrunner: missing or invalid function request key")
)

// Runner is the function execution identity for a single invocation: the
// freshly generated enclave signer plus the oracle-assigned function and
// request accounts.
type Runner struct {
	Signer   solana.PrivateKey
	Function solana.PublicKey
	Request  solana.PublicKey
	Cluster  *params.ClusterConfig
}

// New seeds a fresh enclave keypair from src and binds the oracle function
// and request identities. Entropy failure aborts the process, the enclave
// signer cannot be derived from anything weaker.
func New(cluster *params.ClusterConfig, src entropy.Source, function, request solana.PublicKey) *Runner {
	seed := make([]byte, ed25519.SeedSize)
	entropy.MustRead(src, seed)
	return &Runner{
		Signer:   solana.PrivateKey(ed25519.NewKeyFromSeed(seed)),
		Function: function,
		Request:  request,
		Cluster:  cluster,
	}
}

// NewFromEnv builds a Runner from the oracle-populated environment.
func NewFromEnv(cluster *params.ClusterConfig, src entropy.Source) (*Runner, error) {
	function, err := solana.PublicKeyFromBase58(os.Getenv(EnvFunctionKey))
	if err != nil {
		return nil, fmt.Errorf("%w: %s=%q", ErrMissingFunctionKey, EnvFunctionKey, os.Getenv(EnvFunctionKey))
	}
	request, err := solana.PublicKeyFromBase58(os.Getenv(EnvFunctionRequestKey))
	if err != nil {
		return nil, fmt.Errorf("%w: %s=%q", ErrMissingRequestKey, EnvFunctionRequestKey, os.Getenv(EnvFunctionRequestKey))
	}
	return New(cluster, src, function, request), nil
}

// SignerKey returns the public half of the enclave signer.
func (r *Runner) SignerKey() solana.PublicKey {
	return r.Signer.PublicKey()
}

// RequestDataFromEnv returns the raw container parameter blob supplied by
// the oracle. An absent variable yields an empty blob, which fails parameter
// decoding downstream rather than here.
func RequestDataFromEnv() []byte {
	return []byte(os.Getenv(EnvFunctionData))
}
