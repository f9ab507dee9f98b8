package settle

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gagliardetto/solana-go"

	"github.com/starforge-games/arena-settle/params"
)

// ErrInvalidParams is returned when the oracle container parameter blob
// cannot be decoded. Callers report it as error code 1.
var ErrInvalidParams = errors.New("invalid container params")

// Container parameter keys. The oracle serializes the request as a
// comma-separated KEY=value string; pubkeys are base58, the faction is a
// decimal byte.
const (
	keyProgramID      = "PID"
	keyUser           = "USER"
	keyRealmPDA       = "REALM_PDA"
	keyUserAccountPDA = "USER_ACCOUNT_PDA"
	keySpaceshipPDA   = "SPACESHIP_PDA"
	keyFaction        = "FACTION"
	keyOpponentPrefix = "OPPONENT_"
)

// ContainerParams is the decoded settlement request. It is immutable once
// decoded and owned by the orchestrator for the duration of one invocation.
type ContainerParams struct {
	ProgramID      solana.PublicKey
	User           solana.PublicKey
	RealmPDA       solana.PublicKey
	UserAccountPDA solana.PublicKey
	SpaceshipPDA   solana.PublicKey
	Opponents      [params.MaxOpponents]solana.PublicKey
	Faction        uint8
}

// DecodeContainerParams parses the raw container parameter blob. Every key
// is required; unknown keys are rejected so a drifted oracle schema fails
// loudly instead of settling against half a request.
func DecodeContainerParams(data []byte) (*ContainerParams, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty data", ErrInvalidParams)
	}

	fields := make(map[string]string)
	for _, pair := range strings.Split(string(data), ",") {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" || value == "" {
			return nil, fmt.Errorf("%w: malformed pair %q", ErrInvalidParams, pair)
		}
		if _, dup := fields[key]; dup {
			return nil, fmt.Errorf("%w: duplicate key %q", ErrInvalidParams, key)
		}
		fields[key] = value
	}

	p := &ContainerParams{}
	var err error
	if p.ProgramID, err = takeKey(fields, keyProgramID); err != nil {
		return nil, err
	}
	if p.User, err = takeKey(fields, keyUser); err != nil {
		return nil, err
	}
	if p.RealmPDA, err = takeKey(fields, keyRealmPDA); err != nil {
		return nil, err
	}
	if p.UserAccountPDA, err = takeKey(fields, keyUserAccountPDA); err != nil {
		return nil, err
	}
	if p.SpaceshipPDA, err = takeKey(fields, keySpaceshipPDA); err != nil {
		return nil, err
	}
	for i := range p.Opponents {
		if p.Opponents[i], err = takeKey(fields, fmt.Sprintf("%s%d", keyOpponentPrefix, i+1)); err != nil {
			return nil, err
		}
	}

	faction, ok := fields[keyFaction]
	if !ok {
		return nil, fmt.Errorf("%w: missing key %q", ErrInvalidParams, keyFaction)
	}
	delete(fields, keyFaction)
	n, err := strconv.ParseUint(faction, 10, 8)
	if err != nil {
		return nil, fmt.Errorf("%w: faction %q is not a byte", ErrInvalidParams, faction)
	}
	p.Faction = uint8(n)

	for key := range fields {
		return nil, fmt.Errorf("%w: unknown key %q", ErrInvalidParams, key)
	}
	return p, nil
}

func takeKey(fields map[string]string, key string) (solana.PublicKey, error) {
	value, ok := fields[key]
	if !ok {
		return solana.PublicKey{}, fmt.Errorf("%w: missing key %q", ErrInvalidParams, key)
	}
	delete(fields, key)
	pk, err := solana.PublicKeyFromBase58(value)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("%w: key %q: %v", ErrInvalidParams, key, err)
	}
	return pk, nil
}
