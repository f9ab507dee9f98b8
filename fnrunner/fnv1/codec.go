// Package fnv1 implements the fn_v1 oracle emission envelope.
//
// The emission channel carries an ordered instruction list as a single
// versioned binary blob. Layout, all integers little-endian per the host
// chain's convention:
//
//	version(u8) ++ ixn_count(u8) ++ ixn...
//	ixn: program_id(32) ++ account_count(u8) ++ account... ++ data_len(u16) ++ data
//	account: pubkey(32) ++ flags(u8), bit0 = signer, bit1 = writable
package fnv1

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/gagliardetto/solana-go"

	"github.com/starforge-games/arena-settle/params"
)

const (
	// Version is the supported fn_v1 envelope format version.
	Version byte = 1

	headerSize    = 1 + 1 // version + ixn_count(u8)
	programIDSize = 32
	accountSize   = 32 + 1 // pubkey + flags
	dataLenPrefix = 2      // data_len(u16)
	flagSigner    = byte(1 << 0)
	flagWritable  = byte(1 << 1)
)

var (
	ErrPayloadTooShort   = errors.New("fn_v1 payload too short")
	ErrUnsupportedFormat = errors.New("unsupported fn_v1 payload version")
	ErrPayloadMalformed  = errors.New("malformed fn_v1 payload")
	ErrPayloadTooLarge   = errors.New("fn_v1 payload exceeds emission budget")
)

// Instruction is the decoded wire view of one instruction. Positions in
// Accounts carry the meaning; the decoder never reorders.
type Instruction struct {
	ProgramID solana.PublicKey
	Accounts  []*solana.AccountMeta
	Data      []byte
}

// Encode serializes an instruction list as an fn_v1 envelope. Envelopes
// larger than params.MaxEmitPayloadSize are rejected here, before the oracle
// can reject them remotely.
func Encode(ixns []solana.Instruction) ([]byte, error) {
	if len(ixns) > math.MaxUint8 {
		return nil, fmt.Errorf("%w: instruction count exceeds u8", ErrPayloadMalformed)
	}

	out := make([]byte, 0, params.MaxEmitPayloadSize)
	out = append(out, Version, byte(len(ixns)))
	for i, ixn := range ixns {
		data, err := ixn.Data()
		if err != nil {
			return nil, fmt.Errorf("%w: ixn[%d] data: %v", ErrPayloadMalformed, i, err)
		}
		accounts := ixn.Accounts()
		if len(accounts) > math.MaxUint8 {
			return nil, fmt.Errorf("%w: ixn[%d] account count exceeds u8", ErrPayloadMalformed, i)
		}
		if len(data) > math.MaxUint16 {
			return nil, fmt.Errorf("%w: ixn[%d] data exceeds u16 length", ErrPayloadMalformed, i)
		}

		programID := ixn.ProgramID()
		out = append(out, programID[:]...)
		out = append(out, byte(len(accounts)))
		for _, account := range accounts {
			out = append(out, account.PublicKey[:]...)
			var flags byte
			if account.IsSigner {
				flags |= flagSigner
			}
			if account.IsWritable {
				flags |= flagWritable
			}
			out = append(out, flags)
		}
		out = binary.LittleEndian.AppendUint16(out, uint16(len(data)))
		out = append(out, data...)
	}

	if len(out) > params.MaxEmitPayloadSize {
		return nil, fmt.Errorf("%w: %d > %d bytes", ErrPayloadTooLarge, len(out), params.MaxEmitPayloadSize)
	}
	return out, nil
}

// Decode parses an fn_v1 envelope back into its instruction list. It is the
// exact inverse of Encode.
func Decode(payload []byte) ([]*Instruction, error) {
	if len(payload) < headerSize {
		return nil, ErrPayloadTooShort
	}
	if payload[0] != Version {
		return nil, fmt.Errorf("%w: got %d", ErrUnsupportedFormat, payload[0])
	}

	ixnCount := int(payload[1])
	out := make([]*Instruction, 0, ixnCount)
	offset := headerSize
	for i := 0; i < ixnCount; i++ {
		if len(payload)-offset < programIDSize+1 {
			return nil, fmt.Errorf("%w: truncated ixn[%d] header", ErrPayloadMalformed, i)
		}
		ixn := &Instruction{}
		copy(ixn.ProgramID[:], payload[offset:offset+programIDSize])
		offset += programIDSize

		accountCount := int(payload[offset])
		offset++
		if len(payload)-offset < accountCount*accountSize {
			return nil, fmt.Errorf("%w: truncated ixn[%d] accounts", ErrPayloadMalformed, i)
		}
		ixn.Accounts = make([]*solana.AccountMeta, 0, accountCount)
		for a := 0; a < accountCount; a++ {
			meta := &solana.AccountMeta{}
			copy(meta.PublicKey[:], payload[offset:offset+programIDSize])
			flags := payload[offset+programIDSize]
			meta.IsSigner = flags&flagSigner != 0
			meta.IsWritable = flags&flagWritable != 0
			offset += accountSize
			ixn.Accounts = append(ixn.Accounts, meta)
		}

		if len(payload)-offset < dataLenPrefix {
			return nil, fmt.Errorf("%w: missing ixn[%d] data length", ErrPayloadMalformed, i)
		}
		size := int(binary.LittleEndian.Uint16(payload[offset : offset+dataLenPrefix]))
		offset += dataLenPrefix
		if len(payload)-offset < size {
			return nil, fmt.Errorf("%w: truncated ixn[%d] data", ErrPayloadMalformed, i)
		}
		ixn.Data = make([]byte, size)
		copy(ixn.Data, payload[offset:offset+size])
		offset += size
		out = append(out, ixn)
	}
	if offset != len(payload) {
		return nil, fmt.Errorf("%w: trailing bytes", ErrPayloadMalformed)
	}
	return out, nil
}
