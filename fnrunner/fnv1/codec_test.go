package fnv1

import (
	"bytes"
	"errors"
	"testing"

	"github.com/gagliardetto/solana-go"
)

func testInstruction(dataLen int) solana.Instruction {
	data := make([]byte, dataLen)
	for i := range data {
		data[i] = byte(i)
	}
	return solana.NewInstruction(
		solana.MustPublicKeyFromBase58("ComputeBudget111111111111111111111111111111"),
		solana.AccountMetaSlice{
			solana.NewAccountMeta(solana.MustPublicKeyFromBase58("SysvarC1ock11111111111111111111111111111111"), false, true),
			solana.NewAccountMeta(solana.MustPublicKeyFromBase58("SysvarRent111111111111111111111111111111111"), true, false),
		},
		data,
	)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	input := []solana.Instruction{
		testInstruction(0),
		testInstruction(13),
	}
	encoded, err := Encode(input)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	decoded, err := Decode(encoded)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(decoded) != len(input) {
		t.Fatalf("unexpected ixn count: got %d want %d", len(decoded), len(input))
	}
	for i, ixn := range decoded {
		wantData, _ := input[i].Data()
		if ixn.ProgramID != input[i].ProgramID() {
			t.Fatalf("ixn[%d] program id mismatch", i)
		}
		if !bytes.Equal(ixn.Data, wantData) {
			t.Fatalf("ixn[%d] data mismatch: got %x want %x", i, ixn.Data, wantData)
		}
		wantAccounts := input[i].Accounts()
		if len(ixn.Accounts) != len(wantAccounts) {
			t.Fatalf("ixn[%d] account count mismatch", i)
		}
		for a, meta := range ixn.Accounts {
			want := wantAccounts[a]
			if meta.PublicKey != want.PublicKey || meta.IsSigner != want.IsSigner || meta.IsWritable != want.IsWritable {
				t.Fatalf("ixn[%d] account[%d] mismatch: got %+v want %+v", i, a, meta, want)
			}
		}
	}
}

func TestEncodeEmptyList(t *testing.T) {
	encoded, err := Encode(nil)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	decoded, err := Decode(encoded)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(decoded) != 0 {
		t.Fatalf("unexpected ixn count: got %d want 0", len(decoded))
	}
}

func TestEncodeRejectsOversizedEnvelope(t *testing.T) {
	_, err := Encode([]solana.Instruction{testInstruction(1000)})
	if !errors.Is(err, ErrPayloadTooLarge) {
		t.Fatalf("expected emission budget error, got %v", err)
	}
}

func TestDecodeRejectsShortPayload(t *testing.T) {
	if _, err := Decode([]byte{Version}); !errors.Is(err, ErrPayloadTooShort) {
		t.Fatalf("expected short payload error")
	}
}

func TestDecodeRejectsUnsupportedVersion(t *testing.T) {
	if _, err := Decode([]byte{0x02, 0x00}); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected unsupported version error")
	}
}

func TestDecodeRejectsTruncatedInstruction(t *testing.T) {
	encoded, err := Encode([]solana.Instruction{testInstruction(13)})
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	for _, cut := range []int{3, 35, 70, len(encoded) - 1} {
		if _, err := Decode(encoded[:cut]); !errors.Is(err, ErrPayloadMalformed) {
			t.Fatalf("expected malformed payload error at cut %d, got %v", cut, err)
		}
	}
}

func TestDecodeRejectsTrailingBytes(t *testing.T) {
	encoded, err := Encode([]solana.Instruction{testInstruction(4)})
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if _, err := Decode(append(encoded, 0xff)); !errors.Is(err, ErrPayloadMalformed) {
		t.Fatalf("expected trailing bytes error, got %v", err)
	}
}
