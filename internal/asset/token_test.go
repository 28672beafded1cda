package asset_test

import (
	"errors"
	"testing"

	"github.com/fd1az/pairquote/internal/asset"
)

var (
	musdt = asset.MustNewToken(asset.ChainIDTestnet, "0xa30439BDCb4Fc455723C21f2bbDF4C0d81E400C7", 18, "MUSDT", "Mock Tether")
	musdc = asset.MustNewToken(asset.ChainIDTestnet, "0x270E355e75F60Fb015c94561858cb719acafb90C", 18, "MUSDC", "Mock USD Coin")
)

func TestParseAddress(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"checksummed", "0xa30439BDCb4Fc455723C21f2bbDF4C0d81E400C7", "0xa30439BDCb4Fc455723C21f2bbDF4C0d81E400C7", false},
		{"lowercase", "0xa30439bdcb4fc455723c21f2bbdf4c0d81e400c7", "0xa30439BDCb4Fc455723C21f2bbDF4C0d81E400C7", false},
		{"uppercase", "0xA30439BDCB4FC455723C21F2BBDF4C0D81E400C7", "0xa30439BDCb4Fc455723C21f2bbDF4C0d81E400C7", false},
		{"bad_checksum", "0xA30439BDCb4Fc455723C21f2bbDF4C0d81E400C7", "", true},
		{"missing_prefix", "a30439BDCb4Fc455723C21f2bbDF4C0d81E400C7", "", true},
		{"too_short", "0xa30439", "", true},
		{"zero", "0x0000000000000000000000000000000000000000", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := asset.ParseAddress(tt.input)
			if tt.wantErr {
				if !errors.Is(err, asset.ErrInvalidAddress) {
					t.Fatalf("expected ErrInvalidAddress, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Hex() != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got.Hex())
			}
		})
	}
}

func TestToken_EqualsIgnoresAddressCase(t *testing.T) {
	lower := asset.MustNewToken(asset.ChainIDTestnet, "0xa30439bdcb4fc455723c21f2bbdf4c0d81e400c7", 18, "X", "")
	if !lower.Equals(musdt) {
		t.Error("expected tokens with same chain and address to be equal")
	}

	otherChain := asset.MustNewToken(asset.ChainIDMainnet, "0xa30439BDCb4Fc455723C21f2bbDF4C0d81E400C7", 18, "MUSDT", "")
	if otherChain.Equals(musdt) {
		t.Error("tokens on different chains must not be equal")
	}
}

func TestToken_SortsBefore(t *testing.T) {
	before, err := musdc.SortsBefore(musdt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !before {
		t.Error("expected 0x270E... to sort before 0xa304...")
	}

	before, err = musdt.SortsBefore(musdc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if before {
		t.Error("expected 0xa304... not to sort before 0x270E...")
	}

	if _, err := musdt.SortsBefore(asset.WETHMainnet); !errors.Is(err, asset.ErrChainMismatch) {
		t.Errorf("expected ErrChainMismatch, got %v", err)
	}
	if _, err := musdt.SortsBefore(musdt); !errors.Is(err, asset.ErrIdenticalTokens) {
		t.Errorf("expected ErrIdenticalTokens, got %v", err)
	}
}

func TestSortTokens(t *testing.T) {
	for _, args := range [][2]*asset.Token{{musdt, musdc}, {musdc, musdt}} {
		t0, t1, err := asset.SortTokens(args[0], args[1])
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if t0 != musdc || t1 != musdt {
			t.Errorf("expected (MUSDC, MUSDT), got (%s, %s)", t0, t1)
		}
	}
}

func TestToken_Metadata(t *testing.T) {
	anon := asset.MustNewToken(asset.ChainIDTestnet, "0x270E355e75F60Fb015c94561858cb719acafb90C", 6, "", "")

	if anon.String() != "0x270E355e75F60Fb015c94561858cb719acafb90C" {
		t.Errorf("expected address as string, got %s", anon.String())
	}
	if musdc.Name() != "Mock USD Coin" {
		t.Errorf("unexpected name %s", musdc.Name())
	}
	if got := musdc.ID().String(); got != "chain:421613/0x270E355e75F60Fb015c94561858cb719acafb90C" {
		t.Errorf("unexpected id %s", got)
	}
}
