package ironsession

import (
	"strings"
	"testing"

	"github.com/riceharvest/ironsession/keyring"
	"github.com/riceharvest/ironsession/seal"
)

// Benchmarks run at the minimum work factor so they measure envelope and
// cookie overhead rather than key stretching.
func benchSealConfig() SealConfig {
	return SealConfig{
		Password: keyring.FromString(testPasswordNew),
		Seal:     seal.Config{Iterations: 1024},
	}
}

func BenchmarkSealData(b *testing.B) {
	cfg := benchSealConfig()
	data := map[string]any{"user": "alice", "role": "member", "visits": 12}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := SealData(data, cfg); err != nil {
			b.Fatalf("seal failed: %v", err)
		}
	}
}

func BenchmarkUnsealData(b *testing.B) {
	cfg := benchSealConfig()
	token, err := SealData(map[string]any{"user": "alice", "role": "member"}, cfg)
	if err != nil {
		b.Fatalf("seal failed: %v", err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		data, status, err := UnsealDataStatus(token, cfg)
		if err != nil {
			b.Fatalf("unseal failed: %v", err)
		}
		if status != StatusOK || len(data) == 0 {
			b.Fatalf("unexpected outcome: %v %v", status, data)
		}
	}
}

func BenchmarkUnsealDataRotated(b *testing.B) {
	sealed, err := SealData(map[string]any{"user": "alice"}, SealConfig{
		Password: keyring.FromString(testPasswordOld),
		Seal:     seal.Config{Iterations: 1024},
	})
	if err != nil {
		b.Fatalf("seal failed: %v", err)
	}

	// Decoding has to fall through the current secret before the previous
	// one verifies. Strip the key-id hint so the fallback path is exercised.
	_, token, _ := strings.Cut(sealed, ".")

	cfg := SealConfig{
		Password: keyring.FromMap(map[int]string{1: testPasswordOld, 2: testPasswordNew}),
		Seal:     seal.Config{Iterations: 1024},
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		data, status, err := UnsealDataStatus(token, cfg)
		if err != nil {
			b.Fatalf("unseal failed: %v", err)
		}
		if status != StatusOK || len(data) == 0 {
			b.Fatalf("unexpected outcome: %v %v", status, data)
		}
	}
}
