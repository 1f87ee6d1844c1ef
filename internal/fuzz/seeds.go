package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10
	maxFuzzInput = 64 << 10
)

var shaderSeeds = []string{
	"",
	"float4 main() : SV_Target { return float4(1, 1, 1, 1); }\n",
	"cbuffer Globals : register(b0) { float4x4 wvp; float3 eye; };\n",
	"struct VSIn { float3 pos : POSITION; float2 uv : TEXCOORD0; };\n",
	"Texture2D tex : register(t0);\nSamplerState smp;\nfloat4 ps(float2 uv : TEXCOORD) : SV_Target { return tex.Sample(smp, uv); }\n",
	"float f(inout float x, out float y) { y = x; x += 1; return x * y; }\n",
	"static const int N = 4;\nfloat a[N];\nfloat sum() { float s = 0; [unroll] for (int i = 0; i < N; ++i) s += a[i]; return s; }\n",
	"float2 v = float3(1, 2, 3);\n",
	"float g() { return missing; }\n",
	"float4 c = float4(1, 2, 3, 4).wzyx;\nfloat3 d = c.rgb * c.a;\n",
	"technique11 T { pass P0 { SetVertexShader(CompileShader(vs_5_0, main())); } }\n",
	"namespace N { float k; }\nfloat h() { return N::k; }\n",
	"#define X 1\nfloat x = X;\n",
	"float f() { if (true) { return 1; } else { return 0 } }\n",
	"struct S { float a; float b() { return a; } };\n",
	"float f( { ; } } )",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range shaderSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

// addTestdataSeeds adds any shaders under testdata/ so crashers saved by the
// fuzzer can be promoted to regular seeds.
func addTestdataSeeds(f *testing.F) {
	root := "testdata"
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() {
			return nil
		}
		switch filepath.Ext(path) {
		case ".hlsl", ".hlsli", ".fx", ".fxh":
		default:
			return nil
		}
		// #nosec G304 -- path comes from the package testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) > maxSeedBytes {
		src = src[:maxSeedBytes]
	}
	return append([]byte(nil), src...)
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		input = input[:maxFuzzInput]
	}
	return append([]byte(nil), input...)
}
