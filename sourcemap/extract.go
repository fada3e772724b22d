package sourcemap

import (
	"go.uber.org/zap"

	"github.com/wippyai/wasm-sourcemap/debuginfo"
	"github.com/wippyai/wasm-sourcemap/wasm"
)

// Extract resolves the source map embedded in a WebAssembly module binary.
// The whole module must be in memory; the returned Map owns its data and
// has no further dependency on the input buffer.
func Extract(data []byte) (*Map, error) {
	di, err := wasm.ExtractDebugSections(data)
	if err != nil {
		return nil, err
	}
	Logger().Debug("debug sections collected",
		zap.Int("sections", len(di.Sections)),
		zap.Uint64("codeOffset", di.CodeOffset))

	src, err := debuginfo.New(di.Sections)
	if err != nil {
		return nil, err
	}
	return Resolve(src, di.CodeOffset)
}
