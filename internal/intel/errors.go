package intel

import "errors"

// Standard errors returned by the bridge.
var (
	// ErrNilChannel indicates the bridge was constructed without a channel.
	ErrNilChannel = errors.New("intel: nil channel")

	// ErrNilSurface indicates the bridge was constructed without a surface.
	ErrNilSurface = errors.New("intel: nil surface")

	// ErrDisposed indicates the bridge has been disposed.
	ErrDisposed = errors.New("intel: bridge disposed")

	// ErrNotReady indicates the bridge has not completed initialization.
	ErrNotReady = errors.New("intel: bridge not ready")

	// ErrDocumentNotOpen indicates the document has no open record.
	ErrDocumentNotOpen = errors.New("intel: document not open")
)
