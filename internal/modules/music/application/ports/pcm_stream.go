package ports

import (
	"context"

	"github.com/kvisuru/musicbox/internal/modules/music/domain"
)

// PCMStreamFactory constructs the decoded audio pipeline for a resolved
// stream URL. The resolution step calls this immediately before playback;
// a factory failure is a resolution failure.
type PCMStreamFactory interface {
	Open(ctx context.Context, streamURL string) (domain.AudioStream, error)
}
