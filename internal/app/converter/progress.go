package converter

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

type ProgressConfig struct {
	Enabled bool
	Writer  io.Writer
}

// ProgressManager owns one mpb container at a time. A new container is started by
// the first CreateBar after Wait.
type ProgressManager struct {
	container *mpb.Progress
	writer    io.Writer
	enabled   bool
	mu        sync.Mutex
}

type ProgressBar struct {
	bar     *mpb.Bar
	enabled bool
}

func NewProgressManager(config ProgressConfig) *ProgressManager {
	if !config.Enabled {
		return &ProgressManager{enabled: false}
	}

	writer := config.Writer
	if writer == nil {
		writer = os.Stderr
	}

	return &ProgressManager{
		writer:  writer,
		enabled: true,
	}
}

// CreateBar adds a bar of total steps. Disabled managers return a bar whose methods do nothing.
func (pm *ProgressManager) CreateBar(total int, description string) *ProgressBar {
	if !pm.enabled {
		return &ProgressBar{enabled: false}
	}

	pm.mu.Lock()
	defer pm.mu.Unlock()

	if pm.container == nil {
		pm.container = mpb.New(
			mpb.WithOutput(pm.writer),
			mpb.WithRefreshRate(120*time.Millisecond),
		)
	}

	bar := pm.container.AddBar(int64(total),
		mpb.PrependDecorators(
			decor.Name(description+" ", decor.WC{W: len(description) + 1, C: decor.DindentRight}),
			decor.CountersNoUnit("(%d/%d)", decor.WCSyncWidth),
		),
		mpb.AppendDecorators(
			decor.OnAbort(
				decor.OnComplete(decor.Elapsed(decor.ET_STYLE_GO, decor.WCSyncWidth), " ✓ "),
				" ✗ ",
			),
		),
	)

	return &ProgressBar{
		bar:     bar,
		enabled: true,
	}
}

func (pb *ProgressBar) Increment() {
	if pb.enabled && pb.bar != nil {
		pb.bar.Increment()
	}
}

// Abort stops the bar and leaves it on screen.
func (pb *ProgressBar) Abort() {
	if pb.enabled && pb.bar != nil {
		pb.bar.Abort(false)
	}
}

func (pm *ProgressManager) Wait() {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	if pm.enabled && pm.container != nil {
		pm.container.Wait()
		pm.container = nil
	}
}

func (pm *ProgressManager) Shutdown() {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	if pm.enabled && pm.container != nil {
		pm.container.Shutdown()
		pm.container = nil
	}
}

func IsTTY(writer io.Writer) bool {
	if writer == nil {
		return false
	}

	if file, ok := writer.(*os.File); ok {
		stat, err := file.Stat()
		if err != nil {
			return false
		}
		return (stat.Mode() & os.ModeCharDevice) != 0
	}
	return false
}

func ShouldShowProgress(forced bool) bool {
	if forced {
		return true
	}

	return IsTTY(os.Stderr)
}
