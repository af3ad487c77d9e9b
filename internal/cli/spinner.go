package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/matzehuels/fluvia/pkg/observability"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// stageMessages label the status line while a pipeline stage runs.
var stageMessages = map[string]string{
	observability.StageBase:     "Synthesizing base field...",
	observability.StageGrowth:   "Growing rivers...",
	observability.StageClassify: "Classifying land...",
	observability.StageDrainage: "Resolving drainage...",
	observability.StageHeight:   "Raising terrain...",
	observability.StageSplines:  "Fitting river curves...",
}

// Spinner animates a one-line status on w until stopped or its context ends.
//
// It also implements observability.PipelineHooks: registered for the
// duration of a run, the status line follows the running stage.
type Spinner struct {
	observability.NoopPipelineHooks

	w      io.Writer
	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	message string
	drawn   int // width of the widest line drawn so far

	startOnce sync.Once
	stopOnce  sync.Once
	stopped   chan struct{}
}

// newSpinner creates a spinner that stops when ctx is cancelled.
func newSpinner(ctx context.Context, w io.Writer, message string) *Spinner {
	ctx, cancel := context.WithCancel(ctx)
	return &Spinner{
		w:       w,
		ctx:     ctx,
		cancel:  cancel,
		message: message,
		stopped: make(chan struct{}),
	}
}

// Start begins the animation. Later calls do nothing.
func (s *Spinner) Start() {
	s.startOnce.Do(func() { go s.loop() })
}

func (s *Spinner) loop() {
	defer close(s.stopped)
	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for i := 0; ; i++ {
		select {
		case <-s.ctx.Done():
			s.clearLine()
			return
		case <-ticker.C:
			s.draw(spinnerFrames[i%len(spinnerFrames)])
		}
	}
}

func (s *Spinner) draw(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	line := styleIconSpinner.Render(frame) + " " + StyleDim.Render(s.message)
	pad := max(s.drawn-len(s.message)-2, 0)
	fmt.Fprintf(s.w, "\r%s%s", line, strings.Repeat(" ", pad))
	s.drawn = max(s.drawn, len(s.message)+2)
}

func (s *Spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.drawn > 0 {
		fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", s.drawn+2))
	}
}

// SetMessage replaces the status text from the next frame on.
func (s *Spinner) SetMessage(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = msg
}

// Message returns the current status text.
func (s *Spinner) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message
}

// Stop ends the animation and clears the line. It is safe to call more
// than once, and on a spinner that never started.
func (s *Spinner) Stop() {
	s.stopOnce.Do(func() {
		s.cancel()
		// An unstarted spinner has no loop to close stopped.
		s.startOnce.Do(func() { close(s.stopped) })
		<-s.stopped
	})
}

// StopWithError stops the spinner and prints an error line.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

// Cancelled reports whether the spinner's context has ended.
func (s *Spinner) Cancelled() bool {
	return s.ctx.Err() != nil
}

// OnStageStart shows the label of the stage that just began.
func (s *Spinner) OnStageStart(_ context.Context, stage string) {
	if msg, ok := stageMessages[stage]; ok {
		s.SetMessage(msg)
	}
}
