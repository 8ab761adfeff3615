package speech

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"
)

var ErrUnavailable = errors.New("speech: no playback path succeeded")

// DefaultPlayer reads mp3 from stdin.
const DefaultPlayer = "mpv --really-quiet --no-video -"

func DefaultSynthesizer() string {
	if runtime.GOOS == "darwin" {
		return "say"
	}
	return "espeak"
}

// Runner executes name with args, feeding stdin when non-nil.
type Runner func(ctx context.Context, name string, args []string, stdin []byte) error

func execRunner(ctx context.Context, name string, args []string, stdin []byte) error {
	cmd := exec.CommandContext(ctx, name, args...)
	if stdin != nil {
		cmd.Stdin = bytes.NewReader(stdin)
	}
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(out)))
	}
	return nil
}

type Speaker struct {
	client      *Client
	player      []string
	synthesizer []string
	run         Runner
	log         *log.Logger
}

type SpeakerOption func(*Speaker)

func WithRunner(r Runner) SpeakerOption {
	return func(s *Speaker) { s.run = r }
}

// NewSpeaker splits player and synthesizer on whitespace; an empty string
// disables that path.
func NewSpeaker(client *Client, player, synthesizer string, logger *log.Logger, opts ...SpeakerOption) *Speaker {
	s := &Speaker{
		client:      client,
		player:      strings.Fields(player),
		synthesizer: strings.Fields(synthesizer),
		run:         execRunner,
		log:         logger.WithPrefix("speech"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Speak tries, in order: synthesized audio, the static fallback clip, the
// local synthesizer. It reports which path played.
func (s *Speaker) Speak(ctx context.Context, text, lang string) (string, error) {
	audio, err := s.client.Fetch(ctx, text, lang)
	if err != nil {
		return "", err
	}
	var errs []error
	if !audio.IsFallback() {
		err := s.play(ctx, audio.Data)
		if err == nil {
			return "tts", nil
		}
		errs = append(errs, err)
	}
	if audio.FallbackURL != "" && len(s.player) > 0 {
		data, err := s.client.Download(ctx, audio.FallbackURL)
		if err == nil {
			err = s.play(ctx, data)
		}
		if err == nil {
			return "fallback", nil
		}
		errs = append(errs, err)
	}
	if len(s.synthesizer) > 0 {
		args := append(append([]string(nil), s.synthesizer[1:]...), text)
		err := s.run(ctx, s.synthesizer[0], args, nil)
		if err == nil {
			return "synthesizer", nil
		}
		errs = append(errs, err)
	}
	joined := errors.Join(errs...)
	s.log.Warn("speak failed", "lang", lang, "err", joined)
	if joined == nil {
		return "", ErrUnavailable
	}
	return "", fmt.Errorf("%w: %w", ErrUnavailable, joined)
}

func (s *Speaker) play(ctx context.Context, data []byte) error {
	if len(s.player) == 0 {
		return errors.New("speech: no player configured")
	}
	return s.run(ctx, s.player[0], s.player[1:], data)
}
