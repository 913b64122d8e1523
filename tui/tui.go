// Package tui is the terminal host of `grauman play`. An mpv process renders
// the media while the terminal shows the controls a MediaPlayer derives and
// forwards key presses and mouse drags to it.
package tui

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/grauman/grauman/asset"
	"github.com/grauman/grauman/grauman"
	"github.com/grauman/grauman/history"
	"github.com/grauman/grauman/log"
	"github.com/grauman/grauman/playback"
	"github.com/grauman/grauman/player"
	"github.com/grauman/grauman/util"
	"github.com/grauman/grauman/viewer"
	"github.com/hashicorp/go-multierror"
)

var ErrNotMedia = errors.New("only audio and video files can be played in the terminal")

// Options configure the terminal player.
type Options struct {
	File  *asset.Descriptor
	Title string
	// Binary is the mpv executable.
	Binary string
	// Settings carry the explicit player settings. File and NewEngine are replaced.
	Settings grauman.Settings
	// StartAt is the position playback begins from.
	StartAt float64
	// Record saves the final position to the playback history.
	Record bool
}

// Run plays opts.File until the user quits or mpv exits.
func Run(opts Options) error {
	if opts.File == nil {
		return grauman.ErrInvalidFile
	}
	if kind := viewer.Select(opts.File, viewer.Desktop); kind.Family() != viewer.FamilyMedia {
		return fmt.Errorf("%w: %s is %s", ErrNotMedia, opts.File.URL(), kind)
	}

	scr := &screen{}
	var engine *player.MPV

	settings := opts.Settings
	settings.File = opts.File
	settings.NewEngine = func(kind viewer.Kind, d *asset.Descriptor) (playback.Engine, error) {
		m, err := player.New(d.URL(), player.Options{
			Binary: opts.Binary,
			Title:  opts.Title,
			Window:  kind != viewer.Audio,
			StartAt: opts.StartAt,
		})
		if err != nil {
			return nil, err
		}
		engine = m
		scr.setFullscreen(m.SetFullscreen)
		return m, nil
	}

	mediaPlayer, err := grauman.NewMediaPlayer(scr, settings)
	if err != nil {
		return err
	}

	b := newBubble(mediaPlayer, scr, opts.Title)
	if w, h, err := util.TerminalSize(); err == nil {
		b.resize(w, h)
	}
	program := tea.NewProgram(b, tea.WithAltScreen(), tea.WithMouseCellMotion())

	err = engine.Start(func(name string, payload any) {
		mediaPlayer.HandleEngineEvent(name, payload)
		program.Send(engineMsg{name: name, payload: payload})
	})
	if err != nil {
		return multierror.Append(err, mediaPlayer.Destroy()).ErrorOrNil()
	}
	b.exited = engine.Wait()

	_, err = program.Run()
	if opts.Record {
		record(mediaPlayer, opts.Title)
	}
	return multierror.Append(err, mediaPlayer.Destroy()).ErrorOrNil()
}

func record(p *grauman.MediaPlayer, title string) {
	entry := &history.Entry{
		URL:      p.File().URL(),
		Title:    title,
		Kind:     p.Kind().String(),
		Position: p.CurrentTime(),
		Duration: p.Duration(),
	}
	if p.State().Status == playback.Ended {
		entry.Position = entry.Duration
	}

	if err := history.Save(entry); err != nil {
		log.Warnf("playback history not saved: %s", err)
	}
}
