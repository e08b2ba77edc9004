// Package cmd implements the command-line interface for lyra.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/lyra-cli/lyra/artwork"
	"github.com/lyra-cli/lyra/audio"
	"github.com/lyra-cli/lyra/icon"
	"github.com/lyra-cli/lyra/key"
	"github.com/lyra-cli/lyra/log"
	"github.com/lyra-cli/lyra/lyrics"
	"github.com/lyra-cli/lyra/player"
	"github.com/lyra-cli/lyra/playlist"
	"github.com/lyra-cli/lyra/style"
	"github.com/lyra-cli/lyra/tui"
	"github.com/lyra-cli/lyra/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var errNothingToPlay = errors.New("nothing to play")

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("pick", "p", false, "Choose which of the found tracks to queue")
	cmd.Flags().StringP("match", "m", "", "Queue only tracks fuzzily matching the query")
	cmd.Flags().IntP("volume", "V", 0, "Initial volume from 0 to 100")
	cmd.Flags().Bool("null", false, "Discard audio instead of opening a device")
}

func init() {
	rootCmd.AddCommand(playCmd)
	addPlayFlags(playCmd)
}

var playCmd = &cobra.Command{
	Use:   "play <paths...>",
	Short: "Play audio files and directories",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(runPlay(cmd, args))
	},
}

// probe reads the metadata shown in the queue.
func probe(path string) player.Track {
	tags, err := audio.ReadTags(path)
	if err != nil {
		log.Debugf("probe %s: %v", path, err)
	}

	return player.Track{
		Locator:   path,
		Title:     tags.Title,
		Performer: tags.Performer,
		Album:     tags.Album,
		Duration:  tags.Duration,
	}
}

// buildPlaylist queues paths and narrows the queue by --match and --pick.
func buildPlaylist(cmd *cobra.Command, paths []string) (*playlist.Playlist, error) {
	pl := playlist.New(playlist.Options{
		Prober:    probe,
		Supported: audio.IsSupported,
		Ignored:   viper.GetStringSlice(key.PlaylistIgnoredExtensions),
	})

	added := pl.Add(paths...)
	log.Infof("queued %s", util.Quantify(len(added), "track", "tracks"))

	if query := lo.Must(cmd.Flags().GetString("match")); query != "" {
		found := pl.Find(query)
		if len(found) == 0 {
			return nil, fmt.Errorf("no track matches %q", query)
		}
		pl.Keep(found)
	}

	if lo.Must(cmd.Flags().GetBool("pick")) && pl.Len() > 0 {
		options := lo.Map(pl.Tracks(), func(t player.Track, i int) string {
			return fmt.Sprintf("%d. %s", i+1, lo.CoalesceOrEmpty(t.Title, util.FileStem(t.Locator)))
		})

		var chosen []string
		prompt := &survey.MultiSelect{
			Message:  "Tracks to play",
			Options:  options,
			Default:  options,
			PageSize: 15,
		}
		if err := survey.AskOne(prompt, &chosen); err != nil {
			return nil, err
		}

		pl.Keep(lo.Map(chosen, func(c string, _ int) int { return lo.IndexOf(options, c) }))
	}

	if pl.Len() == 0 {
		return nil, errNothingToPlay
	}
	return pl, nil
}

// newCoordinator wires the decoder, output device, lyric decoder and artwork holder.
func newCoordinator(cmd *cobra.Command) (*player.Coordinator, *artwork.Provider) {
	ms := func(k string) time.Duration {
		return time.Duration(viper.GetInt(k)) * time.Millisecond
	}

	sinkOptions := audio.SinkOptions{
		Buffer: ms(key.AudioBufferMs),
		Period: ms(key.AudioPeriodMs),
	}

	null := viper.GetBool(key.AudioNull)
	if cmd.Flags().Changed("null") {
		null = lo.Must(cmd.Flags().GetBool("null"))
	}

	var sink player.Sink
	if null {
		sink = audio.NewNullSink(sinkOptions)
	} else {
		sink = audio.NewSink(sinkOptions)
	}

	volume := viper.GetInt(key.PlayerVolume)
	if cmd.Flags().Changed("volume") {
		volume = lo.Must(cmd.Flags().GetInt("volume"))
	}

	art := artwork.NewProvider()
	opts := player.Options{
		Source: audio.NewSource(audio.SourceOptions{
			SampleRate:   viper.GetInt(key.AudioSampleRate),
			PacketFrames: viper.GetInt(key.AudioPacketFrames),
		}),
		Sink:              sink,
		Artwork:           art,
		Volume:            volume,
		LyricExtension:    viper.GetString(key.LyricsExtension),
		DumpLyricMetadata: viper.GetBool(key.LyricsDumpMetadata),
	}
	if viper.GetBool(key.LyricsEnable) {
		opts.Lyrics = lyrics.NewLRC()
	}

	return player.New(opts), art
}

func runPlay(cmd *cobra.Command, paths []string) error {
	pl, err := buildPlaylist(cmd, paths)
	if err != nil {
		return err
	}

	coordinator, art := newCoordinator(cmd)

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer cancel()

	go func() {
		if err := coordinator.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error(err)
		}
	}()
	defer func() {
		cancel()
		<-coordinator.Done()
	}()

	if !util.IsTerminal() {
		return runHeadless(ctx, coordinator, pl)
	}

	return tui.Run(&tui.Options{
		Controller: coordinator,
		Playlist:   pl,
		Artwork:    art,
	})
}

// runHeadless plays the queue once without a screen, reporting each track.
func runHeadless(ctx context.Context, coordinator *player.Coordinator, pl *playlist.Playlist) error {
	events := make(chan player.Event, 16)
	coordinator.SetEmitter(func(event player.Event) {
		switch event.Kind {
		case player.TrackChanged, player.Finished, player.Error:
			select {
			case events <- event:
			case <-ctx.Done():
			}
		}
	})
	defer coordinator.SetEmitter(nil)

	next := func() error {
		track, ok := pl.Next(false).Get()
		if !ok {
			return nil
		}
		return coordinator.Play(track)
	}

	if err := coordinator.Play(pl.Current().MustGet()); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-coordinator.Done():
			return nil
		case event := <-events:
			switch event.Kind {
			case player.TrackChanged:
				track := coordinator.Snapshot().Track
				fmt.Printf("%s %s\n", icon.Get(icon.Play), lo.CoalesceOrEmpty(track.Title, util.FileStem(track.Locator)))
			case player.Error:
				fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), style.Faint(event.Err.Error()))
				if coordinator.Snapshot().State != player.Idle {
					continue
				}
				if pl.Index() == pl.Len()-1 {
					return nil
				}
				if err := next(); err != nil {
					return err
				}
			case player.Finished:
				if pl.Index() == pl.Len()-1 {
					return nil
				}
				if err := next(); err != nil {
					return err
				}
			}
		}
	}
}
