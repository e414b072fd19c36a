// Package dancefile reads and writes dance files: ordinary MP3 files that
// carry a robot choreography alongside the music.
//
// A dance file plays as normal music in any player. Stereo channel 1 holds
// the music and channel 0 holds a control signal. The choreography itself is
// kept as opaque bytes in a small container placed between the ID3v2 tag and
// the first audio frame, where players skip it.
//
// # Quick Start
//
// Loading a file:
//
//	f := dancefile.New()
//	if err := f.Load("song.mp3"); err != nil {
//		log.Fatal(err)
//	}
//
//	fmt.Println(f.Tags())
//	if f.IsDanceFile() {
//		fmt.Printf("choreography: %d bytes\n", len(f.Payload))
//	}
//
// Embedding a choreography and writing it back:
//
//	f.Payload = choreography
//	f.SetArtist("Roboto")
//	if err := f.Save("dance.mp3"); err != nil {
//		log.Fatal(err)
//	}
//
// # Audio Pipeline
//
// Load decodes the whole file, resamples both channels to 44.1 kHz and reads
// the tags. Save normalizes the music to a fixed RMS level, re-encodes both
// channels at 44.1 kHz stereo and writes a fresh ID3v2.4 tag:
//
//	[ID3v2 tag] [DANCEBOT | length | payload | DANCEBOT] [MPEG frames ...]
//
// Every file written by Save carries a container, so it loads back as a dance
// file even when the payload is empty.
//
// # Error Handling
//
// Every failure is an *Error carrying one Result code. Use CodeOf or
// errors.Is against the package sentinels:
//
//	if errors.Is(err, dancefile.ErrFileDoesNotExist) {
//		...
//	}
//
// A failed Load leaves the File cleared. A failed Save leaves both the File
// and the target path unchanged.
//
// # Logging
//
// Load and Save log through log/slog. Pass WithLogger to see them; the default
// logger discards everything.
package dancefile
