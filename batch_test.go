package dancefile

import (
	"context"
	"errors"
	"path/filepath"
	"sync/atomic"
	"testing"
)

func TestLoadMany(t *testing.T) {
	paths := []string{plainMP3(t), danceMP3(t, payloadOf(64)), plainMP3(t)}

	var calls atomic.Int32
	detector := BeatDetectorFunc(func([]float32) []int64 {
		calls.Add(1)
		return nil
	})

	files, err := LoadMany(context.Background(), paths, WithBeatDetector(detector))
	if err != nil {
		t.Fatalf("LoadMany failed: %v", err)
	}

	if len(files) != len(paths) {
		t.Fatalf("got %d files, want %d", len(files), len(paths))
	}
	for i, f := range files {
		if f.Path() != paths[i] {
			t.Errorf("files[%d].Path() = %q, want %q", i, f.Path(), paths[i])
		}
	}
	if !files[1].IsDanceFile() || files[0].IsDanceFile() {
		t.Error("dance flags out of order")
	}
	if calls.Load() != int32(len(paths)) {
		t.Errorf("detector called %d times, want %d", calls.Load(), len(paths))
	}
}

func TestLoadMany_Empty(t *testing.T) {
	files, err := LoadMany(context.Background(), nil)
	if err != nil || files != nil {
		t.Errorf("LoadMany(nil) = %v, %v", files, err)
	}
}

func TestLoadMany_Error(t *testing.T) {
	paths := []string{plainMP3(t), filepath.Join(t.TempDir(), "missing.mp3")}

	files, err := LoadMany(context.Background(), paths)
	if files != nil {
		t.Error("expected no files on error")
	}
	if !errors.Is(err, ErrFileDoesNotExist) {
		t.Errorf("expected FileDoesNotExist, got %v", err)
	}
}

func TestLoadMany_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	files, err := LoadMany(ctx, []string{plainMP3(t), plainMP3(t)})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if files != nil {
		t.Error("expected no files after cancellation")
	}
}
