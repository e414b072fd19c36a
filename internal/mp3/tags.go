package mp3

import (
	"bytes"
	"errors"
	"strconv"

	"github.com/bogem/id3v2/v2"
	"github.com/dhowden/tag"

	"github.com/simonhull/dancefile/internal/types"
)

// ReadTags reads artist, title and comment from the bitstream's tag region.
//
// A bitstream without tags yields zero Tags and no error.
func ReadTags(bitstream []byte) (types.Tags, error) {
	m, err := tag.ReadFrom(bytes.NewReader(bitstream))
	if err != nil {
		if errors.Is(err, tag.ErrNoTagsFound) {
			return types.Tags{}, nil
		}
		return types.Tags{}, err
	}

	return types.Tags{
		Artist:  m.Artist(),
		Title:   m.Title(),
		Comment: m.Comment(),
	}, nil
}

// WriteTags replaces any leading ID3v2 tag in body with a fresh ID3v2.4 tag
// built from tags.
func WriteTags(body []byte, tags types.Tags) ([]byte, error) {
	body = body[TagSize(body):]

	t := id3v2.NewEmptyTag()
	t.SetVersion(4)
	t.SetDefaultEncoding(id3v2.EncodingUTF8)
	t.SetArtist(tags.Artist)
	t.SetTitle(tags.Title)

	if tags.Comment != "" {
		t.AddCommentFrame(id3v2.CommentFrame{
			Encoding: id3v2.EncodingUTF8,
			Language: "eng",
			Text:     tags.Comment,
		})
	}

	if tags.Duration > 0 {
		t.AddTextFrame("TLEN", id3v2.EncodingUTF8, strconv.FormatInt(tags.Duration.Milliseconds(), 10))
	}

	var buf bytes.Buffer
	if _, err := t.WriteTo(&buf); err != nil {
		return nil, &types.Error{Code: types.TagWriteError, Op: "tags", Err: err}
	}
	buf.Write(body)

	return buf.Bytes(), nil
}
