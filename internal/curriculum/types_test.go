package curriculum

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDesign(t *testing.T) *Design {
	t.Helper()
	d, err := NewGenerator(nil, nil, nil, DefaultConfig()).parse(floatingCityJSON())
	require.NoError(t, err)
	return d
}

func TestLessonContext(t *testing.T) {
	d := sampleDesign(t)
	assert.Equal(t,
		"Lesson: Floating Futures: Our City on the Sea. Overview: "+d.Overview+
			". Role: Ocean Engineer. Joy Mechanism: "+d.JoyMechanism.Description,
		d.LessonContext())
}

func TestGreeting(t *testing.T) {
	d := sampleDesign(t)
	assert.Equal(t,
		`Hi! I'm your Ocean Engineer. What would you like to discuss about the "Floating Futures: Our City on the Sea" project?`,
		d.Greeting())
}

func TestImageRoundTrip(t *testing.T) {
	uri := EncodeImage("image/jpeg", []byte{0xff, 0xd8, 0xff})
	assert.Equal(t, "data:image/jpeg;base64,/9j/", uri)

	data, mime, err := DecodeImage(uri)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", mime)
	assert.Equal(t, []byte{0xff, 0xd8, 0xff}, data)
	assert.Equal(t, ".jpg", ImageExtension(mime))

	assert.Equal(t, "data:image/png;base64,", EncodeImage("", nil))
}

func TestDecodeImageErrors(t *testing.T) {
	for _, uri := range []string{
		"",
		"https://example.com/a.png",
		"data:image/png;base64",
		"data:image/png,plain",
		"data:image/png;base64,***",
	} {
		_, _, err := DecodeImage(uri)
		assert.Error(t, err, uri)
	}
}

func TestWriteImage(t *testing.T) {
	d := sampleDesign(t)
	dir := t.TempDir()

	_, err := d.WriteImage(filepath.Join(dir, "none"))
	assert.ErrorIs(t, err, ErrNoImage)

	d.ImageURL = EncodeImage("image/jpeg", []byte{0xff, 0xd8, 0xff})
	path, err := d.WriteImage(filepath.Join(dir, d.Slug()))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "floating-futures-our-city-on-the-sea.jpg"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xff, 0xd8, 0xff}, data)

	path, err = d.WriteImage(filepath.Join(dir, "cover.img"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "cover.img"), path)
}

func TestMarkdown(t *testing.T) {
	md := sampleDesign(t).Markdown()
	assert.Contains(t, md, "# Floating Futures: Our City on the Sea\n")
	assert.Contains(t, md, "### Science: Buoyancy and the water cycle")
	assert.Contains(t, md, "- Make a solar still from a bowl and cling film")
	assert.Contains(t, md, "## Joy Mechanism: Storm Challenge")
	assert.Contains(t, md, "| Systems Thinking | 73 |")
}

func TestOutline(t *testing.T) {
	d := sampleDesign(t)
	out := d.Outline()
	assert.True(t, strings.HasPrefix(out, "Floating Futures: Our City on the Sea\n"))
	assert.Contains(t, out, "Modules\n")
	assert.Contains(t, out, "Growth metrics\n")
	assert.NotContains(t, out, "#")
	assert.NotContains(t, out, "Illustration")

	d.ImageURL = EncodeImage("", []byte{1})
	assert.Contains(t, d.Outline(), "Illustration: attached")
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "floating-futures-our-city-on-the-sea", sampleDesign(t).Slug())
	assert.Equal(t, "curriculum", (&Design{Title: "!!!"}).Slug())
}
