package descriptor

import (
	"bytes"
	"compress/bzip2"
	"errors"
	"io"
	"strings"
	"testing"

	"arcade-catalog/core/model"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
)

const sampleMAME = `<?xml version="1.0"?>
<!DOCTYPE mame [
<!ELEMENT mame (machine+)>
]>
<mame build="0.263" debug="no" mameconfig="10">
	<machine name="mslug2" sourcefile="neogeo/neogeo.cpp" romof="neogeo">
		<description>Metal Slug 2 - Super Vehicle-001/II</description>
		<year>1998</year>
		<manufacturer>SNK</manufacturer>
		<rom name="241-p1.p1" size="2097152" crc="2a53c5da" sha1="5a6aba482cac588a6c2c51179c95b487c6e11899"/>
		<rom name="sp-s2.sp1" size="131072" crc="9036d879" sha1="4f5ed7105b7128794654ce82b51723e16e389543" bios="euro"/>
		<feature type="graphics" status="imperfect"/>
		<driver status="imperfect" emulation="good" savestate="supported" requiresdisk="no"/>
	</machine>
	<machine name="neogeo" isbios="yes" runnable="no">
		<description>Neo-Geo MV-6F</description>
		<rom name="sp-s2.sp1" size="131072" crc="9036d879"/>
	</machine>
	<machine name="cdgame">
		<disk name="cd" md5="0123" sha1="abcd"/>
		<disk name="undumped" status="nodump"/>
	</machine>
</mame>`

const sampleDatafile = `<?xml version="1.0"?>
<datafile>
	<header><name>MAME</name><version>0.37b5</version></header>
	<game name="pacman" cloneof="puckman" romof="puckman">
		<description>Pac-Man (Midway)</description>
		<rom name="pacman.6e" merge="pacman.6e" crc="c1e6ab10"/>
	</game>
</datafile>`

func TestParse_MAME(t *testing.T) {
	games, err := Parse(strings.NewReader(sampleMAME))
	require.NoError(t, err)
	require.Len(t, games, 3)

	mslug2 := games[0]
	assert.Equal(t, "mslug2", mslug2.Name)
	assert.Equal(t, "neogeo", mslug2.RomOf)
	assert.Empty(t, mslug2.CloneOf)
	assert.Equal(t, "1998", mslug2.Year)
	assert.Equal(t, "SNK", mslug2.Manufacturer)
	assert.True(t, mslug2.Runnable)
	assert.False(t, mslug2.IsBIOS)
	require.Len(t, mslug2.Roms, 2)
	assert.Equal(t, model.RomSpec{Name: "241-p1.p1", Size: 2097152, CRC: "2a53c5da", SHA1: "5a6aba482cac588a6c2c51179c95b487c6e11899"}, mslug2.Roms[0])
	require.NotNil(t, mslug2.Driver)
	assert.Equal(t, "imperfect", mslug2.Driver.Status)
	assert.Equal(t, "supported", mslug2.Driver.SaveState)
	assert.Equal(t, map[string]string{"requiresdisk": "no"}, mslug2.Driver.Extra)
	assert.Equal(t, []model.FeatureSpec{{Type: "graphics", Status: "imperfect"}}, mslug2.Features)

	neogeo := games[1]
	assert.True(t, neogeo.IsBIOS)
	assert.False(t, neogeo.Runnable)
	assert.Nil(t, neogeo.Driver)

	cd := games[2]
	assert.Equal(t, []model.DiskSpec{{Name: "cd", MD5: "0123", SHA1: "abcd"}, {Name: "undumped"}}, cd.Disks)
}

func TestParse_Datafile(t *testing.T) {
	games, err := Parse(strings.NewReader(sampleDatafile))
	require.NoError(t, err)
	require.Len(t, games, 1)

	assert.Equal(t, "puckman", games[0].CloneOf)
	// A rom without size keeps zero
	assert.Equal(t, int64(0), games[0].Roms[0].Size)
}

func TestParse_UnsupportedRoot(t *testing.T) {
	_, err := Parse(strings.NewReader(`<softwarelist name="a2600"></softwarelist>`))
	assert.True(t, errors.Is(err, ErrUnsupportedRoot))

	_, err = Parse(strings.NewReader(""))
	assert.True(t, errors.Is(err, ErrUnsupportedRoot))
}

func TestParse_Truncated(t *testing.T) {
	_, err := Parse(strings.NewReader(sampleMAME[:len(sampleMAME)/2]))
	assert.Error(t, err)
}

func TestWalk_Root(t *testing.T) {
	root, err := Walk(strings.NewReader(sampleDatafile), func(model.GameDescriptor) error { return nil })
	require.NoError(t, err)
	assert.Equal(t, RootDatafile, root)
}

func TestWalk_StopsOnCallbackError(t *testing.T) {
	stop := errors.New("stop")
	seen := 0
	_, err := Walk(strings.NewReader(sampleMAME), func(model.GameDescriptor) error {
		seen++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, seen)
}

func TestOpen(t *testing.T) {
	payload := []byte(sampleDatafile)

	var xzBuf bytes.Buffer
	xw, err := xz.NewWriter(&xzBuf)
	require.NoError(t, err)
	_, err = xw.Write(payload)
	require.NoError(t, err)
	require.NoError(t, xw.Close())

	var zstdBuf bytes.Buffer
	zw, err := zstd.NewWriter(&zstdBuf)
	require.NoError(t, err)
	_, err = zw.Write(payload)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	tests := []struct {
		name string
		data []byte
	}{
		{name: "MAME 0.37b5.dat", data: payload},
		{name: "MAME 0.37b5.dat.xz", data: xzBuf.Bytes()},
		{name: "MAME 0.37b5.dat.zst", data: zstdBuf.Bytes()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc, err := Open(tt.name, bytes.NewReader(tt.data))
			require.NoError(t, err)
			defer rc.Close()

			got, err := io.ReadAll(rc)
			require.NoError(t, err)
			assert.Equal(t, payload, got)
		})
	}
}

func TestOpen_Bzip2(t *testing.T) {
	// compress/bzip2 only decompresses; an invalid stream must fail on read
	rc, err := Open("MAME 0.100.xml.bz2", strings.NewReader("not bzip2"))
	require.NoError(t, err)
	_, err = io.ReadAll(rc)
	var structural bzip2.StructuralError
	assert.ErrorAs(t, err, &structural)
}

func TestOpen_BadXZ(t *testing.T) {
	_, err := Open("MAME 0.100.xml.xz", strings.NewReader("not xz"))
	assert.Error(t, err)
}
