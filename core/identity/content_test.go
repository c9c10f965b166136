package identity

import (
	"testing"

	"arcade-catalog/core/model"

	"github.com/stretchr/testify/assert"
)

func TestContentHash(t *testing.T) {
	assert.Equal(t, model.ContentHash("d41d8cd98f00b204e9800998ecf8427e"), ContentHash(nil))

	a := ContentHash(map[string]string{"a": "x", "b": "y"})
	b := ContentHash(map[string]string{"b": "y", "a": "x"})
	assert.Equal(t, a, b)
	assert.Len(t, string(a), 32)
}

func TestContentHash_ShiftedValuesDiffer(t *testing.T) {
	a := ContentHash(map[string]string{"a": "x", "b": ""})
	b := ContentHash(map[string]string{"a": "", "b": "x"})
	assert.NotEqual(t, a, b)
}

func TestDriverHash(t *testing.T) {
	good := model.DriverSpec{Status: "good", Emulation: "good"}
	imperfect := model.DriverSpec{Status: "imperfect", Emulation: "good"}

	assert.Equal(t, DriverHash(good), DriverHash(model.DriverSpec{Status: "good", Emulation: "good"}))
	assert.NotEqual(t, DriverHash(good), DriverHash(imperfect))
}

func TestDriverHash_ExtraAttributes(t *testing.T) {
	base := model.DriverSpec{Status: "good"}
	extended := model.DriverSpec{Status: "good", Extra: map[string]string{"requiresdisk": "yes"}}
	shadow := model.DriverSpec{Status: "good", Extra: map[string]string{"status": "preliminary"}}

	assert.NotEqual(t, DriverHash(base), DriverHash(extended))
	assert.Equal(t, DriverHash(base), DriverHash(shadow))
}

func TestFeatureHash(t *testing.T) {
	f1 := model.FeatureSpec{Type: "sound", Status: "imperfect"}
	f2 := model.FeatureSpec{Type: "graphics", Status: "imperfect"}

	assert.NotEqual(t, FeatureHash(f1), FeatureHash(f2))
	assert.Equal(t, FeatureHash(f1), FeatureHash(model.FeatureSpec{Type: "sound", Status: "imperfect"}))
}

func TestDiskHash(t *testing.T) {
	assert.NotEqual(t,
		DiskHash(model.DiskSpec{Name: "cd", MD5: "m"}),
		DiskHash(model.DiskSpec{Name: "cd", SHA1: "m"}),
	)
}

func TestReleaseKey(t *testing.T) {
	assert.Equal(t, ReleaseKey("MAME", "0.263"), ReleaseKey("MAME", "0.263"))
	assert.NotEqual(t, ReleaseKey("MAME", "0.263"), ReleaseKey("MAME", "0.264"))
	assert.NotEqual(t, ReleaseKey("MAME", "0.263"), ReleaseKey("MESS", "0.263"))
}

func TestLinkHash(t *testing.T) {
	r1 := ReleaseKey("MAME", "0.1")
	r2 := ReleaseKey("MAME", "0.2")
	assert.NotEqual(t, LinkHash("g", r1), LinkHash("g", r2))
	assert.NotEqual(t, GameRomHash("g", "r"), GameRomHash("r", "g"))
}
