package descriptor

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"arcade-catalog/core/model"
	"arcade-catalog/core/utils"
)

// ErrUnsupportedRoot is returned for documents whose root is neither <mame> nor <datafile>.
var ErrUnsupportedRoot = errors.New("unsupported descriptor root")

// Supported root elements.
const (
	RootMAME     = "mame"
	RootDatafile = "datafile"
)

type xmlRom struct {
	Name string `xml:"name,attr"`
	Size string `xml:"size,attr"`
	CRC  string `xml:"crc,attr"`
	SHA1 string `xml:"sha1,attr"`
}

type xmlDisk struct {
	Name string `xml:"name,attr"`
	MD5  string `xml:"md5,attr"`
	SHA1 string `xml:"sha1,attr"`
}

type xmlAttrs struct {
	Attrs []xml.Attr `xml:",any,attr"`
}

type xmlGame struct {
	Name         string `xml:"name,attr"`
	CloneOf      string `xml:"cloneof,attr"`
	RomOf        string `xml:"romof,attr"`
	IsBIOS       string `xml:"isbios,attr"`
	IsDevice     string `xml:"isdevice,attr"`
	Runnable     string `xml:"runnable,attr"`
	IsMechanical string `xml:"ismechanical,attr"`

	Description  string `xml:"description"`
	Year         string `xml:"year"`
	Manufacturer string `xml:"manufacturer"`

	Roms     []xmlRom   `xml:"rom"`
	Disks    []xmlDisk  `xml:"disk"`
	Driver   *xmlAttrs  `xml:"driver"`
	Features []xmlAttrs `xml:"feature"`
}

// Walk streams the games of a descriptor document to fn and returns the root element name.
// Elements other than <game> and <machine> (headers, comments) are skipped. An error from fn
// stops the walk and is returned.
func Walk(r io.Reader, fn func(model.GameDescriptor) error) (string, error) {
	dec := xml.NewDecoder(r)
	root := ""
	depth := 0

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			if root == "" {
				return "", fmt.Errorf("%w: empty document", ErrUnsupportedRoot)
			}
			return root, nil
		}
		if err != nil {
			return root, fmt.Errorf("read descriptor: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if depth == 0 {
				root = t.Name.Local
				if root != RootMAME && root != RootDatafile {
					return root, fmt.Errorf("%w: <%s>", ErrUnsupportedRoot, root)
				}
				depth++
				continue
			}
			if t.Name.Local != "game" && t.Name.Local != "machine" {
				if err := dec.Skip(); err != nil {
					return root, fmt.Errorf("read descriptor: %w", err)
				}
				continue
			}
			var g xmlGame
			if err := dec.DecodeElement(&g, &t); err != nil {
				return root, fmt.Errorf("decode %s: %w", t.Name.Local, err)
			}
			if err := fn(g.descriptor()); err != nil {
				return root, err
			}
		case xml.EndElement:
			depth--
			if depth == 0 {
				return root, nil
			}
		}
	}
}

// Parse reads every game of a descriptor document in document order.
func Parse(r io.Reader) ([]model.GameDescriptor, error) {
	var games []model.GameDescriptor
	_, err := Walk(r, func(g model.GameDescriptor) error {
		games = append(games, g)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return games, nil
}

func (g xmlGame) descriptor() model.GameDescriptor {
	d := model.GameDescriptor{
		Name:         g.Name,
		Description:  g.Description,
		Year:         g.Year,
		Manufacturer: g.Manufacturer,
		IsBIOS:       utils.ToBool(g.IsBIOS, false),
		IsDevice:     utils.ToBool(g.IsDevice, false),
		Runnable:     utils.ToBool(g.Runnable, true),
		IsMechanical: utils.ToBool(g.IsMechanical, false),
		CloneOf:      g.CloneOf,
		RomOf:        g.RomOf,
	}
	for _, r := range g.Roms {
		d.Roms = append(d.Roms, model.RomSpec{Name: r.Name, Size: utils.ToInt64(r.Size), CRC: r.CRC, SHA1: r.SHA1})
	}
	for _, k := range g.Disks {
		d.Disks = append(d.Disks, model.DiskSpec{Name: k.Name, MD5: k.MD5, SHA1: k.SHA1})
	}
	if g.Driver != nil {
		driver := driverSpec(g.Driver.Attrs)
		d.Driver = &driver
	}
	for _, f := range g.Features {
		d.Features = append(d.Features, featureSpec(f.Attrs))
	}
	return d
}

func driverSpec(attrs []xml.Attr) model.DriverSpec {
	var d model.DriverSpec
	fields := map[string]*string{
		"palettesize":     &d.PaletteSize,
		"hiscoresave":     &d.HiscoreSave,
		"requiresartwork": &d.RequiresArtwork,
		"unofficial":      &d.Unofficial,
		"good":            &d.Good,
		"status":          &d.Status,
		"graphic":         &d.Graphic,
		"cocktailmode":    &d.CocktailMode,
		"savestate":       &d.SaveState,
		"protection":      &d.Protection,
		"emulation":       &d.Emulation,
		"cocktail":        &d.Cocktail,
		"color":           &d.Color,
		"nosoundhardware": &d.NoSoundHardware,
		"sound":           &d.Sound,
		"incomplete":      &d.Incomplete,
	}
	d.Extra = assign(attrs, fields)
	return d
}

func featureSpec(attrs []xml.Attr) model.FeatureSpec {
	var f model.FeatureSpec
	f.Extra = assign(attrs, map[string]*string{
		"overall": &f.Overall,
		"type":    &f.Type,
		"status":  &f.Status,
	})
	return f
}

// assign copies known attributes into fields and returns the rest.
func assign(attrs []xml.Attr, fields map[string]*string) map[string]string {
	var extra map[string]string
	for _, a := range attrs {
		if dst, ok := fields[a.Name.Local]; ok {
			*dst = a.Value
			continue
		}
		if extra == nil {
			extra = make(map[string]string)
		}
		extra[a.Name.Local] = a.Value
	}
	return extra
}
