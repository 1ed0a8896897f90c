package pdfsource

import (
	"log/slog"

	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/tsawler/layoutkit/font"
)

// fontCache reads each font's ToUnicode map once per document.
type fontCache struct {
	pdf   *pdfmodel.Context
	log   *slog.Logger
	byObj map[int]*font.CMap
}

func newFontCache(pdf *pdfmodel.Context, log *slog.Logger) *fontCache {
	return &fontCache{pdf: pdf, log: log, byObj: make(map[int]*font.CMap)}
}

// page returns the ToUnicode maps of the fonts in a page's resources,
// keyed by resource name. Fonts without a map are absent.
func (fc *fontCache) page(pageNr int) map[string]*font.CMap {
	d, _, inh, err := fc.pdf.PageDict(pageNr, false)
	if err != nil || d == nil {
		return nil
	}

	var res types.Dict
	if o, found := d.Find("Resources"); found {
		res, _ = fc.pdf.DereferenceDict(o)
	}
	if res == nil && inh != nil {
		res = inh.Resources
	}
	if res == nil {
		return nil
	}
	o, found := res.Find("Font")
	if !found {
		return nil
	}
	fonts, err := fc.pdf.DereferenceDict(o)
	if err != nil || fonts == nil {
		return nil
	}

	out := make(map[string]*font.CMap)
	for name, obj := range fonts {
		if cm := fc.toUnicode(obj); cm != nil {
			out[name] = cm
		}
	}
	return out
}

func (fc *fontCache) toUnicode(obj types.Object) *font.CMap {
	key := -1
	if ir, ok := obj.(types.IndirectRef); ok {
		key = ir.ObjectNumber.Value()
		if cm, ok := fc.byObj[key]; ok {
			return cm
		}
	}

	cm := fc.readToUnicode(obj)
	if key >= 0 {
		fc.byObj[key] = cm
	}
	return cm
}

func (fc *fontCache) readToUnicode(obj types.Object) *font.CMap {
	fd, err := fc.pdf.DereferenceDict(obj)
	if err != nil || fd == nil {
		return nil
	}
	tu, found := fd.Find("ToUnicode")
	if !found {
		return nil
	}
	o, err := fc.pdf.Dereference(tu)
	if err != nil {
		fc.log.Warn("ToUnicode unreadable", "err", err)
		return nil
	}
	sd, ok := o.(types.StreamDict)
	if !ok {
		return nil
	}
	if err := sd.Decode(); err != nil {
		fc.log.Warn("ToUnicode stream undecodable", "err", err)
		return nil
	}
	cm := font.ParseCMap(sd.Content)
	if cm.Len() == 0 {
		return nil
	}
	return cm
}
