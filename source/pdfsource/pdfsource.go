package pdfsource

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/layoutkit/contentstream"
	"github.com/tsawler/layoutkit/font"
	"github.com/tsawler/layoutkit/graphicsstate"
	"github.com/tsawler/layoutkit/model"
	"github.com/tsawler/layoutkit/source"
)

// Config controls PDF loading.
type Config struct {
	// Logger receives warnings about unreadable pages and fonts.
	// Default: slog.Default()
	Logger *slog.Logger

	// Strict turns on pdfcpu's strict validation. Default: false (relaxed)
	Strict bool
}

func (c *Config) defaults() {
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Open reads the PDF at path into an in-memory document.
func Open(ctx context.Context, path string, config Config) (*source.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()
	return Read(ctx, f, config)
}

// Read reads a PDF from rs. A page whose content cannot be read is logged
// and contributes no fragments; only an unreadable document is an error.
func Read(ctx context.Context, rs io.ReadSeeker, config Config) (*source.Document, error) {
	config.defaults()

	conf := pdfmodel.NewDefaultConfiguration()
	if !config.Strict {
		conf.ValidationMode = pdfmodel.ValidationRelaxed
	}
	pdf, err := api.ReadValidateAndOptimize(rs, conf)
	if err != nil {
		return nil, fmt.Errorf("pdfcpu read: %w", err)
	}
	if pdf.PageCount == 0 {
		return nil, source.ErrNoPages
	}

	geoms := pageGeometry(pdf, config.Logger)
	fonts := newFontCache(pdf, config.Logger)

	var frags []model.TextFragment
	var lines []model.LineSegment
	seq := 0
	for pageNr := 1; pageNr <= pdf.PageCount; pageNr++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		data, err := pageContent(pdf, pageNr)
		if err != nil {
			config.Logger.Warn("page content unreadable", "page", pageNr, "err", err)
			continue
		}
		ops, err := contentstream.Parse(data)
		if err != nil {
			config.Logger.Warn("content stream truncated", "page", pageNr, "operations", len(ops), "err", err)
		}

		ex := graphicsstate.NewExtractor(pageNr, decoder(fonts.page(pageNr)))
		ex.Seq = seq
		ex.Run(ops)
		seq = ex.Seq

		config.Logger.Debug("page extracted", "page", pageNr, "fragments", len(ex.Fragments), "lines", len(ex.Lines))
		frags = append(frags, ex.Fragments...)
		lines = append(lines, ex.Lines...)
	}

	return source.NewDocument(geoms, frags, lines), nil
}

func pageGeometry(pdf *pdfmodel.Context, log *slog.Logger) []model.PageGeometry {
	geoms := make([]model.PageGeometry, pdf.PageCount)
	for i := range geoms {
		geoms[i] = model.DefaultPageGeometry(i + 1)
	}
	dims, err := pdf.PageDims()
	if err != nil {
		log.Warn("page sizes unreadable, using defaults", "err", err)
		return geoms
	}
	for i, d := range dims {
		if i < len(geoms) && d.Width > 0 && d.Height > 0 {
			geoms[i].Width = d.Width
			geoms[i].Height = d.Height
		}
	}
	return geoms
}

func pageContent(pdf *pdfmodel.Context, pageNr int) ([]byte, error) {
	r, err := pdfcpu.ExtractPageContent(pdf, pageNr)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, nil
	}
	return io.ReadAll(r)
}

// decoder maps hex strings through the page's ToUnicode maps and reads
// literal strings byte-wise. All text is NFC normalized.
func decoder(cmaps map[string]*font.CMap) graphicsstate.DecodeFunc {
	return func(fontName string, s contentstream.Operand) string {
		var text string
		if s.Kind == contentstream.KindHexString {
			text = cmaps[fontName].Decode([]byte(s.Str))
		} else {
			text = graphicsstate.Latin1(s.Str)
		}
		return norm.NFC.String(text)
	}
}
