package service

import (
	"bytes"
	"encoding/base64"
	"paygate/api/internal/infra/cache"
	"time"

	"github.com/yeqown/go-qrcode/v2"
	"github.com/yeqown/go-qrcode/writer/standard"
)

type QrCodesService struct {
	cache *cache.Cache // content -> base64 png
	ttl   time.Duration
}

func NewQrCodesService(c *cache.Cache, ttl time.Duration) *QrCodesService {
	return &QrCodesService{cache: c, ttl: ttl}
}

func (s *QrCodesService) New(content string) (string, error) {
	qr, err := generateQrCode(content)
	if err != nil {
		return "", err
	}

	s.cache.Set(content, qr, s.ttl)

	return qr, nil
}

func (s *QrCodesService) FindOrNew(content string) (string, error) {
	if qr, ok := cache.LoadAs[string](s.cache, content); ok {
		return qr, nil
	}
	return s.New(content)
}

type smallerCircle struct {
	smallerPercent float64
}

// https://github.com/yeqown/go-qrcode/blob/main/example/with-custom-shape/main.go
func (sc *smallerCircle) DrawFinder(ctx *standard.DrawContext) {
	backup := sc.smallerPercent
	sc.smallerPercent = 1.0
	sc.Draw(ctx)
	sc.smallerPercent = backup
}

func newShape(radiusPercent float64) standard.IShape {
	return &smallerCircle{smallerPercent: radiusPercent}
}

func (sc *smallerCircle) Draw(ctx *standard.DrawContext) {
	w, h := ctx.Edge()
	x, y := ctx.UpperLeft()
	color := ctx.Color()

	radius := min(w/2, h/2)
	radius = int(float64(radius) * sc.smallerPercent)

	cx, cy := x+float64(w)/2.0, y+float64(h)/2.0 // center
	ctx.DrawCircle(cx, cy, float64(radius))
	ctx.SetColor(color)
	ctx.Fill()
}

type bufferCloser struct {
	*bytes.Buffer
}

func (b bufferCloser) Close() error {
	return nil
}

// returns png qr code in base64
func generateQrCode(content string) (string, error) {
	qrc, err := qrcode.New(content)
	if err != nil {
		return "", err
	}

	b := bufferCloser{Buffer: bytes.NewBuffer(nil)}
	w := standard.NewWithWriter(b, standard.WithCustomShape(newShape(0.7)), standard.WithBuiltinImageEncoder(standard.PNG_FORMAT))

	if err = qrc.Save(w); err != nil {
		return "", err
	}

	return base64.StdEncoding.EncodeToString(b.Bytes()), nil
}
