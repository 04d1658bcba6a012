package texture

import (
	"image"

	"github.com/pkg/errors"
)

// TGA image types this decoder understands.
const (
	tgaTrueColor    = 2
	tgaTrueColorRLE = 10
)

// DecodeTGA decodes an uncompressed or RLE-compressed true-color TGA file
// with 24 or 32 bits per pixel.
func DecodeTGA(data []byte) (*image.RGBA, error) {
	if len(data) < 18 {
		return nil, errors.New("tga: header too short")
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	topToBottom := data[17]&0x20 != 0

	if colorMapType != 0 {
		return nil, errors.New("tga: color-mapped images not supported")
	}
	if imageType != tgaTrueColor && imageType != tgaTrueColorRLE {
		return nil, errors.Errorf("tga: unsupported image type %d", imageType)
	}
	if bpp != 24 && bpp != 32 {
		return nil, errors.Errorf("tga: unsupported bit depth %d", bpp)
	}

	offset := 18 + idLength
	if offset > len(data) {
		return nil, errors.New("tga: truncated id field")
	}

	d := &tgaDecoder{
		src:         data[offset:],
		img:         image.NewRGBA(image.Rect(0, 0, width, height)),
		stride:      bpp / 8,
		width:       width,
		height:      height,
		topToBottom: topToBottom,
	}

	var err error
	if imageType == tgaTrueColor {
		err = d.raw(width * height)
	} else {
		err = d.rle()
	}
	if err != nil {
		return nil, err
	}
	return d.img, nil
}

type tgaDecoder struct {
	src         []byte
	pos         int
	img         *image.RGBA
	stride      int
	width       int
	height      int
	topToBottom bool
	written     int
}

// pixel reads one BGR(A) pixel from the stream.
func (d *tgaDecoder) pixel() ([4]byte, error) {
	if d.pos+d.stride > len(d.src) {
		return [4]byte{}, errors.New("tga: truncated pixel data")
	}
	p := d.src[d.pos : d.pos+d.stride]
	d.pos += d.stride

	px := [4]byte{p[2], p[1], p[0], 255}
	if d.stride == 4 {
		px[3] = p[3]
	}
	return px, nil
}

// put stores px at the next pixel in file order.
func (d *tgaDecoder) put(px [4]byte) {
	x := d.written % d.width
	y := d.written / d.width
	if !d.topToBottom {
		y = d.height - 1 - y
	}
	i := d.img.PixOffset(x, y)
	copy(d.img.Pix[i:i+4], px[:])
	d.written++
}

func (d *tgaDecoder) raw(n int) error {
	for i := 0; i < n; i++ {
		px, err := d.pixel()
		if err != nil {
			return err
		}
		d.put(px)
	}
	return nil
}

func (d *tgaDecoder) rle() error {
	total := d.width * d.height
	for d.written < total {
		if d.pos >= len(d.src) {
			return errors.New("tga: truncated RLE stream")
		}
		header := d.src[d.pos]
		d.pos++
		count := min(int(header&0x7F)+1, total-d.written)

		if header&0x80 == 0 {
			if err := d.raw(count); err != nil {
				return err
			}
			continue
		}

		px, err := d.pixel()
		if err != nil {
			return err
		}
		for i := 0; i < count; i++ {
			d.put(px)
		}
	}
	return nil
}
