package main

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/Faultbox/glbrig/pkg/formats"
)

// textureInfo sniffs the embedded image header without decoding pixels.
func textureInfo(ref *formats.TextureRef) (format string, width, height int, err error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(ref.Data))
	if err != nil {
		return "", 0, 0, err
	}
	return format, cfg.Width, cfg.Height, nil
}

func printTexture(label string, ref *formats.TextureRef) {
	if ref == nil {
		return
	}

	format, w, h, err := textureInfo(ref)
	if err != nil {
		fmt.Printf("  %-7s     image %d, %s, %d bytes (unreadable: %v)\n", label+":", ref.Image, ref.MimeType, len(ref.Data), err)
		return
	}
	fmt.Printf("  %-7s     image %d, %s %dx%d, %d bytes\n", label+":", ref.Image, format, w, h, len(ref.Data))
}
