/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"toshoot/internal/domain"
	"toshoot/internal/format"
)

// Share card dimensions and palette. The dark slate background matches the
// application theme.
const (
	cardWidth  = 640
	cardHeight = 800
)

var (
	cardBG     = color.RGBA{0x1f, 0x29, 0x37, 0xff}
	cardPanel  = color.RGBA{0x37, 0x41, 0x51, 0xff}
	cardText   = color.RGBA{0xf9, 0xfa, 0xfb, 0xff}
	cardMuted  = color.RGBA{0x9c, 0xa3, 0xaf, 0xff}
	cardAccent = color.RGBA{0xf5, 0x9e, 0x0b, 0xff}
)

// RenderSceneCard draws a shareable scene summary image and writes it as PNG
// to outPath.
func RenderSceneCard(info domain.ProjectInfo, sc domain.Scene, outPath string) error {
	img := image.NewRGBA(image.Rect(0, 0, cardWidth, cardHeight))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: cardBG}, image.Point{}, draw.Src)

	// Accent bar and content panel
	fillRect(img, 0, 0, cardWidth, 8, cardAccent)
	fillRect(img, 32, 96, cardWidth-32, cardHeight-120, cardPanel)

	face := basicfont.Face7x13
	line := face.Metrics().Height.Ceil() + 8

	y := 48
	drawText(img, face, 40, y, cardAccent, "SHOOTING INFO")
	y += line * 2

	y = 96 + 32
	drawText(img, face, 56, y, cardText, fmt.Sprintf("Scene %s", format.OrNA(sc.Number)))
	y += line
	drawText(img, face, 56, y, cardText, format.OrNA(sc.Heading))
	y += line * 2

	rows := []struct {
		label string
		value string
	}{
		{"Pages", format.OrNA(sc.Pages)},
		{"Set", fmt.Sprintf("%s. %s", format.OrNA(sc.Type), format.OrNA(sc.Location))},
		{"Cast", format.OrNA(sc.Cast)},
		{"Date", format.OrNA(format.DateDDMMYYYY(sc.Date))},
		{"Time", format.OrNA(format.Time12Hour(sc.Time))},
		{"Status", format.OrNA(sc.Status)},
		{"Equipment", format.OrNA(sc.Equipment)},
		{"Contact", format.OrNA(sc.Contact)},
	}
	for _, r := range rows {
		drawText(img, face, 56, y, cardMuted, r.label)
		drawText(img, face, 200, y, cardText, r.value)
		y += line
	}

	// Footer: production credits and brand
	fy := cardHeight - 36
	drawText(img, face, 40, fy, cardMuted,
		fmt.Sprintf("%s / Dir. %s", format.OrNA(info.ProdName), format.OrNA(info.DirectorName)))
	drawText(img, face, cardWidth-110, fy, cardAccent, "ToShooT")

	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create card file: %w", err)
	}
	defer func() { _ = f.Close() }()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode card png: %w", err)
	}
	return nil
}

func drawText(img *image.RGBA, face font.Face, x, y int, col color.RGBA, s string) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

func fillRect(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	draw.Draw(img, image.Rect(x0, y0, x1, y1), &image.Uniform{C: col}, image.Point{}, draw.Src)
}
